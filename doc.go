// Package draft is a 2D technical-drawing geometry kernel.
//
// # Overview
//
// draft provides the typed entity model and geometric queries behind a
// drawing editor: lines, circles, arcs, rectangles, ellipses, polylines,
// text and leader annotations, and linear/angular/radial dimensions, with
// bounding-box calculation, zoom-aware hit testing, and pure transform
// operations (rotate, mirror, extend, trim, split, intersection).
//
// # Quick Start
//
//	import "github.com/draft2d/draft"
//
//	line := draft.NewLine(draft.Pt(0, 0), draft.Pt(30, 40))
//
//	b := draft.BoundsOf(line)
//	hit := draft.HitTest(line, draft.Pt(15, 20), 1.0)
//
//	rotated := draft.Rotate(line, draft.Pt(0, 0), 90)
//
// # Sub-packages
//
//   - param: constraint, parameter, and equation engine
//   - dxf: DXF tag/value interchange codec (import and export)
//   - svg: SVG exporter
//
// # Concurrency
//
// The kernel is single-threaded and synchronous: every operation runs to
// completion before returning, and the kernel takes no internal locks.
// Callers serialize concurrent mutations themselves.
//
// # Coordinate System
//
//   - X increases right, Y increases up (drawing units)
//   - Stored entity angles are in degrees, counter-clockwise
//   - Point and Matrix methods take radians
package draft

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
