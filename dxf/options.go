package dxf

import "github.com/draft2d/draft"

// Options configures the codec. Scale and Offset apply in both
// directions; the layer skip flags apply on decode and Precision on
// encode.
type Options struct {
	// Scale multiplies every coordinate passing through the codec.
	// Default 1.
	Scale float64

	// Offset is added to every coordinate after scaling.
	Offset draft.Point

	// Precision is the number of decimal places written for every float.
	// Default 6.
	Precision int

	// SkipInvisibleLayers drops entities on layers marked invisible in the
	// layer table instead of importing them.
	SkipInvisibleLayers bool

	// SkipLockedLayers drops entities on layers marked locked.
	SkipLockedLayers bool

	// Extents overrides the encoded drawing extents ($EXTMIN/$EXTMAX).
	// When nil, extents are computed from the document content.
	Extents *draft.Bounds
}

// Option configures the codec.
type Option func(*Options)

func defaultOptions() Options {
	return Options{Scale: 1, Precision: 6}
}

// WithScale sets the coordinate scale factor.
// Non-positive values are ignored.
func WithScale(s float64) Option {
	return func(o *Options) {
		if s > 0 {
			o.Scale = s
		}
	}
}

// WithOffset sets the coordinate offset.
func WithOffset(p draft.Point) Option {
	return func(o *Options) { o.Offset = p }
}

// WithPrecision sets the decimal precision of encoded floats.
// Negative values are ignored.
func WithPrecision(digits int) Option {
	return func(o *Options) {
		if digits >= 0 {
			o.Precision = digits
		}
	}
}

// WithSkipInvisibleLayers controls whether entities on invisible layers
// are imported.
func WithSkipInvisibleLayers(skip bool) Option {
	return func(o *Options) { o.SkipInvisibleLayers = skip }
}

// WithSkipLockedLayers controls whether entities on locked layers are
// imported.
func WithSkipLockedLayers(skip bool) Option {
	return func(o *Options) { o.SkipLockedLayers = skip }
}

// WithExtents fixes the drawing extents written to the header, for
// documents that target a known sheet size.
func WithExtents(b draft.Bounds) Option {
	return func(o *Options) { o.Extents = &b }
}
