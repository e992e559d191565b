// Package param is the parametric engine of the drawing kernel: it owns
// constraints between entities, named numeric parameters, and equations
// linking parameters, and re-evaluates them on every mutation.
//
// The engine owns all of its state exclusively. Callers interact through
// ids and returned copies; no internal value is ever aliased outside the
// engine's maps. The engine takes no locks; like the rest of the kernel
// it is single-threaded, and callers serialize concurrent use.
package param

// Kind identifies a constraint kind. The set is closed; EntityCount is
// defined for every kind.
type Kind string

// Constraint kinds.
const (
	Coincident    Kind = "coincident"
	Concentric    Kind = "concentric"
	Parallel      Kind = "parallel"
	Perpendicular Kind = "perpendicular"
	Tangent       Kind = "tangent"
	Horizontal    Kind = "horizontal"
	Vertical      Kind = "vertical"
	Distance      Kind = "distance"
	Angle         Kind = "angle"
	Radius        Kind = "radius"
	Diameter      Kind = "diameter"
	Length        Kind = "length"
)

// EntityCount returns the number of entities the kind constrains:
// 1 for the single-entity kinds (horizontal, vertical, radius, diameter,
// length), 2 for the relational kinds, 0 for an unknown kind.
func (k Kind) EntityCount() int {
	switch k {
	case Horizontal, Vertical, Radius, Diameter, Length:
		return 1
	case Coincident, Concentric, Parallel, Perpendicular, Tangent,
		Distance, Angle:
		return 2
	default:
		return 0
	}
}

// Dimensional reports whether the kind carries a scalar value (a driven
// dimension) rather than a purely geometric relationship.
func (k Kind) Dimensional() bool {
	switch k {
	case Distance, Angle, Radius, Diameter, Length:
		return true
	default:
		return false
	}
}

// Constraint restricts the geometric relationship between one or two
// entities. Entities holds the referenced entity ids in order, with length
// fixed by Kind.EntityCount. Dimensional kinds carry a Value and optional
// Unit. Higher Priority constraints are resolved first.
type Constraint struct {
	ID       string
	Kind     Kind
	Entities []string
	Active   bool
	Priority int
	Value    float64
	Unit     string

	// Parameter optionally names the parameter id driving Value; see
	// Engine.BindParameter. Empty for unbound constraints.
	Parameter string
}

// clone returns a deep copy, so engine-owned constraints never leak.
func (c Constraint) clone() Constraint {
	out := c
	out.Entities = append([]string(nil), c.Entities...)
	return out
}
