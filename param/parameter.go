package param

// Parameter is a named numeric value that constraints and equations
// consume. Min and Max, when non-nil, bound the value: updates clamp to
// the nearest bound rather than failing.
type Parameter struct {
	ID          string
	Name        string
	Value       float64
	Unit        string
	Min, Max    *float64
	Description string

	// Constraints lists the ids of constraints consuming this parameter.
	// Maintained by the engine.
	Constraints []string
}

// clamp returns v limited to the parameter's bounds.
func (p Parameter) clamp(v float64) float64 {
	if p.Min != nil && v < *p.Min {
		return *p.Min
	}
	if p.Max != nil && v > *p.Max {
		return *p.Max
	}
	return v
}

// clone returns a deep copy, so engine-owned parameters never leak.
func (p Parameter) clone() Parameter {
	out := p
	if p.Min != nil {
		m := *p.Min
		out.Min = &m
	}
	if p.Max != nil {
		m := *p.Max
		out.Max = &m
	}
	out.Constraints = append([]string(nil), p.Constraints...)
	return out
}
