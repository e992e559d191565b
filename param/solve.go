package param

import (
	"sort"

	"github.com/draft2d/draft/internal/logging"
)

// SolveResult summarizes one solve pass.
type SolveResult struct {
	// Geometric and Dimensional count the active constraints processed in
	// each group.
	Geometric   int
	Dimensional int

	// Skipped counts constraints ignored because an entity id they
	// reference is not registered.
	Skipped int
}

// Solve re-evaluates the active constraints. Constraints are partitioned
// into a geometric group (coincident, concentric, parallel, perpendicular,
// tangent, horizontal, vertical) and a dimensional group (distance, angle,
// radius, diameter, length), each processed in descending priority order.
//
// Solve does not perform simultaneous equation solving: each group pass
// validates references, refreshes parameter-bound values, and terminates.
// The per-group pass is the seam where a real geometric solver would
// plug in. Solve is idempotent and always terminates; constraints
// referencing missing entities are skipped as no-ops, never an error.
func (e *Engine) Solve() SolveResult {
	var geometric, dimensional []*Constraint
	for _, c := range e.constraints {
		if !c.Active {
			continue
		}
		if c.Kind.Dimensional() {
			dimensional = append(dimensional, c)
		} else {
			geometric = append(geometric, c)
		}
	}
	byPriority(geometric)
	byPriority(dimensional)

	var res SolveResult
	res.Geometric = e.solveGroup(geometric, &res.Skipped)
	res.Dimensional = e.solveGroup(dimensional, &res.Skipped)
	return res
}

// byPriority orders constraints by descending priority, then id for
// determinism.
func byPriority(cs []*Constraint) {
	sort.SliceStable(cs, func(i, j int) bool {
		if cs[i].Priority != cs[j].Priority {
			return cs[i].Priority > cs[j].Priority
		}
		return cs[i].ID < cs[j].ID
	})
}

// solveGroup runs one group pass: reference validation and parameter
// refresh for each constraint, in order. Returns the number processed and
// accumulates the skip count.
func (e *Engine) solveGroup(cs []*Constraint, skipped *int) int {
	applied := 0
	for _, c := range cs {
		if !e.referencesValid(c) {
			*skipped++
			logging.Logger().Debug("constraint skipped",
				"constraint", c.ID, "kind", string(c.Kind))
			continue
		}
		if c.Parameter != "" {
			if p, ok := e.parameters[c.Parameter]; ok {
				c.Value = p.Value
			}
		}
		applied++
	}
	return applied
}

// referencesValid reports whether every entity the constraint references
// is registered.
func (e *Engine) referencesValid(c *Constraint) bool {
	for _, id := range c.Entities {
		if !e.entities[id] {
			return false
		}
	}
	return true
}
