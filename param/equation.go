package param

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/draft2d/draft/internal/logging"
)

// Equation links parameters: evaluating Expression over the current
// parameter values assigns the result to the parameter identified by
// Result. Expressions reference parameters by name; Dependencies holds
// the resolved parameter ids.
type Equation struct {
	ID           string
	Result       string
	Expression   string
	Dependencies []string
}

// clone returns a deep copy, so engine-owned equations never leak.
func (q Equation) clone() Equation {
	out := q
	out.Dependencies = append([]string(nil), q.Dependencies...)
	return out
}

// equation is the engine-internal compiled form.
type equation struct {
	Equation
	root *exprNode
}

// equationOrder returns all equations (plus extra, when non-nil) in
// dependency order: an equation evaluates only after every equation
// producing one of its dependencies. A dependency cycle returns ErrCycle.
//
// The dependency graph has one node per parameter and an edge from each
// dependency to the result parameter; gonum's topological sort orders it.
func (e *Engine) equationOrder(extra *equation) ([]*equation, error) {
	eqs := make([]*equation, 0, len(e.equations)+1)
	for _, q := range e.equations {
		eqs = append(eqs, q)
	}
	if extra != nil {
		eqs = append(eqs, extra)
	}
	if len(eqs) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(e.parameters))
	for id := range e.parameters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	index := make(map[string]int64, len(ids))
	for i, id := range ids {
		index[id] = int64(i)
	}

	g := simple.NewDirectedGraph()
	for i := range ids {
		g.AddNode(simple.Node(i))
	}
	for _, q := range eqs {
		to, ok := index[q.Result]
		if !ok {
			continue
		}
		for _, dep := range q.Dependencies {
			from, ok := index[dep]
			if !ok {
				continue
			}
			if from == to {
				return nil, fmt.Errorf("%w: equation %s depends on its own result", ErrCycle, q.ID)
			}
			g.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
		}
	}

	order, err := topo.Sort(g)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCycle, err)
	}
	position := make(map[int64]int, len(order))
	for i, n := range order {
		position[n.ID()] = i
	}

	sort.SliceStable(eqs, func(i, j int) bool {
		return position[index[eqs[i].Result]] < position[index[eqs[j].Result]]
	})
	return eqs, nil
}

// evaluateEquations runs every equation in dependency order against the
// current parameter values, so chained equations see fresh inputs within a
// single update. A failing equation is logged and skipped; its target
// parameter keeps its previous value and remaining equations still run.
func (e *Engine) evaluateEquations() {
	eqs, err := e.equationOrder(nil)
	if err != nil {
		// Cycles are rejected at AddEquation; reaching this means the
		// stored set is inconsistent, so evaluate nothing.
		logging.Logger().Warn("equation evaluation skipped", "err", err)
		return
	}

	scope := make(map[string]float64, len(e.parameters))
	for _, p := range e.parameters {
		scope[p.Name] = p.Value
	}

	for _, q := range eqs {
		target, ok := e.parameters[q.Result]
		if !ok {
			continue
		}
		v, err := q.root.eval(scope)
		if err != nil {
			logging.Logger().Warn("equation failed",
				"equation", q.ID, "expression", q.Expression, "err", err)
			continue
		}
		target.Value = target.clamp(v)
		scope[target.Name] = target.Value
	}
}
