package param

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/draft2d/draft/internal/logging"
)

// Errors reported by engine operations.
var (
	// ErrNotFound reports a constraint, parameter, or equation id that the
	// engine does not hold.
	ErrNotFound = errors.New("param: not found")

	// ErrArity reports a constraint whose entity list length does not match
	// its kind.
	ErrArity = errors.New("param: wrong number of entity references")

	// ErrCycle reports an equation whose dependencies form a cycle.
	ErrCycle = errors.New("param: equation dependency cycle")

	// ErrBadExpression reports an equation expression outside the supported
	// arithmetic grammar.
	ErrBadExpression = errors.New("param: bad expression")

	// ErrDuplicate reports a parameter name already in use, or a parameter
	// already driven by another equation.
	ErrDuplicate = errors.New("param: duplicate")
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithHistoryCap sets the maximum number of retained history entries.
// Values below 1 keep the default.
func WithHistoryCap(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.historyCap = n
		}
	}
}

// Engine holds constraints, parameters, and parameter-linking equations,
// and re-evaluates them on every mutation. All state lives in id-keyed
// maps owned exclusively by the engine; accessors return copies.
type Engine struct {
	constraints map[string]*Constraint
	parameters  map[string]*Parameter
	equations   map[string]*equation

	// entityConstraints indexes entity id -> ids of constraints referencing
	// it. Rebuilt incrementally on every constraint mutation.
	entityConstraints map[string]map[string]bool

	// entities is the set of entity ids the engine knows to exist;
	// solve skips constraints referencing anything else.
	entities map[string]bool

	history    []HistoryEntry
	historyCap int
}

// NewEngine creates an empty engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		constraints:       make(map[string]*Constraint),
		parameters:        make(map[string]*Parameter),
		equations:         make(map[string]*equation),
		entityConstraints: make(map[string]map[string]bool),
		entities:          make(map[string]bool),
		historyCap:        DefaultHistoryCap,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RegisterEntity tells the engine the entity id exists, making it a valid
// constraint reference during solve.
func (e *Engine) RegisterEntity(id string) {
	e.entities[id] = true
}

// RemoveEntity forgets an entity id. Constraints referencing it remain but
// become no-ops during solve until the id is registered again or the
// constraints are removed.
func (e *Engine) RemoveEntity(id string) {
	delete(e.entities, id)
}

// AddConstraint registers a constraint, assigning an id when empty, and
// re-solves. The entity list length must match the kind's arity.
func (e *Engine) AddConstraint(c Constraint) (Constraint, error) {
	want := c.Kind.EntityCount()
	if want == 0 {
		return Constraint{}, fmt.Errorf("%w: unknown kind %q", ErrArity, c.Kind)
	}
	if len(c.Entities) != want {
		return Constraint{}, fmt.Errorf("%w: kind %q takes %d entities, got %d",
			ErrArity, c.Kind, want, len(c.Entities))
	}

	stored := c.clone()
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	e.constraints[stored.ID] = &stored
	e.indexConstraint(&stored)
	e.appendHistory(HistoryAdd, stored.ID, nil, &stored)
	logging.Logger().Debug("constraint added", "id", stored.ID, "kind", stored.Kind)
	e.Solve()
	return stored.clone(), nil
}

// UpdateConstraint replaces the stored constraint with the same id and
// re-solves. The id on the update value is ignored.
func (e *Engine) UpdateConstraint(id string, c Constraint) (Constraint, error) {
	old, ok := e.constraints[id]
	if !ok {
		return Constraint{}, fmt.Errorf("%w: constraint %s", ErrNotFound, id)
	}
	want := c.Kind.EntityCount()
	if want == 0 || len(c.Entities) != want {
		return Constraint{}, fmt.Errorf("%w: kind %q takes %d entities, got %d",
			ErrArity, c.Kind, want, len(c.Entities))
	}

	before := old.clone()
	e.unindexConstraint(old)

	stored := c.clone()
	stored.ID = id
	e.constraints[id] = &stored
	e.indexConstraint(&stored)
	e.appendHistory(HistoryModify, id, &before, &stored)
	e.Solve()
	return stored.clone(), nil
}

// RemoveConstraint deletes a constraint, prunes the entity index, and
// re-solves.
func (e *Engine) RemoveConstraint(id string) error {
	c, ok := e.constraints[id]
	if !ok {
		return fmt.Errorf("%w: constraint %s", ErrNotFound, id)
	}
	before := c.clone()
	e.unindexConstraint(c)
	delete(e.constraints, id)
	e.appendHistory(HistoryRemove, id, &before, nil)
	logging.Logger().Debug("constraint removed", "id", id, "kind", before.Kind)
	e.Solve()
	return nil
}

// ConstraintsForEntity returns copies of all constraints whose entity list
// contains the id, sorted by constraint id.
func (e *Engine) ConstraintsForEntity(id string) []Constraint {
	ids := e.entityConstraints[id]
	out := make([]Constraint, 0, len(ids))
	for cid := range ids {
		if c, ok := e.constraints[cid]; ok {
			out = append(out, c.clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Constraints returns copies of all constraints, sorted by id.
func (e *Engine) Constraints() []Constraint {
	out := make([]Constraint, 0, len(e.constraints))
	for _, c := range e.constraints {
		out = append(out, c.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AddParameter registers a parameter, assigning an id when empty. The
// initial value is clamped to the parameter's bounds. Parameter names must
// be unique because equations reference parameters by name.
func (e *Engine) AddParameter(p Parameter) (Parameter, error) {
	if p.Name == "" {
		return Parameter{}, fmt.Errorf("%w: parameter name required", ErrNotFound)
	}
	for _, existing := range e.parameters {
		if existing.Name == p.Name {
			return Parameter{}, fmt.Errorf("%w: parameter name %q", ErrDuplicate, p.Name)
		}
	}

	stored := p.clone()
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	stored.Value = stored.clamp(stored.Value)
	stored.Constraints = nil
	e.parameters[stored.ID] = &stored
	return stored.clone(), nil
}

// UpdateParameter sets a parameter's value, clamped to its bounds, then
// re-evaluates all equations in dependency order and re-solves. Updating
// with the clamped value again is a no-op beyond the re-solve, so the
// operation is idempotent.
func (e *Engine) UpdateParameter(id string, value float64) (Parameter, error) {
	p, ok := e.parameters[id]
	if !ok {
		return Parameter{}, fmt.Errorf("%w: parameter %s", ErrNotFound, id)
	}
	p.Value = p.clamp(value)
	e.evaluateEquations()
	e.Solve()
	return p.clone(), nil
}

// Parameter returns a copy of the parameter with the given id.
func (e *Engine) Parameter(id string) (Parameter, error) {
	p, ok := e.parameters[id]
	if !ok {
		return Parameter{}, fmt.Errorf("%w: parameter %s", ErrNotFound, id)
	}
	return p.clone(), nil
}

// Parameters returns copies of all parameters, sorted by name.
func (e *Engine) Parameters() []Parameter {
	out := make([]Parameter, 0, len(e.parameters))
	for _, p := range e.parameters {
		out = append(out, p.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// RemoveParameter deletes a parameter and prunes every cross-reference:
// equations producing or consuming it are removed, and constraints bound
// to it are unbound.
func (e *Engine) RemoveParameter(id string) error {
	if _, ok := e.parameters[id]; !ok {
		return fmt.Errorf("%w: parameter %s", ErrNotFound, id)
	}
	delete(e.parameters, id)

	for qid, q := range e.equations {
		if q.Result == id {
			delete(e.equations, qid)
			continue
		}
		for _, dep := range q.Dependencies {
			if dep == id {
				delete(e.equations, qid)
				break
			}
		}
	}
	return nil
}

// BindParameter links a dimensional constraint to a parameter: on every
// solve the constraint's value follows the parameter's current value. The
// parameter records the constraint in its back-reference list.
func (e *Engine) BindParameter(paramID, constraintID string) error {
	p, ok := e.parameters[paramID]
	if !ok {
		return fmt.Errorf("%w: parameter %s", ErrNotFound, paramID)
	}
	c, ok := e.constraints[constraintID]
	if !ok {
		return fmt.Errorf("%w: constraint %s", ErrNotFound, constraintID)
	}
	if !c.Kind.Dimensional() {
		return fmt.Errorf("%w: kind %q carries no value", ErrArity, c.Kind)
	}

	c.Parameter = paramID
	for _, cid := range p.Constraints {
		if cid == constraintID {
			return nil
		}
	}
	p.Constraints = append(p.Constraints, constraintID)
	e.Solve()
	return nil
}

// AddEquation compiles the expression, resolves its identifiers to
// parameters by name, rejects dependency cycles, registers the equation,
// and evaluates it once.
func (e *Engine) AddEquation(resultParamID, expression string) (Equation, error) {
	target, ok := e.parameters[resultParamID]
	if !ok {
		return Equation{}, fmt.Errorf("%w: parameter %s", ErrNotFound, resultParamID)
	}
	for _, q := range e.equations {
		if q.Result == resultParamID {
			return Equation{}, fmt.Errorf("%w: parameter %q already driven by equation %s",
				ErrDuplicate, target.Name, q.ID)
		}
	}

	root, names, err := compileExpr(expression)
	if err != nil {
		return Equation{}, err
	}

	deps := make([]string, 0, len(names))
	for _, name := range names {
		dep, ok := e.parameterByName(name)
		if !ok {
			return Equation{}, fmt.Errorf("%w: parameter %q", ErrNotFound, name)
		}
		deps = append(deps, dep.ID)
	}

	q := &equation{
		Equation: Equation{
			ID:           uuid.NewString(),
			Result:       resultParamID,
			Expression:   expression,
			Dependencies: deps,
		},
		root: root,
	}
	if _, err := e.equationOrder(q); err != nil {
		return Equation{}, err
	}

	e.equations[q.ID] = q
	e.evaluateEquations()
	return q.Equation.clone(), nil
}

// RemoveEquation deletes an equation. Its target parameter keeps its
// current value.
func (e *Engine) RemoveEquation(id string) error {
	if _, ok := e.equations[id]; !ok {
		return fmt.Errorf("%w: equation %s", ErrNotFound, id)
	}
	delete(e.equations, id)
	return nil
}

// Equations returns copies of all equations, sorted by id.
func (e *Engine) Equations() []Equation {
	out := make([]Equation, 0, len(e.equations))
	for _, q := range e.equations {
		out = append(out, q.Equation.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (e *Engine) parameterByName(name string) (*Parameter, bool) {
	for _, p := range e.parameters {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

func (e *Engine) indexConstraint(c *Constraint) {
	for _, eid := range c.Entities {
		set := e.entityConstraints[eid]
		if set == nil {
			set = make(map[string]bool)
			e.entityConstraints[eid] = set
		}
		set[c.ID] = true
	}
	if c.Parameter != "" {
		if p, ok := e.parameters[c.Parameter]; ok {
			found := false
			for _, cid := range p.Constraints {
				if cid == c.ID {
					found = true
					break
				}
			}
			if !found {
				p.Constraints = append(p.Constraints, c.ID)
			}
		}
	}
}

func (e *Engine) unindexConstraint(c *Constraint) {
	for _, eid := range c.Entities {
		if set := e.entityConstraints[eid]; set != nil {
			delete(set, c.ID)
			if len(set) == 0 {
				delete(e.entityConstraints, eid)
			}
		}
	}
	if c.Parameter != "" {
		if p, ok := e.parameters[c.Parameter]; ok {
			out := p.Constraints[:0]
			for _, cid := range p.Constraints {
				if cid != c.ID {
					out = append(out, cid)
				}
			}
			p.Constraints = out
		}
	}
}
