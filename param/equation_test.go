package param

import (
	"errors"
	"testing"
)

func paramValue(t *testing.T, e *Engine, id string) float64 {
	t.Helper()
	p, err := e.Parameter(id)
	if err != nil {
		t.Fatalf("Parameter(%s): %v", id, err)
	}
	return p.Value
}

func TestEquationChainEvaluatesInOrder(t *testing.T) {
	e := NewEngine()
	a := mustAddParameter(t, e, Parameter{Name: "a", Value: 2})
	b := mustAddParameter(t, e, Parameter{Name: "b"})
	c := mustAddParameter(t, e, Parameter{Name: "c"})

	// c depends on b, which depends on a; registration order should not
	// matter for evaluation order.
	if _, err := e.AddEquation(c.ID, "b + 1"); err != nil {
		t.Fatalf("AddEquation(c): %v", err)
	}
	if _, err := e.AddEquation(b.ID, "a * 2"); err != nil {
		t.Fatalf("AddEquation(b): %v", err)
	}

	if _, err := e.UpdateParameter(a.ID, 5); err != nil {
		t.Fatalf("UpdateParameter: %v", err)
	}
	if got := paramValue(t, e, b.ID); got != 10 {
		t.Errorf("b = %v, want 10", got)
	}
	if got := paramValue(t, e, c.ID); got != 11 {
		t.Errorf("c = %v, want 11 from the freshly evaluated b", got)
	}
}

func TestAddEquationRejectsSelfDependency(t *testing.T) {
	e := NewEngine()
	a := mustAddParameter(t, e, Parameter{Name: "a", Value: 1})

	if _, err := e.AddEquation(a.ID, "a + 1"); !errors.Is(err, ErrCycle) {
		t.Errorf("self-dependency error = %v, want ErrCycle", err)
	}
}

func TestAddEquationRejectsCycle(t *testing.T) {
	e := NewEngine()
	a := mustAddParameter(t, e, Parameter{Name: "a", Value: 1})
	b := mustAddParameter(t, e, Parameter{Name: "b", Value: 1})

	if _, err := e.AddEquation(b.ID, "a + 1"); err != nil {
		t.Fatalf("AddEquation(b): %v", err)
	}
	if _, err := e.AddEquation(a.ID, "b * 2"); !errors.Is(err, ErrCycle) {
		t.Errorf("cycle error = %v, want ErrCycle", err)
	}
	// The rejected equation must not have been stored.
	if got := e.Equations(); len(got) != 1 {
		t.Errorf("Equations() = %d, want 1", len(got))
	}
}

func TestAddEquationRejectsSecondDriver(t *testing.T) {
	e := NewEngine()
	a := mustAddParameter(t, e, Parameter{Name: "a", Value: 1})
	b := mustAddParameter(t, e, Parameter{Name: "b", Value: 1})
	_ = b

	if _, err := e.AddEquation(a.ID, "b + 1"); err != nil {
		t.Fatalf("AddEquation: %v", err)
	}
	if _, err := e.AddEquation(a.ID, "b + 2"); !errors.Is(err, ErrDuplicate) {
		t.Errorf("second driver error = %v, want ErrDuplicate", err)
	}
}

func TestAddEquationUnknownIdentifier(t *testing.T) {
	e := NewEngine()
	a := mustAddParameter(t, e, Parameter{Name: "a", Value: 1})

	if _, err := e.AddEquation(a.ID, "ghost * 2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown identifier error = %v, want ErrNotFound", err)
	}
	if _, err := e.AddEquation("missing-param", "1 + 1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown result error = %v, want ErrNotFound", err)
	}
}

func TestAddEquationEvaluatesImmediately(t *testing.T) {
	e := NewEngine()
	a := mustAddParameter(t, e, Parameter{Name: "a", Value: 3})
	b := mustAddParameter(t, e, Parameter{Name: "b"})

	if _, err := e.AddEquation(b.ID, "a * a"); err != nil {
		t.Fatalf("AddEquation: %v", err)
	}
	_ = a
	if got := paramValue(t, e, b.ID); got != 9 {
		t.Errorf("b = %v, want 9 right after registration", got)
	}
}

func TestEquationResultClamped(t *testing.T) {
	e := NewEngine()
	max := 50.0
	a := mustAddParameter(t, e, Parameter{Name: "a", Value: 100})
	b := mustAddParameter(t, e, Parameter{Name: "b", Max: &max})

	if _, err := e.AddEquation(b.ID, "a * 2"); err != nil {
		t.Fatalf("AddEquation: %v", err)
	}
	_ = a
	if got := paramValue(t, e, b.ID); got != 50 {
		t.Errorf("b = %v, want clamped to 50", got)
	}
}

func TestRemoveEquation(t *testing.T) {
	e := NewEngine()
	a := mustAddParameter(t, e, Parameter{Name: "a", Value: 2})
	b := mustAddParameter(t, e, Parameter{Name: "b"})

	q, err := e.AddEquation(b.ID, "a * 2")
	if err != nil {
		t.Fatalf("AddEquation: %v", err)
	}
	if err := e.RemoveEquation(q.ID); err != nil {
		t.Fatalf("RemoveEquation: %v", err)
	}

	// The parameter keeps its last computed value but stops following.
	if _, err := e.UpdateParameter(a.ID, 100); err != nil {
		t.Fatalf("UpdateParameter: %v", err)
	}
	if got := paramValue(t, e, b.ID); got != 4 {
		t.Errorf("b = %v, want the last computed 4", got)
	}

	if err := e.RemoveEquation("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("RemoveEquation(missing) error = %v, want ErrNotFound", err)
	}
}
