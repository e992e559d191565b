package param

import "testing"

func TestHistoryRecordsConstraintLifecycle(t *testing.T) {
	e := newTestEngine(t, "l1", "l2")

	c := mustAddConstraint(t, e, Constraint{Kind: Parallel, Entities: []string{"l1", "l2"}, Active: true})
	if _, err := e.UpdateConstraint(c.ID, Constraint{Kind: Perpendicular, Entities: []string{"l1", "l2"}, Active: true}); err != nil {
		t.Fatalf("UpdateConstraint: %v", err)
	}
	if err := e.RemoveConstraint(c.ID); err != nil {
		t.Fatalf("RemoveConstraint: %v", err)
	}

	h := e.History()
	if len(h) != 3 {
		t.Fatalf("History() = %d entries, want 3", len(h))
	}

	add, mod, rem := h[0], h[1], h[2]
	if add.Op != HistoryAdd || add.Before != nil || add.After == nil {
		t.Errorf("add entry = %+v", add)
	}
	if mod.Op != HistoryModify || mod.Before == nil || mod.After == nil {
		t.Errorf("modify entry = %+v", mod)
	}
	if mod.Before.Kind != Parallel || mod.After.Kind != Perpendicular {
		t.Errorf("modify snapshots = %v -> %v", mod.Before.Kind, mod.After.Kind)
	}
	if rem.Op != HistoryRemove || rem.Before == nil || rem.After != nil {
		t.Errorf("remove entry = %+v", rem)
	}
	for _, entry := range h {
		if entry.ConstraintID != c.ID {
			t.Errorf("entry %s references %s, want %s", entry.Op, entry.ConstraintID, c.ID)
		}
		if entry.Timestamp.IsZero() {
			t.Errorf("entry %s has a zero timestamp", entry.Op)
		}
	}
}

func TestHistoryCapDropsOldest(t *testing.T) {
	e := NewEngine(WithHistoryCap(3))
	e.RegisterEntity("l1")

	var last Constraint
	for i := 0; i < 5; i++ {
		last = mustAddConstraint(t, e, Constraint{Kind: Horizontal, Entities: []string{"l1"}, Active: true})
	}

	h := e.History()
	if len(h) != 3 {
		t.Fatalf("History() = %d entries, want capped at 3", len(h))
	}
	if h[len(h)-1].ConstraintID != last.ID {
		t.Error("the newest entry was dropped instead of the oldest")
	}
}

func TestCompactHistory(t *testing.T) {
	e := newTestEngine(t, "l1")
	for i := 0; i < 6; i++ {
		mustAddConstraint(t, e, Constraint{Kind: Horizontal, Entities: []string{"l1"}, Active: true})
	}

	newest := e.History()[5]
	if got := e.CompactHistory(); got != 3 {
		t.Errorf("CompactHistory = %d, want 3", got)
	}
	h := e.History()
	if len(h) != 3 {
		t.Fatalf("History() = %d entries after compaction, want 3", len(h))
	}
	if h[len(h)-1].ID != newest.ID {
		t.Error("compaction dropped the newest entries")
	}

	empty := NewEngine()
	if got := empty.CompactHistory(); got != 0 {
		t.Errorf("CompactHistory on empty history = %d, want 0", got)
	}
}

func TestHistorySnapshotsAreIsolated(t *testing.T) {
	e := newTestEngine(t, "l1", "l2")
	c := mustAddConstraint(t, e, Constraint{Kind: Parallel, Entities: []string{"l1", "l2"}, Active: true})

	h := e.History()
	h[0].After.Entities[0] = "tampered"

	if got := e.Constraints(); got[0].Entities[0] != "l1" {
		t.Error("mutating a history snapshot reached engine state")
	}
	_ = c
}
