package timeline

import (
	"testing"

	"tempo-cli/internal/model"
)

func dragFixture() []Group {
	return Groups([]model.Item{
		event("m1", "2024-01-01"),
		event("m2", "2024-02-01"),
		action("a1", "2024-01-01", "m1", model.StatusOpen),
		action("a2", "2024-01-02", "m1", model.StatusOpen),
		action("b1", "2024-02-02", "m2", model.StatusOpen),
	})
}

func TestDrag_DropOnCurrentParentIsNoOp(t *testing.T) {
	groups := dragFixture()
	var d Drag
	d.Begin("a1")
	dec := d.Drop(groups, "m1")
	if !dec.NoOp || dec.Rejected {
		t.Fatalf("expected no-op, got %+v", dec)
	}
	if d.Dragging() {
		t.Fatalf("drop must return to idle")
	}
}

func TestDrag_ReassignAppendsToEnd(t *testing.T) {
	groups := dragFixture()
	var d Drag
	d.Begin("a1")
	dec := d.Drop(groups, "m2")
	if dec.NoOp || dec.Rejected {
		t.Fatalf("expected reassignment, got %+v", dec)
	}
	if dec.ItemID != "a1" {
		t.Fatalf("expected item a1, got %q", dec.ItemID)
	}
	if !dec.Patch.SetParent || dec.Patch.Parent == nil || *dec.Patch.Parent != "m2" {
		t.Fatalf("expected parent m2, got %+v", dec.Patch)
	}
	// m2 already holds one action; append-to-end means order == 1.
	if dec.Patch.Order == nil || *dec.Patch.Order != 1 {
		t.Fatalf("expected order 1, got %+v", dec.Patch.Order)
	}
}

func TestDrag_UnknownTargetRejected(t *testing.T) {
	groups := dragFixture()
	var d Drag
	d.Begin("a1")
	dec := d.Drop(groups, "m99")
	if !dec.Rejected {
		t.Fatalf("expected rejection for unknown target, got %+v", dec)
	}
	if d.Dragging() {
		t.Fatalf("rejection must return to idle")
	}
}

func TestDrag_DropWithoutBeginRejected(t *testing.T) {
	var d Drag
	dec := d.Drop(dragFixture(), "m1")
	if !dec.Rejected {
		t.Fatalf("expected rejection without an active drag, got %+v", dec)
	}
}

func TestDrag_Cancel(t *testing.T) {
	var d Drag
	d.Begin("a1")
	d.Cancel()
	if d.Dragging() {
		t.Fatalf("cancel must return to idle")
	}
	if dec := d.Drop(dragFixture(), "m2"); !dec.Rejected {
		t.Fatalf("drop after cancel must be rejected, got %+v", dec)
	}
}

func TestDrag_DropOnSyntheticGroup(t *testing.T) {
	groups := Groups([]model.Item{
		action("a1", "2024-01-01", "", model.StatusOpen),
		action("a2", "2024-01-02", "", model.StatusOpen),
	})
	var d Drag
	d.Begin("a1")
	// Only one group exists, and a1 already resolves to it.
	dec := d.Drop(groups, UnassignedKey)
	if !dec.NoOp {
		t.Fatalf("expected no-op on the synthetic group, got %+v", dec)
	}
}
