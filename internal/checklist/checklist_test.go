package checklist

import (
	"testing"

	"tempo-cli/internal/model"
)

func TestCollection_OrderedByTaskID(t *testing.T) {
	c := New()
	c.Load([]model.ChecklistTask{
		{TaskID: "10", Title: "Launch"},
		{TaskID: "2", Title: "Plan"},
		{TaskID: "1.2", Title: "Scope"},
		{TaskID: "1.1", Title: "Name"},
	})

	got := c.Ordered()
	want := []string{"1.1", "1.2", "2", "10"}
	for i, id := range want {
		if got[i].TaskID != id {
			t.Fatalf("position %d: expected %q, got %q (full: %+v)", i, id, got[i].TaskID, got)
		}
	}
}

func TestCollection_InsertRejectsDuplicates(t *testing.T) {
	c := New()
	if err := c.Insert(model.ChecklistTask{TaskID: "1.1", Title: "Name"}); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := c.Insert(model.ChecklistTask{TaskID: "1.1", Title: "Name again"}); err == nil {
		t.Fatalf("expected duplicate id rejection")
	}
	if c.Len() != 1 {
		t.Fatalf("failed insert must not grow the collection")
	}
}

func TestCollection_InsertRejectsComparatorEqualIDs(t *testing.T) {
	c := New()
	if err := c.Insert(model.ChecklistTask{TaskID: "1", Title: "Plan"}); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	// "1.0" is a different string but the same position: missing components
	// compare as 0.
	if err := c.Insert(model.ChecklistTask{TaskID: "1.0", Title: "Plan again"}); err == nil {
		t.Fatalf("expected rejection of comparator-equal id")
	}
	if err := c.Insert(model.ChecklistTask{TaskID: "1.0.0", Title: "Plan again"}); err == nil {
		t.Fatalf("expected rejection of comparator-equal id with two trailing zeros")
	}
	if c.Len() != 1 {
		t.Fatalf("failed inserts must not grow the collection")
	}
	if err := c.Insert(model.ChecklistTask{TaskID: "1.1", Title: "Scope"}); err != nil {
		t.Fatalf("distinct id must still insert: %v", err)
	}
}

func TestCollection_InsertRejectsMalformedIDs(t *testing.T) {
	c := New()
	for _, id := range []string{"", "1..2", "a.b", "-1", "1."} {
		if err := c.Insert(model.ChecklistTask{TaskID: id, Title: "x"}); err == nil {
			t.Fatalf("expected rejection for malformed id %q", id)
		}
	}
}

func TestCollection_FindAndProgress(t *testing.T) {
	c := New()
	c.Load([]model.ChecklistTask{
		{TaskID: "1", Title: "Plan", Completed: true},
		{TaskID: "2", Title: "Build"},
	})
	task, ok := c.Find("1")
	if !ok || !task.Completed {
		t.Fatalf("expected completed task 1, got ok=%v task=%+v", ok, task)
	}
	if _, ok := c.Find("9"); ok {
		t.Fatalf("expected miss for unknown id")
	}
	done, total := c.Progress()
	if done != 1 || total != 2 {
		t.Fatalf("expected 1/2 progress, got %d/%d", done, total)
	}
}
