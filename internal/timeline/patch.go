package timeline

import (
	"tempo-cli/internal/model"
)

// Patch is a partial update of one action item's mutable fields. Nil pointer
// fields are left untouched. Parent and assignee need a tri-state (leave /
// set / clear), hence the explicit Set flags.
type Patch struct {
	Title  *string
	Status *model.Status
	Order  *int

	SetAssignee bool
	Assignee    *string // nil with SetAssignee clears the assignee

	SetParent bool
	Parent    *string // nil with SetParent detaches from any event
}

// IsZero reports whether the patch changes nothing.
func (p Patch) IsZero() bool {
	return p.Title == nil && p.Status == nil && p.Order == nil && !p.SetAssignee && !p.SetParent
}

func (p Patch) applyTo(it *model.Item) {
	if p.Title != nil {
		it.Title = *p.Title
	}
	if p.Status != nil {
		it.Status = *p.Status
	}
	if p.Order != nil {
		it.Order = *p.Order
	}
	if p.SetAssignee {
		it.Assignee = clonePtr(p.Assignee)
	}
	if p.SetParent {
		it.ParentEventID = clonePtr(p.Parent)
	}
}

// Inverse captures the patch that undoes p when applied to prev. Recording it
// before the optimistic apply lets a failed mutation restore exactly the
// affected item instead of refetching the whole timeline.
func (p Patch) Inverse(prev model.Item) Patch {
	var inv Patch
	if p.Title != nil {
		t := prev.Title
		inv.Title = &t
	}
	if p.Status != nil {
		st := prev.Status
		inv.Status = &st
	}
	if p.Order != nil {
		o := prev.Order
		inv.Order = &o
	}
	if p.SetAssignee {
		inv.SetAssignee = true
		inv.Assignee = clonePtr(prev.Assignee)
	}
	if p.SetParent {
		inv.SetParent = true
		inv.Parent = clonePtr(prev.ParentEventID)
	}
	return inv
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// StatusPatch is a convenience constructor for the common status-only change.
func StatusPatch(st model.Status) Patch {
	return Patch{Status: &st}
}

// ReassignPatch builds the patch for moving an action under a new parent
// bucket at the given position.
func ReassignPatch(parent *string, order int) Patch {
	return Patch{SetParent: true, Parent: clonePtr(parent), Order: &order}
}
