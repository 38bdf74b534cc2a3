package timeline

// Drag is the reassignment gesture state machine: idle → dragging → drop or
// cancel. It only decides what mutation (if any) a drop implies; issuing the
// mutation is the coordinator's job.
type Drag struct {
	itemID string
}

// Dragging reports whether a drag is in progress.
func (d *Drag) Dragging() bool { return d.itemID != "" }

// ItemID returns the id of the action being dragged, or "".
func (d *Drag) ItemID() string { return d.itemID }

// Begin starts dragging the given action. Starting a new drag while one is
// active replaces it (the previous gesture is abandoned, no mutation issued).
func (d *Drag) Begin(actionID string) {
	d.itemID = actionID
}

// Cancel abandons the drag without a mutation.
func (d *Drag) Cancel() {
	d.itemID = ""
}

// Drop resolves the gesture against the current grouped view. The returned
// decision is one of:
//
//   - rejected: no drag in progress, the target key names no known group, or
//     the dragged id no longer resolves to any group;
//   - no-op: the target is the item's current resolved group;
//   - reassign: Patch carries the new parent and an append-to-end order.
//
// In every case the machine returns to idle.
func (d *Drag) Drop(groups []Group, targetKey string) DropDecision {
	itemID := d.itemID
	d.itemID = ""
	if itemID == "" {
		return DropDecision{Rejected: true}
	}

	ti := FindGroup(groups, targetKey)
	if ti < 0 {
		return DropDecision{Rejected: true}
	}
	ci := GroupOf(groups, itemID)
	if ci < 0 {
		return DropDecision{Rejected: true}
	}
	if ci == ti {
		return DropDecision{NoOp: true}
	}

	target := groups[ti]
	var parent *string
	if target.Event != nil {
		id := target.Event.ID
		parent = &id
	}
	return DropDecision{
		ItemID: itemID,
		Patch:  ReassignPatch(parent, len(target.Actions)),
	}
}

// DropDecision is the outcome of a drop gesture.
type DropDecision struct {
	Rejected bool
	NoOp     bool

	// Set only for a real reassignment.
	ItemID string
	Patch  Patch
}
