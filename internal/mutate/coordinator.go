package mutate

import (
	"context"
	"strings"

	"tempo-cli/internal/model"
	"tempo-cli/internal/timeline"
)

// Op names a mutation for errors and the journal.
type Op string

const (
	OpCreate   Op = "create"
	OpEdit     Op = "edit"
	OpDelete   Op = "delete"
	OpStatus   Op = "status"
	OpReassign Op = "reassign"
)

// Mode selects when the store is updated relative to server confirmation.
type Mode int

const (
	// ModeOptimistic applies the patch locally before the server confirms and
	// rolls back (inverse patch) on failure. Used for status changes and
	// drag reassignment.
	ModeOptimistic Mode = iota
	// ModeConfirm issues the request first and only touches the store once
	// the server confirms. Used for form-driven create/edit/delete.
	ModeConfirm
)

// Backend is the server side of the coordinator: the three mutating calls of
// the action-item API, already scoped to one project.
type Backend interface {
	CreateAction(ctx context.Context, draft model.ActionDraft) (model.Item, error)
	UpdateAction(ctx context.Context, id string, patch timeline.Patch) (model.Item, error)
	DeleteAction(ctx context.Context, id string) error
}

// Recorder receives the outcome of every mutation for the local audit
// journal. Implementations must tolerate being called on the event loop.
type Recorder interface {
	Record(op string, itemID string, opErr error)
}

// Coordinator routes every mutation through one of the two modes and
// reconciles server responses with the store. Begin and Finish run on the
// event loop; only Pending.Run happens in the background.
type Coordinator struct {
	store    *timeline.Store
	backend  Backend
	recorder Recorder

	inflight map[string]Op
}

func NewCoordinator(store *timeline.Store, backend Backend, recorder Recorder) *Coordinator {
	return &Coordinator{
		store:    store,
		backend:  backend,
		recorder: recorder,
		inflight: map[string]Op{},
	}
}

// InFlight reports whether the item has an outstanding mutation.
func (c *Coordinator) InFlight(itemID string) bool {
	_, ok := c.inflight[itemID]
	return ok
}

// Pending is one mutation between Begin and Finish. Run executes the server
// round-trip and is the only part that may leave the event loop.
type Pending struct {
	op     Op
	mode   Mode
	itemID string

	forward timeline.Patch
	inverse timeline.Patch

	draft model.ActionDraft
	call  func(ctx context.Context) (model.Item, bool, error)
}

func (p *Pending) Op() Op         { return p.op }
func (p *Pending) ItemID() string { return p.itemID }

// Run performs the server call. Safe to invoke from a background command; it
// touches neither the store nor the coordinator.
func (p *Pending) Run(ctx context.Context) Outcome {
	item, hasItem, err := p.call(ctx)
	return Outcome{pending: p, item: item, hasItem: hasItem, err: err}
}

// Outcome carries a finished server call back to the event loop.
type Outcome struct {
	pending *Pending
	item    model.Item
	hasItem bool
	err     error
}

func (o Outcome) Err() error { return o.err }

// Op reports which mutation finished.
func (o Outcome) Op() Op {
	if o.pending == nil {
		return ""
	}
	return o.pending.op
}

// ItemID reports the mutation's target, empty for create.
func (o Outcome) ItemID() string {
	if o.pending == nil {
		return ""
	}
	return o.pending.itemID
}

// SetStatus begins an optimistic status change.
func (c *Coordinator) SetStatus(itemID string, status model.Status) (*Pending, error) {
	return c.beginOptimistic(OpStatus, itemID, timeline.StatusPatch(status))
}

// Reassign begins an optimistic re-parent with an explicit target order.
func (c *Coordinator) Reassign(itemID string, parent *string, order int) (*Pending, error) {
	return c.beginOptimistic(OpReassign, itemID, timeline.ReassignPatch(parent, order))
}

// ApplyDrop begins the optimistic reassignment a drop decision calls for.
// No-op and rejected decisions return (nil, nil): nothing to run.
func (c *Coordinator) ApplyDrop(dec timeline.DropDecision) (*Pending, error) {
	if dec.Rejected || dec.NoOp {
		return nil, nil
	}
	return c.beginOptimistic(OpReassign, dec.ItemID, dec.Patch)
}

func (c *Coordinator) beginOptimistic(op Op, itemID string, patch timeline.Patch) (*Pending, error) {
	if c.InFlight(itemID) {
		return nil, ErrMutationInFlight
	}
	prev, ok := c.store.Find(itemID)
	if !ok || !prev.IsAction() {
		return nil, NotFoundError{Kind: "action item", ID: itemID}
	}

	p := &Pending{
		op:      op,
		mode:    ModeOptimistic,
		itemID:  itemID,
		forward: patch,
		inverse: patch.Inverse(prev),
		call: func(ctx context.Context) (model.Item, bool, error) {
			it, err := c.backend.UpdateAction(ctx, itemID, patch)
			return it, err == nil && it.ID != "", err
		},
	}
	c.store.Apply(itemID, patch)
	c.inflight[itemID] = op
	return p, nil
}

// Create begins a confirm-then-apply creation. Validation failures surface
// before any network call so the form can stay open for correction.
func (c *Coordinator) Create(draft model.ActionDraft) (*Pending, error) {
	if err := ValidateDraft(draft); err != nil {
		return nil, err
	}
	return &Pending{
		op:    OpCreate,
		mode:  ModeConfirm,
		draft: draft,
		call: func(ctx context.Context) (model.Item, bool, error) {
			it, err := c.backend.CreateAction(ctx, draft)
			return it, err == nil && it.ID != "", err
		},
	}, nil
}

// Edit begins a confirm-then-apply field edit from a form submission.
func (c *Coordinator) Edit(itemID string, patch timeline.Patch) (*Pending, error) {
	if c.InFlight(itemID) {
		return nil, ErrMutationInFlight
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, ValidationError{Field: "title", Reason: "must not be empty"}
	}
	prev, ok := c.store.Find(itemID)
	if !ok || !prev.IsAction() {
		return nil, NotFoundError{Kind: "action item", ID: itemID}
	}
	p := &Pending{
		op:      OpEdit,
		mode:    ModeConfirm,
		itemID:  itemID,
		forward: patch,
		call: func(ctx context.Context) (model.Item, bool, error) {
			it, err := c.backend.UpdateAction(ctx, itemID, patch)
			return it, err == nil && it.ID != "", err
		},
	}
	c.inflight[itemID] = OpEdit
	return p, nil
}

// Delete begins a confirm-then-apply removal. The item stays visible until
// the server confirms.
func (c *Coordinator) Delete(itemID string) (*Pending, error) {
	if c.InFlight(itemID) {
		return nil, ErrMutationInFlight
	}
	prev, ok := c.store.Find(itemID)
	if !ok || !prev.IsAction() {
		return nil, NotFoundError{Kind: "action item", ID: itemID}
	}
	p := &Pending{
		op:     OpDelete,
		mode:   ModeConfirm,
		itemID: itemID,
		call: func(ctx context.Context) (model.Item, bool, error) {
			return model.Item{}, false, c.backend.DeleteAction(ctx, itemID)
		},
	}
	c.inflight[itemID] = OpDelete
	return p, nil
}

// Finish reconciles a completed server call with the store. Must run on the
// event loop. reload reports that the caller should fall back to a full
// timeline refetch because the targeted rollback could not be applied.
func (c *Coordinator) Finish(out Outcome) (reload bool, err error) {
	p := out.pending
	if p == nil {
		return false, nil
	}
	if p.itemID != "" {
		delete(c.inflight, p.itemID)
	}
	c.record(p.op, p.itemID, out.err)

	if out.err != nil {
		if p.mode == ModeOptimistic {
			// Roll back exactly the affected item. If it vanished underneath
			// us the inverse has no target; only then refetch everything.
			if !c.store.Apply(p.itemID, p.inverse) {
				reload = true
			}
		}
		return reload, MutationError{Op: p.op, ItemID: p.itemID, Err: out.err}
	}

	switch p.op {
	case OpCreate:
		if out.hasItem {
			c.store.Insert(out.item)
		} else {
			// Server confirmed but returned no body; only a refetch can pick
			// up the assigned id.
			reload = true
		}
	case OpDelete:
		c.store.Remove(p.itemID)
	case OpEdit:
		// Confirm-then-apply: the store sees the change only now.
		if out.hasItem {
			c.store.Put(out.item)
		} else {
			c.store.Apply(p.itemID, p.forward)
		}
	default:
		// The optimistic state already matches; fold in server-derived
		// fields when the response includes the item.
		if out.hasItem {
			c.store.Put(out.item)
		}
	}
	return reload, nil
}

func (c *Coordinator) record(op Op, itemID string, opErr error) {
	if c.recorder == nil {
		return
	}
	c.recorder.Record(string(op), itemID, opErr)
}

// ValidateDraft applies the client-side checks that block submission before
// any server round-trip.
func ValidateDraft(d model.ActionDraft) error {
	if strings.TrimSpace(d.Title) == "" {
		return ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if d.Status != "" {
		switch d.Status {
		case model.StatusOpen, model.StatusInProgress, model.StatusCompleted:
		default:
			return ValidationError{Field: "status", Reason: "unknown status " + string(d.Status)}
		}
	}
	return nil
}
