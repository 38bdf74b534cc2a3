package model

// ItemKind discriminates the two timeline item variants on the wire.
type ItemKind string

const (
	KindEvent  ItemKind = "event"
	KindAction ItemKind = "action"
)

// Status is an action item's workflow status. The server may return values
// outside this set; ordering treats anything unknown as StatusOpen.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Item is one entry of a project timeline: either an immutable Event (a
// meeting or similar dated occurrence) or a mutable Action item optionally
// parented to an event.
//
// The zero fields of the other variant are omitted on the wire; Kind decides
// which fields are meaningful.
type Item struct {
	ID   string   `json:"item_id"`
	Date string   `json:"date"` // YYYY-MM-DD
	Kind ItemKind `json:"item_type"`

	// Event variant.
	EventKind string `json:"event_kind,omitempty"`
	Label     string `json:"label,omitempty"`

	// Action variant. ParentEventID may reference a deleted event; grouping
	// must still place the item (fallback-to-latest), never drop it.
	Title         string  `json:"title,omitempty"`
	Assignee      *string `json:"assignee,omitempty"`
	Status        Status  `json:"status,omitempty"`
	ParentEventID *string `json:"parent_event_id,omitempty"`
	Order         int     `json:"order,omitempty"`
}

// IsEvent reports whether the item is the immutable event variant.
func (it Item) IsEvent() bool { return it.Kind == KindEvent }

// IsAction reports whether the item is the mutable action variant.
func (it Item) IsAction() bool { return it.Kind == KindAction }

// Summary is the lazily-loaded structured digest of one event. Fetched on
// demand and cached for the session only.
type Summary struct {
	EventID      string   `json:"event_id"`
	Overview     string   `json:"overview"`
	Participants []string `json:"participants,omitempty"`
	KeyPoints    []string `json:"key_points,omitempty"`
	Quotes       []string `json:"quotes,omitempty"`
	NextSteps    []string `json:"next_steps,omitempty"`
}

// ChecklistTask is one entry of the project checklist, keyed by a
// hierarchical dot-notation task id (e.g. "3.2.1"). Completed tasks are never
// altered by the server-side sync.
type ChecklistTask struct {
	TaskID    string `json:"task_id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// ActionDraft is the payload for creating a new action item. The server
// assigns the item id and date.
type ActionDraft struct {
	Title         string  `json:"title"`
	Assignee      *string `json:"assignee,omitempty"`
	Status        Status  `json:"status,omitempty"`
	ParentEventID *string `json:"parent_event_id,omitempty"`
}
