package session

// Settings are the cross-view toggles of one client session. They are passed
// down explicitly through construction; there is no package-level mutable
// state and nothing ambient to read them from.
type Settings struct {
	// ShowCompleted controls whether completed action items render in the
	// timeline and checklist views.
	ShowCompleted bool

	// Project is the active project id the views operate on.
	Project string
}

// Hub owns the current settings and fans out changes to typed subscribers.
// It lives on the event loop; subscribers are invoked synchronously from
// Update and must not block.
type Hub struct {
	current Settings
	subs    map[int]func(Settings)
	nextID  int
}

func NewHub(initial Settings) *Hub {
	return &Hub{current: initial, subs: map[int]func(Settings){}}
}

// Current returns the settings as of the last Update.
func (h *Hub) Current() Settings { return h.current }

// Update mutates the settings through fn and notifies every subscriber with
// the new value.
func (h *Hub) Update(fn func(*Settings)) {
	fn(&h.current)
	for _, sub := range h.subs {
		sub(h.current)
	}
}

// Subscribe registers a typed listener and returns its cancel function.
// Cancel is idempotent.
func (h *Hub) Subscribe(fn func(Settings)) (cancel func()) {
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	return func() { delete(h.subs, id) }
}
