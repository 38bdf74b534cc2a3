package timeline

import (
	"tempo-cli/internal/model"
)

// Store holds the flat, normalized timeline of one project for the duration
// of a session. It is the single source of truth for rendering; all writes go
// through the mutation coordinator.
//
// The store is owned by the TUI event loop and is not safe for concurrent
// use. Background commands only deliver results as messages; they never touch
// the store directly.
type Store struct {
	items []model.Item

	// summaries caches lazily-fetched event summaries for the session.
	summaries map[string]model.Summary
}

func NewStore() *Store {
	return &Store{summaries: map[string]model.Summary{}}
}

// Replace swaps in a freshly-fetched timeline. Callers only invoke this after
// a successful fetch, so a failed load leaves the previous contents intact.
func (s *Store) Replace(items []model.Item) {
	s.items = make([]model.Item, len(items))
	copy(s.items, items)
}

// Items returns a copy of the current timeline in store order.
func (s *Store) Items() []model.Item {
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int { return len(s.items) }

// Find returns the item with the given id.
func (s *Store) Find(id string) (model.Item, bool) {
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return model.Item{}, false
}

// Apply patches one action item in place. Events are immutable here; applying
// a patch to an event id is a no-op and reports false.
func (s *Store) Apply(id string, p Patch) bool {
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		if !s.items[i].IsAction() {
			return false
		}
		p.applyTo(&s.items[i])
		return true
	}
	return false
}

// Insert appends a new item. The caller is responsible for id uniqueness
// (server-assigned ids for actions, ingestion-assigned for events).
func (s *Store) Insert(it model.Item) {
	s.items = append(s.items, it)
}

// Put replaces the stored item with the same id wholesale, inserting it when
// absent. Used to fold server-derived fields into a confirmed mutation.
func (s *Store) Put(it model.Item) {
	for i := range s.items {
		if s.items[i].ID == it.ID {
			s.items[i] = it
			return
		}
	}
	s.items = append(s.items, it)
}

// Remove deletes the item with the given id.
func (s *Store) Remove(id string) bool {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Summary returns the cached summary for an event, if it was fetched this
// session.
func (s *Store) Summary(eventID string) (model.Summary, bool) {
	sum, ok := s.summaries[eventID]
	return sum, ok
}

// PutSummary caches a fetched event summary for the session.
func (s *Store) PutSummary(sum model.Summary) {
	s.summaries[sum.EventID] = sum
}
