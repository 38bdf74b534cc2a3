package timeline

import (
	"sort"

	"tempo-cli/internal/model"
	"tempo-cli/internal/order"
)

// UnassignedKey identifies the synthetic group that holds actions when the
// timeline contains no events at all.
const UnassignedKey = "unassigned"

// Group pairs one event with the actions resolved to it. Event is nil only
// for the synthetic unassigned group.
type Group struct {
	Event   *model.Item
	Actions []model.Item
}

// Key identifies the group as a drop target: the event id, or UnassignedKey
// for the synthetic group.
func (g Group) Key() string {
	if g.Event == nil {
		return UnassignedKey
	}
	return g.Event.ID
}

// Groups projects the flat timeline into its ordered grouped view:
//
//  1. events sorted by date ascending (ties keep store order),
//  2. one group per event in that order,
//  3. actions (sorted by date ascending, independently) resolved to their
//     parent's group; an action whose parent id matches no event falls back
//     to the last group rather than being dropped, and if there are no
//     events at all a single synthetic group collects everything,
//  4. within each group, actions ordered by status (open, in progress,
//     completed), ties keeping their date order.
//
// Pure derived view: the input is never mutated and the result shares no
// slices with it.
func Groups(items []model.Item) []Group {
	var events, actions []model.Item
	for _, it := range items {
		switch {
		case it.IsEvent():
			events = append(events, it)
		case it.IsAction():
			actions = append(actions, it)
		}
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].Date < events[j].Date })
	sort.SliceStable(actions, func(i, j int) bool { return actions[i].Date < actions[j].Date })

	groups := make([]Group, 0, len(events)+1)
	byEventID := make(map[string]int, len(events))
	for i := range events {
		byEventID[events[i].ID] = len(groups)
		groups = append(groups, Group{Event: &events[i]})
	}

	for _, act := range actions {
		idx := -1
		if act.ParentEventID != nil {
			if gi, ok := byEventID[*act.ParentEventID]; ok {
				idx = gi
			}
		}
		if idx < 0 {
			if len(groups) == 0 {
				// No events: everything lands in one synthetic group.
				groups = append(groups, Group{})
			}
			// Stale or missing parent: treat the last (most recent) event's
			// group as the best-known home rather than dropping the action.
			idx = len(groups) - 1
		}
		groups[idx].Actions = append(groups[idx].Actions, act)
	}

	for gi := range groups {
		acts := groups[gi].Actions
		sort.SliceStable(acts, func(i, j int) bool {
			return order.CompareStatus(acts[i].Status, acts[j].Status) < 0
		})
	}
	return groups
}

// GroupOf returns the index of the group an action currently resolves to,
// following the same fallback rules as Groups. Returns -1 when the id does
// not name an action in any group.
func GroupOf(groups []Group, actionID string) int {
	for gi := range groups {
		for _, act := range groups[gi].Actions {
			if act.ID == actionID {
				return gi
			}
		}
	}
	return -1
}

// FindGroup returns the index of the group with the given key, or -1.
func FindGroup(groups []Group, key string) int {
	for gi := range groups {
		if groups[gi].Key() == key {
			return gi
		}
	}
	return -1
}
