package tui

import (
	"strings"

	"tempo-cli/internal/model"
	"tempo-cli/internal/timeline"

	"github.com/charmbracelet/bubbles/list"
)

// headerRow is one event's group header in the flattened timeline list.
type headerRow struct {
	group      timeline.Group
	groupIdx   int
	dropTarget bool
}

func (r headerRow) FilterValue() string {
	if r.group.Event == nil {
		return "unassigned"
	}
	return r.group.Event.Label
}

func (r headerRow) Title() string {
	if r.group.Event == nil {
		return styleGroupHeader().Render("— Unassigned —")
	}
	ev := r.group.Event
	parts := []string{ev.Date}
	if strings.TrimSpace(ev.Label) != "" {
		parts = append(parts, ev.Label)
	}
	line := strings.Join(parts, "  ")
	if strings.TrimSpace(ev.EventKind) != "" {
		line += "  " + styleMeta().Render("["+ev.EventKind+"]")
	}
	return styleGroupHeader().Render(line)
}

// actionRow is one action item under its resolved group.
type actionRow struct {
	item     model.Item
	groupIdx int
	dragged  bool
	inFlight bool
}

func (r actionRow) FilterValue() string { return r.item.Title }

func (r actionRow) Title() string {
	title := strings.TrimSpace(r.item.Title)
	if title == "" {
		title = "(untitled)"
	}
	line := "  " + statusGlyph(r.item.Status) + " " + title
	if r.item.Assignee != nil && strings.TrimSpace(*r.item.Assignee) != "" {
		line += "  " + styleMeta().Render("@"+*r.item.Assignee)
	}
	if r.inFlight {
		line += "  " + styleMeta().Render("…")
	}
	return line
}

func statusGlyph(s model.Status) string {
	switch s {
	case model.StatusCompleted:
		return styleStatusDone().Render("[x]")
	case model.StatusInProgress:
		return styleStatusDoing().Render("[~]")
	default:
		return styleStatusOpen().Render("[ ]")
	}
}

// checklistRow is one checklist task row.
type checklistRow struct {
	task model.ChecklistTask
}

func (r checklistRow) FilterValue() string { return r.task.Title }

func (r checklistRow) Title() string {
	box := styleStatusOpen().Render("[ ]")
	if r.task.Completed {
		box = styleStatusDone().Render("[x]")
	}
	return r.task.TaskID + "  " + box + " " + r.task.Title
}

func newList(title string) list.Model {
	l := list.New([]list.Item{}, newCompactDelegate(), 0, 0)
	l.Title = title
	// We render our own breadcrumb and footer, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	// Bubble list defaults to quitting on ESC; here ESC is "back/cancel".
	l.KeyMap.Quit.SetKeys("q")
	// Emacs-style navigation aliases.
	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	cursorUpKeys = append(cursorUpKeys, "ctrl+p")
	l.KeyMap.CursorUp.SetKeys(cursorUpKeys...)

	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	cursorDownKeys = append(cursorDownKeys, "ctrl+n")
	l.KeyMap.CursorDown.SetKeys(cursorDownKeys...)
	return l
}
