package tui

import (
	"tempo-cli/internal/model"
	"tempo-cli/internal/mutate"
)

type view int

const (
	viewTimeline view = iota
	viewSummary
	viewChecklist
)

func viewToString(v view) string {
	switch v {
	case viewSummary:
		return "summary"
	case viewChecklist:
		return "checklist"
	default:
		return "timeline"
	}
}

type modalKind int

const (
	modalNone modalKind = iota
	modalNewItem
	modalEditItem
	modalConfirmDelete
)

type formFocus int

const (
	focusTitle formFocus = iota
	focusAssignee
	focusStatus
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

// Messages delivered back to the event loop by background commands. The
// network round-trips inside these commands are the only suspension points.

type timelineLoadedMsg struct {
	items []model.Item
	err   error
}

type mutationDoneMsg struct {
	out mutate.Outcome
}

type summaryLoadedMsg struct {
	eventID string
	summary model.Summary
	err     error
}

type checklistLoadedMsg struct {
	tasks []model.ChecklistTask
	err   error
}

type checklistSyncedMsg struct {
	err error
}

// bannerClearMsg expires the error banner; seq guards against clearing a
// newer banner with an older timer.
type bannerClearMsg struct{ seq int }
