package tui

import (
	"context"
	"time"

	"tempo-cli/internal/api"
	"tempo-cli/internal/mutate"

	tea "github.com/charmbracelet/bubbletea"
)

const requestTimeout = 30 * time.Second

// loadTimelineCmd fetches the full timeline snapshot. The store is only
// replaced back on the event loop (timelineLoadedMsg), so a failure leaves
// the previous view intact.
func loadTimelineCmd(client *api.Client, project string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		items, err := client.Timeline(ctx, project)
		return timelineLoadedMsg{items: items, err: err}
	}
}

// runPendingCmd executes one mutation's server round-trip. Reconciliation
// happens in Finish when the mutationDoneMsg arrives.
func runPendingCmd(p *mutate.Pending) tea.Cmd {
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return mutationDoneMsg{out: p.Run(ctx)}
	}
}

func loadSummaryCmd(client *api.Client, project, eventID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		sum, err := client.EventSummary(ctx, project, eventID)
		return summaryLoadedMsg{eventID: eventID, summary: sum, err: err}
	}
}

func loadChecklistCmd(client *api.Client, project string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		tasks, err := client.Checklist(ctx, project)
		return checklistLoadedMsg{tasks: tasks, err: err}
	}
}

func syncChecklistCmd(client *api.Client, project string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return checklistSyncedMsg{err: client.SyncChecklist(ctx, project)}
	}
}

func bannerClearCmd(seq int) tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg { return bannerClearMsg{seq: seq} })
}
