package tui

import (
	"strconv"
	"strings"

	"tempo-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.modal != modalNone {
		switch m.modal {
		case modalConfirmDelete:
			return m.placeCentered(m.renderDeleteConfirm())
		default:
			return m.placeCentered(m.renderItemForm())
		}
	}

	var content string
	switch m.view {
	case viewSummary:
		content = m.renderSummary()
	case viewChecklist:
		content = m.checklistList.View()
	default:
		content = m.itemsList.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderBreadcrumb(),
		content,
		m.renderStatusLine(),
		m.renderFooter(),
	)
}

func (m appModel) renderBreadcrumb() string {
	parts := []string{m.opts.Project}
	switch m.view {
	case viewSummary:
		label := m.openEventID
		if ev, ok := m.store.Find(m.openEventID); ok && strings.TrimSpace(ev.Label) != "" {
			label = ev.Label
		}
		parts = append(parts, "timeline", label)
	case viewChecklist:
		parts = append(parts, "checklist")
	default:
		parts = append(parts, "timeline")
	}
	crumb := styleGroupHeader().Render(strings.Join(parts, " › "))
	if m.loading {
		crumb += "  " + styleMuted().Render("loading…")
	}
	if !m.hub.Current().ShowCompleted {
		crumb += "  " + styleMuted().Render("(completed hidden)")
	}
	return crumb
}

// renderStatusLine shows the error banner when set, otherwise the transient
// minibuffer note.
func (m appModel) renderStatusLine() string {
	if m.banner != "" {
		return styleBanner().MaxWidth(m.width).Render(m.banner)
	}
	if m.minibuffer != "" {
		return styleMinibuffer().MaxWidth(m.width).Render(m.minibuffer)
	}
	return ""
}

func (m appModel) renderFooter() string {
	var help string
	switch {
	case m.drag.Dragging():
		help = "j/k: pick group   enter: drop   esc: cancel"
	case m.view == viewSummary:
		help = "esc: back   q: quit"
	case m.view == viewChecklist:
		completed, total := m.checklist.Progress()
		help = checklistProgressLabel(completed, total) +
			"   S: sync   tab: timeline   r: reload   q: quit"
	default:
		help = "enter: summary   c: status   n/e/d: new/edit/delete   space: move   tab: checklist   C: completed   r: reload   q: quit"
	}
	return styleMuted().MaxWidth(m.width).Render(help)
}

func checklistProgressLabel(completed, total int) string {
	return strconv.Itoa(completed) + "/" + strconv.Itoa(total) + " done"
}

func (m appModel) renderSummary() string {
	sum, ok := m.store.Summary(m.openEventID)
	if !ok {
		return styleMuted().Render("No summary for this event.")
	}
	return renderMarkdown(summaryMarkdown(sum), m.width)
}

// summaryMarkdown flattens a structured event summary into the markdown we
// hand to glamour.
func summaryMarkdown(sum model.Summary) string {
	var b strings.Builder
	b.WriteString("# Summary\n\n")
	if strings.TrimSpace(sum.Overview) != "" {
		b.WriteString(sum.Overview)
		b.WriteString("\n\n")
	}
	writeSection := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		b.WriteString("## " + title + "\n\n")
		for _, it := range items {
			b.WriteString("- " + it + "\n")
		}
		b.WriteString("\n")
	}
	writeSection("Participants", sum.Participants)
	writeSection("Key points", sum.KeyPoints)
	if len(sum.Quotes) > 0 {
		b.WriteString("## Quotes\n\n")
		for _, q := range sum.Quotes {
			b.WriteString("> " + q + "\n\n")
		}
	}
	writeSection("Next steps", sum.NextSteps)
	return strings.TrimRight(b.String(), "\n") + "\n"
}
