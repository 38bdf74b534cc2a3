package tui

import (
	"strings"

	"tempo-cli/internal/model"
	"tempo-cli/internal/timeline"

	"github.com/charmbracelet/lipgloss"
)

// modalBodyWidth is the usable content width inside a modal box for a given
// terminal width.
func modalBodyWidth(width int) int {
	w := width - 10
	if w > 70 {
		w = 70
	}
	if w < 20 {
		w = 20
	}
	return w
}

// renderModalBox draws a titled surface panel sized for the terminal. No
// borders: some terminals show background artifacts when nesting bordered
// components inside a panel with a background color.
func renderModalBox(width int, title string, content string) string {
	bodyW := modalBodyWidth(width)

	titleLine := lipgloss.NewStyle().
		Foreground(colorAccentFg).
		Background(colorAccent).
		Bold(true).
		Width(bodyW + 2).
		Padding(0, 1).
		Render(title)

	body := lipgloss.NewStyle().
		Foreground(colorSurfaceFg).
		Background(colorSurfaceBg).
		Width(bodyW + 2).
		Padding(1, 1).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, titleLine, body)
}

func renderConfirmModal(width int, title string, body string, confirmLabel string, cancelLabel string, focus confirmModalFocus) string {
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render(confirmLabel)
	cancel := btnBase.Render(cancelLabel)
	if focus == confirmFocusConfirm {
		confirm = btnActive.Render(confirmLabel)
	}
	if focus == confirmFocusCancel {
		cancel = btnActive.Render(cancelLabel)
	}

	sep := lipgloss.NewStyle().Background(colorSurfaceBg).Render(" ")
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, sep, cancel)

	bodyW := modalBodyWidth(width)
	help := styleMuted().Width(bodyW).Render("tab: focus   enter: select   esc/ctrl+g: cancel")

	content := strings.Join([]string{
		body,
		"",
		controls,
		"",
		help,
	}, "\n")
	return renderModalBox(width, title, content)
}

// renderItemForm draws the shared new/edit action item form.
func (m appModel) renderItemForm() string {
	title := "New action item"
	if m.modal == modalEditItem {
		title = "Edit action item"
	}

	bodyW := modalBodyWidth(m.width)
	label := lipgloss.NewStyle().Foreground(colorSurfaceFg).Bold(true)
	focused := lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	titleLabel := label.Render("Title")
	assigneeLabel := label.Render("Assignee")
	statusLabel := label.Render("Status")
	switch m.formFocus {
	case focusTitle:
		titleLabel = focused.Render("Title")
	case focusAssignee:
		assigneeLabel = focused.Render("Assignee")
	case focusStatus:
		statusLabel = focused.Render("Status")
	}

	statusLine := renderStatusPicker(m.draftStatus, m.formFocus == focusStatus)

	var lines []string
	lines = append(lines,
		titleLabel,
		m.titleInput.View(),
		"",
		assigneeLabel,
		m.assigneeInput.View(),
		"",
		statusLabel,
		statusLine,
	)
	if m.modal == modalNewItem {
		target := "unassigned"
		if m.draftParent != nil {
			if gi := timeline.FindGroup(m.groups, *m.draftParent); gi >= 0 && m.groups[gi].Event != nil {
				target = m.groups[gi].Event.Date + "  " + m.groups[gi].Event.Label
			} else {
				target = *m.draftParent
			}
		}
		lines = append(lines, "", styleMeta().Render("Attach to: "+target))
	}
	lines = append(lines, "",
		styleMuted().Width(bodyW).Render("tab: next field   ←/→: status   enter: save   esc/ctrl+g: cancel"))

	return renderModalBox(m.width, title, strings.Join(lines, "\n"))
}

// renderStatusPicker renders the three status choices with the draft value
// highlighted.
func renderStatusPicker(current model.Status, active bool) string {
	choice := lipgloss.NewStyle().Padding(0, 1).Foreground(colorSurfaceFg).Background(colorControlBg)
	selected := choice.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	if active {
		selected = selected.Foreground(colorAccentFg).Background(colorAccent)
	}

	render := func(s model.Status, lbl string) string {
		if s == current {
			return selected.Render(lbl)
		}
		return choice.Render(lbl)
	}
	sep := lipgloss.NewStyle().Background(colorSurfaceBg).Render(" ")
	return lipgloss.JoinHorizontal(lipgloss.Top,
		render(model.StatusOpen, "open"),
		sep,
		render(model.StatusInProgress, "in progress"),
		sep,
		render(model.StatusCompleted, "completed"),
	)
}

func (m appModel) renderDeleteConfirm() string {
	title := "(deleted item)"
	if it, ok := m.store.Find(m.modalForID); ok {
		title = it.Title
	}
	body := lipgloss.NewStyle().
		Foreground(colorSurfaceFg).
		Width(modalBodyWidth(m.width)).
		Render("Delete \"" + title + "\"? The item is removed once the server confirms.")
	return renderConfirmModal(m.width, "Confirm delete", body, "Delete", "Cancel", m.confirmFocus)
}

// placeCentered positions a rendered panel in the middle of the screen.
func (m appModel) placeCentered(s string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, s)
}
