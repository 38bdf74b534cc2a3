package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// compactDelegate renders one row per line, padding to the list width so the
// selection background spans the full row.
type compactDelegate struct {
	normal     lipgloss.Style
	selected   lipgloss.Style
	dropTarget lipgloss.Style
	dragged    lipgloss.Style
}

func newCompactDelegate() compactDelegate {
	return compactDelegate{
		normal:     lipgloss.NewStyle(),
		selected:   lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true),
		dropTarget: lipgloss.NewStyle().Foreground(colorAccentFg).Background(colorAccent).Bold(true),
		dragged:    lipgloss.NewStyle().Foreground(colorAccent).Italic(true),
	}
}

func (d compactDelegate) Height() int                               { return 1 }
func (d compactDelegate) Spacing() int                              { return 0 }
func (d compactDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd   { return nil }

func (d compactDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		fmt.Fprint(w, "")
		return
	}

	style := d.normal
	switch r := item.(type) {
	case headerRow:
		if r.dropTarget {
			style = d.dropTarget
		}
	case actionRow:
		if r.dragged {
			style = d.dragged
		}
	}
	if index == m.Index() {
		style = d.selected
	}

	txt := ""
	if t, ok := item.(interface{ Title() string }); ok {
		txt = t.Title()
	} else {
		txt = fmt.Sprint(item)
	}

	line := txt
	lineW := xansi.StringWidth(line)
	if lineW < contentW {
		line += strings.Repeat(" ", contentW-lineW)
	} else if lineW > contentW {
		line = xansi.Cut(line, 0, contentW)
	}

	fmt.Fprint(w, style.Render(line))
}
