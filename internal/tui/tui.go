package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive timeline for one project and blocks until the
// user quits.
func Run(opts Options) error {
	applyColorProfilePreference()
	m := newAppModel(opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(
		loadTimelineCmd(m.opts.Client, m.opts.Project),
		loadChecklistCmd(m.opts.Client, m.opts.Project),
	)
}
