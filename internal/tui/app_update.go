package tui

import (
	"strings"

	"tempo-cli/internal/model"
	"tempo-cli/internal/mutate"
	"tempo-cli/internal/session"
	"tempo-cli/internal/timeline"

	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case timelineLoadedMsg:
		m.loading = false
		if msg.err != nil {
			// Previous store contents stay untouched; just surface the banner.
			m.showBanner("Load failed: " + msg.err.Error())
			return m, bannerClearCmd(m.bannerSeq)
		}
		m.store.Replace(msg.items)
		m.refreshRows()
		return m, nil

	case mutationDoneMsg:
		return m.finishMutation(msg.out)

	case summaryLoadedMsg:
		if msg.err != nil {
			m.showBanner("Summary failed: " + msg.err.Error())
			return m, bannerClearCmd(m.bannerSeq)
		}
		m.store.PutSummary(msg.summary)
		m.openEventID = msg.eventID
		m.view = viewSummary
		return m, nil

	case checklistLoadedMsg:
		if msg.err != nil {
			m.showBanner("Checklist failed: " + msg.err.Error())
			return m, bannerClearCmd(m.bannerSeq)
		}
		m.checklist.Load(msg.tasks)
		m.refreshChecklistRows()
		return m, nil

	case checklistSyncedMsg:
		if msg.err != nil {
			m.showBanner("Sync failed: " + msg.err.Error())
			return m, bannerClearCmd(m.bannerSeq)
		}
		m.minibuffer = "Checklist synced"
		// The merge ran server-side; re-pull to see its result.
		return m, loadChecklistCmd(m.opts.Client, m.opts.Project)

	case bannerClearMsg:
		if msg.seq == m.bannerSeq {
			m.clearBanner()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.routeToList(msg)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal != modalNone {
		return m.updateModal(msg)
	}

	// While a drag is active, the only live keys are target selection,
	// drop, and cancel.
	if m.drag.Dragging() {
		return m.updateDrag(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		if m.itemsList.SettingFilter() {
			break
		}
		m.persistState()
		return m, tea.Quit

	case "r":
		if m.filterActive() {
			break
		}
		m.loading = true
		cmds := []tea.Cmd{loadTimelineCmd(m.opts.Client, m.opts.Project)}
		if m.view == viewChecklist {
			cmds = append(cmds, loadChecklistCmd(m.opts.Client, m.opts.Project))
		}
		return m, tea.Batch(cmds...)

	case "tab":
		if m.filterActive() {
			break
		}
		if m.view == viewChecklist {
			m.view = viewTimeline
			return m, nil
		}
		m.view = viewChecklist
		return m, loadChecklistCmd(m.opts.Client, m.opts.Project)

	case "C":
		if m.filterActive() {
			break
		}
		m.hub.Update(func(s *session.Settings) { s.ShowCompleted = !s.ShowCompleted })
		m.refreshRows()
		m.refreshChecklistRows()
		return m, nil

	case "esc":
		if m.view == viewSummary || m.view == viewChecklist {
			m.view = viewTimeline
			return m, nil
		}
	}

	switch m.view {
	case viewTimeline:
		return m.updateTimelineKeys(msg)
	case viewChecklist:
		return m.updateChecklistKeys(msg)
	case viewSummary:
		// Everything except esc (handled above) is inert on the summary page.
		return m, nil
	}
	return m.routeToList(msg)
}

func (m appModel) updateTimelineKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.itemsList.SettingFilter() {
		return m.routeToList(msg)
	}

	switch msg.String() {
	case "enter", "s":
		if ev, ok := m.selectedEvent(); ok {
			if sum, cached := m.store.Summary(ev.ID); cached {
				m.openEventID = sum.EventID
				m.view = viewSummary
				return m, nil
			}
			// Fetched once, cached for the session.
			return m, loadSummaryCmd(m.opts.Client, m.opts.Project, ev.ID)
		}

	case "c":
		if it, ok := m.selectedAction(); ok {
			return m.issue(m.coord.SetStatus(it.ID, nextStatus(it.Status)))
		}

	case "n":
		m.openNewItemModal()
		return m, m.titleInput.Focus()

	case "e":
		if it, ok := m.selectedAction(); ok {
			if m.editingItemID != "" && m.editingItemID != it.ID {
				// Single shared edit lock across the whole timeline.
				m.showBanner("Another item is already being edited")
				return m, bannerClearCmd(m.bannerSeq)
			}
			m.openEditItemModal(it)
			return m, m.titleInput.Focus()
		}

	case "d":
		if it, ok := m.selectedAction(); ok {
			m.modal = modalConfirmDelete
			m.modalForID = it.ID
			m.confirmFocus = confirmFocusCancel
			return m, nil
		}

	case " ", "m":
		if it, ok := m.selectedAction(); ok {
			if m.coord.InFlight(it.ID) {
				m.showBanner("Mutation already in flight for this item")
				return m, bannerClearCmd(m.bannerSeq)
			}
			m.drag.Begin(it.ID)
			m.dropTarget = timeline.GroupOf(m.groups, it.ID)
			m.refreshRows()
			return m, nil
		}
	}

	return m.routeToList(msg)
}

func (m appModel) updateDrag(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.dropTarget < len(m.groups)-1 {
			m.dropTarget++
			m.refreshRows()
		}
		return m, nil

	case "k", "up":
		if m.dropTarget > 0 {
			m.dropTarget--
			m.refreshRows()
		}
		return m, nil

	case "enter":
		targetKey := ""
		if m.dropTarget >= 0 && m.dropTarget < len(m.groups) {
			targetKey = m.groups[m.dropTarget].Key()
		}
		dec := m.drag.Drop(m.groups, targetKey)
		m.refreshRows()
		if dec.Rejected {
			m.showBanner("Drop target is not a known group")
			return m, bannerClearCmd(m.bannerSeq)
		}
		if dec.NoOp {
			return m, nil
		}
		return m.issue(m.coord.ApplyDrop(dec))

	case "esc", "ctrl+c", "q":
		m.drag.Cancel()
		m.refreshRows()
		return m, nil
	}
	return m, nil
}

func (m appModel) updateChecklistKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.checklistList.SettingFilter() {
		return m.routeToList(msg)
	}
	switch msg.String() {
	case "S":
		m.minibuffer = "Syncing checklist…"
		return m, syncChecklistCmd(m.opts.Client, m.opts.Project)
	}
	return m.routeToList(msg)
}

// issue starts a freshly begun mutation's background call and surfaces any
// begin-time rejection (validation, not-found, in-flight guard).
func (m appModel) issue(p *mutate.Pending, err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.showBanner(err.Error())
		return m, bannerClearCmd(m.bannerSeq)
	}
	if p == nil {
		return m, nil
	}
	m.refreshRows()
	return m, runPendingCmd(p)
}

func (m appModel) finishMutation(out mutate.Outcome) (tea.Model, tea.Cmd) {
	reload, err := m.coord.Finish(out)
	m.refreshRows()

	var cmds []tea.Cmd
	if reload {
		m.loading = true
		cmds = append(cmds, loadTimelineCmd(m.opts.Client, m.opts.Project))
	}
	if err != nil {
		m.showBanner(err.Error())
		cmds = append(cmds, bannerClearCmd(m.bannerSeq))
		// Confirm-mode forms stay open for correction; the optimistic ops
		// have already been rolled back by Finish.
		return m, tea.Batch(cmds...)
	}

	switch out.Op() {
	case mutate.OpCreate:
		m.closeModal()
		m.minibuffer = "Created"
	case mutate.OpEdit:
		m.closeModal()
		m.editingItemID = ""
		m.minibuffer = "Saved"
	case mutate.OpDelete:
		m.minibuffer = "Deleted"
	}
	return m, tea.Batch(cmds...)
}

func nextStatus(s model.Status) model.Status {
	switch s {
	case model.StatusOpen:
		return model.StatusInProgress
	case model.StatusInProgress:
		return model.StatusCompleted
	default:
		return model.StatusOpen
	}
}

func (m *appModel) filterActive() bool {
	return m.itemsList.SettingFilter() || m.checklistList.SettingFilter()
}

func (m appModel) routeToList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case viewChecklist:
		m.checklistList, cmd = m.checklistList.Update(msg)
	default:
		m.itemsList, cmd = m.itemsList.Update(msg)
	}
	return m, cmd
}

func (m *appModel) openNewItemModal() {
	m.modal = modalNewItem
	m.modalForID = ""
	m.formFocus = focusTitle
	m.titleInput.SetValue("")
	m.assigneeInput.SetValue("")
	m.draftStatus = model.StatusOpen
	m.draftParent = nil
	// New items attach to the group under the cursor.
	if key := m.selectedGroupKey(); key != "" && key != timeline.UnassignedKey {
		k := key
		m.draftParent = &k
	}
	m.assigneeInput.Blur()
}

func (m *appModel) openEditItemModal(it model.Item) {
	m.modal = modalEditItem
	m.modalForID = it.ID
	m.editingItemID = it.ID
	m.formFocus = focusTitle
	m.titleInput.SetValue(it.Title)
	if it.Assignee != nil {
		m.assigneeInput.SetValue(*it.Assignee)
	} else {
		m.assigneeInput.SetValue("")
	}
	m.draftStatus = it.Status
	m.assigneeInput.Blur()
}

func (m *appModel) closeModal() {
	m.modal = modalNone
	m.modalForID = ""
	m.titleInput.Blur()
	m.assigneeInput.Blur()
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal == modalConfirmDelete {
		return m.updateConfirmDelete(msg)
	}

	switch msg.String() {
	case "esc", "ctrl+g":
		m.closeModal()
		m.editingItemID = ""
		return m, nil

	case "tab", "shift+tab":
		m.formFocus = nextFormFocus(m.formFocus, msg.String() == "shift+tab")
		m.titleInput.Blur()
		m.assigneeInput.Blur()
		switch m.formFocus {
		case focusTitle:
			return m, m.titleInput.Focus()
		case focusAssignee:
			return m, m.assigneeInput.Focus()
		}
		return m, nil

	case "left", "right":
		if m.formFocus == focusStatus {
			if msg.String() == "left" {
				m.draftStatus = prevStatus(m.draftStatus)
			} else {
				m.draftStatus = nextStatus(m.draftStatus)
			}
			return m, nil
		}

	case "enter":
		return m.submitForm()
	}

	var cmd tea.Cmd
	switch m.formFocus {
	case focusTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case focusAssignee:
		m.assigneeInput, cmd = m.assigneeInput.Update(msg)
	}
	return m, cmd
}

func (m appModel) submitForm() (tea.Model, tea.Cmd) {
	title := strings.TrimSpace(m.titleInput.Value())
	assignee := strings.TrimSpace(m.assigneeInput.Value())

	if m.modal == modalNewItem {
		draft := model.ActionDraft{Title: title, Status: m.draftStatus, ParentEventID: m.draftParent}
		if assignee != "" {
			draft.Assignee = &assignee
		}
		p, err := m.coord.Create(draft)
		if err != nil {
			// Validation failure: no network call happened, form stays open.
			m.showBanner(err.Error())
			return m, bannerClearCmd(m.bannerSeq)
		}
		return m, runPendingCmd(p)
	}

	patch := timeline.Patch{Title: &title, Status: &m.draftStatus, SetAssignee: true}
	if assignee != "" {
		patch.Assignee = &assignee
	}
	p, err := m.coord.Edit(m.modalForID, patch)
	if err != nil {
		m.showBanner(err.Error())
		return m, bannerClearCmd(m.bannerSeq)
	}
	return m, runPendingCmd(p)
}

func (m appModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g", "n":
		m.closeModal()
		return m, nil
	case "tab", "left", "right":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "y":
		m.confirmFocus = confirmFocusConfirm
		return m.confirmDelete()
	case "enter":
		if m.confirmFocus == confirmFocusConfirm {
			return m.confirmDelete()
		}
		m.closeModal()
		return m, nil
	}
	return m, nil
}

func (m appModel) confirmDelete() (tea.Model, tea.Cmd) {
	id := m.modalForID
	m.closeModal()
	// Confirm-then-apply: the item stays visible until the server confirms;
	// a failure surfaces a banner and leaves it untouched.
	return m.issue(m.coord.Delete(id))
}

func nextFormFocus(f formFocus, backwards bool) formFocus {
	if backwards {
		switch f {
		case focusTitle:
			return focusStatus
		case focusAssignee:
			return focusTitle
		default:
			return focusAssignee
		}
	}
	switch f {
	case focusTitle:
		return focusAssignee
	case focusAssignee:
		return focusStatus
	default:
		return focusTitle
	}
}

func prevStatus(s model.Status) model.Status {
	switch s {
	case model.StatusCompleted:
		return model.StatusInProgress
	case model.StatusInProgress:
		return model.StatusOpen
	default:
		return model.StatusCompleted
	}
}
