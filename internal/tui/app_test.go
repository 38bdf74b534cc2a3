package tui

import (
	"strings"
	"testing"

	"tempo-cli/internal/model"
	"tempo-cli/internal/session"
	"tempo-cli/internal/store"
	"tempo-cli/internal/timeline"

	tea "github.com/charmbracelet/bubbletea"
)

func strptr(s string) *string { return &s }

func fixtureItems() []model.Item {
	return []model.Item{
		{ID: "m1", Date: "2026-01-05", Kind: model.KindEvent, EventKind: "meeting", Label: "Kickoff"},
		{ID: "m2", Date: "2026-01-12", Kind: model.KindEvent, EventKind: "meeting", Label: "Retro"},
		{ID: "a1", Date: "2026-01-05", Kind: model.KindAction, Title: "Write notes", Status: model.StatusCompleted, ParentEventID: strptr("m1")},
		{ID: "a2", Date: "2026-01-06", Kind: model.KindAction, Title: "File ticket", Status: model.StatusOpen, ParentEventID: strptr("m1")},
	}
}

func testModel(t *testing.T) appModel {
	t.Helper()
	t.Setenv("TEMPO_CONFIG_DIR", t.TempDir())

	m := newAppModel(Options{Project: "acme"})
	m.width, m.height = 100, 30
	m.resizeLists()
	m.store.Replace(fixtureItems())
	m.refreshRows()
	return m
}

func press(t *testing.T, m appModel, keys ...string) (appModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace}
		}
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(appModel)
	}
	return m, cmd
}

func selectRow(t *testing.T, m *appModel, id string) {
	t.Helper()
	for i, row := range m.itemsList.Items() {
		if r, ok := row.(actionRow); ok && r.item.ID == id {
			m.itemsList.Select(i)
			return
		}
		if r, ok := row.(headerRow); ok && r.group.Key() == id {
			m.itemsList.Select(i)
			return
		}
	}
	t.Fatalf("no list row for %q", id)
}

func TestRefreshRows_HidesCompletedWhenToggledOff(t *testing.T) {
	m := testModel(t)

	countActions := func() int {
		n := 0
		for _, row := range m.itemsList.Items() {
			if _, ok := row.(actionRow); ok {
				n++
			}
		}
		return n
	}
	if got := countActions(); got != 2 {
		t.Fatalf("expected 2 action rows with completed shown; got %d", got)
	}

	m.hub.Update(func(s *session.Settings) { s.ShowCompleted = false })
	m.refreshRows()
	if got := countActions(); got != 1 {
		t.Fatalf("expected 1 action row with completed hidden; got %d", got)
	}
}

func TestDragKeys_MoveActionToOtherGroup(t *testing.T) {
	m := testModel(t)
	selectRow(t, &m, "a2")

	m, _ = press(t, m, " ")
	if !m.drag.Dragging() {
		t.Fatalf("expected drag to start on space")
	}
	if m.dropTarget != 0 {
		t.Fatalf("expected drop target to start at the item's group; got %d", m.dropTarget)
	}

	m, _ = press(t, m, "j")
	if m.dropTarget != 1 {
		t.Fatalf("expected drop target 1 after j; got %d", m.dropTarget)
	}

	m, cmd := press(t, m, "enter")
	if m.drag.Dragging() {
		t.Fatalf("expected drag to end on drop")
	}
	if cmd == nil {
		t.Fatalf("expected a mutation command from the drop")
	}

	// Optimistic: the reassignment is visible before the server confirms.
	it, ok := m.store.Find("a2")
	if !ok {
		t.Fatalf("a2 missing after drop")
	}
	if it.ParentEventID == nil || *it.ParentEventID != "m2" {
		t.Fatalf("expected a2 reparented to m2; got %v", it.ParentEventID)
	}
}

func TestDragKeys_DropOnOwnGroupIsNoOp(t *testing.T) {
	m := testModel(t)
	selectRow(t, &m, "a2")

	m, _ = press(t, m, " ")
	m, cmd := press(t, m, "enter")
	if cmd != nil {
		t.Fatalf("expected no mutation command for a same-group drop")
	}
	it, _ := m.store.Find("a2")
	if it.ParentEventID == nil || *it.ParentEventID != "m1" {
		t.Fatalf("expected a2 untouched; got parent %v", it.ParentEventID)
	}
}

func TestDragKeys_EscCancels(t *testing.T) {
	m := testModel(t)
	selectRow(t, &m, "a2")

	m, _ = press(t, m, " ", "j", "esc")
	if m.drag.Dragging() {
		t.Fatalf("expected esc to cancel the drag")
	}
	it, _ := m.store.Find("a2")
	if it.ParentEventID == nil || *it.ParentEventID != "m1" {
		t.Fatalf("expected a2 untouched after cancel; got parent %v", it.ParentEventID)
	}
}

func TestStatusKey_RejectsSecondMutationInFlight(t *testing.T) {
	m := testModel(t)
	selectRow(t, &m, "a2")

	m, cmd := press(t, m, "c")
	if cmd == nil {
		t.Fatalf("expected a mutation command from c")
	}
	it, _ := m.store.Find("a2")
	if it.Status != model.StatusInProgress {
		t.Fatalf("expected optimistic status in_progress; got %q", it.Status)
	}

	// Same item again, before the first round-trip finishes.
	m, _ = press(t, m, "c")
	if m.banner == "" {
		t.Fatalf("expected in-flight banner on second mutation")
	}
	it, _ = m.store.Find("a2")
	if it.Status != model.StatusInProgress {
		t.Fatalf("expected status unchanged while in flight; got %q", it.Status)
	}
}

func TestEditKey_SecondEditLockRejected(t *testing.T) {
	m := testModel(t)
	selectRow(t, &m, "a1")

	m, _ = press(t, m, "e")
	if m.modal != modalEditItem || m.editingItemID != "a1" {
		t.Fatalf("expected edit modal holding the lock for a1; modal=%v lock=%q", m.modal, m.editingItemID)
	}

	// Leave the modal open state but simulate the lock persisting while a
	// second edit is attempted on another item.
	m.modal = modalNone
	selectRow(t, &m, "a2")
	m, _ = press(t, m, "e")
	if m.modal != modalNone {
		t.Fatalf("expected second edit to be rejected while lock held")
	}
	if m.banner == "" {
		t.Fatalf("expected banner for held edit lock")
	}
}

func TestNewItemModal_AttachesToSelectedGroup(t *testing.T) {
	m := testModel(t)
	selectRow(t, &m, "m2")

	m, _ = press(t, m, "n")
	if m.modal != modalNewItem {
		t.Fatalf("expected new item modal")
	}
	if m.draftParent == nil || *m.draftParent != "m2" {
		t.Fatalf("expected draft parented to m2; got %v", m.draftParent)
	}
}

func TestRestoreState_ChecklistViewAndShowCompleted(t *testing.T) {
	t.Setenv("TEMPO_CONFIG_DIR", t.TempDir())

	show := false
	if err := store.SaveTUIState(&store.TUIState{Version: 1, View: "checklist", ShowCompleted: &show}); err != nil {
		t.Fatalf("seed SaveTUIState: %v", err)
	}

	m := newAppModel(Options{Project: "acme"})
	if m.view != viewChecklist {
		t.Fatalf("expected checklist view restored; got %v", m.view)
	}
	if m.hub.Current().ShowCompleted {
		t.Fatalf("expected ShowCompleted restored to false")
	}
}

func TestTimelineLoadFailure_KeepsPreviousItems(t *testing.T) {
	m := testModel(t)

	next, _ := m.Update(timelineLoadedMsg{err: errFake("boom")})
	m = next.(appModel)
	if m.store.Len() != 4 {
		t.Fatalf("expected previous items kept on load failure; got %d", m.store.Len())
	}
	if !strings.Contains(m.banner, "boom") {
		t.Fatalf("expected failure banner; got %q", m.banner)
	}
}

func TestSummaryMarkdown_Sections(t *testing.T) {
	md := summaryMarkdown(model.Summary{
		EventID:      "m1",
		Overview:     "Kickoff sync.",
		Participants: []string{"ada", "lin"},
		KeyPoints:    []string{"Scope agreed"},
		Quotes:       []string{"Ship it"},
		NextSteps:    []string{"Draft plan"},
	})
	for _, want := range []string{"# Summary", "Kickoff sync.", "## Participants", "- ada", "## Key points", "> Ship it", "## Next steps"} {
		if !strings.Contains(md, want) {
			t.Fatalf("summary markdown missing %q:\n%s", want, md)
		}
	}
}

func TestGroupsProjection_OrphanVisibleInLastGroup(t *testing.T) {
	m := testModel(t)
	items := append(fixtureItems(), model.Item{
		ID: "a3", Date: "2026-01-13", Kind: model.KindAction,
		Title: "Orphan", Status: model.StatusOpen, ParentEventID: strptr("gone"),
	})
	m.store.Replace(items)
	m.refreshRows()

	if gi := timeline.GroupOf(m.groups, "a3"); gi != len(m.groups)-1 {
		t.Fatalf("expected orphan in last group; got group %d of %d", gi, len(m.groups))
	}
	found := false
	for _, row := range m.itemsList.Items() {
		if r, ok := row.(actionRow); ok && r.item.ID == "a3" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected orphan action to stay visible in the list")
	}
}

type errFake string

func (e errFake) Error() string { return string(e) }
