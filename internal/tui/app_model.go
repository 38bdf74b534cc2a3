package tui

import (
	"strings"

	"tempo-cli/internal/api"
	"tempo-cli/internal/checklist"
	"tempo-cli/internal/model"
	"tempo-cli/internal/mutate"
	"tempo-cli/internal/session"
	"tempo-cli/internal/store"
	"tempo-cli/internal/timeline"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
)

// Options wire the TUI to its collaborators. Everything is passed down
// explicitly; the TUI reads no ambient globals.
type Options struct {
	Client  *api.Client
	Project string
	Journal *store.Journal
}

type appModel struct {
	opts  Options
	store *timeline.Store
	coord *mutate.Coordinator
	hub   *session.Hub

	width  int
	height int

	view view

	// Timeline projection and its flattened list rows.
	groups        []timeline.Group
	itemsList     list.Model
	checklist     *checklist.Collection
	checklistList list.Model

	// Drag gesture state. While dragging, dropTarget indexes groups.
	drag       timeline.Drag
	dropTarget int

	// Single shared edit lock: at most one item is in an editing state
	// across the whole timeline. We store the id, not the item.
	editingItemID string

	modal        modalKind
	modalForID   string
	confirmFocus confirmModalFocus

	// New/edit item form.
	titleInput    textinput.Model
	assigneeInput textinput.Model
	formFocus     formFocus
	draftStatus   model.Status
	draftParent   *string

	// Summary view.
	openEventID string

	loading    bool
	banner     string
	bannerSeq  int
	minibuffer string
}

func newAppModel(opts Options) appModel {
	st := timeline.NewStore()
	hub := session.NewHub(session.Settings{ShowCompleted: true, Project: opts.Project})

	var rec mutate.Recorder
	if opts.Journal != nil {
		rec = store.Recorder{Journal: opts.Journal, Project: opts.Project}
	}
	coord := mutate.NewCoordinator(st, api.ProjectClient{Client: opts.Client, Project: opts.Project}, rec)

	m := appModel{
		opts:      opts,
		store:     st,
		coord:     coord,
		hub:       hub,
		view:      viewTimeline,
		checklist: checklist.New(),
		loading:   true,
	}

	m.itemsList = newList("Timeline")
	m.checklistList = newList("Checklist")

	m.titleInput = textinput.New()
	m.titleInput.Placeholder = "Action item title"
	m.titleInput.CharLimit = 200
	m.assigneeInput = textinput.New()
	m.assigneeInput.Placeholder = "Assignee (optional)"
	m.assigneeInput.CharLimit = 80

	m.restoreState()
	return m
}

// restoreState applies the best-effort saved screen state.
func (m *appModel) restoreState() {
	st, err := store.LoadTUIState()
	if err != nil || st == nil {
		return
	}
	if st.View == "checklist" {
		m.view = viewChecklist
	}
	if st.ShowCompleted != nil {
		show := *st.ShowCompleted
		m.hub.Update(func(s *session.Settings) { s.ShowCompleted = show })
	}
}

func (m *appModel) persistState() {
	show := m.hub.Current().ShowCompleted
	st := &store.TUIState{
		Version:       1,
		View:          viewToString(m.view),
		Project:       m.opts.Project,
		ShowCompleted: &show,
	}
	if key := m.selectedGroupKey(); key != "" {
		st.SelectedGroupKey = key
	}
	_ = store.SaveTUIState(st)
}

// refreshRows recomputes the grouped projection and rebuilds the list rows.
// Called after every store change; the projection is derived, never edited.
func (m *appModel) refreshRows() {
	m.groups = timeline.Groups(m.store.Items())
	showCompleted := m.hub.Current().ShowCompleted

	rows := make([]list.Item, 0, m.store.Len()+len(m.groups))
	for gi, g := range m.groups {
		rows = append(rows, headerRow{
			group:      g,
			groupIdx:   gi,
			dropTarget: m.drag.Dragging() && gi == m.dropTarget,
		})
		for _, act := range g.Actions {
			if !showCompleted && act.Status == model.StatusCompleted && act.ID != m.drag.ItemID() {
				continue
			}
			rows = append(rows, actionRow{
				item:     act,
				groupIdx: gi,
				dragged:  m.drag.Dragging() && act.ID == m.drag.ItemID(),
				inFlight: m.coord.InFlight(act.ID),
			})
		}
	}
	m.itemsList.SetItems(rows)
}

func (m *appModel) refreshChecklistRows() {
	tasks := m.checklist.Ordered()
	showCompleted := m.hub.Current().ShowCompleted
	rows := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		if !showCompleted && t.Completed {
			continue
		}
		rows = append(rows, checklistRow{task: t})
	}
	m.checklistList.SetItems(rows)
}

// selectedAction returns the action item under the cursor.
func (m *appModel) selectedAction() (model.Item, bool) {
	if r, ok := m.itemsList.SelectedItem().(actionRow); ok {
		return r.item, true
	}
	return model.Item{}, false
}

// selectedGroupKey returns the group key of the row under the cursor.
func (m *appModel) selectedGroupKey() string {
	switch r := m.itemsList.SelectedItem().(type) {
	case headerRow:
		return r.group.Key()
	case actionRow:
		if r.groupIdx < len(m.groups) {
			return m.groups[r.groupIdx].Key()
		}
	}
	return ""
}

// selectedEvent returns the event of the group under the cursor.
func (m *appModel) selectedEvent() (model.Item, bool) {
	key := m.selectedGroupKey()
	if key == "" || key == timeline.UnassignedKey {
		return model.Item{}, false
	}
	return m.store.Find(key)
}

func (m *appModel) showBanner(text string) {
	m.banner = strings.TrimSpace(text)
	m.bannerSeq++
}

func (m *appModel) clearBanner() {
	m.banner = ""
}

func (m *appModel) resizeLists() {
	h := m.height - chromeHeight
	if h < 3 {
		h = 3
	}
	m.itemsList.SetSize(m.width, h)
	m.checklistList.SetSize(m.width, h)
}

// chromeHeight is the vertical space taken by the breadcrumb and footer.
const chromeHeight = 4
