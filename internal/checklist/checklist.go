package checklist

import (
	"fmt"
	"sort"

	"tempo-cli/internal/model"
	"tempo-cli/internal/order"
)

// Collection holds one project's checklist keyed by hierarchical task id.
// The server-side sync owns the merge rules; the client only validates,
// orders, and displays.
type Collection struct {
	tasks []model.ChecklistTask
	byID  map[string]int
}

func New() *Collection {
	return &Collection{byID: map[string]int{}}
}

// Load replaces the collection with a server snapshot. Unlike Insert, load
// tolerates whatever the server returns: validation guards what the client
// sends, not what it receives.
func (c *Collection) Load(tasks []model.ChecklistTask) {
	c.tasks = make([]model.ChecklistTask, len(tasks))
	copy(c.tasks, tasks)
	c.byID = make(map[string]int, len(tasks))
	for i, t := range c.tasks {
		c.byID[t.TaskID] = i
	}
}

// Insert adds a task after validating its id: malformed ids and duplicates
// are rejected here, before any network call, so the comparator never has to
// arbitrate between equal ids.
func (c *Collection) Insert(t model.ChecklistTask) error {
	if err := order.ValidateTaskID(t.TaskID); err != nil {
		return err
	}
	// Duplicate means comparator-equal, not string-equal: "1" and "1.0"
	// occupy the same position (missing components compare as 0).
	for _, existing := range c.tasks {
		if order.CompareTaskID(existing.TaskID, t.TaskID) == 0 {
			return fmt.Errorf("duplicate task id %q (collides with %q)", t.TaskID, existing.TaskID)
		}
	}
	c.byID[t.TaskID] = len(c.tasks)
	c.tasks = append(c.tasks, t)
	return nil
}

// Find returns the task with the given id.
func (c *Collection) Find(taskID string) (model.ChecklistTask, bool) {
	i, ok := c.byID[taskID]
	if !ok {
		return model.ChecklistTask{}, false
	}
	return c.tasks[i], true
}

func (c *Collection) Len() int { return len(c.tasks) }

// Ordered returns the tasks sorted by hierarchical task id.
func (c *Collection) Ordered() []model.ChecklistTask {
	out := make([]model.ChecklistTask, len(c.tasks))
	copy(out, c.tasks)
	sort.SliceStable(out, func(i, j int) bool {
		return order.CompareTaskID(out[i].TaskID, out[j].TaskID) < 0
	})
	return out
}

// Progress reports completed and total counts.
func (c *Collection) Progress() (completed, total int) {
	for _, t := range c.tasks {
		if t.Completed {
			completed++
		}
	}
	return completed, len(c.tasks)
}
