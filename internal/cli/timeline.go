package cli

import (
	"tempo-cli/internal/format"
	"tempo-cli/internal/model"
	"tempo-cli/internal/timeline"

	"github.com/spf13/cobra"
)

func newTimelineCmd(app *App) *cobra.Command {
	var flat bool

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show the project timeline grouped by event",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, project, err := resolveClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			items, err := client.Timeline(cmd.Context(), project)
			if err != nil {
				return writeErr(cmd, err)
			}

			if flat {
				return writeOut(cmd, app, map[string]any{"data": items})
			}

			groups := timeline.Groups(items)
			if app.Format == "table" {
				return writeTimelineTable(cmd, groups)
			}
			return writeOut(cmd, app, map[string]any{"data": toGroupPayloads(groups)})
		},
	}
	cmd.Flags().BoolVar(&flat, "flat", false, "Emit the raw ungrouped item list")
	return cmd
}

// groupPayload is the JSON shape of one rendered group.
type groupPayload struct {
	Key     string       `json:"key"`
	Event   *model.Item  `json:"event,omitempty"`
	Actions []model.Item `json:"actions"`
}

func toGroupPayloads(groups []timeline.Group) []groupPayload {
	out := make([]groupPayload, 0, len(groups))
	for _, g := range groups {
		actions := g.Actions
		if actions == nil {
			actions = []model.Item{}
		}
		out = append(out, groupPayload{Key: g.Key(), Event: g.Event, Actions: actions})
	}
	return out
}

func writeTimelineTable(cmd *cobra.Command, groups []timeline.Group) error {
	headers := []string{"GROUP", "ID", "DATE", "STATUS", "TITLE", "ASSIGNEE"}
	var rows [][]string
	for _, g := range groups {
		label := "(unassigned)"
		if g.Event != nil {
			label = g.Event.Date + " " + g.Event.Label
		}
		for _, a := range g.Actions {
			assignee := ""
			if a.Assignee != nil {
				assignee = *a.Assignee
			}
			rows = append(rows, []string{label, a.ID, a.Date, string(a.Status), a.Title, assignee})
		}
		if len(g.Actions) == 0 {
			rows = append(rows, []string{label, "", "", "", "", ""})
		}
	}
	return format.WriteTable(cmd.OutOrStdout(), headers, rows)
}
