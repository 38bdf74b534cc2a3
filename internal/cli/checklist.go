package cli

import (
	"tempo-cli/internal/checklist"
	"tempo-cli/internal/format"

	"github.com/spf13/cobra"
)

func newChecklistCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Show the project checklist",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, project, err := resolveClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tasks, err := client.Checklist(cmd.Context(), project)
			if err != nil {
				return writeErr(cmd, err)
			}

			col := checklist.New()
			col.Load(tasks)
			ordered := col.Ordered()
			completed, total := col.Progress()

			if app.Format == "table" {
				headers := []string{"TASK", "DONE", "TITLE"}
				rows := make([][]string, 0, len(ordered))
				for _, t := range ordered {
					done := ""
					if t.Completed {
						done = "x"
					}
					rows = append(rows, []string{t.TaskID, done, t.Title})
				}
				return format.WriteTable(cmd.OutOrStdout(), headers, rows)
			}
			return writeOut(cmd, app, map[string]any{
				"data": ordered,
				"meta": map[string]any{"completed": completed, "total": total},
			})
		},
	}

	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Trigger the server-side checklist merge from the latest plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, project, err := resolveClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.SyncChecklist(cmd.Context(), project); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"synced": true}})
		},
	}
	cmd.AddCommand(syncCmd)
	return cmd
}
