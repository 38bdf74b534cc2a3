package cli

import (
	"github.com/spf13/cobra"
)

func newSummaryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary <event-id>",
		Short: "Fetch the structured summary of one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, project, err := resolveClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			sum, err := client.EventSummary(cmd.Context(), project, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": sum})
		},
	}
	return cmd
}
