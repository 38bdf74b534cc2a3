package cli

import (
	"strconv"
	"time"

	"tempo-cli/internal/format"
	"tempo-cli/internal/store"

	"github.com/spf13/cobra"
)

func newJournalCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show recent local mutation outcomes (newest first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			journal, err := store.OpenJournal(cmd.Context(), app.JournalDir)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer journal.Close()

			entries, err := journal.Tail(cmd.Context(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}

			if app.Format == "table" {
				headers := []string{"TS", "PROJECT", "OP", "ITEM", "OK", "DETAIL"}
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{
						e.TS.UTC().Format(time.RFC3339),
						e.Project,
						e.Op,
						e.ItemID,
						strconv.FormatBool(e.OK),
						e.Detail,
					})
				}
				return format.WriteTable(cmd.OutOrStdout(), headers, rows)
			}
			return writeOut(cmd, app, map[string]any{"data": entries})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "Max entries to return")
	return cmd
}
