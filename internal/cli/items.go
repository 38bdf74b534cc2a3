package cli

import (
	"context"
	"fmt"

	"tempo-cli/internal/model"
	"tempo-cli/internal/mutate"
	"tempo-cli/internal/order"
	"tempo-cli/internal/store"
	"tempo-cli/internal/timeline"

	"github.com/spf13/cobra"
)

func newItemsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Create and manage action items",
	}
	cmd.AddCommand(newItemsListCmd(app))
	cmd.AddCommand(newItemsCreateCmd(app))
	cmd.AddCommand(newItemsEditCmd(app))
	cmd.AddCommand(newItemsStatusCmd(app))
	cmd.AddCommand(newItemsMoveCmd(app))
	cmd.AddCommand(newItemsDeleteCmd(app))
	return cmd
}

func newItemsListCmd(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List action items (status-ordered)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, project, err := resolveClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			items, err := client.Timeline(cmd.Context(), project)
			if err != nil {
				return writeErr(cmd, err)
			}

			var actions []model.Item
			for _, g := range timeline.Groups(items) {
				for _, a := range g.Actions {
					if status != "" && string(a.Status) != status {
						continue
					}
					actions = append(actions, a)
				}
			}
			if actions == nil {
				actions = []model.Item{}
			}
			return writeOut(cmd, app, map[string]any{"data": actions})
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (open|in_progress|completed)")
	return cmd
}

func newItemsCreateCmd(app *App) *cobra.Command {
	var title, assignee, status, parent string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an action item",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, project, err := resolveClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			draft := model.ActionDraft{Title: title, Status: model.Status(status)}
			if assignee != "" {
				draft.Assignee = &assignee
			}
			if parent != "" {
				draft.ParentEventID = &parent
			}
			if err := mutate.ValidateDraft(draft); err != nil {
				return writeErr(cmd, err)
			}

			it, err := client.CreateAction(cmd.Context(), project, draft)
			recordJournal(cmd.Context(), app, project, "create", it.ID, err)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": it})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Item title (required)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee")
	cmd.Flags().StringVar(&status, "status", "open", "Initial status")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent event id")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newItemsEditCmd(app *App) *cobra.Command {
	var title, assignee string
	var clearAssignee bool

	cmd := &cobra.Command{
		Use:   "edit <item-id>",
		Short: "Edit an action item's title or assignee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, project, err := resolveClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var patch timeline.Patch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if clearAssignee {
				patch.SetAssignee = true
			} else if cmd.Flags().Changed("assignee") {
				patch.SetAssignee = true
				patch.Assignee = &assignee
			}
			if patch.IsZero() {
				return writeErr(cmd, fmt.Errorf("nothing to change; pass --title, --assignee or --clear-assignee"))
			}

			it, err := client.UpdateAction(cmd.Context(), project, args[0], patch)
			recordJournal(cmd.Context(), app, project, "edit", args[0], err)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": it})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&assignee, "assignee", "", "New assignee")
	cmd.Flags().BoolVar(&clearAssignee, "clear-assignee", false, "Remove the assignee")
	return cmd
}

func newItemsStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <item-id> <open|in_progress|completed>",
		Short: "Set an action item's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, project, err := resolveClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st, ok := order.NormalizeStatus(args[1])
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown status: %s", args[1]))
			}

			it, err := client.UpdateAction(cmd.Context(), project, args[0], timeline.StatusPatch(st))
			recordJournal(cmd.Context(), app, project, "status", args[0], err)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": it})
		},
	}
	return cmd
}

func newItemsMoveCmd(app *App) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "move <item-id>",
		Short: "Reassign an action item to another event's group",
		Long:  "Moves the item to the end of the target event's group. Moving an item onto its current group is a no-op.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, project, err := resolveClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			// The append-to-end order comes from the current grouped view.
			items, err := client.Timeline(cmd.Context(), project)
			if err != nil {
				return writeErr(cmd, err)
			}
			groups := timeline.Groups(items)

			var drag timeline.Drag
			drag.Begin(args[0])
			dec := drag.Drop(groups, to)
			if dec.Rejected {
				return writeErr(cmd, fmt.Errorf("cannot move %s to %q: unknown item or target group", args[0], to))
			}
			if dec.NoOp {
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"moved": false}})
			}

			it, err := client.UpdateAction(cmd.Context(), project, dec.ItemID, dec.Patch)
			recordJournal(cmd.Context(), app, project, "reassign", dec.ItemID, err)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": it})
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Target event id (required)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newItemsDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <item-id>",
		Short: "Delete an action item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, project, err := resolveClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			err = client.DeleteAction(cmd.Context(), project, args[0])
			recordJournal(cmd.Context(), app, project, "delete", args[0], err)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": args[0]}})
		},
	}
	return cmd
}

// recordJournal appends a mutation outcome to the local journal, best-effort.
func recordJournal(ctx context.Context, app *App, project, op, itemID string, opErr error) {
	journal, err := store.OpenJournal(ctx, app.JournalDir)
	if err != nil {
		return
	}
	defer journal.Close()
	store.Recorder{Journal: journal, Project: project}.Record(op, itemID, opErr)
}
