package cli

import (
	"errors"

	"tempo-cli/internal/store"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit the saved connection settings",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the saved config (token redacted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			if cfg == nil {
				cfg = &store.Config{}
			}
			out := map[string]any{
				"server_url":      cfg.ServerURL,
				"default_project": cfg.DefaultProject,
				"token_set":       cfg.Token != "",
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	var server, token, project string
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Update saved connection settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if server == "" && token == "" && project == "" {
				return writeErr(cmd, errors.New("nothing to set; pass --server, --token or --project"))
			}
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			if cfg == nil {
				cfg = &store.Config{}
			}
			if server != "" {
				cfg.ServerURL = server
			}
			if token != "" {
				cfg.Token = token
			}
			if project != "" {
				cfg.DefaultProject = project
			}
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"saved": true}})
		},
	}
	setCmd.Flags().StringVar(&server, "server", "", "Timeline server base URL")
	setCmd.Flags().StringVar(&token, "token", "", "API token")
	setCmd.Flags().StringVar(&project, "project", "", "Default project id")

	cmd.AddCommand(showCmd)
	cmd.AddCommand(setCmd)
	return cmd
}
