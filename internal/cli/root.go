package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"tempo-cli/internal/api"
	"tempo-cli/internal/format"
	"tempo-cli/internal/store"
	"tempo-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Server     string
	Token      string
	Project    string
	Format     string
	PrettyJSON bool

	// JournalDir overrides the journal location (tests).
	JournalDir string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "tempo",
		Short:        "Project activity timeline CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive timeline
  tempo

  # Scriptable commands
  tempo timeline
  tempo items create --title "File the report" --assignee ada

  # Event summaries and the project checklist
  tempo summary evt-17
  tempo checklist
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Server, "server", envOr("TEMPO_SERVER", ""), "Timeline server base URL (overrides config)")
	cmd.PersistentFlags().StringVar(&app.Token, "token", envOr("TEMPO_TOKEN", ""), "API token (overrides config)")
	cmd.PersistentFlags().StringVar(&app.Project, "project", envOr("TEMPO_PROJECT", ""), "Project id (overrides config default_project)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TEMPO_FORMAT", "json"), "Output format (json|table)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newTimelineCmd(app))
	cmd.AddCommand(newItemsCmd(app))
	cmd.AddCommand(newSummaryCmd(app))
	cmd.AddCommand(newChecklistCmd(app))
	cmd.AddCommand(newJournalCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	client, project, err := resolveClient(app)
	if err != nil {
		return err
	}
	// The journal is best-effort; the TUI runs without one.
	journal, _ := store.OpenJournal(context.Background(), app.JournalDir)
	if journal != nil {
		defer journal.Close()
	}
	return tui.Run(tui.Options{Client: client, Project: project, Journal: journal})
}

// resolveClient builds the API client from flags falling back to the saved
// config. The server URL and project are required; the token is optional
// (servers may run without auth in development).
func resolveClient(app *App) (*api.Client, string, error) {
	server := app.Server
	token := app.Token
	project := app.Project

	if server == "" || project == "" {
		if cfg, err := store.LoadConfig(); err == nil && cfg != nil {
			if server == "" {
				server = cfg.ServerURL
			}
			if token == "" {
				token = cfg.Token
			}
			if project == "" {
				project = cfg.DefaultProject
			}
		}
	}

	if server == "" {
		return nil, "", errors.New("no server configured; pass --server or run `tempo config set --server <url>`")
	}
	if project == "" {
		return nil, "", errors.New("no project selected; pass --project or run `tempo config set --project <id>`")
	}
	return api.NewClient(server, token), project, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, outputFormat(app), app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

// outputFormat maps "table" to json for payloads without a table rendering;
// commands with table listings check app.Format themselves.
func outputFormat(app *App) string {
	if app.Format == "table" {
		return "json"
	}
	return app.Format
}
