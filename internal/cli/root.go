package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"studybuddy/internal/config"
	"studybuddy/internal/format"
	"studybuddy/internal/logging"
	"studybuddy/internal/mutate"
	"studybuddy/internal/store"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type App struct {
	ConfigPath string
	DataDir    string
	Backend    string
	Format     string
	PrettyJSON bool
	ServerURL  string

	Config config.Config
	Log    *logrus.Logger

	// Now and IDs are fixed by tests; nil means wall clock and UUIDs.
	Now func() time.Time
	IDs store.IDGenerator
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{})
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "studybuddy",
		Short:        "Study organizer: subjects, notes, assignments (local-first CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive dashboard
  studybuddy

  # Scriptable commands
  studybuddy subjects list
  studybuddy assignments add "Lab report" --due 2025-03-14 --priority High

  # Direct lookup (shortcut for: studybuddy show <id>)
  studybuddy 3f2b8c1e-9a4d-4c4e-8f7a-2b1c0d9e8f7a
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.init(cmd)
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("STUDYBUDDY_CONFIG", ""), "Config file (default: <home>/config.yaml when present)")
	cmd.PersistentFlags().StringVar(&app.DataDir, "data-dir", "", "Data directory (overrides config data_dir)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", "", "Storage backend (sqlite|file|memory)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("STUDYBUDDY_FORMAT", "json"), "Output format (json|text)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", "", "Assistant server URL (overrides config assistant.server_url)")

	cmd.AddCommand(newSubjectsCmd(app))
	cmd.AddCommand(newFoldersCmd(app))
	cmd.AddCommand(newNotesCmd(app))
	cmd.AddCommand(newAssignmentsCmd(app))
	cmd.AddCommand(newChecklistCmd(app))
	cmd.AddCommand(newAttachmentsCmd(app))
	cmd.AddCommand(newFilesCmd(app))
	cmd.AddCommand(newStatsCmd(app))
	cmd.AddCommand(newSearchCmd(app))
	cmd.AddCommand(newUndoCmd(app))
	cmd.AddCommand(newResetCmd(app))
	cmd.AddCommand(newThemeCmd(app))
	cmd.AddCommand(newAskCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newRenderCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// init resolves configuration once per invocation; flags win over config.
func (app *App) init(cmd *cobra.Command) error {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return writeErr(cmd, err)
	}
	if strings.TrimSpace(app.DataDir) != "" {
		cfg.DataDir = app.DataDir
	}
	if strings.TrimSpace(app.Backend) != "" {
		cfg.Backend = app.Backend
	}
	if strings.TrimSpace(app.ServerURL) != "" {
		cfg.Assistant.ServerURL = app.ServerURL
	}
	app.Config = cfg

	if app.Log == nil {
		log, err := logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
		if err != nil {
			return writeErr(cmd, err)
		}
		app.Log = log
	}
	return nil
}

func (app *App) env() mutate.Env {
	env := mutate.DefaultEnv()
	if app.Now != nil {
		env.Now = app.Now
	}
	if app.IDs != nil {
		env.IDs = app.IDs
	}
	return env
}

func (app *App) now() time.Time {
	if app.Now != nil {
		return app.Now()
	}
	return time.Now()
}

// openStore opens the configured blob backend. The caller closes it.
func (app *App) openStore(ctx context.Context) (store.Store, func(), error) {
	backend, err := store.ParseBackend(app.Config.Backend)
	if err != nil {
		return store.Store{}, nil, err
	}
	dir := strings.TrimSpace(app.Config.DataDir)
	if dir == "" && backend != store.BackendMemory {
		return store.Store{}, nil, errors.New("no data directory configured")
	}
	blobs, err := store.OpenBlobStore(ctx, backend, dir)
	if err != nil {
		return store.Store{}, nil, err
	}
	st := store.New(blobs, app.Log)
	if app.Now != nil {
		st.Now = app.Now
	}
	if app.IDs != nil {
		st.IDs = app.IDs
	}
	return st, func() { _ = blobs.Close() }, nil
}

func (app *App) openSession(ctx context.Context) (*store.Session, func(), error) {
	st, closeFn, err := app.openStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	return store.OpenSession(ctx, st), closeFn, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
