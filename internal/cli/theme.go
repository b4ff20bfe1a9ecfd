package cli

import (
	"context"
	"strings"

	"studybuddy/internal/model"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

func newThemeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the light/dark theme",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runThemeGet(cmd, app)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Show the current theme",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runThemeGet(cmd, app)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <light|dark>",
		Short: "Set the theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := model.ParseTheme(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return saveTheme(cmd, app, func(model.Theme) model.Theme { return t })
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark",
		RunE: func(cmd *cobra.Command, args []string) error {
			return saveTheme(cmd, app, model.Theme.Toggle)
		},
	})
	return cmd
}

func runThemeGet(cmd *cobra.Command, app *App) error {
	t, err := app.currentTheme(cmd)
	if err != nil {
		return writeErr(cmd, err)
	}
	return writeOut(cmd, app, map[string]any{"data": map[string]any{"theme": t}})
}

func saveTheme(cmd *cobra.Command, app *App, next func(model.Theme) model.Theme) error {
	ctx := cmdContext(cmd)
	st, done, err := app.openStore(ctx)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer done()

	prev := st.LoadTheme(ctx, app.themeFallback())
	t := next(prev)
	if err := st.SaveTheme(ctx, t); err != nil {
		return writeErr(cmd, err)
	}
	return writeOut(cmd, app, mutationResult(t != prev, map[string]any{"theme": t}))
}

// currentTheme is the persisted theme, or the configured default.
func (app *App) currentTheme(cmd *cobra.Command) (model.Theme, error) {
	ctx := cmdContext(cmd)
	st, done, err := app.openStore(ctx)
	if err != nil {
		return "", err
	}
	defer done()
	return st.LoadTheme(ctx, app.themeFallback()), nil
}

// themeFallback maps the configured theme to a concrete one. "auto" asks the
// terminal for its background color.
func (app *App) themeFallback() model.Theme {
	v := strings.ToLower(strings.TrimSpace(app.Config.Theme))
	if v == "auto" {
		if termenv.HasDarkBackground() {
			return model.ThemeDark
		}
		return model.ThemeLight
	}
	if t, err := model.ParseTheme(v); err == nil {
		return t
	}
	return model.ThemeLight
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
