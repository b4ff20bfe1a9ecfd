package cli

import (
	"studybuddy/internal/tui"

	"github.com/spf13/cobra"
)

func runTUI(cmd *cobra.Command, app *App) error {
	ctx := cmdContext(cmd)
	sess, done, err := app.openSession(ctx)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer done()

	theme := sess.Store.LoadTheme(ctx, app.themeFallback())
	return tui.Run(ctx, sess, theme, tui.Options{
		Env:       app.env(),
		Log:       app.Log,
		Assistant: app.assistantClient(),
	})
}
