package cli

import (
	"fmt"
	"strings"

	"studybuddy/internal/assistant"

	"github.com/spf13/cobra"
)

func newAskCmd(app *App) *cobra.Command {
	var prompt string

	cmd := &cobra.Command{
		Use:   "ask <prompt...>",
		Short: "Ask the study assistant (via a running `studybuddy serve`)",
		Example: strings.TrimSpace(`
  studybuddy ask "Explain the Krebs cycle in three sentences"
  studybuddy --server http://127.0.0.1:8787 ask "Quiz me on derivatives"
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := strings.TrimSpace(strings.Join(args, " "))
			if p == "" {
				p = strings.TrimSpace(prompt)
			}
			if p == "" {
				return writeErr(cmd, fmt.Errorf("missing prompt"))
			}

			c := app.assistantClient()
			if c == nil {
				return writeErr(cmd, fmt.Errorf("no assistant server configured"))
			}
			errOut := cmd.ErrOrStderr()
			c.OnSlow = func() {
				fmt.Fprintln(errOut, "Still thinking…")
			}

			reply := c.Ask(cmdContext(cmd), p)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"prompt": p,
				"reply":  reply,
			}})
		},
	}

	cmd.Flags().StringVar(&prompt, "prompt", "", "Prompt (alternative to positional args)")
	return cmd
}

// assistantClient returns a client for the configured server, or nil when
// no server URL is set.
func (a *App) assistantClient() *assistant.Client {
	ac := a.Config.Assistant
	if strings.TrimSpace(ac.ServerURL) == "" {
		return nil
	}
	c := assistant.NewClient(ac.ServerURL)
	c.Log = a.Log
	if ac.Timeout > 0 {
		c.Timeout = ac.Timeout
	}
	if ac.SlowAfter > 0 {
		c.SlowAfter = ac.SlowAfter
	}
	return c
}
