package cli

import (
	"fmt"
	"io"
	"strings"

	"studybuddy/internal/docs"
	"studybuddy/internal/markdown"

	"github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
	var raw bool
	var width int

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show built-in help topics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"topics": docs.Topics()}})
			}

			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (run `studybuddy docs` to list topics)", topic))
			}

			if raw {
				_, err := io.WriteString(cmd.OutOrStdout(), body)
				return err
			}

			theme, err := app.currentTheme(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := markdown.RenderTerminal(body, string(theme), width)
			_, err = io.WriteString(cmd.OutOrStdout(), strings.TrimRight(out, "\n")+"\n")
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw Markdown")
	cmd.Flags().IntVar(&width, "width", 80, "Wrap width")
	return cmd
}
