package cli

import (
	"io"
	"os"
	"strings"

	"studybuddy/internal/markdown"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newRenderCmd(app *App) *cobra.Command {
	var mode string
	var width int

	cmd := &cobra.Command{
		Use:   "render <file|->",
		Short: "Render Markdown to preview HTML or to the terminal",
		Long: strings.TrimSpace(`
Render Markdown from a file (or stdin with -).

Modes:
  legacy    quick-preview HTML (headings, emphasis, code, quotes, lists)
  markdown  GitHub-flavored Markdown HTML
  terminal  styled terminal output (follows the saved theme)
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				b   []byte
				err error
			)
			if args[0] == "-" {
				b, err = io.ReadAll(cmd.InOrStdin())
			} else {
				b, err = os.ReadFile(args[0])
			}
			if err != nil {
				return writeErr(cmd, errors.Wrap(err, "render: read input"))
			}

			var out string
			if strings.EqualFold(strings.TrimSpace(mode), "terminal") {
				theme, err := app.currentTheme(cmd)
				if err != nil {
					return writeErr(cmd, err)
				}
				out = markdown.RenderTerminal(string(b), string(theme), width)
			} else {
				m, ok := markdown.ParseMode(mode)
				if !ok {
					return writeErr(cmd, errors.Errorf("invalid --mode %q (expected legacy|markdown|terminal)", mode))
				}
				out = markdown.Preview(string(b), m)
			}
			_, err = io.WriteString(cmd.OutOrStdout(), strings.TrimRight(out, "\n")+"\n")
			return err
		},
	}

	cmd.Flags().StringVar(&mode, "mode", string(markdown.ModeLegacy), "Render mode (legacy|markdown|terminal)")
	cmd.Flags().IntVar(&width, "width", 80, "Wrap width for terminal mode")
	return cmd
}
