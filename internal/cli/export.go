package cli

import (
	"strings"

	"studybuddy/internal/publish"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var toDir string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "export [subject]",
		Short: "Write a subject as Markdown pages (index, notes, assignments)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(toDir) == "" {
				return writeErr(cmd, errors.New("missing --to"))
			}
			root, err := loadRoot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ref := ""
			if len(args) == 1 {
				ref = args[0]
			}
			s, err := resolveSubject(root, ref)
			if err != nil {
				return writeErr(cmd, err)
			}

			res, err := publish.WriteSubject(root, s.ID, toDir, publish.WriteOptions{
				Overwrite: overwrite,
				Render:    publish.RenderOptions{Now: app.now()},
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}

	cmd.Flags().StringVar(&toDir, "to", "", "Output directory (required)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing files")
	return cmd
}
