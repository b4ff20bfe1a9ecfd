package cli

import (
	"studybuddy/internal/model"
	"studybuddy/internal/mutate"
	"studybuddy/internal/store"

	"github.com/spf13/cobra"
)

func newFilesCmd(app *App) *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:     "files",
		Aliases: []string{"file"},
		Short:   "Subject file commands",
	}
	cmd.PersistentFlags().StringVar(&subject, "subject", "", "Subject id or name (default: active subject)")

	cmd.AddCommand(newFilesListCmd(app, &subject))
	cmd.AddCommand(newFilesAddCmd(app, &subject))
	cmd.AddCommand(newFilesRmCmd(app))
	return cmd
}

func newFilesListCmd(app *App, subject *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List a subject's files",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := loadRoot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := resolveSubject(root, *subject)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": s.Files})
		},
	}
}

func newFilesAddCmd(app *App, subject *string) *cobra.Command {
	var maxBytes int64

	cmd := &cobra.Command{
		Use:   "add <path>",
		Short: "Add a local file to a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := loadRoot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, err := resolveSubject(root, *subject); err != nil {
				return writeErr(cmd, err)
			}

			f, err := app.importFile(args[0], maxBytes)
			if err != nil {
				return writeErr(cmd, err)
			}

			env := app.env()
			sid, id := "", ""
			root, changed, err := applySubjectOp(cmd, app, *subject, func(r model.Root, s model.Subject) model.Root {
				var next model.Root
				sid = s.ID
				next, id = mutate.AddFile(env, r, s.ID, fileDraft(f))
				return next
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, mutationResult(changed, findFile(root, sid, id)))
		},
	}

	cmd.Flags().Int64Var(&maxBytes, "max-bytes", store.DefaultFileMaxBytes, "Max file size in bytes")
	return cmd
}

func newFilesRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <file-id>",
		Short: "Remove a file from its subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, changed, err := applyOp(cmd, app, func(r model.Root) model.Root {
				return mutate.RemoveFile(r, owningSubject(r, args[0], mutate.KindFile), args[0])
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, mutationResult(changed, map[string]any{"id": args[0]}))
		},
	}
}

func findFile(root model.Root, subjectID, fileID string) *model.FileRef {
	s, ok := root.FindSubject(subjectID)
	if !ok {
		return nil
	}
	f, ok := s.FindFile(fileID)
	if !ok {
		return nil
	}
	return &f
}
