package cli

import (
	"studybuddy/internal/model"
	"studybuddy/internal/mutate"
	"studybuddy/internal/store"

	"github.com/spf13/cobra"
)

func newAttachmentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "attachments",
		Aliases: []string{"attachment"},
		Short:   "Assignment attachment commands",
	}
	cmd.AddCommand(newAttachmentsAddCmd(app))
	cmd.AddCommand(newAttachmentsRmCmd(app))
	return cmd
}

func newAttachmentsAddCmd(app *App) *cobra.Command {
	var maxBytes int64

	cmd := &cobra.Command{
		Use:   "add <assignment-id> <path>",
		Short: "Attach a local file to an assignment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := loadRoot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if owningSubject(root, args[0], mutate.KindAssignment) == "" {
				return writeErr(cmd, mutate.NotFoundError{Kind: mutate.KindAssignment, ID: args[0]})
			}

			f, err := app.importFile(args[1], maxBytes)
			if err != nil {
				return writeErr(cmd, err)
			}

			env := app.env()
			sid := ""
			root, changed, err := applyOp(cmd, app, func(r model.Root) model.Root {
				sid = owningSubject(r, args[0], mutate.KindAssignment)
				next, _ := mutate.AddAttachment(env, r, sid, args[0], fileDraft(f))
				return next
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return assignmentResult(cmd, app, root, changed, sid, args[0])
		},
	}

	cmd.Flags().Int64Var(&maxBytes, "max-bytes", store.DefaultFileMaxBytes, "Max file size in bytes")
	return cmd
}

func newAttachmentsRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <attachment-id>",
		Short: "Remove an attachment from its assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := app.env()
			sid, aid := "", ""
			root, changed, err := applyOp(cmd, app, func(r model.Root) model.Root {
				sid, aid = locateUnder(r, args[0], mutate.KindAttachment)
				return mutate.RemoveAttachment(env, r, sid, aid, args[0])
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return assignmentResult(cmd, app, root, changed, sid, aid)
		},
	}
}

// importFile copies path next to the data (memory backend: references it in
// place).
func (app *App) importFile(path string, maxBytes int64) (store.ImportedFile, error) {
	dir := app.Config.DataDir
	if backend, err := store.ParseBackend(app.Config.Backend); err == nil && backend == store.BackendMemory {
		dir = ""
	}
	return store.ImportFile(dir, app.IDs, path, maxBytes)
}

func fileDraft(f store.ImportedFile) mutate.FileDraft {
	return mutate.FileDraft{Name: f.Name, Size: f.Size, Type: f.Type, URL: f.URL}
}
