package cli

import (
	"studybuddy/internal/model"
	"studybuddy/internal/mutate"

	"github.com/spf13/cobra"
)

func newFoldersCmd(app *App) *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:     "folders",
		Aliases: []string{"folder"},
		Short:   "Folder commands (within a subject)",
	}
	cmd.PersistentFlags().StringVar(&subject, "subject", "", "Subject id or name (default: active subject)")

	cmd.AddCommand(newFoldersListCmd(app, &subject))
	cmd.AddCommand(newFoldersAddCmd(app, &subject))
	cmd.AddCommand(newFoldersRenameCmd(app, &subject))
	cmd.AddCommand(newFoldersRmCmd(app, &subject))
	return cmd
}

type folderRow struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Notes int    `json:"notes"`
}

func folderRows(s model.Subject) []folderRow {
	rows := make([]folderRow, 0, len(s.Folders))
	for _, f := range s.Folders {
		n := 0
		for _, note := range s.Notes {
			if note.FolderID == f.ID {
				n++
			}
		}
		rows = append(rows, folderRow{ID: f.ID, Name: f.Name, Notes: n})
	}
	return rows
}

func newFoldersListCmd(app *App, subject *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List folders",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := loadRoot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := resolveSubject(root, *subject)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": folderRows(s)})
		},
	}
}

func newFoldersAddCmd(app *App, subject *string) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := app.env()
			sid, id := "", ""
			root, changed, err := applySubjectOp(cmd, app, *subject, func(r model.Root, s model.Subject) model.Root {
				var next model.Root
				sid = s.ID
				next, id = mutate.AddFolder(env, r, s.ID, args[0])
				return next
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, mutationResult(changed, findFolder(root, sid, id)))
		},
	}
}

func newFoldersRenameCmd(app *App, subject *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <folder> <name>",
		Short: "Rename a folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sid, id := "", ""
			var folderErr error
			root, changed, err := applySubjectOp(cmd, app, *subject, func(r model.Root, s model.Subject) model.Root {
				f, err := resolveFolder(s, args[0])
				if err != nil {
					folderErr = err
					return r
				}
				sid, id = s.ID, f.ID
				return mutate.RenameFolder(r, s.ID, f.ID, args[1])
			})
			if err == nil {
				err = folderErr
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, mutationResult(changed, findFolder(root, sid, id)))
		},
	}
}

func newFoldersRmCmd(app *App, subject *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <folder>",
		Short: "Delete a folder and every note in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sid := ""
			var folderErr error
			root, changed, err := applySubjectOp(cmd, app, *subject, func(r model.Root, s model.Subject) model.Root {
				f, err := resolveFolder(s, args[0])
				if err != nil {
					folderErr = err
					return r
				}
				sid = s.ID
				return mutate.RemoveFolder(r, s.ID, f.ID)
			})
			if err == nil {
				err = folderErr
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			s, _ := root.FindSubject(sid)
			return writeOut(cmd, app, mutationResult(changed, folderRows(s)))
		},
	}
}

// findFolder returns nil when the folder is gone so JSON output shows null.
func findFolder(root model.Root, subjectID, folderID string) *model.Folder {
	s, ok := root.FindSubject(subjectID)
	if !ok {
		return nil
	}
	f, ok := s.FindFolder(folderID)
	if !ok {
		return nil
	}
	return &f
}
