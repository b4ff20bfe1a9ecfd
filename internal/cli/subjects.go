package cli

import (
	"strings"

	"studybuddy/internal/model"
	"studybuddy/internal/mutate"

	"github.com/spf13/cobra"
)

func newSubjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subjects",
		Aliases: []string{"subject"},
		Short:   "Subject commands",
	}
	cmd.AddCommand(newSubjectsListCmd(app))
	cmd.AddCommand(newSubjectsAddCmd(app))
	cmd.AddCommand(newSubjectsRenameCmd(app))
	cmd.AddCommand(newSubjectsColorCmd(app))
	cmd.AddCommand(newSubjectsRmCmd(app))
	cmd.AddCommand(newSubjectsUseCmd(app))
	return cmd
}

type subjectRow struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	ColorKey    model.ColorKey `json:"colorKey"`
	Active      bool           `json:"active"`
	Folders     int            `json:"folders"`
	Notes       int            `json:"notes"`
	Assignments int            `json:"assignments"`
	Files       int            `json:"files"`
}

func subjectRows(root model.Root) []subjectRow {
	active, _ := root.ActiveSubject()
	rows := make([]subjectRow, 0, len(root.Subjects))
	for _, s := range root.Subjects {
		rows = append(rows, subjectRow{
			ID:          s.ID,
			Name:        s.Name,
			ColorKey:    s.ColorKey,
			Active:      s.ID == active.ID,
			Folders:     len(s.Folders),
			Notes:       len(s.Notes),
			Assignments: len(s.Assignments),
			Files:       len(s.Files),
		})
	}
	return rows
}

func newSubjectsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List subjects",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := loadRoot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": subjectRows(root)})
		},
	}
}

func newSubjectsAddCmd(app *App) *cobra.Command {
	var name string
	var color string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a subject and make it active",
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := mutate.SubjectPatch{}
			if n := strings.TrimSpace(name); n != "" {
				patch.Name = &n
			}
			if strings.TrimSpace(color) != "" {
				ck, err := model.ParseColorKey(color)
				if err != nil {
					return writeErr(cmd, err)
				}
				patch.ColorKey = &ck
			}

			env := app.env()
			id := ""
			root, changed, err := applyOp(cmd, app, func(r model.Root) model.Root {
				var next model.Root
				next, id = mutate.AddSubject(env, r)
				return mutate.UpdateSubject(next, id, patch)
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, mutationResult(changed, findSubject(root, id)))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Subject name (default: New Subject)")
	cmd.Flags().StringVar(&color, "color", "", "Color (purple|green|red|orange|blue; default: next in palette)")
	return cmd
}

func newSubjectsRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <subject> <name>",
		Short: "Rename a subject",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[1]
			return updateSubject(cmd, app, args[0], mutate.SubjectPatch{Name: &name})
		},
	}
}

func newSubjectsColorCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "color <subject> <color>",
		Short: "Change a subject's color",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ck, err := model.ParseColorKey(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			return updateSubject(cmd, app, args[0], mutate.SubjectPatch{ColorKey: &ck})
		},
	}
}

func updateSubject(cmd *cobra.Command, app *App, ref string, patch mutate.SubjectPatch) error {
	id := ""
	root, changed, err := applySubjectOp(cmd, app, ref, func(r model.Root, s model.Subject) model.Root {
		id = s.ID
		return mutate.UpdateSubject(r, id, patch)
	})
	if err != nil {
		return writeErr(cmd, err)
	}
	return writeOut(cmd, app, mutationResult(changed, findSubject(root, id)))
}

func newSubjectsRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <subject>",
		Short: "Delete a subject with all its folders, notes, assignments and files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, changed, err := applySubjectOp(cmd, app, args[0], func(r model.Root, s model.Subject) model.Root {
				return mutate.RemoveSubject(r, s.ID)
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, mutationResult(changed, subjectRows(root)))
		},
	}
}

func newSubjectsUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <subject>",
		Short: "Make a subject the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			root, changed, err := applySubjectOp(cmd, app, args[0], func(r model.Root, s model.Subject) model.Root {
				id = s.ID
				return mutate.SetActiveSubject(r, id)
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, mutationResult(changed, findSubject(root, id)))
		},
	}
}

func findSubject(root model.Root, id string) *model.Subject {
	s, ok := root.FindSubject(id)
	if !ok {
		return nil
	}
	return &s
}
