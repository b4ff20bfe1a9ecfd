package cli

import (
	"strings"

	"studybuddy/internal/model"
	"studybuddy/internal/mutate"

	"github.com/spf13/cobra"
)

func newChecklistCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Assignment checklist commands",
	}
	cmd.AddCommand(newChecklistAddCmd(app))
	cmd.AddCommand(newChecklistToggleCmd(app))
	cmd.AddCommand(newChecklistTextCmd(app))
	cmd.AddCommand(newChecklistRmCmd(app))
	return cmd
}

// locateUnder returns the subject and assignment holding an entity of the
// given kind, or empty ids when there is none.
func locateUnder(root model.Root, id, kind string) (subjectID, assignmentID string) {
	loc, err := mutate.Locate(root, id)
	if err != nil || loc.Kind != kind || loc.Assignment == nil {
		return "", ""
	}
	return loc.SubjectID, loc.Assignment.ID
}

// assignmentResult reports the assignment after a checklist or attachment edit.
func assignmentResult(cmd *cobra.Command, app *App, root model.Root, changed bool, sid, aid string) error {
	a := findAssignment(root, sid, aid)
	if a == nil {
		return writeOut(cmd, app, mutationResult(changed, nil))
	}
	return writeOut(cmd, app, mutationResult(changed, viewAssignment(*a, sid, app)))
}

func newChecklistAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <assignment-id> [text...]",
		Short: "Append a checklist item",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := app.env()
			sid := ""
			root, changed, err := applyOp(cmd, app, func(r model.Root) model.Root {
				sid = owningSubject(r, args[0], mutate.KindAssignment)
				next, _ := mutate.AddChecklistItem(env, r, sid, args[0], strings.Join(args[1:], " "))
				return next
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return assignmentResult(cmd, app, root, changed, sid, args[0])
		},
	}
}

func newChecklistToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <item-id>",
		Short: "Check or uncheck a checklist item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := app.env()
			sid, aid := "", ""
			root, changed, err := applyOp(cmd, app, func(r model.Root) model.Root {
				sid, aid = locateUnder(r, args[0], mutate.KindChecklistItem)
				return mutate.ToggleChecklistItem(env, r, sid, aid, args[0])
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return assignmentResult(cmd, app, root, changed, sid, aid)
		},
	}
}

func newChecklistTextCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "text <item-id> <text...>",
		Short: "Change a checklist item's text",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := app.env()
			sid, aid := "", ""
			root, changed, err := applyOp(cmd, app, func(r model.Root) model.Root {
				sid, aid = locateUnder(r, args[0], mutate.KindChecklistItem)
				return mutate.SetChecklistItemText(env, r, sid, aid, args[0], strings.Join(args[1:], " "))
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return assignmentResult(cmd, app, root, changed, sid, aid)
		},
	}
}

func newChecklistRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <item-id>",
		Short: "Delete a checklist item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := app.env()
			sid, aid := "", ""
			root, changed, err := applyOp(cmd, app, func(r model.Root) model.Root {
				sid, aid = locateUnder(r, args[0], mutate.KindChecklistItem)
				return mutate.RemoveChecklistItem(env, r, sid, aid, args[0])
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return assignmentResult(cmd, app, root, changed, sid, aid)
		},
	}
}
