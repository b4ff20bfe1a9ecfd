package cli

import (
	"strings"

	"studybuddy/internal/mutate"
	"studybuddy/internal/views"

	"github.com/spf13/cobra"
)

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Overview: assignment and note counts plus upcoming deadlines",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := loadRoot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st := views.GlobalStats(root)
			now := app.now()
			upcoming := make([]map[string]any, 0, len(st.Upcoming))
			for _, a := range st.Upcoming {
				upcoming = append(upcoming, map[string]any{
					"id":       a.ID,
					"title":    a.Title,
					"dueDate":  a.DueDate,
					"dueLabel": views.DueLabel(a.DueDate, now),
					"priority": a.Priority,
					"status":   a.Status,
				})
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"subjects":    len(root.Subjects),
				"assignments": st.AssignmentCount,
				"done":        st.DoneCount,
				"notes":       st.NoteCount,
				"upcoming":    upcoming,
			}})
		},
	}
}

func newSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query...>",
		Short: "Search notes and assignments across all subjects",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := loadRoot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": views.SearchHits(root, strings.Join(args, " "))})
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show any subject, folder, note, assignment, checklist item or file by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := loadRoot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			loc, err := mutate.Locate(root, strings.TrimSpace(args[0]))
			if err != nil {
				return writeErr(cmd, err)
			}
			if loc.Kind == mutate.KindSubject {
				return writeOut(cmd, app, map[string]any{"data": map[string]any{
					"kind":    loc.Kind,
					"subject": loc.Subject,
				}})
			}
			if loc.Kind == mutate.KindAssignment {
				return writeOut(cmd, app, map[string]any{"data": map[string]any{
					"kind":       loc.Kind,
					"subjectId":  loc.SubjectID,
					"assignment": viewAssignment(*loc.Assignment, loc.SubjectID, app),
				}})
			}
			return writeOut(cmd, app, map[string]any{"data": loc})
		},
	}
}

func newUndoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Revert the last change",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			sess, done, err := app.openSession(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer done()
			changed, err := sess.Undo(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, mutationResult(changed, subjectRows(sess.Root())))
		},
	}
}

func newResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all data and start over with the example subjects",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return writeErr(cmd, errResetNeedsYes)
			}
			ctx := cmdContext(cmd)
			sess, done, err := app.openSession(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer done()
			if err := sess.Reset(ctx); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, mutationResult(true, subjectRows(sess.Root())))
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deleting all data")
	return cmd
}

