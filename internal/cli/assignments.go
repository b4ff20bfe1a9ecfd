package cli

import (
	"strings"

	"studybuddy/internal/model"
	"studybuddy/internal/mutate"
	"studybuddy/internal/validate"
	"studybuddy/internal/views"

	"github.com/spf13/cobra"
)

func newAssignmentsCmd(app *App) *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:     "assignments",
		Aliases: []string{"assignment", "tasks"},
		Short:   "Assignment commands",
	}
	cmd.PersistentFlags().StringVar(&subject, "subject", "", "Subject id or name (default: active subject)")

	cmd.AddCommand(newAssignmentsListCmd(app, &subject))
	cmd.AddCommand(newAssignmentsAddCmd(app, &subject))
	cmd.AddCommand(newAssignmentsShowCmd(app))
	cmd.AddCommand(newAssignmentsSetCmd(app))
	cmd.AddCommand(newAssignmentsRmCmd(app))
	return cmd
}

// assignmentView is an assignment plus the values the UI derives from it.
type assignmentView struct {
	model.Assignment
	SubjectID string `json:"subjectId"`
	Progress  int    `json:"progress"`
	DaysLeft  *int   `json:"daysLeft"`
	DueState  string `json:"dueState"`
	DueLabel  string `json:"dueLabel"`
}

func viewAssignment(a model.Assignment, subjectID string, app *App) assignmentView {
	now := app.now()
	days := views.DaysUntil(a.DueDate, now)
	return assignmentView{
		Assignment: a,
		SubjectID:  subjectID,
		Progress:   views.AssignmentProgress(a),
		DaysLeft:   days,
		DueState:   string(views.DueStateOf(days)),
		DueLabel:   views.DueLabel(a.DueDate, now),
	}
}

type assignmentRow struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Status   model.Status   `json:"status"`
	Priority model.Priority `json:"priority"`
	DueDate  string         `json:"dueDate"`
	DueLabel string         `json:"dueLabel"`
	Progress int            `json:"progress"`
}

func newAssignmentsListCmd(app *App, subject *string) *cobra.Command {
	var status string
	var priority string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assignments",
		RunE: func(cmd *cobra.Command, args []string) error {
			statusFilter, err := parseFilter(status, model.ParseStatus)
			if err != nil {
				return writeErr(cmd, err)
			}
			priorityFilter, err := parseFilter(priority, model.ParsePriority)
			if err != nil {
				return writeErr(cmd, err)
			}

			root, err := loadRoot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := resolveSubject(root, *subject)
			if err != nil {
				return writeErr(cmd, err)
			}

			now := app.now()
			list := views.FilterAssignments(s.Assignments, statusFilter, priorityFilter)
			rows := make([]assignmentRow, 0, len(list))
			for _, a := range list {
				rows = append(rows, assignmentRow{
					ID:       a.ID,
					Title:    a.Title,
					Status:   a.Status,
					Priority: a.Priority,
					DueDate:  a.DueDate,
					DueLabel: views.DueLabel(a.DueDate, now),
					Progress: views.AssignmentProgress(a),
				})
			}
			return writeOut(cmd, app, map[string]any{"data": rows})
		},
	}

	cmd.Flags().StringVar(&status, "status", "All", "Filter by status (All|\"Not Started\"|\"In Progress\"|Done)")
	cmd.Flags().StringVar(&priority, "priority", "All", "Filter by priority (All|Low|Medium|High)")
	return cmd
}

// parseFilter maps "" and "all" to "All"; anything else must parse.
func parseFilter[T ~string](s string, parse func(string) (T, error)) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return "All", nil
	}
	v, err := parse(s)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// assignmentInput is validated before it becomes a draft.
type assignmentInput struct {
	Title       string `json:"title" validate:"notblank,max=200"`
	Description string `json:"description" validate:"max=10000"`
	DueDate     string `json:"due" validate:"omitempty,datetime=2006-01-02"`
	Priority    string `json:"priority" validate:"oneof=Low Medium High"`
}

func newAssignmentsAddCmd(app *App, subject *string) *cobra.Command {
	var due string
	var priority string
	var description string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an assignment",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dueDate, err := parseDueDate(due, app.now())
			if err != nil {
				return writeErr(cmd, err)
			}
			prio, err := model.ParsePriority(priority)
			if err != nil {
				return writeErr(cmd, err)
			}
			in := assignmentInput{
				Title:       strings.Join(args, " "),
				Description: description,
				DueDate:     dueDate,
				Priority:    string(prio),
			}
			if err := validate.Struct(in); err != nil {
				return writeErr(cmd, err)
			}

			env := app.env()
			sid, id := "", ""
			root, changed, err := applySubjectOp(cmd, app, *subject, func(r model.Root, s model.Subject) model.Root {
				var next model.Root
				sid = s.ID
				next, id = mutate.AddAssignment(env, r, s.ID, mutate.AssignmentDraft{
					Title:       in.Title,
					Description: in.Description,
					DueDate:     in.DueDate,
					Priority:    prio,
				})
				return next
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			a := findAssignment(root, sid, id)
			if a == nil {
				return writeOut(cmd, app, mutationResult(changed, nil))
			}
			return writeOut(cmd, app, mutationResult(changed, viewAssignment(*a, sid, app)))
		},
	}

	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD, today, tomorrow, +Nd)")
	cmd.Flags().StringVar(&priority, "priority", string(model.PriorityMedium), "Priority (Low|Medium|High)")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	return cmd
}

func newAssignmentsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <assignment-id>",
		Short: "Show an assignment with its progress and due state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := loadRoot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			loc, err := mutate.Locate(root, args[0])
			if err == nil && loc.Kind != mutate.KindAssignment {
				err = mutate.NotFoundError{Kind: mutate.KindAssignment, ID: args[0]}
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": viewAssignment(*loc.Assignment, loc.SubjectID, app)})
		},
	}
}

func newAssignmentsSetCmd(app *App) *cobra.Command {
	var title string
	var description string
	var due string
	var priority string
	var status string

	cmd := &cobra.Command{
		Use:   "set <assignment-id>",
		Short: "Update assignment fields",
		Example: strings.TrimSpace(`
  studybuddy assignments set <id> --status "In Progress"
  studybuddy assignments set <id> --due +3d --priority High
  studybuddy assignments set <id> --due none
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := mutate.AssignmentPatch{}
			if cmd.Flags().Changed("title") {
				if strings.TrimSpace(title) == "" {
					return writeErr(cmd, &validate.Error{Fields: map[string]string{"title": "this field cannot be blank"}})
				}
				patch.Title = &title
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("due") {
				d, err := parseDueDate(due, app.now())
				if err != nil {
					return writeErr(cmd, err)
				}
				patch.DueDate = &d
			}
			if cmd.Flags().Changed("priority") {
				p, err := model.ParsePriority(priority)
				if err != nil {
					return writeErr(cmd, err)
				}
				patch.Priority = &p
			}
			if cmd.Flags().Changed("status") {
				st, err := model.ParseStatus(status)
				if err != nil {
					return writeErr(cmd, err)
				}
				patch.Status = &st
			}

			env := app.env()
			sid := ""
			root, changed, err := applyOp(cmd, app, func(r model.Root) model.Root {
				sid = owningSubject(r, args[0], mutate.KindAssignment)
				return mutate.UpdateAssignment(env, r, sid, args[0], patch)
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			a := findAssignment(root, sid, args[0])
			if a == nil {
				return writeOut(cmd, app, mutationResult(changed, nil))
			}
			return writeOut(cmd, app, mutationResult(changed, viewAssignment(*a, sid, app)))
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD, today, tomorrow, +Nd, none)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (Low|Medium|High)")
	cmd.Flags().StringVar(&status, "status", "", "Status (\"Not Started\"|\"In Progress\"|Done)")
	return cmd
}

func newAssignmentsRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <assignment-id>",
		Short: "Delete an assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, changed, err := applyOp(cmd, app, func(r model.Root) model.Root {
				return mutate.RemoveAssignment(r, owningSubject(r, args[0], mutate.KindAssignment), args[0])
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, mutationResult(changed, map[string]any{"id": args[0]}))
		},
	}
}

func findAssignment(root model.Root, subjectID, assignmentID string) *model.Assignment {
	s, ok := root.FindSubject(subjectID)
	if !ok {
		return nil
	}
	a, ok := s.FindAssignment(assignmentID)
	if !ok {
		return nil
	}
	return &a
}
