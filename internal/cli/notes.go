package cli

import (
	"io"
	"os"
	"strings"

	"studybuddy/internal/markdown"
	"studybuddy/internal/model"
	"studybuddy/internal/mutate"
	"studybuddy/internal/views"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newNotesCmd(app *App) *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:     "notes",
		Aliases: []string{"note"},
		Short:   "Note commands",
	}
	cmd.PersistentFlags().StringVar(&subject, "subject", "", "Subject id or name (default: active subject)")

	cmd.AddCommand(newNotesListCmd(app, &subject))
	cmd.AddCommand(newNotesAddCmd(app, &subject))
	cmd.AddCommand(newNotesShowCmd(app))
	cmd.AddCommand(newNotesEditCmd(app))
	cmd.AddCommand(newNotesTagCmd(app))
	cmd.AddCommand(newNotesRmCmd(app))
	return cmd
}

type noteRow struct {
	ID        string   `json:"id"`
	FolderID  string   `json:"folderId"`
	Title     string   `json:"title"`
	Tags      []string `json:"tags"`
	Words     int      `json:"words"`
	UpdatedAt string   `json:"updatedAt"`
}

func newNotesListCmd(app *App, subject *string) *cobra.Command {
	var folder string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes (optionally in one folder)",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := loadRoot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := resolveSubject(root, *subject)
			if err != nil {
				return writeErr(cmd, err)
			}
			folderID := "all"
			if strings.TrimSpace(folder) != "" && !strings.EqualFold(strings.TrimSpace(folder), "all") {
				f, err := resolveFolder(s, folder)
				if err != nil {
					return writeErr(cmd, err)
				}
				folderID = f.ID
			}
			notes := views.NotesInFolder(s, folderID)
			rows := make([]noteRow, 0, len(notes))
			for _, n := range notes {
				rows = append(rows, noteRow{
					ID:        n.ID,
					FolderID:  n.FolderID,
					Title:     n.Title,
					Tags:      n.Tags,
					Words:     views.WordCount(n.Content),
					UpdatedAt: views.FormatTimestamp(n.UpdatedAt),
				})
			}
			return writeOut(cmd, app, map[string]any{"data": rows})
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", "Folder id or name (default: all)")
	return cmd
}

func newNotesAddCmd(app *App, subject *string) *cobra.Command {
	var title string
	var folder string
	var content string
	var contentFile string
	var tags []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a note",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readContent(cmd, content, contentFile)
			if err != nil {
				return writeErr(cmd, err)
			}

			env := app.env()
			sid, id := "", ""
			var folderErr error
			root, changed, err := applySubjectOp(cmd, app, *subject, func(r model.Root, s model.Subject) model.Root {
				d := mutate.NoteDraft{Title: title, Content: body, Tags: tags}
				if strings.TrimSpace(folder) != "" {
					f, err := resolveFolder(s, folder)
					if err != nil {
						folderErr = err
						return r
					}
					d.FolderID = f.ID
				}
				var next model.Root
				sid = s.ID
				next, id = mutate.AddNote(env, r, s.ID, d)
				return next
			})
			if err == nil {
				err = folderErr
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, mutationResult(changed, findNote(root, sid, id)))
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Note title (default: Untitled)")
	cmd.Flags().StringVar(&folder, "folder", "", "Folder id or name (default: first folder)")
	cmd.Flags().StringVar(&content, "content", "", "Note content (HTML or Markdown)")
	cmd.Flags().StringVar(&contentFile, "content-file", "", "Read content from a file (- for stdin)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag (repeatable or comma separated)")
	return cmd
}

func newNotesShowCmd(app *App) *cobra.Command {
	var render string
	var width int

	cmd := &cobra.Command{
		Use:   "show <note-id>",
		Short: "Show a note",
		Long: strings.TrimSpace(`
Show a note. With --render the content is printed instead of the JSON record:

  html      stored rich-text HTML, sanitized
  preview   quick-preview HTML (legacy Markdown pass over the stored content)
  markdown  content rendered as GitHub-flavored Markdown
  terminal  content rendered for the terminal (follows the saved theme)
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := loadRoot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			loc, err := mutate.Locate(root, args[0])
			if err == nil && loc.Kind != mutate.KindNote {
				err = mutate.NotFoundError{Kind: mutate.KindNote, ID: args[0]}
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			n := *loc.Note

			var out string
			switch strings.ToLower(strings.TrimSpace(render)) {
			case "":
				return writeOut(cmd, app, map[string]any{"data": map[string]any{
					"note":      n,
					"subjectId": loc.SubjectID,
					"words":     views.WordCount(n.Content),
				}})
			case "html":
				out = markdown.SanitizeNoteHTML(n.Content)
			case "preview":
				out = markdown.Preview(n.Content, markdown.ModeLegacy)
			case "markdown", "md":
				out = markdown.Preview(n.Content, markdown.ModeMarkdown)
			case "terminal":
				theme, err := app.currentTheme(cmd)
				if err != nil {
					return writeErr(cmd, err)
				}
				out = markdown.RenderTerminal(n.Content, string(theme), width)
			default:
				return writeErr(cmd, errors.Errorf("invalid --render %q (expected html|preview|markdown|terminal)", render))
			}
			_, err = io.WriteString(cmd.OutOrStdout(), strings.TrimRight(out, "\n")+"\n")
			return err
		},
	}

	cmd.Flags().StringVar(&render, "render", "", "Render content instead of JSON (html|preview|markdown|terminal)")
	cmd.Flags().IntVar(&width, "width", 80, "Wrap width for --render terminal")
	return cmd
}

func newNotesEditCmd(app *App) *cobra.Command {
	var title string
	var folder string
	var content string
	var contentFile string

	cmd := &cobra.Command{
		Use:   "edit <note-id>",
		Short: "Edit a note's title, folder or content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := mutate.NotePatch{}
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("content") || cmd.Flags().Changed("content-file") {
				body, err := readContent(cmd, content, contentFile)
				if err != nil {
					return writeErr(cmd, err)
				}
				patch.Content = &body
			}

			env := app.env()
			sid := ""
			var folderErr error
			root, changed, err := applyOp(cmd, app, func(r model.Root) model.Root {
				sid = owningSubject(r, args[0], mutate.KindNote)
				if sid != "" && cmd.Flags().Changed("folder") {
					s, _ := r.FindSubject(sid)
					f, err := resolveFolder(s, folder)
					if err != nil {
						folderErr = err
						return r
					}
					patch.FolderID = &f.ID
				}
				return mutate.UpdateNote(env, r, sid, args[0], patch)
			})
			if err == nil {
				err = folderErr
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, mutationResult(changed, findNote(root, sid, args[0])))
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&folder, "folder", "", "Move to folder (id or name)")
	cmd.Flags().StringVar(&content, "content", "", "New content")
	cmd.Flags().StringVar(&contentFile, "content-file", "", "Read new content from a file (- for stdin)")
	return cmd
}

func newNotesTagCmd(app *App) *cobra.Command {
	var add []string
	var remove []string
	var set bool

	cmd := &cobra.Command{
		Use:   "tag <note-id> [tag...]",
		Short: "Change a note's tags",
		Example: strings.TrimSpace(`
  studybuddy notes tag <note-id> exam chapter-3 --set
  studybuddy notes tag <note-id> --add review --rm draft
`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := app.env()
			sid := ""
			root, changed, err := applyOp(cmd, app, func(r model.Root) model.Root {
				sid = owningSubject(r, args[0], mutate.KindNote)
				s, _ := r.FindSubject(sid)
				n, ok := s.FindNote(args[0])
				if !ok {
					return r
				}
				tags := retagged(n.Tags, args[1:], add, remove, set)
				return mutate.UpdateNote(env, r, sid, n.ID, mutate.NotePatch{Tags: &tags})
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, mutationResult(changed, findNote(root, sid, args[0])))
		},
	}

	cmd.Flags().StringSliceVar(&add, "add", nil, "Tag to add")
	cmd.Flags().StringSliceVar(&remove, "rm", nil, "Tag to remove")
	cmd.Flags().BoolVar(&set, "set", false, "Replace all tags with the positional ones")
	return cmd
}

// retagged applies a tag edit. Positional tags are added unless set replaces
// the list with them.
func retagged(current, positional, add, remove []string, set bool) []string {
	var tags []string
	if set {
		tags = append(tags, positional...)
	} else {
		tags = append(append(tags, current...), positional...)
	}
	tags = append(tags, add...)

	drop := map[string]bool{}
	for _, t := range remove {
		drop[strings.TrimSpace(t)] = true
	}
	out := make([]string, 0, len(tags))
	for _, t := range mutate.NormalizeTags(tags) {
		if !drop[t] {
			out = append(out, t)
		}
	}
	return out
}

func newNotesRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <note-id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, changed, err := applyOp(cmd, app, func(r model.Root) model.Root {
				return mutate.RemoveNote(r, owningSubject(r, args[0], mutate.KindNote), args[0])
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, mutationResult(changed, map[string]any{"id": args[0]}))
		},
	}
}

func findNote(root model.Root, subjectID, noteID string) *model.Note {
	s, ok := root.FindSubject(subjectID)
	if !ok {
		return nil
	}
	n, ok := s.FindNote(noteID)
	if !ok {
		return nil
	}
	return &n
}

// readContent returns the --content value, or the body of --content-file
// ("-" reads stdin) when that is set.
func readContent(cmd *cobra.Command, content, path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return content, nil
	}
	if path == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", errors.Wrap(err, "read stdin")
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "read content file")
	}
	return string(b), nil
}
