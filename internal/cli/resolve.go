package cli

import (
	"strings"

	"studybuddy/internal/model"
	"studybuddy/internal/mutate"
	"studybuddy/internal/store"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var errNoSubjects = errors.New("no subjects; run `studybuddy subjects add` first")

// resolveSubject finds a subject by id or case-insensitive name. An empty
// ref means the active subject.
func resolveSubject(root model.Root, ref string) (model.Subject, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		s, ok := root.ActiveSubject()
		if !ok {
			return model.Subject{}, errNoSubjects
		}
		return s, nil
	}
	if s, ok := root.FindSubject(ref); ok {
		return s, nil
	}
	for _, s := range root.Subjects {
		if strings.EqualFold(s.Name, ref) {
			return s, nil
		}
	}
	return model.Subject{}, mutate.NotFoundError{Kind: "subject", ID: ref}
}

// resolveFolder finds a folder of s by id or case-insensitive name.
func resolveFolder(s model.Subject, ref string) (model.Folder, error) {
	ref = strings.TrimSpace(ref)
	if f, ok := s.FindFolder(ref); ok {
		return f, nil
	}
	for _, f := range s.Folders {
		if strings.EqualFold(f.Name, ref) {
			return f, nil
		}
	}
	return model.Folder{}, mutate.NotFoundError{Kind: "folder", ID: ref}
}

// owningSubject returns the id of the subject holding entity id, or "" when
// no entity of that kind exists. Mutations given "" are no-ops.
func owningSubject(root model.Root, id, kind string) string {
	loc, err := mutate.Locate(root, id)
	if err != nil || loc.Kind != kind {
		return ""
	}
	return loc.SubjectID
}

// mutationResult is the envelope for every mutating command.
func mutationResult(changed bool, data any) map[string]any {
	return map[string]any{
		"data": data,
		"meta": map[string]any{"changed": changed},
	}
}

// applyOp opens a session, applies op and reports the resulting tree.
func applyOp(cmd *cobra.Command, app *App, op store.Op) (model.Root, bool, error) {
	ctx := cmdContext(cmd)
	sess, done, err := app.openSession(ctx)
	if err != nil {
		return model.Root{}, false, err
	}
	defer done()
	changed, err := sess.Apply(ctx, op)
	if err != nil {
		return sess.Root(), changed, err
	}
	return sess.Root(), changed, nil
}

// loadRoot opens the store read-only and returns the current tree.
func loadRoot(cmd *cobra.Command, app *App) (model.Root, error) {
	ctx := cmdContext(cmd)
	sess, done, err := app.openSession(ctx)
	if err != nil {
		return model.Root{}, err
	}
	defer done()
	return sess.Root(), nil
}

// applySubjectOp resolves ref against the loaded tree and applies op to the
// subject it names. An unknown ref is reported and nothing is written.
func applySubjectOp(cmd *cobra.Command, app *App, ref string, op func(model.Root, model.Subject) model.Root) (model.Root, bool, error) {
	var resolveErr error
	root, changed, err := applyOp(cmd, app, func(r model.Root) model.Root {
		s, err := resolveSubject(r, ref)
		if err != nil {
			resolveErr = err
			return r
		}
		return op(r, s)
	})
	if err != nil {
		return root, changed, err
	}
	return root, changed, resolveErr
}

var errResetNeedsYes = errors.New("reset deletes all data; pass --yes to confirm")
