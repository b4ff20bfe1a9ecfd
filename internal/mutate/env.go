package mutate

import (
	"strings"
	"time"

	"studybuddy/internal/model"
	"studybuddy/internal/store"
)

// Env supplies the only impure inputs of an operation: fresh ids and the clock.
type Env struct {
	IDs store.IDGenerator
	Now func() time.Time
}

func DefaultEnv() Env {
	return Env{IDs: store.UUIDGenerator{}, Now: time.Now}
}

func (e Env) newID() string {
	if e.IDs == nil {
		return store.UUIDGenerator{}.NewID()
	}
	return e.IDs.NewID()
}

func (e Env) nowMs() int64 {
	if e.Now == nil {
		return time.Now().UnixMilli()
	}
	return e.Now().UnixMilli()
}

// stamp returns a fresh updatedAt that never moves backwards.
func (e Env) stamp(prev int64) int64 {
	n := e.nowMs()
	if n < prev {
		return prev
	}
	return n
}

func indexByID[T any](xs []T, id string, idOf func(T) string) int {
	if strings.TrimSpace(id) == "" {
		return -1
	}
	for i := range xs {
		if idOf(xs[i]) == id {
			return i
		}
	}
	return -1
}

// replaceAt returns a copy of xs with xs[i] replaced by v.
func replaceAt[T any](xs []T, i int, v T) []T {
	out := make([]T, len(xs))
	copy(out, xs)
	out[i] = v
	return out
}

// removeAt returns a copy of xs without xs[i].
func removeAt[T any](xs []T, i int) []T {
	out := make([]T, 0, len(xs)-1)
	out = append(out, xs[:i]...)
	return append(out, xs[i+1:]...)
}

func appendCopy[T any](xs []T, v T) []T {
	out := make([]T, 0, len(xs)+1)
	out = append(out, xs...)
	return append(out, v)
}

func prependCopy[T any](xs []T, v T) []T {
	out := make([]T, 0, len(xs)+1)
	out = append(out, v)
	return append(out, xs...)
}

func idOfSubject(s model.Subject) string { return s.ID }
func idOfFolder(f model.Folder) string { return f.ID }
func idOfNote(n model.Note) string { return n.ID }
func idOfAssignment(a model.Assignment) string { return a.ID }
func idOfChecklistItem(c model.ChecklistItem) string { return c.ID }
func idOfFile(f model.FileRef) string { return f.ID }

// withSubject applies fn to one subject and rebuilds the root around the
// result. A missing subject, or fn reporting no change, returns root as is.
func withSubject(root model.Root, id string, fn func(model.Subject) (model.Subject, bool)) model.Root {
	i := indexByID(root.Subjects, id, idOfSubject)
	if i < 0 {
		return root
	}
	next, changed := fn(root.Subjects[i])
	if !changed {
		return root
	}
	return model.Root{
		Subjects:        replaceAt(root.Subjects, i, next),
		ActiveSubjectID: root.ActiveSubjectID,
	}
}

func strPtr(s string) *string { return &s }
