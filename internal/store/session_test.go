package store

import (
	"context"
	"testing"

	"studybuddy/internal/model"

	"github.com/pkg/errors"
)

func renameFirst(name string) Op {
	return func(r model.Root) model.Root {
		subjects := append([]model.Subject(nil), r.Subjects...)
		subjects[0].Name = name
		return model.Root{Subjects: subjects, ActiveSubjectID: r.ActiveSubjectID}
	}
}

func TestSession_ApplyPersistsAndUndo(t *testing.T) {
	ctx := context.Background()
	bs := NewMemBlobStore()
	s := OpenSession(ctx, newTestStore(bs))

	changed, err := s.Apply(ctx, renameFirst("Calculus"))
	if err != nil || !changed {
		t.Fatalf("apply: changed=%v err=%v", changed, err)
	}
	if got := newTestStore(bs).Load(ctx).Subjects[0].Name; got != "Calculus" {
		t.Fatalf("expected persisted rename, got %q", got)
	}

	// A fresh session sees the persisted undo history.
	s2 := OpenSession(ctx, newTestStore(bs))
	if !s2.CanUndo() {
		t.Fatalf("expected undo history to survive reopen")
	}
	undone, err := s2.Undo(ctx)
	if err != nil || !undone {
		t.Fatalf("undo: undone=%v err=%v", undone, err)
	}
	if got := s2.Root().Subjects[0].Name; got != "Mathematics" {
		t.Fatalf("expected Mathematics after undo, got %q", got)
	}
	if got := newTestStore(bs).Load(ctx).Subjects[0].Name; got != "Mathematics" {
		t.Fatalf("expected undo persisted, got %q", got)
	}
	if again, _ := s2.Undo(ctx); again {
		t.Fatalf("expected nothing left to undo")
	}
}

func TestSession_NoOpIsNotRecorded(t *testing.T) {
	ctx := context.Background()
	s := OpenSession(ctx, newTestStore(NewMemBlobStore()))
	changed, err := s.Apply(ctx, func(r model.Root) model.Root { return r })
	if err != nil || changed {
		t.Fatalf("expected no-op, changed=%v err=%v", changed, err)
	}
	if s.CanUndo() {
		t.Fatalf("no-op must not be undoable")
	}
}

func TestSession_UndoDepthIsBounded(t *testing.T) {
	ctx := context.Background()
	s := OpenSession(ctx, newTestStore(NewMemBlobStore()))
	s.UndoDepth = 3
	for _, n := range []string{"a", "b", "c", "d", "e"} {
		if _, err := s.Apply(ctx, renameFirst(n)); err != nil {
			t.Fatalf("apply %s: %v", n, err)
		}
	}
	steps := 0
	for s.CanUndo() {
		if _, err := s.Undo(ctx); err != nil {
			t.Fatalf("undo: %v", err)
		}
		steps++
	}
	if steps != 3 {
		t.Fatalf("expected 3 undo steps, got %d", steps)
	}
	if got := s.Root().Subjects[0].Name; got != "b" {
		t.Fatalf("expected oldest retained state b, got %q", got)
	}
}

func TestSession_Reset(t *testing.T) {
	ctx := context.Background()
	s := OpenSession(ctx, newTestStore(NewMemBlobStore()))
	_, _ = s.Apply(ctx, renameFirst("X"))
	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if s.CanUndo() {
		t.Fatalf("expected history cleared")
	}
	if got := s.Root().Subjects[0].Name; got != "Mathematics" {
		t.Fatalf("expected seed after reset, got %q", got)
	}
}

func TestSession_SeedIsPersistedOnOpen(t *testing.T) {
	ctx := context.Background()
	bs := NewMemBlobStore()
	first := OpenSession(ctx, Store{Blobs: bs, IDs: UUIDGenerator{}, Now: fixedNow})
	second := OpenSession(ctx, Store{Blobs: bs, IDs: UUIDGenerator{}, Now: fixedNow})
	if first.Root().Subjects[0].ID != second.Root().Subjects[0].ID {
		t.Fatalf("expected stable seeded ids across sessions")
	}
}

// flakyBlobStore fails reads of DataKey while failReads > 0.
type flakyBlobStore struct {
	*MemBlobStore
	failReads int
}

func (f *flakyBlobStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == DataKey && f.failReads > 0 {
		f.failReads--
		return nil, false, errors.New("database is locked")
	}
	return f.MemBlobStore.Get(ctx, key)
}

func TestSession_ReadErrorNeverOverwritesPersistedData(t *testing.T) {
	ctx := context.Background()
	mem := NewMemBlobStore()
	saved := model.Root{Subjects: []model.Subject{{ID: "mine", Name: "My Real Data", ColorKey: model.ColorBlue}}}
	if err := newTestStore(mem).Save(ctx, saved); err != nil {
		t.Fatalf("save: %v", err)
	}
	before, _, _ := mem.Get(ctx, DataKey)

	bs := &flakyBlobStore{MemBlobStore: mem, failReads: 2}
	s := OpenSession(ctx, newTestStore(bs))
	if s.Unreadable() == nil {
		t.Fatalf("expected read error to be reported")
	}
	if s.Root().Subjects[0].Name != "Mathematics" {
		t.Fatalf("expected example tree in memory, got %#v", s.Root().Subjects)
	}
	after, _, _ := mem.Get(ctx, DataKey)
	if string(after) != string(before) {
		t.Fatalf("persisted data was overwritten on open:\n%s", after)
	}

	// Still unreadable: the mutation is refused and nothing is written.
	if changed, err := s.Apply(ctx, renameFirst("Calculus")); err == nil || changed {
		t.Fatalf("expected apply to fail while unreadable, changed=%v err=%v", changed, err)
	}
	after, _, _ = mem.Get(ctx, DataKey)
	if string(after) != string(before) {
		t.Fatalf("persisted data was overwritten by apply:\n%s", after)
	}

	// Once the backend recovers the persisted tree is adopted first.
	changed, err := s.Apply(ctx, renameFirst("Renamed"))
	if err != nil || !changed {
		t.Fatalf("apply after recovery: changed=%v err=%v", changed, err)
	}
	if s.Unreadable() != nil {
		t.Fatalf("expected read error to clear")
	}
	got := newTestStore(mem).Load(ctx)
	if len(got.Subjects) != 1 || got.Subjects[0].ID != "mine" || got.Subjects[0].Name != "Renamed" {
		t.Fatalf("expected the real tree to be edited, got %#v", got.Subjects)
	}
}
