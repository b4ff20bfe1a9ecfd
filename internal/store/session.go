package store

import (
	"context"
	"encoding/json"
	"reflect"

	"studybuddy/internal/model"

	"github.com/pkg/errors"
)

// DefaultUndoDepth bounds the persisted undo history.
const DefaultUndoDepth = 20

// Op computes the next tree from the current one without mutating it.
type Op func(model.Root) model.Root

// Session is the single writer over a Store: it holds the current tree,
// persists every change, and keeps a bounded undo history next to the data.
type Session struct {
	Store     Store
	UndoDepth int

	root    model.Root
	history []model.Root

	// readErr is set while the persisted tree could not be read. The
	// session then shows example data but never writes over the store.
	readErr error
}

// OpenSession loads the tree and the undo history from st. When the key was
// absent or corrupt the example tree is persisted right away so its ids stay
// stable across sessions. A failed read keeps the example tree in memory only.
func OpenSession(ctx context.Context, st Store) *Session {
	s := &Session{Store: st, UndoDepth: DefaultUndoDepth}
	root, state, err := st.load(ctx)
	s.root = root
	switch state {
	case loadedSeed:
		// Best effort: a failed write leaves the in-memory tree usable.
		_ = st.Save(ctx, root)
	case loadedUnreadable:
		s.readErr = err
	}
	s.history = s.loadHistory(ctx)
	return s
}

// Unreadable reports the read error hiding the persisted tree, if any.
func (s *Session) Unreadable() error {
	return s.readErr
}

// reload retries a failed read before anything is written. On success the
// persisted tree replaces the in-memory example tree.
func (s *Session) reload(ctx context.Context) error {
	if s.readErr == nil {
		return nil
	}
	root, state, err := s.Store.load(ctx)
	if state == loadedUnreadable {
		s.readErr = err
		return errors.Wrap(err, "persisted data is unreadable; refusing to overwrite it")
	}
	s.root = root
	s.readErr = nil
	if state == loadedSeed {
		_ = s.Store.Save(ctx, root)
	}
	s.history = s.loadHistory(ctx)
	return nil
}

func (s *Session) Root() model.Root {
	return s.root
}

// Apply runs op, replaces the current tree with its result and persists it.
// A no-op result is neither persisted nor recorded for undo. While the
// persisted tree is unreadable Apply fails without touching anything. Persistence
// errors are returned but the in-memory tree keeps the new value.
func (s *Session) Apply(ctx context.Context, op Op) (bool, error) {
	if err := s.reload(ctx); err != nil {
		return false, err
	}
	next := op(s.root)
	if reflect.DeepEqual(next, s.root) {
		return false, nil
	}
	s.pushHistory(s.root)
	s.root = next
	if err := s.Store.Save(ctx, next); err != nil {
		return true, err
	}
	return true, s.saveHistory(ctx)
}

// Undo restores the tree as it was before the last applied change. It
// reports false when there is nothing to undo.
func (s *Session) Undo(ctx context.Context) (bool, error) {
	if err := s.reload(ctx); err != nil {
		return false, err
	}
	if len(s.history) == 0 {
		return false, nil
	}
	prev := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.root = prev
	if err := s.Store.Save(ctx, prev); err != nil {
		return true, err
	}
	return true, s.saveHistory(ctx)
}

func (s *Session) CanUndo() bool {
	return len(s.history) > 0
}

// Reset drops persisted data and history and reloads the example tree.
func (s *Session) Reset(ctx context.Context) error {
	if err := s.Store.Reset(ctx); err != nil {
		return err
	}
	if err := s.Store.Blobs.Delete(ctx, UndoKey); err != nil {
		return err
	}
	s.history = nil
	s.readErr = nil
	s.root = s.Store.Load(ctx)
	return s.Store.Save(ctx, s.root)
}

func (s *Session) pushHistory(root model.Root) {
	depth := s.UndoDepth
	if depth <= 0 {
		depth = DefaultUndoDepth
	}
	s.history = append(s.history, root)
	if over := len(s.history) - depth; over > 0 {
		s.history = append([]model.Root(nil), s.history[over:]...)
	}
}

func (s *Session) loadHistory(ctx context.Context) []model.Root {
	b, ok, err := s.Store.Blobs.Get(ctx, UndoKey)
	if err != nil || !ok {
		return nil
	}
	var hist []model.Root
	if err := json.Unmarshal(b, &hist); err != nil {
		s.Store.logger().WithError(err).Debug("ignoring corrupt undo history")
		return nil
	}
	for i := range hist {
		hist[i] = normalizeRoot(hist[i])
	}
	return hist
}

func (s *Session) saveHistory(ctx context.Context) error {
	hist := make([]model.Root, 0, len(s.history))
	for _, r := range s.history {
		hist = append(hist, normalizeRoot(r))
	}
	b, err := json.Marshal(hist)
	if err != nil {
		return errors.Wrap(err, "encode undo history")
	}
	return s.Store.Blobs.Put(ctx, UndoKey, b)
}
