package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Keys of the persisted blobs. Data and theme keep the browser storage key
// names so exported blobs stay interchangeable with the web app.
const (
	DataKey  = "studybuddypro.data.v1"
	ThemeKey = "studybuddypro.theme.v1"
	UndoKey  = "studybuddy.undo.v1"
)

// BlobStore is a durable key/value store of opaque byte blobs.
// Put must replace the whole value atomically from the caller's view.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, val []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
)

func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sqlite":
		return BackendSQLite, nil
	case "file", "files", "json":
		return BackendFile, nil
	case "memory", "mem":
		return BackendMemory, nil
	default:
		return "", fmt.Errorf("invalid backend: %q (expected sqlite|file|memory)", s)
	}
}

// OpenBlobStore opens the backend rooted at dir.
func OpenBlobStore(ctx context.Context, backend Backend, dir string) (BlobStore, error) {
	switch backend {
	case BackendSQLite:
		return OpenSQLiteBlobStore(ctx, dir)
	case BackendFile:
		return NewFileBlobStore(dir)
	case BackendMemory:
		return NewMemBlobStore(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", backend)
	}
}

type MemBlobStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemBlobStore() *MemBlobStore {
	return &MemBlobStore{data: map[string][]byte{}}
}

func (m *MemBlobStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *MemBlobStore) Put(_ context.Context, key string, val []byte) error {
	cp := make([]byte, len(val))
	copy(cp, val)
	m.mu.Lock()
	m.data[key] = cp
	m.mu.Unlock()
	return nil
}

func (m *MemBlobStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

func (m *MemBlobStore) Close() error { return nil }
