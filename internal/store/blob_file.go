package store

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// FileBlobStore stores each key as <dir>/<escaped key>.json.
type FileBlobStore struct {
	Dir string
}

func NewFileBlobStore(dir string) (*FileBlobStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("file store: missing dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "file store: create dir")
	}
	return &FileBlobStore{Dir: dir}, nil
}

func (f *FileBlobStore) path(key string) string {
	return filepath.Join(f.Dir, url.PathEscape(key)+".json")
}

func (f *FileBlobStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, errors.Wrapf(err, "file store: read %s", key)
	}
	return b, true, nil
}

func (f *FileBlobStore) Put(_ context.Context, key string, val []byte) error {
	return errors.Wrapf(atomicWriteFile(f.Dir, ".blob.*.tmp", f.path(key), val, 0o644), "file store: write %s", key)
}

func (f *FileBlobStore) Delete(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrapf(err, "file store: delete %s", key)
	}
	return nil
}

func (f *FileBlobStore) Close() error { return nil }

// atomicWriteFile writes through a unique temp file and renames it over path,
// so readers never observe a partially written blob.
func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	tmpF, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := tmpF.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := tmpF.Write(b); err != nil {
		_ = tmpF.Close()
		return err
	}
	if err := tmpF.Sync(); err != nil {
		_ = tmpF.Close()
		return err
	}
	if err := tmpF.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}
