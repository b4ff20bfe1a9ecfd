package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func openBackends(t *testing.T) map[Backend]BlobStore {
	t.Helper()
	ctx := context.Background()
	out := map[Backend]BlobStore{}
	for _, b := range []Backend{BackendSQLite, BackendFile, BackendMemory} {
		bs, err := OpenBlobStore(ctx, b, filepath.Join(t.TempDir(), string(b)))
		if err != nil {
			t.Fatalf("open %s: %v", b, err)
		}
		t.Cleanup(func() { _ = bs.Close() })
		out[b] = bs
	}
	return out
}

func TestBlobStores_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, bs := range openBackends(t) {
		if _, ok, err := bs.Get(ctx, DataKey); err != nil || ok {
			t.Fatalf("%s: expected missing key, got ok=%v err=%v", name, ok, err)
		}
		if err := bs.Put(ctx, DataKey, []byte(`{"a":1}`)); err != nil {
			t.Fatalf("%s: put: %v", name, err)
		}
		if err := bs.Put(ctx, DataKey, []byte(`{"a":2}`)); err != nil {
			t.Fatalf("%s: overwrite: %v", name, err)
		}
		got, ok, err := bs.Get(ctx, DataKey)
		if err != nil || !ok || string(got) != `{"a":2}` {
			t.Fatalf("%s: get = %q ok=%v err=%v", name, got, ok, err)
		}
		if err := bs.Delete(ctx, DataKey); err != nil {
			t.Fatalf("%s: delete: %v", name, err)
		}
		if err := bs.Delete(ctx, DataKey); err != nil {
			t.Fatalf("%s: second delete should be a no-op: %v", name, err)
		}
		if _, ok, _ := bs.Get(ctx, DataKey); ok {
			t.Fatalf("%s: expected key gone after delete", name)
		}
	}
}

func TestMemBlobStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemBlobStore()
	v := []byte("abc")
	_ = m.Put(ctx, "k", v)
	v[0] = 'x'
	got, _, _ := m.Get(ctx, "k")
	if string(got) != "abc" {
		t.Fatalf("expected stored copy, got %q", got)
	}
	got[1] = 'y'
	again, _, _ := m.Get(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("expected returned copy, got %q", again)
	}
}

func TestSQLiteBlobStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := OpenSQLiteBlobStore(ctx, dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Put(ctx, ThemeKey, []byte("dark")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "studybuddy.sqlite")); err != nil {
		t.Fatalf("expected sqlite file: %v", err)
	}

	s2, err := OpenSQLiteBlobStore(ctx, dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	got, ok, err := s2.Get(ctx, ThemeKey)
	if err != nil || !ok || string(got) != "dark" {
		t.Fatalf("get after reopen = %q ok=%v err=%v", got, ok, err)
	}
}

func TestFileBlobStore_NoTempFilesLeft(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	f, err := NewFileBlobStore(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := f.Put(ctx, DataKey, []byte("{}")); err != nil {
			t.Fatalf("put: %v", err)
		}
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(ents) != 1 {
		names := []string{}
		for _, e := range ents {
			names = append(names, e.Name())
		}
		t.Fatalf("expected exactly one blob file, got %v", names)
	}
}

func TestParseBackend(t *testing.T) {
	for in, want := range map[string]Backend{"": BackendSQLite, "SQLite": BackendSQLite, "file": BackendFile, "mem": BackendMemory} {
		got, err := ParseBackend(in)
		if err != nil || got != want {
			t.Fatalf("ParseBackend(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseBackend("redis"); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
