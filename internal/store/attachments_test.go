package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestImportFile_CopiesIntoDataDir(t *testing.T) {
	src := filepath.Join(t.TempDir(), "syllabus.pdf")
	if err := os.WriteFile(src, []byte("hello pdf"), 0o644); err != nil {
		t.Fatalf("write src: %v", err)
	}
	dataDir := t.TempDir()

	f, err := ImportFile(dataDir, &SequenceGenerator{Prefix: "f"}, src, 0)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if f.Name != "syllabus.pdf" || f.Size != 9 {
		t.Fatalf("unexpected import: %+v", f)
	}
	if f.Type != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", f.Type)
	}
	if !strings.HasPrefix(f.Path, dataDir) {
		t.Fatalf("expected copy under %s, got %s", dataDir, f.Path)
	}
	if !strings.HasPrefix(f.URL, "file://") {
		t.Fatalf("expected file URL, got %q", f.URL)
	}
	b, err := os.ReadFile(f.Path)
	if err != nil || string(b) != "hello pdf" {
		t.Fatalf("copy mismatch: %q %v", b, err)
	}
}

func TestImportFile_WithoutDataDirReferencesSource(t *testing.T) {
	src := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
		t.Fatalf("write src: %v", err)
	}
	f, err := ImportFile("", nil, src, 0)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if f.Path != src {
		t.Fatalf("expected %s, got %s", src, f.Path)
	}
}

func TestImportFile_Rejects(t *testing.T) {
	dir := t.TempDir()
	if _, err := ImportFile("", nil, dir, 0); err == nil {
		t.Fatalf("expected error for directory")
	}
	if _, err := ImportFile("", nil, filepath.Join(dir, "missing"), 0); err == nil {
		t.Fatalf("expected error for missing file")
	}

	big := filepath.Join(dir, "big.bin")
	if err := os.WriteFile(big, make([]byte, 16), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ImportFile(t.TempDir(), nil, big, 8); err == nil {
		t.Fatalf("expected size limit error")
	}
}
