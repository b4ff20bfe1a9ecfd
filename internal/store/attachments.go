package store

import (
	"io"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

const DefaultFileMaxBytes int64 = 50 * 1024 * 1024 // 50MB

// ImportedFile describes a local copy made by ImportFile.
type ImportedFile struct {
	Name string
	Size int64
	Type string
	Path string
	URL  string
}

func guessMimeType(filename string) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
	if ext == "" {
		return ""
	}
	return mime.TypeByExtension(ext)
}

// FileURL is the file:// URL of an absolute path.
func FileURL(path string) string {
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

// ImportFile copies srcPath to <dataDir>/files/<id>/<name> and describes the
// copy. With an empty dataDir nothing is copied and the reference points at
// srcPath itself.
func ImportFile(dataDir string, ids IDGenerator, srcPath string, maxBytes int64) (ImportedFile, error) {
	srcPath = filepath.Clean(strings.TrimSpace(srcPath))
	if srcPath == "" || srcPath == "." {
		return ImportedFile{}, errors.New("missing source path")
	}
	st, err := os.Stat(srcPath)
	if err != nil {
		return ImportedFile{}, errors.Wrap(err, "stat source file")
	}
	if st.IsDir() {
		return ImportedFile{}, errors.New("files: source path is a directory")
	}
	if maxBytes <= 0 {
		maxBytes = DefaultFileMaxBytes
	}
	if st.Size() > maxBytes {
		return ImportedFile{}, errors.Errorf("files: file too large (%d bytes > %d bytes)", st.Size(), maxBytes)
	}

	name := filepath.Base(srcPath)
	if strings.TrimSpace(name) == "" || name == string(filepath.Separator) {
		name = "file"
	}

	if strings.TrimSpace(dataDir) == "" {
		abs, err := filepath.Abs(srcPath)
		if err != nil {
			return ImportedFile{}, errors.Wrap(err, "resolve source path")
		}
		return ImportedFile{Name: name, Size: st.Size(), Type: guessMimeType(name), Path: abs, URL: FileURL(abs)}, nil
	}

	if ids == nil {
		ids = UUIDGenerator{}
	}
	destDir := filepath.Join(dataDir, "files", ids.NewID())
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return ImportedFile{}, errors.Wrap(err, "create files dir")
	}
	destPath := filepath.Join(destDir, name)

	in, err := os.Open(srcPath)
	if err != nil {
		return ImportedFile{}, errors.Wrap(err, "open source file")
	}
	defer in.Close()

	out, err := os.OpenFile(destPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return ImportedFile{}, errors.Wrap(err, "create local copy")
	}
	n, err := io.Copy(out, io.LimitReader(in, maxBytes+1))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > maxBytes {
		err = errors.Errorf("files: file too large (%d bytes > %d bytes)", n, maxBytes)
	}
	if err != nil {
		_ = os.RemoveAll(destDir)
		return ImportedFile{}, err
	}

	abs, err := filepath.Abs(destPath)
	if err != nil {
		abs = destPath
	}
	return ImportedFile{Name: name, Size: n, Type: guessMimeType(name), Path: abs, URL: FileURL(abs)}, nil
}
