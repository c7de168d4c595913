// Package fsplugin gives the frontend scoped filesystem access. Every path
// is resolved inside the configured root; escapes are rejected.
package fsplugin

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

var ErrOutOfScope = errors.New("fs: path escapes the configured scope")

type Entry struct {
	Name  string `json:"name"`
	IsDir bool   `json:"is_dir"`
	Size  int64  `json:"size"`
}

type FS struct {
	fs   afero.Fs
	root string
}

// New scopes all operations to root via an afero base-path overlay.
func New(root string) *FS {
	return &FS{
		fs:   afero.NewBasePathFs(afero.NewOsFs(), root),
		root: root,
	}
}

// NewMem returns a memory-backed instance for tests.
func NewMem() *FS {
	return &FS{fs: afero.NewMemMapFs(), root: "/"}
}

func (f *FS) Root() string { return f.root }

// EnsureRoot creates the scope directory.
func (f *FS) EnsureRoot() error {
	return os.MkdirAll(f.root, 0o755)
}

// clean normalizes a request path and rejects attempts to climb out of the
// scope before the overlay even sees them.
func clean(path string) (string, error) {
	rel := filepath.ToSlash(filepath.Clean(path))
	if rel == "" || rel == "." || rel == "/" || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", ErrOutOfScope
	}
	return "/" + strings.TrimPrefix(rel, "/"), nil
}

func (f *FS) ReadFile(path string) ([]byte, error) {
	p, err := clean(path)
	if err != nil {
		return nil, err
	}
	return afero.ReadFile(f.fs, p)
}

func (f *FS) WriteFile(path string, data []byte) error {
	p, err := clean(path)
	if err != nil {
		return err
	}
	if err := f.fs.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(f.fs, p, data, 0o644)
}

func (f *FS) Remove(path string) error {
	p, err := clean(path)
	if err != nil {
		return err
	}
	return f.fs.Remove(p)
}

func (f *FS) List(dir string) ([]Entry, error) {
	p := "/"
	if dir != "" && dir != "/" && dir != "." {
		var err error
		p, err = clean(dir)
		if err != nil {
			return nil, err
		}
	}
	infos, err := afero.ReadDir(f.fs, p)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, Entry{
			Name:  info.Name(),
			IsDir: info.IsDir(),
			Size:  info.Size(),
		})
	}
	return entries, nil
}

func (f *FS) Exists(path string) (bool, error) {
	p, err := clean(path)
	if err != nil {
		return false, err
	}
	return afero.Exists(f.fs, p)
}
