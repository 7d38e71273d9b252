// Package adapter contains infrastructure adapters for the exampack CLI.
package adapter

import (
	"io"
	"os"
	"path/filepath"

	m "exampack.dev/pkg/exampack/internal/model"
)

// BundleFS abstracts filesystem operations the packaging pipeline relies on.
// It hides direct `os` access so the domain logic can be tested without
// touching the disk where that matters.
type BundleFS interface {
	// Walk traverses root recursively and calls fn for every regular file.
	// When followLinks is true, symbolic links to directories are descended
	// into and links to files are reported as files.
	Walk(root m.Path, followLinks bool, fn FileWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// Stat returns metadata for a path so the domain can check existence or
	// compare modification times.
	Stat(path m.Path) (os.FileInfo, error)

	// WriteFile writes content to a file with the given permissions.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// CopyFile copies a single file, creating parent directories as needed.
	CopyFile(src, dst m.Path) error

	// MkdirAll creates a directory hierarchy. Already-existing directories
	// are not an error.
	MkdirAll(path m.Path) error

	// RemoveAll removes a path and all its contents.
	RemoveAll(path m.Path) error

	// ReadDir lists the entries of a directory.
	ReadDir(path m.Path) ([]os.DirEntry, error)
}

// FileWalkFunc receives one regular file per call: its absolute path and the
// path relative to the walk root, slash-separated.
type FileWalkFunc func(abs m.Path, rel string) error

// LocalBundleFS is the concrete BundleFS backed by the local filesystem.
type LocalBundleFS struct{}

// NewLocalBundleFS constructs a LocalBundleFS ready to be wired into the
// workflow.
func NewLocalBundleFS() *LocalBundleFS {
	return &LocalBundleFS{}
}

// Walk iterates over regular files under root. filepath.WalkDir never
// follows symbolic links, so link following is implemented by hand.
func (a *LocalBundleFS) Walk(root m.Path, followLinks bool, fn FileWalkFunc) error {
	return a.walk(string(root), "", followLinks, fn)
}

func (a *LocalBundleFS) walk(dir, rel string, followLinks bool, fn FileWalkFunc) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		abs := filepath.Join(dir, entry.Name())
		childRel := entry.Name()

		if rel != "" {
			childRel = rel + "/" + entry.Name()
		}

		isDir := entry.IsDir()

		if !isDir && entry.Type()&os.ModeSymlink != 0 {
			if !followLinks {
				continue
			}

			target, err := os.Stat(abs)
			if err != nil {
				return err
			}

			isDir = target.IsDir()
		}

		if isDir {
			if err := a.walk(abs, childRel, followLinks, fn); err != nil {
				return err
			}

			continue
		}

		if err := fn(m.Path(abs), childRel); err != nil {
			return err
		}
	}

	return nil
}

// ReadFile loads file contents from disk.
func (a *LocalBundleFS) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// Stat returns os.FileInfo metadata for the given path.
func (a *LocalBundleFS) Stat(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalBundleFS) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	return os.WriteFile(string(path), content, perm)
}

// CopyFile copies a single file.
func (a *LocalBundleFS) CopyFile(src, dst m.Path) error {
	// #nosec G304 - src is a resolved bundle source path, not raw user input
	sourceFile, err := os.Open(string(src))
	if err != nil {
		return err
	}

	defer func() { _ = sourceFile.Close() }()

	if err := os.MkdirAll(filepath.Dir(string(dst)), 0o750); err != nil {
		return err
	}

	// #nosec G304 - dst is an internal destination path, not raw user input
	destFile, err := os.Create(string(dst))
	if err != nil {
		return err
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		_ = destFile.Close()
		return err
	}

	return destFile.Close()
}

// MkdirAll creates a directory hierarchy.
func (a *LocalBundleFS) MkdirAll(path m.Path) error {
	return os.MkdirAll(string(path), 0o750)
}

// RemoveAll removes a path and all its contents.
func (a *LocalBundleFS) RemoveAll(path m.Path) error {
	return os.RemoveAll(string(path))
}

// ReadDir lists the entries of a directory.
func (a *LocalBundleFS) ReadDir(path m.Path) ([]os.DirEntry, error) {
	return os.ReadDir(string(path))
}
