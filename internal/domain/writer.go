package domain

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zip"

	"exampack.dev/pkg/exampack/internal/adapter"
	m "exampack.dev/pkg/exampack/internal/model"
)

// PackageWriter emits the final file table to one physical output target.
// Exactly one strategy is selected per build; writer selection has no
// effect on earlier pipeline stages.
type PackageWriter interface {
	Write(ctx context.Context, table *m.FileTable) error
}

// DirWriter syncs the table into a directory tree. Unless the build is a
// clean one, file-backed entries are copied only when the destination is
// missing or strictly older than the source, which makes repeated builds
// incremental. Generated entries are always rewritten; they have no prior
// timestamp to compare against.
type DirWriter struct {
	fs     adapter.BundleFS
	output m.Path
	clean  bool
}

// NewDirWriter constructs a DirWriter targeting output.
func NewDirWriter(fs adapter.BundleFS, output m.Path, clean bool) *DirWriter {
	return &DirWriter{fs: fs, output: output, clean: clean}
}

// Write emits every table entry into the output directory.
func (w *DirWriter) Write(_ context.Context, table *m.FileTable) error {
	if w.clean {
		// Deleting a directory that is not there is benign.
		_ = w.fs.RemoveAll(w.output)
	}

	if err := w.fs.MkdirAll(w.output); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}

	for _, dst := range table.Paths() {
		src, _ := table.Get(dst)

		target := m.Path(filepath.Join(string(w.output), filepath.FromSlash(relativeHref(dst))))

		if err := w.fs.MkdirAll(m.Path(filepath.Dir(string(target)))); err != nil {
			return fmt.Errorf("%w: %v", ErrOutputWrite, err)
		}

		switch s := src.(type) {
		case m.FileSource:
			if !w.shouldCopy(s.AbsPath, target) {
				continue
			}

			if err := w.fs.CopyFile(s.AbsPath, target); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrOutputWrite, dst, err)
			}

		case m.BlobSource:
			if err := w.fs.WriteFile(target, s.Data, 0o644); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrOutputWrite, dst, err)
			}
		}
	}

	return nil
}

// shouldCopy implements the incremental rule: copy on clean builds, missing
// destinations, or a source strictly newer than the destination. Comparison
// is mtime-based, so it is not bit-reproducible across clock skew.
func (w *DirWriter) shouldCopy(src, dst m.Path) bool {
	if w.clean {
		return true
	}

	dstInfo, err := w.fs.Stat(dst)
	if err != nil {
		return true
	}

	srcInfo, err := w.fs.Stat(src)
	if err != nil {
		// Let the copy surface the real error.
		return true
	}

	return srcInfo.ModTime().After(dstInfo.ModTime())
}

// ZipWriter packs the table into a single zip archive: a full,
// non-incremental write with normalized entry names and fixed permission
// bits. The archive is only valid once closed after all entries are
// written.
type ZipWriter struct {
	fs     adapter.BundleFS
	output m.Path
}

// NewZipWriter constructs a ZipWriter targeting output.
func NewZipWriter(fs adapter.BundleFS, output m.Path) *ZipWriter {
	return &ZipWriter{fs: fs, output: output}
}

// Write creates the archive and streams every table entry into it.
func (w *ZipWriter) Write(_ context.Context, table *m.FileTable) error {
	if err := w.fs.MkdirAll(m.Path(filepath.Dir(string(w.output)))); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}

	f, err := os.Create(string(w.output))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}

	defer func() { _ = f.Close() }()

	archive := zip.NewWriter(f)

	for _, dst := range table.Paths() {
		src, _ := table.Get(dst)

		data, err := sourceBytes(w.fs, src)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrOutputWrite, dst, err)
		}

		header := &zip.FileHeader{
			Name:     relativeHref(dst),
			Method:   zip.Deflate,
			Modified: time.Now(),
		}
		header.SetMode(0o644)

		entry, err := archive.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrOutputWrite, dst, err)
		}

		if _, err := entry.Write(data); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrOutputWrite, dst, err)
		}
	}

	if err := archive.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}

	return nil
}
