package domain

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"exampack.dev/pkg/exampack/internal/adapter"
	m "exampack.dev/pkg/exampack/internal/model"
)

const (
	runtimeDir    = "runtime"
	extensionsDir = "extensions"
	resourcesDir  = "resources"
	themeFilesDir = "files"
)

// Collector builds the virtual file table from an ordered overlay list.
type Collector struct {
	fs          adapter.BundleFS
	followLinks bool
}

// NewCollector constructs a Collector. followLinks controls whether
// symbolic links inside overlay directories are descended into.
func NewCollector(fs adapter.BundleFS, followLinks bool) *Collector {
	return &Collector{fs: fs, followLinks: followLinks}
}

// BuildOverlays assembles the overlay list in increasing priority order:
// the runtime root, one overlay per declared extension, the theme chain
// from most-base to most-specific, and directory-valued resources. Single
// file resources are returned separately; they become direct table entries.
// Relative resource paths are resolved against resourceBase, the directory
// of the source document.
func (c *Collector) BuildOverlays(dataRoot m.Path, exam *m.Exam, themeChain []m.Path, resourceBase m.Path) ([]m.Overlay, []m.Resource) {
	overlays := []m.Overlay{
		{Src: m.Path(filepath.Join(string(dataRoot), runtimeDir)), Dst: "."},
	}

	for _, ext := range exam.Extensions {
		src := m.Path(filepath.Join(string(dataRoot), extensionsDir, ext))
		if info, err := c.fs.Stat(src); err != nil || !info.IsDir() {
			continue
		}

		overlays = append(overlays, m.Overlay{Src: src, Dst: m.Path(path.Join(extensionsDir, ext))})
	}

	for _, theme := range themeChain {
		overlays = append(overlays, m.Overlay{Src: m.Path(filepath.Join(string(theme), themeFilesDir)), Dst: "."})
	}

	var fileResources []m.Resource

	for _, res := range exam.Resources {
		src := resolveResource(resourceBase, res.Path)

		if info, err := c.fs.Stat(src); err == nil && info.IsDir() {
			overlays = append(overlays, m.Overlay{Src: src, Dst: m.Path(path.Join(resourcesDir, res.Name))})
			continue
		}

		fileResources = append(fileResources, m.Resource{Name: res.Name, Path: src})
	}

	return overlays, fileResources
}

// Collect walks every overlay in order and fills the table. Later overlays
// replace earlier entries at the same destination; that is the override
// mechanism, not an error. Editor backup files are skipped. File-valued
// resources land directly at resources/<name> and override everything.
func (c *Collector) Collect(table *m.FileTable, overlays []m.Overlay, fileResources []m.Resource) error {
	for _, overlay := range overlays {
		dst := overlay.Dst

		err := c.fs.Walk(overlay.Src, c.followLinks, func(abs m.Path, rel string) error {
			if isBackupFile(rel) {
				return nil
			}

			table.Put(m.Path(path.Join(string(dst), rel)), m.FileSource{AbsPath: abs})

			return nil
		})
		if err != nil {
			return fmt.Errorf("collecting overlay %s: %w", overlay.Src, err)
		}
	}

	for _, res := range fileResources {
		table.Put(m.Path(path.Join(resourcesDir, res.Name)), m.FileSource{AbsPath: res.Path})
	}

	return nil
}

// resolveResource leaves absolute resource paths alone and anchors relative
// ones at the source document's directory.
func resolveResource(base, res m.Path) m.Path {
	if filepath.IsAbs(string(res)) {
		return res
	}

	return m.Path(filepath.Join(string(base), string(res)))
}

// isBackupFile matches editor leftovers (trailing ~, .swp) that must never
// end up in a bundle.
func isBackupFile(rel string) bool {
	base := path.Base(rel)
	return strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp")
}

// relativeHref normalizes a destination path into a slash-joined relative
// URL: `.` and empty segments collapse, so ./a/b.js and a/b.js agree.
func relativeHref(dst m.Path) string {
	cleaned := path.Clean(strings.TrimPrefix(string(dst), "/"))
	if cleaned == "." {
		return ""
	}

	return cleaned
}

// sourceBytes reads the content behind a table entry.
func sourceBytes(fs adapter.BundleFS, src m.ContentSource) ([]byte, error) {
	switch s := src.(type) {
	case m.FileSource:
		return fs.ReadFile(s.AbsPath)
	case m.BlobSource:
		return s.Data, nil
	}

	return nil, fmt.Errorf("unknown content source %T", src)
}
