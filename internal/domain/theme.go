package domain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"exampack.dev/pkg/exampack/internal/adapter"
	m "exampack.dev/pkg/exampack/internal/model"
)

const (
	themesDir   = "themes"
	inheritFile = "inherit.txt"
)

// ThemeResolver resolves theme identifiers into directories and follows
// inheritance declarations into an ordered chain.
type ThemeResolver struct {
	fs       adapter.BundleFS
	dataRoot m.Path
}

// NewThemeResolver constructs a ThemeResolver rooted at dataRoot.
func NewThemeResolver(fs adapter.BundleFS, dataRoot m.Path) *ThemeResolver {
	return &ThemeResolver{fs: fs, dataRoot: dataRoot}
}

// Resolve turns a theme identifier into a directory. An identifier that is
// itself an existing path is used directly; otherwise it is looked up under
// the data root's themes directory.
func (r *ThemeResolver) Resolve(identifier string) (m.Path, error) {
	if info, err := r.fs.Stat(m.Path(identifier)); err == nil && info.IsDir() {
		return m.Path(identifier), nil
	}

	candidate := m.Path(filepath.Join(string(r.dataRoot), themesDir, identifier))
	if info, err := r.fs.Stat(candidate); err == nil && info.IsDir() {
		return candidate, nil
	}

	return "", fmt.Errorf("%w: %s", ErrThemeNotFound, identifier)
}

// Chain resolves the full inheritance chain of the requested theme, ordered
// from most-base to most-specific so the requested theme wins all overlay
// collisions. A theme declares parents in an inherit.txt file, one
// identifier per line; parents of distinct themes that coincide are applied
// once. A theme inheriting itself, directly or transitively, is an error.
func (r *ThemeResolver) Chain(identifier string) ([]m.Path, error) {
	type request struct {
		identifier string
		ancestors  []m.Path
	}

	pending := []request{{identifier: identifier}}
	seen := make(map[m.Path]bool)

	var chain []m.Path

	for i := 0; i < len(pending); i++ {
		req := pending[i]

		dir, err := r.Resolve(req.identifier)
		if err != nil {
			return nil, err
		}

		for _, ancestor := range req.ancestors {
			if ancestor == dir {
				return nil, fmt.Errorf("%w: %s", ErrThemeCycle, dir)
			}
		}

		if seen[dir] {
			continue
		}

		seen[dir] = true
		chain = append(chain, dir)

		parents, err := r.parents(dir)
		if err != nil {
			return nil, err
		}

		// Parents are queued last-declared first so the final reversal
		// restores their declaration order.
		ancestors := append(append([]m.Path{}, req.ancestors...), dir)
		for i := len(parents) - 1; i >= 0; i-- {
			pending = append(pending, request{identifier: parents[i], ancestors: ancestors})
		}
	}

	// Ancestors precede the requested theme.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	return chain, nil
}

func (r *ThemeResolver) parents(dir m.Path) ([]string, error) {
	data, err := r.fs.ReadFile(m.Path(filepath.Join(string(dir), inheritFile)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("reading %s of theme %s: %w", inheritFile, dir, err)
	}

	var parents []string

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			parents = append(parents, line)
		}
	}

	return parents, nil
}
