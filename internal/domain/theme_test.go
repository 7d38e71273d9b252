package domain

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"exampack.dev/pkg/exampack/internal/adapter"
	m "exampack.dev/pkg/exampack/internal/model"
)

func makeTheme(t *testing.T, dataRoot, name string, parents ...string) string {
	t.Helper()

	dir := filepath.Join(dataRoot, "themes", name)
	if err := os.MkdirAll(filepath.Join(dir, "files"), 0o750); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	if len(parents) > 0 {
		var inherit string
		for _, parent := range parents {
			inherit += parent + "\n"
		}

		if err := os.WriteFile(filepath.Join(dir, "inherit.txt"), []byte(inherit), 0o600); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}

	return dir
}

func TestThemeResolver_Resolve(t *testing.T) {
	resolver := NewThemeResolver(adapter.NewLocalBundleFS(), m.Path(t.TempDir()))

	t.Run("unknown theme", func(t *testing.T) {
		_, err := resolver.Resolve("nope")
		if !errors.Is(err, ErrThemeNotFound) {
			t.Fatalf("error = %v, want ErrThemeNotFound", err)
		}
	})

	t.Run("direct path wins over lookup", func(t *testing.T) {
		dir := t.TempDir()

		resolved, err := resolver.Resolve(dir)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}

		if resolved != m.Path(dir) {
			t.Fatalf("Resolve() = %s, want %s", resolved, dir)
		}
	})
}

func TestThemeResolver_ResolveByName(t *testing.T) {
	dataRoot := t.TempDir()
	dir := makeTheme(t, dataRoot, "default")

	resolver := NewThemeResolver(adapter.NewLocalBundleFS(), m.Path(dataRoot))

	resolved, err := resolver.Resolve("default")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if resolved != m.Path(dir) {
		t.Fatalf("Resolve() = %s, want %s", resolved, dir)
	}
}

func TestThemeResolver_ChainOrder(t *testing.T) {
	dataRoot := t.TempDir()

	dirA := makeTheme(t, dataRoot, "a")
	dirB := makeTheme(t, dataRoot, "b")
	dirLeaf := makeTheme(t, dataRoot, "leaf", "a", "b")

	resolver := NewThemeResolver(adapter.NewLocalBundleFS(), m.Path(dataRoot))

	chain, err := resolver.Chain("leaf")
	if err != nil {
		t.Fatalf("Chain() error = %v", err)
	}

	want := []m.Path{m.Path(dirA), m.Path(dirB), m.Path(dirLeaf)}
	if len(chain) != len(want) {
		t.Fatalf("Chain() = %v, want %v", chain, want)
	}

	for i := range want {
		if chain[i] != want[i] {
			t.Fatalf("Chain() = %v, want %v", chain, want)
		}
	}
}

func TestThemeResolver_ChainGrandparents(t *testing.T) {
	dataRoot := t.TempDir()

	dirBase := makeTheme(t, dataRoot, "base")
	dirMid := makeTheme(t, dataRoot, "mid", "base")
	dirLeaf := makeTheme(t, dataRoot, "leaf", "mid")

	resolver := NewThemeResolver(adapter.NewLocalBundleFS(), m.Path(dataRoot))

	chain, err := resolver.Chain("leaf")
	if err != nil {
		t.Fatalf("Chain() error = %v", err)
	}

	want := []m.Path{m.Path(dirBase), m.Path(dirMid), m.Path(dirLeaf)}
	for i := range want {
		if chain[i] != want[i] {
			t.Fatalf("Chain() = %v, want %v", chain, want)
		}
	}
}

func TestThemeResolver_DiamondInheritanceIsNotACycle(t *testing.T) {
	dataRoot := t.TempDir()

	dirBase := makeTheme(t, dataRoot, "base")
	makeTheme(t, dataRoot, "a", "base")
	makeTheme(t, dataRoot, "b", "base")
	makeTheme(t, dataRoot, "leaf", "a", "b")

	resolver := NewThemeResolver(adapter.NewLocalBundleFS(), m.Path(dataRoot))

	chain, err := resolver.Chain("leaf")
	if err != nil {
		t.Fatalf("Chain() error = %v", err)
	}

	if len(chain) != 4 {
		t.Fatalf("Chain() has %d entries, want 4 (base applied once): %v", len(chain), chain)
	}

	if chain[0] != m.Path(dirBase) {
		t.Fatalf("Chain()[0] = %s, want %s", chain[0], dirBase)
	}
}

func TestThemeResolver_CycleIsFatal(t *testing.T) {
	dataRoot := t.TempDir()

	makeTheme(t, dataRoot, "a", "b")
	makeTheme(t, dataRoot, "b", "a")

	resolver := NewThemeResolver(adapter.NewLocalBundleFS(), m.Path(dataRoot))

	_, err := resolver.Chain("a")
	if !errors.Is(err, ErrThemeCycle) {
		t.Fatalf("error = %v, want ErrThemeCycle", err)
	}
}

func TestThemeResolver_UnknownParentIsFatal(t *testing.T) {
	dataRoot := t.TempDir()
	makeTheme(t, dataRoot, "leaf", "ghost")

	resolver := NewThemeResolver(adapter.NewLocalBundleFS(), m.Path(dataRoot))

	_, err := resolver.Chain("leaf")
	if !errors.Is(err, ErrThemeNotFound) {
		t.Fatalf("error = %v, want ErrThemeNotFound", err)
	}
}
