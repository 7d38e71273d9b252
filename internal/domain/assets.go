package domain

import (
	"fmt"
	"strings"

	"exampack.dev/pkg/exampack/internal/adapter"
	m "exampack.dev/pkg/exampack/internal/model"
)

// BootstrapScript is the destination of the runtime loader: the runtime
// overlay maps to the bundle root, so its scripts/exampack.js lands here.
// It must initialize the runtime before any other script executes, so it is
// always concatenated first into the merged script bundle.
const BootstrapScript m.Path = "scripts/exampack.js"

// Aggregator collapses every table entry of an asset class into a single
// merged entry.
type Aggregator struct {
	fs adapter.BundleFS
}

// NewAggregator constructs an Aggregator reading file-backed entries
// through fs.
func NewAggregator(fs adapter.BundleFS) *Aggregator {
	return &Aggregator{fs: fs}
}

// Aggregate removes all entries of the class from the table and reinserts
// one merged entry at the class's fixed destination. Entries concatenate in
// table insertion order, except that the script class places the bootstrap
// script first; a script set without the bootstrap script is a fatal
// configuration error.
func (g *Aggregator) Aggregate(table *m.FileTable, class m.AssetClass) error {
	var collected []m.Path

	for _, dst := range table.Paths() {
		if class.Matches(dst) {
			collected = append(collected, dst)
		}
	}

	if class == m.Script {
		reordered, err := bootstrapFirst(collected)
		if err != nil {
			return err
		}

		collected = reordered
	}

	parts := make([]string, 0, len(collected))

	for _, dst := range collected {
		src, _ := table.Get(dst)

		data, err := sourceBytes(g.fs, src)
		if err != nil {
			return fmt.Errorf("reading %s %s: %w", class, dst, err)
		}

		parts = append(parts, string(data))
	}

	for _, dst := range collected {
		table.Remove(dst)
	}

	table.Put(class.MergedPath(), m.Blob(strings.Join(parts, "\n")))

	return nil
}

func bootstrapFirst(scripts []m.Path) ([]m.Path, error) {
	for i, dst := range scripts {
		if dst == BootstrapScript {
			reordered := make([]m.Path, 0, len(scripts))
			reordered = append(reordered, dst)
			reordered = append(reordered, scripts[:i]...)
			reordered = append(reordered, scripts[i+1:]...)

			return reordered, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrMissingBootstrap, BootstrapScript)
}
