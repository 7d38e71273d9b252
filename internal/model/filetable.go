package model

// Overlay is a (source root, destination root) pair contributing files to a
// FileTable at a declared priority. Overlays applied later replace earlier
// entries at the same destination path.
type Overlay struct {
	Src Path
	Dst Path
}

// FileTable maps destination-relative paths to their content sources. It is
// the single mutable structure the packaging pipeline operates on.
//
// Replacing an entry is the override mechanism, not an error: a theme or
// extension file at the same destination as a runtime default silently wins.
// The table remembers the order in which destinations were first inserted so
// that asset aggregation is deterministic regardless of map iteration order;
// an override keeps the original position of its destination.
type FileTable struct {
	entries map[Path]ContentSource
	order   []Path
}

// NewFileTable returns an empty table.
func NewFileTable() *FileTable {
	return &FileTable{entries: make(map[Path]ContentSource)}
}

// Put inserts or replaces the entry at dst.
func (t *FileTable) Put(dst Path, src ContentSource) {
	if _, ok := t.entries[dst]; !ok {
		t.order = append(t.order, dst)
	}

	t.entries[dst] = src
}

// Get returns the entry at dst, if present.
func (t *FileTable) Get(dst Path) (ContentSource, bool) {
	src, ok := t.entries[dst]
	return src, ok
}

// Remove deletes the entry at dst. Removing and re-inserting a destination
// moves it to the end of the order.
func (t *FileTable) Remove(dst Path) {
	if _, ok := t.entries[dst]; !ok {
		return
	}

	delete(t.entries, dst)

	for i, p := range t.order {
		if p == dst {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries.
func (t *FileTable) Len() int {
	return len(t.entries)
}

// Paths returns the destinations in first-insertion order.
func (t *FileTable) Paths() []Path {
	paths := make([]Path, len(t.order))
	copy(paths, t.order)

	return paths
}
