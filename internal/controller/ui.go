// Package controller provides output adapters for the exampack CLI.
package controller

import (
	"os"

	"golang.org/x/term"
)

// FileRow is one virtual-file-table entry prepared for display.
type FileRow struct {
	Dest   string
	Origin string
}

// ThemeRow is one discovered theme with its resolved inheritance chain.
type ThemeRow struct {
	Name  string
	Chain []string
}

// UI defines how build results are presented. Implementations can use
// different output methods (plain text tables, interactive TUI).
type UI interface {
	// Success prints the single confirmation line of a successful build.
	Success(msg string)

	// DisplayFileTable renders the resolved virtual file table.
	DisplayFileTable(rows []FileRow) error

	// DisplayThemes renders the discovered themes and their chains.
	DisplayThemes(rows []ThemeRow) error
}

// IsTTY reports whether the file is an interactive terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
