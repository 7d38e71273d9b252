package model

import "path"

// AssetClass is a category of mergeable bundle files. All entries of a class
// are collapsed into exactly one merged output entry before packaging.
type AssetClass uint

const (
	// Stylesheet covers .css entries, merged into styles.css.
	Stylesheet AssetClass = iota
	// Script covers .js entries, merged into scripts.js.
	Script
)

// Ext returns the file extension identifying the class.
func (c AssetClass) Ext() string {
	if c == Stylesheet {
		return ".css"
	}

	return ".js"
}

// MergedPath returns the destination of the class's merged bundle entry.
func (c AssetClass) MergedPath() Path {
	if c == Stylesheet {
		return "styles.css"
	}

	return "scripts.js"
}

func (c AssetClass) String() string {
	if c == Stylesheet {
		return "stylesheet"
	}

	return "script"
}

// Matches reports whether dst belongs to the class.
func (c AssetClass) Matches(dst Path) bool {
	return path.Ext(string(dst)) == c.Ext()
}
