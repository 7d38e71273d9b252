package domain

import "errors"

// Fatal packaging errors. Every one of these aborts the build; there is no
// partial-success packaging mode.
var (
	// ErrThemeNotFound reports a theme identifier that is neither an existing
	// path nor a directory under the data root's themes directory.
	ErrThemeNotFound = errors.New("theme not found")

	// ErrThemeCycle reports a theme that transitively inherits itself.
	ErrThemeCycle = errors.New("theme inheritance cycle")

	// ErrLocaleLoad reports a missing locale directory or a malformed locale
	// file. The build never proceeds with partial localization.
	ErrLocaleLoad = errors.New("failed to load locales")

	// ErrManifestTemplate reports a missing or malformed manifest template.
	ErrManifestTemplate = errors.New("invalid manifest template")

	// ErrMissingBootstrap reports that the runtime bootstrap script was not
	// among the collected scripts. There is no fallback ordering.
	ErrMissingBootstrap = errors.New("bootstrap script missing")

	// ErrOutputWrite wraps filesystem failures while emitting the bundle.
	ErrOutputWrite = errors.New("failed to write output")
)
