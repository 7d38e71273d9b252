package domain

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/language"

	"exampack.dev/pkg/exampack/internal/adapter"
	m "exampack.dev/pkg/exampack/internal/model"
)

const localesDir = "locales"

// Locales maps a locale identifier to its translation resources, shaped the
// way the runtime's i18n layer expects them.
type Locales map[string]any

// LoadLocales reads every JSON file under the data root's locales directory.
// A missing directory or a malformed file is fatal: the build never ships
// partial localization.
func LoadLocales(fs adapter.BundleFS, dataRoot m.Path) (Locales, error) {
	dir := m.Path(filepath.Join(string(dataRoot), localesDir))

	entries, err := fs.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLocaleLoad, err)
	}

	locales := make(Locales)

	for _, entry := range entries {
		name := entry.Name()

		ext := filepath.Ext(name)
		if entry.IsDir() || !strings.EqualFold(ext, ".json") {
			continue
		}

		data, err := fs.ReadFile(m.Path(filepath.Join(string(dir), name)))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLocaleLoad, err)
		}

		var translation any
		if err := json.Unmarshal(data, &translation); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLocaleLoad, name, err)
		}

		locales[strings.TrimSuffix(name, ext)] = map[string]any{"translation": translation}
	}

	return locales, nil
}

// MatchLocale maps the preferred locale identifier onto the closest
// available locale. An identifier with no usable match is passed through
// unchanged; the runtime falls back on its own default then.
func MatchLocale(preferred string, locales Locales) string {
	names := make([]string, 0, len(locales))
	for name := range locales {
		names = append(names, name)
	}

	sort.Strings(names)

	var (
		tags   []language.Tag
		tagged []string
	)

	for _, name := range names {
		tag, err := language.Parse(name)
		if err != nil {
			continue
		}

		tags = append(tags, tag)
		tagged = append(tagged, name)
	}

	if len(tags) == 0 {
		return preferred
	}

	want, err := language.Parse(preferred)
	if err != nil {
		return preferred
	}

	_, index, confidence := language.NewMatcher(tags).Match(want)
	if confidence == language.No {
		return preferred
	}

	return tagged[index]
}

// LocaleScript renders the data-initialization script the runtime loads to
// set up localisation: the preferred locale plus every available locale's
// translation mapping.
func LocaleScript(preferred string, locales Locales) (string, error) {
	preferredJSON, err := scriptJSON(preferred)
	if err != nil {
		return "", err
	}

	resourcesJSON, err := scriptJSON(locales)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLocaleLoad, err)
	}

	script := fmt.Sprintf(`Exampack.queueScript('localisation-resources', ['i18next'], function() {
Exampack.locale = {
    preferred_locale: %s,
    resources: %s
};
});
`, preferredJSON, resourcesJSON)

	return script, nil
}
