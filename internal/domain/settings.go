package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	m "exampack.dev/pkg/exampack/internal/model"
)

// Destinations of the generated table entries.
const (
	settingsScriptDest m.Path = "settings.js"
	localeScriptDest   m.Path = "locale.js"
	manifestDest       m.Path = "imsmanifest.xml"
)

// scriptJSON serializes v for embedding in a generated script. The default
// encoder HTML-escapes angle brackets, which would mangle the exam XML; the
// payload is script content, not HTML.
func scriptJSON(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// SettingsScript wraps the compiled exam XML in the settings payload the
// runtime evaluates at load time. The XML itself is opaque to the packaging
// pipeline.
func SettingsScript(examXML string) string {
	quoted, _ := scriptJSON(examXML)

	return fmt.Sprintf(`Exampack.queueScript('settings.js', ['base'], function() {
Exampack.rawxml = {
    examXML: %s
};
});
`, quoted)
}
