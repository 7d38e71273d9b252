package domain

import (
	"encoding/xml"
	"fmt"
	"path/filepath"

	"exampack.dev/pkg/exampack/internal/adapter"
	m "exampack.dev/pkg/exampack/internal/model"
)

const (
	scormFilesDir    = "scormfiles"
	manifestTemplate = "imsmanifest.xml"
	manifestIDPrefix = "Exampack: "
)

// The manifest structs model the IMS content-packaging descriptor shipped
// with the runtime's scormfiles template. Namespace-prefix registration is
// an environment concern: the template carries a default namespace only,
// which encoding/xml round-trips through the root element's name.
type manifest struct {
	XMLName       xml.Name              `xml:"manifest"`
	Identifier    string                `xml:"identifier,attr"`
	Version       string                `xml:"version,attr,omitempty"`
	Metadata      manifestMetadata      `xml:"metadata"`
	Organizations manifestOrganizations `xml:"organizations"`
	Resources     manifestResources     `xml:"resources"`
}

type manifestMetadata struct {
	Schema        string `xml:"schema"`
	SchemaVersion string `xml:"schemaversion"`
}

type manifestOrganizations struct {
	Default      string               `xml:"default,attr,omitempty"`
	Organization manifestOrganization `xml:"organization"`
}

type manifestOrganization struct {
	Identifier string        `xml:"identifier,attr,omitempty"`
	Title      string        `xml:"title"`
	Item       *manifestItem `xml:"item,omitempty"`
}

type manifestItem struct {
	Identifier    string `xml:"identifier,attr,omitempty"`
	IdentifierRef string `xml:"identifierref,attr,omitempty"`
	Title         string `xml:"title,omitempty"`
}

type manifestResources struct {
	Resource manifestResource `xml:"resource"`
}

type manifestResource struct {
	Identifier string         `xml:"identifier,attr,omitempty"`
	Type       string         `xml:"type,attr,omitempty"`
	ScormType  string         `xml:"scormtype,attr,omitempty"`
	Href       string         `xml:"href,attr,omitempty"`
	Files      []manifestFile `xml:"file"`
}

type manifestFile struct {
	Href string `xml:"href,attr"`
}

// PatchManifest loads the template manifest under the data root's
// scormfiles directory and rewrites its identifier, organization title and
// resource-file list from the exam name and the table's destination set.
func PatchManifest(fs adapter.BundleFS, dataRoot m.Path, examName string, dests []m.Path) (string, error) {
	templatePath := filepath.Join(string(dataRoot), scormFilesDir, manifestTemplate)

	data, err := fs.ReadFile(m.Path(templatePath))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrManifestTemplate, err)
	}

	var doc manifest
	if err := xml.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrManifestTemplate, templatePath, err)
	}

	doc.Identifier = manifestIDPrefix + examName
	doc.Organizations.Organization.Title = examName

	for _, dst := range dests {
		doc.Resources.Resource.Files = append(doc.Resources.Resource.Files, manifestFile{Href: relativeHref(dst)})
	}

	out, err := xml.MarshalIndent(&doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrManifestTemplate, err)
	}

	return xml.Header + string(out) + "\n", nil
}
