package model

import (
	"encoding/xml"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Exam is the structured form of a compiled assessment description. It is
// what the packaging pipeline consumes: a name, the declared resources and
// extensions, and enough of the assessment itself to serialize the XML form
// embedded in the settings payload.
type Exam struct {
	Name        string     `yaml:"name" xml:"name,attr"`
	Duration    int        `yaml:"duration,omitempty" xml:"duration,attr"`
	PercentPass float64    `yaml:"percentPass,omitempty" xml:"percentPass,attr"`
	Navigation  Navigation `yaml:"navigation,omitempty" xml:"navigation"`
	Groups      []Group    `yaml:"questionGroups,omitempty" xml:"question_groups>question_group"`
	Resources   []Resource `yaml:"resources,omitempty" xml:"-"`
	Extensions  []string   `yaml:"extensions,omitempty" xml:"-"`
}

// Navigation holds the runtime navigation settings.
type Navigation struct {
	AllowRegen bool `yaml:"allowRegen,omitempty" xml:"allowregen,attr"`
	Reverse    bool `yaml:"reverse,omitempty" xml:"reverse,attr"`
	Browse     bool `yaml:"browse,omitempty" xml:"browse,attr"`
}

// Group is a named group of questions.
type Group struct {
	Name      string     `yaml:"name,omitempty" xml:"name,attr"`
	Questions []Question `yaml:"questions,omitempty" xml:"question"`
}

// Question is one question within a group.
type Question struct {
	Name   string  `yaml:"name" xml:"name,attr"`
	Marks  float64 `yaml:"marks,omitempty" xml:"marks,attr"`
	Prompt string  `yaml:"prompt,omitempty" xml:"prompt,omitempty"`
}

// Resource is a named resource declared by the exam. A bare string in the
// source declares a resource whose name and path coincide; a two-element
// list or a mapping declares them separately.
type Resource struct {
	Name string
	Path Path
}

// UnmarshalYAML accepts the three source forms of a resource declaration.
func (r *Resource) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}

		r.Name = s
		r.Path = Path(s)

		return nil

	case yaml.SequenceNode:
		var pair []string
		if err := value.Decode(&pair); err != nil {
			return err
		}

		if len(pair) != 2 {
			return fmt.Errorf("resource list must have exactly two elements, got %d", len(pair))
		}

		r.Name = pair[0]
		r.Path = Path(pair[1])

		return nil

	case yaml.MappingNode:
		var named struct {
			Name string `yaml:"name"`
			Path string `yaml:"path"`
		}

		if err := value.Decode(&named); err != nil {
			return err
		}

		if named.Name == "" {
			named.Name = named.Path
		}

		r.Name = named.Name
		r.Path = Path(named.Path)

		return nil
	}

	return fmt.Errorf("unsupported resource declaration on line %d", value.Line)
}

// XML serializes the exam into the form consumed by the runtime.
func (e *Exam) XML() (string, error) {
	type exam Exam // avoid recursing into any future MarshalXML

	out, err := xml.Marshal((*exam)(e))
	if err != nil {
		return "", err
	}

	return string(out), nil
}
