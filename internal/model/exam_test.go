package model

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestResource_UnmarshalYAMLForms(t *testing.T) {
	t.Run("bare string uses path as name", func(t *testing.T) {
		var exam Exam
		src := "name: Quiz\nresources:\n  - images/logo.png\n"

		if err := yaml.Unmarshal([]byte(src), &exam); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}

		if len(exam.Resources) != 1 {
			t.Fatalf("got %d resources, want 1", len(exam.Resources))
		}

		res := exam.Resources[0]
		if res.Name != "images/logo.png" || res.Path != "images/logo.png" {
			t.Fatalf("resource = %+v, want name and path images/logo.png", res)
		}
	})

	t.Run("two element list splits name and path", func(t *testing.T) {
		var exam Exam
		src := "name: Quiz\nresources:\n  - [logo.png, images/logo.png]\n"

		if err := yaml.Unmarshal([]byte(src), &exam); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}

		res := exam.Resources[0]
		if res.Name != "logo.png" || res.Path != "images/logo.png" {
			t.Fatalf("resource = %+v", res)
		}
	})

	t.Run("mapping form", func(t *testing.T) {
		var exam Exam
		src := "name: Quiz\nresources:\n  - name: logo.png\n    path: images/logo.png\n"

		if err := yaml.Unmarshal([]byte(src), &exam); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}

		res := exam.Resources[0]
		if res.Name != "logo.png" || res.Path != "images/logo.png" {
			t.Fatalf("resource = %+v", res)
		}
	})

	t.Run("wrong list length is an error", func(t *testing.T) {
		var exam Exam
		src := "name: Quiz\nresources:\n  - [a, b, c]\n"

		if err := yaml.Unmarshal([]byte(src), &exam); err == nil {
			t.Fatal("Unmarshal() succeeded, want error")
		}
	})
}

func TestExam_XML(t *testing.T) {
	exam := Exam{
		Name:        "Quiz 1",
		Duration:    1800,
		PercentPass: 50,
		Groups: []Group{
			{Name: "Part A", Questions: []Question{{Name: "Q1", Marks: 2, Prompt: "What is 2+2?"}}},
		},
	}

	out, err := exam.XML()
	if err != nil {
		t.Fatalf("XML() error = %v", err)
	}

	for _, want := range []string{
		`name="Quiz 1"`,
		`duration="1800"`,
		"<question_groups>",
		"<question_group",
		"<prompt>What is 2+2?</prompt>",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("XML() = %s, missing %q", out, want)
		}
	}
}
