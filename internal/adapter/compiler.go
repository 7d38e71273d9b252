package adapter

import (
	"fmt"

	"gopkg.in/yaml.v3"

	m "exampack.dev/pkg/exampack/internal/model"
)

// ExamCompiler turns assessment source text into the structured exam the
// packaging pipeline consumes. Parsing of the assessment language lives
// entirely behind this interface.
type ExamCompiler interface {
	Compile(source []byte) (*m.Exam, error)
}

// SourceDocumentError wraps a parse or structural failure of the input
// document.
type SourceDocumentError struct {
	Err error
}

func (e *SourceDocumentError) Error() string {
	return fmt.Sprintf("failed to compile exam source: %v", e.Err)
}

func (e *SourceDocumentError) Unwrap() error {
	return e.Err
}

// LocalExamCompiler parses .exam source documents.
type LocalExamCompiler struct{}

// NewLocalExamCompiler constructs a LocalExamCompiler.
func NewLocalExamCompiler() *LocalExamCompiler {
	return &LocalExamCompiler{}
}

// Compile parses the source document and validates its structure.
func (c *LocalExamCompiler) Compile(source []byte) (*m.Exam, error) {
	var exam m.Exam

	if err := yaml.Unmarshal(source, &exam); err != nil {
		return nil, &SourceDocumentError{Err: err}
	}

	if exam.Name == "" {
		return nil, &SourceDocumentError{Err: fmt.Errorf("exam has no name")}
	}

	for _, res := range exam.Resources {
		if res.Path == "" {
			return nil, &SourceDocumentError{Err: fmt.Errorf("resource %q has no path", res.Name)}
		}
	}

	return &exam, nil
}
