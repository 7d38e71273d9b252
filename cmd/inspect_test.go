package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"exampack.dev/pkg/exampack/internal/domain"
	domainmocks "exampack.dev/pkg/exampack/internal/domain/mocks"
	m "exampack.dev/pkg/exampack/internal/model"
)

func setupInspectCmd(t *testing.T) (*domainmocks.MockWorkflow, func(args ...string) error) {
	t.Helper()

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	originalWorkflow := workflow
	workflow = mockWorkflow
	t.Cleanup(func() { workflow = originalWorkflow })

	cmd := newRootCmd()
	configureRootFlags(cmd)
	cmd.AddCommand(newInspectCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	return mockWorkflow, func(args ...string) error {
		cmd.SetArgs(args)
		return cmd.Execute()
	}
}

func TestInspectCmd_ResolvesTable(t *testing.T) {
	dataRoot := t.TempDir()
	source := writeSourceFile(t, t.TempDir(), "quiz.exam")

	mockWorkflow, execute := setupInspectCmd(t)

	mockWorkflow.On("Inspect", mock.Anything, mock.MatchedBy(func(args domain.InspectArgs) bool {
		return args.DataRoot == m.Path(dataRoot) &&
			string(args.Source) == "name: Sample Quiz\n" &&
			!args.Interactive
	})).Return(nil)

	require.NoError(t, execute("inspect", "-p", dataRoot, source))
}

func TestInspectCmd_InteractiveRequiresTTY(t *testing.T) {
	dataRoot := t.TempDir()
	source := writeSourceFile(t, t.TempDir(), "quiz.exam")

	mockWorkflow, execute := setupInspectCmd(t)

	// Test runs are never attached to a terminal, so the interactive flag
	// must fall back to the plain table.
	mockWorkflow.On("Inspect", mock.Anything, mock.MatchedBy(func(args domain.InspectArgs) bool {
		return !args.Interactive
	})).Return(nil)

	require.NoError(t, execute("inspect", "-p", dataRoot, "-i", source))
}

func TestInspectCmd_MissingSourceFails(t *testing.T) {
	_, execute := setupInspectCmd(t)

	err := execute("inspect", "-p", t.TempDir(), filepath.Join("nope", "missing.exam"))
	require.Error(t, err)
}
