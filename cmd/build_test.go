package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"exampack.dev/pkg/exampack/internal/domain"
	domainmocks "exampack.dev/pkg/exampack/internal/domain/mocks"
	m "exampack.dev/pkg/exampack/internal/model"
)

// setupBuildCmd builds a fresh command tree with a mocked workflow so flag
// and viper state from the package-level rootCmd does not leak between tests.
func setupBuildCmd(t *testing.T) (*domainmocks.MockWorkflow, func(args ...string) error) {
	t.Helper()

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	originalWorkflow := workflow
	workflow = mockWorkflow
	t.Cleanup(func() { workflow = originalWorkflow })

	cmd := newRootCmd()
	configureRootFlags(cmd)
	cmd.AddCommand(newBuildCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	return mockWorkflow, func(args ...string) error {
		cmd.SetArgs(args)
		return cmd.Execute()
	}
}

func writeSourceFile(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("name: Sample Quiz\n"), 0o600))

	return path
}

func TestBuildCmd_DefaultOutputFromSourceName(t *testing.T) {
	dataRoot := t.TempDir()
	source := writeSourceFile(t, t.TempDir(), "quiz.exam")

	mockWorkflow, execute := setupBuildCmd(t)

	mockWorkflow.On("Build", mock.Anything, mock.MatchedBy(func(args domain.BuildArgs) bool {
		return args.Output == m.Path(filepath.Join(dataRoot, "output", "quiz")) &&
			args.SourceDir == m.Path(filepath.Dir(source)) &&
			args.Theme == "default" &&
			args.Locale == "en-GB" &&
			!args.Zip
	})).Return(nil)

	require.NoError(t, execute("build", "-p", dataRoot, source))
}

func TestBuildCmd_ZipOutputGetsArchiveExtension(t *testing.T) {
	dataRoot := t.TempDir()
	source := writeSourceFile(t, t.TempDir(), "quiz.exam")

	mockWorkflow, execute := setupBuildCmd(t)

	mockWorkflow.On("Build", mock.Anything, mock.MatchedBy(func(args domain.BuildArgs) bool {
		return args.Zip &&
			args.Output == m.Path(filepath.Join(dataRoot, "output", "quiz.zip"))
	})).Return(nil)

	require.NoError(t, execute("build", "-p", dataRoot, "--zip", source))
}

func TestBuildCmd_ExplicitOutputWins(t *testing.T) {
	dataRoot := t.TempDir()
	source := writeSourceFile(t, t.TempDir(), "quiz.exam")
	target := filepath.Join(t.TempDir(), "bundle")

	mockWorkflow, execute := setupBuildCmd(t)

	mockWorkflow.On("Build", mock.Anything, mock.MatchedBy(func(args domain.BuildArgs) bool {
		return args.Output == m.Path(target)
	})).Return(nil)

	require.NoError(t, execute("build", "-p", dataRoot, "-o", target, source))
}

func TestBuildCmd_SourceRelativeToDataRoot(t *testing.T) {
	dataRoot := t.TempDir()
	writeSourceFile(t, dataRoot, "quiz.exam")

	mockWorkflow, execute := setupBuildCmd(t)

	mockWorkflow.On("Build", mock.Anything, mock.MatchedBy(func(args domain.BuildArgs) bool {
		return args.SourceDir == m.Path(dataRoot) &&
			string(args.Source) == "name: Sample Quiz\n"
	})).Return(nil)

	require.NoError(t, execute("build", "-p", dataRoot, "quiz.exam"))
}

func TestBuildCmd_MissingSourceFails(t *testing.T) {
	dataRoot := t.TempDir()

	_, execute := setupBuildCmd(t)

	err := execute("build", "-p", dataRoot, "missing.exam")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "couldn't find source file")
}

func TestBuildCmd_NoSourceFails(t *testing.T) {
	dataRoot := t.TempDir()

	_, execute := setupBuildCmd(t)

	err := execute("build", "-p", dataRoot)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source document is required")
}

func TestBuildCmd_Stdin(t *testing.T) {
	dataRoot := t.TempDir()

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	originalWorkflow := workflow
	workflow = mockWorkflow
	t.Cleanup(func() { workflow = originalWorkflow })

	cmd := newRootCmd()
	configureRootFlags(cmd)
	cmd.AddCommand(newBuildCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader("name: Piped Quiz\n"))

	mockWorkflow.On("Build", mock.Anything, mock.MatchedBy(func(args domain.BuildArgs) bool {
		return string(args.Source) == "name: Piped Quiz\n" &&
			args.Output == m.Path(filepath.Join(dataRoot, "output", "exam"))
	})).Return(nil)

	cmd.SetArgs([]string{"build", "-p", dataRoot, "--stdin"})
	require.NoError(t, cmd.Execute())
}

func TestBuildCmd_FlagsReachWorkflow(t *testing.T) {
	dataRoot := t.TempDir()
	source := writeSourceFile(t, t.TempDir(), "quiz.exam")

	mockWorkflow, execute := setupBuildCmd(t)

	mockWorkflow.On("Build", mock.Anything, mock.MatchedBy(func(args domain.BuildArgs) bool {
		return args.Scorm && args.Clean && args.FollowLinks &&
			args.Theme == "printable" &&
			args.Locale == "nb-NO" &&
			args.MinifyCommand == "uglifyjs"
	})).Return(nil)

	require.NoError(t, execute(
		"build", "-p", dataRoot, "-s", "-c", "-f",
		"-t", "printable", "-l", "nb-NO", "--minify", "uglifyjs", source))
}
