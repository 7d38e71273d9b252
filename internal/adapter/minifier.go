package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	m "exampack.dev/pkg/exampack/internal/model"
)

// Minifier is the external script-transformation capability. It is injected
// into the workflow so the pipeline core is testable without spawning real
// processes.
type Minifier interface {
	// Minify runs the configured command on the script at path and returns
	// its standard output as the new content.
	Minify(ctx context.Context, command string, path m.Path) ([]byte, error)

	// MinifyContent runs the command on generated script content that has
	// no on-disk source. name labels the entry in diagnostics.
	MinifyContent(ctx context.Context, command string, name m.Path, content []byte) ([]byte, error)
}

// MinifyError reports a non-zero exit from the external minifier. It aborts
// the whole build; there is no partial-success path.
type MinifyError struct {
	Path   m.Path
	Stderr string
	Err    error
}

func (e *MinifyError) Error() string {
	msg := fmt.Sprintf("failed to minify %s: %v", e.Path, e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += "\n" + s
	}

	return msg
}

func (e *MinifyError) Unwrap() error {
	return e.Err
}

// CommandMinifier runs an external minifier via os/exec.
type CommandMinifier struct {
	timeout time.Duration
}

// NewCommandMinifier constructs a CommandMinifier with a default 2m timeout
// per invocation.
func NewCommandMinifier() *CommandMinifier {
	return &CommandMinifier{
		timeout: 2 * time.Minute,
	}
}

// Minify invokes `command path` and captures its output streams.
func (a *CommandMinifier) Minify(ctx context.Context, command string, path m.Path) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, command, string(path))

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &MinifyError{Path: path, Stderr: stderr.String(), Err: err}
	}

	return stdout.Bytes(), nil
}

// MinifyContent spills the content to a temporary file so the external
// command, which only takes a source path argument, can transform it.
func (a *CommandMinifier) MinifyContent(ctx context.Context, command string, name m.Path, content []byte) ([]byte, error) {
	tmp, err := os.CreateTemp("", "exampack-*.js")
	if err != nil {
		return nil, &MinifyError{Path: name, Err: err}
	}

	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return nil, &MinifyError{Path: name, Err: err}
	}

	if err := tmp.Close(); err != nil {
		return nil, &MinifyError{Path: name, Err: err}
	}

	out, err := a.Minify(ctx, command, m.Path(tmp.Name()))
	if err != nil {
		var minifyErr *MinifyError
		if errors.As(err, &minifyErr) {
			// Report the table entry, not the throwaway temp file.
			minifyErr.Path = name
		}

		return nil, err
	}

	return out, nil
}
