package editor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// chmodBin is the external permission-change command.
const chmodBin = "chmod"

// ApplyError reports a failed chmod invocation: its exit code and
// whatever diagnostic text it wrote.
type ApplyError struct {
	ExitCode int
	Output   string
}

func (e *ApplyError) Error() string {
	msg := strings.TrimSpace(e.Output)
	if msg == "" {
		msg = fmt.Sprintf("chmod exited with code %d", e.ExitCode)
	}
	return msg
}

// Apply invokes chmod with the session's pass-through flags, the final
// numeric mode, and the target path. chmod's own stdout (the -v/-c
// change reports) goes to w; a non-zero exit or a failure to launch
// comes back as *ApplyError carrying the diagnostic text.
func Apply(ctx context.Context, w io.Writer, numericMode string, flags []string, path string) error {
	args := make([]string, 0, len(flags)+2)
	args = append(args, flags...)
	args = append(args, numericMode, path)

	cmd := exec.CommandContext(ctx, chmodBin, args...)
	var stderr bytes.Buffer
	cmd.Stdout = w
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ApplyError{ExitCode: exitErr.ExitCode(), Output: stderr.String()}
	}
	return &ApplyError{ExitCode: 1, Output: err.Error()}
}
