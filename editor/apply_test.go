//go:build unix

package editor

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestApplyChangesMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "target.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Apply(context.Background(), io.Discard, "600", nil, path); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := info.Mode().Perm(); got != 0o600 {
		t.Errorf("mode after apply = %o, want 600", got)
	}
}

func TestApplyMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-such-file")
	err := Apply(context.Background(), io.Discard, "600", nil, path)
	if err == nil {
		t.Fatal("Apply on missing file succeeded")
	}
	var applyErr *ApplyError
	if !errors.As(err, &applyErr) {
		t.Fatalf("Apply error = %T, want *ApplyError", err)
	}
	if applyErr.ExitCode == 0 {
		t.Error("ApplyError.ExitCode = 0, want non-zero")
	}
	if applyErr.Error() == "" {
		t.Error("ApplyError carries no diagnostic text")
	}
}
