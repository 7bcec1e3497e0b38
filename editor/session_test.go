package editor

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/Ahuge/imod/mode"
)

func runSession(t *testing.T, m fs.FileMode, intent mode.Intent, steps ...scriptStep) (Result, *mode.Set, string, error) {
	t.Helper()
	set := mode.NewSet(m, intent)
	var out bytes.Buffer
	s := NewSession(&scriptSource{steps: steps}, &out, set, "demo.txt", DefaultRunTimeout, nil)
	res, err := s.Run(context.Background())
	return res, set, out.String(), err
}

func TestSessionRotateAndConfirm(t *testing.T) {
	// File mode 640, up arrow on the owner triplet, then Enter.
	steps := append(bytesOf("\x1b[A"), scriptStep{b: '\r'})
	res, _, out, err := runSession(t, 0o640, mode.Intent{}, steps...)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !res.Applied {
		t.Fatal("confirm did not request apply")
	}
	if res.Mode != "740" {
		t.Errorf("apply mode = %q, want \"740\"", res.Mode)
	}
	if !strings.Contains(out, "740") {
		t.Errorf("final render missing mode: %q", out)
	}
}

func TestSessionMoveAndDigit(t *testing.T) {
	// Right arrow selects the group triplet; 0 clears it.
	steps := append(bytesOf("\x1b[C"), scriptStep{b: '0'}, scriptStep{b: '\r'})
	res, _, _, err := runSession(t, 0o640, mode.Intent{}, steps...)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if res.Mode != "600" {
		t.Errorf("apply mode = %q, want \"600\"", res.Mode)
	}
}

func TestSessionSymbolBurstIsOneEvent(t *testing.T) {
	steps := append(bytesOf("rwx"), pause(), scriptStep{b: '\r'})
	res, set, _, err := runSession(t, 0o640, mode.Intent{}, steps...)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if res.Mode != "740" {
		t.Errorf("apply mode = %q, want \"740\"", res.Mode)
	}
	if got := set.Triplet(mode.Owner).Value(); got != 7 {
		t.Errorf("owner = %d, want 7 from one atomic rwx run", got)
	}
}

func TestSessionSymbolThenPause(t *testing.T) {
	steps := []scriptStep{{b: 'r'}, pause(), {b: '\r'}}
	res, _, _, err := runSession(t, 0o640, mode.Intent{}, steps...)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if res.Mode != "440" {
		t.Errorf("apply mode = %q, want \"440\" (owner set to r only)", res.Mode)
	}
}

func TestSessionInvalidSymbolRecovers(t *testing.T) {
	// A run with a stray byte is reported and ignored; the session keeps
	// running and the triplet keeps its old value.
	steps := append(bytesOf("rq"), pause(), scriptStep{b: '\r'})
	res, set, out, err := runSession(t, 0o640, mode.Intent{}, steps...)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if res.Mode != "640" {
		t.Errorf("apply mode = %q, want unchanged \"640\"", res.Mode)
	}
	if got := set.Triplet(mode.Owner).Value(); got != 6 {
		t.Errorf("owner = %d, want 6 untouched", got)
	}
	if !strings.Contains(out, "invalid symbol") {
		t.Errorf("status line did not report the bad symbol: %q", out)
	}
}

func TestSessionUnknownKeyRecovers(t *testing.T) {
	steps := []scriptStep{{b: 'z'}, {b: '\r'}}
	res, _, out, err := runSession(t, 0o640, mode.Intent{}, steps...)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if res.Mode != "640" {
		t.Errorf("apply mode = %q, want unchanged \"640\"", res.Mode)
	}
	if !strings.Contains(out, "unrecognized key") {
		t.Errorf("status line did not report the unknown key: %q", out)
	}
}

func TestSessionCancel(t *testing.T) {
	steps := append(bytesOf("\x1b[A"), scriptStep{b: 0x03})
	res, _, _, err := runSession(t, 0o640, mode.Intent{}, steps...)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if res.Applied {
		t.Error("cancel requested apply")
	}
}

func TestSessionUnknownEscapeEndsSession(t *testing.T) {
	// The escape hard-exit happens before any mutation.
	steps := bytesOf("\x1bq")
	res, set, _, err := runSession(t, 0o640, mode.Intent{}, steps...)
	if !errors.Is(err, ErrUnrecognizedEscape) {
		t.Fatalf("Run error = %v, want ErrUnrecognizedEscape", err)
	}
	if res.Applied {
		t.Error("unrecognized escape requested apply")
	}
	if got := set.ModeString(); got != "640" {
		t.Errorf("mode mutated to %q before exit", got)
	}
}

func TestSessionCarriesIntentFlags(t *testing.T) {
	intent := mode.Intent{Recursive: true, Verbose: true}
	res, _, _, err := runSession(t, 0o640, intent, scriptStep{b: '\r'})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	want := []string{"-v", "-R"}
	if len(res.Flags) != len(want) {
		t.Fatalf("Flags = %v, want %v", res.Flags, want)
	}
	for i := range want {
		if res.Flags[i] != want[i] {
			t.Errorf("Flags[%d] = %q, want %q", i, res.Flags[i], want[i])
		}
	}
}

func TestSessionRendersCursorColumn(t *testing.T) {
	// After moving right once the terminal cursor parks over the group
	// triplet (column 10 in the fixed layout).
	steps := append(bytesOf("\x1b[C"), scriptStep{b: 0x03})
	_, _, out, err := runSession(t, 0o640, mode.Intent{}, steps...)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !strings.Contains(out, "\x1b[10G") {
		t.Errorf("output missing cursor reposition to column 10: %q", out)
	}
}
