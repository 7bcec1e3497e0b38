package editor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Ahuge/imod/mode"
)

// Result is the outcome of an editing session.
type Result struct {
	Applied bool     // confirm was pressed; Mode and Flags carry the apply payload
	Mode    string   // final 3-digit numeric mode, e.g. "740"
	Flags   []string // chmod pass-through flags from the intent
}

// Session drives one interactive edit of a single file's permissions.
// It is strictly single-threaded: the loop blocks on one keystroke at a
// time and the Set is touched from nowhere else.
type Session struct {
	dec  *Decoder
	out  io.Writer
	set  *mode.Set
	file string
	log  *slog.Logger
}

func NewSession(src ByteSource, out io.Writer, set *mode.Set, file string, runTimeout time.Duration, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	return &Session{
		dec:  NewDecoder(src, runTimeout),
		out:  out,
		set:  set,
		file: file,
		log:  log,
	}
}

// Run decodes and dispatches events until confirm, cancel, or an
// unrecognized escape. Confirm and cancel are terminal: the loop never
// resumes after either. ErrUnrecognizedEscape propagates to the caller,
// which exits the program with a neutral status.
func (s *Session) Run(ctx context.Context) (Result, error) {
	if err := renderStatus(s.out, s.set, s.file, ""); err != nil {
		return Result{}, err
	}
	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		ev, err := s.dec.Next()
		if err != nil {
			return Result{}, err
		}

		notice := ""
		switch ev.Kind {
		case KindMoveLeft:
			s.set.MoveCursor(-1)
		case KindMoveRight:
			s.set.MoveCursor(1)
		case KindRotateUp:
			s.set.Current().Rotate(1)
		case KindRotateDown:
			s.set.Current().Rotate(-1)
		case KindDigit:
			s.set.Current().SetValue(ev.Digit)
		case KindSymbols:
			if err := s.set.Current().SetFromSymbols(ev.Symbols); err != nil {
				// Recoverable: report on the status line and keep going.
				s.log.Debug("ignoring bad symbol run", "run", ev.Symbols, "error", err)
				notice = err.Error()
			}
		case KindConfirm:
			res := Result{
				Applied: true,
				Mode:    s.set.ModeString(),
				Flags:   s.set.Intent().Flags(),
			}
			if err := renderFinal(s.out, s.set, s.file); err != nil {
				return Result{}, err
			}
			return res, nil
		case KindCancel:
			fmt.Fprint(s.out, "\r\n")
			return Result{}, nil
		case KindUnknown:
			notice = fmt.Sprintf("unrecognized key %q", ev.Byte)
		}

		if err := renderStatus(s.out, s.set, s.file, notice); err != nil {
			return Result{}, err
		}
	}
}
