//go:build unix

// Package tty gives the editor raw keyboard input: it switches the
// controlling terminal into raw (non-canonical, non-echoing) mode as a
// scoped resource and reads single bytes with an optional deadline.
package tty

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Reader reads single bytes from a file descriptor. The deadline uses
// select(2), so a timeout is reported distinctly from data and from
// errors, which is what the decoder's disambiguation needs.
type Reader struct {
	fd int
}

func NewReader(fd int) *Reader { return &Reader{fd: fd} }

// ReadByte returns the next byte from the descriptor. With wait > 0 the
// read is bounded: if the wait expires with no byte available, timedOut
// is true and there is no error. A zero wait blocks indefinitely.
func (r *Reader) ReadByte(wait time.Duration) (byte, bool, error) {
	if wait > 0 {
		ready, err := waitReadable(r.fd, wait)
		if err != nil {
			return 0, false, err
		}
		if !ready {
			return 0, true, nil
		}
	}
	var buf [1]byte
	for {
		n, err := unix.Read(r.fd, buf[:])
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, false, err
		}
		if n == 0 {
			return 0, false, io.EOF
		}
		return buf[0], false, nil
	}
}

// waitReadable blocks until the descriptor has data or the wait expires.
// EINTR restarts the select against the original deadline.
func waitReadable(fd int, wait time.Duration) (bool, error) {
	deadline := time.Now().Add(wait)
	for {
		left := time.Until(deadline)
		if left < 0 {
			left = 0
		}
		tv := unix.NsecToTimeval(left.Nanoseconds())
		var fds unix.FdSet
		fds.Set(fd)
		n, err := unix.Select(fd+1, &fds, nil, nil, &tv)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return false, err
		}
		return n > 0, nil
	}
}

// Terminal couples raw-mode state with a Reader over stdin. Restore must
// run on every exit path before any diagnostic is printed, so callers
// defer it immediately after Open succeeds.
type Terminal struct {
	*Reader
	in    *os.File
	state *term.State
}

// Open puts the terminal into raw mode.
func Open() (*Terminal, error) {
	in := os.Stdin
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("tty: stdin is not a terminal")
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("tty: entering raw mode: %w", err)
	}
	return &Terminal{Reader: NewReader(fd), in: in, state: state}, nil
}

// Restore puts the terminal back into its original mode. Safe to call
// more than once.
func (t *Terminal) Restore() error {
	if t.state == nil {
		return nil
	}
	err := term.Restore(int(t.in.Fd()), t.state)
	t.state = nil
	return err
}
