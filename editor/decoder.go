// Package editor contains the keystroke decoder and the interactive
// editing session it drives: raw terminal bytes in, one applied (or
// abandoned) permission change out.
package editor

import (
	"errors"
	"strings"
	"time"
)

// ByteSource yields single bytes from the terminal. A zero wait blocks
// until a byte arrives; a positive wait bounds the read, and timedOut
// reports that the wait expired with no byte available. Timeouts are not
// errors here: they are the decoder's disambiguation signal.
type ByteSource interface {
	ReadByte(wait time.Duration) (b byte, timedOut bool, err error)
}

// ErrUnrecognizedEscape means input after an escape byte extended no
// known arrow sequence. The session treats it as the exit signal, not a
// failure: plain Escape with no recognized follow-up means quit.
var ErrUnrecognizedEscape = errors.New("editor: unrecognized escape sequence")

// Control bytes the decoder recognizes directly.
const (
	byteEscape = 0x1b
	byteCtrlC  = 0x03 // ETX, read as an ordinary byte in raw mode
	byteEnter  = '\r'
)

// DefaultRunTimeout bounds the wait for the next byte of a symbolic run
// or escape sequence.
const DefaultRunTimeout = time.Second

// EventKind classifies one logical input event.
type EventKind int

const (
	KindUnknown EventKind = iota
	KindMoveLeft
	KindMoveRight
	KindRotateUp
	KindRotateDown
	KindDigit
	KindSymbols
	KindConfirm
	KindCancel
)

// Event is one decoded logical input event.
type Event struct {
	Kind    EventKind
	Digit   int    // set for KindDigit
	Symbols string // set for KindSymbols
	Byte    byte   // the offending byte for KindUnknown
}

// arrowSequences maps the complete escape sequences the editor knows
// about to their events. All four share the two-byte CSI introducer.
var arrowSequences = map[string]EventKind{
	"\x1b[A": KindRotateUp,
	"\x1b[B": KindRotateDown,
	"\x1b[C": KindMoveRight,
	"\x1b[D": KindMoveLeft,
}

// Decoder turns the raw byte stream into logical events. It is idle
// between events and buffers transiently while disambiguating an escape
// sequence or a symbolic run; no two reads are ever outstanding at once.
type Decoder struct {
	src        ByteSource
	runTimeout time.Duration
}

func NewDecoder(src ByteSource, runTimeout time.Duration) *Decoder {
	if runTimeout <= 0 {
		runTimeout = DefaultRunTimeout
	}
	return &Decoder{src: src, runTimeout: runTimeout}
}

// Next blocks until one logical event has been decoded, and returns
// ErrUnrecognizedEscape when escape input matches no known sequence.
func (d *Decoder) Next() (Event, error) {
	b, _, err := d.src.ReadByte(0)
	if err != nil {
		return Event{}, err
	}
	switch {
	case b == byteEscape:
		return d.collectEscape()
	case b == byteCtrlC:
		return Event{Kind: KindCancel}, nil
	case b == byteEnter:
		return Event{Kind: KindConfirm}, nil
	case b >= '0' && b <= '7':
		return Event{Kind: KindDigit, Digit: int(b - '0')}, nil
	case isSymbolByte(b):
		return d.collectSymbolRun(b)
	default:
		return Event{Kind: KindUnknown, Byte: b}, nil
	}
}

// collectEscape appends bytes to the escape buffer one at a time. An
// exact match emits the arrow event; a strict prefix of some known
// sequence keeps reading; anything else, including a bare Escape whose
// follow-up never arrives, fails hard with ErrUnrecognizedEscape. Note
// the asymmetry with collectSymbolRun, where a timeout finalizes instead
// of failing: plain Escape quits the editor, a paused symbol run does not.
func (d *Decoder) collectEscape() (Event, error) {
	buf := []byte{byteEscape}
	for {
		b, timedOut, err := d.src.ReadByte(d.runTimeout)
		if err != nil {
			return Event{}, err
		}
		if timedOut {
			return Event{}, ErrUnrecognizedEscape
		}
		buf = append(buf, b)
		if kind, ok := arrowSequences[string(buf)]; ok {
			return Event{Kind: kind}, nil
		}
		if !extendsKnownSequence(string(buf)) {
			return Event{}, ErrUnrecognizedEscape
		}
	}
}

// collectSymbolRun accumulates a burst of bytes starting at first until
// the bounded wait expires, then hands the whole buffer back as one
// atomic event. A quick "rwx" arrives as one run; a lone "r" followed by
// a pause finalizes as just "r". The run is validated when applied, so a
// stray byte inside a burst surfaces later as a recoverable bad-symbol
// report rather than ending the session.
func (d *Decoder) collectSymbolRun(first byte) (Event, error) {
	buf := []byte{first}
	for {
		b, timedOut, err := d.src.ReadByte(d.runTimeout)
		if err != nil {
			return Event{}, err
		}
		if timedOut {
			return Event{Kind: KindSymbols, Symbols: string(buf)}, nil
		}
		buf = append(buf, b)
	}
}

func extendsKnownSequence(prefix string) bool {
	for seq := range arrowSequences {
		if strings.HasPrefix(seq, prefix) {
			return true
		}
	}
	return false
}

func isSymbolByte(b byte) bool {
	return b == 'r' || b == 'w' || b == 'x' || b == '-'
}
