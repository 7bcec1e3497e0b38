package mode

import (
	"fmt"
	"io/fs"
)

// Class indexes the three subject classes of a file mode, in render order.
type Class int

const (
	Owner Class = iota
	Group
	Other
)

// Intent is the bag of chmod pass-through options captured when the
// editor starts. Keystroke handling never mutates it; it is read once,
// at confirm time.
type Intent struct {
	Changes        bool
	Verbose        bool
	Silent         bool
	Recursive      bool
	PreserveRoot   bool
	NoPreserveRoot bool
	Reference      string
}

// Flags returns the chmod argument list for this intent, in a stable order.
func (i Intent) Flags() []string {
	var flags []string
	if i.Changes {
		flags = append(flags, "-c")
	}
	if i.Verbose {
		flags = append(flags, "-v")
	}
	if i.Silent {
		flags = append(flags, "-f")
	}
	if i.Recursive {
		flags = append(flags, "-R")
	}
	if i.PreserveRoot {
		flags = append(flags, "--preserve-root")
	}
	if i.NoPreserveRoot {
		flags = append(flags, "--no-preserve-root")
	}
	if i.Reference != "" {
		flags = append(flags, "--reference="+i.Reference)
	}
	return flags
}

// Set is the editable permission state for one file: the owner, group and
// other triplets in fixed order, the cursor selecting one of them, and
// the apply intent. One Set exists per editing session and is consumed at
// confirm time via ModeString and Intent.
type Set struct {
	triplets [3]Triplet
	cursor   Cursor
	intent   Intent
}

// NewSet builds a Set from a file's current mode.
func NewSet(m fs.FileMode, intent Intent) *Set {
	perm := int(m.Perm())
	return &Set{
		triplets: [3]Triplet{
			FromNumeric(perm >> 6 & 7),
			FromNumeric(perm >> 3 & 7),
			FromNumeric(perm & 7),
		},
		intent: intent,
	}
}

// FromOctal builds a Set from a 3-digit octal string such as "640".
func FromOctal(s string, intent Intent) (*Set, error) {
	if len(s) != 3 {
		return nil, fmt.Errorf("%w: %q: want exactly 3 digits", ErrBadOctal, s)
	}
	var triplets [3]Triplet
	for i := 0; i < 3; i++ {
		d := s[i]
		if d < '0' || d > '7' {
			return nil, fmt.Errorf("%w: %q: bad digit %q", ErrBadOctal, s, d)
		}
		triplets[i] = FromNumeric(int(d - '0'))
	}
	return &Set{triplets: triplets, intent: intent}, nil
}

// Current returns the triplet under the cursor.
func (s *Set) Current() *Triplet {
	return &s.triplets[s.cursor.Col()]
}

// Triplet returns the triplet for the given class.
func (s *Set) Triplet(c Class) *Triplet { return &s.triplets[c] }

// Cursor returns the current cursor position.
func (s *Set) Cursor() Cursor { return s.cursor }

// MoveCursor shifts the cursor by delta, saturating at owner and other.
func (s *Set) MoveCursor(delta int) { s.cursor = s.cursor.Move(delta) }

// Intent returns the apply intent captured at construction.
func (s *Set) Intent() Intent { return s.intent }

// ModeString returns the numeric mode as owner, group, other digits
// concatenated, e.g. "640".
func (s *Set) ModeString() string {
	return fmt.Sprintf("%d%d%d",
		s.triplets[Owner].Value(),
		s.triplets[Group].Value(),
		s.triplets[Other].Value())
}

// Symbolic returns the nine-character rwx rendering, owner first.
func (s *Set) Symbolic() string {
	return s.triplets[Owner].String() + s.triplets[Group].String() + s.triplets[Other].String()
}
