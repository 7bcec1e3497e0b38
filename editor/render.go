package editor

import (
	"fmt"
	"io"

	"github.com/Ahuge/imod/mode"
)

// Status line column layout (ANSI columns are 1-based):
//
//	640  rw- r-- ---  name.txt
//	^1   ^6  ^10 ^14
const (
	ansiClearLine      = "\x1b[2K"
	firstTripletColumn = 6
	tripletColumnWidth = 4
)

// renderStatus redraws the one-line display in place and parks the
// terminal cursor over the triplet the editor cursor selects. The write
// must be visible before the next read blocks; stdout is unbuffered so a
// plain write suffices.
func renderStatus(w io.Writer, set *mode.Set, file, notice string) error {
	line := fmt.Sprintf("%s  %s %s %s  %s",
		set.ModeString(),
		set.Triplet(mode.Owner),
		set.Triplet(mode.Group),
		set.Triplet(mode.Other),
		file)
	if notice != "" {
		line += "  [" + notice + "]"
	}
	col := firstTripletColumn + set.Cursor().Col()*tripletColumnWidth
	_, err := fmt.Fprintf(w, "\r%s%s\x1b[%dG", ansiClearLine, line, col)
	return err
}

// renderFinal writes the confirmation line and moves off the status line.
func renderFinal(w io.Writer, set *mode.Set, file string) error {
	_, err := fmt.Fprintf(w, "\r%s%s %s  %s\r\n", ansiClearLine, set.ModeString(), set.Symbolic(), file)
	return err
}
