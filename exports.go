// Package imod is an interactive terminal editor for Unix file
// permissions. The mode package holds the octal-triplet data model, the
// editor package the keystroke decoder and session loop, tty the raw
// terminal plumbing, and history the applied-change journal. This root
// package carries configuration and re-exports the data model.
package imod

import "github.com/Ahuge/imod/mode"

type (
	Bit     = mode.Bit
	Triplet = mode.Triplet
	Cursor  = mode.Cursor
	Class   = mode.Class
	Set     = mode.Set
	Intent  = mode.Intent
)

const (
	None  = mode.None
	Exec  = mode.Exec
	Write = mode.Write
	Read  = mode.Read
)

const (
	Owner = mode.Owner
	Group = mode.Group
	Other = mode.Other
)

var (
	FromNumeric = mode.FromNumeric
	FromSymbols = mode.FromSymbols
	NewSet      = mode.NewSet
	FromOctal   = mode.FromOctal
)

var (
	ErrInvalidSymbol = mode.ErrInvalidSymbol
	ErrBadOctal      = mode.ErrBadOctal
)
