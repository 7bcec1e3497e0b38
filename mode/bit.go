// Package mode models a Unix permission mode as three octal triplets
// (owner, group, other) plus the editor cursor selecting one of them.
package mode

// Bit is a single permission capability. Its numeric value is the octal
// weight the capability contributes to a triplet, so the weight/symbol
// pairing is fixed: 0 '-', 1 'x', 2 'w', 4 'r'.
type Bit uint8

const (
	None  Bit = 0
	Exec  Bit = 1
	Write Bit = 2
	Read  Bit = 4
)

var symbols = map[Bit]byte{
	None:  '-',
	Exec:  'x',
	Write: 'w',
	Read:  'r',
}

// weights is the inverse of symbols.
var weights = map[byte]Bit{
	'-': None,
	'x': Exec,
	'w': Write,
	'r': Read,
}

// Symbol returns the display character for b.
func (b Bit) Symbol() byte { return symbols[b] }

func (b Bit) String() string { return string(b.Symbol()) }
