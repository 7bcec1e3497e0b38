package mode

import "fmt"

// Triplet holds the read/write/execute bits for one subject class. The
// numeric value is always within [0,7], and every mutator re-derives all
// three bits from the clamped value, so inconsistent bit combinations
// cannot be represented: value 5 is always exactly {read, execute}.
type Triplet struct {
	read  Bit
	write Bit
	exec  Bit
}

// FromNumeric builds a Triplet from any integer, clamping to [0,7].
// Out-of-range input is silently clamped, never rejected.
func FromNumeric(n int) Triplet {
	var t Triplet
	t.SetValue(n)
	return t
}

// FromSymbols builds a Triplet from a symbol string such as "rw" or "---".
func FromSymbols(s string) (Triplet, error) {
	var t Triplet
	if err := t.SetFromSymbols(s); err != nil {
		return Triplet{}, err
	}
	return t, nil
}

// Value returns the octal digit for this triplet.
func (t Triplet) Value() int {
	return int(t.read) + int(t.write) + int(t.exec)
}

// SetValue clamps n to [0,7] and decomposes it into the three bits.
func (t *Triplet) SetValue(n int) {
	n = clamp(n, 0, 7)
	t.read, t.write, t.exec = None, None, None
	if n&int(Read) != 0 {
		t.read = Read
	}
	if n&int(Write) != 0 {
		t.write = Write
	}
	if n&int(Exec) != 0 {
		t.exec = Exec
	}
}

// Rotate shifts the value by offset, saturating at the bounds: 7+1 stays
// 7 and 0-1 stays 0. No wraparound.
func (t *Triplet) Rotate(offset int) {
	t.SetValue(t.Value() + offset)
}

// SetFromSymbols replaces the triplet with the union of the requested
// capabilities. Duplicates and '-' are no-ops, so "rrw" and "rw" both
// yield 6 and "-" alone yields 0. A character outside {r,w,x,-} reports
// ErrInvalidSymbol naming the character and leaves the triplet unchanged.
func (t *Triplet) SetFromSymbols(s string) error {
	v := 0
	for i := 0; i < len(s); i++ {
		w, ok := weights[s[i]]
		if !ok {
			return fmt.Errorf("%w: %q", ErrInvalidSymbol, s[i])
		}
		v |= int(w)
	}
	t.SetValue(v)
	return nil
}

// String renders the triplet in fixed r,w,x order, '-' for absent bits.
func (t Triplet) String() string {
	out := [3]byte{'-', '-', '-'}
	if t.read != None {
		out[0] = Read.Symbol()
	}
	if t.write != None {
		out[1] = Write.Symbol()
	}
	if t.exec != None {
		out[2] = Exec.Symbol()
	}
	return string(out[:])
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
