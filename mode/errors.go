package mode

import "errors"

var (
	ErrInvalidSymbol = errors.New("mode: invalid symbol")
	ErrBadOctal      = errors.New("mode: invalid octal mode")
)
