package dictionary

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
)

// ErrInvalidEscape is returned when a stored code point literal cannot be
// decoded into exactly one Unicode scalar.
var ErrInvalidEscape = errors.New("dictionary: invalid code point literal")

// DecodeEscaped turns a stored UCSUR literal into a rune. It accepts
// JSON-style surrogate pairs (backslash u DB86 backslash u DD00), the long
// form (backslash U 000F1900) and literals that are already decoded.
// An empty literal decodes to 0, meaning "no mapping".
func DecodeEscaped(literal string) (rune, error) {
	if literal == "" {
		return 0, nil
	}
	if literal[0] != '\\' {
		r, size := utf8.DecodeRuneInString(literal)
		if r == utf8.RuneError || size != len(literal) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidEscape, literal)
		}
		return r, nil
	}

	units := make([]uint16, 0, 2)
	rest := literal
	for rest != "" {
		if len(rest) < 2 || rest[0] != '\\' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidEscape, literal)
		}
		switch rest[1] {
		case 'u':
			if len(rest) < 6 {
				return 0, fmt.Errorf("%w: %q", ErrInvalidEscape, literal)
			}
			v, err := strconv.ParseUint(rest[2:6], 16, 16)
			if err != nil {
				return 0, fmt.Errorf("%w: %q", ErrInvalidEscape, literal)
			}
			units = append(units, uint16(v))
			rest = rest[6:]
		case 'U':
			if len(rest) < 10 {
				return 0, fmt.Errorf("%w: %q", ErrInvalidEscape, literal)
			}
			v, err := strconv.ParseUint(rest[2:10], 16, 32)
			if err != nil || !utf8.ValidRune(rune(v)) {
				return 0, fmt.Errorf("%w: %q", ErrInvalidEscape, literal)
			}
			if len(rest) != 10 || len(units) > 0 {
				return 0, fmt.Errorf("%w: %q", ErrInvalidEscape, literal)
			}
			return rune(v), nil
		default:
			return 0, fmt.Errorf("%w: %q", ErrInvalidEscape, literal)
		}
	}

	decoded := utf16.Decode(units)
	if len(decoded) != 1 || decoded[0] == utf8.RuneError {
		return 0, fmt.Errorf("%w: %q", ErrInvalidEscape, literal)
	}
	return decoded[0], nil
}
