// Package rounding defines the rounding modes used by every inexact
// quotient or shift in the kernel, and the outcome reported with a
// rounded result.
//
// The unsigned decision lives in one place (Decide). Signed operations
// reuse it through the sign table in Mode.Neg: rounding a negative value
// toward negative infinity is rounding its magnitude up, so Floor on a
// negative operand is Ceiling on its absolute value.
package rounding

import (
	"fmt"
	"strings"

	apperrors "github.com/agbru/bignum/internal/errors"
)

// Mode selects how an inexact result is rounded.
type Mode uint8

const (
	// Down rounds toward zero.
	Down Mode = iota
	// Up rounds away from zero.
	Up
	// Floor rounds toward negative infinity.
	Floor
	// Ceiling rounds toward positive infinity.
	Ceiling
	// Nearest rounds to the closest value; exact ties go to the even one.
	Nearest
	// Exact requires the result to be representable and fails otherwise.
	Exact
)

var modeNames = [...]string{
	Down:    "Down",
	Up:      "Up",
	Floor:   "Floor",
	Ceiling: "Ceiling",
	Nearest: "Nearest",
	Exact:   "Exact",
}

// Modes lists every valid mode in declaration order.
var Modes = [...]Mode{Down, Up, Floor, Ceiling, Nearest, Exact}

func (m Mode) String() string {
	if m.Valid() {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Valid reports whether m is one of the six declared modes.
func (m Mode) Valid() bool { return m <= Exact }

// Neg returns the mode to apply to a magnitude so that the signed result
// honours m when the true value is negative.
func (m Mode) Neg() Mode {
	switch m {
	case Floor:
		return Ceiling
	case Ceiling:
		return Floor
	}
	return m
}

// ParseMode parses a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if strings.EqualFold(s, modeNames[m]) {
			return m, nil
		}
	}
	return 0, apperrors.ValidationError{Field: "mode", Message: fmt.Sprintf("unknown rounding mode %q", s)}
}

// Ordering reports how a rounded result compares with the exact value.
type Ordering int8

const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "Less"
	case Equal:
		return "Equal"
	case Greater:
		return "Greater"
	}
	return fmt.Sprintf("Ordering(%d)", int8(o))
}

// Neg returns the ordering seen after negating both values.
func (o Ordering) Neg() Ordering { return -o }

// Decide rounds a non-negative truncated quotient q.
//
// inexact reports a non-zero remainder, half compares the remainder with
// half the divisor, and odd is the parity of q. Decide returns whether q
// must be incremented, the resulting ordering, and ok=false when m is
// Exact and the quotient is inexact. An invalid mode is a precondition
// violation.
func Decide(m Mode, inexact bool, half Ordering, odd bool) (up bool, o Ordering, ok bool) {
	if !inexact {
		if !m.Valid() {
			apperrors.Precondition("rounding.Decide", "invalid mode %d", uint8(m))
		}
		return false, Equal, true
	}
	switch m {
	case Down, Floor:
		up = false
	case Up, Ceiling:
		up = true
	case Nearest:
		up = half == Greater || (half == Equal && odd)
	case Exact:
		return false, Equal, false
	default:
		apperrors.Precondition("rounding.Decide", "invalid mode %d", uint8(m))
	}
	if up {
		return true, Greater, true
	}
	return false, Less, true
}
