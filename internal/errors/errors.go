package apperrors

import (
	"fmt"
)

// ConfigError represents an invalid kernel configuration, such as a
// threshold table that is not monotone or a malformed profile file.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError represents an input validation failure on a conversion,
// for example a digit outside the radix or an empty string. It identifies
// which input failed and why.
type ValidationError struct {
	// Field is the name of the input that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// ─────────────────────────────────────────────────────────────────────────────
// Arithmetic errors (expected, user-facing)
// ─────────────────────────────────────────────────────────────────────────────

// Kind classifies an ArithmeticError.
type Kind uint8

const (
	// DivisionByZero is reported by any division, modulus or rounding
	// division whose divisor is zero.
	DivisionByZero Kind = iota + 1
	// Inexact is reported by Exact rounding when the quotient is not integral.
	Inexact
	// NegativeRoot is reported for an even-degree root of a negative operand.
	NegativeRoot
	// Overflow is reported when a value does not fit the target range of a
	// conversion.
	Overflow
	// NegativeResult is reported by a checked subtraction whose result
	// would be negative.
	NegativeResult
)

var kindNames = [...]string{
	DivisionByZero: "division by zero",
	Inexact:        "inexact result under Exact rounding",
	NegativeRoot:   "even root of a negative operand",
	Overflow:       "value out of range",
	NegativeResult: "negative result",
}

// String returns a human readable description of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ArithmeticError is returned by value-level operations for expected
// failures. Use errors.Is with the Err* sentinels to test the kind.
type ArithmeticError struct {
	// Op names the failing operation, e.g. "DivRound".
	Op string
	// Kind classifies the failure.
	Kind Kind
}

// Error returns a formatted message describing the arithmetic failure.
func (e ArithmeticError) Error() string {
	if e.Op == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

// Is reports whether target is an ArithmeticError of the same kind. An
// empty Op on the target matches any operation, which makes the Err*
// sentinels usable with errors.Is.
func (e ArithmeticError) Is(target error) bool {
	t, ok := target.(ArithmeticError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Op == "" || t.Op == e.Op)
}

// Sentinels for errors.Is.
var (
	ErrDivisionByZero = ArithmeticError{Kind: DivisionByZero}
	ErrInexact        = ArithmeticError{Kind: Inexact}
	ErrNegativeRoot   = ArithmeticError{Kind: NegativeRoot}
	ErrOverflow       = ArithmeticError{Kind: Overflow}
	ErrNegativeResult = ArithmeticError{Kind: NegativeResult}
)

// NewArithmeticError returns an ArithmeticError for op.
func NewArithmeticError(op string, kind Kind) error {
	return ArithmeticError{Op: op, Kind: kind}
}

// ─────────────────────────────────────────────────────────────────────────────
// Precondition violations (fatal, programming errors)
// ─────────────────────────────────────────────────────────────────────────────

// PreconditionError describes a violated precondition of a low-level
// primitive: disallowed aliasing, an empty operand where one is required,
// a matrix capacity overrun, or an invalid rounding request. It is never
// returned; it is the value passed to panic.
type PreconditionError struct {
	Op      string
	Message string
}

// Error returns a formatted message describing the violation.
func (e PreconditionError) Error() string {
	return fmt.Sprintf("%s: precondition violated: %s", e.Op, e.Message)
}

// LengthError describes a caller-supplied buffer whose length does not
// match what the primitive requires. Like PreconditionError it is panicked.
type LengthError struct {
	Op   string
	Want int
	Got  int
}

// Error returns a formatted message describing the mismatch.
func (e LengthError) Error() string {
	return fmt.Sprintf("%s: buffer length %d, want %d", e.Op, e.Got, e.Want)
}

// Precondition panics with a PreconditionError built from the format.
func Precondition(op, format string, a ...any) {
	panic(PreconditionError{Op: op, Message: fmt.Sprintf(format, a...)})
}

// CheckLen panics with a LengthError when got != want.
func CheckLen(op string, got, want int) {
	if got != want {
		panic(LengthError{Op: op, Want: want, Got: got})
	}
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Returns nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}
