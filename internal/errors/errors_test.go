// Package apperrors provides tests for kernel error types.
package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	err := NewConfigError("threshold %s=%d below minimum %d", "toom33", 3, 9)
	assert.Equal(t, "threshold toom33=3 below minimum 9", err.Error())

	var cfgErr ConfigError
	require.True(t, errors.As(err, &cfgErr))
}

func TestValidationError(t *testing.T) {
	t.Parallel()
	err := ValidationError{Field: "digits", Message: "digit 9 out of range for base 8"}
	assert.Equal(t, `validation error for "digits": digit 9 out of range for base 8`, err.Error())
}

func TestArithmeticError_Is(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"same kind matches sentinel", NewArithmeticError("DivRound", DivisionByZero), ErrDivisionByZero, true},
		{"other kind does not match", NewArithmeticError("DivRound", Inexact), ErrDivisionByZero, false},
		{"wrapped error matches", fmt.Errorf("ctx: %w", NewArithmeticError("Uint64", Overflow)), ErrOverflow, true},
		{"op must match when set", NewArithmeticError("Sub", NegativeResult), ArithmeticError{Op: "Add", Kind: NegativeResult}, false},
		{"op matches when equal", NewArithmeticError("Sub", NegativeResult), ArithmeticError{Op: "Sub", Kind: NegativeResult}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.target))
		})
	}
}

func TestArithmeticError_Message(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "DivRound: inexact result under Exact rounding", NewArithmeticError("DivRound", Inexact).Error())
	assert.Equal(t, "division by zero", ErrDivisionByZero.Error())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}

func TestPrecondition_Panics(t *testing.T) {
	t.Parallel()
	defer func() {
		r := recover()
		require.NotNil(t, r)
		pe, ok := r.(PreconditionError)
		require.True(t, ok, "panic value %T", r)
		assert.Equal(t, "MulBasecase", pe.Op)
		assert.Contains(t, pe.Error(), "empty operand")
	}()
	Precondition("MulBasecase", "empty operand")
}

func TestCheckLen(t *testing.T) {
	t.Parallel()
	assert.NotPanics(t, func() { CheckLen("AddVV", 4, 4) })
	assert.PanicsWithValue(t, LengthError{Op: "AddVV", Want: 4, Got: 3}, func() { CheckLen("AddVV", 3, 4) })
	assert.Equal(t, "AddVV: buffer length 3, want 4", LengthError{Op: "AddVV", Want: 4, Got: 3}.Error())
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	assert.Nil(t, WrapError(nil, "loading %s", "profile"))

	base := NewConfigError("bad value")
	wrapped := WrapError(base, "loading %s", "profile.yaml")
	assert.Equal(t, "loading profile.yaml: bad value", wrapped.Error())
	assert.True(t, errors.Is(wrapped, base))
}
