// Package apperrors defines the error types of the arithmetic kernel.
//
// Two classes are kept apart:
//   - expected, user-facing failures (ArithmeticError, ValidationError,
//     ConfigError) are returned as error values;
//   - programming errors (PreconditionError, LengthError) are raised with
//     panic and never recovered inside the kernel.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// ArithmeticError implements Is so callers can match a kind with errors.Is
// and the Err* sentinels.
package apperrors
