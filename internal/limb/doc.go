// Package limb is the limb-vector core of the kernel: the Limb word type,
// carry-propagating vector primitives, normalization, comparison, long
// division and rounding shifts over caller-owned buffers.
//
// The limb width is 64 bits by default and 32 bits under the limb32 build
// tag. Both widths produce identical numeric results.
//
// Buffers are never normalized automatically; callers trim with Norm.
// Length mismatches panic with apperrors.LengthError.
package limb
