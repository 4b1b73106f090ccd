package natural

import (
	"fmt"
	"math/bits"
	"slices"
	"strings"

	apperrors "github.com/agbru/bignum/internal/errors"
	"github.com/agbru/bignum/internal/limb"
)

const digitChars = "0123456789abcdefghijklmnopqrstuvwxyz"

// MaxRadix is the largest radix accepted by Parse and Text.
const MaxRadix = len(digitChars)

// radixChunk returns the largest power of radix that fits in a limb and
// its exponent.
func radixChunk(radix int) (bb limb.Limb, k int) {
	bb, k = limb.Limb(radix), 1
	for limit := limb.Max / limb.Limb(radix); bb <= limit; k++ {
		bb *= limb.Limb(radix)
	}
	return bb, k
}

func validRadix(radix int) bool { return radix >= 2 && radix <= MaxRadix }

// Text returns x in the given radix using lower-case letters for digits
// above 9. It panics unless 2 <= radix <= MaxRadix.
func (x Natural) Text(radix int) string {
	if !validRadix(radix) {
		apperrors.Precondition("Text", "radix %d out of range", radix)
	}
	if x.IsZero() {
		return "0"
	}
	xl := x.limbs()
	if radix&(radix-1) == 0 {
		digits, _ := x.PowerOf2DigitsDesc(uint(bits.TrailingZeros(uint(radix))))
		var sb strings.Builder
		sb.Grow(len(digits))
		for _, d := range digits {
			sb.WriteByte(digitChars[d])
		}
		return sb.String()
	}

	bb, k := radixChunk(radix)
	q := append([]limb.Limb(nil), xl...)
	// Chunks come out least significant first.
	var chunks []limb.Limb
	for len(q) > 0 {
		chunks = append(chunks, limb.DivW(q, q, bb))
		q = limb.Norm(q)
	}
	buf := make([]byte, 0, len(chunks)*k)
	buf = appendChunk(buf, chunks[len(chunks)-1], radix, 0)
	for i := len(chunks) - 2; i >= 0; i-- {
		buf = appendChunk(buf, chunks[i], radix, k)
	}
	return string(buf)
}

// appendChunk appends c in the given radix, left-padded with zeros to
// width digits.
func appendChunk(buf []byte, c limb.Limb, radix, width int) []byte {
	var tmp [64]byte
	i := len(tmp)
	for c > 0 || len(tmp)-i < width {
		i--
		tmp[i] = digitChars[c%limb.Limb(radix)]
		c /= limb.Limb(radix)
	}
	return append(buf, tmp[i:]...)
}

// String returns x in decimal.
func (x Natural) String() string { return x.Text(10) }

// MarshalText implements encoding.TextMarshaler using decimal.
func (x Natural) MarshalText() ([]byte, error) { return []byte(x.Text(10)), nil }

// UnmarshalText implements encoding.TextUnmarshaler using decimal.
func (x *Natural) UnmarshalText(text []byte) error {
	v, err := Parse(string(text), 10)
	if err != nil {
		return err
	}
	*x = v
	return nil
}

func digitValue(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'z':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'Z':
		return int(c-'A') + 10
	}
	return MaxRadix
}

// Parse reads a non-empty string of digits in the given radix. Letters
// are case-insensitive; signs, prefixes and separators are rejected.
func Parse(s string, radix int) (Natural, error) {
	if !validRadix(radix) {
		return Natural{}, apperrors.ValidationError{Field: "radix", Message: fmt.Sprintf("radix %d out of range [2, %d]", radix, MaxRadix)}
	}
	if s == "" {
		return Natural{}, apperrors.ValidationError{Field: "s", Message: "empty string"}
	}
	bb, k := radixChunk(radix)
	z := make([]limb.Limb, len(s)*bits.Len(uint(radix))/limb.Width+2)
	n := 0
	for start := 0; start < len(s); start += k {
		end := min(start+k, len(s))
		mult := bb
		if end-start < k {
			mult = 1
			for range end - start {
				mult *= limb.Limb(radix)
			}
		}
		var v limb.Limb
		for i := start; i < end; i++ {
			d := digitValue(s[i])
			if d >= radix {
				return Natural{}, apperrors.ValidationError{
					Field:   "s",
					Message: fmt.Sprintf("invalid digit %q at offset %d for radix %d", s[i], i, radix),
				}
			}
			v = v*limb.Limb(radix) + limb.Limb(d)
		}
		if c := limb.MulAddVWW(z[:n], z[:n], mult, v); c != 0 {
			z[n] = c
			n++
		}
	}
	return fromLimbs(z[:n]), nil
}

// MustParse is like Parse but panics on error. It is meant for constants.
func MustParse(s string, radix int) Natural {
	x, err := Parse(s, radix)
	if err != nil {
		panic(err)
	}
	return x
}

func checkLog2Base(log2b uint) error {
	if log2b < 1 || log2b > 64 {
		return apperrors.ValidationError{Field: "log2b", Message: fmt.Sprintf("log2 of base %d out of range [1, 64]", log2b)}
	}
	return nil
}

// extract returns the width bits of x starting at bit pos.
func extract(x []limb.Limb, pos, width uint) uint64 {
	var v uint64
	for got := uint(0); got < width; {
		i := int((pos + got) / limb.Width)
		if i >= len(x) {
			break
		}
		off := (pos + got) % limb.Width
		take := min(limb.Width-off, width-got)
		w := uint64(x[i] >> off)
		if take < 64 {
			w &= 1<<take - 1
		}
		v |= w << got
		got += take
	}
	return v
}

// deposit ORs the low width bits of v into z starting at bit pos.
func deposit(z []limb.Limb, pos, width uint, v uint64) {
	for width > 0 && v != 0 {
		i := pos / limb.Width
		off := pos % limb.Width
		take := min(limb.Width-off, width)
		z[i] |= limb.Limb(v) << off
		if take >= 64 {
			v = 0
		} else {
			v >>= take
		}
		pos += take
		width -= take
	}
}

// PowerOf2DigitsAsc returns the digits of x in base 2^log2b, least
// significant first, for 1 <= log2b <= 64. Zero has no digits.
func (x Natural) PowerOf2DigitsAsc(log2b uint) ([]uint64, error) {
	if err := checkLog2Base(log2b); err != nil {
		return nil, err
	}
	xl := x.limbs()
	n := (uint(limb.BitLen(xl)) + log2b - 1) / log2b
	digits := make([]uint64, n)
	for i := range digits {
		digits[i] = extract(xl, uint(i)*log2b, log2b)
	}
	return digits, nil
}

// PowerOf2DigitsDesc is PowerOf2DigitsAsc with the most significant digit
// first.
func (x Natural) PowerOf2DigitsDesc(log2b uint) ([]uint64, error) {
	digits, err := x.PowerOf2DigitsAsc(log2b)
	slices.Reverse(digits)
	return digits, err
}

// FromPowerOf2DigitsAsc builds a Natural from base 2^log2b digits given
// least significant first. Every digit must be below 2^log2b; leading
// zero digits are allowed.
func FromPowerOf2DigitsAsc(log2b uint, digits []uint64) (Natural, error) {
	if err := checkLog2Base(log2b); err != nil {
		return Natural{}, err
	}
	total := uint(len(digits)) * log2b
	z := make([]limb.Limb, (total+limb.Width-1)/limb.Width)
	for i, d := range digits {
		if log2b < 64 && d>>log2b != 0 {
			return Natural{}, apperrors.ValidationError{
				Field:   "digits",
				Message: fmt.Sprintf("digit %d at index %d does not fit in %d bits", d, i, log2b),
			}
		}
		deposit(z, uint(i)*log2b, log2b, d)
	}
	return fromLimbs(z), nil
}

// FromPowerOf2DigitsDesc is FromPowerOf2DigitsAsc with the most
// significant digit first.
func FromPowerOf2DigitsDesc(log2b uint, digits []uint64) (Natural, error) {
	asc := slices.Clone(digits)
	slices.Reverse(asc)
	return FromPowerOf2DigitsAsc(log2b, asc)
}

// BitsAsc returns the bits of x, least significant first, without
// leading zeros.
func (x Natural) BitsAsc() []bool {
	xl := x.limbs()
	out := make([]bool, limb.BitLen(xl))
	for i := range out {
		out[i] = limb.Bit(xl, uint(i)) != 0
	}
	return out
}

// BitsDesc returns the bits of x, most significant first.
func (x Natural) BitsDesc() []bool {
	out := x.BitsAsc()
	slices.Reverse(out)
	return out
}

// FromBitsAsc builds a Natural from bits given least significant first.
func FromBitsAsc(b []bool) Natural {
	z := make([]limb.Limb, (len(b)+limb.Width-1)/limb.Width)
	for i, set := range b {
		if set {
			z[i/limb.Width] |= 1 << (uint(i) % limb.Width)
		}
	}
	return fromLimbs(z)
}

// FromBitsDesc builds a Natural from bits given most significant first.
func FromBitsDesc(b []bool) Natural {
	asc := slices.Clone(b)
	slices.Reverse(asc)
	return FromBitsAsc(asc)
}
