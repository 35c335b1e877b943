package idenc

import (
	"fmt"
	"math"
	"math/big"
)

// enbase converts v to a string of base-N digits, most significant first,
// left padded with the zero digit to minLength. Zero encodes as the single
// zero digit, never as an empty string.
func (e *Encoder) enbase(v uint64, minLength int) string {
	n := uint64(len(e.alphabet))

	// 64 digits covers any uint64 even in base 2.
	size := 64
	if minLength > size {
		size = minLength
	}
	buf := make([]rune, size)
	pos := size

	pos--
	buf[pos] = e.alphabet[v%n]
	v /= n
	for v > 0 {
		pos--
		buf[pos] = e.alphabet[v%n]
		v /= n
	}
	for size-pos < minLength {
		pos--
		buf[pos] = e.alphabet[0]
	}
	return string(buf[pos:])
}

// debase converts a string of base-N digits back to an integer. It reports
// [ErrValueRange] as soon as the value no longer fits in a uint64; callers
// layer the int64 check on top.
func (e *Encoder) debase(value string) (uint64, error) {
	n := uint64(len(e.alphabet))
	var v uint64
	pos := 0
	for _, c := range value {
		digit, ok := e.mapping[c]
		if !ok {
			return 0, fmt.Errorf("%w: %q at position %d", ErrInvalidCharacter, c, pos)
		}
		d := uint64(digit)
		if v > (math.MaxUint64-d)/n {
			return 0, fmt.Errorf("%w: %q overflows int64", ErrValueRange, value)
		}
		v = v*n + d
		pos++
	}
	return v, nil
}

// enbaseBig is [Encoder.enbase] for the arbitrary precision pipeline.
// v is consumed.
func (e *Encoder) enbaseBig(v *big.Int, minLength int) string {
	n := big.NewInt(int64(len(e.alphabet)))
	mod := new(big.Int)

	// Digits come out least significant first and are reversed at the end.
	var buf []rune
	v.DivMod(v, n, mod)
	buf = append(buf, e.alphabet[mod.Int64()])
	for v.Sign() > 0 {
		v.DivMod(v, n, mod)
		buf = append(buf, e.alphabet[mod.Int64()])
	}
	for len(buf) < minLength {
		buf = append(buf, e.alphabet[0])
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// debaseBig is [Encoder.debase] without the range restriction.
func (e *Encoder) debaseBig(value string) (*big.Int, error) {
	n := big.NewInt(int64(len(e.alphabet)))
	d := new(big.Int)
	v := new(big.Int)
	pos := 0
	for _, c := range value {
		digit, ok := e.mapping[c]
		if !ok {
			return nil, fmt.Errorf("%w: %q at position %d", ErrInvalidCharacter, c, pos)
		}
		v.Mul(v, n)
		v.Add(v, d.SetInt64(int64(digit)))
		pos++
	}
	return v, nil
}
