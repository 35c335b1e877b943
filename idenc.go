// Package idenc encodes integer IDs, such as database primary keys, into
// short strings that do not reveal how many IDs exist or in what order they
// were issued. The mapping is a bijection; encoding and decoding always
// round-trip and two IDs can never share a string.
//
// Instead of hashing, idenc reverses the order of the low bits of the ID
// before converting it to a custom base. Consecutive IDs therefore come out
// looking unrelated, eg with the defaults 1 encodes to "twvge" while 2
// encodes to "64d46". The default alphabet is made of digits and lowercase
// letters with the easily confused ones(like o, 0, l and 1) removed, and is
// pre-shuffled; its character count is prime, which spreads encodings
// better across the output space.
//
// This is obfuscation, not encryption. Anyone who knows the alphabet and
// block size can decode. If that matters, treat both like you would a
// secret and mint a distinct alphabet per deployment with [RandomAlphabet].
//
// The package level functions [Encode], [Decode] and friends use a shared
// encoder built from the default settings. Applications with their own
// alphabet should create an [Encoder] with [New].
package idenc

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"unicode/utf8"
)

// The error kinds reported by this package. Returned errors wrap these with
// detail; match them with [errors.Is].
var (
	// ErrInvalidAlphabet means an alphabet has fewer than two characters or a repeated one.
	ErrInvalidAlphabet = errors.New("idenc: invalid alphabet")
	// ErrInvalidBlockSize means a block size is negative.
	ErrInvalidBlockSize = errors.New("idenc: invalid block size")
	// ErrInvalidChecksum means a checksum modulus is zero, negative, or not less than the alphabet length.
	ErrInvalidChecksum = errors.New("idenc: invalid checksum modulus")
	// ErrNegativeValue means an encode was asked for a negative ID.
	ErrNegativeValue = errors.New("idenc: negative value")
	// ErrInvalidCharacter means a decode found a character that is not in the alphabet.
	ErrInvalidCharacter = errors.New("idenc: invalid character")
	// ErrValueRange means a decode produced a value larger than [math.MaxInt64].
	// [Encoder.DecodeBig] accepts such values.
	ErrValueRange = errors.New("idenc: value out of range")
	// ErrChecksumMismatch means the checksum character of a checked decode did not match its payload.
	ErrChecksumMismatch = errors.New("idenc: checksum mismatch")
)

// Encoder reversibly maps non-negative integer IDs to strings over a fixed
// alphabet. The zero value is not usable; use [New] or [NewChecked] to get
// a valid Encoder.
//
// An Encoder is immutable and safe for concurrent use by multiple goroutines.
//
// The alphabet and block size of an Encoder are a compatibility contract:
// strings encoded under one pair can only be decoded under the same pair.
type Encoder struct {
	alphabet  []rune
	mapping   map[rune]int
	bigMask   *big.Int
	blockSize int
	checksum  int
	mask      uint64 // low blockSize bits, only meaningful when blockSize <= 63.
}

// New returns an [Encoder] that reverses the order of the low blockSize
// bits of every ID before base conversion. Bits above the block pass
// through unchanged, so IDs of any magnitude stay decodable. A blockSize of
// zero disables the bit shuffling, leaving plain base conversion.
// [DefaultBlockSize] is a good choice.
//
// The alphabet must have at least two characters, all distinct. Its first
// character doubles as the zero digit and the padding character.
//
// The checksum modulus used by [Encoder.EncodeChecked] is derived from the
// alphabet; use [NewChecked] to set it explicitly.
func New(alphabet string, blockSize int) (*Encoder, error) {
	checksum := DefaultChecksum
	if n := utf8.RuneCountInString(alphabet); n <= DefaultChecksum {
		checksum = n - 1
	}
	return NewChecked(alphabet, blockSize, checksum)
}

// NewChecked is like [New] except that the checksum modulus for
// [Encoder.EncodeChecked] and [Encoder.DecodeChecked] is given explicitly.
// The modulus must be greater than zero and less than the alphabet length.
func NewChecked(alphabet string, blockSize, checksum int) (*Encoder, error) {
	runes, mapping, err := parseAlphabet(alphabet)
	if err != nil {
		return nil, err
	}
	if blockSize < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBlockSize, blockSize)
	}
	if checksum <= 0 || checksum >= len(runes) {
		return nil, fmt.Errorf("%w: %d is not in (0, %d)", ErrInvalidChecksum, checksum, len(runes))
	}

	e := &Encoder{
		alphabet:  runes,
		mapping:   mapping,
		blockSize: blockSize,
		checksum:  checksum,
		bigMask: new(big.Int).Sub(
			new(big.Int).Lsh(big.NewInt(1), uint(blockSize)),
			big.NewInt(1),
		),
	}
	if blockSize <= 63 {
		e.mask = 1<<uint(blockSize) - 1
	}
	return e, nil
}

// Encode encodes id as the shortest string that represents it under the
// Encoder's alphabet. Use [Encoder.EncodePadded] to guarantee a minimum
// length.
func (e *Encoder) Encode(id int64) (string, error) {
	return e.EncodePadded(id, 0)
}

// EncodePadded is like [Encoder.Encode] except that the result is left
// padded with the alphabet's first character until it is at least minLength
// characters long. Padding never truncates; IDs whose encoding is already
// minLength or longer come out as they would from [Encoder.Encode].
func (e *Encoder) EncodePadded(id int64, minLength int) (string, error) {
	if id < 0 {
		return "", fmt.Errorf("%w: %d", ErrNegativeValue, id)
	}
	if e.blockSize > 63 {
		return e.enbaseBig(e.transformBig(new(big.Int).SetInt64(id)), minLength), nil
	}
	return e.enbase(e.transform(uint64(id)), minLength), nil
}

// Decode decodes value back to the ID it was encoded from. It fails with
// [ErrInvalidCharacter] if value contains a character that is not in the
// alphabet, and with [ErrValueRange] if value represents an ID above
// [math.MaxInt64]; [Encoder.DecodeBig] accepts those.
//
// Left padding does not survive the round trip: "y6p28" and "6p28" decode
// to the same ID under the default encoder, the same way 007 and 7 are the
// same number.
func (e *Encoder) Decode(value string) (int64, error) {
	if e.blockSize > 63 {
		v, err := e.debaseBig(value)
		if err != nil {
			return 0, err
		}
		v = e.transformBig(v)
		if !v.IsInt64() {
			return 0, fmt.Errorf("%w: %q overflows int64", ErrValueRange, value)
		}
		return v.Int64(), nil
	}

	v, err := e.debase(value)
	if err != nil {
		return 0, err
	}
	v = e.transform(v)
	if v > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %q overflows int64", ErrValueRange, value)
	}
	return int64(v), nil
}

// EncodeChecked is like [Encoder.EncodePadded] except that the result is
// prefixed with one checksum character, the alphabet character at index
// id mod the checksum modulus. The checksum catches most transcription
// mistakes, eg an ID typed off by one; it is not an integrity mechanism.
func (e *Encoder) EncodeChecked(id int64, minLength int) (string, error) {
	s, err := e.EncodePadded(id, minLength)
	if err != nil {
		return "", err
	}
	return string(e.alphabet[int(id%int64(e.checksum))]) + s, nil
}

// DecodeChecked decodes a string produced by [Encoder.EncodeChecked],
// verifying its checksum character. It fails with [ErrChecksumMismatch] if
// the checksum character does not match the decoded ID.
func (e *Encoder) DecodeChecked(value string) (int64, error) {
	first, size := utf8.DecodeRuneInString(value)
	if size == 0 {
		return 0, fmt.Errorf("%w: %q has no checksum character", ErrChecksumMismatch, value)
	}

	id, err := e.Decode(value[size:])
	if err != nil {
		return 0, err
	}
	if first != e.alphabet[int(id%int64(e.checksum))] {
		return 0, fmt.Errorf("%w: %q", ErrChecksumMismatch, value)
	}
	return id, nil
}

// EncodeBig is like [Encoder.EncodePadded] for IDs beyond the int64 range.
// id may be arbitrarily large and is not modified.
func (e *Encoder) EncodeBig(id *big.Int, minLength int) (string, error) {
	if id.Sign() < 0 {
		return "", fmt.Errorf("%w: %s", ErrNegativeValue, id)
	}
	return e.enbaseBig(e.transformBig(id), minLength), nil
}

// DecodeBig is like [Encoder.Decode] without the int64 range restriction.
func (e *Encoder) DecodeBig(value string) (*big.Int, error) {
	v, err := e.debaseBig(value)
	if err != nil {
		return nil, err
	}
	return e.transformBig(v), nil
}
