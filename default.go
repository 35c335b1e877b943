package idenc

import "sync"

// The settings behind [Default]. They are a compatibility contract; change
// any of them and every string encoded before the change stops decoding to
// the ID it came from.
const (
	// DefaultAlphabet is the alphabet of the default encoder. It has 31
	// characters, a prime count.
	DefaultAlphabet = "ygw96j2cetxuk3fq4rv5z7hsdamn8bp"
	// DefaultBlockSize is how many low bits the default encoder shuffles.
	DefaultBlockSize = 24
	// DefaultChecksum is the checksum modulus of the default encoder.
	DefaultChecksum = 29
	// DefaultMinLength is the padding length used by the idenc command line
	// tool. The library itself only pads when asked to.
	DefaultMinLength = 5
)

var (
	defaultOnce sync.Once //nolint:gochecknoglobals
	defaultEnc  *Encoder  //nolint:gochecknoglobals
)

// Default returns the [Encoder] behind the package level functions. It is
// built once from [DefaultAlphabet], [DefaultBlockSize] and
// [DefaultChecksum] and never changes; code that needs other settings
// should create its own Encoder with [New].
func Default() *Encoder {
	defaultOnce.Do(func() {
		e, err := NewChecked(DefaultAlphabet, DefaultBlockSize, DefaultChecksum)
		if err != nil {
			panic(err)
		}
		defaultEnc = e
	})
	return defaultEnc
}

// Encode encodes id with the default encoder.
func Encode(id int64) (string, error) {
	return Default().Encode(id)
}

// EncodePadded encodes id with the default encoder, left padding the result
// to minLength characters.
func EncodePadded(id int64, minLength int) (string, error) {
	return Default().EncodePadded(id, minLength)
}

// Decode decodes value with the default encoder.
func Decode(value string) (int64, error) {
	return Default().Decode(value)
}

// EncodeChecked encodes id with the default encoder, prefixing a checksum
// character.
func EncodeChecked(id int64, minLength int) (string, error) {
	return Default().EncodeChecked(id, minLength)
}

// DecodeChecked decodes a checksum prefixed value with the default encoder.
func DecodeChecked(value string) (int64, error) {
	return Default().DecodeChecked(value)
}
