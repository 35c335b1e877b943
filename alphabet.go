package idenc

import (
	cryptoRand "crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// parseAlphabet validates an alphabet and builds its character to digit
// mapping. It is the only place alphabets are inspected; everything else
// trusts its output.
func parseAlphabet(alphabet string) ([]rune, map[rune]int, error) {
	runes := []rune(alphabet)
	if len(runes) < 2 {
		return nil, nil, fmt.Errorf("%w: need at least 2 characters, got %d", ErrInvalidAlphabet, len(runes))
	}

	mapping := make(map[rune]int, len(runes))
	for i, c := range runes {
		if _, ok := mapping[c]; ok {
			return nil, nil, fmt.Errorf("%w: character %q repeats", ErrInvalidAlphabet, c)
		}
		mapping[c] = i
	}
	return runes, mapping, nil
}

// RandomAlphabet returns a fresh random permutation of [DefaultAlphabet],
// reading entropy from r. Pass [crypto/rand.Reader] unless the output has
// to be reproducible(eg in tests).
//
// Deployments that want their encodings to be hard to decode should mint
// one alphabet per entity type and store it with the same care as a
// credential.
func RandomAlphabet(r io.Reader) (string, error) {
	return RandomAlphabetFrom(r, DefaultAlphabet, len(DefaultAlphabet))
}

// RandomAlphabetFrom returns length distinct characters drawn from base in
// random order. base must itself be a valid alphabet and length must
// satisfy 2 <= length <= len(base), so that the result is usable with
// [New].
func RandomAlphabetFrom(r io.Reader, base string, length int) (string, error) {
	runes, _, err := parseAlphabet(base)
	if err != nil {
		return "", err
	}
	if length < 2 || length > len(runes) {
		return "", fmt.Errorf("%w: cannot draw %d distinct characters from %d", ErrInvalidAlphabet, length, len(runes))
	}

	// Partial Fisher-Yates; after i rounds the first i characters are an
	// unbiased sample without replacement.
	for i := 0; i < length; i++ {
		j, err := cryptoRand.Int(r, big.NewInt(int64(len(runes)-i)))
		if err != nil {
			return "", fmt.Errorf("idenc: reading entropy: %w", err)
		}
		k := i + int(j.Int64())
		runes[i], runes[k] = runes[k], runes[i]
	}
	return string(runes[:length]), nil
}
