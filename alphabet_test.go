package idenc

import (
	"errors"
	"testing"
	"testing/iotest"

	"github.com/komuw/idenc/internal/tst"
	"go.akshayshah.org/attest"
)

func TestRandomAlphabet(t *testing.T) {
	t.Parallel()

	t.Run("is a permutation of the default", func(t *testing.T) {
		t.Parallel()

		got, err := RandomAlphabet(tst.Entropy(1))
		attest.Ok(t, err)
		tst.Permutation(t, got, DefaultAlphabet)
	})

	t.Run("same entropy same alphabet", func(t *testing.T) {
		t.Parallel()

		first, err := RandomAlphabet(tst.Entropy(42))
		attest.Ok(t, err)

		second, err := RandomAlphabet(tst.Entropy(42))
		attest.Ok(t, err)
		attest.Equal(t, first, second)

		other, err := RandomAlphabet(tst.Entropy(43))
		attest.Ok(t, err)
		attest.NotEqual(t, first, other)
	})

	t.Run("result works with New", func(t *testing.T) {
		t.Parallel()

		alphabet, err := RandomAlphabet(tst.Entropy(7))
		attest.Ok(t, err)

		enc, err := New(alphabet, DefaultBlockSize)
		attest.Ok(t, err)

		s, err := enc.Encode(12345)
		attest.Ok(t, err)

		id, err := enc.Decode(s)
		attest.Ok(t, err)
		attest.Equal(t, id, 12345)
	})

	t.Run("entropy failure surfaces", func(t *testing.T) {
		t.Parallel()

		_, err := RandomAlphabet(iotest.ErrReader(errors.New("no entropy")))
		attest.Error(t, err)
		attest.Subsequence(t, err.Error(), "no entropy")
	})
}

func TestRandomAlphabetFrom(t *testing.T) {
	t.Parallel()

	t.Run("draws the requested count", func(t *testing.T) {
		t.Parallel()

		got, err := RandomAlphabetFrom(tst.Entropy(3), "abcdefgh", 4)
		attest.Ok(t, err)
		attest.Equal(t, len(got), 4)

		// All drawn characters come from the base, no repeats.
		_, _, err = parseAlphabet(got)
		attest.Ok(t, err)
		for _, c := range got {
			attest.Subsequence(t, "abcdefgh", string(c))
		}
	})

	t.Run("full length is a permutation", func(t *testing.T) {
		t.Parallel()

		got, err := RandomAlphabetFrom(tst.Entropy(9), "abcdefgh", 8)
		attest.Ok(t, err)
		tst.Permutation(t, got, "abcdefgh")
	})

	t.Run("rejects bad lengths", func(t *testing.T) {
		t.Parallel()

		for _, length := range []int{-1, 0, 1, 9} {
			_, err := RandomAlphabetFrom(tst.Entropy(1), "abcdefgh", length)
			attest.Error(t, err, attest.Sprintf("length %d", length))
			attest.True(t, errors.Is(err, ErrInvalidAlphabet))
		}
	})

	t.Run("rejects a base with repeats", func(t *testing.T) {
		t.Parallel()

		_, err := RandomAlphabetFrom(tst.Entropy(1), "abca", 2)
		attest.True(t, errors.Is(err, ErrInvalidAlphabet))
	})
}
