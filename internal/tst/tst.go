// Package tst implements some common test functionality needed across idenc.
package tst

import (
	"io"
	mathRand "math/rand"
	"slices"

	"go.akshayshah.org/attest"
)

// Entropy returns a deterministic entropy source; the same seed always
// yields the same bytes. Tests that shuffle alphabets use it so that their
// expectations stay stable across runs.
func Entropy(seed int64) io.Reader {
	return mathRand.New(mathRand.NewSource(seed))
}

// Permutation asserts that got is a reordering of want; same characters,
// same counts, any order.
func Permutation(t attest.TB, got, want string) {
	t.Helper()

	g := []rune(got)
	w := []rune(want)
	slices.Sort(g)
	slices.Sort(w)
	attest.Equal(t, string(g), string(w))
}
