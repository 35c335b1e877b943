package idenc

import (
	"math/big"
	"math/bits"
)

// transform reverses the order of the low blockSize bits of n; bits above
// the block are untouched. Reversing a fixed window twice restores it, so
// transform is its own inverse and serves both the encode and the decode
// direction. With a blockSize of zero the mask is empty and n comes back
// unchanged.
//
// Only valid for block sizes up to 63; larger blocks go through
// [Encoder.transformBig].
func (e *Encoder) transform(n uint64) uint64 {
	reversed := bits.Reverse64(n&e.mask) >> (64 - uint(e.blockSize))
	return n&^e.mask | reversed
}

// transformBig is [Encoder.transform] for the arbitrary precision pipeline,
// reversing the block bit by bit. Any block size is legal and bits above
// the block stay put no matter how large n is. n is not modified.
func (e *Encoder) transformBig(n *big.Int) *big.Int {
	result := new(big.Int).AndNot(n, e.bigMask)
	for i := 0; i < e.blockSize; i++ {
		if n.Bit(i) == 1 {
			result.SetBit(result, e.blockSize-1-i, 1)
		}
	}
	return result
}
