package universe

import (
	"math/bits"
	"math/rand"
)

//bitSet is a packed cell buffer, one bit per cell
//bit n lives at byte n/8 under the mask 1<<(n%8)
type bitSet []byte

//newBitSet allocates the buffer for n bits, all cleared
func newBitSet(n int) bitSet {
	return make(bitSet, (n+7)/8)
}

func (b bitSet) get(n int) bool {
	return b[n>>3]&(1<<uint(n&7)) != 0
}

func (b bitSet) set(n int, v bool) {
	if v {
		b[n>>3] |= 1 << uint(n&7)
	} else {
		b[n>>3] &^= 1 << uint(n&7)
	}
}

func (b bitSet) flip(n int) {
	b[n>>3] ^= 1 << uint(n&7)
}

func (b bitSet) zero() {
	for i := range b {
		b[i] = 0
	}
}

//fill draws every byte from rng and clears the padding bits beyond n
func (b bitSet) fill(rng *rand.Rand, n int) {
	for i := range b {
		b[i] = byte(rng.Intn(256))
	}
	if rem := n & 7; rem != 0 && len(b) > 0 {
		b[len(b)-1] &= byte(1<<uint(rem)) - 1
	}
}

//count returns the number of set bits
func (b bitSet) count() int {
	c := 0
	for _, v := range b {
		c += bits.OnesCount8(v)
	}
	return c
}
