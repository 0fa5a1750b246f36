// Package bitutil provides dense bit containers for binarized images.
package bitutil

import (
	"math/bits"
	"strings"
)

// BitArray is a fixed-size row of bits packed into uint32 words. Bit i lives
// in word i/32 at position i%32.
type BitArray struct {
	bits []uint32
	size int
}

// NewBitArray creates a cleared BitArray holding size bits.
func NewBitArray(size int) *BitArray {
	if size <= 0 {
		return &BitArray{}
	}
	return &BitArray{
		bits: make([]uint32, (size+31)/32),
		size: size,
	}
}

// Size returns the number of bits in the array.
func (a *BitArray) Size() int {
	return a.size
}

// Get returns true if bit i is set.
func (a *BitArray) Get(i int) bool {
	return a.bits[i/32]&(1<<uint(i&0x1f)) != 0
}

// Set sets bit i.
func (a *BitArray) Set(i int) {
	a.bits[i/32] |= 1 << uint(i&0x1f)
}

// Flip flips bit i.
func (a *BitArray) Flip(i int) {
	a.bits[i/32] ^= 1 << uint(i&0x1f)
}

// Clear clears all bits.
func (a *BitArray) Clear() {
	clear(a.bits)
}

// SetBulk overwrites the 32 bits of the word containing bit i.
func (a *BitArray) SetBulk(i int, word uint32) {
	a.bits[i/32] = word
}

// SetRange sets bits [start, end).
func (a *BitArray) SetRange(start, end int) {
	a.checkRange(start, end)
	for i := start; i < end; {
		mask, next := rangeMask(i, end)
		a.bits[i/32] |= mask
		i = next
	}
}

// IsRange reports whether every bit in [start, end) equals value.
func (a *BitArray) IsRange(start, end int, value bool) bool {
	a.checkRange(start, end)
	for i := start; i < end; {
		mask, next := rangeMask(i, end)
		got := a.bits[i/32] & mask
		if value && got != mask || !value && got != 0 {
			return false
		}
		i = next
	}
	return true
}

func (a *BitArray) checkRange(start, end int) {
	if end < start || start < 0 || end > a.size {
		panic("bitarray: invalid range")
	}
}

// rangeMask returns the mask of bits from i up to end within i's word, and
// the first index of the following word (or end).
func rangeMask(i, end int) (uint32, int) {
	wordEnd := (i/32 + 1) * 32
	if wordEnd > end {
		wordEnd = end
	}
	n := uint(wordEnd - i)
	mask := ^uint32(0)
	if n < 32 {
		mask = (1 << n) - 1
	}
	return mask << uint(i&0x1f), wordEnd
}

// GetNextSet returns the index of the first set bit at or after from, or
// Size if there is none.
func (a *BitArray) GetNextSet(from int) int {
	return a.next(from, 0)
}

// GetNextUnset returns the index of the first unset bit at or after from, or
// Size if there is none.
func (a *BitArray) GetNextUnset(from int) int {
	return a.next(from, ^uint32(0))
}

func (a *BitArray) next(from int, invert uint32) int {
	if from >= a.size {
		return a.size
	}
	w := from / 32
	word := (a.bits[w] ^ invert) & (^uint32(0) << uint(from&0x1f))
	for word == 0 {
		w++
		if w == len(a.bits) {
			return a.size
		}
		word = a.bits[w] ^ invert
	}
	return min(w*32+bits.TrailingZeros32(word), a.size)
}

// Count returns the number of set bits.
func (a *BitArray) Count() int {
	n := 0
	for _, w := range a.bits {
		n += bits.OnesCount32(w)
	}
	return n
}

// BitData returns the underlying words.
func (a *BitArray) BitData() []uint32 {
	return a.bits
}

// Reverse reverses the order of the bits.
func (a *BitArray) Reverse() {
	reversed := make([]uint32, len(a.bits))
	for i := 0; i < a.size; i++ {
		if a.Get(i) {
			j := a.size - 1 - i
			reversed[j/32] |= 1 << uint(j&0x1f)
		}
	}
	a.bits = reversed
}

// Clone returns a copy of this BitArray.
func (a *BitArray) Clone() *BitArray {
	b := make([]uint32, len(a.bits))
	copy(b, a.bits)
	return &BitArray{bits: b, size: a.size}
}

// String returns a string representation using 'X' for set and '.' for
// unset, with a space before every group of eight.
func (a *BitArray) String() string {
	var sb strings.Builder
	sb.Grow(a.size + a.size/8 + 1)
	for i := 0; i < a.size; i++ {
		if i&0x07 == 0 {
			sb.WriteByte(' ')
		}
		if a.Get(i) {
			sb.WriteByte('X')
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}
