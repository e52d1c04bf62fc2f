// Package bitvec provides a growable bit vector used to flag significant
// animation frames by absolute frame index.
package bitvec

import (
	"math/bits"
	"strings"
)

const wordBits = 64

// Vector is a fixed-capacity bit vector. Reads outside the addressable
// range return false; growth happens through Union, which always returns
// a new vector.
type Vector struct {
	size  int
	words []uint64
}

// New creates a vector addressing indices 0..size-1.
// A negative size is treated as zero.
func New(size int) *Vector {
	if size < 0 {
		size = 0
	}
	return &Vector{
		size:  size,
		words: make([]uint64, (size+wordBits-1)/wordBits),
	}
}

// Size returns the number of addressable indices.
func (v *Vector) Size() int {
	if v == nil {
		return 0
	}
	return v.size
}

// Get reports whether bit i is set.
func (v *Vector) Get(i int) bool {
	if v == nil || i < 0 || i >= v.size {
		return false
	}
	return v.words[i/wordBits]&(1<<(uint(i)%wordBits)) != 0
}

// Set sets or clears bit i. Indices outside 0..Size()-1 are ignored.
func (v *Vector) Set(i int, on bool) {
	if v == nil || i < 0 || i >= v.size {
		return
	}
	mask := uint64(1) << (uint(i) % wordBits)
	if on {
		v.words[i/wordBits] |= mask
	} else {
		v.words[i/wordBits] &^= mask
	}
}

// Count returns the number of set bits.
func (v *Vector) Count() int {
	if v == nil {
		return 0
	}
	n := 0
	for _, w := range v.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Indices returns the set bit positions in ascending order.
func (v *Vector) Indices() []int {
	if v == nil {
		return nil
	}
	var out []int
	for wi, w := range v.words {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			out = append(out, wi*wordBits+b)
			w &^= 1 << uint(b)
		}
	}
	return out
}

// Union returns a new vector holding v together with other shifted by
// offset, so that bit j of other lands on absolute index j+offset.
//
// A negative offset expands the result to the left: index 0 of the result
// then corresponds to absolute index offset, and every bit of v moves up by
// -offset. The result is large enough for both operands. Bits already set
// in v are never cleared.
//
//	[0,0,1,1,0,0].Union([1,1,1,1,1,1], -6) == [1,1,1,1,1,1,0,0,1,1,0,0]
func (v *Vector) Union(other *Vector, offset int) *Vector {
	size := v.Size()
	if end := other.Size() + offset; end > size {
		size = end
	}
	shift := 0
	if offset < 0 {
		shift = -offset
		size += shift
	}

	out := New(size)
	for _, i := range v.Indices() {
		out.Set(i+shift, true)
	}
	for _, j := range other.Indices() {
		if k := j + offset + shift; !out.Get(k) {
			out.Set(k, true)
		}
	}
	return out
}

// Clone returns a copy of v.
func (v *Vector) Clone() *Vector {
	out := New(v.Size())
	if v != nil {
		copy(out.words, v.words)
	}
	return out
}

// String dumps the vector as a string of 0/1 digits, lowest index first.
func (v *Vector) String() string {
	var sb strings.Builder
	sb.Grow(v.Size())
	for i := 0; i < v.Size(); i++ {
		if v.Get(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
