// bitops project bitops.go
package bitops

import "math/bits"

// LetterSet is a set of alphabet positions (0 .. 25) kept in the low bits of
// a uint32.
type LetterSet uint32

func (s LetterSet) Add(idx int) LetterSet {
	return s | (1 << uint(idx&31))
}

func (s LetterSet) Has(idx int) bool {
	return s&(1<<uint(idx&31)) != 0
}

// Len returns the number of positions in the set.
func (s LetterSet) Len() int {
	return bits.OnesCount32(uint32(s))
}
