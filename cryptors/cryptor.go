// cryptors
package cryptors

import (
	"errors"
	"fmt"

	"github.com/bgallie/enigma/cryptors/bitops"
)

const (
	AlphabetSize   = 26
	NumberOfRotors = 3
	// MaximumPlugs is the number of cables supplied with the machine.  It is
	// also the most disjoint pairs a 26 letter alphabet can hold.
	MaximumPlugs = AlphabetSize / 2
)

// Errors reported by the cryptors and the machine built from them.  Callers
// should test for them with errors.Is since they are usually wrapped with the
// offending value.
var (
	ErrInvalidWiring           = errors.New("invalid wiring")
	ErrInvalidReflector        = errors.New("invalid reflector")
	ErrInvalidPlugboardPairing = errors.New("invalid plugboard pairing")
	ErrInvalidCharacter        = errors.New("invalid character")
	ErrUnknownRotor            = errors.New("unknown rotor")
	ErrUnknownReflector        = errors.New("unknown reflector")
	ErrInvalidSetting          = errors.New("invalid setting")
)

// Crypter is implemented by every element in the signal path.  Forward is
// used on the way in to the reflector, Backward on the way out.
type Crypter interface {
	Forward(c byte) byte
	Backward(c byte) byte
}

// Mod26 returns x modulo 26 in the range [0, 25], even for negative x.
func Mod26(x int) int {
	x %= AlphabetSize
	if x < 0 {
		x += AlphabetSize
	}
	return x
}

// ToIndex converts an uppercase letter to its position in the alphabet.
func ToIndex(c byte) int {
	return int(c - 'A')
}

// ToLetter converts an alphabet position to its uppercase letter.
func ToLetter(idx int) byte {
	return byte('A' + Mod26(idx))
}

// IsLetter reports whether c is one of 'A' .. 'Z'.
func IsLetter(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

// CheckLetter returns a wrapped ErrInvalidCharacter if c is not 'A' .. 'Z'.
func CheckLetter(c byte) error {
	if !IsLetter(c) {
		return fmt.Errorf("%w: %q", ErrInvalidCharacter, c)
	}
	return nil
}

// Wiring is a fixed permutation of the alphabet.  Entry i is the letter that
// contact i is wired to.  It is an array so that copies never alias.
type Wiring [AlphabetSize]byte

// NewWiring validates s as a permutation of 'A' .. 'Z' and returns it as a
// Wiring.
func NewWiring(s string) (Wiring, error) {
	var w Wiring
	if len(s) != AlphabetSize {
		return w, fmt.Errorf("%w: %q has %d letters, want %d", ErrInvalidWiring, s, len(s), AlphabetSize)
	}

	var seen bitops.LetterSet
	for i := 0; i < AlphabetSize; i++ {
		c := s[i]
		if !IsLetter(c) {
			return w, fmt.Errorf("%w: %q contains %q", ErrInvalidWiring, s, c)
		}
		if seen.Has(ToIndex(c)) {
			return w, fmt.Errorf("%w: %q repeats %q", ErrInvalidWiring, s, c)
		}
		seen = seen.Add(ToIndex(c))
		w[i] = c
	}

	// 26 distinct letters out of 26 means nothing was omitted.
	return w, nil
}

// MustWiring is like NewWiring but panics on an invalid table.  It is meant
// for the statically defined tables of the catalog.
func MustWiring(s string) Wiring {
	w, err := NewWiring(s)
	if err != nil {
		panic(err)
	}
	return w
}

// At returns the letter wired to contact idx.
func (w Wiring) At(idx int) byte {
	return w[Mod26(idx)]
}

// Inverse returns the contact that is wired to the letter c.
func (w Wiring) Inverse(c byte) int {
	for i, v := range w {
		if v == c {
			return i
		}
	}
	// unreachable for a validated wiring
	return -1
}

// IsInvolution reports whether the wiring is its own inverse.
func (w Wiring) IsInvolution() bool {
	for i, v := range w {
		if ToIndex(w[ToIndex(v)]) != i {
			return false
		}
	}
	return true
}

// HasFixedPoint reports whether any contact is wired to itself.
func (w Wiring) HasFixedPoint() bool {
	for i, v := range w {
		if ToIndex(v) == i {
			return true
		}
	}
	return false
}

func (w Wiring) String() string {
	return string(w[:])
}
