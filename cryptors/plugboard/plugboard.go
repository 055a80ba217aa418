// plugboard
package plugboard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/bitops"
)

// Plugboard (Steckerbrett) swaps the letters of each plugged pair on the way
// in to and out of the rotors.  Unplugged letters pass through unchanged.
type Plugboard struct {
	plugged bitops.LetterSet
	perm    [cryptors.AlphabetSize]byte // perm[i] is the partner of letter i
}

// New creates a plugboard from two-letter pairs such as "QC".  No letter may
// be used twice and at most 13 pairs can be plugged.
func New(pairs ...string) (*Plugboard, error) {
	if len(pairs) > cryptors.MaximumPlugs {
		return nil, fmt.Errorf("%w: %d pairs, at most %d allowed",
			cryptors.ErrInvalidPlugboardPairing, len(pairs), cryptors.MaximumPlugs)
	}

	var p Plugboard
	for i := range p.perm {
		p.perm[i] = cryptors.ToLetter(i)
	}

	for _, pair := range pairs {
		if len(pair) != 2 || !cryptors.IsLetter(pair[0]) || !cryptors.IsLetter(pair[1]) {
			return nil, fmt.Errorf("%w: %q is not a pair of letters", cryptors.ErrInvalidPlugboardPairing, pair)
		}
		a, b := cryptors.ToIndex(pair[0]), cryptors.ToIndex(pair[1])
		if a == b {
			return nil, fmt.Errorf("%w: %q pairs a letter with itself", cryptors.ErrInvalidPlugboardPairing, pair)
		}
		for _, idx := range []int{a, b} {
			if p.plugged.Has(idx) {
				return nil, fmt.Errorf("%w: %c is used in more than one pair",
					cryptors.ErrInvalidPlugboardPairing, cryptors.ToLetter(idx))
			}
			p.plugged = p.plugged.Add(idx)
		}
		p.perm[a], p.perm[b] = pair[1], pair[0]
	}

	return &p, nil
}

// Parse reads pairs separated by spaces or commas, e.g. "QC AB,XZ".  Letters
// are upper-cased first.
func Parse(s string) (*Plugboard, error) {
	return New(Fields(s)...)
}

// Fields splits a plugboard description into upper-cased pairs.
func Fields(s string) []string {
	return strings.FieldsFunc(strings.ToUpper(s), func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
}

// Swap returns the partner of c, or c if it is not plugged or not a letter.
func (p *Plugboard) Swap(c byte) byte {
	if !cryptors.IsLetter(c) {
		return c
	}
	return p.perm[cryptors.ToIndex(c)]
}

func (p *Plugboard) Forward(c byte) byte {
	return p.Swap(c)
}

func (p *Plugboard) Backward(c byte) byte {
	return p.Swap(c)
}

// Len returns the number of plugged pairs.
func (p *Plugboard) Len() int {
	return p.plugged.Len() / 2
}

// Pairs returns the plugged pairs in canonical form: each pair in alphabetical
// order and the list sorted.
func (p *Plugboard) Pairs() []string {
	pairs := make([]string, 0, p.Len())
	for i, v := range p.perm {
		if j := cryptors.ToIndex(v); j > i {
			pairs = append(pairs, string([]byte{cryptors.ToLetter(i), v}))
		}
	}
	sort.Strings(pairs)
	return pairs
}

func (p *Plugboard) String() string {
	return strings.Join(p.Pairs(), " ")
}
