package machine

import "github.com/bgallie/enigma/cryptors"

// Positions is the state of the stepping mechanism: the rotational position
// of the rotor in each slot, 0 .. 25.
type Positions struct {
	Right  int `yaml:"right"`
	Middle int `yaml:"middle"`
	Left   int `yaml:"left"`
}

// String returns the positions as they appear in the machine's windows,
// left to right.
func (p Positions) String() string {
	return FormatLetters(p.Left, p.Middle, p.Right)
}

// NotchGate reports whether a rotor engages the pawl to its left when at a
// given position.
type NotchGate interface {
	AtNotch(position int) bool
}

// Step computes the positions after one key press.  The right rotor always
// moves.  The middle rotor moves when the right rotor is at its notch, and
// the middle rotor at its own notch carries both itself and the left rotor
// (the double step).  Both notch tests use the positions from before the key
// press.
func Step(p Positions, right, middle NotchGate) Positions {
	middleAtNotch := middle.AtNotch(p.Middle)
	rightAtNotch := right.AtNotch(p.Right)

	next := p
	if middleAtNotch {
		next.Left = cryptors.Mod26(p.Left + 1)
	}
	if middleAtNotch || rightAtNotch {
		next.Middle = cryptors.Mod26(p.Middle + 1)
	}
	next.Right = cryptors.Mod26(p.Right + 1)
	return next
}
