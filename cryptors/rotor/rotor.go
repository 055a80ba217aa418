// rotor
package rotor

import (
	"bytes"
	"fmt"

	"github.com/bgallie/enigma/cryptors"
)

// Rotor is one wired wheel of the machine.  Only position changes while a
// message is processed; the wiring, notch and ring setting are fixed when the
// rotor is created.
type Rotor struct {
	name     string
	wiring   cryptors.Wiring
	notch    int // index of the notch letter
	ring     int // Ringstellung, 0 .. 25
	position int // Grundstellung, advanced by the stepping mechanism
}

// New creates a rotor from a validated wiring.  The notch must be a letter and
// the ring setting and position must be in 0 .. 25.
func New(name string, wiring cryptors.Wiring, notch byte, ring, position int) (*Rotor, error) {
	if !cryptors.IsLetter(notch) {
		return nil, fmt.Errorf("%w: rotor %s notch %q", cryptors.ErrInvalidSetting, name, notch)
	}
	if err := checkRange(name, "ring setting", ring); err != nil {
		return nil, err
	}
	if err := checkRange(name, "position", position); err != nil {
		return nil, err
	}

	return &Rotor{
		name:     name,
		wiring:   wiring,
		notch:    cryptors.ToIndex(notch),
		ring:     ring,
		position: position,
	}, nil
}

func checkRange(name, what string, v int) error {
	if v < 0 || v >= cryptors.AlphabetSize {
		return fmt.Errorf("%w: rotor %s %s %d out of range 0..%d",
			cryptors.ErrInvalidSetting, name, what, v, cryptors.AlphabetSize-1)
	}
	return nil
}

// offset is the displacement of the wiring core relative to the contacts.
func (r *Rotor) offset() int {
	return r.position - r.ring
}

// Forward passes c through the rotor towards the reflector.  A byte outside
// 'A' .. 'Z' is returned unchanged.
func (r *Rotor) Forward(c byte) byte {
	if !cryptors.IsLetter(c) {
		return c
	}
	idx := cryptors.Mod26(cryptors.ToIndex(c) + r.offset())
	wired := r.wiring.At(idx)
	return cryptors.ToLetter(cryptors.ToIndex(wired) - r.offset())
}

// Backward passes c through the rotor on the way back from the reflector.
// The permutation is inverted by searching for the contact carrying the
// shifted letter, so the offset is applied to the value and removed from the
// contact.
func (r *Rotor) Backward(c byte) byte {
	if !cryptors.IsLetter(c) {
		return c
	}
	shifted := cryptors.ToLetter(cryptors.ToIndex(c) + r.offset())
	idx := r.wiring.Inverse(shifted)
	return cryptors.ToLetter(idx - r.offset())
}

// AtNotch reports whether the rotor would engage the pawl of its left-hand
// neighbour when sitting at position.  The ring setting moves the position
// at which the notch lines up, so it is removed before the comparison.
func (r *Rotor) AtNotch(position int) bool {
	return cryptors.Mod26(position-r.ring) == r.notch
}

func (r *Rotor) Name() string {
	return r.name
}

func (r *Rotor) Wiring() cryptors.Wiring {
	return r.wiring
}

func (r *Rotor) Notch() byte {
	return cryptors.ToLetter(r.notch)
}

func (r *Rotor) Ring() int {
	return r.ring
}

func (r *Rotor) Position() int {
	return r.position
}

// SetPosition moves the rotor to position p.
func (r *Rotor) SetPosition(p int) error {
	if err := checkRange(r.name, "position", p); err != nil {
		return err
	}
	r.position = p
	return nil
}

// Clone returns an independent copy of the rotor.
func (r *Rotor) Clone() *Rotor {
	c := *r
	return &c
}

func (r *Rotor) String() string {
	var output bytes.Buffer
	output.WriteString(fmt.Sprintf("Rotor %s:\n", r.name))
	output.WriteString(fmt.Sprintf("\tWiring:   %s\n", r.wiring))
	output.WriteString(fmt.Sprintf("\tNotch:    %c\n", r.Notch()))
	output.WriteString(fmt.Sprintf("\tRing:     %02d (%c)\n", r.ring+1, cryptors.ToLetter(r.ring)))
	output.WriteString(fmt.Sprintf("\tPosition: %02d (%c)\n", r.position+1, cryptors.ToLetter(r.position)))
	return output.String()
}
