// Package machine assembles the cryptors into a three rotor Enigma and
// drives it one key press at a time.
package machine

import (
	"bytes"
	"fmt"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/plugboard"
	"github.com/bgallie/enigma/cryptors/reflector"
	"github.com/bgallie/enigma/cryptors/rotor"
)

// Machine is a configured Enigma.  The rotors advance with every letter, so
// a Machine must not be used by more than one goroutine at a time; use one
// Machine per message stream instead.
type Machine struct {
	right     *rotor.Rotor
	middle    *rotor.Rotor
	left      *rotor.Rotor
	reflector *reflector.Reflector
	plugboard *plugboard.Plugboard
	stepAfter bool
	start     Positions
	settings  Settings
}

// New validates s and builds a machine from it.  The machine owns its rotors;
// nothing is shared with the catalog or with other machines.
func New(s Settings) (*Machine, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	var m Machine
	var err error
	if m.right, err = s.Right.build(); err != nil {
		return nil, fmt.Errorf("right rotor: %w", err)
	}
	if m.middle, err = s.Middle.build(); err != nil {
		return nil, fmt.Errorf("middle rotor: %w", err)
	}
	if m.left, err = s.Left.build(); err != nil {
		return nil, fmt.Errorf("left rotor: %w", err)
	}
	if m.reflector, err = s.buildReflector(); err != nil {
		return nil, err
	}
	if m.plugboard, err = s.buildPlugboard(); err != nil {
		return nil, err
	}

	m.stepAfter = s.StepAfter
	m.start = m.Positions()
	m.settings = s
	m.settings.Plugboard = m.plugboard.Pairs()
	return &m, nil
}

// Positions returns the current rotor positions.
func (m *Machine) Positions() Positions {
	return Positions{
		Right:  m.right.Position(),
		Middle: m.middle.Position(),
		Left:   m.left.Position(),
	}
}

// SetPositions moves the rotors, e.g. to continue a key stream saved by the
// caller.  Nothing is changed if any position is out of range.
func (m *Machine) SetPositions(p Positions) error {
	for _, v := range []int{p.Right, p.Middle, p.Left} {
		if v < 0 || v >= cryptors.AlphabetSize {
			return fmt.Errorf("%w: position %d out of range 0..%d",
				cryptors.ErrInvalidSetting, v, cryptors.AlphabetSize-1)
		}
	}
	m.apply(p)
	return nil
}

func (m *Machine) apply(p Positions) {
	for _, e := range []error{
		m.right.SetPosition(p.Right),
		m.middle.SetPosition(p.Middle),
		m.left.SetPosition(p.Left),
	} {
		if e != nil {
			panic(e)
		}
	}
}

// Reset returns the rotors to the start positions of the settings.
func (m *Machine) Reset() {
	m.apply(m.start)
}

// Step advances the rotors by one key press without enciphering anything.
func (m *Machine) Step() {
	m.apply(Step(m.Positions(), m.right, m.middle))
}

// Settings returns the settings of the machine with the start positions
// replaced by the current positions.  A machine built from them continues
// the key stream where this one is.
func (m *Machine) Settings() Settings {
	s := m.settings
	s.Plugboard = append([]string(nil), m.settings.Plugboard...)
	p := m.Positions()
	s.Right.Position, s.Middle.Position, s.Left.Position = p.Right, p.Middle, p.Left
	return s
}

// EncryptChar enciphers one letter.  Since the machine is self-inverse this
// also deciphers.  A character outside 'A' .. 'Z' is rejected before the
// rotors move.
func (m *Machine) EncryptChar(c byte) (byte, error) {
	if err := cryptors.CheckLetter(c); err != nil {
		return 0, err
	}
	return m.press(c, nil), nil
}

// EncryptCharTrace is EncryptChar that also reports the letter at each stage
// of the signal path.
func (m *Machine) EncryptCharTrace(c byte) (byte, Trace, error) {
	var t Trace
	if err := cryptors.CheckLetter(c); err != nil {
		return 0, t, err
	}
	return m.press(c, &t), t, nil
}

// press runs one key press: plugboard, stepping, rotors right to left,
// reflector, rotors left to right and the plugboard again.
func (m *Machine) press(c byte, t *Trace) byte {
	in := c
	c = m.plugboard.Swap(c)
	if !m.stepAfter {
		m.Step()
	}
	pos := m.Positions()
	p := c

	c = m.right.Forward(c)
	rf := c
	c = m.middle.Forward(c)
	mf := c
	c = m.left.Forward(c)
	lf := c

	c = m.reflector.Reflect(c)
	rr := c

	c = m.left.Backward(c)
	lb := c
	c = m.middle.Backward(c)
	mb := c
	c = m.right.Backward(c)
	rb := c

	c = m.plugboard.Swap(c)
	if m.stepAfter {
		m.Step()
	}

	if t != nil {
		*t = Trace{
			Input:          in,
			Positions:      pos,
			Plugboard:      p,
			RightForward:   rf,
			MiddleForward:  mf,
			LeftForward:    lf,
			Reflector:      rr,
			LeftBackward:   lb,
			MiddleBackward: mb,
			RightBackward:  rb,
			Output:         c,
		}
	}
	return c
}

// EncryptBytes enciphers msg letter by letter, carrying the rotor state from
// one letter to the next.  The whole message is checked first, so an invalid
// character leaves the machine untouched.
func (m *Machine) EncryptBytes(msg []byte) ([]byte, error) {
	for i, c := range msg {
		if err := cryptors.CheckLetter(c); err != nil {
			return nil, fmt.Errorf("offset %d: %w", i, err)
		}
	}

	out := make([]byte, len(msg))
	for i, c := range msg {
		out[i] = m.press(c, nil)
	}
	return out, nil
}

// Encrypt is EncryptBytes for strings.
func (m *Machine) Encrypt(msg string) (string, error) {
	out, err := m.EncryptBytes([]byte(msg))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Decrypt is Encrypt: deciphering with the same settings restores the text.
func (m *Machine) Decrypt(msg string) (string, error) {
	return m.Encrypt(msg)
}

func (m *Machine) String() string {
	var output bytes.Buffer
	output.WriteString("-----STATUS-----\n")
	for _, r := range []*rotor.Rotor{m.left, m.middle, m.right} {
		output.WriteString(r.String())
	}
	output.WriteString(m.reflector.String())
	output.WriteString(fmt.Sprintf("Plugboard: %s\n", m.plugboard))
	output.WriteString(fmt.Sprintf("Positions: %s\n", m.Positions()))
	return output.String()
}
