// reflector
package reflector

import (
	"fmt"

	"github.com/bgallie/enigma/cryptors"
)

// Reflector (Umkehrwalze) turns the signal around.  Its wiring pairs the
// letters, so it is its own inverse and never maps a letter to itself.
type Reflector struct {
	name   string
	wiring cryptors.Wiring
}

// New checks that wiring is a fixed point free involution.
func New(name string, wiring cryptors.Wiring) (*Reflector, error) {
	if !wiring.IsInvolution() {
		return nil, fmt.Errorf("%w: %s wiring %s is not an involution", cryptors.ErrInvalidReflector, name, wiring)
	}
	if wiring.HasFixedPoint() {
		return nil, fmt.Errorf("%w: %s wiring %s maps a letter to itself", cryptors.ErrInvalidReflector, name, wiring)
	}
	return &Reflector{name: name, wiring: wiring}, nil
}

// Parse validates s as a wiring table and then as a reflector.
func Parse(name, s string) (*Reflector, error) {
	w, err := cryptors.NewWiring(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cryptors.ErrInvalidReflector, err)
	}
	return New(name, w)
}

// Reflect returns the partner of c.  A byte outside 'A' .. 'Z' is returned
// unchanged.
func (r *Reflector) Reflect(c byte) byte {
	if !cryptors.IsLetter(c) {
		return c
	}
	return r.wiring[cryptors.ToIndex(c)]
}

func (r *Reflector) Forward(c byte) byte {
	return r.Reflect(c)
}

func (r *Reflector) Backward(c byte) byte {
	return r.Reflect(c)
}

func (r *Reflector) Name() string {
	return r.name
}

func (r *Reflector) Wiring() cryptors.Wiring {
	return r.wiring
}

func (r *Reflector) String() string {
	return fmt.Sprintf("Reflector %s: %s\n", r.name, r.wiring)
}
