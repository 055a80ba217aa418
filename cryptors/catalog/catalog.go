// catalog
package catalog

import (
	"fmt"
	"sort"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/reflector"
	"github.com/bgallie/enigma/cryptors/rotor"
)

// RotorType names a rotor of the Enigma I / M3 set.
type RotorType string

// ReflectorType names a reflector (Umkehrwalze).
type ReflectorType string

const (
	RotorI   RotorType = "I"
	RotorII  RotorType = "II"
	RotorIII RotorType = "III"
	RotorIV  RotorType = "IV"
	RotorV   RotorType = "V"

	ReflectorB ReflectorType = "B"
	ReflectorC ReflectorType = "C"
)

type rotorSpec struct {
	wiring cryptors.Wiring
	notch  byte
}

var (
	// rotorSpecs holds the wiring and turnover notch of each historical
	// rotor.  https://www.codesandciphers.org.uk/enigma/rotorspec.htm
	rotorSpecs = map[RotorType]rotorSpec{
		RotorI:   {cryptors.MustWiring("EKMFLGDQVZNTOWYHXUSPAIBRCJ"), 'Q'},
		RotorII:  {cryptors.MustWiring("AJDKSIRUXBLHWTMCQGZNPYFVOE"), 'E'},
		RotorIII: {cryptors.MustWiring("BDFHJLCPRTXVZNYEIWGAKMUSQO"), 'V'},
		RotorIV:  {cryptors.MustWiring("ESOVPZJAYQUIRHXLNFTGKDCMWB"), 'J'},
		RotorV:   {cryptors.MustWiring("VZBRGITYUPSDNHLXAWMJQOFECK"), 'Z'},
	}

	reflectorSpecs = map[ReflectorType]cryptors.Wiring{
		ReflectorB: cryptors.MustWiring("YRUHQSLDPXNGOKMIEBFZCWVJAT"),
		ReflectorC: cryptors.MustWiring("FVPJIAOYEDRZXWGCTKUQSBNMHL"),
	}
)

func init() {
	for id, w := range reflectorSpecs {
		if _, err := reflector.New(string(id), w); err != nil {
			panic(err)
		}
	}
}

// Rotors returns the catalog rotor names in order.
func Rotors() []RotorType {
	ids := make([]RotorType, 0, len(rotorSpecs))
	for id := range rotorSpecs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return rotorOrder(ids[i]) < rotorOrder(ids[j])
	})
	return ids
}

func rotorOrder(id RotorType) int {
	switch id {
	case RotorI:
		return 1
	case RotorII:
		return 2
	case RotorIII:
		return 3
	case RotorIV:
		return 4
	case RotorV:
		return 5
	}
	return 0
}

// Reflectors returns the catalog reflector names in order.
func Reflectors() []ReflectorType {
	ids := make([]ReflectorType, 0, len(reflectorSpecs))
	for id := range reflectorSpecs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// HasRotor reports whether id names a catalog rotor.
func HasRotor(id RotorType) bool {
	_, ok := rotorSpecs[id]
	return ok
}

// HasReflector reports whether id names a catalog reflector.
func HasReflector(id ReflectorType) bool {
	_, ok := reflectorSpecs[id]
	return ok
}

// NewRotor returns a new rotor of type id.  The caller owns the rotor; the
// catalog itself is never modified.
func NewRotor(id RotorType, ring, position int) (*rotor.Rotor, error) {
	spec, ok := rotorSpecs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", cryptors.ErrUnknownRotor, id)
	}
	return rotor.New(string(id), spec.wiring, spec.notch, ring, position)
}

// NewReflector returns the reflector named id.
func NewReflector(id ReflectorType) (*reflector.Reflector, error) {
	w, ok := reflectorSpecs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", cryptors.ErrUnknownReflector, id)
	}
	return reflector.New(string(id), w)
}
