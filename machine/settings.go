package machine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/catalog"
	"github.com/bgallie/enigma/cryptors/plugboard"
	"github.com/bgallie/enigma/cryptors/reflector"
	"github.com/bgallie/enigma/cryptors/rotor"
	"github.com/go-playground/validator/v10"
)

// validate is shared by all Settings checks; it caches struct metadata.
var validate = validator.New()

// RotorSettings selects a rotor and its key settings.  Type names a catalog
// rotor.  A rotor outside the catalog is given with Wiring and Notch instead
// of Type.
type RotorSettings struct {
	Type     string `yaml:"type,omitempty" mapstructure:"type" validate:"required_without=Wiring,excluded_with=Wiring,omitempty,oneof=I II III IV V"`
	Wiring   string `yaml:"wiring,omitempty" mapstructure:"wiring" validate:"omitempty,len=26,alpha,uppercase"`
	Notch    string `yaml:"notch,omitempty" mapstructure:"notch" validate:"required_with=Wiring,omitempty,len=1,alpha,uppercase"`
	Ring     int    `yaml:"ring" mapstructure:"ring" validate:"min=0,max=25"`
	Position int    `yaml:"position" mapstructure:"position" validate:"min=0,max=25"`
}

// Settings is everything needed to build a Machine: the rotor order, the
// ring settings (Ringstellung), the start positions (Grundstellung), the
// reflector and the plugboard pairs (Steckerverbindungen).
type Settings struct {
	Left            RotorSettings `yaml:"left" mapstructure:"left"`
	Middle          RotorSettings `yaml:"middle" mapstructure:"middle"`
	Right           RotorSettings `yaml:"right" mapstructure:"right"`
	Reflector       string        `yaml:"reflector,omitempty" mapstructure:"reflector" validate:"required_without=ReflectorWiring,omitempty,oneof=B C"`
	ReflectorWiring string        `yaml:"reflectorWiring,omitempty" mapstructure:"reflectorwiring" validate:"omitempty,len=26,alpha,uppercase"`
	Plugboard       []string      `yaml:"plugboard,omitempty" mapstructure:"plugboard" validate:"max=13,dive,len=2,alpha,uppercase"`
	// StepAfter moves the rotors after a letter is enciphered instead of
	// before it.
	StepAfter bool `yaml:"stepAfter,omitempty" mapstructure:"stepafter"`
}

// DefaultSettings returns rotors I-II-III (left to right), reflector B, all
// rings and positions at A and an empty plugboard.
func DefaultSettings() Settings {
	return Settings{
		Left:      RotorSettings{Type: string(catalog.RotorI)},
		Middle:    RotorSettings{Type: string(catalog.RotorII)},
		Right:     RotorSettings{Type: string(catalog.RotorIII)},
		Reflector: string(catalog.ReflectorB),
	}
}

// Validate checks the settings without building a machine.
func (s *Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return validationError(err)
	}

	seen := make(map[string]string)
	for _, slot := range s.slots() {
		if slot.rs.Type == "" {
			continue
		}
		if other, ok := seen[slot.rs.Type]; ok {
			return fmt.Errorf("%w: rotor %s used in both %s and %s slots",
				cryptors.ErrInvalidSetting, slot.rs.Type, other, slot.name)
		}
		seen[slot.rs.Type] = slot.name
	}
	return nil
}

// validationError maps the first struct tag failure onto the error taxonomy
// of the cryptors package.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	e := verrs[0]
	ns := e.StructNamespace()
	detail := fmt.Sprintf("%s: failed %q", ns, e.Tag())
	if e.Param() != "" {
		detail = fmt.Sprintf("%s %s", detail, e.Param())
	}

	switch {
	case strings.Contains(ns, "Plugboard"):
		return fmt.Errorf("%w: %s", cryptors.ErrInvalidPlugboardPairing, detail)
	case strings.HasSuffix(ns, "ReflectorWiring"):
		return fmt.Errorf("%w: %w: %s", cryptors.ErrInvalidReflector, cryptors.ErrInvalidWiring, detail)
	case strings.HasSuffix(ns, ".Reflector") && e.Tag() == "oneof":
		return fmt.Errorf("%w: %s", cryptors.ErrUnknownReflector, detail)
	case strings.HasSuffix(ns, ".Wiring"):
		return fmt.Errorf("%w: %s", cryptors.ErrInvalidWiring, detail)
	case strings.HasSuffix(ns, ".Type") && e.Tag() == "oneof":
		return fmt.Errorf("%w: %s", cryptors.ErrUnknownRotor, detail)
	default:
		return fmt.Errorf("%w: %s", cryptors.ErrInvalidSetting, detail)
	}
}

type slot struct {
	name string
	rs   RotorSettings
}

func (s *Settings) slots() []slot {
	return []slot{{"right", s.Right}, {"middle", s.Middle}, {"left", s.Left}}
}

// build returns an owned rotor for these settings.
func (rs RotorSettings) build() (*rotor.Rotor, error) {
	if rs.Wiring == "" {
		return catalog.NewRotor(catalog.RotorType(rs.Type), rs.Ring, rs.Position)
	}

	w, err := cryptors.NewWiring(rs.Wiring)
	if err != nil {
		return nil, err
	}
	return rotor.New("custom", w, rs.Notch[0], rs.Ring, rs.Position)
}

func (s *Settings) buildReflector() (*reflector.Reflector, error) {
	if s.ReflectorWiring != "" {
		name := s.Reflector
		if name == "" {
			name = "custom"
		}
		return reflector.Parse(name, s.ReflectorWiring)
	}
	return catalog.NewReflector(catalog.ReflectorType(s.Reflector))
}

func (s *Settings) buildPlugboard() (*plugboard.Plugboard, error) {
	return plugboard.New(s.Plugboard...)
}

// SetRotorOrder assigns rotor types to the slots from the historical
// left-to-right notation, e.g. "I II III" or "I,II,III".
func (s *Settings) SetRotorOrder(order string) error {
	f := fields(order)
	if len(f) != cryptors.NumberOfRotors {
		return fmt.Errorf("%w: rotor order %q needs %d rotors", cryptors.ErrInvalidSetting, order, cryptors.NumberOfRotors)
	}
	s.Left.Type, s.Middle.Type, s.Right.Type = strings.ToUpper(f[0]), strings.ToUpper(f[1]), strings.ToUpper(f[2])
	return nil
}

// SetRings sets the ring settings from left-to-right notation.
func (s *Settings) SetRings(rings string) error {
	v, err := ParseLetters(rings)
	if err != nil {
		return err
	}
	s.Left.Ring, s.Middle.Ring, s.Right.Ring = v[0], v[1], v[2]
	return nil
}

// SetPositions sets the start positions from left-to-right notation.
func (s *Settings) SetPositions(positions string) error {
	v, err := ParseLetters(positions)
	if err != nil {
		return err
	}
	s.Left.Position, s.Middle.Position, s.Right.Position = v[0], v[1], v[2]
	return nil
}

// ParseLetters reads three settings written either as letters ("AQV") or as
// the numbers 1 .. 26 stamped on later rings ("1 17 22").  The result is in
// left, middle, right order with A = 0.
func ParseLetters(s string) ([cryptors.NumberOfRotors]int, error) {
	var v [cryptors.NumberOfRotors]int
	f := fields(s)
	if len(f) == 1 && len(f[0]) == cryptors.NumberOfRotors {
		f = []string{f[0][0:1], f[0][1:2], f[0][2:3]}
	}
	if len(f) != cryptors.NumberOfRotors {
		return v, fmt.Errorf("%w: %q needs %d settings", cryptors.ErrInvalidSetting, s, cryptors.NumberOfRotors)
	}

	for i, x := range f {
		x = strings.ToUpper(x)
		if len(x) == 1 && cryptors.IsLetter(x[0]) {
			v[i] = cryptors.ToIndex(x[0])
			continue
		}
		n, err := strconv.Atoi(x)
		if err != nil || n < 1 || n > cryptors.AlphabetSize {
			return v, fmt.Errorf("%w: %q is not a letter or a number from 1 to %d",
				cryptors.ErrInvalidSetting, x, cryptors.AlphabetSize)
		}
		v[i] = n - 1
	}
	return v, nil
}

// FormatLetters writes settings in left-to-right letter notation.
func FormatLetters(left, middle, right int) string {
	return string([]byte{cryptors.ToLetter(left), cryptors.ToLetter(middle), cryptors.ToLetter(right)})
}

func fields(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '-' || r == '\t'
	})
}
