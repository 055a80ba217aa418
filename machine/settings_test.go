package machine

import (
	"testing"

	"github.com/bgallie/enigma/cryptors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettingsValid(t *testing.T) {
	s := DefaultSettings()
	require.NoError(t, s.Validate())
	assert.Equal(t, "I", s.Left.Type)
	assert.Equal(t, "II", s.Middle.Type)
	assert.Equal(t, "III", s.Right.Type)
	assert.Equal(t, "B", s.Reflector)
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(s *Settings)
		want   error
	}{
		{"unknown rotor", func(s *Settings) { s.Left.Type = "VI" }, cryptors.ErrUnknownRotor},
		{"missing rotor", func(s *Settings) { s.Middle.Type = "" }, cryptors.ErrInvalidSetting},
		{"duplicate rotor", func(s *Settings) { s.Left.Type = "III" }, cryptors.ErrInvalidSetting},
		{"ring too high", func(s *Settings) { s.Right.Ring = 26 }, cryptors.ErrInvalidSetting},
		{"negative position", func(s *Settings) { s.Left.Position = -1 }, cryptors.ErrInvalidSetting},
		{"unknown reflector", func(s *Settings) { s.Reflector = "A" }, cryptors.ErrUnknownReflector},
		{"no reflector", func(s *Settings) { s.Reflector = "" }, cryptors.ErrInvalidSetting},
		{"plug self pair", func(s *Settings) { s.Plugboard = []string{"AA"} }, cryptors.ErrInvalidPlugboardPairing},
		{"plug reused", func(s *Settings) { s.Plugboard = []string{"AB", "BC"} }, cryptors.ErrInvalidPlugboardPairing},
		{"plug malformed", func(s *Settings) { s.Plugboard = []string{"A"} }, cryptors.ErrInvalidPlugboardPairing},
		{"plug lower case", func(s *Settings) { s.Plugboard = []string{"ab"} }, cryptors.ErrInvalidPlugboardPairing},
		{"custom wiring short", func(s *Settings) {
			s.Left = RotorSettings{Wiring: "ABC", Notch: "Q"}
		}, cryptors.ErrInvalidWiring},
		{"custom wiring duplicate", func(s *Settings) {
			s.Left = RotorSettings{Wiring: "AACDEFGHIJKLMNOPQRSTUVWXYZ", Notch: "Q"}
		}, cryptors.ErrInvalidWiring},
		{"custom wiring without notch", func(s *Settings) {
			s.Left = RotorSettings{Wiring: "EKMFLGDQVZNTOWYHXUSPAIBRCJ"}
		}, cryptors.ErrInvalidSetting},
		{"type and wiring", func(s *Settings) {
			s.Left = RotorSettings{Type: "I", Wiring: "EKMFLGDQVZNTOWYHXUSPAIBRCJ", Notch: "Q"}
		}, cryptors.ErrInvalidSetting},
		{"reflector not involution", func(s *Settings) {
			s.ReflectorWiring = "EKMFLGDQVZNTOWYHXUSPAIBRCJ"
		}, cryptors.ErrInvalidReflector},
		{"reflector with fixed point", func(s *Settings) {
			s.ReflectorWiring = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
		}, cryptors.ErrInvalidReflector},
		{"reflector too short", func(s *Settings) {
			s.ReflectorWiring = "YRUHQ"
		}, cryptors.ErrInvalidReflector},
		{"reflector too short is a wiring error", func(s *Settings) {
			s.ReflectorWiring = "YRUHQ"
		}, cryptors.ErrInvalidWiring},
		{"reflector not a permutation", func(s *Settings) {
			s.ReflectorWiring = "YRUHQSLDPXNGOKMIEBFZCWVJAA"
		}, cryptors.ErrInvalidWiring},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(&s)
			_, err := New(s)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseLetters(t *testing.T) {
	tests := []struct {
		in   string
		want [3]int
	}{
		{"AAA", [3]int{0, 0, 0}},
		{"adu", [3]int{0, 3, 20}},
		{"A D U", [3]int{0, 3, 20}},
		{"1 4 21", [3]int{0, 3, 20}},
		{"26,1,2", [3]int{25, 0, 1}},
		{"Z-A-B", [3]int{25, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLetters(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "AA", "AAAA", "A B", "0 1 2", "27 1 1", "A ? B"} {
		_, err := ParseLetters(bad)
		assert.ErrorIs(t, err, cryptors.ErrInvalidSetting, "input %q", bad)
	}
}

func TestSetRotorOrder(t *testing.T) {
	s := DefaultSettings()
	require.NoError(t, s.SetRotorOrder("iv, v, i"))
	assert.Equal(t, "IV", s.Left.Type)
	assert.Equal(t, "V", s.Middle.Type)
	assert.Equal(t, "I", s.Right.Type)

	assert.ErrorIs(t, s.SetRotorOrder("I II"), cryptors.ErrInvalidSetting)
}

func TestSetRingsAndPositions(t *testing.T) {
	s := DefaultSettings()
	require.NoError(t, s.SetRings("BCD"))
	require.NoError(t, s.SetPositions("XYZ"))
	assert.Equal(t, 1, s.Left.Ring)
	assert.Equal(t, 2, s.Middle.Ring)
	assert.Equal(t, 3, s.Right.Ring)
	assert.Equal(t, 23, s.Left.Position)
	assert.Equal(t, 24, s.Middle.Position)
	assert.Equal(t, 25, s.Right.Position)
	assert.Equal(t, "XYZ", FormatLetters(s.Left.Position, s.Middle.Position, s.Right.Position))

	assert.Error(t, s.SetRings("AB"))
	assert.Error(t, s.SetPositions("AB"))
}
