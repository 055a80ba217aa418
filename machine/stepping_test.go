package machine

import (
	"testing"

	"github.com/bgallie/enigma/cryptors/catalog"
	"github.com/bgallie/enigma/cryptors/rotor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogRotor(t *testing.T, id catalog.RotorType, ring int) *rotor.Rotor {
	t.Helper()
	r, err := catalog.NewRotor(id, ring, 0)
	require.NoError(t, err)
	return r
}

func TestStepRightAlwaysMoves(t *testing.T) {
	right, middle := catalogRotor(t, catalog.RotorIII, 0), catalogRotor(t, catalog.RotorII, 0)
	assert.Equal(t, Positions{Right: 1}, Step(Positions{}, right, middle))
	assert.Equal(t, Positions{Right: 0, Middle: 3}, Step(Positions{Right: 25, Middle: 3}, right, middle))
}

// A middle rotor sitting on its notch moves itself and the left rotor on the
// next key press, wherever the right rotor is.
func TestStepMiddleAtNotchCarries(t *testing.T) {
	right, middle := catalogRotor(t, catalog.RotorIII, 0), catalogRotor(t, catalog.RotorII, 0)
	assert.Equal(t, Positions{Right: 0, Middle: 5, Left: 1}, Step(Positions{Right: 25, Middle: 4}, right, middle))
}

// Rotors I-II-III: the right rotor (III) turns the middle one over at V and
// the middle rotor (II) double steps at E.
func TestDoubleStep(t *testing.T) {
	right, middle := catalogRotor(t, catalog.RotorIII, 0), catalogRotor(t, catalog.RotorII, 0)

	want := []string{"ADU", "ADV", "AEW", "BFX", "BFY"}
	p := Positions{Left: 0, Middle: 3, Right: 20}
	for i, w := range want {
		assert.Equal(t, w, p.String(), "after %d steps", i)
		p = Step(p, right, middle)
	}
}

func TestStepNoCarryBeyondLeft(t *testing.T) {
	right, middle := catalogRotor(t, catalog.RotorIII, 0), catalogRotor(t, catalog.RotorII, 0)
	// left at Z, middle at its notch: the left rotor wraps to A and nothing
	// else moves beyond it.
	p := Step(Positions{Left: 25, Middle: 4, Right: 0}, right, middle)
	assert.Equal(t, Positions{Left: 0, Middle: 5, Right: 1}, p)
}

func TestStepRingShiftsNotch(t *testing.T) {
	// With ring B on the right rotor the turnover happens one position later.
	right, middle := catalogRotor(t, catalog.RotorIII, 1), catalogRotor(t, catalog.RotorII, 0)
	p := Step(Positions{Right: 21}, right, middle) // V
	assert.Equal(t, Positions{Right: 22}, p)
	p = Step(p, right, middle) // W
	assert.Equal(t, Positions{Right: 23, Middle: 1}, p)
}

// Over one revolution of the right rotor the middle rotor moves exactly
// once, when the right rotor passes its notch.
func TestMiddleAdvancesOncePerRevolution(t *testing.T) {
	right, middle := catalogRotor(t, catalog.RotorIII, 0), catalogRotor(t, catalog.RotorII, 0)
	p := Positions{}
	advances := 0
	for i := 0; i < 26; i++ {
		next := Step(p, right, middle)
		if next.Middle != p.Middle {
			advances++
			assert.Equal(t, 21, p.Right, "middle rotor moved away from the V notch")
		}
		p = next
	}
	assert.Equal(t, 1, advances)
	assert.Equal(t, Positions{Middle: 1}, p)
}

// The double step skips one middle position per left revolution, so the
// mechanism returns to AAA after 26*25*26 key presses, not 26^3.
func TestStepPeriod(t *testing.T) {
	right, middle := catalogRotor(t, catalog.RotorIII, 0), catalogRotor(t, catalog.RotorII, 0)
	const period = 26 * 25 * 26

	p := Positions{}
	seen := make(map[Positions]bool)
	middleAdvances, doubleSteps := 0, 0
	for i := 0; i < period; i++ {
		seen[p] = true
		next := Step(p, right, middle)
		if next.Middle != p.Middle {
			middleAdvances++
			if p.Right != 21 {
				doubleSteps++
				assert.Equal(t, 4, p.Middle, "double step away from the E notch")
			}
		}
		p = next
		if i < period-1 {
			require.NotEqual(t, Positions{}, p, "returned to AAA after %d steps", i+1)
		}
	}
	assert.Equal(t, Positions{}, p)
	assert.Len(t, seen, period)
	assert.Equal(t, 26, doubleSteps)
	assert.Equal(t, 26*26, middleAdvances)
}
