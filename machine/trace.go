package machine

import (
	"bytes"
	"fmt"
)

// Trace records the letter at every stage of one key press.  It is for
// inspection only and never influences encryption.
type Trace struct {
	Input          byte
	Positions      Positions // rotor positions the signal passed through
	Plugboard      byte      // after the plugboard on the way in
	RightForward   byte
	MiddleForward  byte
	LeftForward    byte
	Reflector      byte
	LeftBackward   byte
	MiddleBackward byte
	RightBackward  byte
	Output         byte // after the plugboard on the way out
}

// Path returns the letters in signal order, input first.
func (t Trace) Path() []byte {
	return []byte{
		t.Input, t.Plugboard,
		t.RightForward, t.MiddleForward, t.LeftForward,
		t.Reflector,
		t.LeftBackward, t.MiddleBackward, t.RightBackward,
		t.Output,
	}
}

func (t Trace) String() string {
	var output bytes.Buffer
	output.WriteString(fmt.Sprintf("%c [%s] ", t.Input, t.Positions))
	for i, c := range t.Path()[1:] {
		if i > 0 {
			output.WriteString(" > ")
		}
		output.WriteByte(c)
	}
	return output.String()
}
