// Package input defines the standard NES controller buttons and the mapping
// of host inputs to controller states.
package input

import (
	"fmt"
	"strings"
)

// A PaddleButton identifies a button of a standard NES controller/paddle.
// Its value is the bit position in the controller state.
type PaddleButton byte

const (
	PadA PaddleButton = iota
	PadB
	PadSelect
	PadStart
	PadUp
	PadDown
	PadLeft
	PadRight

	PadButtonCount
)

var buttonNames = [PadButtonCount]string{
	"A", "B",
	"Select", "Start",
	"Up", "Down", "Left", "Right",
}

func (pd PaddleButton) String() string {
	if pd >= PadButtonCount {
		return fmt.Sprintf("PaddleButton(%d)", uint8(pd))
	}
	return buttonNames[pd]
}

// Mask returns the controller state bit of the button.
func (pd PaddleButton) Mask() uint8 {
	return 1 << pd
}

func (pd PaddleButton) MarshalText() ([]byte, error) {
	if pd >= PadButtonCount {
		return nil, fmt.Errorf("invalid paddle button %d", uint8(pd))
	}
	return []byte(buttonNames[pd]), nil
}

func (pd *PaddleButton) UnmarshalText(text []byte) error {
	btn, err := ParseButton(string(text))
	if err != nil {
		return err
	}
	*pd = btn
	return nil
}

// ParseButton returns the button with the given name, case insensitively.
func ParseButton(s string) (PaddleButton, error) {
	for i, name := range buttonNames {
		if strings.EqualFold(s, name) {
			return PaddleButton(i), nil
		}
	}
	return 0, fmt.Errorf("unknown paddle button %q", s)
}

// Buttons is a set of pressed buttons.
type Buttons []PaddleButton

// Mask returns the controller state with all buttons of bs pressed.
func (bs Buttons) Mask() uint8 {
	var mask uint8
	for _, b := range bs {
		mask |= b.Mask()
	}
	return mask
}

// ButtonsFromMask returns the pressed buttons of a controller state.
func ButtonsFromMask(mask uint8) Buttons {
	var bs Buttons
	for b := PadA; b < PadButtonCount; b++ {
		if mask&b.Mask() != 0 {
			bs = append(bs, b)
		}
	}
	return bs
}

func (bs Buttons) String() string {
	names := make([]string, len(bs))
	for i, b := range bs {
		names[i] = b.String()
	}
	return strings.Join(names, "+")
}
