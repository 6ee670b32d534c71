package input

import (
	"fmt"
	"strings"
)

type ControllerType uint8

const (
	UnsetController ControllerType = iota
	Keyboard
	ControllerButton
	ControllerAxis
)

func (t ControllerType) String() string {
	switch t {
	case Keyboard:
		return "key"
	case ControllerButton:
		return "joy button"
	case ControllerAxis:
		return "joy axis"
	}
	return "not set"
}

// A Code describes the user input event (keyboard key, game controller
// button/axis). Keys, buttons and axes are identified by the name the host
// input library gives them. A code without controller GUID matches any
// controller.
type Code struct {
	Key string

	CtrlGUID    string
	CtrlButton  string
	CtrlAxis    string
	CtrlAxisDir int16

	Type ControllerType
}

// Name returns an user-friendly name for the input code.
func (mc Code) Name() string {
	switch mc.Type {
	case Keyboard:
		return mc.Key
	case ControllerButton:
		return mc.CtrlButton
	case ControllerAxis:
		if mc.CtrlAxisDir >= 0 {
			return mc.CtrlAxis + "+"
		}
		return mc.CtrlAxis + "-"
	}

	return ""
}

func (mc Code) MarshalText() ([]byte, error) {
	s := ""
	name := mc.Name()
	switch mc.Type {
	case Keyboard:
		s = fmt.Sprintf("key %s", name)
	case ControllerButton:
		s = fmt.Sprintf("joybtn %s", name)
	case ControllerAxis:
		s = fmt.Sprintf("joyaxis %s", name)
	}
	if mc.CtrlGUID != "" && mc.Type != Keyboard {
		s += " " + mc.CtrlGUID
	}

	return []byte(s), nil
}

func (mc *Code) UnmarshalText(text []byte) error {
	s := string(text)
	*mc = Code{}

	fields := strings.Fields(s)
	switch {
	case s == "":
		mc.Type = UnsetController

	case strings.HasPrefix(s, "joybtn"):
		if len(fields) < 2 || len(fields) > 3 {
			return fmt.Errorf("malformed joybtn code: %s", s)
		}
		mc.CtrlButton = fields[1]
		if len(fields) == 3 {
			mc.CtrlGUID = fields[2]
		}
		mc.Type = ControllerButton

	case strings.HasPrefix(s, "joyaxis"):
		if len(fields) < 2 || len(fields) > 3 {
			return fmt.Errorf("malformed joyaxis code: %s", s)
		}
		axis := fields[1]
		switch {
		case len(axis) > 1 && strings.HasSuffix(axis, "+"):
			mc.CtrlAxisDir = 1
		case len(axis) > 1 && strings.HasSuffix(axis, "-"):
			mc.CtrlAxisDir = -1
		default:
			return fmt.Errorf("malformed axis direction: %s", axis)
		}
		mc.CtrlAxis = axis[:len(axis)-1]
		if len(fields) == 3 {
			mc.CtrlGUID = fields[2]
		}
		mc.Type = ControllerAxis

	case strings.HasPrefix(s, "key"):
		if len(fields) != 2 {
			return fmt.Errorf("malformed key code: %s", s)
		}
		mc.Key = fields[1]
		mc.Type = Keyboard

	default:
		return fmt.Errorf("unrecognized input code: %s", s)
	}

	return nil
}
