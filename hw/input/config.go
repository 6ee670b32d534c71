package input

import "nescore/emu/log"

// PaddlePreset holds the mapping configuration of a paddle.
type PaddlePreset struct {
	Name    string               `toml:"name"`
	Buttons [PadButtonCount]Code `toml:"buttons"`
}

type PaddleConfig struct {
	Plugged      bool          `toml:"plugged"`
	PaddlePreset uint          `toml:"preset"`
	Preset       *PaddlePreset `toml:"-"` // points to the current preset
}

type Config struct {
	Paddles [2]PaddleConfig `toml:"paddles"`
	Presets []PaddlePreset  `toml:"presets"`
}

// Init resolves the preset of each paddle. Paddles referring to a missing
// preset are unplugged.
func (cfg *Config) Init() {
	for i := range cfg.Paddles {
		pad := &cfg.Paddles[i]
		pad.Preset = nil
		if pad.PaddlePreset >= uint(len(cfg.Presets)) {
			if pad.Plugged {
				log.ModInput.WarnZ("paddle preset not found, unplugging").
					Int("paddle", i).
					Int("preset", int(pad.PaddlePreset)).
					End()
			}
			pad.Plugged = false
			continue
		}
		pad.Preset = &cfg.Presets[pad.PaddlePreset]
	}
}

// DefaultConfig has the keyboard plugged into the first paddle.
func DefaultConfig() Config {
	cfg := Config{
		Paddles: [2]PaddleConfig{
			{Plugged: true, PaddlePreset: 0},
			{Plugged: false, PaddlePreset: 1},
		},
		Presets: []PaddlePreset{
			{
				Name: "keyboard",
				Buttons: [PadButtonCount]Code{
					{Key: "X", Type: Keyboard},
					{Key: "Z", Type: Keyboard},
					{Key: "RShift", Type: Keyboard},
					{Key: "Return", Type: Keyboard},
					{Key: "Up", Type: Keyboard},
					{Key: "Down", Type: Keyboard},
					{Key: "Left", Type: Keyboard},
					{Key: "Right", Type: Keyboard},
				},
			},
			{
				Name: "gamepad",
				Buttons: [PadButtonCount]Code{
					{CtrlButton: "a", Type: ControllerButton},
					{CtrlButton: "b", Type: ControllerButton},
					{CtrlButton: "back", Type: ControllerButton},
					{CtrlButton: "start", Type: ControllerButton},
					{CtrlButton: "dpup", Type: ControllerButton},
					{CtrlButton: "dpdown", Type: ControllerButton},
					{CtrlButton: "dpleft", Type: ControllerButton},
					{CtrlButton: "dpright", Type: ControllerButton},
				},
			},
		},
	}
	cfg.Init()
	return cfg
}

// threshold for joystick axis to be considered as 'pressed'.
// goes from -32768 to 32767
const JoyAxisThreshold = 32000

// A Source reports the current state of host input devices. It's implemented
// by the presentation layer.
type Source interface {
	Key(name string) bool
	Button(guid, name string) bool
	Axis(guid, name string) int16
}

// Held is a Source reporting a fixed set of inputs as held down. Codes without
// controller GUID match any controller.
type Held []Code

// ParseHeld parses input codes in their text form ("key X", "joybtn a").
func ParseHeld(codes []string) (Held, error) {
	h := make(Held, 0, len(codes))
	for _, s := range codes {
		var c Code
		if err := c.UnmarshalText([]byte(s)); err != nil {
			return nil, err
		}
		if c.Type != UnsetController {
			h = append(h, c)
		}
	}
	return h, nil
}

func (h Held) Key(name string) bool {
	for _, c := range h {
		if c.Type == Keyboard && c.Key == name {
			return true
		}
	}
	return false
}

func (h Held) Button(guid, name string) bool {
	for _, c := range h {
		if c.Type == ControllerButton && c.CtrlButton == name && matchGUID(c, guid) {
			return true
		}
	}
	return false
}

func (h Held) Axis(guid, name string) int16 {
	for _, c := range h {
		if c.Type == ControllerAxis && c.CtrlAxis == name && matchGUID(c, guid) {
			if c.CtrlAxisDir < 0 {
				return -32768
			}
			return 32767
		}
	}
	return 0
}

func matchGUID(c Code, guid string) bool {
	return c.CtrlGUID == "" || guid == "" || c.CtrlGUID == guid
}

// Provider translates host input states into controller states.
type Provider struct {
	src Source
	cfg Config
}

func NewProvider(cfg Config, src Source) *Provider {
	cfg.Init()
	return &Provider{src: src, cfg: cfg}
}

func (p *Provider) paddleState(idx int) uint8 {
	padcfg := p.cfg.Paddles[idx]
	if !padcfg.Plugged || padcfg.Preset == nil {
		return 0
	}

	state := uint8(0)
	for i, code := range padcfg.Preset.Buttons {
		pressed := false
		switch code.Type {
		case Keyboard:
			pressed = p.src.Key(code.Key)
		case ControllerButton:
			pressed = p.src.Button(code.CtrlGUID, code.CtrlButton)
		case ControllerAxis:
			v := int(p.src.Axis(code.CtrlGUID, code.CtrlAxis)) * int(code.CtrlAxisDir)
			pressed = v >= JoyAxisThreshold
		}
		if pressed {
			state |= PaddleButton(i).Mask()
		}
	}
	return state
}

// LoadState returns the states of both paddles.
func (p *Provider) LoadState() (uint8, uint8) {
	return p.paddleState(0), p.paddleState(1)
}
