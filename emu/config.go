package emu

import (
	"errors"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"

	"nescore/hw/input"
)

type Config struct {
	Emulation EmulationConfig `toml:"emulation"`
	Input     input.Config    `toml:"input"`
}

type EmulationConfig struct {
	SpriteLimit bool   `toml:"sprite_limit"`
	Trace       string `toml:"trace"` // file path, "stdout" or "stderr"
}

// DefaultConfig returns the configuration used when no configuration file
// exists.
func DefaultConfig() Config {
	return Config{
		Emulation: EmulationConfig{
			SpriteLimit: true,
		},
		Input: input.DefaultConfig(),
	}
}

// Options returns the NES options corresponding to the configuration.
func (cfg *Config) Options() []Option {
	return []Option{WithSpriteLimit(cfg.Emulation.SpriteLimit)}
}

// LoadConfigOrDefault loads the configuration file at path, or provides the
// default one if it doesn't exist. Keys missing from the file keep their
// default value.
func LoadConfigOrDefault(path string) (Config, error) {
	cfg := DefaultConfig()
	cfg.Input.Presets = nil

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	if len(cfg.Input.Presets) == 0 {
		cfg.Input.Presets = input.DefaultConfig().Presets
	}
	cfg.Input.Init()
	return cfg, nil
}

// SaveConfig writes cfg at path.
func SaveConfig(path string, cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, buf, 0644)
}
