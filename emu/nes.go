// Package emu assembles the hardware components into a NES and drives it.
package emu

import (
	"errors"
	"fmt"
	"io"

	"nescore/emu/log"
	"nescore/hw"
	"nescore/hw/mappers"
	"nescore/hw/snapshot"
	"nescore/ines"
)

// NES is a whole console with a cartridge inserted. NES values are
// independent of each other.
type NES struct {
	CPU    *hw.CPU
	PPU    *hw.PPU
	Bus    *hw.Bus
	Mapper *mappers.Mapper
	Rom    *ines.Rom
}

type options struct {
	spriteLimit bool
	trace       io.Writer
}

// An Option configures a NES at load time.
type Option func(*options)

// WithSpriteLimit enables or disables the 8 sprites per scanline limit.
func WithSpriteLimit(on bool) Option {
	return func(o *options) { o.spriteLimit = on }
}

// WithTrace writes the CPU execution trace to w.
func WithTrace(w io.Writer) Option {
	return func(o *options) { o.trace = w }
}

// LoadCartridge decodes an iNES image and powers up a NES with it. Errors
// are *ines.LoadError.
func LoadCartridge(data []byte, opts ...Option) (*NES, error) {
	rom, err := ines.Decode(data)
	if err != nil {
		return nil, err
	}
	return powerUp(rom, opts...)
}

// Open is LoadCartridge for an image file.
func Open(path string, opts ...Option) (*NES, error) {
	rom, err := ines.Open(path)
	if err != nil {
		return nil, err
	}
	nes, err := powerUp(rom, opts...)
	var lerr *ines.LoadError
	if errors.As(err, &lerr) {
		lerr.Path = path
	}
	return nes, err
}

func powerUp(rom *ines.Rom, opts ...Option) (*NES, error) {
	o := options{spriteLimit: true}
	for _, opt := range opts {
		opt(&o)
	}

	mapper, err := mappers.Load(rom)
	if err != nil {
		return nil, &ines.LoadError{Err: err}
	}

	ppu := hw.NewPPU()
	ppu.InitBus(mapper)
	ppu.SetSpriteLimit(o.spriteLimit)

	cpu := hw.NewCPU()
	if o.trace != nil {
		cpu.SetTraceOutput(o.trace)
	}

	nes := &NES{
		CPU:    cpu,
		PPU:    ppu,
		Bus:    hw.NewBus(ppu, mapper),
		Mapper: mapper,
		Rom:    rom,
	}
	nes.Reset()
	return nes, nil
}

// Reset puts the console in power-up state. Memory contents are preserved.
func (nes *NES) Reset() {
	nes.reset(false)
}

// SoftReset is what the console reset button does.
func (nes *NES) SoftReset() {
	nes.reset(true)
}

func (nes *NES) reset(soft bool) {
	nes.Bus.Reset()
	nes.CPU.Reset(nes.Bus, soft)
}

// RunUntilFrame runs the console until the PPU completes a frame and returns
// it. The frame is owned by the NES and is only valid until the next call.
// Once an error is returned, the CPU is halted and further calls return the
// same error until Reset.
func (nes *NES) RunUntilFrame() (*hw.FrameBuffer, error) {
	nes.Bus.LatchButtons()
	for !nes.PPU.FrameReady() {
		if _, err := nes.CPU.Step(nes.Bus); err != nil {
			return nil, err
		}
	}
	return nes.PPU.Frame(), nil
}

// SetButtons sets the buttons pressed on the controller of the given player
// (0 or 1). The new state is seen by the program from the next frame.
func (nes *NES) SetButtons(player int, mask uint8) {
	nes.Bus.SetButtons(player, mask)
}

// FrameCount returns the number of frames completed since reset.
func (nes *NES) FrameCount() uint64 {
	return nes.PPU.Frames
}

// SaveSnapshot returns the serialized state of the whole console.
func (nes *NES) SaveSnapshot() ([]byte, error) {
	st := snapshot.NES{
		Version: snapshot.Version,
		CPU:     nes.CPU.State(),
		Bus:     nes.Bus.State(),
		PPU:     nes.PPU.State(),
		Mapper:  nes.Mapper.State(),
		Joypads: [2]snapshot.Joypad{
			nes.Bus.Pads[0].State(),
			nes.Bus.Pads[1].State(),
		},
	}
	copy(st.RAM[:], nes.Bus.RAM.Data)
	return st.MarshalJSON()
}

// LoadSnapshot restores a state obtained with SaveSnapshot, on a console
// with the same cartridge.
func (nes *NES) LoadSnapshot(buf []byte) error {
	var st snapshot.NES
	if err := st.UnmarshalJSON(buf); err != nil {
		return err
	}
	if err := nes.Mapper.SetState(st.Mapper); err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	nes.CPU.SetState(st.CPU)
	nes.Bus.SetState(st.Bus)
	nes.PPU.SetState(st.PPU)
	nes.Bus.Pads[0].SetState(st.Joypads[0])
	nes.Bus.Pads[1].SetState(st.Joypads[1])
	copy(nes.Bus.RAM.Data, st.RAM[:])

	log.ModEmu.InfoZ("snapshot loaded").
		Int64("cycles", st.CPU.Cycles).
		Uint64("frame", st.PPU.FrameCount).
		End()
	return nil
}
