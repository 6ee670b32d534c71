// Package snapshot defines the serializable state of the whole machine.
package snapshot

import "fmt"

// Version is bumped whenever the layout of the state changes.
const Version = 1

type NES struct {
	Version int
	CPU     CPU
	RAM     [0x800]uint8
	Bus     Bus
	PPU     PPU
	Mapper  Mapper
	Joypads [2]Joypad
}

type CPU struct {
	PC uint16
	SP uint8
	P  uint8
	A  uint8
	X  uint8
	Y  uint8

	Cycles int64
}

type Bus struct {
	Cycles  int64 // total CPU cycles clocked, gives the parity for OAM DMA
	Pending [2]uint8
}

type PPU struct {
	Nametables [0x1000]uint8
	Palette    [0x20]uint8
	OAMMem     [0x100]uint8

	PPUCTRL   uint8
	PPUMASK   uint8
	PPUSTATUS uint8
	OAMAddr   uint8

	VRAMAddr   uint16
	VRAMTemp   uint16
	FineX      uint8
	WriteLatch bool
	PPUDataBuf uint8
	OpenBus    uint8

	NMILine    bool
	NMIPending bool

	Cycle      int
	Scanline   int
	FrameCount uint64
	OddFrame   bool

	Bg      PPUBgRegs
	Sprites []Sprite
}

// PPUBgRegs holds the background fetch latches. TileData holds 2 tiles worth
// of 4-bit pixels (attribute and pattern bits), the high 32 bits being the
// tile currently rendered.
type PPUBgRegs struct {
	NT uint8
	AT uint8
	Lo uint8
	Hi uint8

	TileData uint64
}

// Sprite is a sprite selected for the current scanline.
type Sprite struct {
	Pattern  uint32
	X        uint8
	Priority uint8
	Index    uint8
}

type Mapper struct {
	Name   string
	Regs   []uint8
	PRGRAM []uint8
	CHRRAM []uint8
}

type Joypad struct {
	Buttons uint8
	Strobe  bool
	Index   uint8
}

const (
	numScanlines = 262
	numCycles    = 341
	numSprites   = 64
)

// Validate reports values no running console can hold and that would make
// the emulation misbehave once restored.
func (s *NES) Validate() error {
	ppu := &s.PPU
	switch {
	case ppu.Scanline < 0 || ppu.Scanline >= numScanlines:
		return fmt.Errorf("ppu: scanline %d out of range", ppu.Scanline)
	case ppu.Cycle < 0 || ppu.Cycle >= numCycles:
		return fmt.Errorf("ppu: cycle %d out of range", ppu.Cycle)
	case ppu.FineX > 7:
		return fmt.Errorf("ppu: fine x %d out of range", ppu.FineX)
	case len(ppu.Sprites) > numSprites:
		return fmt.Errorf("ppu: %d sprites on a scanline, max %d", len(ppu.Sprites), numSprites)
	}
	for i, c := range ppu.Palette {
		if c > 0x3F {
			return fmt.Errorf("ppu: palette entry %d is %02x, max 3f", i, c)
		}
	}
	for i, spr := range ppu.Sprites {
		if spr.Index >= numSprites {
			return fmt.Errorf("ppu: sprite slot %d has index %d", i, spr.Index)
		}
	}
	for i, pad := range s.Joypads {
		if pad.Index > 8 {
			return fmt.Errorf("joypad %d: shift index %d out of range", i, pad.Index)
		}
	}
	return nil
}
