package hw

import (
	"nescore/emu/log"
	"nescore/hw/hwio"
	"nescore/hw/snapshot"
	"nescore/ines"
)

const (
	NumScanlines = 262 // Number of scanlines per frame.
	NumCycles    = 341 // Number of PPU cycles per scanline.

	preRenderLine = 261
)

const (
	// PPUCTRL bits
	// $2000

	// Nametable selection mask
	// (0 = $2000; 1 = $2400; 2 = $2800; 3 = $2C00)
	ntselect = 0b11

	// VRAM address increment per CPU read/write of PPUDATA
	// (0: +1 i.e. horizontal; 1: +32 i.e. vertical)
	vramIncr = 2

	// Sprite pattern table address for 8x8 sprites
	// (0: $0000; 1: $1000; ignored in 8x16 mode)
	spriteAddr = 3

	// Background pattern table address (0: $0000; 1: $1000)
	backgroundAddr = 4

	// Sprite size (0: 8x8 pixels; 1: 8x16 pixels)
	spriteSize = 5

	// Generate an NMI at the start of the
	// vertical blanking interval (0: off; 1: on)
	nmi = 7
)

const (
	// PPUMASK bits
	// $2001

	// Greyscale
	// (0: normal color, 1: produce a greyscale display)
	greyscale = 0

	// Show background in leftmost 8 pixels of screen
	// 1: Show, 0: Hide
	leftmostBg = 1

	// Show sprites in leftmost 8 pixels of screen
	// 1: Show, 0: Hide
	leftmostSprites = 2

	// Show background
	showBg = 3

	// Show sprites
	showSprites = 4
)

const (
	// PPUSTATUS bits
	// $2002

	// Returns stale PPU bus contents.
	openbusMask = 0b11111

	// Sprite overflow. Set during sprite evaluation when more than 8
	// sprites are found on a scanline, cleared at dot 1 of the pre-render
	// line.
	spriteOverflow = 5

	// Sprite 0 Hit. Set when a nonzero pixel of sprite 0 overlaps a
	// nonzero background pixel; cleared at dot 1 of the pre-render line.
	sprite0Hit = 6

	// Vertical blank has started (0: not in vblank; 1: in vblank).
	// Set at dot 1 of line 241 (the line *after* the post-render
	// line); cleared after reading $2002 and at dot 1 of the
	// pre-render line.
	vblank = 7
)

func isset(v uint8, n uint) bool { return v&(1<<n) != 0 }

// Cartridge is the cartridge side of the CPU and PPU buses.
type Cartridge interface {
	ReadPRG(addr uint16) uint8
	WritePRG(addr uint16, val uint8)
	ReadCHR(addr uint16) uint8
	WriteCHR(addr uint16, val uint8)
	Mirroring() ines.NTMirroring
}

type PPU struct {
	Bus  *hwio.Table // PPU bus
	Regs *hwio.Table // CPU-exposed registers, $2000-$2007

	Cycle    int    // Current cycle/pixel in scanline
	Scanline int    // Current scanline being drawn
	Frames   uint64 // Number of completed frames

	cart Cartridge

	//	$0000-$0FFF	$1000	Pattern table 0
	//	$1000-$1FFF	$1000	Pattern table 1
	CHR hwio.Device `hwio:"offset=0x0000,size=0x2000,rcb,wcb,pcb"`

	// $2000-$23FF	$0400	Nametable 0
	// $2400-$27FF	$0400	Nametable 1
	// $2800-$2BFF	$0400	Nametable 2
	// $2C00-$2FFF	$0400	Nametable 3
	// $3000-$3EFF	$0F00	Mirrors of $2000-$2EFF
	NT hwio.Device `hwio:"offset=0x2000,size=0x1F00,rcb,wcb,pcb"`

	// $3F00-$3F1F	$0020	Palette RAM indexes
	// $3F20-$3FFF	$00E0	Mirrors of $3F00-$3F1F
	PAL hwio.Device `hwio:"offset=0x3F00,size=0x100,rcb,wcb,pcb"`

	// CPU-exposed memory-mapped PPU registers
	// mapped from $2000 to $2007, mirrored up to $3fff
	PPUCTRL   hwio.Reg8 `hwio:"bank=1,offset=0x0,writeonly,wcb"`
	PPUMASK   hwio.Reg8 `hwio:"bank=1,offset=0x1,writeonly,wcb"`
	PPUSTATUS hwio.Reg8 `hwio:"bank=1,offset=0x2,readonly,rcb,pcb"`
	OAMADDR   hwio.Reg8 `hwio:"bank=1,offset=0x3,writeonly"`
	OAMDATA   hwio.Reg8 `hwio:"bank=1,offset=0x4,rcb,wcb,pcb"`
	PPUSCROLL hwio.Reg8 `hwio:"bank=1,offset=0x5,writeonly,wcb"`
	PPUADDR   hwio.Reg8 `hwio:"bank=1,offset=0x6,writeonly,wcb"`
	PPUDATA   hwio.Reg8 `hwio:"bank=1,offset=0x7,rcb,wcb,pcb"`

	nametables [0x1000]uint8 // 2KB on the console, 4KB for four-screen carts
	palette    [0x20]uint8
	oam        [0x100]uint8

	// VRAM read/write
	vramAddr    uint16 // v
	vramTmp     uint16 // t
	finex       uint8  // x
	writeLatch  bool   // w
	ppuDataRbuf uint8
	openBus     uint8

	// NMI output line (vblank && PPUCTRL.7), and its latched falling edge.
	nmiLine    bool
	nmiPending bool

	oddFrame   bool
	frameReady bool

	bg bgFetch

	spriteLimit bool
	sprites     []spriteSlot

	front, back *FrameBuffer
}

// background fetch latches.
type bgFetch struct {
	nt, at, lo, hi uint8
	tiles          uint64 // 16 pixels, 4 bits each (2 attribute + 2 pattern)
}

type spriteSlot struct {
	pattern uint32 // 8 pixels, 4 bits each
	x       uint8
	prio    uint8 // 1: behind background
	index   uint8 // index in OAM
}

func NewPPU() *PPU {
	p := &PPU{
		Bus:         hwio.NewTable("ppu"),
		Regs:        hwio.NewTable("ppuregs"),
		spriteLimit: true,
		sprites:     make([]spriteSlot, 0, 64),
		front:       new(FrameBuffer),
		back:        new(FrameBuffer),
	}
	return p
}

// InitBus maps PPU memory and registers, the cartridge providing the
// pattern tables and the nametable mirroring.
func (p *PPU) InitBus(cart Cartridge) {
	p.cart = cart
	hwio.MustInitRegs(p)
	p.Bus.MapBank(0x0000, p, 0)
	p.Regs.MapBank(0x0000, p, 1)
}

// SetSpriteLimit enables (default) or disables the 8 sprites per scanline
// hardware limit. The overflow flag is set either way.
func (p *PPU) SetSpriteLimit(on bool) {
	p.spriteLimit = on
}

// Reset puts the PPU in power-up state. Memory contents are preserved.
func (p *PPU) Reset() {
	p.Scanline = 0
	p.Cycle = 0
	p.Frames = 0
	p.PPUCTRL.Value = 0
	p.PPUMASK.Value = 0
	p.PPUSTATUS.Value = 0
	p.OAMADDR.Value = 0
	p.vramAddr = 0
	p.vramTmp = 0
	p.finex = 0
	p.writeLatch = false
	p.ppuDataRbuf = 0
	p.openBus = 0
	p.nmiLine = false
	p.nmiPending = false
	p.oddFrame = false
	p.frameReady = false
	p.bg = bgFetch{}
	p.sprites = p.sprites[:0]
}

// Frame returns the last completed frame.
func (p *PPU) Frame() *FrameBuffer {
	return p.front
}

// FrameReady reports, and clears, the frame-complete signal.
func (p *PPU) FrameReady() bool {
	r := p.frameReady
	p.frameReady = false
	return r
}

func (p *PPU) NMIPending() bool { return p.nmiPending }
func (p *PPU) AckNMI()          { p.nmiPending = false }

// updateNMI recomputes the NMI output line. The CPU NMI input is edge
// sensitive: an NMI is latched whenever the line goes high.
func (p *PPU) updateNMI() {
	line := isset(p.PPUCTRL.Value, nmi) && isset(p.PPUSTATUS.Value, vblank)
	if line && !p.nmiLine {
		p.nmiPending = true
		log.ModPPU.DebugZ("NMI raised").
			Int("scanline", p.Scanline).
			Int("cycle", p.Cycle).
			End()
	}
	p.nmiLine = line
}

func (p *PPU) renderingEnabled() bool {
	return isset(p.PPUMASK.Value, showBg) || isset(p.PPUMASK.Value, showSprites)
}

/* CPU side */

// ReadRegister reads the PPU register mapped at addr (mirrored every 8
// bytes). Write-only registers return the open bus latch.
func (p *PPU) ReadRegister(addr uint16) uint8 {
	reg := addr & 0x07
	if p.isWriteOnly(reg) {
		return p.openBus
	}
	return p.Regs.Read8(reg, false)
}

// PeekRegister is ReadRegister without side effects.
func (p *PPU) PeekRegister(addr uint16) uint8 {
	reg := addr & 0x07
	if p.isWriteOnly(reg) {
		return p.openBus
	}
	return p.Regs.Peek8(reg)
}

func (p *PPU) WriteRegister(addr uint16, val uint8) {
	p.openBus = val
	p.Regs.Write8(addr&0x07, val)
}

func (p *PPU) isWriteOnly(reg uint16) bool {
	switch reg {
	case 0, 1, 3, 5, 6:
		return true
	}
	return false
}

// PPUCTRL: $2000
func (p *PPU) WritePPUCTRL(old, val uint8) {
	log.ModPPU.DebugZ("Write to PPUCTRL").Hex8("val", val).End()

	// Transfer the nametable bits.
	p.vramTmp &^= ntselect << 10
	p.vramTmp |= (uint16(val) & ntselect) << 10

	// Setting the nmi bit during vblank raises an NMI right away.
	p.updateNMI()
}

// PPUMASK: $2001
func (p *PPU) WritePPUMASK(old, val uint8) {
	log.ModPPU.DebugZ("Write to PPUMASK").Hex8("val", val).End()
}

// PPUSTATUS: $2002
func (p *PPU) ReadPPUSTATUS(val uint8) uint8 {
	ret := val&0xE0 | p.openBus&openbusMask
	p.writeLatch = false
	p.PPUSTATUS.Value &^= 1 << vblank
	p.updateNMI()
	p.openBus = p.openBus&openbusMask | ret&^openbusMask
	return ret
}

func (p *PPU) PeekPPUSTATUS(val uint8) uint8 {
	return val&0xE0 | p.openBus&openbusMask
}

// OAMDATA: $2004
func (p *PPU) ReadOAMDATA(_ uint8) uint8 {
	val := p.PeekOAMDATA(0)
	p.openBus = val
	return val
}

func (p *PPU) PeekOAMDATA(_ uint8) uint8 {
	addr := p.OAMADDR.Value
	val := p.oam[addr]
	if addr&0x03 == 2 {
		// Bits 2-4 of the attribute byte don't exist.
		val &= 0xE3
	}
	return val
}

func (p *PPU) WriteOAMDATA(_, val uint8) {
	p.oam[p.OAMADDR.Value] = val
	p.OAMADDR.Value++
}

// WriteOAM is the OAM DMA port, writing at OAMADDR and incrementing it.
func (p *PPU) WriteOAM(val uint8) {
	p.WriteOAMDATA(0, val)
}

// PPUSCROLL: $2005
func (p *PPU) WritePPUSCROLL(old, val uint8) {
	log.ModPPU.DebugZ("Write to PPUSCROLL").Hex8("val", val).End()

	if !p.writeLatch { // first write
		p.finex = val & 0b111
		p.vramTmp &^= 0b1_1111
		p.vramTmp |= uint16(val >> 3)
	} else { // second write
		p.vramTmp &^= 0b0111_0011_1110_0000
		p.vramTmp |= uint16(val&0b111) << 12
		p.vramTmp |= uint16(val&0b1111_1000) << 2
	}

	p.writeLatch = !p.writeLatch
}

// To read/write VRAM from CPU, PPUADDR is set to the address of the operation.
// It's a 16-bit register so 2 writes are necessary.
// PPUADDR: $2006
func (p *PPU) WritePPUADDR(old, val uint8) {
	if !p.writeLatch { // first write
		p.vramTmp &^= 0b111_1111_0000_0000
		p.vramTmp |= uint16(val&0b11_1111) << 8
	} else { // second write
		p.vramTmp &^= 0xff
		p.vramTmp |= uint16(val)
		p.vramAddr = p.vramTmp
	}

	p.writeLatch = !p.writeLatch
}

// PPUDATA: $2007
func (p *PPU) ReadPPUDATA(_ uint8) uint8 {
	addr := p.vramAddr & 0x3FFF
	var val uint8
	if addr < 0x3F00 {
		// Reading VRAM is too slow so the actual data
		// will be returned at the next read.
		val = p.ppuDataRbuf
		p.ppuDataRbuf = p.Bus.Read8(addr, false)
	} else {
		// Reading palette data is immediate, the read buffer gets the
		// nametable byte 'below' the palette.
		val = p.Bus.Read8(addr, false)&0x3F | p.openBus&0xC0
		p.ppuDataRbuf = p.Bus.Read8(addr-0x1000, false)
	}

	log.ModPPU.DebugZ("VRAM read").
		Hex16("addr", addr).
		Hex8("val", val).
		End()

	p.incVRAMaddr()
	p.openBus = val
	return val
}

func (p *PPU) PeekPPUDATA(_ uint8) uint8 {
	addr := p.vramAddr & 0x3FFF
	if addr < 0x3F00 {
		return p.ppuDataRbuf
	}
	return p.Bus.Peek8(addr)&0x3F | p.openBus&0xC0
}

// PPUDATA: $2007
func (p *PPU) WritePPUDATA(old, val uint8) {
	// Mirror down address (only $000-$3fff range is valid).
	addr := p.vramAddr & 0x3FFF
	p.Bus.Write8(addr, val)

	log.ModPPU.DebugZ("VRAM write").
		Hex16("addr", addr).
		Hex8("val", val).
		End()

	p.incVRAMaddr()
}

// After each i/o on PPUDATA, PPUADDR is incremented.
func (p *PPU) incVRAMaddr() {
	if p.renderingEnabled() && (p.Scanline < 240 || p.Scanline == preRenderLine) {
		// During rendering the increment goes through the scrolling
		// logic, both coarse X and Y are incremented.
		p.incrementX()
		p.incrementY()
		return
	}

	incr := uint16(1)
	if isset(p.PPUCTRL.Value, vramIncr) {
		incr = 32
	}
	p.vramAddr = (p.vramAddr + incr) & 0x7FFF
}

/* PPU bus */

func (p *PPU) ReadCHR(addr uint16) uint8 {
	return p.cart.ReadCHR(addr)
}

func (p *PPU) PeekCHR(addr uint16) uint8 {
	return p.cart.ReadCHR(addr)
}

func (p *PPU) WriteCHR(addr uint16, val uint8) {
	p.cart.WriteCHR(addr, val)
}

// ntAddr returns the offset in nametable memory of the PPU bus address addr,
// according to the current cartridge mirroring.
func (p *PPU) ntAddr(addr uint16) uint16 {
	addr = (addr - 0x2000) & 0x0FFF
	table := addr / 0x0400
	off := addr & 0x03FF

	switch p.cart.Mirroring() {
	case ines.HorzMirroring:
		table >>= 1
	case ines.VertMirroring:
		table &= 1
	case ines.OnlyAScreen:
		table = 0
	case ines.OnlyBScreen:
		table = 1
	case ines.FourScreen:
	}
	return table*0x0400 + off
}

func (p *PPU) ReadNT(addr uint16) uint8 {
	return p.nametables[p.ntAddr(addr)]
}

func (p *PPU) PeekNT(addr uint16) uint8 {
	return p.nametables[p.ntAddr(addr)]
}

func (p *PPU) WriteNT(addr uint16, val uint8) {
	p.nametables[p.ntAddr(addr)] = val
}

// palAddr returns the palette index of addr. $3F10/$3F14/$3F18/$3F1C are
// mirrors of $3F00/$3F04/$3F08/$3F0C.
func palAddr(addr uint16) uint16 {
	addr &= 0x1F
	if addr&0x13 == 0x10 {
		addr &^= 0x10
	}
	return addr
}

func (p *PPU) ReadPAL(addr uint16) uint8 {
	return p.palette[palAddr(addr)]
}

func (p *PPU) PeekPAL(addr uint16) uint8 {
	return p.palette[palAddr(addr)]
}

func (p *PPU) WritePAL(addr uint16, val uint8) {
	p.palette[palAddr(addr)] = val & 0x3F
}

/* snapshot */

func (p *PPU) State() snapshot.PPU {
	st := snapshot.PPU{
		Nametables: p.nametables,
		Palette:    p.palette,
		OAMMem:     p.oam,
		PPUCTRL:    p.PPUCTRL.Value,
		PPUMASK:    p.PPUMASK.Value,
		PPUSTATUS:  p.PPUSTATUS.Value,
		OAMAddr:    p.OAMADDR.Value,
		VRAMAddr:   p.vramAddr,
		VRAMTemp:   p.vramTmp,
		FineX:      p.finex,
		WriteLatch: p.writeLatch,
		PPUDataBuf: p.ppuDataRbuf,
		OpenBus:    p.openBus,
		NMILine:    p.nmiLine,
		NMIPending: p.nmiPending,
		Cycle:      p.Cycle,
		Scanline:   p.Scanline,
		FrameCount: p.Frames,
		OddFrame:   p.oddFrame,
		Bg: snapshot.PPUBgRegs{
			NT:       p.bg.nt,
			AT:       p.bg.at,
			Lo:       p.bg.lo,
			Hi:       p.bg.hi,
			TileData: p.bg.tiles,
		},
	}
	for _, s := range p.sprites {
		st.Sprites = append(st.Sprites, snapshot.Sprite{
			Pattern:  s.pattern,
			X:        s.x,
			Priority: s.prio,
			Index:    s.index,
		})
	}
	return st
}

func (p *PPU) SetState(st snapshot.PPU) {
	p.nametables = st.Nametables
	p.palette = st.Palette
	p.oam = st.OAMMem
	p.PPUCTRL.Value = st.PPUCTRL
	p.PPUMASK.Value = st.PPUMASK
	p.PPUSTATUS.Value = st.PPUSTATUS
	p.OAMADDR.Value = st.OAMAddr
	p.vramAddr = st.VRAMAddr
	p.vramTmp = st.VRAMTemp
	p.finex = st.FineX
	p.writeLatch = st.WriteLatch
	p.ppuDataRbuf = st.PPUDataBuf
	p.openBus = st.OpenBus
	p.nmiLine = st.NMILine
	p.nmiPending = st.NMIPending
	p.Cycle = st.Cycle
	p.Scanline = st.Scanline
	p.Frames = st.FrameCount
	p.oddFrame = st.OddFrame
	p.frameReady = false
	p.bg = bgFetch{
		nt:    st.Bg.NT,
		at:    st.Bg.AT,
		lo:    st.Bg.Lo,
		hi:    st.Bg.Hi,
		tiles: st.Bg.TileData,
	}
	p.sprites = p.sprites[:0]
	for _, s := range st.Sprites {
		p.sprites = append(p.sprites, spriteSlot{
			pattern: s.Pattern,
			x:       s.X,
			prio:    s.Priority,
			index:   s.Index,
		})
	}
}
