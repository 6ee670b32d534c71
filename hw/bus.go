package hw

import (
	"nescore/emu/log"
	"nescore/hw/hwio"
	"nescore/hw/snapshot"
)

// Bus is the CPU address space. It owns the internal RAM, the PPU, the
// joypads and the cartridge, and clocks the PPU in lockstep with the CPU.
//
//	$0000-$07FF  2KB internal RAM
//	$0800-$1FFF  mirrors of $0000-$07FF
//	$2000-$2007  PPU registers
//	$2008-$3FFF  mirrors of $2000-$2007 (every 8 bytes)
//	$4000-$4017  APU and I/O registers
//	$4018-$401F  APU and I/O test mode (disabled)
//	$4020-$FFFF  cartridge
type Bus struct {
	CPU *hwio.Table

	RAM       hwio.Mem    `hwio:"offset=0x0000,size=0x800,vsize=0x2000"`
	PPUREGS   hwio.Device `hwio:"offset=0x2000,size=0x2000,rcb,wcb,pcb"`
	APU       hwio.Device `hwio:"offset=0x4000,size=0x14,wcb"`
	OAMDMA    hwio.Reg8   `hwio:"offset=0x4014,writeonly,wcb"`
	APUSTATUS hwio.Reg8   `hwio:"offset=0x4015,writeonly"`
	JOY1      hwio.Reg8   `hwio:"offset=0x4016,rcb,wcb,pcb"`
	JOY2      hwio.Reg8   `hwio:"offset=0x4017,rcb,wcb,pcb"`
	CART      hwio.Device `hwio:"offset=0x4020,size=0xBFE0,rcb,wcb,pcb"`

	PPU  *PPU
	Pads [2]Joypad

	cart Cartridge

	cycles  int64 // CPU cycles clocked so far
	synced  int   // CPU cycles of the current instruction already clocked into the PPU
	stall   int   // CPU cycles stolen by DMA during the current instruction
	pending [2]uint8

	err error
}

func NewBus(ppu *PPU, cart Cartridge) *Bus {
	b := &Bus{
		CPU:  hwio.NewTable("cpu"),
		PPU:  ppu,
		cart: cart,
	}
	hwio.MustInitRegs(b)
	b.CPU.MapBank(0x0000, b, 0)
	b.CPU.Unmapped = unmapped{b}
	return b
}

// Reset resets the bus and the devices it owns. RAM contents are preserved.
func (b *Bus) Reset() {
	b.err = nil
	b.synced = 0
	b.stall = 0
	b.cycles = 0
	b.PPU.Reset()
	b.Pads[0].Reset()
	b.Pads[1].Reset()
}

func (b *Bus) Read8(addr uint16) uint8 {
	return b.CPU.Read8(addr, false)
}

func (b *Bus) Write8(addr uint16, val uint8) {
	b.CPU.Write8(addr, val)
}

func (b *Bus) Peek8(addr uint16) uint8 {
	return b.CPU.Peek8(addr)
}

func (b *Bus) NMIPending() bool { return b.PPU.NMIPending() }
func (b *Bus) AckNMI()          { b.PPU.AckNMI() }
func (b *Bus) Err() error       { return b.err }

// Tick clocks the PPU for the cycles of the last instruction, minus those
// already clocked while accessing PPU registers, plus the DMA stall.
func (b *Bus) Tick(cycles int) int {
	stall := b.stall
	b.stall = 0

	n := cycles + stall - b.synced
	b.synced = 0
	for range n * 3 {
		b.PPU.Tick()
	}
	b.cycles += int64(cycles + stall)
	return stall
}

// syncPPU clocks the PPU one CPU cycle ahead, so that a register access
// observes the PPU state at the time of the access.
func (b *Bus) syncPPU() {
	b.PPU.Tick()
	b.PPU.Tick()
	b.PPU.Tick()
	b.synced++
}

// PPUPosition returns the current PPU scanline and dot.
func (b *Bus) PPUPosition() (int, int) {
	return b.PPU.Scanline, b.PPU.Cycle
}

// SetButtons records the buttons state of a player (0 or 1). It's copied to
// the joypad at the next LatchButtons call. Other players are ignored.
func (b *Bus) SetButtons(player int, mask uint8) {
	if player < 0 || player >= len(b.pending) {
		log.ModInput.WarnZ("ignoring buttons of unknown player").
			Int("player", player).
			End()
		return
	}
	b.pending[player] = mask
}

// LatchButtons copies the pending buttons states into the joypads.
func (b *Bus) LatchButtons() {
	b.Pads[0].SetButtons(b.pending[0])
	b.Pads[1].SetButtons(b.pending[1])
}

func (b *Bus) fail(err error) {
	if b.err == nil {
		b.err = err
		log.ModMem.WarnZ("bus error").Error("err", err).End()
	}
}

type unmapped struct{ b *Bus }

func (u unmapped) Read8(addr uint16, peek bool) uint8 {
	if !peek {
		u.b.fail(&AddressError{Addr: addr})
	}
	return 0
}

func (u unmapped) Write8(addr uint16, val uint8) {
	u.b.fail(&AddressError{Addr: addr, Write: true})
}

/* PPU registers */

func (b *Bus) ReadPPUREGS(addr uint16) uint8 {
	b.syncPPU()
	return b.PPU.ReadRegister(addr)
}

func (b *Bus) PeekPPUREGS(addr uint16) uint8 {
	return b.PPU.PeekRegister(addr)
}

func (b *Bus) WritePPUREGS(addr uint16, val uint8) {
	b.syncPPU()
	b.PPU.WriteRegister(addr, val)
}

/* APU */

func (b *Bus) WriteAPU(addr uint16, val uint8) {
	log.ModMem.DebugZ("write to APU").
		Hex16("addr", addr).
		Hex8("val", val).
		End()
}

// OAMDMA: $4014
//
// Copies 256 bytes from page val<<8 to the PPU OAM, starting at OAMADDR.
// The CPU is suspended during the transfer: 1 idle cycle, 1 more for
// alignment if started on an odd cycle, then 256 read/write pairs.
func (b *Bus) WriteOAMDMA(_, val uint8) {
	page := uint16(val) << 8
	for i := range uint16(256) {
		b.PPU.WriteOAM(b.Read8(page | i))
	}

	b.stall = 513
	if (b.cycles+int64(b.synced))%2 == 1 {
		b.stall++
	}

	log.ModMem.DebugZ("OAM DMA transfer").
		Hex8("page", val).
		Int("stall", b.stall).
		End()
}

/* cartridge */

func (b *Bus) ReadCART(addr uint16) uint8 {
	return b.cart.ReadPRG(addr)
}

func (b *Bus) PeekCART(addr uint16) uint8 {
	return b.cart.ReadPRG(addr)
}

func (b *Bus) WriteCART(addr uint16, val uint8) {
	b.cart.WritePRG(addr, val)
}

/* snapshot */

func (b *Bus) State() snapshot.Bus {
	return snapshot.Bus{
		Cycles:  b.cycles,
		Pending: b.pending,
	}
}

func (b *Bus) SetState(st snapshot.Bus) {
	b.cycles = st.Cycles
	b.pending = st.Pending
	b.synced = 0
	b.stall = 0
	b.err = nil
}
