package mappers

import (
	"nescore/ines"
)

var MMC1 = MapperDesc{
	Name: "MMC1",
	load: loadMMC1,
}

type mmc1 struct {
	*base

	serial  shiftReg // shift register
	counter uint8    // count of bits shifted

	ctrl     uint8
	chrbank0 uint8
	chrbank1 uint8
	prgreg   uint8
}

type shiftReg uint8

func (sr shiftReg) push(val uint8) shiftReg {
	sr >>= 1
	sr |= shiftReg((val << 4) & 0x10)
	return sr
}

func loadMMC1(b *base) circuit {
	m := &mmc1{base: b}

	// On powerup bits 2,3 of CTRL are set: $8000 is bank 0 and $C000 is the
	// last bank (needed for SEROM/SHROM/SH1ROM which don't support banking).
	m.ctrl = 0x0C
	m.remap()
	return m
}

// Consecutive writes on back-to-back CPU cycles (RMW instructions) are not
// ignored like on the real chip.
func (m *mmc1) write(addr uint16, val uint8) {
	if val&0x80 != 0 {
		// Reset: ignore data bit, clear the shift register and set
		// bits 2,3 of CTRL (16k PRG mode, $8000 swappable).
		m.serial = 0
		m.counter = 0
		m.ctrl |= 0x0C
		m.remap()
		return
	}

	m.serial = m.serial.push(val)
	m.counter++
	if m.counter == 5 {
		m.writeREG(addr, uint8(m.serial))
		m.serial = 0
		m.counter = 0
	}
}

func (m *mmc1) writeREG(addr uint16, val uint8) {
	switch (addr & 0x6000) >> 13 {
	case 0:
		// 4bit0
		// -----
		// CPPMM
		// |||||
		// |||++- Mirroring (0: one-screen A; 1: one-screen B; 2: vertical; 3: horizontal)
		// |++--- PRG ROM bank mode (0, 1: 32KB; 2: fix first bank at $8000;
		// |                         3: fix last bank at $C000)
		// +----- CHR ROM bank mode (0: 8KB; 1: two separate 4KB banks)
		m.ctrl = val
	case 1:
		m.chrbank0 = val
	case 2:
		m.chrbank1 = val
	case 3:
		// 4bit0
		// -----
		// RPPPP
		// |++++- Select 16 KB PRG ROM bank (low bit ignored in 32 KB mode)
		// +----- PRG RAM chip enable (0: enabled; 1: disabled)
		m.prgreg = val
	}

	modMapper.DebugZ("write register").
		String("mapper", m.desc.Name).
		Hex16("addr", addr).
		Hex8("val", val).
		End()
	m.remap()
}

func (m *mmc1) remap() {
	switch m.ctrl & 0x03 {
	case 0:
		m.setNTMirroring(ines.OnlyAScreen)
	case 1:
		m.setNTMirroring(ines.OnlyBScreen)
	case 2:
		m.setNTMirroring(ines.VertMirroring)
	case 3:
		m.setNTMirroring(ines.HorzMirroring)
	}

	prgbank := int(m.prgreg & 0x0F)
	switch (m.ctrl >> 2) & 0x03 {
	case 0, 1:
		m.selectPRGPage32KB(prgbank >> 1)
	case 2:
		m.selectPRGPage16KB(0, 0)
		m.selectPRGPage16KB(1, prgbank)
	case 3:
		m.selectPRGPage16KB(0, prgbank)
		m.selectPRGPage16KB(1, -1)
	}
	m.wramEnabled = m.prgreg&0x10 == 0

	if m.ctrl&0x10 == 0 {
		m.selectCHRPage8KB(int(m.chrbank0 >> 1))
	} else {
		m.selectCHRPage4KB(0, int(m.chrbank0))
		m.selectCHRPage4KB(1, int(m.chrbank1))
	}
}

func (m *mmc1) regs() []uint8 {
	return []uint8{uint8(m.serial), m.counter, m.ctrl, m.chrbank0, m.chrbank1, m.prgreg}
}

func (m *mmc1) setRegs(regs []uint8) error {
	if err := wantRegs(regs, 6); err != nil {
		return err
	}
	m.serial = shiftReg(regs[0])
	m.counter = regs[1]
	m.ctrl = regs[2]
	m.chrbank0 = regs[3]
	m.chrbank1 = regs[4]
	m.prgreg = regs[5]
	m.remap()
	return nil
}
