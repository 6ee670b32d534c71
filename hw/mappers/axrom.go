package mappers

import "nescore/ines"

var AxROM = MapperDesc{
	Name: "AxROM",
	load: loadAxROM,
}

type axrom struct {
	*base

	reg uint8
}

func loadAxROM(b *base) circuit {
	m := &axrom{base: b}
	b.selectCHRPage8KB(0)
	m.remap()
	return m
}

func (m *axrom) write(_ uint16, val uint8) {
	// 7  bit  0
	// ---- ----
	// xxxM xPPP
	//    |  |||
	//    |  +++- Select 32 KB PRG ROM bank for CPU $8000-$FFFF
	//    +------ Select 1 KB VRAM page for all 4 nametables
	m.reg = val & 0x17
	m.remap()
}

func (m *axrom) remap() {
	m.selectPRGPage32KB(int(m.reg & 0x07))
	if m.reg&0x10 == 0 {
		m.setNTMirroring(ines.OnlyAScreen)
	} else {
		m.setNTMirroring(ines.OnlyBScreen)
	}
}

func (m *axrom) regs() []uint8 { return []uint8{m.reg} }

func (m *axrom) setRegs(regs []uint8) error {
	if err := wantRegs(regs, 1); err != nil {
		return err
	}
	m.reg = regs[0]
	m.remap()
	return nil
}
