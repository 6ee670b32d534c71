package mappers

var GxROM = MapperDesc{
	Name: "GxROM",
	load: loadGxROM,
}

type gxrom struct {
	*base

	reg uint8
}

func loadGxROM(b *base) circuit {
	m := &gxrom{base: b}
	m.remap()
	return m
}

func (m *gxrom) write(_ uint16, val uint8) {
	// 7  bit  0
	// ---- ----
	// xxPP xxCC
	//   ||   ||
	//   ||   ++- Select 8 KB CHR ROM bank for PPU $0000-$1FFF
	//   ++------ Select 32 KB PRG ROM bank for CPU $8000-$FFFF
	m.reg = val & 0x33
	m.remap()
}

func (m *gxrom) remap() {
	m.selectPRGPage32KB(int(m.reg>>4) & 0x03)
	m.selectCHRPage8KB(int(m.reg & 0x03))
}

func (m *gxrom) regs() []uint8 { return []uint8{m.reg} }

func (m *gxrom) setRegs(regs []uint8) error {
	if err := wantRegs(regs, 1); err != nil {
		return err
	}
	m.reg = regs[0]
	m.remap()
	return nil
}
