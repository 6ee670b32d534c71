package mappers

var CNROM = MapperDesc{
	Name: "CNROM",
	load: loadCNROM,
}

type cnrom struct {
	*base

	chrbank uint8
}

func loadCNROM(b *base) circuit {
	m := &cnrom{base: b}
	b.selectPRGPage32KB(0)
	b.selectCHRPage8KB(0)
	return m
}

func (m *cnrom) write(_ uint16, val uint8) {
	// 7  bit  0
	// ---- ----
	// cccc ccCC
	// |||| ||||
	// ++++-++++- Select 8 KB CHR ROM bank for PPU $0000-$1FFF
	// CNROM only uses lowest 2 bits
	m.chrbank = val
	m.selectCHRPage8KB(int(m.chrbank))
}

func (m *cnrom) regs() []uint8 { return []uint8{m.chrbank} }

func (m *cnrom) setRegs(regs []uint8) error {
	if err := wantRegs(regs, 1); err != nil {
		return err
	}
	m.chrbank = regs[0]
	m.selectCHRPage8KB(int(m.chrbank))
	return nil
}
