package mappers

var UxROM = MapperDesc{
	Name: "UxROM",
	load: loadUxROM,
}

type uxrom struct {
	*base

	prgbank uint8
}

func loadUxROM(b *base) circuit {
	m := &uxrom{base: b}
	b.selectCHRPage8KB(0)
	m.remap()
	return m
}

func (m *uxrom) write(_ uint16, val uint8) {
	// 7  bit  0
	// ---- ----
	// xxxx pPPP
	//      ||||
	//      ++++- Select 16 KB PRG ROM bank for CPU $8000-$BFFF
	//            (UNROM uses bits 2-0; UOROM uses bits 3-0)
	m.prgbank = val & 0x0F
	m.remap()
}

func (m *uxrom) remap() {
	m.selectPRGPage16KB(0, int(m.prgbank))
	m.selectPRGPage16KB(1, -1)
}

func (m *uxrom) regs() []uint8 { return []uint8{m.prgbank} }

func (m *uxrom) setRegs(regs []uint8) error {
	if err := wantRegs(regs, 1); err != nil {
		return err
	}
	m.prgbank = regs[0]
	m.remap()
	return nil
}
