package mappers

var NROM = MapperDesc{
	Name: "NROM",
	load: loadNROM,
}

// nrom has no registers: 16KB PRG ROM is mirrored at $C000, 32KB fills
// $8000-$FFFF. CHR is a single 8KB bank.
type nrom struct{}

func loadNROM(b *base) circuit {
	b.selectPRGPage32KB(0)
	b.selectCHRPage8KB(0)
	return nrom{}
}

func (nrom) write(addr uint16, val uint8) {
	modMapper.DebugZ("write to NROM").Hex16("addr", addr).Hex8("val", val).End()
}

func (nrom) regs() []uint8 { return nil }

func (nrom) setRegs(regs []uint8) error { return wantRegs(regs, 0) }
