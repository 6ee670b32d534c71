package mappers

import (
	"fmt"

	"nescore/ines"
)

const (
	prgSlotSize = 0x2000 // PRG ROM is mapped by 8KB slots in $8000-$FFFF
	chrSlotSize = 0x0400 // CHR is mapped by 1KB slots in $0000-$1FFF
	prgRAMSize  = 0x2000
	chrRAMSize  = 0x2000
)

// base holds what all mapper circuits have in common: the cartridge, the
// current bank layout and the nametable mirroring. Circuits only decide which
// banks are selected.
type base struct {
	desc MapperDesc
	rom  *ines.Rom

	prgram      []byte
	wramEnabled bool

	chr    []byte // CHR ROM, or CHR RAM if the cartridge has none
	chrRAM bool

	prgslots [4]int // offset in rom.PRG of each 8KB slot at $8000-$FFFF
	chrslots [8]int // offset in chr of each 1KB slot at $0000-$1FFF
	ntm      ines.NTMirroring
}

func ispow2(n int) bool {
	return n != 0 && n&(n-1) == 0
}

func newbase(desc MapperDesc, rom *ines.Rom) (*base, error) {
	if !ispow2(len(rom.PRG)) {
		return nil, fmt.Errorf("only support PRG ROM with power of 2 size, got %d", len(rom.PRG))
	}

	b := &base{
		desc:        desc,
		rom:         rom,
		prgram:      make([]byte, prgRAMSize),
		wramEnabled: true,
		chr:         rom.CHR,
		ntm:         rom.Mirroring(),
	}
	if len(b.chr) == 0 {
		b.chr = make([]byte, chrRAMSize)
		b.chrRAM = true
	}
	return b, nil
}

// bank returns the offset of a bank of size sz within a memory area of
// length total. Negative bank numbers count from the end (-1 is the last
// bank), and out of range numbers wrap around.
func bank(n, sz, total int) int {
	count := total / sz
	if count == 0 {
		return 0
	}
	n %= count
	if n < 0 {
		n += count
	}
	return n * sz
}

// selectPRGPage8KB maps an 8KB PRG bank into slot (0 to 3).
func (b *base) selectPRGPage8KB(slot, n int) {
	b.prgslots[slot] = bank(n, 0x2000, len(b.rom.PRG))
}

// selectPRGPage16KB maps a 16KB PRG bank at $8000 (slot 0) or $C000 (slot 1).
func (b *base) selectPRGPage16KB(slot, n int) {
	off := bank(n, 0x4000, len(b.rom.PRG))
	b.prgslots[slot*2] = off
	b.prgslots[slot*2+1] = off + 0x2000
}

func (b *base) selectPRGPage32KB(n int) {
	off := bank(n, 0x8000, len(b.rom.PRG))
	if len(b.rom.PRG) < 0x8000 {
		// 16KB PRG ROM is mirrored.
		b.selectPRGPage16KB(0, 0)
		b.selectPRGPage16KB(1, 0)
		return
	}
	for i := range b.prgslots {
		b.prgslots[i] = off + i*0x2000
	}
}

// selectCHRPage4KB maps a 4KB CHR bank at $0000 (slot 0) or $1000 (slot 1).
func (b *base) selectCHRPage4KB(slot, n int) {
	off := bank(n, 0x1000, len(b.chr))
	for i := range 4 {
		b.chrslots[slot*4+i] = off + i*chrSlotSize
	}
}

func (b *base) selectCHRPage8KB(n int) {
	off := bank(n, 0x2000, len(b.chr))
	for i := range b.chrslots {
		b.chrslots[i] = off + i*chrSlotSize
	}
}

func (b *base) setNTMirroring(m ines.NTMirroring) {
	if m != b.ntm {
		modMapper.DebugZ("nametable mirroring").
			String("mapper", b.desc.Name).
			Stringer("mode", m).
			End()
	}
	b.ntm = m
}
