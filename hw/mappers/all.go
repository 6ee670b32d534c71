// Package mappers implements the cartridge circuits translating CPU and PPU
// addresses into offsets within cartridge memory.
package mappers

import (
	"errors"
	"fmt"
	"slices"

	"nescore/emu/log"
	"nescore/hw/snapshot"
	"nescore/ines"
)

var modMapper = log.NewModule("mapper")

// ErrUnsupportedMapper is returned by Load for mapper numbers without an
// implementation.
var ErrUnsupportedMapper = errors.New("unsupported mapper")

type MapperDesc struct {
	Name string
	load func(*base) circuit
}

// All is the set of supported mappers, indexed by iNES mapper number.
var All = map[uint16]MapperDesc{
	0:  NROM,
	1:  MMC1,
	2:  UxROM,
	3:  CNROM,
	7:  AxROM,
	66: GxROM,
}

// circuit is implemented by each supported mapper. The set of circuits is
// closed: only this package provides them, and each one is picked by Load
// from the cartridge header.
type circuit interface {
	// write handles a CPU write in $8000-$FFFF.
	write(addr uint16, val uint8)

	// regs returns the circuit registers, setRegs restores them and updates
	// the bank layout accordingly.
	regs() []uint8
	setRegs(regs []uint8) error
}

// Mapper is the cartridge as seen by the buses. It owns the cartridge rom
// as well as the cartridge RAM (PRG RAM and CHR RAM if any).
type Mapper struct {
	*base
	c circuit
}

// Load returns the mapper described by rom header.
func Load(rom *ines.Rom) (*Mapper, error) {
	desc, ok := All[rom.Mapper()]
	if !ok {
		return nil, fmt.Errorf("%w %d", ErrUnsupportedMapper, rom.Mapper())
	}
	b, err := newbase(desc, rom)
	if err != nil {
		return nil, fmt.Errorf("mapper %s initialization failed: %w", desc.Name, err)
	}

	m := &Mapper{base: b, c: desc.load(b)}
	modMapper.InfoZ("mapper loaded").
		String("name", desc.Name).
		Int("prg", len(rom.PRG)).
		Int("chr", len(b.chr)).
		Bool("chrram", b.chrRAM).
		Stringer("mirroring", b.ntm).
		End()
	return m, nil
}

func (m *Mapper) Name() string { return m.desc.Name }

// TranslatePRG returns the offset in PRG ROM of the byte seen by the CPU at
// addr, or -1 if addr doesn't map to PRG ROM.
func (m *Mapper) TranslatePRG(addr uint16) int {
	if addr < 0x8000 {
		return -1
	}
	slot := (addr - 0x8000) / prgSlotSize
	return m.prgslots[slot] + int(addr%prgSlotSize)
}

// TranslateCHR returns the offset in CHR memory of the byte seen by the PPU
// at addr ($0000-$1FFF).
func (m *Mapper) TranslateCHR(addr uint16) int {
	addr &= 0x1FFF
	return m.chrslots[addr/chrSlotSize] + int(addr%chrSlotSize)
}

// WriteRegister forwards a CPU write in $8000-$FFFF to the mapper circuit,
// which may switch banks or change mirroring.
func (m *Mapper) WriteRegister(addr uint16, val uint8) {
	m.c.write(addr, val)
}

// Mirroring returns the current nametable mirroring.
func (m *Mapper) Mirroring() ines.NTMirroring {
	return m.ntm
}

// ReadPRG reads the cartridge CPU window ($4020-$FFFF). Reads have no side
// effects. Addresses where the cartridge drives nothing return 0.
func (m *Mapper) ReadPRG(addr uint16) uint8 {
	switch {
	case addr >= 0x8000:
		return m.rom.PRG[m.TranslatePRG(addr)]
	case addr >= 0x6000:
		if !m.wramEnabled {
			return 0
		}
		return m.prgram[addr-0x6000]
	}
	return 0
}

// WritePRG writes into the cartridge CPU window ($4020-$FFFF).
func (m *Mapper) WritePRG(addr uint16, val uint8) {
	switch {
	case addr >= 0x8000:
		m.WriteRegister(addr, val)
	case addr >= 0x6000:
		if m.wramEnabled {
			m.prgram[addr-0x6000] = val
		}
	default:
		modMapper.DebugZ("write to cartridge expansion area").
			String("mapper", m.desc.Name).
			Hex16("addr", addr).
			Hex8("val", val).
			End()
	}
}

func (m *Mapper) ReadCHR(addr uint16) uint8 {
	return m.chr[m.TranslateCHR(addr)]
}

// WriteCHR writes to CHR RAM. Writes to CHR ROM are ignored.
func (m *Mapper) WriteCHR(addr uint16, val uint8) {
	if m.chrRAM {
		m.chr[m.TranslateCHR(addr)] = val
	}
}

// HasCHRRAM reports whether the pattern tables are backed by RAM.
func (m *Mapper) HasCHRRAM() bool { return m.chrRAM }

// State returns the mapper state, for snapshots.
func (m *Mapper) State() snapshot.Mapper {
	st := snapshot.Mapper{
		Name:   m.desc.Name,
		Regs:   slices.Clone(m.c.regs()),
		PRGRAM: slices.Clone(m.prgram),
	}
	if m.chrRAM {
		st.CHRRAM = slices.Clone(m.chr)
	}
	return st
}

// SetState restores a state previously obtained with State.
func (m *Mapper) SetState(st snapshot.Mapper) error {
	if st.Name != m.desc.Name {
		return fmt.Errorf("snapshot mapper %q doesn't match cartridge mapper %q", st.Name, m.desc.Name)
	}
	if len(st.PRGRAM) != len(m.prgram) {
		return fmt.Errorf("PRG RAM size mismatch: %d, want %d", len(st.PRGRAM), len(m.prgram))
	}
	if m.chrRAM && len(st.CHRRAM) != len(m.chr) {
		return fmt.Errorf("CHR RAM size mismatch: %d, want %d", len(st.CHRRAM), len(m.chr))
	}
	if err := m.c.setRegs(st.Regs); err != nil {
		return fmt.Errorf("mapper %s: %w", m.desc.Name, err)
	}
	copy(m.prgram, st.PRGRAM)
	if m.chrRAM {
		copy(m.chr, st.CHRRAM)
	}
	return nil
}

func wantRegs(regs []uint8, n int) error {
	if len(regs) != n {
		return fmt.Errorf("got %d registers, want %d", len(regs), n)
	}
	return nil
}
