package hwio

import (
	"fmt"

	"nescore/emu/log"
)

// BankIO8 is implemented by anything that can be mapped into a Table.
type BankIO8 interface {
	// Read8 reads a byte from the given address. If peek is true, the read
	// must not have any side effects (debugging/tracing).
	Read8(addr uint16, peek bool) uint8
	Write8(addr uint16, val uint8)
}

// Table is a 16-bit address space where each address is served by exactly
// one BankIO8. Addresses nobody mapped are forwarded to Unmapped, if set.
// The table only grows up to the highest mapped address.
type Table struct {
	Name     string
	Unmapped BankIO8

	table8 []BankIO8
}

func NewTable(name string) *Table {
	t := new(Table)
	t.Name = name
	return t
}

func (t *Table) Reset() {
	t.table8 = nil
}

// MapBank maps a register bank, that is a structure containing multiple
// Reg8, Mem or Device fields. For this to work, fields must have a "hwio"
// struct tag (see InitRegs), containing at least:
//
//	offset=0x12     Byte-offset within the register bank at which this
//	                register is mapped. Fields without offset are ignored.
//
//	bank=NN         Ordinal bank number (default to zero). A structure can
//	                expose multiple banks by grouping fields by number.
func (t *Table) MapBank(addr uint16, bank any, bankNum int) {
	regs, err := bankGetRegs(bank, bankNum)
	if err != nil {
		panic(err)
	}

	for _, reg := range regs {
		switch r := reg.regPtr.(type) {
		case *Mem:
			t.MapMem(addr+reg.offset, r)
		case *Reg8:
			t.MapReg8(addr+reg.offset, r)
		case *Device:
			t.MapDevice(addr+reg.offset, r)
		default:
			panic(fmt.Errorf("invalid reg type: %T", r))
		}
	}
}

func (t *Table) mapBus8(addr uint16, size int, io BankIO8) {
	end := int(addr) + size
	if size <= 0 || end > 0x10000 {
		panic(fmt.Errorf("%s: invalid mapping at %04X, size %d", t.Name, addr, size))
	}
	if end > len(t.table8) {
		t.table8 = append(t.table8, make([]BankIO8, end-len(t.table8))...)
	}
	for i := int(addr); i < end; i++ {
		t.table8[i] = io
	}
}

func (t *Table) MapReg8(addr uint16, io *Reg8) {
	t.mapBus8(addr, 1, io)
}

func (t *Table) MapDevice(addr uint16, dev *Device) {
	log.ModHwIo.DebugZ("mapping device").
		Hex16("addr", addr).
		Int("size", dev.Size).
		String("name", dev.Name).
		String("bus", t.Name).
		End()

	t.mapBus8(addr, dev.Size, dev)
}

func (t *Table) MapMem(addr uint16, mem *Mem) {
	log.ModHwIo.DebugZ("mapping mem").
		Hex16("addr", addr).
		Int("vsize", mem.VSize).
		String("area", mem.Name).
		String("bus", t.Name).
		End()

	t.mapBus8(addr, mem.VSize, mem.BankIO8())
}

func (t *Table) lookup(addr uint16) BankIO8 {
	if int(addr) < len(t.table8) {
		return t.table8[addr]
	}
	return nil
}

func (t *Table) Read8(addr uint16, peek bool) uint8 {
	io := t.lookup(addr)
	if io == nil {
		if t.Unmapped != nil {
			return t.Unmapped.Read8(addr, peek)
		}
		return 0
	}
	return io.Read8(addr, peek)
}

// Peek8 reads addr without side effects.
func (t *Table) Peek8(addr uint16) uint8 {
	return t.Read8(addr, true)
}

func (t *Table) Write8(addr uint16, val uint8) {
	io := t.lookup(addr)
	if io == nil {
		if t.Unmapped != nil {
			t.Unmapped.Write8(addr, val)
		}
		return
	}
	io.Write8(addr, val)
}
