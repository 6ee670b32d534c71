package hwio

// Mem is a linear memory area that can be mapped into a Table. When VSize is
// bigger than the physical size, the area is mirrored; the physical size
// must then be a power of 2.
type Mem struct {
	Name  string // name of the memory area (for debugging)
	Data  []byte // actual memory buffer
	VSize int    // virtual size of the memory
}

// BankIO8 returns the adaptor mapped in tables.
func (m *Mem) BankIO8() BankIO8 {
	if len(m.Data) == 0 || len(m.Data)&(len(m.Data)-1) != 0 {
		panic("memory buffer size is not pow2")
	}
	return &mem{buf: m.Data, mask: uint16(len(m.Data) - 1)}
}

type mem struct {
	buf  []byte
	mask uint16
}

func (m *mem) Read8(addr uint16, _ bool) uint8 {
	return m.buf[addr&m.mask]
}

func (m *mem) Write8(addr uint16, val uint8) {
	m.buf[addr&m.mask] = val
}
