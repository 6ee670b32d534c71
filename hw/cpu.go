package hw

import (
	"io"

	"nescore/emu/log"
	"nescore/hw/snapshot"
)

// Locations reserved for vector pointers.
const (
	NMIVector   = uint16(0xFFFA) // Non-Maskable Interrupt
	ResetVector = uint16(0xFFFC) // Reset
	IRQVector   = uint16(0xFFFE) // Interrupt Request
)

// CPUBus is the CPU view of the rest of the system. It is handed to the CPU for
// the duration of a single step.
type CPUBus interface {
	Read8(addr uint16) uint8
	Write8(addr uint16, val uint8)

	// Peek8 reads without side effects (tracing).
	Peek8(addr uint16) uint8

	// Tick is called after each instruction with the number of cycles it
	// took. It returns the number of extra cycles the CPU has been stalled
	// for (DMA).
	Tick(cycles int) int

	// NMIPending reports whether an NMI is waiting to be serviced, AckNMI
	// acknowledges it.
	NMIPending() bool
	AckNMI()

	// Err reports a fatal error which occurred during the last accesses.
	Err() error
}

// CPU is the 2A03 CPU core: a 6502 without decimal mode.
type CPU struct {
	Cycles int64 // CPU cycles

	// cpu registers
	A, X, Y, SP uint8
	PC          uint16
	P           P

	bus   CPUBus // only valid during Step
	extra int    // additional cycles of the current instruction

	// Non-nil when execution tracing is enabled.
	tracer *tracer

	halted error
}

// NewCPU creates a new CPU at power-up state.
func NewCPU() *CPU {
	return &CPU{
		SP: 0xFD,
		P:  Interrupt | Reserved,
	}
}

// Reset reinitializes the CPU and loads the program counter from the reset
// vector. A hard reset (power up) also clears registers.
func (c *CPU) Reset(bus CPUBus, soft bool) {
	if soft {
		c.SP -= 0x03
		c.P |= Interrupt
	} else {
		c.A = 0x00
		c.X = 0x00
		c.Y = 0x00
		c.SP = 0xFD
		c.P = Interrupt | Reserved
	}
	c.halted = nil

	c.bus = bus
	c.PC = c.read16(ResetVector)
	c.bus = nil

	// The reset sequence takes 7 cycles before the first instruction.
	c.Cycles = 0
	c.Cycles += int64(7 + bus.Tick(7))

	log.ModCPU.InfoZ("reset").
		Bool("soft", soft).
		Hex16("PC", c.PC).
		End()
}

// Step executes a single instruction, or services a pending NMI, and returns
// the number of cycles it took. Once Step returned an error, the CPU is
// halted and will keep returning the same error until reset.
func (c *CPU) Step(bus CPUBus) (int, error) {
	if c.halted != nil {
		return 0, c.halted
	}

	c.bus = bus
	defer func() { c.bus = nil }()

	var cycles int
	if bus.NMIPending() {
		bus.AckNMI()
		c.nmi()
		cycles = 7
	} else {
		if c.tracer != nil {
			c.traceOp()
		}

		pc := c.PC
		opcode := bus.Read8(pc)
		if err := bus.Err(); err != nil {
			return 0, c.halt(err, opcode)
		}
		op := &ops[opcode]
		if op.exec == nil {
			return 0, c.halt(&DecodeError{PC: pc, Opcode: opcode}, opcode)
		}

		c.PC++
		addr, crossed := c.operand(op.mode)
		c.extra = 0
		op.exec(c, addr)

		cycles = int(op.cycles) + c.extra
		if crossed && op.pagecross {
			cycles++
		}
	}

	cycles += bus.Tick(cycles)
	c.Cycles += int64(cycles)

	if err := bus.Err(); err != nil {
		return cycles, c.halt(err, 0)
	}
	return cycles, nil
}

func (c *CPU) halt(err error, opcode uint8) error {
	c.halted = err
	log.ModCPU.WarnZ("CPU halted").
		Hex16("PC", c.PC).
		Hex8("opcode", opcode).
		Error("err", err).
		End()
	return err
}

// Halted returns the error which halted the CPU, if any.
func (c *CPU) Halted() error {
	return c.halted
}

func (c *CPU) traceOp() {
	state := cpuState{
		A:     c.A,
		X:     c.X,
		Y:     c.Y,
		P:     c.P,
		SP:    c.SP,
		Clock: c.Cycles,
		PC:    c.PC,
	}
	if pp, ok := c.bus.(interface{ PPUPosition() (int, int) }); ok {
		state.Scanline, state.PPUCycle = pp.PPUPosition()
	}
	c.tracer.write(state)
}

func (c *CPU) Read8(addr uint16) uint8 {
	return c.bus.Read8(addr)
}

func (c *CPU) Write8(addr uint16, val uint8) {
	c.bus.Write8(addr, val)
}

func (c *CPU) read16(addr uint16) uint16 {
	lo := c.bus.Read8(addr)
	hi := c.bus.Read8(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// read16zp reads a pointer in zero page, wrapping around within it.
func (c *CPU) read16zp(addr uint8) uint16 {
	lo := c.bus.Read8(uint16(addr))
	hi := c.bus.Read8(uint16(addr + 1))
	return uint16(hi)<<8 | uint16(lo)
}

/* stack operations */

func (c *CPU) push8(val uint8) {
	top := uint16(c.SP) + 0x0100
	c.Write8(top, val)
	c.SP -= 1
}

func (c *CPU) push16(val uint16) {
	c.push8(uint8(val >> 8))
	c.push8(uint8(val & 0xff))
}

func (c *CPU) pull8() uint8 {
	c.SP++
	top := uint16(c.SP) + 0x0100
	return c.Read8(top)
}

func (c *CPU) pull16() uint16 {
	lo := c.pull8()
	hi := c.pull8()
	return uint16(hi)<<8 | uint16(lo)
}

/* interrupt handling */

func (c *CPU) nmi() {
	prevpc := c.PC
	c.push16(c.PC)
	c.push8(uint8(c.P&^Break | Reserved))
	c.P |= Interrupt
	c.PC = c.read16(NMIVector)

	log.ModCPU.DebugZ("NMI").
		Hex16("from", prevpc).
		Hex16("to", c.PC).
		End()
}

/* tracing */

// SetTraceOutput enables the execution trace, written to w before each
// instruction. A nil writer disables it.
func (c *CPU) SetTraceOutput(w io.Writer) {
	if w == nil {
		c.tracer = nil
		return
	}
	c.tracer = &tracer{w: w, d: c}
}

func (c *CPU) State() snapshot.CPU {
	return snapshot.CPU{
		PC:     c.PC,
		SP:     c.SP,
		P:      uint8(c.P),
		A:      c.A,
		X:      c.X,
		Y:      c.Y,
		Cycles: c.Cycles,
	}
}

func (c *CPU) SetState(st snapshot.CPU) {
	c.PC = st.PC
	c.SP = st.SP
	c.P = P(st.P)
	c.A = st.A
	c.X = st.X
	c.Y = st.Y
	c.Cycles = st.Cycles
	c.halted = nil
}
