package hw

// addressing modes
type addrMode uint8

const (
	imp addrMode = iota // implied
	acc                 // accumulator
	imm                 // immediate
	zpg                 // zero page
	zpx                 // zero page,X
	zpy                 // zero page,Y
	abs                 // absolute
	abx                 // absolute,X
	aby                 // absolute,Y
	ind                 // (indirect)
	izx                 // (indirect,X)
	izy                 // (indirect),Y
	rel                 // relative
)

// size returns the instruction size in bytes, including the opcode.
func (m addrMode) size() int {
	switch m {
	case imp, acc:
		return 1
	case abs, abx, aby, ind:
		return 3
	}
	return 2
}

type opdef struct {
	name       string
	mode       addrMode
	cycles     uint8
	pagecross  bool // one more cycle when the effective address crosses a page
	unofficial bool
	exec       func(c *CPU, addr uint16)
}

func pagecrossed(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

// operand fetches the operand of the current instruction, PC pointing right
// after the opcode, and returns the effective address.
func (c *CPU) operand(mode addrMode) (addr uint16, crossed bool) {
	switch mode {
	case imp, acc:
		return 0, false
	case imm:
		addr = c.PC
		c.PC++
	case zpg:
		addr = uint16(c.Read8(c.PC))
		c.PC++
	case zpx:
		addr = uint16(c.Read8(c.PC) + c.X)
		c.PC++
	case zpy:
		addr = uint16(c.Read8(c.PC) + c.Y)
		c.PC++
	case abs:
		addr = c.read16(c.PC)
		c.PC += 2
	case abx:
		base := c.read16(c.PC)
		c.PC += 2
		addr = base + uint16(c.X)
		crossed = pagecrossed(base, addr)
	case aby:
		base := c.read16(c.PC)
		c.PC += 2
		addr = base + uint16(c.Y)
		crossed = pagecrossed(base, addr)
	case ind:
		// The 6502 doesn't carry into the high byte of the pointer: JMP
		// ($xxFF) reads the high byte from $xx00.
		ptr := c.read16(c.PC)
		c.PC += 2
		lo := c.Read8(ptr)
		hi := c.Read8(ptr&0xFF00 | uint16(uint8(ptr)+1))
		addr = uint16(hi)<<8 | uint16(lo)
	case izx:
		addr = c.read16zp(c.Read8(c.PC) + c.X)
		c.PC++
	case izy:
		base := c.read16zp(c.Read8(c.PC))
		c.PC++
		addr = base + uint16(c.Y)
		crossed = pagecrossed(base, addr)
	case rel:
		off := int8(c.Read8(c.PC))
		c.PC++
		addr = c.PC + uint16(off)
	}
	return addr, crossed
}

/* load/store */

func lda(c *CPU, addr uint16) {
	c.A = c.Read8(addr)
	c.P.checkNZ(c.A)
}

func ldx(c *CPU, addr uint16) {
	c.X = c.Read8(addr)
	c.P.checkNZ(c.X)
}

func ldy(c *CPU, addr uint16) {
	c.Y = c.Read8(addr)
	c.P.checkNZ(c.Y)
}

func sta(c *CPU, addr uint16) { c.Write8(addr, c.A) }
func stx(c *CPU, addr uint16) { c.Write8(addr, c.X) }
func sty(c *CPU, addr uint16) { c.Write8(addr, c.Y) }

/* transfers */

func tax(c *CPU, _ uint16) {
	c.X = c.A
	c.P.checkNZ(c.X)
}

func tay(c *CPU, _ uint16) {
	c.Y = c.A
	c.P.checkNZ(c.Y)
}

func tsx(c *CPU, _ uint16) {
	c.X = c.SP
	c.P.checkNZ(c.X)
}

func txa(c *CPU, _ uint16) {
	c.A = c.X
	c.P.checkNZ(c.A)
}

func tya(c *CPU, _ uint16) {
	c.A = c.Y
	c.P.checkNZ(c.A)
}

// TXS doesn't affect flags.
func txs(c *CPU, _ uint16) { c.SP = c.X }

/* stack */

func pha(c *CPU, _ uint16) { c.push8(c.A) }

func php(c *CPU, _ uint16) {
	c.push8(uint8(c.P | Break | Reserved))
}

func pla(c *CPU, _ uint16) {
	c.A = c.pull8()
	c.P.checkNZ(c.A)
}

func plp(c *CPU, _ uint16) {
	c.P = P(c.pull8())&^Break | Reserved
}

/* arithmetic and logic */

func (c *CPU) adc(val uint8) {
	sum := uint16(c.A) + uint16(val) + uint16(c.P.carry())
	c.P.checkCV(c.A, val, sum)
	c.A = uint8(sum)
	c.P.checkNZ(c.A)
}

func adc(c *CPU, addr uint16) { c.adc(c.Read8(addr)) }

// Decimal mode doesn't exist on the 2A03, SBC is ADC with the operand
// complemented.
func sbc(c *CPU, addr uint16) { c.adc(^c.Read8(addr)) }

func and(c *CPU, addr uint16) {
	c.A &= c.Read8(addr)
	c.P.checkNZ(c.A)
}

func ora(c *CPU, addr uint16) {
	c.A |= c.Read8(addr)
	c.P.checkNZ(c.A)
}

func eor(c *CPU, addr uint16) {
	c.A ^= c.Read8(addr)
	c.P.checkNZ(c.A)
}

func bit(c *CPU, addr uint16) {
	val := c.Read8(addr)
	c.P.set(Zero, c.A&val == 0)
	c.P.set(Overflow, val&0x40 != 0)
	c.P.set(Negative, val&0x80 != 0)
}

func (c *CPU) compare(reg, val uint8) {
	c.P.checkNZ(reg - val)
	c.P.set(Carry, reg >= val)
}

func cmpA(c *CPU, addr uint16) { c.compare(c.A, c.Read8(addr)) }
func cpx(c *CPU, addr uint16)  { c.compare(c.X, c.Read8(addr)) }
func cpy(c *CPU, addr uint16)  { c.compare(c.Y, c.Read8(addr)) }

/* increments and decrements */

func inc(c *CPU, addr uint16) {
	val := c.Read8(addr) + 1
	c.Write8(addr, val)
	c.P.checkNZ(val)
}

func dec(c *CPU, addr uint16) {
	val := c.Read8(addr) - 1
	c.Write8(addr, val)
	c.P.checkNZ(val)
}

func inx(c *CPU, _ uint16) {
	c.X++
	c.P.checkNZ(c.X)
}

func iny(c *CPU, _ uint16) {
	c.Y++
	c.P.checkNZ(c.Y)
}

func dex(c *CPU, _ uint16) {
	c.X--
	c.P.checkNZ(c.X)
}

func dey(c *CPU, _ uint16) {
	c.Y--
	c.P.checkNZ(c.Y)
}

/* shifts and rotates */

func (c *CPU) asl(val uint8) uint8 {
	c.P.set(Carry, val&0x80 != 0)
	val <<= 1
	c.P.checkNZ(val)
	return val
}

func (c *CPU) lsr(val uint8) uint8 {
	c.P.set(Carry, val&0x01 != 0)
	val >>= 1
	c.P.checkNZ(val)
	return val
}

func (c *CPU) rol(val uint8) uint8 {
	carry := c.P.carry()
	c.P.set(Carry, val&0x80 != 0)
	val = val<<1 | carry
	c.P.checkNZ(val)
	return val
}

func (c *CPU) ror(val uint8) uint8 {
	carry := c.P.carry()
	c.P.set(Carry, val&0x01 != 0)
	val = val>>1 | carry<<7
	c.P.checkNZ(val)
	return val
}

// rmw performs a read-modify-write on memory and returns the written value.
func (c *CPU) rmw(addr uint16, f func(uint8) uint8) uint8 {
	val := f(c.Read8(addr))
	c.Write8(addr, val)
	return val
}

func asl(c *CPU, addr uint16) { c.rmw(addr, c.asl) }
func lsr(c *CPU, addr uint16) { c.rmw(addr, c.lsr) }
func rol(c *CPU, addr uint16) { c.rmw(addr, c.rol) }
func ror(c *CPU, addr uint16) { c.rmw(addr, c.ror) }

func aslA(c *CPU, _ uint16) { c.A = c.asl(c.A) }
func lsrA(c *CPU, _ uint16) { c.A = c.lsr(c.A) }
func rolA(c *CPU, _ uint16) { c.A = c.rol(c.A) }
func rorA(c *CPU, _ uint16) { c.A = c.ror(c.A) }

/* jumps and calls */

func jmp(c *CPU, addr uint16) { c.PC = addr }

func jsr(c *CPU, addr uint16) {
	c.push16(c.PC - 1)
	c.PC = addr
}

func rts(c *CPU, _ uint16) {
	c.PC = c.pull16() + 1
}

func rti(c *CPU, _ uint16) {
	c.P = P(c.pull8())&^Break | Reserved
	c.PC = c.pull16()
}

// BRK is a 2 bytes instruction, the second byte being padding.
func brk(c *CPU, _ uint16) {
	c.push16(c.PC + 1)
	c.push8(uint8(c.P | Break | Reserved))
	c.P |= Interrupt
	c.PC = c.read16(IRQVector)
}

/* branches */

// branch jumps to addr if cond holds. A taken branch costs one more cycle,
// two if it lands on another page.
func (c *CPU) branch(cond bool, addr uint16) {
	if !cond {
		return
	}
	c.extra++
	if pagecrossed(c.PC, addr) {
		c.extra++
	}
	c.PC = addr
}

func bcc(c *CPU, addr uint16) { c.branch(!c.P.has(Carry), addr) }
func bcs(c *CPU, addr uint16) { c.branch(c.P.has(Carry), addr) }
func bne(c *CPU, addr uint16) { c.branch(!c.P.has(Zero), addr) }
func beq(c *CPU, addr uint16) { c.branch(c.P.has(Zero), addr) }
func bpl(c *CPU, addr uint16) { c.branch(!c.P.has(Negative), addr) }
func bmi(c *CPU, addr uint16) { c.branch(c.P.has(Negative), addr) }
func bvc(c *CPU, addr uint16) { c.branch(!c.P.has(Overflow), addr) }
func bvs(c *CPU, addr uint16) { c.branch(c.P.has(Overflow), addr) }

/* flags */

func clc(c *CPU, _ uint16) { c.P &^= Carry }
func cld(c *CPU, _ uint16) { c.P &^= Decimal }
func cli(c *CPU, _ uint16) { c.P &^= Interrupt }
func clv(c *CPU, _ uint16) { c.P &^= Overflow }
func sec(c *CPU, _ uint16) { c.P |= Carry }
func sed(c *CPU, _ uint16) { c.P |= Decimal }
func sei(c *CPU, _ uint16) { c.P |= Interrupt }

func nop(*CPU, uint16) {}

// nopRead is a multi-byte NOP, it still reads its operand.
func nopRead(c *CPU, addr uint16) { c.Read8(addr) }

/* unofficial opcodes */

func lax(c *CPU, addr uint16) {
	c.A = c.Read8(addr)
	c.X = c.A
	c.P.checkNZ(c.A)
}

func sax(c *CPU, addr uint16) { c.Write8(addr, c.A&c.X) }

func dcp(c *CPU, addr uint16) {
	val := c.rmw(addr, func(v uint8) uint8 { return v - 1 })
	c.compare(c.A, val)
}

func isb(c *CPU, addr uint16) {
	val := c.rmw(addr, func(v uint8) uint8 { return v + 1 })
	c.adc(^val)
}

func slo(c *CPU, addr uint16) {
	c.A |= c.rmw(addr, c.asl)
	c.P.checkNZ(c.A)
}

func rla(c *CPU, addr uint16) {
	c.A &= c.rmw(addr, c.rol)
	c.P.checkNZ(c.A)
}

func sre(c *CPU, addr uint16) {
	c.A ^= c.rmw(addr, c.lsr)
	c.P.checkNZ(c.A)
}

func rra(c *CPU, addr uint16) {
	c.adc(c.rmw(addr, c.ror))
}

func anc(c *CPU, addr uint16) {
	c.A &= c.Read8(addr)
	c.P.checkNZ(c.A)
	c.P.set(Carry, c.A&0x80 != 0)
}

func alr(c *CPU, addr uint16) {
	c.A = c.lsr(c.A & c.Read8(addr))
}

func arr(c *CPU, addr uint16) {
	c.A &= c.Read8(addr)
	c.A = c.A>>1 | c.P.carry()<<7
	c.P.checkNZ(c.A)
	c.P.set(Carry, c.A&0x40 != 0)
	c.P.set(Overflow, (c.A>>6^c.A>>5)&1 != 0)
}

func axs(c *CPU, addr uint16) {
	val := c.Read8(addr)
	ax := c.A & c.X
	c.X = ax - val
	c.P.set(Carry, ax >= val)
	c.P.checkNZ(c.X)
}

func las(c *CPU, addr uint16) {
	val := c.Read8(addr) & c.SP
	c.A = val
	c.X = val
	c.SP = val
	c.P.checkNZ(val)
}

// unstable opcodes have a behavior depending on analog effects and differing
// between chip revisions. They're executed as NOPs of the right size and
// duration.
func unstable(*CPU, uint16) {}

// The 12 missing entries (KIL/JAM) lock up the CPU.
var ops = [256]opdef{
	0x00: {"BRK", imp, 7, false, false, brk},
	0x01: {"ORA", izx, 6, false, false, ora},
	0x03: {"SLO", izx, 8, false, true, slo},
	0x04: {"NOP", zpg, 3, false, true, nopRead},
	0x05: {"ORA", zpg, 3, false, false, ora},
	0x06: {"ASL", zpg, 5, false, false, asl},
	0x07: {"SLO", zpg, 5, false, true, slo},
	0x08: {"PHP", imp, 3, false, false, php},
	0x09: {"ORA", imm, 2, false, false, ora},
	0x0A: {"ASL", acc, 2, false, false, aslA},
	0x0B: {"ANC", imm, 2, false, true, anc},
	0x0C: {"NOP", abs, 4, false, true, nopRead},
	0x0D: {"ORA", abs, 4, false, false, ora},
	0x0E: {"ASL", abs, 6, false, false, asl},
	0x0F: {"SLO", abs, 6, false, true, slo},
	0x10: {"BPL", rel, 2, false, false, bpl},
	0x11: {"ORA", izy, 5, true, false, ora},
	0x13: {"SLO", izy, 8, false, true, slo},
	0x14: {"NOP", zpx, 4, false, true, nopRead},
	0x15: {"ORA", zpx, 4, false, false, ora},
	0x16: {"ASL", zpx, 6, false, false, asl},
	0x17: {"SLO", zpx, 6, false, true, slo},
	0x18: {"CLC", imp, 2, false, false, clc},
	0x19: {"ORA", aby, 4, true, false, ora},
	0x1A: {"NOP", imp, 2, false, true, nop},
	0x1B: {"SLO", aby, 7, false, true, slo},
	0x1C: {"NOP", abx, 4, true, true, nopRead},
	0x1D: {"ORA", abx, 4, true, false, ora},
	0x1E: {"ASL", abx, 7, false, false, asl},
	0x1F: {"SLO", abx, 7, false, true, slo},
	0x20: {"JSR", abs, 6, false, false, jsr},
	0x21: {"AND", izx, 6, false, false, and},
	0x23: {"RLA", izx, 8, false, true, rla},
	0x24: {"BIT", zpg, 3, false, false, bit},
	0x25: {"AND", zpg, 3, false, false, and},
	0x26: {"ROL", zpg, 5, false, false, rol},
	0x27: {"RLA", zpg, 5, false, true, rla},
	0x28: {"PLP", imp, 4, false, false, plp},
	0x29: {"AND", imm, 2, false, false, and},
	0x2A: {"ROL", acc, 2, false, false, rolA},
	0x2B: {"ANC", imm, 2, false, true, anc},
	0x2C: {"BIT", abs, 4, false, false, bit},
	0x2D: {"AND", abs, 4, false, false, and},
	0x2E: {"ROL", abs, 6, false, false, rol},
	0x2F: {"RLA", abs, 6, false, true, rla},
	0x30: {"BMI", rel, 2, false, false, bmi},
	0x31: {"AND", izy, 5, true, false, and},
	0x33: {"RLA", izy, 8, false, true, rla},
	0x34: {"NOP", zpx, 4, false, true, nopRead},
	0x35: {"AND", zpx, 4, false, false, and},
	0x36: {"ROL", zpx, 6, false, false, rol},
	0x37: {"RLA", zpx, 6, false, true, rla},
	0x38: {"SEC", imp, 2, false, false, sec},
	0x39: {"AND", aby, 4, true, false, and},
	0x3A: {"NOP", imp, 2, false, true, nop},
	0x3B: {"RLA", aby, 7, false, true, rla},
	0x3C: {"NOP", abx, 4, true, true, nopRead},
	0x3D: {"AND", abx, 4, true, false, and},
	0x3E: {"ROL", abx, 7, false, false, rol},
	0x3F: {"RLA", abx, 7, false, true, rla},
	0x40: {"RTI", imp, 6, false, false, rti},
	0x41: {"EOR", izx, 6, false, false, eor},
	0x43: {"SRE", izx, 8, false, true, sre},
	0x44: {"NOP", zpg, 3, false, true, nopRead},
	0x45: {"EOR", zpg, 3, false, false, eor},
	0x46: {"LSR", zpg, 5, false, false, lsr},
	0x47: {"SRE", zpg, 5, false, true, sre},
	0x48: {"PHA", imp, 3, false, false, pha},
	0x49: {"EOR", imm, 2, false, false, eor},
	0x4A: {"LSR", acc, 2, false, false, lsrA},
	0x4B: {"ALR", imm, 2, false, true, alr},
	0x4C: {"JMP", abs, 3, false, false, jmp},
	0x4D: {"EOR", abs, 4, false, false, eor},
	0x4E: {"LSR", abs, 6, false, false, lsr},
	0x4F: {"SRE", abs, 6, false, true, sre},
	0x50: {"BVC", rel, 2, false, false, bvc},
	0x51: {"EOR", izy, 5, true, false, eor},
	0x53: {"SRE", izy, 8, false, true, sre},
	0x54: {"NOP", zpx, 4, false, true, nopRead},
	0x55: {"EOR", zpx, 4, false, false, eor},
	0x56: {"LSR", zpx, 6, false, false, lsr},
	0x57: {"SRE", zpx, 6, false, true, sre},
	0x58: {"CLI", imp, 2, false, false, cli},
	0x59: {"EOR", aby, 4, true, false, eor},
	0x5A: {"NOP", imp, 2, false, true, nop},
	0x5B: {"SRE", aby, 7, false, true, sre},
	0x5C: {"NOP", abx, 4, true, true, nopRead},
	0x5D: {"EOR", abx, 4, true, false, eor},
	0x5E: {"LSR", abx, 7, false, false, lsr},
	0x5F: {"SRE", abx, 7, false, true, sre},
	0x60: {"RTS", imp, 6, false, false, rts},
	0x61: {"ADC", izx, 6, false, false, adc},
	0x63: {"RRA", izx, 8, false, true, rra},
	0x64: {"NOP", zpg, 3, false, true, nopRead},
	0x65: {"ADC", zpg, 3, false, false, adc},
	0x66: {"ROR", zpg, 5, false, false, ror},
	0x67: {"RRA", zpg, 5, false, true, rra},
	0x68: {"PLA", imp, 4, false, false, pla},
	0x69: {"ADC", imm, 2, false, false, adc},
	0x6A: {"ROR", acc, 2, false, false, rorA},
	0x6B: {"ARR", imm, 2, false, true, arr},
	0x6C: {"JMP", ind, 5, false, false, jmp},
	0x6D: {"ADC", abs, 4, false, false, adc},
	0x6E: {"ROR", abs, 6, false, false, ror},
	0x6F: {"RRA", abs, 6, false, true, rra},
	0x70: {"BVS", rel, 2, false, false, bvs},
	0x71: {"ADC", izy, 5, true, false, adc},
	0x73: {"RRA", izy, 8, false, true, rra},
	0x74: {"NOP", zpx, 4, false, true, nopRead},
	0x75: {"ADC", zpx, 4, false, false, adc},
	0x76: {"ROR", zpx, 6, false, false, ror},
	0x77: {"RRA", zpx, 6, false, true, rra},
	0x78: {"SEI", imp, 2, false, false, sei},
	0x79: {"ADC", aby, 4, true, false, adc},
	0x7A: {"NOP", imp, 2, false, true, nop},
	0x7B: {"RRA", aby, 7, false, true, rra},
	0x7C: {"NOP", abx, 4, true, true, nopRead},
	0x7D: {"ADC", abx, 4, true, false, adc},
	0x7E: {"ROR", abx, 7, false, false, ror},
	0x7F: {"RRA", abx, 7, false, true, rra},
	0x80: {"NOP", imm, 2, false, true, nopRead},
	0x81: {"STA", izx, 6, false, false, sta},
	0x82: {"NOP", imm, 2, false, true, nopRead},
	0x83: {"SAX", izx, 6, false, true, sax},
	0x84: {"STY", zpg, 3, false, false, sty},
	0x85: {"STA", zpg, 3, false, false, sta},
	0x86: {"STX", zpg, 3, false, false, stx},
	0x87: {"SAX", zpg, 3, false, true, sax},
	0x88: {"DEY", imp, 2, false, false, dey},
	0x89: {"NOP", imm, 2, false, true, nopRead},
	0x8A: {"TXA", imp, 2, false, false, txa},
	0x8B: {"ANE", imm, 2, false, true, unstable},
	0x8C: {"STY", abs, 4, false, false, sty},
	0x8D: {"STA", abs, 4, false, false, sta},
	0x8E: {"STX", abs, 4, false, false, stx},
	0x8F: {"SAX", abs, 4, false, true, sax},
	0x90: {"BCC", rel, 2, false, false, bcc},
	0x91: {"STA", izy, 6, false, false, sta},
	0x93: {"SHA", izy, 6, false, true, unstable},
	0x94: {"STY", zpx, 4, false, false, sty},
	0x95: {"STA", zpx, 4, false, false, sta},
	0x96: {"STX", zpy, 4, false, false, stx},
	0x97: {"SAX", zpy, 4, false, true, sax},
	0x98: {"TYA", imp, 2, false, false, tya},
	0x99: {"STA", aby, 5, false, false, sta},
	0x9A: {"TXS", imp, 2, false, false, txs},
	0x9B: {"TAS", aby, 5, false, true, unstable},
	0x9C: {"SHY", abx, 5, false, true, unstable},
	0x9D: {"STA", abx, 5, false, false, sta},
	0x9E: {"SHX", aby, 5, false, true, unstable},
	0x9F: {"SHA", aby, 5, false, true, unstable},
	0xA0: {"LDY", imm, 2, false, false, ldy},
	0xA1: {"LDA", izx, 6, false, false, lda},
	0xA2: {"LDX", imm, 2, false, false, ldx},
	0xA3: {"LAX", izx, 6, false, true, lax},
	0xA4: {"LDY", zpg, 3, false, false, ldy},
	0xA5: {"LDA", zpg, 3, false, false, lda},
	0xA6: {"LDX", zpg, 3, false, false, ldx},
	0xA7: {"LAX", zpg, 3, false, true, lax},
	0xA8: {"TAY", imp, 2, false, false, tay},
	0xA9: {"LDA", imm, 2, false, false, lda},
	0xAA: {"TAX", imp, 2, false, false, tax},
	0xAB: {"LXA", imm, 2, false, true, unstable},
	0xAC: {"LDY", abs, 4, false, false, ldy},
	0xAD: {"LDA", abs, 4, false, false, lda},
	0xAE: {"LDX", abs, 4, false, false, ldx},
	0xAF: {"LAX", abs, 4, false, true, lax},
	0xB0: {"BCS", rel, 2, false, false, bcs},
	0xB1: {"LDA", izy, 5, true, false, lda},
	0xB3: {"LAX", izy, 5, true, true, lax},
	0xB4: {"LDY", zpx, 4, false, false, ldy},
	0xB5: {"LDA", zpx, 4, false, false, lda},
	0xB6: {"LDX", zpy, 4, false, false, ldx},
	0xB7: {"LAX", zpy, 4, false, true, lax},
	0xB8: {"CLV", imp, 2, false, false, clv},
	0xB9: {"LDA", aby, 4, true, false, lda},
	0xBA: {"TSX", imp, 2, false, false, tsx},
	0xBB: {"LAS", aby, 4, true, true, las},
	0xBC: {"LDY", abx, 4, true, false, ldy},
	0xBD: {"LDA", abx, 4, true, false, lda},
	0xBE: {"LDX", aby, 4, true, false, ldx},
	0xBF: {"LAX", aby, 4, true, true, lax},
	0xC0: {"CPY", imm, 2, false, false, cpy},
	0xC1: {"CMP", izx, 6, false, false, cmpA},
	0xC2: {"NOP", imm, 2, false, true, nopRead},
	0xC3: {"DCP", izx, 8, false, true, dcp},
	0xC4: {"CPY", zpg, 3, false, false, cpy},
	0xC5: {"CMP", zpg, 3, false, false, cmpA},
	0xC6: {"DEC", zpg, 5, false, false, dec},
	0xC7: {"DCP", zpg, 5, false, true, dcp},
	0xC8: {"INY", imp, 2, false, false, iny},
	0xC9: {"CMP", imm, 2, false, false, cmpA},
	0xCA: {"DEX", imp, 2, false, false, dex},
	0xCB: {"AXS", imm, 2, false, true, axs},
	0xCC: {"CPY", abs, 4, false, false, cpy},
	0xCD: {"CMP", abs, 4, false, false, cmpA},
	0xCE: {"DEC", abs, 6, false, false, dec},
	0xCF: {"DCP", abs, 6, false, true, dcp},
	0xD0: {"BNE", rel, 2, false, false, bne},
	0xD1: {"CMP", izy, 5, true, false, cmpA},
	0xD3: {"DCP", izy, 8, false, true, dcp},
	0xD4: {"NOP", zpx, 4, false, true, nopRead},
	0xD5: {"CMP", zpx, 4, false, false, cmpA},
	0xD6: {"DEC", zpx, 6, false, false, dec},
	0xD7: {"DCP", zpx, 6, false, true, dcp},
	0xD8: {"CLD", imp, 2, false, false, cld},
	0xD9: {"CMP", aby, 4, true, false, cmpA},
	0xDA: {"NOP", imp, 2, false, true, nop},
	0xDB: {"DCP", aby, 7, false, true, dcp},
	0xDC: {"NOP", abx, 4, true, true, nopRead},
	0xDD: {"CMP", abx, 4, true, false, cmpA},
	0xDE: {"DEC", abx, 7, false, false, dec},
	0xDF: {"DCP", abx, 7, false, true, dcp},
	0xE0: {"CPX", imm, 2, false, false, cpx},
	0xE1: {"SBC", izx, 6, false, false, sbc},
	0xE2: {"NOP", imm, 2, false, true, nopRead},
	0xE3: {"ISB", izx, 8, false, true, isb},
	0xE4: {"CPX", zpg, 3, false, false, cpx},
	0xE5: {"SBC", zpg, 3, false, false, sbc},
	0xE6: {"INC", zpg, 5, false, false, inc},
	0xE7: {"ISB", zpg, 5, false, true, isb},
	0xE8: {"INX", imp, 2, false, false, inx},
	0xE9: {"SBC", imm, 2, false, false, sbc},
	0xEA: {"NOP", imp, 2, false, false, nop},
	0xEB: {"SBC", imm, 2, false, true, sbc},
	0xEC: {"CPX", abs, 4, false, false, cpx},
	0xED: {"SBC", abs, 4, false, false, sbc},
	0xEE: {"INC", abs, 6, false, false, inc},
	0xEF: {"ISB", abs, 6, false, true, isb},
	0xF0: {"BEQ", rel, 2, false, false, beq},
	0xF1: {"SBC", izy, 5, true, false, sbc},
	0xF3: {"ISB", izy, 8, false, true, isb},
	0xF4: {"NOP", zpx, 4, false, true, nopRead},
	0xF5: {"SBC", zpx, 4, false, false, sbc},
	0xF6: {"INC", zpx, 6, false, false, inc},
	0xF7: {"ISB", zpx, 6, false, true, isb},
	0xF8: {"SED", imp, 2, false, false, sed},
	0xF9: {"SBC", aby, 4, true, false, sbc},
	0xFA: {"NOP", imp, 2, false, true, nop},
	0xFB: {"ISB", aby, 7, false, true, isb},
	0xFC: {"NOP", abx, 4, true, true, nopRead},
	0xFD: {"SBC", abx, 4, true, false, sbc},
	0xFE: {"INC", abx, 7, false, false, inc},
	0xFF: {"ISB", abx, 7, false, true, isb},
}
