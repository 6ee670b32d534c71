package hw

import "fmt"

// Disasm disassembles the instruction at pc, without side effects. Must be
// called while a bus is attached (i.e during Step).
func (c *CPU) Disasm(pc uint16) DisasmOp {
	return disasm(c.bus.Peek8, pc)
}

// DisasmBus disassembles the instruction at pc using the given bus.
func DisasmBus(bus CPUBus, pc uint16) DisasmOp {
	return disasm(bus.Peek8, pc)
}

func disasm(peek func(uint16) uint8, pc uint16) DisasmOp {
	opcode := peek(pc)
	op := &ops[opcode]
	if op.exec == nil {
		return DisasmOp{
			PC:     pc,
			Buf:    []byte{opcode},
			Opcode: "*JAM",
		}
	}

	size := op.mode.size()
	buf := make([]byte, size)
	for i := range size {
		buf[i] = peek(pc + uint16(i))
	}

	name := op.name
	if op.unofficial {
		name = "*" + name
	}

	var oper string
	switch op.mode {
	case acc:
		oper = "A"
	case imm:
		oper = fmt.Sprintf("#$%02X", buf[1])
	case zpg:
		oper = fmt.Sprintf("$%02X", buf[1])
	case zpx:
		oper = fmt.Sprintf("$%02X,X", buf[1])
	case zpy:
		oper = fmt.Sprintf("$%02X,Y", buf[1])
	case abs:
		oper = formatAddr(uint16(buf[2])<<8 | uint16(buf[1]))
	case abx:
		oper = formatAddr(uint16(buf[2])<<8|uint16(buf[1])) + ",X"
	case aby:
		oper = formatAddr(uint16(buf[2])<<8|uint16(buf[1])) + ",Y"
	case ind:
		oper = fmt.Sprintf("($%04X)", uint16(buf[2])<<8|uint16(buf[1]))
	case izx:
		oper = fmt.Sprintf("($%02X,X)", buf[1])
	case izy:
		oper = fmt.Sprintf("($%02X),Y", buf[1])
	case rel:
		oper = fmt.Sprintf("$%04X", pc+2+uint16(int8(buf[1])))
	}

	return DisasmOp{
		PC:     pc,
		Buf:    buf,
		Opcode: name,
		Oper:   oper,
	}
}
