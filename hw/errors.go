package hw

import "fmt"

// DecodeError is returned when the CPU fetches an opcode it can't execute.
// The emulation session can't continue.
type DecodeError struct {
	PC     uint16
	Opcode uint8
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unknown opcode 0x%02X at PC=0x%04X", e.Opcode, e.PC)
}

// AddressError is returned when the CPU accesses an address no device
// responds to. It reveals a hole in the memory map.
type AddressError struct {
	Addr  uint16
	Write bool
}

func (e *AddressError) Error() string {
	op := "read from"
	if e.Write {
		op = "write to"
	}
	return fmt.Sprintf("%s unmapped address 0x%04X", op, e.Addr)
}
