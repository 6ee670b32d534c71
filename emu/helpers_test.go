package emu

import (
	"testing"

	"nescore/emu/log"
	"nescore/ines"
)

// testProgram enables NMI and rendering, then loops forever. The NMI handler
// counts frames in $10, stores the state of the A button of the first
// joypad in $11 and sets the backdrop color to the frame count.
var (
	testProgram = []byte{
		0x78,             // SEI
		0xA2, 0xFF,       // LDX #$FF
		0x9A,             // TXS
		0xA9, 0x80,       // LDA #$80
		0x8D, 0x00, 0x20, // STA $2000
		0xA9, 0x1E,       // LDA #$1E
		0x8D, 0x01, 0x20, // STA $2001
		0x4C, 0x0E, 0x80, // JMP $800E
	}

	testNMIHandler = []byte{
		0xE6, 0x10,       // INC $10
		0xA9, 0x01,       // LDA #$01
		0x8D, 0x16, 0x40, // STA $4016
		0xA9, 0x00,       // LDA #$00
		0x8D, 0x16, 0x40, // STA $4016
		0xAD, 0x16, 0x40, // LDA $4016
		0x29, 0x01,       // AND #$01
		0x85, 0x11,       // STA $11
		0xA9, 0x3F,       // LDA #$3F
		0x8D, 0x06, 0x20, // STA $2006
		0xA9, 0x00,       // LDA #$00
		0x8D, 0x06, 0x20, // STA $2006
		0xA5, 0x10,       // LDA $10
		0x29, 0x3F,       // AND #$3F
		0x8D, 0x07, 0x20, // STA $2007
		0xA9, 0x00,       // LDA #$00
		0x8D, 0x05, 0x20, // STA $2005
		0x8D, 0x05, 0x20, // STA $2005
		0xA9, 0x80,       // LDA #$80
		0x8D, 0x00, 0x20, // STA $2000
		0x40,             // RTI
	}
)

// buildROM returns an NROM image with prog at $8000 (reset vector) and nmi
// at $9000 (NMI vector).
func buildROM(prog, nmi []byte) []byte {
	prg := make([]byte, 2*ines.PRGBankSize)
	copy(prg[0x0000:], prog)
	copy(prg[0x1000:], nmi)
	// NMI: $9000, RESET and IRQ: $8000
	copy(prg[0x7FFA:], []byte{0x00, 0x90, 0x00, 0x80, 0x00, 0x80})
	return ines.Build(0, ines.HorzMirroring, false, prg, make([]byte, ines.CHRBankSize))
}

func loadTestNES(t testing.TB, opts ...Option) *NES {
	t.Helper()
	log.Disable()

	nes, err := LoadCartridge(buildROM(testProgram, testNMIHandler), opts...)
	if err != nil {
		t.Fatal(err)
	}
	return nes
}

func runFrames(t testing.TB, nes *NES, n int) {
	t.Helper()
	for range n {
		if _, err := nes.RunUntilFrame(); err != nil {
			t.Fatal(err)
		}
	}
}
