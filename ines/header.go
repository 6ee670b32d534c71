package ines

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// NTMirroring is the nametable mirroring mode.
type NTMirroring uint8

const (
	HorzMirroring NTMirroring = iota
	VertMirroring
	FourScreen
	OnlyAScreen
	OnlyBScreen
)

func (m NTMirroring) String() string {
	switch m {
	case HorzMirroring:
		return "horizontal"
	case VertMirroring:
		return "vertical"
	case FourScreen:
		return "four-screen"
	case OnlyAScreen:
		return "single-screen A"
	case OnlyBScreen:
		return "single-screen B"
	}
	return fmt.Sprintf("NTMirroring(%d)", uint8(m))
}

type header struct {
	raw   [HeaderSize]byte
	prgsz int
	chrsz int
}

func (hdr *header) decode(p []byte) error {
	if len(p) < HeaderSize {
		return fmt.Errorf("%w: header is %d bytes, want %d", ErrTruncated, len(p), HeaderSize)
	}
	if string(p[:4]) != Magic {
		return fmt.Errorf("%w: % x", ErrBadMagic, p[:4])
	}
	copy(hdr.raw[:], p[:HeaderSize])

	if hdr.IsNES20() {
		return fmt.Errorf("%w: NES 2.0 header", ErrUnsupportedFormat)
	}
	if hdr.raw[4] == 0 {
		return ErrNoPRG
	}
	hdr.prgsz = int(hdr.raw[4]) * PRGBankSize
	hdr.chrsz = int(hdr.raw[5]) * CHRBankSize
	return nil
}

// Build returns an iNES image made of the given sections, which sizes must
// be multiples of the bank sizes. Mostly useful to craft cartridges in
// memory.
func Build(mapper uint16, m NTMirroring, battery bool, prg, chr []byte) []byte {
	raw := make([]byte, HeaderSize, HeaderSize+len(prg)+len(chr))
	copy(raw, Magic)
	raw[4] = uint8(len(prg) / PRGBankSize)
	raw[5] = uint8(len(chr) / CHRBankSize)
	raw[6] = uint8(mapper&0x0F) << 4
	raw[7] = uint8(mapper & 0xF0)
	switch m {
	case VertMirroring:
		raw[6] |= 0x01
	case FourScreen:
		raw[6] |= 0x08
	}
	if battery {
		raw[6] |= 0x02
	}
	raw = append(raw, prg...)
	return append(raw, chr...)
}

// HasTrainer indicates the presence of a trainer section in the rom.
func (hdr *header) HasTrainer() bool {
	return hdr.raw[6]&0x04 != 0
}

// HasPersistent indicates the presence of battery-backed memory.
func (hdr *header) HasPersistent() bool {
	return hdr.raw[6]&0x02 != 0
}

// IsNES20 reports whether the header is in the NES 2.0 format.
func (hdr *header) IsNES20() bool {
	return hdr.raw[7]&0x0C == 0x08
}

// archaic reports whether bytes 12-15 are not zero, which denotes an old
// header where byte 7 can't be trusted (e.g "DiskDude!").
func (hdr *header) archaic() bool {
	return hdr.raw[12]|hdr.raw[13]|hdr.raw[14]|hdr.raw[15] != 0
}

// Mapper returns the mapper number.
func (hdr *header) Mapper() uint16 {
	lo := uint16(hdr.raw[6] >> 4)
	if hdr.archaic() {
		return lo
	}
	return uint16(hdr.raw[7]&0xF0) | lo
}

// Mirroring returns the nametable mirroring as hardwired on the cartridge.
func (hdr *header) Mirroring() NTMirroring {
	switch {
	case hdr.raw[6]&0x08 != 0:
		return FourScreen
	case hdr.raw[6]&0x01 != 0:
		return VertMirroring
	}
	return HorzMirroring
}

// PRGBanks returns the number of 16KB PRG ROM banks.
func (hdr *header) PRGBanks() int { return int(hdr.raw[4]) }

// CHRBanks returns the number of 8KB CHR ROM banks. Zero means the cartridge
// uses CHR RAM.
func (hdr *header) CHRBanks() int { return int(hdr.raw[5]) }

// PrintInfos writes a human readable summary of the rom to w.
func (rom *Rom) PrintInfos(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "mapper\t%d\n", rom.Mapper())
	fmt.Fprintf(tw, "mirroring\t%s\n", rom.Mirroring())
	fmt.Fprintf(tw, "PRG ROM\t%d x 16KB\n", rom.PRGBanks())
	if rom.CHRBanks() == 0 {
		fmt.Fprintf(tw, "CHR RAM\t8KB\n")
	} else {
		fmt.Fprintf(tw, "CHR ROM\t%d x 8KB\n", rom.CHRBanks())
	}
	fmt.Fprintf(tw, "trainer\t%t\n", rom.HasTrainer())
	fmt.Fprintf(tw, "battery\t%t\n", rom.HasPersistent())
	tw.Flush()
}
