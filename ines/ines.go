// Package ines decodes cartridge images in the iNES file format, used for the
// distribution of NES binary programs.
package ines

import (
	"bytes"
	"errors"
	"fmt"
	"os"
)

const (
	Magic       = "NES\x1a"
	HeaderSize  = 16
	TrainerSize = 512
	PRGBankSize = 16 << 10
	CHRBankSize = 8 << 10
)

// Load errors. A LoadError always wraps one of these.
var (
	ErrBadMagic          = errors.New("invalid magic number")
	ErrNoPRG             = errors.New("no PRG ROM bank")
	ErrTruncated         = errors.New("truncated image")
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// LoadError reports why a cartridge image could not be loaded. Use errors.Is
// with the Err* sentinel values to tell reasons apart.
type LoadError struct {
	Path string // may be empty when loading from memory
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return "load cartridge: " + e.Err.Error()
	}
	return fmt.Sprintf("load cartridge %s: %s", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Rom is a decoded cartridge image. It is immutable once decoded.
type Rom struct {
	header
	Trainer []byte // 512 bytes if present, or empty
	PRG     []byte // PRG ROM data (multiple of 16KB)
	CHR     []byte // CHR ROM data (multiple of 8KB), empty if the cartridge uses CHR RAM
}

// Open loads a rom from file.
func Open(path string) (*Rom, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	rom, err := Decode(buf)
	if err != nil {
		var lerr *LoadError
		if errors.As(err, &lerr) {
			lerr.Path = path
		}
		return nil, err
	}
	return rom, nil
}

// Decode decodes an iNES image. Sections of the returned Rom are copies, buf
// can be reused.
func Decode(buf []byte) (*Rom, error) {
	rom := new(Rom)
	if err := rom.decode(buf); err != nil {
		return nil, &LoadError{Err: err}
	}

	off := HeaderSize
	section := func(name string, size int) ([]byte, error) {
		if len(buf) < off+size {
			return nil, fmt.Errorf("%w: incomplete %s section (want %d bytes, got %d)",
				ErrTruncated, name, size, max(len(buf)-off, 0))
		}
		b := bytes.Clone(buf[off : off+size])
		off += size
		return b, nil
	}

	var err error
	if rom.HasTrainer() {
		if rom.Trainer, err = section("TRAINER", TrainerSize); err != nil {
			return nil, &LoadError{Err: err}
		}
	}
	if rom.PRG, err = section("PRG", rom.prgsz); err != nil {
		return nil, &LoadError{Err: err}
	}
	if rom.CHR, err = section("CHR", rom.chrsz); err != nil {
		return nil, &LoadError{Err: err}
	}
	return rom, nil
}
