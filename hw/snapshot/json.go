package snapshot

import (
	"fmt"

	"github.com/go-faster/jx"
)

func (s *NES) MarshalJSON() ([]byte, error) {
	var e jx.Encoder
	s.Encode(&e)
	return e.Bytes(), nil
}

func (s *NES) UnmarshalJSON(data []byte) error {
	if err := s.Decode(jx.DecodeBytes(data)); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Version != Version {
		return fmt.Errorf("snapshot version %d, want %d", s.Version, Version)
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}
	return nil
}

func (s *NES) Encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("version", func(e *jx.Encoder) { e.Int(s.Version) })
		e.Field("cpu", s.CPU.Encode)
		e.Field("ram", func(e *jx.Encoder) { e.Base64(s.RAM[:]) })
		e.Field("bus", s.Bus.Encode)
		e.Field("ppu", s.PPU.Encode)
		e.Field("mapper", s.Mapper.Encode)
		e.Field("joypads", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for i := range s.Joypads {
					s.Joypads[i].Encode(e)
				}
			})
		})
	})
}

func (s *NES) Decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "version":
			v, err := d.Int()
			s.Version = v
			return err
		case "cpu":
			return s.CPU.Decode(d)
		case "ram":
			return decodeBlob(d, s.RAM[:])
		case "bus":
			return s.Bus.Decode(d)
		case "ppu":
			return s.PPU.Decode(d)
		case "mapper":
			return s.Mapper.Decode(d)
		case "joypads":
			i := 0
			return d.Arr(func(d *jx.Decoder) error {
				if i >= len(s.Joypads) {
					return fmt.Errorf("too many joypads")
				}
				i++
				return s.Joypads[i-1].Decode(d)
			})
		}
		return d.Skip()
	})
}

func (s *CPU) Encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("pc", func(e *jx.Encoder) { e.UInt16(s.PC) })
		e.Field("sp", func(e *jx.Encoder) { e.UInt8(s.SP) })
		e.Field("p", func(e *jx.Encoder) { e.UInt8(s.P) })
		e.Field("a", func(e *jx.Encoder) { e.UInt8(s.A) })
		e.Field("x", func(e *jx.Encoder) { e.UInt8(s.X) })
		e.Field("y", func(e *jx.Encoder) { e.UInt8(s.Y) })
		e.Field("cycles", func(e *jx.Encoder) { e.Int64(s.Cycles) })
	})
}

func (s *CPU) Decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "pc":
			return decodeU16(d, &s.PC)
		case "sp":
			return decodeU8(d, &s.SP)
		case "p":
			return decodeU8(d, &s.P)
		case "a":
			return decodeU8(d, &s.A)
		case "x":
			return decodeU8(d, &s.X)
		case "y":
			return decodeU8(d, &s.Y)
		case "cycles":
			v, err := d.Int64()
			s.Cycles = v
			return err
		}
		return d.Skip()
	})
}

func (s *Bus) Encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("cycles", func(e *jx.Encoder) { e.Int64(s.Cycles) })
		e.Field("pending", func(e *jx.Encoder) { e.Base64(s.Pending[:]) })
	})
}

func (s *Bus) Decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "cycles":
			v, err := d.Int64()
			s.Cycles = v
			return err
		case "pending":
			return decodeBlob(d, s.Pending[:])
		}
		return d.Skip()
	})
}

func (s *PPU) Encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("nametables", func(e *jx.Encoder) { e.Base64(s.Nametables[:]) })
		e.Field("palette", func(e *jx.Encoder) { e.Base64(s.Palette[:]) })
		e.Field("oam", func(e *jx.Encoder) { e.Base64(s.OAMMem[:]) })
		e.Field("ppuctrl", func(e *jx.Encoder) { e.UInt8(s.PPUCTRL) })
		e.Field("ppumask", func(e *jx.Encoder) { e.UInt8(s.PPUMASK) })
		e.Field("ppustatus", func(e *jx.Encoder) { e.UInt8(s.PPUSTATUS) })
		e.Field("oamaddr", func(e *jx.Encoder) { e.UInt8(s.OAMAddr) })
		e.Field("v", func(e *jx.Encoder) { e.UInt16(s.VRAMAddr) })
		e.Field("t", func(e *jx.Encoder) { e.UInt16(s.VRAMTemp) })
		e.Field("x", func(e *jx.Encoder) { e.UInt8(s.FineX) })
		e.Field("w", func(e *jx.Encoder) { e.Bool(s.WriteLatch) })
		e.Field("databuf", func(e *jx.Encoder) { e.UInt8(s.PPUDataBuf) })
		e.Field("openbus", func(e *jx.Encoder) { e.UInt8(s.OpenBus) })
		e.Field("nmiline", func(e *jx.Encoder) { e.Bool(s.NMILine) })
		e.Field("nmipending", func(e *jx.Encoder) { e.Bool(s.NMIPending) })
		e.Field("cycle", func(e *jx.Encoder) { e.Int(s.Cycle) })
		e.Field("scanline", func(e *jx.Encoder) { e.Int(s.Scanline) })
		e.Field("frame", func(e *jx.Encoder) { e.UInt64(s.FrameCount) })
		e.Field("oddframe", func(e *jx.Encoder) { e.Bool(s.OddFrame) })
		e.Field("bg", s.Bg.Encode)
		e.Field("sprites", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for i := range s.Sprites {
					s.Sprites[i].Encode(e)
				}
			})
		})
	})
}

func (s *PPU) Decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "nametables":
			return decodeBlob(d, s.Nametables[:])
		case "palette":
			return decodeBlob(d, s.Palette[:])
		case "oam":
			return decodeBlob(d, s.OAMMem[:])
		case "ppuctrl":
			return decodeU8(d, &s.PPUCTRL)
		case "ppumask":
			return decodeU8(d, &s.PPUMASK)
		case "ppustatus":
			return decodeU8(d, &s.PPUSTATUS)
		case "oamaddr":
			return decodeU8(d, &s.OAMAddr)
		case "v":
			return decodeU16(d, &s.VRAMAddr)
		case "t":
			return decodeU16(d, &s.VRAMTemp)
		case "x":
			return decodeU8(d, &s.FineX)
		case "w":
			s.WriteLatch, err = d.Bool()
		case "databuf":
			return decodeU8(d, &s.PPUDataBuf)
		case "openbus":
			return decodeU8(d, &s.OpenBus)
		case "nmiline":
			s.NMILine, err = d.Bool()
		case "nmipending":
			s.NMIPending, err = d.Bool()
		case "cycle":
			s.Cycle, err = d.Int()
		case "scanline":
			s.Scanline, err = d.Int()
		case "frame":
			s.FrameCount, err = d.UInt64()
		case "oddframe":
			s.OddFrame, err = d.Bool()
		case "bg":
			return s.Bg.Decode(d)
		case "sprites":
			s.Sprites = s.Sprites[:0]
			return d.Arr(func(d *jx.Decoder) error {
				var spr Sprite
				if err := spr.Decode(d); err != nil {
					return err
				}
				s.Sprites = append(s.Sprites, spr)
				return nil
			})
		default:
			return d.Skip()
		}
		return err
	})
}

func (s *PPUBgRegs) Encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("nt", func(e *jx.Encoder) { e.UInt8(s.NT) })
		e.Field("at", func(e *jx.Encoder) { e.UInt8(s.AT) })
		e.Field("lo", func(e *jx.Encoder) { e.UInt8(s.Lo) })
		e.Field("hi", func(e *jx.Encoder) { e.UInt8(s.Hi) })
		e.Field("tiles", func(e *jx.Encoder) { e.UInt64(s.TileData) })
	})
}

func (s *PPUBgRegs) Decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "nt":
			return decodeU8(d, &s.NT)
		case "at":
			return decodeU8(d, &s.AT)
		case "lo":
			return decodeU8(d, &s.Lo)
		case "hi":
			return decodeU8(d, &s.Hi)
		case "tiles":
			v, err := d.UInt64()
			s.TileData = v
			return err
		}
		return d.Skip()
	})
}

func (s *Sprite) Encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("pattern", func(e *jx.Encoder) { e.UInt32(s.Pattern) })
		e.Field("x", func(e *jx.Encoder) { e.UInt8(s.X) })
		e.Field("prio", func(e *jx.Encoder) { e.UInt8(s.Priority) })
		e.Field("idx", func(e *jx.Encoder) { e.UInt8(s.Index) })
	})
}

func (s *Sprite) Decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "pattern":
			v, err := d.UInt32()
			s.Pattern = v
			return err
		case "x":
			return decodeU8(d, &s.X)
		case "prio":
			return decodeU8(d, &s.Priority)
		case "idx":
			return decodeU8(d, &s.Index)
		}
		return d.Skip()
	})
}

func (s *Mapper) Encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("name", func(e *jx.Encoder) { e.Str(s.Name) })
		e.Field("regs", func(e *jx.Encoder) { e.Base64(s.Regs) })
		e.Field("prgram", func(e *jx.Encoder) { e.Base64(s.PRGRAM) })
		if len(s.CHRRAM) != 0 {
			e.Field("chrram", func(e *jx.Encoder) { e.Base64(s.CHRRAM) })
		}
	})
}

func (s *Mapper) Decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "name":
			s.Name, err = d.Str()
		case "regs":
			s.Regs, err = decodeOptBlob(d)
		case "prgram":
			s.PRGRAM, err = decodeOptBlob(d)
		case "chrram":
			s.CHRRAM, err = decodeOptBlob(d)
		default:
			return d.Skip()
		}
		return err
	})
}

func (s *Joypad) Encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("buttons", func(e *jx.Encoder) { e.UInt8(s.Buttons) })
		e.Field("strobe", func(e *jx.Encoder) { e.Bool(s.Strobe) })
		e.Field("index", func(e *jx.Encoder) { e.UInt8(s.Index) })
	})
}

func (s *Joypad) Decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "buttons":
			return decodeU8(d, &s.Buttons)
		case "strobe":
			v, err := d.Bool()
			s.Strobe = v
			return err
		case "index":
			return decodeU8(d, &s.Index)
		}
		return d.Skip()
	})
}

func decodeU8(d *jx.Decoder, v *uint8) error {
	x, err := d.UInt8()
	*v = x
	return err
}

func decodeU16(d *jx.Decoder, v *uint16) error {
	x, err := d.UInt16()
	*v = x
	return err
}

// decodeBlob decodes a base64 string into dst, which length must match.
func decodeBlob(d *jx.Decoder, dst []byte) error {
	b, err := d.Base64()
	if err != nil {
		return err
	}
	if len(b) != len(dst) {
		return fmt.Errorf("blob is %d bytes, want %d", len(b), len(dst))
	}
	copy(dst, b)
	return nil
}

// decodeOptBlob decodes a base64 string, or null.
func decodeOptBlob(d *jx.Decoder) ([]byte, error) {
	if d.Next() == jx.Null {
		return nil, d.Null()
	}
	return d.Base64()
}
