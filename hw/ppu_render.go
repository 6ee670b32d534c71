package hw

import "nescore/emu/log"

// Tick advances the PPU by one dot.
func (p *PPU) Tick() {
	rendering := p.renderingEnabled()

	visibleLine := p.Scanline < 240
	preLine := p.Scanline == preRenderLine
	renderLine := visibleLine || preLine

	visibleCycle := p.Cycle >= 1 && p.Cycle <= 256
	prefetchCycle := p.Cycle >= 321 && p.Cycle <= 336
	fetchCycle := visibleCycle || prefetchCycle

	if visibleLine && visibleCycle {
		if rendering {
			p.renderPixel()
		} else {
			p.back.SetRGB(p.Cycle-1, p.Scanline, Palette[p.palette[0]])
		}
	}

	if rendering {
		// Each tile takes 8 dots: nametable byte, attribute byte, low
		// and high pattern bytes, each fetch taking 2 dots.
		if renderLine && fetchCycle {
			p.bg.tiles <<= 4
			switch p.Cycle % 8 {
			case 1:
				p.fetchNT()
			case 3:
				p.fetchAT()
			case 5:
				p.fetchPatternLo()
			case 7:
				p.fetchPatternHi()
			case 0:
				p.storeTiles()
			}
		}

		if preLine && p.Cycle >= 280 && p.Cycle <= 304 {
			p.copyY()
		}

		if renderLine {
			if fetchCycle && p.Cycle%8 == 0 {
				p.incrementX()
			}
			if p.Cycle == 256 {
				p.incrementY()
			}
			if p.Cycle == 257 {
				p.copyX()
			}
		}

		if p.Cycle == 257 {
			if visibleLine {
				p.evaluateSprites()
			} else {
				p.sprites = p.sprites[:0]
			}
		}
	}

	switch {
	case p.Scanline == 241 && p.Cycle == 1:
		p.PPUSTATUS.Value |= 1 << vblank
		p.updateNMI()
	case preLine && p.Cycle == 1:
		// Clear vblank, sprite0Hit and spriteOverflow
		p.PPUSTATUS.Value &^= 1<<vblank | 1<<sprite0Hit | 1<<spriteOverflow
		p.updateNMI()
	}

	p.advance(rendering)
}

func (p *PPU) advance(rendering bool) {
	// With rendering enabled, odd frames are one dot shorter: the last dot
	// of the pre-render line is skipped.
	if rendering && p.oddFrame && p.Scanline == preRenderLine && p.Cycle == 339 {
		p.Cycle++
	}

	p.Cycle++
	if p.Cycle < NumCycles {
		return
	}
	p.Cycle = 0
	p.Scanline++
	if p.Scanline < NumScanlines {
		return
	}
	p.Scanline = 0
	p.endFrame()
}

func (p *PPU) endFrame() {
	p.front, p.back = p.back, p.front
	p.Frames++
	p.oddFrame = !p.oddFrame
	p.frameReady = true

	log.ModPPU.DebugZ("frame complete").
		Uint64("frame", p.Frames).
		End()
}

// renderPixel outputs the pixel at the current dot.
func (p *PPU) renderPixel() {
	x := p.Cycle - 1
	y := p.Scanline

	bg := p.backgroundPixel()
	i, spr := p.spritePixel()

	if x < 8 && !isset(p.PPUMASK.Value, leftmostBg) {
		bg = 0
	}
	if x < 8 && !isset(p.PPUMASK.Value, leftmostSprites) {
		spr = 0
	}

	opaqueBg := bg%4 != 0
	opaqueSpr := spr%4 != 0

	var color uint8
	switch {
	case !opaqueBg && !opaqueSpr:
		color = 0
	case !opaqueBg && opaqueSpr:
		color = spr | 0x10
	case opaqueBg && !opaqueSpr:
		color = bg
	default:
		if p.sprites[i].index == 0 && x < 255 {
			p.PPUSTATUS.Value |= 1 << sprite0Hit
		}
		if p.sprites[i].prio == 0 {
			color = spr | 0x10
		} else {
			color = bg
		}
	}

	c := p.palette[palAddr(uint16(color))]
	if isset(p.PPUMASK.Value, greyscale) {
		c &= 0x30
	}
	p.back.SetRGB(x, y, Palette[c&0x3F])
}

func (p *PPU) backgroundPixel() uint8 {
	if !isset(p.PPUMASK.Value, showBg) {
		return 0
	}
	data := uint32(p.bg.tiles>>32) >> ((7 - p.finex) * 4)
	return uint8(data & 0x0F)
}

// spritePixel returns the index in p.sprites and the color of the first
// opaque sprite pixel at the current dot.
func (p *PPU) spritePixel() (int, uint8) {
	if !isset(p.PPUMASK.Value, showSprites) {
		return 0, 0
	}
	for i := range p.sprites {
		off := (p.Cycle - 1) - int(p.sprites[i].x)
		if off < 0 || off > 7 {
			continue
		}
		off = 7 - off
		color := uint8(p.sprites[i].pattern>>uint(off*4)) & 0x0F
		if color%4 == 0 {
			continue
		}
		return i, color
	}
	return 0, 0
}

/* background fetches */

func (p *PPU) fetchNT() {
	addr := 0x2000 | p.vramAddr&0x0FFF
	p.bg.nt = p.Bus.Read8(addr, false)
}

func (p *PPU) fetchAT() {
	v := p.vramAddr
	addr := 0x23C0 | v&0x0C00 | (v>>4)&0x38 | (v>>2)&0x07
	shift := (v>>4)&4 | v&2
	p.bg.at = ((p.Bus.Read8(addr, false) >> shift) & 3) << 2
}

func (p *PPU) bgPatternAddr() uint16 {
	fineY := (p.vramAddr >> 12) & 7
	table := uint16(0)
	if isset(p.PPUCTRL.Value, backgroundAddr) {
		table = 0x1000
	}
	return table + uint16(p.bg.nt)*16 + fineY
}

func (p *PPU) fetchPatternLo() {
	p.bg.lo = p.Bus.Read8(p.bgPatternAddr(), false)
}

func (p *PPU) fetchPatternHi() {
	p.bg.hi = p.Bus.Read8(p.bgPatternAddr()+8, false)
}

// storeTiles pushes the 8 pixels of the fetched tile row into the low 32
// bits of the tile data.
func (p *PPU) storeTiles() {
	var data uint32
	for range 8 {
		p1 := (p.bg.lo & 0x80) >> 7
		p2 := (p.bg.hi & 0x80) >> 6
		p.bg.lo <<= 1
		p.bg.hi <<= 1
		data <<= 4
		data |= uint32(p.bg.at | p1 | p2)
	}
	p.bg.tiles |= uint64(data)
}

/* scrolling, see https://www.nesdev.org/wiki/PPU_scrolling */

// v: ....A.. ...BCDEF <- t: ....A.. ...BCDEF
func (p *PPU) copyX() {
	p.vramAddr = p.vramAddr&0xFBE0 | p.vramTmp&0x041F
}

// v: GHIA.BC DEF..... <- t: GHIA.BC DEF.....
func (p *PPU) copyY() {
	p.vramAddr = p.vramAddr&0x841F | p.vramTmp&0x7BE0
}

func (p *PPU) incrementX() {
	if p.vramAddr&0x001F == 31 {
		// coarse X = 0 and switch horizontal nametable
		p.vramAddr &^= 0x001F
		p.vramAddr ^= 0x0400
	} else {
		p.vramAddr++
	}
}

func (p *PPU) incrementY() {
	if p.vramAddr&0x7000 != 0x7000 {
		p.vramAddr += 0x1000
		return
	}

	p.vramAddr &^= 0x7000
	y := (p.vramAddr & 0x03E0) >> 5
	switch y {
	case 29:
		y = 0
		// switch vertical nametable
		p.vramAddr ^= 0x0800
	case 31:
		// coarse Y out of the nametable (attributes), wraps without
		// switching nametable.
		y = 0
	default:
		y++
	}
	p.vramAddr = p.vramAddr&^0x03E0 | y<<5
}

/* sprites */

// evaluateSprites selects the sprites to draw on the next scanline.
func (p *PPU) evaluateSprites() {
	h := 8
	if isset(p.PPUCTRL.Value, spriteSize) {
		h = 16
	}

	p.sprites = p.sprites[:0]
	count := 0
	for i := range 64 {
		y := p.oam[i*4+0]
		attr := p.oam[i*4+2]
		x := p.oam[i*4+3]
		row := p.Scanline - int(y)
		if row < 0 || row >= h {
			continue
		}
		if count < 8 || !p.spriteLimit {
			p.sprites = append(p.sprites, spriteSlot{
				pattern: p.fetchSpritePattern(i, row),
				x:       x,
				prio:    (attr >> 5) & 1,
				index:   uint8(i),
			})
		}
		count++
	}
	if count > 8 {
		p.PPUSTATUS.Value |= 1 << spriteOverflow
	}
}

// fetchSpritePattern returns the row of 8 pixels of sprite i.
func (p *PPU) fetchSpritePattern(i, row int) uint32 {
	tile := p.oam[i*4+1]
	attr := p.oam[i*4+2]

	var addr uint16
	if !isset(p.PPUCTRL.Value, spriteSize) {
		if attr&0x80 != 0 { // vertical flip
			row = 7 - row
		}
		table := uint16(0)
		if isset(p.PPUCTRL.Value, spriteAddr) {
			table = 0x1000
		}
		addr = table + uint16(tile)*16 + uint16(row)
	} else {
		if attr&0x80 != 0 {
			row = 15 - row
		}
		// 8x16 sprites: bit 0 of the tile number selects the pattern table.
		table := uint16(tile&1) * 0x1000
		tile &= 0xFE
		if row > 7 {
			tile++
			row -= 8
		}
		addr = table + uint16(tile)*16 + uint16(row)
	}

	lo := p.Bus.Read8(addr, false)
	hi := p.Bus.Read8(addr+8, false)
	palette := (attr & 3) << 2

	var data uint32
	for range 8 {
		var p1, p2 uint8
		if attr&0x40 != 0 { // horizontal flip
			p1 = lo & 1
			p2 = (hi & 1) << 1
			lo >>= 1
			hi >>= 1
		} else {
			p1 = (lo & 0x80) >> 7
			p2 = (hi & 0x80) >> 6
			lo <<= 1
			hi <<= 1
		}
		data <<= 4
		data |= uint32(palette | p1 | p2)
	}
	return data
}
