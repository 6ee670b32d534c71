package hw

import (
	"image"
	"image/color"
)

const (
	ScreenWidth  = 256
	ScreenHeight = 240
)

// FrameBuffer holds a full frame of RGB pixels, row by row.
type FrameBuffer struct {
	Pix [ScreenWidth * ScreenHeight * 3]uint8
}

func (fb *FrameBuffer) SetRGB(x, y int, c color.RGBA) {
	off := (y*ScreenWidth + x) * 3
	fb.Pix[off+0] = c.R
	fb.Pix[off+1] = c.G
	fb.Pix[off+2] = c.B
}

func (fb *FrameBuffer) RGBAt(x, y int) color.RGBA {
	off := (y*ScreenWidth + x) * 3
	return color.RGBA{R: fb.Pix[off], G: fb.Pix[off+1], B: fb.Pix[off+2], A: 0xFF}
}

// Clone returns an independent copy of the frame.
func (fb *FrameBuffer) Clone() *FrameBuffer {
	cpy := *fb
	return &cpy
}

// Image converts the frame to an image.RGBA.
func (fb *FrameBuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, ScreenWidth, ScreenHeight))
	for i, j := 0, 0; i < len(fb.Pix); i, j = i+3, j+4 {
		img.Pix[j+0] = fb.Pix[i+0]
		img.Pix[j+1] = fb.Pix[i+1]
		img.Pix[j+2] = fb.Pix[i+2]
		img.Pix[j+3] = 0xFF
	}
	return img
}
