// Package pixel provides the monochrome framebuffer every display frame is
// composed into, along with the bitmap faces used for on-screen text.
package pixel

import (
	"image"
	"image/color"
	"strings"
)

// Buffer is a 1-bit framebuffer. It implements draw.Image so font drawers
// and image scalers can target it directly; colors written through Set are
// thresholded on luminance, anything brighter than mid-gray lands as an on
// pixel.
type Buffer struct {
	w, h int
	pix  []uint8
}

// New returns a cleared buffer of the given size.
func New(w, h int) *Buffer {
	return &Buffer{w: w, h: h, pix: make([]uint8, w*h)}
}

// Bounds implements image.Image.
func (b *Buffer) Bounds() image.Rectangle { return image.Rect(0, 0, b.w, b.h) }

// ColorModel implements image.Image.
func (b *Buffer) ColorModel() color.Model { return color.GrayModel }

// At implements image.Image. On pixels read as white, everything else as
// black, out of bounds included.
func (b *Buffer) At(x, y int) color.Color {
	if b.On(x, y) {
		return color.Gray{Y: 0xff}
	}
	return color.Gray{Y: 0x00}
}

// Set implements draw.Image. The color is reduced to luminance and
// thresholded, matching how frames are converted from grayscale sources.
func (b *Buffer) Set(x, y int, c color.Color) {
	gray := color.GrayModel.Convert(c).(color.Gray)
	b.SetPixel(x, y, gray.Y > 128)
}

// SetPixel sets one pixel. Writes outside the buffer are dropped.
func (b *Buffer) SetPixel(x, y int, on bool) {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return
	}
	var v uint8
	if on {
		v = 1
	}
	b.pix[y*b.w+x] = v
}

// On reports whether the pixel at (x, y) is lit. Out of bounds reads are
// false.
func (b *Buffer) On(x, y int) bool {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return false
	}
	return b.pix[y*b.w+x] != 0
}

// Clear turns every pixel off.
func (b *Buffer) Clear() {
	for i := range b.pix {
		b.pix[i] = 0
	}
}

// Clone returns an independent copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	c := &Buffer{w: b.w, h: b.h, pix: make([]uint8, len(b.pix))}
	copy(c.pix, b.pix)
	return c
}

// FillRect fills the w×h rectangle whose top-left corner is (x, y). The
// rectangle is clipped to the buffer.
func (b *Buffer) FillRect(x, y, w, h int, on bool) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			b.SetPixel(xx, yy, on)
		}
	}
}

// Rect draws the one pixel outline of a w×h rectangle at (x, y).
func (b *Buffer) Rect(x, y, w, h int, on bool) {
	if w <= 0 || h <= 0 {
		return
	}
	b.HLine(x, y, w, on)
	b.HLine(x, y+h-1, w, on)
	b.VLine(x, y, h, on)
	b.VLine(x+w-1, y, h, on)
}

// HLine draws a horizontal line of length w starting at (x, y).
func (b *Buffer) HLine(x, y, w int, on bool) {
	for xx := x; xx < x+w; xx++ {
		b.SetPixel(xx, y, on)
	}
}

// VLine draws a vertical line of length h starting at (x, y).
func (b *Buffer) VLine(x, y, h int, on bool) {
	for yy := y; yy < y+h; yy++ {
		b.SetPixel(x, yy, on)
	}
}

// DrawBuffer blits src with its top-left corner at (x, y). Only on pixels
// are transferred, off pixels leave the destination untouched.
func (b *Buffer) DrawBuffer(x, y int, src *Buffer) {
	for sy := 0; sy < src.h; sy++ {
		for sx := 0; sx < src.w; sx++ {
			if src.pix[sy*src.w+sx] != 0 {
				b.SetPixel(x+sx, y+sy, true)
			}
		}
	}
}

// String renders the buffer as one text row per pixel row, '#' for on and
// '.' for off. Meant for tests and debugging.
func (b *Buffer) String() string {
	var sb strings.Builder
	sb.Grow((b.w + 1) * b.h)
	for y := 0; y < b.h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < b.w; x++ {
			if b.pix[y*b.w+x] != 0 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
