package display

import "github.com/oledtop/oledtop/internal/pixel"

// SSD1306 geometry. The controller organizes GDDRAM into eight pages of
// 128 bytes; each byte is a vertical strip of 8 pixels with the least
// significant bit on top.
const (
	ssdWidth  = 128
	ssdHeight = 64
	ssdPages  = ssdHeight / 8

	// FrameBytes is the size of one packed frame.
	FrameBytes = ssdWidth * ssdPages
)

// Pack converts a framebuffer into GDDRAM page layout. dst must hold
// FrameBytes bytes; pixels outside the panel are ignored.
func Pack(dst []byte, buf *pixel.Buffer) {
	for page := 0; page < ssdPages; page++ {
		for x := 0; x < ssdWidth; x++ {
			var b byte
			for bit := 0; bit < 8; bit++ {
				if buf.On(x, page*8+bit) {
					b |= 1 << bit
				}
			}
			dst[page*ssdWidth+x] = b
		}
	}
}
