// Package display provides the sinks a composed frame can be pushed to:
// the SSD1306 OLED panel over I²C, or a terminal preview for development.
package display

import "github.com/oledtop/oledtop/internal/pixel"

// Sink receives fully composed frames. A frame is presented as a whole;
// partially drawn buffers never become visible because composition happens
// entirely off-device.
type Sink interface {
	// Bounds returns the panel resolution.
	Bounds() (w, h int)

	// Display shows the frame. The caller may reuse the buffer for the next
	// frame as soon as Display returns.
	Display(buf *pixel.Buffer) error

	// Close releases the device, blanking it where the hardware allows.
	Close() error
}
