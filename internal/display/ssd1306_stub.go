//go:build !linux

package display

import "errors"

// The panel only exists behind Linux's i2c-dev interface. Development on
// other platforms uses the terminal preview sink instead.
func OpenSSD1306(bus int, addr uint16) (Sink, error) {
	return nil, errors.New("ssd1306 requires linux i2c-dev; use the preview sink on this platform")
}
