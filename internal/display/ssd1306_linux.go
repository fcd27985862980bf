//go:build linux

package display

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/oledtop/oledtop/internal/pixel"
)

// Control bytes: the byte after the address selects whether a command
// stream or a GDDRAM data stream follows.
const (
	ctrlCommand = 0x00
	ctrlData    = 0x40
)

// i2cChunk bounds a single data transfer. Small writes keep the bus
// responsive for other devices sharing it.
const i2cChunk = 32

// i2cSlave is the I2C_SLAVE ioctl request from <linux/i2c-dev.h>;
// golang.org/x/sys/unix does not export it.
const i2cSlave = 0x0703

// initSequence is the SSD1306 power-up command stream for a 128×64 panel:
// horizontal addressing, internal charge pump, remapped scan direction so
// (0,0) is top left.
var initSequence = []byte{
	0xAE,       // display off
	0xD5, 0x80, // clock divide ratio / oscillator frequency
	0xA8, ssdHeight - 1, // multiplex ratio
	0xD3, 0x00, // display offset
	0x40,       // start line 0
	0x8D, 0x14, // charge pump on
	0x20, 0x00, // horizontal addressing mode
	0xA1,       // segment remap
	0xC8,       // COM scan direction remapped
	0xDA, 0x12, // COM pins configuration
	0x81, 0xCF, // contrast
	0xD9, 0xF1, // pre-charge period
	0xDB, 0x40, // VCOMH deselect level
	0xA4,       // resume display from RAM
	0xA6,       // normal polarity
	0xAF,       // display on
}

// SSD1306 drives the OLED panel through the Linux i2c-dev interface.
type SSD1306 struct {
	dev  *os.File
	data []byte
	xfer []byte
}

// OpenSSD1306 opens /dev/i2c-<bus>, claims the panel address, runs the init
// sequence and blanks whatever the panel was showing. Failure here is the
// one startup error worth dying for; everything else degrades.
func OpenSSD1306(bus int, addr uint16) (Sink, error) {
	path := fmt.Sprintf("/dev/i2c-%d", bus)
	dev, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if err := unix.IoctlSetInt(int(dev.Fd()), i2cSlave, int(addr)); err != nil {
		dev.Close()
		return nil, fmt.Errorf("claiming i2c address %#02x: %w", addr, err)
	}

	d := &SSD1306{
		dev:  dev,
		data: make([]byte, FrameBytes),
		xfer: make([]byte, 0, i2cChunk+1),
	}
	if err := d.command(initSequence...); err != nil {
		dev.Close()
		return nil, fmt.Errorf("initializing panel: %w", err)
	}
	if err := d.flush(); err != nil {
		dev.Close()
		return nil, fmt.Errorf("blanking panel: %w", err)
	}
	return d, nil
}

func (d *SSD1306) Bounds() (int, int) { return ssdWidth, ssdHeight }

// Display packs the frame into page layout and streams all of GDDRAM. The
// full frame is rewritten every tick; at ten frames a second that is well
// inside what a 400kHz bus carries.
func (d *SSD1306) Display(buf *pixel.Buffer) error {
	Pack(d.data, buf)
	return d.flush()
}

// Close blanks the panel, powers it off and releases the bus. The fd is
// released even when the power-off command fails mid-shutdown.
func (d *SSD1306) Close() error {
	for i := range d.data {
		d.data[i] = 0
	}
	flushErr := d.flush()
	cmdErr := d.command(0xAE)
	closeErr := d.dev.Close()

	if flushErr != nil {
		return flushErr
	}
	if cmdErr != nil {
		return cmdErr
	}
	return closeErr
}

// flush resets the addressing window and writes the packed frame in chunks.
func (d *SSD1306) flush() error {
	if err := d.command(0x21, 0, ssdWidth-1, 0x22, 0, ssdPages-1); err != nil {
		return fmt.Errorf("setting address window: %w", err)
	}
	for off := 0; off < len(d.data); off += i2cChunk {
		end := off + i2cChunk
		if end > len(d.data) {
			end = len(d.data)
		}
		d.xfer = append(d.xfer[:0], ctrlData)
		d.xfer = append(d.xfer, d.data[off:end]...)
		if _, err := d.dev.Write(d.xfer); err != nil {
			return fmt.Errorf("writing frame data at %d: %w", off, err)
		}
	}
	return nil
}

func (d *SSD1306) command(cmds ...byte) error {
	d.xfer = append(d.xfer[:0], ctrlCommand)
	d.xfer = append(d.xfer, cmds...)
	if _, err := d.dev.Write(d.xfer); err != nil {
		return fmt.Errorf("writing command: %w", err)
	}
	return nil
}
