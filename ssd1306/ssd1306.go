package ssd1306

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/spi"

	"github.com/flavioheleno/oledbitmap/image1bit"
)

// DefaultAddr is the usual I2C address of SSD1306 modules. Some boards strap
// it to 0x3D.
const DefaultAddr = 0x3C

var (
	errHalted  = errors.New("ssd1306: halted")
	errBufSize = errors.New("ssd1306: invalid buffer size")
)

// Opts is the configuration for the SSD1306 display.
type Opts struct {
	// Display dimensions in pixels
	W int // Width (default: 128, must be ≤128)
	H int // Height (default: 64, must be a multiple of 8 and ≤64)

	// Rotated flips both the segment remap and the COM scan direction.
	Rotated bool

	// Optional hardware reset pin
	RST gpio.PinIO // Reset pin (optional, nil if not used)
}

// Dev is the device handle for the SSD1306 display.
type Dev struct {
	// Communication
	c   conn.Conn   // SPI or I2C connection
	dc  gpio.PinOut // Data/Command pin, nil on I2C
	rst gpio.PinIO  // Reset pin (optional)

	rect image.Rectangle

	// Pixel buffers, in page layout
	buffer []byte                 // What the panel currently shows
	next   *image1bit.VerticalLSB // Lazily allocated Draw target

	halted bool
}

var _ display.Drawer = (*Dev)(nil)

// NewSPI creates a new SSD1306 device connected via 4-wire SPI.
//
// The SPI port is configured for 8MHz, Mode0, 8-bit transfers. The dc pin
// selects between command and data bytes.
//
// opts can be nil to use defaults (128x64 display).
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if dc == nil {
		return nil, errors.New("ssd1306: dc pin is required on SPI")
	}
	opts, err := validate(opts)
	if err != nil {
		return nil, err
	}

	c, err := p.Connect(8*1000000, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("ssd1306: %w", err)
	}
	return newDev(c, dc, opts)
}

// NewI2C creates a new SSD1306 device on an I2C bus at addr, usually
// DefaultAddr. Command and data bytes are told apart by a control byte.
//
// opts can be nil to use defaults (128x64 display).
func NewI2C(b i2c.Bus, addr uint16, opts *Opts) (*Dev, error) {
	opts, err := validate(opts)
	if err != nil {
		return nil, err
	}
	return newDev(&i2c.Dev{Bus: b, Addr: addr}, nil, opts)
}

func validate(opts *Opts) (*Opts, error) {
	if opts == nil {
		opts = &Opts{W: 128, H: 64}
	}
	if opts.W <= 0 || opts.W > 128 {
		return nil, errors.New("ssd1306: width must be between 1 and 128")
	}
	if opts.H <= 0 || opts.H > 64 || opts.H%8 != 0 {
		return nil, errors.New("ssd1306: height must be a multiple of 8 between 8 and 64")
	}
	return opts, nil
}

func newDev(c conn.Conn, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	d := &Dev{
		c:      c,
		dc:     dc,
		rst:    opts.RST,
		rect:   image.Rect(0, 0, opts.W, opts.H),
		buffer: make([]byte, opts.W*opts.H/8),
	}
	if err := d.init(opts); err != nil {
		return nil, err
	}
	return d, nil
}

// init sends the initialization sequence to the display.
func (d *Dev) init(opts *Opts) error {
	if d.rst != nil {
		if err := d.rst.Out(gpio.Low); err != nil {
			return fmt.Errorf("ssd1306: failed to pull RST low: %w", err)
		}
		time.Sleep(10 * time.Millisecond)

		if err := d.rst.Out(gpio.High); err != nil {
			return fmt.Errorf("ssd1306: failed to pull RST high: %w", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	cmds := []byte{
		0xAE,       // Display OFF
		0xD5, 0x80, // Clock divider and oscillator frequency
		0xA8, byte(opts.H - 1), // MUX ratio
		0xD3, 0x00, // Display offset
		0x40,       // Start line 0
		0x8D, 0x14, // Enable charge pump
		0x20, 0x00, // Horizontal addressing mode
	}

	// Segment remap and COM scan direction
	if opts.Rotated {
		cmds = append(cmds, 0xA0, 0xC0)
	} else {
		cmds = append(cmds, 0xA1, 0xC8)
	}

	// COM pins: alternative layout for 64 rows, sequential below
	comPins := byte(0x12)
	if opts.H < 64 {
		comPins = 0x02
	}

	cmds = append(cmds,
		0xDA, comPins,
		0x81, 0xCF, // Contrast
		0xD9, 0xF1, // Pre-charge period
		0xDB, 0x40, // VCOMH deselect level
		0xA4, // Display follows RAM
		0xA6, // Normal display mode
		0x2E, // No scrolling
	)

	if err := d.sendCommands(cmds); err != nil {
		return err
	}
	if err := d.writeFullFrame(d.buffer); err != nil {
		return err
	}
	return d.sendCommand(0xAF) // Display ON
}

// sendCommand sends a single command byte.
func (d *Dev) sendCommand(cmd byte) error {
	return d.sendCommands([]byte{cmd})
}

// sendCommands sends a slice of command bytes.
func (d *Dev) sendCommands(cmds []byte) error {
	if d.dc == nil {
		return d.c.Tx(append([]byte{0x00}, cmds...), nil)
	}
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	return d.c.Tx(cmds, nil)
}

// sendData sends a slice of data bytes.
func (d *Dev) sendData(data []byte) error {
	if d.dc == nil {
		return d.c.Tx(append([]byte{0x40}, data...), nil)
	}
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	return d.c.Tx(data, nil)
}

// writeRect writes page data to columns x0..x1 of pages p0..p1, inclusive.
func (d *Dev) writeRect(x0, x1, p0, p1 int, pages []byte) error {
	commands := []byte{
		0x21, byte(x0), byte(x1), // Column address
		0x22, byte(p0), byte(p1), // Page address
	}
	if err := d.sendCommands(commands); err != nil {
		return err
	}
	return d.sendData(pages)
}

// writeFullFrame writes a whole page buffer to the display.
func (d *Dev) writeFullFrame(pages []byte) error {
	return d.writeRect(0, d.rect.Dx()-1, 0, d.rect.Dy()/8-1, pages)
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Write writes a full frame in page layout, as produced by the encoder.
// The data must be exactly d.rect.Dx() * d.rect.Dy() / 8 bytes.
func (d *Dev) Write(pages []byte) (int, error) {
	if d.halted {
		return 0, errHalted
	}
	if len(pages) != len(d.buffer) {
		return 0, errBufSize
	}
	if err := d.writeFullFrame(pages); err != nil {
		return 0, err
	}
	d.store(pages)
	return len(pages), nil
}

// Draw draws an image onto the display, sending only the pages and columns
// that changed since the last update.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return errHalted
	}

	dst = dst.Intersect(d.rect)
	if dst.Empty() {
		return nil
	}

	// Fast path: source is already a full page buffer
	if srcImg, ok := src.(*image1bit.VerticalLSB); ok {
		if dst == d.rect && sp == (image.Point{}) && srcImg.Rect == d.rect {
			if err := d.writeFullFrame(srcImg.Pix); err != nil {
				return err
			}
			d.store(srcImg.Pix)
			return nil
		}
	}

	if d.next == nil {
		d.next = image1bit.NewVerticalLSB(d.rect)
		copy(d.next.Pix, d.buffer)
	}
	draw.Draw(d.next, dst, src, sp, draw.Src)
	return d.update(d.next.Pix)
}

// update sends the smallest column and page window of pages that differs
// from what the panel shows.
func (d *Dev) update(pages []byte) error {
	x0, x1, p0, p1 := d.calculateDiff(pages)
	if x0 > x1 {
		return nil
	}
	if err := d.writeRect(x0, x1, p0, p1, d.extractRegion(pages, x0, x1, p0, p1)); err != nil {
		return err
	}
	d.store(pages)
	return nil
}

// store records pages as the panel contents.
func (d *Dev) store(pages []byte) {
	copy(d.buffer, pages)
	if d.next != nil {
		copy(d.next.Pix, pages)
	}
}

// calculateDiff compares the shown buffer with pages. Returns
// (x0, x1, p0, p1) or (1, 0, 0, 0) if nothing changed.
func (d *Dev) calculateDiff(pages []byte) (x0, x1, p0, p1 int) {
	width := d.rect.Dx()
	count := d.rect.Dy() / 8

	x0, x1 = width, -1
	p0, p1 = count, -1

	for p := 0; p < count; p++ {
		start := p * width
		old, cur := d.buffer[start:start+width], pages[start:start+width]
		if bytes.Equal(old, cur) {
			continue
		}
		if p < p0 {
			p0 = p
		}
		p1 = p

		for x := 0; x < width; x++ {
			if old[x] != cur[x] {
				if x < x0 {
					x0 = x
				}
				if x > x1 {
					x1 = x
				}
			}
		}
	}

	if x1 < 0 {
		return 1, 0, 0, 0
	}
	return
}

// extractRegion copies the window out of pages in the order the controller
// expects in horizontal addressing mode: page by page, left to right.
func (d *Dev) extractRegion(pages []byte, x0, x1, p0, p1 int) []byte {
	width := d.rect.Dx()
	n := x1 - x0 + 1

	result := make([]byte, 0, n*(p1-p0+1))
	for p := p0; p <= p1; p++ {
		start := p*width + x0
		result = append(result, pages[start:start+n]...)
	}
	return result
}

// Clear blanks the display RAM.
func (d *Dev) Clear() error {
	if d.halted {
		return errHalted
	}
	blank := make([]byte, len(d.buffer))
	if err := d.writeFullFrame(blank); err != nil {
		return err
	}
	d.store(blank)
	return nil
}

// SetContrast sets the display contrast (0-255).
func (d *Dev) SetContrast(contrast byte) error {
	if d.halted {
		return errHalted
	}
	return d.sendCommands([]byte{0x81, contrast})
}

// Invert inverts the display colors (black becomes white and vice versa).
func (d *Dev) Invert(invert bool) error {
	if d.halted {
		return errHalted
	}
	mode := byte(0xA6) // Normal display
	if invert {
		mode = 0xA7 // Inverted display
	}
	return d.sendCommand(mode)
}

// Halt turns the display off. Further calls fail until a new Dev is created.
func (d *Dev) Halt() error {
	d.halted = true
	return d.sendCommand(0xAE) // Display OFF
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("ssd1306.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}

// ScrollSpeed is the interval between scroll steps, in frames.
type ScrollSpeed byte

const (
	Speed2Frames   ScrollSpeed = 0x07
	Speed3Frames   ScrollSpeed = 0x04
	Speed4Frames   ScrollSpeed = 0x05
	Speed5Frames   ScrollSpeed = 0x00
	Speed25Frames  ScrollSpeed = 0x06
	Speed64Frames  ScrollSpeed = 0x01
	Speed128Frames ScrollSpeed = 0x02
	Speed256Frames ScrollSpeed = 0x03
)

// ScrollHorizontal starts scrolling pages startPage..endPage. If right is
// true, content moves right; otherwise left.
func (d *Dev) ScrollHorizontal(startPage, endPage byte, speed ScrollSpeed, right bool) error {
	if d.halted {
		return errHalted
	}

	count := d.rect.Dy() / 8
	if int(startPage) >= count || int(endPage) >= count || startPage > endPage {
		return errors.New("ssd1306: scroll page out of range")
	}

	scrollCmd := byte(0x26) // Left
	if right {
		scrollCmd = 0x27 // Right
	}

	return d.sendCommands([]byte{
		0x2E, // Scrolling must be off while it is set up
		scrollCmd,
		0x00,      // Dummy byte
		startPage, // Start page
		byte(speed),
		endPage,    // End page
		0x00, 0xFF, // Dummy bytes
		0x2F, // Activate scroll
	})
}

// StopScroll stops scrolling. RAM contents must be rewritten afterwards.
func (d *Dev) StopScroll() error {
	if d.halted {
		return errHalted
	}
	return d.sendCommand(0x2E) // Deactivate scroll
}
