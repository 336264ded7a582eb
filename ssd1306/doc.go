// Package ssd1306 controls a SSD1306 monochrome OLED display via SPI or I2C.
//
// The SSD1306 drives up to 128×64 pixels, one bit each. Its RAM is organized
// in pages: each page is 8 rows tall and holds one byte per column, with the
// least significant bit on top. Frames produced by the oledbitmap encoder are
// already in this layout and can be written as they are.
//
// This driver implements the display.Drawer interface from periph.io.
//
// # Hardware Connection
//
// SPI (4-wire):
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	D0/CLK      → SPI Clock (SCLK)
//	D1/MOSI     → SPI Data (MOSI)
//	DC          → GPIO (any available pin)
//	CS          → SPI Chip Select
//	RES         → Optional: GPIO for hardware reset
//
// I2C:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCL         → I2C Clock
//	SDA         → I2C Data
//
// # Basic Usage
//
//	package main
//
//	import (
//		"github.com/flavioheleno/oledbitmap"
//		"github.com/flavioheleno/oledbitmap/ssd1306"
//		"periph.io/x/conn/v3/i2c/i2creg"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//
//		bus, _ := i2creg.Open("")
//		dev, _ := ssd1306.NewI2C(bus, ssd1306.DefaultAddr, nil)
//		defer dev.Halt()
//
//		frame, _ := oledbitmap.EncodeFile("happy.png", nil)
//		dev.Write(frame.Pix)
//	}
//
// # Drawing Modes
//
// Write sends a complete page buffer (W*H/8 bytes). Draw accepts any
// image.Image, converts it with image1bit.BitModel and only sends the window
// of columns and pages that changed since the previous update:
//
//	dev.Draw(dev.Bounds(), img, image.Point{})
//
// # Animations
//
// Play shows a sequence of page buffers at a fixed interval, optionally in a
// loop, until its context is cancelled:
//
//	res, _ := sequence.Batch("images/heart", nil)
//	dev.Play(ctx, export.Pix(res.Frames), ssd1306.FPS(10), true)
//
// Consecutive animation frames usually differ in a small area, so each step
// sends only the changed window.
//
// # Orientation
//
// Encoded frames are stored rotated by 180°. Opts.Rotated selects the
// segment remap and COM scan direction so the same data can be shown upright
// on modules mounted either way.
//
// # Hardware Scrolling
//
//	dev.ScrollHorizontal(0, 7, ssd1306.Speed5Frames, false)
//	time.Sleep(5 * time.Second)
//	dev.StopScroll()
//
// # Datasheet
//
// https://cdn-shop.adafruit.com/datasheets/SSD1306.pdf
package ssd1306
