// Package max7219 controls chained MAX7219/MAX7221 LED matrix drivers.
//
// Each MAX7219 drives one 8×8 LED cell. Cells are daisy chained: the DOUT of
// one chip feeds the DIN of the next, and the whole chain latches together on
// the rising edge of LOAD. The chain is addressed as a single display with
// cells laid out left to right.
//
// # Display Characteristics
//
// - Monochrome, one bit per LED
// - 8 rows of 8 LEDs per cell, up to 8 cells (64×8 pixels)
// - 16 intensity steps (0-15) per cell
// - Display test mode lighting every LED without touching the rows
// - Register content kept while shut down
//
// # Hardware Connection
//
// The chain can be driven from any three GPIO outputs:
//
//	Module Pin → System Pin
//	VCC        → 5V
//	GND        → GND
//	DIN        → GPIO (data)
//	CLK        → GPIO (clock)
//	CS/LOAD    → GPIO (load)
//
// Or from a hardware SPI port, using the chip select as LOAD:
//
//	DIN        → SPI Data (MOSI)
//	CLK        → SPI Clock (SCLK)
//	CS/LOAD    → SPI Chip Select
//
// # Basic Usage
//
//	package main
//
//	import (
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/host/v3"
//		"github.com/ledmatrix/max7219"
//	)
//
//	func main() {
//		host.Init()
//
//		dev, _ := max7219.NewBitBang(
//			gpioreg.ByName("GPIO17"),
//			gpioreg.ByName("GPIO27"),
//			gpioreg.ByName("GPIO22"),
//			&max7219.Opts{Cells: 2},
//		)
//		defer dev.Halt()
//
//		// Top left LED of the first cell
//		dev.SetLed(0, 0, 0, true)
//
//		// Left half of row 3 on the second cell
//		dev.SetRow(1, 3, 0xF0)
//	}
//
// With SPI:
//
//	p, _ := spireg.Open("")
//	dev, _ := max7219.NewSPI(p, &max7219.Opts{Cells: 4})
//
// Addresses are (cell, row, column). Column 0 is the most significant bit of
// the row register. Out of range addresses and values are ignored and nothing
// is sent.
//
// # Drawing
//
// Dev implements display.Drawer. Only the rows that differ from what was last
// sent are transmitted:
//
//	img := image1bit.NewRowMSB(dev.Bounds())
//	img.SetBit(0, 0, image1bit.On)
//	dev.Draw(dev.Bounds(), img, image.Point{})
//
// Any color with a non zero channel lights the LED.
//
// # Text
//
// Dev also implements drivers.Displayer from tinygo.org/x/drivers, so
// tinyfont can render to it. SetPixel only changes the pending frame, Display
// sends it:
//
//	tinyfont.WriteLine(dev, &tinyfont.TomThumb, 0, 6, "Hi", color.RGBA{R: 255, A: 255})
//	dev.Display()
//
// # Datasheet
//
// https://www.analog.com/media/en/technical-documentation/data-sheets/MAX7219-MAX7221.pdf
package max7219
