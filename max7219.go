package max7219

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"
	"time"

	"github.com/ledmatrix/max7219/image1bit"
	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"
	"tinygo.org/x/drivers"
)

// Opts is the configuration for the chain.
type Opts struct {
	// Number of chained cells (default: 2, must be ≤MaxCells)
	Cells int

	// Brightness applied by Init, 1-15. Zero selects DefaultIntensity; call
	// SetIntensity after New for the dimmest level.
	Intensity int

	// Wait before the first frame, the chips need time after power up
	PowerUpDelay time.Duration

	// Optional logger, nil disables logging
	Logger *zerolog.Logger
}

// Dev is the device handle for a chain of MAX7219 cells.
type Dev struct {
	mu sync.Mutex

	// Communication
	t     Transport
	cells int

	// Last row bytes handed to the transport, index cell*Rows+row
	status [MaxCells * Rows]byte

	// Display geometry
	rect image.Rectangle

	// Pending frame for SetPixel/Display, lazily allocated
	next *image1bit.RowMSB

	intensity    int
	powerUpDelay time.Duration
	log          zerolog.Logger
}

// New creates a device on top of an existing transport and initializes every
// cell.
//
// opts can be nil to use defaults (two cells).
func New(t Transport, opts *Opts) (*Dev, error) {
	if t == nil {
		return nil, errors.New("max7219: transport is required")
	}
	d, err := newDev(t, opts)
	if err != nil {
		return nil, err
	}
	if c, ok := t.(chain); ok && c.Cells() != d.cells {
		return nil, fmt.Errorf("max7219: transport drives %d cells, opts asks for %d", c.Cells(), d.cells)
	}
	if err := d.Init(); err != nil {
		return nil, err
	}
	return d, nil
}

// NewBitBang creates a device driven over three GPIO lines.
//
// The pins are switched to outputs by Init.
func NewBitBang(data, clk, load gpio.PinOut, opts *Opts) (*Dev, error) {
	opts, err := withDefaults(opts)
	if err != nil {
		return nil, err
	}
	b, err := NewBitBangTransport(data, clk, load, opts.Cells)
	if err != nil {
		return nil, err
	}
	return New(b, opts)
}

// NewSPI creates a device connected to a hardware SPI port.
//
// The SPI port is configured for 10MHz, Mode0, 8-bit transfers. Chip select
// must be wired to the LOAD input.
func NewSPI(p spi.Port, opts *Opts) (*Dev, error) {
	opts, err := withDefaults(opts)
	if err != nil {
		return nil, err
	}
	s, err := newSPIBus(p, opts.Cells)
	if err != nil {
		return nil, err
	}
	return New(s, opts)
}

func withDefaults(opts *Opts) (*Opts, error) {
	o := Opts{Cells: DefaultCells, Intensity: DefaultIntensity}
	if opts != nil {
		o = *opts
		if o.Cells == 0 {
			o.Cells = DefaultCells
		}
		if o.Intensity == 0 {
			o.Intensity = DefaultIntensity
		}
	}
	if o.Cells < 0 || o.Cells > MaxCells {
		return nil, fmt.Errorf("max7219: cells must be between 1 and %d", MaxCells)
	}
	if o.Intensity < 0 || o.Intensity > MaxIntensity {
		return nil, errors.New("max7219: intensity must be between 0 and 15")
	}
	if o.PowerUpDelay < 0 {
		return nil, errors.New("max7219: power up delay must not be negative")
	}
	return &o, nil
}

func newDev(t Transport, opts *Opts) (*Dev, error) {
	o, err := withDefaults(opts)
	if err != nil {
		return nil, err
	}
	d := &Dev{
		t:            t,
		cells:        o.Cells,
		rect:         image.Rect(0, 0, o.Cells*Columns, Rows),
		intensity:    o.Intensity,
		powerUpDelay: o.PowerUpDelay,
		log:          zerolog.Nop(),
	}
	if o.Logger != nil {
		d.log = o.Logger.With().Str("dev", "max7219").Logger()
	}
	return d, nil
}

// Init puts every cell in its default state: display test off, all rows
// scanned, no decoding, cleared, mid intensity, running.
//
// Cells are held in shutdown while they are configured so they never show
// stale RAM content.
func (d *Dev) Init() error {
	if d.powerUpDelay > 0 {
		time.Sleep(d.powerUpDelay)
	}
	d.log.Debug().Int("cells", d.cells).Msg("init")

	if c, ok := d.t.(configurer); ok {
		if err := c.Configure(); err != nil {
			return err
		}
	}
	for i := 0; i < d.cells; i++ {
		if err := d.Shutdown(i, true); err != nil {
			return err
		}
	}
	for i := 0; i < d.cells; i++ {
		if err := d.DisplayTest(i, false); err != nil {
			return err
		}
		if err := d.SetScanLimit(i, MaxScanLimit); err != nil {
			return err
		}
		if err := d.SetDecodeMode(i, DecodeNone); err != nil {
			return err
		}
		if err := d.ClearDisplay(i); err != nil {
			return err
		}
		if err := d.SetIntensity(i, d.intensity); err != nil {
			return err
		}
		if err := d.Shutdown(i, false); err != nil {
			return err
		}
	}
	return nil
}

// validCell reports whether cell addresses a chip of the chain.
func (d *Dev) validCell(cell int) bool {
	return cell >= 0 && cell < d.cells
}

// Shutdown turns the LED drivers of cell off (enabled) or back on. Register
// content is kept while shut down.
func (d *Dev) Shutdown(cell int, enabled bool) error {
	d.log.Debug().Int("cell", cell).Bool("enabled", enabled).Msg("shutdown")
	if !d.validCell(cell) {
		return nil
	}
	v := shutdownOff
	if enabled {
		v = shutdownOn
	}
	return d.t.Transmit(cell, ShutdownReg, v)
}

// SetIntensity sets the brightness of cell, 0-15. Other values are ignored.
func (d *Dev) SetIntensity(cell, level int) error {
	d.log.Debug().Int("cell", cell).Int("level", level).Msg("set intensity")
	if !d.validCell(cell) || level < 0 || level > MaxIntensity {
		return nil
	}
	return d.t.Transmit(cell, Intensity, byte(level))
}

// SetScanLimit sets how many rows, minus one, cell multiplexes. Fewer rows
// raise the duty cycle of each scanned row.
func (d *Dev) SetScanLimit(cell, limit int) error {
	d.log.Debug().Int("cell", cell).Int("limit", limit).Msg("set scan limit")
	if !d.validCell(cell) || limit < 0 || limit > MaxScanLimit {
		return nil
	}
	return d.t.Transmit(cell, ScanLimit, byte(limit))
}

// SetDecodeMode writes the decode mode register of cell. Matrix displays want
// DecodeNone.
func (d *Dev) SetDecodeMode(cell int, mode Decode) error {
	d.log.Debug().Int("cell", cell).Uint8("mode", uint8(mode)).Msg("set decode mode")
	if !d.validCell(cell) {
		return nil
	}
	return d.t.Transmit(cell, DecodeMode, byte(mode))
}

// DisplayTest forces every LED of cell on while enabled. The status buffer is
// not touched; disabling the test shows the buffered rows again.
func (d *Dev) DisplayTest(cell int, enabled bool) error {
	d.log.Debug().Int("cell", cell).Bool("enabled", enabled).Msg("display test")
	if !d.validCell(cell) {
		return nil
	}
	var v byte
	if enabled {
		v = 1
	}
	return d.t.Transmit(cell, DisplayTest, v)
}

// ClearDisplay turns off every LED of cell.
func (d *Dev) ClearDisplay(cell int) error {
	d.log.Debug().Int("cell", cell).Msg("clear display")
	if !d.validCell(cell) {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for row := 0; row < Rows; row++ {
		if err := d.writeRow(cell, row, 0); err != nil {
			return err
		}
	}
	return nil
}

// SetLed turns a single LED on or off. Column 0 is the most significant bit
// of the row register.
func (d *Dev) SetLed(cell, row, col int, on bool) error {
	d.log.Debug().Int("cell", cell).Int("row", row).Int("col", col).Bool("on", on).Msg("set led")
	if !d.validCell(cell) || !validIndex(row) || !validIndex(col) {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	mask := byte(0x80) >> uint(col)
	v := d.status[cell*Rows+row]
	if on {
		v |= mask
	} else {
		v &^= mask
	}
	return d.writeRow(cell, row, v)
}

// SetRow sets the eight LEDs of a row at once.
func (d *Dev) SetRow(cell, row int, value byte) error {
	d.log.Debug().Int("cell", cell).Int("row", row).Uint8("value", value).Msg("set row")
	if !d.validCell(cell) || !validIndex(row) {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeRow(cell, row, value)
}

// SetColumn sets the eight LEDs of a column at once. Bit 7 of value is row 0.
func (d *Dev) SetColumn(cell, col int, value byte) error {
	d.log.Debug().Int("cell", cell).Int("col", col).Uint8("value", value).Msg("set column")
	if !d.validCell(cell) || !validIndex(col) {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	mask := byte(0x80) >> uint(col)
	for row := 0; row < Rows; row++ {
		v := d.status[cell*Rows+row]
		if value&(0x80>>uint(row)) != 0 {
			v |= mask
		} else {
			v &^= mask
		}
		if v == d.status[cell*Rows+row] {
			continue
		}
		if err := d.writeRow(cell, row, v); err != nil {
			return err
		}
	}
	return nil
}

// Row returns the buffered value of a row, 0 for an invalid address.
func (d *Dev) Row(cell, row int) byte {
	if !d.validCell(cell) || !validIndex(row) {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status[cell*Rows+row]
}

// Led reports whether a LED is lit according to the status buffer. The chips
// cannot be read back.
func (d *Dev) Led(cell, row, col int) bool {
	if !validIndex(col) {
		return false
	}
	return d.Row(cell, row)&(0x80>>uint(col)) != 0
}

// Cells returns the number of chained cells.
func (d *Dev) Cells() int {
	return d.cells
}

// writeRow transmits v to a row register and commits it to the status buffer
// once the transport accepted it. The row of the pending frame, if any, is
// replaced too. d.mu must be held.
func (d *Dev) writeRow(cell, row int, v byte) error {
	if err := d.t.Transmit(cell, RowOpcode(row), v); err != nil {
		return err
	}
	d.status[cell*Rows+row] = v
	if d.next != nil {
		d.next.Pix[row*d.next.Stride+cell] = v
	}
	return nil
}

func validIndex(i int) bool {
	return i >= 0 && i < Rows
}

// CycleDisplayTest flashes the display test of each cell in turn, interval
// apiece, until ctx is done, and returns ctx.Err(). Useful to check the wiring
// of a new board.
func (d *Dev) CycleDisplayTest(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return errors.New("max7219: interval must be positive")
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		for i := 0; i < d.cells; i++ {
			if err := d.DisplayTest(i, true); err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				if err := d.DisplayTest(i, false); err != nil {
					return err
				}
				return ctx.Err()
			case <-t.C:
			}
			if err := d.DisplayTest(i, false); err != nil {
				return err
			}
		}
	}
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Write writes raw rows to the display, in status buffer order: eight row
// bytes for cell 0, then cell 1, and so on. The data must be exactly
// Cells()*8 bytes.
func (d *Dev) Write(rows []byte) (int, error) {
	if len(rows) != d.cells*Rows {
		return 0, errors.New("max7219: invalid buffer size")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, v := range rows {
		if err := d.writeRow(i/Rows, i%Rows, v); err != nil {
			return i, err
		}
	}
	return len(rows), nil
}

// Draw draws an image onto the display. Only rows that differ from the status
// buffer are transmitted.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	dst = dst.Intersect(d.rect)
	if dst.Empty() {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lazyNext()
	draw.Draw(d.next, dst, src, sp, draw.Src)
	return d.flush()
}

// Size returns the display size. It implements drivers.Displayer.
func (d *Dev) Size() (x, y int16) {
	return int16(d.rect.Dx()), int16(d.rect.Dy())
}

// SetPixel modifies the pending frame; nothing is sent until Display.
// It implements drivers.Displayer.
func (d *Dev) SetPixel(x, y int16, c color.RGBA) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lazyNext()
	d.next.Set(int(x), int(y), c)
}

// Display sends the rows of the pending frame that changed.
// It implements drivers.Displayer.
func (d *Dev) Display() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.next == nil {
		return nil
	}
	return d.flush()
}

// lazyNext allocates the pending frame from the status buffer. d.mu must be
// held.
func (d *Dev) lazyNext() {
	if d.next == nil {
		d.next = image1bit.NewRowMSB(d.rect)
		d.syncNext()
	}
}

// syncNext copies the status buffer into the pending frame. d.mu must be
// held.
func (d *Dev) syncNext() {
	for cell := 0; cell < d.cells; cell++ {
		for row := 0; row < Rows; row++ {
			d.next.Pix[row*d.next.Stride+cell] = d.status[cell*Rows+row]
		}
	}
}

// flush transmits every row of the pending frame that differs from the status
// buffer. d.mu must be held.
func (d *Dev) flush() error {
	for cell := 0; cell < d.cells; cell++ {
		for row := 0; row < Rows; row++ {
			v := d.next.Pix[row*d.next.Stride+cell]
			if v == d.status[cell*Rows+row] {
				continue
			}
			if err := d.writeRow(cell, row, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// Halt shuts every cell down. Shutdown(cell, false) resumes a cell with its
// rows intact.
func (d *Dev) Halt() error {
	for i := 0; i < d.cells; i++ {
		if err := d.Shutdown(i, true); err != nil {
			return err
		}
	}
	return nil
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("max7219.Dev{%dx%d, cells=%d}", d.rect.Dx(), d.rect.Dy(), d.cells)
}

var (
	_ display.Drawer    = &Dev{}
	_ drivers.Displayer = &Dev{}
)
