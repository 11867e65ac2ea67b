package max7219

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Transport shifts a single register write to one cell of the chain. Cells
// that are not addressed receive a no-op.
type Transport interface {
	Transmit(cell int, op Opcode, data byte) error
}

// configurer is implemented by transports that own their lines and must put
// them in the idle state before the first frame.
type configurer interface {
	Configure() error
}

// chain is implemented by transports with a fixed number of cells.
type chain interface {
	Cells() int
}

// fillFrame zeroes f and places the (data, opcode) pair of cell. f is in
// buffer order: it is shifted from the last byte to the first.
func fillFrame(f []byte, cell int, op Opcode, data byte) {
	for i := range f {
		f[i] = 0
	}
	off := cell * 2
	f[off] = data
	f[off+1] = byte(op)
}

// BitBang drives a chain of cells over three GPIO lines. Any output capable
// pins work.
type BitBang struct {
	mu    sync.Mutex
	data  gpio.PinOut
	clk   gpio.PinOut
	load  gpio.PinOut
	frame []byte
}

// NewBitBangTransport returns a transport for a chain of cells.
func NewBitBangTransport(data, clk, load gpio.PinOut, cells int) (*BitBang, error) {
	if data == nil || clk == nil || load == nil {
		return nil, errors.New("max7219: data, clock and load pins are required")
	}
	if cells <= 0 || cells > MaxCells {
		return nil, fmt.Errorf("max7219: cells must be between 1 and %d", MaxCells)
	}
	return &BitBang{
		data:  data,
		clk:   clk,
		load:  load,
		frame: make([]byte, cells*2),
	}, nil
}

// Configure drives the lines to their idle levels: data and clock low, load
// high.
func (b *BitBang) Configure() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := out(b.data, gpio.Low); err != nil {
		return err
	}
	if err := out(b.clk, gpio.Low); err != nil {
		return err
	}
	return out(b.load, gpio.High)
}

// WriteBit sets the data line, then pulses the clock. The chip samples data
// on the rising edge.
func (b *BitBang) WriteBit(l gpio.Level) error {
	if err := out(b.data, l); err != nil {
		return err
	}
	if err := out(b.clk, gpio.High); err != nil {
		return err
	}
	return out(b.clk, gpio.Low)
}

// WriteByte shifts v out most significant bit first.
func (b *BitBang) WriteByte(v byte) error {
	for i := 7; i >= 0; i-- {
		if err := b.WriteBit(gpio.Level(v&(1<<uint(i)) != 0)); err != nil {
			return err
		}
	}
	return nil
}

// Transmit writes data to register op of cell. The whole chain is shifted so
// the farthest cell receives its word first, then load rises to latch every
// cell at once.
func (b *BitBang) Transmit(cell int, op Opcode, data byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	fillFrame(b.frame, cell, op, data)
	if err := out(b.load, gpio.Low); err != nil {
		return err
	}
	for i := len(b.frame) - 1; i >= 0; i-- {
		if err := b.WriteByte(b.frame[i]); err != nil {
			return err
		}
	}
	return out(b.load, gpio.High)
}

// Cells returns the chain length.
func (b *BitBang) Cells() int {
	return len(b.frame) / 2
}

func (b *BitBang) String() string {
	return fmt.Sprintf("max7219.BitBang{data=%s, clk=%s, load=%s}", b.data, b.clk, b.load)
}

func out(p gpio.PinOut, l gpio.Level) error {
	if err := p.Out(l); err != nil {
		return fmt.Errorf("max7219: %s: %w", p, err)
	}
	return nil
}

// spiBus sends the same frame through a hardware SPI port. The port chip
// select plays the role of the load line.
type spiBus struct {
	mu    sync.Mutex
	c     conn.Conn
	frame []byte
	w     []byte
}

func newSPIBus(p spi.Port, cells int) (*spiBus, error) {
	if cells <= 0 || cells > MaxCells {
		return nil, fmt.Errorf("max7219: cells must be between 1 and %d", MaxCells)
	}
	// It works in Mode0, the chip is good up to 10MHz.
	c, err := p.Connect(10*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("max7219: %w", err)
	}
	return &spiBus{c: c, frame: make([]byte, cells*2), w: make([]byte, cells*2)}, nil
}

// Cells returns the chain length.
func (s *spiBus) Cells() int {
	return len(s.frame) / 2
}

func (s *spiBus) Transmit(cell int, op Opcode, data byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fillFrame(s.frame, cell, op, data)
	n := len(s.frame)
	for i := range s.frame {
		s.w[i] = s.frame[n-1-i]
	}
	return s.c.Tx(s.w, nil)
}
