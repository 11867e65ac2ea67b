// Package gpiocdev exposes Linux GPIO character device lines as periph
// gpio.PinOut, so the bit-banged bus can run on hosts periph has no driver
// for, or where sysfs GPIO is gone.
package gpiocdev

import (
	"errors"
	"fmt"
	"sync"

	cdev "github.com/warthog618/go-gpiocdev"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// line is the part of *cdev.Line used here.
type line interface {
	SetValue(value int) error
	Close() error
}

// Pin is an output line requested from a GPIO chip.
type Pin struct {
	chip   string
	offset int

	mu    sync.Mutex
	l     line
	level gpio.Level
}

// Open requests offset on chip, e.g. "gpiochip0", as an output driven low.
func Open(chip string, offset int, consumer string) (*Pin, error) {
	l, err := cdev.RequestLine(chip, offset, cdev.AsOutput(0), cdev.WithConsumer(consumer))
	if err != nil {
		return nil, fmt.Errorf("gpiocdev: %s:%d: %w", chip, offset, err)
	}
	return newPin(chip, offset, l), nil
}

// OpenAll requests every offset on chip. Lines already requested are released
// when one fails.
func OpenAll(chip, consumer string, offsets ...int) ([]*Pin, error) {
	pins := make([]*Pin, 0, len(offsets))
	for _, o := range offsets {
		p, err := Open(chip, o, consumer)
		if err != nil {
			for _, q := range pins {
				q.Close()
			}
			return nil, err
		}
		pins = append(pins, p)
	}
	return pins, nil
}

func newPin(chip string, offset int, l line) *Pin {
	return &Pin{chip: chip, offset: offset, l: l}
}

func (p *Pin) String() string {
	return fmt.Sprintf("%s:%d", p.chip, p.offset)
}

// Halt implements conn.Resource. The line stays requested.
func (p *Pin) Halt() error {
	return nil
}

// Name implements pin.Pin.
func (p *Pin) Name() string {
	return fmt.Sprintf("GPIO%d", p.offset)
}

// Number implements pin.Pin.
func (p *Pin) Number() int {
	return p.offset
}

// Function implements pin.Pin.
func (p *Pin) Function() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.l == nil {
		return "Closed"
	}
	return "Out/" + p.level.String()
}

// Out implements gpio.PinOut.
func (p *Pin) Out(l gpio.Level) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.l == nil {
		return errors.New("gpiocdev: line closed")
	}
	v := 0
	if l {
		v = 1
	}
	if err := p.l.SetValue(v); err != nil {
		return err
	}
	p.level = l
	return nil
}

// PWM implements gpio.PinOut. Character device lines have no PWM.
func (p *Pin) PWM(gpio.Duty, physic.Frequency) error {
	return errors.New("gpiocdev: PWM is not supported")
}

// Close releases the line.
func (p *Pin) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.l == nil {
		return nil
	}
	err := p.l.Close()
	p.l = nil
	return err
}

var _ gpio.PinOut = &Pin{}
