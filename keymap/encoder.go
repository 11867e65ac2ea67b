package keymap

import (
	"github.com/rs/zerolog"
)

// EncoderHandler handles a turn of encoder index. It returns true when the
// turn was consumed and the board default must not run.
type EncoderHandler func(index int, clockwise bool) bool

// Encoders dispatches encoder turns. Without a handler, or when the handler
// declines a turn, encoder 0 moves the mouse up and down and encoder 1 moves
// it right and left.
type Encoders struct {
	host    Host
	handler EncoderHandler
	log     zerolog.Logger
}

// NewEncoders returns the board encoder dispatcher. handler and log may be
// nil.
func NewEncoders(h Host, handler EncoderHandler, log *zerolog.Logger) *Encoders {
	e := &Encoders{host: h, handler: handler, log: zerolog.Nop()}
	if log != nil {
		e.log = log.With().Str("component", "encoders").Logger()
	}
	return e
}

// Update handles one detent of encoder index.
func (e *Encoders) Update(index int, clockwise bool) {
	e.log.Debug().Int("index", index).Bool("clockwise", clockwise).Msg("encoder spin")
	if e.handler != nil && e.handler(index, clockwise) {
		return
	}
	switch index {
	case 0:
		if clockwise {
			e.host.Tap(MouseUp)
		} else {
			e.host.Tap(MouseDown)
		}
	case 1:
		if clockwise {
			e.host.Tap(MouseRight)
		} else {
			e.host.Tap(MouseLeft)
		}
	}
}
