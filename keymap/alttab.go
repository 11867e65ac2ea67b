package keymap

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// DefaultAltTabTimeout is how long Alt stays held after the last turn.
const DefaultAltTabTimeout = time.Second

// AltTab turns any encoder into a window switcher. The first turn taps
// Ctrl+F2 and holds left Alt; each turn then taps Tab, or Shift+Tab when
// turned counter clockwise. Alt is released by Scan once Timeout elapsed
// since the last turn.
type AltTab struct {
	Timeout time.Duration

	mu     sync.Mutex
	host   Host
	clock  clockwork.Clock
	log    zerolog.Logger
	active bool
	last   time.Time
}

// NewAltTab returns an AltTab for h. A nil clock uses the real one.
func NewAltTab(h Host, clock clockwork.Clock, log *zerolog.Logger) *AltTab {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	a := &AltTab{
		Timeout: DefaultAltTabTimeout,
		host:    h,
		clock:   clock,
		log:     zerolog.Nop(),
	}
	if log != nil {
		a.log = log.With().Str("component", "alttab").Logger()
	}
	return a
}

// Update implements EncoderHandler. It consumes every turn.
func (a *AltTab) Update(index int, clockwise bool) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.last = a.clock.Now()
	if !a.active {
		a.active = true
		a.log.Debug().Msg("alt tab start")
		a.host.TapMods(ModLCtrl, F2)
		a.host.Register(LAlt)
	}
	if clockwise {
		a.host.Tap(Tab)
	} else {
		a.host.TapMods(ModLShift, Tab)
	}
	return true
}

// Scan releases Alt when the switcher has been idle for longer than Timeout.
// Call it from the scan loop.
func (a *AltTab) Scan() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.active || a.clock.Since(a.last) <= a.Timeout {
		return
	}
	a.host.Unregister(LAlt)
	a.active = false
	a.log.Debug().Msg("alt tab end")
}

// Active reports whether Alt is currently held by the switcher.
func (a *AltTab) Active() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}
