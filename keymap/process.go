package keymap

// Record is a key event.
type Record struct {
	Pressed bool
}

// Processor handles the custom keycodes.
type Processor struct {
	host  Host
	light Lighting
}

// NewProcessor returns a Processor sending reports to h and lighting changes
// to l.
func NewProcessor(h Host, l Lighting) *Processor {
	return &Processor{host: h, light: l}
}

// PostInit selects the startup lighting mode.
func (p *Processor) PostInit() {
	p.light.SetMode(ModeCycleLeftRight)
}

// Process handles kc. It returns false when kc was handled here and true
// when the regular key processing must continue.
func (p *Processor) Process(kc Keycode, r Record) bool {
	switch kc {
	case BspDel:
		if !r.Pressed {
			p.host.Unregister(Delete)
			p.host.Unregister(Backspace)
			return false
		}
		mods := p.host.Mods()
		if mods&ModLShift != 0 {
			// Shift must not reach the host with Delete.
			p.host.DelMods(ModLShift)
			p.host.Register(Delete)
			p.host.SetMods(mods)
		} else {
			p.host.Register(Backspace)
		}
		return false
	case RGBBreathing:
		if r.Pressed {
			p.light.SetMode(ModeHueBreathing)
		}
		return false
	case RGBReactive:
		if r.Pressed {
			p.light.SetMode(ModeSplash)
		}
		return false
	case RGBGradient:
		if r.Pressed {
			p.light.SetMode(ModeCycleLeftRight)
		}
		return false
	case RGBSpeedUp:
		if r.Pressed {
			p.light.IncreaseSpeed()
		}
		return false
	case RGBSpeedDown:
		if r.Pressed {
			p.light.DecreaseSpeed()
		}
		return false
	}
	return true
}
