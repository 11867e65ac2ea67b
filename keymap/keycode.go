// Package keymap maps rotary encoder turns and custom key presses of the
// board to host actions: mouse movement, alt-tab window switching, a combined
// backspace/delete key and RGB lighting mode selection.
//
// The package does not talk to USB itself. Key reports go through a Host and
// lighting changes through a Lighting implementation provided by the caller.
package keymap

import "fmt"

// Keycode is a HID keyboard usage, or a custom code at or above SafeRange.
type Keycode uint16

const (
	Backspace Keycode = 0x2A
	Tab       Keycode = 0x2B
	F2        Keycode = 0x3B
	Delete    Keycode = 0x4C

	MouseUp    Keycode = 0xCD
	MouseDown  Keycode = 0xCE
	MouseLeft  Keycode = 0xCF
	MouseRight Keycode = 0xD0

	LCtrl  Keycode = 0xE0
	LShift Keycode = 0xE1
	LAlt   Keycode = 0xE2
	LGUI   Keycode = 0xE3
)

// SafeRange is the first keycode free for board specific use.
const SafeRange Keycode = 0x7E40

// Custom keycodes.
const (
	BspDel Keycode = SafeRange + iota
	RGBBreathing
	RGBReactive
	RGBGradient
	RGBSpeedUp
	RGBSpeedDown
)

var keycodeNames = map[Keycode]string{
	Backspace:    "Backspace",
	Tab:          "Tab",
	F2:           "F2",
	Delete:       "Delete",
	MouseUp:      "MouseUp",
	MouseDown:    "MouseDown",
	MouseLeft:    "MouseLeft",
	MouseRight:   "MouseRight",
	LCtrl:        "LCtrl",
	LShift:       "LShift",
	LAlt:         "LAlt",
	LGUI:         "LGUI",
	BspDel:       "BspDel",
	RGBBreathing: "RGBBreathing",
	RGBReactive:  "RGBReactive",
	RGBGradient:  "RGBGradient",
	RGBSpeedUp:   "RGBSpeedUp",
	RGBSpeedDown: "RGBSpeedDown",
}

func (k Keycode) String() string {
	if s, ok := keycodeNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Keycode(0x%04X)", uint16(k))
}

// Mods is a bit set of held modifiers, left hand modifiers in the low nibble.
type Mods uint8

const (
	ModLCtrl Mods = 1 << iota
	ModLShift
	ModLAlt
	ModLGUI
)

// Host receives key reports.
type Host interface {
	// Tap presses and releases kc.
	Tap(kc Keycode)
	// TapMods taps kc with mods held, restoring the previous modifiers after.
	TapMods(mods Mods, kc Keycode)
	Register(kc Keycode)
	Unregister(kc Keycode)

	Mods() Mods
	SetMods(m Mods)
	DelMods(m Mods)
}

// Mode is an RGB matrix animation.
type Mode uint8

const (
	ModeSolid Mode = iota
	ModeHueBreathing
	ModeSplash
	ModeCycleLeftRight
)

func (m Mode) String() string {
	switch m {
	case ModeSolid:
		return "Solid"
	case ModeHueBreathing:
		return "HueBreathing"
	case ModeSplash:
		return "Splash"
	case ModeCycleLeftRight:
		return "CycleLeftRight"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Lighting controls the RGB matrix. Changes are not persisted.
type Lighting interface {
	SetMode(m Mode)
	IncreaseSpeed()
	DecreaseSpeed()
}
