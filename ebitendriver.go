package bramble

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EbitenDriver adapts a live ebiten game loop into the [InputTarget] and
// [RenderLoop] collaborators. Call Tick once from your ebiten Update: it
// polls the frame's input transitions into subscriber events, then fires the
// pre-render subscribers with the measured frame delta.
//
//	type Game struct {
//		driver *bramble.EbitenDriver
//	}
//
//	func (g *Game) Update() error { g.driver.Tick(); return nil }
type EbitenDriver struct {
	eventHub
	preRender handlerList[func(dt float64)]

	last    time.Time
	focused bool
	cursorX int
	cursorY int
	moved   bool

	keyBuf []ebiten.Key
}

// NewEbitenDriver creates a driver ready to be ticked from ebiten's Update.
func NewEbitenDriver() *EbitenDriver {
	return &EbitenDriver{focused: true}
}

// SubscribeBeforeRender registers fn to run once per Tick with the frame's
// delta time in seconds.
func (d *EbitenDriver) SubscribeBeforeRender(fn func(dt float64)) Subscription {
	return d.preRender.add(fn)
}

// ebitenButtons maps ebiten mouse buttons onto browser-style button numbers
// (0 left, 1 middle, 2 right).
var ebitenButtons = [...]struct {
	eb ebiten.MouseButton
	id int
}{
	{ebiten.MouseButtonLeft, 0},
	{ebiten.MouseButtonMiddle, 1},
	{ebiten.MouseButtonRight, 2},
}

// Tick polls ebiten's per-frame input state, synthesizes events for the
// attached sampler, and drives the pre-render subscribers. Call exactly once
// per ebiten Update.
func (d *EbitenDriver) Tick() {
	// Focus transitions first: a blur must clear held state before any new
	// transitions are queued.
	if focused := ebiten.IsFocused(); focused != d.focused {
		d.focused = focused
		if !focused {
			d.emitBlur()
		}
	}

	d.keyBuf = inpututil.AppendJustPressedKeys(d.keyBuf[:0])
	for _, k := range d.keyBuf {
		if code := keyCode(k); code != "" {
			d.emitKeyDown(code)
		}
	}
	d.keyBuf = inpututil.AppendJustReleasedKeys(d.keyBuf[:0])
	for _, k := range d.keyBuf {
		if code := keyCode(k); code != "" {
			d.emitKeyUp(code)
		}
	}

	for _, b := range ebitenButtons {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			d.emitButtonDown(b.id)
		}
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			d.emitButtonUp(b.id)
		}
	}

	if x, y := ebiten.CursorPosition(); !d.moved || x != d.cursorX || y != d.cursorY {
		d.cursorX, d.cursorY = x, y
		d.moved = true
		d.emitMove(float64(x), float64(y))
	}

	now := time.Now()
	dt := 1.0 / 60.0
	if !d.last.IsZero() {
		dt = now.Sub(d.last).Seconds()
	}
	d.last = now
	d.preRender.each(func(fn func(float64)) { fn(dt) })
}

// keyCode maps an ebiten key onto its browser-style KeyboardEvent.code
// string. Unmapped keys return "".
func keyCode(k ebiten.Key) string {
	switch {
	case k >= ebiten.KeyA && k <= ebiten.KeyZ:
		return "Key" + string(rune('A'+k-ebiten.KeyA))
	case k >= ebiten.KeyDigit0 && k <= ebiten.KeyDigit9:
		return "Digit" + string(rune('0'+k-ebiten.KeyDigit0))
	case k >= ebiten.KeyF1 && k <= ebiten.KeyF9:
		return "F" + string(rune('1'+k-ebiten.KeyF1))
	}
	switch k {
	case ebiten.KeyF10:
		return "F10"
	case ebiten.KeyF11:
		return "F11"
	case ebiten.KeyF12:
		return "F12"
	case ebiten.KeyArrowUp:
		return "ArrowUp"
	case ebiten.KeyArrowDown:
		return "ArrowDown"
	case ebiten.KeyArrowLeft:
		return "ArrowLeft"
	case ebiten.KeyArrowRight:
		return "ArrowRight"
	case ebiten.KeySpace:
		return "Space"
	case ebiten.KeyEnter:
		return "Enter"
	case ebiten.KeyEscape:
		return "Escape"
	case ebiten.KeyTab:
		return "Tab"
	case ebiten.KeyBackspace:
		return "Backspace"
	case ebiten.KeyDelete:
		return "Delete"
	case ebiten.KeyShiftLeft:
		return "ShiftLeft"
	case ebiten.KeyShiftRight:
		return "ShiftRight"
	case ebiten.KeyControlLeft:
		return "ControlLeft"
	case ebiten.KeyControlRight:
		return "ControlRight"
	case ebiten.KeyAltLeft:
		return "AltLeft"
	case ebiten.KeyAltRight:
		return "AltRight"
	case ebiten.KeyMetaLeft:
		return "MetaLeft"
	case ebiten.KeyMetaRight:
		return "MetaRight"
	case ebiten.KeyHome:
		return "Home"
	case ebiten.KeyEnd:
		return "End"
	case ebiten.KeyPageUp:
		return "PageUp"
	case ebiten.KeyPageDown:
		return "PageDown"
	case ebiten.KeyMinus:
		return "Minus"
	case ebiten.KeyEqual:
		return "Equal"
	case ebiten.KeyComma:
		return "Comma"
	case ebiten.KeyPeriod:
		return "Period"
	case ebiten.KeySlash:
		return "Slash"
	case ebiten.KeyBackslash:
		return "Backslash"
	case ebiten.KeySemicolon:
		return "Semicolon"
	case ebiten.KeyQuote:
		return "Quote"
	case ebiten.KeyBracketLeft:
		return "BracketLeft"
	case ebiten.KeyBracketRight:
		return "BracketRight"
	case ebiten.KeyBackquote:
		return "Backquote"
	case ebiten.KeyCapsLock:
		return "CapsLock"
	}
	return ""
}
