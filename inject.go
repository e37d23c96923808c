package bramble

// --- Handler registry ---

type handler[T any] struct {
	id uint32
	fn T
}

// handlerList is a removable ordered callback registry. Removal uses
// copy+zero to avoid retaining a dangling closure in the backing array.
type handlerList[T any] struct {
	items  []handler[T]
	nextID uint32
}

func (l *handlerList[T]) add(fn T) Subscription {
	l.nextID++
	id := l.nextID
	l.items = append(l.items, handler[T]{id: id, fn: fn})
	return NewSubscription(func() { l.remove(id) })
}

func (l *handlerList[T]) remove(id uint32) {
	for i := range l.items {
		if l.items[i].id == id {
			copy(l.items[i:], l.items[i+1:])
			l.items[len(l.items)-1] = handler[T]{}
			l.items = l.items[:len(l.items)-1]
			return
		}
	}
}

func (l *handlerList[T]) each(call func(fn T)) {
	for _, h := range l.items {
		call(h.fn)
	}
}

// --- Event hub ---

// eventHub implements the InputTarget subscription surface over in-process
// handler lists. SyntheticInput and EbitenDriver both build on it.
type eventHub struct {
	keyDown     handlerList[func(string)]
	keyUp       handlerList[func(string)]
	pointerMove handlerList[func(float64, float64)]
	buttonDown  handlerList[func(int)]
	buttonUp    handlerList[func(int)]
	blur        handlerList[func()]
}

// SubscribeKeyDown registers a callback for key-down events.
func (h *eventHub) SubscribeKeyDown(fn func(code string)) Subscription {
	return h.keyDown.add(fn)
}

// SubscribeKeyUp registers a callback for key-up events.
func (h *eventHub) SubscribeKeyUp(fn func(code string)) Subscription {
	return h.keyUp.add(fn)
}

// SubscribePointerMove registers a callback for pointer movement.
func (h *eventHub) SubscribePointerMove(fn func(x, y float64)) Subscription {
	return h.pointerMove.add(fn)
}

// SubscribeButtonDown registers a callback for mouse-button presses.
func (h *eventHub) SubscribeButtonDown(fn func(button int)) Subscription {
	return h.buttonDown.add(fn)
}

// SubscribeButtonUp registers a callback for mouse-button releases.
func (h *eventHub) SubscribeButtonUp(fn func(button int)) Subscription {
	return h.buttonUp.add(fn)
}

// SubscribeBlur registers a callback for focus loss.
func (h *eventHub) SubscribeBlur(fn func()) Subscription {
	return h.blur.add(fn)
}

func (h *eventHub) emitKeyDown(code string) { h.keyDown.each(func(fn func(string)) { fn(code) }) }
func (h *eventHub) emitKeyUp(code string)   { h.keyUp.each(func(fn func(string)) { fn(code) }) }
func (h *eventHub) emitMove(x, y float64) {
	h.pointerMove.each(func(fn func(float64, float64)) { fn(x, y) })
}
func (h *eventHub) emitButtonDown(b int) { h.buttonDown.each(func(fn func(int)) { fn(b) }) }
func (h *eventHub) emitButtonUp(b int)   { h.buttonUp.each(func(fn func(int)) { fn(b) }) }
func (h *eventHub) emitBlur()            { h.blur.each(func(fn func()) { fn() }) }

// --- Synthetic input ---

// SyntheticInput is a programmatic [InputTarget]: events are emitted by
// calling its Emit methods instead of arriving from a window. Events flow
// through the sampler identically to real input, which makes it the natural
// target for tests and scripted input replays.
type SyntheticInput struct {
	eventHub
}

// NewSyntheticInput creates an empty synthetic event source.
func NewSyntheticInput() *SyntheticInput {
	return &SyntheticInput{}
}

// EmitKeyDown delivers a key-down transition for a browser-style key code
// such as "KeyA". It is consumed on the sampler's next Tick.
func (s *SyntheticInput) EmitKeyDown(code string) { s.emitKeyDown(code) }

// EmitKeyUp delivers a key-up transition.
func (s *SyntheticInput) EmitKeyUp(code string) { s.emitKeyUp(code) }

// EmitTap is a convenience that delivers a key-down followed by a key-up.
// After the next Tick the key reads as both pressed and released.
func (s *SyntheticInput) EmitTap(code string) {
	s.emitKeyDown(code)
	s.emitKeyUp(code)
}

// EmitMove delivers an absolute pointer position.
func (s *SyntheticInput) EmitMove(x, y float64) { s.emitMove(x, y) }

// EmitButtonDown delivers a mouse-button press.
func (s *SyntheticInput) EmitButtonDown(button int) { s.emitButtonDown(button) }

// EmitButtonUp delivers a mouse-button release.
func (s *SyntheticInput) EmitButtonUp(button int) { s.emitButtonUp(button) }

// EmitBlur delivers a focus-loss notification.
func (s *SyntheticInput) EmitBlur() { s.emitBlur() }
