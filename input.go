package bramble

// Input samples a raw event source into a per-frame-consistent snapshot.
// Raw transitions buffer between ticks and rotate into the current-frame
// sets exactly once per Tick, giving edge-triggered pressed/released
// semantics: both are true only for the single tick following the underlying
// transition.
//
// Input is single-threaded by contract: event callbacks and Tick run on the
// render loop's thread. Behaviors read it, never mutate it.
type Input struct {
	target InputTarget
	subs   []Subscription

	held     map[string]struct{}
	pressed  map[string]struct{}
	released map[string]struct{}
	buttons  map[int]struct{}

	// raw transitions buffered since the last Tick, in arrival order. Order
	// matters: a release and re-press of the same key within one frame must
	// replay as release then press, or the key would read stuck-up.
	pendingKeys    []keyTransition
	pendingButtons []buttonTransition

	pos     Vec2
	lastPos Vec2
	delta   Vec2
}

type keyTransition struct {
	code string
	down bool
}

type buttonTransition struct {
	button int
	down   bool
}

// NewInput creates a detached sampler with empty state.
func NewInput() *Input {
	i := &Input{}
	i.reset()
	return i
}

// Attach subscribes the sampler to target's raw events. An already-attached
// sampler detaches first, so state never leaks across targets.
func (i *Input) Attach(target InputTarget) {
	if i.target != nil {
		i.Detach()
	}
	i.target = target
	i.subs = append(i.subs,
		target.SubscribeKeyDown(i.queueKeyDown),
		target.SubscribeKeyUp(i.queueKeyUp),
		target.SubscribePointerMove(i.trackPointer),
		target.SubscribeButtonDown(i.queueButtonDown),
		target.SubscribeButtonUp(i.queueButtonUp),
		target.SubscribeBlur(i.clearHeld),
	)
}

// Detach removes every subscription Attach installed and resets all state to
// empty, so the next session starts with a clean slate. Safe to call when
// not attached.
func (i *Input) Detach() {
	for _, s := range i.subs {
		s.Unsubscribe()
	}
	i.subs = nil
	i.target = nil
	i.reset()
}

// Tick rotates the buffered transitions into the current-frame snapshot and
// computes the frame's pointer delta. Called once per frame by the
// orchestrator, before behaviors update.
func (i *Input) Tick() {
	clear(i.pressed)
	clear(i.released)

	for _, tr := range i.pendingKeys {
		if _, down := i.held[tr.code]; down == tr.down {
			continue // key auto-repeat (or a stray up); not a transition
		}
		if tr.down {
			i.held[tr.code] = struct{}{}
			i.pressed[tr.code] = struct{}{}
		} else {
			delete(i.held, tr.code)
			i.released[tr.code] = struct{}{}
		}
	}
	for _, tr := range i.pendingButtons {
		if tr.down {
			i.buttons[tr.button] = struct{}{}
		} else {
			delete(i.buttons, tr.button)
		}
	}
	i.pendingKeys = i.pendingKeys[:0]
	i.pendingButtons = i.pendingButtons[:0]

	i.delta = Vec2{X: i.pos.X - i.lastPos.X, Y: i.pos.Y - i.lastPos.Y}
	i.lastPos = i.pos
}

// --- Queries ---

// IsKeyDown reports whether the key is currently held.
func (i *Input) IsKeyDown(code string) bool {
	_, ok := i.held[code]
	return ok
}

// IsKeyPressed reports whether the key went down during the last Tick.
func (i *Input) IsKeyPressed(code string) bool {
	_, ok := i.pressed[code]
	return ok
}

// IsKeyReleased reports whether the key went up during the last Tick.
func (i *Input) IsKeyReleased(code string) bool {
	_, ok := i.released[code]
	return ok
}

// IsButtonDown reports whether the mouse button is currently held.
func (i *Input) IsButtonDown(button int) bool {
	_, ok := i.buttons[button]
	return ok
}

// Position returns the absolute pointer position.
func (i *Input) Position() Vec2 { return i.pos }

// Delta returns the pointer movement accumulated over the last frame.
func (i *Input) Delta() Vec2 { return i.delta }

// --- Event callbacks ---

func (i *Input) queueKeyDown(code string) {
	i.pendingKeys = append(i.pendingKeys, keyTransition{code: code, down: true})
}

func (i *Input) queueKeyUp(code string) {
	i.pendingKeys = append(i.pendingKeys, keyTransition{code: code, down: false})
}

func (i *Input) trackPointer(x, y float64) {
	i.pos = Vec2{X: x, Y: y}
}

func (i *Input) queueButtonDown(button int) {
	i.pendingButtons = append(i.pendingButtons, buttonTransition{button: button, down: true})
}

func (i *Input) queueButtonUp(button int) {
	i.pendingButtons = append(i.pendingButtons, buttonTransition{button: button, down: false})
}

// clearHeld drops all held-key and held-button state on focus loss so keys
// released while unfocused never stick. Cumulative pointer position is kept.
func (i *Input) clearHeld() {
	clear(i.held)
	clear(i.buttons)
	clear(i.pressed)
	clear(i.released)
	i.pendingKeys = i.pendingKeys[:0]
	i.pendingButtons = i.pendingButtons[:0]
}

// reset returns every field to its zero/empty state.
func (i *Input) reset() {
	i.held = make(map[string]struct{})
	i.pressed = make(map[string]struct{})
	i.released = make(map[string]struct{})
	i.buttons = make(map[int]struct{})
	i.pendingKeys = nil
	i.pendingButtons = nil
	i.pos = Vec2{}
	i.lastPos = Vec2{}
	i.delta = Vec2{}
}
