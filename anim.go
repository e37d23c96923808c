package bramble

import (
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Tween is one value interpolation registered with a [World]. It is stepped
// once per frame by the session tick and removed when finished or cancelled.
type Tween struct {
	g     *gween.Tween
	apply func(float32)
	done  bool
}

// Cancel stops the tween; its apply callback will not run again.
func (t *Tween) Cancel() { t.done = true }

// Done reports whether the tween has finished or been cancelled.
func (t *Tween) Done() bool { return t.done }

// easings maps script-facing easing names onto gween's ease functions.
var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"inQuad":       ease.InQuad,
	"outQuad":      ease.OutQuad,
	"inOutQuad":    ease.InOutQuad,
	"inCubic":      ease.InCubic,
	"outCubic":     ease.OutCubic,
	"inOutCubic":   ease.InOutCubic,
	"inSine":       ease.InSine,
	"outSine":      ease.OutSine,
	"inOutSine":    ease.InOutSine,
	"inExpo":       ease.InExpo,
	"outExpo":      ease.OutExpo,
	"inOutExpo":    ease.InOutExpo,
	"inBack":       ease.InBack,
	"outBack":      ease.OutBack,
	"inOutBack":    ease.InOutBack,
	"inElastic":    ease.InElastic,
	"outElastic":   ease.OutElastic,
	"inOutElastic": ease.InOutElastic,
	"inBounce":     ease.InBounce,
	"outBounce":    ease.OutBounce,
	"inOutBounce":  ease.InOutBounce,
}

// Animate interpolates from one value to another over duration seconds,
// invoking apply with the current value on every frame. An empty easing
// means linear; an unknown name logs a warning and falls back to linear.
//
// Scripts use it for simple procedural motion:
//
//	this.world.animate(0, 4, 1.5, "outBounce", y => this.node.setPosition(vec3(0, y, 0)));
//
// The tween is tracked by the world and stops at session teardown.
func (w *World) Animate(from, to, duration float32, easing string, apply func(float32)) *Tween {
	fn := ease.Linear
	if easing != "" {
		named, ok := easings[easing]
		if !ok {
			w.log.Warn("unknown easing, using linear", "easing", easing)
		} else {
			fn = named
		}
	}
	t := &Tween{g: gween.New(from, to, duration, fn), apply: apply}
	w.tweens = append(w.tweens, t)
	return t
}

// step advances all live tweens by dt seconds, applying their current values
// and dropping the finished ones. Apply callbacks are exception-isolated
// like every other script-facing dispatch.
//
// The live list is swapped out before iterating: an apply callback may call
// Animate (chaining a follow-up tween), and that registration lands in the
// fresh list to be stepped from the next tick on.
func (w *World) step(dt float64) {
	if len(w.tweens) == 0 {
		return
	}
	running := w.tweens
	w.tweens = nil
	var keep []*Tween
	for _, t := range running {
		if t.done {
			continue
		}
		v, finished := t.g.Update(float32(dt))
		w.safeApply(t, v)
		if finished || t.done {
			t.done = true
			continue
		}
		keep = append(keep, t)
	}
	// Survivors first, then anything registered during this step.
	w.tweens = append(keep, w.tweens...)
}

func (w *World) safeApply(t *Tween, v float32) {
	defer func() {
		if r := recover(); r != nil {
			t.done = true
			w.log.Error("tween callback failed", "error", fmt.Sprint(r))
		}
	}()
	t.apply(v)
}
