package bramble

import (
	"fmt"

	"github.com/dop251/goja"
)

// Behavior wraps one live script instance. The host-injected fields appear
// on the instance as plain properties: node, scene, world, input, camera,
// deltaTime, elapsedTime. Lifecycle hooks are dispatched through it with
// exceptions recovered at this boundary — a throwing script never takes the
// session down.
type Behavior struct {
	path string
	vm   *goja.Runtime
	self *goja.Object
	log  Logger

	startFn   goja.Callable
	updateFn  goja.Callable
	destroyFn goja.Callable

	destroyed bool
}

func newBehavior(vm *goja.Runtime, self *goja.Object, path string, log Logger) *Behavior {
	return &Behavior{
		path:      path,
		vm:        vm,
		self:      self,
		log:       log,
		startFn:   hookFn(self, "start"),
		updateFn:  hookFn(self, "update"),
		destroyFn: hookFn(self, "destroy"),
	}
}

// hookFn resolves a lifecycle method through the prototype chain. Scripts
// that subclass Behavior always resolve (the base class defines no-op
// hooks); class-like factories may implement any subset.
func hookFn(self *goja.Object, name string) goja.Callable {
	fn, ok := goja.AssertFunction(self.Get(name))
	if !ok {
		return nil
	}
	return fn
}

// Path returns the source path this instance was compiled from.
func (b *Behavior) Path() string { return b.path }

// Bind injects the host-side dependencies onto the instance and zeroes its
// clock. Called once, before start.
func (b *Behavior) Bind(node Object, scene Scene, world *World, input *Input, camera Object) {
	_ = b.self.Set("node", b.vm.ToValue(node))
	_ = b.self.Set("scene", b.vm.ToValue(scene))
	_ = b.self.Set("world", b.vm.ToValue(world))
	_ = b.self.Set("input", b.vm.ToValue(input))
	_ = b.self.Set("camera", b.vm.ToValue(camera))
	b.SetClock(0, 0)
}

// SetClock writes the session-elapsed and frame-delta times (seconds) onto
// the instance. Called for every instance before any update runs.
func (b *Behavior) SetClock(elapsed, delta float64) {
	_ = b.self.Set("elapsedTime", elapsed)
	_ = b.self.Set("deltaTime", delta)
}

// Start runs the start hook. A thrown exception comes back as *HookError.
func (b *Behavior) Start() error {
	return b.call("start", b.startFn)
}

// Update runs the update hook. No-op after Destroy.
func (b *Behavior) Update() error {
	if b.destroyed {
		return nil
	}
	return b.call("update", b.updateFn)
}

// Destroy runs the destroy hook once; further Update and Destroy calls are
// no-ops.
func (b *Behavior) Destroy() error {
	if b.destroyed {
		return nil
	}
	b.destroyed = true
	return b.call("destroy", b.destroyFn)
}

// call invokes one hook with this-binding, converting both JS exceptions and
// host panics into *HookError.
func (b *Behavior) call(hook string, fn goja.Callable) (err error) {
	if fn == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = &HookError{Path: b.path, Hook: hook, Err: fmt.Errorf("%v", r)}
		}
	}()
	if _, cerr := fn(b.self); cerr != nil {
		return &HookError{Path: b.path, Hook: hook, Err: cerr}
	}
	return nil
}
