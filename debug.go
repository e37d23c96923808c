package bramble

import (
	"fmt"
	"os"
)

// globalDebug enables invariant checks on the world's tracking sets.
// Off by default; the checks cost a map walk per mutation.
var globalDebug bool

// SetDebug toggles internal consistency checking. When enabled, every
// tracking mutation verifies that the tracking map and its insertion-order
// index agree, and violations panic with a descriptive message. Intended for
// host development builds and tests, not production sessions.
func SetDebug(enabled bool) {
	globalDebug = enabled
}

// debugCheckTracking panics when the tracking map and order slice diverge:
// an object registered twice, or removed from one side only.
func debugCheckTracking(w *World) {
	if len(w.objects) != len(w.order) {
		panic(fmt.Sprintf("bramble debug: tracking map has %d objects but order index has %d",
			len(w.objects), len(w.order)))
	}
	seen := make(map[uint64]struct{}, len(w.order))
	for _, id := range w.order {
		if _, dup := seen[id]; dup {
			panic(fmt.Sprintf("bramble debug: object %d appears twice in order index", id))
		}
		seen[id] = struct{}{}
		if _, ok := w.objects[id]; !ok {
			panic(fmt.Sprintf("bramble debug: order index references untracked object %d", id))
		}
	}
	for id := range w.bodies {
		if _, ok := w.objects[id]; !ok {
			// Bodies may outlive spawn tracking only for host-owned objects
			// given physics via AddPhysics; note it rather than panic.
			_, _ = fmt.Fprintf(os.Stderr,
				"[bramble] debug: physics binding for object %d not in tracking set\n", id)
		}
	}
}
