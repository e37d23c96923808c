package bramble

import (
	"errors"
	"fmt"
)

// ErrSourceNotFound is returned (possibly wrapped) by an [AssetSource] when
// a behavior source path does not resolve. The orchestrator logs the miss
// and skips that one attachment.
var ErrSourceNotFound = errors.New("bramble: source not found")

// ErrSessionActive is returned by [Runtime.Begin] when a session is already
// starting or running.
var ErrSessionActive = errors.New("bramble: session already active")

// CompileError wraps a syntax or evaluation failure while compiling one unit
// of behavior source.
type CompileError struct {
	Path string
	Err  error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile %s: %v", e.Path, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// MalformedModuleError reports that a script evaluated cleanly but its
// default export is not constructable.
type MalformedModuleError struct {
	Path string
}

func (e *MalformedModuleError) Error() string {
	return fmt.Sprintf(
		"module %s has no constructable export: a behavior script must export a class extending Behavior, e.g. module.exports = class extends Behavior { ... }",
		e.Path)
}

// HookError reports an exception thrown from a behavior lifecycle hook.
// It is logged and isolated to the offending instance; it never aborts the
// session.
type HookError struct {
	Path string // source path of the behavior
	Hook string // "start", "update", or "destroy"
	Err  error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("%s hook of %s: %v", e.Hook, e.Path, e.Err)
}

func (e *HookError) Unwrap() error { return e.Err }

// InvalidPrimitiveTypeError reports a spawn request with a type outside the
// closed primitive set. It surfaces directly to the calling behavior, since
// it indicates a bug in that script.
type InvalidPrimitiveTypeError struct {
	Type PrimitiveType
}

func (e *InvalidPrimitiveTypeError) Error() string {
	return fmt.Sprintf("unknown primitive type %q (want box, sphere, cylinder, cone, torus, or plane)", string(e.Type))
}

// CloneFailedError reports that the host's clone operation yielded nothing.
type CloneFailedError struct {
	Source string // name of the object that was being cloned
}

func (e *CloneFailedError) Error() string {
	return fmt.Sprintf("clone of %q produced no object", e.Source)
}
