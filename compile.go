package bramble

import (
	"fmt"
	"strings"

	"github.com/dop251/goja"
)

// behaviorPrelude defines the base class every script subclasses. The three
// hooks default to no-ops so subclasses may implement any subset.
const behaviorPrelude = `
class Behavior {
	start() {}
	update() {}
	destroy() {}
}
`

// Compiler transforms one unit of behavior source text into an invocable
// constructor. Each Compile call evaluates the source in a freshly built,
// allow-listed goja VM: the only identifiers visible to the script are the
// ECMAScript intrinsics plus the symbols installed here. The Compiler holds
// no cache — compiling the same text twice yields two independent modules.
type Compiler struct {
	log Logger
}

// NewCompiler creates a Compiler that routes script console output and
// warnings to log.
func NewCompiler(log Logger) *Compiler {
	if log == nil {
		log = NopLogger{}
	}
	return &Compiler{log: log}
}

// Program is one compiled behavior module: a constructor bound to its own
// isolated VM. New may be called more than once; each call produces an
// independent instance inside that VM.
type Program struct {
	path string
	vm   *goja.Runtime
	ctor goja.Constructor
	log  Logger
}

// Compile evaluates source inside a fresh sandbox and returns its default
// export as a constructor. Failures are *CompileError (syntax or evaluation)
// or *MalformedModuleError (no constructable export).
func (c *Compiler) Compile(path, source string) (prog *Program, err error) {
	vm := goja.New()
	// One mapper for both directions: Go struct fields surface under their
	// json tag, Go methods surface with a lowercased first letter.
	vm.SetFieldNameMapper(goja.TagFieldNameMapper("json", true))

	defer func() {
		if r := recover(); r != nil {
			prog = nil
			err = &CompileError{Path: path, Err: fmt.Errorf("%v", r)}
		}
	}()

	module, err := c.install(vm, path)
	if err != nil {
		return nil, &CompileError{Path: path, Err: err}
	}

	if _, err := vm.RunScript(path, source); err != nil {
		return nil, &CompileError{Path: path, Err: err}
	}

	ctor, ok := goja.AssertConstructor(defaultExport(module))
	if !ok {
		return nil, &MalformedModuleError{Path: path}
	}
	return &Program{path: path, vm: vm, ctor: ctor, log: c.log}, nil
}

// New instantiates the module's exported class. The returned Behavior has
// not run any lifecycle hook yet.
func (p *Program) New() (b *Behavior, err error) {
	defer func() {
		if r := recover(); r != nil {
			b = nil
			err = fmt.Errorf("instantiate %s: %v", p.path, r)
		}
	}()
	self, err := p.ctor(nil)
	if err != nil {
		return nil, fmt.Errorf("instantiate %s: %w", p.path, err)
	}
	return newBehavior(p.vm, self, p.path, p.log), nil
}

// install populates the allow-list: the Behavior base class, the math value
// constructors, the augmented Math table, console, and the module/exports
// pair that receives the script's export. Nothing else is reachable.
func (c *Compiler) install(vm *goja.Runtime, path string) (*goja.Object, error) {
	if _, err := vm.RunScript("<prelude>", behaviorPrelude); err != nil {
		return nil, fmt.Errorf("prelude: %w", err)
	}

	vec2 := func(x, y float64) Vec2 { return Vec2{X: x, Y: y} }
	vec3 := func(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }
	rgb := func(r, g, b float64) Color { return Color{R: r, G: g, B: b, A: 1} }
	quat := func(x, y, z, w float64) Quat { return Quat{X: x, Y: y, Z: z, W: w} }
	for name, fn := range map[string]any{
		"vec2": vec2, "Vec2": vec2,
		"vec3": vec3, "Vec3": vec3,
		"rgb": rgb, "Color": rgb,
		"quat": quat, "Quat": quat,
		"eulerToQuat": EulerToQuat,
	} {
		if err := vm.Set(name, fn); err != nil {
			return nil, err
		}
	}

	if err := installMath(vm); err != nil {
		return nil, err
	}
	if err := c.installConsole(vm, path); err != nil {
		return nil, err
	}

	exports := vm.NewObject()
	module := vm.NewObject()
	if err := module.Set("exports", exports); err != nil {
		return nil, err
	}
	if err := vm.Set("module", module); err != nil {
		return nil, err
	}
	if err := vm.Set("exports", exports); err != nil {
		return nil, err
	}
	return module, nil
}

// installMath augments the VM's standard Math object with the game-dev
// helpers from mathx.go.
func installMath(vm *goja.Runtime) error {
	mathObj := vm.Get("Math").ToObject(vm)
	for name, fn := range map[string]any{
		"clamp":       Clamp,
		"lerp":        Lerp,
		"inverseLerp": InverseLerp,
		"smoothstep":  Smoothstep,
		"degToRad":    DegToRad,
		"radToDeg":    RadToDeg,
		"remap":       Remap,
		"randomRange": RandomRange,
		"moveTowards": MoveTowards,
		"pingPong":    PingPong,
	} {
		if err := mathObj.Set(name, fn); err != nil {
			return err
		}
	}
	return nil
}

// installConsole binds console.log/info/warn/error/debug to the injected
// logger, tagging every line with the script path.
func (c *Compiler) installConsole(vm *goja.Runtime, path string) error {
	console := vm.NewObject()
	for name, sink := range map[string]func(string, ...any){
		"log":   c.log.Info,
		"info":  c.log.Info,
		"warn":  c.log.Warn,
		"error": c.log.Error,
		"debug": c.log.Debug,
	} {
		if err := console.Set(name, consolePrint(sink, path)); err != nil {
			return err
		}
	}
	return vm.Set("console", console)
}

func consolePrint(sink func(string, ...any), path string) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, a := range call.Arguments {
			parts[i] = a.String()
		}
		sink(strings.Join(parts, " "), "script", path)
		return goja.Undefined()
	}
}

// defaultExport resolves the module's exported value: exports.default when
// set, otherwise module.exports itself (covering the
// `module.exports = class ...` form).
func defaultExport(module *goja.Object) goja.Value {
	exp := module.Get("exports")
	if obj, ok := exp.(*goja.Object); ok {
		if d := obj.Get("default"); d != nil && !goja.IsUndefined(d) && !goja.IsNull(d) {
			return d
		}
	}
	return exp
}
