package bramble

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// State is the session state machine of a [Runtime].
type State uint8

const (
	StateIdle     State = iota // no session has run yet
	StateStarting              // Begin is enumerating, compiling, and starting behaviors
	StateRunning               // ticking with the render loop
	StateStopped               // session ended; Begin may be called again
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Options configures a [Runtime]. Every collaborator is optional: a nil
// Assets means sessions run without behaviors (attachments are skipped with
// a warning), Physics and Loop may be nil for hosts without simulation or
// with a manually driven tick, and a nil Log discards output.
type Options struct {
	Assets  AssetSource
	Physics PhysicsEngine
	Loop    RenderLoop
	Log     Logger
}

// activeBehavior pairs one live script instance with the node it is attached
// to. The runtime does not own the node's lifetime — the host scene does.
type activeBehavior struct {
	beh  *Behavior
	node Object
	path string
}

// Runtime is the session orchestrator. One Begin/Stop cycle discovers the
// scene's behavior attachments, compiles and instantiates them, runs every
// start hook, then drives update in lockstep with the render loop until
// Stop runs destroy and unwinds every subscription and tracked object.
//
// All lifecycle calls run synchronously on the render loop's thread; there
// is exactly one logical thread of control and ticks never overlap.
type Runtime struct {
	assets  AssetSource
	physics PhysicsEngine
	loop    RenderLoop
	log     Logger

	state     State
	sessionID string
	startedAt time.Time

	scene  Scene
	world  *World
	input  *Input
	active []activeBehavior

	preRenderSub Subscription
}

// New creates a Runtime with the given collaborators.
func New(opts Options) *Runtime {
	log := opts.Log
	if log == nil {
		log = NopLogger{}
	}
	return &Runtime{
		assets:  opts.Assets,
		physics: opts.Physics,
		loop:    opts.Loop,
		log:     log,
		state:   StateIdle,
	}
}

// State returns the current session state.
func (r *Runtime) State() State { return r.state }

// World returns the session's runtime world, or nil outside a session.
func (r *Runtime) World() *World { return r.world }

// Input returns the session's input sampler, or nil outside a session.
func (r *Runtime) Input() *Input { return r.input }

// Begin starts one session against scene. It activates the input sampler on
// target (which may be nil for input-less hosts), compiles and instantiates
// every behavior attachment, runs all start hooks, and subscribes the
// per-frame tick.
//
// A single broken script never aborts startup: fetch misses, compile
// failures, and instantiation or start exceptions are logged against the
// offending path and skipped. Begin only fails outright when a session is
// already live.
func (r *Runtime) Begin(ctx context.Context, scene Scene, target InputTarget) error {
	if r.state == StateStarting || r.state == StateRunning {
		return ErrSessionActive
	}
	r.state = StateStarting
	r.sessionID = uuid.NewString()
	r.startedAt = time.Now()
	r.scene = scene

	r.input = NewInput()
	if target != nil {
		r.input.Attach(target)
	}
	r.world = NewWorld(scene, r.physics, r.log)
	r.world.ObserveContacts()

	camera := scene.ActiveCamera()
	compiler := NewCompiler(r.log)

	nodes := sceneNodes(scene)
	if r.assets == nil {
		r.log.Warn("no asset source configured, skipping behavior attachments",
			"session", r.sessionID)
		nodes = nil
	}
	for _, node := range nodes {
		for _, path := range behaviorPaths(node) {
			src, err := r.assets.FetchSource(ctx, path)
			if err != nil {
				r.log.Error("behavior source fetch failed",
					"session", r.sessionID, "node", node.Name(), "path", path, "error", err)
				continue
			}
			prog, err := compiler.Compile(path, src)
			if err != nil {
				r.log.Error("behavior compile failed",
					"session", r.sessionID, "node", node.Name(), "path", path, "error", err)
				continue
			}
			beh, err := prog.New()
			if err != nil {
				r.log.Error("behavior instantiation failed",
					"session", r.sessionID, "node", node.Name(), "path", path, "error", err)
				continue
			}
			beh.Bind(node, scene, r.world, r.input, camera)
			r.active = append(r.active, activeBehavior{beh: beh, node: node, path: path})
		}
	}

	// Every instance exists before any start runs, so one script's start can
	// safely look up another script's node without ordering races.
	for _, a := range r.active {
		if err := a.beh.Start(); err != nil {
			r.log.Error("start hook failed", "session", r.sessionID, "path", a.path, "error", err)
		}
	}

	if r.loop != nil {
		r.preRenderSub = r.loop.SubscribeBeforeRender(r.Tick)
	}
	r.state = StateRunning
	r.log.Info("session started", "session", r.sessionID, "behaviors", len(r.active))
	return nil
}

// Tick advances the session by one frame: refresh the input snapshot, step
// world tweens, write the clock onto every instance, then run every update
// in the same fixed order. Exceptions from an individual update are logged
// and do not stop the remaining instances.
//
// The runtime calls Tick through the render loop subscription; hosts without
// a RenderLoop collaborator may drive it directly.
func (r *Runtime) Tick(dt float64) {
	if r.state != StateRunning {
		return
	}
	r.input.Tick()
	r.world.step(dt)

	elapsed := time.Since(r.startedAt).Seconds()
	for _, a := range r.active {
		a.beh.SetClock(elapsed, dt)
	}
	for _, a := range r.active {
		if err := a.beh.Update(); err != nil {
			r.log.Error("update hook failed", "session", r.sessionID, "path", a.path, "error", err)
		}
	}
}

// Stop ends the session: every destroy hook runs in construction order with
// the usual isolation, the render-loop subscription is released, the world
// is torn down, and the input sampler detaches. Stop is idempotent and safe
// to call even if Begin partially failed.
func (r *Runtime) Stop() {
	if r.state == StateIdle || r.state == StateStopped {
		return
	}
	for _, a := range r.active {
		if err := a.beh.Destroy(); err != nil {
			r.log.Error("destroy hook failed", "session", r.sessionID, "path", a.path, "error", err)
		}
	}
	r.active = nil
	if r.preRenderSub != nil {
		r.preRenderSub.Unsubscribe()
		r.preRenderSub = nil
	}
	if r.world != nil {
		r.world.DisposeAll()
	}
	if r.input != nil {
		r.input.Detach()
	}
	r.scene = nil
	r.state = StateStopped
	r.log.Info("session stopped", "session", r.sessionID)
}

// sceneNodes concatenates every host node category the orchestrator scans
// for attachments.
func sceneNodes(s Scene) []Object {
	var nodes []Object
	nodes = append(nodes, s.Meshes()...)
	nodes = append(nodes, s.Lights()...)
	nodes = append(nodes, s.Cameras()...)
	nodes = append(nodes, s.Transforms()...)
	return nodes
}

// behaviorPaths reads a node's ordered attachment list from its metadata.
// Hosts that deserialize metadata from JSON produce []any, so both slice
// shapes are accepted.
func behaviorPaths(node Object) []string {
	md := node.Metadata()
	if md == nil {
		return nil
	}
	switch v := md[MetadataBehaviors].(type) {
	case []string:
		return v
	case []any:
		paths := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				paths = append(paths, s)
			}
		}
		return paths
	}
	return nil
}
