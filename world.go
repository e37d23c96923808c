package bramble

import (
	"fmt"
)

// PrimitiveSpec describes one primitive to spawn. Scripts pass it as an
// object literal: world.spawnPrimitive({type: "box", size: 2, color: rgb(1, 0, 0)}).
// Zero dimension fields take per-type defaults; nil Position/Rotation/Scale
// leave the host's defaults untouched.
type PrimitiveSpec struct {
	Type PrimitiveType `json:"type"`
	Name string        `json:"name"`

	// Size is a shorthand edge/diameter applied wherever a more specific
	// field is zero.
	Size      float64 `json:"size"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Depth     float64 `json:"depth"`
	Diameter  float64 `json:"diameter"`
	Thickness float64 `json:"thickness"` // torus tube thickness

	Color    *Color       `json:"color"`
	Position *Vec3        `json:"position"`
	Rotation *Vec3        `json:"rotation"`
	Scale    *Vec3        `json:"scale"`
	Physics  *PhysicsSpec `json:"physics"`
}

// PhysicsSpec requests a physics body. Nil fields take the defaults (mass 1,
// restitution 0.75).
type PhysicsSpec struct {
	Mass        *float64 `json:"mass"`
	Restitution *float64 `json:"restitution"`
}

const (
	defaultEdge           = 1.0
	defaultTorusThickness = 0.3
	defaultMass           = 1.0
	defaultRestitution    = 0.75
)

// resolve validates the spec's type and fills per-type dimension and color
// defaults, returning the fully resolved copy handed to the host.
func (s PrimitiveSpec) resolve() (PrimitiveSpec, error) {
	if !s.Type.valid() {
		return s, &InvalidPrimitiveTypeError{Type: s.Type}
	}
	edge := s.Size
	if edge == 0 {
		edge = defaultEdge
	}
	switch s.Type {
	case PrimitiveBox, PrimitivePlane:
		if s.Width == 0 {
			s.Width = edge
		}
		if s.Height == 0 {
			s.Height = edge
		}
		if s.Depth == 0 {
			s.Depth = edge
		}
	case PrimitiveSphere:
		if s.Diameter == 0 {
			s.Diameter = edge
		}
	case PrimitiveCylinder, PrimitiveCone:
		if s.Diameter == 0 {
			s.Diameter = edge
		}
		if s.Height == 0 {
			s.Height = edge
		}
	case PrimitiveTorus:
		if s.Diameter == 0 {
			s.Diameter = edge
		}
		if s.Thickness == 0 {
			s.Thickness = defaultTorusThickness
		}
	}
	if s.Color == nil {
		gray := ColorGray
		s.Color = &gray
	}
	return s, nil
}

// Contact describes one collision to a registered callback. Each participant
// receives the other object, the shared contact point, and the contact
// normal oriented outward from its own side.
type Contact struct {
	Other   Object  `json:"other"`
	Point   Vec3    `json:"point"`
	Normal  Vec3    `json:"normal"`
	Impulse float64 `json:"impulse"`
}

// ContactHandler observes collision start or end events for one object.
type ContactHandler func(Contact)

// World tracks every scene object created by running behaviors — primitives,
// clones, physics bindings, collision registrations, tweens — so one session
// can be torn down atomically without leaving residue in the host scene.
//
// The world owns the tracking of these objects; the objects themselves live
// in the host scene. It never disposes an object it did not create.
type World struct {
	scene   Scene
	physics PhysicsEngine
	log     Logger

	objects map[uint64]Object
	order   []uint64 // insertion order, for deterministic teardown
	bodies  map[uint64]Body

	contactStart map[uint64][]ContactHandler
	contactEnd   map[uint64][]ContactHandler
	contactsSub  Subscription

	tweens []*Tween
}

// NewWorld creates an empty world scoped to one session. physics may be nil
// when the host runs without simulation; physics requests then log warnings
// and are skipped.
func NewWorld(scene Scene, physics PhysicsEngine, log Logger) *World {
	if log == nil {
		log = NopLogger{}
	}
	return &World{
		scene:        scene,
		physics:      physics,
		log:          log,
		objects:      make(map[uint64]Object),
		bodies:       make(map[uint64]Body),
		contactStart: make(map[uint64][]ContactHandler),
		contactEnd:   make(map[uint64][]ContactHandler),
	}
}

// --- Creation ---

// SpawnPrimitive validates spec, fills defaults (unit edge/diameter, torus
// thickness 0.3, neutral gray), builds the object through the host scene,
// applies any given transform, attaches physics when requested, and
// registers everything for teardown.
func (w *World) SpawnPrimitive(spec PrimitiveSpec) (Object, error) {
	resolved, err := spec.resolve()
	if err != nil {
		return nil, err
	}
	obj, err := w.scene.CreatePrimitive(resolved)
	if err != nil {
		return nil, fmt.Errorf("spawn %s: %w", resolved.Type, err)
	}
	if resolved.Position != nil {
		obj.SetPosition(*resolved.Position)
	}
	if resolved.Rotation != nil {
		obj.SetRotation(*resolved.Rotation)
	}
	if resolved.Scale != nil {
		obj.SetScale(*resolved.Scale)
	}
	w.track(obj)
	if resolved.Physics != nil {
		if err := w.AddPhysics(obj, resolved.Physics); err != nil {
			w.log.Warn("physics request failed at spawn", "node", obj.Name(), "error", err)
		}
	}
	return obj, nil
}

// Clone duplicates source, deep-cloning its material so mutating the clone's
// appearance never affects the source. The source's physics binding is not
// duplicated. The clone is registered for teardown.
func (w *World) Clone(source Object, name string) (Object, error) {
	clone := source.Clone(name)
	if clone == nil {
		return nil, &CloneFailedError{Source: source.Name()}
	}
	if mat := clone.Material(); mat != nil {
		if dup := mat.Clone(); dup != nil {
			clone.SetMaterial(dup)
		}
	}
	w.track(clone)
	return clone, nil
}

// AddPhysics attaches a convex-hull body to obj. A nil opts means the
// defaults (mass 1, restitution 0.75). If obj already has a tracked binding
// the call logs a warning and does nothing — a body is never double-attached.
func (w *World) AddPhysics(obj Object, opts *PhysicsSpec) error {
	if w.physics == nil {
		w.log.Warn("physics requested but no physics engine is attached", "node", obj.Name())
		return nil
	}
	if _, exists := w.bodies[obj.ID()]; exists {
		w.log.Warn("object already has a physics body", "node", obj.Name())
		return nil
	}
	mass, restitution := defaultMass, defaultRestitution
	if opts != nil {
		if opts.Mass != nil {
			mass = *opts.Mass
		}
		if opts.Restitution != nil {
			restitution = *opts.Restitution
		}
	}
	body, err := w.physics.CreateBody(obj, ShapeConvexHull, BodyOptions{Mass: mass, Restitution: restitution})
	if err != nil {
		return fmt.Errorf("create body for %q: %w", obj.Name(), err)
	}
	w.bodies[obj.ID()] = body
	return nil
}

// --- Destruction ---

// DestroyNode disposes one tracked object. Untracked nodes log a warning and
// are left alone — the world never disposes objects it does not own.
//
// Disposal order matters: the physics binding goes first (so the simulation
// never sees a half-destroyed node), then the material, then the collision
// registrations, then the object itself.
func (w *World) DestroyNode(obj Object) {
	id := obj.ID()
	if _, tracked := w.objects[id]; !tracked {
		w.log.Warn("destroy of untracked node ignored", "node", obj.Name())
		return
	}
	if body, ok := w.bodies[id]; ok {
		body.Dispose()
		delete(w.bodies, id)
	}
	if mat := obj.Material(); mat != nil {
		mat.Dispose()
	}
	delete(w.contactStart, id)
	delete(w.contactEnd, id)
	obj.Dispose()
	w.untrack(id)
}

// DisposeAll is the session-end bulk teardown: collision observer released,
// registries cleared, tweens cancelled, every tracked body disposed, then
// every tracked object's material and the object itself, in creation order.
// Safe to call on an empty or already-disposed world.
func (w *World) DisposeAll() {
	if w.contactsSub != nil {
		w.contactsSub.Unsubscribe()
		w.contactsSub = nil
	}
	clear(w.contactStart)
	clear(w.contactEnd)
	for _, t := range w.tweens {
		t.Cancel()
	}
	w.tweens = nil
	for id, body := range w.bodies {
		body.Dispose()
		delete(w.bodies, id)
	}
	for _, id := range w.order {
		obj := w.objects[id]
		if mat := obj.Material(); mat != nil {
			mat.Dispose()
		}
		obj.Dispose()
		delete(w.objects, id)
	}
	w.order = nil
	if globalDebug {
		debugCheckTracking(w)
	}
}

// --- Collision routing ---

// OnContactStart registers fn for collision-start events on obj.
// Registration is additive: multiple behaviors may observe the same object.
func (w *World) OnContactStart(obj Object, fn ContactHandler) {
	w.contactStart[obj.ID()] = append(w.contactStart[obj.ID()], fn)
}

// OnContactEnd registers fn for collision-end events on obj.
func (w *World) OnContactEnd(obj Object, fn ContactHandler) {
	w.contactEnd[obj.ID()] = append(w.contactEnd[obj.ID()], fn)
}

// ObserveContacts subscribes once to the physics engine's collision feed and
// starts fanning events out to registered callbacks. Further calls are
// no-ops.
func (w *World) ObserveContacts() {
	if w.contactsSub != nil || w.physics == nil {
		return
	}
	w.contactsSub = w.physics.SubscribeContacts(w.routeContact)
}

// routeContact classifies one raw event and dispatches it to both
// participants' callbacks. Each side sees the other object; the second
// participant sees the normal negated. Intermediate "continuing" states are
// dropped.
func (w *World) routeContact(ev ContactEvent) {
	var registry map[uint64][]ContactHandler
	switch ev.Phase {
	case ContactStart:
		registry = w.contactStart
	case ContactEnd:
		registry = w.contactEnd
	default:
		return
	}
	if ev.A == nil || ev.B == nil {
		return
	}
	w.dispatch(registry[ev.A.ID()], Contact{
		Other: ev.B, Point: ev.Point, Normal: ev.Normal, Impulse: ev.Impulse,
	})
	w.dispatch(registry[ev.B.ID()], Contact{
		Other: ev.A, Point: ev.Point, Normal: ev.Normal.Neg(), Impulse: ev.Impulse,
	})
}

// dispatch invokes each callback with individual exception isolation: one
// throwing callback never starves the rest.
func (w *World) dispatch(handlers []ContactHandler, c Contact) {
	for _, fn := range handlers {
		w.safeDispatch(fn, c)
	}
}

func (w *World) safeDispatch(fn ContactHandler, c Contact) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("collision callback failed", "error", fmt.Sprint(r))
		}
	}()
	fn(c)
}

// --- Tracking ---

func (w *World) track(obj Object) {
	w.objects[obj.ID()] = obj
	w.order = append(w.order, obj.ID())
	if globalDebug {
		debugCheckTracking(w)
	}
}

func (w *World) untrack(id uint64) {
	delete(w.objects, id)
	for i, oid := range w.order {
		if oid == id {
			copy(w.order[i:], w.order[i+1:])
			w.order = w.order[:len(w.order)-1]
			break
		}
	}
	if globalDebug {
		debugCheckTracking(w)
	}
}

// Tracked reports whether obj was created through this world and not yet
// destroyed.
func (w *World) Tracked(obj Object) bool {
	_, ok := w.objects[obj.ID()]
	return ok
}

// TrackedCount returns the number of live runtime-created objects.
func (w *World) TrackedCount() int { return len(w.objects) }
