package bramble

import "context"

// Collaborator interfaces. The host engine owns the scene graph, renderer,
// physics simulation, and asset storage; the runtime reaches them only
// through the narrow surfaces below. Tests implement them with in-memory
// fakes.

// Object is a handle to one scene-graph node owned by the host. IDs must be
// stable and unique for the lifetime of the object; the runtime keys its
// tracking sets and collision registries on them.
//
// Object methods are visible to scripts in camelCase (setPosition, clone,
// and so on), so hosts should keep them cheap and exception-free.
type Object interface {
	ID() uint64
	Name() string
	SetName(name string)

	// Metadata returns the host's free-form metadata map for this node, or
	// nil. The runtime reads only [MetadataBehaviors] from it.
	Metadata() map[string]any

	Position() Vec3
	SetPosition(p Vec3)
	// Rotation is Euler angles in radians.
	Rotation() Vec3
	SetRotation(r Vec3)
	Scale() Vec3
	SetScale(s Vec3)

	// Material returns the object's surface material, or nil.
	Material() Material
	SetMaterial(m Material)

	// Clone duplicates this object in the host scene. A nil return means
	// the clone failed. The material is shared by the host; the runtime
	// deep-clones it afterwards so clones never alias the source's look.
	Clone(name string) Object

	// Dispose removes the object from the host scene. Called exactly once
	// per tracked object, after its physics binding and material are gone.
	Dispose()
}

// Material is a handle to one surface material owned by the host.
type Material interface {
	Color() Color
	SetColor(c Color)
	// Clone returns an independent copy, or nil on failure.
	Clone() Material
	Dispose()
}

// Scene is the host scene handle a session runs against. The four node
// accessors cover every category the orchestrator scans for behavior
// attachments.
type Scene interface {
	Meshes() []Object
	Lights() []Object
	Cameras() []Object
	Transforms() []Object

	// ActiveCamera returns the camera injected into behaviors, or nil.
	ActiveCamera() Object

	// CreatePrimitive builds the geometry and material for a fully resolved
	// spec (type validated, dimensions and color defaulted) and returns the
	// new node. Position/rotation/scale and physics are applied by the
	// caller afterwards.
	CreatePrimitive(spec PrimitiveSpec) (Object, error)
}

// AssetSource resolves behavior source paths to script text. A miss must be
// reported as [ErrSourceNotFound] (possibly wrapped). Fetches happen
// sequentially during [Runtime.Begin]; ctx bounds each one.
type AssetSource interface {
	FetchSource(ctx context.Context, path string) (string, error)
}

// RenderLoop is the host's frame pump. The runtime subscribes exactly one
// pre-render callback per session and releases it on every Stop path.
type RenderLoop interface {
	// SubscribeBeforeRender registers fn to run once per frame before the
	// host renders, with the frame's delta time in seconds.
	SubscribeBeforeRender(fn func(dt float64)) Subscription
}

// BodyOptions parameterizes physics body creation.
type BodyOptions struct {
	Mass        float64
	Restitution float64
}

// Body is a handle to one physics body owned by the host simulation.
type Body interface {
	Dispose()
}

// ContactEvent is one raw collision notification from the host physics
// engine. Point and Normal are in world space, the normal oriented outward
// from participant A.
type ContactEvent struct {
	A       Object
	B       Object
	Phase   ContactPhase
	Point   Vec3
	Normal  Vec3
	Impulse float64
}

// PhysicsEngine is the host physics collaborator. Only body creation and the
// collision-event feed are consumed.
type PhysicsEngine interface {
	CreateBody(obj Object, shape BodyShape, opts BodyOptions) (Body, error)
	SubscribeContacts(fn func(ContactEvent)) Subscription
}

// InputTarget is a raw input event source the sampler subscribes to: a
// window, a canvas, or a [SyntheticInput]. Key codes are browser-style
// KeyboardEvent.code strings ("KeyA", "ArrowUp", "Space").
type InputTarget interface {
	SubscribeKeyDown(fn func(code string)) Subscription
	SubscribeKeyUp(fn func(code string)) Subscription
	SubscribePointerMove(fn func(x, y float64)) Subscription
	SubscribeButtonDown(fn func(button int)) Subscription
	SubscribeButtonUp(fn func(button int)) Subscription
	// SubscribeBlur fires when the target loses input focus.
	SubscribeBlur(fn func()) Subscription
}
