package bramble

import (
	"context"
	"fmt"
	"sync/atomic"
)

// In-memory collaborator fakes shared by the test files. A common events
// slice records disposal order so tests can assert the teardown sequence.

var fakeIDCounter uint64

func nextFakeID() uint64 { return atomic.AddUint64(&fakeIDCounter, 1) }

// --- Material ---

type fakeMaterial struct {
	label      string
	color      Color
	disposed   bool
	cloneFails bool
	events     *[]string
}

func (m *fakeMaterial) Color() Color     { return m.color }
func (m *fakeMaterial) SetColor(c Color) { m.color = c }

func (m *fakeMaterial) Clone() Material {
	if m.cloneFails {
		return nil
	}
	return &fakeMaterial{label: m.label + "-copy", color: m.color, events: m.events}
}

func (m *fakeMaterial) Dispose() {
	m.disposed = true
	m.record("material:dispose:" + m.label)
}

func (m *fakeMaterial) record(ev string) {
	if m.events != nil {
		*m.events = append(*m.events, ev)
	}
}

// --- Object ---

type fakeObject struct {
	id         uint64
	name       string
	meta       map[string]any
	pos        Vec3
	rot        Vec3
	scl        Vec3
	mat        Material
	disposed   bool
	cloneFails bool
	events     *[]string
}

func newFakeObject(name string) *fakeObject {
	return &fakeObject{id: nextFakeID(), name: name, scl: Vec3{1, 1, 1}}
}

func (o *fakeObject) ID() uint64 { return o.id }

func (o *fakeObject) Name() string        { return o.name }
func (o *fakeObject) SetName(name string) { o.name = name }

func (o *fakeObject) Metadata() map[string]any { return o.meta }

func (o *fakeObject) Position() Vec3     { return o.pos }
func (o *fakeObject) SetPosition(p Vec3) { o.pos = p }
func (o *fakeObject) Rotation() Vec3     { return o.rot }
func (o *fakeObject) SetRotation(r Vec3) { o.rot = r }
func (o *fakeObject) Scale() Vec3        { return o.scl }
func (o *fakeObject) SetScale(s Vec3)    { o.scl = s }

func (o *fakeObject) Material() Material     { return o.mat }
func (o *fakeObject) SetMaterial(m Material) { o.mat = m }

// Clone aliases the source material, like hosts that share materials between
// duplicates; the world is expected to deep-clone it afterwards.
func (o *fakeObject) Clone(name string) Object {
	if o.cloneFails {
		return nil
	}
	dup := newFakeObject(name)
	dup.pos, dup.rot, dup.scl = o.pos, o.rot, o.scl
	dup.mat = o.mat
	dup.events = o.events
	return dup
}

func (o *fakeObject) Dispose() {
	o.disposed = true
	if o.events != nil {
		*o.events = append(*o.events, "object:dispose:"+o.name)
	}
}

// --- Scene ---

type fakeScene struct {
	meshes     []Object
	lights     []Object
	cameras    []Object
	transforms []Object
	active     Object

	created   []*fakeObject
	lastSpec  PrimitiveSpec
	createErr error
	events    *[]string
}

func (s *fakeScene) Meshes() []Object     { return s.meshes }
func (s *fakeScene) Lights() []Object     { return s.lights }
func (s *fakeScene) Cameras() []Object    { return s.cameras }
func (s *fakeScene) Transforms() []Object { return s.transforms }
func (s *fakeScene) ActiveCamera() Object { return s.active }

func (s *fakeScene) CreatePrimitive(spec PrimitiveSpec) (Object, error) {
	s.lastSpec = spec
	if s.createErr != nil {
		return nil, s.createErr
	}
	name := spec.Name
	if name == "" {
		name = string(spec.Type)
	}
	obj := newFakeObject(name)
	obj.events = s.events
	obj.mat = &fakeMaterial{label: name, color: *spec.Color, events: s.events}
	s.created = append(s.created, obj)
	return obj, nil
}

// --- Physics ---

type fakeBody struct {
	name     string
	disposed bool
	events   *[]string
}

func (b *fakeBody) Dispose() {
	b.disposed = true
	if b.events != nil {
		*b.events = append(*b.events, "body:dispose:"+b.name)
	}
}

type fakePhysics struct {
	bodies    []*fakeBody
	lastOpts  BodyOptions
	createErr error

	contactFn    func(ContactEvent)
	subscribed   int
	unsubscribed int
	events       *[]string
}

func (p *fakePhysics) CreateBody(obj Object, shape BodyShape, opts BodyOptions) (Body, error) {
	if p.createErr != nil {
		return nil, p.createErr
	}
	p.lastOpts = opts
	body := &fakeBody{name: obj.Name(), events: p.events}
	p.bodies = append(p.bodies, body)
	return body, nil
}

func (p *fakePhysics) SubscribeContacts(fn func(ContactEvent)) Subscription {
	p.contactFn = fn
	p.subscribed++
	return NewSubscription(func() {
		p.unsubscribed++
		p.contactFn = nil
	})
}

func (p *fakePhysics) Emit(ev ContactEvent) {
	if p.contactFn != nil {
		p.contactFn(ev)
	}
}

// --- Render loop ---

type fakeLoop struct {
	fn     func(dt float64)
	subs   int
	unsubs int
}

func (l *fakeLoop) SubscribeBeforeRender(fn func(dt float64)) Subscription {
	l.fn = fn
	l.subs++
	return NewSubscription(func() {
		l.unsubs++
		l.fn = nil
	})
}

func (l *fakeLoop) Fire(dt float64) {
	if l.fn != nil {
		l.fn(dt)
	}
}

// --- Assets ---

type memAssets map[string]string

func (m memAssets) FetchSource(_ context.Context, path string) (string, error) {
	src, ok := m[path]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}
	return src, nil
}

// --- Logger ---

type logEntry struct {
	level string
	msg   string
	args  []any
}

type recordLogger struct {
	entries []logEntry
}

func (l *recordLogger) Debug(msg string, args ...any) { l.add("debug", msg, args) }
func (l *recordLogger) Info(msg string, args ...any)  { l.add("info", msg, args) }
func (l *recordLogger) Warn(msg string, args ...any)  { l.add("warn", msg, args) }
func (l *recordLogger) Error(msg string, args ...any) { l.add("error", msg, args) }

func (l *recordLogger) add(level, msg string, args []any) {
	l.entries = append(l.entries, logEntry{level: level, msg: msg, args: args})
}

// messages returns every message logged at the given level, in order.
func (l *recordLogger) messages(level string) []string {
	var out []string
	for _, e := range l.entries {
		if e.level == level {
			out = append(out, e.msg)
		}
	}
	return out
}

// has reports whether any entry at the given level has exactly msg.
func (l *recordLogger) has(level, msg string) bool {
	for _, e := range l.entries {
		if e.level == level && e.msg == msg {
			return true
		}
	}
	return false
}
