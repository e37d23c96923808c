package bramble

import "math"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// ColorWhite is plain white.
var ColorWhite = Color{1, 1, 1, 1}

// ColorGray is the neutral gray assigned to spawned primitives when the
// caller gives no color.
var ColorGray = Color{0.5, 0.5, 0.5, 1}

// Vec2 is a 2D vector used for pointer positions and deltas.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vec3 is a 3D vector used for positions, rotations (Euler angles in
// radians), scales, directions, and contact geometry.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Neg returns -v.
func (v Vec3) Neg() Vec3 { return Vec3{-v.X, -v.Y, -v.Z} }

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product of v and o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 { return math.Sqrt(v.Dot(v)) }

// Normalized returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Lerp returns the linear interpolation between v and o at parameter t.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return Vec3{
		Lerp(v.X, o.X, t),
		Lerp(v.Y, o.Y, t),
		Lerp(v.Z, o.Z, t),
	}
}

// Quat is a rotation quaternion.
type Quat struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// QuatIdentity is the identity rotation.
var QuatIdentity = Quat{0, 0, 0, 1}

// Mul returns the Hamilton product q * o (apply o, then q).
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

// EulerToQuat converts Euler angles (radians, applied Y-X-Z) to a quaternion.
func EulerToQuat(e Vec3) Quat {
	cx, sx := math.Cos(e.X/2), math.Sin(e.X/2)
	cy, sy := math.Cos(e.Y/2), math.Sin(e.Y/2)
	cz, sz := math.Cos(e.Z/2), math.Sin(e.Z/2)
	return Quat{
		sx*cy*cz + cx*sy*sz,
		cx*sy*cz - sx*cy*sz,
		cx*cy*sz - sx*sy*cz,
		cx*cy*cz + sx*sy*sz,
	}
}

// PrimitiveType selects the geometry built by [World.SpawnPrimitive].
// The set is closed; anything else fails with [InvalidPrimitiveTypeError].
type PrimitiveType string

const (
	PrimitiveBox      PrimitiveType = "box"
	PrimitiveSphere   PrimitiveType = "sphere"
	PrimitiveCylinder PrimitiveType = "cylinder"
	PrimitiveCone     PrimitiveType = "cone"
	PrimitiveTorus    PrimitiveType = "torus"
	PrimitivePlane    PrimitiveType = "plane"
)

// valid reports whether t names one of the closed primitive set.
func (t PrimitiveType) valid() bool {
	switch t {
	case PrimitiveBox, PrimitiveSphere, PrimitiveCylinder,
		PrimitiveCone, PrimitiveTorus, PrimitivePlane:
		return true
	}
	return false
}

// ContactPhase classifies one physics contact notification.
type ContactPhase uint8

const (
	ContactStart      ContactPhase = iota // bodies began touching this step
	ContactContinuing                     // bodies remain in contact (not routed to callbacks)
	ContactEnd                            // bodies separated this step
)

// String returns the phase name.
func (p ContactPhase) String() string {
	switch p {
	case ContactStart:
		return "start"
	case ContactContinuing:
		return "continuing"
	case ContactEnd:
		return "end"
	default:
		return "unknown"
	}
}

// BodyShape selects the collision shape for a physics body.
type BodyShape uint8

const (
	// ShapeConvexHull wraps the object's mesh in a convex hull. It is the
	// shape used for all runtime-spawned primitives.
	ShapeConvexHull BodyShape = iota
)

// MetadataBehaviors is the reserved metadata key under which a host object
// declares its ordered list of behavior source paths. The value may be a
// []string or a []any of strings.
const MetadataBehaviors = "behaviors"

// Subscription is a removable registration on an event source. Unsubscribe
// is idempotent.
type Subscription interface {
	Unsubscribe()
}

type subscription struct {
	cancel func()
}

func (s *subscription) Unsubscribe() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// NewSubscription wraps a cancel func in a [Subscription] that invokes it at
// most once. Host implementations and tests can use it for their own event
// sources.
func NewSubscription(cancel func()) Subscription {
	return &subscription{cancel: cancel}
}
