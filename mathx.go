package bramble

import (
	"math"
	"math/rand/v2"
)

// Game-math helpers. Besides their Go API these are installed onto the
// sandbox's Math object (as clamp, lerp, and so on) so scripts get the same
// toolbox.

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp returns the linear interpolation between a and b at parameter t.
// t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// InverseLerp returns where v sits between a and b as a parameter in [0, 1].
// Returns 0 when a == b.
func InverseLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return Clamp((v-a)/(b-a), 0, 1)
}

// Smoothstep returns the smooth Hermite interpolation between 0 and 1 as v
// moves across [edge0, edge1].
func Smoothstep(edge0, edge1, v float64) float64 {
	t := InverseLerp(edge0, edge1, v)
	return t * t * (3 - 2*t)
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 { return deg * math.Pi / 180 }

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 { return rad * 180 / math.Pi }

// Remap maps v from the range [inLo, inHi] onto [outLo, outHi].
func Remap(v, inLo, inHi, outLo, outHi float64) float64 {
	return Lerp(outLo, outHi, InverseLerp(inLo, inHi, v))
}

// RandomRange returns a uniformly distributed random value in [lo, hi).
func RandomRange(lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}

// MoveTowards moves current towards target by at most maxDelta, without
// overshooting. A negative maxDelta moves away from target.
func MoveTowards(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

// PingPong bounces t between 0 and length, like a value reflecting off both
// ends of the interval.
func PingPong(t, length float64) float64 {
	if length == 0 {
		return 0
	}
	t = math.Mod(t, length*2)
	if t < 0 {
		t += length * 2
	}
	if t > length {
		return length*2 - t
	}
	return t
}
