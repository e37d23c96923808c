package bramble

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestLerp(t *testing.T) {
	tests := []struct {
		a, b, tp, want float64
	}{
		{0, 10, 0, 0},
		{0, 10, 1, 10},
		{0, 10, 0.5, 5},
		{0, 10, 2, 20}, // unclamped
		{-5, 5, 0.5, 0},
	}
	for _, tt := range tests {
		if got := Lerp(tt.a, tt.b, tt.tp); !almostEqual(got, tt.want) {
			t.Errorf("Lerp(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.tp, got, tt.want)
		}
	}
}

func TestInverseLerp(t *testing.T) {
	tests := []struct {
		a, b, v, want float64
	}{
		{0, 10, 5, 0.5},
		{0, 10, -5, 0}, // clamped
		{0, 10, 15, 1}, // clamped
		{10, 0, 2.5, 0.75},
		{3, 3, 3, 0}, // degenerate range
	}
	for _, tt := range tests {
		if got := InverseLerp(tt.a, tt.b, tt.v); !almostEqual(got, tt.want) {
			t.Errorf("InverseLerp(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.v, got, tt.want)
		}
	}
}

func TestSmoothstep(t *testing.T) {
	if got := Smoothstep(0, 1, 0); got != 0 {
		t.Errorf("Smoothstep at lower edge = %v, want 0", got)
	}
	if got := Smoothstep(0, 1, 1); got != 1 {
		t.Errorf("Smoothstep at upper edge = %v, want 1", got)
	}
	if got := Smoothstep(0, 1, 0.5); !almostEqual(got, 0.5) {
		t.Errorf("Smoothstep at midpoint = %v, want 0.5", got)
	}
	// Smooth, not linear: quarter point sits below 0.25.
	if got := Smoothstep(0, 1, 0.25); got >= 0.25 {
		t.Errorf("Smoothstep(0, 1, 0.25) = %v, want < 0.25", got)
	}
}

func TestDegRadRoundTrip(t *testing.T) {
	if got := DegToRad(180); !almostEqual(got, math.Pi) {
		t.Errorf("DegToRad(180) = %v, want pi", got)
	}
	if got := RadToDeg(math.Pi / 2); !almostEqual(got, 90) {
		t.Errorf("RadToDeg(pi/2) = %v, want 90", got)
	}
	if got := RadToDeg(DegToRad(37.5)); !almostEqual(got, 37.5) {
		t.Errorf("round trip = %v, want 37.5", got)
	}
}

func TestRemap(t *testing.T) {
	if got := Remap(5, 0, 10, 0, 100); !almostEqual(got, 50) {
		t.Errorf("Remap(5, 0, 10, 0, 100) = %v, want 50", got)
	}
	if got := Remap(-1, 0, 10, 100, 200); !almostEqual(got, 100) {
		t.Errorf("Remap clamps below input range: got %v, want 100", got)
	}
}

func TestRandomRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		v := RandomRange(-2, 3)
		if v < -2 || v >= 3 {
			t.Fatalf("RandomRange(-2, 3) = %v out of range", v)
		}
	}
}

func TestMoveTowards(t *testing.T) {
	tests := []struct {
		current, target, maxDelta, want float64
	}{
		{0, 10, 3, 3},
		{0, 10, 15, 10}, // no overshoot
		{10, 0, 3, 7},
		{5, 5, 1, 5},
	}
	for _, tt := range tests {
		if got := MoveTowards(tt.current, tt.target, tt.maxDelta); !almostEqual(got, tt.want) {
			t.Errorf("MoveTowards(%v, %v, %v) = %v, want %v",
				tt.current, tt.target, tt.maxDelta, got, tt.want)
		}
	}
}

func TestPingPong(t *testing.T) {
	tests := []struct {
		tp, length, want float64
	}{
		{0, 3, 0},
		{2, 3, 2},
		{3, 3, 3},
		{4, 3, 2}, // reflecting back
		{6, 3, 0}, // full cycle
		{7, 3, 1},
		{-1, 3, 1}, // negative time wraps
		{5, 0, 0},  // zero length
	}
	for _, tt := range tests {
		if got := PingPong(tt.tp, tt.length); !almostEqual(got, tt.want) {
			t.Errorf("PingPong(%v, %v) = %v, want %v", tt.tp, tt.length, got, tt.want)
		}
	}
}

func TestVec3Ops(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}
	if got := a.Add(b); got != (Vec3{5, 7, 9}) {
		t.Errorf("Add = %v", got)
	}
	if got := b.Sub(a); got != (Vec3{3, 3, 3}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
	if got := a.Cross(b); got != (Vec3{-3, 6, -3}) {
		t.Errorf("Cross = %v", got)
	}
	if got := (Vec3{3, 4, 0}).Length(); got != 5 {
		t.Errorf("Length = %v, want 5", got)
	}
	n := Vec3{0, 0, 9}.Normalized()
	if !almostEqual(n.Z, 1) || n.X != 0 || n.Y != 0 {
		t.Errorf("Normalized = %v", n)
	}
	if got := (Vec3{}).Normalized(); got != (Vec3{}) {
		t.Errorf("Normalized zero vector = %v, want zero", got)
	}
	if got := a.Neg(); got != (Vec3{-1, -2, -3}) {
		t.Errorf("Neg = %v", got)
	}
	if got := a.Lerp(b, 0.5); got != (Vec3{2.5, 3.5, 4.5}) {
		t.Errorf("Lerp = %v", got)
	}
}
