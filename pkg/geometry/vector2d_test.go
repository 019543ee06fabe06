package geometry

import (
	"math"
	"testing"
)

// floatEquals is a helper for testing scalar float values with epsilon.
func floatEquals(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

func TestVector2D_String(t *testing.T) {
	v := NewVector(1.234, 5.678)
	want := "(1.23, 5.68)"
	if got := v.String(); got != want {
		t.Errorf("Vector2D.String() = %q; want %q", got, want)
	}
}

func TestVector2D_Arithmetic(t *testing.T) {
	v1 := Vector2D{1, 2}
	v2 := Vector2D{3, 4}

	tests := []struct {
		name string
		got  Vector2D
		want Vector2D
	}{
		{"Add", v1.Add(v2), Vector2D{4, 6}},
		{"Sub", v1.Sub(v2), Vector2D{-2, -2}},
		{"Mul", v1.Mul(2), Vector2D{2, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.Eq(tt.want) {
				t.Errorf("%s = %v; want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestVector2D_CrossWinding(t *testing.T) {
	// Screen space has Y pointing down, so a clockwise triangle on screen
	// has a positive cross product.
	a, b, c := Vector2D{0, 0}, Vector2D{10, 0}, Vector2D{10, 10}
	if got := b.Sub(a).Cross(c.Sub(a)); got <= 0 {
		t.Errorf("Cross clockwise = %v; want > 0", got)
	}
	if got := c.Sub(a).Cross(b.Sub(a)); got >= 0 {
		t.Errorf("Cross counter-clockwise = %v; want < 0", got)
	}
	if got := b.Cross(b); got != 0 {
		t.Errorf("Cross self = %v; want 0", got)
	}
}

func TestVector2D_Len(t *testing.T) {
	v := Vector2D{3, 4}
	if got := v.Len(); got != 5 {
		t.Errorf("Len = %v; want 5", got)
	}
}

func TestVector2D_Eq(t *testing.T) {
	v := Vector2D{1, 2}

	if !v.Eq(Vector2D{1, 2}) {
		t.Error("Eq exact match failed")
	}
	if !v.Eq(Vector2D{1 + Epsilon/2, 2 - Epsilon/2}) {
		t.Error("Eq epsilon match failed")
	}
	if v.Eq(Vector2D{1.1, 2}) {
		t.Error("Eq mismatch failed")
	}
}
