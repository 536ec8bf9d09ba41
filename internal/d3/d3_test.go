package d3

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestBox(t *testing.T) {
	b := NewBox(r3.Vec{X: 1, Y: 2, Z: 3}, Elem(2))
	if b.Min != (r3.Vec{X: 0, Y: 1, Z: 2}) || b.Max != (r3.Vec{X: 2, Y: 3, Z: 4}) {
		t.Fatalf("NewBox = %+v", b)
	}
	if b.Center() != (r3.Vec{X: 1, Y: 2, Z: 3}) {
		t.Errorf("Center = %+v", b.Center())
	}
	if b.Size() != Elem(2) {
		t.Errorf("Size = %+v", b.Size())
	}
	if !b.Contains(b.Min) || !b.Contains(b.Center()) || b.Contains(r3.Vec{X: 3}) {
		t.Error("Contains misbehaves")
	}

	grown := b.Include(r3.Vec{X: 5, Y: 2, Z: 3})
	if grown.Max.X != 5 || grown.Min != b.Min {
		t.Errorf("Include = %+v", grown)
	}
	ext := b.Extend(NewBox(r3.Vec{X: -3}, Elem(1)))
	if ext.Min.X != -3.5 || ext.Max != b.Max {
		t.Errorf("Extend = %+v", ext)
	}
	scaled := b.ScaleAboutCenter(2)
	if scaled.Center() != b.Center() || scaled.Size() != Elem(4) {
		t.Errorf("ScaleAboutCenter = %+v", scaled)
	}
}

func TestElemwise(t *testing.T) {
	a := r3.Vec{X: 1, Y: 5, Z: -2}
	b := r3.Vec{X: 2, Y: 3, Z: 0}
	if MinElem(a, b) != (r3.Vec{X: 1, Y: 3, Z: -2}) {
		t.Error("MinElem")
	}
	if MaxElem(a, b) != (r3.Vec{X: 2, Y: 5, Z: 0}) {
		t.Error("MaxElem")
	}
	if Max(a) != 5 {
		t.Error("Max")
	}
	if !EqualWithin(a, r3.Vec{X: 1.05, Y: 5, Z: -2}, 0.1) || EqualWithin(a, b, 0.1) {
		t.Error("EqualWithin")
	}
}
