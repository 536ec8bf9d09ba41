package render_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/deadsy/sdfx/obj"
	sdfxrender "github.com/deadsy/sdfx/render"
	"github.com/soypat/lathe/geom"
	"github.com/soypat/lathe/render"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

var zAxis = geom.Line{Dir: r3.Vec{Z: 1}}

// ring returns the square-section ring with radii 1 to 2 and height 1
// swept by angle radians.
func ring(t testing.TB, angle float64) *geom.Solid {
	t.Helper()
	face, err := geom.NewFace(geom.FrameXZ(r3.Vec{}), []r2.Vec{
		{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 1, Y: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	s, err := geom.Revolve(face, zAxis, angle)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// meshVolume computes the signed volume enclosed by the mesh with the
// divergence theorem. It is positive for outward-wound closed meshes.
func meshVolume(model []render.Triangle3) float64 {
	var vol float64
	for _, tri := range model {
		vol += r3.Dot(tri.V[0], r3.Cross(tri.V[1], tri.V[2]))
	}
	return vol / 6
}

// meshAreaVector sums the oriented face areas. It vanishes for closed
// meshes.
func meshAreaVector(model []render.Triangle3) r3.Vec {
	var sum r3.Vec
	for _, tri := range model {
		e1 := r3.Sub(tri.V[1], tri.V[0])
		e2 := r3.Sub(tri.V[2], tri.V[0])
		sum = r3.Add(sum, r3.Scale(0.5, r3.Cross(e1, e2)))
	}
	return sum
}

func TestSweepMeshFullTurn(t *testing.T) {
	const segments = 128
	model, err := render.RenderAll(render.NewSweepRenderer(ring(t, 2*math.Pi), segments))
	if err != nil {
		t.Fatal(err)
	}
	if len(model) == 0 {
		t.Fatal("no triangles rendered")
	}
	if gap := r3.Norm(meshAreaVector(model)); gap > 1e-9 {
		t.Errorf("mesh not closed, residual area vector %g", gap)
	}
	// ring volume is 2π·r̄·A = 3π; the chordal mesh is slightly smaller.
	vol := meshVolume(model)
	want := 3 * math.Pi
	if vol <= 0 {
		t.Fatalf("volume = %g, mesh wound inward", vol)
	}
	if math.Abs(vol-want)/want > 0.005 {
		t.Errorf("mesh volume = %g, want %g within 0.5%%", vol, want)
	}
}

func TestSweepMeshWedge(t *testing.T) {
	const segments = 128
	model, err := render.RenderAll(render.NewSweepRenderer(ring(t, math.Pi/2), segments))
	if err != nil {
		t.Fatal(err)
	}
	if gap := r3.Norm(meshAreaVector(model)); gap > 1e-9 {
		t.Errorf("wedge mesh not closed, residual area vector %g", gap)
	}
	vol := meshVolume(model)
	want := 3 * math.Pi / 4
	if vol <= 0 {
		t.Fatalf("volume = %g, mesh wound inward", vol)
	}
	if math.Abs(vol-want)/want > 0.005 {
		t.Errorf("wedge mesh volume = %g, want %g within 0.5%%", vol, want)
	}
}

func TestSweepRendererChunked(t *testing.T) {
	full, err := render.RenderAll(render.NewSweepRenderer(ring(t, 2*math.Pi), 32))
	if err != nil {
		t.Fatal(err)
	}
	r := render.NewSweepRenderer(ring(t, 2*math.Pi), 32)
	var chunked []render.Triangle3
	buf := make([]render.Triangle3, 7)
	for {
		n, err := r.ReadTriangles(buf)
		chunked = append(chunked, buf[:n]...)
		if err != nil {
			break
		}
	}
	if len(chunked) != len(full) {
		t.Errorf("chunked read returned %d triangles, RenderAll %d", len(chunked), len(full))
	}
}

func TestSweepRendererBadSegments(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("segments < 3 did not panic")
		}
	}()
	render.NewSweepRenderer(ring(t, math.Pi), 2)
}

func TestSavePNG(t *testing.T) {
	dir := t.TempDir()
	stlPath := filepath.Join(dir, "ring.stl")
	if err := render.CreateSTL(stlPath, render.NewSweepRenderer(ring(t, 2*math.Pi), 64)); err != nil {
		t.Fatal(err)
	}
	pngPath := filepath.Join(dir, "ring.png")
	err := render.SavePNG(stlPath, pngPath, render.ViewConfig{
		Up:     r3.Vec{Z: 1},
		EyePos: r3.Vec{X: 3, Y: 3, Z: 2},
		Near:   0.1,
		Far:    10,
		Width:  320,
		Height: 240,
	})
	if err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(pngPath)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("empty PNG written")
	}
}

const benchQuality = 200

func BenchmarkSDFXBolt(b *testing.B) {
	stdout := os.Stdout
	defer func() {
		os.Stdout = stdout // pesky sdfx prints out stuff
	}()
	os.Stdout, _ = os.Open(os.DevNull)
	output := filepath.Join(b.TempDir(), "sdfx_bolt.stl")
	object, _ := obj.Bolt(&obj.BoltParms{
		Thread:      "npt_1/2",
		Style:       "hex",
		Tolerance:   0.1,
		TotalLength: 20,
		ShankLength: 10,
	})
	for i := 0; i < b.N; i++ {
		sdfxrender.ToSTL(object, benchQuality, output, &sdfxrender.MarchingCubesOctree{})
	}
}

func BenchmarkSweepRing(b *testing.B) {
	output := filepath.Join(b.TempDir(), "ring.stl")
	s := ring(b, 2*math.Pi)
	for i := 0; i < b.N; i++ {
		render.CreateSTL(output, render.NewSweepRenderer(s, benchQuality))
	}
}
