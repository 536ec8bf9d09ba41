package render

import (
	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/spatial/r3"
)

// ViewConfig controls the camera of SavePNG.
type ViewConfig struct {
	Up     r3.Vec
	EyePos r3.Vec
	LookAt r3.Vec
	Near   float64
	Far    float64
	// Width and Height default to 800x600 when zero.
	Width  int
	Height int
}

// SavePNG renders the STL file at stlPath to a shaded PNG preview at
// pngPath. Useful for eyeballing revolved parts without a CAD viewer.
func SavePNG(stlPath, pngPath string, view ViewConfig) error {
	const (
		fovy  = 30.0 // vertical field of view in degrees
		scale = 2    // supersampling factor
	)
	width, height := view.Width, view.Height
	if width == 0 {
		width = 800
	}
	if height == 0 {
		height = 600
	}
	mesh, err := fauxgl.LoadSTL(stlPath)
	if err != nil {
		return err
	}
	var (
		eye    = fauxgl.V(view.EyePos.X, view.EyePos.Y, view.EyePos.Z)
		center = fauxgl.V(view.LookAt.X, view.LookAt.Y, view.LookAt.Z)
		up     = fauxgl.V(view.Up.X, view.Up.Y, view.Up.Z)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
		color  = fauxgl.HexColor("#468966")
	)
	// fit mesh in a bi-unit cube centered at the origin
	mesh.BiUnitCube()
	context := fauxgl.NewContext(width*scale, height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	aspect := float64(width) / float64(height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, view.Near, view.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = color
	context.Shader = shader
	context.DrawMesh(mesh)
	image := context.Image()
	image = resize.Resize(uint(width), uint(height), image, resize.Bilinear)
	return fauxgl.SavePNG(pngPath, image)
}
