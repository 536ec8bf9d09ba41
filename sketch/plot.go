package sketch

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SavePlot writes a 2D plot of the sketch loops to path. The image
// format follows the file extension (png, svg, pdf).
func (s *Sketch) SavePlot(path string) error {
	if len(s.loops) == 0 {
		return fmt.Errorf("sketch %q: %w", s.name, ErrEmptySketch)
	}
	p := plot.New()
	p.Title.Text = s.name
	p.X.Label.Text = "u"
	p.Y.Label.Text = "v"
	for i, loop := range s.loops {
		xys := make(plotter.XYs, len(loop))
		for j, v := range loop {
			xys[j].X = v.X
			xys[j].Y = v.Y
		}
		poly, err := plotter.NewPolygon(xys)
		if err != nil {
			return fmt.Errorf("sketch %q loop %d: %w", s.name, i, err)
		}
		poly.Color = color.NRGBA{R: 70, G: 137, B: 102, A: 90}
		poly.LineStyle.Color = color.NRGBA{R: 20, G: 60, B: 40, A: 255}
		p.Add(poly)
	}
	return p.Save(12*vg.Centimeter, 12*vg.Centimeter, path)
}
