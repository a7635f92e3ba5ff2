package ladder

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func basicLadderPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Replica"
	p.Y.Label.Text = "Temperature (K)"
	p.Add(plotter.NewGrid())
	return p

}

// Plot draws the ladder as temperature against replica index, each point
// labeled with its scaling factor, and saves it to plotname.png.
func (L *Ladder) Plot(title, plotname string) error {
	p := basicLadderPlot(title)
	pts := make(plotter.XYs, L.Len())
	labs := make([]string, L.Len())
	for i, T := range L.Temperatures {
		pts[i].X = float64(i)
		pts[i].Y = T
		labs[i] = fmt.Sprintf("λ=%.4f", L.Scalings[i])
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("ladder/Plot: %w", err)
	}
	p.Add(line, points)
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: labs})
	if err != nil {
		return fmt.Errorf("ladder/Plot: %w", err)
	}
	p.Add(labels)
	if err := p.Save(6*vg.Inch, 4*vg.Inch, fmt.Sprintf("%s.png", plotname)); err != nil {
		return fmt.Errorf("ladder/Plot: %w", err)
	}
	return nil
}
