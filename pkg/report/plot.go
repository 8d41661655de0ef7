package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/BoyarinO/dataroot2/pkg/data"
	"github.com/BoyarinO/dataroot2/pkg/sweep"
)

const (
	plotWidth  = 5 * vg.Inch
	plotHeight = 4 * vg.Inch
)

// PlotAccuracy saves a scatter of accuracy against k. The image format
// follows the extension of path (png, svg, pdf, ...).
func PlotAccuracy(results []sweep.Result, path string) error {
	if len(results) == 0 {
		return fmt.Errorf("report: no results to plot")
	}

	p := plot.New()
	p.Title.Text = "Accuracy by k"
	p.X.Label.Text = "k"
	p.Y.Label.Text = "accuracy, %"

	pts := make(plotter.XYs, len(results))
	accs := make([]float64, len(results))
	for i, r := range results {
		pts[i].X = float64(r.K)
		pts[i].Y = r.Accuracy
		accs[i] = r.Accuracy
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	s.Color = color.RGBA{B: 255, A: 255, R: 50, G: 50}
	p.Add(s, plotter.NewGrid())

	p.Y.Min = floats.Min(accs) - 2
	p.Y.Max = floats.Max(accs) + 1

	return p.Save(plotWidth, plotHeight, path)
}

// PlotDataset saves the first two features of every class of all, with the
// test points drawn on top.
func PlotDataset(all, test data.Dataset, path string) error {
	if all.Dim() < 2 {
		return fmt.Errorf("report: need at least 2 features to plot, have %d", all.Dim())
	}

	p := plot.New()
	p.Title.Text = "Dataset"
	p.X.Label.Text = "x1"
	p.Y.Label.Text = "x2"

	if err := addClasses(p, all); err != nil {
		return err
	}
	if test.Len() > 0 {
		s, err := plotter.NewScatter(xys(test.X))
		if err != nil {
			return err
		}
		s.Color = color.RGBA{B: 255, A: 255}
		s.Shape = draw.CircleGlyph{}
		p.Add(s)
		p.Legend.Add("test", s)
	}
	p.Legend.Top = true

	return p.Save(plotWidth, plotHeight, path)
}

// PlotMisclassified saves the classes of all with the points r got wrong marked.
func PlotMisclassified(all data.Dataset, r sweep.Result, path string) error {
	if all.Dim() < 2 {
		return fmt.Errorf("report: need at least 2 features to plot, have %d", all.Dim())
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Misclassified points, k=%d", r.K)
	p.X.Label.Text = "x1"
	p.Y.Label.Text = "x2"

	if err := addClasses(p, all); err != nil {
		return err
	}
	if len(r.MisclassifiedPoints) > 0 {
		s, err := plotter.NewScatter(xys(r.MisclassifiedPoints))
		if err != nil {
			return err
		}
		s.Color = color.RGBA{R: 255, A: 255}
		s.Shape = draw.CrossGlyph{}
		s.Radius = vg.Points(4)
		p.Add(s)
		p.Legend.Add(fmt.Sprintf("misidentified, k=%d", r.K), s)
	}
	p.Legend.Top = true

	return p.Save(plotWidth, plotHeight, path)
}

func addClasses(p *plot.Plot, ds data.Dataset) error {
	for i, class := range ds.Classes() {
		var pts [][]float64
		for j, y := range ds.Y {
			if y == class {
				pts = append(pts, ds.X[j])
			}
		}
		s, err := plotter.NewScatter(xys(pts))
		if err != nil {
			return err
		}
		s.Color = plotutil.Color(i)
		p.Add(s)
		p.Legend.Add(fmt.Sprintf("class %d", class), s)
	}
	return nil
}

// xys projects points onto their first two features.
func xys(points [][]float64) plotter.XYs {
	out := make(plotter.XYs, len(points))
	for i, pt := range points {
		out[i].X = pt[0]
		out[i].Y = pt[1]
	}
	return out
}
