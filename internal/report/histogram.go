package report

import (
	"fmt"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/reviewlens/reviewlens/internal/lexicon"
)

const histBins = 20

// renderHistogram writes a PNG with one score histogram per lexicon,
// side by side, each with a kernel density overlay.
func renderHistogram(path string, scores *lexicon.Scores) error {
	if scores == nil || len(scores.Syuzhet) == 0 {
		return fmt.Errorf("no scores to render")
	}

	series := []struct {
		name   string
		values []float64
	}{
		{"syuzhet", scores.Syuzhet},
		{"bing", scores.Bing},
		{"afinn", scores.Afinn},
	}

	plots := make([][]*plot.Plot, 1)
	plots[0] = make([]*plot.Plot, len(series))
	for i, s := range series {
		p, err := scorePlot(s.name, s.values)
		if err != nil {
			return err
		}
		plots[0][i] = p
	}

	img := vgimg.New(vg.Points(900), vg.Points(300))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 1,
		Cols: len(series),
		PadX: vg.Points(8),
		PadY: vg.Points(8),
	}
	canvases := plot.Align(plots, tiles, dc)
	for i, p := range plots[0] {
		p.Draw(canvases[0][i])
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating histogram file: %w", err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("writing histogram: %w", err)
	}
	return nil
}

// scorePlot builds one normalized histogram with its density curve.
func scorePlot(name string, values []float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = name
	p.X.Label.Text = "score"
	p.Y.Label.Text = "density"

	h, err := plotter.NewHist(plotter.Values(values), histBins)
	if err != nil {
		return nil, fmt.Errorf("building %s histogram: %w", name, err)
	}
	h.Normalize(1)
	p.Add(h)

	if line := densityLine(values); line != nil {
		p.Add(line)
	}
	return p, nil
}

// densityLine builds a Gaussian kernel density estimate over the value
// range, using Silverman's bandwidth. Returns nil for degenerate input
// (fewer than two values or zero variance).
func densityLine(values []float64) *plotter.Line {
	n := len(values)
	if n < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	variance := 0.0
	min, max := values[0], values[0]
	for _, v := range values {
		variance += (v - mean) * (v - mean)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	variance /= float64(n - 1)
	if variance == 0 {
		return nil
	}

	sd := math.Sqrt(variance)
	bandwidth := 1.06 * sd * math.Pow(float64(n), -1.0/5.0)

	const points = 100
	span := max - min
	pad := span * 0.1
	lo, hi := min-pad, max+pad
	step := (hi - lo) / float64(points-1)

	pts := make(plotter.XYs, points)
	norm := 1.0 / (float64(n) * bandwidth * math.Sqrt(2*math.Pi))
	for i := 0; i < points; i++ {
		x := lo + float64(i)*step
		density := 0.0
		for _, v := range values {
			u := (x - v) / bandwidth
			density += math.Exp(-0.5 * u * u)
		}
		pts[i].X = x
		pts[i].Y = density * norm
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil
	}
	line.LineStyle.Width = vg.Points(1.5)
	return line
}
