package gompc

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	// ErrDimension signals that the data to plot is not 2-dimensional.
	ErrDimension = errors.New("not 2-dimensional")
	// ErrNoData signals an empty sample sequence.
	ErrNoData = errors.New("no samples")
)

// TrajectoryOptions configures PlotStateSpaceTrajectory. The zero value
// plots the first two state components with no annotations.
type TrajectoryOptions struct {
	// Dims selects the two state components to plot against each other.
	// Nil means components 0 and 1.
	Dims []int
	// Annotate writes "x(t)" next to every sample.
	Annotate bool
	// Name is the legend entry for the trajectory, empty for none.
	Name string
	// Color overrides the default line color.
	Color color.Color
}

// PlotStateSpaceTrajectory plots one component of the state x as a function
// of another: the polyline through the projected samples, an annotation per
// sample if requested, and a white marker with a black ring on the initial
// state, drawn on top of the line.
func PlotStateSpaceTrajectory(p *plot.Plot, x []mat.Vector, opt TrajectoryOptions) error {
	if len(x) == 0 {
		return fmt.Errorf("state-space trajectory: %w", ErrNoData)
	}
	dims := opt.Dims
	if dims == nil {
		dims = []int{0, 1}
	}
	if len(dims) != 2 {
		return fmt.Errorf("can plot only 2-dimensional trajectories: %w", ErrDimension)
	}
	for _, d := range dims {
		if d < 0 || d >= x[0].Len() {
			return fmt.Errorf("state-space trajectory: component %d out of range for state of length %d", d, x[0].Len())
		}
	}

	pts := make(plotter.XYs, len(x))
	for t, xt := range x {
		pts[t].X = xt.AtVec(dims[0])
		pts[t].Y = xt.AtVec(dims[1])
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("state-space trajectory: %w", err)
	}
	if opt.Color != nil {
		line.Color = opt.Color
	}
	p.Add(line)
	if opt.Name != "" {
		p.Legend.Add(opt.Name, line)
	}

	if opt.Annotate {
		labels := plotter.XYLabels{
			XYs:    append(plotter.XYs(nil), pts...),
			Labels: make([]string, len(pts)),
		}
		for t := range labels.Labels {
			labels.Labels[t] = fmt.Sprintf("x(%d)", t)
		}
		lb, err := plotter.NewLabels(labels)
		if err != nil {
			return fmt.Errorf("state-space trajectory: %w", err)
		}
		p.Add(lb)
	}

	// Initial condition marker, after the line so it renders on top.
	start, err := plotter.NewScatter(plotter.XYs{pts[0]})
	if err != nil {
		return fmt.Errorf("state-space trajectory: %w", err)
	}
	start.GlyphStyle = draw.GlyphStyle{Color: color.White, Radius: vg.Points(3), Shape: draw.CircleGlyph{}}
	ring, err := plotter.NewScatter(plotter.XYs{pts[0]})
	if err != nil {
		return fmt.Errorf("state-space trajectory: %w", err)
	}
	ring.GlyphStyle = draw.GlyphStyle{Color: color.Black, Radius: vg.Points(3), Shape: draw.RingGlyph{}}
	p.Add(start, ring)

	p.X.Label.Text = fmt.Sprintf("x_%d", dims[0]+1)
	p.Y.Label.Text = fmt.Sprintf("x_%d", dims[1]+1)
	return nil
}
