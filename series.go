package gompc

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
)

// Bounds carries the lower and upper bound vectors overlaid on a time
// series. Either entry may be nil.
type Bounds struct {
	Lower, Upper mat.Vector
}

var (
	seriesColor = color.RGBA{B: 255, A: 255}
	boundColor  = color.RGBA{R: 255, A: 255}
)

type seriesStyle struct {
	symbol     string // y-label prefix, one label per component
	seriesName string // legend entry on the first subplot
	boundsName string
	step       bool // render as a zero-order hold
}

// plotSeries builds one subplot per vector component: the series itself, a
// red constant line per supplied bound, the legend on the first subplot and
// the time label on the last.
func plotSeries(samples []mat.Vector, h float64, bounds *Bounds, st seriesStyle) ([]*plot.Plot, error) {
	if len(samples) == 0 {
		return nil, ErrNoData
	}
	if h <= 0 {
		return nil, fmt.Errorf("time step %g is not positive", h)
	}
	nc := samples[0].Len()
	for k, s := range samples {
		if s.Len() != nc {
			return nil, fmt.Errorf("sample %d has %d components, want %d", k, s.Len(), nc)
		}
	}

	// An input is held over its sampling interval, so the horizon extends
	// one step past the last sample. States and outputs are point samples.
	var duration float64
	if st.step {
		duration = float64(len(samples)) * h
	} else {
		duration = float64(len(samples)-1) * h
	}

	plots := make([]*plot.Plot, nc)
	for i := 0; i < nc; i++ {
		p := plot.New()

		var pts plotter.XYs
		if st.step {
			pts = make(plotter.XYs, len(samples)+1)
			for k, s := range samples {
				pts[k] = plotter.XY{X: float64(k) * h, Y: s.AtVec(i)}
			}
			pts[len(samples)] = plotter.XY{X: duration, Y: samples[len(samples)-1].AtVec(i)}
		} else {
			pts = make(plotter.XYs, len(samples))
			for k, s := range samples {
				pts[k] = plotter.XY{X: float64(k) * h, Y: s.AtVec(i)}
			}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.Color = seriesColor
		if st.step {
			line.StepStyle = plotter.PostStep
		}
		p.Add(line)

		var boundLine *plotter.Line
		if bounds != nil {
			for _, bv := range []mat.Vector{bounds.Lower, bounds.Upper} {
				if bv == nil {
					continue
				}
				if bv.Len() != nc {
					return nil, fmt.Errorf("bound has %d components, want %d", bv.Len(), nc)
				}
				bl, err := plotter.NewLine(plotter.XYs{
					{X: 0, Y: bv.AtVec(i)},
					{X: duration, Y: bv.AtVec(i)},
				})
				if err != nil {
					return nil, err
				}
				bl.Color = boundColor
				p.Add(bl)
				boundLine = bl
			}
		}

		if i == 0 {
			p.Legend.Add(st.seriesName, line)
			if boundLine != nil {
				p.Legend.Add(st.boundsName, boundLine)
			}
			p.Legend.Top = true
		}
		p.Y.Label.Text = fmt.Sprintf("%s_%d", st.symbol, i+1)
		p.X.Min, p.X.Max = 0, duration
		p.X.Tick.Marker = StepTicks{Step: h}
		if i == nc-1 {
			p.X.Label.Text = "t"
		}
		plots[i] = p
	}
	return plots, nil
}

// PlotInputSequence plots the input sequence and its bounds as functions of
// time, one subplot per input component. Inputs render as a zero-order hold
// with the final sample held over the last interval.
func PlotInputSequence(u []mat.Vector, h float64, bounds *Bounds) ([]*plot.Plot, error) {
	plots, err := plotSeries(u, h, bounds, seriesStyle{
		symbol:     "u",
		seriesName: "optimal control",
		boundsName: "control bounds",
		step:       true,
	})
	if err != nil {
		return nil, fmt.Errorf("input sequence: %w", err)
	}
	return plots, nil
}

// PlotStateTrajectory plots the state trajectory and its bounds as functions
// of time, one subplot per state component.
func PlotStateTrajectory(x []mat.Vector, h float64, bounds *Bounds) ([]*plot.Plot, error) {
	plots, err := plotSeries(x, h, bounds, seriesStyle{
		symbol:     "x",
		seriesName: "optimal trajectory",
		boundsName: "state bounds",
	})
	if err != nil {
		return nil, fmt.Errorf("state trajectory: %w", err)
	}
	return plots, nil
}

// PlotOutputTrajectory applies the output map y = C x to every state sample
// and plots the result and its bounds as functions of time, one subplot per
// output component.
func PlotOutputTrajectory(C mat.Matrix, x []mat.Vector, h float64, bounds *Bounds) ([]*plot.Plot, error) {
	ny, nx := C.Dims()
	y := make([]mat.Vector, len(x))
	for k, xk := range x {
		if xk.Len() != nx {
			return nil, fmt.Errorf("output trajectory: state %d has %d components but C has %d columns", k, xk.Len(), nx)
		}
		yk := mat.NewVecDense(ny, nil)
		yk.MulVec(C, xk)
		y[k] = yk
	}
	plots, err := plotSeries(y, h, bounds, seriesStyle{
		symbol:     "y",
		seriesName: "optimal trajectory",
		boundsName: "output bounds",
	})
	if err != nil {
		return nil, fmt.Errorf("output trajectory: %w", err)
	}
	return plots, nil
}
