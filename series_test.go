package gompc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func inputSequence(n int) []mat.Vector {
	u := make([]mat.Vector, n)
	for k := 0; k < n; k++ {
		u[k] = mat.NewVecDense(1, []float64{float64(k)})
	}
	return u
}

func stateSequence(n int) []mat.Vector {
	x := make([]mat.Vector, n)
	for k := 0; k < n; k++ {
		x[k] = mat.NewVecDense(2, []float64{float64(k), -float64(k)})
	}
	return x
}

func TestInputSequenceLayout(t *testing.T) {
	plots, err := PlotInputSequence(inputSequence(5), 0.5, nil)
	require.NoError(t, err)
	require.Len(t, plots, 1)

	p := plots[0]
	assert.Equal(t, "u_1", p.Y.Label.Text)
	assert.Equal(t, "t", p.X.Label.Text)
	assert.Equal(t, 0.0, p.X.Min)
	// An input is held over its interval, so the axis runs to N*h.
	assert.InDelta(t, 2.5, p.X.Max, 1e-12)
}

func TestInputSequenceWithBounds(t *testing.T) {
	bounds := &Bounds{
		Lower: mat.NewVecDense(1, []float64{-1}),
		Upper: mat.NewVecDense(1, []float64{1}),
	}
	_, err := PlotInputSequence(inputSequence(5), 0.5, bounds)
	require.NoError(t, err)

	bad := &Bounds{Lower: mat.NewVecDense(2, []float64{-1, -1})}
	_, err = PlotInputSequence(inputSequence(5), 0.5, bad)
	assert.Error(t, err)
}

func TestStateTrajectoryLayout(t *testing.T) {
	plots, err := PlotStateTrajectory(stateSequence(6), 0.5, nil)
	require.NoError(t, err)
	require.Len(t, plots, 2)

	assert.Equal(t, "x_1", plots[0].Y.Label.Text)
	assert.Equal(t, "x_2", plots[1].Y.Label.Text)
	// The time label sits on the bottom subplot only.
	assert.Equal(t, "", plots[0].X.Label.Text)
	assert.Equal(t, "t", plots[1].X.Label.Text)
	// N = len(x)-1 sampling intervals.
	assert.InDelta(t, 2.5, plots[0].X.Max, 1e-12)
}

func TestOutputTrajectory(t *testing.T) {
	C := mat.NewDense(1, 2, []float64{1, 1})
	plots, err := PlotOutputTrajectory(C, stateSequence(4), 0.1, nil)
	require.NoError(t, err)
	require.Len(t, plots, 1)
	assert.Equal(t, "y_1", plots[0].Y.Label.Text)

	wrong := mat.NewDense(1, 3, []float64{1, 1, 1})
	_, err = PlotOutputTrajectory(wrong, stateSequence(4), 0.1, nil)
	assert.Error(t, err)
}

func TestSeriesErrors(t *testing.T) {
	_, err := PlotInputSequence(nil, 0.5, nil)
	assert.ErrorIs(t, err, ErrNoData)

	_, err = PlotStateTrajectory(stateSequence(4), 0, nil)
	assert.Error(t, err)

	ragged := []mat.Vector{
		mat.NewVecDense(2, []float64{0, 0}),
		mat.NewVecDense(1, []float64{0}),
	}
	_, err = PlotStateTrajectory(ragged, 0.5, nil)
	assert.Error(t, err)
}
