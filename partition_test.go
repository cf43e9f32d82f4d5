package gompc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
)

func TestPlotPartition(t *testing.T) {
	sol := twoRegionSolution(t)
	err := PlotPartition(plot.New(), sol, PartitionOptions{Seed: 42})
	require.NoError(t, err)

	err = PlotPartition(plot.New(), sol, PartitionOptions{ShowActiveSets: true, Alpha: 0.5})
	require.NoError(t, err)
}

func TestPlotPartitionErrors(t *testing.T) {
	err := PlotPartition(plot.New(), &ExplicitSolution{}, PartitionOptions{})
	assert.ErrorIs(t, err, ErrNoData)

	// A 3-dimensional partition cannot be drawn.
	a := mat.NewDense(1, 3, []float64{1, 0, 0})
	b := mat.NewVecDense(1, []float64{1})
	ph, err := NewPolyhedron(a, b)
	require.NoError(t, err)
	sol := &ExplicitSolution{Regions: []CriticalRegion{{Region: ph}}}
	err = PlotPartition(plot.New(), sol, PartitionOptions{})
	assert.ErrorIs(t, err, ErrDimension)
}

func TestPlotPartitionUnboundedRegion(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 0, -1, 0})
	b := mat.NewVecDense(2, []float64{1, 1})
	ph, err := NewPolyhedron(a, b)
	require.NoError(t, err)
	sol := &ExplicitSolution{Regions: []CriticalRegion{{Region: ph}}}
	err = PlotPartition(plot.New(), sol, PartitionOptions{})
	assert.ErrorIs(t, err, ErrUnbounded)
}
