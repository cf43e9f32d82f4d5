package gompc

import (
	"fmt"
	"image/color"
	"math/rand"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
)

// PartitionOptions configures PlotPartition.
type PartitionOptions struct {
	// ShowActiveSets prints the active set of each critical region at the
	// region's center.
	ShowActiveSets bool
	// Seed drives the pseudo-random facecolors, so a render can be
	// reproduced.
	Seed int64
	// Alpha is the facecolor opacity in (0, 1]. Zero means opaque.
	Alpha float64
}

// PlotPartition plots the state-space partition of the 2d solution of an
// explicit MPC problem, filling every critical region with its own
// pseudo-random facecolor.
func PlotPartition(p *plot.Plot, sol *ExplicitSolution, opt PartitionOptions) error {
	if len(sol.Regions) == 0 {
		return fmt.Errorf("partition: %w", ErrNoData)
	}
	if sol.Dim() != 2 {
		return fmt.Errorf("can plot only 2-dimensional partitions: %w", ErrDimension)
	}

	alpha := uint8(255)
	if opt.Alpha > 0 {
		alpha = uint8(opt.Alpha*255 + 0.5)
	}
	rng := rand.New(rand.NewSource(opt.Seed))
	for i := range sol.Regions {
		cr := &sol.Regions[i]
		fill := color.NRGBA{
			R: uint8(rng.Intn(256)),
			G: uint8(rng.Intn(256)),
			B: uint8(rng.Intn(256)),
			A: alpha,
		}
		if err := cr.Region.Plot(p, fill); err != nil {
			return fmt.Errorf("partition region %d: %w", i, err)
		}

		if opt.ShowActiveSets {
			c, err := cr.Region.Center()
			if err != nil {
				return fmt.Errorf("partition region %d: %w", i, err)
			}
			lb, err := plotter.NewLabels(plotter.XYLabels{
				XYs:    plotter.XYs{{X: c.X, Y: c.Y}},
				Labels: []string{fmt.Sprint(cr.ActiveSet)},
			})
			if err != nil {
				return fmt.Errorf("partition region %d: %w", i, err)
			}
			p.Add(lb)
		}
	}
	return nil
}
