package gompc

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
)

// StepTicks places major ticks on multiples of a sampling period, so tick
// marks on time axes line up with the discrete-time grid of the plotted
// sequences.
type StepTicks struct {
	Step   float64 // sampling period; non-positive falls back to the default marker
	Target int     // approximate number of major ticks, 0 means 6
}

var stepMultiples = []int{1, 2, 5, 10, 20, 50, 100, 200, 500}

func (o StepTicks) Ticks(min, max float64) []plot.Tick {
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) || max <= min {
		return nil
	}
	if o.Step <= 0 {
		return plot.DefaultTicks{}.Ticks(min, max)
	}
	target := o.Target
	if target <= 0 {
		target = 6
	}

	// Pick the multiple of the period whose tick count lands closest to
	// the target.
	bestMult := 0
	bestDelta := 0
	for _, m := range stepMultiples {
		scale := float64(m) * o.Step
		first := int(math.Ceil(min/scale - 1e-9))
		last := int(math.Floor(max/scale + 1e-9))
		if n := last - first + 1; n > 0 {
			delta := n - target
			if delta < 0 {
				delta = -delta
			}
			if bestMult == 0 || delta < bestDelta {
				bestMult, bestDelta = m, delta
			}
		}
	}
	if bestMult == 0 {
		return plot.DefaultTicks{}.Ticks(min, max)
	}
	major := float64(bestMult) * o.Step
	if n := int(math.Floor(max/major+1e-9))-int(math.Ceil(min/major-1e-9))+1; n > 4*target {
		// The period is far too fine for this range.
		return plot.DefaultTicks{}.Ticks(min, max)
	}

	// Unlabeled minor ticks on the period grid itself, unless that would
	// flood the axis.
	minor := o.Step
	if bestMult > 10 {
		minor = major
	}
	minorFactor := int(major/minor + 0.5)

	var ticks []plot.Tick
	first := int(math.Ceil(min/minor - 1e-9))
	last := int(math.Floor(max/minor + 1e-9))
	for i := first; i <= last; i++ {
		v := float64(i) * minor
		label := ""
		if i%minorFactor == 0 {
			label = fmt.Sprintf("%.4g", v)
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: label})
	}
	return ticks
}
