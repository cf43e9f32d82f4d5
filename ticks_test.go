package gompc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepTicksOnPeriodGrid(t *testing.T) {
	ticks := StepTicks{Step: 0.5}.Ticks(0, 2.5)
	require.NotEmpty(t, ticks)
	for _, tick := range ticks {
		_, frac := math.Modf(tick.Value / 0.5)
		assert.InDelta(t, 0, math.Min(frac, 1-frac), 1e-9, "tick %g is off the period grid", tick.Value)
	}
	// Six periods in range and a target of six: every tick is major.
	assert.Len(t, ticks, 6)
	for _, tick := range ticks {
		assert.NotEmpty(t, tick.Label)
	}
}

func TestStepTicksMinor(t *testing.T) {
	// Forty periods against a target of six: majors thin out, minors stay
	// on the grid.
	ticks := StepTicks{Step: 0.1}.Ticks(0, 4)
	require.NotEmpty(t, ticks)
	var labeled int
	for _, tick := range ticks {
		if tick.Label != "" {
			labeled++
		}
	}
	assert.Greater(t, labeled, 1)
	assert.Less(t, labeled, len(ticks))
}

func TestStepTicksFallback(t *testing.T) {
	def := StepTicks{}.Ticks(0, 1)
	assert.NotEmpty(t, def)

	// A period far finer than the range falls back too.
	fine := StepTicks{Step: 1e-9}.Ticks(0, 1)
	assert.NotEmpty(t, fine)
	var labeled int
	for _, tick := range fine {
		if tick.Label != "" {
			labeled++
		}
	}
	assert.Greater(t, labeled, 0)
}
