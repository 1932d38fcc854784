package feasibility

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

func TestDensityMembership_Breakpoints(t *testing.T) {
	tests := []struct {
		x                 float64
		low, medium, high float64
	}{
		{0, 1, 0, 0},
		{5, 1, 0, 0},
		{8, 1, 0, 0},
		{9, 0.75, 0.25, 0},
		{10, 0.5, 0.5, 0},
		{12, 0, 1, 0},
		{13, 0, 0.75, 0.25},
		{14, 0, 0.5, 0.5},
		{16, 0, 0, 1},
		{16.6667, 0, 0, 1},
		{25, 0, 0, 1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.low, DensityLow(tt.x), eps, "low(%v)", tt.x)
		assert.InDelta(t, tt.medium, DensityMedium(tt.x), eps, "medium(%v)", tt.x)
		assert.InDelta(t, tt.high, DensityHigh(tt.x), eps, "high(%v)", tt.x)
	}
}

func TestDepletionMembership_Breakpoints(t *testing.T) {
	tests := []struct {
		x                 float64
		low, medium, high float64
	}{
		{0, 1, 0, 0},
		{2.4, 1, 0, 0},
		{5, 1, 0, 0},
		{7.5, 0.5, 0.5, 0},
		{10, 0, 1, 0},
		{12.5, 0, 0.5, 0.5},
		{15, 0, 0, 1},
		{40, 0, 0, 1},
		{100, 0, 0, 1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.low, DepletionLow(tt.x), eps, "low(%v)", tt.x)
		assert.InDelta(t, tt.medium, DepletionMedium(tt.x), eps, "medium(%v)", tt.x)
		assert.InDelta(t, tt.high, DepletionHigh(tt.x), eps, "high(%v)", tt.x)
	}
}

func TestMembership_AlwaysInUnitInterval(t *testing.T) {
	fns := map[string]func(float64) float64{
		"density_low":      DensityLow,
		"density_medium":   DensityMedium,
		"density_high":     DensityHigh,
		"depletion_low":    DepletionLow,
		"depletion_medium": DepletionMedium,
		"depletion_high":   DepletionHigh,
	}
	for name, fn := range fns {
		for x := -5.0; x <= 120; x += 0.05 {
			v := fn(x)
			assert.True(t, v >= 0 && v <= 1, "%s(%v)=%v outside [0,1]", name, x, v)
		}
	}
}

func TestMembership_NegativeAndNaNTreatedAsZero(t *testing.T) {
	for _, x := range []float64{-1, -1000, math.NaN()} {
		assert.Equal(t, 1.0, DensityLow(x))
		assert.Equal(t, 0.0, DensityMedium(x))
		assert.Equal(t, 0.0, DensityHigh(x))
		assert.Equal(t, 1.0, DepletionLow(x))
		assert.Equal(t, 0.0, DepletionMedium(x))
		assert.Equal(t, 0.0, DepletionHigh(x))
	}
}

func TestMembership_ContinuousAtBreakpoints(t *testing.T) {
	const h = 1e-7
	fns := []func(float64) float64{
		DensityLow, DensityMedium, DensityHigh,
		DepletionLow, DepletionMedium, DepletionHigh,
	}
	breaks := []float64{5, 8, 10, 12, 15, 16}
	for i, fn := range fns {
		for _, b := range breaks {
			assert.InDelta(t, fn(b), fn(b-h), 1e-6, "fn %d left of %v", i, b)
			assert.InDelta(t, fn(b), fn(b+h), 1e-6, "fn %d right of %v", i, b)
		}
	}
}

func TestFuzzify_CoversEveryValidValue(t *testing.T) {
	for x := 0.01; x <= 40; x += 0.01 {
		d := Fuzzify(Indicators{Density: x, DepletionPct: x * 2.5})
		assert.Greater(t, d.Density[Low]+d.Density[Medium]+d.Density[High], 0.0, "density %v", x)
		assert.Greater(t, d.Depletion[Low]+d.Depletion[Medium]+d.Depletion[High], 0.0, "depletion %v", x*2.5)
	}
}

func TestFuzzify_IndexesByLevel(t *testing.T) {
	d := Fuzzify(Indicators{Density: 10, DepletionPct: 12.5})
	assert.InDelta(t, 0.5, d.DensityIn(Low), eps)
	assert.InDelta(t, 0.5, d.DensityIn(Medium), eps)
	assert.InDelta(t, 0.0, d.DensityIn(High), eps)
	assert.InDelta(t, 0.0, d.DepletionIn(Low), eps)
	assert.InDelta(t, 0.5, d.DepletionIn(Medium), eps)
	assert.InDelta(t, 0.5, d.DepletionIn(High), eps)
}

//Personal.AI order the ending
