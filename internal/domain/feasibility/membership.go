package feasibility

import "math"

// Breakpoints of the density sets, in birds per square metre.
const (
	DensityLowFull   = 8.0
	DensityMediumTop = 12.0
	DensityHighFull  = 16.0
)

// Breakpoints of the depletion sets, in percent.
const (
	DepletionLowFull   = 5.0
	DepletionMediumTop = 10.0
	DepletionHighFull  = 15.0
)

// sanitize maps values that cannot occur for valid inputs (negative, NaN) to
// zero so the piecewise functions below stay inside [0,1].
func sanitize(x float64) float64 {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	return x
}

// DensityLow: 1 up to 8, falling to 0 at 12.
func DensityLow(x float64) float64 {
	x = sanitize(x)
	switch {
	case x <= DensityLowFull:
		return 1
	case x < DensityMediumTop:
		return (DensityMediumTop - x) / 4
	default:
		return 0
	}
}

// DensityMedium: triangle rising from 8, peaking at 12, gone at 16.
func DensityMedium(x float64) float64 {
	x = sanitize(x)
	switch {
	case x >= DensityLowFull && x <= DensityMediumTop:
		return (x - DensityLowFull) / 4
	case x > DensityMediumTop && x <= DensityHighFull:
		return (DensityHighFull - x) / 4
	default:
		return 0
	}
}

// DensityHigh: 0 up to 12, rising to 1 at 16.
func DensityHigh(x float64) float64 {
	x = sanitize(x)
	switch {
	case x <= DensityMediumTop:
		return 0
	case x < DensityHighFull:
		return (x - DensityMediumTop) / 4
	default:
		return 1
	}
}

// DepletionLow: 1 up to 5 %, falling to 0 at 10 %.
func DepletionLow(x float64) float64 {
	x = sanitize(x)
	switch {
	case x <= DepletionLowFull:
		return 1
	case x < DepletionMediumTop:
		return (DepletionMediumTop - x) / 5
	default:
		return 0
	}
}

// DepletionMedium: triangle rising from 5 %, peaking at 10 %, gone at 15 %.
func DepletionMedium(x float64) float64 {
	x = sanitize(x)
	switch {
	case x >= DepletionLowFull && x <= DepletionMediumTop:
		return (x - DepletionLowFull) / 5
	case x > DepletionMediumTop && x <= DepletionHighFull:
		return (DepletionHighFull - x) / 5
	default:
		return 0
	}
}

// DepletionHigh: 0 up to 10 %, rising to 1 at 15 %.
func DepletionHigh(x float64) float64 {
	x = sanitize(x)
	switch {
	case x <= DepletionMediumTop:
		return 0
	case x < DepletionHighFull:
		return (x - DepletionMediumTop) / 5
	default:
		return 1
	}
}

var (
	densitySets   = [3]func(float64) float64{DensityLow, DensityMedium, DensityHigh}
	depletionSets = [3]func(float64) float64{DepletionLow, DepletionMedium, DepletionHigh}
)

// Fuzzify evaluates all six membership functions for ind.
func Fuzzify(ind Indicators) Degrees {
	var d Degrees
	for _, l := range Levels {
		d.Density[l] = densitySets[l](ind.Density)
		d.Depletion[l] = depletionSets[l](ind.DepletionPct)
	}
	return d
}

//Personal.AI order the ending
