package feasibility

import "fmt"

// Advice is the expert recommendation attached to a result.
type Advice struct {
	DensityLevel   Level    `json:"density_level" yaml:"density_level"`
	DepletionLevel Level    `json:"depletion_level" yaml:"depletion_level"`
	Notes          []string `json:"notes" yaml:"notes"`
	Conclusion     string   `json:"conclusion" yaml:"conclusion"`
}

// ClassifyDensity buckets density crisply for advice: <8 low, ≤12 medium, else high.
func ClassifyDensity(x float64) Level {
	switch {
	case x < DensityLowFull:
		return Low
	case x <= DensityMediumTop:
		return Medium
	default:
		return High
	}
}

// ClassifyDepletion buckets depletion crisply for advice: <5 low, ≤10 medium, else high.
func ClassifyDepletion(x float64) Level {
	switch {
	case x < DepletionLowFull:
		return Low
	case x <= DepletionMediumTop:
		return Medium
	default:
		return High
	}
}

var densityNotes = [3]string{
	"Low density: plenty of floor space per bird, low stress risk.",
	"Medium density: still safe; keep ventilation and litter clean.",
	"High density: heat stress and ammonia risk are elevated.",
}

var depletionNotes = [3]string{
	"Low depletion: flock health and management are very good.",
	"Medium depletion: review nutrition, ventilation and feed distribution.",
	"High depletion: indicates a health or management problem.",
}

var conclusions = map[Category]string{
	Feasible:           "The house is fit for operation. Keep current management and monitor routinely.",
	MarginallyFeasible: "The house is below optimum. Improve ventilation, feed distribution and temperature control, or reduce density.",
	NotFeasible:        "The house is not fit for operation. Corrective action is needed now: reduce density or split the flock.",
}

// Advise builds the expert recommendation for r.
func Advise(r Result) Advice {
	dl := ClassifyDensity(r.Indicators.Density)
	pl := ClassifyDepletion(r.Indicators.DepletionPct)
	return Advice{
		DensityLevel:   dl,
		DepletionLevel: pl,
		Notes:          []string{densityNotes[dl], depletionNotes[pl]},
		Conclusion:     conclusions[r.Category],
	}
}

// AdvisoryThresholds bound the inputs considered plausible.  Crossing one is
// reported as a warning, never as an error.
type AdvisoryThresholds struct {
	MinAreaM2       float64
	MaxDensity      float64
	MaxDepletionPct float64
}

// DefaultAdvisoryThresholds returns the field-tested limits.
func DefaultAdvisoryThresholds() AdvisoryThresholds {
	return AdvisoryThresholds{MinAreaM2: 50, MaxDensity: 20, MaxDepletionPct: 20}
}

// Advisory codes.
const (
	AdvisorySmallArea     = "small_area"
	AdvisoryHighDensity   = "very_high_density"
	AdvisoryHighDepletion = "very_high_depletion"
)

// Advisory is one warning about an extreme input.
type Advisory struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// Advisories checks in and ind against t.  A zero threshold disables its check.
func Advisories(in Input, ind Indicators, t AdvisoryThresholds) []Advisory {
	var out []Advisory
	if t.MinAreaM2 > 0 && in.AreaM2 < t.MinAreaM2 {
		out = append(out, Advisory{
			Code:    AdvisorySmallArea,
			Message: fmt.Sprintf("house area is very small (<%.0f m²)", t.MinAreaM2),
		})
	}
	if t.MaxDensity > 0 && ind.Density > t.MaxDensity {
		out = append(out, Advisory{
			Code:    AdvisoryHighDensity,
			Message: fmt.Sprintf("density is very high (%.1f birds/m²)", ind.Density),
		})
	}
	if t.MaxDepletionPct > 0 && ind.DepletionPct > t.MaxDepletionPct {
		out = append(out, Advisory{
			Code:    AdvisoryHighDepletion,
			Message: fmt.Sprintf("depletion is very high (%.1f%%)", ind.DepletionPct),
		})
	}
	return out
}

//Personal.AI order the ending
