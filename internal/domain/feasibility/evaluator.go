package feasibility

import (
	"fmt"
	"math"

	"github.com/turtacn/kandang-feasibility/pkg/errors"
)

// Category thresholds on the defuzzified score.
const (
	FeasibleMinScore           = 60.0
	MarginallyFeasibleMinScore = 35.0
)

// Validate rejects inputs for which the model is undefined.  The evaluator
// refuses to compute rather than clamping, since a surviving count above the
// initial count points at a data-entry defect.
func (in Input) Validate() error {
	switch {
	case math.IsNaN(in.AreaM2) || math.IsInf(in.AreaM2, 0) || in.AreaM2 <= 0:
		return errors.InvalidInput("area must be a positive number of square metres").
			WithDetail(fmt.Sprintf("area_m2=%v", in.AreaM2))
	case in.InitialCount <= 0:
		return errors.InvalidInput("initial bird count must be positive").
			WithDetail(fmt.Sprintf("initial_count=%d", in.InitialCount))
	case in.SurvivingCount < 0:
		return errors.InvalidInput("surviving bird count must not be negative").
			WithDetail(fmt.Sprintf("surviving_count=%d", in.SurvivingCount))
	case in.SurvivingCount > in.InitialCount:
		return errors.InvalidInput("surviving bird count exceeds initial count").
			WithDetail(fmt.Sprintf("surviving_count=%d initial_count=%d", in.SurvivingCount, in.InitialCount))
	}
	return nil
}

// ComputeIndicators derives density and depletion.  Depletion is 0 when the
// initial count is 0; Validate rules that case out before evaluation.
func ComputeIndicators(in Input) Indicators {
	ind := Indicators{Density: in.Density()}
	if in.InitialCount > 0 {
		ind.DepletionPct = float64(in.Deaths()) / float64(in.InitialCount) * 100
	}
	return ind
}

// Density returns birds per square metre, or 0 for a non-positive area.
func (in Input) Density() float64 {
	if in.AreaM2 <= 0 {
		return 0
	}
	return float64(in.InitialCount) / in.AreaM2
}

// Defuzzify returns Σ(αᵢ·zᵢ)/Σαᵢ.  ok is false when no rule fired, in which
// case the score is 0.
func Defuzzify(acts []Activation) (score float64, ok bool) {
	var num, den float64
	for _, a := range acts {
		if a.Strength <= 0 {
			continue
		}
		num += a.Strength * a.Value
		den += a.Strength
	}
	if den == 0 {
		return 0, false
	}
	return num / den, true
}

// Categorize maps a crisp score onto the feasibility category.
func Categorize(score float64) Category {
	switch {
	case score >= FeasibleMinScore:
		return Feasible
	case score >= MarginallyFeasibleMinScore:
		return MarginallyFeasible
	default:
		return NotFeasible
	}
}

// EvaluateIndicators runs fuzzification, rule evaluation, defuzzification and
// categorization over already-derived indicators.
func EvaluateIndicators(ind Indicators) Result {
	deg := Fuzzify(ind)
	acts := FireRules(deg)
	score, ok := Defuzzify(acts)
	return Result{
		Indicators:  ind,
		Degrees:     deg,
		Activations: acts,
		Score:       score,
		Category:    Categorize(score),
		NoRuleFired: !ok,
	}
}

// Evaluate validates in and computes its feasibility result.
func Evaluate(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}
	return EvaluateIndicators(ComputeIndicators(in)), nil
}

//Personal.AI order the ending
