package feasibility

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/kandang-feasibility/pkg/errors"
)

func TestEvaluate_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		in        Input
		density   float64
		depletion float64
		rule      RuleID
		score     float64
		category  Category
	}{
		{
			name:      "crowded house with low losses",
			in:        Input{AreaM2: 300, InitialCount: 5000, SurvivingCount: 4800},
			density:   5000.0 / 300.0,
			depletion: 4.0,
			rule:      RuleHighLow,
			score:     40,
			category:  MarginallyFeasible,
		},
		{
			name:      "spacious house without losses",
			in:        Input{AreaM2: 1000, InitialCount: 5000, SurvivingCount: 5000},
			density:   5,
			depletion: 0,
			rule:      RuleLowLow,
			score:     100,
			category:  Feasible,
		},
		{
			name:      "crowded house with heavy losses",
			in:        Input{AreaM2: 200, InitialCount: 5000, SurvivingCount: 3000},
			density:   25,
			depletion: 40,
			rule:      RuleHighHigh,
			score:     20,
			category:  NotFeasible,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Evaluate(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.density, r.Indicators.Density, eps)
			assert.InDelta(t, tt.depletion, r.Indicators.DepletionPct, eps)
			require.Len(t, r.Activations, 1)
			assert.Equal(t, tt.rule, r.Activations[0].Rule)
			assert.Equal(t, 1.0, r.Activations[0].Strength)
			assert.InDelta(t, tt.score, r.Score, eps)
			assert.Equal(t, tt.category, r.Category)
			assert.False(t, r.NoRuleFired)
		})
	}
}

func TestEvaluate_BlendedRules(t *testing.T) {
	// area 500, 5000 birds → density 10; 300 dead → depletion 6 %.
	r, err := Evaluate(Input{AreaM2: 500, InitialCount: 5000, SurvivingCount: 4700})
	require.NoError(t, err)
	assert.Len(t, r.Activations, 4)
	assert.InDelta(t, 82.4/1.4, r.Score, 1e-9)
	assert.Equal(t, MarginallyFeasible, r.Category)
}

func TestEvaluate_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   Input
	}{
		{"surviving exceeds initial", Input{AreaM2: 300, InitialCount: 5000, SurvivingCount: 6000}},
		{"zero area", Input{AreaM2: 0, InitialCount: 5000, SurvivingCount: 4000}},
		{"negative area", Input{AreaM2: -10, InitialCount: 5000, SurvivingCount: 4000}},
		{"NaN area", Input{AreaM2: math.NaN(), InitialCount: 5000, SurvivingCount: 4000}},
		{"infinite area", Input{AreaM2: math.Inf(1), InitialCount: 5000, SurvivingCount: 4000}},
		{"zero initial", Input{AreaM2: 300, InitialCount: 0, SurvivingCount: 0}},
		{"negative surviving", Input{AreaM2: 300, InitialCount: 10, SurvivingCount: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Evaluate(tt.in)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.CodeInvalidInput))
			assert.Equal(t, Result{}, r)
		})
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	in := Input{AreaM2: 437.5, InitialCount: 5230, SurvivingCount: 4871}
	a, err := Evaluate(in)
	require.NoError(t, err)
	b, err := Evaluate(in)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, math.Float64bits(a.Score), math.Float64bits(b.Score))
}

// Scores are compared on the plateau grid, where each indicator belongs fully
// to one set.  Between plateaus the consequents grow with rule strength, so
// the blended score is not monotone everywhere.
func TestEvaluateIndicators_NonIncreasingOnPlateauGrid(t *testing.T) {
	densities := []float64{2, 8, 12, 16, 30}
	depletions := []float64{0, 5, 10, 15, 50}

	for _, dp := range depletions {
		prev := math.Inf(1)
		for _, d := range densities {
			s := EvaluateIndicators(Indicators{Density: d, DepletionPct: dp}).Score
			assert.LessOrEqual(t, s, prev, "density %v at depletion %v", d, dp)
			prev = s
		}
	}
	for _, d := range densities {
		prev := math.Inf(1)
		for _, dp := range depletions {
			s := EvaluateIndicators(Indicators{Density: d, DepletionPct: dp}).Score
			assert.LessOrEqual(t, s, prev, "depletion %v at density %v", dp, d)
			prev = s
		}
	}
}

func TestEvaluateIndicators_AlwaysFiresInOperatingRange(t *testing.T) {
	for d := 0.5; d <= 40; d += 0.25 {
		for dp := 0.0; dp <= 100; dp += 0.5 {
			r := EvaluateIndicators(Indicators{Density: d, DepletionPct: dp})
			require.False(t, r.NoRuleFired, "density %v depletion %v", d, dp)
			require.NotEmpty(t, r.Activations)
			require.True(t, r.Score >= 10*0.5 && r.Score <= 100, "score %v", r.Score)
		}
	}
}

func TestDefuzzify_NoRuleFired(t *testing.T) {
	score, ok := Defuzzify(nil)
	assert.False(t, ok)
	assert.Equal(t, 0.0, score)

	score, ok = Defuzzify([]Activation{{Rule: RuleLowLow, Strength: 0, Value: 100}})
	assert.False(t, ok)
	assert.Equal(t, 0.0, score)
	assert.Equal(t, NotFeasible, Categorize(score))
}

func TestDefuzzify_WeightedAverage(t *testing.T) {
	score, ok := Defuzzify([]Activation{
		{Rule: RuleLowLow, Strength: 0.5, Value: 85},
		{Rule: RuleMediumLow, Strength: 0.5, Value: 55},
	})
	assert.True(t, ok)
	assert.InDelta(t, 70.0, score, eps)
}

func TestCategorize_Thresholds(t *testing.T) {
	tests := []struct {
		score float64
		want  Category
	}{
		{100, Feasible},
		{60, Feasible},
		{59.999, MarginallyFeasible},
		{35, MarginallyFeasible},
		{34.999, NotFeasible},
		{0, NotFeasible},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Categorize(tt.score), "score: %v", tt.score)
	}
}

func TestCategory_Label(t *testing.T) {
	assert.Equal(t, "Layak", Feasible.Label())
	assert.Equal(t, "Kurang Layak", MarginallyFeasible.Label())
	assert.Equal(t, "Tidak Layak", NotFeasible.Label())
	assert.Equal(t, "other", Category("other").Label())
}

func TestComputeIndicators_ZeroInitialGuard(t *testing.T) {
	ind := ComputeIndicators(Input{AreaM2: 100, InitialCount: 0, SurvivingCount: 0})
	assert.Equal(t, 0.0, ind.DepletionPct)
	assert.Equal(t, 0.0, ind.Density)
}

func TestInput_Deaths(t *testing.T) {
	assert.Equal(t, 200, Input{InitialCount: 5000, SurvivingCount: 4800}.Deaths())
	assert.Equal(t, 0, Input{InitialCount: 10, SurvivingCount: 12}.Deaths())
}

//Personal.AI order the ending
