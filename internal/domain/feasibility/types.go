// Package feasibility implements the broiler-house (kandang) feasibility model:
// stocking density and depletion indicators, their fuzzy membership degrees,
// the fixed nine-rule Tsukamoto rule base, weighted-average defuzzification and
// the three-way feasibility category.
//
// Everything in this package is a pure function of its arguments.  No state is
// kept between calls, so evaluations may run in parallel without coordination.
package feasibility

import "fmt"

// Level is a linguistic set of a fuzzy input variable.
type Level int

const (
	Low Level = iota
	Medium
	High
)

// Levels lists the linguistic sets in ascending order.
var Levels = [...]Level{Low, Medium, High}

func (l Level) String() string {
	switch l {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// MarshalText encodes the level by name.
func (l Level) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// Category is the feasibility verdict derived from the crisp score.
type Category string

const (
	Feasible           Category = "feasible"
	MarginallyFeasible Category = "marginally_feasible"
	NotFeasible        Category = "not_feasible"
)

// Label returns the Indonesian label used by farm staff.
func (c Category) Label() string {
	switch c {
	case Feasible:
		return "Layak"
	case MarginallyFeasible:
		return "Kurang Layak"
	case NotFeasible:
		return "Tidak Layak"
	default:
		return string(c)
	}
}

// Input is one house observation.  SurvivingCount must not exceed InitialCount.
type Input struct {
	AreaM2         float64 `json:"area_m2" yaml:"area_m2"`
	InitialCount   int     `json:"initial_count" yaml:"initial_count"`
	SurvivingCount int     `json:"surviving_count" yaml:"surviving_count"`
}

// Deaths returns the number of birds lost, never negative.
func (in Input) Deaths() int {
	if d := in.InitialCount - in.SurvivingCount; d > 0 {
		return d
	}
	return 0
}

// Indicators are the two crisp model inputs derived from an Input.
type Indicators struct {
	// Density is birds per square metre (ekor/m²).
	Density float64 `json:"density" yaml:"density"`
	// DepletionPct is the share of the initial flock that died, in percent.
	DepletionPct float64 `json:"depletion_pct" yaml:"depletion_pct"`
}

// Degrees holds the membership degree of each indicator in each linguistic set.
type Degrees struct {
	Density   [3]float64 `json:"density" yaml:"density"`
	Depletion [3]float64 `json:"depletion" yaml:"depletion"`
}

// DensityIn returns the density membership degree for l.
func (d Degrees) DensityIn(l Level) float64 { return d.Density[l] }

// DepletionIn returns the depletion membership degree for l.
func (d Degrees) DepletionIn(l Level) float64 { return d.Depletion[l] }

// Activation is a fired rule: its strength α and its crisp consequent z.
type Activation struct {
	Rule     RuleID  `json:"rule" yaml:"rule"`
	Strength float64 `json:"strength" yaml:"strength"`
	Value    float64 `json:"value" yaml:"value"`
}

// Result is the outcome of one evaluation.  It is a value; it carries no
// identity and is recomputed on every call.
type Result struct {
	Indicators  Indicators   `json:"indicators" yaml:"indicators"`
	Degrees     Degrees      `json:"degrees" yaml:"degrees"`
	Activations []Activation `json:"activations" yaml:"activations"`
	Score       float64      `json:"score" yaml:"score"`
	Category    Category     `json:"category" yaml:"category"`

	// NoRuleFired is set when every rule strength was zero.  Score is then 0
	// by convention and must not be read as a computed worst case.
	NoRuleFired bool `json:"no_rule_fired" yaml:"no_rule_fired"`
}

//Personal.AI order the ending
