package feasibility

import "fmt"

// ConsequentKind selects one of the three monotone output functions.
type ConsequentKind int

const (
	ConsequentLow ConsequentKind = iota
	ConsequentMedium
	ConsequentHigh
)

// Consequent bases; each output function spans base..base+30.
const (
	consequentSpan       = 30.0
	consequentLowBase    = 10.0
	consequentMediumBase = 40.0
	consequentHighBase   = 70.0
)

func (k ConsequentKind) String() string {
	switch k {
	case ConsequentLow:
		return "low"
	case ConsequentMedium:
		return "medium"
	case ConsequentHigh:
		return "high"
	default:
		return fmt.Sprintf("consequent(%d)", int(k))
	}
}

// Apply maps a rule strength a ∈ [0,1] to the crisp sub-score of this
// consequent: low 10–40, medium 40–70, high 70–100.
func (k ConsequentKind) Apply(a float64) float64 {
	switch k {
	case ConsequentHigh:
		return consequentHighBase + consequentSpan*a
	case ConsequentMedium:
		return consequentMediumBase + consequentSpan*a
	default:
		return consequentLowBase + consequentSpan*a
	}
}

// RuleID enumerates the nine cells of the density × depletion rule table.
type RuleID int

const (
	RuleLowLow RuleID = iota + 1
	RuleLowMedium
	RuleLowHigh
	RuleMediumLow
	RuleMediumMedium
	RuleMediumHigh
	RuleHighLow
	RuleHighMedium
	RuleHighHigh
)

func (id RuleID) String() string {
	if id < RuleLowLow || id > RuleHighHigh {
		return fmt.Sprintf("R?(%d)", int(id))
	}
	r := ruleBase[id-1]
	return fmt.Sprintf("R%d[density=%s,depletion=%s]", int(id), r.Density, r.Depletion)
}

// Code returns the short rule name, "R1" … "R9".
func (id RuleID) Code() string { return fmt.Sprintf("R%d", int(id)) }

// MarshalText encodes the rule by its short code.
func (id RuleID) MarshalText() ([]byte, error) { return []byte(id.Code()), nil }

// Rule is one immutable cell of the rule table.
type Rule struct {
	ID         RuleID
	Density    Level
	Depletion  Level
	Consequent ConsequentKind
	// Derate scales the consequent to separate rules sharing the same base
	// function (e.g. medium/high vs high/high density-depletion).
	Derate float64
}

// Output returns the derated crisp consequent for strength a.
func (r Rule) Output(a float64) float64 {
	return r.Consequent.Apply(a) * r.Derate
}

// ruleBase is indexed by RuleID-1, rows by density, columns by depletion.
var ruleBase = [9]Rule{
	{RuleLowLow, Low, Low, ConsequentHigh, 1.0},
	{RuleLowMedium, Low, Medium, ConsequentMedium, 1.0},
	{RuleLowHigh, Low, High, ConsequentLow, 1.0},
	{RuleMediumLow, Medium, Low, ConsequentMedium, 1.0},
	{RuleMediumMedium, Medium, Medium, ConsequentLow, 1.0},
	{RuleMediumHigh, Medium, High, ConsequentLow, 0.7},
	{RuleHighLow, High, Low, ConsequentLow, 1.0},
	{RuleHighMedium, High, Medium, ConsequentLow, 0.6},
	{RuleHighHigh, High, High, ConsequentLow, 0.5},
}

// Rules returns a copy of the rule table in RuleID order.
func Rules() []Rule {
	out := make([]Rule, len(ruleBase))
	copy(out, ruleBase[:])
	return out
}

// RuleFor returns the rule covering the given density and depletion sets.
func RuleFor(density, depletion Level) Rule {
	return ruleBase[int(density)*3+int(depletion)]
}

// FireRules evaluates every rule against d and returns the activations with
// non-zero strength, in RuleID order.  Strength is min(μdensity, μdepletion).
func FireRules(d Degrees) []Activation {
	acts := make([]Activation, 0, len(ruleBase))
	for _, r := range ruleBase {
		alpha := min(d.DensityIn(r.Density), d.DepletionIn(r.Depletion))
		if alpha <= 0 {
			continue
		}
		acts = append(acts, Activation{
			Rule:     r.ID,
			Strength: alpha,
			Value:    r.Output(alpha),
		})
	}
	return acts
}

//Personal.AI order the ending
