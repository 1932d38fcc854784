// Package history compares a house against records of past houses.  The
// comparison is descriptive: it never feeds back into the fuzzy score.
package history

import "strconv"

// Record is one row of a historical dataset.  Numeric columns are optional in
// the source files, so each carries a presence flag.
type Record struct {
	No           int     `json:"no,omitempty" yaml:"no,omitempty"`
	House        string  `json:"house,omitempty" yaml:"house,omitempty"`
	AreaM2       float64 `json:"area_m2" yaml:"area_m2"`
	BirdCount    int     `json:"bird_count" yaml:"bird_count"`
	Deaths       int     `json:"deaths" yaml:"deaths"`
	Density      float64 `json:"density" yaml:"density"`
	DepletionPct float64 `json:"depletion_pct" yaml:"depletion_pct"`

	HasArea      bool `json:"-" yaml:"-"`
	HasBirdCount bool `json:"-" yaml:"-"`
	HasDeaths    bool `json:"-" yaml:"-"`
	HasDensity   bool `json:"-" yaml:"-"`
	HasDepletion bool `json:"-" yaml:"-"`
}

// Valid reports whether the row describes a stocked house.
func (r Record) Valid() bool {
	return r.HasBirdCount && r.BirdCount > 0
}

// Label returns the house name, falling back to its row number.
func (r Record) Label() string {
	if r.House != "" {
		return r.House
	}
	if r.No > 0 {
		return "#" + strconv.Itoa(r.No)
	}
	return "?"
}

//Personal.AI order the ending
