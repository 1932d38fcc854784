package history

import (
	"math"
	"sort"
)

// Comparison defaults.
const (
	DefaultTopN = 5
	MaxBins     = 15
	DefaultBins = MaxBins
)

// Options tune Compare.  Zero values select the defaults.
type Options struct {
	TopN int
	Bins int
}

// DefaultOptions returns TopN=5 and the maximum bin count.
func DefaultOptions() Options {
	return Options{TopN: DefaultTopN, Bins: DefaultBins}
}

func (o Options) normalize() Options {
	if o.TopN <= 0 {
		o.TopN = DefaultTopN
	}
	if o.Bins <= 0 || o.Bins > MaxBins {
		o.Bins = DefaultBins
	}
	return o
}

// Neighbor is a past house ranked by density distance to the current one.
type Neighbor struct {
	Record   Record  `json:"record" yaml:"record"`
	Distance float64 `json:"distance" yaml:"distance"`
}

// Point is one entry of the per-house series used for charting.
type Point struct {
	House        string  `json:"house" yaml:"house"`
	Density      float64 `json:"density" yaml:"density"`
	DepletionPct float64 `json:"depletion_pct" yaml:"depletion_pct"`
}

// Skipped counts rows excluded from a statistic because the field it needs
// was missing.
type Skipped struct {
	BirdCount int `json:"bird_count" yaml:"bird_count"`
	Density   int `json:"density" yaml:"density"`
	Depletion int `json:"depletion" yaml:"depletion"`
}

// Total returns the number of per-field exclusions.
func (s Skipped) Total() int { return s.BirdCount + s.Density + s.Depletion }

// Comparison summarises a dataset relative to the current house.
type Comparison struct {
	Rows           int        `json:"rows" yaml:"rows"`
	ValidRows      int        `json:"valid_rows" yaml:"valid_rows"`
	CurrentDensity float64    `json:"current_density" yaml:"current_density"`
	TotalBirds     int        `json:"total_birds" yaml:"total_birds"`
	TotalDeaths    int        `json:"total_deaths" yaml:"total_deaths"`
	MeanDensity    float64    `json:"mean_density" yaml:"mean_density"`
	Nearest        []Neighbor `json:"nearest" yaml:"nearest"`
	DensityDist    Histogram  `json:"density_distribution" yaml:"density_distribution"`
	DepletionDist  Histogram  `json:"depletion_distribution" yaml:"depletion_distribution"`
	Series         []Point    `json:"series" yaml:"series"`
	Skipped        Skipped    `json:"skipped" yaml:"skipped"`
	MissingDeaths  int        `json:"missing_deaths" yaml:"missing_deaths"`
}

// Compare summarises records against currentDensity.  records is only read.
// Rows lacking density are left out of the mean, the ranking and the density
// histogram; rows lacking depletion are left out of the depletion histogram;
// a row without series data on either axis is not charted.
func Compare(records []Record, currentDensity float64, opts Options) Comparison {
	opts = opts.normalize()
	c := Comparison{Rows: len(records), CurrentDensity: currentDensity}

	densities := make([]float64, 0, len(records))
	depletions := make([]float64, 0, len(records))
	neighbors := make([]Neighbor, 0, len(records))

	for _, r := range records {
		if r.Valid() {
			c.ValidRows++
		}
		if r.HasBirdCount {
			c.TotalBirds += r.BirdCount
		} else {
			c.Skipped.BirdCount++
		}
		if r.HasDeaths {
			c.TotalDeaths += r.Deaths
		} else {
			c.MissingDeaths++
		}
		hasDensity := r.HasDensity && isFinite(r.Density)
		hasDepletion := r.HasDepletion && isFinite(r.DepletionPct)
		if hasDensity {
			densities = append(densities, r.Density)
			neighbors = append(neighbors, Neighbor{Record: r, Distance: math.Abs(r.Density - currentDensity)})
		} else {
			c.Skipped.Density++
		}
		if hasDepletion {
			depletions = append(depletions, r.DepletionPct)
		} else {
			c.Skipped.Depletion++
		}
		if hasDensity && hasDepletion {
			c.Series = append(c.Series, Point{House: r.Label(), Density: r.Density, DepletionPct: r.DepletionPct})
		}
	}

	c.MeanDensity = mean(densities)
	c.Nearest = nearest(neighbors, opts.TopN)
	c.DensityDist = NewHistogram(densities, opts.Bins)
	c.DepletionDist = NewHistogram(depletions, opts.Bins)
	return c
}

func nearest(neighbors []Neighbor, n int) []Neighbor {
	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Distance < neighbors[j].Distance
	})
	if len(neighbors) > n {
		neighbors = neighbors[:n]
	}
	return neighbors
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

//Personal.AI order the ending
