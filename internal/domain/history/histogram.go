package history

// Histogram is an equal-width distribution over [Min, Max].  The last bin is
// closed on the right.
type Histogram struct {
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	Width  float64 `json:"width" yaml:"width"`
	Counts []int   `json:"counts" yaml:"counts"`
}

// NewHistogram bins xs into at most bins buckets.  Fewer buckets are used when
// there are fewer values than bins; identical values share a single bucket.
func NewHistogram(xs []float64, bins int) Histogram {
	if len(xs) == 0 || bins <= 0 {
		return Histogram{}
	}
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		lo = min(lo, x)
		hi = max(hi, x)
	}
	if hi == lo {
		return Histogram{Min: lo, Max: hi, Counts: []int{len(xs)}}
	}
	bins = min(bins, len(xs))

	h := Histogram{Min: lo, Max: hi, Width: (hi - lo) / float64(bins), Counts: make([]int, bins)}
	for _, x := range xs {
		h.Counts[h.bin(x)]++
	}
	return h
}

func (h Histogram) bin(x float64) int {
	i := int((x - h.Min) / h.Width)
	if i >= len(h.Counts) {
		i = len(h.Counts) - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// Total returns the number of binned values.
func (h Histogram) Total() int {
	n := 0
	for _, c := range h.Counts {
		n += c
	}
	return n
}

// Edges returns the len(Counts)+1 bucket boundaries.
func (h Histogram) Edges() []float64 {
	if len(h.Counts) == 0 {
		return nil
	}
	edges := make([]float64, len(h.Counts)+1)
	for i := range edges {
		edges[i] = h.Min + float64(i)*h.Width
	}
	edges[len(edges)-1] = h.Max
	return edges
}

//Personal.AI order the ending
