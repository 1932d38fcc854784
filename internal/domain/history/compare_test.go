package history

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(no int, birds, deaths int, density, depletion float64) Record {
	return Record{
		No: no, House: "K" + string(rune('0'+no)),
		BirdCount: birds, Deaths: deaths, Density: density, DepletionPct: depletion,
		HasBirdCount: true, HasDeaths: true, HasDensity: true, HasDepletion: true,
	}
}

func sampleRecords() []Record {
	return []Record{
		rec(1, 5000, 100, 10, 2),
		rec(2, 6000, 300, 15, 5),
		rec(3, 4000, 400, 8, 10),
		rec(4, 7000, 700, 20, 10),
		rec(5, 3000, 60, 12, 2),
		rec(6, 5500, 550, 18, 10),
		rec(7, 4500, 90, 14, 2),
	}
}

func TestCompare_Totals(t *testing.T) {
	c := Compare(sampleRecords(), 16.667, DefaultOptions())

	assert.Equal(t, 7, c.Rows)
	assert.Equal(t, 7, c.ValidRows)
	assert.Equal(t, 35000, c.TotalBirds)
	assert.Equal(t, 2200, c.TotalDeaths)
	assert.InDelta(t, 97.0/7.0, c.MeanDensity, 1e-9)
	assert.Equal(t, Skipped{}, c.Skipped)
	assert.Zero(t, c.MissingDeaths)
	assert.Len(t, c.Series, 7)
	assert.Equal(t, 7, c.DensityDist.Total())
	assert.Equal(t, 7, c.DepletionDist.Total())
}

func TestCompare_NearestOrdering(t *testing.T) {
	c := Compare(sampleRecords(), 16, Options{TopN: 3})

	require.Len(t, c.Nearest, 3)
	// distances: 15→1, 18→2, 14→2; ties keep input order.
	assert.Equal(t, 2, c.Nearest[0].Record.No)
	assert.Equal(t, 6, c.Nearest[1].Record.No)
	assert.Equal(t, 7, c.Nearest[2].Record.No)
	assert.InDelta(t, 1.0, c.Nearest[0].Distance, 1e-12)
	assert.InDelta(t, 2.0, c.Nearest[1].Distance, 1e-12)
	assert.InDelta(t, 2.0, c.Nearest[2].Distance, 1e-12)
}

func TestCompare_DefaultTopN(t *testing.T) {
	c := Compare(sampleRecords(), 12, Options{})
	assert.Len(t, c.Nearest, DefaultTopN)
	assert.Equal(t, 5, c.Nearest[0].Record.No)
}

func TestCompare_DoesNotMutateInput(t *testing.T) {
	records := sampleRecords()
	snapshot := sampleRecords()

	_ = Compare(records, 16, DefaultOptions())
	assert.Equal(t, snapshot, records)
}

func TestCompare_MissingFields(t *testing.T) {
	records := sampleRecords()
	records[0].HasDensity = false
	records[1].HasDepletion = false
	records[2].HasBirdCount = false
	records[3].HasDeaths = false
	records[4].Density = math.NaN()

	c := Compare(records, 10, DefaultOptions())

	assert.Equal(t, Skipped{BirdCount: 1, Density: 2, Depletion: 1}, c.Skipped)
	assert.Equal(t, 4, c.Skipped.Total())
	assert.Equal(t, 1, c.MissingDeaths)
	assert.Equal(t, 6, c.ValidRows)
	assert.Equal(t, 31000, c.TotalBirds)
	assert.Equal(t, 1500, c.TotalDeaths)
	assert.Equal(t, 5, c.DensityDist.Total())
	assert.Equal(t, 6, c.DepletionDist.Total())
	assert.Len(t, c.Series, 4)
	for _, n := range c.Nearest {
		assert.NotEqual(t, 1, n.Record.No)
		assert.NotEqual(t, 5, n.Record.No)
	}
}

func TestCompare_Empty(t *testing.T) {
	c := Compare(nil, 12, DefaultOptions())
	assert.Zero(t, c.Rows)
	assert.Zero(t, c.MeanDensity)
	assert.Empty(t, c.Nearest)
	assert.Empty(t, c.DensityDist.Counts)
}

func TestRecord_Label(t *testing.T) {
	assert.Equal(t, "Kandang A", Record{House: "Kandang A", No: 3}.Label())
	assert.Equal(t, "#3", Record{No: 3}.Label())
	assert.Equal(t, "?", Record{}.Label())
}

func TestRecord_Valid(t *testing.T) {
	assert.True(t, Record{BirdCount: 1, HasBirdCount: true}.Valid())
	assert.False(t, Record{BirdCount: 0, HasBirdCount: true}.Valid())
	assert.False(t, Record{BirdCount: 10}.Valid())
}

//Personal.AI order the ending
