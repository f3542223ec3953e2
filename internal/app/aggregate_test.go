package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregatorEmpty(t *testing.T) {
	var agg Aggregator

	avg, ok := agg.Average()
	assert.False(t, ok)
	assert.Zero(t, avg)
	assert.Zero(t, agg.Count())
}

func TestAggregatorSingleEstimate(t *testing.T) {
	var agg Aggregator
	agg.Add(72, 0.5)

	avg, ok := agg.Average()
	assert.True(t, ok)
	assert.InDelta(t, 72.0, avg, 1e-9)
	assert.Equal(t, 1, agg.Count())
}

func TestAggregatorFavorsConfidentEstimates(t *testing.T) {
	var agg Aggregator
	agg.Add(70, 0.9)
	agg.Add(120, 0.1)

	// Squared weights: (70*0.81 + 120*0.01) / 0.82
	avg, ok := agg.Average()
	assert.True(t, ok)
	assert.InDelta(t, 70.6097, avg, 0.001)
}

func TestAggregatorEqualWeights(t *testing.T) {
	var agg Aggregator
	agg.Add(60, 0.5)
	agg.Add(80, 0.5)

	avg, ok := agg.Average()
	assert.True(t, ok)
	assert.InDelta(t, 70.0, avg, 1e-9)
}

func TestAggregatorZeroWeightOnly(t *testing.T) {
	var agg Aggregator
	agg.Add(72, 0)

	avg, ok := agg.Average()
	assert.False(t, ok)
	assert.Zero(t, avg)
	assert.Equal(t, 1, agg.Count())
}
