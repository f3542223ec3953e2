package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetrendConstantSeriesYieldsZeros(t *testing.T) {
	d := NewDetrender(10, 5)

	flat := make([]float64, 50)
	for i := range flat {
		flat[i] = 42.5
	}

	out := d.Apply(flat)
	for i, v := range out {
		assert.InDelta(t, 0, v, 1e-9, "index %d", i)
	}
}

func TestDetrendIsIdempotentOnFlatSeries(t *testing.T) {
	d := NewDetrender(5)

	flat := make([]float64, 30)
	for i := range flat {
		flat[i] = 7
	}

	once := d.Apply(flat)
	twice := d.Apply(once)
	for i := range twice {
		assert.InDelta(t, once[i], twice[i], 1e-9)
	}
}

func TestDetrendRemovesLinearDrift(t *testing.T) {
	d := NewDetrender(5)

	// Pure ramp: interior trend equals the sample midpoint, so interior
	// detrended values collapse toward a small constant offset.
	ramp := make([]float64, 40)
	for i := range ramp {
		ramp[i] = float64(i) * 0.5
	}

	out := d.Apply(ramp)
	for i := 6; i < len(out)-6; i++ {
		assert.Less(t, math.Abs(out[i]), 1.0, "interior index %d retains drift", i)
	}
}

func TestDetrendShortWindowPassesThrough(t *testing.T) {
	d := NewDetrender(25)

	values := []float64{1, 2, 3, 4, 5}
	out := d.Apply(values)
	assert.Equal(t, values, out)
}

func TestDetrendMatchesDirectMovingAverage(t *testing.T) {
	const spread = 3
	values := []float64{2, 4, 1, 7, 3, 8, 2, 9, 4, 6, 1, 5, 3, 7}
	out := detrendOnce(values, spread)

	n := len(values)
	for i := spread; i <= n-spread; i++ {
		var sum float64
		for j := i - spread; j < i+spread; j++ {
			sum += values[j]
		}
		want := values[i] - sum/float64(2*spread)
		assert.InDelta(t, want, out[i], 1e-9, "interior index %d", i)
	}

	// Boundary trend replicates the nearest interior trend.
	firstTrend := values[spread] - out[spread]
	for i := 0; i < spread; i++ {
		assert.InDelta(t, values[i]-firstTrend, out[i], 1e-9, "leading boundary index %d", i)
	}
	lastTrend := values[n-spread] - out[n-spread]
	for i := n - spread + 1; i < n; i++ {
		assert.InDelta(t, values[i]-lastTrend, out[i], 1e-9, "trailing boundary index %d", i)
	}
}

func TestDetrendDoesNotMutateInput(t *testing.T) {
	values := []float64{5, 1, 9, 2, 8, 3, 7, 4, 6, 5, 1, 9}
	original := append([]float64(nil), values...)

	NewDetrender(3, 2).Apply(values)
	assert.Equal(t, original, values)
}
