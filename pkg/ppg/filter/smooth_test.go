package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSmootherValidation(t *testing.T) {
	_, err := NewSmoother(0)
	assert.Error(t, err)
	_, err = NewSmoother(-3)
	assert.Error(t, err)
	_, err = NewSmoother(20)
	assert.NoError(t, err)
}

func TestSmootherRecurrence(t *testing.T) {
	s, err := NewSmoother(20)
	require.NoError(t, err)

	values := []float64{1, 5, 2, 8, 3, 9, 4, 7, 2, 6}
	out := s.Apply(values)
	require.Len(t, out, len(values))

	ratio := 20.0 / float64(len(values)+1)
	assert.Equal(t, values[0], out[0])
	for i := 1; i < len(values); i++ {
		want := values[i]*ratio + out[i-1]*(1-ratio)
		assert.InDelta(t, want, out[i], 1e-9)
	}
}

func TestSmootherConstantSeriesUnchanged(t *testing.T) {
	s, err := NewSmoother(20)
	require.NoError(t, err)

	flat := make([]float64, 25)
	for i := range flat {
		flat[i] = 3.25
	}
	for i, v := range s.Apply(flat) {
		assert.InDelta(t, 3.25, v, 1e-9, "index %d", i)
	}
}

func TestSmootherRatioCappedAtOne(t *testing.T) {
	s, err := NewSmoother(100)
	require.NoError(t, err)

	// windowLen+1 < ratioK caps the ratio at 1, degenerating to identity.
	values := []float64{4, 8, 1, 6}
	assert.Equal(t, values, s.Apply(values))
}

func TestConditionerChain(t *testing.T) {
	cond, err := NewConditioner(ConditionerConfig{
		WindowLen:      20,
		NormBlockSize:  5,
		DetrendSpreads: []int{5, 2},
		SmoothRatioK:   20,
	})
	require.NoError(t, err)

	values := make([]float64, 20)
	for i := range values {
		values[i] = 100 + float64(i)*2 // pure drift
	}

	out := cond.Apply(values)
	require.Len(t, out, 20)
	// Drift removal pulls the conditioned series toward zero mean.
	var sum float64
	for _, v := range out {
		sum += v
	}
	assert.InDelta(t, 0, sum/float64(len(out)), 2.0)
}

func TestConditionerConfigValidation(t *testing.T) {
	_, err := NewConditioner(ConditionerConfig{WindowLen: 0, NormBlockSize: 5, SmoothRatioK: 20})
	assert.Error(t, err)
	_, err = NewConditioner(ConditionerConfig{WindowLen: 50, NormBlockSize: 10, SmoothRatioK: 0})
	assert.Error(t, err)
}
