package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSamplesWithHeader(t *testing.T) {
	input := strings.Join([]string{
		"elapsed_ms,value",
		"0,180.5",
		"50,182.1",
		"100,179.8",
	}, "\n")

	samples, err := ReadSamples(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, samples, 3)

	assert.InDelta(t, 180.5, samples[0].Value, 1e-9)
	assert.InDelta(t, 179.8, samples[2].Value, 1e-9)
	assert.Equal(t, 50*time.Millisecond, samples[1].Timestamp.Sub(samples[0].Timestamp))
	assert.Equal(t, 100*time.Millisecond, samples[2].Timestamp.Sub(samples[0].Timestamp))
}

func TestReadSamplesWithoutHeader(t *testing.T) {
	input := "0,100\n40,101\n"

	samples, err := ReadSamples(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, samples, 2)
}

func TestReadSamplesFractionalOffsets(t *testing.T) {
	input := "0,100\n83.3,101\n166.6,102\n"

	samples, err := ReadSamples(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, samples, 3)
	assert.Equal(t, 83300*time.Microsecond, samples[1].Timestamp.Sub(samples[0].Timestamp))
}

func TestReadSamplesRejectsBadRows(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"header only", "elapsed_ms,value\n"},
		{"bad value", "0,not-a-number\n"},
		{"bad offset past header", "elapsed_ms,value\n0,100\nx,101\n"},
		{"wrong column count", "0,100,extra\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadSamples(strings.NewReader(tc.input))
			assert.Error(t, err)
		})
	}
}

func TestLoadSamplesCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.csv")
	require.NoError(t, os.WriteFile(path, []byte("0,180\n50,181\n"), 0o644))

	samples, err := LoadSamplesCSV(path)
	require.NoError(t, err)
	assert.Len(t, samples, 2)

	_, err = LoadSamplesCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
