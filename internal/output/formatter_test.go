package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Name   string         `json:"name"`
	BPM    int            `json:"bpm"`
	Weight float64        `json:"weight"`
	Detail map[string]any `json:"detail"`
}

func payload() samplePayload {
	return samplePayload{
		Name:   "session-1",
		BPM:    72,
		Weight: 0.93,
		Detail: map[string]any{"cycles": 120, "dropped": 4},
	}
}

func TestForFormatSelection(t *testing.T) {
	assert.IsType(t, &JSONFormatter{}, ForFormat("json"))
	assert.IsType(t, &YAMLFormatter{}, ForFormat("yaml"))
	assert.IsType(t, &CSVFormatter{}, ForFormat("csv"))
	assert.IsType(t, &TableFormatter{}, ForFormat("table"))
	assert.IsType(t, &JSONFormatter{}, ForFormat("bogus"))
}

func TestJSONFormatterRoundTrip(t *testing.T) {
	out, err := (&JSONFormatter{}).Format(payload(), true)
	require.NoError(t, err)

	var decoded samplePayload
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, 72, decoded.BPM)
	assert.Contains(t, string(out), "\n", "pretty output should be indented")
}

func TestYAMLFormatterContainsFields(t *testing.T) {
	out, err := (&YAMLFormatter{}).Format(map[string]any{"bpm": 72, "weight": 0.93}, false)
	require.NoError(t, err)
	assert.Contains(t, string(out), "bpm: 72")
}

func TestCSVFormatterFlattensNestedKeys(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(payload(), false)
	require.NoError(t, err)

	text := string(out)
	assert.True(t, strings.HasPrefix(text, "key,value\n"))
	assert.Contains(t, text, "detail.cycles,120")
	assert.Contains(t, text, "bpm,72")
}

func TestTableFormatterAlignsRows(t *testing.T) {
	out, err := (&TableFormatter{}).Format(payload(), false)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	assert.Len(t, lines, 5)
	assert.Contains(t, lines[0], "bpm")
}
