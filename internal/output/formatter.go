// Package output renders result payloads as JSON, YAML, CSV, or an
// aligned text table for terminal use.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Formatter renders a result payload for one output format.
type Formatter interface {
	Format(data any, pretty bool) ([]byte, error)
}

// ForFormat returns the formatter for the named format, defaulting to
// JSON for unrecognized names.
func ForFormat(format string) Formatter {
	switch format {
	case "yaml":
		return &YAMLFormatter{}
	case "csv":
		return &CSVFormatter{}
	case "table":
		return &TableFormatter{}
	default:
		return &JSONFormatter{}
	}
}

// JSONFormatter renders JSON, indented when pretty is set.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(data any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(data, "", "  ")
	}
	return json.Marshal(data)
}

// YAMLFormatter renders YAML.
type YAMLFormatter struct{}

func (f *YAMLFormatter) Format(data any, _ bool) ([]byte, error) {
	return yaml.Marshal(data)
}

// CSVFormatter renders a flat key/value listing. Nested maps are
// flattened with dotted keys.
type CSVFormatter struct{}

func (f *CSVFormatter) Format(data any, _ bool) ([]byte, error) {
	flat, err := flatten(data)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"key", "value"}); err != nil {
		return nil, err
	}
	for _, kv := range flat {
		if err := w.Write([]string{kv[0], kv[1]}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// TableFormatter renders an aligned two-column table.
type TableFormatter struct{}

func (f *TableFormatter) Format(data any, _ bool) ([]byte, error) {
	flat, err := flatten(data)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	for _, kv := range flat {
		fmt.Fprintf(w, "%s\t%s\n", kv[0], kv[1])
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// flatten reduces a payload to sorted dotted-key/value string pairs by
// round-tripping it through JSON, so struct tags apply uniformly.
func flatten(data any) ([][2]string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("flatten: %w", err)
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("flatten: %w", err)
	}

	pairs := make([][2]string, 0)
	var walk func(prefix string, v any)
	walk = func(prefix string, v any) {
		switch val := v.(type) {
		case map[string]any:
			keys := make([]string, 0, len(val))
			for k := range val {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				key := k
				if prefix != "" {
					key = prefix + "." + k
				}
				walk(key, val[k])
			}
		case []any:
			for i, item := range val {
				walk(fmt.Sprintf("%s.%d", prefix, i), item)
			}
		default:
			pairs = append(pairs, [2]string{prefix, fmt.Sprintf("%v", v)})
		}
	}
	walk("", decoded)
	return pairs, nil
}
