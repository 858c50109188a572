package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"

	"gopkg.in/yaml.v3"
)

var errNotMapping = errors.New("execution summary must be a mapping")

// fieldSet reads typed values out of a decoded mapping. Missing keys and values
// of the wrong type read as zero. A nil fieldSet behaves as an empty mapping.
type fieldSet interface {
	object(key string) (fieldSet, bool)
	integer(key string) int64
	number(key string) float64
	keys() []string
}

// toInt64 accepts integral and fractional numbers alike; fractions truncate
// toward zero and out-of-range values read as zero.
func toInt64(f float64) int64 {
	if math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0
	}
	return int64(f)
}

type jsonFields map[string]json.RawMessage

func isJSONNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

func newJSONFields(data []byte) (fieldSet, bool) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil || m == nil {
		return jsonFields(nil), false
	}
	return jsonFields(m), true
}

func (j jsonFields) object(key string) (fieldSet, bool) {
	raw, ok := j[key]
	if !ok {
		return jsonFields(nil), false
	}
	return newJSONFields(raw)
}

func (j jsonFields) integer(key string) int64 {
	var n json.Number
	if err := json.Unmarshal(j[key], &n); err != nil {
		return 0
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	f, err := n.Float64()
	if err != nil {
		return 0
	}
	return toInt64(f)
}

func (j jsonFields) number(key string) float64 {
	var f float64
	if err := json.Unmarshal(j[key], &f); err != nil {
		return 0
	}
	return f
}

func (j jsonFields) keys() []string {
	keys := make([]string, 0, len(j))
	for k := range j {
		keys = append(keys, k)
	}
	return keys
}

type yamlFields map[string]*yaml.Node

func newYAMLFields(node *yaml.Node) (fieldSet, bool) {
	if node == nil {
		return yamlFields(nil), false
	}
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return yamlFields(nil), false
	}

	m := make(yamlFields, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		m[node.Content[i].Value] = node.Content[i+1]
	}
	return m, true
}

func (y yamlFields) object(key string) (fieldSet, bool) {
	return newYAMLFields(y[key])
}

func (y yamlFields) integer(key string) int64 {
	node, ok := y[key]
	if !ok {
		return 0
	}
	var i int64
	if err := node.Decode(&i); err == nil {
		return i
	}
	var f float64
	if err := node.Decode(&f); err != nil {
		return 0
	}
	return toInt64(f)
}

func (y yamlFields) number(key string) float64 {
	node, ok := y[key]
	if !ok {
		return 0
	}
	var f float64
	if err := node.Decode(&f); err != nil {
		return 0
	}
	return f
}

func (y yamlFields) keys() []string {
	keys := make([]string, 0, len(y))
	for k := range y {
		keys = append(keys, k)
	}
	return keys
}
