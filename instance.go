package schemac

import (
	"bytes"
	"fmt"

	gojson "github.com/goccy/go-json"
)

// ParseInstanceValue decodes a JSON value for validation. Numbers surface as
// json.Number so validators can compare exactly instead of through float64.
func ParseInstanceValue(data []byte) (any, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("schemac: decode instance: %w", err)
	}
	return v, nil
}

// ParseInstance decodes a JSON object instance for validation against a
// compiled model.
func ParseInstance(data []byte) (map[string]any, error) {
	v, err := ParseInstanceValue(data)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schemac: instance is not a JSON object")
	}
	return m, nil
}
