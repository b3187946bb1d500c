package output

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// ToJSON renders entries or port bindings as indented JSON.
func ToJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}

// ToYAML renders entries or port bindings as YAML.
func ToYAML(v any) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
