package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Scalar is a string field that also accepts numbers and booleans, so that
// values like "copyright": 2013 or version = 2 decode without error
type Scalar string

// UnmarshalJSON implements json.Unmarshaler
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(str)
		return nil
	}
	if len(data) > 0 && (data[0] == '{' || data[0] == '[') {
		return fmt.Errorf("expected a scalar value, got %s", data)
	}
	*s = Scalar(data)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (s *Scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", node.Line)
	}
	if node.Tag == "!!null" {
		*s = ""
		return nil
	}
	*s = Scalar(node.Value)
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler
func (s *Scalar) UnmarshalTOML(value any) error {
	switch v := value.(type) {
	case string:
		*s = Scalar(v)
	case int64:
		*s = Scalar(strconv.FormatInt(v, 10))
	case float64:
		*s = Scalar(strconv.FormatFloat(v, 'f', -1, 64))
	case bool:
		*s = Scalar(strconv.FormatBool(v))
	default:
		return fmt.Errorf("expected a scalar value, got %T", value)
	}
	return nil
}

// String returns the scalar as a string
func (s Scalar) String() string {
	return string(s)
}
