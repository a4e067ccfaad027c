// FILE: docsync/internal/codec/yaml.go
package codec

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const yamlIndent = 2

type yamlCodec struct{}

func (yamlCodec) Format() Format { return FormatYAML }

// Decode parses YAML text. Empty input yields a nil tree.
func (yamlCodec) Decode(data []byte) (any, error) {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return Normalize(tree), nil
}

// Encode emits YAML with sorted keys, single-quoted ambiguous strings,
// literal blocks for multi-line strings and flow style for empty containers.
func (yamlCodec) Encode(tree any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(yamlIndent)
	if err := encoder.Encode(toNode(tree)); err != nil {
		return nil, fmt.Errorf("failed to marshal document to YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush YAML encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseScalar reads a single YAML scalar, e.g. a value typed on a command line.
func ParseScalar(text string) any {
	var value any
	if err := yaml.Unmarshal([]byte(text), &value); err != nil {
		return text
	}
	return Normalize(value)
}

func toNode(v any) *yaml.Node {
	switch val := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(val)}
	case int:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(val)}
	case int64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(val, 10)}
	case float64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: FormatFloat(val)}
	case string:
		return stringNode(val)
	case map[string]any:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if len(val) == 0 {
			node.Style = yaml.FlowStyle
		}
		for _, key := range SortedKeys(val) {
			node.Content = append(node.Content, stringNode(key), toNode(val[key]))
		}
		return node
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if len(val) == 0 {
			node.Style = yaml.FlowStyle
		}
		for _, item := range val {
			node.Content = append(node.Content, toNode(item))
		}
		return node
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Map, reflect.Slice, reflect.Array:
			return toNode(Normalize(v))
		}
		return stringNode(fmt.Sprint(v))
	}
}

func stringNode(s string) *yaml.Node {
	node := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	switch {
	case strings.Contains(s, "\n"):
		node.Style = yaml.LiteralStyle
	case NeedsQuoting(s):
		node.Style = yaml.SingleQuotedStyle
	}
	return node
}

// NeedsQuoting reports whether s would be read back as something other
// than a string when written plain.
func NeedsQuoting(s string) bool {
	if s == "" || strings.TrimSpace(s) != s {
		return true
	}
	switch strings.ToLower(s) {
	case "true", "false", "yes", "no", "on", "off", "null", "~",
		".inf", "-.inf", "+.inf", ".nan":
		return true
	}
	plain := strings.ReplaceAll(s, "_", "")
	if _, err := strconv.ParseInt(plain, 0, 64); err == nil {
		return true
	}
	if _, err := strconv.ParseFloat(plain, 64); err == nil {
		return true
	}
	return false
}

// FormatFloat renders f so that it always reads back as a float.
func FormatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
