// FILE: docsync/internal/codec/toml.go
package codec

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
)

type tomlCodec struct{}

func (tomlCodec) Format() Format { return FormatTOML }

func (tomlCodec) Decode(data []byte) (any, error) {
	var tree map[string]any
	if err := toml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if len(tree) == 0 {
		return nil, nil
	}
	return Normalize(tree), nil
}

// Encode emits TOML. The root must be a mapping; TOML has no null so nil
// values are omitted. Keys come out in the encoder's bytewise order with
// scalars ahead of tables, not in SortKeys order.
func (tomlCodec) Encode(tree any) ([]byte, error) {
	root, ok := stripNil(Normalize(tree)).(map[string]any)
	if !ok {
		if tree == nil {
			return []byte{}, nil
		}
		return nil, fmt.Errorf("TOML document root must be a mapping, got %T", tree)
	}

	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	encoder.Indent = ""
	if err := encoder.Encode(root); err != nil {
		return nil, fmt.Errorf("failed to marshal document to TOML: %w", err)
	}
	return buf.Bytes(), nil
}

func stripNil(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			if item == nil {
				continue
			}
			out[k] = stripNil(item)
		}
		return out
	case []any:
		out := make([]any, 0, len(val))
		for _, item := range val {
			if item == nil {
				continue
			}
			out = append(out, stripNil(item))
		}
		return out
	default:
		return val
	}
}
