// FILE: docsync/internal/codec/json.go
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type jsonCodec struct{}

func (jsonCodec) Format() Format { return FormatJSON }

// Decode parses JSON text keeping integers distinct from floats.
func (jsonCodec) Decode(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var tree any
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&tree); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return Normalize(tree), nil
}

// Encode emits indented JSON. encoding/json sorts map keys bytewise, so
// mappings are re-emitted in SortKeys order.
func (jsonCodec) Encode(tree any) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, Normalize(tree), ""); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v any, indent string) error {
	inner := indent + "  "
	switch val := v.(type) {
	case map[string]any:
		if len(val) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteString("{\n")
		for i, key := range SortedKeys(val) {
			if i > 0 {
				buf.WriteString(",\n")
			}
			buf.WriteString(inner)
			if err := writeJSONScalar(buf, key); err != nil {
				return err
			}
			buf.WriteString(": ")
			if err := writeJSON(buf, val[key], inner); err != nil {
				return err
			}
		}
		buf.WriteString("\n" + indent + "}")
	case []any:
		if len(val) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[\n")
		for i, item := range val {
			if i > 0 {
				buf.WriteString(",\n")
			}
			buf.WriteString(inner)
			if err := writeJSON(buf, item, inner); err != nil {
				return err
			}
		}
		buf.WriteString("\n" + indent + "]")
	case float64:
		buf.WriteString(jsonFloat(val))
	default:
		return writeJSONScalar(buf, val)
	}
	return nil
}

func writeJSONScalar(buf *bytes.Buffer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON value: %w", err)
	}
	buf.Write(data)
	return nil
}

// jsonFloat keeps a decimal point so floats read back as floats.
// JSON has no representation for infinities or NaN; they become null.
func jsonFloat(f float64) string {
	switch s := FormatFloat(f); s {
	case ".inf", "-.inf", ".nan":
		return "null"
	default:
		return s
	}
}
