// FILE: docsync/internal/codec/codec.go

// Package codec converts between file text and the generic document tree:
// map[string]any, []any, string, int, float64, bool and nil.
package codec

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Format names a document syntax.
type Format string

const (
	FormatAuto Format = ""
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// Codec decodes file text into a document tree and encodes it back.
// Encode must be deterministic for equal trees.
type Codec interface {
	Format() Format
	Decode(data []byte) (any, error)
	Encode(tree any) ([]byte, error)
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatAuto, FormatYAML, FormatJSON, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "tml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported document format %q", name)
	}
}

// DetectFormat determines the format from the file extension.
// Unknown extensions are treated as YAML.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return FormatTOML
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// For returns the codec of format, detecting it from path when format is auto.
func For(format Format, path string) Codec {
	if format == FormatAuto {
		format = DetectFormat(path)
	}
	switch format {
	case FormatJSON:
		return jsonCodec{}
	case FormatTOML:
		return tomlCodec{}
	default:
		return yamlCodec{}
	}
}

// SortKeys orders keys case-insensitively, ties broken by original case,
// so that the emitted files diff cleanly.
func SortKeys(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool {
		li, lj := strings.ToLower(keys[i]), strings.ToLower(keys[j])
		if li != lj {
			return li < lj
		}
		return keys[i] < keys[j]
	})
}

// SortedKeys returns the keys of m in SortKeys order.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	SortKeys(keys)
	return keys
}

// Normalize converts parser output into the document tree value set.
func Normalize(v any) any {
	switch val := v.(type) {
	case nil, string, bool, int, float64:
		return val
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = Normalize(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[keyString(k)] = Normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Normalize(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Normalize(item)
		}
		return out
	case int64:
		return int(val)
	case int32:
		return int(val)
	case uint64:
		return int(val)
	case float32:
		return float64(val)
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return int(i)
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

func keyString(k any) string {
	switch key := k.(type) {
	case string:
		return key
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(key)
	default:
		return fmt.Sprint(key)
	}
}
