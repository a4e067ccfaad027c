// FILE: docsync/converter_test.go
package docsync

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

type namedString string

func TestScalarConverters(t *testing.T) {
	tests := []struct {
		name     string
		conv     Converter
		input    any
		expected any
	}{
		{"StringNil", String, nil, ""},
		{"StringPlain", String, "abc", "abc"},
		{"StringInt", String, 42, "42"},
		{"StringFloat", String, 4.2, "4.2"},
		{"StringBool", String, true, "true"},
		{"StringNamed", String, namedString("named"), "named"},
		{"StringError", String, errors.New("boom"), "boom"},
		{"StringSequence", String, []any{1, 2}, ""},
		{"StringMapping", String, map[string]any{"a": 1}, ""},

		{"IntegerNil", Integer, nil, 0},
		{"IntegerString", Integer, "42", 42},
		{"IntegerUnderscores", Integer, "1_000", 1000},
		{"IntegerHex", Integer, "0xFF", 255},
		{"IntegerTruncatesFloat", Integer, 4.7, 4},
		{"IntegerFloatString", Integer, "4.7", 4},
		{"IntegerBool", Integer, true, 1},
		{"IntegerFloatOverflow", Integer, 1e30, 0},
		{"IntegerFloatUnderflow", Integer, -1e30, 0},
		{"IntegerFloatStringOverflow", Integer, "1e30", 0},
		{"IntegerNaN", Integer, math.NaN(), 0},
		{"IntegerGarbage", Integer, "abc", 0},
		{"IntegerSequence", Integer, []any{1}, 0},
		{"IntegerInt64", Integer, int64(7), 7},

		{"FloatNil", Float, nil, 0.0},
		{"FloatString", Float, "4.2", 4.2},
		{"FloatInt", Float, 42, 42.0},
		{"FloatBool", Float, true, 1.0},
		{"FloatGarbage", Float, "x", 0.0},

		{"BooleanNil", Boolean, nil, false},
		{"BooleanYes", Boolean, "yes", true},
		{"BooleanOff", Boolean, "Off", false},
		{"BooleanTrueString", Boolean, "true", true},
		{"BooleanNullString", Boolean, "null", false},
		{"BooleanZeroString", Boolean, "0", false},
		{"BooleanOne", Boolean, 1, true},
		{"BooleanZero", Boolean, 0, false},
		{"BooleanGarbage", Boolean, "abc", false},
		{"BooleanFullSequence", Boolean, []any{1}, true},
		{"BooleanEmptyMapping", Boolean, map[string]any{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.conv.ToValue(tt.input))
			assert.Equal(t, tt.expected, tt.conv.ToData(tt.input))
		})
	}
}

func TestConverterOrGeneric(t *testing.T) {
	assert.Equal(t, Generic, converterOrGeneric(nil))
	assert.Equal(t, Integer, converterOrGeneric(Integer))
}

func TestCloneConverter(t *testing.T) {
	t.Run("ScalarsAreShared", func(t *testing.T) {
		assert.Equal(t, String, cloneConverter(String))
	})

	t.Run("ContainersAreCopied", func(t *testing.T) {
		original := ListOf(Dictionary(A("status", Boolean)))
		clone := cloneConverter(original).(*List)

		elem := clone.Elem().(*Attributes)
		elem.Add("label", String)

		assert.Equal(t, []string{"status", "label"}, elem.Names())
		assert.Equal(t, []string{"status"}, original.Elem().(*Attributes).Names())
	})
}
