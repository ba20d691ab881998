package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonicalScalars(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"string", IRString("iso8601"), `"iso8601"`},
		{"int", IRInt(2021), "2021"},
		{"negative int", IRInt(-271821), "-271821"},
		{"bool", IRBool(false), "false"},
		{"explicit null", IRNull{}, "null"},
		{"undefined", nil, "null"},
		{"go string", "constrain", `"constrain"`},
		{"go int", 12, "12"},
		{"empty array", IRArray{}, "[]"},
		{"empty object", IRObject{}, "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MarshalCanonical(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestMarshalCanonicalFieldBag(t *testing.T) {
	bag := IRObject{
		"year":      IRInt(2021),
		"monthCode": IRString("M01"),
		"month":     IRInt(1),
		"day":       IRInt(1),
	}

	result, err := MarshalCanonical(bag)
	require.NoError(t, err)
	assert.Equal(t, `{"day":1,"month":1,"monthCode":"M01","year":2021}`, string(result))
}

func TestMarshalCanonicalNested(t *testing.T) {
	args := IRArray{
		IRString("2021-01-01"),
		IRObject{"months": IRInt(1), "days": IRInt(0)},
		IRObject{"overflow": IRString("constrain")},
	}

	result, err := MarshalCanonical(args)
	require.NoError(t, err)
	assert.Equal(t, `["2021-01-01",{"days":0,"months":1},{"overflow":"constrain"}]`, string(result))
}

func TestMarshalCanonicalRejectsFloats(t *testing.T) {
	for _, input := range []any{float64(1.5), float32(2.5), map[string]any{"x": 0.5}} {
		_, err := MarshalCanonical(input)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "float")
	}
}

func TestMarshalCanonicalNoHTMLEscape(t *testing.T) {
	result, err := MarshalCanonical(IRString("a<b>&c"))
	require.NoError(t, err)
	assert.Equal(t, `"a<b>&c"`, string(result))
}

func TestMarshalCanonicalNFC(t *testing.T) {
	composed, err := MarshalCanonical(IRObject{"caf\u00e9": IRString("caf\u00e9")})
	require.NoError(t, err)
	decomposed, err := MarshalCanonical(IRObject{"cafe\u0301": IRString("cafe\u0301")})
	require.NoError(t, err)
	assert.Equal(t, composed, decomposed)
}

func TestMarshalCanonicalLineSeparators(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"line separator", "a\u2028b", "\"a\u2028b\""},
		{"paragraph separator", "a\u2029b", "\"a\u2029b\""},
		{"literal escape text", `x \u2028`, `"x \\u2028"`},
		{"mixed", "lit \\u2029 real \u2029", "\"lit \\\\u2029 real \u2029\""},
		{"control chars", "a\nb\t\"", `"a\nb\t\""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MarshalCanonical(IRString(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestMarshalCanonicalIdempotent(t *testing.T) {
	values := []IRValue{
		IRObject{"calendar": IRString("iso8601"), "fields": StringArray([]string{"month", "monthCode", "year"})},
		IRArray{IRNull{}, IRInt(-1), IRBool(true)},
	}

	for _, v := range values {
		first, err := MarshalCanonical(v)
		require.NoError(t, err)
		decoded, err := UnmarshalIRValue(first)
		require.NoError(t, err)
		second, err := MarshalCanonical(decoded)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func FuzzMarshalCanonicalIdempotent(f *testing.F) {
	f.Add(`{"year":2021,"month":1}`)
	f.Add(`["dateAdd",{"months":-1}]`)
	f.Add(`null`)

	f.Fuzz(func(t *testing.T, input string) {
		val, err := UnmarshalIRValue([]byte(input))
		if err != nil {
			t.Skip()
		}
		first, err := MarshalCanonical(val)
		if err != nil {
			t.Skip()
		}
		val2, err := UnmarshalIRValue(first)
		require.NoError(t, err)
		second, err := MarshalCanonical(val2)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}
