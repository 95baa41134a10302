package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeValue(t *testing.T, raw string) AnswerValue {
	t.Helper()
	var v AnswerValue
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestAnswerValueJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind ValueKind
	}{
		{"string", `"hello"`, ValueString},
		{"number", `4.5`, ValueNumber},
		{"bool", `true`, ValueBool},
		{"list", `["Go","Rust"]`, ValueList},
		{"map", `{"Service":"Good","Price":"Fair"}`, ValueMap},
		{"null", `null`, ValueEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := decodeValue(t, tt.raw)
			assert.Equal(t, tt.kind, v.Kind)

			out, err := json.Marshal(v)
			require.NoError(t, err)
			assert.JSONEq(t, tt.raw, string(out))
		})
	}
}

func TestAnswerValueListCoercesMixedElements(t *testing.T) {
	v := decodeValue(t, `["a", 2, true]`)
	assert.Equal(t, []string{"a", "2", "true"}, v.List)
}

func TestAnswerValueFloat(t *testing.T) {
	f, ok := NumberValue(4.5).Float()
	assert.True(t, ok)
	assert.Equal(t, 4.5, f)

	f, ok = StringValue(" 7 ").Float()
	assert.True(t, ok)
	assert.Equal(t, 7.0, f)

	_, ok = StringValue("seven").Float()
	assert.False(t, ok)

	_, ok = ListValue("1").Float()
	assert.False(t, ok)
}

func TestAnswerValueBuckets(t *testing.T) {
	assert.Equal(t, []string{"Red"}, StringValue("Red").Buckets())
	assert.Equal(t, []string{"Go", "Rust"}, ListValue("Go", "Rust").Buckets())

	matrix := AnswerValue{Kind: ValueMap, Map: map[string]string{"Service": "Good", "Price": "Fair"}}
	assert.Equal(t, []string{"Price: Fair", "Service: Good"}, matrix.Buckets())

	assert.Nil(t, StringValue("").Buckets())
}

func TestAnswerValueIsEmpty(t *testing.T) {
	assert.True(t, AnswerValue{}.IsEmpty())
	assert.True(t, StringValue("  ").IsEmpty())
	assert.True(t, ListValue().IsEmpty())
	assert.False(t, NumberValue(0).IsEmpty())
	assert.False(t, StringValue("x").IsEmpty())
}

func TestAnswerValueDisplay(t *testing.T) {
	assert.Equal(t, "4.5", NumberValue(4.5).Display())
	assert.Equal(t, "5", NumberValue(5).Display())
	assert.Equal(t, "Go, Rust", ListValue("Go", "Rust").Display())
}
