package scoring

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalErrors "github.com/gcbaptista/payload-distance/internal/errors"
)

func TestParseFields_Defaults(t *testing.T) {
	fields, err := ParseFields([]interface{}{
		map[string]interface{}{
			"field":       "color",
			"term_values": map[string]interface{}{"red": 5.0, "blue": 2},
		},
	})
	require.NoError(t, err)
	require.Len(t, fields, 1)

	cfg := fields[0]
	assert.Equal(t, "color", cfg.Field())
	assert.Equal(t, []string{"blue", "red"}, cfg.Terms())
	assert.Equal(t, DefaultBoost, cfg.Boost())
	assert.Equal(t, DefaultTermMissingFactor, cfg.TermMissingFactor())
	assert.Equal(t, DefaultTermMatchBoost, cfg.TermMatchBoost())

	v, ok := cfg.TermValue("blue")
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)
}

func TestParseFields_ExplicitOptions(t *testing.T) {
	fields, err := ParseFields([]map[string]interface{}{
		{
			"field":               "size",
			"term_values":         map[string]float64{"xl": 3},
			"boost":               2.5,
			"term_missing_factor": int64(1),
			"term_match_boost":    json.Number("0.75"),
		},
		{
			"field":       "color",
			"term_values": map[string]interface{}{},
			"boost":       nil,
		},
	})
	require.NoError(t, err)
	require.Len(t, fields, 2)

	assert.Equal(t, "size", fields[0].Field(), "order of the input list is kept")
	assert.Equal(t, 2.5, fields[0].Boost())
	assert.Equal(t, 1.0, fields[0].TermMissingFactor())
	assert.Equal(t, 0.75, fields[0].TermMatchBoost())

	assert.Equal(t, "color", fields[1].Field())
	assert.Equal(t, 0, fields[1].Len())
	assert.Equal(t, DefaultBoost, fields[1].Boost(), "null falls back to the default")
}

func TestParseFields_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		raw         interface{}
		expectedKey string
	}{
		{
			name:        "not a list",
			raw:         map[string]interface{}{"field": "color"},
			expectedKey: "fields",
		},
		{
			name:        "entry not an object",
			raw:         []interface{}{"color"},
			expectedKey: "",
		},
		{
			name:        "missing field",
			raw:         []interface{}{map[string]interface{}{"term_values": map[string]interface{}{"red": 1.0}}},
			expectedKey: "field",
		},
		{
			name:        "field not a string",
			raw:         []interface{}{map[string]interface{}{"field": 12, "term_values": map[string]interface{}{}}},
			expectedKey: "field",
		},
		{
			name:        "blank field",
			raw:         []interface{}{map[string]interface{}{"field": "  ", "term_values": map[string]interface{}{}}},
			expectedKey: "field",
		},
		{
			name:        "missing term_values",
			raw:         []interface{}{map[string]interface{}{"field": "color"}},
			expectedKey: "term_values",
		},
		{
			name:        "term_values not a map",
			raw:         []interface{}{map[string]interface{}{"field": "color", "term_values": []interface{}{"red"}}},
			expectedKey: "term_values",
		},
		{
			name:        "non numeric term value",
			raw:         []interface{}{map[string]interface{}{"field": "color", "term_values": map[string]interface{}{"red": "5"}}},
			expectedKey: "term_values.red",
		},
		{
			name:        "boolean term value",
			raw:         []interface{}{map[string]interface{}{"field": "color", "term_values": map[string]interface{}{"red": true}}},
			expectedKey: "term_values.red",
		},
		{
			name: "non numeric boost",
			raw: []interface{}{map[string]interface{}{
				"field": "color", "term_values": map[string]interface{}{}, "boost": "high",
			}},
			expectedKey: "boost",
		},
		{
			name: "non numeric term_missing_factor",
			raw: []interface{}{map[string]interface{}{
				"field": "color", "term_values": map[string]interface{}{}, "term_missing_factor": []interface{}{},
			}},
			expectedKey: "term_missing_factor",
		},
		{
			name: "non numeric term_match_boost",
			raw: []interface{}{map[string]interface{}{
				"field": "color", "term_values": map[string]interface{}{}, "term_match_boost": json.Number("abc"),
			}},
			expectedKey: "term_match_boost",
		},
		{
			name:        "NaN in typed term values",
			raw:         []interface{}{map[string]interface{}{"field": "color", "term_values": map[string]float64{"red": math.NaN()}}},
			expectedKey: "term_values.red",
		},
		{
			name:        "infinite term value",
			raw:         []interface{}{map[string]interface{}{"field": "color", "term_values": map[string]interface{}{"red": math.Inf(1)}}},
			expectedKey: "term_values.red",
		},
		{
			name: "infinite boost",
			raw: []interface{}{map[string]interface{}{
				"field": "color", "term_values": map[string]interface{}{}, "boost": math.Inf(-1),
			}},
			expectedKey: "boost",
		},
		{
			name:        "terms equal after case folding",
			raw:         []interface{}{map[string]interface{}{"field": "color", "term_values": map[string]interface{}{"Red": 5.0, "red": 5.0}}},
			expectedKey: "term_values.red",
		},
		{
			name:        "typed terms equal after case folding",
			raw:         []interface{}{map[string]interface{}{"field": "color", "term_values": map[string]float64{"RED": 1, "red": 2}}},
			expectedKey: "term_values.red",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := ParseFields(tt.raw)
			require.Error(t, err)
			assert.Nil(t, fields)
			assert.ErrorIs(t, err, internalErrors.ErrInvalidConfiguration)

			var cfgErr *internalErrors.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.expectedKey, cfgErr.Key)
		})
	}
}

func TestParseFields_NonFiniteMessage(t *testing.T) {
	_, err := ParseFields([]interface{}{map[string]interface{}{
		"field": "color", "term_values": map[string]interface{}{"red": math.NaN()},
	}})
	var cfgErr *internalErrors.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Message, "finite number")
}

func TestNumber(t *testing.T) {
	for _, raw := range []interface{}{int32(3), uint(3), uint64(3), float32(3), json.Number("3")} {
		value, ok := Number(raw)
		assert.True(t, ok, "%T", raw)
		assert.Equal(t, 3.0, value)
	}

	value, ok := Number(math.Inf(1))
	assert.True(t, ok, "infinities are numbers; callers decide whether to accept them")
	assert.True(t, math.IsInf(value, 1))

	_, ok = Number("3")
	assert.False(t, ok)
}

func TestParseParams(t *testing.T) {
	_, err := ParseParams(map[string]interface{}{})
	require.Error(t, err)
	assert.ErrorIs(t, err, internalErrors.ErrInvalidConfiguration)

	fields, err := ParseParams(map[string]interface{}{"fields": []interface{}{}})
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestParseFields_Idempotent(t *testing.T) {
	raw := []interface{}{
		map[string]interface{}{"field": "color", "term_values": map[string]interface{}{"red": 5.0}, "boost": 2.0},
	}
	first, err := ParseFields(raw)
	require.NoError(t, err)
	second, err := ParseFields(raw)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, map[string]interface{}{"red": 5.0}, raw[0].(map[string]interface{})["term_values"], "input is not modified")
}

func TestFieldScoreConfig_Immutable(t *testing.T) {
	values := map[string]float64{"red": 1}
	cfg := NewFieldScoreConfig("color", values, 1, 0.2, 1)

	values["red"] = 99
	values["blue"] = 3

	v, _ := cfg.TermValue("red")
	assert.Equal(t, 1.0, v)
	assert.Equal(t, 1, cfg.Len())

	terms := cfg.Terms()
	terms[0] = "mutated"
	assert.Equal(t, []string{"red"}, cfg.Terms())
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy(" Ratio ")
	require.NoError(t, err)
	assert.Equal(t, StrategyRatio, s)

	s, err = ParseStrategy("difference")
	require.NoError(t, err)
	assert.Equal(t, StrategyDifference, s)

	_, err = ParseStrategy("product")
	assert.ErrorIs(t, err, internalErrors.ErrInvalidConfiguration)
}
