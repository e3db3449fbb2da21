package scoring

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	internalErrors "github.com/gcbaptista/payload-distance/internal/errors"
)

// Option keys accepted in a field option set.
const (
	KeyFields            = "fields"
	KeyField             = "field"
	KeyTermValues        = "term_values"
	KeyBoost             = "boost"
	KeyTermMissingFactor = "term_missing_factor"
	KeyTermMatchBoost    = "term_match_boost"
)

// ParseParams reads the "fields" list from script parameters and parses it.
func ParseParams(params map[string]interface{}) ([]FieldScoreConfig, error) {
	raw, ok := params[KeyFields]
	if !ok || raw == nil {
		return nil, internalErrors.NewConfigurationError(-1, KeyFields, "is required")
	}
	return ParseFields(raw)
}

// ParseFields converts a list of untyped option sets into field configurations.
// The result preserves the order of the input list.
func ParseFields(raw interface{}) ([]FieldScoreConfig, error) {
	var items []interface{}
	switch v := raw.(type) {
	case []interface{}:
		items = v
	case []map[string]interface{}:
		items = make([]interface{}, len(v))
		for i := range v {
			items[i] = v[i]
		}
	default:
		return nil, internalErrors.NewConfigurationError(-1, KeyFields,
			fmt.Sprintf("must be a list of option objects, got %T", raw))
	}

	configs := make([]FieldScoreConfig, 0, len(items))
	for i, item := range items {
		options, ok := item.(map[string]interface{})
		if !ok {
			return nil, internalErrors.NewConfigurationError(i, "",
				fmt.Sprintf("option set must be an object, got %T", item))
		}
		cfg, err := parseFieldOptions(i, options)
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

func parseFieldOptions(position int, options map[string]interface{}) (FieldScoreConfig, error) {
	rawField, ok := options[KeyField]
	if !ok || rawField == nil {
		return FieldScoreConfig{}, internalErrors.NewConfigurationError(position, KeyField, "is required")
	}
	field, ok := rawField.(string)
	if !ok {
		return FieldScoreConfig{}, internalErrors.NewConfigurationError(position, KeyField,
			fmt.Sprintf("must be a string, got %T", rawField))
	}
	if strings.TrimSpace(field) == "" {
		return FieldScoreConfig{}, internalErrors.NewConfigurationError(position, KeyField, "cannot be empty")
	}

	rawTerms, ok := options[KeyTermValues]
	if !ok || rawTerms == nil {
		return FieldScoreConfig{}, internalErrors.NewConfigurationError(position, KeyTermValues, "is required")
	}
	termValues, err := parseTermValues(position, rawTerms)
	if err != nil {
		return FieldScoreConfig{}, err
	}

	boost, err := optionalNumber(position, options, KeyBoost, DefaultBoost)
	if err != nil {
		return FieldScoreConfig{}, err
	}
	missingFactor, err := optionalNumber(position, options, KeyTermMissingFactor, DefaultTermMissingFactor)
	if err != nil {
		return FieldScoreConfig{}, err
	}
	matchBoost, err := optionalNumber(position, options, KeyTermMatchBoost, DefaultTermMatchBoost)
	if err != nil {
		return FieldScoreConfig{}, err
	}

	return NewFieldScoreConfig(field, termValues, boost, missingFactor, matchBoost), nil
}

func parseTermValues(position int, raw interface{}) (map[string]float64, error) {
	var values map[string]float64
	switch v := raw.(type) {
	case map[string]float64:
		values = make(map[string]float64, len(v))
		for term, value := range v {
			if !isFinite(value) {
				return nil, internalErrors.NewConfigurationError(position, KeyTermValues+"."+term,
					fmt.Sprintf("must be a finite number, got %v", value))
			}
			values[term] = value
		}
	case map[string]interface{}:
		values = make(map[string]float64, len(v))
		for term, rawValue := range v {
			value, msg := numberOption(rawValue)
			if msg != "" {
				return nil, internalErrors.NewConfigurationError(position, KeyTermValues+"."+term, msg)
			}
			values[term] = value
		}
	default:
		return nil, internalErrors.NewConfigurationError(position, KeyTermValues,
			fmt.Sprintf("must be an object mapping terms to numbers, got %T", raw))
	}

	// Payload lookups fold case, so "Red" and "red" would read the same posting twice.
	terms := make([]string, 0, len(values))
	for term := range values {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	folded := make(map[string]string, len(terms))
	for _, term := range terms {
		key := strings.ToLower(term)
		if other, ok := folded[key]; ok {
			return nil, internalErrors.NewConfigurationError(position, KeyTermValues+"."+term,
				fmt.Sprintf("duplicates term '%s' after case folding", other))
		}
		folded[key] = term
	}
	return values, nil
}

// optionalNumber returns the numeric option under key, or def when the key is
// absent or explicitly null.
func optionalNumber(position int, options map[string]interface{}, key string, def float64) (float64, error) {
	raw, ok := options[key]
	if !ok || raw == nil {
		return def, nil
	}
	value, msg := numberOption(raw)
	if msg != "" {
		return 0, internalErrors.NewConfigurationError(position, key, msg)
	}
	return value, nil
}

// numberOption coerces raw to a finite float64. On failure it returns the
// message to report for the offending option.
func numberOption(raw interface{}) (float64, string) {
	value, ok := Number(raw)
	if !ok {
		return 0, fmt.Sprintf("must be a number, got %T", raw)
	}
	if !isFinite(value) {
		return 0, fmt.Sprintf("must be a finite number, got %v", value)
	}
	return value, ""
}

// Number converts every numeric kind produced by encoding/json, gin binding and
// yaml.v3 decoding to float64. It does not reject NaN or infinities.
func Number(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
