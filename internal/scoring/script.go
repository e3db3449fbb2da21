package scoring

import (
	"fmt"
	"sort"

	internalErrors "github.com/gcbaptista/payload-distance/internal/errors"
)

// Registered script names.
const (
	ScriptPayloadDistance           = "payload_distance_score" // resolves to the deployment default strategy
	ScriptPayloadDistanceRatio      = "payload_distance_ratio"
	ScriptPayloadDistanceDifference = "payload_distance_difference"
)

// ScriptNames returns every registered script name, sorted.
func ScriptNames() []string {
	names := []string{ScriptPayloadDistance, ScriptPayloadDistanceRatio, ScriptPayloadDistanceDifference}
	sort.Strings(names)
	return names
}

// ResolveScript maps a script name to the strategy it runs.
func ResolveScript(name string, defaultStrategy Strategy) (Strategy, error) {
	switch name {
	case ScriptPayloadDistance, "":
		if _, err := ParseStrategy(string(defaultStrategy)); err != nil {
			return "", err
		}
		return defaultStrategy, nil
	case ScriptPayloadDistanceRatio:
		return StrategyRatio, nil
	case ScriptPayloadDistanceDifference:
		return StrategyDifference, nil
	}
	return "", internalErrors.NewConfigurationError(-1, "script", fmt.Sprintf("unknown script '%s'", name))
}

// Script is a compiled scoring pass: a strategy plus the ordered field
// configurations of one request. It holds no per-document state.
type Script struct {
	strategy Strategy
	fields   []FieldScoreConfig

	// OnFallback, when set, is called every time a document's base score
	// could not be obtained and FallbackBaseScore was used instead.
	OnFallback func(err error)
}

// NewScript builds a Script for the given strategy and fields.
func NewScript(strategy Strategy, fields []FieldScoreConfig) (*Script, error) {
	if _, err := ParseStrategy(string(strategy)); err != nil {
		return nil, err
	}
	copied := make([]FieldScoreConfig, len(fields))
	copy(copied, fields)
	return &Script{strategy: strategy, fields: copied}, nil
}

// CompileScript resolves name and parses params. It is called once per
// request; the returned Script is reused for every document.
func CompileScript(name string, params map[string]interface{}, defaultStrategy Strategy) (*Script, error) {
	strategy, err := ResolveScript(name, defaultStrategy)
	if err != nil {
		return nil, err
	}
	fields, err := ParseParams(params)
	if err != nil {
		return nil, err
	}
	return NewScript(strategy, fields)
}

// Strategy returns the strategy this script runs.
func (s *Script) Strategy() Strategy { return s.strategy }

// Fields returns the number of configured fields.
func (s *Script) Fields() int { return len(s.fields) }

// ScoreDocument computes the final score of the document behind lookup.
//
// With no configured fields the base score passes through unchanged.
// Ratio: sum of field ratio scores plus the base score, added once.
// Difference: sum of field difference scores; the base score only scales penalties.
func (s *Script) ScoreDocument(lookup PayloadLookup) float64 {
	baseScore := s.baseScore(lookup)
	if len(s.fields) == 0 {
		return baseScore
	}

	var score float64
	switch s.strategy {
	case StrategyDifference:
		for _, field := range s.fields {
			score += ScoreFieldDifference(baseScore, field, lookup)
		}
	default:
		for _, field := range s.fields {
			score += ScoreFieldRatio(field, lookup)
		}
		score += baseScore
	}
	return score
}

func (s *Script) baseScore(lookup PayloadLookup) float64 {
	score, fellBack, err := BaseScoreOrFallback(lookup)
	if fellBack && s.OnFallback != nil {
		s.OnFallback(err)
	}
	return score
}
