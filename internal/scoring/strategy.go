// Package scoring computes payload distance adjustments for search hits.
//
// A scoring request carries, per field, a set of target values keyed by term.
// For each candidate document the stored payload of every configured term is
// compared with its target and the per-field results are combined into the
// document's score. Two strategies exist and are selected explicitly:
//
//   - StrategyRatio rewards similarity with min(target, payload) / max(target, payload),
//     ignores missing terms, multiplies each field by its boost and finally adds
//     the document's base score once.
//   - StrategyDifference penalises the absolute deviation of every present term
//     and applies a flat penalty for every missing term, both scaled by the
//     document's base score. The base score is not added again.
package scoring

import (
	"fmt"
	"strings"

	internalErrors "github.com/gcbaptista/payload-distance/internal/errors"
)

// Strategy selects how per-term payload distances are turned into a score.
type Strategy string

const (
	StrategyRatio      Strategy = "ratio"
	StrategyDifference Strategy = "difference"
)

// Strategies lists every supported strategy in a stable order.
var Strategies = []Strategy{StrategyRatio, StrategyDifference}

// ParseStrategy converts a strategy name into a Strategy.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(name))) {
	case StrategyRatio:
		return StrategyRatio, nil
	case StrategyDifference:
		return StrategyDifference, nil
	}
	return "", internalErrors.NewConfigurationError(-1, "strategy",
		fmt.Sprintf("unknown strategy '%s' (must be '%s' or '%s')", name, StrategyRatio, StrategyDifference))
}

func (s Strategy) String() string {
	return string(s)
}
