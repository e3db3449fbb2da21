package scoring

import "math"

// FallbackBaseScore replaces the base score of a document whose score could not
// be obtained from the host.
const FallbackBaseScore = 1.0

// PayloadLookup gives the scorer access to the document currently being scored.
// A lookup is bound to exactly one document; hosts hand out a fresh (or
// repositioned) lookup per document.
type PayloadLookup interface {
	// Payload returns the payload attached to the first position of term in
	// field, or false when the term does not occur or carries no payload.
	// Terms are matched case-insensitively, which is why ParseFields rejects
	// term_values keys that differ only by case.
	Payload(field, term string) (float64, bool)

	// BaseScore returns the document's score from the underlying query.
	// Failures are reported as *errors.LookupError.
	BaseScore() (float64, error)
}

// BaseScoreOrFallback is the only place where a failed base score lookup is
// recovered. On failure it returns FallbackBaseScore, fellBack=true and the
// original error so callers can observe it; the error must not be propagated.
func BaseScoreOrFallback(lookup PayloadLookup) (score float64, fellBack bool, err error) {
	score, err = lookup.BaseScore()
	if err != nil {
		return FallbackBaseScore, true, err
	}
	return score, false, nil
}

// Ratio returns min(target, payload) / max(target, payload).
// If either value is zero the ratio is 0. Negative inputs go through the raw
// formula, so e.g. Ratio(-2, 4) = -0.5 and Ratio(-2, -4) = 2.
func Ratio(target, payload float64) float64 {
	if target == 0 || payload == 0 {
		return 0
	}
	return math.Min(target, payload) / math.Max(target, payload)
}

// ScoreFieldRatio sums Ratio over every configured term that has a payload in
// the current document and multiplies the sum by the field's boost. Missing
// terms contribute nothing.
func ScoreFieldRatio(cfg FieldScoreConfig, lookup PayloadLookup) float64 {
	var sum float64
	cfg.eachTerm(func(term string, target float64) {
		if payload, ok := lookup.Payload(cfg.field, term); ok {
			sum += Ratio(target, payload)
		}
	})
	return sum * cfg.boost
}

// ScoreFieldDifference returns the (non-positive for non-negative inputs)
// penalty of one field: base*|target-payload|*term_match_boost for every
// present term and base*term_missing_factor for every missing one.
func ScoreFieldDifference(baseScore float64, cfg FieldScoreConfig, lookup PayloadLookup) float64 {
	var sum float64
	cfg.eachTerm(func(term string, target float64) {
		if payload, ok := lookup.Payload(cfg.field, term); ok {
			sum -= baseScore * math.Abs(target-payload) * cfg.termMatchBoost
		} else {
			sum -= baseScore * cfg.termMissingFactor
		}
	})
	return sum
}
