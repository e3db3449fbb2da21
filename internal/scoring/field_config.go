package scoring

import "sort"

// Defaults applied when an option set omits the corresponding key.
const (
	DefaultBoost             = 1.0
	DefaultTermMissingFactor = 0.2
	DefaultTermMatchBoost    = 1.0
)

// FieldScoreConfig describes how to score one field.
// It is immutable once constructed and may be shared by concurrent scorers.
type FieldScoreConfig struct {
	field             string
	termValues        map[string]float64
	terms             []string // sorted keys of termValues
	boost             float64
	termMissingFactor float64
	termMatchBoost    float64
}

// NewFieldScoreConfig builds a FieldScoreConfig. The term map is copied.
func NewFieldScoreConfig(field string, termValues map[string]float64, boost, termMissingFactor, termMatchBoost float64) FieldScoreConfig {
	values := make(map[string]float64, len(termValues))
	terms := make([]string, 0, len(termValues))
	for term, value := range termValues {
		values[term] = value
		terms = append(terms, term)
	}
	sort.Strings(terms)

	return FieldScoreConfig{
		field:             field,
		termValues:        values,
		terms:             terms,
		boost:             boost,
		termMissingFactor: termMissingFactor,
		termMatchBoost:    termMatchBoost,
	}
}

// Field returns the identifier of the scored field.
func (c FieldScoreConfig) Field() string { return c.field }

// Terms returns the configured terms in sorted order.
func (c FieldScoreConfig) Terms() []string {
	out := make([]string, len(c.terms))
	copy(out, c.terms)
	return out
}

// TermValue returns the target value configured for term.
func (c FieldScoreConfig) TermValue(term string) (float64, bool) {
	v, ok := c.termValues[term]
	return v, ok
}

// Len returns the number of configured terms.
func (c FieldScoreConfig) Len() int { return len(c.terms) }

func (c FieldScoreConfig) Boost() float64             { return c.boost }
func (c FieldScoreConfig) TermMissingFactor() float64 { return c.termMissingFactor }
func (c FieldScoreConfig) TermMatchBoost() float64    { return c.termMatchBoost }

// eachTerm calls fn for every (term, target) pair in sorted term order.
func (c FieldScoreConfig) eachTerm(fn func(term string, target float64)) {
	for _, term := range c.terms {
		fn(term, c.termValues[term])
	}
}
