package scoring

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	internalErrors "github.com/gcbaptista/payload-distance/internal/errors"
)

// fakeLookup is a fixed single-document lookup.
type fakeLookup struct {
	payloads map[string]map[string]float64 // field -> term -> payload
	base     float64
	baseErr  error
	calls    int
}

func (l *fakeLookup) Payload(field, term string) (float64, bool) {
	l.calls++
	terms, ok := l.payloads[field]
	if !ok {
		return 0, false
	}
	v, ok := terms[term]
	return v, ok
}

func (l *fakeLookup) BaseScore() (float64, error) {
	if l.baseErr != nil {
		return 0, l.baseErr
	}
	return l.base, nil
}

func TestRatio(t *testing.T) {
	t.Run("bounds for positive values", func(t *testing.T) {
		values := []float64{0.001, 0.5, 1, 2.5, 3, 5, 10, 1e6}
		for _, target := range values {
			for _, payload := range values {
				r := Ratio(target, payload)
				assert.Greater(t, r, 0.0, "ratio(%v,%v)", target, payload)
				assert.LessOrEqual(t, r, 1.0, "ratio(%v,%v)", target, payload)
				if target == payload {
					assert.Equal(t, 1.0, r)
				} else {
					assert.Less(t, r, 1.0, "ratio(%v,%v) should be below 1 for unequal values", target, payload)
				}
			}
		}
	})

	t.Run("symmetric", func(t *testing.T) {
		assert.Equal(t, Ratio(5, 2.5), Ratio(2.5, 5))
		assert.Equal(t, 0.5, Ratio(5, 2.5))
	})

	t.Run("zero is safe", func(t *testing.T) {
		for _, v := range []float64{-3, 0, 2.5, 100} {
			assert.Equal(t, 0.0, Ratio(0, v))
			assert.Equal(t, 0.0, Ratio(v, 0))
			assert.False(t, math.IsNaN(Ratio(0, v)))
			assert.False(t, math.IsInf(Ratio(v, 0), 0))
		}
	})

	t.Run("negative values use the raw formula", func(t *testing.T) {
		assert.Equal(t, -0.5, Ratio(-2, 4))
		assert.Equal(t, -0.5, Ratio(4, -2))
		assert.Equal(t, 2.0, Ratio(-2, -4))
		assert.Equal(t, 1.0, Ratio(-3, -3))
	})
}

func TestScoreFieldRatio(t *testing.T) {
	t.Run("example from the color field", func(t *testing.T) {
		cfg := NewFieldScoreConfig("color", map[string]float64{"red": 5.0}, 2.0, DefaultTermMissingFactor, DefaultTermMatchBoost)
		lookup := &fakeLookup{payloads: map[string]map[string]float64{"color": {"red": 2.5}}}

		assert.Equal(t, 1.0, ScoreFieldRatio(cfg, lookup))
	})

	t.Run("missing terms are skipped", func(t *testing.T) {
		cfg := NewFieldScoreConfig("color", map[string]float64{"red": 4, "blue": 2, "green": 1}, 1, 0.2, 1)
		lookup := &fakeLookup{payloads: map[string]map[string]float64{"color": {"red": 4}}}

		assert.Equal(t, 1.0, ScoreFieldRatio(cfg, lookup))
		assert.Equal(t, 3, lookup.calls, "each configured term is looked up once")
	})

	t.Run("zero payload contributes zero", func(t *testing.T) {
		cfg := NewFieldScoreConfig("color", map[string]float64{"red": 4, "blue": 2}, 1, 0.2, 1)
		lookup := &fakeLookup{payloads: map[string]map[string]float64{"color": {"red": 0, "blue": 2}}}

		assert.Equal(t, 1.0, ScoreFieldRatio(cfg, lookup))
	})

	t.Run("empty term values contribute zero", func(t *testing.T) {
		cfg := NewFieldScoreConfig("color", nil, 3, 0.2, 1)
		assert.Equal(t, 0.0, ScoreFieldRatio(cfg, &fakeLookup{}))
	})
}

func TestScoreFieldDifference(t *testing.T) {
	t.Run("example with present term", func(t *testing.T) {
		cfg := NewFieldScoreConfig("color", map[string]float64{"red": 5.0}, DefaultBoost, 0.2, 1.0)
		lookup := &fakeLookup{payloads: map[string]map[string]float64{"color": {"red": 3.0}}}

		assert.Equal(t, -20.0, ScoreFieldDifference(10.0, cfg, lookup))
	})

	t.Run("example with absent term", func(t *testing.T) {
		cfg := NewFieldScoreConfig("color", map[string]float64{"red": 5.0}, DefaultBoost, 0.2, 1.0)

		assert.InDelta(t, -2.0, ScoreFieldDifference(10.0, cfg, &fakeLookup{}), 1e-12)
	})

	t.Run("every term missing", func(t *testing.T) {
		terms := map[string]float64{"a": 1, "b": 2, "c": 3, "d": 4}
		cfg := NewFieldScoreConfig("tags", terms, DefaultBoost, 0.25, 1)
		base := 8.0

		expected := -base * 0.25 * float64(len(terms))
		assert.InDelta(t, expected, ScoreFieldDifference(base, cfg, &fakeLookup{}), 1e-12)
	})

	t.Run("exact matches give zero", func(t *testing.T) {
		terms := map[string]float64{"a": 1.5, "b": -2, "c": 0}
		cfg := NewFieldScoreConfig("tags", terms, DefaultBoost, 0.2, 3)
		lookup := &fakeLookup{payloads: map[string]map[string]float64{"tags": {"a": 1.5, "b": -2, "c": 0}}}

		assert.Equal(t, 0.0, ScoreFieldDifference(7.0, cfg, lookup))
	})

	t.Run("match boost scales deviation", func(t *testing.T) {
		cfg := NewFieldScoreConfig("color", map[string]float64{"red": 5.0}, DefaultBoost, 0.2, 0.5)
		lookup := &fakeLookup{payloads: map[string]map[string]float64{"color": {"red": 7.0}}}

		assert.Equal(t, -2.0, ScoreFieldDifference(2.0, cfg, lookup))
	})
}

func TestBaseScoreOrFallback(t *testing.T) {
	score, fellBack, err := BaseScoreOrFallback(&fakeLookup{base: 4.2})
	assert.Equal(t, 4.2, score)
	assert.False(t, fellBack)
	assert.NoError(t, err)

	lookupErr := internalErrors.NewLookupError("doc1", errors.New("reader closed"))
	score, fellBack, err = BaseScoreOrFallback(&fakeLookup{base: 4.2, baseErr: lookupErr})
	assert.Equal(t, FallbackBaseScore, score)
	assert.True(t, fellBack)
	assert.ErrorIs(t, err, internalErrors.ErrLookupFailed)
}
