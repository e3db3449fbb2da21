// Package fixture loads offline scoring scenarios from YAML files.
//
// A fixture names a script and lists documents with their base scores and
// per-field payloads, so a script can be evaluated without an index:
//
//	script:
//	  name: payload_distance_ratio
//	  params:
//	    fields:
//	      - field: color
//	        term_values: {red: 5}
//	documents:
//	  - id: a
//	    base_score: 2
//	    payloads:
//	      color: {red: 4.5}
package fixture

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	internalErrors "github.com/gcbaptista/payload-distance/internal/errors"
	"github.com/gcbaptista/payload-distance/internal/scoring"
)

// errMissingBaseScore is the cause reported when a document has no base_score.
var errMissingBaseScore = errors.New("document has no base_score")

// File is a decoded fixture.
type File struct {
	Script    Script     `yaml:"script"`
	Documents []Document `yaml:"documents"`
}

// Script is the script request of a fixture.
type Script struct {
	Name   string                 `yaml:"name"`
	Params map[string]interface{} `yaml:"params"`
}

// Document is a fixture document. It implements scoring.PayloadLookup.
type Document struct {
	ID       string                        `yaml:"id"`
	Base     *float64                      `yaml:"base_score"`
	Payloads map[string]map[string]float64 `yaml:"payloads"`
}

var _ scoring.PayloadLookup = (*Document)(nil)

// Payload returns the payload of term in field. Terms are matched case-insensitively.
func (d *Document) Payload(field, term string) (float64, bool) {
	terms, ok := d.Payloads[field]
	if !ok {
		return 0, false
	}
	value, ok := terms[strings.ToLower(term)]
	return value, ok
}

// BaseScore returns the configured base score, or a LookupError when none is set.
func (d *Document) BaseScore() (float64, error) {
	if d.Base == nil {
		return 0, internalErrors.NewLookupError(d.ID, errMissingBaseScore)
	}
	return *d.Base, nil
}

// Result is the outcome of scoring one fixture document.
type Result struct {
	ID        string  `json:"id"`
	Score     float64 `json:"score"`
	BaseScore float64 `json:"base_score"`
	Fallback  bool    `json:"base_score_fallback"`
}

// Load reads and validates the fixture at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is supplied by the operator on the command line
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates fixture YAML.
func Parse(data []byte) (*File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}
	if err := file.validate(); err != nil {
		return nil, err
	}
	return &file, nil
}

func (f *File) validate() error {
	if f.Script.Params == nil {
		return internalErrors.NewValidationError("script.params", "is required")
	}
	seen := make(map[string]bool, len(f.Documents))
	for i := range f.Documents {
		doc := &f.Documents[i]
		if strings.TrimSpace(doc.ID) == "" {
			return internalErrors.NewValidationError(fmt.Sprintf("documents[%d].id", i), "is required")
		}
		if seen[doc.ID] {
			return internalErrors.NewValidationError(fmt.Sprintf("documents[%d].id", i), fmt.Sprintf("duplicate id '%s'", doc.ID))
		}
		seen[doc.ID] = true

		for field, terms := range doc.Payloads {
			normalized, err := normalizeTerms(fmt.Sprintf("documents[%d].payloads.%s", i, field), terms)
			if err != nil {
				return err
			}
			doc.Payloads[field] = normalized
		}
	}
	return nil
}

// normalizeTerms lowercases the terms of one payload field. Terms that only
// differ by case are rejected, since lookups could not tell them apart.
func normalizeTerms(path string, terms map[string]float64) (map[string]float64, error) {
	keys := make([]string, 0, len(terms))
	for term := range terms {
		keys = append(keys, term)
	}
	sort.Strings(keys)

	normalized := make(map[string]float64, len(terms))
	for _, term := range keys {
		value := terms[term]
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, internalErrors.NewValidationError(path+"."+term, "must be finite")
		}
		folded := strings.ToLower(term)
		if _, exists := normalized[folded]; exists {
			return nil, internalErrors.NewValidationError(path+"."+term,
				fmt.Sprintf("duplicate term '%s' after case folding", folded))
		}
		normalized[folded] = value
	}
	return normalized, nil
}

// Evaluate compiles the fixture script and scores every document. Results are
// ordered by score, highest first, with ties broken by ID.
func (f *File) Evaluate(defaultStrategy scoring.Strategy) (scoring.Strategy, []Result, error) {
	script, err := scoring.CompileScript(f.Script.Name, f.Script.Params, defaultStrategy)
	if err != nil {
		return "", nil, err
	}

	results := make([]Result, 0, len(f.Documents))
	for i := range f.Documents {
		doc := &f.Documents[i]
		result := Result{ID: doc.ID, BaseScore: scoring.FallbackBaseScore}
		if doc.Base != nil {
			result.BaseScore = *doc.Base
		}
		script.OnFallback = func(error) { result.Fallback = true }
		result.Score = script.ScoreDocument(doc)
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})
	return script.Strategy(), results, nil
}
