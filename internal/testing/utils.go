// Package testing provides utilities and helpers for testing the engine and its API.
package testing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/payload-distance/config"
	"github.com/gcbaptista/payload-distance/internal/engine"
	"github.com/gcbaptista/payload-distance/internal/logging"
	"github.com/gcbaptista/payload-distance/internal/scoring"
	"github.com/gcbaptista/payload-distance/model"
	"github.com/gcbaptista/payload-distance/services"
)

// CreateTestEngine creates an engine backed by a per-test temporary directory.
func CreateTestEngine(t *testing.T, strategy scoring.Strategy) *engine.Engine {
	t.Helper()
	eng, err := engine.NewEngine(t.TempDir(), strategy, logging.DiscardLogger())
	require.NoError(t, err, "Failed to create test engine")
	return eng
}

// CreateTestIndex creates a catalog index with "title" searchable and
// "color" and "size" as payload fields.
func CreateTestIndex(t *testing.T, eng *engine.Engine, indexName string) config.IndexSettings {
	t.Helper()
	settings := config.IndexSettings{
		Name:             indexName,
		SearchableFields: []string{"title"},
		PayloadFields:    []string{"color", "size"},
	}

	err := eng.CreateIndex(settings)
	require.NoError(t, err, "Failed to create test index")

	return settings
}

// AddTestDocuments adds a small shoe catalog whose payloads are easy to reason about.
func AddTestDocuments(t *testing.T, eng *engine.Engine, indexName string) []model.Document {
	t.Helper()
	indexAccessor, err := eng.GetIndex(indexName)
	require.NoError(t, err, "Failed to get index accessor")

	docs := []model.Document{
		{
			"documentID": "trail",
			"title":      "red trail shoes",
			"color":      "red|4.5 blue|1",
			"size":       map[string]interface{}{"eu": 42},
		},
		{
			"documentID": "road",
			"title":      "red road shoes",
			"color":      "red|1",
			"size":       map[string]interface{}{"eu": 44},
		},
		{
			"documentID": "court",
			"title":      "blue court shoes",
			"color":      "green|3",
		},
	}

	err = indexAccessor.AddDocuments(docs)
	require.NoError(t, err, "Failed to add test documents")

	return docs
}

// ColorScript builds a script request over the "color" field targeting red at the given value.
func ColorScript(name string, red float64) *services.ScriptRequest {
	return &services.ScriptRequest{
		Name: name,
		Params: map[string]interface{}{
			"fields": []interface{}{
				map[string]interface{}{
					"field":       "color",
					"term_values": map[string]interface{}{"red": red},
				},
			},
		},
	}
}

// SearchTestCase represents a test case for search operations
type SearchTestCase struct {
	Name          string
	Query         services.SearchQuery
	ExpectedCount int
	ExpectedOrder []string // Expected document IDs of the returned page, in order
	ValidateFunc  func(t *testing.T, results *services.SearchResult)
}

// RunSearchTests runs a suite of search tests against an index
func RunSearchTests(t *testing.T, indexAccessor services.IndexAccessor, tests []SearchTestCase) {
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			results, err := indexAccessor.Search(tt.Query)
			require.NoError(t, err, "Search should not fail")

			assert.Equal(t, tt.ExpectedCount, results.Total, "Result count should match")

			if tt.ExpectedOrder != nil {
				ids := make([]string, 0, len(results.Hits))
				for _, hit := range results.Hits {
					id, exists := hit.Document.GetDocumentID()
					require.True(t, exists, "Every hit should have a document ID")
					ids = append(ids, id)
				}
				assert.Equal(t, tt.ExpectedOrder, ids, "Result order should match expected")
			}

			if tt.ValidateFunc != nil {
				tt.ValidateFunc(t, &results)
			}
		})
	}
}
