package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/payload-distance/config"
	internalErrors "github.com/gcbaptista/payload-distance/internal/errors"
	"github.com/gcbaptista/payload-distance/internal/logging"
	"github.com/gcbaptista/payload-distance/internal/scoring"
	"github.com/gcbaptista/payload-distance/model"
	"github.com/gcbaptista/payload-distance/services"
)

func newTestEngine(t *testing.T, dataDir string) *Engine {
	t.Helper()
	eng, err := NewEngine(dataDir, scoring.StrategyRatio, logging.DiscardLogger())
	require.NoError(t, err)
	return eng
}

func productSettings(name string) config.IndexSettings {
	return config.IndexSettings{
		Name:             name,
		SearchableFields: []string{"title"},
		PayloadFields:    []string{"color"},
	}
}

func TestNewEngine_InvalidStrategy(t *testing.T) {
	_, err := NewEngine(t.TempDir(), scoring.Strategy("nearest"), logging.DiscardLogger())
	assert.ErrorIs(t, err, internalErrors.ErrInvalidConfiguration)
}

func TestCreateIndex(t *testing.T) {
	dataDir := t.TempDir()
	eng := newTestEngine(t, dataDir)

	require.NoError(t, eng.CreateIndex(productSettings("products")))

	settings, err := eng.GetIndexSettings("products")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultPayloadDelimiter, settings.PayloadDelimiter, "defaults are applied on creation")

	for _, file := range []string{settingsFile, invertedIndexFile, documentStoreFile} {
		assert.FileExists(t, filepath.Join(dataDir, "products", file))
	}

	err = eng.CreateIndex(productSettings("products"))
	assert.ErrorIs(t, err, internalErrors.ErrIndexAlreadyExists)
}

func TestCreateIndex_InvalidSettings(t *testing.T) {
	eng := newTestEngine(t, t.TempDir())

	tests := []struct {
		name     string
		settings config.IndexSettings
	}{
		{"empty name", config.IndexSettings{}},
		{"path traversal", config.IndexSettings{Name: "../escape"}},
		{"overlapping fields", config.IndexSettings{Name: "x", SearchableFields: []string{"color"}, PayloadFields: []string{"color"}}},
		{"duplicate payload field", config.IndexSettings{Name: "x", PayloadFields: []string{"color", "color"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := eng.CreateIndex(tt.settings)
			assert.ErrorIs(t, err, internalErrors.ErrInvalidInput)
		})
	}
	assert.Empty(t, eng.ListIndexes())
}

func TestGetIndex_NotFound(t *testing.T) {
	eng := newTestEngine(t, t.TempDir())

	_, err := eng.GetIndex("missing")
	assert.ErrorIs(t, err, internalErrors.ErrIndexNotFound)

	_, err = eng.GetIndexSettings("missing")
	assert.ErrorIs(t, err, internalErrors.ErrIndexNotFound)

	assert.ErrorIs(t, eng.DeleteIndex("missing"), internalErrors.ErrIndexNotFound)
	assert.ErrorIs(t, eng.PersistIndexData("missing"), internalErrors.ErrIndexNotFound)
}

func TestListIndexesSorted(t *testing.T) {
	eng := newTestEngine(t, t.TempDir())
	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, eng.CreateIndex(productSettings(name)))
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, eng.ListIndexes())
}

func TestDeleteIndex(t *testing.T) {
	dataDir := t.TempDir()
	eng := newTestEngine(t, dataDir)
	require.NoError(t, eng.CreateIndex(productSettings("products")))

	require.NoError(t, eng.DeleteIndex("products"))
	assert.Empty(t, eng.ListIndexes())
	_, err := os.Stat(filepath.Join(dataDir, "products"))
	assert.True(t, os.IsNotExist(err))
}

func TestIndexInstance_DocumentsAndSearch(t *testing.T) {
	eng := newTestEngine(t, t.TempDir())
	require.NoError(t, eng.CreateIndex(productSettings("products")))

	accessor, err := eng.GetIndex("products")
	require.NoError(t, err)

	require.NoError(t, accessor.AddDocuments([]model.Document{
		{"documentID": "a", "title": "red shoes", "color": "red|4"},
		{"documentID": "b", "title": "red boots", "color": "red|2"},
	}))
	assert.Equal(t, 2, accessor.DocumentCount())

	doc, err := accessor.GetDocument("a")
	require.NoError(t, err)
	assert.Equal(t, "red shoes", doc["title"])

	result, err := accessor.Search(services.SearchQuery{Script: &services.ScriptRequest{
		Name: scoring.ScriptPayloadDistance,
		Params: map[string]interface{}{"fields": []interface{}{
			map[string]interface{}{"field": "color", "term_values": map[string]interface{}{"red": 4.0}},
		}},
	}})
	require.NoError(t, err)
	assert.Equal(t, "ratio", result.Strategy, "the engine default strategy backs payload_distance_score")
	require.Len(t, result.Hits, 2)
	assert.InDelta(t, 2.0, result.Hits[0].Score, 1e-12)
	assert.InDelta(t, 1.5, result.Hits[1].Score, 1e-12)

	require.NoError(t, accessor.DeleteDocument("a"))
	assert.ErrorIs(t, accessor.DeleteDocument("a"), internalErrors.ErrDocumentNotFound)
	require.NoError(t, accessor.DeleteAllDocuments())
	assert.Equal(t, 0, accessor.DocumentCount())
}

func TestSettingsReturnsCopy(t *testing.T) {
	eng := newTestEngine(t, t.TempDir())
	require.NoError(t, eng.CreateIndex(productSettings("products")))

	accessor, err := eng.GetIndex("products")
	require.NoError(t, err)

	settings := accessor.Settings()
	settings.PayloadFields[0] = "mutated"
	assert.Equal(t, []string{"color"}, accessor.Settings().PayloadFields)
}

func TestPersistAndReload(t *testing.T) {
	dataDir := t.TempDir()
	eng := newTestEngine(t, dataDir)
	require.NoError(t, eng.CreateIndex(productSettings("products")))

	accessor, err := eng.GetIndex("products")
	require.NoError(t, err)
	require.NoError(t, accessor.AddDocuments([]model.Document{
		{"documentID": "a", "title": "red shoes", "color": "red|4.5 blue|1"},
	}))
	require.NoError(t, eng.PersistIndexData("products"))

	reloaded, err := NewEngine(dataDir, scoring.StrategyDifference, logging.DiscardLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{"products"}, reloaded.ListIndexes())
	assert.Equal(t, scoring.StrategyDifference, reloaded.DefaultStrategy())

	instance := reloaded.indexes["products"]
	require.NotNil(t, instance)
	assert.Equal(t, 1, instance.DocumentCount())

	id, _, ok := instance.DocumentStore.Lookup("a")
	require.True(t, ok)
	payload, ok := instance.InvertedIndex.FirstPayload("red", "color", id)
	require.True(t, ok)
	assert.Equal(t, 4.5, payload)

	result, err := instance.Search(services.SearchQuery{Script: &services.ScriptRequest{
		Name: scoring.ScriptPayloadDistance,
		Params: map[string]interface{}{"fields": []interface{}{
			map[string]interface{}{"field": "color", "term_values": map[string]interface{}{"red": 5.0}},
		}},
	}})
	require.NoError(t, err)
	assert.Equal(t, "difference", result.Strategy)
	require.Len(t, result.Hits, 1)
	assert.InDelta(t, -0.5, result.Hits[0].Score, 1e-12)
}

func TestLoadSkipsBrokenIndexes(t *testing.T) {
	dataDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dataDir, "no_settings"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "stray.txt"), []byte("x"), 0600))

	eng := newTestEngine(t, dataDir)
	assert.Empty(t, eng.ListIndexes())
}
