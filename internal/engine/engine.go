// Package engine manages the lifecycle of the indexes served by the process.
package engine

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gcbaptista/payload-distance/config"
	"github.com/gcbaptista/payload-distance/internal/errors"
	"github.com/gcbaptista/payload-distance/internal/scoring"
	"github.com/gcbaptista/payload-distance/services"
)

const (
	dataDirPerm       = 0755
	settingsFile      = "settings.gob"
	invertedIndexFile = "inverted_index.gob"
	documentStoreFile = "document_store.gob"
)

// Engine manages multiple search indexes.
// It implements the services.IndexManager interface.
type Engine struct {
	mu              sync.RWMutex
	indexes         map[string]*IndexInstance
	dataDir         string
	defaultStrategy scoring.Strategy
	logger          zerolog.Logger
}

// NewEngine creates the engine and loads every index found under dataDir.
// defaultStrategy is the strategy behind the "payload_distance_score" script.
func NewEngine(dataDir string, defaultStrategy scoring.Strategy, logger zerolog.Logger) (*Engine, error) {
	if _, err := scoring.ParseStrategy(string(defaultStrategy)); err != nil {
		return nil, err
	}

	eng := &Engine{
		indexes:         make(map[string]*IndexInstance),
		dataDir:         dataDir,
		defaultStrategy: defaultStrategy,
		logger:          logger.With().Str("component", "engine").Logger(),
	}
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}
	eng.loadIndexesFromDisk()
	return eng, nil
}

// DefaultStrategy returns the strategy used by the "payload_distance_score" script.
func (e *Engine) DefaultStrategy() scoring.Strategy {
	return e.defaultStrategy
}

// GetIndex retrieves an index by its name.
func (e *Engine) GetIndex(name string) (services.IndexAccessor, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.indexes[name]
	if !exists {
		return nil, errors.NewIndexNotFoundError(name)
	}
	return instance, nil
}

// GetIndexSettings retrieves the settings for a specific index.
func (e *Engine) GetIndexSettings(name string) (config.IndexSettings, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.indexes[name]
	if !exists {
		return config.IndexSettings{}, errors.NewIndexNotFoundError(name)
	}
	return instance.Settings(), nil
}

// ListIndexes returns the names of all loaded indexes in lexical order.
func (e *Engine) ListIndexes() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.indexes))
	for name := range e.indexes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
