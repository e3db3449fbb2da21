package engine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gcbaptista/payload-distance/config"
	"github.com/gcbaptista/payload-distance/index"
	internalErrors "github.com/gcbaptista/payload-distance/internal/errors"
	"github.com/gcbaptista/payload-distance/internal/persistence"
	"github.com/gcbaptista/payload-distance/store"
)

// loadIndexesFromDisk loads all indexes from the data directory.
// An index whose settings cannot be read is skipped. Missing or corrupt
// data files start the index empty.
func (e *Engine) loadIndexesFromDisk() {
	e.logger.Info().Str("data_dir", e.dataDir).Msg("loading indexes from disk")

	items, err := os.ReadDir(e.dataDir)
	if err != nil {
		e.logger.Warn().Err(err).Str("data_dir", e.dataDir).Msg("failed to read data directory, no indexes loaded")
		return
	}

	for _, item := range items {
		if !item.IsDir() {
			continue
		}
		indexName := item.Name()
		indexPath := filepath.Join(e.dataDir, indexName)
		log := e.logger.With().Str("index", indexName).Logger()

		var settings config.IndexSettings
		settingsPath := filepath.Join(indexPath, settingsFile)
		if err := persistence.LoadGob(settingsPath, &settings); err != nil {
			log.Warn().Err(err).Str("path", settingsPath).Msg("failed to load settings, skipping index")
			continue
		}

		if settings.Name != indexName {
			log.Warn().Str("settings_name", settings.Name).Msg("index name in settings does not match directory name, skipping index")
			continue
		}
		settings.ApplyDefaults()

		docStore := store.NewDocumentStore()
		dsPath := filepath.Join(indexPath, documentStoreFile)
		if err := persistence.LoadGob(dsPath, docStore); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				log.Warn().Err(err).Str("path", dsPath).Msg("failed to load document store, starting empty")
			}
			docStore = store.NewDocumentStore()
		}

		invIndex := &index.InvertedIndex{Settings: &settings}
		iiPath := filepath.Join(indexPath, invertedIndexFile)
		if err := persistence.LoadGob(iiPath, invIndex); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				log.Warn().Err(err).Str("path", iiPath).Msg("failed to load inverted index, starting empty")
			}
			invIndex = &index.InvertedIndex{}
		}
		if invIndex.Index == nil {
			invIndex.Index = make(map[string]index.PostingList)
		}

		instance, err := assembleInstance(&settings, invIndex, docStore, e.defaultStrategy, e.logger)
		if err != nil {
			log.Error().Err(err).Msg("failed to assemble loaded index, skipping")
			continue
		}

		e.indexes[indexName] = instance
		log.Info().Int("documents", len(docStore.Docs)).Msg("index loaded")
	}
}

// PersistIndexData persists the data for a specific index to disk.
func (e *Engine) PersistIndexData(indexName string) error {
	e.mu.RLock()
	instance, exists := e.indexes[indexName]
	e.mu.RUnlock()

	if !exists {
		return internalErrors.NewIndexNotFoundError(indexName)
	}
	return e.persistIndex(instance)
}

// persistIndex writes the settings, inverted index and document store of an instance.
// InvertedIndex and DocumentStore take their own read locks while encoding.
func (e *Engine) persistIndex(instance *IndexInstance) error {
	name := instance.settings.Name
	indexPath := filepath.Join(e.dataDir, name)
	if err := os.MkdirAll(indexPath, dataDirPerm); err != nil {
		return fmt.Errorf("failed to create directory for index %s: %w", name, err)
	}

	if err := persistence.SaveGob(filepath.Join(indexPath, settingsFile), instance.Settings()); err != nil {
		return fmt.Errorf("failed to save settings for index %s: %w", name, err)
	}
	if err := persistence.SaveGob(filepath.Join(indexPath, invertedIndexFile), instance.InvertedIndex); err != nil {
		return fmt.Errorf("failed to save inverted index for %s: %w", name, err)
	}
	if err := persistence.SaveGob(filepath.Join(indexPath, documentStoreFile), instance.DocumentStore); err != nil {
		return fmt.Errorf("failed to save document store for %s: %w", name, err)
	}

	e.logger.Debug().Str("index", name).Msg("index data persisted")
	return nil
}
