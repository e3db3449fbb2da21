package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gcbaptista/payload-distance/config"
	"github.com/gcbaptista/payload-distance/internal/errors"
)

// CreateIndex validates the settings, creates a new index and persists it.
func (e *Engine) CreateIndex(settings config.IndexSettings) error {
	if err := validateIndexName(settings.Name); err != nil {
		return err
	}
	if conflicts := settings.ValidateFieldNames(); len(conflicts) > 0 {
		return errors.NewValidationError("settings", strings.Join(conflicts, "; "))
	}
	settings.ApplyDefaults()

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.indexes[settings.Name]; exists {
		return errors.NewIndexAlreadyExistsError(settings.Name)
	}

	instance, err := NewIndexInstance(settings, e.defaultStrategy, e.logger)
	if err != nil {
		return fmt.Errorf("failed to create new index instance for '%s': %w", settings.Name, err)
	}

	if err := e.persistIndex(instance); err != nil {
		return fmt.Errorf("failed to persist new index '%s': %w", settings.Name, err)
	}

	e.indexes[settings.Name] = instance
	e.logger.Info().Str("index", settings.Name).Strs("payload_fields", settings.PayloadFields).Msg("index created")
	return nil
}

// DeleteIndex deletes an index and its data from disk.
func (e *Engine) DeleteIndex(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.indexes[name]; !exists {
		return errors.NewIndexNotFoundError(name)
	}

	delete(e.indexes, name)

	indexPath := filepath.Join(e.dataDir, name)
	if err := os.RemoveAll(indexPath); err != nil {
		return fmt.Errorf("failed to remove index directory %s: %w", indexPath, err)
	}

	e.logger.Info().Str("index", name).Msg("index deleted")
	return nil
}

// validateIndexName rejects names that cannot be used as a directory under the data dir.
func validateIndexName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.NewValidationError("name", "index name cannot be empty")
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return errors.NewValidationError("name", fmt.Sprintf("index name '%s' is not allowed", name))
	}
	return nil
}
