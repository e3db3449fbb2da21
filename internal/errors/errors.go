package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrInvalidConfiguration is returned when script parameters cannot be parsed
	ErrInvalidConfiguration = errors.New("invalid scoring configuration")

	// ErrLookupFailed is returned when a document's base score cannot be produced
	ErrLookupFailed = errors.New("lookup failed")

	// ErrIndexNotFound is returned when an index is not found
	ErrIndexNotFound = errors.New("index not found")

	// ErrIndexAlreadyExists is returned when trying to create an index that already exists
	ErrIndexAlreadyExists = errors.New("index already exists")

	// ErrDocumentNotFound is returned when a document is not found
	ErrDocumentNotFound = errors.New("document not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// ConfigurationError describes a structurally invalid field option set.
// Position is the index of the option set inside the "fields" list, or -1
// when the error is not tied to a single entry.
type ConfigurationError struct {
	Position int
	Key      string
	Message  string
}

func (e *ConfigurationError) Error() string {
	switch {
	case e.Position >= 0 && e.Key != "":
		return fmt.Sprintf("invalid scoring configuration: fields[%d].%s: %s", e.Position, e.Key, e.Message)
	case e.Position >= 0:
		return fmt.Sprintf("invalid scoring configuration: fields[%d]: %s", e.Position, e.Message)
	case e.Key != "":
		return fmt.Sprintf("invalid scoring configuration: %s: %s", e.Key, e.Message)
	}
	return fmt.Sprintf("invalid scoring configuration: %s", e.Message)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(position int, key, message string) *ConfigurationError {
	return &ConfigurationError{Position: position, Key: key, Message: message}
}

// LookupError is returned by a payload lookup when the base score of the
// current document cannot be produced.
type LookupError struct {
	DocumentID string
	Cause      error
}

func (e *LookupError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("base score lookup failed for document '%s': %v", e.DocumentID, e.Cause)
	}
	return fmt.Sprintf("base score lookup failed for document '%s'", e.DocumentID)
}

func (e *LookupError) Is(target error) bool {
	return target == ErrLookupFailed
}

func (e *LookupError) Unwrap() error {
	return e.Cause
}

// NewLookupError creates a new LookupError
func NewLookupError(documentID string, cause error) *LookupError {
	return &LookupError{DocumentID: documentID, Cause: cause}
}

// IndexNotFoundError represents an index not found error with context
type IndexNotFoundError struct {
	IndexName string
}

func (e *IndexNotFoundError) Error() string {
	return fmt.Sprintf("index named '%s' not found", e.IndexName)
}

func (e *IndexNotFoundError) Is(target error) bool {
	return target == ErrIndexNotFound
}

// NewIndexNotFoundError creates a new IndexNotFoundError
func NewIndexNotFoundError(indexName string) *IndexNotFoundError {
	return &IndexNotFoundError{IndexName: indexName}
}

// IndexAlreadyExistsError represents an index already exists error with context
type IndexAlreadyExistsError struct {
	IndexName string
}

func (e *IndexAlreadyExistsError) Error() string {
	return fmt.Sprintf("index named '%s' already exists", e.IndexName)
}

func (e *IndexAlreadyExistsError) Is(target error) bool {
	return target == ErrIndexAlreadyExists
}

// NewIndexAlreadyExistsError creates a new IndexAlreadyExistsError
func NewIndexAlreadyExistsError(indexName string) *IndexAlreadyExistsError {
	return &IndexAlreadyExistsError{IndexName: indexName}
}

// DocumentNotFoundError represents a document not found error with context
type DocumentNotFoundError struct {
	DocumentID string
	IndexName  string
}

func (e *DocumentNotFoundError) Error() string {
	if e.IndexName != "" {
		return fmt.Sprintf("document with ID '%s' not found in index '%s'", e.DocumentID, e.IndexName)
	}
	return fmt.Sprintf("document with ID '%s' not found", e.DocumentID)
}

func (e *DocumentNotFoundError) Is(target error) bool {
	return target == ErrDocumentNotFound
}

// NewDocumentNotFoundError creates a new DocumentNotFoundError
func NewDocumentNotFoundError(documentID string, indexName ...string) *DocumentNotFoundError {
	err := &DocumentNotFoundError{DocumentID: documentID}
	if len(indexName) > 0 {
		err.IndexName = indexName[0]
	}
	return err
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
