// Package config provides configuration structures for the search engine.
// It defines index settings and the server's environment-driven configuration.
package config

import (
	"strings"
)

// DefaultPayloadDelimiter separates a token from its payload in delimited payload text ("red|5.0").
const DefaultPayloadDelimiter = "|"

// IndexSettings contains all configuration options for a search index.
//
// SearchableFields are tokenized into postings that feed the base (BM25) score.
// PayloadFields carry a numeric payload per token position and are the fields
// payload distance scripts read from. A field cannot be both.
type IndexSettings struct {
	Name             string   `json:"name"`              // Unique name for the index
	SearchableFields []string `json:"searchable_fields"` // Fields matched against the query string (e.g., ["title", "description"])
	PayloadFields    []string `json:"payload_fields"`    // Fields whose tokens carry numeric payloads (e.g., ["color", "size"])
	PayloadDelimiter string   `json:"payload_delimiter"` // Separator between token and payload in delimited text, defaults to "|"
}

// ValidateFieldNames validates field names for basic requirements.
func (settings *IndexSettings) ValidateFieldNames() []string {
	var conflicts []string

	conflicts = append(conflicts, checkDuplicates("searchable_fields", settings.SearchableFields)...)
	conflicts = append(conflicts, checkDuplicates("payload_fields", settings.PayloadFields)...)
	conflicts = append(conflicts, settings.validateFieldReferences()...)

	allFields := make([]string, 0, len(settings.SearchableFields)+len(settings.PayloadFields))
	allFields = append(allFields, settings.SearchableFields...)
	allFields = append(allFields, settings.PayloadFields...)

	for _, field := range allFields {
		if strings.TrimSpace(field) == "" {
			conflicts = append(conflicts, "Field name cannot be empty or whitespace-only")
		}
	}

	if strings.TrimSpace(settings.PayloadDelimiter) == "" && settings.PayloadDelimiter != "" {
		conflicts = append(conflicts, "payload_delimiter cannot be whitespace")
	}

	return conflicts
}

// checkDuplicates checks for duplicate values in a slice and returns error messages
func checkDuplicates(fieldName string, fields []string) []string {
	var errors []string
	seen := make(map[string]bool)

	for _, field := range fields {
		if seen[field] {
			errors = append(errors, "Duplicate field '"+field+"' found in "+fieldName)
		}
		seen[field] = true
	}

	return errors
}

// validateFieldReferences validates that no field is configured as both searchable and payload field
func (settings *IndexSettings) validateFieldReferences() []string {
	var errors []string

	searchableFieldsSet := make(map[string]bool)
	for _, field := range settings.SearchableFields {
		searchableFieldsSet[field] = true
	}

	for _, field := range settings.PayloadFields {
		if searchableFieldsSet[field] {
			errors = append(errors, "Field '"+field+"' cannot be in both searchable_fields and payload_fields")
		}
	}

	return errors
}

// ApplyDefaults applies default values to the index settings
func (settings *IndexSettings) ApplyDefaults() {
	if settings.PayloadDelimiter == "" {
		settings.PayloadDelimiter = DefaultPayloadDelimiter
	}

	// Initialize empty slices if nil to prevent nil pointer issues
	if settings.SearchableFields == nil {
		settings.SearchableFields = []string{}
	}
	if settings.PayloadFields == nil {
		settings.PayloadFields = []string{}
	}
}

// IsPayloadField reports whether field is configured as a payload field.
func (settings *IndexSettings) IsPayloadField(field string) bool {
	for _, f := range settings.PayloadFields {
		if f == field {
			return true
		}
	}
	return false
}
