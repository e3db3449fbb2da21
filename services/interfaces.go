package services

import (
	"github.com/gcbaptista/payload-distance/config"
	"github.com/gcbaptista/payload-distance/model"
)

// HitInfo contains scoring metadata about a search hit.
type HitInfo struct {
	BaseScore         float64 `json:"base_score"`                    // Score from query matching, before any script
	BaseScoreFallback bool    `json:"base_score_fallback,omitempty"` // True when the script had to use the fallback base score
}

// HitResult represents a single document in the search results.
type HitResult struct {
	Document model.Document `json:"document"`
	Score    float64        `json:"score"`    // The final score for this hit
	Info     HitInfo        `json:"hit_info"` // Scoring metadata
}

type SearchResult struct {
	Hits     []HitResult `json:"hits"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Took     int64       `json:"took"`             // milliseconds
	QueryId  string      `json:"query_id"`         // unique UUID for this search query
	Strategy string      `json:"strategy,omitempty"` // Strategy of the script applied to the hits, if any
}

// ScriptRequest names a scoring script and carries its untyped parameters,
// e.g. {"name": "payload_distance_score", "params": {"fields": [...]}}.
type ScriptRequest struct {
	Name   string                 `json:"name"`
	Params map[string]interface{} `json:"params"`
}

type SearchQuery struct {
	QueryString string
	Page        int
	PageSize    int
	Script      *ScriptRequest `json:"script,omitempty"` // Optional: re-score every hit with a payload distance script
}

// Indexer defines operations for adding data to an index
type Indexer interface {
	AddDocuments(docs []model.Document) error
	DeleteAllDocuments() error
	DeleteDocument(docID string) error
	GetDocument(docID string) (model.Document, error)
}

// Searcher defines operations for querying an index
type Searcher interface {
	Search(query SearchQuery) (SearchResult, error)
}

// IndexManager manages the lifecycle of indices
type IndexManager interface {
	CreateIndex(settings config.IndexSettings) error
	GetIndex(name string) (IndexAccessor, error)
	GetIndexSettings(name string) (config.IndexSettings, error)
	DeleteIndex(name string) error
	ListIndexes() []string
	PersistIndexData(indexName string) error
}

type IndexAccessor interface {
	Indexer
	Searcher
	Settings() config.IndexSettings
	DocumentCount() int
}
