package engine

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gcbaptista/payload-distance/config"
	"github.com/gcbaptista/payload-distance/index"
	"github.com/gcbaptista/payload-distance/internal/indexing"
	"github.com/gcbaptista/payload-distance/internal/scoring"
	"github.com/gcbaptista/payload-distance/internal/search"
	"github.com/gcbaptista/payload-distance/model"
	"github.com/gcbaptista/payload-distance/services"
	"github.com/gcbaptista/payload-distance/store"
)

// IndexInstance holds all components and services for a single search index.
// It implements the services.IndexAccessor interface.
type IndexInstance struct {
	settings      *config.IndexSettings
	InvertedIndex *index.InvertedIndex
	DocumentStore *store.DocumentStore
	indexer       *indexing.Service
	searcher      *search.Service
}

// NewIndexInstance creates an empty index with the given settings.
func NewIndexInstance(settings config.IndexSettings, defaultStrategy scoring.Strategy, logger zerolog.Logger) (*IndexInstance, error) {
	if settings.Name == "" {
		return nil, fmt.Errorf("index name cannot be empty in settings")
	}
	invIndex := &index.InvertedIndex{
		Index:    make(map[string]index.PostingList),
		Settings: &settings,
	}
	return assembleInstance(&settings, invIndex, store.NewDocumentStore(), defaultStrategy, logger)
}

// assembleInstance wires the indexing and search services over existing data.
func assembleInstance(settings *config.IndexSettings, invIndex *index.InvertedIndex, docStore *store.DocumentStore, defaultStrategy scoring.Strategy, logger zerolog.Logger) (*IndexInstance, error) {
	invIndex.Settings = settings

	indexerService, err := indexing.NewService(invIndex, docStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create indexer service: %w", err)
	}
	searchService, err := search.NewService(invIndex, docStore, settings, defaultStrategy, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create search service: %w", err)
	}

	return &IndexInstance{
		settings:      settings,
		InvertedIndex: invIndex,
		DocumentStore: docStore,
		indexer:       indexerService,
		searcher:      searchService,
	}, nil
}

// AddDocuments delegates to the underlying Indexer service.
func (i *IndexInstance) AddDocuments(docs []model.Document) error {
	return i.indexer.AddDocuments(docs)
}

// DeleteAllDocuments delegates to the underlying Indexer service.
func (i *IndexInstance) DeleteAllDocuments() error {
	return i.indexer.DeleteAllDocuments()
}

// DeleteDocument delegates to the underlying Indexer service.
func (i *IndexInstance) DeleteDocument(docID string) error {
	return i.indexer.DeleteDocument(docID)
}

// GetDocument delegates to the underlying Indexer service.
func (i *IndexInstance) GetDocument(docID string) (model.Document, error) {
	return i.indexer.GetDocument(docID)
}

// Search delegates to the underlying Searcher service.
func (i *IndexInstance) Search(query services.SearchQuery) (services.SearchResult, error) {
	return i.searcher.Search(query)
}

// Settings returns a copy of the configuration settings for this index.
func (i *IndexInstance) Settings() config.IndexSettings {
	settings := *i.settings
	settings.SearchableFields = append([]string(nil), i.settings.SearchableFields...)
	settings.PayloadFields = append([]string(nil), i.settings.PayloadFields...)
	return settings
}

// DocumentCount returns the number of documents currently stored.
func (i *IndexInstance) DocumentCount() int {
	i.DocumentStore.Mu.RLock()
	defer i.DocumentStore.Mu.RUnlock()
	return len(i.DocumentStore.Docs)
}
