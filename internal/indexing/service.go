package indexing

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gcbaptista/payload-distance/index"
	internalErrors "github.com/gcbaptista/payload-distance/internal/errors"
	"github.com/gcbaptista/payload-distance/internal/scoring"
	"github.com/gcbaptista/payload-distance/internal/tokenizer"
	"github.com/gcbaptista/payload-distance/model"
	"github.com/gcbaptista/payload-distance/store"
)

// Service implements the indexing logic for a single index.
// It fulfills the services.Indexer interface.
type Service struct {
	invertedIndex *index.InvertedIndex
	documentStore *store.DocumentStore
	logger        zerolog.Logger
	// settings are accessible via invertedIndex.Settings
}

// NewService creates a new indexing Service.
// It assumes that invertedIndex.Settings is not nil.
func NewService(invertedIndex *index.InvertedIndex, documentStore *store.DocumentStore, logger zerolog.Logger) (*Service, error) {
	if invertedIndex == nil {
		return nil, fmt.Errorf("inverted index cannot be nil")
	}
	if documentStore == nil {
		return nil, fmt.Errorf("document store cannot be nil")
	}
	if invertedIndex.Index == nil {
		invertedIndex.Index = make(map[string]index.PostingList)
	}
	if documentStore.Docs == nil {
		documentStore.Docs = make(map[uint32]model.Document)
	}
	if documentStore.ExternalIDtoInternalID == nil {
		documentStore.ExternalIDtoInternalID = make(map[string]uint32)
	}
	if invertedIndex.Settings == nil {
		return nil, fmt.Errorf("inverted index settings cannot be nil")
	}
	return &Service{
		invertedIndex: invertedIndex,
		documentStore: documentStore,
		logger:        logger.With().Str("index", invertedIndex.Settings.Name).Logger(),
	}, nil
}

// fieldPostings accumulates the positions of every term of one field.
type fieldPostings map[string][]index.Position

func (fp fieldPostings) add(term string, pos index.Position) {
	fp[term] = append(fp[term], pos)
}

// AddDocuments adds or replaces a batch of documents.
// Every document is analyzed before any lock is taken, so a malformed document
// rejects the whole batch without touching the index.
func (s *Service) AddDocuments(docs []model.Document) error {
	type analyzed struct {
		id     string
		doc    model.Document
		fields map[string]fieldPostings
	}

	batch := make([]analyzed, 0, len(docs))
	for i, doc := range docs {
		id, err := documentID(doc)
		if err != nil {
			return fmt.Errorf("document at position %d: %w", i, err)
		}
		fields, err := s.analyze(id, doc)
		if err != nil {
			return fmt.Errorf("failed to add document ID %s: %w", id, err)
		}
		batch = append(batch, analyzed{id: id, doc: doc, fields: fields})
	}

	s.documentStore.Mu.Lock()
	s.invertedIndex.Mu.Lock()
	defer s.documentStore.Mu.Unlock()
	defer s.invertedIndex.Mu.Unlock()

	for _, a := range batch {
		internalID, existed := s.documentStore.Assign(a.id)
		if existed {
			s.invertedIndex.RemoveDocument(internalID)
		}
		a.doc["documentID"] = a.id
		s.documentStore.Docs[internalID] = a.doc

		for fieldName, terms := range a.fields {
			for term, positions := range terms {
				s.invertedIndex.Add(term, index.PostingEntry{
					DocID:     internalID,
					FieldName: fieldName,
					Score:     float64(len(positions)),
					Positions: positions,
				})
			}
		}
	}

	s.logger.Debug().Int("documents", len(batch)).Msg("documents indexed")
	return nil
}

func documentID(doc model.Document) (string, error) {
	raw, ok := doc["documentID"]
	if !ok {
		return "", internalErrors.NewValidationError("documentID", "is required")
	}
	id, ok := raw.(string)
	if !ok {
		return "", internalErrors.NewValidationError("documentID", fmt.Sprintf("must be a string, got %T", raw))
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return "", internalErrors.NewValidationError("documentID", "cannot be empty or whitespace-only")
	}
	return id, nil
}

// analyze turns the searchable and payload fields of doc into per-field postings.
func (s *Service) analyze(docID string, doc model.Document) (map[string]fieldPostings, error) {
	settings := s.invertedIndex.Settings
	result := make(map[string]fieldPostings)

	for _, fieldName := range settings.SearchableFields {
		value, ok := doc[fieldName]
		if !ok || value == nil {
			continue
		}
		texts, err := textValues(value)
		if err != nil {
			s.logger.Warn().Str("document_id", docID).Str("field", fieldName).Err(err).Msg("searchable field skipped")
			continue
		}
		fp := make(fieldPostings)
		offset := 0
		for _, text := range texts {
			for _, token := range tokenizer.Tokenize(text) {
				fp.add(token, index.Position{Offset: offset})
				offset++
			}
		}
		result[fieldName] = fp
	}

	for _, fieldName := range settings.PayloadFields {
		value, ok := doc[fieldName]
		if !ok || value == nil {
			continue
		}
		fp, err := payloadPostings(value, settings.PayloadDelimiter)
		if err != nil {
			return nil, internalErrors.NewValidationError(fieldName, err.Error())
		}
		result[fieldName] = fp
	}

	return result, nil
}

// textValues extracts the strings of a searchable field value.
func textValues(value interface{}) ([]string, error) {
	switch v := value.(type) {
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	case []interface{}:
		texts := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				texts = append(texts, str)
			}
		}
		return texts, nil
	}
	return nil, fmt.Errorf("unhandled type %T", value)
}

// payloadPostings indexes a payload field given as delimited text, a list of
// delimited strings, or a {term: number} object.
func payloadPostings(value interface{}, delimiter string) (fieldPostings, error) {
	fp := make(fieldPostings)
	offset := 0
	addText := func(text string) {
		for _, token := range tokenizer.TokenizeWithPayloads(text, delimiter) {
			fp.add(token.Term, index.Position{Offset: offset, Payload: token.Payload, HasPayload: token.HasPayload})
			offset++
		}
	}

	switch v := value.(type) {
	case string:
		addText(v)
	case []string:
		for _, text := range v {
			addText(text)
		}
	case []interface{}:
		for _, item := range v {
			text, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("list entries must be strings, got %T", item)
			}
			addText(text)
		}
	case map[string]interface{}:
		terms := make([]string, 0, len(v))
		for term := range v {
			terms = append(terms, term)
		}
		sort.Strings(terms)
		for _, term := range terms {
			payload, ok := scoring.Number(v[term])
			if !ok {
				return nil, fmt.Errorf("payload of term '%s' must be a number, got %T", term, v[term])
			}
			normalized := strings.ToLower(strings.TrimSpace(term))
			if normalized == "" {
				continue
			}
			// Non-finite payloads are kept as plain terms, as in the delimited form.
			if math.IsNaN(payload) || math.IsInf(payload, 0) {
				fp.add(normalized, index.Position{Offset: offset})
			} else {
				fp.add(normalized, index.Position{Offset: offset, Payload: payload, HasPayload: true})
			}
			offset++
		}
	default:
		return nil, fmt.Errorf("unsupported payload value of type %T", value)
	}
	return fp, nil
}

// DeleteAllDocuments removes all documents from the index.
func (s *Service) DeleteAllDocuments() error {
	s.documentStore.Mu.Lock()
	s.invertedIndex.Mu.Lock()
	defer s.documentStore.Mu.Unlock()
	defer s.invertedIndex.Mu.Unlock()

	s.invertedIndex.Index = make(map[string]index.PostingList)
	s.documentStore.Docs = make(map[uint32]model.Document)
	s.documentStore.ExternalIDtoInternalID = make(map[string]uint32)
	s.documentStore.NextID = 0

	s.logger.Info().Msg("all documents deleted")
	return nil
}

// DeleteDocument removes a single document and its postings.
func (s *Service) DeleteDocument(docID string) error {
	s.documentStore.Mu.Lock()
	s.invertedIndex.Mu.Lock()
	defer s.documentStore.Mu.Unlock()
	defer s.invertedIndex.Mu.Unlock()

	internalID, ok := s.documentStore.Remove(docID)
	if !ok {
		return internalErrors.NewDocumentNotFoundError(docID, s.invertedIndex.Settings.Name)
	}
	s.invertedIndex.RemoveDocument(internalID)
	return nil
}

// GetDocument returns a copy of the stored document.
func (s *Service) GetDocument(docID string) (model.Document, error) {
	s.documentStore.Mu.RLock()
	defer s.documentStore.Mu.RUnlock()

	_, doc, ok := s.documentStore.Lookup(docID)
	if !ok {
		return nil, internalErrors.NewDocumentNotFoundError(docID, s.invertedIndex.Settings.Name)
	}
	out := make(model.Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out, nil
}
