package search

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gcbaptista/payload-distance/config"
	"github.com/gcbaptista/payload-distance/index"
	"github.com/gcbaptista/payload-distance/internal/metrics"
	"github.com/gcbaptista/payload-distance/internal/scoring"
	"github.com/gcbaptista/payload-distance/internal/tokenizer"
	"github.com/gcbaptista/payload-distance/services"
	"github.com/gcbaptista/payload-distance/store"
)

const defaultPageSize = 10

// matchAllBaseScore is the base score of every document when the query string is empty.
const matchAllBaseScore = 1.0

// Service implements the search logic for a single index.
// It fulfills the services.Searcher interface.
type Service struct {
	invertedIndex   *index.InvertedIndex
	documentStore   *store.DocumentStore
	settings        *config.IndexSettings
	defaultStrategy scoring.Strategy
	logger          zerolog.Logger
}

// NewService creates a new search Service. defaultStrategy is used by the
// "payload_distance_score" script.
func NewService(invIndex *index.InvertedIndex, docStore *store.DocumentStore, settings *config.IndexSettings, defaultStrategy scoring.Strategy, logger zerolog.Logger) (*Service, error) {
	if invIndex == nil {
		return nil, fmt.Errorf("inverted index cannot be nil")
	}
	if docStore == nil {
		return nil, fmt.Errorf("document store cannot be nil")
	}
	if settings == nil {
		return nil, fmt.Errorf("settings cannot be nil")
	}
	if _, err := scoring.ParseStrategy(string(defaultStrategy)); err != nil {
		return nil, err
	}

	return &Service{
		invertedIndex:   invIndex,
		documentStore:   docStore,
		settings:        settings,
		defaultStrategy: defaultStrategy,
		logger:          logger.With().Str("index", settings.Name).Logger(),
	}, nil
}

// candidate is a matched document during search processing.
type candidate struct {
	docID      uint32
	externalID string
	baseScore  float64
	score      float64
	fellBack   bool
}

// Search performs a search operation based on the query.
// The script, if any, is compiled once and applied to every matched document.
func (s *Service) Search(query services.SearchQuery) (services.SearchResult, error) {
	startTime := time.Now()
	defer func() {
		metrics.SearchLatencySeconds.WithLabelValues(s.settings.Name).Observe(time.Since(startTime).Seconds())
	}()

	page := query.Page
	if page <= 0 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	var script *scoring.Script
	if query.Script != nil {
		compiled, err := scoring.CompileScript(query.Script.Name, query.Script.Params, s.defaultStrategy)
		if err != nil {
			metrics.ScriptErrorsTotal.Inc()
			return services.SearchResult{}, fmt.Errorf("failed to compile script: %w", err)
		}
		script = compiled
	}

	// Same lock order as the indexer: store first, then index.
	s.documentStore.Mu.RLock()
	s.invertedIndex.Mu.RLock()
	defer s.documentStore.Mu.RUnlock()
	defer s.invertedIndex.Mu.RUnlock()

	candidates := s.collectCandidates(tokenizer.Tokenize(query.QueryString))

	result := services.SearchResult{
		Page:     page,
		PageSize: pageSize,
		QueryId:  uuid.New().String(),
	}

	if script != nil {
		s.applyScript(script, candidates)
		result.Strategy = script.Strategy().String()
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].externalID < candidates[j].externalID
	})

	result.Total = len(candidates)
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(candidates) {
		start = len(candidates)
	}
	if end > len(candidates) {
		end = len(candidates)
	}

	result.Hits = make([]services.HitResult, 0, end-start)
	for _, c := range candidates[start:end] {
		result.Hits = append(result.Hits, services.HitResult{
			Document: s.documentStore.Docs[c.docID],
			Score:    c.score,
			Info: services.HitInfo{
				BaseScore:         c.baseScore,
				BaseScoreFallback: c.fellBack,
			},
		})
	}

	result.Took = time.Since(startTime).Milliseconds()
	return result, nil
}

// collectCandidates returns every document matching at least one query token
// in a searchable field, scored with BM25. An empty token list matches every
// document with matchAllBaseScore.
func (s *Service) collectCandidates(tokens []string) []*candidate {
	if len(tokens) == 0 {
		ids := s.documentStore.InternalIDs()
		candidates := make([]*candidate, 0, len(ids))
		for _, id := range ids {
			candidates = append(candidates, s.newCandidate(id, matchAllBaseScore))
		}
		return candidates
	}

	calc := NewBM25Calculator(s.invertedIndex, s.documentStore, s.settings.SearchableFields)
	byDoc := make(map[uint32]*candidate)
	var ordered []*candidate

	seen := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		if seen[token] {
			continue
		}
		seen[token] = true

		for _, entry := range s.invertedIndex.Index[token] {
			if !calc.searchableFields[entry.FieldName] {
				continue
			}
			c, ok := byDoc[entry.DocID]
			if !ok {
				c = s.newCandidate(entry.DocID, 0)
				byDoc[entry.DocID] = c
				ordered = append(ordered, c)
			}
			c.baseScore += calc.CalculateBM25(token, entry.DocID, entry.Score)
			c.score = c.baseScore
		}
	}
	return ordered
}

func (s *Service) newCandidate(docID uint32, baseScore float64) *candidate {
	externalID, _ := s.documentStore.Docs[docID].GetDocumentID()
	return &candidate{docID: docID, externalID: externalID, baseScore: baseScore, score: baseScore}
}

// applyScript replaces the score of every candidate with the script output.
func (s *Service) applyScript(script *scoring.Script, candidates []*candidate) {
	strategy := script.Strategy().String()

	var current *candidate
	script.OnFallback = func(err error) {
		current.fellBack = true
		metrics.BaseScoreFallbacksTotal.WithLabelValues(strategy).Inc()
		s.logger.Warn().Err(err).Str("document_id", current.externalID).
			Float64("fallback_score", scoring.FallbackBaseScore).Msg("base score unavailable, using fallback")
	}

	for _, c := range candidates {
		current = c
		lookup := &payloadLookup{
			invertedIndex: s.invertedIndex,
			docID:         c.docID,
			externalID:    c.externalID,
			baseScore:     c.baseScore,
		}
		c.score = script.ScoreDocument(lookup)
	}

	metrics.DocumentsScoredTotal.WithLabelValues(strategy).Add(float64(len(candidates)))
	s.logger.Debug().Str("strategy", strategy).Int("fields", script.Fields()).
		Int("documents", len(candidates)).Msg("payload distance script applied")
}
