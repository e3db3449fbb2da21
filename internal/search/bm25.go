package search

import (
	"math"

	"github.com/gcbaptista/payload-distance/index"
	"github.com/gcbaptista/payload-distance/internal/tokenizer"
	"github.com/gcbaptista/payload-distance/model"
	"github.com/gcbaptista/payload-distance/store"
)

// BM25 parameters
const (
	bm25K1 = 1.2  // Controls term frequency saturation
	bm25B  = 0.75 // Controls how much effect document length has
)

// BM25Calculator handles BM25 score calculations for one search.
// Document lengths are computed over the searchable fields only and the
// average length is computed once at construction.
// The caller must hold read locks on the index and the store while using it.
type BM25Calculator struct {
	invertedIndex    *index.InvertedIndex
	documentStore    *store.DocumentStore
	searchableFields map[string]bool
	docLengths       map[uint32]int
	avgDocLength     float64
}

// NewBM25Calculator creates a new BM25 calculator
func NewBM25Calculator(invIndex *index.InvertedIndex, docStore *store.DocumentStore, searchableFields []string) *BM25Calculator {
	fields := make(map[string]bool, len(searchableFields))
	for _, f := range searchableFields {
		fields[f] = true
	}

	calc := &BM25Calculator{
		invertedIndex:    invIndex,
		documentStore:    docStore,
		searchableFields: fields,
		docLengths:       make(map[uint32]int, len(docStore.Docs)),
	}

	total := 0
	for id, doc := range docStore.Docs {
		length := calc.getDocumentLength(doc, searchableFields)
		calc.docLengths[id] = length
		total += length
	}
	if len(docStore.Docs) > 0 {
		calc.avgDocLength = float64(total) / float64(len(docStore.Docs))
	}
	return calc
}

// calculateIDF calculates the inverse document frequency
// IDF = log(1 + (N - df + 0.5) / (df + 0.5)), which stays positive for common terms.
func (calc *BM25Calculator) calculateIDF(term string) float64 {
	totalDocs := float64(len(calc.documentStore.Docs))
	if totalDocs == 0 {
		return 0.0
	}

	docFreq := float64(calc.invertedIndex.DocumentFrequency(term, calc.searchableFields))
	if docFreq == 0 {
		return 0.0
	}

	return math.Log(1 + (totalDocs-docFreq+0.5)/(docFreq+0.5))
}

// CalculateBM25 calculates BM25 score with document length normalization
// BM25 = IDF * (tf * (k1 + 1)) / (tf + k1 * (1 - b + b * (|d| / avgdl)))
func (calc *BM25Calculator) CalculateBM25(term string, docID uint32, termFreq float64) float64 {
	docLength, exists := calc.docLengths[docID]
	if !exists {
		return 0.0
	}

	idf := calc.calculateIDF(term)
	tf := termFreq
	bm25TF := (tf * (bm25K1 + 1)) / (tf + bm25K1*(1-bm25B+bm25B*(float64(docLength)/calc.avgDocLength)))

	return idf * bm25TF
}

// getDocumentLength calculates the total number of tokens in a document across searchable fields
func (calc *BM25Calculator) getDocumentLength(doc model.Document, searchableFields []string) int {
	totalLength := 0

	for _, fieldName := range searchableFields {
		if fieldValue, exists := doc[fieldName]; exists {
			totalLength += calc.getFieldLength(fieldValue)
		}
	}

	return totalLength
}

// getFieldLength calculates the number of tokens in a field value
func (calc *BM25Calculator) getFieldLength(fieldValue interface{}) int {
	switch v := fieldValue.(type) {
	case string:
		return len(tokenizer.Tokenize(v))
	case []string:
		totalWords := 0
		for _, str := range v {
			totalWords += calc.getFieldLength(str)
		}
		return totalWords
	case []interface{}:
		totalWords := 0
		for _, item := range v {
			if str, ok := item.(string); ok {
				totalWords += calc.getFieldLength(str)
			}
		}
		return totalWords
	default:
		return 0
	}
}
