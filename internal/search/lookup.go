package search

import (
	"fmt"
	"math"
	"strings"

	"github.com/gcbaptista/payload-distance/index"
	internalErrors "github.com/gcbaptista/payload-distance/internal/errors"
)

// payloadLookup is the per-document view handed to a scoring script.
// It is bound to one document and only valid while the index read lock is held.
type payloadLookup struct {
	invertedIndex *index.InvertedIndex
	docID         uint32
	externalID    string
	baseScore     float64
}

// Payload returns the first-position payload of term in field. Terms are
// lowercased the same way payload fields are at index time.
func (l *payloadLookup) Payload(field, term string) (float64, bool) {
	return l.invertedIndex.FirstPayload(strings.ToLower(term), field, l.docID)
}

// BaseScore returns the document's query score. A non-finite score means the
// query evaluation could not produce one.
func (l *payloadLookup) BaseScore() (float64, error) {
	if math.IsNaN(l.baseScore) || math.IsInf(l.baseScore, 0) {
		return 0, internalErrors.NewLookupError(l.externalID, fmt.Errorf("base score is not finite (%v)", l.baseScore))
	}
	return l.baseScore, nil
}
