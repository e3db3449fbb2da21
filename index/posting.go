package index

// Position is one occurrence of a term inside a field, with the payload
// stored for that occurrence when there is one.
type Position struct {
	Offset     int
	Payload    float64
	HasPayload bool
}

// PostingEntry represents a document that contains a term, the field it appeared in,
// and the positions of the term in that field.
type PostingEntry struct {
	DocID     uint32     // Internal numeric ID for efficiency
	FieldName string     // The name of the field where the term was found (e.g., "title", "color")
	Score     float64    // Term frequency within this field for this document
	Positions []Position // Occurrences in ascending offset order
}

// FirstPayload returns the payload of the first position of the entry.
// Later positions are never consulted, even when the first one has no payload.
func (pe PostingEntry) FirstPayload() (float64, bool) {
	if len(pe.Positions) == 0 || !pe.Positions[0].HasPayload {
		return 0, false
	}
	return pe.Positions[0].Payload, true
}

// PostingList is a slice of PostingEntry, sorted by DocID then FieldName.
type PostingList []PostingEntry
