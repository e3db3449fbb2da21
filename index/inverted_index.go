package index

import (
	"bytes"
	"encoding/gob"
	"sort"
	"sync"

	"github.com/gcbaptista/payload-distance/config"
)

// InvertedIndex maps a term (token) to the postings of the documents containing it.
type InvertedIndex struct {
	Mu       sync.RWMutex
	Index    map[string]PostingList
	Settings *config.IndexSettings // Reference to settings for this index
}

// gobInvertedIndexData is a helper struct for Gob encoding/decoding InvertedIndex data.
// It excludes the mutex.
type gobInvertedIndexData struct {
	Index    map[string]PostingList
	Settings *config.IndexSettings
}

// GobEncode implements the gob.GobEncoder interface for InvertedIndex.
func (ii *InvertedIndex) GobEncode() ([]byte, error) {
	ii.Mu.RLock() // Ensure consistent data during encoding
	defer ii.Mu.RUnlock()

	dataToEncode := gobInvertedIndexData{
		Index:    ii.Index,
		Settings: ii.Settings,
	}

	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)
	if err := encoder.Encode(dataToEncode); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface for InvertedIndex.
func (ii *InvertedIndex) GobDecode(data []byte) error {
	decodedData := gobInvertedIndexData{}

	buf := bytes.NewBuffer(data)
	decoder := gob.NewDecoder(buf)
	if err := decoder.Decode(&decodedData); err != nil {
		return err
	}

	ii.Mu.Lock() // Ensure exclusive access during decoding
	defer ii.Mu.Unlock()

	ii.Index = decodedData.Index
	ii.Settings = decodedData.Settings

	if ii.Index == nil {
		ii.Index = make(map[string]PostingList)
	}
	return nil
}

// Add inserts or replaces the posting of (entry.DocID, entry.FieldName) for term,
// keeping the list sorted. The caller must hold the write lock.
func (ii *InvertedIndex) Add(term string, entry PostingEntry) {
	list := ii.Index[term]
	i := sort.Search(len(list), func(i int) bool {
		return !postingLess(list[i], entry)
	})
	if i < len(list) && list[i].DocID == entry.DocID && list[i].FieldName == entry.FieldName {
		list[i] = entry
		return
	}
	list = append(list, PostingEntry{})
	copy(list[i+1:], list[i:])
	list[i] = entry
	ii.Index[term] = list
}

// Find returns the posting of term for (docID, field). The caller must hold at least the read lock.
func (ii *InvertedIndex) Find(term, field string, docID uint32) (PostingEntry, bool) {
	list := ii.Index[term]
	probe := PostingEntry{DocID: docID, FieldName: field}
	i := sort.Search(len(list), func(i int) bool {
		return !postingLess(list[i], probe)
	})
	if i < len(list) && list[i].DocID == docID && list[i].FieldName == field {
		return list[i], true
	}
	return PostingEntry{}, false
}

// FirstPayload returns the payload of term's first position in field for docID.
// The caller must hold at least the read lock.
func (ii *InvertedIndex) FirstPayload(term, field string, docID uint32) (float64, bool) {
	entry, ok := ii.Find(term, field, docID)
	if !ok {
		return 0, false
	}
	return entry.FirstPayload()
}

// RemoveDocument drops every posting of docID. The caller must hold the write lock.
func (ii *InvertedIndex) RemoveDocument(docID uint32) {
	for term, list := range ii.Index {
		kept := list[:0]
		for _, entry := range list {
			if entry.DocID != docID {
				kept = append(kept, entry)
			}
		}
		if len(kept) == 0 {
			delete(ii.Index, term)
			continue
		}
		ii.Index[term] = kept
	}
}

// DocumentFrequency returns the number of distinct documents containing term
// in any of the given fields. The caller must hold at least the read lock.
func (ii *InvertedIndex) DocumentFrequency(term string, fields map[string]bool) int {
	count := 0
	last := uint32(0)
	seen := false
	for _, entry := range ii.Index[term] {
		if !fields[entry.FieldName] {
			continue
		}
		if !seen || entry.DocID != last {
			count++
			last = entry.DocID
			seen = true
		}
	}
	return count
}

func postingLess(a, b PostingEntry) bool {
	if a.DocID != b.DocID {
		return a.DocID < b.DocID
	}
	return a.FieldName < b.FieldName
}
