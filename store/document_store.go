package store

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sort"
	"sync"

	"github.com/gcbaptista/payload-distance/model"
)

func init() {
	// Documents decoded from JSON or YAML hold these types as interface{} values.
	gob.Register([]interface{}{})
	gob.Register(map[string]interface{}{})
	gob.Register([]string{})
	gob.Register(float64(0))
	gob.Register(int(0))
	gob.Register(false)
}

// DocumentStore keeps the original documents of an index and maps external
// document IDs to the internal uint32 IDs used in postings.
type DocumentStore struct {
	Mu                     sync.RWMutex
	Docs                   map[uint32]model.Document // Internal ID to full document
	ExternalIDtoInternalID map[string]uint32         // User-provided ID to internal uint32 ID
	NextID                 uint32
}

// NewDocumentStore returns an empty, initialized store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		Docs:                   make(map[uint32]model.Document),
		ExternalIDtoInternalID: make(map[string]uint32),
	}
}

// gobDocumentStoreData is a helper struct for Gob encoding/decoding DocumentStore data.
// It excludes the mutex.
type gobDocumentStoreData struct {
	Docs                   map[uint32]model.Document
	ExternalIDtoInternalID map[string]uint32
	NextID                 uint32
}

// Assign returns the internal ID for externalID, allocating a new one when the
// document is unknown. The caller must hold the write lock.
func (ds *DocumentStore) Assign(externalID string) (internalID uint32, existed bool) {
	if id, ok := ds.ExternalIDtoInternalID[externalID]; ok {
		return id, true
	}
	id := ds.NextID
	ds.ExternalIDtoInternalID[externalID] = id
	ds.NextID++
	return id, false
}

// Lookup returns the document stored under externalID. The caller must hold at least the read lock.
func (ds *DocumentStore) Lookup(externalID string) (uint32, model.Document, bool) {
	id, ok := ds.ExternalIDtoInternalID[externalID]
	if !ok {
		return 0, nil, false
	}
	doc, ok := ds.Docs[id]
	return id, doc, ok
}

// Remove forgets externalID and its document. The caller must hold the write lock.
func (ds *DocumentStore) Remove(externalID string) (uint32, bool) {
	id, ok := ds.ExternalIDtoInternalID[externalID]
	if !ok {
		return 0, false
	}
	delete(ds.ExternalIDtoInternalID, externalID)
	delete(ds.Docs, id)
	return id, true
}

// InternalIDs returns every stored internal ID in ascending order.
// The caller must hold at least the read lock.
func (ds *DocumentStore) InternalIDs() []uint32 {
	ids := make([]uint32, 0, len(ds.Docs))
	for id := range ds.Docs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// GobEncode implements the gob.GobEncoder interface for DocumentStore.
func (ds *DocumentStore) GobEncode() ([]byte, error) {
	ds.Mu.RLock()
	defer ds.Mu.RUnlock()

	dataToEncode := gobDocumentStoreData{
		Docs:                   ds.Docs,
		ExternalIDtoInternalID: ds.ExternalIDtoInternalID,
		NextID:                 ds.NextID,
	}

	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)
	if err := encoder.Encode(dataToEncode); err != nil {
		return nil, fmt.Errorf("failed to gob encode document store data: %w", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface for DocumentStore.
func (ds *DocumentStore) GobDecode(data []byte) error {
	decodedData := gobDocumentStoreData{}

	buf := bytes.NewBuffer(data)
	decoder := gob.NewDecoder(buf)
	if err := decoder.Decode(&decodedData); err != nil {
		return fmt.Errorf("failed to gob decode document store data: %w", err)
	}

	ds.Mu.Lock()
	defer ds.Mu.Unlock()

	ds.Docs = decodedData.Docs
	ds.ExternalIDtoInternalID = decodedData.ExternalIDtoInternalID
	ds.NextID = decodedData.NextID

	// Ensure maps are initialized if they were nil after decoding
	if ds.Docs == nil {
		ds.Docs = make(map[uint32]model.Document)
	}
	if ds.ExternalIDtoInternalID == nil {
		ds.ExternalIDtoInternalID = make(map[string]uint32)
	}
	return nil
}
