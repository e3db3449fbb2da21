package store

import (
	"bytes"
	"encoding/gob"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/payload-distance/model"
)

func TestAssignLookupRemove(t *testing.T) {
	ds := NewDocumentStore()

	id, existed := ds.Assign("doc1")
	assert.False(t, existed)
	assert.Equal(t, uint32(0), id)
	ds.Docs[id] = model.Document{"documentID": "doc1"}

	id2, existed := ds.Assign("doc2")
	assert.False(t, existed)
	assert.Equal(t, uint32(1), id2)
	ds.Docs[id2] = model.Document{"documentID": "doc2"}

	again, existed := ds.Assign("doc1")
	assert.True(t, existed)
	assert.Equal(t, id, again)

	gotID, doc, ok := ds.Lookup("doc2")
	require.True(t, ok)
	assert.Equal(t, id2, gotID)
	assert.Equal(t, "doc2", doc["documentID"])

	assert.Equal(t, []uint32{0, 1}, ds.InternalIDs())

	removed, ok := ds.Remove("doc1")
	assert.True(t, ok)
	assert.Equal(t, id, removed)
	_, _, ok = ds.Lookup("doc1")
	assert.False(t, ok)

	_, ok = ds.Remove("doc1")
	assert.False(t, ok)
}

func TestGobRoundTrip(t *testing.T) {
	ds := NewDocumentStore()
	id, _ := ds.Assign("doc1")
	ds.Docs[id] = model.Document{
		"documentID": "doc1",
		"color":      map[string]interface{}{"red": 5.0},
		"tags":       []interface{}{"a|1", "b|2"},
	}

	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(ds))

	decoded := &DocumentStore{}
	require.NoError(t, gob.NewDecoder(&buf).Decode(decoded))

	_, doc, ok := decoded.Lookup("doc1")
	require.True(t, ok)
	assert.Equal(t, map[string]interface{}{"red": 5.0}, doc["color"])
	assert.Equal(t, []interface{}{"a|1", "b|2"}, doc["tags"])
	assert.Equal(t, uint32(1), decoded.NextID)
}
