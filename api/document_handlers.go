package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/gcbaptista/payload-distance/internal/errors"
	"github.com/gcbaptista/payload-distance/model"
	"github.com/gcbaptista/payload-distance/services"
)

// AddDocumentsHandler handles adding/updating documents in an index.
// The body is a single document object or an array of them.
func (api *API) AddDocumentsHandler(c *gin.Context) {
	indexName := c.Param("indexName")
	indexAccessor, ok := api.lookupIndex(c, indexName)
	if !ok {
		return
	}

	var rawData interface{}
	if err := c.ShouldBindJSON(&rawData); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	var docs []model.Document
	switch data := rawData.(type) {
	case []interface{}:
		docs = make([]model.Document, len(data))
		for i, item := range data {
			docMap, isMap := item.(map[string]interface{})
			if !isMap {
				result := &ValidationResult{Valid: true}
				result.AddError(fmt.Sprintf("documents[%d]", i), "Document is not a valid object")
				SendValidationError(c, result)
				return
			}
			docs[i] = docMap
		}
	case map[string]interface{}:
		docs = []model.Document{data}
	default:
		result := &ValidationResult{Valid: true}
		result.AddError("request_body", "Expecting a document object or an array of documents")
		SendValidationError(c, result)
		return
	}

	if result := ValidateDocuments(docs); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if err := indexAccessor.AddDocuments(docs); err != nil {
		if errors.Is(err, internalErrors.ErrInvalidInput) {
			SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
			return
		}
		SendIndexingError(c, "add documents", err)
		return
	}

	if err := api.engine.PersistIndexData(indexName); err != nil {
		SendPersistenceError(c, indexName, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        fmt.Sprintf("%d document(s) added/updated in index '%s'", len(docs), indexName),
		"document_count": len(docs),
	})
}

// DeleteAllDocumentsHandler handles the request to delete all documents from an index.
func (api *API) DeleteAllDocumentsHandler(c *gin.Context) {
	indexName := c.Param("indexName")
	indexAccessor, ok := api.lookupIndex(c, indexName)
	if !ok {
		return
	}

	if err := indexAccessor.DeleteAllDocuments(); err != nil {
		SendIndexingError(c, "delete all documents", err)
		return
	}
	if err := api.engine.PersistIndexData(indexName); err != nil {
		SendPersistenceError(c, indexName, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All documents deleted from index '" + indexName + "'"})
}

// GetDocumentHandler retrieves a specific document by ID
func (api *API) GetDocumentHandler(c *gin.Context) {
	indexName := c.Param("indexName")
	documentID := c.Param("documentId")

	if result := ValidateDocumentID(documentID); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	indexAccessor, ok := api.lookupIndex(c, indexName)
	if !ok {
		return
	}

	document, err := indexAccessor.GetDocument(documentID)
	if err != nil {
		if errors.Is(err, internalErrors.ErrDocumentNotFound) {
			SendDocumentNotFoundError(c, documentID, indexName)
			return
		}
		SendInternalError(c, "get document", err)
		return
	}

	c.JSON(http.StatusOK, document)
}

// DeleteDocumentHandler deletes a specific document by ID
func (api *API) DeleteDocumentHandler(c *gin.Context) {
	indexName := c.Param("indexName")
	documentID := c.Param("documentId")

	if result := ValidateDocumentID(documentID); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	indexAccessor, ok := api.lookupIndex(c, indexName)
	if !ok {
		return
	}

	if err := indexAccessor.DeleteDocument(documentID); err != nil {
		if errors.Is(err, internalErrors.ErrDocumentNotFound) {
			SendDocumentNotFoundError(c, documentID, indexName)
			return
		}
		SendIndexingError(c, "delete document", err)
		return
	}
	if err := api.engine.PersistIndexData(indexName); err != nil {
		SendPersistenceError(c, indexName, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document '" + documentID + "' deleted from index '" + indexName + "'"})
}

// lookupIndex resolves indexName or writes the error response and reports false.
func (api *API) lookupIndex(c *gin.Context, indexName string) (services.IndexAccessor, bool) {
	if result := ValidateIndexName(indexName); result.HasErrors() {
		SendValidationError(c, result)
		return nil, false
	}

	indexAccessor, err := api.engine.GetIndex(indexName)
	if err != nil {
		if errors.Is(err, internalErrors.ErrIndexNotFound) {
			SendIndexNotFoundError(c, indexName)
			return nil, false
		}
		SendInternalError(c, "get index", err)
		return nil, false
	}
	return indexAccessor, true
}
