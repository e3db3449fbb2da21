package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/payload-distance/config"
	internalErrors "github.com/gcbaptista/payload-distance/internal/errors"
)

// CreateIndexHandler handles the request to create a new index.
// Request Body: config.IndexSettings
func (api *API) CreateIndexHandler(c *gin.Context) {
	var settings config.IndexSettings

	if result := ValidateJSONBinding(c, &settings); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if result := ValidateIndexSettings(&settings); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if err := api.engine.CreateIndex(settings); err != nil {
		switch {
		case errors.Is(err, internalErrors.ErrIndexAlreadyExists):
			SendIndexExistsError(c, settings.Name)
		case errors.Is(err, internalErrors.ErrInvalidInput):
			SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		default:
			SendIndexingError(c, "create index", err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Index '" + settings.Name + "' created successfully"})
}

// ListIndexesHandler lists all available indexes.
func (api *API) ListIndexesHandler(c *gin.Context) {
	names := api.engine.ListIndexes()
	c.JSON(http.StatusOK, gin.H{"indexes": names, "count": len(names)})
}

// GetIndexHandler retrieves the settings and document count of an index.
func (api *API) GetIndexHandler(c *gin.Context) {
	indexName := c.Param("indexName")
	indexAccessor, err := api.engine.GetIndex(indexName)
	if err != nil {
		if errors.Is(err, internalErrors.ErrIndexNotFound) {
			SendIndexNotFoundError(c, indexName)
			return
		}
		SendInternalError(c, "get index", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"settings":       indexAccessor.Settings(),
		"document_count": indexAccessor.DocumentCount(),
	})
}

// DeleteIndexHandler handles deleting an index.
func (api *API) DeleteIndexHandler(c *gin.Context) {
	indexName := c.Param("indexName")

	if err := api.engine.DeleteIndex(indexName); err != nil {
		if errors.Is(err, internalErrors.ErrIndexNotFound) {
			SendIndexNotFoundError(c, indexName)
			return
		}
		SendIndexingError(c, "delete index", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Index '" + indexName + "' deleted successfully"})
}
