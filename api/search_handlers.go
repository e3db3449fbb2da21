package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/gcbaptista/payload-distance/internal/errors"
	"github.com/gcbaptista/payload-distance/services"
)

// SearchRequest defines the structure for search queries.
type SearchRequest struct {
	Query    string                  `json:"query"`
	Page     int                     `json:"page"`
	PageSize int                     `json:"page_size"`
	Script   *services.ScriptRequest `json:"script,omitempty"` // Optional: payload distance script applied to every hit
}

// SearchHandler handles search requests to an index.
// Request Body: SearchRequest
func (api *API) SearchHandler(c *gin.Context) {
	indexName := c.Param("indexName")
	indexAccessor, ok := api.lookupIndex(c, indexName)
	if !ok {
		return
	}

	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidQuery, "Invalid request body: "+err.Error())
		return
	}

	page, pageSize, result := ValidatePagination(req.Page, req.PageSize)
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	if result := ValidateScriptRequest(req.Script); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	results, err := indexAccessor.Search(services.SearchQuery{
		QueryString: req.Query,
		Page:        page,
		PageSize:    pageSize,
		Script:      req.Script,
	})
	if err != nil {
		if errors.Is(err, internalErrors.ErrInvalidConfiguration) {
			SendInvalidScriptError(c, err)
			return
		}
		SendSearchError(c, indexName, err)
		return
	}

	c.JSON(http.StatusOK, results)
}
