package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"crudbase/internal/companion"
	"crudbase/internal/entity"
	"crudbase/internal/query"
	"crudbase/internal/responses"
)

// listParamKeys are the query-string keys a list request understands.
var listParamKeys = []string{"page", "length", "order", "search", "filter", "filterBy"}

// CRUDHandler serves the list/create/read/update/delete endpoints for one
// entity type.
type CRUDHandler[T entity.Entity] struct {
	companion *companion.Companion[T]
	log       *zap.Logger
	// uniqueFields are checked for duplicates before create and update.
	uniqueFields []string
}

func NewCRUDHandler[T entity.Entity](comp *companion.Companion[T], log *zap.Logger, uniqueFields ...string) *CRUDHandler[T] {
	return &CRUDHandler[T]{
		companion:    comp,
		log:          log,
		uniqueFields: uniqueFields,
	}
}

// List handles GET /<entities> with paging, ordering, substring filter and
// free-text search decoded from the query string.
func (h *CRUDHandler[T]) List(c *gin.Context) {
	params := make(map[string]string, len(listParamKeys))
	for _, key := range listParamKeys {
		params[key] = c.Query(key)
	}

	page, err := h.companion.Find(c.Request.Context(), query.ParseOptions(params))
	if err != nil {
		h.fail(c, err, "Failed to list records")
		return
	}
	responses.Success(c, http.StatusOK, page, "")
}

// Get handles GET /<entities>/:id.
func (h *CRUDHandler[T]) Get(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	record, found, err := h.companion.FindByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Failed to retrieve record")
		return
	}
	if !found {
		responses.Fail(c, http.StatusNotFound, nil, "Record not found")
		return
	}
	responses.Success(c, http.StatusOK, record, "")
}

// Create handles POST /<entities>.
func (h *CRUDHandler[T]) Create(c *gin.Context) {
	e := h.companion.NewEntity()
	if err := c.ShouldBindJSON(e); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}
	e.SetID(0) // identity is assigned by the database

	if !h.checkDuplicates(c, e) {
		return
	}

	saved, verrs, err := h.companion.Save(c.Request.Context(), e)
	if len(verrs) > 0 {
		responses.ValidationFailed(c, verrs)
		return
	}
	if err != nil {
		h.fail(c, err, "Failed to create record")
		return
	}
	responses.Success(c, http.StatusCreated, saved, "Record created successfully")
}

// Update handles PUT /<entities>/:id.
func (h *CRUDHandler[T]) Update(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	e := h.companion.NewEntity()
	if err := c.ShouldBindJSON(e); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}
	e.SetID(id)

	if !h.checkDuplicates(c, e) {
		return
	}

	updated, verrs, err := h.companion.Update(c.Request.Context(), e)
	if len(verrs) > 0 {
		responses.ValidationFailed(c, verrs)
		return
	}
	if errors.Is(err, companion.ErrCouldNotUpdate) {
		responses.Fail(c, http.StatusNotFound, err, "Record not found")
		return
	}
	if err != nil {
		h.fail(c, err, "Failed to update record")
		return
	}
	responses.Success(c, http.StatusOK, updated, "Record updated successfully")
}

// Delete handles DELETE /<entities>/:id. Whether a row existed is not
// reported.
func (h *CRUDHandler[T]) Delete(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	if err := h.companion.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Failed to delete record")
		return
	}
	responses.Success(c, http.StatusOK, nil, "Record deleted successfully")
}

func (h *CRUDHandler[T]) idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid record id")
		return 0, false
	}
	return id, true
}

func (h *CRUDHandler[T]) checkDuplicates(c *gin.Context, e T) bool {
	for _, field := range h.uniqueFields {
		dup, err := h.companion.IsDuplicate(c.Request.Context(), e, field)
		if err != nil {
			h.fail(c, err, "Failed to check for duplicates")
			return false
		}
		if dup {
			responses.ValidationFailed(c, []entity.Error{
				{Field: field, Message: field + " is already in use"},
			})
			return false
		}
	}
	return true
}

func (h *CRUDHandler[T]) fail(c *gin.Context, err error, message string) {
	if entity.IsConfigError(err) {
		h.log.Error("configuration error", zap.Error(err))
		responses.Fail(c, http.StatusInternalServerError, err, "Configuration error")
		return
	}
	h.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	responses.Fail(c, http.StatusInternalServerError, err, message)
}
