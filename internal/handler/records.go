package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academy-admin-api/internal/form"
	"github.com/noah-isme/academy-admin-api/internal/middleware"
	appErrors "github.com/noah-isme/academy-admin-api/pkg/errors"
	"github.com/noah-isme/academy-admin-api/pkg/response"
)

type recordService[T any, D any] interface {
	Get(ctx context.Context, id int) (T, error)
	Create(ctx context.Context, draft D) (T, error)
	Update(ctx context.Context, id int, draft D) (T, error)
	Delete(ctx context.Context, id int, confirmed bool) error
	OpenCreate(owner string) form.Form[D]
	OpenEdit(owner string, id int) (form.Form[D], error)
	Form(owner string) form.Form[D]
	EditDraft(owner string, draft D) (form.Form[D], error)
	ToggleOption(owner, field, value string) (form.Form[D], error)
	Submit(ctx context.Context, owner string) (T, error)
	Cancel(owner string)
}

// ToggleOptionRequest flips one value of a multi-select form field.
type ToggleOptionRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// RecordEndpoints serves the detail, mutation and form routes shared by every
// admin resource. present shapes a record for the response body.
type RecordEndpoints[T any, D any] struct {
	records recordService[T, D]
	present func(T) interface{}
}

func newRecordEndpoints[T any, D any](records recordService[T, D], present func(T) interface{}) RecordEndpoints[T, D] {
	if present == nil {
		present = func(rec T) interface{} { return rec }
	}
	return RecordEndpoints[T, D]{records: records, present: present}
}

// Get returns one record.
func (h RecordEndpoints[T, D]) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rec, err := h.records.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.present(rec), middleware.ExtractMeta(c))
}

// Create stores a record built from a full draft body.
func (h RecordEndpoints[T, D]) Create(c *gin.Context) {
	var draft D
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	rec, err := h.records.Create(c.Request.Context(), draft)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, h.present(rec))
}

// Update replaces the editable fields of a record with a full draft body.
func (h RecordEndpoints[T, D]) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var draft D
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	rec, err := h.records.Update(c.Request.Context(), id, draft)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.present(rec), nil)
}

// Delete removes a record when the request carries confirm=true.
func (h RecordEndpoints[T, D]) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))
	if err := h.records.Delete(c.Request.Context(), id, confirmed); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// OpenCreateForm opens a creating form with default values.
func (h RecordEndpoints[T, D]) OpenCreateForm(c *gin.Context) {
	response.Created(c, h.records.OpenCreate(middleware.SessionID(c)))
}

// OpenEditForm opens an editing form prefilled from the record.
func (h RecordEndpoints[T, D]) OpenEditForm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	f, err := h.records.OpenEdit(middleware.SessionID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, f)
}

// GetForm returns the caller's current form.
func (h RecordEndpoints[T, D]) GetForm(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.records.Form(middleware.SessionID(c)), nil)
}

// UpdateForm replaces the draft of the open form.
func (h RecordEndpoints[T, D]) UpdateForm(c *gin.Context) {
	var draft D
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	f, err := h.records.EditDraft(middleware.SessionID(c), draft)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, f, nil)
}

// ToggleFormOption flips a value of a multi-select field of the open form.
func (h RecordEndpoints[T, D]) ToggleFormOption(c *gin.Context) {
	var req ToggleOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid toggle payload"))
		return
	}
	f, err := h.records.ToggleOption(middleware.SessionID(c), req.Field, req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, f, nil)
}

// SubmitForm validates the open form and creates or updates the record.
func (h RecordEndpoints[T, D]) SubmitForm(c *gin.Context) {
	owner := middleware.SessionID(c)
	creating := h.records.Form(owner).Mode == form.ModeCreating
	rec, err := h.records.Submit(c.Request.Context(), owner)
	if err != nil {
		response.Error(c, err)
		return
	}
	if creating {
		response.Created(c, h.present(rec))
		return
	}
	response.JSON(c, http.StatusOK, h.present(rec), nil)
}

// CancelForm discards the open form.
func (h RecordEndpoints[T, D]) CancelForm(c *gin.Context) {
	h.records.Cancel(middleware.SessionID(c))
	response.NoContent(c)
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid id"))
		return 0, false
	}
	return id, true
}
