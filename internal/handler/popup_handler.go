package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academy-admin-api/internal/middleware"
	"github.com/noah-isme/academy-admin-api/internal/models"
	"github.com/noah-isme/academy-admin-api/internal/service"
	"github.com/noah-isme/academy-admin-api/pkg/response"
)

// PopupHandler exposes popup endpoints. Every popup in a response carries the
// state derived at request time.
type PopupHandler struct {
	RecordEndpoints[models.Popup, models.PopupDraft]
	popups *service.PopupService
}

// NewPopupHandler constructs PopupHandler.
func NewPopupHandler(popups *service.PopupService) *PopupHandler {
	present := func(p models.Popup) interface{} {
		return p.View(popups.Now(), popups.Location())
	}
	return &PopupHandler{
		RecordEndpoints: newRecordEndpoints[models.Popup, models.PopupDraft](popups, present),
		popups:          popups,
	}
}

// List godoc
// @Summary List popups
// @Tags Popups
// @Produce json
// @Param search query string false "Search by title or content"
// @Param state query string false "active, scheduled, inactive or all"
// @Success 200 {object} response.Envelope
// @Router /popups [get]
func (h *PopupHandler) List(c *gin.Context) {
	filter := models.PopupFilter{
		Search: strings.TrimSpace(c.Query("search")),
		State:  c.Query("state"),
	}
	popups := h.popups.List(c.Request.Context(), filter)
	response.JSON(c, http.StatusOK, popups, h.meta(c, len(popups)))
}

// Stats godoc
// @Summary Popup statistics
// @Tags Popups
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /popups/stats [get]
func (h *PopupHandler) Stats(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.popups.Stats(c.Request.Context()), h.meta(c, -1))
}

// Toggle godoc
// @Summary Flip the activation flag of a popup
// @Tags Popups
// @Produce json
// @Param id path int true "Popup ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /popups/{id}/toggle [post]
func (h *PopupHandler) Toggle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	view, err := h.popups.Toggle(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

func (h *PopupHandler) meta(c *gin.Context, count int) map[string]interface{} {
	middleware.SetMeta(c, "evaluated_at", h.popups.Now())
	if count >= 0 {
		middleware.SetMeta(c, "count", count)
	}
	return middleware.ExtractMeta(c)
}
