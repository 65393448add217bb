package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academy-admin-api/internal/models"
	"github.com/noah-isme/academy-admin-api/internal/service"
	"github.com/noah-isme/academy-admin-api/pkg/response"
)

// NoticeHandler exposes notice endpoints.
type NoticeHandler struct {
	RecordEndpoints[models.Notice, models.NoticeDraft]
	notices *service.NoticeService
}

// NewNoticeHandler constructs NoticeHandler.
func NewNoticeHandler(notices *service.NoticeService) *NoticeHandler {
	return &NoticeHandler{
		RecordEndpoints: newRecordEndpoints[models.Notice, models.NoticeDraft](notices, nil),
		notices:         notices,
	}
}

// List godoc
// @Summary List notices
// @Tags Notices
// @Produce json
// @Param search query string false "Search by title or content"
// @Param priority query string false "normal, important, urgent or all"
// @Param active query bool false "Filter by published state"
// @Success 200 {object} response.Envelope
// @Router /notices [get]
func (h *NoticeHandler) List(c *gin.Context) {
	filter := models.NoticeFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Priority: c.Query("priority"),
	}
	if active, err := strconv.ParseBool(c.Query("active")); err == nil {
		filter.Active = &active
	}
	notices := h.notices.List(c.Request.Context(), filter)
	response.JSON(c, http.StatusOK, notices, map[string]interface{}{"count": len(notices)})
}

// Stats godoc
// @Summary Notice statistics
// @Tags Notices
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /notices/stats [get]
func (h *NoticeHandler) Stats(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.notices.Stats(c.Request.Context()), nil)
}
