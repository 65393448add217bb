package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academy-admin-api/internal/models"
	"github.com/noah-isme/academy-admin-api/internal/service"
	appErrors "github.com/noah-isme/academy-admin-api/pkg/errors"
	"github.com/noah-isme/academy-admin-api/pkg/export"
	"github.com/noah-isme/academy-admin-api/pkg/response"
)

// TeacherHandler exposes teacher endpoints.
type TeacherHandler struct {
	RecordEndpoints[models.Teacher, models.TeacherDraft]
	teachers *service.TeacherService
	exports  *service.ExportService
}

// NewTeacherHandler constructs TeacherHandler.
func NewTeacherHandler(teachers *service.TeacherService, exports *service.ExportService) *TeacherHandler {
	return &TeacherHandler{
		RecordEndpoints: newRecordEndpoints[models.Teacher, models.TeacherDraft](teachers, nil),
		teachers:        teachers,
		exports:         exports,
	}
}

// List godoc
// @Summary List teachers
// @Tags Teachers
// @Produce json
// @Param search query string false "Search by name, subject or email"
// @Param status query string false "active, inactive, leave or all"
// @Success 200 {object} response.Envelope
// @Router /teachers [get]
func (h *TeacherHandler) List(c *gin.Context) {
	teachers := h.teachers.List(c.Request.Context(), teacherFilterFromQuery(c))
	response.JSON(c, http.StatusOK, teachers, map[string]interface{}{"count": len(teachers)})
}

// Stats godoc
// @Summary Teacher statistics
// @Tags Teachers
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /teachers/stats [get]
func (h *TeacherHandler) Stats(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.teachers.Stats(c.Request.Context()), nil)
}

// Export godoc
// @Summary Export teachers
// @Tags Teachers
// @Produce octet-stream
// @Param format query string false "csv, xlsx or pdf"
// @Success 200 {file} file
// @Failure 503 {object} response.Envelope
// @Router /teachers/export [get]
func (h *TeacherHandler) Export(c *gin.Context) {
	format, ok := export.ParseFormat(strings.ToLower(c.Query("format")))
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv, xlsx or pdf"))
		return
	}
	file, err := h.exports.ExportTeachers(c.Request.Context(), format, teacherFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}

func teacherFilterFromQuery(c *gin.Context) models.TeacherFilter {
	return models.TeacherFilter{
		Search: strings.TrimSpace(c.Query("search")),
		Status: c.Query("status"),
	}
}
