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

// maxImportSize bounds uploaded student workbooks.
const maxImportSize = 10 << 20

// StudentHandler exposes student endpoints.
type StudentHandler struct {
	RecordEndpoints[models.Student, models.StudentDraft]
	students *service.StudentService
	exports  *service.ExportService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students *service.StudentService, exports *service.ExportService) *StudentHandler {
	return &StudentHandler{
		RecordEndpoints: newRecordEndpoints[models.Student, models.StudentDraft](students, nil),
		students:        students,
		exports:         exports,
	}
}

// List godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Param search query string false "Search by name, school or grade"
// @Param status query string false "active, inactive, graduated or all"
// @Param payment_status query string false "paid, unpaid, overdue or all"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	filter := studentFilterFromQuery(c)
	students := h.students.List(c.Request.Context(), filter)
	response.JSON(c, http.StatusOK, students, map[string]interface{}{"count": len(students)})
}

// Stats godoc
// @Summary Student statistics
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /students/stats [get]
func (h *StudentHandler) Stats(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.students.Stats(c.Request.Context()), nil)
}

// Export godoc
// @Summary Export students
// @Tags Students
// @Produce octet-stream
// @Param format query string false "csv, xlsx or pdf"
// @Param search query string false "Search by name, school or grade"
// @Param status query string false "Status filter"
// @Success 200 {file} file
// @Failure 503 {object} response.Envelope
// @Router /students/export [get]
func (h *StudentHandler) Export(c *gin.Context) {
	format, ok := export.ParseFormat(strings.ToLower(c.Query("format")))
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv, xlsx or pdf"))
		return
	}
	file, err := h.exports.ExportStudents(c.Request.Context(), format, studentFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}

// Import godoc
// @Summary Import students from an XLSX workbook
// @Tags Students
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Workbook whose first row holds the column headers"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /students/import [post]
func (h *StudentHandler) Import(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize)
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "file is required"))
		return
	}
	file, err := header.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "unreadable upload"))
		return
	}
	defer file.Close()

	result, err := h.exports.ImportStudents(c.Request.Context(), file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, map[string]interface{}{
		"created": len(result.Created),
		"failed":  len(result.Failed),
	})
}

func studentFilterFromQuery(c *gin.Context) models.StudentFilter {
	return models.StudentFilter{
		Search:        strings.TrimSpace(c.Query("search")),
		Status:        c.Query("status"),
		PaymentStatus: c.Query("payment_status"),
	}
}
