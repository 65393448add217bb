package service

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/academy-admin-api/internal/fixtures"
	"github.com/noah-isme/academy-admin-api/internal/models"
	appErrors "github.com/noah-isme/academy-admin-api/pkg/errors"
	"github.com/noah-isme/academy-admin-api/pkg/export"
)

func newTestExportService(now time.Time) (*ExportService, *StudentService) {
	stores := fixtures.NewStores(true)
	params := testParams(now)
	students := NewStudentService(stores.Students, params)
	teachers := NewTeacherService(stores.Teachers, params)
	return NewExportService(students, teachers, "", nil), students
}

func TestExportServiceStudentsCSV(t *testing.T) {
	svc, _ := newTestExportService(time.Now())

	file, err := svc.ExportStudents(context.Background(), export.FormatCSV, models.StudentFilter{Status: "active"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(file.Filename, "students-"))
	assert.True(t, strings.HasSuffix(file.Filename, ".csv"))
	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)

	body := string(file.Body)
	assert.Contains(t, body, "이름,학년,학교")
	assert.Contains(t, body, "김민수")
	assert.Contains(t, body, "박지영")
	assert.NotContains(t, body, "이준호")
	assert.Contains(t, body, "미납")
}

func TestExportServiceTeachersXLSX(t *testing.T) {
	svc, _ := newTestExportService(time.Now())

	file, err := svc.ExportTeachers(context.Background(), export.FormatXLSX, models.TeacherFilter{})
	require.NoError(t, err)

	data, err := export.ReadXLSX(bytes.NewReader(file.Body))
	require.NoError(t, err)
	assert.Equal(t, teacherColumns, data.Headers)
	require.Len(t, data.Rows, 3)
	assert.Equal(t, "김수학", data.Rows[0]["이름"])
	assert.Equal(t, "퇴사", data.Rows[2]["상태"])
}

func TestExportServiceStudentsPDFNeedsFont(t *testing.T) {
	svc, _ := newTestExportService(time.Now())

	_, err := svc.ExportStudents(context.Background(), export.FormatPDF, models.StudentFilter{})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrPDFFontRequired)
	assert.Equal(t, http.StatusServiceUnavailable, appErrors.FromError(err).Status)
}

func TestExportServiceFilenameUsesClock(t *testing.T) {
	// 23:30 UTC on the 1st is already the 2nd in Seoul.
	svc, _ := newTestExportService(time.Date(2025, 3, 1, 23, 30, 0, 0, time.UTC))

	file, err := svc.ExportTeachers(context.Background(), export.FormatCSV, models.TeacherFilter{})
	require.NoError(t, err)
	assert.Equal(t, "teachers-20250302.csv", file.Filename)
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc, _ := newTestExportService(time.Now())
	_, err := svc.ExportStudents(context.Background(), export.Format("doc"), models.StudentFilter{})
	assert.Error(t, err)
}

func studentWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(studentColumns))
	for i, col := range studentColumns {
		header[i] = col
	}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestExportServiceImportStudents(t *testing.T) {
	now := time.Date(2025, 3, 2, 9, 0, 0, 0, seoul)
	svc, students := newTestExportService(now)

	workbook := studentWorkbook(t, [][]interface{}{
		{"최서연", "중2", "역삼중학교", "수학, 영어", "010-1000-2000", "010-3000-4000", "", "", "", "재학", "400,000", "완납", "김수학", "0", "0", ""},
		{"누락", "중2", "역삼중학교", "", "", "", "", "", "", "", "", "", "김수학", "", "", ""},
		{"오류", "중2", "역삼중학교", "", "", "010-1", "", "", "", "unknown", "", "", "김수학", "", "", ""},
	})

	result, err := svc.ImportStudents(context.Background(), workbook)
	require.NoError(t, err)
	require.Len(t, result.Created, 1)
	created := result.Created[0]
	assert.Equal(t, 4, created.ID)
	assert.Equal(t, []string{"수학", "영어"}, created.Subjects)
	assert.Equal(t, 400000, created.Tuition)
	assert.Equal(t, models.PaymentStatusPaid, created.PaymentStatus)
	assert.Equal(t, "2025-03-02", created.EnrollmentDate)

	require.Len(t, result.Failed, 2)
	assert.Equal(t, 3, result.Failed[0].Row)
	assert.Equal(t, 4, result.Failed[1].Row)
	assert.Equal(t, 4, students.Store().Len())
}

func TestExportServiceImportReportsSheetRowAfterBlankRow(t *testing.T) {
	svc, _ := newTestExportService(time.Date(2025, 3, 2, 9, 0, 0, 0, seoul))

	blank := make([]interface{}, len(studentColumns))
	for i := range blank {
		blank[i] = ""
	}
	workbook := studentWorkbook(t, [][]interface{}{
		{"최서연", "중2", "역삼중학교", "수학", "010-1000-2000", "010-3000-4000", "", "", "", "재학", "400,000", "완납", "김수학", "0", "0", ""},
		blank,
		{"", "중2", "역삼중학교", "수학", "010-1000-2000", "010-3000-4000", "", "", "", "재학", "400,000", "완납", "김수학", "0", "0", ""},
	})

	result, err := svc.ImportStudents(context.Background(), workbook)
	require.NoError(t, err)
	require.Len(t, result.Created, 1)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, 4, result.Failed[0].Row)
}

func TestExportServiceImportRejectsGarbage(t *testing.T) {
	svc, _ := newTestExportService(time.Now())
	_, err := svc.ImportStudents(context.Background(), strings.NewReader("not a workbook"))
	assert.Error(t, err)
}
