package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/academy-admin-api/internal/models"
	appErrors "github.com/noah-isme/academy-admin-api/pkg/errors"
	"github.com/noah-isme/academy-admin-api/pkg/export"
)

// Student sheet columns, shared by export and import.
const (
	colStudentName       = "이름"
	colStudentGrade      = "학년"
	colStudentSchool     = "학교"
	colStudentSubjects   = "수강과목"
	colStudentPhone      = "연락처"
	colStudentParent     = "학부모 연락처"
	colStudentAddress    = "주소"
	colStudentBirth      = "생년월일"
	colStudentEnrolled   = "등록일"
	colStudentStatus     = "상태"
	colStudentTuition    = "수강료"
	colStudentPayment    = "결제상태"
	colStudentTeacher    = "담당강사"
	colStudentAttendance = "출석률"
	colStudentScore      = "평균점수"
	colStudentMemo       = "메모"
)

var studentColumns = []string{
	colStudentName, colStudentGrade, colStudentSchool, colStudentSubjects, colStudentPhone,
	colStudentParent, colStudentAddress, colStudentBirth, colStudentEnrolled, colStudentStatus,
	colStudentTuition, colStudentPayment, colStudentTeacher, colStudentAttendance, colStudentScore,
	colStudentMemo,
}

var teacherColumns = []string{
	"이름", "담당과목", "연락처", "이메일", "입사일", "경력", "학력", "상태", "급여", "근무요일", "근무시간", "담당수업", "담당학생수",
}

type studentRecords interface {
	List(ctx context.Context, filter models.StudentFilter) []models.Student
	Create(ctx context.Context, draft models.StudentDraft) (models.Student, error)
	Now() time.Time
	Location() *time.Location
}

type teacherRecords interface {
	List(ctx context.Context, filter models.TeacherFilter) []models.Teacher
}

type datasetRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ImportFailure describes a spreadsheet row that could not be imported.
type ImportFailure struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult summarises a student import.
type ImportResult struct {
	Created []models.Student `json:"created"`
	Failed  []ImportFailure  `json:"failed"`
}

// ExportService renders record lists as CSV, XLSX or PDF and imports students
// from XLSX workbooks.
type ExportService struct {
	students  studentRecords
	teachers  teacherRecords
	renderers map[export.Format]datasetRenderer
	logger    *zap.Logger
}

// NewExportService constructs an ExportService. fontPath is handed to the PDF
// renderer and may be empty.
func NewExportService(students studentRecords, teachers teacherRecords, fontPath string, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		students: students,
		teachers: teachers,
		renderers: map[export.Format]datasetRenderer{
			export.FormatCSV:  export.NewCSVExporter(),
			export.FormatXLSX: export.NewXLSXExporter(),
			export.FormatPDF:  export.NewPDFExporter(fontPath),
		},
		logger: logger,
	}
}

// ExportStudents renders the filtered student list.
func (s *ExportService) ExportStudents(ctx context.Context, format export.Format, filter models.StudentFilter) (*ExportFile, error) {
	students := s.students.List(ctx, filter)
	data := export.Dataset{Title: "학생 목록", Headers: studentColumns}
	for _, st := range students {
		data.Rows = append(data.Rows, map[string]string{
			colStudentName:       st.Name,
			colStudentGrade:      st.Grade,
			colStudentSchool:     st.School,
			colStudentSubjects:   strings.Join(st.Subjects, ", "),
			colStudentPhone:      st.Phone,
			colStudentParent:     st.ParentPhone,
			colStudentAddress:    st.Address,
			colStudentBirth:      st.BirthDate,
			colStudentEnrolled:   st.EnrollmentDate,
			colStudentStatus:     st.Status.Label(),
			colStudentTuition:    strconv.Itoa(st.Tuition),
			colStudentPayment:    st.PaymentStatus.Label(),
			colStudentTeacher:    st.Teacher,
			colStudentAttendance: strconv.Itoa(st.Attendance),
			colStudentScore:      strconv.Itoa(st.AverageScore),
			colStudentMemo:       st.Memo,
		})
	}
	return s.render(format, "students", data)
}

// ExportTeachers renders the filtered teacher list.
func (s *ExportService) ExportTeachers(ctx context.Context, format export.Format, filter models.TeacherFilter) (*ExportFile, error) {
	teachers := s.teachers.List(ctx, filter)
	data := export.Dataset{Title: "선생님 목록", Headers: teacherColumns}
	for _, t := range teachers {
		values := []string{
			t.Name, t.Subject, t.Phone, t.Email, t.HireDate, strconv.Itoa(t.Experience), t.Education,
			t.Status.Label(), strconv.Itoa(t.Salary), strings.Join(t.WorkDays, ", "), t.WorkHours,
			strings.Join(t.Classes, ", "), strconv.Itoa(t.Students),
		}
		row := make(map[string]string, len(teacherColumns))
		for i, header := range teacherColumns {
			row[header] = values[i]
		}
		data.Rows = append(data.Rows, row)
	}
	return s.render(format, "teachers", data)
}

// ImportStudents creates one student per data row of the first sheet. Rows
// failing validation are reported and skipped.
func (s *ExportService) ImportStudents(ctx context.Context, r io.Reader) (*ImportResult, error) {
	data, err := export.ReadXLSX(r)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student workbook")
	}

	today := models.FormatDate(s.students.Now(), s.students.Location())
	result := &ImportResult{Created: []models.Student{}, Failed: []ImportFailure{}}
	for i, row := range data.Rows {
		line := data.RowNumber(i)
		draft, err := studentDraftFromRow(row, today)
		if err == nil {
			var created models.Student
			created, err = s.students.Create(ctx, draft)
			if err == nil {
				result.Created = append(result.Created, created)
				continue
			}
		}
		result.Failed = append(result.Failed, ImportFailure{Row: line, Message: err.Error()})
	}

	s.logger.Info("student import finished", zap.Int("created", len(result.Created)), zap.Int("failed", len(result.Failed)))
	return result, nil
}

func (s *ExportService) render(format export.Format, name string, data export.Dataset) (*ExportFile, error) {
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	body, err := renderer.Render(data)
	if errors.Is(err, export.ErrFontRequired) {
		s.logger.Warn("pdf export refused", zap.String("export", name), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrPDFFontRequired.Code, appErrors.ErrPDFFontRequired.Status, appErrors.ErrPDFFontRequired.Message)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	day := models.FormatDate(s.students.Now(), s.students.Location())
	return &ExportFile{
		Filename:    fmt.Sprintf("%s-%s.%s", name, strings.ReplaceAll(day, "-", ""), format),
		ContentType: format.ContentType(),
		Body:        body,
	}, nil
}

func studentDraftFromRow(row map[string]string, today string) (models.StudentDraft, error) {
	get := func(key string) string { return strings.TrimSpace(row[key]) }

	draft := models.StudentDraft{
		Name:           get(colStudentName),
		Grade:          get(colStudentGrade),
		School:         get(colStudentSchool),
		Subjects:       splitList(get(colStudentSubjects)),
		Phone:          get(colStudentPhone),
		ParentPhone:    get(colStudentParent),
		Address:        get(colStudentAddress),
		BirthDate:      get(colStudentBirth),
		EnrollmentDate: get(colStudentEnrolled),
		Teacher:        get(colStudentTeacher),
		Memo:           get(colStudentMemo),
		Status:         models.StudentStatusActive,
		PaymentStatus:  models.PaymentStatusUnpaid,
	}
	if draft.EnrollmentDate == "" {
		draft.EnrollmentDate = today
	}
	if raw := get(colStudentStatus); raw != "" {
		status, ok := parseStudentStatus(raw)
		if !ok {
			return draft, fmt.Errorf("unknown status %q", raw)
		}
		draft.Status = status
	}
	if raw := get(colStudentPayment); raw != "" {
		payment, ok := parsePaymentStatus(raw)
		if !ok {
			return draft, fmt.Errorf("unknown payment status %q", raw)
		}
		draft.PaymentStatus = payment
	}

	var err error
	if draft.Tuition, err = parseCount(get(colStudentTuition)); err != nil {
		return draft, fmt.Errorf("%s: %w", colStudentTuition, err)
	}
	if draft.Attendance, err = parseCount(get(colStudentAttendance)); err != nil {
		return draft, fmt.Errorf("%s: %w", colStudentAttendance, err)
	}
	if draft.AverageScore, err = parseCount(get(colStudentScore)); err != nil {
		return draft, fmt.Errorf("%s: %w", colStudentScore, err)
	}
	return draft, nil
}

func parseStudentStatus(raw string) (models.StudentStatus, bool) {
	for _, status := range []models.StudentStatus{models.StudentStatusActive, models.StudentStatusInactive, models.StudentStatusGraduated} {
		if raw == string(status) || raw == status.Label() {
			return status, true
		}
	}
	return "", false
}

func parsePaymentStatus(raw string) (models.PaymentStatus, bool) {
	for _, status := range []models.PaymentStatus{models.PaymentStatusPaid, models.PaymentStatusUnpaid, models.PaymentStatusOverdue} {
		if raw == string(status) || raw == status.Label() {
			return status, true
		}
	}
	return "", false
}

func parseCount(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(strings.ReplaceAll(raw, ",", ""))
}

func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
