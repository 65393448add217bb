package models

import "strings"

// StudentStatus is the enrollment state of a student.
type StudentStatus string

const (
	StudentStatusActive    StudentStatus = "active"
	StudentStatusInactive  StudentStatus = "inactive"
	StudentStatusGraduated StudentStatus = "graduated"
)

// Label returns the Korean display label.
func (s StudentStatus) Label() string {
	switch s {
	case StudentStatusActive:
		return "재학"
	case StudentStatusInactive:
		return "휴학"
	case StudentStatusGraduated:
		return "졸업"
	default:
		return "알 수 없음"
	}
}

// PaymentStatus tracks tuition payment.
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusOverdue PaymentStatus = "overdue"
)

// Label returns the Korean display label.
func (p PaymentStatus) Label() string {
	switch p {
	case PaymentStatusPaid:
		return "완납"
	case PaymentStatusUnpaid:
		return "미납"
	case PaymentStatusOverdue:
		return "연체"
	default:
		return "알 수 없음"
	}
}

// Grades lists the selectable school years.
var Grades = []string{"초1", "초2", "초3", "초4", "초5", "초6", "중1", "중2", "중3", "고1", "고2", "고3"}

// StudentSubjects lists the courses a student can enroll in.
var StudentSubjects = []string{"수학", "영어", "국어", "사회", "과학", "한국사"}

// Student represents a learner enrolled at the academy.
type Student struct {
	ID             int           `json:"id"`
	Name           string        `json:"name"`
	Grade          string        `json:"grade"`
	School         string        `json:"school"`
	Subjects       []string      `json:"subjects"`
	Phone          string        `json:"phone"`
	ParentPhone    string        `json:"parent_phone"`
	Address        string        `json:"address"`
	BirthDate      string        `json:"birth_date"`
	EnrollmentDate string        `json:"enrollment_date"`
	Status         StudentStatus `json:"status"`
	Tuition        int           `json:"tuition"`
	PaymentStatus  PaymentStatus `json:"payment_status"`
	Teacher        string        `json:"teacher"`
	Attendance     int           `json:"attendance"`
	AverageScore   int           `json:"average_score"`
	Memo           string        `json:"memo"`
	CreatedAt      string        `json:"created_at"`
}

func (s Student) RecordID() int { return s.ID }

func (s Student) WithID(id int) Student {
	s.ID = id
	return s
}

func (s Student) Clone() Student {
	s.Subjects = cloneStrings(s.Subjects)
	return s
}

// Draft copies the form-editable fields of the student.
func (s Student) Draft() StudentDraft {
	return StudentDraft{
		Name:           s.Name,
		Grade:          s.Grade,
		School:         s.School,
		Subjects:       cloneStrings(s.Subjects),
		Phone:          s.Phone,
		ParentPhone:    s.ParentPhone,
		Address:        s.Address,
		BirthDate:      s.BirthDate,
		EnrollmentDate: s.EnrollmentDate,
		Status:         s.Status,
		Tuition:        s.Tuition,
		PaymentStatus:  s.PaymentStatus,
		Teacher:        s.Teacher,
		Attendance:     s.Attendance,
		AverageScore:   s.AverageScore,
		Memo:           s.Memo,
	}
}

// StudentDraft holds the fields editable through the student form.
type StudentDraft struct {
	Name           string        `json:"name" validate:"required"`
	Grade          string        `json:"grade" validate:"required,oneof=초1 초2 초3 초4 초5 초6 중1 중2 중3 고1 고2 고3"`
	School         string        `json:"school" validate:"required"`
	Subjects       []string      `json:"subjects" validate:"unique,dive,oneof=수학 영어 국어 사회 과학 한국사"`
	Phone          string        `json:"phone"`
	ParentPhone    string        `json:"parent_phone" validate:"required"`
	Address        string        `json:"address"`
	BirthDate      string        `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	EnrollmentDate string        `json:"enrollment_date" validate:"required,datetime=2006-01-02"`
	Status         StudentStatus `json:"status" validate:"required,oneof=active inactive graduated"`
	Tuition        int           `json:"tuition" validate:"gte=0"`
	PaymentStatus  PaymentStatus `json:"payment_status" validate:"required,oneof=paid unpaid overdue"`
	Teacher        string        `json:"teacher" validate:"required"`
	Attendance     int           `json:"attendance" validate:"gte=0,lte=100"`
	AverageScore   int           `json:"average_score" validate:"gte=0,lte=100"`
	Memo           string        `json:"memo"`
}

// Apply replaces the draft-tracked fields of s, keeping id and createdAt.
func (d StudentDraft) Apply(s Student) Student {
	s.Name = d.Name
	s.Grade = d.Grade
	s.School = d.School
	s.Subjects = cloneStrings(d.Subjects)
	s.Phone = d.Phone
	s.ParentPhone = d.ParentPhone
	s.Address = d.Address
	s.BirthDate = d.BirthDate
	s.EnrollmentDate = d.EnrollmentDate
	s.Status = d.Status
	s.Tuition = d.Tuition
	s.PaymentStatus = d.PaymentStatus
	s.Teacher = d.Teacher
	s.Attendance = d.Attendance
	s.AverageScore = d.AverageScore
	s.Memo = d.Memo
	return s
}

// StudentFilter narrows the student list.
type StudentFilter struct {
	Search        string
	Status        string
	PaymentStatus string
}

// Match reports whether s passes the filter. Search matches name, school or
// grade case-insensitively; "all" or empty status filters are ignored.
func (f StudentFilter) Match(s Student) bool {
	if !containsFold(f.Search, s.Name, s.School, s.Grade) {
		return false
	}
	if !isWildcard(f.Status) && string(s.Status) != f.Status {
		return false
	}
	if !isWildcard(f.PaymentStatus) && string(s.PaymentStatus) != f.PaymentStatus {
		return false
	}
	return true
}

// StudentStats summarises the student store.
type StudentStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
	Unpaid int `json:"unpaid"`
}

func containsFold(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func isWildcard(v string) bool {
	return v == "" || v == "all"
}
