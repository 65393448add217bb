package models

// TeacherStatus is the employment state of a teacher.
type TeacherStatus string

const (
	TeacherStatusActive   TeacherStatus = "active"
	TeacherStatusInactive TeacherStatus = "inactive"
	TeacherStatusLeave    TeacherStatus = "leave"
)

// Label returns the Korean display label.
func (s TeacherStatus) Label() string {
	switch s {
	case TeacherStatusActive:
		return "재직중"
	case TeacherStatusInactive:
		return "휴직중"
	case TeacherStatusLeave:
		return "퇴사"
	default:
		return "알 수 없음"
	}
}

// WeekDays are the selectable working days, Monday first.
var WeekDays = []string{"월", "화", "수", "목", "금", "토", "일"}

// TeacherSubjects lists the subjects a teacher can be responsible for.
var TeacherSubjects = []string{"수학", "영어", "국어", "사회", "과학", "한국사", "기타"}

// Teacher represents an instructor profile.
//
// Students is a stored head count. It is not derived from student records and
// is never changed by the teacher form.
type Teacher struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	Subject      string        `json:"subject"`
	Phone        string        `json:"phone"`
	Email        string        `json:"email"`
	HireDate     string        `json:"hire_date"`
	Experience   int           `json:"experience"`
	Education    string        `json:"education"`
	Introduction string        `json:"introduction"`
	ProfileImage string        `json:"profile_image,omitempty"`
	Status       TeacherStatus `json:"status"`
	Salary       int           `json:"salary"`
	WorkDays     []string      `json:"work_days"`
	WorkHours    string        `json:"work_hours"`
	Classes      []string      `json:"classes"`
	Students     int           `json:"students"`
	CreatedAt    string        `json:"created_at"`
}

func (t Teacher) RecordID() int { return t.ID }

func (t Teacher) WithID(id int) Teacher {
	t.ID = id
	return t
}

func (t Teacher) Clone() Teacher {
	t.WorkDays = cloneStrings(t.WorkDays)
	t.Classes = cloneStrings(t.Classes)
	return t
}

// Draft copies the form-editable fields of the teacher.
func (t Teacher) Draft() TeacherDraft {
	return TeacherDraft{
		Name:         t.Name,
		Subject:      t.Subject,
		Phone:        t.Phone,
		Email:        t.Email,
		HireDate:     t.HireDate,
		Experience:   t.Experience,
		Education:    t.Education,
		Introduction: t.Introduction,
		ProfileImage: t.ProfileImage,
		Status:       t.Status,
		Salary:       t.Salary,
		WorkDays:     cloneStrings(t.WorkDays),
		WorkHours:    t.WorkHours,
		Classes:      cloneStrings(t.Classes),
	}
}

// TeacherDraft holds the fields editable through the teacher form.
type TeacherDraft struct {
	Name         string        `json:"name" validate:"required"`
	Subject      string        `json:"subject" validate:"required,oneof=수학 영어 국어 사회 과학 한국사 기타"`
	Phone        string        `json:"phone" validate:"required"`
	Email        string        `json:"email" validate:"required,email"`
	HireDate     string        `json:"hire_date" validate:"required,datetime=2006-01-02"`
	Experience   int           `json:"experience" validate:"gte=0"`
	Education    string        `json:"education"`
	Introduction string        `json:"introduction"`
	ProfileImage string        `json:"profile_image" validate:"omitempty,url"`
	Status       TeacherStatus `json:"status" validate:"required,oneof=active inactive leave"`
	Salary       int           `json:"salary" validate:"gte=0"`
	WorkDays     []string      `json:"work_days" validate:"unique,dive,oneof=월 화 수 목 금 토 일"`
	WorkHours    string        `json:"work_hours"`
	Classes      []string      `json:"classes" validate:"unique,dive,required"`
}

// Apply replaces the draft-tracked fields of t. The stored student count,
// id and createdAt are preserved.
func (d TeacherDraft) Apply(t Teacher) Teacher {
	t.Name = d.Name
	t.Subject = d.Subject
	t.Phone = d.Phone
	t.Email = d.Email
	t.HireDate = d.HireDate
	t.Experience = d.Experience
	t.Education = d.Education
	t.Introduction = d.Introduction
	t.ProfileImage = d.ProfileImage
	t.Status = d.Status
	t.Salary = d.Salary
	t.WorkDays = cloneStrings(d.WorkDays)
	t.WorkHours = d.WorkHours
	t.Classes = cloneStrings(d.Classes)
	return t
}

// TeacherFilter narrows the teacher list.
type TeacherFilter struct {
	Search string
	Status string
}

// Match reports whether t passes the filter. Search matches name, subject or
// email case-insensitively.
func (f TeacherFilter) Match(t Teacher) bool {
	if !containsFold(f.Search, t.Name, t.Subject, t.Email) {
		return false
	}
	return isWildcard(f.Status) || string(t.Status) == f.Status
}

// TeacherStats summarises the teacher store.
type TeacherStats struct {
	Total         int `json:"total"`
	Active        int `json:"active"`
	TotalStudents int `json:"total_students"`
}
