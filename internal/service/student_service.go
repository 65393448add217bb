package service

import (
	"context"
	"time"

	"github.com/noah-isme/academy-admin-api/internal/models"
	"github.com/noah-isme/academy-admin-api/internal/store"
)

// StudentSchema maps students to their form draft.
func StudentSchema() Schema[models.Student, models.StudentDraft] {
	return Schema[models.Student, models.StudentDraft]{
		Resource: "student",
		Defaults: func(today time.Time) models.StudentDraft {
			return models.StudentDraft{
				Subjects:       []string{},
				EnrollmentDate: today.Format(models.DateLayout),
				Status:         models.StudentStatusActive,
				PaymentStatus:  models.PaymentStatusUnpaid,
			}
		},
		Draft: models.Student.Draft,
		Apply: func(rec models.Student, draft models.StudentDraft) models.Student {
			return draft.Apply(rec)
		},
		Build: func(draft models.StudentDraft, createdAt string) models.Student {
			return draft.Apply(models.Student{CreatedAt: createdAt})
		},
		Toggles: map[string]func(*models.StudentDraft) *[]string{
			"subjects": func(d *models.StudentDraft) *[]string { return &d.Subjects },
		},
	}
}

// StudentService manages student records.
type StudentService struct {
	*RecordManager[models.Student, models.StudentDraft]
}

// NewStudentService constructs a StudentService over st.
func NewStudentService(st *store.Store[models.Student], params RecordManagerParams) *StudentService {
	return &StudentService{RecordManager: NewRecordManager(st, StudentSchema(), params)}
}

// List returns students accepted by filter, newest first.
func (s *StudentService) List(_ context.Context, filter models.StudentFilter) []models.Student {
	return s.store.List(filter.Match)
}

// Stats counts all, active and unpaid students.
func (s *StudentService) Stats(_ context.Context) models.StudentStats {
	return models.StudentStats{
		Total: s.store.Len(),
		Active: s.store.Count(func(st models.Student) bool {
			return st.Status == models.StudentStatusActive
		}),
		Unpaid: s.store.Count(func(st models.Student) bool {
			return st.PaymentStatus == models.PaymentStatusUnpaid
		}),
	}
}
