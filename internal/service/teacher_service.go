package service

import (
	"context"
	"time"

	"github.com/noah-isme/academy-admin-api/internal/models"
	"github.com/noah-isme/academy-admin-api/internal/store"
)

// TeacherSchema maps teachers to their form draft. New teachers start with
// no assigned students.
func TeacherSchema() Schema[models.Teacher, models.TeacherDraft] {
	return Schema[models.Teacher, models.TeacherDraft]{
		Resource: "teacher",
		Defaults: func(today time.Time) models.TeacherDraft {
			return models.TeacherDraft{
				HireDate: today.Format(models.DateLayout),
				Status:   models.TeacherStatusActive,
				WorkDays: []string{},
				Classes:  []string{},
			}
		},
		Draft: models.Teacher.Draft,
		Apply: func(rec models.Teacher, draft models.TeacherDraft) models.Teacher {
			return draft.Apply(rec)
		},
		Build: func(draft models.TeacherDraft, createdAt string) models.Teacher {
			return draft.Apply(models.Teacher{Students: 0, CreatedAt: createdAt})
		},
		Toggles: map[string]func(*models.TeacherDraft) *[]string{
			"work_days": func(d *models.TeacherDraft) *[]string { return &d.WorkDays },
			"classes":   func(d *models.TeacherDraft) *[]string { return &d.Classes },
		},
	}
}

// TeacherService manages teacher profiles.
type TeacherService struct {
	*RecordManager[models.Teacher, models.TeacherDraft]
}

// NewTeacherService constructs a TeacherService over st.
func NewTeacherService(st *store.Store[models.Teacher], params RecordManagerParams) *TeacherService {
	return &TeacherService{RecordManager: NewRecordManager(st, TeacherSchema(), params)}
}

// List returns teachers accepted by filter, newest first.
func (s *TeacherService) List(_ context.Context, filter models.TeacherFilter) []models.Teacher {
	return s.store.List(filter.Match)
}

// Stats counts teachers and sums their stored student counts.
func (s *TeacherService) Stats(_ context.Context) models.TeacherStats {
	stats := models.TeacherStats{}
	for _, t := range s.store.List(nil) {
		stats.Total++
		if t.Status == models.TeacherStatusActive {
			stats.Active++
		}
		stats.TotalStudents += t.Students
	}
	return stats
}
