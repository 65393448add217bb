package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academy-admin-api/internal/fixtures"
	"github.com/noah-isme/academy-admin-api/internal/models"
	appErrors "github.com/noah-isme/academy-admin-api/pkg/errors"
)

func newSeededTeacherService(now time.Time) *TeacherService {
	return NewTeacherService(fixtures.NewStores(true).Teachers, testParams(now))
}

func TestTeacherServiceListFilter(t *testing.T) {
	svc := newSeededTeacherService(time.Now())
	ctx := context.Background()

	byEmail := svc.List(ctx, models.TeacherFilter{Search: "PARK.english"})
	require.Len(t, byEmail, 1)
	assert.Equal(t, "박영어", byEmail[0].Name)

	bySubject := svc.List(ctx, models.TeacherFilter{Search: "국어"})
	require.Len(t, bySubject, 1)
	assert.Equal(t, "이국어", bySubject[0].Name)

	assert.Len(t, svc.List(ctx, models.TeacherFilter{Status: "active"}), 2)
	assert.Len(t, svc.List(ctx, models.TeacherFilter{Status: "all"}), 3)
}

func TestTeacherServiceStats(t *testing.T) {
	svc := newSeededTeacherService(time.Now())
	assert.Equal(t, models.TeacherStats{Total: 3, Active: 2, TotalStudents: 83}, svc.Stats(context.Background()))
}

func TestTeacherFormEditPreservesStudentCount(t *testing.T) {
	svc := newSeededTeacherService(time.Now())
	ctx := context.Background()

	_, err := svc.OpenEdit("s", 1)
	require.NoError(t, err)
	_, err = svc.ToggleOption("s", "work_days", "토")
	require.NoError(t, err)
	_, err = svc.ToggleOption("s", "classes", "고3 수학")
	require.NoError(t, err)

	updated, err := svc.Submit(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, 45, updated.Students)
	assert.Equal(t, []string{"월", "화", "수", "목", "금", "토"}, updated.WorkDays)
	assert.Equal(t, []string{"중3 수학", "고1 수학", "고2 수학", "고3 수학"}, updated.Classes)
	assert.Equal(t, "2023-03-01", updated.CreatedAt)
}

func TestTeacherFormCreateZeroesStudents(t *testing.T) {
	now := time.Date(2025, 2, 1, 12, 0, 0, 0, seoul)
	svc := newSeededTeacherService(now)

	opened := svc.OpenCreate("s")
	assert.Equal(t, "2025-02-01", opened.Draft.HireDate)
	assert.Equal(t, models.TeacherStatusActive, opened.Draft.Status)

	_, err := svc.EditDraft("s", models.TeacherDraft{
		Name:     "정과학",
		Subject:  "과학",
		Phone:    "010-5555-6666",
		Email:    "jung.science@academy.com",
		HireDate: "2025-02-01",
		Status:   models.TeacherStatusActive,
		WorkDays: []string{"월"},
		Classes:  []string{},
	})
	require.NoError(t, err)

	created, err := svc.Submit(context.Background(), "s")
	require.NoError(t, err)
	assert.Equal(t, 4, created.ID)
	assert.Zero(t, created.Students)
	assert.Equal(t, "2025-02-01", created.CreatedAt)
}

func TestTeacherServiceRejectsInvalidEmail(t *testing.T) {
	svc := newSeededTeacherService(time.Now())
	_, err := svc.Create(context.Background(), models.TeacherDraft{
		Name:     "정과학",
		Subject:  "과학",
		Phone:    "010-5555-6666",
		Email:    "not-an-email",
		HireDate: "2025-02-01",
		Status:   models.TeacherStatusActive,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTeacherServiceRejectsDuplicateSchedule(t *testing.T) {
	svc := newSeededTeacherService(time.Now())
	base := models.TeacherDraft{
		Name:     "정과학",
		Subject:  "과학",
		Phone:    "010-5555-6666",
		Email:    "science@academy.com",
		HireDate: "2025-02-01",
		Status:   models.TeacherStatusActive,
		WorkDays: []string{"월", "수"},
		Classes:  []string{"중2 과학A"},
	}

	days := base
	days.WorkDays = []string{"월", "월"}
	_, err := svc.Create(context.Background(), days)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	classes := base
	classes.Classes = []string{"중2 과학A", "중2 과학A"}
	_, err = svc.Create(context.Background(), classes)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Create(context.Background(), base)
	require.NoError(t, err)
}
