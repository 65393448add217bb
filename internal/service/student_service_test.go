package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academy-admin-api/internal/fixtures"
	"github.com/noah-isme/academy-admin-api/internal/form"
	"github.com/noah-isme/academy-admin-api/internal/models"
	"github.com/noah-isme/academy-admin-api/internal/store"
	appErrors "github.com/noah-isme/academy-admin-api/pkg/errors"
)

func newSeededStudentService(now time.Time) *StudentService {
	return NewStudentService(fixtures.NewStores(true).Students, testParams(now))
}

func validStudentDraft() models.StudentDraft {
	return models.StudentDraft{
		Name:           "최서연",
		Grade:          "중2",
		School:         "역삼중학교",
		Subjects:       []string{"수학"},
		ParentPhone:    "010-9999-0000",
		EnrollmentDate: "2025-03-02",
		Status:         models.StudentStatusActive,
		PaymentStatus:  models.PaymentStatusUnpaid,
		Teacher:        "김수학",
		Tuition:        400000,
	}
}

func studentNames(students []models.Student) []string {
	names := make([]string, len(students))
	for i, s := range students {
		names[i] = s.Name
	}
	return names
}

func TestStudentServiceListSearch(t *testing.T) {
	st := store.New[models.Student]()
	st.Seed(
		models.Student{ID: 1, Name: "김민수", School: "서울중학교", Grade: "중3", Status: models.StudentStatusActive},
		models.Student{ID: 2, Name: "박지영", School: "강남고등학교", Grade: "고2", Status: models.StudentStatusActive},
	)
	svc := NewStudentService(st, testParams(time.Now()))
	ctx := context.Background()

	assert.Equal(t, []string{"김민수"}, studentNames(svc.List(ctx, models.StudentFilter{Search: "민"})))
	assert.Equal(t, []string{"김민수", "박지영"}, studentNames(svc.List(ctx, models.StudentFilter{})))
	assert.Equal(t, []string{"김민수", "박지영"}, studentNames(svc.List(ctx, models.StudentFilter{Status: "all"})))
	assert.Empty(t, svc.List(ctx, models.StudentFilter{Status: string(models.StudentStatusGraduated)}))
	assert.Equal(t, []string{"박지영"}, studentNames(svc.List(ctx, models.StudentFilter{Search: "강남"})))
}

func TestStudentServiceListStatusFilter(t *testing.T) {
	svc := newSeededStudentService(time.Now())
	ctx := context.Background()

	graduated := svc.List(ctx, models.StudentFilter{Status: "graduated"})
	require.Len(t, graduated, 1)
	assert.Equal(t, "이준호", graduated[0].Name)

	unpaid := svc.List(ctx, models.StudentFilter{PaymentStatus: "unpaid"})
	assert.Equal(t, []string{"박지영"}, studentNames(unpaid))
}

func TestStudentServiceCreate(t *testing.T) {
	now := time.Date(2025, 3, 2, 23, 30, 0, 0, time.UTC)
	mutations := &fakeMutations{}
	params := testParams(now)
	params.Metrics = mutations
	svc := NewStudentService(fixtures.NewStores(true).Students, params)
	ctx := context.Background()
	before := svc.List(ctx, models.StudentFilter{})

	created, err := svc.Create(ctx, validStudentDraft())
	require.NoError(t, err)

	after := svc.List(ctx, models.StudentFilter{})
	assert.Len(t, after, len(before)+1)
	assert.Equal(t, created.ID, after[0].ID)
	for _, prior := range before {
		assert.Greater(t, created.ID, prior.ID)
	}
	// 23:30 UTC is already the next day in Seoul.
	assert.Equal(t, "2025-03-03", created.CreatedAt)
	assert.Equal(t, []recordedMutation{{resource: "student", operation: OperationCreate}}, mutations.calls)
}

func TestStudentServiceCreateOnEmptyStore(t *testing.T) {
	svc := NewStudentService(store.New[models.Student](), testParams(time.Now()))

	created, err := svc.Create(context.Background(), validStudentDraft())
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
}

func TestStudentServiceCreateValidation(t *testing.T) {
	svc := newSeededStudentService(time.Now())
	draft := validStudentDraft()
	draft.ParentPhone = ""

	_, err := svc.Create(context.Background(), draft)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Equal(t, 3, svc.Store().Len())
}

func TestStudentServiceRejectsDuplicateSubjects(t *testing.T) {
	svc := newSeededStudentService(time.Now())
	draft := validStudentDraft()
	draft.Subjects = []string{"수학", "수학"}

	_, err := svc.Create(context.Background(), draft)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Equal(t, 3, svc.Store().Len())
}

func TestStudentServiceUpdate(t *testing.T) {
	svc := newSeededStudentService(time.Now())
	ctx := context.Background()
	others := svc.List(ctx, models.StudentFilter{})

	original, err := svc.Get(ctx, 2)
	require.NoError(t, err)
	draft := original.Draft()
	draft.PaymentStatus = models.PaymentStatusPaid
	draft.Memo = "수정됨"

	updated, err := svc.Update(ctx, 2, draft)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.ID)
	assert.Equal(t, original.CreatedAt, updated.CreatedAt)
	assert.Equal(t, models.PaymentStatusPaid, updated.PaymentStatus)
	assert.Equal(t, "수정됨", updated.Memo)

	for _, before := range others {
		if before.ID == 2 {
			continue
		}
		after, err := svc.Get(ctx, before.ID)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	}
}

func TestStudentServiceUpdateMissing(t *testing.T) {
	svc := newSeededStudentService(time.Now())

	_, err := svc.Update(context.Background(), 42, validStudentDraft())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Equal(t, 3, svc.Store().Len())
}

func TestStudentServiceDelete(t *testing.T) {
	svc := newSeededStudentService(time.Now())
	ctx := context.Background()

	err := svc.Delete(ctx, 2, false)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConfirmationRequired.Code, appErrors.FromError(err).Code)
	assert.Equal(t, 3, svc.Store().Len())

	require.NoError(t, svc.Delete(ctx, 2, true))
	_, err = svc.Get(ctx, 2)
	assert.Error(t, err)
	assert.Equal(t, 2, svc.Store().Len())

	require.NoError(t, svc.Delete(ctx, 42, true))
	assert.Equal(t, 2, svc.Store().Len())

	created, err := svc.Create(ctx, validStudentDraft())
	require.NoError(t, err)
	assert.Equal(t, 4, created.ID)
}

func TestStudentServiceStats(t *testing.T) {
	svc := newSeededStudentService(time.Now())
	assert.Equal(t, models.StudentStats{Total: 3, Active: 2, Unpaid: 1}, svc.Stats(context.Background()))
}

func TestStudentFormCreateFlow(t *testing.T) {
	now := time.Date(2025, 3, 2, 10, 0, 0, 0, seoul)
	svc := newSeededStudentService(now)
	ctx := context.Background()

	opened := svc.OpenCreate("session-1")
	assert.Equal(t, form.ModeCreating, opened.Mode)
	assert.Equal(t, "2025-03-02", opened.Draft.EnrollmentDate)
	assert.Equal(t, models.StudentStatusActive, opened.Draft.Status)
	assert.Equal(t, models.PaymentStatusUnpaid, opened.Draft.PaymentStatus)
	assert.Empty(t, opened.Draft.Subjects)

	assert.False(t, svc.Form("session-2").Open())

	draft := validStudentDraft()
	draft.Subjects = []string{}
	_, err := svc.EditDraft("session-1", draft)
	require.NoError(t, err)

	_, err = svc.ToggleOption("session-1", "subjects", "영어")
	require.NoError(t, err)
	_, err = svc.ToggleOption("session-1", "subjects", "국어")
	require.NoError(t, err)
	f, err := svc.ToggleOption("session-1", "subjects", "영어")
	require.NoError(t, err)
	assert.Equal(t, []string{"국어"}, f.Draft.Subjects)

	created, err := svc.Submit(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, 4, created.ID)
	assert.Equal(t, []string{"국어"}, created.Subjects)
	assert.False(t, svc.Form("session-1").Open())
}

func TestStudentFormEditFlow(t *testing.T) {
	svc := newSeededStudentService(time.Now())
	ctx := context.Background()

	opened, err := svc.OpenEdit("session-1", 1)
	require.NoError(t, err)
	assert.Equal(t, form.ModeEditing, opened.Mode)
	assert.Equal(t, 1, opened.TargetID)
	assert.Equal(t, "김민수", opened.Draft.Name)

	_, err = svc.ToggleOption("session-1", "subjects", "수학")
	require.NoError(t, err)

	updated, err := svc.Submit(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, 1, updated.ID)
	assert.Equal(t, []string{"영어"}, updated.Subjects)
	assert.Equal(t, "2024-03-01", updated.CreatedAt)
	assert.Equal(t, 3, svc.Store().Len())
}

func TestStudentFormSubmitInvalidKeepsFormOpen(t *testing.T) {
	svc := newSeededStudentService(time.Now())

	svc.OpenCreate("session-1")
	_, err := svc.Submit(context.Background(), "session-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.True(t, svc.Form("session-1").Open())
	assert.Equal(t, 3, svc.Store().Len())
}

func TestStudentFormConcurrentSubmitCreatesOnce(t *testing.T) {
	svc := newSeededStudentService(time.Now())
	svc.OpenCreate("session-1")
	_, err := svc.EditDraft("session-1", validStudentDraft())
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Submit(context.Background(), "session-1"); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 4, svc.Store().Len())
	assert.False(t, svc.Form("session-1").Open())
}

func TestStudentFormClosedErrors(t *testing.T) {
	svc := newSeededStudentService(time.Now())

	_, err := svc.Submit(context.Background(), "nobody")
	assert.Equal(t, appErrors.ErrFormClosed.Code, appErrors.FromError(err).Code)

	_, err = svc.ToggleOption("nobody", "subjects", "수학")
	assert.Equal(t, appErrors.ErrFormClosed.Code, appErrors.FromError(err).Code)

	_, err = svc.ToggleOption("nobody", "unknown", "x")
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.OpenEdit("nobody", 42)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestStudentFormCancel(t *testing.T) {
	svc := newSeededStudentService(time.Now())

	svc.OpenCreate("session-1")
	svc.Cancel("session-1")

	assert.False(t, svc.Form("session-1").Open())
	assert.Equal(t, 3, svc.Store().Len())
}
