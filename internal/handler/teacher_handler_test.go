package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academy-admin-api/internal/form"
	"github.com/noah-isme/academy-admin-api/internal/models"
)

func TestTeacherHandlerList(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/teachers?status=leave", nil, "s1")
	requireStatus(t, w, http.StatusOK)
	res := decode[[]models.Teacher](t, w)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "이국어", res.Data[0].Name)

	w = env.do(http.MethodGet, "/teachers/stats", nil, "s1")
	requireStatus(t, w, http.StatusOK)
	stats := decode[models.TeacherStats](t, w).Data
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Active)
}

func TestTeacherHandlerFormTogglesWorkDays(t *testing.T) {
	env := newTestEnv(t)

	requireStatus(t, env.do(http.MethodPost, "/teachers/1/form", nil, "s1"), http.StatusCreated)

	w := env.do(http.MethodPost, "/teachers/form/toggle", ToggleOptionRequest{Field: "work_days", Value: "월"}, "s1")
	requireStatus(t, w, http.StatusOK)
	assert.Equal(t, []string{"화", "수", "목", "금"}, decode[form.Form[models.TeacherDraft]](t, w).Data.Draft.WorkDays)

	w = env.do(http.MethodPost, "/teachers/form/toggle", ToggleOptionRequest{Field: "subjects", Value: "수학"}, "s1")
	requireStatus(t, w, http.StatusBadRequest)

	w = env.do(http.MethodPost, "/teachers/form/submit", nil, "s1")
	requireStatus(t, w, http.StatusOK)
	saved := decode[models.Teacher](t, w).Data
	assert.Equal(t, []string{"화", "수", "목", "금"}, saved.WorkDays)
	assert.Equal(t, 45, saved.Students)
}

func TestTeacherHandlerToggleWithoutForm(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/teachers/form/toggle", ToggleOptionRequest{Field: "classes", Value: "중1 수학"}, "s1")
	requireStatus(t, w, http.StatusConflict)

	w = env.do(http.MethodPost, "/teachers/form/toggle", map[string]string{"field": "classes"}, "s1")
	requireStatus(t, w, http.StatusBadRequest)
}

func TestTeacherHandlerExportXLSX(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/teachers/export?format=xlsx", nil, "s1")
	requireStatus(t, w, http.StatusOK)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.Equal(t, "PK", w.Body.String()[:2])
}
