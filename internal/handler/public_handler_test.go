package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academy-admin-api/internal/models"
)

func TestPublicHandlerPopupsShowsActiveOnly(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/public/popups", nil, "")
	requireStatus(t, w, http.StatusOK)
	res := decode[[]models.PopupView](t, w)
	require.Len(t, res.Data, 1)
	assert.Equal(t, 1, res.Data[0].ID)
}

func TestPublicHandlerNotices(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/public/notices", nil, "")
	requireStatus(t, w, http.StatusOK)
	assert.Len(t, decode[[]models.Notice](t, w).Data, 2)

	w = env.do(http.MethodGet, "/public/notices/2", nil, "")
	requireStatus(t, w, http.StatusOK)
	assert.Equal(t, 90, decode[models.Notice](t, w).Data.Views)

	requireStatus(t, env.do(http.MethodGet, "/public/notices/3", nil, ""), http.StatusNotFound)
	requireStatus(t, env.do(http.MethodGet, "/public/notices/x", nil, ""), http.StatusBadRequest)
}

func TestPublicHandlerLandingAndRedirect(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/", nil, "")
	requireStatus(t, w, http.StatusOK)
	assert.Equal(t, "/api/v1/auth/login", decode[map[string]string](t, w).Data["login"])

	w = env.do(http.MethodGet, "/no/such/page", nil, "")
	requireStatus(t, w, http.StatusFound)
	assert.Equal(t, "/", w.Header().Get("Location"))
}
