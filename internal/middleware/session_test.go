package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academy-admin-api/internal/models"
	appErrors "github.com/noah-isme/academy-admin-api/pkg/errors"
	"github.com/noah-isme/academy-admin-api/pkg/logger"
)

type fakeAuthorizer struct {
	tokens map[string]*models.SessionClaims
}

func (f fakeAuthorizer) Authorize(_ context.Context, token string) (*models.SessionClaims, error) {
	claims, ok := f.tokens[token]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session has ended")
	}
	return claims, nil
}

func guardedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth := fakeAuthorizer{tokens: map[string]*models.SessionClaims{
		"good": {AdminID: "test", RegisteredClaims: jwt.RegisteredClaims{ID: "s-1"}},
	}}
	router := gin.New()
	router.Use(SessionGuard(auth))
	router.GET("/secret", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"session": SessionID(c),
			"logged":  c.GetString(logger.SessionKey),
		})
	})
	return router
}

func TestSessionGuardAdmitsLiveSession(t *testing.T) {
	router := guardedRouter()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.Header.Set("Authorization", "Bearer good")

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "s-1", body["session"])
	assert.Equal(t, "s-1", body["logged"])
}

func TestSessionGuardRedirectsToLogin(t *testing.T) {
	router := guardedRouter()
	for _, header := range []string{"", "Bearer", "Basic good", "Bearer stale"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/secret", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
		var body struct {
			Error *appErrors.Error       `json:"error"`
			Meta  map[string]interface{} `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, appErrors.ErrUnauthorized.Code, body.Error.Code)
		assert.Equal(t, LoginRedirect, body.Meta["redirect"])
	}
}

func TestBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, BearerToken(c))

	c.Request.Header.Set("Authorization", "bearer abc ")
	assert.Equal(t, "abc", BearerToken(c))
	assert.Empty(t, SessionID(c))
}
