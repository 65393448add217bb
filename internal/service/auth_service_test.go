package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/academy-admin-api/internal/models"
	"github.com/noah-isme/academy-admin-api/internal/repository"
	appErrors "github.com/noah-isme/academy-admin-api/pkg/errors"
)

type fakeLoginRecorder struct {
	success, failure, logout int
}

func (f *fakeLoginRecorder) RecordLogin(success bool) {
	if success {
		f.success++
		return
	}
	f.failure++
}

func (f *fakeLoginRecorder) RecordLogout() { f.logout++ }

type failingSessions struct {
	err error
}

func (f failingSessions) Save(context.Context, models.Session) error { return f.err }
func (f failingSessions) Find(context.Context, string) (*models.Session, error) {
	return nil, f.err
}
func (f failingSessions) Delete(context.Context, string) (bool, error) { return false, f.err }

func newTestAuthService(t *testing.T) (*AuthService, *repository.MemorySessionRepository, *fakeLoginRecorder) {
	t.Helper()
	sessions := repository.NewMemorySessionRepository(0)
	recorder := &fakeLoginRecorder{}
	svc, err := NewAuthService(sessions, validator.New(), zap.NewNop(), recorder, AuthConfig{
		AdminID:     "test",
		Password:    "test",
		TokenSecret: "secret",
		Issuer:      "academy-admin",
	})
	require.NoError(t, err)
	return svc, sessions, recorder
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	svc, _, recorder := newTestAuthService(t)
	ctx := context.Background()

	res, err := svc.Login(ctx, models.LoginRequest{ID: "test", Password: "test"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "Bearer", res.TokenType)
	assert.Equal(t, AdminLandingPath, res.Redirect)
	assert.Equal(t, 1, recorder.success)

	claims, err := svc.Authorize(ctx, res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "test", claims.AdminID)
	assert.NotEmpty(t, claims.SessionID())

	status := svc.Status(ctx, res.AccessToken)
	assert.True(t, status.Authenticated)
	assert.Equal(t, "test", status.AdminID)
}

func TestAuthServiceLoginRejectsWrongCredentials(t *testing.T) {
	cases := []models.LoginRequest{
		{ID: "test", Password: "wrong"},
		{ID: "admin", Password: "test"},
		{ID: "", Password: ""},
		{ID: "TEST", Password: "test"},
	}
	for _, req := range cases {
		svc, sessions, recorder := newTestAuthService(t)

		res, err := svc.Login(context.Background(), req)
		require.Error(t, err)
		assert.Nil(t, res)
		appErr := appErrors.FromError(err)
		assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
		assert.Equal(t, "아이디 또는 비밀번호가 올바르지 않습니다.", appErr.Message)
		assert.Equal(t, 1, recorder.failure)
		assert.Empty(t, sessions.Snapshot())
	}
}

func TestAuthServiceLogoutClearsSession(t *testing.T) {
	svc, _, recorder := newTestAuthService(t)
	ctx := context.Background()

	res, err := svc.Login(ctx, models.LoginRequest{ID: "test", Password: "test"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, res.AccessToken))
	assert.Equal(t, 1, recorder.logout)

	_, err = svc.Authorize(ctx, res.AccessToken)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
	assert.False(t, svc.Status(ctx, res.AccessToken).Authenticated)

	require.NoError(t, svc.Logout(ctx, res.AccessToken))
	require.NoError(t, svc.Logout(ctx, ""))
	require.NoError(t, svc.Logout(ctx, "garbage"))
	assert.Equal(t, 1, recorder.logout)
}

func TestAuthServiceAuthorizeRejectsForeignTokens(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Authorize(ctx, "not-a-token")
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.SessionClaims{
		AdminID:          "test",
		RegisteredClaims: jwt.RegisteredClaims{ID: "s1", Issuer: "academy-admin"},
	})
	signed, err := forged.SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = svc.Authorize(ctx, signed)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)

	valid := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.SessionClaims{
		AdminID:          "test",
		RegisteredClaims: jwt.RegisteredClaims{ID: "never-opened", Issuer: "academy-admin"},
	})
	signed, err = valid.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = svc.Authorize(ctx, signed)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceTokenExpiry(t *testing.T) {
	sessions := repository.NewMemorySessionRepository(0)
	svc, err := NewAuthService(sessions, nil, nil, nil, AuthConfig{
		AdminID: "test", Password: "test", TokenSecret: "secret", TokenExpiry: time.Minute,
	})
	require.NoError(t, err)
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }
	ctx := context.Background()

	res, err := svc.Login(ctx, models.LoginRequest{ID: "test", Password: "test"})
	require.NoError(t, err)
	assert.Equal(t, int64(60), res.ExpiresIn)

	_, err = svc.Authorize(ctx, res.AccessToken)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)

	require.NoError(t, svc.Logout(ctx, res.AccessToken))
	assert.Empty(t, sessions.Snapshot())
}

func TestAuthServiceSessionStoreFailure(t *testing.T) {
	svc, err := NewAuthService(failingSessions{err: errors.New("redis down")}, nil, nil, nil, AuthConfig{
		AdminID: "test", Password: "test", TokenSecret: "secret",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), models.LoginRequest{ID: "test", Password: "test"})
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestNewAuthServiceRequiresCredential(t *testing.T) {
	_, err := NewAuthService(repository.NewMemorySessionRepository(0), nil, nil, nil, AuthConfig{TokenSecret: "secret"})
	assert.Error(t, err)
}
