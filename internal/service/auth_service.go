package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/academy-admin-api/internal/models"
	appErrors "github.com/noah-isme/academy-admin-api/pkg/errors"
)

// AdminLandingPath is where a successful login sends the administrator.
const AdminLandingPath = "/admin"

type sessionRepository interface {
	Save(ctx context.Context, session models.Session) error
	Find(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type loginRecorder interface {
	RecordLogin(success bool)
	RecordLogout()
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	AdminID     string
	Password    string
	TokenSecret string
	TokenExpiry time.Duration
	Issuer      string
}

// AuthService gates the admin area behind the single configured credential.
type AuthService struct {
	sessions     sessionRepository
	validator    *validator.Validate
	logger       *zap.Logger
	metrics      loginRecorder
	config       AuthConfig
	passwordHash []byte
	now          func() time.Time
}

// NewAuthService constructs an AuthService. The configured password is hashed
// once so it never has to be compared in plain text.
func NewAuthService(sessions sessionRepository, validate *validator.Validate, logger *zap.Logger, metrics loginRecorder, config AuthConfig) (*AuthService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.AdminID == "" || config.Password == "" {
		return nil, errors.New("admin credential is not configured")
	}
	if config.TokenSecret == "" {
		return nil, errors.New("token secret is not configured")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(config.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	config.Password = ""
	return &AuthService{
		sessions:     sessions,
		validator:    validate,
		logger:       logger,
		metrics:      metrics,
		config:       config,
		passwordHash: hash,
		now:          time.Now,
	}, nil
}

// Login checks the credential pair and opens a session. Any mismatch yields
// the same static message and leaves no session behind.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		s.recordLogin(false)
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	idMatch := subtle.ConstantTimeCompare([]byte(req.ID), []byte(s.config.AdminID)) == 1
	passwordErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password))
	if !idMatch || passwordErr != nil {
		s.recordLogin(false)
		s.logger.Warn("admin login rejected", zap.String("ip", req.IP))
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	issuedAt := s.now().UTC()
	session := models.Session{
		ID:        uuid.NewString(),
		AdminID:   s.config.AdminID,
		IP:        req.IP,
		UserAgent: req.UserAgent,
		CreatedAt: issuedAt,
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open session")
	}

	token, err := s.generateToken(session, issuedAt)
	if err != nil {
		if _, delErr := s.sessions.Delete(ctx, session.ID); delErr != nil {
			s.logger.Warn("failed to roll back session", zap.Error(delErr))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session token")
	}

	s.recordLogin(true)
	s.logger.Info("admin logged in", zap.String("session_id", session.ID), zap.String("ip", req.IP))

	return &models.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.config.TokenExpiry.Seconds()),
		Redirect:    AdminLandingPath,
		IssuedAt:    issuedAt,
	}, nil
}

// Authorize validates the token and requires its session flag to be set.
func (s *AuthService) Authorize(ctx context.Context, token string) (*models.SessionClaims, error) {
	claims, err := s.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	if _, err := s.sessions.Find(ctx, claims.SessionID()); err != nil {
		if errors.Is(err, appErrors.ErrSessionMissing) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session has ended")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	return claims, nil
}

// Logout clears the session flag. Missing, malformed or already cleared
// tokens are accepted silently.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.parse(token, true)
	if err != nil {
		return nil
	}
	removed, err := s.sessions.Delete(ctx, claims.SessionID())
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to close session")
	}
	if removed {
		if s.metrics != nil {
			s.metrics.RecordLogout()
		}
		s.logger.Info("admin logged out", zap.String("session_id", claims.SessionID()))
	}
	return nil
}

// Status reports whether token belongs to a live session.
func (s *AuthService) Status(ctx context.Context, token string) models.SessionStatus {
	if token == "" {
		return models.SessionStatus{}
	}
	claims, err := s.Authorize(ctx, token)
	if err != nil {
		return models.SessionStatus{}
	}
	return models.SessionStatus{Authenticated: true, AdminID: claims.AdminID}
}

// ValidateToken parses and validates a session token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.SessionClaims, error) {
	return s.parse(tokenString, false)
}

func (s *AuthService) parse(tokenString string, allowExpired bool) (*models.SessionClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.TokenSecret), nil
	}, opts...)
	if err != nil && !(allowExpired && errors.Is(err, jwt.ErrTokenExpired)) {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	if token == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || claims.SessionID() == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

func (s *AuthService) generateToken(session models.Session, issuedAt time.Time) (string, error) {
	claims := &models.SessionClaims{
		AdminID: session.AdminID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Issuer:    s.config.Issuer,
			Subject:   session.AdminID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}
	if s.config.TokenExpiry > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(issuedAt.Add(s.config.TokenExpiry))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.TokenSecret))
}

func (s *AuthService) recordLogin(success bool) {
	if s.metrics != nil {
		s.metrics.RecordLogin(success)
	}
}
