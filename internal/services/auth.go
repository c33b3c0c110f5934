package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	authrepos "github.com/igrejaviva/media-backend/internal/data/repos/auth"
	types "github.com/igrejaviva/media-backend/internal/domain"
	"github.com/igrejaviva/media-backend/internal/pkg/dbctx"
	"github.com/igrejaviva/media-backend/internal/platform/apierr"
	"github.com/igrejaviva/media-backend/internal/platform/logger"
)

type AuthConfig struct {
	JWTSecret         string
	AccessTokenTTL    time.Duration
	RefreshTokenTTL   time.Duration
	AllowRegistration bool
}

type LoginResult struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	ExpiresAt    time.Time    `json:"expiresAt"`
	Admin        *types.Admin `json:"admin"`
}

type AuthService interface {
	Register(dbc dbctx.Context, username, password string) (*types.Admin, error)
	Login(dbc dbctx.Context, username, password string) (*LoginResult, error)
	// ValidateAccessToken checks signature and expiry and returns the
	// admin id the token was issued for.
	ValidateAccessToken(tokenString string) (uuid.UUID, error)
}

type authService struct {
	log    *logger.Logger
	cfg    AuthConfig
	admins authrepos.AdminRepo
	tokens authrepos.AdminTokenRepo
}

func NewAuthService(log *logger.Logger, cfg AuthConfig, admins authrepos.AdminRepo, tokens authrepos.AdminTokenRepo) (AuthService, error) {
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, fmt.Errorf("JWT secret is empty")
	}
	if cfg.AccessTokenTTL <= 0 {
		cfg.AccessTokenTTL = time.Hour
	}
	if cfg.RefreshTokenTTL <= 0 {
		cfg.RefreshTokenTTL = 30 * 24 * time.Hour
	}
	return &authService{
		log:    log.With("service", "AuthService"),
		cfg:    cfg,
		admins: admins,
		tokens: tokens,
	}, nil
}

func (s *authService) Register(dbc dbctx.Context, username, password string) (*types.Admin, error) {
	if !s.cfg.AllowRegistration {
		return nil, apierr.Forbidden("registration is disabled")
	}
	username = strings.TrimSpace(username)
	if username == "" || len(password) < 8 {
		return nil, apierr.Validation("username and a password of at least 8 characters are required")
	}
	existing, err := s.admins.GetByUsername(dbc, username)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if existing != nil {
		return nil, apierr.Validation("username %q is taken", username)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	created, err := s.admins.Create(dbc, &types.Admin{
		Username:     username,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, apierr.Internal(err)
	}
	s.log.Info("Admin registered", "admin_id", created.ID)
	return created, nil
}

func (s *authService) Login(dbc dbctx.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apierr.Validation("username and password are required")
	}
	admin, err := s.admins.GetByUsername(dbc, username)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if admin == nil {
		return nil, apierr.Unauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, apierr.Unauthorized("invalid credentials")
	}

	expiresAt := time.Now().UTC().Add(s.cfg.AccessTokenTTL)
	access, err := s.signToken(admin.ID, expiresAt)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	refresh, err := s.signToken(admin.ID, time.Now().UTC().Add(s.cfg.RefreshTokenTTL))
	if err != nil {
		return nil, apierr.Internal(err)
	}

	// One session per admin: older rows are dropped on login.
	if _, err := s.tokens.DeleteByAdminID(dbc, admin.ID); err != nil {
		return nil, apierr.Internal(err)
	}
	if _, err := s.tokens.Create(dbc, &types.AdminToken{
		AdminID:      admin.ID,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
	}); err != nil {
		return nil, apierr.Internal(err)
	}

	s.log.Info("Admin logged in", "admin_id", admin.ID)
	return &LoginResult{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
		Admin:        admin,
	}, nil
}

func (s *authService) ValidateAccessToken(tokenString string) (uuid.UUID, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return uuid.Nil, apierr.Unauthorized("missing token")
	}
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, apierr.Unauthorized("invalid or expired token")
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, apierr.Unauthorized("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	adminID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, apierr.Unauthorized("invalid token subject")
	}
	return adminID, nil
}

func (s *authService) signToken(adminID uuid.UUID, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": adminID.String(),
		"iat": time.Now().UTC().Unix(),
		"exp": expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
