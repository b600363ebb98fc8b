package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/artist-portfolio-backend/auth"
	"github.com/rpupo63/artist-portfolio-backend/database"
	"github.com/rpupo63/artist-portfolio-backend/errs"
	"github.com/rpupo63/artist-portfolio-backend/metrics"
	"github.com/rpupo63/artist-portfolio-backend/models"
)

// Credentials is the payload of register and login.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (c *Credentials) Normalize() {
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
}

// Session is returned by register and login.
type Session struct {
	Token     string        `json:"token"`
	TokenType string        `json:"tokenType"`
	ExpiresIn int64         `json:"expiresIn"`
	ExpiresAt time.Time     `json:"expiresAt"`
	Admin     *models.Admin `json:"admin"`
}

type AuthService struct {
	admins     database.AdminRepository
	tokens     *auth.TokenManager
	bcryptCost int
	logger     zerolog.Logger
	now        func() time.Time
}

func NewAuthService(admins database.AdminRepository, tokens *auth.TokenManager, bcryptCost int) *AuthService {
	return &AuthService{
		admins:     admins,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     log.With().Str("service", "authService").Logger(),
		now:        time.Now,
	}
}

var errInvalidCredentials = errs.NewUnauthorizedError("invalid email or password")

func (s *AuthService) Register(ctx context.Context, creds Credentials) (*Session, error) {
	existing, err := s.admins.FindByEmail(ctx, creds.Email)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "admin", err)
	}
	if existing != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", metrics.OutcomeFailure).Inc()
		return nil, errs.NewAlreadyExists("admin")
	}

	hash, err := auth.HashPassword(creds.Password, s.bcryptCost)
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("could not hash password", err)
	}

	now := s.now()
	admin := &models.Admin{
		Email:        creds.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// the unique index still catches a concurrent register of the same email
	if err := s.admins.Create(ctx, admin); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", metrics.OutcomeFailure).Inc()
		return nil, errs.NewDatabaseError("create", "admin", err)
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", metrics.OutcomeSuccess).Inc()
	s.logger.Info().Str("adminID", admin.ID).Msg("admin registered")
	return s.session(admin)
}

func (s *AuthService) Login(ctx context.Context, creds Credentials) (*Session, error) {
	admin, err := s.admins.FindByEmail(ctx, creds.Email)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "admin", err)
	}
	if admin == nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", metrics.OutcomeFailure).Inc()
		return nil, errInvalidCredentials
	}

	ok, err := auth.CheckPassword(admin.PasswordHash, creds.Password)
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("could not verify password", err)
	}
	if !ok {
		metrics.AuthAttemptsTotal.WithLabelValues("login", metrics.OutcomeFailure).Inc()
		return nil, errInvalidCredentials
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", metrics.OutcomeSuccess).Inc()
	return s.session(admin)
}

func (s *AuthService) session(admin *models.Admin) (*Session, error) {
	token, expiresAt, err := s.tokens.Issue(admin.ID, admin.Email)
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("could not issue token", err)
	}
	return &Session{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(s.tokens.TTL().Seconds()),
		ExpiresAt: expiresAt,
		Admin:     admin,
	}, nil
}

// Authenticate resolves a bearer token to a still existing admin.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.Admin, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		reason := "invalid"
		if errors.Is(err, auth.ErrExpiredToken) {
			reason = "expired"
		}
		metrics.TokenRejectionsTotal.WithLabelValues(reason).Inc()
		return nil, errs.NewUnauthorizedError("invalid or expired token")
	}

	admin, err := s.admins.FindByID(ctx, claims.AdminID())
	if err != nil {
		return nil, errs.NewDatabaseError("find", "admin", err)
	}
	if admin == nil {
		metrics.TokenRejectionsTotal.WithLabelValues("unknown_admin").Inc()
		return nil, errs.NewUnauthorizedError("admin no longer exists")
	}
	return admin, nil
}
