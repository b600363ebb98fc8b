package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rpupo63/artist-portfolio-backend/auth"
	"github.com/rpupo63/artist-portfolio-backend/database"
	"github.com/rpupo63/artist-portfolio-backend/errs"
)

func newAuthService(db database.Database) *AuthService {
	tokens := auth.NewTokenManager("test-secret", time.Hour, "test")
	return NewAuthService(db.AdminRepo(), tokens, bcrypt.MinCost)
}

func TestRegisterLoginAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(database.NewMemory())
	creds := Credentials{Email: "Admin@Example.com ", Password: "secret1"}
	creds.Normalize()

	session, err := svc.Register(ctx, creds)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if session.Token == "" || session.TokenType != "Bearer" || session.ExpiresIn != 3600 {
		t.Errorf("unexpected session: %+v", session)
	}
	if session.Admin.Email != "admin@example.com" {
		t.Errorf("email not normalized: %q", session.Admin.Email)
	}
	if session.Admin.PasswordHash == "secret1" {
		t.Errorf("password stored in clear")
	}

	login, err := svc.Login(ctx, creds)
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	admin, err := svc.Authenticate(ctx, login.Token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if admin.ID != session.Admin.ID {
		t.Errorf("token resolved to %s, want %s", admin.ID, session.Admin.ID)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(database.NewMemory())
	creds := Credentials{Email: "admin@example.com", Password: "secret1"}

	if _, err := svc.Register(ctx, creds); err != nil {
		t.Fatal(err)
	}
	_, err := svc.Register(ctx, creds)
	if errs.StatusCode(err) != http.StatusConflict || !errs.IsConflict(err) {
		t.Errorf("expected 409, got %v", err)
	}
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(database.NewMemory())
	svc.Register(ctx, Credentials{Email: "admin@example.com", Password: "secret1"})

	cases := map[string]Credentials{
		"unknown email":  {Email: "nobody@example.com", Password: "secret1"},
		"wrong password": {Email: "admin@example.com", Password: "secret2"},
	}
	for name, creds := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Login(ctx, creds)
			if errs.StatusCode(err) != http.StatusUnauthorized {
				t.Errorf("expected 401, got %v", err)
			}
		})
	}
}

func TestAuthenticateRejects(t *testing.T) {
	ctx := context.Background()
	db := database.NewMemory()
	svc := newAuthService(db)

	if _, err := svc.Authenticate(ctx, "garbage"); !errs.IsUnauthorized(err) {
		t.Errorf("garbage token: expected unauthorized, got %v", err)
	}

	other := auth.NewTokenManager("other-secret", time.Hour, "test")
	forged, _, _ := other.Issue("someone", "x@example.com")
	if _, err := svc.Authenticate(ctx, forged); !errs.IsUnauthorized(err) {
		t.Errorf("foreign signature: expected unauthorized, got %v", err)
	}

	// valid signature, admin never stored
	orphan, _, _ := auth.NewTokenManager("test-secret", time.Hour, "test").Issue("missing-admin", "x@example.com")
	if _, err := svc.Authenticate(ctx, orphan); !errs.IsUnauthorized(err) {
		t.Errorf("unknown admin: expected unauthorized, got %v", err)
	}
}
