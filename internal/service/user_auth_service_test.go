package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tavolo-next/internal/config"
	"github.com/tavolo-next/internal/constants"
	"github.com/tavolo-next/internal/models"
	"github.com/tavolo-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupUserAuthServiceTest(t *testing.T, name string) *UserAuthService {
	t.Helper()
	dsn := fmt.Sprintf("file:user_auth_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cfg := &config.Config{}
	cfg.UserJWT.SecretKey = "test-secret"
	cfg.UserJWT.ExpireHours = 1
	return NewUserAuthService(cfg, repository.NewUserRepository(db))
}

func TestRegisterAndLogin(t *testing.T) {
	svc := setupUserAuthServiceTest(t, "register_login")

	user, token, _, err := svc.Register("Mario@Example.com", "secret123", "")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.Email != "mario@example.com" {
		t.Fatalf("expected normalized email, got %s", user.Email)
	}
	if user.Role != constants.RoleCustomer {
		t.Fatalf("expected customer role, got %s", user.Role)
	}
	if user.Name != "mario" {
		t.Fatalf("expected name derived from email, got %s", user.Name)
	}
	if token == "" {
		t.Fatalf("expected token")
	}

	logged, token, _, err := svc.Login("mario@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if logged.ID != user.ID || token == "" {
		t.Fatalf("unexpected login result")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := setupUserAuthServiceTest(t, "dup_email")
	if _, _, _, err := svc.Register("a@b.com", "secret123", ""); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if _, _, _, err := svc.Register("a@b.com", "another123", ""); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got: %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := setupUserAuthServiceTest(t, "wrong_pwd")
	if _, _, _, err := svc.Register("a@b.com", "secret123", ""); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if _, _, _, err := svc.Login("a@b.com", "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
	}
	if _, _, _, err := svc.Login("missing@b.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got: %v", err)
	}
}

func TestJWTRoundTripCarriesRole(t *testing.T) {
	svc := setupUserAuthServiceTest(t, "jwt")
	user, token, _, err := svc.Register("a@b.com", "secret123", "Mario")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("ParseUserJWT error: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email || claims.Role != constants.RoleCustomer {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseUserJWTRejectsGarbage(t *testing.T) {
	svc := setupUserAuthServiceTest(t, "jwt_garbage")
	if _, err := svc.ParseUserJWT("not-a-token"); err == nil {
		t.Fatalf("expected parse error")
	}
}
