package accounts

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/servimart/servimart/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "accounts_test.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewService(NewGormRepository(db), NewBcryptHasher())
}

func register(t *testing.T, svc *Service, username, password string) *domain.User {
	t.Helper()
	u, err := svc.Register(context.Background(), &domain.User{
		Username: username,
		Password: password,
		Email:    username + "@example.com",
	})
	if err != nil {
		t.Fatalf("Register(%s): %v", username, err)
	}
	return u
}

func TestRegisterHashesPassword(t *testing.T) {
	svc := newTestService(t)
	u := register(t, svc, "alice", "secret123")

	if u.Password == "secret123" {
		t.Error("password stored in plaintext")
	}
	if u.Role != domain.RoleUser {
		t.Errorf("role = %s, want USER", u.Role)
	}
	if !u.Active || !u.Available {
		t.Error("new accounts start active and available")
	}
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	svc := newTestService(t)
	register(t, svc, "alice", "secret123")

	_, err := svc.Register(context.Background(), &domain.User{Username: "alice", Password: "other456"})
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestAuthenticateRoundTrip(t *testing.T) {
	svc := newTestService(t)
	register(t, svc, "alice", "secret123")

	u, err := svc.Authenticate(context.Background(), "alice", "secret123")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if u.Username != "alice" {
		t.Errorf("username = %s", u.Username)
	}
	if u.LastLogin.IsZero() {
		t.Error("last login should be recorded")
	}

	if _, err := svc.Authenticate(context.Background(), "alice", "wrong"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("wrong password: err = %v, want ErrInvalidArgument", err)
	}
	if _, err := svc.Authenticate(context.Background(), "nobody", "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown user: err = %v, want ErrNotFound", err)
	}
}

func TestAuthenticateRejectsDeactivated(t *testing.T) {
	svc := newTestService(t)
	u := register(t, svc, "alice", "secret123")

	if _, err := svc.SetActive(context.Background(), u.ID, false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	_, err := svc.Authenticate(context.Background(), "alice", "secret123")
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", err)
	}
}

func TestUpdatePasswordVerifiesCurrent(t *testing.T) {
	svc := newTestService(t)
	u := register(t, svc, "alice", "secret123")

	if _, err := svc.UpdatePassword(context.Background(), u.ID, "wrong", "newpass1"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("wrong current: err = %v, want ErrInvalidArgument", err)
	}

	if _, err := svc.UpdatePassword(context.Background(), u.ID, "secret123", "newpass1"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "alice", "newpass1"); err != nil {
		t.Errorf("login with new password: %v", err)
	}
}

func TestAdminResetPasswordSkipsCurrentCheck(t *testing.T) {
	svc := newTestService(t)
	u := register(t, svc, "alice", "secret123")

	if _, err := svc.AdminResetPassword(context.Background(), u.ID, "forced99"); err != nil {
		t.Fatalf("AdminResetPassword: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "alice", "forced99"); err != nil {
		t.Errorf("login with reset password: %v", err)
	}
}

func TestUpdateProfileAllowedFieldsOnly(t *testing.T) {
	svc := newTestService(t)
	u := register(t, svc, "alice", "secret123")

	updated, err := svc.UpdateProfile(context.Background(), u.ID, &domain.User{
		FullName:  "Alice Example",
		Phone:     "555-0100",
		Username:  "hacked",
		Role:      domain.RoleAdmin,
		Available: true,
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.FullName != "Alice Example" || updated.Phone != "555-0100" {
		t.Error("allowed fields not applied")
	}
	if updated.Username != "alice" || updated.Role != domain.RoleUser {
		t.Error("username and role must not change through profile update")
	}
}
