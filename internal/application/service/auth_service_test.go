package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kmuteti/restopos-api/internal/domain/entity"
	"github.com/kmuteti/restopos-api/pkg/apperror"
	"github.com/kmuteti/restopos-api/pkg/utils"
)

func newAuthTestEnv(t *testing.T) (*AuthService, *fakeStaffRepo) {
	t.Helper()
	staffRepo := newFakeStaffRepo()
	manager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(staffRepo, manager), staffRepo
}

func seedStaff(t *testing.T, repo *fakeStaffRepo, username, password, role string) *entity.Staff {
	t.Helper()
	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	staff := &entity.Staff{
		Name:     "Test Staff",
		Username: username,
		Password: hash,
		Role:     role,
		Active:   true,
	}
	if err := repo.Create(context.Background(), staff); err != nil {
		t.Fatalf("seed staff failed: %v", err)
	}
	return staff
}

func TestLogin(t *testing.T) {
	svc, repo := newAuthTestEnv(t)
	seedStaff(t, repo, "amara", "correct-horse", entity.RoleCashier)

	out, err := svc.Login(context.Background(), &LoginInput{Username: "amara", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if out.AccessToken == "" || out.RefreshToken == "" {
		t.Error("expected a token pair")
	}
	if out.Staff.Username != "amara" {
		t.Errorf("staff username = %q, want amara", out.Staff.Username)
	}

	if _, err := svc.Login(context.Background(), &LoginInput{Username: "amara", Password: "wrong"}); !errors.Is(err, apperror.ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(context.Background(), &LoginInput{Username: "nobody", Password: "whatever"}); !errors.Is(err, apperror.ErrInvalidCredentials) {
		t.Errorf("unknown user err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginInactiveStaff(t *testing.T) {
	svc, repo := newAuthTestEnv(t)
	staff := seedStaff(t, repo, "amara", "correct-horse", entity.RoleCashier)
	staff.Active = false
	_ = repo.Update(context.Background(), staff)

	_, err := svc.Login(context.Background(), &LoginInput{Username: "amara", Password: "correct-horse"})
	if !errors.Is(err, apperror.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRefreshToken(t *testing.T) {
	svc, repo := newAuthTestEnv(t)
	seedStaff(t, repo, "amara", "correct-horse", entity.RoleCashier)

	out, err := svc.Login(context.Background(), &LoginInput{Username: "amara", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	access, err := svc.RefreshToken(context.Background(), out.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if access == "" {
		t.Error("expected a new access token")
	}

	if _, err := svc.RefreshToken(context.Background(), "garbage"); !errors.Is(err, apperror.ErrInvalidToken) {
		t.Errorf("garbage token err = %v, want ErrInvalidToken", err)
	}
}

func TestRegisterStaff(t *testing.T) {
	svc, _ := newAuthTestEnv(t)

	staff, err := svc.RegisterStaff(context.Background(), &RegisterStaffInput{
		Name:     "Joseph Kim",
		Username: "jkim",
		Password: "long-enough-pass",
		Role:     entity.RoleKitchen,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if staff.Role != entity.RoleKitchen {
		t.Errorf("role = %q, want kitchen", staff.Role)
	}
	if staff.Password == "long-enough-pass" {
		t.Error("password must be stored hashed")
	}

	// duplicate username
	if _, err := svc.RegisterStaff(context.Background(), &RegisterStaffInput{
		Name: "Other", Username: "jkim", Password: "another-pass",
	}); err == nil {
		t.Error("expected duplicate username conflict")
	}

	// unknown role
	if _, err := svc.RegisterStaff(context.Background(), &RegisterStaffInput{
		Name: "Eve", Username: "eve", Password: "pass-word-1", Role: "admin",
	}); err == nil {
		t.Error("expected unknown role to be rejected")
	}

	// empty role defaults to cashier
	defaulted, err := svc.RegisterStaff(context.Background(), &RegisterStaffInput{
		Name: "Default", Username: "default", Password: "pass-word-1",
	})
	if err != nil {
		t.Fatalf("register with default role failed: %v", err)
	}
	if defaulted.Role != entity.RoleCashier {
		t.Errorf("default role = %q, want cashier", defaulted.Role)
	}
}
