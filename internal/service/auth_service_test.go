package service

import (
	"errors"
	"testing"

	"go-itops-portal/internal/model"
	"go-itops-portal/internal/repository"
	"go-itops-portal/pkg/jwt"
)

func newAuthService(t *testing.T) (AuthService, UserService) {
	t.Helper()
	db := testDB(t)
	repo := repository.NewUserRepo(db)
	return NewAuthService(repo), NewUserService(repo)
}

func TestLogin(t *testing.T) {
	authSvc, userSvc := newAuthService(t)

	if _, err := userSvc.Create(&model.UserRequest{
		Username:    "jdoe",
		Password:    "secret123",
		Permissions: map[string]bool{model.ModuleAssets: true},
	}); err != nil {
		t.Fatalf("create user: %v", err)
	}

	resp, err := authSvc.Login("jdoe", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("no token returned")
	}
	if resp.Role != model.RoleUser {
		t.Errorf("role = %q, want %q", resp.Role, model.RoleUser)
	}
	if !resp.Permissions[model.ModuleAssets] {
		t.Error("permission map missing assets module")
	}

	claims, err := jwt.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("returned token does not validate: %v", err)
	}
	if claims.Username != "jdoe" {
		t.Errorf("token username = %q, want jdoe", claims.Username)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	authSvc, userSvc := newAuthService(t)

	if _, err := userSvc.Create(&model.UserRequest{Username: "jdoe", Password: "secret123"}); err != nil {
		t.Fatalf("create user: %v", err)
	}

	if _, err := authSvc.Login("jdoe", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := authSvc.Login("nobody", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestValidateTokenReflectsDeletedUser(t *testing.T) {
	authSvc, userSvc := newAuthService(t)

	created, err := userSvc.Create(&model.UserRequest{Username: "jdoe", Password: "secret123"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	resp, err := authSvc.Login("jdoe", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	validated, err := authSvc.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if validated.Username != "jdoe" {
		t.Errorf("validated username = %q, want jdoe", validated.Username)
	}

	if err := userSvc.Delete(created.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, err := authSvc.ValidateToken(resp.Token); err == nil {
		t.Fatal("token for a deleted account must not validate")
	}
}
