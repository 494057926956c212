package service

import (
	"errors"
	"testing"

	"go-itops-portal/internal/model"
	"go-itops-portal/internal/repository"
)

func newUserService(t *testing.T) (UserService, repository.UserRepository) {
	t.Helper()
	db := testDB(t)
	repo := repository.NewUserRepo(db)
	return NewUserService(repo), repo
}

func TestUserCreate(t *testing.T) {
	svc, repo := newUserService(t)

	resp, err := svc.Create(&model.UserRequest{
		Username:    "jdoe",
		Password:    "secret123",
		Permissions: map[string]bool{model.ModuleAssets: true},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resp.Role != model.RoleUser {
		t.Errorf("role = %q, want default %q", resp.Role, model.RoleUser)
	}
	if !resp.Permissions[model.ModuleAssets] {
		t.Error("assets permission not kept")
	}

	stored, err := repo.FindByUsername("jdoe")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.Password == "secret123" {
		t.Error("password stored in plain text")
	}
	if !stored.CheckPassword("secret123") {
		t.Error("stored hash does not verify the password")
	}
}

func TestUserCreateValidation(t *testing.T) {
	svc, _ := newUserService(t)

	tests := []struct {
		name string
		req  *model.UserRequest
	}{
		{name: "missing username", req: &model.UserRequest{Password: "x"}},
		{name: "missing password", req: &model.UserRequest{Username: "jdoe"}},
		{name: "unknown role", req: &model.UserRequest{Username: "jdoe", Password: "x", Role: "Superuser"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(tt.req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestUserCreateDuplicateUsername(t *testing.T) {
	svc, _ := newUserService(t)

	if _, err := svc.Create(&model.UserRequest{Username: "jdoe", Password: "x"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(&model.UserRequest{Username: "jdoe", Password: "y"}); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUserUpdateKeepsPasswordWhenEmpty(t *testing.T) {
	svc, repo := newUserService(t)

	created, err := svc.Create(&model.UserRequest{Username: "jdoe", Password: "secret123"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(created.ID, &model.UserRequest{Role: model.RoleAdministrator}); err != nil {
		t.Fatalf("update: %v", err)
	}

	stored, err := repo.FindByID(created.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.Role != model.RoleAdministrator {
		t.Errorf("role = %q, want Administrator", stored.Role)
	}
	if !stored.CheckPassword("secret123") {
		t.Error("empty password on update must leave the hash unchanged")
	}
}

func TestUserUpdateReplacesPermissions(t *testing.T) {
	svc, _ := newUserService(t)

	created, err := svc.Create(&model.UserRequest{
		Username:    "jdoe",
		Password:    "x",
		Permissions: map[string]bool{model.ModuleAssets: true, model.ModuleStock: true},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(created.ID, &model.UserRequest{
		Permissions: map[string]bool{model.ModuleDeliveries: true},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Permissions[model.ModuleAssets] || !updated.Permissions[model.ModuleDeliveries] {
		t.Errorf("permissions = %v, want only deliveries", updated.Permissions)
	}
}

func TestUserDeleteProtectsAdmin(t *testing.T) {
	svc, _ := newUserService(t)

	admin, err := svc.Create(&model.UserRequest{Username: "admin", Password: "admin", Role: model.RoleAdministrator})
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	if err := svc.Delete(admin.ID); !errors.Is(err, ErrProtectedAccount) {
		t.Fatalf("expected ErrProtectedAccount, got %v", err)
	}

	regular, err := svc.Create(&model.UserRequest{Username: "jdoe", Password: "x"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := svc.Delete(regular.ID); err != nil {
		t.Fatalf("delete regular user: %v", err)
	}
}

func TestAdministratorBypassesModuleChecks(t *testing.T) {
	user := &model.User{Role: model.RoleAdministrator}
	for _, m := range model.AllModules {
		if !user.HasModule(m) {
			t.Errorf("administrator should hold module %q", m)
		}
	}

	regular := &model.User{Role: model.RoleUser}
	if regular.HasModule(model.ModuleAssets) {
		t.Error("user without permissions should not hold the assets module")
	}
}
