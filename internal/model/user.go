package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// Roles
const (
	RoleAdministrator = "Administrator"
	RoleUser          = "User"
)

// Module names used as keys in the per-user permission map.
const (
	ModuleAssets         = "assets"
	ModuleStock          = "stock"
	ModuleITExpenses     = "it_expenses"
	ModuleDeliveries     = "deliveries"
	ModuleOffboarding    = "offboarding"
	ModuleNewHire        = "new_hire"
	ModuleUserManagement = "user_management"
)

// AllModules lists every known module, used when seeding the admin account.
var AllModules = []string{
	ModuleAssets,
	ModuleStock,
	ModuleITExpenses,
	ModuleDeliveries,
	ModuleOffboarding,
	ModuleNewHire,
	ModuleUserManagement,
}

// User is a portal login. Permissions is a boolean map keyed by module name;
// Administrators implicitly hold every module.
type User struct {
	BaseModel
	Username    string                              `gorm:"type:varchar(100);uniqueIndex;not null" json:"username" validate:"required"`
	Password    string                              `gorm:"type:varchar(255);not null" json:"-"`
	Role        string                              `gorm:"type:varchar(20);not null;default:'User'" json:"role" validate:"required,oneof=Administrator User"`
	Permissions datatypes.JSONType[map[string]bool] `json:"permissions"`
}

func (User) TableName() string {
	return "users"
}

// SetPassword hashes and sets the user's password.
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies the provided password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// PermissionMap returns the permission map, never nil.
func (u *User) PermissionMap() map[string]bool {
	m := u.Permissions.Data()
	if m == nil {
		return map[string]bool{}
	}
	return m
}

// HasModule reports whether the user may access the named module.
// Administrators hold every module.
func (u *User) HasModule(module string) bool {
	if u.Role == RoleAdministrator {
		return true
	}
	return u.PermissionMap()[module]
}

// UserResponse is the API shape for a user, without the password hash.
type UserResponse struct {
	ID          uuid.UUID       `json:"id"`
	Username    string          `json:"username"`
	Role        string          `json:"role"`
	Permissions map[string]bool `json:"permissions"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToResponse converts User to UserResponse.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Role:        u.Role,
		Permissions: u.PermissionMap(),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// UserRequest is the create/update payload. Password is optional on update;
// empty means unchanged.
type UserRequest struct {
	Username    string          `json:"username"`
	Password    string          `json:"password"`
	Role        string          `json:"role"`
	Permissions map[string]bool `json:"permissions"`
}
