package service

import (
	"errors"

	"go-itops-portal/internal/model"
	"go-itops-portal/internal/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var (
	ErrUsernameTaken    = errors.New("username already exists")
	ErrProtectedAccount = errors.New("the built-in admin account cannot be deleted")
)

type UserService interface {
	GetAll() ([]model.UserResponse, error)
	GetByID(id uuid.UUID) (*model.UserResponse, error)
	Create(req *model.UserRequest) (*model.UserResponse, error)
	Update(id uuid.UUID, req *model.UserRequest) (*model.UserResponse, error)
	Delete(id uuid.UUID) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetAll() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}
	responses := make([]model.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, nil
}

func (s *userService) GetByID(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) Create(req *model.UserRequest) (*model.UserResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, validationErrf("username and password are required")
	}
	if req.Role == "" {
		req.Role = model.RoleUser
	}
	if req.Role != model.RoleAdministrator && req.Role != model.RoleUser {
		return nil, validationErrf("unknown role %q", req.Role)
	}

	if existing, err := s.userRepo.FindByUsername(req.Username); err == nil && existing != nil {
		return nil, ErrUsernameTaken
	} else if err != nil && !notFound(err) {
		return nil, err
	}

	permissions := req.Permissions
	if permissions == nil {
		permissions = map[string]bool{}
	}
	user := &model.User{
		Username:    req.Username,
		Role:        req.Role,
		Permissions: datatypes.NewJSONType(permissions),
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) Update(id uuid.UUID, req *model.UserRequest) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Username != "" && req.Username != user.Username {
		if existing, err := s.userRepo.FindByUsername(req.Username); err == nil && existing != nil {
			return nil, ErrUsernameTaken
		} else if err != nil && !notFound(err) {
			return nil, err
		}
		user.Username = req.Username
	}
	if req.Role != "" {
		if req.Role != model.RoleAdministrator && req.Role != model.RoleUser {
			return nil, validationErrf("unknown role %q", req.Role)
		}
		user.Role = req.Role
	}
	if req.Permissions != nil {
		user.Permissions = datatypes.NewJSONType(req.Permissions)
	}
	if req.Password != "" {
		if err := user.SetPassword(req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) Delete(id uuid.UUID) error {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if notFound(err) {
			return ErrNotFound
		}
		return err
	}
	if user.Username == "admin" {
		return ErrProtectedAccount
	}

	changes, err := s.userRepo.Delete(id)
	if err != nil {
		return err
	}
	if changes == 0 {
		return ErrNotFound
	}
	return nil
}
