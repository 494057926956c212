package service

import (
	"errors"

	"go-itops-portal/internal/model"
	"go-itops-portal/internal/repository"
	"go-itops-portal/pkg/jwt"

	"go.uber.org/zap"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// LoginResponse carries the signed token plus everything the client needs to
// gate its navigation without another round trip.
type LoginResponse struct {
	Token       string             `json:"token"`
	User        model.UserResponse `json:"user"`
	Role        string             `json:"role"`
	Permissions map[string]bool    `json:"permissions"`
}

type AuthService interface {
	Login(username, password string) (*LoginResponse, error)
	ValidateToken(tokenString string) (*model.UserResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Login(username, password string) (*LoginResponse, error) {
	if username == "" || password == "" {
		return nil, validationErrf("username and password are required")
	}

	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if notFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, user.Username, user.Role, user.PermissionMap())
	if err != nil {
		return nil, err
	}

	zap.L().Info("user logged in", zap.String("username", user.Username), zap.String("role", user.Role))

	return &LoginResponse{
		Token:       token,
		User:        user.ToResponse(),
		Role:        user.Role,
		Permissions: user.PermissionMap(),
	}, nil
}

// ValidateToken checks the signature and expiry, then re-reads the user so a
// deleted account or revoked permission takes effect immediately.
func (s *authService) ValidateToken(tokenString string) (*model.UserResponse, error) {
	claims, err := jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		if notFound(err) {
			return nil, jwt.ErrInvalidToken
		}
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}
