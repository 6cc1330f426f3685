package user

import (
	userRepo "verdant/database/repository/user"
	"verdant/models"
)

// UserService defines account management operations.
type UserService interface {
	Register(req models.UserRegistrationRequest) (*models.AuthResponse, error)
	Authenticate(email, password string) (*models.AuthResponse, error)
	GetUserByID(userID string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateFCMToken(userID, token string) error
	DeleteUser(userID string) error
	RevokeAuthToken(userID string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}
