package user

import (
	"fmt"

	"verdant/models"
	"verdant/utils"

	"go.uber.org/zap"
)

// GetUserByID fetches a user by ID.
func (s *DefaultUserService) GetUserByID(userID string) (*models.User, error) {
	usr, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return usr, nil
}

// GetUserByEmail fetches a user by email.
func (s *DefaultUserService) GetUserByEmail(email string) (*models.User, error) {
	usr, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if usr == nil {
		return nil, fmt.Errorf("user with email %s: %w", email, utils.ErrNotFound)
	}
	return usr, nil
}

// UpdateFCMToken stores the device push token used by reminder delivery.
func (s *DefaultUserService) UpdateFCMToken(userID, token string) error {
	usr, err := s.Repo.GetByID(userID)
	if err != nil {
		return fmt.Errorf("failed to fetch user: %w", err)
	}
	usr.FCMToken = token
	if err := s.Repo.Update(usr); err != nil {
		return fmt.Errorf("failed to store FCM token: %w", err)
	}
	return nil
}

// DeleteUser removes the account and revokes its session.
func (s *DefaultUserService) DeleteUser(userID string) error {
	logger := utils.GetLogger()
	if err := s.Repo.Delete(userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if err := s.RevokeAuthToken(userID); err != nil {
		logger.Warn("Failed to revoke token after delete", zap.String("userID", userID), zap.Error(err))
	}
	logger.Info("User deleted", zap.String("userID", userID))
	return nil
}
