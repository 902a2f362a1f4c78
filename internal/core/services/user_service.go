package services

import (
	"context"
	"log"

	"bandmate/internal/adapters/persistence/models"
	"bandmate/internal/adapters/persistence/repositories"
	"bandmate/internal/core/domain"
)

// UserService handles user administration
type UserService struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, refreshTokenRepo repositories.RefreshTokenRepository) *UserService {
	return &UserService{userRepo: userRepo, refreshTokenRepo: refreshTokenRepo}
}

func validGlobalRole(role string) bool {
	switch role {
	case models.RoleAdmin, models.RoleManager, models.RoleMember:
		return true
	}
	return false
}

// List lists users with pagination
func (s *UserService) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	return s.userRepo.List(ctx, offset, limit)
}

// GetByID gets a user by ID
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ChangeRole sets a user's global role. Roles are never self-service:
// the handler gates this behind the admin role.
func (s *UserService) ChangeRole(ctx context.Context, userID uint, role string) (*models.User, error) {
	if !validGlobalRole(role) {
		return nil, domain.Validation("role must be admin, manager or member")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("role changed for user %d: %s", user.ID, role)
	return user, nil
}

// Deactivate disables an account and revokes all of its sessions
func (s *UserService) Deactivate(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.IsActive = false
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, userID); err != nil {
		return nil, err
	}

	log.Printf("user deactivated: %d", user.ID)
	return user, nil
}
