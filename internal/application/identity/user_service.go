package identity

import (
	"context"

	"github.com/donorlink/backend/internal/domain/account"
	"github.com/donorlink/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserService serves public account lookups
type UserService struct {
	userRepo account.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo account.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetProfile returns any account by id
func (s *UserService) GetProfile(ctx context.Context, id uuid.UUID) (*account.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewNotFoundError("User not found")
		}
		return nil, err
	}
	return user, nil
}

// ListNGOs returns every NGO account, newest first
func (s *UserService) ListNGOs(ctx context.Context) ([]*account.User, error) {
	return s.userRepo.FindAll(ctx, account.UserFilter{}.WithType(account.UserTypeNGO))
}
