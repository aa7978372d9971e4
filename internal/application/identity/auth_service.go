// Package identity registers accounts, issues session tokens and serves
// the account directory.
package identity

import (
	"context"
	"errors"
	"time"

	"github.com/donorlink/backend/internal/domain/account"
	"github.com/donorlink/backend/internal/domain/shared"
	"github.com/donorlink/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	// AllowPasswordlessLogin admits accounts that have no stored password
	// hash with any password. Off by default.
	AllowPasswordlessLogin bool
}

// AuthService handles registration, login and token verification
type AuthService struct {
	userRepo   account.UserRepository
	jwtService *auth.JWTService
	config     AuthServiceConfig
	logger     *zap.Logger
	now        func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo account.UserRepository,
	jwtService *auth.JWTService,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		config:     config,
		logger:     logger,
		now:        time.Now,
	}
}

// Register creates an account and signs it in
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := account.NormalizeEmail(input.Email)

	existing, err := s.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		s.logger.Info("Registration with existing email", zap.String("email", email))
		return nil, shared.NewConflictError("User already exists")
	case err != nil && !shared.IsNotFound(err):
		s.logger.Error("Failed to check existing account", zap.Error(err))
		return nil, err
	}

	user, err := account.NewUser(email, input.Password, input.UserType, input.Profile)
	if err != nil {
		return nil, err
	}
	if user.IsNGO() {
		user.NGO = input.NGO
		if user.NGO.Gallery == nil {
			user.NGO.Gallery = []string{}
		}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewConflictError("User already exists")
		}
		s.logger.Error("Failed to create account", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Account registered",
		zap.String("user_id", user.ID.String()),
		zap.String("user_type", string(user.Type)))

	return s.issue(user)
}

// Login authenticates an account by email and password
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	email := account.NormalizeEmail(input.Email)
	s.logger.Info("Login attempt", zap.String("email", email), zap.String("ip", input.IP))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if shared.IsNotFound(err) {
			s.logger.Warn("Unknown email during login", zap.String("email", email))
			return nil, shared.ErrInvalidCredentials
		}
		s.logger.Error("Failed to load account during login", zap.Error(err))
		return nil, err
	}

	switch {
	case user.HasPassword():
		if !user.VerifyPassword(input.Password) {
			s.logger.Warn("Invalid password attempt", zap.String("email", email))
			return nil, shared.ErrInvalidCredentials
		}
	case s.config.AllowPasswordlessLogin:
		s.logger.Warn("Passwordless login admitted", zap.String("user_id", user.ID.String()))
	default:
		s.logger.Warn("Login for account without password rejected", zap.String("email", email))
		return nil, shared.ErrInvalidCredentials
	}

	s.logger.Info("User logged in successfully",
		zap.String("email", email),
		zap.String("user_id", user.ID.String()))

	return s.issue(user)
}

// Verify validates a session token and returns the account it names
func (s *AuthService) Verify(ctx context.Context, token string) (*account.User, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, shared.ErrInvalidToken
	}
	userID, err := claims.ParsedUserID()
	if err != nil {
		return nil, shared.ErrInvalidToken
	}
	return s.CurrentUser(ctx, userID)
}

// CurrentUser loads the authenticated account
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*account.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewNotFoundError("User not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issue(user *account.User) (*AuthResult, error) {
	token, err := s.jwtService.GenerateToken(auth.Subject{
		UserID:   user.ID,
		Email:    user.Email,
		UserType: string(user.Type),
	})
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to generate authentication token")
	}
	return &AuthResult{
		Token:     token,
		ExpiresAt: s.now().Add(s.jwtService.Expiration()),
		TokenType: "Bearer",
		User:      user,
	}, nil
}
