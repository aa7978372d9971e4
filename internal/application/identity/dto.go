package identity

import (
	"time"

	"github.com/donorlink/backend/internal/domain/account"
)

// RegisterInput contains the input for account registration
type RegisterInput struct {
	Email    string
	Password string
	UserType account.UserType
	Profile  account.Profile
	// NGO is only kept for NGO accounts
	NGO account.NGODetails
}

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
	IP       string // Client IP for login logging
}

// AuthResult contains a session token and the account it was issued for
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	TokenType string
	User      *account.User
}
