package account

import (
	"regexp"
	"slices"
	"strings"

	"github.com/donorlink/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserType discriminates donor and NGO accounts
type UserType string

const (
	UserTypeDonor UserType = "donor"
	UserTypeNGO   UserType = "ngo"
)

// IsValid reports whether t is a known account type
func (t UserType) IsValid() bool {
	return t == UserTypeDonor || t == UserTypeNGO
}

// Password cost for bcrypt
const bcryptCost = 12

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Profile holds the public profile fields shared by donors and NGOs
type Profile struct {
	Name        string
	Phone       string
	Address     string
	City        string
	State       string
	Country     string
	Pincode     string
	Description string
	Website     string
	Logo        string
}

// NGODetails holds the narrative fields only NGO accounts carry
type NGODetails struct {
	About                string
	WorksDone            string
	CurrentRequirements  string
	FuturePlans          string
	AwardsAndRecognition string
	RecentActivities     string
	Gallery              []string
}

// User is a donor or NGO account.
//
// ConnectedNGOs is populated for donors and ConnectedDonors for NGOs; the two
// lists mirror each other across accounts.
type User struct {
	shared.BaseEntity
	Email           string
	PasswordHash    string
	Type            UserType
	Verified        bool
	Profile         Profile
	NGO             NGODetails
	ConnectedNGOs   []uuid.UUID
	ConnectedDonors []uuid.UUID
}

// NewUser validates registration input and returns an account with a hashed password
func NewUser(email, password string, userType UserType, profile Profile) (*User, error) {
	email = NormalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if !userType.IsValid() {
		return nil, shared.NewValidationError("user_type must be either 'donor' or 'ngo'")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	profile.Name = strings.TrimSpace(profile.Name)
	return &User{
		BaseEntity:      shared.NewBaseEntity(),
		Email:           email,
		PasswordHash:    hash,
		Type:            userType,
		Profile:         profile,
		ConnectedNGOs:   make([]uuid.UUID, 0),
		ConnectedDonors: make([]uuid.UUID, 0),
	}, nil
}

// IsDonor reports whether the account is a donor
func (u *User) IsDonor() bool {
	return u.Type == UserTypeDonor
}

// IsNGO reports whether the account is an NGO
func (u *User) IsNGO() bool {
	return u.Type == UserTypeNGO
}

// HasPassword reports whether a password hash is stored for the account
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// DisplayName returns the profile name, falling back to the email
func (u *User) DisplayName() string {
	if u.Profile.Name != "" {
		return u.Profile.Name
	}
	return u.Email
}

// Connections returns the counterpart ids for this account's type
func (u *User) Connections() []uuid.UUID {
	if u.IsNGO() {
		return u.ConnectedDonors
	}
	return u.ConnectedNGOs
}

// IsConnectedTo reports whether other appears in this account's connection list
func (u *User) IsConnectedTo(other uuid.UUID) bool {
	return slices.Contains(u.Connections(), other)
}

// AddConnection appends other to the connection list once
func (u *User) AddConnection(other uuid.UUID) bool {
	if u.IsConnectedTo(other) {
		return false
	}
	if u.IsNGO() {
		u.ConnectedDonors = append(u.ConnectedDonors, other)
	} else {
		u.ConnectedNGOs = append(u.ConnectedNGOs, other)
	}
	u.Touch()
	return true
}

// RemoveConnection drops other from the connection list
func (u *User) RemoveConnection(other uuid.UUID) bool {
	if !u.IsConnectedTo(other) {
		return false
	}
	drop := func(ids []uuid.UUID) []uuid.UUID {
		return slices.DeleteFunc(slices.Clone(ids), func(id uuid.UUID) bool { return id == other })
	}
	if u.IsNGO() {
		u.ConnectedDonors = drop(u.ConnectedDonors)
	} else {
		u.ConnectedNGOs = drop(u.ConnectedNGOs)
	}
	u.Touch()
	return true
}

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", shared.NewDomainError(shared.CodeInternal, "Failed to hash password")
	}
	return string(hash), nil
}

// NormalizeEmail lower-cases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewValidationError("Email is required")
	}
	if len(email) > 200 {
		return shared.NewValidationError("Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewValidationError("Invalid email format")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewValidationError("Password is required")
	}
	if len(password) < 6 {
		return shared.NewValidationError("Password must be at least 6 characters")
	}
	// bcrypt ignores input past 72 bytes
	if len(password) > 72 {
		return shared.NewValidationError("Password cannot exceed 72 characters")
	}
	return nil
}
