package handler

import (
	"strings"
	"time"

	"github.com/donorlink/backend/internal/domain/account"
)

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Email    string           `json:"email" binding:"required,email,max=200"`
	Password string           `json:"password" binding:"required,min=6,max=72"`
	UserData RegisterUserData `json:"userData" binding:"required"`
}

// RegisterUserData carries the account type and profile fields
type RegisterUserData struct {
	UserType    string `json:"user_type" binding:"required,oneof=donor ngo"`
	Name        string `json:"name" binding:"max=200"`
	Phone       string `json:"phone" binding:"max=50"`
	Address     string `json:"address"`
	City        string `json:"city" binding:"max=100"`
	State       string `json:"state" binding:"max=100"`
	Country     string `json:"country" binding:"max=100"`
	Pincode     string `json:"pincode" binding:"max=20"`
	Description string `json:"description"`
	Website     string `json:"website" binding:"omitempty,url"`
	Logo        string `json:"logo"`

	About                string   `json:"about"`
	WorksDone            string   `json:"works_done"`
	CurrentRequirements  string   `json:"current_requirements"`
	FuturePlans          string   `json:"future_plans"`
	AwardsAndRecognition string   `json:"awards_and_recognition"`
	RecentActivities     string   `json:"recent_activities"`
	Gallery              []string `json:"gallery" binding:"max=20"`
}

// Profile returns the shared profile fields
func (d RegisterUserData) Profile() account.Profile {
	return account.Profile{
		Name:        strings.TrimSpace(d.Name),
		Phone:       d.Phone,
		Address:     d.Address,
		City:        d.City,
		State:       d.State,
		Country:     d.Country,
		Pincode:     d.Pincode,
		Description: d.Description,
		Website:     d.Website,
		Logo:        d.Logo,
	}
}

// NGODetails returns the NGO narrative fields
func (d RegisterUserData) NGODetails() account.NGODetails {
	return account.NGODetails{
		About:                d.About,
		WorksDone:            d.WorksDone,
		CurrentRequirements:  d.CurrentRequirements,
		FuturePlans:          d.FuturePlans,
		AwardsAndRecognition: d.AwardsAndRecognition,
		RecentActivities:     d.RecentActivities,
		Gallery:              d.Gallery,
	}
}

// LoginRequest represents the request body for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// UserEnvelope wraps a single account
type UserEnvelope struct {
	User UserResponse `json:"user"`
}
