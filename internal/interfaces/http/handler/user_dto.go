package handler

import (
	"time"

	"github.com/donorlink/backend/internal/domain/account"
	"github.com/google/uuid"
)

// UserResponse is the sanitized view of an account. The password hash is
// never part of it.
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	UserType    string    `json:"user_type"`
	Verified    bool      `json:"verified"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	City        string    `json:"city,omitempty"`
	State       string    `json:"state,omitempty"`
	Country     string    `json:"country,omitempty"`
	Pincode     string    `json:"pincode,omitempty"`
	Description string    `json:"description,omitempty"`
	Website     string    `json:"website,omitempty"`
	Logo        string    `json:"logo,omitempty"`

	// NGO narrative, omitted for donors
	About                string   `json:"about,omitempty"`
	WorksDone            string   `json:"works_done,omitempty"`
	CurrentRequirements  string   `json:"current_requirements,omitempty"`
	FuturePlans          string   `json:"future_plans,omitempty"`
	AwardsAndRecognition string   `json:"awards_and_recognition,omitempty"`
	RecentActivities     string   `json:"recent_activities,omitempty"`
	Gallery              []string `json:"gallery,omitempty"`

	ConnectedNGOs   []uuid.UUID `json:"connected_ngos,omitempty"`
	ConnectedDonors []uuid.UUID `json:"connected_donors,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToUserResponse converts an account to its public view
func ToUserResponse(u *account.User) UserResponse {
	resp := UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		UserType:    string(u.Type),
		Verified:    u.Verified,
		Name:        u.Profile.Name,
		Phone:       u.Profile.Phone,
		Address:     u.Profile.Address,
		City:        u.Profile.City,
		State:       u.Profile.State,
		Country:     u.Profile.Country,
		Pincode:     u.Profile.Pincode,
		Description: u.Profile.Description,
		Website:     u.Profile.Website,
		Logo:        u.Profile.Logo,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
	if u.IsNGO() {
		resp.About = u.NGO.About
		resp.WorksDone = u.NGO.WorksDone
		resp.CurrentRequirements = u.NGO.CurrentRequirements
		resp.FuturePlans = u.NGO.FuturePlans
		resp.AwardsAndRecognition = u.NGO.AwardsAndRecognition
		resp.RecentActivities = u.NGO.RecentActivities
		resp.Gallery = u.NGO.Gallery
		resp.ConnectedDonors = u.ConnectedDonors
	} else {
		resp.ConnectedNGOs = u.ConnectedNGOs
	}
	return resp
}

// ToUserResponses converts a list of accounts
func ToUserResponses(users []*account.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out
}
