package hosted

import (
	"time"

	"github.com/donorlink/backend/internal/domain/account"
	"github.com/donorlink/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ProfileColumns are shared by the donors and ngos tables
type ProfileColumns struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string
	PasswordHash string
	Verified     bool
	Name         string
	Phone        string
	Address      string
	City         string
	State        string
	Country      string
	Pincode      string
	Description  string
	Website      string
	Logo         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (p ProfileColumns) toDomain(typ account.UserType) *account.User {
	return &account.User{
		BaseEntity:   shared.BaseEntity{ID: p.ID, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt},
		Email:        p.Email,
		PasswordHash: p.PasswordHash,
		Type:         typ,
		Verified:     p.Verified,
		Profile: account.Profile{
			Name:        p.Name,
			Phone:       p.Phone,
			Address:     p.Address,
			City:        p.City,
			State:       p.State,
			Country:     p.Country,
			Pincode:     p.Pincode,
			Description: p.Description,
			Website:     p.Website,
			Logo:        p.Logo,
		},
		NGO:             account.NGODetails{Gallery: []string{}},
		ConnectedNGOs:   []uuid.UUID{},
		ConnectedDonors: []uuid.UUID{},
	}
}

func profileFromDomain(u *account.User) ProfileColumns {
	return ProfileColumns{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Verified:     u.Verified,
		Name:         u.Profile.Name,
		Phone:        u.Profile.Phone,
		Address:      u.Profile.Address,
		City:         u.Profile.City,
		State:        u.Profile.State,
		Country:      u.Profile.Country,
		Pincode:      u.Profile.Pincode,
		Description:  u.Profile.Description,
		Website:      u.Profile.Website,
		Logo:         u.Profile.Logo,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// DonorModel is a row of the donors table
type DonorModel struct {
	ProfileColumns
	ConnectedNGOs pq.StringArray `gorm:"column:connected_ngos;type:text[]"`
}

// TableName returns the table name for GORM
func (DonorModel) TableName() string { return "donors" }

// ToDomain converts the row to a donor account
func (m *DonorModel) ToDomain() *account.User {
	u := m.ProfileColumns.toDomain(account.UserTypeDonor)
	u.ConnectedNGOs = parseIDs(m.ConnectedNGOs)
	return u
}

// NGOModel is a row of the ngos table
type NGOModel struct {
	ProfileColumns
	About                string
	WorksDone            string
	CurrentRequirements  string
	FuturePlans          string
	AwardsAndRecognition string
	RecentActivities     string
	Gallery              pq.StringArray `gorm:"type:text[]"`
	ConnectedDonors      pq.StringArray `gorm:"column:connected_donors;type:text[]"`
}

// TableName returns the table name for GORM
func (NGOModel) TableName() string { return "ngos" }

// ToDomain converts the row to an NGO account
func (m *NGOModel) ToDomain() *account.User {
	u := m.ProfileColumns.toDomain(account.UserTypeNGO)
	u.NGO = account.NGODetails{
		About:                m.About,
		WorksDone:            m.WorksDone,
		CurrentRequirements:  m.CurrentRequirements,
		FuturePlans:          m.FuturePlans,
		AwardsAndRecognition: m.AwardsAndRecognition,
		RecentActivities:     m.RecentActivities,
		Gallery:              append([]string{}, m.Gallery...),
	}
	u.ConnectedDonors = parseIDs(m.ConnectedDonors)
	return u
}

func donorModelFromDomain(u *account.User) *DonorModel {
	return &DonorModel{
		ProfileColumns: profileFromDomain(u),
		ConnectedNGOs:  formatIDs(u.ConnectedNGOs),
	}
}

func ngoModelFromDomain(u *account.User) *NGOModel {
	gallery := u.NGO.Gallery
	if gallery == nil {
		gallery = []string{}
	}
	return &NGOModel{
		ProfileColumns:       profileFromDomain(u),
		About:                u.NGO.About,
		WorksDone:            u.NGO.WorksDone,
		CurrentRequirements:  u.NGO.CurrentRequirements,
		FuturePlans:          u.NGO.FuturePlans,
		AwardsAndRecognition: u.NGO.AwardsAndRecognition,
		RecentActivities:     u.NGO.RecentActivities,
		Gallery:              pq.StringArray(gallery),
		ConnectedDonors:      formatIDs(u.ConnectedDonors),
	}
}

// parseIDs skips entries that are not UUIDs; the array columns are text
func parseIDs(raw []string) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		if id, err := uuid.Parse(s); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func formatIDs(ids []uuid.UUID) pq.StringArray {
	out := make(pq.StringArray, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
