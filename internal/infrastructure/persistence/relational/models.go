package relational

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/donorlink/backend/internal/domain/account"
	"github.com/donorlink/backend/internal/domain/donation"
	"github.com/donorlink/backend/internal/domain/notification"
	"github.com/donorlink/backend/internal/domain/requirement"
	"github.com/donorlink/backend/internal/domain/shared"
	"github.com/donorlink/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserModel is the persistence model for donor and NGO accounts
type UserModel struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email                string    `gorm:"type:varchar(200);not null;uniqueIndex:idx_users_email"`
	PasswordHash         string    `gorm:"type:varchar(100);not null;default:''"`
	UserType             string    `gorm:"type:varchar(10);not null;index"`
	Verified             bool      `gorm:"not null;default:false"`
	Name                 string    `gorm:"type:varchar(200);not null;default:''"`
	Phone                string    `gorm:"type:varchar(50);not null;default:''"`
	Address              string    `gorm:"type:text;not null;default:''"`
	City                 string    `gorm:"type:varchar(100);not null;default:''"`
	State                string    `gorm:"type:varchar(100);not null;default:''"`
	Country              string    `gorm:"type:varchar(100);not null;default:''"`
	Pincode              string    `gorm:"type:varchar(20);not null;default:''"`
	Description          string    `gorm:"type:text;not null;default:''"`
	Website              string    `gorm:"type:varchar(500);not null;default:''"`
	Logo                 string    `gorm:"type:varchar(500);not null;default:''"`
	About                string    `gorm:"type:text;not null;default:''"`
	WorksDone            string    `gorm:"type:text;not null;default:''"`
	CurrentRequirements  string    `gorm:"type:text;not null;default:''"`
	FuturePlans          string    `gorm:"type:text;not null;default:''"`
	AwardsAndRecognition string    `gorm:"type:text;not null;default:''"`
	RecentActivities     string    `gorm:"type:text;not null;default:''"`
	Gallery              string    `gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt            time.Time `gorm:"not null"`
	UpdatedAt            time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string { return "users" }

// ToDomain converts the model; connection lists are filled by the repository
func (m *UserModel) ToDomain() (*account.User, error) {
	gallery := make([]string, 0)
	if len(m.Gallery) > 0 {
		if err := json.Unmarshal([]byte(m.Gallery), &gallery); err != nil {
			return nil, fmt.Errorf("decode gallery of user %s: %w", m.ID, err)
		}
	}
	return &account.User{
		BaseEntity:   shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Type:         account.UserType(m.UserType),
		Verified:     m.Verified,
		Profile: account.Profile{
			Name:        m.Name,
			Phone:       m.Phone,
			Address:     m.Address,
			City:        m.City,
			State:       m.State,
			Country:     m.Country,
			Pincode:     m.Pincode,
			Description: m.Description,
			Website:     m.Website,
			Logo:        m.Logo,
		},
		NGO: account.NGODetails{
			About:                m.About,
			WorksDone:            m.WorksDone,
			CurrentRequirements:  m.CurrentRequirements,
			FuturePlans:          m.FuturePlans,
			AwardsAndRecognition: m.AwardsAndRecognition,
			RecentActivities:     m.RecentActivities,
			Gallery:              gallery,
		},
		ConnectedNGOs:   make([]uuid.UUID, 0),
		ConnectedDonors: make([]uuid.UUID, 0),
	}, nil
}

func userModelFromDomain(u *account.User) *UserModel {
	gallery := u.NGO.Gallery
	if gallery == nil {
		gallery = []string{}
	}
	raw, _ := json.Marshal(gallery)
	return &UserModel{
		ID:                   u.ID,
		Email:                u.Email,
		PasswordHash:         u.PasswordHash,
		UserType:             string(u.Type),
		Verified:             u.Verified,
		Name:                 u.Profile.Name,
		Phone:                u.Profile.Phone,
		Address:              u.Profile.Address,
		City:                 u.Profile.City,
		State:                u.Profile.State,
		Country:              u.Profile.Country,
		Pincode:              u.Profile.Pincode,
		Description:          u.Profile.Description,
		Website:              u.Profile.Website,
		Logo:                 u.Profile.Logo,
		About:                u.NGO.About,
		WorksDone:            u.NGO.WorksDone,
		CurrentRequirements:  u.NGO.CurrentRequirements,
		FuturePlans:          u.NGO.FuturePlans,
		AwardsAndRecognition: u.NGO.AwardsAndRecognition,
		RecentActivities:     u.NGO.RecentActivities,
		Gallery:              string(raw),
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}

// ConnectionModel is one donor/NGO link
type ConnectionModel struct {
	DonorID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	NGOID     uuid.UUID `gorm:"column:ngo_id;type:uuid;primaryKey;index"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ConnectionModel) TableName() string { return "connections" }

// DonationModel is the persistence model for donations
type DonationModel struct {
	ID            uuid.UUID           `gorm:"type:uuid;primaryKey"`
	DonorID       uuid.UUID           `gorm:"type:uuid;not null;index"`
	NGOID         uuid.UUID           `gorm:"column:ngo_id;type:uuid;not null;index"`
	DonationType  string              `gorm:"type:varchar(30);not null"`
	Amount        decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	Currency      string              `gorm:"type:varchar(10);not null;default:''"`
	PaymentMethod string              `gorm:"type:varchar(50);not null;default:''"`
	TransactionID string              `gorm:"type:varchar(100);not null;default:''"`
	Quantity      decimal.NullDecimal `gorm:"type:numeric(14,3)"`
	Unit          string              `gorm:"type:varchar(50);not null;default:''"`
	EssentialType string              `gorm:"type:varchar(100);not null;default:''"`
	Message       string              `gorm:"type:text;not null;default:''"`
	Anonymous     bool                `gorm:"not null;default:false"`
	DeliveryDate  *time.Time
	Status        string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DonationModel) TableName() string { return "donations" }

// donationRow is a donation joined with party display names
type donationRow struct {
	DonationModel
	DonorName *string
	NGOName   *string `gorm:"column:ngo_name"`
}

func (r *donationRow) ToDomain() *donation.Donation {
	d := r.DonationModel.ToDomain()
	if r.DonorName != nil {
		d.DonorName = *r.DonorName
	}
	if r.NGOName != nil {
		d.NGOName = *r.NGOName
	}
	return d
}

// ToDomain converts the model to a donation without display names
func (m *DonationModel) ToDomain() *donation.Donation {
	return &donation.Donation{
		BaseEntity:    shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		DonorID:       m.DonorID,
		NGOID:         m.NGOID,
		Type:          donation.Type(m.DonationType),
		Amount:        persistence.FloatPtr(m.Amount),
		Currency:      m.Currency,
		PaymentMethod: m.PaymentMethod,
		TransactionID: m.TransactionID,
		Quantity:      persistence.FloatPtr(m.Quantity),
		Unit:          m.Unit,
		EssentialType: m.EssentialType,
		Message:       m.Message,
		Anonymous:     m.Anonymous,
		DeliveryDate:  m.DeliveryDate,
		Status:        donation.Status(m.Status),
	}
}

func donationModelFromDomain(d *donation.Donation) *DonationModel {
	return &DonationModel{
		ID:            d.ID,
		DonorID:       d.DonorID,
		NGOID:         d.NGOID,
		DonationType:  string(d.Type),
		Amount:        persistence.NullDecimal(d.Amount),
		Currency:      d.Currency,
		PaymentMethod: d.PaymentMethod,
		TransactionID: d.TransactionID,
		Quantity:      persistence.NullDecimal(d.Quantity),
		Unit:          d.Unit,
		EssentialType: d.EssentialType,
		Message:       d.Message,
		Anonymous:     d.Anonymous,
		DeliveryDate:  d.DeliveryDate,
		Status:        string(d.Status),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// RequirementModel is the persistence model for requirements
type RequirementModel struct {
	ID           uuid.UUID           `gorm:"type:uuid;primaryKey"`
	NGOID        uuid.UUID           `gorm:"column:ngo_id;type:uuid;not null;index"`
	Title        string              `gorm:"type:varchar(200);not null"`
	Description  string              `gorm:"type:text;not null;default:''"`
	Category     string              `gorm:"type:varchar(100);not null;default:'';index"`
	RequestType  string              `gorm:"type:varchar(50);not null;default:''"`
	AmountNeeded decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	Currency     string              `gorm:"type:varchar(10);not null;default:''"`
	Priority     string              `gorm:"type:varchar(20);not null;default:'medium'"`
	Status       string              `gorm:"type:varchar(30);not null;default:'active';index"`
	Deadline     *time.Time
	Quantity     decimal.NullDecimal `gorm:"type:numeric(14,3)"`
	Unit         string              `gorm:"type:varchar(50);not null;default:''"`
	CreatedAt    time.Time           `gorm:"not null"`
	UpdatedAt    time.Time           `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RequirementModel) TableName() string { return "requirements" }

type requirementRow struct {
	RequirementModel
	NGOName *string `gorm:"column:ngo_name"`
}

func (r *requirementRow) ToDomain() *requirement.Requirement {
	req := r.RequirementModel.ToDomain()
	if r.NGOName != nil {
		req.NGOName = *r.NGOName
	}
	return req
}

// ToDomain converts the model to a requirement without the NGO name
func (m *RequirementModel) ToDomain() *requirement.Requirement {
	return &requirement.Requirement{
		BaseEntity:   shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		NGOID:        m.NGOID,
		Title:        m.Title,
		Description:  m.Description,
		Category:     m.Category,
		RequestType:  m.RequestType,
		AmountNeeded: persistence.FloatPtr(m.AmountNeeded),
		Currency:     m.Currency,
		Priority:     requirement.Priority(m.Priority),
		Status:       requirement.Status(m.Status),
		Deadline:     m.Deadline,
		Quantity:     persistence.FloatPtr(m.Quantity),
		Unit:         m.Unit,
	}
}

func requirementModelFromDomain(r *requirement.Requirement) *RequirementModel {
	return &RequirementModel{
		ID:           r.ID,
		NGOID:        r.NGOID,
		Title:        r.Title,
		Description:  r.Description,
		Category:     r.Category,
		RequestType:  r.RequestType,
		AmountNeeded: persistence.NullDecimal(r.AmountNeeded),
		Currency:     r.Currency,
		Priority:     string(r.Priority),
		Status:       string(r.Status),
		Deadline:     r.Deadline,
		Quantity:     persistence.NullDecimal(r.Quantity),
		Unit:         r.Unit,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// NotificationModel is the persistence model for notifications
type NotificationModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	AccountType string     `gorm:"type:varchar(10);not null;default:''"`
	Title       string     `gorm:"type:varchar(255);not null"`
	Message     string     `gorm:"type:text;not null;default:''"`
	Type        string     `gorm:"type:varchar(20);not null;default:'general'"`
	RelatedID   *uuid.UUID `gorm:"type:uuid"`
	RelatedType string     `gorm:"type:varchar(30);not null;default:''"`
	Meta        string     `gorm:"type:jsonb;not null;default:'{}'"`
	Read        bool       `gorm:"not null;default:false"`
	CreatedAt   time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (NotificationModel) TableName() string { return "notifications" }

// ToDomain converts the model to a notification
func (m *NotificationModel) ToDomain() (*notification.Notification, error) {
	meta := map[string]any{}
	if len(m.Meta) > 0 {
		if err := json.Unmarshal([]byte(m.Meta), &meta); err != nil {
			return nil, fmt.Errorf("decode meta of notification %s: %w", m.ID, err)
		}
	}
	return &notification.Notification{
		ID:          m.ID,
		UserID:      m.UserID,
		AccountType: m.AccountType,
		Title:       m.Title,
		Message:     m.Message,
		Type:        notification.Type(m.Type),
		RelatedID:   m.RelatedID,
		RelatedType: m.RelatedType,
		Meta:        meta,
		Read:        m.Read,
		CreatedAt:   m.CreatedAt,
	}, nil
}

func notificationModelFromDomain(n *notification.Notification) *NotificationModel {
	meta := n.Meta
	if meta == nil {
		meta = map[string]any{}
	}
	raw, _ := json.Marshal(meta)
	return &NotificationModel{
		ID:          n.ID,
		UserID:      n.UserID,
		AccountType: n.AccountType,
		Title:       n.Title,
		Message:     n.Message,
		Type:        string(n.Type),
		RelatedID:   n.RelatedID,
		RelatedType: n.RelatedType,
		Meta:        string(raw),
		Read:        n.Read,
		CreatedAt:   n.CreatedAt,
	}
}
