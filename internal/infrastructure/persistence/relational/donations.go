package relational

import (
	"context"
	"errors"

	"github.com/donorlink/backend/internal/domain/donation"
	"github.com/donorlink/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// displayName mirrors account.User.DisplayName in SQL
const displayName = "COALESCE(NULLIF(%[1]s.name, ''), %[1]s.email)"

// Accounts names the tables that donation and requirement reads join for
// display names
type Accounts struct {
	Donors string
	NGOs   string
}

// UsersTable is the single account table of the relational schema
var UsersTable = Accounts{Donors: "users", NGOs: "users"}

// DonationRepository implements donation.Repository using GORM
type DonationRepository struct {
	db       *gorm.DB
	accounts Accounts
}

// NewDonationRepository creates a new DonationRepository
func NewDonationRepository(db *gorm.DB, accounts Accounts) *DonationRepository {
	return &DonationRepository{db: db, accounts: accounts}
}

// Create inserts a donation
func (r *DonationRepository) Create(ctx context.Context, d *donation.Donation) error {
	return r.db.WithContext(ctx).Create(donationModelFromDomain(d)).Error
}

// Update persists the mutable lifecycle fields
func (r *DonationRepository) Update(ctx context.Context, d *donation.Donation) error {
	result := r.db.WithContext(ctx).Model(&DonationModel{}).
		Where("id = ?", d.ID).
		Updates(map[string]any{
			"status":        string(d.Status),
			"delivery_date": d.DeliveryDate,
			"updated_at":    d.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a donation with party names
func (r *DonationRepository) FindByID(ctx context.Context, id uuid.UUID) (*donation.Donation, error) {
	var row donationRow
	if err := r.joined(ctx).Where("d.id = ?", id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// FindAll lists donations matching the filter, newest first
func (r *DonationRepository) FindAll(ctx context.Context, filter donation.Filter) ([]*donation.Donation, error) {
	query := r.joined(ctx)
	if filter.DonorID != nil {
		query = query.Where("d.donor_id = ?", *filter.DonorID)
	}
	if filter.NGOID != nil {
		query = query.Where("d.ngo_id = ?", *filter.NGOID)
	}
	if filter.Status != nil {
		query = query.Where("d.status = ?", string(*filter.Status))
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var rows []donationRow
	if err := query.Order("d.created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*donation.Donation, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

func (r *DonationRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("donations AS d").
		Select("d.*, " +
			sqlf(displayName, "du") + " AS donor_name, " +
			sqlf(displayName, "nu") + " AS ngo_name").
		Joins("LEFT JOIN " + r.accounts.Donors + " du ON du.id = d.donor_id").
		Joins("LEFT JOIN " + r.accounts.NGOs + " nu ON nu.id = d.ngo_id")
}
