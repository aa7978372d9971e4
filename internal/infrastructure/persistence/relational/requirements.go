package relational

import (
	"context"
	"errors"
	"fmt"

	"github.com/donorlink/backend/internal/domain/requirement"
	"github.com/donorlink/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequirementRepository implements requirement.Repository using GORM
type RequirementRepository struct {
	db       *gorm.DB
	accounts Accounts
}

// NewRequirementRepository creates a new RequirementRepository
func NewRequirementRepository(db *gorm.DB, accounts Accounts) *RequirementRepository {
	return &RequirementRepository{db: db, accounts: accounts}
}

// Create inserts a requirement
func (r *RequirementRepository) Create(ctx context.Context, req *requirement.Requirement) error {
	return r.db.WithContext(ctx).Create(requirementModelFromDomain(req)).Error
}

// Update rewrites every mutable column of an existing requirement
func (r *RequirementRepository) Update(ctx context.Context, req *requirement.Requirement) error {
	m := requirementModelFromDomain(req)
	result := r.db.WithContext(ctx).Model(&RequirementModel{}).
		Where("id = ?", req.ID).
		Updates(map[string]any{
			"title":         m.Title,
			"description":   m.Description,
			"category":      m.Category,
			"request_type":  m.RequestType,
			"amount_needed": m.AmountNeeded,
			"currency":      m.Currency,
			"priority":      m.Priority,
			"status":        m.Status,
			"deadline":      m.Deadline,
			"quantity":      m.Quantity,
			"unit":          m.Unit,
			"updated_at":    m.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a requirement
func (r *RequirementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&RequirementModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a requirement with its NGO name
func (r *RequirementRepository) FindByID(ctx context.Context, id uuid.UUID) (*requirement.Requirement, error) {
	var row requirementRow
	if err := r.joined(ctx).Where("r.id = ?", id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// FindAll lists requirements matching the filter
func (r *RequirementRepository) FindAll(ctx context.Context, filter requirement.Filter) ([]*requirement.Requirement, error) {
	query := r.joined(ctx)
	if filter.NGOID != nil {
		query = query.Where("r.ngo_id = ?", *filter.NGOID)
	}
	if filter.Category != "" {
		query = query.Where("r.category = ?", filter.Category)
	}
	if filter.Status != nil {
		query = query.Where("r.status = ?", string(*filter.Status))
	}

	var rows []requirementRow
	if err := query.Order("r.created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*requirement.Requirement, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

func (r *RequirementRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("requirements AS r").
		Select("r.*, " + sqlf(displayName, "nu") + " AS ngo_name").
		Joins("LEFT JOIN " + r.accounts.NGOs + " nu ON nu.id = r.ngo_id")
}

func sqlf(format, alias string) string {
	return fmt.Sprintf(format, alias)
}
