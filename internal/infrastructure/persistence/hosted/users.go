package hosted

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/donorlink/backend/internal/domain/account"
	"github.com/donorlink/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository presents the donors and ngos tables as one account
// repository. Lookups probe donors first, so a donor row wins when both
// tables match.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the account into the table for its type
func (r *UserRepository) Create(ctx context.Context, user *account.User) error {
	if _, err := r.findOne(ctx, "email = ?", user.Email); err == nil {
		return shared.NewConflictError("User already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	var model any
	switch user.Type {
	case account.UserTypeDonor:
		model = donorModelFromDomain(user)
	case account.UserTypeNGO:
		model = ngoModelFromDomain(user)
	default:
		return shared.NewValidationError("Invalid user type")
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewConflictError("User already exists")
		}
		return fmt.Errorf("create %s: %w", user.Type, err)
	}
	return nil
}

// FindByID finds an account by ID in either table
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*account.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByEmail finds an account by normalized email in either table
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*account.User, error) {
	email = account.NormalizeEmail(email)
	if email == "" {
		return nil, shared.ErrNotFound
	}
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*account.User, error) {
	var donor DonorModel
	err := r.db.WithContext(ctx).Where(query, arg).First(&donor).Error
	if err == nil {
		return donor.ToDomain(), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("query donors: %w", err)
	}

	var ngo NGOModel
	err = r.db.WithContext(ctx).Where(query, arg).First(&ngo).Error
	if err == nil {
		return ngo.ToDomain(), nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	return nil, fmt.Errorf("query ngos: %w", err)
}

// FindAll lists accounts from one or both tables, newest first
func (r *UserRepository) FindAll(ctx context.Context, filter account.UserFilter) ([]*account.User, error) {
	if filter.IDs != nil && len(filter.IDs) == 0 {
		return []*account.User{}, nil
	}

	scope := func(db *gorm.DB) *gorm.DB {
		if filter.IDs != nil {
			db = db.Where("id IN ?", filter.IDs)
		}
		return db.Order("created_at DESC")
	}

	out := make([]*account.User, 0)
	if filter.Type == nil || *filter.Type == account.UserTypeDonor {
		var donors []DonorModel
		if err := r.db.WithContext(ctx).Scopes(scope).Find(&donors).Error; err != nil {
			return nil, fmt.Errorf("list donors: %w", err)
		}
		for i := range donors {
			out = append(out, donors[i].ToDomain())
		}
	}
	if filter.Type == nil || *filter.Type == account.UserTypeNGO {
		var ngos []NGOModel
		if err := r.db.WithContext(ctx).Scopes(scope).Find(&ngos).Error; err != nil {
			return nil, fmt.Errorf("list ngos: %w", err)
		}
		for i := range ngos {
			out = append(out, ngos[i].ToDomain())
		}
	}

	if filter.Type == nil {
		slices.SortStableFunc(out, func(a, b *account.User) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}
	return out, nil
}

// AddConnection appends each party to the other's array column, donor
// side first. Both updates are idempotent.
func (r *UserRepository) AddConnection(ctx context.Context, donorID, ngoID uuid.UUID) error {
	if err := r.checkParties(ctx, donorID, ngoID); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Model(&DonorModel{}).
		Where("id = ? AND NOT (? = ANY(COALESCE(connected_ngos, '{}')))", donorID, ngoID.String()).
		Update("connected_ngos", gorm.Expr("array_append(COALESCE(connected_ngos, '{}'), ?)", ngoID.String())).
		Error; err != nil {
		return fmt.Errorf("link donor: %w", err)
	}
	if err := r.db.WithContext(ctx).Model(&NGOModel{}).
		Where("id = ? AND NOT (? = ANY(COALESCE(connected_donors, '{}')))", ngoID, donorID.String()).
		Update("connected_donors", gorm.Expr("array_append(COALESCE(connected_donors, '{}'), ?)", donorID.String())).
		Error; err != nil {
		return fmt.Errorf("link ngo: %w", err)
	}
	return nil
}

// RemoveConnection strips each party from the other's array column, donor
// side first
func (r *UserRepository) RemoveConnection(ctx context.Context, donorID, ngoID uuid.UUID) error {
	if err := r.checkParties(ctx, donorID, ngoID); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Model(&DonorModel{}).
		Where("id = ?", donorID).
		Update("connected_ngos", gorm.Expr("array_remove(connected_ngos, ?)", ngoID.String())).
		Error; err != nil {
		return fmt.Errorf("unlink donor: %w", err)
	}
	if err := r.db.WithContext(ctx).Model(&NGOModel{}).
		Where("id = ?", ngoID).
		Update("connected_donors", gorm.Expr("array_remove(connected_donors, ?)", donorID.String())).
		Error; err != nil {
		return fmt.Errorf("unlink ngo: %w", err)
	}
	return nil
}

func (r *UserRepository) checkParties(ctx context.Context, donorID, ngoID uuid.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&DonorModel{}).Where("id = ?", donorID).Count(&count).Error; err != nil {
		return fmt.Errorf("query donors: %w", err)
	}
	if count == 0 {
		return shared.NewNotFoundError("Donor not found")
	}
	if err := r.db.WithContext(ctx).Model(&NGOModel{}).Where("id = ?", ngoID).Count(&count).Error; err != nil {
		return fmt.Errorf("query ngos: %w", err)
	}
	if count == 0 {
		return shared.NewNotFoundError("NGO not found")
	}
	return nil
}
