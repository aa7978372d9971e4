package relational

import (
	"context"
	"errors"

	"github.com/donorlink/backend/internal/domain/account"
	"github.com/donorlink/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository implements account.UserRepository using GORM
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new account; a taken email is a conflict
func (r *UserRepository) Create(ctx context.Context, user *account.User) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&UserModel{}).
		Where("email = ?", user.Email).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return shared.NewConflictError("User already exists")
	}

	if err := r.db.WithContext(ctx).Create(userModelFromDomain(user)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewConflictError("User already exists")
		}
		return err
	}
	return nil
}

// FindByID finds an account by ID
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*account.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByEmail finds an account by normalized email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*account.User, error) {
	email = account.NormalizeEmail(email)
	if email == "" {
		return nil, shared.ErrNotFound
	}
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*account.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where(query, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	user, err := model.ToDomain()
	if err != nil {
		return nil, err
	}
	users := []*account.User{user}
	if err := r.loadConnections(ctx, users); err != nil {
		return nil, err
	}
	return users[0], nil
}

// FindAll lists accounts matching the filter, newest first
func (r *UserRepository) FindAll(ctx context.Context, filter account.UserFilter) ([]*account.User, error) {
	if filter.IDs != nil && len(filter.IDs) == 0 {
		return []*account.User{}, nil
	}

	query := r.db.WithContext(ctx).Model(&UserModel{})
	if filter.Type != nil {
		query = query.Where("user_type = ?", string(*filter.Type))
	}
	if filter.IDs != nil {
		query = query.Where("id IN ?", filter.IDs)
	}

	var models []UserModel
	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	users := make([]*account.User, len(models))
	for i := range models {
		u, err := models[i].ToDomain()
		if err != nil {
			return nil, err
		}
		users[i] = u
	}
	if err := r.loadConnections(ctx, users); err != nil {
		return nil, err
	}
	return users, nil
}

// loadConnections fills both connection lists of every user in one query
func (r *UserRepository) loadConnections(ctx context.Context, users []*account.User) error {
	if len(users) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*account.User, len(users))
	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		byID[u.ID] = u
		ids = append(ids, u.ID)
	}

	var links []ConnectionModel
	if err := r.db.WithContext(ctx).
		Where("donor_id IN ? OR ngo_id IN ?", ids, ids).
		Order("created_at ASC").
		Find(&links).Error; err != nil {
		return err
	}

	for _, l := range links {
		if donor, ok := byID[l.DonorID]; ok {
			donor.ConnectedNGOs = append(donor.ConnectedNGOs, l.NGOID)
		}
		if ngo, ok := byID[l.NGOID]; ok {
			ngo.ConnectedDonors = append(ngo.ConnectedDonors, l.DonorID)
		}
	}
	return nil
}

// AddConnection links a donor and an NGO; an existing link is kept as is
func (r *UserRepository) AddConnection(ctx context.Context, donorID, ngoID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkParties(tx, donorID, ngoID); err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&ConnectionModel{DonorID: donorID, NGOID: ngoID}).Error
	})
}

// RemoveConnection unlinks a donor and an NGO
func (r *UserRepository) RemoveConnection(ctx context.Context, donorID, ngoID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkParties(tx, donorID, ngoID); err != nil {
			return err
		}
		return tx.Where("donor_id = ? AND ngo_id = ?", donorID, ngoID).
			Delete(&ConnectionModel{}).Error
	})
}

func checkParties(tx *gorm.DB, donorID, ngoID uuid.UUID) error {
	if ok, err := exists(tx, donorID, account.UserTypeDonor); err != nil {
		return err
	} else if !ok {
		return shared.NewNotFoundError("Donor not found")
	}
	if ok, err := exists(tx, ngoID, account.UserTypeNGO); err != nil {
		return err
	} else if !ok {
		return shared.NewNotFoundError("NGO not found")
	}
	return nil
}

func exists(tx *gorm.DB, id uuid.UUID, typ account.UserType) (bool, error) {
	var count int64
	err := tx.Model(&UserModel{}).
		Where("id = ? AND user_type = ?", id, string(typ)).
		Count(&count).Error
	return count > 0, err
}
