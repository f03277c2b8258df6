package owners

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jpcarreras/garagehub-admin/internal/repo"
	"github.com/jpcarreras/garagehub-admin/pkg/db/models"
	"github.com/jpcarreras/garagehub-admin/pkg/enums"
)

// Repository manages persistence for owner accounts of both variants.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindGarage(ctx context.Context, garageID uuid.UUID) (*models.Garage, error)
	FindGarageOwnerByUsername(ctx context.Context, username string) (*models.GarageOwner, error)
	FindUserOwnerByUsername(ctx context.Context, username string) (*models.User, error)
	ListOwnerIDs(ctx context.Context) ([]string, error)
	UpdateGarageOwnerStatus(ctx context.Context, ownerID string, status enums.OwnerStatus) (int64, error)
	UpdateUserStatus(ctx context.Context, userID string, status enums.OwnerStatus) (int64, error)
}

type repository struct {
	repo.Base
}

// NewRepository returns an owners repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{Base: repo.NewBase(tx)}
}

func (r *repository) FindGarage(ctx context.Context, garageID uuid.UUID) (*models.Garage, error) {
	var garage models.Garage
	if err := r.DB(ctx).
		Where("id = ?", garageID).
		First(&garage).Error; err != nil {
		return nil, err
	}
	return &garage, nil
}

func (r *repository) FindGarageOwnerByUsername(ctx context.Context, username string) (*models.GarageOwner, error) {
	var owner models.GarageOwner
	if err := r.DB(ctx).
		Where("username = ?", username).
		First(&owner).Error; err != nil {
		return nil, err
	}
	return &owner, nil
}

func (r *repository) FindUserOwnerByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).
		Where("username = ? AND is_owner = ?", username, true).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListOwnerIDs returns the ids of every owner account across both tables.
// Dual-role accounts appear once with their user_ id.
func (r *repository) ListOwnerIDs(ctx context.Context) ([]string, error) {
	var garageOwnerIDs []string
	if err := r.DB(ctx).
		Model(&models.GarageOwner{}).
		Order("id ASC").
		Pluck("id", &garageOwnerIDs).Error; err != nil {
		return nil, err
	}

	var userOwnerIDs []string
	if err := r.DB(ctx).
		Model(&models.User{}).
		Where("is_owner = ?", true).
		Order("id ASC").
		Pluck("id", &userOwnerIDs).Error; err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(garageOwnerIDs)+len(userOwnerIDs))
	ids := make([]string, 0, len(garageOwnerIDs)+len(userOwnerIDs))
	for _, id := range append(garageOwnerIDs, userOwnerIDs...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *repository) UpdateGarageOwnerStatus(ctx context.Context, ownerID string, status enums.OwnerStatus) (int64, error) {
	result := r.DB(ctx).
		Model(&models.GarageOwner{}).
		Where("id = ?", ownerID).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *repository) UpdateUserStatus(ctx context.Context, userID string, status enums.OwnerStatus) (int64, error) {
	result := r.DB(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("status", status)
	return result.RowsAffected, result.Error
}
