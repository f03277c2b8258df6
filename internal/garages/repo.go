package garages

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jpcarreras/garagehub-admin/internal/repo"
	"github.com/jpcarreras/garagehub-admin/pkg/db/models"
)

// Repository manages persistence for garage administration.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Find(ctx context.Context, garageID uuid.UUID) (*models.Garage, error)
	SetVerified(ctx context.Context, garageID uuid.UUID, verified bool) (int64, error)
	CountUnverified(ctx context.Context) (int64, error)
}

type repository struct {
	repo.Base
}

// NewRepository returns a garages repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{Base: repo.NewBase(tx)}
}

func (r *repository) Find(ctx context.Context, garageID uuid.UUID) (*models.Garage, error) {
	var garage models.Garage
	if err := r.DB(ctx).
		Where("id = ?", garageID).
		First(&garage).Error; err != nil {
		return nil, err
	}
	return &garage, nil
}

func (r *repository) SetVerified(ctx context.Context, garageID uuid.UUID, verified bool) (int64, error) {
	result := r.DB(ctx).
		Model(&models.Garage{}).
		Where("id = ?", garageID).
		Update("verified", verified)
	return result.RowsAffected, result.Error
}

func (r *repository) CountUnverified(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.Garage{}).
		Where("verified = ?", false).
		Count(&count).Error
	return count, err
}
