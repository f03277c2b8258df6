package commission

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jpcarreras/garagehub-admin/internal/repo"
	"github.com/jpcarreras/garagehub-admin/pkg/db/models"
)

// Repository manages persistence for per-owner commission rates.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Upsert(ctx context.Context, commission *models.OwnerCommission) error
	Find(ctx context.Context, ownerID string) (*models.OwnerCommission, error)
}

type repository struct {
	repo.Base
}

// NewRepository returns a commission repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{Base: repo.NewBase(tx)}
}

func (r *repository) Upsert(ctx context.Context, commission *models.OwnerCommission) error {
	return r.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"owner_type", "rate", "updated_at"}),
		}).
		Create(commission).Error
}

func (r *repository) Find(ctx context.Context, ownerID string) (*models.OwnerCommission, error) {
	var commission models.OwnerCommission
	if err := r.DB(ctx).
		Where("owner_id = ?", ownerID).
		First(&commission).Error; err != nil {
		return nil, err
	}
	return &commission, nil
}
