package notifications

import (
	"context"

	"gorm.io/gorm"

	"github.com/jpcarreras/garagehub-admin/internal/repo"
	"github.com/jpcarreras/garagehub-admin/pkg/db/models"
	"github.com/jpcarreras/garagehub-admin/pkg/enums"
)

// Repository counts the rows that need admin attention.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CountUnverifiedUsers(ctx context.Context) (int64, error)
	CountUnverifiedGarageOwners(ctx context.Context) (int64, error)
	CountUnverifiedGarages(ctx context.Context) (int64, error)
	CountSuspendedOwners(ctx context.Context) (int64, error)
}

type repository struct {
	repo.Base
}

// NewRepository returns a notifications repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{Base: repo.NewBase(tx)}
}

func (r *repository) CountUnverifiedUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.User{}).
		Where("verified = ?", false).
		Count(&count).Error
	return count, err
}

func (r *repository) CountUnverifiedGarageOwners(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.GarageOwner{}).
		Where("verified = ?", false).
		Count(&count).Error
	return count, err
}

func (r *repository) CountUnverifiedGarages(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.Garage{}).
		Where("verified = ?", false).
		Count(&count).Error
	return count, err
}

// CountSuspendedOwners spans both owner tables.
func (r *repository) CountSuspendedOwners(ctx context.Context) (int64, error) {
	var garageOwners int64
	if err := r.DB(ctx).
		Model(&models.GarageOwner{}).
		Where("status = ?", enums.OwnerStatusSuspended).
		Count(&garageOwners).Error; err != nil {
		return 0, err
	}

	var userOwners int64
	if err := r.DB(ctx).
		Model(&models.User{}).
		Where("is_owner = ? AND status = ?", true, enums.OwnerStatusSuspended).
		Count(&userOwners).Error; err != nil {
		return 0, err
	}
	return garageOwners + userOwners, nil
}
