package auth

import (
	"context"

	"gorm.io/gorm"

	"github.com/jpcarreras/garagehub-admin/internal/repo"
	"github.com/jpcarreras/garagehub-admin/pkg/db/models"
)

// Repository looks up back-office operator accounts.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
}

type repository struct {
	repo.Base
}

// NewRepository returns an auth repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{Base: repo.NewBase(tx)}
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := r.DB(ctx).
		Where("email = ?", email).
		First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}
