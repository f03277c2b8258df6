package points

import (
	"context"

	"gorm.io/gorm"

	"github.com/jpcarreras/garagehub-admin/internal/repo"
	"github.com/jpcarreras/garagehub-admin/pkg/db/models"
)

// Repository reads the user points ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListRecentByUsername(ctx context.Context, username string, limit int) ([]models.PointsTransaction, error)
}

type repository struct {
	repo.Base
}

// NewRepository returns a points repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{Base: repo.NewBase(tx)}
}

func (r *repository) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).
		Where("username = ?", username).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) ListRecentByUsername(ctx context.Context, username string, limit int) ([]models.PointsTransaction, error) {
	var rows []models.PointsTransaction
	if err := r.DB(ctx).
		Where("username = ?", username).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
