package settlement

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jpcarreras/garagehub-admin/internal/repo"
	"github.com/jpcarreras/garagehub-admin/pkg/db/models"
)

// UntrackedPayment is a paid payment that has no profit_tracking row yet,
// joined with the booking that links it to a garage.
type UntrackedPayment struct {
	PaymentID uuid.UUID       `gorm:"column:payment_id"`
	GarageID  uuid.UUID       `gorm:"column:garage_id"`
	Amount    decimal.Decimal `gorm:"column:amount"`
}

// OwnerProfitRow is one aggregated leaderboard row.
type OwnerProfitRow struct {
	OwnerID          string          `gorm:"column:owner_id"`
	GarageName       string          `gorm:"column:garage_name"`
	TransactionCount int64           `gorm:"column:transaction_count"`
	TotalRevenue     decimal.Decimal `gorm:"column:total_revenue"`
	TotalProfit      decimal.Decimal `gorm:"column:total_profit"`
}

// Repository manages persistence for profit attribution.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListUntrackedPaidPayments(ctx context.Context) ([]UntrackedPayment, error)
	CreateProfitTracking(ctx context.Context, record *models.ProfitTracking) error
	FindOwnerCommission(ctx context.Context, ownerID string) (*models.OwnerCommission, error)
	TopOwnersByProfit(ctx context.Context, limit int) ([]OwnerProfitRow, error)
}

type repository struct {
	repo.Base
}

// NewRepository returns a settlement repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{Base: repo.NewBase(tx)}
}

// ListUntrackedPaidPayments anti-joins payments against profit_tracking so a
// rerun only ever sees payments the previous run missed.
func (r *repository) ListUntrackedPaidPayments(ctx context.Context) ([]UntrackedPayment, error) {
	var rows []UntrackedPayment
	if err := r.DB(ctx).
		Table("payments").
		Select("payments.id AS payment_id, bookings.garage_id AS garage_id, payments.amount AS amount").
		Joins("JOIN bookings ON bookings.id = payments.booking_id").
		Joins("LEFT JOIN profit_tracking ON profit_tracking.payment_id = payments.id").
		Where("payments.status = ?", "paid").
		Where("profit_tracking.id IS NULL").
		Order("payments.created_at ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) CreateProfitTracking(ctx context.Context, record *models.ProfitTracking) error {
	return r.DB(ctx).Create(record).Error
}

func (r *repository) FindOwnerCommission(ctx context.Context, ownerID string) (*models.OwnerCommission, error) {
	var commission models.OwnerCommission
	if err := r.DB(ctx).
		Where("owner_id = ?", ownerID).
		First(&commission).Error; err != nil {
		return nil, err
	}
	return &commission, nil
}

// TopOwnersByProfit aggregates attributed owner profit over rows where the
// owner actually earned something. The filter is per row, not per owner, so a
// refund-heavy row never drags down an owner's total.
func (r *repository) TopOwnersByProfit(ctx context.Context, limit int) ([]OwnerProfitRow, error) {
	var rows []OwnerProfitRow
	if err := r.DB(ctx).
		Table("profit_tracking").
		Select("owner_id, MAX(garage_name) AS garage_name, COUNT(*) AS transaction_count, "+
			"SUM(total_amount) AS total_revenue, SUM(owner_profit) AS total_profit").
		Where("owner_id IS NOT NULL").
		Where("owner_profit > 0").
		Group("owner_id").
		Order("total_profit DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
