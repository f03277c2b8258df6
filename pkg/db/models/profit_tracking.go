package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProfitTracking records how a single paid payment's amount was split between
// the platform and the responsible owner. One row per payment, insert-only;
// the backfill job is the only writer. OwnerID is nil when the payment could
// not be attributed to any owner.
type ProfitTracking struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PaymentID      uuid.UUID       `gorm:"column:payment_id;type:uuid;not null;uniqueIndex"`
	OwnerID        *string         `gorm:"column:owner_id;index"`
	GarageID       *uuid.UUID      `gorm:"column:garage_id;type:uuid"`
	GarageName     string          `gorm:"column:garage_name;not null"`
	TotalAmount    decimal.Decimal `gorm:"column:total_amount;type:numeric(12,2);not null"`
	CommissionRate decimal.Decimal `gorm:"column:commission_rate;type:numeric(5,2);not null"`
	OwnerProfit    decimal.Decimal `gorm:"column:owner_profit;type:numeric(12,2);not null"`
	PlatformProfit decimal.Decimal `gorm:"column:platform_profit;type:numeric(12,2);not null"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// TableName keeps gorm on the singular table the migrations create.
func (ProfitTracking) TableName() string {
	return "profit_tracking"
}
