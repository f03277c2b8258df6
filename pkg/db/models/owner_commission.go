package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jpcarreras/garagehub-admin/pkg/enums"
)

// OwnerCommission stores the commission percentage applied to an owner's
// payments. One row per owner, upserted by the rate setter.
type OwnerCommission struct {
	OwnerID   string          `gorm:"column:owner_id;primaryKey"`
	OwnerType enums.OwnerType `gorm:"column:owner_type;type:text;not null"`
	Rate      decimal.Decimal `gorm:"column:rate;type:numeric(5,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
