package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jpcarreras/garagehub-admin/pkg/enums"
)

// Payment records the money collected for a single booking. Created by the
// booking flow; the admin surface only ever flips its status to refunded.
type Payment struct {
	ID        uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BookingID uuid.UUID           `gorm:"column:booking_id;type:uuid;not null;uniqueIndex"`
	Amount    decimal.Decimal     `gorm:"column:amount;type:numeric(12,2);not null"`
	Status    enums.PaymentStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	Method    string              `gorm:"column:method;not null;default:'card'"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
