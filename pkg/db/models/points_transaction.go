package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/jpcarreras/garagehub-admin/pkg/enums"
)

// PointsTransaction is one row in the append-only user points ledger. The
// admin surface only reads these; inserts happen in the booking flow.
type PointsTransaction struct {
	ID          uuid.UUID                   `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Username    string                      `gorm:"column:username;not null;index"`
	Type        enums.PointsTransactionType `gorm:"column:type;type:text;not null"`
	Amount      int                         `gorm:"column:amount;not null"`
	Description string                      `gorm:"column:description;not null"`
	BookingID   *uuid.UUID                  `gorm:"column:booking_id;type:uuid"`
	CreatedAt   time.Time                   `gorm:"column:created_at;autoCreateTime"`
}
