package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jpcarreras/garagehub-admin/pkg/enums"
)

// Garage is a parking facility listed on the marketplace.
type Garage struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string             `gorm:"column:name;not null"`
	OwnerUsername string             `gorm:"column:owner_username;not null;index"`
	Verified      bool               `gorm:"column:verified;not null;default:false"`
	Status        enums.GarageStatus `gorm:"column:status;type:text;not null;default:'open'"`
	SpotCount     int                `gorm:"column:spot_count;not null;default:0"`
	HourlyRate    decimal.Decimal    `gorm:"column:hourly_rate;type:numeric(12,2);not null;default:0"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
