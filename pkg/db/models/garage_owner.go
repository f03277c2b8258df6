package models

import (
	"time"

	"github.com/jpcarreras/garagehub-admin/pkg/enums"
)

// GarageOwner is an account that owns garages but is not a platform end-user.
// IDs carry the "owner_" prefix.
type GarageOwner struct {
	ID        string            `gorm:"column:id;primaryKey"`
	Username  string            `gorm:"column:username;not null;uniqueIndex"`
	Email     string            `gorm:"column:email;not null"`
	Verified  bool              `gorm:"column:verified;not null;default:false"`
	Status    enums.OwnerStatus `gorm:"column:status;type:text;not null;default:'active'"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
