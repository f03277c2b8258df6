package models

import (
	"time"

	"github.com/jpcarreras/garagehub-admin/pkg/enums"
)

// User is a platform end-user. When IsOwner is set the account doubles as a
// garage owner (the dual-role variant). IDs carry the "user_" prefix.
type User struct {
	ID            string            `gorm:"column:id;primaryKey"`
	Username      string            `gorm:"column:username;not null;uniqueIndex"`
	Email         string            `gorm:"column:email;not null"`
	Verified      bool              `gorm:"column:verified;not null;default:false"`
	IsOwner       bool              `gorm:"column:is_owner;not null;default:false"`
	Status        enums.OwnerStatus `gorm:"column:status;type:text;not null;default:'active'"`
	PointsBalance int               `gorm:"column:points_balance;not null;default:0"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
