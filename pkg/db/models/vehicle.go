package models

import "time"

// Vehicle maps a registered plate to its owning user.
type Vehicle struct {
	Plate     string    `gorm:"column:plate;primaryKey"`
	Username  string    `gorm:"column:username;not null;index"`
	Model     string    `gorm:"column:model;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
