package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/jpcarreras/garagehub-admin/pkg/enums"
)

// Booking is a customer's reservation of a garage spot. PaymentStatus mirrors
// the associated Payment row and the pair is only ever updated together.
type Booking struct {
	ID               uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	GarageID         uuid.UUID           `gorm:"column:garage_id;type:uuid;not null"`
	CustomerUsername string              `gorm:"column:customer_username;not null"`
	VehiclePlate     string              `gorm:"column:vehicle_plate;not null"`
	Status           enums.BookingStatus `gorm:"column:status;type:text;not null;default:'active'"`
	PaymentStatus    enums.PaymentStatus `gorm:"column:payment_status;type:text;not null;default:'pending'"`
	StartTime        time.Time           `gorm:"column:start_time;not null"`
	EndTime          *time.Time          `gorm:"column:end_time"`
	CreatedAt        time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
