package payments

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jpcarreras/garagehub-admin/internal/repo"
	"github.com/jpcarreras/garagehub-admin/pkg/db/models"
	"github.com/jpcarreras/garagehub-admin/pkg/enums"
)

// Repository manages persistence for payments and the rows hanging off them.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindPayment(ctx context.Context, paymentID uuid.UUID) (*models.Payment, error)
	FindBooking(ctx context.Context, bookingID uuid.UUID) (*models.Booking, error)
	FindGarage(ctx context.Context, garageID uuid.UUID) (*models.Garage, error)
	FindVehicle(ctx context.Context, plate string) (*models.Vehicle, error)
	UpdatePaymentStatus(ctx context.Context, paymentID uuid.UUID, status enums.PaymentStatus) (int64, error)
	UpdateBookingPaymentStatus(ctx context.Context, bookingID uuid.UUID, status enums.PaymentStatus) (int64, error)
}

type repository struct {
	repo.Base
}

// NewRepository returns a payments repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{Base: repo.NewBase(tx)}
}

func (r *repository) FindPayment(ctx context.Context, paymentID uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := r.DB(ctx).
		Where("id = ?", paymentID).
		First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *repository) FindBooking(ctx context.Context, bookingID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := r.DB(ctx).
		Where("id = ?", bookingID).
		First(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) FindGarage(ctx context.Context, garageID uuid.UUID) (*models.Garage, error) {
	var garage models.Garage
	if err := r.DB(ctx).
		Where("id = ?", garageID).
		First(&garage).Error; err != nil {
		return nil, err
	}
	return &garage, nil
}

func (r *repository) FindVehicle(ctx context.Context, plate string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := r.DB(ctx).
		Where("plate = ?", plate).
		First(&vehicle).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *repository) UpdatePaymentStatus(ctx context.Context, paymentID uuid.UUID, status enums.PaymentStatus) (int64, error) {
	result := r.DB(ctx).
		Model(&models.Payment{}).
		Where("id = ?", paymentID).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *repository) UpdateBookingPaymentStatus(ctx context.Context, bookingID uuid.UUID, status enums.PaymentStatus) (int64, error) {
	result := r.DB(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Update("payment_status", status)
	return result.RowsAffected, result.Error
}
