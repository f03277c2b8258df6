package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jpcarreras/garagehub-admin/internal/owners"
	"github.com/jpcarreras/garagehub-admin/pkg/enums"
	pkgerrors "github.com/jpcarreras/garagehub-admin/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// RefundResult reports a completed refund.
type RefundResult struct {
	PaymentID      uuid.UUID           `json:"payment_id"`
	BookingID      uuid.UUID           `json:"booking_id"`
	Amount         decimal.Decimal     `json:"amount"`
	PreviousStatus enums.PaymentStatus `json:"previous_status"`
}

// Detail is the denormalized admin view of a single payment.
type Detail struct {
	PaymentID        uuid.UUID           `json:"payment_id"`
	BookingID        uuid.UUID           `json:"booking_id"`
	Amount           decimal.Decimal     `json:"amount"`
	Status           enums.PaymentStatus `json:"status"`
	Method           string              `json:"method"`
	GarageName       string              `json:"garage_name"`
	CustomerUsername string              `json:"customer_username"`
	VehiclePlate     string              `json:"vehicle_plate"`
	VehicleModel     string              `json:"vehicle_model"`
	StartTime        time.Time           `json:"start_time"`
	EndTime          *time.Time          `json:"end_time"`
	CreatedAt        time.Time           `json:"created_at"`
}

// Service exposes the admin payment operations.
type Service interface {
	Refund(ctx context.Context, paymentID uuid.UUID) (RefundResult, error)
	Detail(ctx context.Context, paymentID uuid.UUID) (Detail, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService wires a payments service with its dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payments repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

// Refund moves a payment into the refunded state. Only pending and paid
// payments qualify, the transition is one-way, and the booking's mirrored
// payment_status flips in the same transaction so the pair never diverges.
func (s *service) Refund(ctx context.Context, paymentID uuid.UUID) (RefundResult, error) {
	if paymentID == uuid.Nil {
		return RefundResult{}, pkgerrors.New(pkgerrors.CodeValidation, "payment id required")
	}

	var result RefundResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		payment, err := repo.FindPayment(ctx, paymentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment")
		}

		if payment.Status == enums.PaymentStatusRefunded {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "payment already refunded").
				WithDetails(map[string]any{"payment_id": paymentID.String()})
		}
		if !payment.Status.Refundable() {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "payment status does not allow refund").
				WithDetails(map[string]any{"status": payment.Status.String()})
		}

		if _, err := repo.UpdatePaymentStatus(ctx, payment.ID, enums.PaymentStatusRefunded); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update payment status")
		}
		if _, err := repo.UpdateBookingPaymentStatus(ctx, payment.BookingID, enums.PaymentStatusRefunded); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update booking payment status")
		}

		result = RefundResult{
			PaymentID:      payment.ID,
			BookingID:      payment.BookingID,
			Amount:         payment.Amount,
			PreviousStatus: payment.Status,
		}
		return nil
	})
	if err != nil {
		return RefundResult{}, err
	}
	return result, nil
}

// Detail assembles the payment together with its booking, garage and vehicle
// context. Missing side rows degrade to placeholders rather than failing the
// whole lookup.
func (s *service) Detail(ctx context.Context, paymentID uuid.UUID) (Detail, error) {
	if paymentID == uuid.Nil {
		return Detail{}, pkgerrors.New(pkgerrors.CodeValidation, "payment id required")
	}

	payment, err := s.repo.FindPayment(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Detail{}, pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
		}
		return Detail{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment")
	}

	detail := Detail{
		PaymentID:  payment.ID,
		BookingID:  payment.BookingID,
		Amount:     payment.Amount,
		Status:     payment.Status,
		Method:     payment.Method,
		GarageName: owners.UnknownGarageName,
		CreatedAt:  payment.CreatedAt,
	}

	booking, err := s.repo.FindBooking(ctx, payment.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return detail, nil
		}
		return Detail{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
	}
	detail.CustomerUsername = booking.CustomerUsername
	detail.VehiclePlate = booking.VehiclePlate
	detail.StartTime = booking.StartTime
	detail.EndTime = booking.EndTime

	garage, err := s.repo.FindGarage(ctx, booking.GarageID)
	if err == nil {
		detail.GarageName = garage.Name
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Detail{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load garage")
	}

	vehicle, err := s.repo.FindVehicle(ctx, booking.VehiclePlate)
	if err == nil {
		detail.VehicleModel = vehicle.Model
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Detail{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle")
	}

	return detail, nil
}
