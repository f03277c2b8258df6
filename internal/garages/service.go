package garages

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jpcarreras/garagehub-admin/pkg/enums"
	pkgerrors "github.com/jpcarreras/garagehub-admin/pkg/errors"
)

// Status is the admin view of one garage's operational state.
type Status struct {
	GarageID      uuid.UUID          `json:"garage_id"`
	Name          string             `json:"name"`
	OwnerUsername string             `json:"owner_username"`
	Status        enums.GarageStatus `json:"status"`
	Verified      bool               `json:"verified"`
	SpotCount     int                `json:"spot_count"`
	HourlyRate    decimal.Decimal    `json:"hourly_rate"`
}

// Service exposes the admin garage operations.
type Service interface {
	Status(ctx context.Context, garageID uuid.UUID) (Status, error)
	SetVerified(ctx context.Context, garageID uuid.UUID, verified bool) error
}

type service struct {
	repo Repository
}

// NewService wires a garages service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("garages repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Status(ctx context.Context, garageID uuid.UUID) (Status, error) {
	if garageID == uuid.Nil {
		return Status{}, pkgerrors.New(pkgerrors.CodeValidation, "garage id required")
	}

	garage, err := s.repo.Find(ctx, garageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Status{}, pkgerrors.New(pkgerrors.CodeNotFound, "garage not found")
		}
		return Status{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load garage")
	}

	return Status{
		GarageID:      garage.ID,
		Name:          garage.Name,
		OwnerUsername: garage.OwnerUsername,
		Status:        garage.Status,
		Verified:      garage.Verified,
		SpotCount:     garage.SpotCount,
		HourlyRate:    garage.HourlyRate,
	}, nil
}

func (s *service) SetVerified(ctx context.Context, garageID uuid.UUID, verified bool) error {
	if garageID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "garage id required")
	}

	affected, err := s.repo.SetVerified(ctx, garageID, verified)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update garage verification")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "garage not found")
	}
	return nil
}
