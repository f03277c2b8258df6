package owners

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jpcarreras/garagehub-admin/pkg/enums"
	pkgerrors "github.com/jpcarreras/garagehub-admin/pkg/errors"
)

// Service resolves payments to their responsible owner and manages owner
// account status.
type Service interface {
	ResolveGarageOwner(ctx context.Context, garageID string) (Info, error)
	UpdateStatus(ctx context.Context, ownerID string, rawStatus string) (OwnerRef, enums.OwnerStatus, error)
}

type service struct {
	repo Repository
}

// NewService wires an owners service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("owners repository required")
	}
	return &service{repo: repo}, nil
}

// ResolveGarageOwner walks garage -> owner_username -> owner account. Missing
// links resolve to the unknown sentinel instead of an error so that callers
// attributing money never stall on dirty data. Only infrastructure failures
// surface as errors.
func (s *service) ResolveGarageOwner(ctx context.Context, garageID string) (Info, error) {
	parsed, err := uuid.Parse(garageID)
	if err != nil {
		return UnknownOwner(), nil
	}

	garage, err := s.repo.FindGarage(ctx, parsed)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UnknownOwner(), nil
		}
		return Info{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load garage")
	}

	info := Info{
		GarageName:          garage.Name,
		GarageOwnerUsername: garage.OwnerUsername,
	}

	// Garage-only accounts take precedence over dual-role users so a stale
	// is_owner flag cannot steal attribution from a real garage owner row.
	garageOwner, err := s.repo.FindGarageOwnerByUsername(ctx, garage.OwnerUsername)
	if err == nil {
		info.OwnerID = &garageOwner.ID
		return info, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Info{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load garage owner")
	}

	user, err := s.repo.FindUserOwnerByUsername(ctx, garage.OwnerUsername)
	if err == nil {
		info.OwnerID = &user.ID
		return info, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Info{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user owner")
	}

	sentinel := UnknownOwner()
	sentinel.GarageName = garage.Name
	return sentinel, nil
}

// UpdateStatus routes a status change to the table matching the owner id's
// prefix. The raw status accepts admin display labels.
func (s *service) UpdateStatus(ctx context.Context, ownerID string, rawStatus string) (OwnerRef, enums.OwnerStatus, error) {
	ref, err := ParseOwnerID(ownerID)
	if err != nil {
		return OwnerRef{}, "", err
	}

	status, err := enums.ParseOwnerStatus(rawStatus)
	if err != nil {
		return OwnerRef{}, "", pkgerrors.New(pkgerrors.CodeValidation, "invalid owner status").
			WithDetails(map[string]any{"status": rawStatus})
	}

	var affected int64
	switch ref.Type {
	case enums.OwnerTypeGarageOwner:
		affected, err = s.repo.UpdateGarageOwnerStatus(ctx, ref.ID, status)
	case enums.OwnerTypeUserOwner:
		affected, err = s.repo.UpdateUserStatus(ctx, ref.ID, status)
	}
	if err != nil {
		return OwnerRef{}, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update owner status")
	}
	if affected == 0 {
		return OwnerRef{}, "", pkgerrors.New(pkgerrors.CodeNotFound, "owner not found").
			WithDetails(map[string]any{"owner_id": ref.ID})
	}
	return ref, status, nil
}
