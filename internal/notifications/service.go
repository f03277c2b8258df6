package notifications

import (
	"context"
	"fmt"

	pkgerrors "github.com/jpcarreras/garagehub-admin/pkg/errors"
)

// BadgeCounts drives the attention badges on the admin dashboard.
type BadgeCounts struct {
	UnverifiedUsers        int64 `json:"unverified_users"`
	UnverifiedGarageOwners int64 `json:"unverified_garage_owners"`
	UnverifiedGarages      int64 `json:"unverified_garages"`
	SuspendedOwners        int64 `json:"suspended_owners"`
	Total                  int64 `json:"total"`
}

// Service aggregates the admin attention counters.
type Service interface {
	Badges(ctx context.Context) (BadgeCounts, error)
}

type service struct {
	repo Repository
}

// NewService wires a notifications service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("notifications repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Badges(ctx context.Context) (BadgeCounts, error) {
	var counts BadgeCounts
	var err error

	if counts.UnverifiedUsers, err = s.repo.CountUnverifiedUsers(ctx); err != nil {
		return BadgeCounts{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count unverified users")
	}
	if counts.UnverifiedGarageOwners, err = s.repo.CountUnverifiedGarageOwners(ctx); err != nil {
		return BadgeCounts{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count unverified garage owners")
	}
	if counts.UnverifiedGarages, err = s.repo.CountUnverifiedGarages(ctx); err != nil {
		return BadgeCounts{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count unverified garages")
	}
	if counts.SuspendedOwners, err = s.repo.CountSuspendedOwners(ctx); err != nil {
		return BadgeCounts{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count suspended owners")
	}

	counts.Total = counts.UnverifiedUsers + counts.UnverifiedGarageOwners +
		counts.UnverifiedGarages + counts.SuspendedOwners
	return counts, nil
}
