package commission

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jpcarreras/garagehub-admin/internal/owners"
	"github.com/jpcarreras/garagehub-admin/pkg/config"
	"github.com/jpcarreras/garagehub-admin/pkg/db/models"
	pkgerrors "github.com/jpcarreras/garagehub-admin/pkg/errors"
	"github.com/jpcarreras/garagehub-admin/pkg/metrics"
)

const rateSetJobName = "commission_rate_set"

var hundred = decimal.NewFromInt(100)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ApplyResult reports how a bulk rate change went. A malformed owner id or a
// failed row write does not abort the sweep; it is tallied and the rest
// proceed.
type ApplyResult struct {
	UpdatedCount int `json:"updated_count"`
	ErrorCount   int `json:"error_count"`
}

// Service applies commission rates across the owner population.
type Service interface {
	ApplyDefaultToAll(ctx context.Context) (ApplyResult, error)
	ApplyRateToAll(ctx context.Context, rate decimal.Decimal) (ApplyResult, error)
}

type service struct {
	repo       Repository
	ownersRepo owners.Repository
	tx         txRunner
	cfg        config.SettlementConfig
	jobs       *metrics.AdminJobMetrics
}

// NewService wires a commission service with its dependencies. The metrics
// collector may be nil.
func NewService(repo Repository, ownersRepo owners.Repository, tx txRunner, cfg config.SettlementConfig, jobs *metrics.AdminJobMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("commission repository required")
	}
	if ownersRepo == nil {
		return nil, fmt.Errorf("owners repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:       repo,
		ownersRepo: ownersRepo,
		tx:         tx,
		cfg:        cfg,
		jobs:       jobs,
	}, nil
}

// ApplyDefaultToAll runs the sweep with the configured platform default rate.
// The legacy action carries no parameters, so this is what it dispatches to.
func (s *service) ApplyDefaultToAll(ctx context.Context) (ApplyResult, error) {
	return s.ApplyRateToAll(ctx, s.cfg.DefaultRate())
}

// ApplyRateToAll upserts the given rate for every owner account of either
// variant, in one transaction. Owners whose id cannot be classified or whose
// row write fails are counted rather than failing the sweep; only the owner
// enumeration failing aborts the run.
func (s *service) ApplyRateToAll(ctx context.Context, rate decimal.Decimal) (ApplyResult, error) {
	if rate.IsNegative() || rate.GreaterThan(hundred) {
		return ApplyResult{}, pkgerrors.New(pkgerrors.CodeValidation, "commission rate must be between 0 and 100").
			WithDetails(map[string]any{"rate": rate.String()})
	}

	start := time.Now()
	var result ApplyResult

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		ids, err := s.ownersRepo.WithTx(tx).ListOwnerIDs(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list owner ids")
		}

		for _, id := range ids {
			ref, err := owners.ParseOwnerID(id)
			if err != nil {
				result.ErrorCount++
				continue
			}
			commission := &models.OwnerCommission{
				OwnerID:   ref.ID,
				OwnerType: ref.Type,
				Rate:      rate,
			}
			if err := repo.Upsert(ctx, commission); err != nil {
				result.ErrorCount++
				continue
			}
			result.UpdatedCount++
		}
		return nil
	})

	s.jobs.ObserveDuration(rateSetJobName, time.Since(start))
	if err != nil {
		s.jobs.IncFailure(rateSetJobName)
		return ApplyResult{}, err
	}
	s.jobs.IncSuccess(rateSetJobName)
	s.jobs.AddRows(rateSetJobName, result.UpdatedCount)
	return result, nil
}
