package settlement

import (
	"context"
	"errors"
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

const backfillJobName = "profit_backfill"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// BackfillResult summarizes one run of the profit backfill job.
type BackfillResult struct {
	ProcessedCount int `json:"processed_count"`
}

// LeaderboardEntry is one ranked owner on the profit leaderboard.
type LeaderboardEntry struct {
	OwnerID          string          `json:"owner_id"`
	DisplayName      string          `json:"display_name"`
	TransactionCount int64           `json:"transaction_count"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalProfit      decimal.Decimal `json:"total_profit"`
	AvgTransaction   decimal.Decimal `json:"avg_transaction"`
}

// Service runs profit attribution over paid payments and serves the
// resulting aggregates.
type Service interface {
	Backfill(ctx context.Context) (BackfillResult, error)
	TopOwners(ctx context.Context, limit int) ([]LeaderboardEntry, error)
}

type service struct {
	repo   Repository
	owners owners.Service
	tx     txRunner
	cfg    config.SettlementConfig
	jobs   *metrics.AdminJobMetrics
}

// NewService wires a settlement service with its dependencies. The metrics
// collector may be nil.
func NewService(repo Repository, ownerSvc owners.Service, tx txRunner, cfg config.SettlementConfig, jobs *metrics.AdminJobMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settlement repository required")
	}
	if ownerSvc == nil {
		return nil, fmt.Errorf("owners service required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:   repo,
		owners: ownerSvc,
		tx:     tx,
		cfg:    cfg,
		jobs:   jobs,
	}, nil
}

// Backfill creates one profit_tracking row for every paid payment that has
// none. The whole run commits or rolls back as a unit, so a rerun after a
// failure starts from the same untracked set and never double-writes.
func (s *service) Backfill(ctx context.Context) (BackfillResult, error) {
	start := time.Now()
	var processed int

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		pending, err := repo.ListUntrackedPaidPayments(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list untracked payments")
		}

		for _, payment := range pending {
			record, err := s.buildTrackingRecord(ctx, repo, payment)
			if err != nil {
				return err
			}
			if err := repo.CreateProfitTracking(ctx, record); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert profit tracking")
			}
			processed++
		}
		return nil
	})

	s.jobs.ObserveDuration(backfillJobName, time.Since(start))
	if err != nil {
		s.jobs.IncFailure(backfillJobName)
		return BackfillResult{}, err
	}
	s.jobs.IncSuccess(backfillJobName)
	s.jobs.AddRows(backfillJobName, processed)
	return BackfillResult{ProcessedCount: processed}, nil
}

func (s *service) buildTrackingRecord(ctx context.Context, repo Repository, payment UntrackedPayment) (*models.ProfitTracking, error) {
	info, err := s.owners.ResolveGarageOwner(ctx, payment.GarageID.String())
	if err != nil {
		return nil, err
	}

	rate, err := s.commissionRateFor(ctx, repo, info.OwnerID)
	if err != nil {
		return nil, err
	}

	split, err := CalculateSplit(payment.Amount, rate)
	if err != nil {
		return nil, err
	}

	garageID := payment.GarageID
	return &models.ProfitTracking{
		PaymentID:      payment.PaymentID,
		OwnerID:        info.OwnerID,
		GarageID:       &garageID,
		GarageName:     info.GarageName,
		TotalAmount:    payment.Amount,
		CommissionRate: rate,
		OwnerProfit:    split.OwnerProfit,
		PlatformProfit: split.PlatformProfit,
	}, nil
}

// commissionRateFor returns the owner's override rate when one exists,
// otherwise the configured platform default. Unattributable payments always
// use the default.
func (s *service) commissionRateFor(ctx context.Context, repo Repository, ownerID *string) (decimal.Decimal, error) {
	if ownerID == nil {
		return s.cfg.DefaultRate(), nil
	}
	commission, err := repo.FindOwnerCommission(ctx, *ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.cfg.DefaultRate(), nil
		}
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load owner commission")
	}
	return commission.Rate, nil
}

// TopOwners returns up to limit owners ranked by attributed profit. A
// non-positive limit falls back to the configured default.
func (s *service) TopOwners(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = s.cfg.LeaderboardLimit
	}

	rows, err := s.repo.TopOwnersByProfit(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate owner profit")
	}

	entries := make([]LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		name := row.GarageName
		if name == "" {
			name = owners.DisplayUsername(row.OwnerID)
		}
		avg := decimal.Zero
		if row.TransactionCount > 0 {
			avg = row.TotalRevenue.Div(decimal.NewFromInt(row.TransactionCount)).Round(2)
		}
		entries = append(entries, LeaderboardEntry{
			OwnerID:          row.OwnerID,
			DisplayName:      name,
			TransactionCount: row.TransactionCount,
			TotalRevenue:     row.TotalRevenue,
			TotalProfit:      row.TotalProfit,
			AvgTransaction:   avg,
		})
	}
	return entries, nil
}
