package controllers

import (
	"net/http"

	"github.com/jpcarreras/garagehub-admin/api/responses"
	"github.com/jpcarreras/garagehub-admin/api/validators"
	"github.com/jpcarreras/garagehub-admin/internal/settlement"
	pkgerrors "github.com/jpcarreras/garagehub-admin/pkg/errors"
	"github.com/jpcarreras/garagehub-admin/pkg/logger"
)

// maxLeaderboardLimit caps how many owners one leaderboard request can ask for.
const maxLeaderboardLimit = 100

// SettlementBackfill runs the profit attribution job over untracked payments.
func SettlementBackfill(svc settlement.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settlement service unavailable"))
			return
		}

		result, err := svc.Backfill(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			ctx := logg.WithField(r.Context(), "processed_count", result.ProcessedCount)
			logg.Info(ctx, "profit backfill completed")
		}
		responses.WriteSuccess(w, result)
	}
}

// SettlementLeaderboard returns the owners ranked by attributed profit.
func SettlementLeaderboard(svc settlement.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settlement service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, maxLeaderboardLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries, err := svc.TopOwners(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"owners": entries})
	}
}
