package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/jpcarreras/garagehub-admin/api/responses"
	"github.com/jpcarreras/garagehub-admin/api/validators"
	"github.com/jpcarreras/garagehub-admin/internal/commission"
	pkgerrors "github.com/jpcarreras/garagehub-admin/pkg/errors"
	"github.com/jpcarreras/garagehub-admin/pkg/logger"
)

// CommissionRateRequest carries the percentage to apply to every owner. Rate
// is optional; when absent the configured platform default is used.
type CommissionRateRequest struct {
	Rate string `json:"rate"`
}

// CommissionApplyDefault sets a commission rate for the whole owner
// population. With no body (or no rate field) the sweep runs at the
// configured default rate.
func CommissionApplyDefault(svc commission.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "commission service unavailable"))
			return
		}

		var body CommissionRateRequest
		if r.Body != nil && r.ContentLength != 0 {
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		var result commission.ApplyResult
		var err error
		if body.Rate == "" {
			result, err = svc.ApplyDefaultToAll(r.Context())
		} else {
			var rate decimal.Decimal
			rate, err = decimal.NewFromString(body.Rate)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "rate must be a decimal number").
					WithDetails(map[string]any{"rate": body.Rate}))
				return
			}
			result, err = svc.ApplyRateToAll(r.Context(), rate)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			ctx := logg.WithFields(r.Context(), map[string]any{
				"updated_count": result.UpdatedCount,
				"error_count":   result.ErrorCount,
			})
			logg.Info(ctx, "commission rate applied")
		}
		responses.WriteSuccess(w, result)
	}
}
