package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jpcarreras/garagehub-admin/internal/commission"
	"github.com/jpcarreras/garagehub-admin/internal/owners"
	"github.com/jpcarreras/garagehub-admin/internal/payments"
	"github.com/jpcarreras/garagehub-admin/internal/points"
	"github.com/jpcarreras/garagehub-admin/internal/settlement"
	pkgerrors "github.com/jpcarreras/garagehub-admin/pkg/errors"
	"github.com/jpcarreras/garagehub-admin/pkg/logger"
)

// ActionRequest is the envelope the legacy admin console still submits. All
// parameters ride flat next to the action name.
type ActionRequest struct {
	Action    string `json:"action"`
	OwnerID   string `json:"owner_id,omitempty"`
	Status    string `json:"status,omitempty"`
	Rate      string `json:"rate,omitempty"`
	PaymentID string `json:"payment_id,omitempty"`
	Username  string `json:"username,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

// ActionServices bundles everything the dispatcher can reach.
type ActionServices struct {
	Owners     owners.Service
	Commission commission.Service
	Settlement settlement.Service
	Payments   payments.Service
	Points     points.Service
}

// AdminActions dispatches the legacy single-endpoint action protocol. Unlike
// the REST surface it answers with flat {"success": ..., "message": ...}
// bodies because the old console predates the response envelope.
func AdminActions(services ActionServices, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ActionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeAction(w, http.StatusBadRequest, map[string]any{
				"success": false,
				"message": "invalid request body",
			})
			return
		}

		if logg != nil {
			logg.Info(logg.WithAction(r.Context(), req.Action), "admin action received")
		}

		switch req.Action {
		case "update_owner_status":
			handleUpdateOwnerStatus(w, r, services.Owners, req)
		case "set_default_commission_for_all":
			handleSetCommission(w, r, services.Commission, req)
		case "refund_payment":
			handleRefundPayment(w, r, services.Payments, req)
		case "get_payment":
			handleGetPayment(w, r, services.Payments, req)
		case "get_user_points_history":
			handlePointsHistory(w, r, services.Points, req)
		case "backfill_profit_tracking":
			handleBackfill(w, r, services.Settlement)
		case "get_top_owners":
			handleTopOwners(w, r, services.Settlement, req)
		default:
			writeAction(w, http.StatusBadRequest, map[string]any{
				"success": false,
				"message": "unknown action: " + req.Action,
			})
		}
	}
}

func handleUpdateOwnerStatus(w http.ResponseWriter, r *http.Request, svc owners.Service, req ActionRequest) {
	ref, status, err := svc.UpdateStatus(r.Context(), req.OwnerID, req.Status)
	if err != nil {
		writeActionError(w, err)
		return
	}
	writeAction(w, http.StatusOK, map[string]any{
		"success":    true,
		"message":    "owner status updated",
		"owner_id":   ref.ID,
		"owner_type": ref.Type,
		"status":     status,
	})
}

func handleSetCommission(w http.ResponseWriter, r *http.Request, svc commission.Service, req ActionRequest) {
	var result commission.ApplyResult
	var err error
	if req.Rate == "" {
		// The legacy console sends no rate; the configured default applies.
		result, err = svc.ApplyDefaultToAll(r.Context())
	} else {
		var rate decimal.Decimal
		rate, err = decimal.NewFromString(req.Rate)
		if err != nil {
			writeAction(w, http.StatusBadRequest, map[string]any{
				"success": false,
				"message": "rate must be a decimal number",
			})
			return
		}
		result, err = svc.ApplyRateToAll(r.Context(), rate)
	}
	if err != nil {
		writeActionError(w, err)
		return
	}
	writeAction(w, http.StatusOK, map[string]any{
		"success":       true,
		"message":       "commission rate applied",
		"updated_count": result.UpdatedCount,
		"error_count":   result.ErrorCount,
	})
}

func handleRefundPayment(w http.ResponseWriter, r *http.Request, svc payments.Service, req ActionRequest) {
	paymentID, err := uuid.Parse(req.PaymentID)
	if err != nil {
		writeAction(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "payment_id must be a UUID",
		})
		return
	}

	result, err := svc.Refund(r.Context(), paymentID)
	if err != nil {
		writeActionError(w, err)
		return
	}
	writeAction(w, http.StatusOK, map[string]any{
		"success":    true,
		"message":    "payment refunded",
		"payment_id": result.PaymentID,
		"booking_id": result.BookingID,
		"amount":     result.Amount,
	})
}

func handleGetPayment(w http.ResponseWriter, r *http.Request, svc payments.Service, req ActionRequest) {
	paymentID, err := uuid.Parse(req.PaymentID)
	if err != nil {
		writeAction(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "payment_id must be a UUID",
		})
		return
	}

	detail, err := svc.Detail(r.Context(), paymentID)
	if err != nil {
		writeActionError(w, err)
		return
	}
	writeAction(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "payment found",
		"payment": detail,
	})
}

func handlePointsHistory(w http.ResponseWriter, r *http.Request, svc points.Service, req ActionRequest) {
	history, err := svc.History(r.Context(), req.Username)
	if err != nil {
		writeActionError(w, err)
		return
	}
	writeAction(w, http.StatusOK, map[string]any{
		"success":  true,
		"message":  "points history found",
		"username": history.Username,
		"balance":  history.Balance,
		"entries":  history.Entries,
	})
}

func handleBackfill(w http.ResponseWriter, r *http.Request, svc settlement.Service) {
	result, err := svc.Backfill(r.Context())
	if err != nil {
		writeActionError(w, err)
		return
	}
	writeAction(w, http.StatusOK, map[string]any{
		"success":         true,
		"message":         "profit tracking backfill completed",
		"processed_count": result.ProcessedCount,
	})
}

func handleTopOwners(w http.ResponseWriter, r *http.Request, svc settlement.Service, req ActionRequest) {
	entries, err := svc.TopOwners(r.Context(), req.Limit)
	if err != nil {
		writeActionError(w, err)
		return
	}
	writeAction(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "top owners computed",
		"owners":  entries,
	})
}

func writeAction(w http.ResponseWriter, status int, payload map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeActionError(w http.ResponseWriter, err error) {
	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}
	meta := pkgerrors.MetadataFor(typed.Code())

	message := meta.PublicMessage
	if m := typed.Message(); m != "" && typed.Code() != pkgerrors.CodeInternal && typed.Code() != pkgerrors.CodeDependency {
		message = m
	}
	writeAction(w, meta.HTTPStatus, map[string]any{
		"success": false,
		"message": message,
	})
}
