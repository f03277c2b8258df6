package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jpcarreras/garagehub-admin/api/responses"
	"github.com/jpcarreras/garagehub-admin/api/validators"
	"github.com/jpcarreras/garagehub-admin/internal/owners"
	pkgerrors "github.com/jpcarreras/garagehub-admin/pkg/errors"
	"github.com/jpcarreras/garagehub-admin/pkg/logger"
)

// OwnerStatusRequest carries the target status for an owner account.
type OwnerStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// GarageOwnerResolve returns the owner responsible for a garage's revenue.
func GarageOwnerResolve(svc owners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "owners service unavailable"))
			return
		}

		info, err := svc.ResolveGarageOwner(r.Context(), chi.URLParam(r, "garageId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, info)
	}
}

// OwnerUpdateStatus changes an owner account's status, routed by id prefix.
func OwnerUpdateStatus(svc owners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "owners service unavailable"))
			return
		}

		var body OwnerStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ref, status, err := svc.UpdateStatus(r.Context(), chi.URLParam(r, "ownerId"), body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"owner_id":   ref.ID,
			"owner_type": ref.Type,
			"status":     status,
		})
	}
}
