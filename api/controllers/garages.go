package controllers

import (
	"net/http"

	"github.com/jpcarreras/garagehub-admin/api/responses"
	"github.com/jpcarreras/garagehub-admin/api/validators"
	"github.com/jpcarreras/garagehub-admin/internal/garages"
	pkgerrors "github.com/jpcarreras/garagehub-admin/pkg/errors"
	"github.com/jpcarreras/garagehub-admin/pkg/logger"
)

// GarageVerifyRequest toggles a garage's verification flag.
type GarageVerifyRequest struct {
	Verified *bool `json:"verified" validate:"required"`
}

// GarageStatus returns the admin view of one garage.
func GarageStatus(svc garages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "garages service unavailable"))
			return
		}

		garageID, err := uuidParam(r, "garageId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := svc.Status(r.Context(), garageID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, status)
	}
}

// GarageSetVerified flips a garage's verification flag.
func GarageSetVerified(svc garages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "garages service unavailable"))
			return
		}

		garageID, err := uuidParam(r, "garageId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body GarageVerifyRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetVerified(r.Context(), garageID, *body.Verified); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"garage_id": garageID,
			"verified":  *body.Verified,
		})
	}
}
