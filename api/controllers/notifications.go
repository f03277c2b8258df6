package controllers

import (
	"net/http"

	"github.com/jpcarreras/garagehub-admin/api/responses"
	"github.com/jpcarreras/garagehub-admin/internal/notifications"
	pkgerrors "github.com/jpcarreras/garagehub-admin/pkg/errors"
	"github.com/jpcarreras/garagehub-admin/pkg/logger"
)

// NotificationBadges returns the attention counters for the admin dashboard.
func NotificationBadges(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notifications service unavailable"))
			return
		}

		counts, err := svc.Badges(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, counts)
	}
}
