package owners

import (
	"strings"

	"github.com/jpcarreras/garagehub-admin/pkg/enums"
	pkgerrors "github.com/jpcarreras/garagehub-admin/pkg/errors"
)

const (
	// UserOwnerPrefix marks dual-role owner ids (platform users who own garages).
	UserOwnerPrefix = "user_"
	// GarageOwnerPrefix marks garage-only owner ids.
	GarageOwnerPrefix = "owner_"
)

// OwnerRef is the typed handle for an owner of either variant. Prefix sniffing
// happens only in ParseOwnerID; everything downstream dispatches on Type.
type OwnerRef struct {
	ID       string          `json:"id"`
	Type     enums.OwnerType `json:"type"`
	Username string          `json:"username"`
}

// ParseOwnerID classifies an owner id by its prefix. Ids matching neither
// convention are rejected outright instead of being defaulted to a variant.
func ParseOwnerID(id string) (OwnerRef, error) {
	trimmed := strings.TrimSpace(id)
	switch {
	case strings.HasPrefix(trimmed, UserOwnerPrefix) && len(trimmed) > len(UserOwnerPrefix):
		return OwnerRef{
			ID:       trimmed,
			Type:     enums.OwnerTypeUserOwner,
			Username: strings.TrimPrefix(trimmed, UserOwnerPrefix),
		}, nil
	case strings.HasPrefix(trimmed, GarageOwnerPrefix) && len(trimmed) > len(GarageOwnerPrefix):
		return OwnerRef{
			ID:       trimmed,
			Type:     enums.OwnerTypeGarageOwner,
			Username: strings.TrimPrefix(trimmed, GarageOwnerPrefix),
		}, nil
	default:
		return OwnerRef{}, pkgerrors.New(pkgerrors.CodeValidation, "owner id matches no known prefix").
			WithDetails(map[string]any{"owner_id": id})
	}
}

// DisplayUsername strips the dual-role prefix for human-readable output.
func DisplayUsername(ownerID string) string {
	if strings.HasPrefix(ownerID, UserOwnerPrefix) {
		return strings.TrimPrefix(ownerID, UserOwnerPrefix)
	}
	if strings.HasPrefix(ownerID, GarageOwnerPrefix) {
		return strings.TrimPrefix(ownerID, GarageOwnerPrefix)
	}
	return ownerID
}

const (
	// UnknownGarageName is returned when a payment cannot be attributed.
	UnknownGarageName = "Unknown Garage"
	// UnknownOwnerUsername is the sentinel username for unattributable payments.
	UnknownOwnerUsername = "unknown"
)

// Info is the resolution result for a garage's responsible owner. A nil
// OwnerID means the payment is unattributable and callers must treat it so.
type Info struct {
	OwnerID             *string `json:"owner_id"`
	GarageName          string  `json:"garage_name"`
	GarageOwnerUsername string  `json:"garage_owner_username"`
}

// UnknownOwner returns the sentinel used when the garage or owner is missing.
func UnknownOwner() Info {
	return Info{
		OwnerID:             nil,
		GarageName:          UnknownGarageName,
		GarageOwnerUsername: UnknownOwnerUsername,
	}
}
