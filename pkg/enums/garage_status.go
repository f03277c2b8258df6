package enums

import "fmt"

// GarageStatus reflects the operational state of a garage.
type GarageStatus string

const (
	GarageStatusOpen        GarageStatus = "open"
	GarageStatusClosed      GarageStatus = "closed"
	GarageStatusMaintenance GarageStatus = "maintenance"
)

var validGarageStatuses = []GarageStatus{
	GarageStatusOpen,
	GarageStatusClosed,
	GarageStatusMaintenance,
}

// String implements fmt.Stringer.
func (g GarageStatus) String() string {
	return string(g)
}

// IsValid reports whether the value is a known GarageStatus.
func (g GarageStatus) IsValid() bool {
	for _, candidate := range validGarageStatuses {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParseGarageStatus converts raw input into a GarageStatus.
func ParseGarageStatus(value string) (GarageStatus, error) {
	for _, candidate := range validGarageStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid garage status %q", value)
}
