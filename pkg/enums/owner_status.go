package enums

import (
	"fmt"
	"strings"
)

// OwnerStatus tracks whether an owner account may operate on the platform.
type OwnerStatus string

const (
	OwnerStatusActive    OwnerStatus = "active"
	OwnerStatusSuspended OwnerStatus = "suspended"
	OwnerStatusInactive  OwnerStatus = "inactive"
)

var validOwnerStatuses = []OwnerStatus{
	OwnerStatusActive,
	OwnerStatusSuspended,
	OwnerStatusInactive,
}

// displayOwnerStatuses maps the labels the admin UI submits to raw values.
var displayOwnerStatuses = map[string]OwnerStatus{
	"active":      OwnerStatusActive,
	"suspended":   OwnerStatusSuspended,
	"deactivated": OwnerStatusInactive,
	"inactive":    OwnerStatusInactive,
}

// String implements fmt.Stringer.
func (o OwnerStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OwnerStatus.
func (o OwnerStatus) IsValid() bool {
	for _, candidate := range validOwnerStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOwnerStatus accepts both raw values (active) and admin display labels
// (Active, Deactivated) and normalizes them.
func ParseOwnerStatus(value string) (OwnerStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if status, ok := displayOwnerStatuses[normalized]; ok {
		return status, nil
	}
	return "", fmt.Errorf("invalid owner status %q", value)
}
