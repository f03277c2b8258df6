package enums

import "fmt"

// OwnerType discriminates the two owner variants the marketplace supports.
type OwnerType string

const (
	// OwnerTypeGarageOwner is an account that only owns garages.
	OwnerTypeGarageOwner OwnerType = "garage_owner"
	// OwnerTypeUserOwner is a platform end-user who also owns garages.
	OwnerTypeUserOwner OwnerType = "user_owner"
)

var validOwnerTypes = []OwnerType{
	OwnerTypeGarageOwner,
	OwnerTypeUserOwner,
}

// String implements fmt.Stringer.
func (o OwnerType) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OwnerType.
func (o OwnerType) IsValid() bool {
	for _, candidate := range validOwnerTypes {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOwnerType converts raw input into an OwnerType.
func ParseOwnerType(value string) (OwnerType, error) {
	for _, candidate := range validOwnerTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid owner type %q", value)
}
