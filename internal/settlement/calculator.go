package settlement

import (
	"github.com/shopspring/decimal"

	pkgerrors "github.com/jpcarreras/garagehub-admin/pkg/errors"
)

var hundred = decimal.NewFromInt(100)

// Split is the two-way division of a payment amount at a commission rate.
// PlatformProfit + OwnerProfit always equals the original amount exactly.
type Split struct {
	PlatformProfit decimal.Decimal `json:"platform_profit"`
	OwnerProfit    decimal.Decimal `json:"owner_profit"`
}

// CalculateSplit divides amount by the commission rate (a percentage between
// 0 and 100 inclusive). The platform share is rounded to cents and the owner
// receives the remainder, so no cent is created or lost by rounding.
func CalculateSplit(amount decimal.Decimal, rate decimal.Decimal) (Split, error) {
	if amount.IsNegative() {
		return Split{}, pkgerrors.New(pkgerrors.CodeValidation, "amount must not be negative").
			WithDetails(map[string]any{"amount": amount.String()})
	}
	if rate.IsNegative() || rate.GreaterThan(hundred) {
		return Split{}, pkgerrors.New(pkgerrors.CodeValidation, "commission rate must be between 0 and 100").
			WithDetails(map[string]any{"rate": rate.String()})
	}

	platform := amount.Mul(rate).Div(hundred).Round(2)
	owner := amount.Sub(platform)
	return Split{PlatformProfit: platform, OwnerProfit: owner}, nil
}
