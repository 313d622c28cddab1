package enums

import (
	"fmt"
	"strings"
)

// FulfillmentMode is how a finished print job reaches the customer.
type FulfillmentMode string

const (
	FulfillmentModePickup   FulfillmentMode = "Pickup"
	FulfillmentModeDelivery FulfillmentMode = "Delivery"
)

var validFulfillmentModes = []FulfillmentMode{
	FulfillmentModePickup,
	FulfillmentModeDelivery,
}

// String implements fmt.Stringer.
func (f FulfillmentMode) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FulfillmentMode.
func (f FulfillmentMode) IsValid() bool {
	for _, candidate := range validFulfillmentModes {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFulfillmentMode converts the raw string to FulfillmentMode.
func ParseFulfillmentMode(value string) (FulfillmentMode, error) {
	for _, candidate := range validFulfillmentModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid fulfillment mode %q", value)
}

// NormalizeFulfillmentMode maps free-form customer input onto the enum. Any
// casing of "delivery" selects Delivery; every other value falls back to
// Pickup, matching the storefront form's behavior.
func NormalizeFulfillmentMode(value string) FulfillmentMode {
	if strings.EqualFold(strings.TrimSpace(value), string(FulfillmentModeDelivery)) {
		return FulfillmentModeDelivery
	}
	return FulfillmentModePickup
}
