package quotes

import (
	"github.com/shopspring/decimal"
	"github.com/surangaprinters/printshop-backend/pkg/db/models"
)

// AreaFee returns the advertised fee for a delivery area. Unknown or inactive
// areas cost nothing rather than erroring; the storefront treats them as
// "contact us".
func AreaFee(area *models.DeliveryArea) decimal.Decimal {
	if area == nil || !area.Active {
		return decimal.Zero
	}
	return area.FeeLkr
}
