package quotes

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/surangaprinters/printshop-backend/pkg/db/models"
)

func TestAreaFeeNilAreaIsZero(t *testing.T) {
	require.True(t, AreaFee(nil).IsZero())
}

func TestAreaFeeInactiveAreaIsZero(t *testing.T) {
	area := &models.DeliveryArea{Area: "Ukuwela", FeeLkr: decimal.NewFromInt(300), Active: false}
	require.True(t, AreaFee(area).IsZero())
}

func TestAreaFeeActiveAreaReturnsFee(t *testing.T) {
	area := &models.DeliveryArea{Area: "Ukuwela", FeeLkr: decimal.NewFromInt(300), Active: true}
	require.True(t, AreaFee(area).Equal(decimal.NewFromInt(300)))
}
