package market

import (
	"testing"

	"lever/core"
	"lever/pkg/number"

	"github.com/stretchr/testify/assert"
)

func TestValidateRiskParameters(t *testing.T) {
	valid := func() *core.CreateMarketReq {
		return &core.CreateMarketReq{
			AssetID:              "a9e26c94-0e29-4a83-b413-94ca6ef5c563",
			Symbol:               "BTC",
			AnnualSupplyRate:     number.Decimal("0.05"),
			AnnualBorrowRate:     number.Decimal("0.08"),
			ReserveFactor:        number.Decimal("0.1"),
			CollateralFactor:     number.Decimal("0.8"),
			LiquidationThreshold: number.Decimal("0.85"),
			InitialPrice:         number.Decimal("1"),
		}
	}

	assert.Nil(t, validateRiskParameters(valid()))

	req := valid()
	req.CollateralFactor = number.Decimal("0.85")
	assert.Equal(t, core.ErrInvalidRiskParameters, validateRiskParameters(req), "collateral factor must stay below the threshold")

	req = valid()
	req.LiquidationThreshold = number.Decimal("1.01")
	assert.Equal(t, core.ErrInvalidRiskParameters, validateRiskParameters(req))

	req = valid()
	req.CollateralFactor = number.Decimal("-0.1")
	assert.Equal(t, core.ErrInvalidRiskParameters, validateRiskParameters(req))

	req = valid()
	req.InitialPrice = number.Decimal("0")
	assert.Equal(t, core.ErrInvalidPrice, validateRiskParameters(req))
}
