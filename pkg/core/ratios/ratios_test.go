package ratios

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shariah_screener/pkg/models"
)

func TestComputeDebtRatio(t *testing.T) {
	r, err := Compute(models.Financials{TotalDebt: 5500, MarketCap: 800000})

	require.NoError(t, err)
	assert.InDelta(t, 0.6875, r.DebtRatio, 1e-12)
	assert.True(t, r.DebtPassed)
}

func TestThresholdIsStrict(t *testing.T) {
	tests := []struct {
		name string
		f    models.Financials
		pass bool
	}{
		{"debt just below", models.Financials{MarketCap: 1000, TotalDebt: 299.99, TotalAssets: 1000}, true},
		{"debt exactly 30", models.Financials{MarketCap: 1000, TotalDebt: 300, TotalAssets: 1000}, false},
		{"securities exactly 30", models.Financials{MarketCap: 1000, CashAndEquivalents: 100, ShortTermInvestments: 200, TotalAssets: 10000}, false},
		{"liquidity exactly 30", models.Financials{MarketCap: 100000, CashAndEquivalents: 100, AccountsReceivable: 200, TotalAssets: 1000}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Compute(tt.f)
			require.NoError(t, err)
			assert.Equal(t, tt.pass, r.Passed)
		})
	}
}

func TestLiquidityUnavailableWithoutAssets(t *testing.T) {
	r, err := Compute(models.Financials{MarketCap: 1000, CashAndEquivalents: 900})

	require.NoError(t, err)
	assert.Nil(t, r.LiquidityRatio)
	assert.False(t, r.LiquidityRatioAvailable)
	assert.True(t, r.LiquidityPassed)
	assert.False(t, r.SecuritiesPassed)
	assert.False(t, r.Passed)
}

func TestLiquidityComputed(t *testing.T) {
	r, err := Compute(models.Financials{MarketCap: 1000, CashAndEquivalents: 50, AccountsReceivable: 50, TotalAssets: 500})

	require.NoError(t, err)
	require.NotNil(t, r.LiquidityRatio)
	assert.InDelta(t, 20, *r.LiquidityRatio, 1e-9)
	assert.True(t, r.LiquidityRatioAvailable)
	assert.True(t, r.Passed)
}

func TestInvalidMarketCap(t *testing.T) {
	_, err := Compute(models.Financials{MarketCap: 0, TotalDebt: 10})
	assert.ErrorIs(t, err, ErrInvalidMarketCap)
}
