// Package ratios computes the AAOIFI leverage and liquidity screens.
package ratios

import (
	"errors"

	"shariah_screener/pkg/models"
)

// Threshold is the exclusive upper bound, in percent, for every ratio.
const Threshold = 30.0

// ErrInvalidMarketCap is returned when market cap is zero or negative.
var ErrInvalidMarketCap = errors.New("market cap must be positive")

// Compute derives the three ratios from f. All amounts must already be in
// one currency.
//
//	debt ratio       = total debt / market cap
//	securities ratio = (cash + short-term investments) / market cap
//	liquidity ratio  = (cash + receivables) / total assets
//
// The liquidity ratio is unavailable, and passes, when total assets are not
// positive. A ratio passes when it is strictly below Threshold.
func Compute(f models.Financials) (models.QuantitativeRatios, error) {
	if f.MarketCap <= 0 {
		return models.QuantitativeRatios{}, ErrInvalidMarketCap
	}

	r := models.QuantitativeRatios{
		DebtRatio:       f.TotalDebt * 100 / f.MarketCap,
		SecuritiesRatio: (f.CashAndEquivalents + f.ShortTermInvestments) * 100 / f.MarketCap,
		LiquidityPassed: true,
	}
	r.DebtPassed = r.DebtRatio < Threshold
	r.SecuritiesPassed = r.SecuritiesRatio < Threshold

	if f.TotalAssets > 0 {
		liquidity := (f.CashAndEquivalents + f.AccountsReceivable) * 100 / f.TotalAssets
		r.LiquidityRatio = &liquidity
		r.LiquidityRatioAvailable = true
		r.LiquidityPassed = liquidity < Threshold
	}

	r.Passed = r.DebtPassed && r.SecuritiesPassed && r.LiquidityPassed
	return r, nil
}
