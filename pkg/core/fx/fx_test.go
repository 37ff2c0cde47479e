package fx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shariah_screener/pkg/models"
)

func TestRateDirectThenInverse(t *testing.T) {
	c := NewConverter(Rate{From: "EUR", To: "USD", Rate: 1.25})

	r, ok := c.Rate("eur", "usd")
	require.True(t, ok)
	assert.Equal(t, 1.25, r)

	r, ok = c.Rate("USD", "EUR")
	require.True(t, ok)
	assert.InDelta(t, 0.8, r, 1e-12)

	r, ok = c.Rate("JPY", "JPY")
	require.True(t, ok)
	assert.Equal(t, 1.0, r)

	_, ok = c.Rate("GBP", "USD")
	assert.False(t, ok)
}

func TestConvert(t *testing.T) {
	c := NewConverter(Rate{From: "USD", To: "JPY", Rate: 150})

	v, ok := c.Convert(3000, "JPY", "USD")
	require.True(t, ok)
	assert.InDelta(t, 20, v, 1e-9)
}

func TestNormalizeFinancials(t *testing.T) {
	c := NewConverter(Rate{From: "EUR", To: "USD", Rate: 2})
	f := models.Financials{
		MarketCap:          1000,
		TotalDebt:          10,
		CashAndEquivalents: 5,
		TotalAssets:        100,
		MarketCapCurrency:  "USD",
		FinancialCurrency:  "EUR",
	}

	out, ok := c.NormalizeFinancials(f)

	require.True(t, ok)
	assert.Equal(t, 1000.0, out.MarketCap)
	assert.Equal(t, 20.0, out.TotalDebt)
	assert.Equal(t, 10.0, out.CashAndEquivalents)
	assert.Equal(t, 200.0, out.TotalAssets)
	assert.Equal(t, "USD", out.FinancialCurrency)

	f.FinancialCurrency = "CHF"
	same, ok := c.NormalizeFinancials(f)
	assert.False(t, ok)
	assert.Equal(t, f, same)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rates.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rates:\n  - {from: EUR, to: USD, rate: 1.1}\n  - {from: USD, to: CAD, rate: 1.35}\n"), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)

	r, ok := c.Rate("CAD", "USD")
	require.True(t, ok)
	assert.InDelta(t, 1/1.35, r, 1e-12)

	require.NoError(t, os.WriteFile(path, []byte("rates:\n  - {from: EUR, to: USD, rate: 0}\n"), 0o644))
	_, err = LoadFile(path)
	assert.Error(t, err)
}
