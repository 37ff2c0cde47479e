package cmd

import (
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"shariah_screener/pkg/core/app"
	"shariah_screener/pkg/core/screening"
)

var screenReq screening.Request

var screenCmd = &cobra.Command{
	Use:   "screen TICKER",
	Short: "Screen one company and print the result as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := app.New(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer services.Close()

		req := screenReq
		req.Profile.Ticker = strings.ToUpper(args[0])
		result := services.Orchestrator.Screen(cmd.Context(), req)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	f := screenCmd.Flags()
	f.StringVar(&screenReq.Profile.Name, "name", "", "company name")
	f.StringVar(&screenReq.Profile.Sector, "sector", "", "sector")
	f.StringVar(&screenReq.Profile.Industry, "industry", "", "industry")
	f.StringVar(&screenReq.Profile.Description, "description", "", "business description")
	f.Float64Var(&screenReq.Financials.MarketCap, "market-cap", 0, "market capitalization")
	f.Float64Var(&screenReq.Financials.TotalDebt, "total-debt", 0, "total interest-bearing debt")
	f.Float64Var(&screenReq.Financials.CashAndEquivalents, "cash", 0, "cash and equivalents")
	f.Float64Var(&screenReq.Financials.ShortTermInvestments, "short-term-investments", 0, "short-term investments")
	f.Float64Var(&screenReq.Financials.AccountsReceivable, "receivables", 0, "accounts receivable")
	f.Float64Var(&screenReq.Financials.TotalAssets, "total-assets", 0, "total assets")
	f.StringVar(&screenReq.Financials.MarketCapCurrency, "currency", "USD", "market cap currency")
	f.StringVar(&screenReq.Financials.FinancialCurrency, "financial-currency", "", "balance sheet currency, when different")
	_ = screenCmd.MarkFlagRequired("market-cap")

	rootCmd.AddCommand(screenCmd)
}
