package model

// FinancialMetrics is one TTM metrics snapshot from the fundamentals
// provider. Pointers distinguish "not reported" from zero; scoring skips
// nil fields instead of treating them as failures.
type FinancialMetrics struct {
	ReportPeriod string `json:"report_period"`

	ReturnOnEquity  *float64 `json:"return_on_equity"`
	NetMargin       *float64 `json:"net_margin"`
	OperatingMargin *float64 `json:"operating_margin"`
	ReturnOnAssets  *float64 `json:"return_on_assets"`
	AssetTurnover   *float64 `json:"asset_turnover"`

	RevenueGrowth   *float64 `json:"revenue_growth"`
	EarningsGrowth  *float64 `json:"earnings_growth"`
	BookValueGrowth *float64 `json:"book_value_growth"`

	CurrentRatio         *float64 `json:"current_ratio"`
	DebtToEquity         *float64 `json:"debt_to_equity"`
	FreeCashFlowPerShare *float64 `json:"free_cash_flow_per_share"`
	EarningsPerShare     *float64 `json:"earnings_per_share"`

	PriceToEarnings *float64 `json:"price_to_earnings_ratio"`
	PriceToBook     *float64 `json:"price_to_book_ratio"`
	PriceToSales    *float64 `json:"price_to_sales_ratio"`

	DividendYield *float64 `json:"dividend_yield"`
	PayoutRatio   *float64 `json:"payout_ratio"`

	MarketCap       *float64 `json:"market_cap"`
	EnterpriseValue *float64 `json:"enterprise_value"`
	EVToEBITDARatio *float64 `json:"enterprise_value_to_ebitda_ratio"`
}

// LineItems holds the statement line items the valuation models consume,
// merged across income / balance-sheet / cash-flow statements for one
// report period.
type LineItems struct {
	ReportPeriod string `json:"report_period"`

	FreeCashFlow                *float64 `json:"free_cash_flow"`
	NetIncome                   *float64 `json:"net_income"`
	DepreciationAndAmortization *float64 `json:"depreciation_and_amortization"`
	CapitalExpenditure          *float64 `json:"capital_expenditure"`
	WorkingCapital              *float64 `json:"working_capital"`
}
