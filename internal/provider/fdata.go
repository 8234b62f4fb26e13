package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"EquityLens/internal/model"
)

const fdataBaseURL = "https://api.financialdatasets.ai"

// FData implements FundamentalsProvider using the financialdatasets.ai
// REST API.
type FData struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewFData creates a fundamentals provider with optional proxy support.
func NewFData(apiKey, proxyURL string) *FData {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &FData{
		BaseURL: fdataBaseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *FData) Name() string { return "financialdatasets" }

func (f *FData) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := f.BaseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return err
	}
	if f.APIKey != "" {
		req.Header.Set("X-API-KEY", f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("fdata fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("fdata: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("fdata decode: %w", err)
	}
	return nil
}

// FinancialMetrics returns TTM metric snapshots, most recent first.
func (f *FData) FinancialMetrics(ctx context.Context, ticker string, limit int) ([]model.FinancialMetrics, error) {
	if limit <= 0 {
		limit = 10
	}
	q := url.Values{}
	q.Set("ticker", ticker)
	q.Set("period", "ttm")
	q.Set("limit", fmt.Sprint(limit))

	var result struct {
		Metrics []model.FinancialMetrics `json:"financial_metrics"`
	}
	if err := f.get(ctx, "/financial-metrics", q, &result); err != nil {
		return nil, err
	}
	if len(result.Metrics) == 0 {
		return nil, fmt.Errorf("fdata: no financial metrics for %s", ticker)
	}
	return result.Metrics, nil
}

// fdataStatements mirrors the /financials response: three statement
// lists per period that LineItems merges on report_period.
type fdataStatements struct {
	Financials struct {
		Income []struct {
			ReportPeriod                string   `json:"report_period"`
			NetIncome                   *float64 `json:"net_income"`
			DepreciationAndAmortization *float64 `json:"depreciation_and_amortization"`
		} `json:"income_statements"`
		Balance []struct {
			ReportPeriod       string   `json:"report_period"`
			CurrentAssets      *float64 `json:"current_assets"`
			CurrentLiabilities *float64 `json:"current_liabilities"`
		} `json:"balance_sheets"`
		CashFlow []struct {
			ReportPeriod       string   `json:"report_period"`
			FreeCashFlow       *float64 `json:"free_cash_flow"`
			CapitalExpenditure *float64 `json:"capital_expenditure"`
		} `json:"cash_flow_statements"`
	} `json:"financials"`
}

// LineItems fetches the three statements and merges them per period,
// most recent first. Working capital is derived from the balance sheet.
func (f *FData) LineItems(ctx context.Context, ticker string, limit int) ([]model.LineItems, error) {
	if limit <= 0 {
		limit = 2
	}
	q := url.Values{}
	q.Set("ticker", ticker)
	q.Set("period", "ttm")
	q.Set("limit", fmt.Sprint(limit))

	var result fdataStatements
	if err := f.get(ctx, "/financials", q, &result); err != nil {
		return nil, err
	}

	byPeriod := make(map[string]*model.LineItems)
	var order []string
	itemFor := func(period string) *model.LineItems {
		if li, ok := byPeriod[period]; ok {
			return li
		}
		li := &model.LineItems{ReportPeriod: period}
		byPeriod[period] = li
		order = append(order, period)
		return li
	}

	for _, s := range result.Financials.Income {
		li := itemFor(s.ReportPeriod)
		li.NetIncome = s.NetIncome
		li.DepreciationAndAmortization = s.DepreciationAndAmortization
	}
	for _, s := range result.Financials.CashFlow {
		li := itemFor(s.ReportPeriod)
		li.FreeCashFlow = s.FreeCashFlow
		li.CapitalExpenditure = s.CapitalExpenditure
	}
	for _, s := range result.Financials.Balance {
		li := itemFor(s.ReportPeriod)
		if s.CurrentAssets != nil && s.CurrentLiabilities != nil {
			wc := *s.CurrentAssets - *s.CurrentLiabilities
			li.WorkingCapital = &wc
		}
	}

	if len(order) == 0 {
		return nil, fmt.Errorf("fdata: no statements for %s", ticker)
	}
	items := make([]model.LineItems, 0, len(order))
	for _, period := range order {
		items = append(items, *byPeriod[period])
	}
	return items, nil
}

// MarketCap reads the market cap off the latest metrics snapshot.
func (f *FData) MarketCap(ctx context.Context, ticker string) (float64, error) {
	metrics, err := f.FinancialMetrics(ctx, ticker, 1)
	if err != nil {
		return 0, err
	}
	if metrics[0].MarketCap == nil || *metrics[0].MarketCap <= 0 {
		return 0, fmt.Errorf("fdata: no market cap for %s", ticker)
	}
	return *metrics[0].MarketCap, nil
}
