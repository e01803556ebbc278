// Package yahoo provides a client for the Yahoo Finance API. It serves both
// market prices for exchange-traded symbols and currency exchange rates
// (via the FROM+TO=X synthetic pairs), plus best-effort symbol search.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/edineros/portfolio-tracker-backend/internal/marketdata"
)

// FinanceClient provides methods for fetching financial data from Yahoo Finance API.
// It wraps an HTTP client and provides convenient methods for querying current
// prices, exchange rates, and symbol metadata.
type FinanceClient struct {
	httpClient *http.Client
}

// NewFinanceClient creates a new Yahoo Finance client with default HTTP settings.
func NewFinanceClient() *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// GetPrice fetches the current price for a symbol. The returned quote's
// currency is the symbol's native trading currency as reported by the
// exchange, not chosen by the caller.
//
// The method prefers the regular-market price from the chart metadata and
// falls back to the most recent daily close when the metadata price is
// missing (e.g. outside trading hours for some exchanges).
func (c *FinanceClient) GetPrice(ctx context.Context, symbol string) (*marketdata.Quote, error) {
	url := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&range=5d", symbol)

	result, err := c.queryChart(ctx, url)
	if err != nil {
		return nil, err
	}

	price := result.Meta.RegularMarketPrice
	if price <= 0 {
		price = lastClose(result.Indicators.Quote)
	}
	if price <= 0 {
		return nil, fmt.Errorf("no usable price for symbol %s", symbol)
	}
	if result.Meta.Currency == "" {
		return nil, fmt.Errorf("no currency reported for symbol %s", symbol)
	}

	return &marketdata.Quote{
		Price:    price,
		Currency: strings.ToUpper(result.Meta.Currency),
	}, nil
}

// GetRate fetches how many 'to' units one 'from' unit buys, using the Yahoo
// FX chart pair (e.g. USDEUR=X). Identical currency codes are the caller's
// concern; this method always performs a network call.
func (c *FinanceClient) GetRate(ctx context.Context, from, to string) (float64, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	if from == "" || to == "" {
		return 0, fmt.Errorf("invalid currency pair %q/%q", from, to)
	}

	pair := from + to + "=X"
	url := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1h&range=1d", pair)

	result, err := c.queryChart(ctx, url)
	if err != nil {
		return 0, err
	}

	rateValue := result.Meta.RegularMarketPrice
	if rateValue <= 0 {
		rateValue = lastClose(result.Indicators.Quote)
	}
	if rateValue <= 0 {
		return 0, fmt.Errorf("no usable rate for pair %s", pair)
	}

	return rateValue, nil
}

// Search looks up candidate symbols by ticker or name. Results are best
// effort and limited to what Yahoo's search endpoint returns.
func (c *FinanceClient) Search(ctx context.Context, query string) ([]marketdata.SymbolMatch, error) {
	url := fmt.Sprintf("https://query1.finance.yahoo.com/v1/finance/search?q=%s&quotesCount=10&newsCount=0", query)

	data, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var response searchResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	matches := make([]marketdata.SymbolMatch, 0, len(response.Quotes))
	for _, q := range response.Quotes {
		name := q.LongName
		if name == "" {
			name = q.ShortName
		}
		matches = append(matches, marketdata.SymbolMatch{
			Symbol:   q.Symbol,
			Name:     name,
			Type:     q.QuoteType,
			Exchange: q.Exchange,
		})
	}

	return matches, nil
}

// queryChart executes a chart request and returns the first result.
func (c *FinanceClient) queryChart(ctx context.Context, url string) (chartResult, error) {
	data, err := c.get(ctx, url)
	if err != nil {
		return chartResult{}, err
	}

	var response chartResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return chartResult{}, fmt.Errorf("failed to parse chart response: %w", err)
	}

	if response.Chart.Error != nil {
		return chartResult{}, fmt.Errorf("yahoo error: %s", *response.Chart.Error)
	}
	if len(response.Chart.Result) == 0 {
		return chartResult{}, fmt.Errorf("no results returned")
	}

	return response.Chart.Result[0], nil
}

// get is an internal helper that executes HTTP requests to the Yahoo API.
// It sets the headers Yahoo requires to serve API traffic:
//   - User-Agent: mimics a browser to avoid API blocking
//   - Accept: requests JSON response format
func (c *FinanceClient) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo http %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// lastClose returns the most recent non-zero daily close, or 0.
func lastClose(quotes []chartQuote) float64 {
	if len(quotes) == 0 {
		return 0
	}
	closes := quotes[0].Close
	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i] > 0 {
			return closes[i]
		}
	}
	return 0
}
