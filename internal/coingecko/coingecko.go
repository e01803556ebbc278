// Package coingecko provides a client for the CoinGecko simple-price API,
// used to price crypto assets.
package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/edineros/portfolio-tracker-backend/internal/marketdata"
)

// symbolToID maps common ticker symbols to CoinGecko coin IDs. Symbols not
// listed here are passed through lowercased, which works for coins whose ID
// matches their name.
var symbolToID = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"SOL":   "solana",
	"ADA":   "cardano",
	"XRP":   "ripple",
	"DOT":   "polkadot",
	"DOGE":  "dogecoin",
	"LTC":   "litecoin",
	"BCH":   "bitcoin-cash",
	"LINK":  "chainlink",
	"XLM":   "stellar",
	"USDT":  "tether",
	"USDC":  "usd-coin",
	"AVAX":  "avalanche-2",
	"MATIC": "matic-network",
}

// Client provides methods for fetching crypto prices from CoinGecko.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new CoinGecko client with default HTTP settings.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    "https://api.coingecko.com/api/v3",
	}
}

// GetPrice fetches the current price for a crypto symbol. The quote
// currencies are tried in the order given and the first one CoinGecko can
// price wins, so callers list the asset's preferred currency first and
// liquid fallbacks (EUR, USD) after it.
func (c *Client) GetPrice(ctx context.Context, symbol string, quoteCurrencies []string) (*marketdata.Quote, error) {
	if len(quoteCurrencies) == 0 {
		return nil, fmt.Errorf("no quote currencies given for %s", symbol)
	}

	coinID := coinIDFor(symbol)

	vs := make([]string, len(quoteCurrencies))
	for i, cur := range quoteCurrencies {
		vs[i] = strings.ToLower(cur)
	}

	endpoint := fmt.Sprintf(
		"%s/simple/price?ids=%s&vs_currencies=%s",
		c.baseURL,
		url.QueryEscape(coinID),
		url.QueryEscape(strings.Join(vs, ",")),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coingecko http %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// Response shape: {"bitcoin": {"eur": 61234.5, "usd": 65432.1}}
	var prices map[string]map[string]float64
	if err := json.Unmarshal(data, &prices); err != nil {
		return nil, fmt.Errorf("failed to parse coingecko response: %w", err)
	}

	quotes, ok := prices[coinID]
	if !ok {
		return nil, fmt.Errorf("no price data for %s", symbol)
	}

	for i, cur := range vs {
		if price, ok := quotes[cur]; ok && price > 0 {
			return &marketdata.Quote{
				Price:    price,
				Currency: strings.ToUpper(quoteCurrencies[i]),
			}, nil
		}
	}

	return nil, fmt.Errorf("no quote currency available for %s", symbol)
}

// coinIDFor resolves a ticker symbol to a CoinGecko coin ID.
func coinIDFor(symbol string) string {
	upper := strings.ToUpper(strings.TrimSpace(symbol))
	if id, ok := symbolToID[upper]; ok {
		return id
	}
	return strings.ToLower(upper)
}
