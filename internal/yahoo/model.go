package yahoo

// chartResponse mirrors the subset of the Yahoo Finance v8 chart API this
// client reads.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *string       `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		Symbol             string  `json:"symbol"`
		Currency           string  `json:"currency"`
		ExchangeName       string  `json:"exchangeName"`
		RegularMarketPrice float64 `json:"regularMarketPrice"`
		RegularMarketTime  int64   `json:"regularMarketTime"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []chartQuote `json:"quote"`
	} `json:"indicators"`
}

type chartQuote struct {
	Close []float64 `json:"close"`
}

// searchResponse mirrors the subset of the Yahoo Finance v1 search API this
// client reads.
type searchResponse struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortname"`
		LongName  string `json:"longname"`
		QuoteType string `json:"quoteType"`
		Exchange  string `json:"exchange"`
	} `json:"quotes"`
}
