package request

type CreateAssetRequest struct {
	PortfolioID string  `json:"portfolioId"`
	Symbol      string  `json:"symbol"`
	Name        string  `json:"name,omitempty"`
	Type        string  `json:"type"`
	Currency    string  `json:"currency"`
	CategoryID  *string `json:"categoryId,omitempty"`
	Tags        string  `json:"tags,omitempty"`
}

type UpdateAssetRequest struct {
	Symbol   *string `json:"symbol,omitempty"`
	Name     *string `json:"name,omitempty"`
	Type     *string `json:"type,omitempty"`
	Currency *string `json:"currency,omitempty"`
	// CategoryID accepts an empty string to clear the reference.
	CategoryID *string `json:"categoryId,omitempty"`
	Tags       *string `json:"tags,omitempty"`
}
