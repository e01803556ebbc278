package request

type CreatePortfolioRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Hidden   bool   `json:"hidden"`
}

type UpdatePortfolioRequest struct {
	Name     *string `json:"name,omitempty"`
	Currency *string `json:"currency,omitempty"`
	Hidden   *bool   `json:"hidden,omitempty"`
}
