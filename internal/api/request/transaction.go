package request

type CreateTransactionRequest struct {
	AssetID  string  `json:"assetId"`
	Type     string  `json:"type"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
	Fee      float64 `json:"fee"`
	Date     string  `json:"date"`
	Notes    string  `json:"notes,omitempty"`
	LotID    *string `json:"lotId,omitempty"`
}

type UpdateTransactionRequest struct {
	Quantity *float64 `json:"quantity,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Fee      *float64 `json:"fee,omitempty"`
	Date     *string  `json:"date,omitempty"`
	Notes    *string  `json:"notes,omitempty"`
	// LotID may be echoed back unchanged; changing it is rejected.
	LotID *string `json:"lotId,omitempty"`
}
