package models

// SymbolResult is the reshaped form of one third-party symbol-search hit.
type SymbolResult struct {
	ID           string `json:"id"` // "EXCHANGE:SYMBOL"
	Symbol       string `json:"symbol"`
	Exchange     string `json:"exchange"`
	Description  string `json:"description"`
	Type         string `json:"type"`
	CurrencyCode string `json:"currency_code,omitempty"`
	ProviderID   string `json:"provider_id,omitempty"`
}
