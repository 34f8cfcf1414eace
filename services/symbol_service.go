package services

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/Adhikram/ChartIQ-sub000/config"
	"github.com/Adhikram/ChartIQ-sub000/models"
)

// SymbolSearchService proxies the third-party symbol-search API and
// reshapes its results.
type SymbolSearchService interface {
	Search(ctx context.Context, text, filter string) ([]models.SymbolResult, error)
}

// upstreamSymbol mirrors the third-party response shape.
type upstreamSymbol struct {
	Symbol       string `json:"symbol"`
	Description  string `json:"description"`
	Exchange     string `json:"exchange"`
	Type         string `json:"type"`
	CurrencyCode string `json:"currency_code"`
	ProviderID   string `json:"provider_id"`
}

type symbolSearchService struct {
	client *resty.Client
}

func NewSymbolSearchService(cfg config.SymbolSearchConfig) SymbolSearchService {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")
	return &symbolSearchService{client: client}
}

func (s *symbolSearchService) Search(ctx context.Context, text, filter string) ([]models.SymbolResult, error) {
	var raw []upstreamSymbol
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("text", text).
		SetQueryParam("type", filter).
		SetResult(&raw).
		Get("")
	if err != nil {
		return nil, fmt.Errorf("symbol search request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("symbol search returned status %d", resp.StatusCode())
	}

	results := make([]models.SymbolResult, 0, len(raw))
	for _, item := range raw {
		results = append(results, models.SymbolResult{
			ID:           fmt.Sprintf("%s:%s", item.Exchange, item.Symbol),
			Symbol:       item.Symbol,
			Exchange:     item.Exchange,
			Description:  item.Description,
			Type:         item.Type,
			CurrencyCode: item.CurrencyCode,
			ProviderID:   item.ProviderID,
		})
	}
	return results, nil
}
