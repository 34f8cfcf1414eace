package services

import (
	"fmt"

	"github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"
)

// QuoteProvider returns a one-line market snapshot for a symbol, used to
// ground the assistant's answers in current prices.
type QuoteProvider interface {
	QuoteLine(symbol string) (string, error)
}

type yahooQuoteProvider struct{}

func NewYahooQuoteProvider() QuoteProvider {
	return &yahooQuoteProvider{}
}

func (p *yahooQuoteProvider) QuoteLine(symbol string) (string, error) {
	q, err := quote.Get(symbol)
	if err != nil {
		return "", fmt.Errorf("failed to fetch quote for %s: %w", symbol, err)
	}
	price := decimal.NewFromFloat(q.RegularMarketPrice).Round(2)
	change := decimal.NewFromFloat(q.RegularMarketChangePercent).Round(2)
	return fmt.Sprintf("Current market data for %s: price %s, day change %s%%, day range %s - %s.",
		symbol,
		price.String(),
		change.String(),
		decimal.NewFromFloat(q.RegularMarketDayLow).Round(2).String(),
		decimal.NewFromFloat(q.RegularMarketDayHigh).Round(2).String(),
	), nil
}
