package services

import (
	"context"
	"fmt"

	"hfp-go-api/internal/config"
	"hfp-go-api/internal/models"
	"hfp-go-api/pkg/alphavantage"
	"hfp-go-api/pkg/yahoo"
)

// RatesService looks up trailing annualized returns for a symbol so users can
// prefill an account's annualReturnPct from a real index. The figure is
// advisory only; the engine never reads market data itself.
type RatesService struct {
	config       *config.Config
	cache        *CacheService
	alphaVantage *alphavantage.Client
	yahoo        *yahoo.Client
}

func NewRatesService(cfg *config.Config, cache *CacheService) *RatesService {
	return &RatesService{
		config:       cfg,
		cache:        cache,
		alphaVantage: alphavantage.NewClient(cfg.AlphaVantageKey),
		yahoo:        yahoo.NewClient(),
	}
}

// TrailingReturn fetches the trailing annualized return over the configured
// period, fanning out to both sources and taking the first success.
func (s *RatesService) TrailingReturn(ctx context.Context, symbol string) (*models.MarketRate, error) {
	if cached, found := s.cache.GetRate(ctx, symbol); found {
		return cached, nil
	}

	years := s.config.RatePeriodYears

	type result struct {
		rate *models.MarketRate
		err  error
	}

	alphaCh := make(chan result, 1)
	yahooCh := make(chan result, 1)

	go func() {
		if s.config.AlphaVantageKey != "" {
			rate, err := s.alphaVantage.GetTrailingReturn(ctx, symbol, years)
			alphaCh <- result{rate, err}
		} else {
			alphaCh <- result{nil, fmt.Errorf("alpha vantage not configured")}
		}
	}()

	go func() {
		rate, err := s.yahoo.GetTrailingReturn(ctx, symbol, years)
		yahooCh <- result{rate, err}
	}()

	// First successful source wins; the other is the fallback.
	select {
	case res := <-yahooCh:
		if res.err == nil {
			s.cache.SetRate(ctx, symbol, res.rate)
			return res.rate, nil
		}
		res = <-alphaCh
		if res.err == nil {
			s.cache.SetRate(ctx, symbol, res.rate)
			return res.rate, nil
		}
		return nil, fmt.Errorf("all sources failed for %s", symbol)

	case res := <-alphaCh:
		if res.err == nil {
			s.cache.SetRate(ctx, symbol, res.rate)
			return res.rate, nil
		}
		res = <-yahooCh
		if res.err == nil {
			s.cache.SetRate(ctx, symbol, res.rate)
			return res.rate, nil
		}
		return nil, fmt.Errorf("all sources failed for %s", symbol)

	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
