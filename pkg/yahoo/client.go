package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"hfp-go-api/internal/models"
)

const baseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

type Client struct {
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Adjclose []struct {
					Adjclose []float64 `json:"adjclose"`
				} `json:"adjclose"`
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
	} `json:"chart"`
}

// GetTrailingReturn computes the annualized return over the last `years`
// years from monthly adjusted closes.
func (c *Client) GetTrailingReturn(ctx context.Context, symbol string, years int) (*models.MarketRate, error) {
	url := fmt.Sprintf("%s/%s?interval=1mo&range=%dy", baseURL, symbol, years)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo finance returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var chart chartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, err
	}

	prices, err := closes(chart, symbol)
	if err != nil {
		return nil, err
	}

	pct, err := annualizedReturn(prices, years)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", symbol, err)
	}

	return &models.MarketRate{
		Symbol:          symbol,
		AnnualReturnPct: pct,
		PeriodYears:     years,
		LastUpdated:     time.Now(),
		Source:          "yahoo",
	}, nil
}

func closes(chart chartResponse, symbol string) ([]float64, error) {
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("no data returned for symbol %s", symbol)
	}
	result := chart.Chart.Result[0]

	var prices []float64
	if len(result.Indicators.Adjclose) > 0 {
		prices = result.Indicators.Adjclose[0].Adjclose
	} else if len(result.Indicators.Quote) > 0 {
		prices = result.Indicators.Quote[0].Close
	}

	// Filter out nil/zero values
	var validPrices []float64
	for _, price := range prices {
		if price > 0 {
			validPrices = append(validPrices, price)
		}
	}
	if len(validPrices) < 2 {
		return nil, fmt.Errorf("not enough price history for %s", symbol)
	}
	return validPrices, nil
}

func annualizedReturn(prices []float64, years int) (float64, error) {
	if years <= 0 {
		return 0, fmt.Errorf("invalid period %d years", years)
	}
	first, last := prices[0], prices[len(prices)-1]
	if first <= 0 {
		return 0, fmt.Errorf("invalid starting price %.4f", first)
	}
	return (math.Pow(last/first, 1/float64(years)) - 1) * 100, nil
}
