package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"sort"
	"strconv"
	"time"

	"hfp-go-api/internal/models"
)

const baseURL = "https://www.alphavantage.co/query"

type Client struct {
	apiKey     string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type monthlyAdjustedResponse struct {
	MetaData struct {
		Symbol string `json:"2. Symbol"`
	} `json:"Meta Data"`
	MonthlyAdjusted map[string]struct {
		AdjustedClose string `json:"5. adjusted close"`
	} `json:"Monthly Adjusted Time Series"`
}

// GetTrailingReturn computes the annualized return over the last `years`
// years from the monthly adjusted close series.
func (c *Client) GetTrailingReturn(ctx context.Context, symbol string, years int) (*models.MarketRate, error) {
	url := fmt.Sprintf("%s?function=TIME_SERIES_MONTHLY_ADJUSTED&symbol=%s&apikey=%s", baseURL, symbol, c.apiKey)

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
		return nil, fmt.Errorf("alpha vantage returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var series monthlyAdjustedResponse
	if err := json.Unmarshal(body, &series); err != nil {
		return nil, err
	}

	if len(series.MonthlyAdjusted) == 0 {
		return nil, fmt.Errorf("no data returned for symbol %s", symbol)
	}

	// Keys are YYYY-MM-DD dates; lexical order is chronological.
	dates := make([]string, 0, len(series.MonthlyAdjusted))
	for date := range series.MonthlyAdjusted {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	months := years * 12
	if len(dates) <= months {
		return nil, fmt.Errorf("not enough price history for %s over %d years", symbol, years)
	}
	startDate := dates[len(dates)-1-months]
	endDate := dates[len(dates)-1]

	first, err := strconv.ParseFloat(series.MonthlyAdjusted[startDate].AdjustedClose, 64)
	if err != nil || first <= 0 {
		return nil, fmt.Errorf("invalid price for %s at %s", symbol, startDate)
	}
	last, err := strconv.ParseFloat(series.MonthlyAdjusted[endDate].AdjustedClose, 64)
	if err != nil || last <= 0 {
		return nil, fmt.Errorf("invalid price for %s at %s", symbol, endDate)
	}

	return &models.MarketRate{
		Symbol:          symbol,
		AnnualReturnPct: (math.Pow(last/first, 1/float64(years)) - 1) * 100,
		PeriodYears:     years,
		LastUpdated:     time.Now(),
		Source:          "alphavantage",
	}, nil
}
