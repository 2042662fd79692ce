package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayoutClient queries the remote disbursement system for intraday payout
// figures and historical averages.
type PayoutClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewPayoutClient(baseURL string) *PayoutClient {
	return &PayoutClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type payoutResponse struct {
	Amount decimal.Decimal `json:"amount"`
}

func (c *PayoutClient) get(ctx context.Context, path string) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("payout: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("payout: service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("payout: service returned %d", resp.StatusCode)
	}

	var result payoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return decimal.Zero, fmt.Errorf("payout: decode response: %w", err)
	}
	return result.Amount, nil
}

// PayoutAt3PM returns the payout recorded as of 3pm for a location and date.
func (c *PayoutClient) PayoutAt3PM(ctx context.Context, locationID uuid.UUID, date time.Time) (decimal.Decimal, error) {
	path := fmt.Sprintf("/payouts/%s/3pm?date=%s", locationID, date.Format("2006-01-02"))
	return c.get(ctx, path)
}

// AveragePayout returns a trailing average over windowDays, or the seasonal
// lookup for the same period last year when seasonal is set.
func (c *PayoutClient) AveragePayout(ctx context.Context, locationID uuid.UUID, date time.Time, windowDays int, seasonal bool) (decimal.Decimal, error) {
	q := url.Values{}
	q.Set("date", date.Format("2006-01-02"))
	q.Set("window_days", fmt.Sprintf("%d", windowDays))
	if seasonal {
		q.Set("seasonal", "true")
	}
	path := fmt.Sprintf("/payouts/%s/average?%s", locationID, q.Encode())
	return c.get(ctx, path)
}
