package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EFTClient talks to the external EFT ledger gateway. Balance lookups feed
// the daily position calculation; uploads push submitted EOD data back out
// and are fire-and-forget through the worker pool.
type EFTClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewEFTClient(baseURL string) *EFTClient {
	return &EFTClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type eftBalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// Balance returns the end-of-day ledger balance for a location and date.
func (c *EFTClient) Balance(ctx context.Context, locationID uuid.UUID, date time.Time) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/balances/%s?date=%s", c.baseURL, locationID, date.Format("2006-01-02"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("eft: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("eft: gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("eft: gateway returned %d", resp.StatusCode)
	}

	var result eftBalanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return decimal.Zero, fmt.Errorf("eft: decode response: %w", err)
	}
	return result.Balance, nil
}

// EFTUploadPayload is the submitted EOD data pushed back to the ledger.
type EFTUploadPayload struct {
	LocationID     string          `json:"location_id"`
	ProcessingDate string          `json:"processing_date"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	TotalVariance  decimal.Decimal `json:"total_variance"`
}

// Upload pushes reconciliation data to the gateway.
func (c *EFTClient) Upload(ctx context.Context, payload EFTUploadPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("eft: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/uploads", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("eft: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("eft: gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("eft: gateway returned %d", resp.StatusCode)
	}
	return nil
}
