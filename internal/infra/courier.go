package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// CourierClient notifies the courier system that an approved cash request
// needs to be shipped. Fire-and-forget through the worker pool.
type CourierClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewCourierClient(baseURL string) *CourierClient {
	return &CourierClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type courierDispatchResponse struct {
	Accepted bool `json:"accepted"`
}

// Dispatch submits the request for shipment and reports whether the courier
// accepted it.
func (c *CourierClient) Dispatch(ctx context.Context, requestID uuid.UUID) (bool, error) {
	body, err := json.Marshal(map[string]string{"request_id": requestID.String()})
	if err != nil {
		return false, fmt.Errorf("courier: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/shipments", bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("courier: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("courier: api unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return false, fmt.Errorf("courier: api returned %d", resp.StatusCode)
	}

	var result courierDispatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("courier: decode response: %w", err)
	}
	return result.Accepted, nil
}
