package walmart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"feedbridge/internal/config"
	"feedbridge/internal/logger"
	"feedbridge/internal/models"

	"github.com/google/uuid"
)

// ExportError is returned when the marketplace rejects a feed
// submission. The upstream message is preserved for the caller.
type ExportError struct {
	StatusCode int
	Message    string
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("walmart feed submission failed: %d - %s", e.StatusCode, e.Message)
}

type Connector struct {
	config *config.Config
	logger *logger.Logger
	client *http.Client
}

func New(cfg *config.Config, logger *logger.Logger) *Connector {
	return &Connector{
		config: cfg,
		logger: logger,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// SubmitFeed posts a batch feed payload and returns the marketplace's
// tracking id. One-shot: no retry or backoff here.
func (c *Connector) SubmitFeed(payload models.FeedPayload) (*models.ExportResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal feed payload: %w", err)
	}

	url := fmt.Sprintf("%s?feedType=item", c.config.WalmartFeedURL)
	result, err := c.post(url, body)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Submitted feed batch %s (%d items), tracking id %s",
		payload.Header.BatchID, len(payload.Items), result.TrackingID)
	return result, nil
}

// SubmitItem posts a single-item payload.
func (c *Connector) SubmitItem(payload models.ItemPayload) (*models.ExportResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal item payload: %w", err)
	}

	url := fmt.Sprintf("%s?feedType=item", c.config.WalmartFeedURL)
	return c.post(url, body)
}

func (c *Connector) post(url string, body []byte) (*models.ExportResult, error) {
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("WM_SVC.NAME", "Walmart Marketplace")
	req.Header.Set("WM_QOS.CORRELATION_ID", uuid.New().String())
	req.Header.Set("WM_SEC.ACCESS_TOKEN", c.config.WalmartSecret)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, &ExportError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	var feedResp struct {
		FeedID string `json:"feedId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&feedResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &models.ExportResult{
		Success:    true,
		TrackingID: feedResp.FeedID,
	}, nil
}
