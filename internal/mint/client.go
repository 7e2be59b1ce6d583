// internal/mint/client.go
package mint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"mindmash-api/internal/domain"
)

const (
	DefaultTimeout         = 15 * time.Second
	DefaultMaxElapsed      = 10 * time.Second
	DefaultInitialInterval = 500 * time.Millisecond

	apiKeyHeader = "X-API-Key"
)

// Config configures the minting API client.
type Config struct {
	URL             string
	APIKey          string
	Timeout         time.Duration // Per attempt
	MaxElapsed      time.Duration // Total retry budget for rate-limited attempts
	InitialInterval time.Duration
}

// Metadata is the token metadata forwarded to the minting API.
type Metadata struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image"`
}

// Request is the body posted to the minting API.
type Request struct {
	Recipient            string   `json:"recipient"`
	Metadata             Metadata `json:"metadata"`
	SellerFeeBasisPoints int64    `json:"sellerFeeBasisPoints"`
}

// NewRequest builds the upstream body for a validated mint request.
func NewRequest(req domain.MintRequest) Request {
	return Request{
		Recipient: req.Wallet,
		Metadata: Metadata{
			Name:        req.Name,
			Symbol:      req.Symbol,
			Description: req.Description,
			Image:       req.Image,
		},
		SellerFeeBasisPoints: req.SellerFeeBasisPoints(),
	}
}

// Client posts mint requests to the minting API.
type Client struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger
}

// NewClient creates a Client. Zero durations fall back to the package defaults.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxElapsed <= 0 {
		cfg.MaxElapsed = DefaultMaxElapsed
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = DefaultInitialInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Mint forwards req to the minting API and returns the upstream JSON response.
// Only 429 responses are retried, with exponential backoff. Minting is not idempotent, so a transport
// error after the request may have reached the upstream is returned rather than retried.
func (c *Client) Mint(ctx context.Context, req domain.MintRequest) (json.RawMessage, error) {
	body, err := json.Marshal(NewRequest(req))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal mint request: %w", err)
	}

	var respBody []byte
	operation := func() error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set(apiKeyHeader, c.cfg.APIKey)

		resp, err := c.client.Do(httpReq)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to perform request: %w", err))
		}
		defer func() {
			if err := resp.Body.Close(); err != nil {
				c.logger.Warn("failed to close response body", "error", err)
			}
		}()

		if resp.StatusCode == http.StatusTooManyRequests {
			c.logger.Warn("minting API rate limited, retrying with backoff")
			return fmt.Errorf("rate limited (429), retrying")
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			return backoff.Permanent(fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(b)))
		}

		respBody, err = io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to read response body: %w", err))
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.cfg.InitialInterval
	b.MaxInterval = c.cfg.MaxElapsed
	b.MaxElapsedTime = c.cfg.MaxElapsed
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, fmt.Errorf("mint request failed after retries: %w", err)
	}

	if len(bytes.TrimSpace(respBody)) == 0 {
		return json.RawMessage(`{}`), nil
	}
	if !json.Valid(respBody) {
		return nil, fmt.Errorf("minting API returned invalid JSON")
	}
	return json.RawMessage(respBody), nil
}
