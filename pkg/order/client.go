// Package order looks up a single storefront order on the BigCommerce API
// and reduces the answer to an Outcome.
package order

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/thundertactical/thunder-ai-backend/pkg/config"
	"github.com/thundertactical/thunder-ai-backend/pkg/extract"
	"github.com/thundertactical/thunder-ai-backend/pkg/masking"
	"github.com/thundertactical/thunder-ai-backend/pkg/version"
)

const (
	maxBodyBytes   = 1 << 20
	maxLoggedBytes = 512
)

// Client performs one authenticated GET per lookup. It keeps no state between
// lookups and is safe for concurrent use.
type Client struct {
	httpClient  *http.Client
	configured  bool
	baseURL     string
	accessToken string
	clientID    string
	masker      *masking.Service
	logger      *slog.Logger
}

// NewClient creates a lookup client from the order platform settings.
// An unconfigured client is valid; its lookups answer NotConfigured.
func NewClient(cfg *config.OrderPlatformConfig, masker *masking.Service) *Client {
	timeout := 15 * time.Second
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		configured:  cfg.Configured(),
		baseURL:     cfg.ResolvedBaseURL(),
		accessToken: cfg.AccessToken,
		clientID:    cfg.ClientID,
		masker:      masker,
		logger:      slog.Default().With("component", "order-client"),
	}
}

// Configured reports whether lookups can reach the platform.
func (c *Client) Configured() bool {
	return c != nil && c.configured
}

// Lookup fetches the order identified by ids.OrderNumber, or the most recent
// order for ids.Email when no number is present. Failures are reported as
// Outcome variants, never as errors. No retries.
func (c *Client) Lookup(ctx context.Context, ids extract.Identifiers) Outcome {
	if !c.Configured() {
		if c != nil {
			c.logger.Warn("Order platform credentials missing, skipping lookup")
		}
		return &NotConfigured{}
	}
	if ids.Empty() {
		return &NotFound{}
	}

	notFound := &NotFound{OrderNumber: ids.OrderNumber, Email: ids.Email}
	log := c.logger.With("order_number", ids.OrderNumber, "by_email", ids.OrderNumber == "")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.lookupURL(ids), nil)
	if err != nil {
		log.Error("Failed to build order request", "error", c.masker.MaskError(err))
		return &TransportError{Err: fmt.Errorf("create request: %w", err)}
	}
	c.setHeaders(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("Order platform request failed", "error", c.masker.MaskError(err))
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.Error("Failed to read order platform response", "status", resp.StatusCode, "error", c.masker.MaskError(err))
		return &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read response body: %w", err)}
	}

	log = log.With("status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	switch {
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusNoContent:
		log.Info("Order not found")
		return notFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		log.Error("Order platform returned error status",
			"body", masking.Truncate(c.masker.Mask(string(body)), maxLoggedBytes))
		return &TransportError{StatusCode: resp.StatusCode}
	}

	orders, err := decodeOrders(body)
	if err != nil {
		log.Error("Failed to decode order platform response",
			"error", err,
			"body", masking.Truncate(c.masker.Mask(string(body)), maxLoggedBytes))
		return &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(orders) == 0 {
		log.Info("Order not found")
		return notFound
	}

	record := orders[0].normalize()
	log.Info("Order found", "order_status", record.Status)
	return &Found{Record: record}
}

// lookupURL uses the direct resource path for an order number and the email
// filter otherwise.
func (c *Client) lookupURL(ids extract.Identifiers) string {
	if ids.OrderNumber != "" {
		return c.baseURL + "/orders/" + url.PathEscape(ids.OrderNumber)
	}
	q := url.Values{}
	q.Set("email", ids.Email)
	q.Set("sort", "date_created:desc")
	q.Set("limit", "1")
	return c.baseURL + "/orders?" + q.Encode()
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("X-Auth-Token", c.accessToken)
	if c.clientID != "" {
		req.Header.Set("X-Auth-Client", c.clientID)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", version.Full())
}
