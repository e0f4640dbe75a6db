// Package rajaongkir talks to the external shipping rate oracle.
package rajaongkir

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/zahrafashion/storefront/internal/shipping/domain"
)

const defaultETD = "1-2"

// HTTPDoer executes HTTP requests. Both httpclient.Client and
// httpclient.CircuitBreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Config holds the oracle connection settings.
type Config struct {
	BaseURL  string
	APIKey   string
	OriginID string
}

// Client fetches shipping rates from the oracle. It performs a single attempt
// per call; retry and breaker policy belong to the injected HTTPDoer.
type Client struct {
	http   HTTPDoer
	cfg    Config
	logger *slog.Logger
}

// NewClient creates a rate oracle client.
func NewClient(httpClient HTTPDoer, cfg Config, logger *slog.Logger) *Client {
	return &Client{
		http:   httpClient,
		cfg:    cfg,
		logger: logger,
	}
}

// OracleError reports a failed rate lookup with the upstream detail attached.
type OracleError struct {
	StatusCode int
	Message    string
}

func (e *OracleError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("rate oracle: %s (status %d)", e.Message, e.StatusCode)
	}
	return "rate oracle: " + e.Message
}

// costRequest is the oracle's rate lookup payload.
type costRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Weight      int    `json:"weight"`
	Courier     string `json:"courier"`
	Price       string `json:"price"`
}

// costResponse is the oracle's envelope. Older oracle deployments emit
// service/cost, newer ones service_name/price; both shapes are accepted.
type costResponse struct {
	Meta struct {
		Status  string `json:"status"`
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"meta"`
	Data []struct {
		Service     string `json:"service"`
		ServiceName string `json:"service_name"`
		Description string `json:"description"`
		CourierName string `json:"courier_name"`
		Cost        int64  `json:"cost"`
		Price       int64  `json:"price"`
		ETD         string `json:"etd"`
	} `json:"data"`
}

// FetchRates asks the oracle for every service the courier offers to the
// destination at the given billable weight. An empty service list is an
// error: the oracle answers that way for areas the courier does not reach.
func (c *Client) FetchRates(ctx context.Context, courier, destinationID string, weightGrams int) ([]domain.Quote, error) {
	payload := costRequest{
		Origin:      c.cfg.OriginID,
		Destination: destinationID,
		Weight:      weightGrams,
		Courier:     courier,
		Price:       "lowest",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal rate request: %w", err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/calculate/domestic-cost"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create rate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("key", c.cfg.APIKey)

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call rate oracle: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &OracleError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status for courier %s destination %s", courier, destinationID),
		}
	}

	var decoded costResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode rate response: %w", err)
	}

	if decoded.Meta.Status != "success" || (decoded.Meta.Code != 0 && decoded.Meta.Code != http.StatusOK) {
		return nil, &OracleError{
			StatusCode: decoded.Meta.Code,
			Message:    decoded.Meta.Message,
		}
	}

	if len(decoded.Data) == 0 {
		return nil, &OracleError{Message: fmt.Sprintf("no services for courier %s at destination %s", courier, destinationID)}
	}

	quotes := make([]domain.Quote, 0, len(decoded.Data))
	for _, row := range decoded.Data {
		q := domain.Quote{
			Courier:     courier,
			CourierName: row.CourierName,
			Service:     row.Service,
			Description: row.Description,
			Cost:        row.Cost,
			ETD:         row.ETD,
		}
		if q.Service == "" {
			q.Service = row.ServiceName
		}
		if q.Description == "" {
			q.Description = row.ServiceName
		}
		if row.Price > 0 {
			q.Cost = row.Price
		}
		if q.ETD == "" {
			q.ETD = defaultETD
		}
		if q.Cost <= 0 {
			c.logger.WarnContext(ctx, "skipping unpriced oracle service",
				slog.String("courier", courier),
				slog.String("service", q.Service))
			continue
		}
		quotes = append(quotes, q)
	}

	if len(quotes) == 0 {
		return nil, &OracleError{Message: fmt.Sprintf("no priced services for courier %s at destination %s", courier, destinationID)}
	}

	return quotes, nil
}
