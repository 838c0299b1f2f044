// Package identity is the HTTP client for the customer identity service.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/corebank/pkg/config"
	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/dto"
	"github.com/amirasaad/corebank/pkg/provider"
	"github.com/go-resty/resty/v2"
)

// SuccessCode marks a successful identity service response.
const SuccessCode = "200.00.000"

type envelope struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []string        `json:"errors"`
}

// Client looks customers up with a single bounded GET; it never retries.
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

// NewClient creates a client for cfg.BaseURL, e.g. http://identity:8080/customers.
func NewClient(cfg *config.Identity, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	rc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{
		http:   rc,
		logger: logger.With("provider", "identity"),
	}
}

// FetchCustomer calls GET {base}/{customerId}.
func (c *Client) FetchCustomer(ctx context.Context, customerID string) (*dto.CustomerRead, error) {
	log := c.logger.With("customer_id", customerID)
	log.Info("Retrieving external customer")

	var body envelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("customerId", customerID).
		SetResult(&body).
		SetError(&body).
		Get("/{customerId}")
	if err != nil {
		log.Error("Identity service call failed", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrIntegration, err)
	}
	if body.Code != SuccessCode {
		log.Error("Unexpected response from identity service",
			"status", resp.StatusCode(), "code", body.Code, "message", body.Message)
		return nil, fmt.Errorf("%w: unexpected code %q", domain.ErrIntegration, body.Code)
	}
	if len(body.Data) == 0 || string(body.Data) == "null" {
		log.Error("No data found for customer")
		return nil, fmt.Errorf("%w: empty customer data", domain.ErrIntegration)
	}

	var customer dto.CustomerRead
	if err := json.Unmarshal(body.Data, &customer); err != nil {
		log.Error("Error converting response data", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrIntegration, err)
	}
	if customer.CustomerID == "" {
		customer.CustomerID = customerID
	}
	return &customer, nil
}

var _ provider.CustomerLookup = (*Client)(nil)
