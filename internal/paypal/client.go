package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/emycrochet/storefront-api/internal/config"
	"github.com/emycrochet/storefront-api/pkg/errors"
)

const (
	sandboxBaseURL = "https://api-m.sandbox.paypal.com"
	liveBaseURL    = "https://api-m.paypal.com"
)

// Client talks to the payment provider's REST API. It is stateless: a
// fresh access token is requested per call (deliberate simplicity over
// latency), and a single re-authentication retry covers a token that
// expires between acquisition and use.
type Client struct {
	baseURL    string
	clientID   string
	secret     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a provider client for the configured environment
func NewClient(cfg config.PayPalConfig, logger *zap.Logger) *Client {
	baseURL := sandboxBaseURL
	if cfg.Env == "live" {
		baseURL = liveBaseURL
	}

	return &Client{
		baseURL:  baseURL,
		clientID: cfg.ClientID,
		secret:   cfg.Secret,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// AccessToken performs the client-credentials handshake and returns a
// short-lived bearer token. Credentials are server-held configuration,
// never exposed past this client.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	url := c.baseURL + "/v1/oauth2/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url,
		strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &errors.ErrPaymentAuth{Detail: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &errors.ErrPaymentAuth{Detail: err.Error()}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &errors.ErrPaymentAuth{Detail: string(body)}
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", &errors.ErrPaymentAuth{Detail: fmt.Sprintf("bad token response: %v", err)}
	}
	if token.AccessToken == "" {
		return "", &errors.ErrPaymentAuth{Detail: "empty access token"}
	}
	return token.AccessToken, nil
}

// CreateOrder submits an order to the provider and returns the opaque
// order handle. The handle is owned by the provider; nothing is stored
// here.
func (c *Client) CreateOrder(ctx context.Context, order Order) (string, error) {
	payload, err := json.Marshal(order)
	if err != nil {
		return "", fmt.Errorf("failed to marshal order: %w", err)
	}

	status, body, err := c.doAuthorized(ctx, "/v2/checkout/orders", payload)
	if err != nil {
		return "", err
	}
	if status < 200 || status > 299 {
		return "", &errors.ErrPaymentCreate{Detail: string(body)}
	}

	var created createOrderResponse
	if err := json.Unmarshal(body, &created); err != nil {
		return "", &errors.ErrPaymentCreate{Detail: fmt.Sprintf("bad create response: %v", err)}
	}
	if created.ID == "" {
		return "", &errors.ErrPaymentCreate{Detail: "provider returned no order id"}
	}

	c.logger.Info("provider order created", zap.String("order_id", created.ID))
	return created.ID, nil
}

// CaptureOrder finalizes a previously created, buyer-approved order and
// returns the provider's capture result verbatim. Double-capture
// rejection is the provider's job; its refusal is surfaced, never
// papered over.
func (c *Client) CaptureOrder(ctx context.Context, orderID string) (json.RawMessage, error) {
	path := fmt.Sprintf("/v2/checkout/orders/%s/capture", orderID)
	status, body, err := c.doAuthorized(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, &errors.ErrPaymentCapture{Detail: string(body)}
	}

	c.logger.Info("provider order captured", zap.String("order_id", orderID))
	return json.RawMessage(body), nil
}

// doAuthorized acquires a token and POSTs the payload. A 401 means the
// token died between acquisition and use, so it re-authenticates once
// and retries; authentication is idempotent, the order call itself is
// never retried on any other failure.
func (c *Client) doAuthorized(ctx context.Context, path string, payload []byte) (int, []byte, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return 0, nil, err
	}

	status, body, err := c.post(ctx, path, token, payload)
	if err != nil {
		return 0, nil, err
	}

	if status == http.StatusUnauthorized {
		c.logger.Warn("provider token rejected, re-authenticating", zap.String("path", path))
		token, err = c.AccessToken(ctx)
		if err != nil {
			return 0, nil, err
		}
		return c.post(ctx, path, token, payload)
	}

	return status, body, nil
}

func (c *Client) post(ctx context.Context, path, token string, payload []byte) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}

	return resp.StatusCode, body, nil
}
