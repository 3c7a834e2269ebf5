package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/amaumene/cinefront/internal/config"
	apperrors "github.com/amaumene/cinefront/internal/errors"
	"github.com/amaumene/cinefront/internal/metrics"
	"github.com/amaumene/cinefront/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	userAgent      = "cinefront/1.0"
	maxBodySize    = 10 * 1024 * 1024 // 10MB
	maxMessageSize = 200
)

// Client talks to the catalog REST backend
type Client struct {
	baseURL    string
	username   string
	password   string
	token      string
	timeout    time.Duration
	httpClient *http.Client
	logger     *logrus.Logger
}

// response is a fully read backend response
type response struct {
	status int
	body   []byte
}

// NewClient creates a new catalog backend client
func NewClient(cfg *config.Config, logger *logrus.Logger) (*Client, error) {
	if cfg.BackendURL == "" {
		return nil, fmt.Errorf("catalog backend URL is required")
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BackendURL, "/"),
		username:   cfg.BackendUsername,
		password:   cfg.BackendPassword,
		token:      cfg.BackendToken,
		timeout:    cfg.RequestTimeout,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		logger:     logger,
	}, nil
}

// BaseURL returns the backend base URL without trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchRecords performs a GET on a read endpoint and returns the raw body.
// A non-2xx status yields a FETCH_FAILURE, a transport error a NETWORK_FAILURE.
func (c *Client) FetchRecords(ctx context.Context, endpoint string) (models.RawPayload, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, endpoint, nil, false)
	if err != nil {
		return nil, err
	}

	if !isSuccess(resp.status) {
		return nil, apperrors.NewFetchError(endpoint, resp.status, extractMessage(resp))
	}

	return models.RawPayload(resp.body), nil
}

// Create POSTs a JSON body to path (e.g. "/actors") with the configured credentials
// and returns the created resource envelope. The self link is always absolute.
func (c *Client) Create(ctx context.Context, path string, body interface{}) (*models.CreatedResource, error) {
	endpoint := c.baseURL + path

	resp, err := c.doRequest(ctx, http.MethodPost, endpoint, body, true)
	if err != nil {
		return nil, err
	}

	if !isSuccess(resp.status) {
		return nil, apperrors.NewWriteError(endpoint, resp.status, extractMessage(resp))
	}

	var created models.CreatedResource
	if err := json.Unmarshal(resp.body, &created); err != nil {
		return nil, apperrors.NewCatalogError(apperrors.ErrorTypeWrite, "failed to decode create response", endpoint, resp.status, err)
	}
	if created.SelfHref() == "" {
		return nil, apperrors.NewWriteError(endpoint, resp.status, "create response has no self link")
	}

	self, err := c.resolve(created.SelfHref())
	if err != nil {
		return nil, apperrors.NewCatalogError(apperrors.ErrorTypeWrite, "create response has an invalid self link", endpoint, resp.status, err)
	}
	created.Links.Self.Href = self

	return &created, nil
}

// resolve makes a backend href absolute against the backend base URL,
// so it still points at the backend when followed from another host
func (c *Client) resolve(href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	base, err := url.Parse(c.baseURL + "/")
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}

// Ping checks that the backend answers HTTP at all and returns the status it sent
func (c *Client) Ping(ctx context.Context) (int, error) {
	resp, err := c.doRequest(ctx, http.MethodHead, c.baseURL+"/", nil, false)
	if err != nil {
		return 0, err
	}
	return resp.status, nil
}

// doRequest performs an HTTP request to the catalog backend and reads the whole body
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body interface{}, authenticated bool) (*response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/hal+json, application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		c.authorize(req)
	}

	logger := c.logger.WithFields(logrus.Fields{
		"method":     method,
		"url":        endpoint,
		"request_id": requestID,
	})
	logger.Debug("Making catalog API request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.BackendRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			metrics.BackendRequests.WithLabelValues(method, "cancelled").Inc()
			logger.Debug("Catalog API request cancelled")
			return nil, apperrors.NewCancelledError(endpoint, err)
		}
		metrics.BackendRequests.WithLabelValues(method, "network").Inc()
		return nil, apperrors.NewNetworkError(endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		metrics.BackendRequests.WithLabelValues(method, "network").Inc()
		return nil, apperrors.NewNetworkError(endpoint, fmt.Errorf("failed to read response: %w", err))
	}

	outcome := "ok"
	if !isSuccess(resp.StatusCode) {
		outcome = "status"
	}
	metrics.BackendRequests.WithLabelValues(method, outcome).Inc()

	logger.WithFields(logrus.Fields{
		"status_code": resp.StatusCode,
		"size_bytes":  len(data),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("Catalog API request completed")

	return &response{status: resp.StatusCode, body: data}, nil
}

// authorize attaches the injected credentials; a bearer token wins over Basic auth
func (c *Client) authorize(req *http.Request) {
	switch {
	case c.token != "":
		req.Header.Set("Authorization", "Bearer "+c.token)
	case c.username != "":
		req.SetBasicAuth(c.username, c.password)
	}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// extractMessage builds a human-readable message from an error response
func extractMessage(resp *response) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(resp.body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}

	text := strings.TrimSpace(string(resp.body))
	if text != "" && !strings.HasPrefix(text, "{") && !strings.HasPrefix(text, "<") {
		if len(text) > maxMessageSize {
			text = text[:maxMessageSize] + "..."
		}
		return text
	}

	if statusText := http.StatusText(resp.status); statusText != "" {
		return statusText
	}
	return "unexpected status " + strconv.Itoa(resp.status)
}
