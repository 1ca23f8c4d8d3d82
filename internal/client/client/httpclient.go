package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/kycreview/internal/client/models"
	"github.com/dmitrijs2005/kycreview/internal/logging"
	"github.com/google/uuid"
)

// RequestIDHeaderName carries a per-request correlation id.
const RequestIDHeaderName = "X-Request-ID"

const maxErrorBody = 4 << 10

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	log     logging.Logger
}

// NewKYCClient returns an HTTP client for the service rooted at baseURL.
func NewKYCClient(baseURL string, timeout time.Duration, log logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported base url scheme %q", u.Scheme)
	}
	return &HTTPClient{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}, nil
}

// BaseURL returns the service root the client talks to.
func (c *HTTPClient) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type approveResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, http.MethodPost, "/admin/login", "", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrInvalidCredentials
	case !success(resp.StatusCode):
		return nil, fmt.Errorf("%w: %s", ErrAuthFailure, c.describe(resp))
	}

	var lr models.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrAuthFailure, err)
	}
	return &lr, nil
}

func (c *HTTPClient) ListPending(ctx context.Context, authorization string) ([]models.Record, error) {
	resp, err := c.do(ctx, http.MethodGet, "/admin/kyc/pending", authorization, "", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		return nil, c.mapStatus(resp)
	}

	records := make([]models.Record, 0)
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: decode pending list: %v", ErrServerError, err)
	}
	return records, nil
}

func (c *HTTPClient) Approve(ctx context.Context, authorization string, id int64) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, recordPath(id, "approve"), authorization, "", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		return "", c.mapStatus(resp)
	}

	// The body is optional; a missing or malformed message falls back to the
	// caller's default text.
	var ar approveResponse
	_ = json.NewDecoder(resp.Body).Decode(&ar)
	return ar.Message, nil
}

func (c *HTTPClient) Reject(ctx context.Context, authorization string, id int64, reason *string) error {
	var (
		body        io.Reader
		contentType string
	)
	if reason != nil {
		form := url.Values{}
		form.Set("reason", *reason)
		body = strings.NewReader(form.Encode())
		contentType = "application/x-www-form-urlencoded"
	}

	resp, err := c.do(ctx, http.MethodPost, recordPath(id, "reject"), authorization, contentType, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		return c.mapStatus(resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *HTTPClient) do(ctx context.Context, method, path, authorization, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeaderName, requestID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "kyc service unreachable", "method", method, "path", path, "request_id", requestID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrNetworkFailure, err)
	}

	c.log.Debug(ctx, "kyc service call", "method", method, "path", path, "request_id", requestID, "status", resp.StatusCode)
	return resp, nil
}

// mapStatus converts a non-success response of a protected endpoint into a
// sentinel error.
func (c *HTTPClient) mapStatus(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrAlreadyProcessed, c.describe(resp))
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, c.describe(resp))
	default:
		return fmt.Errorf("%w: %s", ErrServerError, c.describe(resp))
	}
}

// describe renders the status and, when the service sent one, its detail text.
func (c *HTTPClient) describe(resp *http.Response) string {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var er errorResponse
	if err := json.Unmarshal(b, &er); err == nil && er.Detail != "" {
		return fmt.Sprintf("%s (%s)", resp.Status, er.Detail)
	}
	return resp.Status
}

func recordPath(id int64, action string) string {
	return "/admin/kyc/" + strconv.FormatInt(id, 10) + "/" + action
}

func success(code int) bool {
	return code >= 200 && code < 300
}
