// Package backend is the HTTP client for the school's REST backend slot query.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultTimeout = 10 * time.Second

const availableSlotsPath = "/api/bookings/available-slots"

var (
	ErrNotConfigured = errors.New("backend client is not configured")
	ErrTimeout       = errors.New("backend request timed out")
	ErrNetwork       = errors.New("backend network error")
	ErrHTTPStatus    = errors.New("backend returned an error status")
)

// Slot is a single slot as the backend reports it.
type Slot struct {
	Time         string `json:"time"`
	Status       string `json:"status"`
	InstructorID string `json:"instructorId"`
}

// DaySlots groups slots by date.
type DaySlots struct {
	Date  string `json:"date"`
	Slots []Slot `json:"slots"`
}

// Client talks to the backend REST API.
type Client struct {
	baseURL string
	token   string
	ua      string
	http    *http.Client
}

// NewClient creates a backend client. A zero timeout falls back to 10s.
func NewClient(baseURL, token string, timeout time.Duration, ua string) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          50,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		ua:      ua,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(transport),
		},
	}
}

// AvailableSlots queries slot availability for a date range and optional instructor filter.
// Dates are YYYY-MM-DD, inclusive.
func (c *Client) AvailableSlots(ctx context.Context, startDate, endDate string, instructorIDs []string) ([]DaySlots, error) {
	if c == nil || c.http == nil || strings.TrimSpace(c.baseURL) == "" {
		return nil, ErrNotConfigured
	}

	q := url.Values{}
	q.Set("startDate", startDate)
	q.Set("endDate", endDate)
	if len(instructorIDs) > 0 {
		q.Set("instructorIds", strings.Join(instructorIDs, ","))
	}

	endpoint := c.baseURL + availableSlotsPath + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("backend slots request error: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.ua != "" {
		req.Header.Set("User-Agent", c.ua)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyRequestError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("backend slots read error: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status=%d body=%s", ErrHTTPStatus, resp.StatusCode, truncate(string(body), 512))
	}

	var days []DaySlots
	if err := json.Unmarshal(body, &days); err != nil {
		return nil, fmt.Errorf("backend slots decode error: %w", err)
	}
	return days, nil
}

func classifyRequestError(ctx context.Context, err error) error {
	if isTimeoutError(ctx, err) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if isNetworkError(err) {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return fmt.Errorf("backend slots request error: %w", err)
}

func isTimeoutError(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH)
}

func truncate(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen] + "...<truncated>"
	}
	return s
}
