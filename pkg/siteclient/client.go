// Package siteclient is a Go client for the portfolio backend. It mirrors
// the browser-side callers: every request is timeout-bounded and failures
// are returned to the caller to degrade on, never panicked.
package siteclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Per-call timeouts matching the browser client's abort windows. They apply
// only when the caller's context carries no deadline of its own.
const (
	healthTimeout = 2 * time.Second
	visitTimeout  = 3 * time.Second
	submitTimeout = 10 * time.Second
	adminTimeout  = 10 * time.Second
)

type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HTTPClient: &http.Client{},
	}
}

type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Error     string `json:"error,omitempty"`
	Services  struct {
		Server   bool `json:"server"`
		Database bool `json:"database"`
	} `json:"services"`
	Version string `json:"version,omitempty"`
}

type Contact struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type Visit struct {
	Page      string `json:"page"`
	UserAgent string `json:"userAgent"`
	Referrer  string `json:"referrer"`
}

type DailyVisits struct {
	Date   string `json:"date"`
	Visits int64  `json:"visits"`
}

type AnalyticsReport struct {
	Analytics []DailyVisits `json:"analytics"`
	Summary   struct {
		TotalVisits     int64   `json:"totalVisits"`
		TotalContacts   int     `json:"totalContacts"`
		AvgVisitsPerDay float64 `json:"avgVisitsPerDay"`
	} `json:"summary"`
}

// Health probes the backend. A degraded backend (503) still decodes; only
// transport failures return a nil status.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var hs HealthStatus
	if err := c.do(ctx, http.MethodGet, "/health", healthTimeout, nil, &hs, true); err != nil {
		return nil, err
	}
	return &hs, nil
}

// RecordVisit fires the analytics beacon. Callers typically ignore the
// returned error: local tracking covers the gap when the backend is down.
func (c *Client) RecordVisit(ctx context.Context, v Visit) error {
	return c.do(ctx, http.MethodPost, "/analytics/visit", visitTimeout, v, nil, false)
}

// SubmitContact sends a contact-form submission and returns the new id.
func (c *Client) SubmitContact(ctx context.Context, req ContactRequest) (string, error) {
	var resp struct {
		Success bool   `json:"success"`
		ID      string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/contact", submitTimeout, req, &resp, false); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// ListContacts fetches all submissions, newest first. Admin call.
func (c *Client) ListContacts(ctx context.Context) ([]Contact, error) {
	var resp struct {
		Contacts []Contact `json:"contacts"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/contacts", adminTimeout, nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.Contacts, nil
}

// UpdateContactStatus marks a submission read/replied. Admin call.
func (c *Client) UpdateContactStatus(ctx context.Context, id, status string) (*Contact, error) {
	var resp struct {
		Success bool    `json:"success"`
		Contact Contact `json:"contact"`
	}
	body := map[string]string{"status": status}
	if err := c.do(ctx, http.MethodPut, "/admin/contacts/"+id, adminTimeout, body, &resp, true); err != nil {
		return nil, err
	}
	return &resp.Contact, nil
}

// ListProjects fetches the public project list.
func (c *Client) ListProjects(ctx context.Context) ([]map[string]any, error) {
	var resp struct {
		Projects []map[string]any `json:"projects"`
	}
	if err := c.do(ctx, http.MethodGet, "/projects", adminTimeout, nil, &resp, false); err != nil {
		return nil, err
	}
	return resp.Projects, nil
}

// SaveProject creates or updates a project. Admin call.
func (c *Client) SaveProject(ctx context.Context, project map[string]any) (map[string]any, error) {
	var resp struct {
		Success bool           `json:"success"`
		Project map[string]any `json:"project"`
	}
	if err := c.do(ctx, http.MethodPost, "/admin/projects", adminTimeout, project, &resp, true); err != nil {
		return nil, err
	}
	return resp.Project, nil
}

// DeleteProject removes a project. Admin call, idempotent.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/projects/"+id, adminTimeout, nil, nil, true)
}

// Analytics fetches the 30-day report. Admin call.
func (c *Client) Analytics(ctx context.Context) (*AnalyticsReport, error) {
	var resp AnalyticsReport
	if err := c.do(ctx, http.MethodGet, "/admin/analytics", adminTimeout, nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, timeout time.Duration, in, out any, authed bool) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed && c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Health decodes its degraded payload; everything else treats non-2xx
	// as an error carrying the server's message.
	if resp.StatusCode >= 400 && path != "/health" {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s (status %d)", method, path, apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
