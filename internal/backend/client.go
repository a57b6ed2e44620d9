// Package backend is the typed HTTP client the assistant uses to reach
// the CRUD backend. Record-creating calls run under a short timeout so a
// stuck backend never stalls a conversation; reads run without one.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dialogiq/dialogiq/internal/config"
	"github.com/dialogiq/dialogiq/internal/store"
)

// Client talks to the backend REST API.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	createTimeout time.Duration
}

// New builds a client from the backend configuration.
func New(cfg config.BackendConfig) *Client {
	timeout := cfg.CreateTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:    &http.Client{},
		createTimeout: timeout,
	}
}

// apiError is the error envelope every failing endpoint returns.
type apiError struct {
	Detail string `json:"detail"`
}

// StatusError reports a non-2xx backend response.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend: %d %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend: unexpected status %d", e.StatusCode)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope apiError
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		return &StatusError{StatusCode: resp.StatusCode, Detail: envelope.Detail}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// create runs a POST under the configured create timeout.
func (c *Client) create(ctx context.Context, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.createTimeout)
	defer cancel()
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) CreateTimesheet(ctx context.Context, ts store.Timesheet) (store.Timesheet, error) {
	var out store.Timesheet
	err := c.create(ctx, "/timesheets/", ts, &out)
	return out, err
}

func (c *Client) ListTimesheets(ctx context.Context) ([]store.Timesheet, error) {
	var out []store.Timesheet
	err := c.do(ctx, http.MethodGet, "/timesheets/", nil, &out)
	return out, err
}

func (c *Client) ListPendingTimesheets(ctx context.Context) ([]store.Timesheet, error) {
	var out []store.Timesheet
	err := c.do(ctx, http.MethodGet, "/timesheets/pending", nil, &out)
	return out, err
}

func (c *Client) ApproveTimesheet(ctx context.Context, id int64, approver string) (store.Timesheet, error) {
	var out store.Timesheet
	path := fmt.Sprintf("/timesheets/%d/approve?approver=%s", id, url.QueryEscape(approver))
	err := c.do(ctx, http.MethodPost, path, nil, &out)
	return out, err
}

func (c *Client) SubmitPendingTimesheets(ctx context.Context, approver string) ([]store.Timesheet, error) {
	var out []store.Timesheet
	path := "/timesheets/send-pending?approver=" + url.QueryEscape(approver)
	err := c.do(ctx, http.MethodPost, path, nil, &out)
	return out, err
}

func (c *Client) CreateLeave(ctx context.Context, l store.Leave) (store.Leave, error) {
	var out store.Leave
	err := c.create(ctx, "/leaves/", l, &out)
	return out, err
}

func (c *Client) ListLeaves(ctx context.Context) ([]store.Leave, error) {
	var out []store.Leave
	err := c.do(ctx, http.MethodGet, "/leaves/", nil, &out)
	return out, err
}

func (c *Client) UpdateLeave(ctx context.Context, id int64, upd store.LeaveUpdate) (store.Leave, error) {
	var out store.Leave
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/leaves/%d", id), upd, &out)
	return out, err
}

func (c *Client) CreateEmail(ctx context.Context, e store.Email) (store.Email, error) {
	var out store.Email
	err := c.create(ctx, "/emails/", e, &out)
	return out, err
}

func (c *Client) CreateDraftEmail(ctx context.Context, e store.Email) (store.Email, error) {
	var out store.Email
	err := c.create(ctx, "/emails/draft", e, &out)
	return out, err
}

func (c *Client) ListEmails(ctx context.Context) ([]store.Email, error) {
	var out []store.Email
	err := c.do(ctx, http.MethodGet, "/emails/", nil, &out)
	return out, err
}

func (c *Client) ListDraftEmails(ctx context.Context) ([]store.Email, error) {
	var out []store.Email
	err := c.do(ctx, http.MethodGet, "/emails/drafts", nil, &out)
	return out, err
}

func (c *Client) ListReminderEmails(ctx context.Context) ([]store.Email, error) {
	var out []store.Email
	err := c.do(ctx, http.MethodGet, "/emails/remind-pending-timesheets", nil, &out)
	return out, err
}

func (c *Client) ListSubmitEmails(ctx context.Context) ([]store.Email, error) {
	var out []store.Email
	err := c.do(ctx, http.MethodGet, "/emails/submit-pending-timesheets", nil, &out)
	return out, err
}

func (c *Client) EmailContext(ctx context.Context, id int64) (store.Email, error) {
	var out store.Email
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/emails/%d/context", id), nil, &out)
	return out, err
}

func (c *Client) CreateTask(ctx context.Context, t store.Task) (store.Task, error) {
	var out store.Task
	err := c.create(ctx, "/tasks/", t, &out)
	return out, err
}

func (c *Client) ListTasks(ctx context.Context) ([]store.Task, error) {
	var out []store.Task
	err := c.do(ctx, http.MethodGet, "/tasks/", nil, &out)
	return out, err
}

func (c *Client) CreateJob(ctx context.Context, j store.Job) (store.Job, error) {
	var out store.Job
	err := c.create(ctx, "/jobs/", j, &out)
	return out, err
}

func (c *Client) ListJobs(ctx context.Context) ([]store.Job, error) {
	var out []store.Job
	err := c.do(ctx, http.MethodGet, "/jobs/", nil, &out)
	return out, err
}

// Health pings the backend health endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}
