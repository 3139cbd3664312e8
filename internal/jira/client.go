// Package jira submits work-log entries to the Jira REST API.
package jira

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"
	"github.com/xolan/jira-worklog-import/internal/worklog"
)

const (
	// worklogPath is the issue work-log endpoint of the REST API v2
	worklogPath = "/rest/api/2/issue/{issueKey}/worklog"

	// StartedLayout is the timestamp layout Jira expects for "started"
	StartedLayout = "2006-01-02T15:04:05.000-0700"

	// DefaultTimeout bounds a single submission request
	DefaultTimeout = 30 * time.Second
)

// Config holds the endpoint and credentials of a Jira instance
type Config struct {
	Host    string
	User    string
	Token   string
	Timeout time.Duration
	// Logger receives resty request/response dumps when Debug is set
	Logger *log.Logger
	Debug  bool
}

// Client is a Jira REST client. Every request is attempted once.
type Client struct {
	client *resty.Client
	host   string
}

// worklogRequest is the body of a work-log creation request
type worklogRequest struct {
	Comment   string `json:"comment"`
	Started   string `json:"started"`
	TimeSpent string `json:"timeSpent"`
}

// worklogResponse holds the part of the created work log that is used
type worklogResponse struct {
	ID string `json:"id"`
}

// NewClient creates a Client for cfg.Host using basic authentication
func NewClient(cfg Config) (*Client, error) {
	host, err := validateHost(cfg.Host)
	if err != nil {
		return nil, err
	}
	if cfg.User == "" || cfg.Token == "" {
		return nil, errors.New("jira user and token are required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := resty.New().
		SetBaseURL(host).
		SetTimeout(timeout).
		SetBasicAuth(cfg.User, cfg.Token).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	if cfg.Logger != nil {
		client.SetLogger(cfg.Logger)
		client.SetDebug(cfg.Debug)
	}

	return &Client{client: client, host: host}, nil
}

// Host returns the base URL requests are sent to
func (c *Client) Host() string {
	return c.host
}

// AddWorklog creates a work log on w.IssueKey and returns the created id
func (c *Client) AddWorklog(ctx context.Context, w worklog.Worklog) (string, error) {
	if w.IssueKey == "" {
		return "", errors.New("issue key is required")
	}

	var created worklogResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("issueKey", w.IssueKey).
		SetBody(worklogRequest{
			Comment:   w.Comment,
			Started:   w.Started.Format(StartedLayout),
			TimeSpent: w.TimeSpent,
		}).
		SetResult(&created).
		SetError(&APIError{}).
		Post(worklogPath)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}

	if err := handleResponse(resp); err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", fmt.Errorf("response without worklog id (status %d)", resp.StatusCode())
	}

	return created.ID, nil
}

// handleResponse converts an error status into an *APIError
func handleResponse(resp *resty.Response) error {
	if resp.StatusCode() < 400 {
		return nil
	}

	apiErr, ok := resp.Error().(*APIError)
	if !ok || apiErr == nil {
		apiErr = &APIError{}
	}
	apiErr.StatusCode = resp.StatusCode()
	if apiErr.empty() {
		apiErr.Body = strings.TrimSpace(resp.String())
	}
	return apiErr
}

// APIError is a Jira error response
type APIError struct {
	StatusCode    int               `json:"-"`
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
	// Body is the raw response when it did not carry Jira's error structure
	Body string `json:"-"`
}

func (e *APIError) empty() bool {
	return len(e.ErrorMessages) == 0 && len(e.Errors) == 0
}

// Error flattens errorMessages and field errors ("field: message") into one line
func (e *APIError) Error() string {
	parts := append([]string(nil), e.ErrorMessages...)

	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		parts = append(parts, field+": "+e.Errors[field])
	}

	if len(parts) == 0 {
		if e.Body != "" {
			parts = append(parts, e.Body)
		} else {
			parts = append(parts, "no error details")
		}
	}

	return fmt.Sprintf("%s (status %d)", strings.Join(parts, "; "), e.StatusCode)
}

// validateHost checks that host is an absolute http(s) URL and trims a trailing slash
func validateHost(host string) (string, error) {
	host = strings.TrimRight(strings.TrimSpace(host), "/")
	if host == "" {
		return "", errors.New("jira host is required")
	}

	u, err := url.Parse(host)
	if err != nil {
		return "", fmt.Errorf("invalid jira host: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("jira host scheme must be http or https, got: %q", host)
	}
	if u.Host == "" {
		return "", fmt.Errorf("jira host must include a hostname, got: %q", host)
	}

	return host, nil
}
