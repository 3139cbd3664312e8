package jira

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xolan/jira-worklog-import/internal/worklog"
)

func testWorklog() worklog.Worklog {
	loc := time.FixedZone("COT", -5*60*60)
	return worklog.Worklog{
		IssueKey:  "BSP-9",
		Comment:   "Timesheets\nsecond line",
		Started:   time.Date(2024, 3, 1, 9, 15, 0, 0, loc),
		TimeSpent: "1.5h",
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{Host: server.URL + "/", User: "me@example.com", Token: "secret"})
	require.NoError(t, err)
	return client
}

func TestClient_AddWorklog(t *testing.T) {
	t.Run("Should post the worklog and return the created id", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/rest/api/2/issue/BSP-9/worklog", r.URL.Path)

			user, pass, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "me@example.com", user)
			assert.Equal(t, "secret", pass)

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Timesheets\nsecond line", body["comment"])
			assert.Equal(t, "2024-03-01T09:15:00.000-0500", body["started"])
			assert.Equal(t, "1.5h", body["timeSpent"])

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id": "10042", "issueId": "100", "timeSpent": "1h 30m"}`))
		})

		id, err := client.AddWorklog(context.Background(), testWorklog())
		require.NoError(t, err)
		assert.Equal(t, "10042", id)
	})

	t.Run("Should flatten Jira error responses", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"errorMessages": ["Issue does not exist"], "errors": {"timeLogged": "invalid", "started": "bad date"}}`))
		})

		_, err := client.AddWorklog(context.Background(), testWorklog())
		require.Error(t, err)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, "Issue does not exist; started: bad date; timeLogged: invalid (status 400)", err.Error())
	})

	t.Run("Should keep a non-JSON error body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("Unauthorized"))
		})

		_, err := client.AddWorklog(context.Background(), testWorklog())
		require.Error(t, err)
		assert.Equal(t, "Unauthorized (status 401)", err.Error())
	})

	t.Run("Should attempt each request once", func(t *testing.T) {
		var calls int32
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := client.AddWorklog(context.Background(), testWorklog())
		require.Error(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("Should fail when the response has no id", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{}`))
		})

		_, err := client.AddWorklog(context.Background(), testWorklog())
		assert.Error(t, err)
	})

	t.Run("Should require an issue key", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})

		w := testWorklog()
		w.IssueKey = ""
		_, err := client.AddWorklog(context.Background(), w)
		assert.Error(t, err)
	})

	t.Run("Should honor context cancellation", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := client.AddWorklog(ctx, testWorklog())
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewClient(t *testing.T) {
	t.Run("Should trim the trailing slash of the host", func(t *testing.T) {
		client, err := NewClient(Config{Host: "https://jira.example.com/", User: "u", Token: "t"})
		require.NoError(t, err)
		assert.Equal(t, "https://jira.example.com", client.Host())
	})

	t.Run("Should reject invalid settings", func(t *testing.T) {
		cases := []Config{
			{Host: "", User: "u", Token: "t"},
			{Host: "jira.example.com", User: "u", Token: "t"},
			{Host: "ftp://jira.example.com", User: "u", Token: "t"},
			{Host: "https://jira.example.com", User: "", Token: "t"},
			{Host: "https://jira.example.com", User: "u", Token: ""},
		}
		for _, cfg := range cases {
			_, err := NewClient(cfg)
			assert.Error(t, err, "%+v", cfg)
		}
	})
}

func TestAPIError_Error(t *testing.T) {
	assert.Equal(t, "no error details (status 500)", (&APIError{StatusCode: 500}).Error())
	assert.Equal(t, "a; b (status 400)", (&APIError{StatusCode: 400, ErrorMessages: []string{"a", "b"}}).Error())
}
