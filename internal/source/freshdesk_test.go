package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRecent(t *testing.T) {
	var gotPath, gotQuery, gotUser, gotPass string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotUser, gotPass, _ = r.BasicAuth()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 101, "subject": "Site down", "description": "prod is down", "created_at": "2026-08-23T10:00:00Z", "responder_id": null},
			{"id": 100, "subject": "Question", "description": "how do I...", "created_at": "2026-08-23T09:55:00Z", "responder_id": 42}
		]`))
	}))
	defer srv.Close()

	c := NewFreshdeskClientWithBaseURL(srv.URL, "secret-key", srv.Client())

	tickets, err := c.FetchRecent(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, tickets, 2)

	assert.Equal(t, "/tickets", gotPath)
	assert.Equal(t, "order_type=desc&page=1&per_page=100", gotQuery)
	assert.Equal(t, "secret-key", gotUser)
	assert.Equal(t, "X", gotPass)

	assert.Equal(t, int64(101), tickets[0].ID)
	assert.Equal(t, "Site down", tickets[0].Subject)
	assert.Equal(t, "prod is down", tickets[0].Description)
	assert.Equal(t, time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC), tickets[0].CreatedAt)
	assert.False(t, tickets[0].HasResponder())

	require.NotNil(t, tickets[1].ResponderID)
	assert.Equal(t, int64(42), *tickets[1].ResponderID)
	assert.True(t, tickets[1].HasResponder())
}

func TestFetchRecentNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "forbidden"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewFreshdeskClientWithBaseURL(srv.URL, "secret-key", srv.Client())

	tickets, err := c.FetchRecent(context.Background(), 100)
	assert.Error(t, err)
	assert.Nil(t, tickets)
	assert.Contains(t, err.Error(), "403")
}

func TestFetchRecentMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "a list"}`))
	}))
	defer srv.Close()

	c := NewFreshdeskClientWithBaseURL(srv.URL, "secret-key", srv.Client())

	_, err := c.FetchRecent(context.Background(), 100)
	assert.Error(t, err)
}

func TestFetchRecentTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewFreshdeskClientWithBaseURL(srv.URL, "secret-key", nil)

	_, err := c.FetchRecent(context.Background(), 100)
	assert.Error(t, err)
}
