package source

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suggestbox/internal/domain"
)

func TestHTTPSourceParsesResponse(t *testing.T) {
	var gotQuery, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/autocomplete", r.URL.Path)
		gotQuery = r.URL.Query().Get("query")
		gotRequestID = r.Header.Get(RequestIDHeader)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"text":"new york","id":"ny"},{"text":"newark","id":7},{"text":"new delhi"}],"type":"autocomplete"}`))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL+"/v1/autocomplete", HTTPOptions{Timeout: time.Second})
	res, err := src.Suggest(context.Background(), "new y&k")
	require.NoError(t, err)

	assert.Equal(t, "new y&k", gotQuery)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "new y&k", res.Query)
	assert.Equal(t, domain.ModeAutocomplete, res.Mode)
	require.Equal(t, 3, res.Len())
	assert.Equal(t, domain.Suggestion{Text: "new york", ID: "ny"}, res.Suggestions[0])
	assert.Equal(t, domain.ItemID("7"), res.Suggestions[1].ID)
	assert.Equal(t, domain.ItemID(""), res.Suggestions[2].ID)
}

func TestHTTPSourceQueryURLEscapes(t *testing.T) {
	src := NewHTTPSource("http://host/v1/autocomplete", HTTPOptions{})
	assert.Equal(t, "http://host/v1/autocomplete?query=a+b%26c", src.QueryURL("a b&c"))
}

func TestHTTPSourceNon2xxIsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, HTTPOptions{})
	res, err := src.Suggest(context.Background(), "x")
	require.Error(t, err)
	assert.Equal(t, 0, res.Len())

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.NotEmpty(t, statusErr.RequestID)
}

func TestHTTPSourceLogsErrorBody(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "index is rebuilding", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, HTTPOptions{}).Suggest(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, buf.String(), "503 Service Unavailable: index is rebuilding")
}

func TestHTTPSourceDoesNotModifyCallerClient(t *testing.T) {
	client := &http.Client{Timeout: 5 * time.Second}

	src := NewHTTPSource("http://host/v1/autocomplete", HTTPOptions{Timeout: time.Second, Client: client})

	assert.Equal(t, 5*time.Second, client.Timeout)
	assert.Equal(t, time.Second, src.client.Timeout)
	assert.NotSame(t, client, src.client)
}

func TestHTTPSourceBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": [`))
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, HTTPOptions{}).Suggest(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode")
}

func TestHTTPSourceHonoursContextCancel(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := NewHTTPSource(srv.URL, HTTPOptions{}).Suggest(ctx, "slow")
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("request did not observe cancellation")
	}
}

func TestHTTPSourceRateLimitWaitRespectsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[],"type":"list"}`))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, HTTPOptions{RateLimit: 0.001})
	_, err := src.Suggest(context.Background(), "first")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = src.Suggest(ctx, "second")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait")
}
