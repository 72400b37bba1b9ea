package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadforge/internal/config"
	"leadforge/internal/model"
)

func newTestWebhookClient(retries int) *WebhookClient {
	c := NewWebhookClient(config.WebhookConfig{TimeoutMS: 2000, MaxRetries: retries})
	c.baseBackoff = time.Millisecond
	return c
}

func TestWebhookClient_Forward(t *testing.T) {
	var got model.LeadWebhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := newTestWebhookClient(3).Forward(context.Background(), srv.URL, model.LeadWebhookPayload{
		BusinessName: "Demo HVAC Co",
		CustomerName: "Pat",
	})
	require.NoError(t, err)
	assert.Equal(t, "Pat", got.CustomerName)
}

func TestWebhookClient_EmptyURLIsNoop(t *testing.T) {
	assert.NoError(t, newTestWebhookClient(1).Forward(context.Background(), "", map[string]string{}))
}

func TestWebhookClient_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, newTestWebhookClient(3).Forward(context.Background(), srv.URL, map[string]string{}))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestWebhookClient_GivesUp(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	err := newTestWebhookClient(2).Forward(context.Background(), srv.URL, map[string]string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max retries exceeded")
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestWebhookClient_ClientErrorNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "bad payload", http.StatusBadRequest)
	}))
	defer srv.Close()

	err := newTestWebhookClient(5).Forward(context.Background(), srv.URL, map[string]string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
