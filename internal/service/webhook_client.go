package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"

	"leadforge/internal/config"
)

// Forwarder delivers lead payloads to an automation webhook
type Forwarder interface {
	Forward(ctx context.Context, url string, payload interface{}) error
}

// WebhookClient posts JSON payloads with bounded retries
type WebhookClient struct {
	httpClient  *http.Client
	maxRetries  int
	baseBackoff time.Duration
}

// NewWebhookClient creates a new webhook client
func NewWebhookClient(cfg config.WebhookConfig) *WebhookClient {
	retries := cfg.MaxRetries
	if retries < 1 {
		retries = 1
	}
	return &WebhookClient{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
		maxRetries:  retries,
		baseBackoff: time.Second,
	}
}

// Forward POSTs payload to url. An empty url is a no-op.
// 429 and 5xx responses are retried with exponential backoff.
func (c *WebhookClient) Forward(ctx context.Context, url string, payload interface{}) error {
	if url == "" {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * c.baseBackoff
			log.Printf("[Webhook] Retry %d/%d in %v: %v", attempt, c.maxRetries-1, backoff, lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("webhook returned %d", resp.StatusCode)
			continue
		}
		if resp.StatusCode >= 400 {
			return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, string(respBody))
		}
		return nil
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

const defaultWebhookBudget = 30 * time.Second

// webhookDispatcher picks the delivery target for a submission and runs the
// delivery in the background, detached from the request that triggered it
type webhookDispatcher struct {
	forwarder  Forwarder
	configured string
	allowed    map[string]struct{}
	budget     time.Duration
	wg         sync.WaitGroup
}

func newWebhookDispatcher(forwarder Forwarder, cfg config.WebhookConfig) *webhookDispatcher {
	d := &webhookDispatcher{
		forwarder:  forwarder,
		configured: strings.TrimSpace(cfg.URL),
		allowed:    make(map[string]struct{}, len(cfg.AllowedURLs)),
		budget:     time.Duration(cfg.BudgetMS) * time.Millisecond,
	}
	if d.budget <= 0 {
		d.budget = defaultWebhookBudget
	}
	for _, u := range cfg.AllowedURLs {
		d.allowed[strings.TrimSpace(u)] = struct{}{}
	}
	return d
}

// resolve returns the configured URL when set. A URL sent by the page is
// used only when it exactly matches an allowlisted one.
func (d *webhookDispatcher) resolve(requested string) string {
	if d.configured != "" {
		return d.configured
	}
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return ""
	}
	if _, ok := d.allowed[requested]; !ok {
		log.Printf("[Webhook] Ignoring webhook URL not in allowlist")
		return ""
	}
	return requested
}

// dispatch starts a delivery and reports whether one was started.
// done receives the delivery error from the background goroutine.
func (d *webhookDispatcher) dispatch(ctx context.Context, requested string, payload interface{}, done func(error)) bool {
	url := d.resolve(requested)
	if url == "" || d.forwarder == nil {
		return false
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.budget)
		defer cancel()
		done(d.forwarder.Forward(ctx, url, payload))
	}()
	return true
}

// wait blocks until in-flight deliveries finish
func (d *webhookDispatcher) wait() {
	d.wg.Wait()
}
