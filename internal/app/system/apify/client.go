// Package apify is a minimal client for the actor-run API used to
// launch scraper runs and read their dataset output.
package apify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrNotConfigured is returned when no API token is set.
var ErrNotConfigured = errors.New("actor API token not configured")

// RunStatus is the lifecycle state reported by the actor platform.
type RunStatus string

const (
	StatusReady     RunStatus = "READY"
	StatusRunning   RunStatus = "RUNNING"
	StatusSucceeded RunStatus = "SUCCEEDED"
	StatusFailed    RunStatus = "FAILED"
	StatusAborted   RunStatus = "ABORTED"
)

// Terminal reports whether the run has finished, successfully or not.
func (s RunStatus) Terminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusAborted:
		return true
	}
	return false
}

// Run is the subset of the run record we care about.
type Run struct {
	ID               string    `json:"id"`
	ActID            string    `json:"actId"`
	Status           RunStatus `json:"status"`
	DefaultDatasetID string    `json:"defaultDatasetId"`
	StartedAt        time.Time `json:"startedAt"`
}

// envelope wraps every API response body.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// Client talks to the actor-run API. The zero value is unusable; use New.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a client. baseURL has no trailing slash
// (e.g. "https://api.apify.com").
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether a token is present.
func (c *Client) Configured() bool { return c.token != "" }

// StartRun launches an actor with the given input and returns the new
// run record without waiting for completion.
func (c *Client) StartRun(ctx context.Context, actorID string, input any) (Run, error) {
	if !c.Configured() {
		return Run{}, ErrNotConfigured
	}

	body, err := json.Marshal(input)
	if err != nil {
		return Run{}, fmt.Errorf("marshal actor input: %w", err)
	}

	u := fmt.Sprintf("%s/v2/acts/%s/runs?token=%s", c.baseURL, actorID, url.QueryEscape(c.token))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return Run{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var run Run
	if err := c.do(req, &run); err != nil {
		return Run{}, fmt.Errorf("start actor %s: %w", actorID, err)
	}
	if run.ID == "" {
		return Run{}, fmt.Errorf("start actor %s: response missing run id", actorID)
	}
	return run, nil
}

// GetRun fetches the current state of a run.
func (c *Client) GetRun(ctx context.Context, runID string) (Run, error) {
	if !c.Configured() {
		return Run{}, ErrNotConfigured
	}

	u := fmt.Sprintf("%s/v2/actor-runs/%s?token=%s", c.baseURL, runID, url.QueryEscape(c.token))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Run{}, err
	}

	var run Run
	if err := c.do(req, &run); err != nil {
		return Run{}, fmt.Errorf("get run %s: %w", runID, err)
	}
	return run, nil
}

// DatasetItems decodes the full item list of a dataset into v, which
// must be a pointer to a slice.
func (c *Client) DatasetItems(ctx context.Context, datasetID string, v any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	u := fmt.Sprintf("%s/v2/datasets/%s/items?token=%s", c.baseURL, datasetID, url.QueryEscape(c.token))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("dataset %s: %w", datasetID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp)
	}

	// Dataset items come back as a bare JSON array, not the envelope.
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode dataset %s items: %w", datasetID, err)
	}
	return nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

func apiError(resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("actor API returned %d: %s", resp.StatusCode, string(snippet))
}
