// Package infer is the JSON-over-HTTP client for the model inference
// sidecar. It backs both the per-language emotion classifiers and the
// headline embedder; everything model-specific (weights, tokenization,
// label heads) lives on the sidecar side
package infer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"moodwire/internal/core/emotion"
	perr "moodwire/internal/platform/errors"
	"moodwire/internal/platform/logger"
)

const (
	defaultTimeout = 30 * time.Second
	defaultUA      = "moodwire-classify"
	maxBodyBytes   = 1 << 20
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client talks to one inference sidecar
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

// NewClient creates a Client with sane defaults. BaseURL is required
func NewClient(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("infer"),
	}
}

type classifyReq struct {
	Text   string `json:"text"`
	Lang   string `json:"lang"`
	Scheme string `json:"scheme"`
}

type classifyResp struct {
	Scores map[string]float64 `json:"scores"`
}

type embedReq struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

type embedResp struct {
	Supported bool      `json:"supported"`
	Embedding []float32 `json:"embedding"`
}

// Classify returns the sidecar's score distribution for text under the
// given language and scheme. Scores come back raw; rounding and arg-max
// are the caller's business
func (c *Client) Classify(ctx context.Context, lang string, scheme emotion.Scheme, text string) (map[string]float64, error) {
	var out classifyResp
	if err := c.post(ctx, "/classify", classifyReq{Text: text, Lang: lang, Scheme: string(scheme)}, &out); err != nil {
		return nil, err
	}
	if len(out.Scores) == 0 {
		return nil, perr.Newf(perr.ErrorCodeUnknown, "infer: empty score map for lang=%s scheme=%s", lang, scheme)
	}
	return out.Scores, nil
}

// Embed returns the headline embedding for text, or supported=false when
// the sidecar carries no embedding model for the language
func (c *Client) Embed(ctx context.Context, text, lang string) ([]float32, bool, error) {
	var out embedResp
	if err := c.post(ctx, "/embed", embedReq{Text: text, Lang: lang}, &out); err != nil {
		return nil, false, err
	}
	if !out.Supported {
		return nil, false, nil
	}
	return out.Embedding, true, nil
}

// Healthy pings the sidecar
func (c *Client) Healthy(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.BaseURL+"/healthz", nil)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "infer new request failed")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "infer health check failed")
	}
	defer resp.Body.Close() // nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		return perr.Newf(perr.ErrorCodeUnavailable, "infer health check status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "infer marshal failed")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "infer new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "infer %s failed", path)
	}
	defer resp.Body.Close() // nolint:errcheck

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "infer %s read failed", path)
	}
	if resp.StatusCode != http.StatusOK {
		return perr.Newf(perr.ErrorCodeUnavailable, "infer %s status %d: %s", path, resp.StatusCode, truncate(raw, 256))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "infer %s decode failed", path)
	}

	c.log.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("infer call")
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return fmt.Sprintf("%s...", b[:n])
}
