package syncclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"smartpan"
	"smartpan/internal/logger"
)

// Kind classifies sync failures for logging and observability. Every failure
// is recoverable; the caller logs it and continues the tick.
type Kind int

const (
	KindTransport Kind = iota + 1 // connect/timeout/DNS failure
	KindProtocol                  // non-2xx status
	KindDecode                    // malformed JSON or missing field
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindProtocol:
		return "protocol"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// SyncError wraps a failed publish or fetch with its classification.
type SyncError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync %s: %s error: %v", e.Op, e.Kind, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }

const (
	opPublish     = "publish"
	opFetchTarget = "fetch_target"

	feedName = "temperature"

	// Response bodies are bounded before reading; the loop runs for the
	// lifetime of the device and must not accumulate per-tick allocations.
	maxResponseBytes = 4 << 10
	maxBodyLogBytes  = 512

	defaultTimeout = 10 * time.Second
)

type publishPayload struct {
	Feed  string  `json:"feed"`
	Value float64 `json:"value"`
}

// Client performs the two remote operations against the sync service. All
// failures are converted to *SyncError; nothing here is fatal.
type Client struct {
	http       *http.Client
	publishURL string
	fetchURL   string
	log        *logger.Logger
}

func New(publishURL, fetchURL string, timeout time.Duration, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http:       &http.Client{Timeout: timeout},
		publishURL: publishURL,
		fetchURL:   fetchURL,
		log:        log,
	}
}

// Publish POSTs the sample to the publish endpoint. The response body is
// logged, never parsed.
func (c *Client) Publish(ctx context.Context, sample smartpan.TemperatureSample) error {
	body, err := json.Marshal(publishPayload{Feed: feedName, Value: sample.Value})
	if err != nil {
		return &SyncError{Kind: KindDecode, Op: opPublish, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.publishURL, bytes.NewReader(body))
	if err != nil {
		return &SyncError{Kind: KindTransport, Op: opPublish, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &SyncError{Kind: KindTransport, Op: opPublish, Err: err}
	}
	defer drainAndClose(resp.Body)

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyLogBytes))
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &SyncError{Kind: KindProtocol, Op: opPublish, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	if c.log != nil {
		c.log.Debugw("publish_response", "status", resp.StatusCode, "body", string(snippet))
	}
	return nil
}

// targetResponse accepts `value` as a JSON number or a numeric string.
type targetResponse struct {
	Value *flexFloat `json:"value"`
}

type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		s = unquoted
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

// FetchTarget GETs the current target. On any non-200 status it returns a
// protocol SyncError without touching the decoder.
func (c *Client) FetchTarget(ctx context.Context) (smartpan.SyncResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.fetchURL, nil)
	if err != nil {
		return smartpan.SyncResult{}, &SyncError{Kind: KindTransport, Op: opFetchTarget, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return smartpan.SyncResult{}, &SyncError{Kind: KindTransport, Op: opFetchTarget, Err: err}
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return smartpan.SyncResult{}, &SyncError{Kind: KindProtocol, Op: opFetchTarget, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return smartpan.SyncResult{}, &SyncError{Kind: KindTransport, Op: opFetchTarget, Err: err}
	}

	var tr targetResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return smartpan.SyncResult{}, &SyncError{Kind: KindDecode, Op: opFetchTarget, Err: err}
	}
	if tr.Value == nil {
		return smartpan.SyncResult{}, &SyncError{Kind: KindDecode, Op: opFetchTarget, Err: fmt.Errorf("response missing value field")}
	}
	return smartpan.SyncResult{TargetValue: float64(*tr.Value)}, nil
}

// drainAndClose fully consumes and closes a response body. Every exit path of
// both operations must go through here; the loop runs unboundedly and leaked
// connections are fatal over device uptime.
func drainAndClose(rc io.ReadCloser) {
	_, _ = io.Copy(io.Discard, rc)
	_ = rc.Close()
}
