// Package vectorindex is the client for the embedding/vector-index service.
// It exposes the two capabilities the engine needs: a synchronous top-K
// similarity query over active corpus items, and an asynchronous indexing
// enqueue. The similarity engine itself is a black box behind this seam
package vectorindex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	perr "lifering/internal/platform/errors"
	"lifering/internal/platform/logger"
)

const (
	defaultTimeout   = 5 * time.Second
	defaultUA        = "lifering-engine"
	defaultMaxRetry  = 2
	defaultRetryBase = 200 * time.Millisecond
)

// Priority orders enqueue jobs on the index side
type Priority string

const (
	// PriorityNormal is the default indexing priority
	PriorityNormal Priority = "normal"
	// PriorityHigh is for operator-triggered reindexing
	PriorityHigh Priority = "high"
	// PriorityDelete asks the index to drop the target's vectors
	PriorityDelete Priority = "delete"
)

// Snippet is one ranked retrieval result
type Snippet struct {
	Label   string  `json:"label"`
	Content string  `json:"content"`
	Kind    string  `json:"kind"`
	Score   float64 `json:"score"`
}

// Querier is the read-side port (layer 2)
type Querier interface {
	Query(ctx context.Context, redactedText string, topK int) ([]Snippet, error)
}

// Enqueuer is the async write-side port used on corpus activation
type Enqueuer interface {
	Enqueue(ctx context.Context, targetType, targetID string, priority Priority) error
}

// Options configures the Client
type Options struct {
	BaseURL   string
	APIKey    string
	UserAgent string
	Timeout   time.Duration

	MaxRetries int
	RetryBase  time.Duration
}

// Client talks to the vector-index service over HTTP
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	sleep func(time.Duration)
}

// NewClient creates a Client with sane defaults
func NewClient(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("vectorindex"),
		sleep: time.Sleep,
	}
}

type queryRequest struct {
	Text string `json:"text"`
	TopK int    `json:"top_k"`
}

type queryResponse struct {
	Results []Snippet `json:"results"`
}

// Query returns the top-K nearest active corpus items by similarity.
// An empty corpus yields an empty slice; the pipeline proceeds without
// context rather than failing the assessment
func (c *Client) Query(ctx context.Context, redactedText string, topK int) ([]Snippet, error) {
	if topK <= 0 {
		topK = 5
	}
	raw, err := c.do(ctx, "/query", queryRequest{Text: redactedText, TopK: topK})
	if err != nil {
		return nil, err
	}
	var qr queryResponse
	if err := json.Unmarshal(raw, &qr); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeValidation, "vectorindex: malformed query response")
	}
	return qr.Results, nil
}

type enqueueRequest struct {
	TargetType string `json:"target_type"`
	TargetID   string `json:"target_id"`
	Priority   string `json:"priority"`
}

type enqueueResponse struct {
	Accepted bool `json:"accepted"`
}

// Enqueue asks the index service to (re-)embed or drop a target.
// Fire-and-forget semantics belong to the caller; this call itself
// reports acceptance so the indexer worker can retry rejections
func (c *Client) Enqueue(ctx context.Context, targetType, targetID string, priority Priority) error {
	if targetType == "" || targetID == "" {
		return perr.InvalidArgf("vectorindex: empty target")
	}
	if priority == "" {
		priority = PriorityNormal
	}
	raw, err := c.do(ctx, "/enqueue", enqueueRequest{
		TargetType: targetType,
		TargetID:   targetID,
		Priority:   string(priority),
	})
	if err != nil {
		return err
	}
	var er enqueueResponse
	if err := json.Unmarshal(raw, &er); err != nil {
		return perr.Wrap(err, perr.ErrorCodeValidation, "vectorindex: malformed enqueue response")
	}
	if !er.Accepted {
		return perr.Unavailablef("vectorindex: enqueue rejected for %s/%s", targetType, targetID)
	}
	return nil
}

// do posts JSON with bounded retries on transient statuses
func (c *Client) do(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	url := strings.TrimSuffix(c.opts.BaseURL, "/") + path
	attempts := 0
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", c.opts.UserAgent)
		if c.opts.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if attempts < c.opts.MaxRetries {
				attempts++
				c.sleep(c.opts.RetryBase << uint(attempts-1))
				continue
			}
			return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "vectorindex: transport")
		}

		raw, rerr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		_ = resp.Body.Close()
		if rerr != nil {
			return nil, rerr
		}

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return raw, nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			if attempts < c.opts.MaxRetries {
				attempts++
				c.sleep(c.opts.RetryBase << uint(attempts-1))
				continue
			}
			return nil, perr.Unavailablef("vectorindex: status %d", resp.StatusCode)
		default:
			return nil, perr.Newf(perr.ErrorCodeUnknown, "vectorindex: status %d: %s", resp.StatusCode, firstLine(raw))
		}
	}
}

func firstLine(b []byte) string {
	s := strings.TrimSpace(string(b))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 200 {
		s = s[:200]
	}
	return fmt.Sprintf("%.200s", s)
}
