// Package llm provides a chat-completions client for the layer-3 risk
// classifier. The provider speaks the common OpenAI-style wire shape; the
// engine only depends on the narrow Classifier port
package llm

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

	"lifering/internal/core/policy"
	"lifering/internal/core/prompt"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultUA        = "lifering-engine"
	defaultMaxRetry  = 2
	defaultRetryBase = 250 * time.Millisecond
)

// Options configures the Client
type Options struct {
	BaseURL   string // e.g. https://api.openai.com/v1 or a local gateway
	APIKey    string
	UserAgent string
	Timeout   time.Duration // transport ceiling; per-call timeouts come from settings

	// Retry config for transient responses (5xx, 429)
	MaxRetries int
	RetryBase  time.Duration
}

// Verdict is the validated structured classifier output
type Verdict struct {
	RiskLevel  policy.RiskLevel
	Confidence float64
	Reason     string
}

// Classifier is the port the assessment pipeline consumes
type Classifier interface {
	Classify(ctx context.Context, msgs []prompt.Message, model string, timeout time.Duration) (Verdict, error)
}

// StatusError carries a non-2xx provider response
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string { return fmt.Sprintf("llm: status %d: %s", e.Status, e.Body) }

// Client is a minimal chat-completions client with retries
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	now   func() time.Time
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
		log:   *logger.Named("llm"),
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// wire types for the chat-completions shape

type chatRequest struct {
	Model          string           `json:"model"`
	Messages       []prompt.Message `json:"messages"`
	Temperature    float64          `json:"temperature"`
	ResponseFormat *responseFormat  `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// rawVerdict is the strict response schema; anything outside it is a
// classifier failure, never coerced
type rawVerdict struct {
	RiskLevel  string   `json:"risk_level"`
	Confidence *float64 `json:"confidence"`
	Reason     string   `json:"reason"`
}

// Classify calls the provider with a hard deadline and validates the
// structured response. Timeout, transport error, non-2xx, and schema
// violations all surface as errors; the pipeline maps them to the
// fail-closed fallback
func (c *Client) Classify(
	ctx context.Context,
	msgs []prompt.Message,
	model string,
	timeout time.Duration,
) (Verdict, error) {
	if model == "" {
		return Verdict{}, perr.InvalidArgf("llm: empty model id")
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	body, err := json.Marshal(chatRequest{
		Model:          model,
		Messages:       msgs,
		Temperature:    0,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return Verdict{}, err
	}

	raw, err := c.post(ctx, "/chat/completions", body)
	if err != nil {
		return Verdict{}, err
	}

	var cr chatResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		return Verdict{}, perr.Wrap(err, perr.ErrorCodeValidation, "llm: malformed provider envelope")
	}
	if len(cr.Choices) == 0 {
		return Verdict{}, perr.New(perr.ErrorCodeValidation, "llm: empty choices")
	}
	return parseVerdict(cr.Choices[0].Message.Content)
}

// parseVerdict enforces the response schema strictly
func parseVerdict(content string) (Verdict, error) {
	content = strings.TrimSpace(content)
	// tolerate fenced JSON, a depressingly common provider habit
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	dec := json.NewDecoder(strings.NewReader(content))
	dec.DisallowUnknownFields()
	var rv rawVerdict
	if err := dec.Decode(&rv); err != nil {
		return Verdict{}, perr.Wrap(err, perr.ErrorCodeValidation, "llm: verdict not valid JSON")
	}
	lvl := policy.ParseRiskLevel(rv.RiskLevel)
	if lvl == policy.RiskUnknown {
		return Verdict{}, perr.Newf(perr.ErrorCodeValidation, "llm: unknown risk_level %q", rv.RiskLevel)
	}
	if rv.Confidence == nil || *rv.Confidence < 0 || *rv.Confidence > 1 {
		return Verdict{}, perr.New(perr.ErrorCodeValidation, "llm: confidence missing or out of [0,1]")
	}
	if strings.TrimSpace(rv.Reason) == "" {
		return Verdict{}, perr.New(perr.ErrorCodeValidation, "llm: empty reason")
	}
	return Verdict{RiskLevel: lvl, Confidence: *rv.Confidence, Reason: rv.Reason}, nil
}

// post issues the request with auth headers and bounded retries on
// transient statuses
func (c *Client) post(ctx context.Context, path string, body []byte) ([]byte, error) {
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
			return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "llm: transport")
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
			return nil, &StatusError{Status: resp.StatusCode, Body: trim(raw)}
		default:
			return nil, &StatusError{Status: resp.StatusCode, Body: trim(raw)}
		}
	}
}

func trim(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 256 {
		s = s[:256]
	}
	return s
}
