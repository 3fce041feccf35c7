package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/toomate/cashier/pkg/logctx"
	"github.com/toomate/cashier/pkg/metrics"
)

const maxErrorBody = 64 << 10

type requestIDKey struct{}

// WithRequestID sets the PayPal-Request-Id sent with calls made under ctx.
// PayPal replays the stored response for a repeated id, so it must identify
// one logical change.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromCtx returns the id set by WithRequestID, or "".
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Config is the explicit client configuration; nothing is read from the
// environment at call time.
type Config struct {
	BaseURL         string
	ClientID        string
	ClientSecret    string
	Timeout         time.Duration
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

// Client issues authenticated calls to the PayPal REST API. It never
// retries; an open breaker fails fast with an *APIError.
type Client struct {
	cfg     Config
	tokens  TokenSupplier
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[json.RawMessage]
	log     *zap.SugaredLogger
}

func NewClient(cfg Config, tokens TokenSupplier, log *zap.SugaredLogger) *Client {
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 5
	}
	c := &Client{
		cfg:    cfg,
		tokens: tokens,
		http:   &http.Client{Timeout: cfg.Timeout},
		log:    log,
	}
	c.breaker = gobreaker.NewCircuitBreaker[json.RawMessage](gobreaker.Settings{
		Name:        "paypal",
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				return !apiErr.Temporary()
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnw("paypal_breaker_state_change", "from", from.String(), "to", to.String())
		},
	})
	return c
}

// Call sends body as JSON to {BaseURL}{path} and returns the raw response
// body. An empty 2xx body is returned as "{}".
func (c *Client) Call(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	return c.call(ctx, "call", method, path, body)
}

func (c *Client) call(ctx context.Context, op, method, path string, body any) (json.RawMessage, error) {
	start := time.Now()
	res, err := c.breaker.Execute(func() (json.RawMessage, error) {
		return c.do(ctx, method, path, body)
	})
	metrics.ObserveBusinessProcess("paypal", op, start, err)

	lg := logctx.FromCtx(ctx, c.log)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = &APIError{Message: "circuit breaker is open, PayPal calls are paused", Err: err}
		}
		apiErr := wrapError("request failed", err)
		lg.Errorw("paypal_call_failed", "op", op, "method", method, "path", path,
			"status", apiErr.StatusCode, "debug_id", apiErr.DebugID, "error", apiErr.Error())
		return nil, apiErr
	}
	lg.Infow("paypal_call", "op", op, "method", method, "path", path, "elapsed_ms", time.Since(start).Milliseconds())
	return res, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, wrapError("failed to get access token", err)
	}

	var reader io.Reader = http.NoBody
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, wrapError("failed to encode request body", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return nil, wrapError("failed to build request", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if id := RequestIDFromCtx(ctx); id != "" {
		req.Header.Set("PayPal-Request-Id", id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, wrapError("request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		if raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody)); err == nil {
			_ = json.Unmarshal(raw, &eb)
		}
		return nil, newStatusError(resp.StatusCode, eb)
	}

	// the change is already applied upstream; never truncate a success body
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read response: %v", err), Err: err}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: "response body is not valid JSON"}
	}
	return json.RawMessage(raw), nil
}
