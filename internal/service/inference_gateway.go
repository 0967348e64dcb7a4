package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/lshigami/sketchquiz/config"
	"github.com/lshigami/sketchquiz/internal/monitoring"
	"github.com/lshigami/sketchquiz/internal/retry"
	"github.com/rs/zerolog/log"
)

// CaptionPrompt is the instruction sent with every drawing.
const CaptionPrompt = "What is in this image in one word?"

// InferenceGateway turns a base64 PNG into a free text caption. Callers
// normalize the caption; gateways return it as the model produced it.
type InferenceGateway interface {
	Caption(ctx context.Context, imageBase64 string) (string, error)
}

// GatewayStatusError reports a non-success HTTP status from a captioning backend.
type GatewayStatusError struct {
	StatusCode int
	Body       string
}

func (e *GatewayStatusError) Error() string {
	return fmt.Sprintf("inference backend returned status %d: %s", e.StatusCode, e.Body)
}

// Temporary is true for statuses worth another attempt.
func (e *GatewayStatusError) Temporary() bool {
	return e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusTooManyRequests
}

type boundedGateway struct {
	provider    string
	next        InferenceGateway
	timeout     time.Duration
	maxAttempts int
	retryDelay  time.Duration
}

// NewBoundedGateway applies the configured per-call timeout and retry policy
// to next. Every failure comes back as *InferenceError.
func NewBoundedGateway(provider string, next InferenceGateway, cfg config.Inference) InferenceGateway {
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &boundedGateway{
		provider:    provider,
		next:        next,
		timeout:     cfg.Timeout,
		maxAttempts: attempts,
		retryDelay:  cfg.RetryDelay,
	}
}

func (g *boundedGateway) Caption(ctx context.Context, imageBase64 string) (string, error) {
	caption, err := retry.WithBackoff(ctx, g.maxAttempts, g.retryDelay, isRetriableInference, func() (string, error) {
		return g.attempt(ctx, imageBase64)
	})
	if err != nil {
		return "", &InferenceError{Provider: g.provider, Err: err}
	}
	return caption, nil
}

func (g *boundedGateway) attempt(ctx context.Context, imageBase64 string) (string, error) {
	callCtx, cancel := ctx, context.CancelFunc(func() {})
	if g.timeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, g.timeout)
	}
	defer cancel()

	start := time.Now()
	caption, err := g.next.Caption(callCtx, imageBase64)
	if err == nil && strings.TrimSpace(caption) == "" {
		err = ErrEmptyCaption
	}
	if err != nil && ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		err = fmt.Errorf("%w after %s: %v", ErrInferenceTimeout, g.timeout, err)
	}
	monitoring.ObserveInference(g.provider, err, time.Since(start))

	if err != nil {
		log.Warn().Err(err).Str("provider", g.provider).Dur("elapsed", time.Since(start)).Msg("Inference attempt failed")
		return "", err
	}
	return caption, nil
}

func isRetriableInference(err error) bool {
	if errors.Is(err, ErrInferenceTimeout) {
		return true
	}
	var statusErr *GatewayStatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
