// Package advisor asks an external service which towers to build against an
// upcoming wave. Advice is informational; nothing here touches the
// simulation.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// ErrAdvisoryUnavailable wraps every advisory failure: transport errors,
// non-2xx responses, undecodable bodies and empty recommendations.
var ErrAdvisoryUnavailable = errors.New("advisory unavailable")

// Request describes the upcoming wave.
type Request struct {
	WaveNumber      int      `json:"waveNumber"`
	EnemyTypes      []string `json:"enemyTypes"`
	AvailableTowers []string `json:"availableTowers"`
}

// Response lists the recommended tower names.
type Response struct {
	RecommendedTowers []string `json:"recommendedTowers"`
}

// Advisor returns tower recommendations for a wave.
type Advisor interface {
	Advise(ctx context.Context, req Request) (Response, error)
}

// HTTPAdvisor posts the request as JSON to an endpoint and expects a
// Response body back.
type HTTPAdvisor struct {
	endpoint string
	client   *http.Client
	logger   *log.Logger
}

// Option configures an HTTPAdvisor.
type Option func(*HTTPAdvisor)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) Option {
	return func(a *HTTPAdvisor) { a.client = c }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(a *HTTPAdvisor) { a.logger = l }
}

// NewHTTP creates an advisor for endpoint. A zero timeout means 10 seconds.
func NewHTTP(endpoint string, timeout time.Duration, opts ...Option) *HTTPAdvisor {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	a := &HTTPAdvisor{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Advise implements Advisor.
func (a *HTTPAdvisor) Advise(ctx context.Context, req Request) (Response, error) {
	if a.endpoint == "" {
		return Response{}, fmt.Errorf("advisor: no endpoint configured: %w", ErrAdvisoryUnavailable)
	}
	body, err := json.Marshal(req)
	if err != nil {
		return Response{}, fmt.Errorf("advisor: encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("advisor: build request: %v: %w", err, ErrAdvisoryUnavailable)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := a.client.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("advisor: request failed: %v: %w", err, ErrAdvisoryUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return Response{}, fmt.Errorf("advisor: status %d: %w", resp.StatusCode, ErrAdvisoryUnavailable)
	}

	var out Response
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return Response{}, fmt.Errorf("advisor: decode response: %v: %w", err, ErrAdvisoryUnavailable)
	}
	if len(out.RecommendedTowers) == 0 {
		return Response{}, fmt.Errorf("advisor: empty recommendation: %w", ErrAdvisoryUnavailable)
	}
	a.logger.Debug("advice received", "wave", req.WaveNumber, "towers", len(out.RecommendedTowers), "took", time.Since(start))
	return out, nil
}
