package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"

	"dropout-srv/internal/model"

	"github.com/sony/gobreaker"
)

// Remote delegates scoring to an HTTP service behind a circuit breaker.
type Remote struct {
	url      string
	features []string
	version  string
	client   *http.Client
	cb       *gobreaker.CircuitBreaker
}

var (
	_ Model      = &Remote{}
	_ Attributor = &Remote{}
)

func NewRemote(cfg RemoteConfig) (*Remote, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid remote url %q", ErrInvalidArtifact, cfg.URL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultRemoteTimeout
	}
	if len(cfg.FeatureNames) == 0 {
		cfg.FeatureNames = model.DefaultFeatureSchema
	}
	if cfg.Version == "" {
		cfg.Version = DefaultRemoteVersion
	}

	return &Remote{
		url:      cfg.URL,
		features: append([]string(nil), cfg.FeatureNames...),
		version:  cfg.Version,
		client:   &http.Client{Timeout: cfg.Timeout},
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        breakerName,
			MaxRequests: breakerMaxRequests,
			Interval:    breakerInterval,
			Timeout:     breakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= breakerMinRequests && failureRatio >= breakerFailRatio
			},
		}),
	}, nil
}

func (r *Remote) Version() string {
	return r.version
}

func (r *Remote) FeatureNames() []string {
	return append([]string(nil), r.features...)
}

func (r *Remote) Probability(ctx context.Context, x []float64) (float64, error) {
	resp, err := r.call(ctx, x)
	if err != nil {
		return 0, err
	}
	return *resp.Probability, nil
}

// Attribute returns the remote attributions in feature order. A scorer that sends
// none yields an empty list.
func (r *Remote) Attribute(ctx context.Context, x []float64) ([]Attribution, error) {
	resp, err := r.call(ctx, x)
	if err != nil {
		return nil, err
	}

	out := make([]Attribution, 0, len(resp.Attributions))
	for _, name := range r.features {
		if v, ok := resp.Attributions[name]; ok {
			out = append(out, Attribution{Feature: name, Value: v})
		}
	}
	return out, nil
}

func (r *Remote) call(ctx context.Context, x []float64) (remoteResponse, error) {
	if len(x) != len(r.features) {
		return remoteResponse{}, fmt.Errorf("%w: got %d values, want %d", ErrFeatureMismatch, len(x), len(r.features))
	}

	req := remoteRequest{Features: make(map[string]float64, len(x)), Order: r.features}
	for i, name := range r.features {
		req.Features[name] = x[i]
	}

	out, err := r.cb.Execute(func() (interface{}, error) {
		return r.post(ctx, req)
	})
	if err != nil {
		return remoteResponse{}, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	return out.(remoteResponse), nil
}

func (r *Remote) post(ctx context.Context, body remoteRequest) (remoteResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return remoteResponse{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(payload))
	if err != nil {
		return remoteResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := r.client.Do(httpReq)
	if err != nil {
		return remoteResponse{}, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return remoteResponse{}, fmt.Errorf("remote scorer returned status %d", httpResp.StatusCode)
	}

	var resp remoteResponse
	if err := json.NewDecoder(io.LimitReader(httpResp.Body, maxResponseBytes)).Decode(&resp); err != nil {
		return remoteResponse{}, fmt.Errorf("decode remote response: %w", err)
	}
	if resp.Probability == nil {
		return remoteResponse{}, fmt.Errorf("remote response has no probability")
	}
	if p := *resp.Probability; math.IsNaN(p) || p < 0 || p > 1 {
		return remoteResponse{}, fmt.Errorf("remote probability %v out of range", p)
	}
	return resp, nil
}
