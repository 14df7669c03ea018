// Package gemini implements the content collaborator on the Gemini API
package gemini

import (
	"context"
	stderrors "errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/KirkDiggler/alter-ego/internal/clients/content"
	"github.com/KirkDiggler/alter-ego/internal/errors"
)

const (
	// DefaultModel is used when no model is configured
	DefaultModel = "gemini-2.5-flash"

	baseDelay    = 500 * time.Millisecond
	maxDelay     = 8 * time.Second
	jitterFactor = 0.3
)

// models is the subset of *genai.Models the provider calls
type models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content,
		config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Config configures New
type Config struct {
	APIKey string
	Model  string

	// MaxRetries is how many times a transient vendor failure is retried.
	// Zero disables retrying.
	MaxRetries int

	// RequestsPerMinute paces outbound calls, retries included. Zero is unpaced.
	RequestsPerMinute float64
}

// Validate fills defaults and checks required fields
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("api_key", c.APIKey, vb)
	if c.MaxRetries < 0 {
		vb.Field("max_retries", "must not be negative")
	}
	if c.RequestsPerMinute < 0 {
		vb.Field("requests_per_minute", "must not be negative")
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	return vb.Build()
}

// Provider implements content.Provider
type Provider struct {
	models     models
	model      string
	maxRetries int
	pacer      *rate.Limiter
	sleep      func(ctx context.Context, d time.Duration) error
}

// New creates a Gemini API provider
func New(ctx context.Context, cfg *Config) (*Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid gemini config")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create gemini client")
	}

	return newProvider(client.Models, cfg), nil
}

func newProvider(m models, cfg *Config) *Provider {
	p := &Provider{
		models:     m,
		model:      cfg.Model,
		maxRetries: cfg.MaxRetries,
		sleep:      sleepContext,
	}
	if cfg.RequestsPerMinute > 0 {
		p.pacer = rate.NewLimiter(rate.Limit(cfg.RequestsPerMinute/60), 1)
	}
	return p
}

// Invoke implements content.Provider
func (p *Provider) Invoke(ctx context.Context, req *content.Request) (string, error) {
	config := &genai.GenerateContentConfig{}
	if req.Grounded {
		config.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	} else {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = toGenAISchema(req.Schema)
	}

	var (
		resp *genai.GenerateContentResponse
		err  error
	)
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if attempt > 0 {
			delay := backoff(attempt)
			slog.WarnContext(ctx, "retrying gemini request",
				"kind", req.Kind,
				"attempt", attempt,
				"delay", delay,
				"error", err,
			)
			if sleepErr := p.sleep(ctx, delay); sleepErr != nil {
				return "", sleepErr
			}
		}

		if p.pacer != nil {
			if waitErr := p.pacer.Wait(ctx); waitErr != nil {
				return "", waitErr
			}
		}

		resp, err = p.models.GenerateContent(ctx, p.model, genai.Text(req.Prompt), config)
		if err == nil || !isRetryable(err) {
			break
		}
	}
	if err != nil {
		return "", err
	}

	text := resp.Text()
	if text == "" {
		return "", errors.Internalf("gemini returned no text for %s", req.Kind)
	}
	return text, nil
}

func toGenAISchema(s *content.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Description: s.Description,
		Required:    s.Required,
		Enum:        s.Enum,
		Minimum:     s.Minimum,
		Maximum:     s.Maximum,
	}

	switch s.Type {
	case content.TypeObject:
		out.Type = genai.TypeObject
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		out.PropertyOrdering = s.PropertyNames()
		for name, prop := range s.Properties {
			out.Properties[name] = toGenAISchema(prop)
		}
	case content.TypeArray:
		out.Type = genai.TypeArray
		out.Items = toGenAISchema(s.Items)
		if s.MinItems > 0 {
			out.MinItems = genai.Ptr(int64(s.MinItems))
		}
	case content.TypeString:
		out.Type = genai.TypeString
	case content.TypeInteger:
		out.Type = genai.TypeInteger
	case content.TypeNumber:
		out.Type = genai.TypeNumber
	}

	return out
}

func isRetryable(err error) bool {
	if stderrors.Is(err, context.Canceled) {
		return false
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr genai.APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}
	return false
}

func backoff(attempt int) time.Duration {
	shift := min(max(attempt-1, 0), 16)
	delay := min(baseDelay<<shift, maxDelay)
	jitter := time.Duration(float64(delay) * jitterFactor * (rand.Float64()*2 - 1))
	return delay + jitter
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
