package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/KirkDiggler/alter-ego/internal/entities"
	"github.com/KirkDiggler/alter-ego/internal/errors"
)

//go:generate mockgen -destination=mock/mock_provider.go -package=contentmock github.com/KirkDiggler/alter-ego/internal/clients/content Provider,Generator

// MetaViolations is the error metadata key holding schema violations
const MetaViolations = "violations"

// Provider is the external generation service. It returns the raw reply text.
// Structured requests should be answered under schema enforcement; grounded
// requests enable the provider's search capability instead.
type Provider interface {
	Invoke(ctx context.Context, req *Request) (string, error)
}

// Generator produces validated records; Client is the implementation
type Generator interface {
	Generate(ctx context.Context, req *Request) (*Record, error)
}

// Config configures NewClient
type Config struct {
	Provider Provider
}

// Validate ensures the config is usable
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.Provider == nil {
		return errors.InvalidArgument("provider is required")
	}
	return nil
}

// Client validates and post-processes collaborator replies
type Client struct {
	provider Provider
}

// NewClient creates a content client
func NewClient(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{provider: cfg.Provider}, nil
}

// Generate invokes the provider once and returns a record that conforms to
// the request's schema.
func (c *Client) Generate(ctx context.Context, req *Request) (*Record, error) {
	if req == nil || !req.Kind.IsValid() {
		return nil, errors.InvalidArgument("a request of a known kind is required")
	}
	schema := req.Schema
	if schema == nil {
		schema = SchemaFor(req.Kind)
	}

	raw, err := c.provider.Invoke(ctx, req)
	if err != nil {
		return nil, classifyProviderError(ctx, req.Kind, err)
	}

	payload, ok := NewResponse(req, raw).Payload()
	if !ok {
		slog.WarnContext(ctx, "content reply had no parseable payload", "kind", req.Kind, "grounded", req.Grounded)
		return nil, errors.MalformedResponsef("%s reply is empty or not JSON", req.Kind)
	}

	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.UseNumber()
	var doc any
	if err := decoder.Decode(&doc); err != nil {
		slog.WarnContext(ctx, "content reply is not valid JSON", "kind", req.Kind, "error", err)
		return nil, errors.WrapWithCode(err, errors.CodeMalformedResponse, fmt.Sprintf("%s reply is not valid JSON", req.Kind))
	}
	if _, err := decoder.Token(); err != io.EOF {
		slog.WarnContext(ctx, "content reply has trailing data", "kind", req.Kind, "grounded", req.Grounded)
		return nil, errors.MalformedResponsef("%s reply has data after the JSON object", req.Kind)
	}

	if violations := schema.Validate(doc); len(violations) > 0 {
		slog.WarnContext(ctx, "content reply violates schema",
			"kind", req.Kind,
			"violations", violations,
		)
		return nil, errors.MalformedResponsef("%s reply violates the declared schema", req.Kind).
			WithMeta(MetaViolations, violations)
	}

	record, err := decodeRecord(req.Kind, payload)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeMalformedResponse, fmt.Sprintf("failed to decode %s reply", req.Kind))
	}
	return record, nil
}

func decodeRecord(kind Kind, payload []byte) (*Record, error) {
	record := &Record{Kind: kind}

	switch kind {
	case KindPersona:
		var p entities.Persona
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, err
		}
		for i := range p.Missions {
			p.Missions[i].Text = StripDifficultyLabel(p.Missions[i].Text)
			if p.Missions[i].Text == "" {
				return nil, errors.MalformedResponsef("mission %d has no text besides its difficulty label", i+1)
			}
		}
		record.Persona = &p
	case KindStamp:
		var s entities.Stamp
		if err := json.Unmarshal(payload, &s); err != nil {
			return nil, err
		}
		record.Stamp = &s
	case KindGuide:
		var g entities.Guide
		if err := json.Unmarshal(payload, &g); err != nil {
			return nil, err
		}
		record.Guide = &g
	}

	return record, nil
}

func classifyProviderError(ctx context.Context, kind Kind, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return errors.WrapWithCode(err, errors.GetCode(ctxErr), fmt.Sprintf("%s request ended", kind))
	}

	switch errors.GetCode(err) {
	case errors.CodeCanceled, errors.CodeDeadlineExceeded:
		return errors.WrapWithCode(err, errors.GetCode(err), fmt.Sprintf("%s request ended", kind))
	}

	slog.ErrorContext(ctx, "content provider failed", "kind", kind, "error", err)
	return errors.Provider(err, fmt.Sprintf("content provider failed for %s", kind))
}
