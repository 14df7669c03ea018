// Package generation implements the server-side pipeline behind the three
// user-facing content operations.
//
// Every call runs the same steps in order: the per-identity request gate,
// input validation, request building and one call to the content client.
package generation

//go:generate mockgen -destination=mock/mock_service.go -package=generationmock github.com/KirkDiggler/alter-ego/internal/orchestrators/generation Service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/KirkDiggler/alter-ego/internal/clients/content"
	"github.com/KirkDiggler/alter-ego/internal/entities"
	"github.com/KirkDiggler/alter-ego/internal/errors"
	"github.com/KirkDiggler/alter-ego/internal/pkg/clock"
	"github.com/KirkDiggler/alter-ego/internal/pkg/observability"
	"github.com/KirkDiggler/alter-ego/internal/pkg/ratelimit"
)

const tracerName = "github.com/KirkDiggler/alter-ego/internal/orchestrators/generation"

// Service generates personas, stamps and guides
type Service interface {
	GeneratePersona(ctx context.Context, input *GeneratePersonaInput) (*GeneratePersonaOutput, error)
	GenerateStamp(ctx context.Context, input *GenerateStampInput) (*GenerateStampOutput, error)
	GenerateGuide(ctx context.Context, input *GenerateGuideInput) (*GenerateGuideOutput, error)
}

// Config holds the dependencies for the generation orchestrator
type Config struct {
	Limiter ratelimit.Limiter
	Content content.Generator
	Builder *content.Builder

	// Optional
	Metrics *observability.Metrics
	Clock   clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.Limiter == nil {
		vb.RequiredField("Limiter")
	}
	if c.Content == nil {
		vb.RequiredField("Content")
	}
	if c.Builder == nil {
		vb.RequiredField("Builder")
	}
	return vb.Build()
}

type orchestrator struct {
	limiter ratelimit.Limiter
	content content.Generator
	builder *content.Builder
	metrics *observability.Metrics
	clock   clock.Clock
	tracer  trace.Tracer
}

// NewOrchestrator creates a new generation orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &orchestrator{
		limiter: cfg.Limiter,
		content: cfg.Content,
		builder: cfg.Builder,
		metrics: cfg.Metrics,
		clock:   clk,
		tracer:  otel.Tracer(tracerName),
	}, nil
}

// GeneratePersona runs the persona pipeline
func (o *orchestrator) GeneratePersona(
	ctx context.Context,
	input *GeneratePersonaInput,
) (out *GeneratePersonaOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	in := *input

	ctx, finish := o.begin(ctx, content.KindPersona, in.Identity)
	defer func() { finish(err) }()

	if err := o.gate(ctx, in.Identity); err != nil {
		return nil, err
	}
	if err := normalizePersona(&in); err != nil {
		return nil, err
	}

	record, err := o.content.Generate(ctx, o.builder.Persona(&content.PersonaInput{
		Name:        in.Name,
		Destination: entities.Destination(in.Destination),
		Style:       in.Style,
	}))
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate persona")
	}

	return &GeneratePersonaOutput{Persona: record.Persona}, nil
}

// GenerateStamp runs the stamp pipeline
func (o *orchestrator) GenerateStamp(
	ctx context.Context,
	input *GenerateStampInput,
) (out *GenerateStampOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	in := *input

	ctx, finish := o.begin(ctx, content.KindStamp, in.Identity)
	defer func() { finish(err) }()

	if err := o.gate(ctx, in.Identity); err != nil {
		return nil, err
	}
	if err := normalizeStamp(&in); err != nil {
		return nil, err
	}

	record, err := o.content.Generate(ctx, o.builder.Stamp(&content.StampInput{
		PlayerName:    in.PlayerName,
		PlayerStyle:   in.PlayerStyle,
		Destination:   in.Destination,
		PersonaName:   in.PersonaName,
		PersonaAge:    in.PersonaAge,
		PersonaOrigin: in.PersonaOrigin,
		MissionText:   in.MissionText,
		MissionXP:     in.MissionXP,
		Debrief:       in.Debrief,
	}))
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate stamp")
	}

	return &GenerateStampOutput{Stamp: record.Stamp}, nil
}

// GenerateGuide runs the guide pipeline
func (o *orchestrator) GenerateGuide(
	ctx context.Context,
	input *GenerateGuideInput,
) (out *GenerateGuideOutput, err error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	in := *input

	ctx, finish := o.begin(ctx, content.KindGuide, in.Identity)
	defer func() { finish(err) }()

	if err := o.gate(ctx, in.Identity); err != nil {
		return nil, err
	}
	if err := normalizeGuide(&in); err != nil {
		return nil, err
	}

	record, err := o.content.Generate(ctx, o.builder.Guide(&content.GuideInput{
		Destination: entities.Destination(in.Destination),
	}))
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate guide")
	}

	return &GenerateGuideOutput{Guide: record.Guide}, nil
}

func (o *orchestrator) gate(ctx context.Context, identity string) error {
	allowed, err := o.limiter.CheckAndConsume(ctx, ratelimit.NormalizeIdentity(identity))
	if err != nil {
		return errors.Wrap(err, "failed to check rate limit")
	}
	if !allowed {
		return errors.RateLimited("too many requests")
	}
	return nil
}

// begin opens a span and returns a func that records the outcome
func (o *orchestrator) begin(ctx context.Context, kind content.Kind, identity string) (context.Context, func(error)) {
	start := o.clock.Now()
	ctx, span := o.tracer.Start(ctx, "generation."+kind.String(),
		trace.WithAttributes(attribute.String("content.kind", kind.String())),
	)

	return ctx, func(err error) {
		outcome := outcomeOf(err)
		elapsed := o.clock.Now().Sub(start)

		span.SetAttributes(attribute.String("generation.outcome", outcome))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, outcome)
		}
		span.End()

		o.metrics.RecordGeneration(kind.String(), outcome, elapsed)
		logGeneration(ctx, kind, identity, outcome, elapsed, err)
	}
}

func logGeneration(ctx context.Context, kind content.Kind, identity, outcome string, elapsed time.Duration, err error) {
	attrs := []any{"kind", kind, "identity", identity, "outcome", outcome, "elapsed", elapsed}

	switch outcome {
	case observability.OutcomeOK:
		slog.InfoContext(ctx, "content generated", attrs...)
	case observability.OutcomeRateLimited, observability.OutcomeInvalid, observability.OutcomeCanceled:
		slog.InfoContext(ctx, "content request rejected", append(attrs, "error", err)...)
	default:
		slog.ErrorContext(ctx, "content generation failed", append(attrs, "error", err)...)
	}
}

func outcomeOf(err error) string {
	switch errors.GetCode(err) {
	case errors.CodeOK:
		return observability.OutcomeOK
	case errors.CodeResourceExhausted:
		return observability.OutcomeRateLimited
	case errors.CodeInvalidArgument:
		return observability.OutcomeInvalid
	case errors.CodeUnavailable:
		return observability.OutcomeProvider
	case errors.CodeMalformedResponse:
		return observability.OutcomeMalformed
	case errors.CodeCanceled, errors.CodeDeadlineExceeded:
		return observability.OutcomeCanceled
	default:
		return observability.OutcomeInternal
	}
}
