// Package v1 serves the content operations over gRPC
package v1

import (
	"context"
	"log/slog"
	"net"

	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/alter-ego/internal/errors"
	"github.com/KirkDiggler/alter-ego/internal/handlers/wire"
	"github.com/KirkDiggler/alter-ego/internal/orchestrators/generation"
	alteregov1 "github.com/KirkDiggler/alter-ego/proto/alterego/v1"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	Service generation.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil || c.Service == nil {
		return errors.InvalidArgument("generation service is required")
	}
	return nil
}

// Handler implements alteregov1.ContentServiceServer
type Handler struct {
	alteregov1.UnimplementedContentServiceServer
	service generation.Service
}

var _ alteregov1.ContentServiceServer = (*Handler)(nil)

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{service: cfg.Service}, nil
}

// GeneratePersona generates a persona
func (h *Handler) GeneratePersona(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in wire.PersonaRequest
	if err := FromStruct(req, &in); err != nil {
		return nil, errors.ToPublicGRPCError(err)
	}

	out, err := h.service.GeneratePersona(ctx, in.Input(identity(ctx)))
	if err != nil {
		return nil, h.fail(ctx, "generate_persona", err)
	}
	return h.reply(ctx, out.Persona)
}

// GenerateStamp generates a stamp
func (h *Handler) GenerateStamp(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in wire.StampRequest
	if err := FromStruct(req, &in); err != nil {
		return nil, errors.ToPublicGRPCError(err)
	}

	out, err := h.service.GenerateStamp(ctx, in.Input(identity(ctx)))
	if err != nil {
		return nil, h.fail(ctx, "generate_stamp", err)
	}
	return h.reply(ctx, out.Stamp)
}

// GenerateGuide generates a guide
func (h *Handler) GenerateGuide(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in wire.GuideRequest
	if err := FromStruct(req, &in); err != nil {
		return nil, errors.ToPublicGRPCError(err)
	}

	out, err := h.service.GenerateGuide(ctx, in.Input(identity(ctx)))
	if err != nil {
		return nil, h.fail(ctx, "generate_guide", err)
	}
	return h.reply(ctx, out.Guide)
}

func (h *Handler) reply(ctx context.Context, v any) (*structpb.Struct, error) {
	out, err := ToStruct(v)
	if err != nil {
		return nil, h.fail(ctx, "encode_reply", err)
	}
	return out, nil
}

func (h *Handler) fail(ctx context.Context, op string, err error) error {
	switch errors.GetCode(err) {
	case errors.CodeInvalidArgument, errors.CodeResourceExhausted:
	default:
		slog.ErrorContext(ctx, "content request failed", "operation", op, "error", err)
	}
	return errors.ToPublicGRPCError(err)
}

// identity reads x-forwarded-for metadata, then the peer address
func identity(ctx context.Context) string {
	var forwarded string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get("x-forwarded-for"); len(values) > 0 {
			forwarded = values[0]
		}
	}

	var addr string
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		addr = p.Addr.String()
		if host, _, err := net.SplitHostPort(addr); err == nil {
			addr = host
		}
	}
	return wire.IdentityFrom(forwarded, addr)
}
