// Package remote implements the generation service against a running
// alter-ego server over gRPC.
package remote

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/alter-ego/internal/entities"
	"github.com/KirkDiggler/alter-ego/internal/errors"
	grpcv1 "github.com/KirkDiggler/alter-ego/internal/handlers/grpc/v1"
	"github.com/KirkDiggler/alter-ego/internal/handlers/wire"
	"github.com/KirkDiggler/alter-ego/internal/orchestrators/generation"
	"github.com/KirkDiggler/alter-ego/internal/pkg/ratelimit"
	alteregov1 "github.com/KirkDiggler/alter-ego/proto/alterego/v1"
)

// Config holds the connection for the remote client
type Config struct {
	// Conn is used when set; otherwise Address is dialed
	Conn    grpc.ClientConnInterface
	Address string
}

// Validate ensures a connection can be made
func (c *Config) Validate() error {
	if c == nil || (c.Conn == nil && c.Address == "") {
		return errors.InvalidArgument("address or connection is required")
	}
	return nil
}

// Client calls ContentService and maps statuses back to error codes
type Client struct {
	rpc  alteregov1.ContentServiceClient
	conn *grpc.ClientConn
}

var _ generation.Service = (*Client)(nil)

// New creates a remote client
func New(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{}
	cc := cfg.Conn
	if cc == nil {
		conn, err := grpc.NewClient(cfg.Address, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to connect to %s", cfg.Address)
		}
		c.conn = conn
		cc = conn
	}
	c.rpc = alteregov1.NewContentServiceClient(cc)
	return c, nil
}

// Close releases a connection dialed by New
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// GeneratePersona implements generation.Service
func (c *Client) GeneratePersona(ctx context.Context, input *generation.GeneratePersonaInput) (*generation.GeneratePersonaOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var persona entities.Persona
	if err := c.call(ctx, input.Identity, c.rpc.GeneratePersona, wire.NewPersonaRequest(input), &persona); err != nil {
		return nil, err
	}
	return &generation.GeneratePersonaOutput{Persona: &persona}, nil
}

// GenerateStamp implements generation.Service
func (c *Client) GenerateStamp(ctx context.Context, input *generation.GenerateStampInput) (*generation.GenerateStampOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var stamp entities.Stamp
	if err := c.call(ctx, input.Identity, c.rpc.GenerateStamp, wire.NewStampRequest(input), &stamp); err != nil {
		return nil, err
	}
	return &generation.GenerateStampOutput{Stamp: &stamp}, nil
}

// GenerateGuide implements generation.Service
func (c *Client) GenerateGuide(ctx context.Context, input *generation.GenerateGuideInput) (*generation.GenerateGuideOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var guide entities.Guide
	if err := c.call(ctx, input.Identity, c.rpc.GenerateGuide, wire.NewGuideRequest(input), &guide); err != nil {
		return nil, err
	}
	return &generation.GenerateGuideOutput{Guide: &guide}, nil
}

type rpcMethod func(context.Context, *structpb.Struct, ...grpc.CallOption) (*structpb.Struct, error)

func (c *Client) call(ctx context.Context, identity string, method rpcMethod, req, reply any) error {
	in, err := grpcv1.ToStruct(req)
	if err != nil {
		return err
	}

	if identity != "" && identity != ratelimit.UnknownIdentity {
		ctx = metadata.AppendToOutgoingContext(ctx, "x-forwarded-for", identity)
	}

	out, err := method(ctx, in)
	if err != nil {
		return errors.FromGRPCError(err)
	}

	if err := grpcv1.FromStruct(out, reply); err != nil {
		return errors.MalformedResponse("server reply does not match the expected shape")
	}
	return nil
}
