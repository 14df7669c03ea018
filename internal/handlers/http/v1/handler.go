// Package v1 serves the content operations over HTTP/JSON
package v1

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/KirkDiggler/alter-ego/internal/errors"
	"github.com/KirkDiggler/alter-ego/internal/handlers/wire"
	"github.com/KirkDiggler/alter-ego/internal/orchestrators/generation"
)

// Routes
const (
	PathGeneratePersona = "/api/generate-persona"
	PathGenerateEgo     = "/api/generate-ego"
	PathGenerateStamp   = "/api/generate-stamp"
	PathGenerateGuide   = "/api/generate-guide"
)

// maxBodyBytes bounds a request body; the largest valid payload is a stamp
// request with a 2000 character debrief.
const maxBodyBytes = 64 << 10

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	Service generation.Service

	// AllowOrigins enables CORS for the listed browser origins
	AllowOrigins []string
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil || c.Service == nil {
		return errors.InvalidArgument("generation service is required")
	}
	return nil
}

// Handler serves generate-persona, generate-stamp and generate-guide
type Handler struct {
	service      generation.Service
	allowOrigins []string
}

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		service:      cfg.Service,
		allowOrigins: cfg.AllowOrigins,
	}, nil
}

// RegisterRoutes mounts the content routes on r
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	if len(h.allowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: h.allowOrigins,
			AllowMethods: []string{"POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Accept", "X-Forwarded-For"},
		}))
	}

	r.POST(PathGeneratePersona, h.GeneratePersona)
	r.POST(PathGenerateEgo, h.GeneratePersona)
	r.POST(PathGenerateStamp, h.GenerateStamp)
	r.POST(PathGenerateGuide, h.GenerateGuide)
}

// Router builds a gin engine serving only the content routes
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	h.RegisterRoutes(r)
	return r
}

// GeneratePersona handles POST /api/generate-persona
func (h *Handler) GeneratePersona(c *gin.Context) {
	var req wire.PersonaRequest
	if !h.bind(c, &req) {
		return
	}

	out, err := h.service.GeneratePersona(c.Request.Context(), req.Input(identity(c)))
	if err != nil {
		h.fail(c.Request.Context(), c, "generate_persona", err)
		return
	}
	c.JSON(http.StatusOK, out.Persona)
}

// GenerateStamp handles POST /api/generate-stamp
func (h *Handler) GenerateStamp(c *gin.Context) {
	var req wire.StampRequest
	if !h.bind(c, &req) {
		return
	}

	out, err := h.service.GenerateStamp(c.Request.Context(), req.Input(identity(c)))
	if err != nil {
		h.fail(c.Request.Context(), c, "generate_stamp", err)
		return
	}
	c.JSON(http.StatusOK, out.Stamp)
}

// GenerateGuide handles POST /api/generate-guide
func (h *Handler) GenerateGuide(c *gin.Context) {
	var req wire.GuideRequest
	if !h.bind(c, &req) {
		return
	}

	out, err := h.service.GenerateGuide(c.Request.Context(), req.Input(identity(c)))
	if err != nil {
		h.fail(c.Request.Context(), c, "generate_guide", err)
		return
	}
	c.JSON(http.StatusOK, out.Guide)
}

// bind decodes the JSON body into req, answering 400 when it cannot
func (h *Handler) bind(c *gin.Context, req any) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	if err := c.ShouldBindJSON(req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &wire.ErrorResponse{
			Error:   errors.PublicInvalidPayload,
			Details: []errors.FieldViolation{{Field: "body", Message: bodyProblem(err)}},
		})
		return false
	}
	return true
}

func (h *Handler) fail(ctx context.Context, c *gin.Context, op string, err error) {
	status, body := wire.PublicError(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(ctx, "content request failed", "operation", op, "error", err)
	}
	c.AbortWithStatusJSON(status, body)
}

func identity(c *gin.Context) string {
	return wire.IdentityFrom(c.GetHeader("X-Forwarded-For"), c.ClientIP())
}

func bodyProblem(err error) string {
	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError
	switch {
	case stderrors.As(err, &typeErr):
		return typeErr.Field + ": expected " + typeErr.Type.String()
	case stderrors.As(err, &maxErr):
		return "too large"
	default:
		return "must be a JSON object"
	}
}
