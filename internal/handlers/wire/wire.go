// Package wire defines the JSON shapes of the three content operations as
// browsers and remote clients send them.
package wire

import (
	"strings"

	"github.com/KirkDiggler/alter-ego/internal/errors"
	"github.com/KirkDiggler/alter-ego/internal/orchestrators/generation"
	"github.com/KirkDiggler/alter-ego/internal/pkg/ratelimit"
)

// PersonaRequest is the generate-persona payload
type PersonaRequest struct {
	Name  string `json:"name"`
	City  string `json:"city"`
	Style string `json:"style"`
}

// StampRequest is the generate-stamp payload
type StampRequest struct {
	PlayerName  string `json:"playerName"`
	PlayerStyle string `json:"playerStyle"`
	City        string `json:"city"`
	EgoName     string `json:"egoName"`
	EgoAge      int    `json:"egoAge"`
	EgoOrigin   string `json:"egoOrigin"`
	MissionText string `json:"missionText"`
	MissionXP   int    `json:"missionXP"`
	Debrief     string `json:"debrief"`
}

// GuideRequest is the generate-guide payload
type GuideRequest struct {
	City string `json:"city"`
}

// ErrorResponse is the body of every failed call
type ErrorResponse struct {
	Error   string                  `json:"error"`
	Details []errors.FieldViolation `json:"details,omitempty"`
}

// Input converts the payload for the generation service
func (r *PersonaRequest) Input(identity string) *generation.GeneratePersonaInput {
	return &generation.GeneratePersonaInput{
		Identity:    identity,
		Name:        r.Name,
		Destination: r.City,
		Style:       r.Style,
	}
}

// Input converts the payload for the generation service
func (r *StampRequest) Input(identity string) *generation.GenerateStampInput {
	return &generation.GenerateStampInput{
		Identity:      identity,
		PlayerName:    r.PlayerName,
		PlayerStyle:   r.PlayerStyle,
		Destination:   r.City,
		PersonaName:   r.EgoName,
		PersonaAge:    r.EgoAge,
		PersonaOrigin: r.EgoOrigin,
		MissionText:   r.MissionText,
		MissionXP:     r.MissionXP,
		Debrief:       r.Debrief,
	}
}

// Input converts the payload for the generation service
func (r *GuideRequest) Input(identity string) *generation.GenerateGuideInput {
	return &generation.GenerateGuideInput{
		Identity:    identity,
		Destination: r.City,
	}
}

// NewPersonaRequest is the inverse of PersonaRequest.Input
func NewPersonaRequest(in *generation.GeneratePersonaInput) *PersonaRequest {
	return &PersonaRequest{Name: in.Name, City: in.Destination, Style: in.Style}
}

// NewStampRequest is the inverse of StampRequest.Input
func NewStampRequest(in *generation.GenerateStampInput) *StampRequest {
	return &StampRequest{
		PlayerName:  in.PlayerName,
		PlayerStyle: in.PlayerStyle,
		City:        in.Destination,
		EgoName:     in.PersonaName,
		EgoAge:      in.PersonaAge,
		EgoOrigin:   in.PersonaOrigin,
		MissionText: in.MissionText,
		MissionXP:   in.MissionXP,
		Debrief:     in.Debrief,
	}
}

// NewGuideRequest is the inverse of GuideRequest.Input
func NewGuideRequest(in *generation.GenerateGuideInput) *GuideRequest {
	return &GuideRequest{City: in.Destination}
}

// PublicError maps err to the status and body shown to callers. Only
// validation details survive; every other failure is reported without detail.
func PublicError(err error) (int, *ErrorResponse) {
	switch code := errors.GetCode(err); code {
	case errors.CodeInvalidArgument:
		return code.PublicHTTPStatus(), &ErrorResponse{
			Error:   errors.PublicInvalidPayload,
			Details: errors.FieldViolations(err),
		}
	case errors.CodeResourceExhausted:
		return code.PublicHTTPStatus(), &ErrorResponse{Error: errors.PublicTooManyRequests}
	default:
		return errors.CodeInternal.PublicHTTPStatus(), &ErrorResponse{Error: errors.PublicInternal}
	}
}

// IdentityFrom picks the rate-limit identity: the first X-Forwarded-For hop,
// then the transport peer address, then the unknown identity.
func IdentityFrom(forwardedFor, peer string) string {
	if first, _, _ := strings.Cut(forwardedFor, ","); strings.TrimSpace(first) != "" {
		return strings.TrimSpace(first)
	}
	return ratelimit.NormalizeIdentity(strings.TrimSpace(peer))
}
