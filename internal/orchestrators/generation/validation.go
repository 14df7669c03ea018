package generation

import (
	"strings"

	"github.com/KirkDiggler/alter-ego/internal/entities"
	"github.com/KirkDiggler/alter-ego/internal/errors"
)

// Field names reported in validation errors. They match the JSON payload keys.
const (
	FieldName        = "name"
	FieldCity        = "city"
	FieldStyle       = "style"
	FieldPlayerName  = "playerName"
	FieldPlayerStyle = "playerStyle"
	FieldEgoName     = "egoName"
	FieldEgoAge      = "egoAge"
	FieldEgoOrigin   = "egoOrigin"
	FieldMissionText = "missionText"
	FieldMissionXP   = "missionXP"
	FieldDebrief     = "debrief"
)

const (
	maxPlayerName  = 30
	maxPlayerStyle = 50
	maxShortText   = 255
	maxMissionText = 1000
	maxDebrief     = 2000
)

// normalizePersona trims the free-text fields in place and validates them
func normalizePersona(in *GeneratePersonaInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Style = strings.TrimSpace(in.Style)

	vb := errors.NewValidationBuilder()
	errors.ValidateRuneLength(FieldName, in.Name, 1, maxPlayerName, vb)
	errors.ValidateEnum(FieldCity, in.Destination, entities.DestinationNames(), vb)
	errors.ValidateRuneLength(FieldStyle, in.Style, 1, maxPlayerStyle, vb)
	return vb.Build()
}

func normalizeStamp(in *GenerateStampInput) error {
	in.PlayerName = strings.TrimSpace(in.PlayerName)
	in.Debrief = strings.TrimSpace(in.Debrief)
	in.MissionText = strings.TrimSpace(in.MissionText)

	vb := errors.NewValidationBuilder()
	errors.ValidateRuneLength(FieldPlayerName, in.PlayerName, 1, maxShortText, vb)
	errors.ValidateRuneLength(FieldPlayerStyle, in.PlayerStyle, 0, maxShortText, vb)
	errors.ValidateRuneLength(FieldCity, in.Destination, 0, maxShortText, vb)
	errors.ValidateRuneLength(FieldEgoName, in.PersonaName, 0, maxShortText, vb)
	errors.ValidateRuneLength(FieldEgoOrigin, in.PersonaOrigin, 0, maxShortText, vb)
	if in.PersonaAge < 0 {
		vb.Field(FieldEgoAge, "must not be negative")
	}
	errors.ValidateRuneLength(FieldMissionText, in.MissionText, 1, maxMissionText, vb)
	errors.ValidatePositive(FieldMissionXP, in.MissionXP, vb)
	errors.ValidateRuneLength(FieldDebrief, in.Debrief, 1, maxDebrief, vb)
	return vb.Build()
}

func normalizeGuide(in *GenerateGuideInput) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateEnum(FieldCity, in.Destination, entities.DestinationNames(), vb)
	return vb.Build()
}
