package generation

import "github.com/KirkDiggler/alter-ego/internal/entities"

// GeneratePersonaInput is the intro-screen payload
type GeneratePersonaInput struct {
	// Identity is the caller's network origin used by the request gate
	Identity string

	Name        string
	Destination string
	Style       string
}

// GeneratePersonaOutput carries the generated persona
type GeneratePersonaOutput struct {
	Persona *entities.Persona
}

// GenerateStampInput describes the mission the player just debriefed
type GenerateStampInput struct {
	Identity string

	PlayerName    string
	PlayerStyle   string
	Destination   string
	PersonaName   string
	PersonaAge    int
	PersonaOrigin string
	MissionText   string
	MissionXP     int
	Debrief       string
}

// GenerateStampOutput carries the generated stamp
type GenerateStampOutput struct {
	Stamp *entities.Stamp
}

// GenerateGuideInput selects the guide's city
type GenerateGuideInput struct {
	Identity string

	Destination string
}

// GenerateGuideOutput carries the generated guide
type GenerateGuideOutput struct {
	Guide *entities.Guide
}
