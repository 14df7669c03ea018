// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/alter-ego/internal/entities"
)

// PersonaBuilder provides a fluent interface for building test Persona instances
type PersonaBuilder struct {
	persona *entities.Persona
}

// NewPersonaBuilder creates a builder with a valid three-mission persona
func NewPersonaBuilder() *PersonaBuilder {
	return &PersonaBuilder{
		persona: &entities.Persona{
			Name:      "Test Persona",
			Age:       40,
			Origin:    "Monastir",
			AvatarRef: "avatar-test",
			Stats:     entities.Stats{Pace: 5, Culture: 5, Social: 5},
			Quote:     "Slowly.",
			Missions: []entities.Mission{
				{Text: "easy mission", XP: 10, Difficulty: entities.DifficultyEasy},
				{Text: "medium mission", XP: 20, Difficulty: entities.DifficultyMedium},
				{Text: "hard mission", XP: 30, Difficulty: entities.DifficultyHard},
			},
		},
	}
}

// WithName sets the persona name
func (b *PersonaBuilder) WithName(name string) *PersonaBuilder {
	b.persona.Name = name
	return b
}

// WithStats sets all three stats
func (b *PersonaBuilder) WithStats(pace, culture, social int) *PersonaBuilder {
	b.persona.Stats = entities.Stats{Pace: pace, Culture: culture, Social: social}
	return b
}

// WithMission replaces the mission at index
func (b *PersonaBuilder) WithMission(index int, mission entities.Mission) *PersonaBuilder {
	b.persona.Missions[index] = mission
	return b
}

// WithMissions replaces every mission
func (b *PersonaBuilder) WithMissions(missions ...entities.Mission) *PersonaBuilder {
	b.persona.Missions = missions
	return b
}

// Build returns a copy of the built persona
func (b *PersonaBuilder) Build() *entities.Persona {
	return b.persona.Clone()
}
