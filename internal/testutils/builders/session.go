package builders

import (
	"github.com/KirkDiggler/alter-ego/internal/entities"
)

// SessionBuilder provides a fluent interface for building sessions at any screen
type SessionBuilder struct {
	session *entities.Session
}

// NewSessionBuilder starts from a fresh session
func NewSessionBuilder() *SessionBuilder {
	return &SessionBuilder{session: entities.NewSession()}
}

// WithPlayer sets the player
func (b *SessionBuilder) WithPlayer(name string, destination entities.Destination, style string) *SessionBuilder {
	b.session.Player = entities.Player{Name: name, Destination: destination, Style: style}
	return b
}

// WithExperience sets experience
func (b *SessionBuilder) WithExperience(xp int) *SessionBuilder {
	b.session.Experience = xp
	return b
}

// AtLoading moves the session to LOADING
func (b *SessionBuilder) AtLoading() *SessionBuilder {
	b.session.Screen = entities.ScreenLoading
	return b
}

// AtPersona moves the session to PERSONA with persona p
func (b *SessionBuilder) AtPersona(p *entities.Persona) *SessionBuilder {
	b.session.Screen = entities.ScreenPersona
	b.session.Persona = p
	return b
}

// AtDebrief moves the session to DEBRIEF with mission index selected
func (b *SessionBuilder) AtDebrief(p *entities.Persona, mission int) *SessionBuilder {
	b.session.Screen = entities.ScreenDebrief
	b.session.Persona = p
	b.session.ActiveMission = &mission
	return b
}

// AtStamp moves the session to STAMP with the mission already claimed
func (b *SessionBuilder) AtStamp(p *entities.Persona, mission int, stamp *entities.Stamp) *SessionBuilder {
	b.AtDebrief(p, mission)
	b.session.Screen = entities.ScreenStamp
	b.session.Stamp = stamp
	b.session.MissionClaimed = true
	return b
}

// Build returns a copy of the built session
func (b *SessionBuilder) Build() *entities.Session {
	return b.session.Clone()
}
