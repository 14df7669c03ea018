// Package entities provides the core data structures of an alter-ego play-through.
package entities

import (
	"fmt"
	"strings"
)

// Player is the identity supplied on the intro screen
type Player struct {
	Name        string      `json:"name"`
	Destination Destination `json:"city"`
	Style       string      `json:"style"`
}

// ActionError is the error flag shown on the screen an action failed on
type ActionError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Session is the single source of truth for one play-through.
// Level is never stored here; it is derived from Experience.
type Session struct {
	Player Player `json:"player"`
	Screen Screen `json:"screen"`

	// ReturnScreen is where PROFILE navigates back to
	ReturnScreen Screen `json:"returnScreen,omitempty"`

	Persona *Persona `json:"persona"`

	// ActiveMission indexes Persona.Missions
	ActiveMission  *int `json:"activeMission"`
	MissionClaimed bool `json:"missionClaimed"`

	Stamp *Stamp `json:"stamp"`
	Guide *Guide `json:"guide"`

	Experience int  `json:"xp"`
	Muted      bool `json:"isMuted"`

	Error *ActionError `json:"error,omitempty"`
}

// NewSession returns the fresh-session default
func NewSession() *Session {
	return &Session{Screen: ScreenIntro}
}

// Reset derives a fresh session keeping only the player name, experience and
// mute setting.
func (s *Session) Reset() *Session {
	fresh := NewSession()
	fresh.Player.Name = s.Player.Name
	fresh.Experience = s.Experience
	fresh.Muted = s.Muted
	return fresh
}

// SelectedMission returns the active mission if one is selected
func (s *Session) SelectedMission() (Mission, bool) {
	if s.ActiveMission == nil {
		return Mission{}, false
	}
	return s.Persona.Mission(*s.ActiveMission)
}

// Clone returns a deep copy
func (s *Session) Clone() *Session {
	out := *s
	out.Persona = s.Persona.Clone()
	if s.ActiveMission != nil {
		idx := *s.ActiveMission
		out.ActiveMission = &idx
	}
	if s.Stamp != nil {
		stamp := *s.Stamp
		out.Stamp = &stamp
	}
	out.Guide = s.Guide.Clone()
	if s.Error != nil {
		e := *s.Error
		out.Error = &e
	}
	return &out
}

// CheckInvariants reports the first structural inconsistency in s
func (s *Session) CheckInvariants() error {
	if !s.Screen.IsValid() {
		return fmt.Errorf("unknown screen %q", s.Screen)
	}
	if s.Screen == ScreenProfile && s.ReturnScreen == ScreenProfile {
		return fmt.Errorf("profile cannot return to itself")
	}
	if s.ReturnScreen != "" && !s.ReturnScreen.IsValid() {
		return fmt.Errorf("unknown return screen %q", s.ReturnScreen)
	}
	if s.Experience < 0 {
		return fmt.Errorf("negative experience %d", s.Experience)
	}
	if s.Player.Destination != "" && !s.Player.Destination.IsValid() {
		return fmt.Errorf("unknown destination %q", s.Player.Destination)
	}
	if s.ActiveMission != nil {
		if _, ok := s.SelectedMission(); !ok {
			return fmt.Errorf("active mission %d does not belong to the persona", *s.ActiveMission)
		}
	}
	if s.Stamp != nil && (s.Persona == nil || s.ActiveMission == nil) {
		return fmt.Errorf("stamp without persona and mission")
	}
	if s.MissionClaimed && s.ActiveMission == nil {
		return fmt.Errorf("claimed mission without selection")
	}

	screen := s.Screen
	if screen == ScreenProfile {
		screen = s.ReturnScreen
	}
	switch screen {
	case ScreenLoading:
		if strings.TrimSpace(s.Player.Name) == "" || !s.Player.Destination.IsValid() {
			return fmt.Errorf("loading without a complete player")
		}
	case ScreenPersona, ScreenDebrief:
		if s.Persona == nil {
			return fmt.Errorf("%s without persona", screen)
		}
		if screen == ScreenDebrief && s.ActiveMission == nil {
			return fmt.Errorf("debrief without mission")
		}
	case ScreenStamp:
		if s.Stamp == nil {
			return fmt.Errorf("stamp screen without stamp")
		}
	case ScreenGuide:
		if s.Guide == nil || s.Stamp == nil {
			return fmt.Errorf("guide screen without guide")
		}
	}
	return nil
}
