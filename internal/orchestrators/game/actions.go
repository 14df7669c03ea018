package game

import (
	"context"
	"strings"

	"github.com/KirkDiggler/alter-ego/internal/engine"
	"github.com/KirkDiggler/alter-ego/internal/entities"
	"github.com/KirkDiggler/alter-ego/internal/errors"
	"github.com/KirkDiggler/alter-ego/internal/orchestrators/generation"
)

func requireScreen(s *entities.Session, action string, allowed ...entities.Screen) error {
	for _, screen := range allowed {
		if s.Screen == screen {
			return nil
		}
	}
	return errors.FailedPreconditionf("%s is not available on %s", action, s.Screen)
}

// Start submits the intro form and moves to LOADING. A name stored by an
// earlier play-through takes precedence over input.Name.
func (m *Machine) Start(ctx context.Context, input *StartInput) (*View, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	return m.apply(ctx, "start", false, func(s *entities.Session, _ *entities.Collection) error {
		if err := requireScreen(s, "start", entities.ScreenIntro); err != nil {
			return err
		}

		name := strings.TrimSpace(s.Player.Name)
		if name == "" {
			name = strings.TrimSpace(input.Name)
		}
		destination := entities.Destination(strings.TrimSpace(string(input.Destination)))
		style := strings.TrimSpace(input.Style)

		vb := errors.NewValidationBuilder()
		errors.ValidateRuneLength(FieldName, name, 1, maxNameLength, vb)
		errors.ValidateEnum(FieldDestination, string(destination), entities.DestinationNames(), vb)
		errors.ValidateRuneLength(FieldStyle, style, 1, maxStyleLength, vb)
		if err := vb.Build(); err != nil {
			return err
		}

		s.Player = entities.Player{Name: name, Destination: destination, Style: style}
		s.Screen = entities.ScreenLoading
		return nil
	})
}

// LoadPersona fetches the persona for the current player. On failure the
// session stays on LOADING with the error flag set.
func (m *Machine) LoadPersona(ctx context.Context) (*View, error) {
	return fetch(ctx, m, fetchPlan[*entities.Persona]{
		action: "load_persona",
		guard: func(s *entities.Session) error {
			return requireScreen(s, "load_persona", entities.ScreenLoading)
		},
		call: func(ctx context.Context, s *entities.Session) (*entities.Persona, error) {
			out, err := m.generator.GeneratePersona(ctx, &generation.GeneratePersonaInput{
				Identity:    m.identity,
				Name:        s.Player.Name,
				Destination: string(s.Player.Destination),
				Style:       s.Player.Style,
			})
			if err != nil {
				return nil, err
			}
			return out.Persona, nil
		},
		commit: func(s *entities.Session, _ *entities.Collection, persona *entities.Persona) error {
			if persona == nil || len(persona.Missions) == 0 {
				return errors.MalformedResponse("persona has no missions")
			}
			s.Persona = persona.Clone()
			s.ActiveMission = nil
			s.MissionClaimed = false
			s.Screen = entities.ScreenPersona
			return nil
		},
	})
}

// Retry abandons LOADING and returns to the intro form with the player kept
func (m *Machine) Retry(ctx context.Context) (*View, error) {
	return m.apply(ctx, "retry", true, func(s *entities.Session, _ *entities.Collection) error {
		if err := requireScreen(s, "retry", entities.ScreenLoading); err != nil {
			return err
		}
		s.Screen = entities.ScreenIntro
		return nil
	})
}

// SelectMission marks one of the persona's missions as active
func (m *Machine) SelectMission(ctx context.Context, input *SelectMissionInput) (*View, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	return m.apply(ctx, "select_mission", false, func(s *entities.Session, _ *entities.Collection) error {
		if err := requireScreen(s, "select_mission", entities.ScreenPersona); err != nil {
			return err
		}
		if _, ok := s.Persona.Mission(input.Index); !ok {
			return errors.InvalidArgumentf("mission %d does not exist", input.Index).
				WithMeta("field", FieldMission)
		}
		idx := input.Index
		s.ActiveMission = &idx
		s.MissionClaimed = false
		return nil
	})
}

// AcceptMission moves to DEBRIEF for the selected mission
func (m *Machine) AcceptMission(ctx context.Context) (*View, error) {
	return m.apply(ctx, "accept_mission", false, func(s *entities.Session, _ *entities.Collection) error {
		if err := requireScreen(s, "accept_mission", entities.ScreenPersona); err != nil {
			return err
		}
		if s.ActiveMission == nil {
			return errors.FailedPrecondition("no mission selected")
		}
		s.Screen = entities.ScreenDebrief
		return nil
	})
}

// SubmitDebrief fetches the stamp for the active mission. On success the
// mission's award is added to experience exactly once, the stamp is appended
// to the collection and the session moves to STAMP.
func (m *Machine) SubmitDebrief(ctx context.Context, input *SubmitDebriefInput) (*View, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	text := strings.TrimSpace(input.Text)

	return fetch(ctx, m, fetchPlan[*entities.Stamp]{
		action: "submit_debrief",
		guard: func(s *entities.Session) error {
			if err := requireScreen(s, "submit_debrief", entities.ScreenDebrief); err != nil {
				return err
			}
			if s.ActiveMission == nil {
				return errors.FailedPrecondition("no mission selected")
			}
			if s.MissionClaimed {
				return errors.FailedPrecondition("mission already claimed")
			}
			vb := errors.NewValidationBuilder()
			errors.ValidateRuneLength(FieldDebrief, text, 1, maxDebriefLength, vb)
			return vb.Build()
		},
		call: func(ctx context.Context, s *entities.Session) (*entities.Stamp, error) {
			mission, _ := s.SelectedMission()
			out, err := m.generator.GenerateStamp(ctx, &generation.GenerateStampInput{
				Identity:      m.identity,
				PlayerName:    s.Player.Name,
				PlayerStyle:   s.Player.Style,
				Destination:   string(s.Player.Destination),
				PersonaName:   s.Persona.Name,
				PersonaAge:    s.Persona.Age,
				PersonaOrigin: s.Persona.Origin,
				MissionText:   mission.Text,
				MissionXP:     mission.XP,
				Debrief:       text,
			})
			if err != nil {
				return nil, err
			}
			return out.Stamp, nil
		},
		commit: func(s *entities.Session, c *entities.Collection, stamp *entities.Stamp) error {
			if stamp == nil {
				return errors.MalformedResponse("empty stamp")
			}
			mission, _ := s.SelectedMission()

			s.Stamp = stamp
			s.Experience += engine.MissionAward(mission.XP)
			s.MissionClaimed = true
			s.Screen = entities.ScreenStamp

			c.Append(entities.CollectionEntry{
				ID:          m.idgen.Generate(),
				Destination: s.Player.Destination,
				Stamp:       *stamp,
				CreatedAt:   m.clock.Now().UTC(),
			})
			return nil
		},
	})
}

// RevealGuide moves to GUIDE, fetching the guide first if this stamp has none.
// Below the unlock threshold it fails without contacting the generator.
func (m *Machine) RevealGuide(ctx context.Context) (*View, error) {
	guard := func(s *entities.Session) error {
		if err := requireScreen(s, "reveal_guide", entities.ScreenStamp); err != nil {
			return err
		}
		if !engine.GuideUnlocked(s.Experience) {
			return errors.FailedPreconditionf("guide unlocks at %d xp", engine.GuideUnlockXP).
				WithMeta("xp", s.Experience)
		}
		return nil
	}

	m.mu.Lock()
	cached := m.session.Screen == entities.ScreenStamp && m.session.Guide != nil
	if cached {
		defer m.mu.Unlock()
		return m.applyLocked(ctx, "reveal_guide", false, func(s *entities.Session, _ *entities.Collection) error {
			if err := guard(s); err != nil {
				return err
			}
			s.Screen = entities.ScreenGuide
			return nil
		})
	}
	m.mu.Unlock()

	return fetch(ctx, m, fetchPlan[*entities.Guide]{
		action: "reveal_guide",
		guard:  guard,
		call: func(ctx context.Context, s *entities.Session) (*entities.Guide, error) {
			out, err := m.generator.GenerateGuide(ctx, &generation.GenerateGuideInput{
				Identity:    m.identity,
				Destination: string(s.Player.Destination),
			})
			if err != nil {
				return nil, err
			}
			return out.Guide, nil
		},
		commit: func(s *entities.Session, _ *entities.Collection, guide *entities.Guide) error {
			if guide == nil {
				return errors.MalformedResponse("empty guide")
			}
			s.Guide = guide.Clone()
			s.Screen = entities.ScreenGuide
			return nil
		},
	})
}

// BackToStamp leaves GUIDE for STAMP, keeping the fetched guide
func (m *Machine) BackToStamp(ctx context.Context) (*View, error) {
	return m.apply(ctx, "back_to_stamp", false, func(s *entities.Session, _ *entities.Collection) error {
		if err := requireScreen(s, "back_to_stamp", entities.ScreenGuide); err != nil {
			return err
		}
		s.Screen = entities.ScreenStamp
		return nil
	})
}

// OpenProfile shows the passport from any screen
func (m *Machine) OpenProfile(ctx context.Context) (*View, error) {
	return m.apply(ctx, "open_profile", true, func(s *entities.Session, _ *entities.Collection) error {
		if s.Screen == entities.ScreenProfile {
			return errors.FailedPrecondition("profile is already open")
		}
		s.ReturnScreen = s.Screen
		s.Screen = entities.ScreenProfile
		return nil
	})
}

// CloseProfile returns to the screen the profile was opened from, or INTRO
func (m *Machine) CloseProfile(ctx context.Context) (*View, error) {
	return m.apply(ctx, "close_profile", true, func(s *entities.Session, _ *entities.Collection) error {
		if err := requireScreen(s, "close_profile", entities.ScreenProfile); err != nil {
			return err
		}
		back := s.ReturnScreen
		if back == "" {
			back = entities.ScreenIntro
		}
		s.Screen = back
		s.ReturnScreen = ""
		return nil
	})
}

// Reset starts a new play-through keeping the name, experience and mute
// setting. The collection is kept.
func (m *Machine) Reset(ctx context.Context) (*View, error) {
	return m.apply(ctx, "reset", true, func(s *entities.Session, _ *entities.Collection) error {
		*s = *s.Reset()
		return nil
	})
}

// ToggleMute flips the mute setting
func (m *Machine) ToggleMute(ctx context.Context) (*View, error) {
	return m.apply(ctx, "toggle_mute", false, func(s *entities.Session, _ *entities.Collection) error {
		s.Muted = !s.Muted
		return nil
	})
}
