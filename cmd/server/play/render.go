package play

import (
	"fmt"
	"io"
	"strings"

	"github.com/KirkDiggler/alter-ego/internal/entities"
	"github.com/KirkDiggler/alter-ego/internal/orchestrators/game"
)

const barWidth = 20

func destinationNames() []string {
	return entities.DestinationNames()
}

func suggestedStyles() []string {
	return append([]string(nil), entities.SuggestedStyles...)
}

// render prints the active screen of v
func render(w io.Writer, v *game.View) {
	s := v.Session

	fmt.Fprintf(w, "── %s ── %s · %d xp", s.Screen, v.LevelName, s.Experience)
	if s.Muted {
		fmt.Fprint(w, " · muted")
	}
	fmt.Fprintln(w)

	switch s.Screen {
	case entities.ScreenIntro:
		renderIntro(w, s)
	case entities.ScreenLoading:
		fmt.Fprintf(w, "Finding an alter ego for %s in %s.\n", s.Player.Name, s.Player.Destination)
		if s.Error != nil {
			fmt.Fprintln(w, "Run `play persona` to try again or `play retry` to change your answers.")
		}
	case entities.ScreenPersona:
		renderPersona(w, s)
	case entities.ScreenDebrief:
		if m, ok := s.SelectedMission(); ok {
			fmt.Fprintf(w, "Mission: %s (+%d xp)\n", m.Text, m.XP)
		}
		fmt.Fprintln(w, "Tell us how it went with `play debrief \"...\"`.")
	case entities.ScreenStamp:
		renderStamp(w, v)
	case entities.ScreenGuide:
		renderGuide(w, s.Guide)
	case entities.ScreenProfile:
		renderProfile(w, v)
	}

	if s.Error != nil {
		fmt.Fprintf(w, "\n! %s\n", s.Error.Message)
	}
}

func renderIntro(w io.Writer, s *entities.Session) {
	if s.Player.Name != "" {
		fmt.Fprintf(w, "Welcome back, %s.\n", s.Player.Name)
	}
	fmt.Fprintf(w, "Choose a city: %s\n", strings.Join(destinationNames(), ", "))
	fmt.Fprintln(w, "Then run `play start --city <city> --style <style>`.")
}

func renderPersona(w io.Writer, s *entities.Session) {
	p := s.Persona
	fmt.Fprintf(w, "%s, %d, from %s\n", p.Name, p.Age, p.Origin)
	fmt.Fprintf(w, "  pace    %s\n", stars(p.Stats.Pace))
	fmt.Fprintf(w, "  culture %s\n", stars(p.Stats.Culture))
	fmt.Fprintf(w, "  social  %s\n", stars(p.Stats.Social))
	fmt.Fprintf(w, "Moves: %s\nNotices: %s\nNever: %s\n", p.MovementDesc, p.NoticeDesc, p.NeverDesc)
	fmt.Fprintf(w, "\"%s\"\n\n", p.Quote)

	for i, m := range p.Missions {
		marker := " "
		if s.ActiveMission != nil && *s.ActiveMission == i {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %d. [%s +%d xp] %s\n", marker, i+1, m.Difficulty, m.XP, m.Text)
	}
}

func renderStamp(w io.Writer, v *game.View) {
	s := v.Session
	fmt.Fprintf(w, "%s  %s\n\n%s\n\n%s\n\n", s.Stamp.SealGlyph, s.Player.Destination, s.Stamp.MomentText, s.Stamp.ConfrontationText)

	if v.GuideUnlocked {
		fmt.Fprintln(w, "Your local guide is ready: `play guide`.")
		return
	}
	fmt.Fprintf(w, "Guide %s %d%%\n", bar(v.GuideProgress), int(v.GuideProgress*100))
}

func renderGuide(w io.Writer, g *entities.Guide) {
	fmt.Fprintf(w, "%s, %d, from %s\n", g.Name, g.Age, g.Origin)
	fmt.Fprintf(w, "%d languages · %d years here\n", g.Languages, g.YearsInCity)
	fmt.Fprintf(w, "Territory: %s\nOffer: %s\n", g.Territory, g.Offer)
	if len(g.Specialties) > 0 {
		fmt.Fprintf(w, "Specialties: %s\n", strings.Join(g.Specialties, ", "))
	}
	if g.Quote != "" {
		fmt.Fprintf(w, "\"%s\"\n", g.Quote)
	}
}

func renderProfile(w io.Writer, v *game.View) {
	fmt.Fprintf(w, "Level %d %s\n", v.Level, v.LevelName)
	if v.MaxLevel {
		fmt.Fprintln(w, "Max level")
	} else if v.NextLevel != nil {
		fmt.Fprintf(w, "%s %d%% to %s\n", bar(v.LevelProgress), int(v.LevelProgress*100), v.NextLevel.Name)
	}
	fmt.Fprintf(w, "Stamps %d · Cities %d · XP %d\n", len(v.Collection), v.CitiesVisited, v.Session.Experience)

	for _, e := range v.Collection {
		fmt.Fprintf(w, "  %s %s  %s\n", e.Stamp.SealGlyph, e.Destination, e.CreatedAt.Format("2 Jan 2006"))
	}
}

func stars(n int) string {
	n = max(entities.StatMin, min(n, entities.StatMax))
	return strings.Repeat("■", n) + strings.Repeat("□", entities.StatMax-n)
}

func bar(progress float64) string {
	filled := int(progress * barWidth)
	filled = max(0, min(filled, barWidth))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
}
