package game

import (
	"github.com/KirkDiggler/alter-ego/internal/engine"
	"github.com/KirkDiggler/alter-ego/internal/entities"
)

// Field names reported in validation violations
const (
	FieldName        = "name"
	FieldDestination = "city"
	FieldStyle       = "style"
	FieldMission     = "activeMission"
	FieldDebrief     = "debrief"
)

// Player input bounds, in characters
const (
	maxNameLength    = 30
	maxStyleLength   = 50
	maxDebriefLength = 2000
)

// StartInput is the intro-screen form
type StartInput struct {
	Name        string
	Destination entities.Destination
	Style       string
}

// SelectMissionInput picks a mission by its index in the persona's list
type SelectMissionInput struct {
	Index int
}

// SubmitDebriefInput carries the player's account of the mission
type SubmitDebriefInput struct {
	Text string
}

// View is a read-only snapshot of the session plus everything derived from it
type View struct {
	Session *entities.Session

	Level         int
	LevelName     string
	LevelProgress float64
	MaxLevel      bool
	NextLevel     *engine.Band

	GuideUnlocked bool
	GuideProgress float64

	Collection    []entities.CollectionEntry
	CitiesVisited int
}

func newView(s *entities.Session, c *entities.Collection) *View {
	band := engine.BandOf(s.Experience)
	v := &View{
		Session:       s.Clone(),
		Level:         band.Level,
		LevelName:     band.Name,
		LevelProgress: engine.ProgressWithinLevel(s.Experience),
		MaxLevel:      engine.IsMaxLevel(s.Experience),
		GuideUnlocked: engine.GuideUnlocked(s.Experience),
		GuideProgress: engine.GuideProgress(s.Experience),
		Collection:    c.All(),
		CitiesVisited: c.CitiesVisited(),
	}
	if next, ok := engine.NextBand(s.Experience); ok {
		v.NextLevel = &next
	}
	return v
}
