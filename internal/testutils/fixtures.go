package testutils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/alter-ego/internal/entities"
)

// Defaults used across fixtures
const (
	TestPlayerName  = "Amine"
	TestStyle       = "Luxury & curated"
	TestDestination = entities.DestinationSousse
	TestIdentity    = "203.0.113.7"
)

// CreateTestPersona returns a schema-valid persona with three missions.
// Mission index 2 is the HARD mission worth 30 xp.
func CreateTestPersona() *entities.Persona {
	return &entities.Persona{
		Name:         "Hedi",
		Age:          71,
		Origin:       "Ksar Hellal",
		AvatarRef:    "m_old_fisherman",
		Stats:        entities.Stats{Pace: 2, Culture: 9, Social: 8},
		MovementDesc: "Walks everywhere, stops for every greeting.",
		NoticeDesc:   "Who is missing from the café this morning.",
		NeverDesc:    "Books anything in advance.",
		Quote:        "The sea tells you when to leave.",
		Missions: []entities.Mission{
			{Text: "Drink a capucin standing at the counter", XP: 10, Difficulty: entities.DifficultyEasy},
			{Text: "Haggle for olives in the medina without English", XP: 20, Difficulty: entities.DifficultyMedium},
			{Text: "Find the net mender behind the Ribat and ask for a lesson", XP: 30, Difficulty: entities.DifficultyHard},
		},
	}
}

// CreateTestStamp returns a schema-valid stamp
func CreateTestStamp() *entities.Stamp {
	return &entities.Stamp{
		MomentText:        "You stood in the wrong queue and stayed anyway.",
		ConfrontationText: "Hedi would have laughed at the map in your hand.",
		SealGlyph:         "🐟",
	}
}

// CreateTestGuide returns a schema-valid guide
func CreateTestGuide() *entities.Guide {
	return &entities.Guide{
		Name:        "Yasmine",
		AvatarRef:   "f_young_artist",
		Age:         29,
		Origin:      "Sousse",
		Languages:   4,
		YearsInCity: 29,
		Territory:   "The medina and the port",
		Offer:       "A walk through the workshops nobody lists",
		Specialties: []string{"ceramics", "street food", "fishing harbour"},
	}
}

// MustJSON marshals v or fails the test
func MustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
