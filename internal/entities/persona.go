package entities

// Difficulty grades a mission
type Difficulty string

// Mission difficulties
const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// Stat bounds for persona stats
const (
	StatMin = 1
	StatMax = 10
)

// Stats are the persona's measurable axes, each an integer in [StatMin, StatMax]
type Stats struct {
	Pace    int `json:"pace"`
	Culture int `json:"culture"`
	Social  int `json:"social"`
}

// Mission is one challenge offered by the persona
type Mission struct {
	Text       string     `json:"text"`
	XP         int        `json:"xp"`
	Difficulty Difficulty `json:"difficulty"`
}

// Persona is the generated alter ego for one play-through
type Persona struct {
	Name         string    `json:"name"`
	Age          int       `json:"age"`
	Origin       string    `json:"origin"`
	AvatarRef    string    `json:"avatar_id"`
	Stats        Stats     `json:"stats"`
	MovementDesc string    `json:"movement"`
	NoticeDesc   string    `json:"notices"`
	NeverDesc    string    `json:"never"`
	Quote        string    `json:"quote"`
	Missions     []Mission `json:"missions"`
}

// Mission returns the mission at index and whether it exists
func (p *Persona) Mission(index int) (Mission, bool) {
	if p == nil || index < 0 || index >= len(p.Missions) {
		return Mission{}, false
	}
	return p.Missions[index], true
}

// Clone returns a deep copy
func (p *Persona) Clone() *Persona {
	if p == nil {
		return nil
	}
	out := *p
	out.Missions = append([]Mission(nil), p.Missions...)
	return &out
}
