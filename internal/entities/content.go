package entities

// Stamp is the narrative artifact produced after a mission debrief
type Stamp struct {
	MomentText        string `json:"moment"`
	ConfrontationText string `json:"confrontation"`
	SealGlyph         string `json:"seal_emoji"`
}

// Guide is the local-contact profile unlocked at the guide threshold
type Guide struct {
	Name        string   `json:"name"`
	AvatarRef   string   `json:"avatar_id"`
	Age         int      `json:"age"`
	Origin      string   `json:"origin"`
	Languages   int      `json:"languages"`
	YearsInCity int      `json:"years_in_city"`
	Territory   string   `json:"territory"`
	Offer       string   `json:"offer"`
	Specialties []string `json:"specialties"`
	Quote       string   `json:"quote,omitempty"`
}

// Clone returns a deep copy
func (g *Guide) Clone() *Guide {
	if g == nil {
		return nil
	}
	out := *g
	out.Specialties = append([]string(nil), g.Specialties...)
	return &out
}
