// Package engine computes experience and level derivations for a play-through.
//
// Everything here is a pure function of experience. Nothing is cached, so the
// guide unlock and the level are re-evaluated every time a view is rendered.
package engine

// Band is one level of the progression table. Max is exclusive.
type Band struct {
	Level int
	Name  string
	Min   int
	Max   int
}

const (
	// CompletionBonus is added to a mission's xp when its stamp is claimed
	CompletionBonus = 50

	// GuideUnlockXP is the experience needed before a guide can be fetched
	GuideUnlockXP = 750

	// levelCeiling is the sentinel upper bound of the last band
	levelCeiling = 9999
)

var levels = []Band{
	{Level: 1, Name: "OUTSIDER", Min: 0, Max: 150},
	{Level: 2, Name: "TRAVELER", Min: 150, Max: 280},
	{Level: 3, Name: "WANDERER", Min: 280, Max: 420},
	{Level: 4, Name: "RESIDENT", Min: 420, Max: 580},
	{Level: 5, Name: "INSIDER", Min: 580, Max: 750},
	{Level: 6, Name: "GHOST LOCAL", Min: 750, Max: levelCeiling},
}

// Levels returns a copy of the progression table in order
func Levels() []Band {
	out := make([]Band, len(levels))
	copy(out, levels)
	return out
}

// MaxLevel is the index of the last band
func MaxLevel() int {
	return len(levels)
}

// BandOf returns the first band whose upper bound exceeds xp, or the last band
func BandOf(xp int) Band {
	for _, b := range levels {
		if xp < b.Max {
			return b
		}
	}
	return levels[len(levels)-1]
}

// LevelOf returns the 1-based level for xp
func LevelOf(xp int) int {
	return BandOf(xp).Level
}

// ProgressWithinLevel is how far xp sits inside its band, clamped to [0,1]
func ProgressWithinLevel(xp int) float64 {
	b := BandOf(xp)
	return clamp(float64(xp-b.Min) / float64(b.Max-b.Min))
}

// IsMaxLevel reports whether xp is in the last band
func IsMaxLevel(xp int) bool {
	return LevelOf(xp) == MaxLevel()
}

// NextBand returns the band after the one holding xp. ok is false at max level.
func NextBand(xp int) (next Band, ok bool) {
	level := LevelOf(xp)
	if level >= MaxLevel() {
		return Band{}, false
	}
	return levels[level], true
}

// MissionAward is the experience granted for claiming a stamp on a mission worth xp
func MissionAward(missionXP int) int {
	return missionXP + CompletionBonus
}

// GuideUnlocked reports whether a guide may be fetched at xp
func GuideUnlocked(xp int) bool {
	return xp >= GuideUnlockXP
}

// GuideProgress is xp toward the guide threshold, clamped to [0,1]
func GuideProgress(xp int) float64 {
	return clamp(float64(xp) / float64(GuideUnlockXP))
}

func clamp(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
