package entities

// Screen identifies the single active screen of a session
type Screen string

// Screens
const (
	ScreenIntro   Screen = "INTRO"
	ScreenLoading Screen = "LOADING"
	ScreenPersona Screen = "PERSONA"
	ScreenDebrief Screen = "DEBRIEF"
	ScreenStamp   Screen = "STAMP"
	ScreenGuide   Screen = "GUIDE"
	ScreenProfile Screen = "PROFILE"
)

// IsValid reports whether s is a known screen
func (s Screen) IsValid() bool {
	switch s {
	case ScreenIntro, ScreenLoading, ScreenPersona, ScreenDebrief, ScreenStamp, ScreenGuide, ScreenProfile:
		return true
	}
	return false
}
