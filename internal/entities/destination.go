package entities

// Destination is one of the fixed cities a play-through can target
type Destination string

// Supported destinations
const (
	DestinationTunis       Destination = "Tunis"
	DestinationSidiBouSaid Destination = "Sidi Bou Said"
	DestinationDjerba      Destination = "Djerba"
	DestinationSousse      Destination = "Sousse"
	DestinationDouz        Destination = "Douz"
	DestinationCarthage    Destination = "Carthage"
)

var destinations = []Destination{
	DestinationTunis,
	DestinationSidiBouSaid,
	DestinationDjerba,
	DestinationSousse,
	DestinationDouz,
	DestinationCarthage,
}

// Destinations returns the fixed destination list in display order
func Destinations() []Destination {
	out := make([]Destination, len(destinations))
	copy(out, destinations)
	return out
}

// DestinationNames returns the destination list as plain strings
func DestinationNames() []string {
	out := make([]string, len(destinations))
	for i, d := range destinations {
		out[i] = string(d)
	}
	return out
}

// IsValid reports whether d is one of the fixed destinations
func (d Destination) IsValid() bool {
	for _, known := range destinations {
		if d == known {
			return true
		}
	}
	return false
}

// SuggestedStyles are the travel styles offered on the intro screen.
// Style is free text; these are hints only.
var SuggestedStyles = []string{
	"Comfortable & guided",
	"Fast & efficient",
	"Planned & researched",
	"Luxury & curated",
}
