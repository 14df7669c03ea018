package content

import "github.com/KirkDiggler/alter-ego/internal/entities"

// Kind is one of the three content shapes the collaborator produces
type Kind string

// Content kinds
const (
	KindPersona Kind = "PERSONA"
	KindStamp   Kind = "STAMP"
	KindGuide   Kind = "GUIDE"
)

// String returns the kind name
func (k Kind) String() string {
	return string(k)
}

// IsValid reports whether k is a known kind
func (k Kind) IsValid() bool {
	switch k {
	case KindPersona, KindStamp, KindGuide:
		return true
	}
	return false
}

// Request is one logical call to the collaborator
type Request struct {
	Kind   Kind
	Prompt string

	// Schema is always set; it is what Client validates the reply against.
	// Providers only forward it when Grounded is false.
	Schema *Schema

	// Grounded asks the provider to enable its search capability. Grounded
	// replies are free-form text and may wrap the JSON in prose.
	Grounded bool
}

// Record is a validated reply. Exactly one of the payload fields is set,
// matching Kind.
type Record struct {
	Kind    Kind
	Persona *entities.Persona
	Stamp   *entities.Stamp
	Guide   *entities.Guide
}
