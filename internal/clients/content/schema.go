package content

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Type is a JSON value type understood by Schema
type Type string

// Schema types
const (
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
)

// Schema declares the expected shape of a reply. Content
// providers translate it to their own schema dialect and Client validates
// decoded replies against it.
type Schema struct {
	Type        Type
	Description string

	// Object
	Properties map[string]*Schema
	Required   []string

	// Array
	Items    *Schema
	MinItems int

	// String
	Enum []string

	// Integer and Number
	Minimum *float64
	Maximum *float64
}

// PropertyNames returns the object's property names in sorted order
func (s *Schema) PropertyNames() []string {
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks a value decoded with json.Decoder.UseNumber and returns
// every violation as "path: message". An empty result means v conforms.
func (s *Schema) Validate(v any) []string {
	var violations []string
	s.validate("$", v, &violations)
	return violations
}

func (s *Schema) validate(path string, v any, out *[]string) {
	fail := func(format string, args ...any) {
		*out = append(*out, fmt.Sprintf("%s: %s", path, fmt.Sprintf(format, args...)))
	}

	switch s.Type {
	case TypeObject:
		obj, ok := v.(map[string]any)
		if !ok {
			fail("expected object")
			return
		}
		for _, name := range s.Required {
			if _, present := obj[name]; !present {
				*out = append(*out, fmt.Sprintf("%s.%s: is required", path, name))
			}
		}
		for _, name := range s.PropertyNames() {
			if child, present := obj[name]; present {
				s.Properties[name].validate(path+"."+name, child, out)
			}
		}

	case TypeArray:
		arr, ok := v.([]any)
		if !ok {
			fail("expected array")
			return
		}
		if len(arr) < s.MinItems {
			fail("must have at least %d items", s.MinItems)
		}
		if s.Items != nil {
			for i, item := range arr {
				s.Items.validate(fmt.Sprintf("%s[%d]", path, i), item, out)
			}
		}

	case TypeString:
		text, ok := v.(string)
		if !ok {
			fail("expected string")
			return
		}
		if len(s.Enum) > 0 && !contains(s.Enum, text) {
			fail("must be one of: %s", strings.Join(s.Enum, ", "))
		}

	case TypeInteger, TypeNumber:
		num, ok := v.(json.Number)
		if !ok {
			fail("expected %s", s.Type)
			return
		}
		f, err := num.Float64()
		if err != nil {
			fail("expected %s", s.Type)
			return
		}
		if s.Type == TypeInteger {
			if _, err := num.Int64(); err != nil {
				fail("expected integer")
				return
			}
		}
		if s.Minimum != nil && f < *s.Minimum {
			fail("must be at least %v", *s.Minimum)
		}
		if s.Maximum != nil && f > *s.Maximum {
			fail("must be at most %v", *s.Maximum)
		}
	}
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func bound(f float64) *float64 {
	return &f
}

func str(description string) *Schema {
	return &Schema{Type: TypeString, Description: description}
}

func integer(minValue, maxValue *float64) *Schema {
	return &Schema{Type: TypeInteger, Minimum: minValue, Maximum: maxValue}
}

func object(required bool, props map[string]*Schema) *Schema {
	s := &Schema{Type: TypeObject, Properties: props}
	if required {
		for name := range props {
			s.Required = append(s.Required, name)
		}
		sort.Strings(s.Required)
	}
	return s
}

// PersonaSchema is the declared shape of a persona reply
var PersonaSchema = object(true, map[string]*Schema{
	"name":      str(""),
	"age":       integer(bound(0), nil),
	"origin":    str(""),
	"avatar_id": str("id of the chosen avatar from the manifest"),
	"stats": object(true, map[string]*Schema{
		"pace":    integer(bound(1), bound(10)),
		"culture": integer(bound(1), bound(10)),
		"social":  integer(bound(1), bound(10)),
	}),
	"movement": str(""),
	"notices":  str(""),
	"never":    str(""),
	"quote":    str(""),
	"missions": {
		Type:     TypeArray,
		MinItems: 1,
		Items: object(true, map[string]*Schema{
			"text":       str(""),
			"xp":         integer(bound(1), nil),
			"difficulty": {Type: TypeString, Enum: []string{"EASY", "MEDIUM", "HARD"}},
		}),
	},
})

// StampSchema is the declared shape of a stamp reply
var StampSchema = object(true, map[string]*Schema{
	"moment":        str("1-2 poetic sentences, as if the alter ego is watching the player"),
	"confrontation": str("what the alter ego says directly to the player, starting with the player's name"),
	"seal_emoji":    str("a single emoji sealing the stamp"),
})

// GuideSchema is the declared shape of a guide reply
var GuideSchema = object(true, map[string]*Schema{
	"name":          str(""),
	"avatar_id":     str("id of the chosen avatar from the manifest"),
	"age":           integer(bound(0), nil),
	"origin":        str(""),
	"languages":     integer(bound(1), nil),
	"years_in_city": integer(bound(0), nil),
	"territory":     str(""),
	"offer":         str(""),
	"specialties":   {Type: TypeArray, Items: str("")},
})

// SchemaFor returns the declared schema of kind
func SchemaFor(kind Kind) *Schema {
	switch kind {
	case KindPersona:
		return PersonaSchema
	case KindStamp:
		return StampSchema
	case KindGuide:
		return GuideSchema
	}
	return nil
}
