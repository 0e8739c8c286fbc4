package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/generative-ai-go/genai"
)

// ErrMalformed is returned when a descriptor tree breaks its shape invariants.
var ErrMalformed = errors.New("malformed descriptor")

// Kind names the JSON type a descriptor node describes.
type Kind string

const (
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindObject  Kind = "object"
	KindArray   Kind = "array"
)

// Descriptor describes the expected shape of a JSON result. It serializes as
// JSON-Schema text so the same value can be quoted inside a prompt.
type Descriptor struct {
	Kind        Kind                   `json:"type"`
	Title       string                 `json:"title,omitempty"`
	Description string                 `json:"description,omitempty"`
	Enum        []string               `json:"enum,omitempty"`
	Properties  map[string]*Descriptor `json:"properties,omitempty"`
	Items       *Descriptor            `json:"items,omitempty"`
	Required    []string               `json:"required,omitempty"`

	// Pattern, Minimum and Maximum only reach the model through the prompt
	// text; the SDK schema has no slot for them.
	Pattern string   `json:"pattern,omitempty"`
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`
}

// JSON renders the descriptor as indented JSON-Schema text.
func (d *Descriptor) JSON() string {
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

// Validate checks the descriptor tree and reports the first broken node.
func Validate(d *Descriptor) error {
	return validate(d, "$")
}

func validate(d *Descriptor, path string) error {
	if d == nil {
		return fmt.Errorf("%w: %s: nil node", ErrMalformed, path)
	}
	if len(d.Enum) > 0 && d.Kind != KindString {
		return fmt.Errorf("%w: %s: enum on %s kind", ErrMalformed, path, d.Kind)
	}

	switch d.Kind {
	case KindString, KindInteger, KindNumber, KindBoolean:
		if d.Properties != nil || d.Items != nil || len(d.Required) > 0 {
			return fmt.Errorf("%w: %s: %s kind cannot nest", ErrMalformed, path, d.Kind)
		}
		return nil
	case KindArray:
		if d.Items == nil {
			return fmt.Errorf("%w: %s: array without items", ErrMalformed, path)
		}
		if d.Properties != nil || len(d.Required) > 0 {
			return fmt.Errorf("%w: %s: array with properties", ErrMalformed, path)
		}
		return validate(d.Items, path+"[]")
	case KindObject:
		if len(d.Properties) == 0 {
			return fmt.Errorf("%w: %s: object without properties", ErrMalformed, path)
		}
		if d.Items != nil {
			return fmt.Errorf("%w: %s: object with items", ErrMalformed, path)
		}
		for _, name := range d.Required {
			if _, ok := d.Properties[name]; !ok {
				return fmt.Errorf("%w: %s: required field %q not in properties", ErrMalformed, path, name)
			}
		}
		for _, name := range sortedKeys(d.Properties) {
			if err := validate(d.Properties[name], path+"."+name); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %s: unknown kind %q", ErrMalformed, path, d.Kind)
	}
}

// Translate converts a descriptor tree into the Gemini response schema.
func Translate(d *Descriptor) (*genai.Schema, error) {
	if err := Validate(d); err != nil {
		return nil, err
	}
	return translate(d), nil
}

// MustTranslate is Translate for static literals known to be well formed.
func MustTranslate(d *Descriptor) *genai.Schema {
	s, err := Translate(d)
	if err != nil {
		panic(err)
	}
	return s
}

func translate(d *Descriptor) *genai.Schema {
	out := &genai.Schema{
		Description: d.Description,
	}

	switch d.Kind {
	case KindString:
		out.Type = genai.TypeString
		if len(d.Enum) > 0 {
			out.Enum = append([]string(nil), d.Enum...)
		}
	case KindInteger:
		out.Type = genai.TypeInteger
	case KindNumber:
		out.Type = genai.TypeNumber
	case KindBoolean:
		out.Type = genai.TypeBoolean
	case KindArray:
		out.Type = genai.TypeArray
		out.Items = translate(d.Items)
	case KindObject:
		out.Type = genai.TypeObject
		out.Properties = make(map[string]*genai.Schema, len(d.Properties))
		for name, prop := range d.Properties {
			out.Properties[name] = translate(prop)
		}
		if len(d.Required) > 0 {
			out.Required = append([]string(nil), d.Required...)
		}
	}
	return out
}

// KindOf maps a Gemini schema type back to a descriptor kind.
func KindOf(t genai.Type) (Kind, bool) {
	switch t {
	case genai.TypeString:
		return KindString, true
	case genai.TypeInteger:
		return KindInteger, true
	case genai.TypeNumber:
		return KindNumber, true
	case genai.TypeBoolean:
		return KindBoolean, true
	case genai.TypeObject:
		return KindObject, true
	case genai.TypeArray:
		return KindArray, true
	default:
		return "", false
	}
}

func sortedKeys(m map[string]*Descriptor) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
