package manifest

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/jupyterlite/pkmext/pkg/pkmerrors"
)

// Author is a package.json "person". npm accepts either an object or the
// shorthand string "Name <email> (url)"; both decode into Author.
type Author struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	URL   string `json:"url,omitempty"`
}

// UnmarshalJSON implements [json.Unmarshaler].
func (a *Author) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = parseAuthor(s)

		return nil
	}

	type plain Author

	var p plain

	err := json.Unmarshal(data, &p)
	if err != nil {
		return fmt.Errorf("%w: author: %w", pkmerrors.ErrInvalidFormat, err)
	}

	*a = Author(p)

	return nil
}

// IsZero reports whether no author information is present.
func (a Author) IsZero() bool {
	return a == Author{}
}

// String formats the author using the npm shorthand.
func (a Author) String() string {
	parts := []string{}
	if a.Name != "" {
		parts = append(parts, a.Name)
	}

	if a.Email != "" {
		parts = append(parts, "<"+a.Email+">")
	}

	if a.URL != "" {
		parts = append(parts, "("+a.URL+")")
	}

	return strings.Join(parts, " ")
}

// JSONSchema implements the [jsonschema.Reflector] customization hook.
func (Author) JSONSchema() *jsonschema.Schema {
	props := jsonschema.NewProperties()
	props.Set("name", &jsonschema.Schema{Type: "string"})
	props.Set("email", &jsonschema.Schema{Type: "string"})
	props.Set("url", &jsonschema.Schema{Type: "string"})

	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "string"},
			{Type: "object", Properties: props},
		},
	}
}

func parseAuthor(s string) Author {
	var a Author

	rest := s
	if i := strings.Index(rest, "("); i >= 0 {
		if j := strings.Index(rest[i:], ")"); j > 0 {
			a.URL = strings.TrimSpace(rest[i+1 : i+j])
			rest = rest[:i] + rest[i+j+1:]
		}
	}

	if i := strings.Index(rest, "<"); i >= 0 {
		if j := strings.Index(rest[i:], ">"); j > 0 {
			a.Email = strings.TrimSpace(rest[i+1 : i+j])
			rest = rest[:i] + rest[i+j+1:]
		}
	}

	a.Name = strings.TrimSpace(rest)

	return a
}
