package themes

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrNotFound is returned when a theme lookup by name fails.
var ErrNotFound = errors.New("theme not found")

// ErrInvalid is returned when theme data is structurally malformed.
var ErrInvalid = errors.New("invalid theme")

type styleJSON struct {
	Fg            string `json:"fg,omitempty"`
	Bg            string `json:"bg,omitempty"`
	Bold          bool   `json:"bold,omitempty"`
	Italic        bool   `json:"italic,omitempty"`
	Underline     any    `json:"underline,omitempty"`
	Strikethrough bool   `json:"strikethrough,omitempty"`
}

// UnmarshalJSON decodes the wire form of a style. The underline field is
// either a bool (solid underline) or one of "wavy", "double", "dotted",
// "dashed".
func (s *Style) UnmarshalJSON(data []byte) error {
	var raw styleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	underline := UnderlineNone
	switch v := raw.Underline.(type) {
	case nil:
	case bool:
		if v {
			underline = UnderlineSolid
		}
	case string:
		switch v {
		case "wavy":
			underline = UnderlineWavy
		case "double":
			underline = UnderlineDouble
		case "dotted":
			underline = UnderlineDotted
		case "dashed":
			underline = UnderlineDashed
		default:
			return fmt.Errorf("%w: unknown underline style %q", ErrInvalid, v)
		}
	default:
		return fmt.Errorf("%w: underline must be a bool or a string", ErrInvalid)
	}

	*s = Style{
		Fg:     raw.Fg,
		Bg:     raw.Bg,
		Bold:   raw.Bold,
		Italic: raw.Italic,
		TextDecoration: TextDecoration{
			Underline:     underline,
			Strikethrough: raw.Strikethrough,
		},
	}
	return nil
}

// MarshalJSON encodes the style back into its wire form.
func (s Style) MarshalJSON() ([]byte, error) {
	raw := styleJSON{
		Fg:            s.Fg,
		Bg:            s.Bg,
		Bold:          s.Bold,
		Italic:        s.Italic,
		Strikethrough: s.TextDecoration.Strikethrough,
	}
	switch s.TextDecoration.Underline {
	case UnderlineNone:
	case UnderlineSolid:
		raw.Underline = true
	case UnderlineWavy:
		raw.Underline = "wavy"
	case UnderlineDouble:
		raw.Underline = "double"
	case UnderlineDotted:
		raw.Underline = "dotted"
	case UnderlineDashed:
		raw.Underline = "dashed"
	}
	return json.Marshal(raw)
}

type themeJSON struct {
	Name       string           `json:"name"`
	Appearance Appearance       `json:"appearance"`
	Revision   string           `json:"revision"`
	Highlights map[string]Style `json:"highlights"`
}

// FromJSON parses a theme definition from JSON and validates its required
// fields. A theme with zero highlights is valid and renders plain text.
func FromJSON(data []byte) (Theme, error) {
	var raw themeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return Theme{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if raw.Name == "" {
		return Theme{}, fmt.Errorf("%w: name cannot be empty", ErrInvalid)
	}
	if !raw.Appearance.Valid() {
		return Theme{}, fmt.Errorf("%w: unknown appearance %q", ErrInvalid, string(raw.Appearance))
	}
	if raw.Revision == "" {
		return Theme{}, fmt.Errorf("%w: revision cannot be empty", ErrInvalid)
	}

	highlights := raw.Highlights
	if highlights == nil {
		highlights = map[string]Style{}
	}

	return Theme{
		Name:       raw.Name,
		Appearance: raw.Appearance,
		Revision:   raw.Revision,
		Highlights: highlights,
	}, nil
}

// FromFile loads a theme definition from a JSON file on disk.
func FromFile(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("reading theme file: %w", err)
	}

	theme, err := FromJSON(data)
	if err != nil {
		return Theme{}, fmt.Errorf("theme file %s: %w", path, err)
	}
	return theme, nil
}

// MarshalJSON encodes the theme into its wire form.
func (t Theme) MarshalJSON() ([]byte, error) {
	return json.Marshal(themeJSON{
		Name:       t.Name,
		Appearance: t.Appearance,
		Revision:   t.Revision,
		Highlights: t.Highlights,
	})
}
