// Package themes holds the color theme model used by the formatters.
//
// A [Theme] maps highlight scope names (e.g. "keyword.return") to a [Style].
// Themes are plain values: once constructed they are never mutated, so a
// single Theme may be shared by any number of concurrent highlight calls.
package themes

import (
	"maps"
	"strings"
)

// Appearance is the polarity of a theme, light or dark.
type Appearance string

const (
	Light Appearance = "light"
	Dark  Appearance = "dark"
)

// Valid reports whether the appearance is one of the known values.
func (a Appearance) Valid() bool {
	return a == Light || a == Dark
}

// UnderlineStyle selects one of the underline variants supported by themes.
type UnderlineStyle int

const (
	UnderlineNone UnderlineStyle = iota
	UnderlineSolid
	UnderlineWavy
	UnderlineDouble
	UnderlineDotted
	UnderlineDashed
)

// CSS returns the text-decoration line style keyword(s) for the variant, or
// an empty string for UnderlineNone.
func (u UnderlineStyle) CSS() string {
	switch u {
	case UnderlineSolid:
		return "underline"
	case UnderlineWavy:
		return "underline wavy"
	case UnderlineDouble:
		return "underline double"
	case UnderlineDotted:
		return "underline dotted"
	case UnderlineDashed:
		return "underline dashed"
	default:
		return ""
	}
}

// TextDecoration combines an underline variant with strikethrough.
type TextDecoration struct {
	Underline     UnderlineStyle
	Strikethrough bool
}

// CSS returns the value for a text-decoration declaration, or "" when the
// decoration is empty.
func (d TextDecoration) CSS() string {
	underline := d.Underline.CSS()
	switch {
	case underline != "" && d.Strikethrough:
		return underline + " line-through"
	case underline != "":
		return underline
	case d.Strikethrough:
		return "line-through"
	default:
		return ""
	}
}

// Style describes how a single scope is rendered. The zero value is a valid
// style that renders no attributes. An empty Fg or Bg means the field is not
// set and does not override an enclosing scope's color.
type Style struct {
	Fg             string
	Bg             string
	Bold           bool
	Italic         bool
	TextDecoration TextDecoration
}

// IsZero reports whether the style sets no attributes at all.
func (s Style) IsZero() bool {
	return s == Style{}
}

// Merge overlays the defined fields of other onto s. Only fields other
// actually sets are taken, so an inner scope can add bold without discarding
// an outer foreground color.
func (s Style) Merge(other Style) Style {
	if other.Fg != "" {
		s.Fg = other.Fg
	}
	if other.Bg != "" {
		s.Bg = other.Bg
	}
	if other.Bold {
		s.Bold = true
	}
	if other.Italic {
		s.Italic = true
	}
	if other.TextDecoration.Underline != UnderlineNone {
		s.TextDecoration.Underline = other.TextDecoration.Underline
	}
	if other.TextDecoration.Strikethrough {
		s.TextDecoration.Strikethrough = true
	}
	return s
}

// CSS returns the inline declarations for the style joined by separator,
// e.g. "color: #ff79c6; font-weight: bold;".
func (s Style) CSS(separator string) string {
	var rules []string

	if s.Fg != "" {
		rules = append(rules, "color: "+s.Fg+";")
	}
	if s.Bg != "" {
		rules = append(rules, "background-color: "+s.Bg+";")
	}
	if s.Bold {
		rules = append(rules, "font-weight: bold;")
	}
	if s.Italic {
		rules = append(rules, "font-style: italic;")
	}
	if decoration := s.TextDecoration.CSS(); decoration != "" {
		rules = append(rules, "text-decoration: "+decoration+";")
	}

	return strings.Join(rules, separator)
}

// Theme is a named set of scope styles. Themes are value types; Equal
// compares the full value.
type Theme struct {
	Name       string
	Appearance Appearance
	Revision   string
	Highlights map[string]Style
}

// New constructs a theme from its parts.
func New(name string, appearance Appearance, revision string, highlights map[string]Style) Theme {
	return Theme{
		Name:       name,
		Appearance: appearance,
		Revision:   revision,
		Highlights: highlights,
	}
}

// StyleFor looks up the style for an exact scope name. It performs no prefix
// or language fallback; specificity resolution lives in the highlighter.
func (t *Theme) StyleFor(scope string) (Style, bool) {
	style, ok := t.Highlights[scope]
	return style, ok
}

// Equal reports whether two themes are equal by value.
func (t *Theme) Equal(other *Theme) bool {
	if other == nil {
		return false
	}
	return t.Name == other.Name &&
		t.Appearance == other.Appearance &&
		t.Revision == other.Revision &&
		maps.Equal(t.Highlights, other.Highlights)
}

// Fg returns the theme's default foreground color, taken from the "normal"
// scope, or "" when undefined.
func (t *Theme) Fg() string {
	return t.Highlights["normal"].Fg
}

// Bg returns the theme's default background color, taken from the "normal"
// scope, or "" when undefined.
func (t *Theme) Bg() string {
	return t.Highlights["normal"].Bg
}

// CSSVarPrefix is the fixed prefix shared by every generated custom
// property, in single- and dual-theme output alike.
const CSSVarPrefix = "--hl"

// CSSVar returns the custom property name for this theme with an optional
// attribute suffix, e.g. CSSVar("bg") -> "--hl-github-light-bg". The naming
// depends only on the theme name, so repeated builds never collide.
func (t *Theme) CSSVar(suffix string) string {
	name := CSSVarPrefix + "-" + SanitizeName(t.Name)
	if suffix != "" {
		name += "-" + suffix
	}
	return name
}

// SanitizeName maps a theme name to a CSS-identifier-safe form. Any rune
// outside [a-zA-Z0-9_-] becomes a dash.
func SanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, name)
}
