package treelight

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"go.gopad.dev/treelight/themes"
)

// Backend selects one of the four renderers. The set is closed: every
// backend has its own required configuration, validated by [New].
type Backend int

const (
	// BackendHTMLInline renders HTML with resolved styles inlined on each
	// token span.
	BackendHTMLInline Backend = iota + 1
	// BackendHTMLLinked renders HTML with class names; the matching rules
	// come from [Stylesheet].
	BackendHTMLLinked
	// BackendHTMLDual renders HTML carrying custom properties for a light
	// and a dark theme, switched at display time by the embedding page.
	BackendHTMLDual
	// BackendTerminal renders ANSI escape sequences.
	BackendTerminal
)

// String returns the backend name as accepted by the CLI.
func (b Backend) String() string {
	switch b {
	case BackendHTMLInline:
		return "html-inline"
	case BackendHTMLLinked:
		return "html-linked"
	case BackendHTMLDual:
		return "html-dual"
	case BackendTerminal:
		return "terminal"
	default:
		return fmt.Sprintf("Backend(%d)", int(b))
	}
}

// ParseBackend maps a backend name to its value.
func ParseBackend(name string) (Backend, error) {
	switch name {
	case "html-inline":
		return BackendHTMLInline, nil
	case "html-linked":
		return BackendHTMLLinked, nil
	case "html-dual":
		return BackendHTMLDual, nil
	case "terminal":
		return BackendTerminal, nil
	default:
		return 0, fmt.Errorf("unknown formatter backend %q", name)
	}
}

// HTMLElement is a caller-supplied wrapper emitted verbatim around the whole
// output, e.g. a figure element. The tags are opaque to the renderer.
type HTMLElement struct {
	OpenTag  string
	CloseTag string
}

// HighlightLines marks a set of 1-based lines for extra styling. The
// overlay is applied by the HTML renderers, never by the normalizer.
type HighlightLines struct {
	// Lines holds the 1-based line numbers to mark.
	Lines []int
	// Style is a literal CSS declaration list for marked lines. When empty
	// the inline renderer falls back to the theme's "highlighted" scope.
	Style string
	// Class is an extra class added to marked lines. Defaults to
	// "highlighted".
	Class string
}

func (h *HighlightLines) contains(line int) bool {
	if h == nil {
		return false
	}
	for _, l := range h.Lines {
		if l == line {
			return true
		}
	}
	return false
}

// Config is the plain configuration value for a formatter. Construct it,
// then run [New] to validate it; nothing is applied before that.
type Config struct {
	// Backend selects the renderer. Required.
	Backend Backend
	// Language is the name used to qualify scope lookups and label HTML
	// output, e.g. "go". Required.
	Language string

	// Theme styles the inline, linked and terminal backends.
	Theme *themes.Theme
	// LightTheme and DarkTheme feed the dual backend.
	LightTheme *themes.Theme
	DarkTheme  *themes.Theme
	// DefaultAppearance selects which side of a dual pair is additionally
	// rendered as plain inline declarations. Empty means variables only.
	DefaultAppearance themes.Appearance

	// ClassPrefix is prepended to generated class names in linked output.
	ClassPrefix string
	// PreClass is appended to the pre element's class list.
	PreClass string
	// IncludeScopes adds a data-highlight attribute naming the scope on
	// each token span.
	IncludeScopes bool
	// HighlightLines marks lines for extra styling.
	HighlightLines *HighlightLines
	// Header wraps the whole output when set.
	Header *HTMLElement
	// ColorProfile degrades terminal colors; the zero value is truecolor.
	ColorProfile termenv.Profile
}

// ConfigError reports an invalid formatter configuration. It is returned
// before any highlighting takes place; a formatter is never partially
// configured.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "formatter config: " + e.Field + ": " + e.Reason
}

// Formatter is a validated, immutable rendering configuration. A single
// Formatter may be shared by concurrent highlight operations; no call
// mutates it.
type Formatter struct {
	cfg Config
}

// New validates a configuration and returns a ready formatter, or a
// *ConfigError describing the first problem found.
func New(cfg Config) (*Formatter, error) {
	switch cfg.Backend {
	case BackendHTMLInline, BackendHTMLLinked, BackendHTMLDual, BackendTerminal:
	case 0:
		return nil, &ConfigError{Field: "backend", Reason: "required"}
	default:
		return nil, &ConfigError{Field: "backend", Reason: fmt.Sprintf("unknown backend %d", int(cfg.Backend))}
	}

	if cfg.Language == "" {
		return nil, &ConfigError{Field: "language", Reason: "required"}
	}

	switch cfg.Backend {
	case BackendHTMLDual:
		switch cfg.DefaultAppearance {
		case "", themes.Light, themes.Dark:
		default:
			return nil, &ConfigError{Field: "default_appearance", Reason: fmt.Sprintf("unknown appearance %q", string(cfg.DefaultAppearance))}
		}
		if cfg.LightTheme == nil && cfg.DarkTheme == nil {
			return nil, &ConfigError{Field: "themes", Reason: "dual backend requires a light and a dark theme"}
		}
		if cfg.LightTheme == nil || cfg.DarkTheme == nil {
			// A single theme is allowed only when the default explicitly
			// names the side that is present.
			present := themes.Light
			if cfg.LightTheme == nil {
				present = themes.Dark
			}
			if cfg.DefaultAppearance != present {
				return nil, &ConfigError{Field: "themes", Reason: "dual backend requires both themes or an explicit default naming the present one"}
			}
		}
		if cfg.DefaultAppearance == themes.Light && cfg.LightTheme == nil {
			return nil, &ConfigError{Field: "default_appearance", Reason: "light selected but no light theme configured"}
		}
		if cfg.DefaultAppearance == themes.Dark && cfg.DarkTheme == nil {
			return nil, &ConfigError{Field: "default_appearance", Reason: "dark selected but no dark theme configured"}
		}
	default:
		if cfg.Theme == nil {
			return nil, &ConfigError{Field: "theme", Reason: "required"}
		}
	}

	return &Formatter{cfg: cfg}, nil
}

// Config returns a copy of the validated configuration.
func (f *Formatter) Config() Config {
	return f.cfg
}

// primaryTheme is the theme used for single-theme style resolution. For the
// dual backend it is the default side, falling back to the light theme.
func (f *Formatter) primaryTheme() *themes.Theme {
	if f.cfg.Backend != BackendHTMLDual {
		return f.cfg.Theme
	}
	switch f.cfg.DefaultAppearance {
	case themes.Dark:
		return f.cfg.DarkTheme
	case themes.Light:
		return f.cfg.LightTheme
	}
	if f.cfg.LightTheme != nil {
		return f.cfg.LightTheme
	}
	return f.cfg.DarkTheme
}

// dualPair returns the light and dark themes, substituting the present side
// for a missing one.
func (f *Formatter) dualPair() (light, dark *themes.Theme) {
	light, dark = f.cfg.LightTheme, f.cfg.DarkTheme
	if light == nil {
		light = dark
	}
	if dark == nil {
		dark = light
	}
	return light, dark
}

// Format renders the source into w in buffered mode. The capture list comes
// from the external query engine; regions describe injected sub-ranges.
func (f *Formatter) Format(w io.Writer, source []byte, captures []Capture, regions []Region) error {
	switch f.cfg.Backend {
	case BackendTerminal:
		return f.formatANSI(w, source, captures, regions)
	default:
		return f.formatHTML(w, source, captures, regions)
	}
}

// Highlight renders the source and returns the complete output.
func (f *Formatter) Highlight(source []byte, captures []Capture, regions []Region) (string, error) {
	var sb strings.Builder
	if err := f.Format(&sb, source, captures, regions); err != nil {
		return "", err
	}
	return sb.String(), nil
}
