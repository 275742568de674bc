package treelight

import (
	"fmt"
	"sort"
	"strings"

	"go.gopad.dev/treelight/themes"
)

// Stylesheet generates the companion CSS for the linked backend: one rule
// per scope the theme defines, named exactly as the spans emitted by
// [BackendHTMLLinked]. The theme's default colors go on the pre element.
func Stylesheet(theme *themes.Theme, classPrefix string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "/* %s (%s, revision %s) */\n", theme.Name, theme.Appearance, theme.Revision)

	if style := preStyle(theme); style != "" {
		fmt.Fprintf(&sb, "pre.%s { %s }\n", htmlPreClass, style)
	}

	scopes := make([]string, 0, len(theme.Highlights))
	for scope := range theme.Highlights {
		scopes = append(scopes, scope)
	}
	sort.Strings(scopes)

	for _, scope := range scopes {
		style := theme.Highlights[scope]
		if style.IsZero() {
			continue
		}
		fmt.Fprintf(&sb, ".%s { %s }\n", classForScope(scope, classPrefix), style.CSS(" "))
	}

	return sb.String()
}

// varSuffixes are the attribute suffixes every dual-theme token carries, one
// custom property per suffix per theme. Every suffix is always present so
// switching themes never leaks an attribute from the other side.
var varSuffixes = [...]string{"", "bg", "font-style", "font-weight", "text-decoration"}

// varValue renders the custom-property value for one attribute of a resolved
// style. Unset attributes become explicit CSS defaults rather than being
// omitted.
func varValue(style themes.Style, suffix string) string {
	switch suffix {
	case "":
		if style.Fg != "" {
			return style.Fg
		}
		return "unset"
	case "bg":
		if style.Bg != "" {
			return style.Bg
		}
		return "unset"
	case "font-style":
		if style.Italic {
			return "italic"
		}
		return "normal"
	case "font-weight":
		if style.Bold {
			return "bold"
		}
		return "normal"
	case "text-decoration":
		if decoration := style.TextDecoration.CSS(); decoration != "" {
			return decoration
		}
		return "none"
	}
	return "unset"
}

// themeVars renders the full custom-property set of one theme for a resolved
// style.
func themeVars(theme *themes.Theme, style themes.Style) []string {
	decls := make([]string, 0, len(varSuffixes))
	for _, suffix := range varSuffixes {
		decls = append(decls, theme.CSSVar(suffix)+": "+varValue(style, suffix)+";")
	}
	return decls
}

// dualTokenStyle builds the inline style of one dual-backend token span: the
// default side's plain declarations, when a default is configured, followed
// by the complete variable set of both themes.
func (f *Formatter) dualTokenStyle(stack ScopeStack) string {
	light, dark := f.dualPair()

	lightStyle := ResolveStack(light, stack)
	darkStyle := ResolveStack(dark, stack)
	if lightStyle.IsZero() && darkStyle.IsZero() {
		return ""
	}

	var decls []string
	if def := f.primaryDualStyle(lightStyle, darkStyle); def != "" {
		decls = append(decls, def)
	}
	decls = append(decls, themeVars(light, lightStyle)...)
	if dark != light {
		decls = append(decls, themeVars(dark, darkStyle)...)
	}
	return strings.Join(decls, " ")
}

func (f *Formatter) primaryDualStyle(lightStyle, darkStyle themes.Style) string {
	switch f.cfg.DefaultAppearance {
	case themes.Light:
		return lightStyle.CSS(" ")
	case themes.Dark:
		return darkStyle.CSS(" ")
	}
	return ""
}

// dualPreStyle is the pre element's style for the dual backend: the default
// side's colors plus the theme-level foreground and background variables of
// both sides.
func (f *Formatter) dualPreStyle() string {
	light, dark := f.dualPair()

	var decls []string
	if primary := f.primaryTheme(); primary != nil && f.cfg.DefaultAppearance != "" {
		if style := preStyle(primary); style != "" {
			decls = append(decls, style)
		}
	}

	decls = append(decls, preVars(light)...)
	if dark != light {
		decls = append(decls, preVars(dark)...)
	}
	return strings.Join(decls, " ")
}

func preVars(theme *themes.Theme) []string {
	fg, bg := theme.Fg(), theme.Bg()
	if fg == "" {
		fg = "unset"
	}
	if bg == "" {
		bg = "unset"
	}
	return []string{
		theme.CSSVar("") + ": " + fg + ";",
		theme.CSSVar("bg") + ": " + bg + ";",
	}
}

// ScopeVariables enumerates every scope any of the given themes styles and
// emits one rule per scope carrying the full custom-property set of each
// theme. Scopes a theme lacks fall back to explicit defaults, so switching
// themes never inherits a stale attribute. Class naming matches
// [BackendHTMLLinked] output.
func ScopeVariables(classPrefix string, all ...*themes.Theme) string {
	union := make(map[string]struct{})
	for _, theme := range all {
		for scope := range theme.Highlights {
			union[scope] = struct{}{}
		}
	}
	scopes := make([]string, 0, len(union))
	for scope := range union {
		scopes = append(scopes, scope)
	}
	sort.Strings(scopes)

	var sb strings.Builder
	for _, scope := range scopes {
		var decls []string
		for _, theme := range all {
			style := theme.Highlights[scope]
			decls = append(decls, themeVars(theme, style)...)
		}
		fmt.Fprintf(&sb, ".%s { %s }\n", classForScope(scope, classPrefix), strings.Join(decls, " "))
	}
	return sb.String()
}

// DualStylesheet generates the switching CSS for dual-theme output. The
// light theme's variables apply by default; the dark theme's take over under
// a prefers-color-scheme media query and under an explicit .dark ancestor
// class, so pages can override the OS preference.
func DualStylesheet(light, dark *themes.Theme) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "/* %s / %s */\n", light.Name, dark.Name)
	sb.WriteString(dualRules(light, ""))
	sb.WriteString("@media (prefers-color-scheme: dark) {\n")
	sb.WriteString(indent(dualRules(dark, "")))
	sb.WriteString("}\n")
	sb.WriteString(dualRules(dark, ".dark "))

	return sb.String()
}

func dualRules(theme *themes.Theme, ancestor string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%spre.%s-dual {\n", ancestor, htmlPreClass)
	fmt.Fprintf(&sb, "  color: var(%s);\n", theme.CSSVar(""))
	fmt.Fprintf(&sb, "  background-color: var(%s);\n", theme.CSSVar("bg"))
	sb.WriteString("}\n")

	fmt.Fprintf(&sb, "%spre.%s-dual span {\n", ancestor, htmlPreClass)
	fmt.Fprintf(&sb, "  color: var(%s);\n", theme.CSSVar(""))
	fmt.Fprintf(&sb, "  background-color: var(%s);\n", theme.CSSVar("bg"))
	fmt.Fprintf(&sb, "  font-style: var(%s);\n", theme.CSSVar("font-style"))
	fmt.Fprintf(&sb, "  font-weight: var(%s);\n", theme.CSSVar("font-weight"))
	fmt.Fprintf(&sb, "  text-decoration: var(%s);\n", theme.CSSVar("text-decoration"))
	sb.WriteString("}\n")

	return sb.String()
}

func indent(block string) string {
	lines := strings.Split(strings.TrimRight(block, "\n"), "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n") + "\n"
}
