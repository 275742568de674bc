package treelight

import (
	"strings"

	"go.gopad.dev/treelight/themes"
)

// ScopeEntry is one active scope at a point of the source, together with the
// language it was captured in.
type ScopeEntry struct {
	Scope    string
	Language string
}

// ScopeStack is the ordered set of scopes active at a point, outermost
// first. Stacks produced by [Events] are strictly nested.
type ScopeStack []ScopeEntry

// Innermost returns the innermost entry, or a zero entry for an empty stack.
func (s ScopeStack) Innermost() ScopeEntry {
	if len(s) == 0 {
		return ScopeEntry{}
	}
	return s[len(s)-1]
}

// StyleForScope returns the most specific style a theme defines for one
// scope. The lookup order follows the treesitter highlight-group
// convention:
//
//  1. the language-qualified name, e.g. "comment.lua"
//  2. the full dotted name, e.g. "comment.documentation"
//  3. progressively shorter dotted prefixes, down to the root segment
//
// Only exact theme entries match at each step; there is no fuzzing.
func StyleForScope(theme *themes.Theme, scope, language string) (themes.Style, bool) {
	if language != "" {
		if style, ok := theme.StyleFor(scope + "." + language); ok {
			return style, ok
		}
	}

	candidate := scope
	for {
		if style, ok := theme.StyleFor(candidate); ok {
			return style, ok
		}
		dot := strings.LastIndexByte(candidate, '.')
		if dot < 0 {
			return themes.Style{}, false
		}
		candidate = candidate[:dot]
	}
}

// ResolveStack folds a scope stack into the single effective style for that
// point. Scopes are applied outermost to innermost and each one overrides
// only the fields its own best theme match defines, so an outer scope can
// set a foreground while an inner one merely adds bold. Fields no scope
// defines stay unset.
func ResolveStack(theme *themes.Theme, stack ScopeStack) themes.Style {
	var resolved themes.Style
	for _, entry := range stack {
		if style, ok := StyleForScope(theme, entry.Scope, entry.Language); ok {
			resolved = resolved.Merge(style)
		}
	}
	return resolved
}
