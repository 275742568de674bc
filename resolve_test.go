package treelight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.gopad.dev/treelight/themes"
)

func testTheme() *themes.Theme {
	theme := themes.New("test", themes.Light, "1", map[string]themes.Style{
		"normal":                {Fg: "#1f2328", Bg: "#ffffff"},
		"comment":               {Fg: "#57606a"},
		"comment.documentation": {Fg: "#0550ae"},
		"comment.lua":           {Fg: "#6e7781", Italic: true},
		"keyword":               {Fg: "#cf222e"},
		"string":                {Fg: "#0a3069"},
		"markup":                {Bold: true},
	})
	return &theme
}

func TestStyleForScope_Exact(t *testing.T) {
	style, ok := StyleForScope(testTheme(), "keyword", "")
	require.True(t, ok)
	assert.Equal(t, "#cf222e", style.Fg)
}

func TestStyleForScope_LanguageQualifiedWins(t *testing.T) {
	// "comment" in lua code prefers the "comment.lua" entry over the plain
	// "comment" one.
	style, ok := StyleForScope(testTheme(), "comment", "lua")
	require.True(t, ok)
	assert.Equal(t, "#6e7781", style.Fg)
	assert.True(t, style.Italic)

	// Other languages fall through to the exact entry.
	style, ok = StyleForScope(testTheme(), "comment", "go")
	require.True(t, ok)
	assert.Equal(t, "#57606a", style.Fg)
}

func TestStyleForScope_FullDottedBeforePrefix(t *testing.T) {
	style, ok := StyleForScope(testTheme(), "comment.documentation", "go")
	require.True(t, ok)
	assert.Equal(t, "#0550ae", style.Fg)
}

func TestStyleForScope_PrefixFallback(t *testing.T) {
	// "keyword.return.special" has no entry of its own; the nearest dotted
	// prefix with one is "keyword".
	style, ok := StyleForScope(testTheme(), "keyword.return.special", "go")
	require.True(t, ok)
	assert.Equal(t, "#cf222e", style.Fg)

	style, ok = StyleForScope(testTheme(), "markup.heading.1", "")
	require.True(t, ok)
	assert.True(t, style.Bold)
}

func TestStyleForScope_NoMatch(t *testing.T) {
	_, ok := StyleForScope(testTheme(), "punctuation.bracket", "go")
	assert.False(t, ok)
}

func TestResolveStack_InnerAddsAttributes(t *testing.T) {
	theme := themes.New("t", themes.Dark, "1", map[string]themes.Style{
		"function": {Fg: "#8250df"},
		"emphasis": {Italic: true},
	})

	style := ResolveStack(&theme, ScopeStack{
		{Scope: "function"},
		{Scope: "emphasis"},
	})

	assert.Equal(t, "#8250df", style.Fg)
	assert.True(t, style.Italic)
}

func TestResolveStack_InnermostColorWins(t *testing.T) {
	theme := themes.New("t", themes.Dark, "1", map[string]themes.Style{
		"string":        {Fg: "#0a3069"},
		"string.escape": {Fg: "#cf222e"},
	})

	style := ResolveStack(&theme, ScopeStack{
		{Scope: "string"},
		{Scope: "string.escape"},
	})
	assert.Equal(t, "#cf222e", style.Fg)
}

func TestResolveStack_Empty(t *testing.T) {
	style := ResolveStack(testTheme(), nil)
	assert.True(t, style.IsZero())
}

func TestScopeStack_Innermost(t *testing.T) {
	assert.Equal(t, ScopeEntry{}, ScopeStack{}.Innermost())

	stack := ScopeStack{{Scope: "outer"}, {Scope: "inner", Language: "sql"}}
	assert.Equal(t, ScopeEntry{Scope: "inner", Language: "sql"}, stack.Innermost())
}
