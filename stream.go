package treelight

import (
	"iter"

	"go.gopad.dev/treelight/themes"
)

// Token is one resolved run of source text handed to streaming consumers.
type Token struct {
	// Text is the raw source slice covered by the token.
	Text []byte
	// StartByte and EndByte locate the token in the source.
	StartByte uint
	EndByte   uint
	// Scope is the innermost active scope name, or "" for unscoped runs.
	Scope string
	// Style is the effective style resolved from the full scope stack.
	Style themes.Style
}

// TokenFunc consumes one token. Returning false stops the highlight
// operation; no further callbacks are made and nothing needs releasing.
type TokenFunc func(Token) bool

// run is a uniform span of source together with the scope stack active over
// it. The stack slice is reused between runs and only valid during the
// yield.
type run struct {
	start, end uint
	stack      ScopeStack
}

// runs drives the normalizer and tracks the scope stack, yielding one run
// per source event. The only mutable state is the local stack, owned by this
// call.
func runs(source []byte, language string, captures []Capture, regions []Region) iter.Seq[run] {
	return func(yield func(run) bool) {
		var stack ScopeStack
		for event := range Events(source, language, captures, regions) {
			switch e := event.(type) {
			case EventStart:
				stack = append(stack, ScopeEntry{Scope: e.Scope, Language: e.Language})
			case EventEnd:
				stack = stack[:len(stack)-1]
			case EventSource:
				if !yield(run{start: e.StartByte, end: e.EndByte, stack: stack}) {
					return
				}
			}
		}
	}
}

// Stream highlights the source in streaming mode, invoking fn once per
// resolved token in order. Token styles come from the formatter's primary
// theme. The callback may return false to cancel; buffered and streaming
// mode see the exact same token sequence.
func (f *Formatter) Stream(source []byte, captures []Capture, regions []Region, fn TokenFunc) {
	theme := f.primaryTheme()
	for r := range runs(source, f.cfg.Language, captures, regions) {
		tok := Token{
			Text:      source[r.start:r.end],
			StartByte: r.start,
			EndByte:   r.end,
			Scope:     r.stack.Innermost().Scope,
		}
		if theme != nil {
			tok.Style = ResolveStack(theme, r.stack)
		}
		if !fn(tok) {
			return
		}
	}
}
