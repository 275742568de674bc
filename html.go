package treelight

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"go.gopad.dev/treelight/themes"
)

// preClass is the fixed class carried by every pre element so stylesheets
// and theme switchers have a stable hook.
const htmlPreClass = "hl"

var htmlEscapes = map[byte]string{
	'&':  "&amp;",
	'<':  "&lt;",
	'>':  "&gt;",
	'"':  "&#34;",
	'\'': "&#39;",
	'{':  "&lbrace;",
	'}':  "&rbrace;",
}

func writeEscaped(w io.Writer, text []byte) error {
	last := 0
	for i := 0; i < len(text); i++ {
		escape, ok := htmlEscapes[text[i]]
		if !ok {
			continue
		}
		if _, err := w.Write(text[last:i]); err != nil {
			return err
		}
		if _, err := io.WriteString(w, escape); err != nil {
			return err
		}
		last = i + 1
	}
	_, err := w.Write(text[last:])
	return err
}

// classForScope derives the linked-backend class name for a scope:
// dots become dashes, with the configured prefix prepended. The same naming
// is used by [Stylesheet].
func classForScope(scope, prefix string) string {
	return prefix + strings.ReplaceAll(scope, ".", "-")
}

// spanAttr builds the attribute list for a token span from the active scope
// stack, or "" when the run needs no span.
func (f *Formatter) spanAttr(stack ScopeStack) string {
	if len(stack) == 0 {
		return ""
	}

	var attrs []string
	if f.cfg.IncludeScopes {
		attrs = append(attrs, `data-highlight="`+stack.Innermost().Scope+`"`)
	}

	switch f.cfg.Backend {
	case BackendHTMLLinked:
		attrs = append(attrs, `class="`+classForScope(stack.Innermost().Scope, f.cfg.ClassPrefix)+`"`)
	case BackendHTMLInline:
		style := ResolveStack(f.cfg.Theme, stack)
		if css := style.CSS(" "); css != "" {
			attrs = append(attrs, `style="`+css+`"`)
		}
	case BackendHTMLDual:
		if decls := f.dualTokenStyle(stack); decls != "" {
			attrs = append(attrs, `style="`+decls+`"`)
		}
	}

	if len(attrs) == 0 {
		return ""
	}
	return strings.Join(attrs, " ")
}

// formatHTML renders the three HTML backends: shared pre/code framing and
// line wrappers, with the span attributes supplied per backend.
func (f *Formatter) formatHTML(w io.Writer, source []byte, captures []Capture, regions []Region) error {
	if f.cfg.Header != nil {
		if _, err := io.WriteString(w, f.cfg.Header.OpenTag); err != nil {
			return err
		}
	}

	if err := f.openPreTag(w); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, `<code class="language-%s" translate="no" tabindex="0">`, f.cfg.Language); err != nil {
		return err
	}

	lw := &lineWriter{w: w, f: f}
	for r := range runs(source, f.cfg.Language, captures, regions) {
		if lw.err != nil {
			break
		}
		lw.writeRun(source[r.start:r.end], f.spanAttr(r.stack))
	}
	lw.closeLine()
	if lw.err != nil {
		return lw.err
	}

	if _, err := io.WriteString(w, "</code></pre>"); err != nil {
		return err
	}

	if f.cfg.Header != nil {
		if _, err := io.WriteString(w, f.cfg.Header.CloseTag); err != nil {
			return err
		}
	}
	return nil
}

func (f *Formatter) openPreTag(w io.Writer) error {
	classes := []string{htmlPreClass}
	if f.cfg.Backend == BackendHTMLDual {
		classes = append(classes, htmlPreClass+"-dual")
	}
	if f.cfg.PreClass != "" {
		classes = append(classes, f.cfg.PreClass)
	}

	var style string
	switch f.cfg.Backend {
	case BackendHTMLInline:
		style = preStyle(f.cfg.Theme)
	case BackendHTMLDual:
		style = f.dualPreStyle()
	}

	if style != "" {
		_, err := fmt.Fprintf(w, `<pre class="%s" style="%s">`, strings.Join(classes, " "), style)
		return err
	}
	_, err := fmt.Fprintf(w, `<pre class="%s">`, strings.Join(classes, " "))
	return err
}

// preStyle renders the theme's default colors for the pre element.
func preStyle(theme *themes.Theme) string {
	var rules []string
	if fg := theme.Fg(); fg != "" {
		rules = append(rules, "color: "+fg+";")
	}
	if bg := theme.Bg(); bg != "" {
		rules = append(rules, "background-color: "+bg+";")
	}
	return strings.Join(rules, " ")
}

// lineWriter wraps each source line in a div carrying its 1-based line
// number and the highlight-lines overlay. Spans never cross a line
// boundary; a token containing newlines is split and re-wrapped per line.
type lineWriter struct {
	w    io.Writer
	f    *Formatter
	line int
	open bool
	err  error
}

func (lw *lineWriter) writeRun(text []byte, attr string) {
	for len(text) > 0 {
		segment := text
		newline := false
		if i := bytes.IndexByte(text, '\n'); i >= 0 {
			segment = text[:i]
			text = text[i+1:]
			newline = true
		} else {
			text = nil
		}

		if len(segment) > 0 {
			lw.openLine()
			if attr != "" {
				lw.print("<span " + attr + ">")
				lw.escape(segment)
				lw.print("</span>")
			} else {
				lw.escape(segment)
			}
		}

		if newline {
			lw.openLine()
			lw.print("\n</div>")
			lw.open = false
		}
	}
}

func (lw *lineWriter) openLine() {
	if lw.open || lw.err != nil {
		return
	}
	lw.line++
	lw.open = true

	highlighted := lw.f.cfg.HighlightLines.contains(lw.line)
	class := "line"
	if highlighted {
		extra := lw.f.cfg.HighlightLines.Class
		if extra == "" {
			extra = "highlighted"
		}
		class += " " + extra
	}

	lw.print(`<div class="` + class + `"`)
	if highlighted {
		if style := lw.f.highlightLineStyle(); style != "" {
			lw.print(` style="` + style + `"`)
		}
	}
	lw.print(fmt.Sprintf(` data-line="%d">`, lw.line))
}

func (lw *lineWriter) closeLine() {
	if lw.open {
		lw.print("</div>")
		lw.open = false
	}
}

func (lw *lineWriter) print(s string) {
	if lw.err != nil {
		return
	}
	_, lw.err = io.WriteString(lw.w, s)
}

func (lw *lineWriter) escape(text []byte) {
	if lw.err != nil {
		return
	}
	lw.err = writeEscaped(lw.w, text)
}

// highlightLineStyle is the inline style for marked lines: the configured
// declarations, else the primary theme's "highlighted" scope.
func (f *Formatter) highlightLineStyle() string {
	hl := f.cfg.HighlightLines
	if hl == nil {
		return ""
	}
	if hl.Style != "" {
		return hl.Style
	}
	if f.cfg.Backend == BackendHTMLLinked {
		return ""
	}
	theme := f.primaryTheme()
	if theme == nil {
		return ""
	}
	if style, ok := theme.StyleFor("highlighted"); ok {
		return style.CSS(" ")
	}
	return ""
}
