/*
Package treelight turns raw syntax-highlight captures into styled output.

The pipeline has three stages. [Events] normalizes an unordered, possibly
overlapping capture list into a flat, well-nested event stream that
reconstructs the source byte for byte. Scope resolution maps each stack of
active scopes to a single effective [themes.Style], preferring
language-qualified theme entries over exact names over dotted prefixes.
A [Formatter] renders the resolved runs with one of four backends: inline
HTML, class-linked HTML, dual light/dark HTML driven by CSS custom
properties, or ANSI escape sequences for the terminal.

Captures usually come from tree-sitter via the tsbridge package, but any
producer of [Capture] values works; the normalizer makes no assumptions
about ordering or consistency.

# Usage

	theme, err := themes.Get("github_light")
	if err != nil {
		log.Fatal(err)
	}

	formatter, err := treelight.New(treelight.Config{
		Backend:  treelight.BackendHTMLInline,
		Language: "go",
		Theme:    &theme,
	})
	if err != nil {
		log.Fatal(err)
	}

	html, err := formatter.Highlight(source, captures, nil)
	if err != nil {
		log.Fatal(err)
	}

For incremental consumption use [Formatter.Stream], which invokes a callback
per resolved token and stops when the callback returns false. Buffered and
streaming mode observe the identical token sequence.
*/
package treelight
