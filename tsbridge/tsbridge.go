// Package tsbridge turns tree-sitter query matches into the flat capture
// lists consumed by the treelight normalizer.
//
// The bridge owns parsing and query execution; it knows nothing about
// themes or rendering. Injections (e.g. SQL inside a Go string) are resolved
// one level deep: the injected region is parsed with its own grammar and its
// captures are tagged with a region id, the normalizer splices them in.
package tsbridge

import (
	"fmt"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"go.gopad.dev/treelight"
)

const (
	captureInjectionContent  = "injection.content"
	captureInjectionLanguage = "injection.language"
)

// Grammar bundles a tree-sitter language with the query sources driving it.
// InjectionsQuery may be nil for grammars without embedded languages.
type Grammar struct {
	Name            string
	Language        *tree_sitter.Language
	HighlightsQuery []byte
	InjectionsQuery []byte
}

// grammar is a Grammar with its queries compiled.
type grammar struct {
	name            string
	language        *tree_sitter.Language
	highlights      *tree_sitter.Query
	highlightScopes []string
	injections      *tree_sitter.Query
	contentIndex    int
	languageIndex   int
}

// Engine compiles a set of grammars once and extracts captures from sources.
// An Engine is safe for sequential reuse; each Extract call owns its parser.
type Engine struct {
	grammars map[string]*grammar
}

// New compiles the queries of every grammar. Grammars are keyed by name;
// injections referring to a name New never saw are skipped at extraction
// time.
func New(grammars ...Grammar) (*Engine, error) {
	engine := &Engine{grammars: make(map[string]*grammar, len(grammars))}

	for _, g := range grammars {
		if g.Name == "" {
			return nil, fmt.Errorf("grammar with empty name")
		}
		if g.Language == nil {
			return nil, fmt.Errorf("grammar %q: no language", g.Name)
		}

		compiled := &grammar{
			name:          g.Name,
			language:      g.Language,
			contentIndex:  -1,
			languageIndex: -1,
		}

		highlights, err := tree_sitter.NewQuery(g.Language, string(g.HighlightsQuery))
		if err != nil {
			return nil, fmt.Errorf("grammar %q: compiling highlights query: %w", g.Name, err)
		}
		compiled.highlights = highlights
		compiled.highlightScopes = highlights.CaptureNames()

		if len(g.InjectionsQuery) > 0 {
			injections, err := tree_sitter.NewQuery(g.Language, string(g.InjectionsQuery))
			if err != nil {
				return nil, fmt.Errorf("grammar %q: compiling injections query: %w", g.Name, err)
			}
			compiled.injections = injections
			for i, name := range injections.CaptureNames() {
				switch name {
				case captureInjectionContent:
					compiled.contentIndex = i
				case captureInjectionLanguage:
					compiled.languageIndex = i
				}
			}
		}

		engine.grammars[g.Name] = compiled
	}

	return engine, nil
}

// Languages returns the names of the compiled grammars.
func (e *Engine) Languages() []string {
	names := make([]string, 0, len(e.grammars))
	for name := range e.grammars {
		names = append(names, name)
	}
	return names
}

// Has reports whether a grammar is compiled for the language.
func (e *Engine) Has(language string) bool {
	_, ok := e.grammars[language]
	return ok
}

// Extract parses the source with the named grammar and returns the raw
// capture list plus the injected regions found one level deep. The captures
// are unordered and may overlap; normalization is the caller's concern.
func (e *Engine) Extract(language string, source []byte) ([]treelight.Capture, []treelight.Region, error) {
	root, ok := e.grammars[language]
	if !ok {
		return nil, nil, fmt.Errorf("no grammar for language %q", language)
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()

	tree, err := parse(parser, root.language, source, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tree.Close()

	captures := drainCaptures(root, tree, source, treelight.RootRegion)

	var regions []treelight.Region
	nextRegion := treelight.RootRegion + 1

	for _, site := range injectionSites(root, tree, source) {
		injected, ok := e.grammars[site.language]
		if !ok {
			continue
		}

		subTree, err := parse(parser, injected.language, source, []tree_sitter.Range{site.contentRange})
		if err != nil {
			continue
		}

		region := treelight.Region{
			ID:        nextRegion,
			Language:  injected.name,
			StartByte: site.contentRange.StartByte,
			EndByte:   site.contentRange.EndByte,
		}
		nextRegion++

		captures = append(captures, drainCaptures(injected, subTree, source, region.ID)...)
		regions = append(regions, region)
		subTree.Close()
	}

	return captures, regions, nil
}

func parse(parser *tree_sitter.Parser, language *tree_sitter.Language, source []byte, ranges []tree_sitter.Range) (*tree_sitter.Tree, error) {
	if err := parser.SetIncludedRanges(ranges); err != nil {
		return nil, fmt.Errorf("setting included ranges: %w", err)
	}
	if err := parser.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("setting language: %w", err)
	}

	tree := parser.ParseWithOptions(func(i int, _ tree_sitter.Point) []byte {
		return source[i:]
	}, nil, nil)
	if tree == nil {
		return nil, fmt.Errorf("parse produced no tree")
	}
	return tree, nil
}

// drainCaptures runs the highlights query over a tree and flattens every
// capture occurrence into the normalizer's input form.
func drainCaptures(g *grammar, tree *tree_sitter.Tree, source []byte, region treelight.RegionID) []treelight.Capture {
	cursor := tree_sitter.NewQueryCursor()
	defer cursor.Close()

	var out []treelight.Capture

	matches := cursor.Captures(g.highlights, tree.RootNode(), source)
	for {
		match, index := matches.Next()
		if match == nil {
			break
		}

		capture := match.Captures[index]
		scope := g.highlightScopes[capture.Index]
		if strings.HasPrefix(scope, "_") {
			continue
		}

		out = append(out, treelight.Capture{
			StartByte: capture.Node.StartByte(),
			EndByte:   capture.Node.EndByte(),
			Scope:     scope,
			Pattern:   match.PatternIndex,
			Region:    region,
		})
	}

	return out
}

// injectionSite is one embedded-language occurrence: the content range to
// re-parse and the language it claims.
type injectionSite struct {
	language     string
	contentRange tree_sitter.Range
}

// injectionSites runs the injections query and resolves each match's
// language, either from an explicit "#set! injection.language" property or
// from the text of the @injection.language capture.
func injectionSites(g *grammar, tree *tree_sitter.Tree, source []byte) []injectionSite {
	if g.injections == nil || g.contentIndex < 0 {
		return nil
	}

	cursor := tree_sitter.NewQueryCursor()
	defer cursor.Close()

	var sites []injectionSite

	matches := cursor.Matches(g.injections, tree.RootNode(), source)
	for {
		match := matches.Next()
		if match == nil {
			break
		}

		var language string
		for _, prop := range g.injections.PropertySettings(match.PatternIndex) {
			if prop.Key == captureInjectionLanguage && prop.Value != nil {
				language = *prop.Value
			}
		}

		var content *tree_sitter.Node
		for i, capture := range match.Captures {
			switch int(capture.Index) {
			case g.languageIndex:
				if language == "" {
					language = capture.Node.Utf8Text(source)
				}
			case g.contentIndex:
				content = &match.Captures[i].Node
			}
		}

		if language == "" || content == nil {
			continue
		}
		sites = append(sites, injectionSite{
			language:     language,
			contentRange: content.Range(),
		})
	}

	return sites
}
