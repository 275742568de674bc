// Package language maps file names and content to highlight language names.
//
// The registry is a static table; it deliberately carries no grammar
// handles, so it can be used to route a file before any parser is loaded.
package language

import (
	"bytes"
	"path/filepath"
	"sort"
	"strings"
)

// Language describes one recognized language: the canonical name used to
// qualify highlight scopes, plus the filename and shebang patterns that
// select it.
type Language struct {
	// Name is the canonical lowercase name, e.g. "go".
	Name string
	// Extensions are matched against the file extension, without the dot.
	Extensions []string
	// Filenames are exact base-name matches, e.g. "Makefile".
	Filenames []string
	// Shebangs are interpreter names matched against a #! first line.
	Shebangs []string
}

var registry = []Language{
	{Name: "bash", Extensions: []string{"sh", "bash", "zsh"}, Filenames: []string{".bashrc", ".zshrc", ".profile"}, Shebangs: []string{"sh", "bash", "zsh"}},
	{Name: "c", Extensions: []string{"c", "h"}},
	{Name: "cpp", Extensions: []string{"cc", "cpp", "cxx", "hh", "hpp"}},
	{Name: "css", Extensions: []string{"css"}},
	{Name: "dockerfile", Filenames: []string{"Dockerfile", "Containerfile"}},
	{Name: "go", Extensions: []string{"go"}},
	{Name: "gomod", Filenames: []string{"go.mod"}},
	{Name: "gosum", Filenames: []string{"go.sum"}},
	{Name: "html", Extensions: []string{"html", "htm"}},
	{Name: "javascript", Extensions: []string{"js", "mjs", "cjs"}, Shebangs: []string{"node"}},
	{Name: "json", Extensions: []string{"json"}},
	{Name: "lua", Extensions: []string{"lua"}, Shebangs: []string{"lua"}},
	{Name: "make", Extensions: []string{"mk"}, Filenames: []string{"Makefile", "makefile", "GNUmakefile"}},
	{Name: "markdown", Extensions: []string{"md", "markdown"}},
	{Name: "python", Extensions: []string{"py"}, Shebangs: []string{"python", "python3"}},
	{Name: "ruby", Extensions: []string{"rb"}, Filenames: []string{"Rakefile", "Gemfile"}, Shebangs: []string{"ruby"}},
	{Name: "rust", Extensions: []string{"rs"}},
	{Name: "sql", Extensions: []string{"sql"}},
	{Name: "toml", Extensions: []string{"toml"}, Filenames: []string{"Cargo.lock"}},
	{Name: "typescript", Extensions: []string{"ts", "mts", "cts"}},
	{Name: "yaml", Extensions: []string{"yaml", "yml"}},
}

// Names returns every registered language name, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, l := range registry {
		names = append(names, l.Name)
	}
	sort.Strings(names)
	return names
}

// Known reports whether name is a registered language.
func Known(name string) bool {
	for _, l := range registry {
		if l.Name == name {
			return true
		}
	}
	return false
}

// ByFilename matches a path against the registered filenames and extensions.
func ByFilename(path string) (string, bool) {
	base := filepath.Base(path)
	for _, l := range registry {
		for _, name := range l.Filenames {
			if base == name {
				return l.Name, true
			}
		}
	}

	ext := strings.TrimPrefix(filepath.Ext(base), ".")
	if ext == "" {
		return "", false
	}
	for _, l := range registry {
		for _, e := range l.Extensions {
			if ext == e {
				return l.Name, true
			}
		}
	}
	return "", false
}

// ByShebang inspects a #! first line for a registered interpreter. "env"
// indirection is skipped, so "#!/usr/bin/env python3" resolves like
// "#!/usr/bin/python3".
func ByShebang(source []byte) (string, bool) {
	if !bytes.HasPrefix(source, []byte("#!")) {
		return "", false
	}

	line := source[2:]
	if i := bytes.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}

	fields := strings.Fields(string(line))
	if len(fields) == 0 {
		return "", false
	}

	interpreter := filepath.Base(fields[0])
	if interpreter == "env" && len(fields) > 1 {
		interpreter = filepath.Base(fields[1])
	}

	for _, l := range registry {
		for _, s := range l.Shebangs {
			if interpreter == s {
				return l.Name, true
			}
		}
	}
	return "", false
}

// Detect resolves the language for a file: exact filename and extension
// first, then the shebang line. The path may be empty when only content is
// known.
func Detect(path string, source []byte) (string, bool) {
	if path != "" {
		if name, ok := ByFilename(path); ok {
			return name, ok
		}
	}
	return ByShebang(source)
}
