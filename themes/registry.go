package themes

import (
	"embed"
	"fmt"
	"sort"
	"sync"
)

//go:embed builtin/*.json
var builtinFS embed.FS

// The builtin table is decoded once on first use and never mutated after.
var loadBuiltin = sync.OnceValues(func() (map[string]Theme, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, fmt.Errorf("reading builtin themes: %w", err)
	}

	all := make(map[string]Theme, len(entries))
	for _, entry := range entries {
		data, err := builtinFS.ReadFile("builtin/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("reading builtin theme %s: %w", entry.Name(), err)
		}
		theme, err := FromJSON(data)
		if err != nil {
			return nil, fmt.Errorf("builtin theme %s: %w", entry.Name(), err)
		}
		all[theme.Name] = theme
	}
	return all, nil
})

// Get returns the builtin theme with the given name. The returned theme is
// an owned value; callers may hold it for any lifetime.
func Get(name string) (Theme, error) {
	all, err := loadBuiltin()
	if err != nil {
		return Theme{}, err
	}

	theme, ok := all[name]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return theme, nil
}

// Names returns the names of all builtin themes, sorted.
func Names() []string {
	all, err := loadBuiltin()
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Available returns all builtin themes sorted by name.
func Available() []Theme {
	all := make([]Theme, 0)
	for _, name := range Names() {
		theme, err := Get(name)
		if err != nil {
			continue
		}
		all = append(all, theme)
	}
	return all
}
