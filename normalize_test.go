package treelight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func collectEvents(source []byte, language string, captures []Capture, regions []Region) []Event {
	var events []Event
	for event := range Events(source, language, captures, regions) {
		events = append(events, event)
	}
	return events
}

// reconstruct concatenates the source events back into a byte slice.
func reconstruct(source []byte, events []Event) []byte {
	out := make([]byte, 0, len(source))
	for _, event := range events {
		if e, ok := event.(EventSource); ok {
			out = append(out, source[e.StartByte:e.EndByte]...)
		}
	}
	return out
}

func TestEvents_NoCaptures(t *testing.T) {
	source := []byte("package main\n")

	events := collectEvents(source, "go", nil, nil)

	require.Len(t, events, 1)
	assert.Equal(t, EventSource{StartByte: 0, EndByte: 13}, events[0])
}

func TestEvents_EmptySource(t *testing.T) {
	events := collectEvents(nil, "go", nil, nil)
	assert.Empty(t, events)
}

func TestEvents_NestedCaptures(t *testing.T) {
	source := []byte("func main() {}")
	captures := []Capture{
		{StartByte: 0, EndByte: 10, Scope: "function", Pattern: 0},
		{StartByte: 3, EndByte: 6, Scope: "keyword", Pattern: 1},
	}

	events := collectEvents(source, "go", captures, nil)

	assert.Equal(t, []Event{
		EventStart{Scope: "function", Language: "go"},
		EventSource{StartByte: 0, EndByte: 3},
		EventStart{Scope: "keyword", Language: "go"},
		EventSource{StartByte: 3, EndByte: 6},
		EventEnd{},
		EventSource{StartByte: 6, EndByte: 10},
		EventEnd{},
		EventSource{StartByte: 10, EndByte: 14},
	}, events)
}

func TestEvents_OverlapClampedToEnclosingScope(t *testing.T) {
	source := []byte("0123456789abcdef")
	captures := []Capture{
		{StartByte: 0, EndByte: 8, Scope: "outer", Pattern: 0},
		{StartByte: 5, EndByte: 12, Scope: "inner", Pattern: 1},
	}

	events := collectEvents(source, "go", captures, nil)

	assert.Equal(t, []Event{
		EventStart{Scope: "outer", Language: "go"},
		EventSource{StartByte: 0, EndByte: 5},
		EventStart{Scope: "inner", Language: "go"},
		EventSource{StartByte: 5, EndByte: 8},
		EventEnd{},
		EventEnd{},
		EventSource{StartByte: 8, EndByte: 16},
	}, events)
}

func TestEvents_AdjacentCaptures(t *testing.T) {
	source := []byte("aabbcc")
	captures := []Capture{
		{StartByte: 0, EndByte: 2, Scope: "one", Pattern: 0},
		{StartByte: 2, EndByte: 4, Scope: "two", Pattern: 1},
	}

	events := collectEvents(source, "go", captures, nil)

	assert.Equal(t, []Event{
		EventStart{Scope: "one", Language: "go"},
		EventSource{StartByte: 0, EndByte: 2},
		EventEnd{},
		EventStart{Scope: "two", Language: "go"},
		EventSource{StartByte: 2, EndByte: 4},
		EventEnd{},
		EventSource{StartByte: 4, EndByte: 6},
	}, events)
}

func TestEvents_IdenticalRangeLowestPatternWins(t *testing.T) {
	source := []byte("0123456789")
	captures := []Capture{
		{StartByte: 2, EndByte: 5, Scope: "second", Pattern: 7},
		{StartByte: 2, EndByte: 5, Scope: "first", Pattern: 3},
	}

	events := collectEvents(source, "go", captures, nil)

	assert.Equal(t, []Event{
		EventSource{StartByte: 0, EndByte: 2},
		EventStart{Scope: "first", Language: "go"},
		EventSource{StartByte: 2, EndByte: 5},
		EventEnd{},
		EventSource{StartByte: 5, EndByte: 10},
	}, events)
}

func TestEvents_MalformedCapturesClamped(t *testing.T) {
	source := []byte("0123456789")
	captures := []Capture{
		{StartByte: 5, EndByte: 2, Scope: "inverted", Pattern: 0},
		{StartByte: 3, EndByte: 3, Scope: "empty", Pattern: 1},
		{StartByte: 0, EndByte: 4, Scope: "", Pattern: 2},
		{StartByte: 8, EndByte: 99, Scope: "overlong", Pattern: 3},
		{StartByte: 50, EndByte: 60, Scope: "beyond", Pattern: 4},
	}

	events := collectEvents(source, "go", captures, nil)

	assert.Equal(t, []Event{
		EventSource{StartByte: 0, EndByte: 8},
		EventStart{Scope: "overlong", Language: "go"},
		EventSource{StartByte: 8, EndByte: 10},
		EventEnd{},
	}, events)
	assert.Equal(t, source, reconstruct(source, events))
}

func TestEvents_RuneBoundariesClamped(t *testing.T) {
	source := []byte("aé b") // é occupies bytes 1-2
	captures := []Capture{
		{StartByte: 0, EndByte: 2, Scope: "left", Pattern: 0},
		{StartByte: 2, EndByte: 4, Scope: "right", Pattern: 1},
	}

	events := collectEvents(source, "go", captures, nil)

	assert.Equal(t, []Event{
		EventStart{Scope: "left", Language: "go"},
		EventSource{StartByte: 0, EndByte: 1},
		EventEnd{},
		EventSource{StartByte: 1, EndByte: 3},
		EventStart{Scope: "right", Language: "go"},
		EventSource{StartByte: 3, EndByte: 4},
		EventEnd{},
		EventSource{StartByte: 4, EndByte: 5},
	}, events)
	assert.Equal(t, source, reconstruct(source, events))
}

func TestEvents_InjectedRegionLanguage(t *testing.T) {
	source := []byte(`q := "SELECT id FROM t"`)
	regions := []Region{
		{ID: 1, Language: "sql", StartByte: 7, EndByte: 22},
	}
	captures := []Capture{
		{StartByte: 6, EndByte: 23, Scope: "string", Pattern: 0},
		{StartByte: 7, EndByte: 13, Scope: "keyword", Pattern: 0, Region: 1},
	}

	events := collectEvents(source, "go", captures, regions)

	assert.Equal(t, []Event{
		EventSource{StartByte: 0, EndByte: 6},
		EventStart{Scope: "string", Language: "go"},
		EventSource{StartByte: 6, EndByte: 7},
		EventStart{Scope: "keyword", Language: "sql"},
		EventSource{StartByte: 7, EndByte: 13},
		EventEnd{},
		EventSource{StartByte: 13, EndByte: 23},
		EventEnd{},
	}, events)
}

func TestEvents_RegionBoundsClampCaptures(t *testing.T) {
	source := []byte("01234567890123456789")
	regions := []Region{
		{ID: 1, Language: "sql", StartByte: 5, EndByte: 15},
	}
	captures := []Capture{
		{StartByte: 3, EndByte: 18, Scope: "keyword", Pattern: 0, Region: 1},
	}

	events := collectEvents(source, "go", captures, regions)

	assert.Equal(t, []Event{
		EventSource{StartByte: 0, EndByte: 5},
		EventStart{Scope: "keyword", Language: "sql"},
		EventSource{StartByte: 5, EndByte: 15},
		EventEnd{},
		EventSource{StartByte: 15, EndByte: 20},
	}, events)
}

func TestEvents_EarlyStop(t *testing.T) {
	source := []byte("0123456789")
	captures := []Capture{
		{StartByte: 2, EndByte: 5, Scope: "scope", Pattern: 0},
	}

	var seen int
	for range Events(source, "go", captures, nil) {
		seen++
		if seen == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}

func TestEvents_Properties(t *testing.T) {
	scopes := []string{"keyword", "string", "comment", "function", "type"}

	rapid.Check(t, func(t *rapid.T) {
		source := []byte(rapid.String().Draw(t, "source"))
		size := len(source)

		count := rapid.IntRange(0, 20).Draw(t, "count")
		captures := make([]Capture, count)
		for i := range captures {
			captures[i] = Capture{
				StartByte: uint(rapid.IntRange(0, size+5).Draw(t, "start")),
				EndByte:   uint(rapid.IntRange(0, size+5).Draw(t, "end")),
				Scope:     rapid.SampledFrom(scopes).Draw(t, "scope"),
				Pattern:   uint(rapid.IntRange(0, 10).Draw(t, "pattern")),
			}
		}

		events := collectEvents(source, "go", captures, nil)

		// The source events reconstruct the input byte for byte.
		assert.Equal(t, source, append([]byte{}, reconstruct(source, events)...))

		// Start and end events are balanced and never close below zero, and
		// the source events are contiguous and in order.
		depth := 0
		var pos uint
		for _, event := range events {
			switch e := event.(type) {
			case EventStart:
				depth++
			case EventEnd:
				depth--
				require.GreaterOrEqual(t, depth, 0)
			case EventSource:
				require.Equal(t, pos, e.StartByte)
				require.Less(t, e.StartByte, e.EndByte)
				pos = e.EndByte
			}
		}
		require.Equal(t, 0, depth)
		require.Equal(t, uint(size), pos)
	})
}

func TestEvents_Deterministic(t *testing.T) {
	source := []byte("func main() { return }")
	captures := []Capture{
		{StartByte: 14, EndByte: 20, Scope: "keyword", Pattern: 2},
		{StartByte: 0, EndByte: 4, Scope: "keyword", Pattern: 0},
		{StartByte: 5, EndByte: 9, Scope: "function", Pattern: 1},
	}

	first := collectEvents(source, "go", captures, nil)
	second := collectEvents(source, "go", captures, nil)
	assert.Equal(t, first, second)
}
