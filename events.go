package treelight

// Event is one element of the canonical highlight event stream.
// Possible implementations are:
// - [EventStart]
// - [EventSource]
// - [EventEnd]
//
// The Start/End events of a stream always form a balanced, properly nested
// bracket sequence, and the Source events cover the input byte-for-byte with
// no gaps or overlaps.
type Event interface {
	highlightEvent()
}

// EventStart is emitted when a highlight scope opens.
type EventStart struct {
	// Scope is the dotted scope name, e.g. "keyword.return".
	Scope string
	// Language is the name of the language the scope was captured in. It
	// differs from the top-level language inside injected regions.
	Language string
}

func (EventStart) highlightEvent() {}

// EventSource is emitted for a run of source bytes.
type EventSource struct {
	StartByte uint
	EndByte   uint
}

func (EventSource) highlightEvent() {}

// EventEnd closes the most recently opened scope.
type EventEnd struct{}

func (EventEnd) highlightEvent() {}
