package treelight

// RegionID identifies one source region of a highlight operation. RootRegion
// is the top-level source; every injected embedded-language region gets its
// own id.
type RegionID int

// RootRegion is the implicit region covering the whole source.
const RootRegion RegionID = 0

// Region describes a sub-range of the source that was parsed under its own
// language, e.g. a markdown code fence inside a doc comment. Captures from a
// region never produce events outside its bounds.
type Region struct {
	ID        RegionID
	Language  string
	StartByte uint
	EndByte   uint
}

// Capture is one scoped byte range produced by the external query engine.
// Captures are consumed, never owned: a highlight operation reads them once
// and holds no reference afterwards.
type Capture struct {
	StartByte uint
	EndByte   uint
	// Scope is the dotted scope name assigned by the query, e.g.
	// "function.macro".
	Scope string
	// Pattern is the index of the query pattern that produced the capture.
	// Lower patterns win when two captures cover the identical range.
	Pattern uint
	// Region is the source region the capture belongs to.
	Region RegionID
}
