package treelight

import (
	"iter"
	"sort"
	"unicode/utf8"
)

// boundedCapture is a capture after sanitization: clamped to its region, to
// the source length and to rune boundaries, with the region resolved to a
// language name.
type boundedCapture struct {
	start    uint
	end      uint
	scope    string
	language string
	pattern  uint
}

// openScope is one entry of the normalizer's explicit scope stack.
type openScope struct {
	start uint
	end   uint
	scope string
}

// Events normalizes a raw capture list into the canonical event stream: a
// flat, well-nested sequence of [EventStart], [EventSource] and [EventEnd]
// covering the entire source exactly once.
//
// Captures may overlap, repeat and arrive unordered; captures from injected
// regions are spliced in at their byte offsets. Inconsistent captures
// (inverted ranges, ranges crossing a region boundary, ranges splitting a
// multi-byte rune) are clamped or dropped, never reported: the byte
// reconstruction invariant holds for every input.
//
// language is the scope-name qualifier for captures in the root region.
func Events(source []byte, language string, captures []Capture, regions []Region) iter.Seq[Event] {
	bounded := sanitize(source, language, captures, regions)

	return func(yield func(Event) bool) {
		var (
			pos   uint
			stack []openScope
		)

		// emit the source run between the previous boundary and offset.
		emitTo := func(offset uint) bool {
			if pos >= offset {
				return true
			}
			ok := yield(EventSource{StartByte: pos, EndByte: offset})
			pos = offset
			return ok
		}

		for _, c := range bounded {
			// Close every active scope that ends at or before this
			// capture starts, innermost first.
			for len(stack) > 0 && stack[len(stack)-1].end <= c.start {
				top := stack[len(stack)-1]
				if !emitTo(top.end) || !yield(EventEnd{}) {
					return
				}
				stack = stack[:len(stack)-1]
			}

			if len(stack) > 0 {
				top := stack[len(stack)-1]

				// Lower-pattern captures sort first, so a later capture
				// over the identical range lost the tie-break.
				if top.start == c.start && top.end == c.end {
					continue
				}

				// An overlapping-but-not-nested capture is clamped to its
				// enclosing scope, keeping the output nested by
				// construction.
				if c.end > top.end {
					c.end = top.end
				}
			}
			if c.start >= c.end {
				continue
			}

			if !emitTo(c.start) {
				return
			}
			if !yield(EventStart{Scope: c.scope, Language: c.language}) {
				return
			}
			stack = append(stack, openScope{start: c.start, end: c.end, scope: c.scope})
		}

		for len(stack) > 0 {
			top := stack[len(stack)-1]
			if !emitTo(top.end) || !yield(EventEnd{}) {
				return
			}
			stack = stack[:len(stack)-1]
		}

		emitTo(uint(len(source)))
	}
}

// sanitize clamps captures to their region and the source, resolves region
// languages, drops empty or inverted ranges and establishes the sweep order:
// start ascending, wider ranges first, lower patterns first. The sort is
// stable so equal captures keep their input order.
func sanitize(source []byte, language string, captures []Capture, regions []Region) []boundedCapture {
	size := uint(len(source))

	byRegion := make(map[RegionID]Region, len(regions))
	for _, r := range regions {
		byRegion[r.ID] = r
	}

	bounded := make([]boundedCapture, 0, len(captures))
	for _, c := range captures {
		if c.EndByte <= c.StartByte || c.Scope == "" {
			continue
		}

		start, end := c.StartByte, c.EndByte
		lang := language
		if region, ok := byRegion[c.Region]; ok && c.Region != RootRegion {
			lang = region.Language
			start = max(start, region.StartByte)
			end = min(end, region.EndByte)
		}
		start = min(start, size)
		end = min(end, size)

		start = runeCeil(source, start)
		end = runeFloor(source, end)
		if start >= end {
			continue
		}

		bounded = append(bounded, boundedCapture{
			start:    start,
			end:      end,
			scope:    c.Scope,
			language: lang,
			pattern:  c.Pattern,
		})
	}

	sort.SliceStable(bounded, func(i, j int) bool {
		a, b := bounded[i], bounded[j]
		if a.start != b.start {
			return a.start < b.start
		}
		if a.end != b.end {
			return a.end > b.end
		}
		return a.pattern < b.pattern
	})

	return bounded
}

// runeCeil moves offset forward to the nearest rune start so no event splits
// a multi-byte code point.
func runeCeil(source []byte, offset uint) uint {
	for offset < uint(len(source)) && !utf8.RuneStart(source[offset]) {
		offset++
	}
	return offset
}

// runeFloor moves offset backward to the nearest rune start.
func runeFloor(source []byte, offset uint) uint {
	for offset > 0 && offset < uint(len(source)) && !utf8.RuneStart(source[offset]) {
		offset--
	}
	return offset
}
