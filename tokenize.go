package hlkit

import "sort"

// RegionState is the multiline state at a line boundary: which region rule
// (if any) is open, plus the nested language's own state inside it. The
// zero value means "no open region".
type RegionState struct {
	region *regionRule
	sub    *RegionState
}

// InRegion reports whether a multiline region is open at this boundary.
func (s RegionState) InRegion() bool {
	return s.region != nil
}

// RegionName returns the open region rule's diagnostic name, or "".
func (s RegionState) RegionName() string {
	if s.region == nil {
		return ""
	}

	return s.region.name
}

// Equal reports whether two states describe the same open-region chain.
func (s RegionState) Equal(o RegionState) bool {
	if s.region != o.region {
		return false
	}

	if (s.sub == nil) != (o.sub == nil) {
		return false
	}

	if s.sub != nil {
		return s.sub.Equal(*o.sub)
	}

	return true
}

// TokenizeLine produces the styled spans for one line given the region
// state at its start, plus the state carried into the next line. Spans are
// sorted, non-overlapping, half-open rune ranges.
func (d *LanguageDefinition) TokenizeLine(line string, st RegionState) ([]Span, RegionState) {
	spans, out := d.tokenizeBytes(line, st)
	return finishSpans(line, spans), out
}

// tokenizeBytes runs the whole per-line algorithm in byte offsets; rune
// conversion happens once in TokenizeLine.
func (d *LanguageDefinition) tokenizeBytes(line string, st RegionState) ([]Span, RegionState) {
	var spans []Span

	pos := 0
	state := st

	for pos <= len(line) {
		if state.region != nil {
			r := state.region

			loc := r.end.FindStringIndex(line[pos:])
			if loc == nil {
				// Region stays open past end of line.
				interior, sub := d.regionInterior(r, line, pos, len(line), state.sub)
				spans = append(spans, interior...)

				return spans, RegionState{region: r, sub: sub}
			}

			endStart, endEnd := pos+loc[0], pos+loc[1]

			interior, _ := d.regionInterior(r, line, pos, endStart, state.sub)
			spans = append(spans, interior...)

			if endEnd > endStart {
				spans = append(spans, Span{Start: endStart, End: endEnd, Style: d.regionStyle(r)})
			}

			state = RegionState{}

			if endEnd == pos {
				// Zero-width close; the next region open (if any)
				// consumes at least one byte, so the scan still
				// advances.
				continue
			}

			pos = endEnd

			continue
		}

		r, loc := d.findRegionStart(line, pos)
		if r == nil {
			spans = append(spans, d.matchRules(line, pos, len(line))...)
			break
		}

		spans = append(spans, d.matchRules(line, pos, loc[0])...)
		spans = append(spans, Span{Start: loc[0], End: loc[1], Style: d.regionStyle(r)})

		state = RegionState{region: r}
		pos = loc[1]
	}

	return spans, state
}

// findRegionStart returns the region rule with the earliest start match at
// or after pos. Declaration order breaks positional ties. Returned
// locations are absolute byte offsets.
func (d *LanguageDefinition) findRegionStart(line string, pos int) (*regionRule, [2]int) {
	var (
		best    *regionRule
		bestLoc [2]int
	)

	for _, r := range d.regions {
		loc := r.start.FindStringIndex(line[pos:])
		if loc == nil || loc[1] == loc[0] {
			continue
		}

		if best == nil || pos+loc[0] < bestLoc[0] {
			best = r
			bestLoc = [2]int{pos + loc[0], pos + loc[1]}
		}
	}

	return best, bestLoc
}

// matchRules applies the single-line rules to line[from:to] in declared
// order. Each match consumes its full span; a later rule's occurrence that
// touches any consumed byte is discarded whole.
func (d *LanguageDefinition) matchRules(line string, from, to int) []Span {
	if from >= to {
		return nil
	}

	seg := line[from:to]
	claimed := make([]bool, len(seg))

	var spans []Span

	for _, r := range d.rules {
		for _, m := range r.re.FindAllStringSubmatchIndex(seg, -1) {
			if m[1] <= m[0] {
				// Zero-width match: no span, no claim. The regexp
				// package advances past empty matches itself.
				continue
			}

			if anyClaimed(claimed, m[0], m[1]) {
				continue
			}

			markClaimed(claimed, m[0], m[1])

			rs, re := m[0], m[1]

			if r.group > 0 {
				if 2*r.group+1 >= len(m) {
					continue
				}

				rs, re = m[2*r.group], m[2*r.group+1]

				// Absent or empty optional group: the match is
				// consumed but renders nothing.
				if rs < 0 || re <= rs {
					continue
				}
			}

			spans = append(spans, Span{Start: from + rs, End: from + re, Style: r.style})
		}
	}

	sort.Slice(spans, func(i, j int) bool {
		return spans[i].Start < spans[j].Start
	})

	return spans
}

func anyClaimed(claimed []bool, from, to int) bool {
	for i := from; i < to; i++ {
		if claimed[i] {
			return true
		}
	}

	return false
}

func markClaimed(claimed []bool, from, to int) {
	for i := from; i < to; i++ {
		claimed[i] = true
	}
}

// finishSpans sorts byte-offset spans, merges adjacent equal-style runs,
// and converts offsets to rune indexes.
func finishSpans(line string, spans []Span) []Span {
	if len(spans) == 0 {
		return nil
	}

	sort.Slice(spans, func(i, j int) bool {
		return spans[i].Start < spans[j].Start
	})

	merged := spans[:1]

	for _, sp := range spans[1:] {
		last := &merged[len(merged)-1]
		if sp.Start == last.End && sp.Style == last.Style {
			last.End = sp.End
			continue
		}

		merged = append(merged, sp)
	}

	runeAt := make(map[int]int, len(line)+1)

	ri := 0
	for bi := range line {
		runeAt[bi] = ri
		ri++
	}

	runeAt[len(line)] = ri

	for i := range merged {
		merged[i].Start = runeAt[merged[i].Start]
		merged[i].End = runeAt[merged[i].End]
	}

	return merged
}
