package hlkit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegionPropagation(t *testing.T) {
	def := loadTestDef(t)

	lines := []string{"/* start", "middle", "end */ code"}

	comment := style(def, "comment", false, false)

	states := def.ComputeLineStates(lines)
	require.Len(t, states, 3)
	require.False(t, states[0].InRegion())
	require.True(t, states[1].InRegion())
	require.Equal(t, "block-comment", states[1].RegionName())
	require.True(t, states[2].InRegion())

	// Line 0: unterminated open, the whole tail is one comment span.
	spans, st := def.TokenizeLine(lines[0], states[0])
	require.Equal(t, []Span{{Start: 0, End: 8, Style: comment}}, spans)
	require.True(t, st.InRegion())

	// Line 1: entirely inside the region.
	spans, st = def.TokenizeLine(lines[1], states[1])
	require.Equal(t, []Span{{Start: 0, End: 6, Style: comment}}, spans)
	require.True(t, st.InRegion())

	// Line 2: comment up to and including "*/", normal rules afterward.
	spans, st = def.TokenizeLine(lines[2], states[2])
	require.Equal(t, []Span{
		{Start: 0, End: 6, Style: comment},
		{Start: 7, End: 11, Style: style(def, "function", false, false)},
	}, spans)
	require.False(t, st.InRegion())
}

func TestRegionOpensAndClosesOnOneLine(t *testing.T) {
	def := loadTestDef(t)

	spans, st := def.TokenizeLine("var /* x */ 1", RegionState{})
	require.False(t, st.InRegion())
	require.Equal(t, []Span{
		{Start: 0, End: 3, Style: style(def, "keyword", true, false)},
		{Start: 4, End: 11, Style: style(def, "comment", false, false)},
		{Start: 12, End: 13, Style: style(def, "number", false, false)},
	}, spans)
}

func TestRegionReopensAfterClose(t *testing.T) {
	def := loadTestDef(t)

	// The residual text after a close may open a new region.
	spans, st := def.TokenizeLine("/* a */ x /*", RegionState{})
	require.True(t, st.InRegion())
	require.Equal(t, []Span{
		{Start: 0, End: 7, Style: style(def, "comment", false, false)},
		{Start: 8, End: 9, Style: style(def, "function", false, false)},
		{Start: 10, End: 12, Style: style(def, "comment", false, false)},
	}, spans)
}

func TestRegionStateEqual(t *testing.T) {
	def := loadTestDef(t)

	_, open := def.TokenizeLine("/*", RegionState{})
	_, open2 := def.TokenizeLine("/* other", RegionState{})
	_, closed := def.TokenizeLine("/* done */", RegionState{})

	require.True(t, open.Equal(open2))
	require.False(t, open.Equal(closed))
	require.True(t, closed.Equal(RegionState{}))
}

func TestComputeLineStatesEmptyDocument(t *testing.T) {
	def := loadTestDef(t)

	require.Empty(t, def.ComputeLineStates(nil))
}
