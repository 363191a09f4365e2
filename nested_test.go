package hlkit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNestedScriptDelegation(t *testing.T) {
	html := Builtin().DefinitionForName("html")
	require.NotNil(t, html)

	js := Builtin().DefinitionForName("javascript")
	require.NotNil(t, js)

	spans, st := html.TokenizeLine("<script>var x = 1;</script>", RegionState{})
	require.False(t, st.InRegion())

	tag, _ := html.PaletteColor("tag")
	keyword, _ := js.PaletteColor("keyword")
	number, _ := js.PaletteColor("number")

	require.Equal(t, []Span{
		{Start: 0, End: 8, Style: Style{Color: tag}},
		{Start: 8, End: 11, Style: Style{Color: keyword, Bold: true}},
		{Start: 16, End: 17, Style: Style{Color: number}},
		{Start: 18, End: 27, Style: Style{Color: tag}},
	}, spans)
}

func TestNestedStateCarriesAcrossLines(t *testing.T) {
	html := Builtin().DefinitionForName("html")
	js := Builtin().DefinitionForName("javascript")

	lines := []string{
		"<script>",
		"/* js comment",
		"still comment */ var y;",
		"</script>",
	}

	states := html.ComputeLineStates(lines)
	require.True(t, states[1].InRegion())
	require.True(t, states[2].InRegion())
	require.True(t, states[3].InRegion())

	// Line 2 starts inside a JS block comment nested inside the script
	// region; the comment style comes from the JS palette.
	spans, _ := html.TokenizeLine(lines[2], states[2])

	comment, _ := js.PaletteColor("comment")
	keyword, _ := js.PaletteColor("keyword")

	require.Equal(t, []Span{
		{Start: 0, End: 16, Style: Style{Color: comment}},
		{Start: 17, End: 20, Style: Style{Color: keyword, Bold: true}},
	}, spans)
}

func TestNestedLanguageMissingFallsBackFlat(t *testing.T) {
	src := `{
	  "name": "outer",
	  "extensions": [".out"],
	  "colors": {"block": "#112233"},
	  "rules": [],
	  "multiline_rules": [
	    {"name": "embed", "start": "<<", "end": ">>", "color": "block", "nested_language": "no-such-language"}
	  ]
	}`

	def, err := LoadDefinition([]byte(src), "json")
	require.NoError(t, err)

	r := NewRegistry()
	require.NoError(t, r.Add(def))

	spans, st := def.TokenizeLine("<<var x = 1>>", RegionState{})
	require.False(t, st.InRegion())
	require.Equal(t, []Span{
		{Start: 0, End: 13, Style: Style{Color: "#112233"}},
	}, spans)
}

func TestNestedRoleResolvesAgainstNestedPalette(t *testing.T) {
	// The region's color role only exists in the nested definition's
	// palette; delimiters take that color.
	inner := `{
	  "name": "inner",
	  "extensions": [".in"],
	  "colors": {"special": "#aabbcc"},
	  "rules": [],
	  "multiline_rules": []
	}`

	outer := `{
	  "name": "outer2",
	  "extensions": [".ou2"],
	  "colors": {},
	  "rules": [],
	  "multiline_rules": [
	    {"name": "embed", "start": "<<", "end": ">>", "color": "special", "nested_language": "inner"}
	  ]
	}`

	r := NewRegistry()

	innerDef, err := LoadDefinition([]byte(inner), "json")
	require.NoError(t, err)
	require.NoError(t, r.Add(innerDef))

	outerDef, err := LoadDefinition([]byte(outer), "json")
	require.NoError(t, err)
	require.NoError(t, r.Add(outerDef))

	spans, _ := outerDef.TokenizeLine("<<abc>>", RegionState{})
	require.Equal(t, []Span{
		{Start: 0, End: 2, Style: Style{Color: "#aabbcc"}},
		{Start: 5, End: 7, Style: Style{Color: "#aabbcc"}},
	}, spans)
}
