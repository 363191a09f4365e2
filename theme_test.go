package hlkit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadTheme(t *testing.T) {
	theme, err := LoadTheme([]byte("keyword=#FF0000\ncomment = #00ff00\n"))
	require.NoError(t, err)
	require.Equal(t, Theme{
		"keyword": "#ff0000",
		"comment": "#00ff00",
	}, theme)
}

func TestLoadThemeInvalidColor(t *testing.T) {
	_, err := LoadTheme([]byte("keyword=red\n"))
	require.ErrorIs(t, err, ErrThemeLoad)
}

func TestWithTheme(t *testing.T) {
	def := loadTestDef(t)

	theme, err := LoadTheme([]byte("keyword=#112233\nnosuchrole=#445566\n"))
	require.NoError(t, err)

	themed := def.WithTheme(theme)

	spans, _ := themed.TokenizeLine("var x", RegionState{})
	require.Equal(t, Color("#112233"), spans[0].Style.Color)
	require.True(t, spans[0].Style.Bold)

	// Roles the definition does not use are ignored.
	_, found := themed.PaletteColor("nosuchrole")
	require.False(t, found)

	// The original definition is untouched.
	spans, _ = def.TokenizeLine("var x", RegionState{})
	require.Equal(t, Color("#569cd6"), spans[0].Style.Color)
}

func TestWithThemeRestylesRegions(t *testing.T) {
	def := loadTestDef(t)

	theme, err := LoadTheme([]byte("comment=#999999\n"))
	require.NoError(t, err)

	themed := def.WithTheme(theme)

	spans, st := themed.TokenizeLine("/* note */", RegionState{})
	require.False(t, st.InRegion())
	require.Equal(t, []Span{
		{Start: 0, End: 10, Style: Style{Color: "#999999"}},
	}, spans)
}
