// Package hlkit implements a declarative syntax-highlighting rule engine.
//
// Languages are described by definition files (JSON, YAML, or TOML) that
// list a color palette, ordered single-line regex rules, and ordered
// multiline region rules. Definitions load into an immutable [Registry];
// tokenizing a line produces sorted, non-overlapping [Span] values for an
// editor surface to render.
package hlkit

import (
	"strings"

	"github.com/hlkit/hlkit/pkg/errors"
)

// Error taxonomy, re-exported from pkg/errors so callers can match
// sentinels without a second import.
var (
	Err                  = errors.Err
	ErrDefinitionLoad    = errors.ErrDefinitionLoad
	ErrExtensionConflict = errors.ErrExtensionConflict
	ErrUnknownFormat     = errors.ErrUnknownFormat
	ErrPatternCompile    = errors.ErrPatternCompile
	ErrPaletteResolution = errors.ErrPaletteResolution
	ErrZeroWidthRegion   = errors.ErrZeroWidthRegion
	ErrNestedLanguage    = errors.ErrNestedLanguage
	ErrThemeLoad         = errors.ErrThemeLoad
	ErrInvalidLine       = errors.ErrInvalidLine
)

// Highlight tokenizes a whole document with no prior region state and
// returns one span list per line. Line separators are "\n"; a trailing
// "\r" is left in place and styled like any other character.
func (d *LanguageDefinition) Highlight(text string) [][]Span {
	lines := strings.Split(text, "\n")
	ret := make([][]Span, len(lines))

	st := RegionState{}
	for i, line := range lines {
		ret[i], st = d.TokenizeLine(line, st)
	}

	return ret
}
