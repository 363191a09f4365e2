package hlkit

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hlkit/hlkit/internal/format"
	"github.com/hlkit/hlkit/pkg/errors"
	"github.com/hlkit/hlkit/pkg/log"
)

// Color is a display color in "#rrggbb" form.
type Color string

var colorRE = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func parseColor(s string) (Color, error) {
	if !colorRE.MatchString(s) {
		return "", fmt.Errorf("%q: %w", s, errors.ErrPaletteResolution)
	}

	return Color(strings.ToLower(s)), nil
}

// Style is a resolved visual style for a span.
type Style struct {
	Color  Color
	Bold   bool
	Italic bool
}

// Span is a styled half-open rune range within one line.
type Span struct {
	Start int
	End   int
	Style Style
}

// Diagnostic records a rule or file problem that was isolated during
// loading rather than failing the whole definition.
type Diagnostic struct {
	Rule string
	Err  error
}

// defaultColor matches the original editor's fallback foreground.
const defaultColor Color = "#d4d4d4"

type lineRule struct {
	name  string
	re    *regexp.Regexp
	group int
	role  string
	style Style
}

type regionRule struct {
	name   string
	start  *regexp.Regexp
	end    *regexp.Regexp
	role   string
	style  *Style // nil when the role resolves against the nested palette
	nested string // nested language name, "" for none
}

// LanguageDefinition is one language's immutable rule set. Construct with
// [LoadDefinition]; safe for concurrent readers afterward.
type LanguageDefinition struct {
	name       string
	extensions []string
	palette    map[string]Color
	rules      []*lineRule
	regions    []*regionRule
	diags      []Diagnostic
	registry   *Registry
}

// Name returns the definition's display identifier.
func (d *LanguageDefinition) Name() string {
	return d.name
}

// Extensions returns the normalized file suffixes mapped to this
// definition (lowercase, no leading dot).
func (d *LanguageDefinition) Extensions() []string {
	return append([]string(nil), d.extensions...)
}

// Diagnostics returns the rules dropped while loading, with the reason
// each was dropped.
func (d *LanguageDefinition) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), d.diags...)
}

// PaletteColor resolves a color role against the definition's palette.
func (d *LanguageDefinition) PaletteColor(role string) (Color, bool) {
	c, ok := d.palette[role]
	return c, ok
}

// Wire schema for definition files. The same shape decodes from JSON,
// YAML, and TOML.
type defFile struct {
	Name           string            `json:"name" yaml:"name" toml:"name"`
	Extensions     []string          `json:"extensions" yaml:"extensions" toml:"extensions"`
	Colors         map[string]string `json:"colors" yaml:"colors" toml:"colors"`
	Rules          []defRule         `json:"rules" yaml:"rules" toml:"rules"`
	MultilineRules []defRegion       `json:"multiline_rules" yaml:"multiline_rules" toml:"multiline_rules"`
}

type defRule struct {
	Name            string `json:"name" yaml:"name" toml:"name"`
	Pattern         string `json:"pattern" yaml:"pattern" toml:"pattern"`
	Color           string `json:"color" yaml:"color" toml:"color"`
	Bold            bool   `json:"bold" yaml:"bold" toml:"bold"`
	Italic          bool   `json:"italic" yaml:"italic" toml:"italic"`
	CaseInsensitive bool   `json:"case_insensitive" yaml:"case_insensitive" toml:"case_insensitive"`
	Group           int    `json:"group" yaml:"group" toml:"group"`
}

type defRegion struct {
	Name           string `json:"name" yaml:"name" toml:"name"`
	Start          string `json:"start" yaml:"start" toml:"start"`
	End            string `json:"end" yaml:"end" toml:"end"`
	Color          string `json:"color" yaml:"color" toml:"color"`
	Bold           bool   `json:"bold" yaml:"bold" toml:"bold"`
	Italic         bool   `json:"italic" yaml:"italic" toml:"italic"`
	NestedLanguage string `json:"nested_language" yaml:"nested_language" toml:"nested_language"`
}

// LoadDefinition parses and validates one declarative language definition.
// formatName selects the codec ("json", "yaml", "yml", "toml").
//
// Structural problems (missing name, no extensions) fail the whole
// definition with [ErrDefinitionLoad]. Per-rule problems (pattern does not
// compile, unknown color role, zero-width region start) drop that one rule
// and record a [Diagnostic]; the rest of the definition still loads.
func LoadDefinition(data []byte, formatName string) (*LanguageDefinition, error) {
	ft, err := format.Get(formatName)
	if err != nil {
		return nil, err
	}

	df := defFile{}

	err = ft.Unmarshal(data, &df)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, errors.ErrDefinitionLoad)
	}

	if df.Name == "" {
		return nil, fmt.Errorf("missing name: %w", errors.ErrDefinitionLoad)
	}

	if len(df.Extensions) == 0 {
		return nil, fmt.Errorf("%s: no extensions: %w", df.Name, errors.ErrDefinitionLoad)
	}

	d := &LanguageDefinition{
		name:    df.Name,
		palette: map[string]Color{},
	}

	for _, ext := range df.Extensions {
		d.extensions = append(d.extensions, normalizeExt(ext))
	}

	for role, value := range df.Colors {
		c, err := parseColor(value)
		if err != nil {
			d.drop(role, err)
			continue
		}

		d.palette[role] = c
	}

	for _, dr := range df.Rules {
		r, err := d.compileLineRule(dr)
		if err != nil {
			d.drop(dr.Name, err)
			continue
		}

		d.rules = append(d.rules, r)
	}

	for _, dr := range df.MultilineRules {
		r, err := d.compileRegionRule(dr)
		if err != nil {
			d.drop(dr.Name, err)
			continue
		}

		d.regions = append(d.regions, r)
	}

	return d, nil
}

func (d *LanguageDefinition) drop(rule string, err error) {
	log.Debugf("%s: dropping rule %q: %v", d.name, rule, err)
	d.diags = append(d.diags, Diagnostic{Rule: rule, Err: err})
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
