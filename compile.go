package hlkit

import (
	"fmt"
	"regexp"

	"github.com/hlkit/hlkit/pkg/errors"
)

func compilePattern(pattern string, caseInsensitive bool) (*regexp.Regexp, error) {
	if caseInsensitive {
		pattern = "(?i)" + pattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%q: %v: %w", pattern, err, errors.ErrPatternCompile)
	}

	return re, nil
}

func (d *LanguageDefinition) resolveRole(role string) (Style, error) {
	c, found := d.palette[role]
	if !found {
		return Style{}, fmt.Errorf("%q: %w", role, errors.ErrPaletteResolution)
	}

	return Style{Color: c}, nil
}

func (d *LanguageDefinition) compileLineRule(dr defRule) (*lineRule, error) {
	re, err := compilePattern(dr.Pattern, dr.CaseInsensitive)
	if err != nil {
		return nil, err
	}

	style, err := d.resolveRole(dr.Color)
	if err != nil {
		return nil, err
	}

	style.Bold = dr.Bold
	style.Italic = dr.Italic

	return &lineRule{
		name:  dr.Name,
		re:    re,
		group: dr.Group,
		role:  dr.Color,
		style: style,
	}, nil
}

func (d *LanguageDefinition) compileRegionRule(dr defRegion) (*regionRule, error) {
	start, err := compilePattern(dr.Start, false)
	if err != nil {
		return nil, err
	}

	// A zero-width start would reopen the region at the same position
	// forever.
	if start.MatchString("") {
		return nil, fmt.Errorf("%q: %w", dr.Start, errors.ErrZeroWidthRegion)
	}

	end, err := compilePattern(dr.End, false)
	if err != nil {
		return nil, err
	}

	r := &regionRule{
		name:   dr.Name,
		start:  start,
		end:    end,
		role:   dr.Color,
		nested: dr.NestedLanguage,
	}

	style, err := d.resolveRole(dr.Color)
	if err == nil {
		style.Bold = dr.Bold
		style.Italic = dr.Italic
		r.style = &style

		return r, nil
	}

	// Roles used by delegating regions may live in the nested
	// definition's palette instead; resolution happens at tokenize time.
	if r.nested == "" {
		return nil, err
	}

	return r, nil
}
