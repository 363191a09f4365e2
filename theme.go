package hlkit

import (
	"fmt"

	"github.com/hlkit/hlkit/pkg/errors"
	"github.com/magiconair/properties"
)

// Theme is a set of palette overrides, mapping color roles to replacement
// colors. Themes let one rule file serve multiple editor color schemes.
type Theme map[string]Color

// LoadTheme parses a flat properties source ("keyword=#569cd6", one role
// per line) into a Theme.
func LoadTheme(data []byte) (Theme, error) {
	p, err := properties.Load(data, properties.UTF8)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, errors.ErrThemeLoad)
	}

	t := Theme{}

	for _, role := range p.Keys() {
		value, _ := p.Get(role)

		c, err := parseColor(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %q: %w", role, value, errors.ErrThemeLoad)
		}

		t[role] = c
	}

	return t, nil
}

// WithTheme returns a derived definition whose palette roles are
// overridden by the theme, with every rule's style re-resolved. Roles the
// definition does not use are ignored. The receiver is unchanged.
func (d *LanguageDefinition) WithTheme(t Theme) *LanguageDefinition {
	nd := &LanguageDefinition{
		name:       d.name,
		extensions: d.extensions,
		palette:    make(map[string]Color, len(d.palette)),
		diags:      d.diags,
		registry:   d.registry,
	}

	for role, c := range d.palette {
		nd.palette[role] = c
	}

	for role, c := range t {
		if _, found := nd.palette[role]; found {
			nd.palette[role] = c
		}
	}

	nd.rules = make([]*lineRule, len(d.rules))

	for i, r := range d.rules {
		nr := *r
		nr.style.Color = nd.palette[r.role]
		nd.rules[i] = &nr
	}

	nd.regions = make([]*regionRule, len(d.regions))

	for i, r := range d.regions {
		nr := *r

		if r.style != nil {
			style := *r.style
			style.Color = nd.palette[r.role]
			nr.style = &style
		}

		nd.regions[i] = &nr
	}

	return nd
}
