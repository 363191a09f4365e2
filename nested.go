package hlkit

import "github.com/hlkit/hlkit/pkg/log"

// nestedFor resolves a region rule's nested language against the registry
// this definition was added to. Returns nil when the rule does not
// delegate, the definition is unregistered, or the name is unknown.
func (d *LanguageDefinition) nestedFor(r *regionRule) *LanguageDefinition {
	if r.nested == "" || d.registry == nil {
		return nil
	}

	nested := d.registry.DefinitionForName(r.nested)
	if nested == nil {
		log.Debugf("%s: region %q: nested language %q not registered", d.name, r.name, r.nested)
	}

	return nested
}

// regionStyle resolves the style for a region's own text (delimiters and
// non-delegated interiors). Delegating regions may name a role that only
// the nested definition's palette defines.
func (d *LanguageDefinition) regionStyle(r *regionRule) Style {
	if r.style != nil {
		return *r.style
	}

	if nested := d.nestedFor(r); nested != nil {
		if c, found := nested.palette[r.role]; found {
			return Style{Color: c}
		}
	}

	return Style{Color: defaultColor}
}

// regionInterior styles line[from:to], the part of a line inside an open
// region. Delegating regions hand the interior to the nested language's
// own rules and region tracking; the returned state is the nested
// language's own region state at end of interior. Missing nested languages
// degrade to the region's flat style.
func (d *LanguageDefinition) regionInterior(r *regionRule, line string, from, to int, sub *RegionState) ([]Span, *RegionState) {
	if from >= to {
		return nil, sub
	}

	nested := d.nestedFor(r)
	if nested == nil {
		return []Span{{Start: from, End: to, Style: d.regionStyle(r)}}, nil
	}

	st := RegionState{}
	if sub != nil {
		st = *sub
	}

	inner, out := nested.tokenizeBytes(line[from:to], st)

	for i := range inner {
		inner[i].Start += from
		inner[i].End += from
	}

	return inner, &out
}
