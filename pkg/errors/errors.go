// Package errors defines the hlkit error taxonomy.
//
// Every error is wrapped from the base [Err], so callers can match the
// whole family with errors.Is(err, hlkiterrors.Err) or a specific member.
package errors

import "fmt"

var (
	// Base error; every error in hlkit inherits from this
	Err = fmt.Errorf("hlkit error")

	// Definition-scoped errors: the whole language fails to load
	ErrDefinitionLoad    = fmt.Errorf("invalid language definition (%w)", Err)
	ErrExtensionConflict = fmt.Errorf("extension mapped by multiple definitions (%w)", Err)
	ErrUnknownFormat     = fmt.Errorf("unknown definition format (%w)", Err)

	// Rule-scoped errors: the rule is dropped, the definition still loads
	ErrPatternCompile    = fmt.Errorf("pattern does not compile (%w)", Err)
	ErrPaletteResolution = fmt.Errorf("color role not in palette (%w)", Err)
	ErrZeroWidthRegion   = fmt.Errorf("region start pattern matches empty text (%w)", Err)

	// Recorded as diagnostics only; tokenizing degrades instead of failing
	ErrNestedLanguage = fmt.Errorf("nested language not registered (%w)", Err)

	// Theme errors
	ErrThemeLoad = fmt.Errorf("invalid theme (%w)", Err)

	// Session errors
	ErrInvalidLine = fmt.Errorf("line index out of range (%w)", Err)
)
