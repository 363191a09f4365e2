// Package format decodes language-definition sources by file format.
package format

import (
	"encoding/json"
	"fmt"

	"github.com/hlkit/hlkit/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format handles unmarshaling for a specific definition file format.
// Definitions are input-only; there is no encode side.
type Format struct {
	Unmarshal func([]byte, any) error
}

var formatByExtension = map[string]Format{
	"json": {
		Unmarshal: json.Unmarshal,
	},
	"toml": {
		Unmarshal: toml.Unmarshal,
	},
	"yaml": {
		Unmarshal: yaml.Unmarshal,
	},
	"yml": {
		Unmarshal: yaml.Unmarshal,
	},
}

// Get retrieves a format by name from the registry
func Get(name string) (*Format, error) {
	ft, found := formatByExtension[name]
	if !found {
		return nil, fmt.Errorf("%s: %w", name, errors.ErrUnknownFormat)
	}

	return &ft, nil
}

// Names returns the registered format names.
func Names() []string {
	ret := make([]string, 0, len(formatByExtension))
	for name := range formatByExtension {
		ret = append(ret, name)
	}

	return ret
}
