package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hlkit/hlkit"
	"github.com/stretchr/testify/require"
)

func TestBuildRegistryKeepsBuiltinsWithExtraDefs(t *testing.T) {
	dir := t.TempDir()

	custom := `{
	  "name": "python",
	  "extensions": [".py"],
	  "colors": {"keyword": "#ff0000"},
	  "rules": [{"name": "kw", "pattern": "\\bdef\\b", "color": "keyword"}]
	}`

	require.NoError(t, os.WriteFile(filepath.Join(dir, "python.json"), []byte(custom), 0o644))

	registry, err := buildRegistry(dir)
	require.NoError(t, err)
	require.Empty(t, registry.LoadErrors())

	// The builtin languages survive alongside the extra directory.
	require.Equal(t, "java", registry.DefinitionForExtension(".java").Name())

	// The extra definition overrides the builtin for its extension.
	c, _ := registry.DefinitionForExtension(".py").PaletteColor("keyword")
	require.Equal(t, hlkit.Color("#ff0000"), c)
}

func TestBuildRegistryWithoutExtraDefs(t *testing.T) {
	registry, err := buildRegistry("")
	require.NoError(t, err)

	// The shared builtin registry is used untouched.
	require.Same(t, hlkit.Builtin(), registry)

	c, _ := registry.DefinitionForExtension(".py").PaletteColor("keyword")
	require.Equal(t, hlkit.Color("#569cd6"), c)
}
