package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hlkit/hlkit"
	"github.com/hlkit/hlkit/pkg/log"
	"github.com/hlkit/hlkit/pkg/version"
	"github.com/jessevdk/go-flags"
	"github.com/muesli/termenv"
)

type options struct {
	Language string          `short:"l" long:"language" description:"language name override (default: by file extension)"`
	Theme    *flags.Filename `short:"t" long:"theme" description:"palette override file (role=#rrggbb properties)"`
	DefsDir  *flags.Filename `short:"d" long:"defs" description:"directory of extra language definition files"`
	List     bool            `long:"list" description:"list supported languages and extensions"`
	Verbose  bool            `short:"v" long:"verbose" description:"enable verbose logging"`
	Version  bool            `short:"V" long:"version" description:"print version and exit"`

	Positional struct {
		InputPath *flags.Filename `positional-arg-name:"inputPath" required:"0" description:"source file path (default: stdin)"`
	} `positional-args:"yes"`
}

func main() {
	opts := &options{}

	fp := flags.NewParser(opts, flags.Default)
	fp.LongDescription = `
hlkit renders a source file to the terminal with syntax highlighting driven by declarative language definitions.

Definitions for common languages are built in; add or override them with --defs.`

	_, err := fp.Parse()
	if err != nil {
		os.Exit(1)
	}

	version.PrintVersion(opts.Version)

	if opts.Verbose {
		log.Debug = true
	}

	var defsDir string
	if opts.DefsDir != nil {
		defsDir = string(*opts.DefsDir)
	}

	registry, err := buildRegistry(defsDir)
	if err != nil {
		fatal(err)
	}

	for _, e := range registry.LoadErrors() {
		fmt.Fprintf(os.Stderr, "warning: %s\n", e)
	}

	for _, e := range registry.Validate() {
		fmt.Fprintf(os.Stderr, "warning: %s\n", e)
	}

	if opts.List {
		for _, name := range registry.Names() {
			def := registry.DefinitionForName(name)
			fmt.Printf("%s: .%s\n", name, strings.Join(def.Extensions(), " ."))
		}

		return
	}

	var (
		data []byte
		ext  string
	)

	if opts.Positional.InputPath == nil {
		data, err = io.ReadAll(os.Stdin)
	} else {
		path := string(*opts.Positional.InputPath)
		ext = filepath.Ext(path)
		data, err = os.ReadFile(path)
	}

	if err != nil {
		fatal(err)
	}

	def := registry.DefinitionForExtension(ext)

	if opts.Language != "" {
		def = registry.DefinitionForName(opts.Language)
		if def == nil {
			fatal(fmt.Errorf("unknown language %q", opts.Language))
		}
	}

	if def == nil {
		// Unknown extension: plain text passthrough.
		_, err = os.Stdout.Write(data)
		if err != nil {
			fatal(err)
		}

		return
	}

	if opts.Theme != nil {
		themeData, err := os.ReadFile(string(*opts.Theme))
		if err != nil {
			fatal(err)
		}

		theme, err := hlkit.LoadTheme(themeData)
		if err != nil {
			fatal(err)
		}

		def = def.WithTheme(theme)
	}

	output := termenv.NewOutput(os.Stdout)

	for _, line := range renderDocument(output, def, string(data)) {
		fmt.Fprintln(output, line)
	}
}

// buildRegistry returns the shared builtin registry, or, when defsDir is
// set, a fresh registry holding the builtin languages plus the extra
// directory's definitions, with the extras winning name and extension
// conflicts.
func buildRegistry(defsDir string) (*hlkit.Registry, error) {
	if defsDir == "" {
		return hlkit.Builtin(), nil
	}

	registry := hlkit.NewRegistry()

	if err := registry.LoadDir(hlkit.BuiltinFS(), "."); err != nil {
		return nil, err
	}

	if err := registry.LoadDirOverride(os.DirFS(defsDir), "."); err != nil {
		return nil, err
	}

	return registry, nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}
