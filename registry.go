package hlkit

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/hlkit/hlkit/internal/format"
	"github.com/hlkit/hlkit/pkg/errors"
	"github.com/hlkit/hlkit/pkg/log"
)

// Registry maps language names and file extensions to loaded definitions.
// Build it once at startup; it is read-only afterward and safe for
// concurrent readers.
type Registry struct {
	byName   map[string]*LanguageDefinition
	byExt    map[string]*LanguageDefinition
	loadErrs []error
}

func NewRegistry() *Registry {
	return &Registry{
		byName: map[string]*LanguageDefinition{},
		byExt:  map[string]*LanguageDefinition{},
	}
}

// Add registers a definition. Name and extension collisions are
// configuration errors; nothing is registered on failure. A definition
// belongs to exactly one registry: nested-language lookups resolve
// through it, so adding an already-registered definition to a second
// registry is rejected rather than silently rebinding them.
func (r *Registry) Add(d *LanguageDefinition) error {
	if err := r.checkOwnership(d); err != nil {
		return err
	}

	if _, found := r.byName[d.name]; found {
		return fmt.Errorf("%s: duplicate language name: %w", d.name, errors.ErrDefinitionLoad)
	}

	for _, ext := range d.extensions {
		if prev, found := r.byExt[ext]; found {
			return fmt.Errorf("%s: .%s already mapped to %s: %w", d.name, ext, prev.name, errors.ErrExtensionConflict)
		}
	}

	r.byName[d.name] = d

	for _, ext := range d.extensions {
		r.byExt[ext] = d
	}

	d.registry = r

	return nil
}

// Override registers a definition, replacing any existing definition
// with the same name and taking over any conflicting extension mappings.
// The same single-registry ownership rule as [Registry.Add] applies.
func (r *Registry) Override(d *LanguageDefinition) error {
	if err := r.checkOwnership(d); err != nil {
		return err
	}

	if prev, found := r.byName[d.name]; found {
		delete(r.byName, prev.name)

		for _, ext := range prev.extensions {
			if r.byExt[ext] == prev {
				delete(r.byExt, ext)
			}
		}
	}

	r.byName[d.name] = d

	for _, ext := range d.extensions {
		r.byExt[ext] = d
	}

	d.registry = r

	return nil
}

func (r *Registry) checkOwnership(d *LanguageDefinition) error {
	if d.registry != nil && d.registry != r {
		return fmt.Errorf("%s: definition already belongs to another registry: %w", d.name, errors.ErrDefinitionLoad)
	}

	return nil
}

// DefinitionForExtension returns the definition mapped to a file suffix,
// or nil when none is: unknown extensions mean plain text, not an error.
// Accepts ".py", "py", or "PY".
func (r *Registry) DefinitionForExtension(ext string) *LanguageDefinition {
	return r.byExt[normalizeExt(ext)]
}

// DefinitionForName returns the definition with the given display name,
// or nil.
func (r *Registry) DefinitionForName(name string) *LanguageDefinition {
	return r.byName[name]
}

// Names returns the registered language names, sorted.
func (r *Registry) Names() []string {
	ret := make([]string, 0, len(r.byName))
	for name := range r.byName {
		ret = append(ret, name)
	}

	sort.Strings(ret)

	return ret
}

// Extensions returns all mapped extensions, sorted.
func (r *Registry) Extensions() []string {
	ret := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		ret = append(ret, ext)
	}

	sort.Strings(ret)

	return ret
}

// Validate reports region rules whose nested language is not registered.
// Such regions still tokenize (they degrade to their flat style), so these
// are warnings, not load failures; call after the last Add.
func (r *Registry) Validate() []error {
	var ret []error

	for _, name := range r.Names() {
		d := r.byName[name]

		for _, region := range d.regions {
			if region.nested == "" {
				continue
			}

			if _, found := r.byName[region.nested]; !found {
				ret = append(ret, fmt.Errorf("%s: region %q: %q: %w", d.name, region.name, region.nested, errors.ErrNestedLanguage))
			}
		}
	}

	return ret
}

// LoadErrors returns the per-file failures collected by [Registry.LoadDir].
func (r *Registry) LoadErrors() []error {
	return append([]error(nil), r.loadErrs...)
}

// LoadDir loads every definition file in dir, selecting the codec by file
// extension. A broken file makes that one language unavailable and is
// collected in [Registry.LoadErrors]; other files still load.
func (r *Registry) LoadDir(fsys fs.FS, dir string) error {
	return r.loadDir(fsys, dir, r.Add)
}

// LoadDirOverride is [Registry.LoadDir] with replace semantics: loaded
// definitions take precedence over whatever is already registered.
func (r *Registry) LoadDirOverride(fsys fs.FS, dir string) error {
	return r.loadDir(fsys, dir, r.Override)
}

func (r *Registry) loadDir(fsys fs.FS, dir string, add func(*LanguageDefinition) error) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("%s: %v: %w", dir, err, errors.ErrDefinitionLoad)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()

		ext := strings.TrimPrefix(path.Ext(name), ".")
		if _, err := format.Get(ext); err != nil {
			continue
		}

		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			r.collect(fmt.Errorf("%s: %v: %w", name, err, errors.ErrDefinitionLoad))
			continue
		}

		d, err := LoadDefinition(data, ext)
		if err != nil {
			r.collect(fmt.Errorf("%s: %w", name, err))
			continue
		}

		if err := add(d); err != nil {
			r.collect(fmt.Errorf("%s: %w", name, err))
		}
	}

	return nil
}

func (r *Registry) collect(err error) {
	log.Debugf("%v", err)
	r.loadErrs = append(r.loadErrs, err)
}

//go:embed langdefs/*.json
var builtinDefs embed.FS

// BuiltinFS returns the embedded definition files, rooted at the
// directory containing them. Use it to load the builtin languages into a
// caller-owned [Registry]; the shared [Builtin] registry stays untouched.
func BuiltinFS() fs.FS {
	sub, err := fs.Sub(builtinDefs, "langdefs")
	if err != nil {
		panic(err)
	}

	return sub
}

var (
	builtinOnce     sync.Once
	builtinRegistry *Registry
)

// Builtin returns the registry of embedded language definitions, built on
// first use.
func Builtin() *Registry {
	builtinOnce.Do(func() {
		builtinRegistry = NewRegistry()

		err := builtinRegistry.LoadDir(builtinDefs, "langdefs")
		if err != nil {
			// Embedded directory always exists; ReadDir cannot fail.
			panic(err)
		}
	})

	return builtinRegistry
}
