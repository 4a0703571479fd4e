package jsruntime

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/grafana/sobek"
)

// BuiltinPrefix marks specifiers served from modules embedded in the binary.
const BuiltinPrefix = "builtin:"

var builtinModules = map[string]string{
	"lit": litStub,
}

// defaultAliases apply when no configured alias matches a bare specifier.
var defaultAliases = map[string]string{
	"lit":                        BuiltinPrefix + "lit",
	"lit/decorators.js":          BuiltinPrefix + "lit",
	"lit-element":                BuiltinPrefix + "lit",
	"lit-element/lit-element.js": BuiltinPrefix + "lit",
}

// resolver maps import specifiers to module records. Records are cached by
// their resolved key so every importer of a module shares one instance.
type resolver struct {
	aliases map[string]string
	cache   map[string]*sobek.SourceTextModuleRecord
	keys    map[sobek.ModuleRecord]string
}

func newResolver(aliases map[string]string) *resolver {
	return &resolver{
		aliases: aliases,
		cache:   make(map[string]*sobek.SourceTextModuleRecord),
		keys:    make(map[sobek.ModuleRecord]string),
	}
}

// resolve implements sobek.HostResolveImportedModuleFunc.
func (r *resolver) resolve(referrer interface{}, specifier string) (sobek.ModuleRecord, error) {
	var base string
	if rec, ok := referrer.(sobek.ModuleRecord); ok {
		base = r.keys[rec]
	}

	key, err := r.locate(base, specifier)
	if err != nil {
		return nil, err
	}
	return r.load(key)
}

// locate turns a specifier into a cache key: an absolute path or a builtin name.
func (r *resolver) locate(base, specifier string) (string, error) {
	target, ok := r.aliases[specifier]
	if !ok {
		target, ok = defaultAliases[specifier]
	}
	if ok {
		if strings.HasPrefix(target, BuiltinPrefix) {
			return checkBuiltin(target)
		}
		return filepath.Abs(target)
	}

	switch {
	case strings.HasPrefix(specifier, BuiltinPrefix):
		return checkBuiltin(specifier)
	case isRemote(specifier):
		return "", fmt.Errorf("remote module %q has no alias; map it to a local file", specifier)
	case filepath.IsAbs(specifier):
		return filepath.Clean(specifier), nil
	case strings.HasPrefix(specifier, "./"), strings.HasPrefix(specifier, "../"):
		dir := "."
		if base != "" && !strings.HasPrefix(base, BuiltinPrefix) {
			dir = filepath.Dir(base)
		}
		return filepath.Abs(filepath.Join(dir, specifier))
	default:
		return "", fmt.Errorf("cannot resolve module %q; add an alias for it", specifier)
	}
}

// load parses the module behind key, reusing an earlier parse.
func (r *resolver) load(key string) (*sobek.SourceTextModuleRecord, error) {
	if m, ok := r.cache[key]; ok {
		return m, nil
	}

	var src string
	if name, ok := strings.CutPrefix(key, BuiltinPrefix); ok {
		src = builtinModules[name]
	} else {
		data, err := os.ReadFile(key)
		if err != nil {
			return nil, fmt.Errorf("read module: %w", err)
		}
		src = string(data)
	}

	m, err := sobek.ParseModule(key, src, r.resolve)
	if err != nil {
		return nil, fmt.Errorf("parse module %s: %w", key, err)
	}
	r.cache[key] = m
	r.keys[m] = key
	return m, nil
}

func checkBuiltin(specifier string) (string, error) {
	name := strings.TrimPrefix(specifier, BuiltinPrefix)
	if _, ok := builtinModules[name]; !ok {
		return "", fmt.Errorf("unknown builtin module %q", specifier)
	}
	return specifier, nil
}

func isRemote(specifier string) bool {
	return strings.HasPrefix(specifier, "http://") ||
		strings.HasPrefix(specifier, "https://") ||
		strings.HasPrefix(specifier, "//")
}
