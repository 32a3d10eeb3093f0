package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"quill/interpreter-go/pkg/ast"
	"quill/interpreter-go/pkg/interpreter"
	"quill/interpreter-go/pkg/runtime"
)

// moduleFileSuffixes are tried in order when mapping a dotted module path to
// a file under a source root.
var moduleFileSuffixes = []string{".quill.yml", ".quill.yaml", ".quill.json"}

// Resolver maps dotted import paths to serialized module documents under a
// set of source roots, evaluates each module once, and hands back its global
// bindings as a module handle.
type Resolver struct {
	roots   []string
	opts    []interpreter.Option
	cache   map[string]*runtime.ModuleValue
	loading map[string]bool
}

// NewResolver builds a resolver over the given source roots. The options are
// applied to the interpreter that evaluates each resolved module.
func NewResolver(roots []string, opts ...interpreter.Option) *Resolver {
	return &Resolver{
		roots:   roots,
		opts:    opts,
		cache:   make(map[string]*runtime.ModuleValue),
		loading: make(map[string]bool),
	}
}

// ResolverForManifest covers the manifest's source roots plus the source
// roots of every fetched dependency under depsDir.
func ResolverForManifest(m *Manifest, depsDir string, opts ...interpreter.Option) *Resolver {
	roots := m.SourceRoots()
	for _, name := range m.GitDependencies() {
		roots = append(roots, filepath.Join(depsDir, name, "src"))
	}
	return NewResolver(roots, opts...)
}

// Resolve implements interpreter.ModuleResolver.
func (r *Resolver) Resolve(path string) (*runtime.ModuleValue, error) {
	if mod, ok := r.cache[path]; ok {
		return mod, nil
	}
	if r.loading[path] {
		return nil, runtime.NewError(runtime.ImportError, "import cycle through '%s'", path)
	}
	file, err := r.findModuleFile(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, runtime.NewError(runtime.ImportError, "read module '%s': %v", path, err)
	}
	doc, err := ast.DecodeModule(data)
	if err != nil {
		return nil, runtime.NewError(runtime.ImportError, "decode module '%s': %v", path, err)
	}

	r.loading[path] = true
	defer delete(r.loading, path)

	interp := interpreter.New(append([]interpreter.Option{interpreter.WithModuleResolver(r)}, r.opts...)...)
	if _, err := interp.Run(doc); err != nil {
		return nil, runtime.NewError(runtime.ImportError, "evaluate module '%s': %v", path, err)
	}
	mod := &runtime.ModuleValue{Name: path, Members: interp.GlobalEnvironment().Snapshot()}
	r.cache[path] = mod
	return mod, nil
}

func (r *Resolver) findModuleFile(path string) (string, error) {
	rel := filepath.Join(strings.Split(path, ".")...)
	for _, root := range r.roots {
		for _, suffix := range moduleFileSuffixes {
			candidate := filepath.Join(root, rel+suffix)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
	}
	return "", runtime.NewError(runtime.ImportError,
		"module '%s' not found under %s", path, strings.Join(r.roots, ", "))
}

// LoadModuleFile reads and decodes one serialized module document. The CLI
// uses it for the entry file, which does not go through import resolution.
func LoadModuleFile(path string) (*ast.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	doc, err := ast.DecodeModule(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return doc, nil
}
