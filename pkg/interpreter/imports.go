package interpreter

import (
	"strings"

	"quill/interpreter-go/pkg/ast"
	"quill/interpreter-go/pkg/runtime"
)

func importPath(segments []*ast.Identifier) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		parts = append(parts, seg.Name)
	}
	return strings.Join(parts, ".")
}

// evaluateImportStatement resolves the module, registers its handle in the
// module table, and binds it in the current scope under the alias or the
// path's last segment. Repeat imports of the same path reuse the cached
// handle instead of resolving again.
func (i *Interpreter) evaluateImportStatement(stmt *ast.ImportStatement, env *runtime.Environment) (runtime.Value, error) {
	if len(stmt.Path) == 0 {
		return nil, raise(runtime.NewError(runtime.ImportError, "empty import path").At(stmt.Position()))
	}
	path := importPath(stmt.Path)
	mod, ok := i.modules[path]
	if !ok {
		if i.resolver == nil {
			return nil, raise(runtime.NewError(runtime.ImportError,
				"no module resolver configured, cannot import '%s'", path).At(stmt.Position()))
		}
		resolved, err := i.resolver.Resolve(path)
		if err != nil {
			if rerr, isRuntime := err.(*runtime.Error); isRuntime {
				return nil, raise(rerr.At(stmt.Position()))
			}
			return nil, raise(runtime.NewError(runtime.ImportError,
				"cannot import '%s': %v", path, err).At(stmt.Position()))
		}
		mod = resolved
		if mod.Name == "" {
			mod.Name = path
		}
		i.modules[path] = mod
	}
	binding := stmt.Path[len(stmt.Path)-1].Name
	if stmt.Alias != nil {
		binding = stmt.Alias.Name
	}
	env.Define(binding, mod)
	return runtime.NilValue{}, nil
}
