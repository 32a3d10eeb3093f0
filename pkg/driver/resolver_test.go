package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quill/interpreter-go/pkg/ast"
	"quill/interpreter-go/pkg/interpreter"
	"quill/interpreter-go/pkg/runtime"
)

const mathutilDoc = `
type: Module
body:
  - type: AssignmentExpression
    operator: ":="
    left: {type: Identifier, name: answer}
    right: {type: NumberLiteral, value: 42}
  - type: FunctionDefinition
    id: {type: Identifier, name: double}
    params:
      - {type: Identifier, name: x}
    body:
      type: BlockExpression
      body:
        - type: ReturnStatement
          argument:
            type: BinaryExpression
            operator: "*"
            left: {type: Identifier, name: x}
            right: {type: NumberLiteral, value: 2}
`

func writeModuleFile(t *testing.T, root, rel, contents string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write module: %v", err)
	}
}

func TestResolverEvaluatesModule(t *testing.T) {
	root := t.TempDir()
	writeModuleFile(t, root, "mathutil.quill.yml", mathutilDoc)

	r := NewResolver([]string{root})
	mod, err := r.Resolve("mathutil")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if mod.Name != "mathutil" {
		t.Fatalf("unexpected module name %q", mod.Name)
	}
	answer, ok := mod.Members["answer"].(runtime.NumberValue)
	if !ok || answer.Val != 42 {
		t.Fatalf("expected answer 42, got %#v", mod.Members["answer"])
	}
	if _, ok := mod.Members["double"].(*runtime.FunctionValue); !ok {
		t.Fatalf("expected double to be a function, got %#v", mod.Members["double"])
	}
}

func TestResolverCachesModules(t *testing.T) {
	root := t.TempDir()
	writeModuleFile(t, root, "mathutil.quill.yml", mathutilDoc)

	r := NewResolver([]string{root})
	first, err := r.Resolve("mathutil")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	// Removing the file proves the second resolve never touches disk.
	if err := os.Remove(filepath.Join(root, "mathutil.quill.yml")); err != nil {
		t.Fatalf("remove: %v", err)
	}
	second, err := r.Resolve("mathutil")
	if err != nil {
		t.Fatalf("cached resolve failed: %v", err)
	}
	if first != second {
		t.Fatalf("expected cached module handle")
	}
}

func TestResolverDottedPathMapsToSubdirectory(t *testing.T) {
	root := t.TempDir()
	writeModuleFile(t, root, filepath.Join("geo", "shapes.quill.yml"), mathutilDoc)

	r := NewResolver([]string{root})
	mod, err := r.Resolve("geo.shapes")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if mod.Name != "geo.shapes" {
		t.Fatalf("unexpected module name %q", mod.Name)
	}
}

func TestResolverNotFound(t *testing.T) {
	r := NewResolver([]string{t.TempDir()})
	_, err := r.Resolve("ghost")
	rerr, ok := err.(*runtime.Error)
	if !ok || rerr.ErrKind != runtime.ImportError {
		t.Fatalf("expected ImportError, got %v", err)
	}
	if !strings.Contains(rerr.Message, "ghost") {
		t.Fatalf("error should name the module: %v", rerr)
	}
}

func TestResolverDetectsImportCycle(t *testing.T) {
	root := t.TempDir()
	writeModuleFile(t, root, "loop.quill.yml", `
type: Module
body:
  - type: ImportStatement
    path:
      - {type: Identifier, name: loop}
`)

	r := NewResolver([]string{root})
	_, err := r.Resolve("loop")
	if err == nil || !strings.Contains(err.Error(), "cycle") {
		t.Fatalf("expected import cycle error, got %v", err)
	}
}

func TestResolverThroughInterpreter(t *testing.T) {
	root := t.TempDir()
	writeModuleFile(t, root, "mathutil.quill.yml", mathutilDoc)

	r := NewResolver([]string{root})
	interp := interpreter.New(interpreter.WithModuleResolver(r))
	out, err := interp.Run(ast.Mod(
		ast.Import("mathutil"),
		ast.CallExpr(ast.Member(ast.ID("mathutil"), "double"), ast.Int(21)),
	))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	num, ok := out.(runtime.NumberValue)
	if !ok || num.Val != 42 {
		t.Fatalf("expected 42, got %#v", out)
	}
}

func TestResolverForManifestIncludesDependencyRoots(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
name: app
dependencies:
  shapes: {git: https://example.com/shapes.git}
`)
	m, err := LoadManifestDir(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	depsDir := filepath.Join(dir, ".quill", "deps")
	writeModuleFile(t, filepath.Join(depsDir, "shapes", "src"), "shapes.quill.yml", mathutilDoc)

	r := ResolverForManifest(m, depsDir)
	if _, err := r.Resolve("shapes"); err != nil {
		t.Fatalf("resolve through dependency root failed: %v", err)
	}
}

func TestLoadModuleFile(t *testing.T) {
	root := t.TempDir()
	writeModuleFile(t, root, "entry.quill.yml", mathutilDoc)
	mod, err := LoadModuleFile(filepath.Join(root, "entry.quill.yml"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(mod.Body) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(mod.Body))
	}

	if _, err := LoadModuleFile(filepath.Join(root, "missing.quill.yml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
