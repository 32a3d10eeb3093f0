package interpreter

import (
	"fmt"

	"quill/interpreter-go/pkg/ast"
	"quill/interpreter-go/pkg/runtime"
)

// defaultLoopLimit is the runaway-loop ceiling applied to condition-driven
// loops; a safety net against infinite `while`, not a performance feature.
const defaultLoopLimit = 10_000_000

// ModuleResolver supplies module handles for `import dotted.path` statements.
type ModuleResolver interface {
	Resolve(path string) (*runtime.ModuleValue, error)
}

// Interpreter drives evaluation of Quill AST nodes. One instance owns its
// environment chain and function/module tables outright; distinct instances
// share nothing.
type Interpreter struct {
	global    *runtime.Environment
	current   *runtime.Environment
	funcs     map[string]*runtime.FunctionValue
	modules   map[string]*runtime.ModuleValue
	resolver  ModuleResolver
	loopLimit int
}

type Option func(*Interpreter)

// WithLoopLimit overrides the runaway-loop iteration ceiling.
func WithLoopLimit(n int) Option {
	return func(i *Interpreter) { i.loopLimit = n }
}

// WithModuleResolver installs the driver-backed module resolver.
func WithModuleResolver(r ModuleResolver) Option {
	return func(i *Interpreter) { i.resolver = r }
}

// New returns an interpreter with an empty global environment.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		global:    runtime.NewEnvironment(nil),
		funcs:     make(map[string]*runtime.FunctionValue),
		modules:   make(map[string]*runtime.ModuleValue),
		loopLimit: defaultLoopLimit,
	}
	i.current = i.global
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// GlobalEnvironment returns the interpreter's global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// DefineGlobal injects a host binding before (or between) runs.
func (i *Interpreter) DefineGlobal(name string, value runtime.Value) {
	i.global.Define(name, value)
}

// InspectScope returns the bindings of the frame `depth` levels above the
// innermost frame (0 = innermost). It supports debugger/REPL tooling.
func (i *Interpreter) InspectScope(depth int) map[string]runtime.Value {
	env := i.current
	for d := 0; d < depth && env != nil; d++ {
		env = env.Parent()
	}
	if env == nil {
		return map[string]runtime.Value{}
	}
	return env.Snapshot()
}

// Failure is the serializable form of an error escaping Run.
type Failure struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Col     int    `json:"col,omitempty"`
}

func (f *Failure) Error() string {
	if f.Line > 0 {
		return fmt.Sprintf("%s: %s (line %d, col %d)", f.Kind, f.Message, f.Line, f.Col)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func failureFrom(err *runtime.Error) *Failure {
	f := &Failure{Kind: string(err.ErrKind), Message: err.Message}
	if err.Pos != nil {
		f.Line = err.Pos.Line
		f.Col = err.Pos.Col
	}
	return f
}

// Run is the single host entry point: it executes the module against the
// global environment and returns the last statement's value, or a *Failure.
func (i *Interpreter) Run(module *ast.Module) (runtime.Value, error) {
	val, err := i.EvaluateModule(module)
	if err == nil {
		return val, nil
	}
	switch sig := err.(type) {
	case raiseSignal:
		return nil, failureFrom(sig.value)
	case returnSignal:
		return nil, &Failure{Kind: string(runtime.ControlFlowError), Message: "return outside function"}
	case breakSignal, continueSignal:
		return nil, &Failure{Kind: string(runtime.ControlFlowError), Message: fmt.Sprintf("%s outside loop", sig)}
	default:
		return nil, &Failure{Kind: "InternalError", Message: err.Error()}
	}
}

// EvaluateModule executes a module's statements in order and returns the
// last evaluated value. Control-flow signals escaping the module are left
// for Run to classify.
func (i *Interpreter) EvaluateModule(module *ast.Module) (runtime.Value, error) {
	var last runtime.Value = runtime.NilValue{}
	for _, stmt := range module.Body {
		val, err := i.evaluateStatement(stmt, i.global)
		if err != nil {
			return nil, err
		}
		last = val
	}
	return last, nil
}

func (i *Interpreter) evaluateStatement(node ast.Statement, env *runtime.Environment) (runtime.Value, error) {
	i.current = env
	switch n := node.(type) {
	case ast.Expression:
		return i.evaluateExpression(n, env)
	case *ast.FunctionDefinition:
		return i.evaluateFunctionDefinition(n, env)
	case *ast.WhileLoop:
		return i.evaluateWhileLoop(n, env)
	case *ast.UntilLoop:
		return i.evaluateUntilLoop(n, env)
	case *ast.ForLoop:
		return i.evaluateForLoop(n, env)
	case *ast.ReturnStatement:
		return i.evaluateReturnStatement(n, env)
	case *ast.RaiseStatement:
		return i.evaluateRaiseStatement(n, env)
	case *ast.BreakStatement:
		label := ""
		if n.Label != nil {
			label = n.Label.Name
		}
		return nil, breakSignal{label: label}
	case *ast.ContinueStatement:
		label := ""
		if n.Label != nil {
			label = n.Label.Name
		}
		return nil, continueSignal{label: label}
	case *ast.ImportStatement:
		return i.evaluateImportStatement(n, env)
	default:
		return nil, fmt.Errorf("unsupported statement type: %s", n.NodeType())
	}
}

// evaluateBlock runs statements in a fresh child scope; the scope is
// discarded on every exit path, signal or not.
func (i *Interpreter) evaluateBlock(block *ast.BlockExpression, env *runtime.Environment) (runtime.Value, error) {
	scope := env.Extend()
	return i.evaluateStatementsIn(block.Body, scope)
}

// evaluateBlockIn runs statements directly in the supplied scope, for callers
// that pre-seed bindings (catch clauses, function bodies, loop iterations).
func (i *Interpreter) evaluateBlockIn(block *ast.BlockExpression, scope *runtime.Environment) (runtime.Value, error) {
	return i.evaluateStatementsIn(block.Body, scope)
}

func (i *Interpreter) evaluateStatementsIn(stmts []ast.Statement, scope *runtime.Environment) (runtime.Value, error) {
	var result runtime.Value = runtime.NilValue{}
	for _, stmt := range stmts {
		val, err := i.evaluateStatement(stmt, scope)
		if err != nil {
			return nil, err
		}
		result = val
	}
	return result, nil
}

//-----------------------------------------------------------------------------
// Function definition and invocation
//-----------------------------------------------------------------------------

func (i *Interpreter) evaluateFunctionDefinition(def *ast.FunctionDefinition, env *runtime.Environment) (runtime.Value, error) {
	if def.ID == nil {
		return nil, fmt.Errorf("function definition missing name")
	}
	fn := &runtime.FunctionValue{
		Name:    def.ID.Name,
		Params:  def.Params,
		Body:    def.Body,
		Closure: env,
	}
	// Last definition wins; redefinition is not an error.
	i.funcs[fn.Name] = fn
	env.Define(fn.Name, fn)
	return runtime.NilValue{}, nil
}

func (i *Interpreter) evaluateReturnStatement(stmt *ast.ReturnStatement, env *runtime.Environment) (runtime.Value, error) {
	var result runtime.Value = runtime.NilValue{}
	if stmt.Argument != nil {
		val, err := i.evaluateExpression(stmt.Argument, env)
		if err != nil {
			return nil, err
		}
		result = val
	}
	return nil, returnSignal{value: result}
}

func (i *Interpreter) evaluateRaiseStatement(stmt *ast.RaiseStatement, env *runtime.Environment) (runtime.Value, error) {
	val, err := i.evaluateExpression(stmt.Expression, env)
	if err != nil {
		return nil, err
	}
	errVal := makeUserError(val)
	errVal.At(stmt.Position())
	return nil, raise(errVal)
}

// invokeFunction applies the function invocation protocol: arity check,
// fresh scope chained to the closure, positional binding of already-evaluated
// arguments, and absorption of the return signal at exactly this frame.
func (i *Interpreter) invokeFunction(fn *runtime.FunctionValue, args []runtime.Value, pos *ast.Position) (runtime.Value, error) {
	if len(args) != len(fn.Params) {
		name := fn.Name
		if name == "" {
			name = "<lambda>"
		}
		rendered := make([]string, 0, len(args))
		for _, arg := range args {
			rendered = append(rendered, runtime.ToString(arg))
		}
		return nil, raise(runtime.NewError(runtime.ParameterCountError,
			"function '%s' expects %d arguments, got %d (%v)", name, len(fn.Params), len(args), rendered).At(pos))
	}
	localEnv := fn.Closure.Extend()
	for idx, param := range fn.Params {
		localEnv.Define(param.Name, args[idx])
	}
	if _, err := i.evaluateBlockIn(fn.Body, localEnv); err != nil {
		switch sig := err.(type) {
		case returnSignal:
			return sig.value, nil
		case breakSignal, continueSignal:
			return nil, raise(runtime.NewError(runtime.ControlFlowError,
				"%s escaped every enclosing loop", sig).At(pos))
		default:
			return nil, err
		}
	}
	// Fall-through without an explicit return yields nil.
	return runtime.NilValue{}, nil
}
