package interpreter

import (
	"testing"

	"quill/interpreter-go/pkg/ast"
	"quill/interpreter-go/pkg/runtime"
)

func TestMatchTupleBindsElements(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Match(ast.Tup(ast.Int(1), ast.Int(1)),
			ast.Mc(ast.TupP(ast.ID("x"), ast.ID("y")), ast.Bin("+", ast.ID("x"), ast.ID("y"))),
			ast.Mc(ast.Wc(), ast.Int(0)),
		),
	)
	val, err := interp.Run(module)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	mustNumber(t, val, 2)
}

func TestMatchClausesTryInOrder(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Match(ast.Int(5),
			ast.Mc(ast.LitP(ast.Int(1)), ast.Str("one")),
			ast.Mc(ast.RangeP(ast.Int(1), ast.Int(10), false), ast.Str("small")),
			ast.Mc(ast.Wc(), ast.Str("other")),
		),
	)
	val, err := interp.Run(module)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	mustString(t, val, "small")
}

func TestMatchGuardSeesBindings(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Match(ast.Int(4),
			ast.Mc(ast.ID("n"), ast.Str("even"), ast.Bin("==", ast.Bin("%", ast.ID("n"), ast.Int(2)), ast.Int(0))),
			ast.Mc(ast.Wc(), ast.Str("odd")),
		),
	)
	val, err := interp.Run(module)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	mustString(t, val, "even")
}

func TestMatchExhaustedRaisesNoMatch(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Match(ast.Str("x"),
			ast.Mc(ast.LitP(ast.Str("y")), ast.Int(1)),
		),
	)
	_, err := interp.Run(module)
	mustFailure(t, err, runtime.NoMatchError)
}

func TestMatchEvaluatesScrutineeOnce(t *testing.T) {
	interp := New()
	calls := 0
	interp.DefineGlobal("probe", runtime.NativeFunctionValue{
		Name:  "probe",
		Arity: 0,
		Impl: func(_ *runtime.NativeCallContext, _ []runtime.Value) (runtime.Value, error) {
			calls++
			return runtime.NumberValue{Val: 3}, nil
		},
	})
	module := ast.Mod(
		ast.Match(ast.Call("probe"),
			ast.Mc(ast.LitP(ast.Int(1)), ast.Int(1)),
			ast.Mc(ast.LitP(ast.Int(2)), ast.Int(2)),
			ast.Mc(ast.ID("n"), ast.ID("n")),
		),
	)
	val, err := interp.Run(module)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	mustNumber(t, val, 3)
	if calls != 1 {
		t.Fatalf("expected single scrutinee evaluation, got %d", calls)
	}
}

func TestDestructuringCommitsIntoCurrentScope(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Assign(ast.TupP(ast.ID("a"), ast.ID("b")), ast.Tup(ast.Int(1), ast.Int(2))),
		ast.Bin("+", ast.ID("a"), ast.ID("b")),
	)
	val, err := interp.Run(module)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	mustNumber(t, val, 3)
}

func TestDestructuringIsAllOrNothing(t *testing.T) {
	interp := New()
	module := ast.Mod(
		// Arity mismatch: the first element would bind before the failure.
		ast.Assign(ast.TupP(ast.ID("a"), ast.ID("b"), ast.ID("c")), ast.Tup(ast.Int(1), ast.Int(2))),
	)
	_, err := interp.Run(module)
	mustFailure(t, err, runtime.NoMatchError)
	if interp.GlobalEnvironment().Has("a") {
		t.Fatalf("partial bindings leaked after failed destructuring")
	}
}

func TestListPatternWithRest(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Assign(ast.ListP([]ast.Pattern{ast.ID("head")}, ast.ID("tail")),
			ast.List(ast.Int(1), ast.Int(2), ast.Int(3))),
		ast.Tup(ast.ID("head"), ast.ID("tail")),
	)
	val, err := interp.Run(module)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	pair := val.(*runtime.ListValue)
	mustNumber(t, pair.Elements[0], 1)
	tail := pair.Elements[1].(*runtime.ListValue)
	if len(tail.Elements) != 2 {
		t.Fatalf("expected 2-element tail, got %d", len(tail.Elements))
	}
	mustNumber(t, tail.Elements[0], 2)
}

func TestListPatternExactArityWithoutRest(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Match(ast.List(ast.Int(1), ast.Int(2), ast.Int(3)),
			ast.Mc(ast.ListP([]ast.Pattern{ast.ID("a"), ast.ID("b")}, nil), ast.Str("two")),
			ast.Mc(ast.Wc(), ast.Str("other")),
		),
	)
	val, err := interp.Run(module)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	mustString(t, val, "other")
}

func TestMapPatternMatchesSubsetOfKeys(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Assign(ast.ID("m"), ast.MapLit(
			ast.Entry(ast.Str("name"), ast.Str("ada")),
			ast.Entry(ast.Str("age"), ast.Int(36)),
		)),
		ast.Assign(ast.MapP(ast.EntryP(ast.Str("name"), ast.ID("who"))), ast.ID("m")),
		ast.ID("who"),
	)
	val, err := interp.Run(module)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	mustString(t, val, "ada")
}

func TestTypePatternMatchesKindAndErrorKind(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Match(ast.Str("hi"),
			ast.Mc(ast.TypeP("Number"), ast.Str("number")),
			ast.Mc(ast.TypeP("String"), ast.Str("string")),
		),
	)
	val, err := interp.Run(module)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	mustString(t, val, "string")
}

func TestGuardedPatternRejectsOnFalsyCondition(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Match(ast.Int(3),
			ast.Mc(ast.GuardP(ast.ID("n"), ast.Bin(">", ast.ID("n"), ast.Int(10))), ast.Str("big")),
			ast.Mc(ast.Wc(), ast.Str("small")),
		),
	)
	val, err := interp.Run(module)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	mustString(t, val, "small")
}

func TestMatchBodyScopeDiscarded(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Match(ast.Int(1),
			ast.Mc(ast.ID("n"), ast.ID("n")),
		),
		ast.ID("n"),
	)
	_, err := interp.Run(module)
	mustFailure(t, err, runtime.NameError)
}

func TestForLoopPatternMismatchRaises(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.ForIn(ast.TupP(ast.ID("a"), ast.ID("b")), ast.List(ast.Int(1)),
			ast.ID("a"),
		),
	)
	_, err := interp.Run(module)
	mustFailure(t, err, runtime.NoMatchError)
}

func TestMatchClauseBlockBodySeesBindings(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Match(ast.Int(5),
			ast.Mc(ast.ID("n"), ast.Block(
				ast.Assign(ast.ID("twice"), ast.Bin("*", ast.ID("n"), ast.Int(2))),
				ast.ID("twice"),
			)),
		),
	)
	val, err := interp.Run(module)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	mustNumber(t, val, 10)
}
