package interpreter

import (
	"strings"
	"testing"

	"quill/interpreter-go/pkg/ast"
	"quill/interpreter-go/pkg/runtime"
)

func TestWhileLoopBreakStopsAccumulation(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Assign(ast.ID("sum"), ast.Int(0)),
		ast.Assign(ast.ID("i"), ast.Int(0)),
		ast.While(ast.Bool(true),
			ast.Reassign(ast.ID("sum"), ast.Bin("+", ast.ID("sum"), ast.ID("i"))),
			ast.Reassign(ast.ID("i"), ast.Bin("+", ast.ID("i"), ast.Int(1))),
			ast.Iff(ast.Bin(">=", ast.ID("i"), ast.Int(3)), ast.Brk("")),
		),
		ast.ID("sum"),
	)
	val, err := interp.Run(module)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	mustNumber(t, val, 3)
}

func TestWhileElseRunsOnNormalExit(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Assign(ast.ID("i"), ast.Int(0)),
		ast.Assign(ast.ID("finished"), ast.Bool(false)),
		ast.WhileElse(
			ast.Bin("<", ast.ID("i"), ast.Int(3)),
			ast.Block(ast.Reassign(ast.ID("i"), ast.Bin("+", ast.ID("i"), ast.Int(1)))),
			ast.Block(ast.Reassign(ast.ID("finished"), ast.Bool(true))),
		),
		ast.ID("finished"),
	)
	val, err := interp.Run(module)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if b := val.(runtime.BoolValue); !b.Val {
		t.Fatalf("expected else clause to run on condition falsification")
	}
}

func TestWhileElseSkippedAfterBreak(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Assign(ast.ID("finished"), ast.Bool(false)),
		ast.WhileElse(
			ast.Bool(true),
			ast.Block(ast.Brk("")),
			ast.Block(ast.Reassign(ast.ID("finished"), ast.Bool(true))),
		),
		ast.ID("finished"),
	)
	val, err := interp.Run(module)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if b := val.(runtime.BoolValue); b.Val {
		t.Fatalf("break must skip the else clause")
	}
}

func TestUntilLoopRunsBodyFirst(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Assign(ast.ID("runs"), ast.Int(0)),
		ast.LoopUntil(ast.Bool(true),
			ast.Reassign(ast.ID("runs"), ast.Bin("+", ast.ID("runs"), ast.Int(1))),
		),
		ast.ID("runs"),
	)
	val, err := interp.Run(module)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	mustNumber(t, val, 1)
}

func TestLabeledBreakUnwindsPastInnerLoop(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Assign(ast.ID("visits"), ast.Int(0)),
		ast.ForInLabeled("outer", "x", ast.List(ast.Int(1), ast.Int(2), ast.Int(3)),
			ast.ForIn("y", ast.List(ast.Int(1), ast.Int(2), ast.Int(3)),
				ast.Reassign(ast.ID("visits"), ast.Bin("+", ast.ID("visits"), ast.Int(1))),
				ast.Iff(ast.Bin("==", ast.ID("y"), ast.Int(2)), ast.Brk("outer")),
			),
		),
		ast.ID("visits"),
	)
	val, err := interp.Run(module)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	mustNumber(t, val, 2)
}

func TestLabeledContinueSkipsToOuterIteration(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Assign(ast.ID("inner"), ast.Int(0)),
		ast.ForInLabeled("outer", "x", ast.List(ast.Int(1), ast.Int(2)),
			ast.ForIn("y", ast.List(ast.Int(1), ast.Int(2), ast.Int(3)),
				ast.Reassign(ast.ID("inner"), ast.Bin("+", ast.ID("inner"), ast.Int(1))),
				ast.Cont("outer"),
			),
		),
		ast.ID("inner"),
	)
	val, err := interp.Run(module)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	// One inner iteration per outer element before the labeled continue.
	mustNumber(t, val, 2)
}

func TestBreakOutsideLoopIsControlFlowError(t *testing.T) {
	interp := New()
	_, err := interp.Run(ast.Mod(ast.Brk("")))
	mustFailure(t, err, runtime.ControlFlowError)
}

func TestBreakEscapingFunctionBodyFails(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Fn("f", nil, ast.Brk("")),
		ast.While(ast.Bool(true), ast.Call("f")),
	)
	_, err := interp.Run(module)
	mustFailure(t, err, runtime.ControlFlowError)
}

func TestRunawayLoopGuard(t *testing.T) {
	interp := New(WithLoopLimit(100))
	module := ast.Mod(
		ast.While(ast.Bool(true), ast.Int(1)),
	)
	_, err := interp.Run(module)
	failure := mustFailure(t, err, runtime.RuntimeLimitError)
	if !strings.Contains(failure.Message, "100") {
		t.Fatalf("expected iteration count in message, got %q", failure.Message)
	}
}

func TestForLoopOverRangeAndString(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Assign(ast.ID("sum"), ast.Int(0)),
		ast.ForIn("n", ast.Range(ast.Int(1), ast.Int(4), true),
			ast.Reassign(ast.ID("sum"), ast.Bin("+", ast.ID("sum"), ast.ID("n"))),
		),
		ast.Assign(ast.ID("chars"), ast.Str("")),
		ast.ForIn("c", ast.Str("ab"),
			ast.Reassign(ast.ID("chars"), ast.Bin("+", ast.ID("chars"), ast.ID("c"))),
		),
		ast.Tup(ast.ID("sum"), ast.ID("chars")),
	)
	val, err := interp.Run(module)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	pair := val.(*runtime.ListValue)
	mustNumber(t, pair.Elements[0], 10)
	mustString(t, pair.Elements[1], "ab")
}

func TestForLoopOverMapEntries(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Assign(ast.ID("m"), ast.MapLit(
			ast.Entry(ast.Str("a"), ast.Int(1)),
			ast.Entry(ast.Str("b"), ast.Int(2)),
		)),
		ast.Assign(ast.ID("keys"), ast.Str("")),
		ast.Assign(ast.ID("total"), ast.Int(0)),
		ast.ForIn(ast.TupP(ast.ID("k"), ast.ID("v")), ast.ID("m"),
			ast.Reassign(ast.ID("keys"), ast.Bin("+", ast.ID("keys"), ast.ID("k"))),
			ast.Reassign(ast.ID("total"), ast.Bin("+", ast.ID("total"), ast.ID("v"))),
		),
		ast.Tup(ast.ID("keys"), ast.ID("total")),
	)
	val, err := interp.Run(module)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	pair := val.(*runtime.ListValue)
	mustString(t, pair.Elements[0], "ab")
	mustNumber(t, pair.Elements[1], 3)
}

func TestTryCatchFinallyOrdering(t *testing.T) {
	interp := New()
	marks := 0
	interp.DefineGlobal("mark", runtime.NativeFunctionValue{
		Name:  "mark",
		Arity: 0,
		Impl: func(_ *runtime.NativeCallContext, _ []runtime.Value) (runtime.Value, error) {
			marks++
			return runtime.NilValue{}, nil
		},
	})
	module := ast.Mod(
		ast.TryFinally(
			ast.Block(ast.Raise(ast.Str("boom"))),
			ast.Block(ast.Call("mark")),
			ast.CatchAll("e", ast.Int(42)),
		),
	)
	val, err := interp.Run(module)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	mustNumber(t, val, 42)
	if marks != 1 {
		t.Fatalf("expected finally to run exactly once, ran %d times", marks)
	}
}

func TestFinallyRunsWhenUncaught(t *testing.T) {
	interp := New()
	marks := 0
	interp.DefineGlobal("mark", runtime.NativeFunctionValue{
		Name:  "mark",
		Arity: 0,
		Impl: func(_ *runtime.NativeCallContext, _ []runtime.Value) (runtime.Value, error) {
			marks++
			return runtime.NilValue{}, nil
		},
	})
	module := ast.Mod(
		ast.TryFinally(
			ast.Block(ast.Raise(ast.Str("boom"))),
			ast.Block(ast.Call("mark")),
			ast.Catch("TypeError", "e", ast.Int(0)),
		),
	)
	_, err := interp.Run(module)
	mustFailure(t, err, runtime.UserError)
	if marks != 1 {
		t.Fatalf("expected finally to run exactly once, ran %d times", marks)
	}
}

func TestCatchMatchesByKindName(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Try(
			ast.Block(ast.ID("missing")),
			ast.Catch("TypeError", "", ast.Str("wrong")),
			ast.Catch("NameError", "e", ast.Member(ast.ID("e"), "kind")),
		),
	)
	val, err := interp.Run(module)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	mustString(t, val, "NameError")
}

func TestCatchBindingExposesPayload(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Try(
			ast.Block(ast.Raise(ast.Int(7))),
			ast.CatchAll("e", ast.Member(ast.ID("e"), "payload")),
		),
	)
	val, err := interp.Run(module)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	mustNumber(t, val, 7)
}

func TestFinallyErrorReplacesPropagatingOne(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.TryFinally(
			ast.Block(ast.Raise(ast.Str("original"))),
			ast.Block(ast.ID("missing")),
		),
	)
	_, err := interp.Run(module)
	mustFailure(t, err, runtime.NameError)
}

func TestFinallyRunsOnReturnPath(t *testing.T) {
	interp := New()
	marks := 0
	interp.DefineGlobal("mark", runtime.NativeFunctionValue{
		Name:  "mark",
		Arity: 0,
		Impl: func(_ *runtime.NativeCallContext, _ []runtime.Value) (runtime.Value, error) {
			marks++
			return runtime.NilValue{}, nil
		},
	})
	module := ast.Mod(
		ast.Fn("f", nil,
			ast.TryFinally(
				ast.Block(ast.Ret(ast.Int(1))),
				ast.Block(ast.Call("mark")),
			),
		),
		ast.Call("f"),
	)
	val, err := interp.Run(module)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	mustNumber(t, val, 1)
	if marks != 1 {
		t.Fatalf("expected finally on the return path, ran %d times", marks)
	}
}

func TestIfBranchesScopeIsolation(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.IfExpr(ast.Bool(true), ast.Block(ast.Assign(ast.ID("tmp"), ast.Int(1)))),
		ast.ID("tmp"),
	)
	_, err := interp.Run(module)
	mustFailure(t, err, runtime.NameError)
}

func TestIfElifElseSelectsSingleBranch(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Assign(ast.ID("n"), ast.Int(2)),
		ast.IfExpr(ast.Bin("==", ast.ID("n"), ast.Int(1)),
			ast.Block(ast.Str("one")),
			ast.Or(ast.Bin("==", ast.ID("n"), ast.Int(2)), ast.Str("two")),
			ast.Else(ast.Str("many")),
		),
	)
	val, err := interp.Run(module)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	mustString(t, val, "two")
}

func TestUntilLoopContinueStillChecksCondition(t *testing.T) {
	interp := New(WithLoopLimit(100))
	module := ast.Mod(
		ast.Assign(ast.ID("s"), ast.Int(0)),
		ast.LoopUntil(ast.Bin(">=", ast.ID("s"), ast.Int(3)),
			ast.Reassign(ast.ID("s"), ast.Bin("+", ast.ID("s"), ast.Int(1))),
			ast.Cont(""),
		),
		ast.ID("s"),
	)
	val, err := interp.Run(module)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	mustNumber(t, val, 3)
}

func TestRunawayLoopGuardNamesLabel(t *testing.T) {
	interp := New(WithLoopLimit(50))
	module := ast.Mod(
		ast.WhileLabeled("spin", ast.Bool(true), ast.Int(1)),
	)
	_, err := interp.Run(module)
	failure := mustFailure(t, err, runtime.RuntimeLimitError)
	if !strings.Contains(failure.Message, "spin") {
		t.Fatalf("expected loop label in message, got %q", failure.Message)
	}
}

func TestForLoopIterationScopesAreIndependent(t *testing.T) {
	interp := New()
	module := ast.Mod(
		ast.Assign(ast.ID("misses"), ast.Int(0)),
		ast.ForIn("x", ast.List(ast.Int(1), ast.Int(2), ast.Int(3)),
			ast.Try(
				ast.Block(ast.ID("seen")),
				ast.CatchAll("e",
					ast.Reassign(ast.ID("misses"), ast.Bin("+", ast.ID("misses"), ast.Int(1))),
				),
			),
			ast.Assign(ast.ID("seen"), ast.Bool(true)),
		),
		ast.ID("misses"),
	)
	val, err := interp.Run(module)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	// Each iteration runs in its own scope, so "seen" from one pass is
	// gone by the next and the lookup misses every time.
	mustNumber(t, val, 3)
}
