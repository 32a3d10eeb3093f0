package interpreter

import (
	"fmt"

	"quill/interpreter-go/pkg/ast"
	"quill/interpreter-go/pkg/runtime"
)

func loopLabel(label *ast.Identifier) string {
	if label == nil {
		return ""
	}
	return label.Name
}

// absorbLoopSignal decides what a loop does with an error escaping its body.
// An unlabeled break or continue belongs to the innermost loop; a labeled one
// belongs to the loop carrying that label and re-raises past any other.
func absorbLoopSignal(err error, label string) (broke bool, out error) {
	switch sig := err.(type) {
	case breakSignal:
		if sig.label == "" || sig.label == label {
			return true, nil
		}
	case continueSignal:
		if sig.label == "" || sig.label == label {
			return false, nil
		}
	}
	return false, err
}

func (i *Interpreter) loopLimitError(what, label string, pos *ast.Position) error {
	if label != "" {
		what = fmt.Sprintf("%s '%s'", what, label)
	}
	return raise(runtime.NewError(runtime.RuntimeLimitError,
		"%s exceeded %d iterations", what, i.loopLimit).At(pos))
}

func (i *Interpreter) evaluateWhileLoop(loop *ast.WhileLoop, env *runtime.Environment) (runtime.Value, error) {
	label := loopLabel(loop.Label)
	iterations := 0
	broke := false
	for {
		cond, err := i.evaluateExpression(loop.Condition, env)
		if err != nil {
			return nil, err
		}
		if !runtime.Truthy(cond) {
			break
		}
		iterations++
		if iterations > i.loopLimit {
			return nil, i.loopLimitError("while loop", label, loop.Position())
		}
		if _, err := i.evaluateBlock(loop.Body, env); err != nil {
			stopped, err := absorbLoopSignal(err, label)
			if err != nil {
				return nil, err
			}
			if stopped {
				broke = true
				break
			}
		}
	}
	// The else clause belongs to normal termination only; break skips it.
	if !broke && loop.Else != nil {
		return i.evaluateBlock(loop.Else, env)
	}
	return runtime.NilValue{}, nil
}

// evaluateUntilLoop runs the body before testing the condition, so the body
// always executes at least once.
func (i *Interpreter) evaluateUntilLoop(loop *ast.UntilLoop, env *runtime.Environment) (runtime.Value, error) {
	label := loopLabel(loop.Label)
	iterations := 0
	for {
		iterations++
		if iterations > i.loopLimit {
			return nil, i.loopLimitError("until loop", label, loop.Position())
		}
		if _, err := i.evaluateBlock(loop.Body, env); err != nil {
			stopped, err := absorbLoopSignal(err, label)
			if err != nil {
				return nil, err
			}
			if stopped {
				return runtime.NilValue{}, nil
			}
		}
		// A continue still reaches the until check, same as in while loops.
		cond, err := i.evaluateExpression(loop.Condition, env)
		if err != nil {
			return nil, err
		}
		if runtime.Truthy(cond) {
			return runtime.NilValue{}, nil
		}
	}
}

func (i *Interpreter) evaluateForLoop(loop *ast.ForLoop, env *runtime.Environment) (runtime.Value, error) {
	iterable, err := i.evaluateExpression(loop.Iterable, env)
	if err != nil {
		return nil, err
	}
	items, ierr := i.iterationItems(iterable)
	if ierr != nil {
		return nil, raise(ierr.At(loop.Iterable.Position()))
	}
	label := loopLabel(loop.Label)
	for _, item := range items {
		iterEnv := env.Extend()
		bindings := newBindingSet()
		ok, err := i.matchPattern(loop.Pattern, item, env, bindings)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, raise(runtime.NewError(runtime.NoMatchError,
				"loop value %s does not match pattern", runtime.ToString(item)).At(loop.Pattern.Position()))
		}
		bindings.defineInto(iterEnv)
		if _, err := i.evaluateBlockIn(loop.Body, iterEnv); err != nil {
			stopped, err := absorbLoopSignal(err, label)
			if err != nil {
				return nil, err
			}
			if stopped {
				break
			}
		}
	}
	return runtime.NilValue{}, nil
}

// iterationItems materializes the iteration sequence for a value. Maps yield
// [key, value] pairs and strings yield single-character strings, both in
// deterministic order.
func (i *Interpreter) iterationItems(val runtime.Value) ([]runtime.Value, *runtime.Error) {
	switch v := val.(type) {
	case *runtime.ListValue:
		return v.Elements, nil
	case runtime.StringValue:
		items := make([]runtime.Value, 0, len(v.Val))
		for _, r := range v.Val {
			items = append(items, runtime.StringValue{Val: string(r)})
		}
		return items, nil
	case *runtime.MapValue:
		items := make([]runtime.Value, 0, v.Len())
		for _, entry := range v.Entries() {
			items = append(items, &runtime.ListValue{Elements: []runtime.Value{entry[0], entry[1]}})
		}
		return items, nil
	case *runtime.SetValue:
		return v.Elements(), nil
	case *runtime.RangeValue:
		return i.rangeItems(v)
	default:
		return nil, runtime.NewError(runtime.TypeError,
			"value of kind %s is not iterable", val.Kind())
	}
}

func (i *Interpreter) rangeItems(r *runtime.RangeValue) ([]runtime.Value, *runtime.Error) {
	var items []runtime.Value
	for n := r.Start; n < r.End || (r.Inclusive && n == r.End); n++ {
		if len(items) >= i.loopLimit {
			return nil, runtime.NewError(runtime.RuntimeLimitError,
				"range exceeded %d elements", i.loopLimit)
		}
		items = append(items, runtime.NumberValue{Val: n})
	}
	return items, nil
}
