package interpreter

import (
	"quill/interpreter-go/pkg/ast"
	"quill/interpreter-go/pkg/runtime"
)

// runComprehension drives the nested for-clauses recursively. Each clause
// level gets its own child scope so inner clause iterables can reference the
// outer clause's bindings. The if-conditions are conjunctive and run in the
// innermost scope; emit fires once per combination that passes all of them.
func (i *Interpreter) runComprehension(clauses []*ast.ComprehensionFor, conditions []ast.Expression, env *runtime.Environment, emit func(*runtime.Environment) error) error {
	if len(clauses) == 0 {
		for _, cond := range conditions {
			val, err := i.evaluateExpression(cond, env)
			if err != nil {
				return err
			}
			if !runtime.Truthy(val) {
				return nil
			}
		}
		return emit(env)
	}
	clause := clauses[0]
	iterable, err := i.evaluateExpression(clause.Iterable, env)
	if err != nil {
		return err
	}
	items, ierr := i.iterationItems(iterable)
	if ierr != nil {
		return raise(ierr.At(clause.Iterable.Position()))
	}
	for _, item := range items {
		bindings := newBindingSet()
		ok, err := i.matchPattern(clause.Pattern, item, env, bindings)
		if err != nil {
			return err
		}
		if !ok {
			return raise(runtime.NewError(runtime.NoMatchError,
				"comprehension value %s does not match pattern", runtime.ToString(item)).At(clause.Pattern.Position()))
		}
		clauseEnv := env.Extend()
		bindings.defineInto(clauseEnv)
		if err := i.runComprehension(clauses[1:], conditions, clauseEnv, emit); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) evaluateListComprehension(expr *ast.ListComprehension, env *runtime.Environment) (runtime.Value, error) {
	result := &runtime.ListValue{Elements: []runtime.Value{}}
	err := i.runComprehension(expr.Clauses, expr.Conditions, env, func(scope *runtime.Environment) error {
		val, err := i.evaluateExpression(expr.Element, scope)
		if err != nil {
			return err
		}
		result.Elements = append(result.Elements, val)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (i *Interpreter) evaluateDictComprehension(expr *ast.DictComprehension, env *runtime.Environment) (runtime.Value, error) {
	result := runtime.NewMapValue()
	err := i.runComprehension(expr.Clauses, expr.Conditions, env, func(scope *runtime.Environment) error {
		key, err := i.evaluateExpression(expr.Key, scope)
		if err != nil {
			return err
		}
		val, err := i.evaluateExpression(expr.Value, scope)
		if err != nil {
			return err
		}
		if !result.Set(key, val) {
			return raise(runtime.NewError(runtime.TypeError,
				"map key of kind %s is not hashable", key.Kind()).At(expr.Key.Position()))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (i *Interpreter) evaluateSetComprehension(expr *ast.SetComprehension, env *runtime.Environment) (runtime.Value, error) {
	result := runtime.NewSetValue()
	err := i.runComprehension(expr.Clauses, expr.Conditions, env, func(scope *runtime.Environment) error {
		val, err := i.evaluateExpression(expr.Element, scope)
		if err != nil {
			return err
		}
		if !result.Add(val) {
			return raise(runtime.NewError(runtime.TypeError,
				"value of kind %s is not hashable", val.Kind()).At(expr.Element.Position()))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
