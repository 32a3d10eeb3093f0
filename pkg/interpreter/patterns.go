package interpreter

import (
	"quill/interpreter-go/pkg/ast"
	"quill/interpreter-go/pkg/runtime"
)

// bindingSet stages the names a pattern would bind. Nothing touches the
// environment until the whole pattern matches, so a late failure leaves no
// partial bindings behind.
type bindingSet struct {
	names  []string
	values map[string]runtime.Value
}

func newBindingSet() *bindingSet {
	return &bindingSet{values: make(map[string]runtime.Value)}
}

func (b *bindingSet) add(name string, val runtime.Value) {
	if _, exists := b.values[name]; !exists {
		b.names = append(b.names, name)
	}
	b.values[name] = val
}

func (b *bindingSet) defineInto(env *runtime.Environment) {
	for _, name := range b.names {
		env.Define(name, b.values[name])
	}
}

func (b *bindingSet) assignInto(env *runtime.Environment) error {
	for _, name := range b.names {
		if err := env.Assign(name, b.values[name]); err != nil {
			return err
		}
	}
	return nil
}

// matchPattern reports whether val matches the pattern, staging any bindings
// into b. A false return means no match; a non-nil error means evaluation
// inside the pattern (a guard, a range bound) failed.
func (i *Interpreter) matchPattern(pattern ast.Pattern, val runtime.Value, env *runtime.Environment, b *bindingSet) (bool, error) {
	switch p := pattern.(type) {
	case *ast.WildcardPattern:
		return true, nil
	case *ast.Identifier:
		b.add(p.Name, val)
		return true, nil
	case *ast.LiteralPattern:
		expected, err := i.evaluateExpression(p.Literal, env)
		if err != nil {
			return false, err
		}
		return runtime.Equal(expected, val), nil
	case *ast.TuplePattern:
		list, ok := val.(*runtime.ListValue)
		if !ok || len(list.Elements) != len(p.Elements) {
			return false, nil
		}
		return i.matchElements(p.Elements, list.Elements, env, b)
	case *ast.ListPattern:
		return i.matchListPattern(p, val, env, b)
	case *ast.MapPattern:
		return i.matchMapPattern(p, val, env, b)
	case *ast.TypePattern:
		return runtime.TypeName(val) == p.TypeName.Name, nil
	case *ast.RangePattern:
		return i.matchRangePattern(p, val, env)
	case *ast.GuardedPattern:
		ok, err := i.matchPattern(p.Base, val, env, b)
		if err != nil || !ok {
			return false, err
		}
		guardEnv := env.Extend()
		b.defineInto(guardEnv)
		cond, err := i.evaluateExpression(p.Condition, guardEnv)
		if err != nil {
			return false, err
		}
		return runtime.Truthy(cond), nil
	default:
		return false, raise(runtime.NewError(runtime.TypeError,
			"unsupported pattern %s", pattern.NodeType()).At(pattern.Position()))
	}
}

func (i *Interpreter) matchElements(patterns []ast.Pattern, values []runtime.Value, env *runtime.Environment, b *bindingSet) (bool, error) {
	for idx, elem := range patterns {
		ok, err := i.matchPattern(elem, values[idx], env, b)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func (i *Interpreter) matchListPattern(p *ast.ListPattern, val runtime.Value, env *runtime.Environment, b *bindingSet) (bool, error) {
	list, ok := val.(*runtime.ListValue)
	if !ok {
		return false, nil
	}
	if p.Rest == nil {
		if len(list.Elements) != len(p.Elements) {
			return false, nil
		}
		return i.matchElements(p.Elements, list.Elements, env, b)
	}
	if len(list.Elements) < len(p.Elements) {
		return false, nil
	}
	ok, err := i.matchElements(p.Elements, list.Elements[:len(p.Elements)], env, b)
	if err != nil || !ok {
		return false, err
	}
	rest := &runtime.ListValue{Elements: append([]runtime.Value{}, list.Elements[len(p.Elements):]...)}
	return i.matchPattern(p.Rest, rest, env, b)
}

func (i *Interpreter) matchMapPattern(p *ast.MapPattern, val runtime.Value, env *runtime.Environment, b *bindingSet) (bool, error) {
	m, ok := val.(*runtime.MapValue)
	if !ok {
		return false, nil
	}
	for _, entry := range p.Entries {
		key, err := i.evaluateExpression(entry.Key, env)
		if err != nil {
			return false, err
		}
		entryVal, found := m.Get(key)
		if !found {
			return false, nil
		}
		ok, err := i.matchPattern(entry.Pattern, entryVal, env, b)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func (i *Interpreter) matchRangePattern(p *ast.RangePattern, val runtime.Value, env *runtime.Environment) (bool, error) {
	num, ok := val.(runtime.NumberValue)
	if !ok {
		return false, nil
	}
	lo, err := i.evaluateNumber(p.Lo, env, "range pattern low bound")
	if err != nil {
		return false, err
	}
	hi, err := i.evaluateNumber(p.Hi, env, "range pattern high bound")
	if err != nil {
		return false, err
	}
	if num.Val < lo {
		return false, nil
	}
	if p.Inclusive {
		return num.Val <= hi, nil
	}
	return num.Val < hi, nil
}

// destructure matches value against pattern and commits the bindings into
// env, all of them or none of them.
func (i *Interpreter) destructure(pattern ast.Pattern, value runtime.Value, env *runtime.Environment, declare bool) error {
	bindings := newBindingSet()
	ok, err := i.matchPattern(pattern, value, env, bindings)
	if err != nil {
		return err
	}
	if !ok {
		return raise(runtime.NewError(runtime.NoMatchError,
			"value %s does not match pattern", runtime.ToString(value)).At(pattern.Position()))
	}
	if declare {
		bindings.defineInto(env)
		return nil
	}
	if err := bindings.assignInto(env); err != nil {
		return asRaise(err)
	}
	return nil
}

// evaluateMatchExpression evaluates the subject once and tries each clause
// top to bottom. Clause bindings live in a child scope seeded before the
// guard runs, so guards see the pattern's names.
func (i *Interpreter) evaluateMatchExpression(expr *ast.MatchExpression, env *runtime.Environment) (runtime.Value, error) {
	subject, err := i.evaluateExpression(expr.Subject, env)
	if err != nil {
		return nil, err
	}
	for _, clause := range expr.Clauses {
		bindings := newBindingSet()
		ok, err := i.matchPattern(clause.Pattern, subject, env, bindings)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		clauseEnv := env.Extend()
		bindings.defineInto(clauseEnv)
		if clause.Guard != nil {
			cond, err := i.evaluateExpression(clause.Guard, clauseEnv)
			if err != nil {
				return nil, err
			}
			if !runtime.Truthy(cond) {
				continue
			}
		}
		return i.evaluateExpression(clause.Body, clauseEnv)
	}
	return nil, raise(runtime.NewError(runtime.NoMatchError,
		"no match clause for value %s", runtime.ToString(subject)).At(expr.Position()))
}
