package interpreter

import (
	"fmt"
	"math"

	"quill/interpreter-go/pkg/ast"
	"quill/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.NumberLiteral:
		return runtime.NumberValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.NilLiteral:
		return runtime.NilValue{}, nil
	case *ast.Identifier:
		val, err := env.Get(n.Name)
		if err != nil {
			// Named functions stay resolvable through the function table
			// even when the defining frame is gone.
			if fn, ok := i.funcs[n.Name]; ok {
				return fn, nil
			}
			if rerr, ok := err.(*runtime.Error); ok {
				return nil, raise(rerr.At(n.Position()))
			}
			return nil, err
		}
		return val, nil
	case *ast.ListLiteral:
		return i.evaluateElements(n.Elements, env)
	case *ast.TupleLiteral:
		return i.evaluateElements(n.Elements, env)
	case *ast.SetLiteral:
		return i.evaluateSetLiteral(n, env)
	case *ast.MapLiteral:
		return i.evaluateMapLiteral(n, env)
	case *ast.RangeExpression:
		return i.evaluateRangeExpression(n, env)
	case *ast.UnaryExpression:
		return i.evaluateUnaryExpression(n, env)
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n, env)
	case *ast.FunctionCall:
		return i.evaluateFunctionCall(n, env)
	case *ast.MemberAccessExpression:
		return i.evaluateMemberAccess(n, env)
	case *ast.IndexExpression:
		return i.evaluateIndexExpression(n, env)
	case *ast.AssignmentExpression:
		return i.evaluateAssignment(n, env)
	case *ast.BlockExpression:
		return i.evaluateBlock(n, env)
	case *ast.IfExpression:
		return i.evaluateIfExpression(n, env)
	case *ast.MatchExpression:
		return i.evaluateMatchExpression(n, env)
	case *ast.TryExpression:
		return i.evaluateTryExpression(n, env)
	case *ast.LambdaExpression:
		return &runtime.FunctionValue{Params: n.Params, Body: n.Body, Closure: env}, nil
	case *ast.ListComprehension:
		return i.evaluateListComprehension(n, env)
	case *ast.DictComprehension:
		return i.evaluateDictComprehension(n, env)
	case *ast.SetComprehension:
		return i.evaluateSetComprehension(n, env)
	default:
		return nil, fmt.Errorf("unsupported expression type: %s", n.NodeType())
	}
}

func (i *Interpreter) evaluateElements(elements []ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	values := make([]runtime.Value, 0, len(elements))
	for _, el := range elements {
		val, err := i.evaluateExpression(el, env)
		if err != nil {
			return nil, err
		}
		values = append(values, val)
	}
	return &runtime.ListValue{Elements: values}, nil
}

func (i *Interpreter) evaluateSetLiteral(lit *ast.SetLiteral, env *runtime.Environment) (runtime.Value, error) {
	set := runtime.NewSetValue()
	for _, el := range lit.Elements {
		val, err := i.evaluateExpression(el, env)
		if err != nil {
			return nil, err
		}
		if !set.Add(val) {
			return nil, raise(runtime.NewError(runtime.TypeError,
				"value of kind %s is not hashable", val.Kind()).At(lit.Position()))
		}
	}
	return set, nil
}

func (i *Interpreter) evaluateMapLiteral(lit *ast.MapLiteral, env *runtime.Environment) (runtime.Value, error) {
	m := runtime.NewMapValue()
	for _, entry := range lit.Entries {
		key, err := i.evaluateExpression(entry.Key, env)
		if err != nil {
			return nil, err
		}
		val, err := i.evaluateExpression(entry.Value, env)
		if err != nil {
			return nil, err
		}
		if !m.Set(key, val) {
			return nil, raise(runtime.NewError(runtime.TypeError,
				"map key of kind %s is not hashable", key.Kind()).At(lit.Position()))
		}
	}
	return m, nil
}

func (i *Interpreter) evaluateRangeExpression(expr *ast.RangeExpression, env *runtime.Environment) (runtime.Value, error) {
	start, err := i.evaluateNumber(expr.Start, env, "range start")
	if err != nil {
		return nil, err
	}
	end, err := i.evaluateNumber(expr.End, env, "range end")
	if err != nil {
		return nil, err
	}
	return &runtime.RangeValue{Start: start, End: end, Inclusive: expr.Inclusive}, nil
}

func (i *Interpreter) evaluateNumber(expr ast.Expression, env *runtime.Environment, what string) (float64, error) {
	val, err := i.evaluateExpression(expr, env)
	if err != nil {
		return 0, err
	}
	num, ok := val.(runtime.NumberValue)
	if !ok {
		return 0, raise(runtime.NewError(runtime.TypeError,
			"%s must be a number, got %s", what, val.Kind()).At(expr.Position()))
	}
	return num.Val, nil
}

func (i *Interpreter) evaluateUnaryExpression(expr *ast.UnaryExpression, env *runtime.Environment) (runtime.Value, error) {
	operand, err := i.evaluateExpression(expr.Operand, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case "-":
		num, ok := operand.(runtime.NumberValue)
		if !ok {
			return nil, raise(runtime.NewError(runtime.TypeError,
				"unary '-' expects a number, got %s", operand.Kind()).At(expr.Position()))
		}
		return runtime.NumberValue{Val: -num.Val}, nil
	case "!":
		return runtime.BoolValue{Val: !runtime.Truthy(operand)}, nil
	default:
		return nil, fmt.Errorf("unsupported unary operator %s", expr.Operator)
	}
}

func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	// Logical operators short-circuit, so they evaluate their own operands.
	switch expr.Operator {
	case "&&":
		left, err := i.evaluateExpression(expr.Left, env)
		if err != nil {
			return nil, err
		}
		if !runtime.Truthy(left) {
			return runtime.BoolValue{Val: false}, nil
		}
		right, err := i.evaluateExpression(expr.Right, env)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: runtime.Truthy(right)}, nil
	case "||":
		left, err := i.evaluateExpression(expr.Left, env)
		if err != nil {
			return nil, err
		}
		if runtime.Truthy(left) {
			return runtime.BoolValue{Val: true}, nil
		}
		right, err := i.evaluateExpression(expr.Right, env)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: runtime.Truthy(right)}, nil
	}

	leftVal, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	rightVal, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}

	switch expr.Operator {
	case "+", "-", "*", "/", "%":
		val, aerr := evaluateArithmetic(expr.Operator, leftVal, rightVal)
		if aerr != nil {
			return nil, raise(aerr.At(expr.Position()))
		}
		return val, nil
	case "<", "<=", ">", ">=":
		val, cerr := evaluateComparison(expr.Operator, leftVal, rightVal)
		if cerr != nil {
			return nil, raise(cerr.At(expr.Position()))
		}
		return val, nil
	case "==", "!=":
		eq := runtime.Equal(leftVal, rightVal)
		if expr.Operator == "!=" {
			eq = !eq
		}
		return runtime.BoolValue{Val: eq}, nil
	default:
		return nil, fmt.Errorf("unsupported binary operator %s", expr.Operator)
	}
}

func evaluateArithmetic(op string, left, right runtime.Value) (runtime.Value, *runtime.Error) {
	if op == "+" {
		switch lv := left.(type) {
		case runtime.StringValue:
			if rv, ok := right.(runtime.StringValue); ok {
				return runtime.StringValue{Val: lv.Val + rv.Val}, nil
			}
		case *runtime.ListValue:
			if rv, ok := right.(*runtime.ListValue); ok {
				joined := make([]runtime.Value, 0, len(lv.Elements)+len(rv.Elements))
				joined = append(joined, lv.Elements...)
				joined = append(joined, rv.Elements...)
				return &runtime.ListValue{Elements: joined}, nil
			}
		}
	}
	ln, lok := left.(runtime.NumberValue)
	rn, rok := right.(runtime.NumberValue)
	if !lok || !rok {
		return nil, runtime.NewError(runtime.TypeError,
			"operator '%s' expects numbers, got %s and %s", op, left.Kind(), right.Kind())
	}
	switch op {
	case "+":
		return runtime.NumberValue{Val: ln.Val + rn.Val}, nil
	case "-":
		return runtime.NumberValue{Val: ln.Val - rn.Val}, nil
	case "*":
		return runtime.NumberValue{Val: ln.Val * rn.Val}, nil
	case "/":
		if rn.Val == 0 {
			return nil, runtime.NewError(runtime.TypeError, "division by zero")
		}
		return runtime.NumberValue{Val: ln.Val / rn.Val}, nil
	case "%":
		if rn.Val == 0 {
			return nil, runtime.NewError(runtime.TypeError, "modulo by zero")
		}
		return runtime.NumberValue{Val: math.Mod(ln.Val, rn.Val)}, nil
	}
	return nil, runtime.NewError(runtime.TypeError, "unsupported arithmetic operator '%s'", op)
}

func evaluateComparison(op string, left, right runtime.Value) (runtime.Value, *runtime.Error) {
	var cmp int
	switch lv := left.(type) {
	case runtime.NumberValue:
		rv, ok := right.(runtime.NumberValue)
		if !ok {
			return nil, runtime.NewError(runtime.TypeError,
				"operator '%s' cannot compare %s with %s", op, left.Kind(), right.Kind())
		}
		switch {
		case lv.Val < rv.Val:
			cmp = -1
		case lv.Val > rv.Val:
			cmp = 1
		}
	case runtime.StringValue:
		rv, ok := right.(runtime.StringValue)
		if !ok {
			return nil, runtime.NewError(runtime.TypeError,
				"operator '%s' cannot compare %s with %s", op, left.Kind(), right.Kind())
		}
		switch {
		case lv.Val < rv.Val:
			cmp = -1
		case lv.Val > rv.Val:
			cmp = 1
		}
	default:
		return nil, runtime.NewError(runtime.TypeError,
			"operator '%s' cannot compare %s values", op, left.Kind())
	}
	var result bool
	switch op {
	case "<":
		result = cmp < 0
	case "<=":
		result = cmp <= 0
	case ">":
		result = cmp > 0
	case ">=":
		result = cmp >= 0
	}
	return runtime.BoolValue{Val: result}, nil
}

func (i *Interpreter) evaluateFunctionCall(call *ast.FunctionCall, env *runtime.Environment) (runtime.Value, error) {
	calleeVal, err := i.evaluateExpression(call.Callee, env)
	if err != nil {
		return nil, err
	}
	// Arguments are evaluated in the caller's scope, left to right, before
	// any scope switch.
	args := make([]runtime.Value, 0, len(call.Arguments))
	for _, argExpr := range call.Arguments {
		val, err := i.evaluateExpression(argExpr, env)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}
	switch fn := calleeVal.(type) {
	case *runtime.FunctionValue:
		return i.invokeFunction(fn, args, call.Position())
	case runtime.NativeFunctionValue:
		if fn.Arity >= 0 && len(args) != fn.Arity {
			return nil, raise(runtime.NewError(runtime.ParameterCountError,
				"function '%s' expects %d arguments, got %d", fn.Name, fn.Arity, len(args)).At(call.Position()))
		}
		ctx := &runtime.NativeCallContext{Env: env}
		result, err := fn.Impl(ctx, args)
		if err != nil {
			return nil, asRaise(err)
		}
		if result == nil {
			return runtime.NilValue{}, nil
		}
		return result, nil
	default:
		return nil, raise(runtime.NewError(runtime.TypeError,
			"value of kind %s is not callable", calleeVal.Kind()).At(call.Position()))
	}
}

func (i *Interpreter) evaluateMemberAccess(expr *ast.MemberAccessExpression, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluateExpression(expr.Object, env)
	if err != nil {
		return nil, err
	}
	member := expr.Member.Name
	switch obj := object.(type) {
	case *runtime.ModuleValue:
		return i.resolveModuleMember(obj, member, expr.Position())
	case *runtime.MapValue:
		if val, ok := obj.Get(runtime.StringValue{Val: member}); ok {
			return val, nil
		}
		return nil, raise(runtime.NewError(runtime.AttributeError,
			"map has no key '%s'", member).At(expr.Position()))
	case *runtime.Error:
		switch member {
		case "kind":
			return runtime.StringValue{Val: string(obj.ErrKind)}, nil
		case "message":
			return runtime.StringValue{Val: obj.Message}, nil
		case "payload":
			if obj.Payload == nil {
				return runtime.NilValue{}, nil
			}
			return obj.Payload, nil
		}
		return nil, raise(runtime.NewError(runtime.AttributeError,
			"error has no attribute '%s'", member).At(expr.Position()))
	default:
		return nil, raise(runtime.NewError(runtime.AttributeError,
			"value of kind %s has no attribute '%s'", object.Kind(), member).At(expr.Position()))
	}
}

// resolveModuleMember resolves through the module's member table, never the
// environment chain. A registered handle in the module table takes precedence
// so stale handles cannot shadow a reloaded module.
func (i *Interpreter) resolveModuleMember(mod *runtime.ModuleValue, member string, pos *ast.Position) (runtime.Value, error) {
	if registered, ok := i.modules[mod.Name]; ok {
		mod = registered
	}
	if val, ok := mod.Member(member); ok {
		return val, nil
	}
	return nil, raise(runtime.NewError(runtime.AttributeError,
		"module '%s' has no member '%s'", mod.Name, member).At(pos))
}

func (i *Interpreter) evaluateIndexExpression(expr *ast.IndexExpression, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluateExpression(expr.Object, env)
	if err != nil {
		return nil, err
	}
	index, err := i.evaluateExpression(expr.Index, env)
	if err != nil {
		return nil, err
	}
	switch obj := object.(type) {
	case *runtime.ListValue:
		idx, ierr := listIndex(index, len(obj.Elements))
		if ierr != nil {
			return nil, raise(ierr.At(expr.Position()))
		}
		return obj.Elements[idx], nil
	case runtime.StringValue:
		runes := []rune(obj.Val)
		idx, ierr := listIndex(index, len(runes))
		if ierr != nil {
			return nil, raise(ierr.At(expr.Position()))
		}
		return runtime.StringValue{Val: string(runes[idx])}, nil
	case *runtime.MapValue:
		if val, ok := obj.Get(index); ok {
			return val, nil
		}
		return nil, raise(runtime.NewError(runtime.AttributeError,
			"map has no key %s", runtime.ToString(index)).At(expr.Position()))
	default:
		return nil, raise(runtime.NewError(runtime.TypeError,
			"value of kind %s is not indexable", object.Kind()).At(expr.Position()))
	}
}

func listIndex(index runtime.Value, length int) (int, *runtime.Error) {
	num, ok := index.(runtime.NumberValue)
	if !ok {
		return 0, runtime.NewError(runtime.TypeError, "index must be a number, got %s", index.Kind())
	}
	idx := int(num.Val)
	if float64(idx) != num.Val {
		return 0, runtime.NewError(runtime.TypeError, "index must be an integer, got %s", runtime.FormatNumber(num.Val))
	}
	if idx < 0 {
		idx += length
	}
	if idx < 0 || idx >= length {
		return 0, runtime.NewError(runtime.TypeError, "index %d out of range (length %d)", idx, length)
	}
	return idx, nil
}

func (i *Interpreter) evaluateAssignment(assign *ast.AssignmentExpression, env *runtime.Environment) (runtime.Value, error) {
	value, err := i.evaluateExpression(assign.Right, env)
	if err != nil {
		return nil, err
	}
	isDeclaration := assign.Operator == ast.AssignmentDeclare
	if !isDeclaration && assign.Operator != ast.AssignmentAssign {
		return nil, fmt.Errorf("unsupported assignment operator %s", assign.Operator)
	}

	switch lhs := assign.Left.(type) {
	case *ast.Identifier:
		if isDeclaration {
			env.Define(lhs.Name, value)
		} else if err := env.Assign(lhs.Name, value); err != nil {
			return nil, asRaise(err)
		}
	case *ast.IndexExpression:
		if isDeclaration {
			return nil, raise(runtime.NewError(runtime.TypeError,
				"cannot declare into an index expression").At(assign.Position()))
		}
		if err := i.assignIndex(lhs, value, env); err != nil {
			return nil, err
		}
	case ast.Pattern:
		if err := i.destructure(lhs, value, env, isDeclaration); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported assignment target %s", lhs.NodeType())
	}
	return value, nil
}

func (i *Interpreter) assignIndex(target *ast.IndexExpression, value runtime.Value, env *runtime.Environment) error {
	object, err := i.evaluateExpression(target.Object, env)
	if err != nil {
		return err
	}
	index, err := i.evaluateExpression(target.Index, env)
	if err != nil {
		return err
	}
	switch obj := object.(type) {
	case *runtime.ListValue:
		idx, ierr := listIndex(index, len(obj.Elements))
		if ierr != nil {
			return raise(ierr.At(target.Position()))
		}
		obj.Elements[idx] = value
		return nil
	case *runtime.MapValue:
		if !obj.Set(index, value) {
			return raise(runtime.NewError(runtime.TypeError,
				"map key of kind %s is not hashable", index.Kind()).At(target.Position()))
		}
		return nil
	default:
		return raise(runtime.NewError(runtime.TypeError,
			"cannot assign into value of kind %s", object.Kind()).At(target.Position()))
	}
}

func (i *Interpreter) evaluateIfExpression(expr *ast.IfExpression, env *runtime.Environment) (runtime.Value, error) {
	cond, err := i.evaluateExpression(expr.IfCondition, env)
	if err != nil {
		return nil, err
	}
	if runtime.Truthy(cond) {
		return i.evaluateBlock(expr.IfBody, env)
	}
	for _, clause := range expr.OrClauses {
		if clause.Condition != nil {
			clauseCond, err := i.evaluateExpression(clause.Condition, env)
			if err != nil {
				return nil, err
			}
			if !runtime.Truthy(clauseCond) {
				continue
			}
		}
		return i.evaluateBlock(clause.Body, env)
	}
	return runtime.NilValue{}, nil
}

// evaluateTryExpression runs the try body, routes raised errors through the
// catch clauses, and runs finally exactly once on every exit path. An error
// raised inside finally replaces whatever was propagating.
func (i *Interpreter) evaluateTryExpression(expr *ast.TryExpression, env *runtime.Environment) (runtime.Value, error) {
	result, err := i.evaluateBlock(expr.Body, env)
	if rs, ok := err.(raiseSignal); ok {
		for _, clause := range expr.Clauses {
			if clause.TypeName != nil && clause.TypeName.Name != runtime.TypeName(rs.value) {
				continue
			}
			clauseEnv := env.Extend()
			if clause.Binding != nil {
				clauseEnv.Define(clause.Binding.Name, rs.value)
			}
			result, err = i.evaluateBlockIn(clause.Body, clauseEnv)
			break
		}
	}
	if expr.Finally != nil {
		if _, ferr := i.evaluateBlock(expr.Finally, env); ferr != nil {
			return nil, ferr
		}
	}
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = runtime.NilValue{}
	}
	return result, nil
}
