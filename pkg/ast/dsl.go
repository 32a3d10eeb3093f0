package ast

// Terse constructors used by tests and host embedders.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Num(value float64) *NumberLiteral {
	return NewNumberLiteral(value)
}

func Int(value int64) *NumberLiteral {
	return NewNumberLiteral(float64(value))
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Nil() *NilLiteral {
	return NewNilLiteral()
}

func List(elements ...Expression) *ListLiteral {
	return NewListLiteral(elements)
}

func Tup(elements ...Expression) *TupleLiteral {
	return NewTupleLiteral(elements)
}

func Entry(key, value Expression) *MapEntry {
	return NewMapEntry(key, value)
}

func MapLit(entries ...*MapEntry) *MapLiteral {
	return NewMapLiteral(entries)
}

func SetLit(elements ...Expression) *SetLiteral {
	return NewSetLiteral(elements)
}

func Range(start, end Expression, inclusive bool) *RangeExpression {
	return NewRangeExpression(start, end, inclusive)
}

// Expression helpers.

func Un(operator string, operand Expression) *UnaryExpression {
	return NewUnaryExpression(operator, operand)
}

func Bin(operator string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(operator, left, right)
}

func CallExpr(callee Expression, args ...Expression) *FunctionCall {
	return NewFunctionCall(callee, args)
}

func Call(name string, args ...Expression) *FunctionCall {
	return NewFunctionCall(ID(name), args)
}

func Member(object Expression, member string) *MemberAccessExpression {
	return NewMemberAccessExpression(object, ID(member))
}

func Index(object, index Expression) *IndexExpression {
	return NewIndexExpression(object, index)
}

func Block(statements ...Statement) *BlockExpression {
	return NewBlockExpression(statements)
}

// Assign declares (or shadows) a binding in the current scope.
func Assign(left AssignmentTarget, value Expression) *AssignmentExpression {
	return NewAssignmentExpression(AssignmentDeclare, left, value)
}

// Reassign mutates the nearest existing binding.
func Reassign(left AssignmentTarget, value Expression) *AssignmentExpression {
	return NewAssignmentExpression(AssignmentAssign, left, value)
}

func Or(condition Expression, statements ...Statement) *OrClause {
	return NewOrClause(Block(statements...), condition)
}

func Else(statements ...Statement) *OrClause {
	return NewOrClause(Block(statements...), nil)
}

func IfExpr(condition Expression, body *BlockExpression, orClauses ...*OrClause) *IfExpression {
	return NewIfExpression(condition, body, orClauses)
}

func Iff(condition Expression, statements ...Statement) *IfExpression {
	return NewIfExpression(condition, Block(statements...), nil)
}

func Mc(pattern Pattern, body Expression, guard ...Expression) *MatchClause {
	var g Expression
	if len(guard) > 0 {
		g = guard[0]
	}
	return NewMatchClause(pattern, body, g)
}

func Match(subject Expression, clauses ...*MatchClause) *MatchExpression {
	return NewMatchExpression(subject, clauses)
}

func CatchAll(binding string, statements ...Statement) *CatchClause {
	var b *Identifier
	if binding != "" {
		b = ID(binding)
	}
	return NewCatchClause(nil, b, Block(statements...))
}

func Catch(typeName, binding string, statements ...Statement) *CatchClause {
	var b *Identifier
	if binding != "" {
		b = ID(binding)
	}
	return NewCatchClause(ID(typeName), b, Block(statements...))
}

func Try(body *BlockExpression, clauses ...*CatchClause) *TryExpression {
	return NewTryExpression(body, clauses, nil)
}

func TryFinally(body *BlockExpression, finally *BlockExpression, clauses ...*CatchClause) *TryExpression {
	return NewTryExpression(body, clauses, finally)
}

func Lam(params []*Identifier, statements ...Statement) *LambdaExpression {
	return NewLambdaExpression(params, Block(statements...))
}

// Comprehension helpers.

func CompFor(pattern interface{}, iterable Expression) *ComprehensionFor {
	return NewComprehensionFor(PatternFrom(pattern), iterable)
}

func ListComp(element Expression, clauses []*ComprehensionFor, conditions ...Expression) *ListComprehension {
	return NewListComprehension(element, clauses, conditions)
}

func DictComp(key, value Expression, clauses []*ComprehensionFor, conditions ...Expression) *DictComprehension {
	return NewDictComprehension(key, value, clauses, conditions)
}

func SetComp(element Expression, clauses []*ComprehensionFor, conditions ...Expression) *SetComprehension {
	return NewSetComprehension(element, clauses, conditions)
}

// Pattern helpers.

func Wc() *WildcardPattern {
	return NewWildcardPattern()
}

func LitP(literal Expression) *LiteralPattern {
	return NewLiteralPattern(literal)
}

func TupP(elements ...Pattern) *TuplePattern {
	return NewTuplePattern(elements)
}

func ListP(elements []Pattern, rest Pattern) *ListPattern {
	return NewListPattern(elements, rest)
}

func EntryP(key Expression, pattern Pattern) *MapPatternEntry {
	return NewMapPatternEntry(key, pattern)
}

func MapP(entries ...*MapPatternEntry) *MapPattern {
	return NewMapPattern(entries)
}

func TypeP(typeName string) *TypePattern {
	return NewTypePattern(ID(typeName))
}

func RangeP(lo, hi Expression, inclusive bool) *RangePattern {
	return NewRangePattern(lo, hi, inclusive)
}

func GuardP(base Pattern, condition Expression) *GuardedPattern {
	return NewGuardedPattern(base, condition)
}

// PatternFrom accepts a string (identifier), a Pattern, or nil (wildcard).
func PatternFrom(value interface{}) Pattern {
	switch v := value.(type) {
	case nil:
		return Wc()
	case string:
		return ID(v)
	case Pattern:
		return v
	default:
		panic("ast: unsupported pattern source")
	}
}

// Statement helpers.

func Fn(name string, params []string, statements ...Statement) *FunctionDefinition {
	ids := make([]*Identifier, 0, len(params))
	for _, p := range params {
		ids = append(ids, ID(p))
	}
	return NewFunctionDefinition(ID(name), ids, Block(statements...))
}

func Params(names ...string) []*Identifier {
	ids := make([]*Identifier, 0, len(names))
	for _, n := range names {
		ids = append(ids, ID(n))
	}
	return ids
}

func Ret(argument Expression) *ReturnStatement {
	return NewReturnStatement(argument)
}

func Raise(expression Expression) *RaiseStatement {
	return NewRaiseStatement(expression)
}

func Brk(label string) *BreakStatement {
	if label == "" {
		return NewBreakStatement(nil)
	}
	return NewBreakStatement(ID(label))
}

func Cont(label string) *ContinueStatement {
	if label == "" {
		return NewContinueStatement(nil)
	}
	return NewContinueStatement(ID(label))
}

func While(condition Expression, statements ...Statement) *WhileLoop {
	return NewWhileLoop(nil, condition, Block(statements...), nil)
}

func WhileLabeled(label string, condition Expression, statements ...Statement) *WhileLoop {
	return NewWhileLoop(ID(label), condition, Block(statements...), nil)
}

func WhileElse(condition Expression, body *BlockExpression, elseBlock *BlockExpression) *WhileLoop {
	return NewWhileLoop(nil, condition, body, elseBlock)
}

func LoopUntil(condition Expression, statements ...Statement) *UntilLoop {
	return NewUntilLoop(nil, Block(statements...), condition)
}

func LoopUntilLabeled(label string, condition Expression, statements ...Statement) *UntilLoop {
	return NewUntilLoop(ID(label), Block(statements...), condition)
}

func ForIn(pattern interface{}, iterable Expression, statements ...Statement) *ForLoop {
	return NewForLoop(nil, PatternFrom(pattern), iterable, Block(statements...))
}

func ForInLabeled(label string, pattern interface{}, iterable Expression, statements ...Statement) *ForLoop {
	return NewForLoop(ID(label), PatternFrom(pattern), iterable, Block(statements...))
}

func Import(path ...string) *ImportStatement {
	ids := make([]*Identifier, 0, len(path))
	for _, p := range path {
		ids = append(ids, ID(p))
	}
	return NewImportStatement(ids, nil)
}

func ImportAs(alias string, path ...string) *ImportStatement {
	imp := Import(path...)
	imp.Alias = ID(alias)
	return imp
}

func Mod(statements ...Statement) *Module {
	return NewModule(statements)
}
