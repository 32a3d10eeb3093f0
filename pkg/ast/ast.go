package ast

type NodeType string

const (
	NodeIdentifier          NodeType = "Identifier"
	NodeStringLiteral       NodeType = "StringLiteral"
	NodeNumberLiteral       NodeType = "NumberLiteral"
	NodeBooleanLiteral      NodeType = "BooleanLiteral"
	NodeNilLiteral          NodeType = "NilLiteral"
	NodeListLiteral         NodeType = "ListLiteral"
	NodeTupleLiteral        NodeType = "TupleLiteral"
	NodeMapLiteral          NodeType = "MapLiteral"
	NodeMapEntry            NodeType = "MapEntry"
	NodeSetLiteral          NodeType = "SetLiteral"
	NodeRangeExpression     NodeType = "RangeExpression"
	NodeUnaryExpression     NodeType = "UnaryExpression"
	NodeBinaryExpression    NodeType = "BinaryExpression"
	NodeFunctionCall        NodeType = "FunctionCall"
	NodeMemberAccess        NodeType = "MemberAccessExpression"
	NodeIndexExpression     NodeType = "IndexExpression"
	NodeAssignment          NodeType = "AssignmentExpression"
	NodeBlockExpression     NodeType = "BlockExpression"
	NodeIfExpression        NodeType = "IfExpression"
	NodeOrClause            NodeType = "OrClause"
	NodeMatchExpression     NodeType = "MatchExpression"
	NodeMatchClause         NodeType = "MatchClause"
	NodeTryExpression       NodeType = "TryExpression"
	NodeCatchClause         NodeType = "CatchClause"
	NodeLambdaExpression    NodeType = "LambdaExpression"
	NodeListComprehension   NodeType = "ListComprehension"
	NodeDictComprehension   NodeType = "DictComprehension"
	NodeSetComprehension    NodeType = "SetComprehension"
	NodeComprehensionFor    NodeType = "ComprehensionFor"
	NodeWildcardPattern     NodeType = "WildcardPattern"
	NodeLiteralPattern      NodeType = "LiteralPattern"
	NodeTuplePattern        NodeType = "TuplePattern"
	NodeListPattern         NodeType = "ListPattern"
	NodeMapPattern          NodeType = "MapPattern"
	NodeMapPatternEntry     NodeType = "MapPatternEntry"
	NodeTypePattern         NodeType = "TypePattern"
	NodeRangePattern        NodeType = "RangePattern"
	NodeGuardedPattern      NodeType = "GuardedPattern"
	NodeFunctionDefinition  NodeType = "FunctionDefinition"
	NodeReturnStatement     NodeType = "ReturnStatement"
	NodeRaiseStatement      NodeType = "RaiseStatement"
	NodeBreakStatement      NodeType = "BreakStatement"
	NodeContinueStatement   NodeType = "ContinueStatement"
	NodeWhileLoop           NodeType = "WhileLoop"
	NodeUntilLoop           NodeType = "UntilLoop"
	NodeForLoop             NodeType = "ForLoop"
	NodeImportStatement     NodeType = "ImportStatement"
	NodeModule              NodeType = "Module"
)

// Position is an optional source location supplied by the parser.
type Position struct {
	Line int `json:"line" yaml:"line"`
	Col  int `json:"col" yaml:"col"`
}

type Node interface {
	NodeType() NodeType
	Position() *Position
	isNode()
}

type nodeImpl struct {
	Type NodeType  `json:"type" yaml:"type"`
	Pos  *Position `json:"pos,omitempty" yaml:"pos,omitempty"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType  { return n.Type }
func (n nodeImpl) Position() *Position { return n.Pos }
func (nodeImpl) isNode()               {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type Pattern interface {
	Node
	patternNode()
}

type patternMarker struct{}

func (patternMarker) patternNode() {}

//-----------------------------------------------------------------------------
// Identifiers and literals
//-----------------------------------------------------------------------------

type Identifier struct {
	nodeImpl
	expressionMarker
	statementMarker
	patternMarker

	Name string `json:"name" yaml:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Value string `json:"value" yaml:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type NumberLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Value float64 `json:"value" yaml:"value"`
}

func NewNumberLiteral(value float64) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Value bool `json:"value" yaml:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type NilLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
}

func NewNilLiteral() *NilLiteral {
	return &NilLiteral{nodeImpl: newNodeImpl(NodeNilLiteral)}
}

type ListLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Elements []Expression `json:"elements" yaml:"elements"`
}

func NewListLiteral(elements []Expression) *ListLiteral {
	return &ListLiteral{nodeImpl: newNodeImpl(NodeListLiteral), Elements: elements}
}

// TupleLiteral evaluates to a list value; it exists so tuple patterns can
// insist on exact arity while list patterns allow a rest tail.
type TupleLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Elements []Expression `json:"elements" yaml:"elements"`
}

func NewTupleLiteral(elements []Expression) *TupleLiteral {
	return &TupleLiteral{nodeImpl: newNodeImpl(NodeTupleLiteral), Elements: elements}
}

type MapEntry struct {
	nodeImpl

	Key   Expression `json:"key" yaml:"key"`
	Value Expression `json:"value" yaml:"value"`
}

func NewMapEntry(key, value Expression) *MapEntry {
	return &MapEntry{nodeImpl: newNodeImpl(NodeMapEntry), Key: key, Value: value}
}

type MapLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Entries []*MapEntry `json:"entries" yaml:"entries"`
}

func NewMapLiteral(entries []*MapEntry) *MapLiteral {
	return &MapLiteral{nodeImpl: newNodeImpl(NodeMapLiteral), Entries: entries}
}

type SetLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Elements []Expression `json:"elements" yaml:"elements"`
}

func NewSetLiteral(elements []Expression) *SetLiteral {
	return &SetLiteral{nodeImpl: newNodeImpl(NodeSetLiteral), Elements: elements}
}

type RangeExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Start     Expression `json:"start" yaml:"start"`
	End       Expression `json:"end" yaml:"end"`
	Inclusive bool       `json:"inclusive" yaml:"inclusive"`
}

func NewRangeExpression(start, end Expression, inclusive bool) *RangeExpression {
	return &RangeExpression{nodeImpl: newNodeImpl(NodeRangeExpression), Start: start, End: end, Inclusive: inclusive}
}

//-----------------------------------------------------------------------------
// Expressions
//-----------------------------------------------------------------------------

type UnaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator string     `json:"operator" yaml:"operator"`
	Operand  Expression `json:"operand" yaml:"operand"`
}

func NewUnaryExpression(operator string, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Operand: operand}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator string     `json:"operator" yaml:"operator"`
	Left     Expression `json:"left" yaml:"left"`
	Right    Expression `json:"right" yaml:"right"`
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

type FunctionCall struct {
	nodeImpl
	expressionMarker
	statementMarker

	Callee    Expression   `json:"callee" yaml:"callee"`
	Arguments []Expression `json:"arguments" yaml:"arguments"`
}

func NewFunctionCall(callee Expression, args []Expression) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Callee: callee, Arguments: args}
}

type MemberAccessExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Object Expression  `json:"object" yaml:"object"`
	Member *Identifier `json:"member" yaml:"member"`
}

func NewMemberAccessExpression(object Expression, member *Identifier) *MemberAccessExpression {
	return &MemberAccessExpression{nodeImpl: newNodeImpl(NodeMemberAccess), Object: object, Member: member}
}

type IndexExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Object Expression `json:"object" yaml:"object"`
	Index  Expression `json:"index" yaml:"index"`
}

func NewIndexExpression(object, index Expression) *IndexExpression {
	return &IndexExpression{nodeImpl: newNodeImpl(NodeIndexExpression), Object: object, Index: index}
}

type AssignmentOperator string

const (
	AssignmentDeclare AssignmentOperator = ":="
	AssignmentAssign  AssignmentOperator = "="
)

// AssignmentTarget is an Identifier, a Pattern (destructuring), or an
// IndexExpression.
type AssignmentTarget interface {
	Node
	assignmentTargetNode()
}

func (*Identifier) assignmentTargetNode()      {}
func (*WildcardPattern) assignmentTargetNode() {}
func (*LiteralPattern) assignmentTargetNode()  {}
func (*TuplePattern) assignmentTargetNode()    {}
func (*ListPattern) assignmentTargetNode()     {}
func (*MapPattern) assignmentTargetNode()      {}
func (*TypePattern) assignmentTargetNode()     {}
func (*RangePattern) assignmentTargetNode()    {}
func (*GuardedPattern) assignmentTargetNode()  {}
func (*IndexExpression) assignmentTargetNode() {}

type AssignmentExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator AssignmentOperator `json:"operator" yaml:"operator"`
	Left     AssignmentTarget   `json:"left" yaml:"left"`
	Right    Expression         `json:"right" yaml:"right"`
}

func NewAssignmentExpression(operator AssignmentOperator, left AssignmentTarget, right Expression) *AssignmentExpression {
	return &AssignmentExpression{nodeImpl: newNodeImpl(NodeAssignment), Operator: operator, Left: left, Right: right}
}

type BlockExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Body []Statement `json:"body" yaml:"body"`
}

func NewBlockExpression(body []Statement) *BlockExpression {
	return &BlockExpression{nodeImpl: newNodeImpl(NodeBlockExpression), Body: body}
}

type OrClause struct {
	nodeImpl

	Condition Expression       `json:"condition,omitempty" yaml:"condition,omitempty"`
	Body      *BlockExpression `json:"body" yaml:"body"`
}

func NewOrClause(body *BlockExpression, condition Expression) *OrClause {
	return &OrClause{nodeImpl: newNodeImpl(NodeOrClause), Condition: condition, Body: body}
}

type IfExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	IfCondition Expression       `json:"ifCondition" yaml:"ifCondition"`
	IfBody      *BlockExpression `json:"ifBody" yaml:"ifBody"`
	OrClauses   []*OrClause      `json:"orClauses,omitempty" yaml:"orClauses,omitempty"`
}

func NewIfExpression(ifCondition Expression, ifBody *BlockExpression, orClauses []*OrClause) *IfExpression {
	return &IfExpression{nodeImpl: newNodeImpl(NodeIfExpression), IfCondition: ifCondition, IfBody: ifBody, OrClauses: orClauses}
}

type MatchClause struct {
	nodeImpl

	Pattern Pattern    `json:"pattern" yaml:"pattern"`
	Guard   Expression `json:"guard,omitempty" yaml:"guard,omitempty"`
	Body    Expression `json:"body" yaml:"body"`
}

func NewMatchClause(pattern Pattern, body Expression, guard Expression) *MatchClause {
	return &MatchClause{nodeImpl: newNodeImpl(NodeMatchClause), Pattern: pattern, Guard: guard, Body: body}
}

type MatchExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Subject Expression     `json:"subject" yaml:"subject"`
	Clauses []*MatchClause `json:"clauses" yaml:"clauses"`
}

func NewMatchExpression(subject Expression, clauses []*MatchClause) *MatchExpression {
	return &MatchExpression{nodeImpl: newNodeImpl(NodeMatchExpression), Subject: subject, Clauses: clauses}
}

type CatchClause struct {
	nodeImpl

	// TypeName restricts the clause to exceptions of that kind; nil matches
	// anything.
	TypeName *Identifier      `json:"typeName,omitempty" yaml:"typeName,omitempty"`
	Binding  *Identifier      `json:"binding,omitempty" yaml:"binding,omitempty"`
	Body     *BlockExpression `json:"body" yaml:"body"`
}

func NewCatchClause(typeName, binding *Identifier, body *BlockExpression) *CatchClause {
	return &CatchClause{nodeImpl: newNodeImpl(NodeCatchClause), TypeName: typeName, Binding: binding, Body: body}
}

type TryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Body    *BlockExpression `json:"body" yaml:"body"`
	Clauses []*CatchClause   `json:"clauses,omitempty" yaml:"clauses,omitempty"`
	Finally *BlockExpression `json:"finally,omitempty" yaml:"finally,omitempty"`
}

func NewTryExpression(body *BlockExpression, clauses []*CatchClause, finally *BlockExpression) *TryExpression {
	return &TryExpression{nodeImpl: newNodeImpl(NodeTryExpression), Body: body, Clauses: clauses, Finally: finally}
}

type LambdaExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Params []*Identifier    `json:"params" yaml:"params"`
	Body   *BlockExpression `json:"body" yaml:"body"`
}

func NewLambdaExpression(params []*Identifier, body *BlockExpression) *LambdaExpression {
	return &LambdaExpression{nodeImpl: newNodeImpl(NodeLambdaExpression), Params: params, Body: body}
}

//-----------------------------------------------------------------------------
// Comprehensions
//-----------------------------------------------------------------------------

type ComprehensionFor struct {
	nodeImpl

	Pattern  Pattern    `json:"pattern" yaml:"pattern"`
	Iterable Expression `json:"iterable" yaml:"iterable"`
}

func NewComprehensionFor(pattern Pattern, iterable Expression) *ComprehensionFor {
	return &ComprehensionFor{nodeImpl: newNodeImpl(NodeComprehensionFor), Pattern: pattern, Iterable: iterable}
}

type ListComprehension struct {
	nodeImpl
	expressionMarker
	statementMarker

	Element    Expression          `json:"element" yaml:"element"`
	Clauses    []*ComprehensionFor `json:"clauses" yaml:"clauses"`
	Conditions []Expression        `json:"conditions,omitempty" yaml:"conditions,omitempty"`
}

func NewListComprehension(element Expression, clauses []*ComprehensionFor, conditions []Expression) *ListComprehension {
	return &ListComprehension{nodeImpl: newNodeImpl(NodeListComprehension), Element: element, Clauses: clauses, Conditions: conditions}
}

type DictComprehension struct {
	nodeImpl
	expressionMarker
	statementMarker

	Key        Expression          `json:"key" yaml:"key"`
	Value      Expression          `json:"value" yaml:"value"`
	Clauses    []*ComprehensionFor `json:"clauses" yaml:"clauses"`
	Conditions []Expression        `json:"conditions,omitempty" yaml:"conditions,omitempty"`
}

func NewDictComprehension(key, value Expression, clauses []*ComprehensionFor, conditions []Expression) *DictComprehension {
	return &DictComprehension{nodeImpl: newNodeImpl(NodeDictComprehension), Key: key, Value: value, Clauses: clauses, Conditions: conditions}
}

type SetComprehension struct {
	nodeImpl
	expressionMarker
	statementMarker

	Element    Expression          `json:"element" yaml:"element"`
	Clauses    []*ComprehensionFor `json:"clauses" yaml:"clauses"`
	Conditions []Expression        `json:"conditions,omitempty" yaml:"conditions,omitempty"`
}

func NewSetComprehension(element Expression, clauses []*ComprehensionFor, conditions []Expression) *SetComprehension {
	return &SetComprehension{nodeImpl: newNodeImpl(NodeSetComprehension), Element: element, Clauses: clauses, Conditions: conditions}
}

//-----------------------------------------------------------------------------
// Patterns
//-----------------------------------------------------------------------------

type WildcardPattern struct {
	nodeImpl
	patternMarker
}

func NewWildcardPattern() *WildcardPattern {
	return &WildcardPattern{nodeImpl: newNodeImpl(NodeWildcardPattern)}
}

type LiteralPattern struct {
	nodeImpl
	patternMarker

	Literal Expression `json:"literal" yaml:"literal"`
}

func NewLiteralPattern(literal Expression) *LiteralPattern {
	return &LiteralPattern{nodeImpl: newNodeImpl(NodeLiteralPattern), Literal: literal}
}

type TuplePattern struct {
	nodeImpl
	patternMarker

	Elements []Pattern `json:"elements" yaml:"elements"`
}

func NewTuplePattern(elements []Pattern) *TuplePattern {
	return &TuplePattern{nodeImpl: newNodeImpl(NodeTuplePattern), Elements: elements}
}

type ListPattern struct {
	nodeImpl
	patternMarker

	Elements []Pattern `json:"elements" yaml:"elements"`
	Rest     Pattern   `json:"rest,omitempty" yaml:"rest,omitempty"`
}

func NewListPattern(elements []Pattern, rest Pattern) *ListPattern {
	return &ListPattern{nodeImpl: newNodeImpl(NodeListPattern), Elements: elements, Rest: rest}
}

type MapPatternEntry struct {
	nodeImpl

	Key     Expression `json:"key" yaml:"key"`
	Pattern Pattern    `json:"pattern" yaml:"pattern"`
}

func NewMapPatternEntry(key Expression, pattern Pattern) *MapPatternEntry {
	return &MapPatternEntry{nodeImpl: newNodeImpl(NodeMapPatternEntry), Key: key, Pattern: pattern}
}

type MapPattern struct {
	nodeImpl
	patternMarker

	Entries []*MapPatternEntry `json:"entries" yaml:"entries"`
}

func NewMapPattern(entries []*MapPatternEntry) *MapPattern {
	return &MapPattern{nodeImpl: newNodeImpl(NodeMapPattern), Entries: entries}
}

type TypePattern struct {
	nodeImpl
	patternMarker

	TypeName *Identifier `json:"typeName" yaml:"typeName"`
}

func NewTypePattern(typeName *Identifier) *TypePattern {
	return &TypePattern{nodeImpl: newNodeImpl(NodeTypePattern), TypeName: typeName}
}

type RangePattern struct {
	nodeImpl
	patternMarker

	Lo        Expression `json:"lo" yaml:"lo"`
	Hi        Expression `json:"hi" yaml:"hi"`
	Inclusive bool       `json:"inclusive" yaml:"inclusive"`
}

func NewRangePattern(lo, hi Expression, inclusive bool) *RangePattern {
	return &RangePattern{nodeImpl: newNodeImpl(NodeRangePattern), Lo: lo, Hi: hi, Inclusive: inclusive}
}

type GuardedPattern struct {
	nodeImpl
	patternMarker

	Base      Pattern    `json:"base" yaml:"base"`
	Condition Expression `json:"condition" yaml:"condition"`
}

func NewGuardedPattern(base Pattern, condition Expression) *GuardedPattern {
	return &GuardedPattern{nodeImpl: newNodeImpl(NodeGuardedPattern), Base: base, Condition: condition}
}

//-----------------------------------------------------------------------------
// Statements
//-----------------------------------------------------------------------------

type FunctionDefinition struct {
	nodeImpl
	statementMarker

	ID     *Identifier      `json:"id" yaml:"id"`
	Params []*Identifier    `json:"params" yaml:"params"`
	Body   *BlockExpression `json:"body" yaml:"body"`
}

func NewFunctionDefinition(id *Identifier, params []*Identifier, body *BlockExpression) *FunctionDefinition {
	return &FunctionDefinition{nodeImpl: newNodeImpl(NodeFunctionDefinition), ID: id, Params: params, Body: body}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"argument,omitempty" yaml:"argument,omitempty"`
}

func NewReturnStatement(argument Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Argument: argument}
}

type RaiseStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression" yaml:"expression"`
}

func NewRaiseStatement(expression Expression) *RaiseStatement {
	return &RaiseStatement{nodeImpl: newNodeImpl(NodeRaiseStatement), Expression: expression}
}

type BreakStatement struct {
	nodeImpl
	statementMarker

	Label *Identifier `json:"label,omitempty" yaml:"label,omitempty"`
}

func NewBreakStatement(label *Identifier) *BreakStatement {
	return &BreakStatement{nodeImpl: newNodeImpl(NodeBreakStatement), Label: label}
}

type ContinueStatement struct {
	nodeImpl
	statementMarker

	Label *Identifier `json:"label,omitempty" yaml:"label,omitempty"`
}

func NewContinueStatement(label *Identifier) *ContinueStatement {
	return &ContinueStatement{nodeImpl: newNodeImpl(NodeContinueStatement), Label: label}
}

type WhileLoop struct {
	nodeImpl
	statementMarker

	Label     *Identifier      `json:"label,omitempty" yaml:"label,omitempty"`
	Condition Expression       `json:"condition" yaml:"condition"`
	Body      *BlockExpression `json:"body" yaml:"body"`
	// Else runs once, only when the loop ends by the condition going false.
	Else *BlockExpression `json:"else,omitempty" yaml:"else,omitempty"`
}

func NewWhileLoop(label *Identifier, condition Expression, body, elseBlock *BlockExpression) *WhileLoop {
	return &WhileLoop{nodeImpl: newNodeImpl(NodeWhileLoop), Label: label, Condition: condition, Body: body, Else: elseBlock}
}

// UntilLoop is `loop { … } until cond`: the body runs at least once, then the
// condition decides whether to stop.
type UntilLoop struct {
	nodeImpl
	statementMarker

	Label     *Identifier      `json:"label,omitempty" yaml:"label,omitempty"`
	Body      *BlockExpression `json:"body" yaml:"body"`
	Condition Expression       `json:"condition" yaml:"condition"`
}

func NewUntilLoop(label *Identifier, body *BlockExpression, condition Expression) *UntilLoop {
	return &UntilLoop{nodeImpl: newNodeImpl(NodeUntilLoop), Label: label, Body: body, Condition: condition}
}

type ForLoop struct {
	nodeImpl
	statementMarker

	Label    *Identifier      `json:"label,omitempty" yaml:"label,omitempty"`
	Pattern  Pattern          `json:"pattern" yaml:"pattern"`
	Iterable Expression       `json:"iterable" yaml:"iterable"`
	Body     *BlockExpression `json:"body" yaml:"body"`
}

func NewForLoop(label *Identifier, pattern Pattern, iterable Expression, body *BlockExpression) *ForLoop {
	return &ForLoop{nodeImpl: newNodeImpl(NodeForLoop), Label: label, Pattern: pattern, Iterable: iterable, Body: body}
}

type ImportStatement struct {
	nodeImpl
	statementMarker

	Path  []*Identifier `json:"path" yaml:"path"`
	Alias *Identifier   `json:"alias,omitempty" yaml:"alias,omitempty"`
}

func NewImportStatement(path []*Identifier, alias *Identifier) *ImportStatement {
	return &ImportStatement{nodeImpl: newNodeImpl(NodeImportStatement), Path: path, Alias: alias}
}

type Module struct {
	nodeImpl

	Body []Statement `json:"body" yaml:"body"`
}

func NewModule(body []Statement) *Module {
	return &Module{nodeImpl: newNodeImpl(NodeModule), Body: body}
}
