package ast

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DecodeModule parses a serialized AST document (YAML or JSON; JSON is a
// YAML subset) as produced by the external parser front end.
func DecodeModule(data []byte) (*Module, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse AST document: %w", err)
	}
	node, err := decodeNode(doc)
	if err != nil {
		return nil, err
	}
	mod, ok := node.(*Module)
	if !ok {
		return nil, fmt.Errorf("AST document root must be a Module, got %s", node.NodeType())
	}
	return mod, nil
}

func decodeNode(node map[string]any) (Node, error) {
	typ, _ := node["type"].(string)
	var decoded Node
	var err error
	switch NodeType(typ) {
	case NodeModule:
		stmts, derr := decodeStatements(node["body"])
		if derr != nil {
			return nil, derr
		}
		decoded = NewModule(stmts)
	case NodeIdentifier:
		name, _ := node["name"].(string)
		decoded = NewIdentifier(name)
	case NodeStringLiteral:
		val, _ := node["value"].(string)
		decoded = NewStringLiteral(val)
	case NodeNumberLiteral:
		decoded = NewNumberLiteral(toFloat(node["value"]))
	case NodeBooleanLiteral:
		val, _ := node["value"].(bool)
		decoded = NewBooleanLiteral(val)
	case NodeNilLiteral:
		decoded = NewNilLiteral()
	case NodeListLiteral:
		elems, derr := decodeExpressions(node["elements"])
		if derr != nil {
			return nil, derr
		}
		decoded = NewListLiteral(elems)
	case NodeTupleLiteral:
		elems, derr := decodeExpressions(node["elements"])
		if derr != nil {
			return nil, derr
		}
		decoded = NewTupleLiteral(elems)
	case NodeSetLiteral:
		elems, derr := decodeExpressions(node["elements"])
		if derr != nil {
			return nil, derr
		}
		decoded = NewSetLiteral(elems)
	case NodeMapLiteral:
		entriesRaw, _ := node["entries"].([]any)
		entries := make([]*MapEntry, 0, len(entriesRaw))
		for _, raw := range entriesRaw {
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("invalid map entry %T", raw)
			}
			key, derr := decodeExpression(child["key"])
			if derr != nil {
				return nil, derr
			}
			val, derr := decodeExpression(child["value"])
			if derr != nil {
				return nil, derr
			}
			entries = append(entries, NewMapEntry(key, val))
		}
		decoded = NewMapLiteral(entries)
	case NodeRangeExpression:
		start, derr := decodeExpression(node["start"])
		if derr != nil {
			return nil, derr
		}
		end, derr := decodeExpression(node["end"])
		if derr != nil {
			return nil, derr
		}
		inclusive, _ := node["inclusive"].(bool)
		decoded = NewRangeExpression(start, end, inclusive)
	case NodeUnaryExpression:
		op, _ := node["operator"].(string)
		operand, derr := decodeExpression(node["operand"])
		if derr != nil {
			return nil, derr
		}
		decoded = NewUnaryExpression(op, operand)
	case NodeBinaryExpression:
		op, _ := node["operator"].(string)
		left, derr := decodeExpression(node["left"])
		if derr != nil {
			return nil, derr
		}
		right, derr := decodeExpression(node["right"])
		if derr != nil {
			return nil, derr
		}
		decoded = NewBinaryExpression(op, left, right)
	case NodeFunctionCall:
		callee, derr := decodeExpression(node["callee"])
		if derr != nil {
			return nil, derr
		}
		args, derr := decodeExpressions(node["arguments"])
		if derr != nil {
			return nil, derr
		}
		decoded = NewFunctionCall(callee, args)
	case NodeMemberAccess:
		object, derr := decodeExpression(node["object"])
		if derr != nil {
			return nil, derr
		}
		member, derr := decodeIdentifier(node["member"])
		if derr != nil {
			return nil, derr
		}
		decoded = NewMemberAccessExpression(object, member)
	case NodeIndexExpression:
		object, derr := decodeExpression(node["object"])
		if derr != nil {
			return nil, derr
		}
		index, derr := decodeExpression(node["index"])
		if derr != nil {
			return nil, derr
		}
		decoded = NewIndexExpression(object, index)
	case NodeAssignment:
		op, _ := node["operator"].(string)
		leftRaw, ok := node["left"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("assignment missing left target")
		}
		leftNode, derr := decodeNode(leftRaw)
		if derr != nil {
			return nil, derr
		}
		left, ok := leftNode.(AssignmentTarget)
		if !ok {
			return nil, fmt.Errorf("invalid assignment target %s", leftNode.NodeType())
		}
		right, derr := decodeExpression(node["right"])
		if derr != nil {
			return nil, derr
		}
		decoded = NewAssignmentExpression(AssignmentOperator(op), left, right)
	case NodeBlockExpression:
		stmts, derr := decodeStatements(node["body"])
		if derr != nil {
			return nil, derr
		}
		decoded = NewBlockExpression(stmts)
	case NodeIfExpression:
		cond, derr := decodeExpression(node["ifCondition"])
		if derr != nil {
			return nil, derr
		}
		body, derr := decodeBlock(node["ifBody"])
		if derr != nil {
			return nil, derr
		}
		clausesRaw, _ := node["orClauses"].([]any)
		clauses := make([]*OrClause, 0, len(clausesRaw))
		for _, raw := range clausesRaw {
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("invalid or-clause %T", raw)
			}
			var clauseCond Expression
			if child["condition"] != nil {
				clauseCond, derr = decodeExpression(child["condition"])
				if derr != nil {
					return nil, derr
				}
			}
			clauseBody, derr := decodeBlock(child["body"])
			if derr != nil {
				return nil, derr
			}
			clauses = append(clauses, NewOrClause(clauseBody, clauseCond))
		}
		decoded = NewIfExpression(cond, body, clauses)
	case NodeMatchExpression:
		subject, derr := decodeExpression(node["subject"])
		if derr != nil {
			return nil, derr
		}
		clausesRaw, _ := node["clauses"].([]any)
		clauses := make([]*MatchClause, 0, len(clausesRaw))
		for _, raw := range clausesRaw {
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("invalid match clause %T", raw)
			}
			pattern, derr := decodePattern(child["pattern"])
			if derr != nil {
				return nil, derr
			}
			var guard Expression
			if child["guard"] != nil {
				guard, derr = decodeExpression(child["guard"])
				if derr != nil {
					return nil, derr
				}
			}
			body, derr := decodeExpression(child["body"])
			if derr != nil {
				return nil, derr
			}
			clauses = append(clauses, NewMatchClause(pattern, body, guard))
		}
		decoded = NewMatchExpression(subject, clauses)
	case NodeTryExpression:
		body, derr := decodeBlock(node["body"])
		if derr != nil {
			return nil, derr
		}
		clausesRaw, _ := node["clauses"].([]any)
		clauses := make([]*CatchClause, 0, len(clausesRaw))
		for _, raw := range clausesRaw {
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("invalid catch clause %T", raw)
			}
			var typeName, binding *Identifier
			if child["typeName"] != nil {
				typeName, derr = decodeIdentifier(child["typeName"])
				if derr != nil {
					return nil, derr
				}
			}
			if child["binding"] != nil {
				binding, derr = decodeIdentifier(child["binding"])
				if derr != nil {
					return nil, derr
				}
			}
			clauseBody, derr := decodeBlock(child["body"])
			if derr != nil {
				return nil, derr
			}
			clauses = append(clauses, NewCatchClause(typeName, binding, clauseBody))
		}
		var finally *BlockExpression
		if node["finally"] != nil {
			finally, err = decodeBlock(node["finally"])
			if err != nil {
				return nil, err
			}
		}
		decoded = NewTryExpression(body, clauses, finally)
	case NodeLambdaExpression:
		params, derr := decodeIdentifiers(node["params"])
		if derr != nil {
			return nil, derr
		}
		body, derr := decodeBlock(node["body"])
		if derr != nil {
			return nil, derr
		}
		decoded = NewLambdaExpression(params, body)
	case NodeListComprehension:
		element, clauses, conds, derr := decodeComprehensionParts(node, "element")
		if derr != nil {
			return nil, derr
		}
		decoded = NewListComprehension(element, clauses, conds)
	case NodeSetComprehension:
		element, clauses, conds, derr := decodeComprehensionParts(node, "element")
		if derr != nil {
			return nil, derr
		}
		decoded = NewSetComprehension(element, clauses, conds)
	case NodeDictComprehension:
		key, derr := decodeExpression(node["key"])
		if derr != nil {
			return nil, derr
		}
		value, clauses, conds, derr := decodeComprehensionParts(node, "value")
		if derr != nil {
			return nil, derr
		}
		decoded = NewDictComprehension(key, value, clauses, conds)
	case NodeWildcardPattern:
		decoded = NewWildcardPattern()
	case NodeLiteralPattern:
		lit, derr := decodeExpression(node["literal"])
		if derr != nil {
			return nil, derr
		}
		decoded = NewLiteralPattern(lit)
	case NodeTuplePattern:
		elems, derr := decodePatterns(node["elements"])
		if derr != nil {
			return nil, derr
		}
		decoded = NewTuplePattern(elems)
	case NodeListPattern:
		elems, derr := decodePatterns(node["elements"])
		if derr != nil {
			return nil, derr
		}
		var rest Pattern
		if node["rest"] != nil {
			rest, derr = decodePattern(node["rest"])
			if derr != nil {
				return nil, derr
			}
		}
		decoded = NewListPattern(elems, rest)
	case NodeMapPattern:
		entriesRaw, _ := node["entries"].([]any)
		entries := make([]*MapPatternEntry, 0, len(entriesRaw))
		for _, raw := range entriesRaw {
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("invalid map pattern entry %T", raw)
			}
			key, derr := decodeExpression(child["key"])
			if derr != nil {
				return nil, derr
			}
			pattern, derr := decodePattern(child["pattern"])
			if derr != nil {
				return nil, derr
			}
			entries = append(entries, NewMapPatternEntry(key, pattern))
		}
		decoded = NewMapPattern(entries)
	case NodeTypePattern:
		typeName, derr := decodeIdentifier(node["typeName"])
		if derr != nil {
			return nil, derr
		}
		decoded = NewTypePattern(typeName)
	case NodeRangePattern:
		lo, derr := decodeExpression(node["lo"])
		if derr != nil {
			return nil, derr
		}
		hi, derr := decodeExpression(node["hi"])
		if derr != nil {
			return nil, derr
		}
		inclusive, _ := node["inclusive"].(bool)
		decoded = NewRangePattern(lo, hi, inclusive)
	case NodeGuardedPattern:
		base, derr := decodePattern(node["base"])
		if derr != nil {
			return nil, derr
		}
		condition, derr := decodeExpression(node["condition"])
		if derr != nil {
			return nil, derr
		}
		decoded = NewGuardedPattern(base, condition)
	case NodeFunctionDefinition:
		id, derr := decodeIdentifier(node["id"])
		if derr != nil {
			return nil, derr
		}
		params, derr := decodeIdentifiers(node["params"])
		if derr != nil {
			return nil, derr
		}
		body, derr := decodeBlock(node["body"])
		if derr != nil {
			return nil, derr
		}
		decoded = NewFunctionDefinition(id, params, body)
	case NodeReturnStatement:
		var arg Expression
		if node["argument"] != nil {
			arg, err = decodeExpression(node["argument"])
			if err != nil {
				return nil, err
			}
		}
		decoded = NewReturnStatement(arg)
	case NodeRaiseStatement:
		expr, derr := decodeExpression(node["expression"])
		if derr != nil {
			return nil, derr
		}
		decoded = NewRaiseStatement(expr)
	case NodeBreakStatement:
		label, derr := decodeOptionalIdentifier(node["label"])
		if derr != nil {
			return nil, derr
		}
		decoded = NewBreakStatement(label)
	case NodeContinueStatement:
		label, derr := decodeOptionalIdentifier(node["label"])
		if derr != nil {
			return nil, derr
		}
		decoded = NewContinueStatement(label)
	case NodeWhileLoop:
		label, derr := decodeOptionalIdentifier(node["label"])
		if derr != nil {
			return nil, derr
		}
		cond, derr := decodeExpression(node["condition"])
		if derr != nil {
			return nil, derr
		}
		body, derr := decodeBlock(node["body"])
		if derr != nil {
			return nil, derr
		}
		var elseBlock *BlockExpression
		if node["else"] != nil {
			elseBlock, err = decodeBlock(node["else"])
			if err != nil {
				return nil, err
			}
		}
		decoded = NewWhileLoop(label, cond, body, elseBlock)
	case NodeUntilLoop:
		label, derr := decodeOptionalIdentifier(node["label"])
		if derr != nil {
			return nil, derr
		}
		body, derr := decodeBlock(node["body"])
		if derr != nil {
			return nil, derr
		}
		cond, derr := decodeExpression(node["condition"])
		if derr != nil {
			return nil, derr
		}
		decoded = NewUntilLoop(label, body, cond)
	case NodeForLoop:
		label, derr := decodeOptionalIdentifier(node["label"])
		if derr != nil {
			return nil, derr
		}
		pattern, derr := decodePattern(node["pattern"])
		if derr != nil {
			return nil, derr
		}
		iterable, derr := decodeExpression(node["iterable"])
		if derr != nil {
			return nil, derr
		}
		body, derr := decodeBlock(node["body"])
		if derr != nil {
			return nil, derr
		}
		decoded = NewForLoop(label, pattern, iterable, body)
	case NodeImportStatement:
		pathRaw, _ := node["path"].([]any)
		path := make([]*Identifier, 0, len(pathRaw))
		for _, raw := range pathRaw {
			id, derr := decodeIdentifier(raw)
			if derr != nil {
				return nil, derr
			}
			path = append(path, id)
		}
		alias, derr := decodeOptionalIdentifier(node["alias"])
		if derr != nil {
			return nil, derr
		}
		decoded = NewImportStatement(path, alias)
	default:
		return nil, fmt.Errorf("unknown AST node type %q", typ)
	}
	if err != nil {
		return nil, err
	}
	attachPosition(decoded, node)
	return decoded, nil
}

func attachPosition(node Node, raw map[string]any) {
	posRaw, ok := raw["pos"].(map[string]any)
	if !ok {
		return
	}
	pos := &Position{Line: int(toFloat(posRaw["line"])), Col: int(toFloat(posRaw["col"]))}
	switch n := node.(type) {
	case interface{ setPos(*Position) }:
		n.setPos(pos)
	}
}

func (n *nodeImpl) setPos(pos *Position) { n.Pos = pos }

func decodeExpression(raw any) (Expression, error) {
	child, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid expression node %T", raw)
	}
	node, err := decodeNode(child)
	if err != nil {
		return nil, err
	}
	expr, ok := node.(Expression)
	if !ok {
		return nil, fmt.Errorf("node %s is not an expression", node.NodeType())
	}
	return expr, nil
}

func decodeExpressions(raw any) ([]Expression, error) {
	items, _ := raw.([]any)
	exprs := make([]Expression, 0, len(items))
	for _, item := range items {
		expr, err := decodeExpression(item)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

func decodeStatements(raw any) ([]Statement, error) {
	items, _ := raw.([]any)
	stmts := make([]Statement, 0, len(items))
	for _, item := range items {
		child, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid statement node %T", item)
		}
		node, err := decodeNode(child)
		if err != nil {
			return nil, err
		}
		stmt, ok := node.(Statement)
		if !ok {
			return nil, fmt.Errorf("node %s is not a statement", node.NodeType())
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func decodePattern(raw any) (Pattern, error) {
	child, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid pattern node %T", raw)
	}
	node, err := decodeNode(child)
	if err != nil {
		return nil, err
	}
	pattern, ok := node.(Pattern)
	if !ok {
		return nil, fmt.Errorf("node %s is not a pattern", node.NodeType())
	}
	return pattern, nil
}

func decodePatterns(raw any) ([]Pattern, error) {
	items, _ := raw.([]any)
	patterns := make([]Pattern, 0, len(items))
	for _, item := range items {
		pattern, err := decodePattern(item)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, pattern)
	}
	return patterns, nil
}

func decodeBlock(raw any) (*BlockExpression, error) {
	child, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid block node %T", raw)
	}
	node, err := decodeNode(child)
	if err != nil {
		return nil, err
	}
	block, ok := node.(*BlockExpression)
	if !ok {
		return nil, fmt.Errorf("node %s is not a block", node.NodeType())
	}
	return block, nil
}

func decodeIdentifier(raw any) (*Identifier, error) {
	child, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid identifier node %T", raw)
	}
	node, err := decodeNode(child)
	if err != nil {
		return nil, err
	}
	id, ok := node.(*Identifier)
	if !ok {
		return nil, fmt.Errorf("node %s is not an identifier", node.NodeType())
	}
	return id, nil
}

func decodeOptionalIdentifier(raw any) (*Identifier, error) {
	if raw == nil {
		return nil, nil
	}
	return decodeIdentifier(raw)
}

func decodeIdentifiers(raw any) ([]*Identifier, error) {
	items, _ := raw.([]any)
	ids := make([]*Identifier, 0, len(items))
	for _, item := range items {
		id, err := decodeIdentifier(item)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func decodeComprehensionParts(node map[string]any, resultKey string) (Expression, []*ComprehensionFor, []Expression, error) {
	result, err := decodeExpression(node[resultKey])
	if err != nil {
		return nil, nil, nil, err
	}
	clausesRaw, _ := node["clauses"].([]any)
	clauses := make([]*ComprehensionFor, 0, len(clausesRaw))
	for _, raw := range clausesRaw {
		child, ok := raw.(map[string]any)
		if !ok {
			return nil, nil, nil, fmt.Errorf("invalid comprehension clause %T", raw)
		}
		pattern, err := decodePattern(child["pattern"])
		if err != nil {
			return nil, nil, nil, err
		}
		iterable, err := decodeExpression(child["iterable"])
		if err != nil {
			return nil, nil, nil, err
		}
		clauses = append(clauses, NewComprehensionFor(pattern, iterable))
	}
	conds, err := decodeExpressions(node["conditions"])
	if err != nil {
		return nil, nil, nil, err
	}
	return result, clauses, conds, nil
}

func toFloat(raw any) float64 {
	switch v := raw.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	default:
		return 0
	}
}
