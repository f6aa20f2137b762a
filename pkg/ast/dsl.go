package ast

// Constructors used pervasively by tests; mirrors the shape of the node
// builders so test programs read close to the JS they stand for.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Num(value float64) *NumberLiteral {
	return NewNumberLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Null() *NullLiteral {
	return NewNullLiteral()
}

func Undef() *UndefinedLiteral {
	return NewUndefinedLiteral()
}

func Arr(elements ...Expression) *ArrayLiteral {
	return NewArrayLiteral(elements)
}

func Obj(properties ...*ObjectLiteralProperty) *ObjectLiteral {
	return NewObjectLiteral(properties)
}

func Prop(key string, value Expression) *ObjectLiteralProperty {
	return NewObjectLiteralProperty(ID(key), value)
}

func Un(operator string, operand Expression) *UnaryExpression {
	return NewUnaryExpression(operator, operand)
}

func Bin(operator string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(operator, left, right)
}

func Assign(target, value Expression) *AssignmentExpression {
	return NewAssignmentExpression(target, value)
}

func Member(object Expression, member string) *MemberAccessExpression {
	return NewMemberAccessExpression(object, ID(member))
}

func Call(callee Expression, args ...Expression) *CallExpression {
	return NewCallExpression(callee, args)
}

func New(callee Expression, args ...Expression) *NewExpression {
	return NewNewExpression(callee, args)
}

// Parameter helpers.

func Param(name string) *FormalParameter {
	return NewFormalParameter(NewIdentifierPattern(ID(name)), nil, false)
}

func DefaultParam(name string, def Expression) *FormalParameter {
	return NewFormalParameter(NewIdentifierPattern(ID(name)), def, false)
}

func RestParam(name string) *FormalParameter {
	return NewFormalParameter(NewIdentifierPattern(ID(name)), nil, true)
}

func ObjParam(names ...string) *FormalParameter {
	props := make([]*ObjectPatternProperty, 0, len(names))
	for _, name := range names {
		props = append(props, NewObjectPatternProperty(ID(name), nil))
	}
	return NewFormalParameter(NewObjectPattern(props), nil, false)
}

// Statement helpers.

func Stmts(statements ...Statement) *StatementList {
	return NewStatementList(statements)
}

func Let(name string, init Expression) *VariableDeclaration {
	return NewVariableDeclaration("let", ID(name), init)
}

func Const(name string, init Expression) *VariableDeclaration {
	return NewVariableDeclaration("const", ID(name), init)
}

func Var(name string, init Expression) *VariableDeclaration {
	return NewVariableDeclaration("var", ID(name), init)
}

func Ret(argument Expression) *ReturnStatement {
	return NewReturnStatement(argument)
}

func If(test Expression, consequent *StatementList, alternate *StatementList) *IfStatement {
	return NewIfStatement(test, consequent, alternate)
}

func Throw(argument Expression) *ThrowStatement {
	return NewThrowStatement(argument)
}

func Try(block *StatementList, param string, handler *StatementList) *TryStatement {
	var id *Identifier
	if param != "" {
		id = ID(param)
	}
	return NewTryStatement(block, id, handler)
}

func FnDecl(name string, params []*FormalParameter, body *StatementList) *FunctionDeclaration {
	return NewFunctionDeclaration(ID(name), params, body)
}

func FnExpr(name string, params []*FormalParameter, body *StatementList) *FunctionExpression {
	var id *Identifier
	if name != "" {
		id = ID(name)
	}
	return NewFunctionExpression(id, params, body, false)
}

func Arrow(params []*FormalParameter, body *StatementList) *FunctionExpression {
	return NewFunctionExpression(nil, params, body, true)
}

func Prog(statements ...Statement) *Program {
	return NewProgram(statements)
}
