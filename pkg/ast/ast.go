package ast

type NodeType string

const (
	NodeIdentifier             NodeType = "Identifier"
	NodeNumberLiteral          NodeType = "NumberLiteral"
	NodeStringLiteral          NodeType = "StringLiteral"
	NodeBooleanLiteral         NodeType = "BooleanLiteral"
	NodeNullLiteral            NodeType = "NullLiteral"
	NodeUndefinedLiteral       NodeType = "UndefinedLiteral"
	NodeArrayLiteral           NodeType = "ArrayLiteral"
	NodeObjectLiteral          NodeType = "ObjectLiteral"
	NodeObjectLiteralProperty  NodeType = "ObjectLiteralProperty"
	NodeUnaryExpression        NodeType = "UnaryExpression"
	NodeBinaryExpression       NodeType = "BinaryExpression"
	NodeAssignmentExpression   NodeType = "AssignmentExpression"
	NodeMemberAccessExpression NodeType = "MemberAccessExpression"
	NodeCallExpression         NodeType = "CallExpression"
	NodeNewExpression          NodeType = "NewExpression"
	NodeFunctionExpression     NodeType = "FunctionExpression"
	NodeFormalParameter        NodeType = "FormalParameter"
	NodeIdentifierPattern      NodeType = "IdentifierPattern"
	NodeObjectPattern          NodeType = "ObjectPattern"
	NodeObjectPatternProperty  NodeType = "ObjectPatternProperty"
	NodeStatementList          NodeType = "StatementList"
	NodeVariableDeclaration    NodeType = "VariableDeclaration"
	NodeFunctionDeclaration    NodeType = "FunctionDeclaration"
	NodeReturnStatement        NodeType = "ReturnStatement"
	NodeIfStatement            NodeType = "IfStatement"
	NodeThrowStatement         NodeType = "ThrowStatement"
	NodeTryStatement           NodeType = "TryStatement"
	NodeProgram                NodeType = "Program"
)

type Node interface {
	NodeType() NodeType
	Span() Span
	isNode()
}

type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type nodeImpl struct {
	Type NodeType `json:"type"`
	span Span
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Span() Span         { return n.span }
func (nodeImpl) isNode()              {}
func (n *nodeImpl) setSpan(span Span) { n.span = span }

// SetSpan attaches source location information to a node, when available.
func SetSpan(node Node, span Span) {
	type spanSetter interface{ setSpan(Span) }
	if s, ok := node.(spanSetter); ok {
		s.setSpan(span)
	}
}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
	statementNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}
func (expressionMarker) statementNode()  {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

//-----------------------------------------------------------------------------
// Identifiers and literals
//-----------------------------------------------------------------------------

type Identifier struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

type NumberLiteral struct {
	nodeImpl
	expressionMarker

	Value float64 `json:"value"`
}

func NewNumberLiteral(value float64) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type NullLiteral struct {
	nodeImpl
	expressionMarker
}

func NewNullLiteral() *NullLiteral {
	return &NullLiteral{nodeImpl: newNodeImpl(NodeNullLiteral)}
}

type UndefinedLiteral struct {
	nodeImpl
	expressionMarker
}

func NewUndefinedLiteral() *UndefinedLiteral {
	return &UndefinedLiteral{nodeImpl: newNodeImpl(NodeUndefinedLiteral)}
}

type ArrayLiteral struct {
	nodeImpl
	expressionMarker

	Elements []Expression `json:"elements"`
}

func NewArrayLiteral(elements []Expression) *ArrayLiteral {
	return &ArrayLiteral{nodeImpl: newNodeImpl(NodeArrayLiteral), Elements: elements}
}

// ObjectLiteralProperty is one `key: value` entry; a nil Value marks the
// shorthand `{key}` form.
type ObjectLiteralProperty struct {
	nodeImpl

	Key   *Identifier `json:"key"`
	Value Expression  `json:"value,omitempty"`
}

func NewObjectLiteralProperty(key *Identifier, value Expression) *ObjectLiteralProperty {
	return &ObjectLiteralProperty{nodeImpl: newNodeImpl(NodeObjectLiteralProperty), Key: key, Value: value}
}

type ObjectLiteral struct {
	nodeImpl
	expressionMarker

	Properties []*ObjectLiteralProperty `json:"properties"`
}

func NewObjectLiteral(properties []*ObjectLiteralProperty) *ObjectLiteral {
	return &ObjectLiteral{nodeImpl: newNodeImpl(NodeObjectLiteral), Properties: properties}
}

//-----------------------------------------------------------------------------
// Expressions
//-----------------------------------------------------------------------------

type UnaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Operand  Expression `json:"operand"`
}

func NewUnaryExpression(operator string, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Operand: operand}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

type AssignmentExpression struct {
	nodeImpl
	expressionMarker

	Target Expression `json:"target"`
	Value  Expression `json:"value"`
}

func NewAssignmentExpression(target, value Expression) *AssignmentExpression {
	return &AssignmentExpression{nodeImpl: newNodeImpl(NodeAssignmentExpression), Target: target, Value: value}
}

type MemberAccessExpression struct {
	nodeImpl
	expressionMarker

	Object Expression  `json:"object"`
	Member *Identifier `json:"member"`
}

func NewMemberAccessExpression(object Expression, member *Identifier) *MemberAccessExpression {
	return &MemberAccessExpression{nodeImpl: newNodeImpl(NodeMemberAccessExpression), Object: object, Member: member}
}

type CallExpression struct {
	nodeImpl
	expressionMarker

	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewCallExpression(callee Expression, arguments []Expression) *CallExpression {
	return &CallExpression{nodeImpl: newNodeImpl(NodeCallExpression), Callee: callee, Arguments: arguments}
}

type NewExpression struct {
	nodeImpl
	expressionMarker

	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewNewExpression(callee Expression, arguments []Expression) *NewExpression {
	return &NewExpression{nodeImpl: newNodeImpl(NodeNewExpression), Callee: callee, Arguments: arguments}
}

// FunctionExpression covers both `function` expressions and arrow functions;
// arrows are flagged so the runtime can give them a lexical this binding.
type FunctionExpression struct {
	nodeImpl
	expressionMarker

	ID     *Identifier        `json:"id,omitempty"`
	Params []*FormalParameter `json:"params"`
	Body   *StatementList     `json:"body"`
	Arrow  bool               `json:"arrow"`
}

func NewFunctionExpression(id *Identifier, params []*FormalParameter, body *StatementList, arrow bool) *FunctionExpression {
	return &FunctionExpression{nodeImpl: newNodeImpl(NodeFunctionExpression), ID: id, Params: params, Body: body, Arrow: arrow}
}

//-----------------------------------------------------------------------------
// Statements
//-----------------------------------------------------------------------------

// StatementList is a shared, immutable statement sequence. Source carries the
// body's exact source text when the node came from the parser; nodes built via
// the DSL render themselves instead.
type StatementList struct {
	nodeImpl

	Statements []Statement `json:"statements"`
	Source     string      `json:"source,omitempty"`
}

func NewStatementList(statements []Statement) *StatementList {
	return &StatementList{nodeImpl: newNodeImpl(NodeStatementList), Statements: statements}
}

type VariableDeclaration struct {
	nodeImpl
	statementMarker

	DeclKind string      `json:"declKind"` // let, const, var
	Name     *Identifier `json:"name"`
	Init     Expression  `json:"init,omitempty"`
}

func NewVariableDeclaration(declKind string, name *Identifier, init Expression) *VariableDeclaration {
	return &VariableDeclaration{nodeImpl: newNodeImpl(NodeVariableDeclaration), DeclKind: declKind, Name: name, Init: init}
}

type FunctionDeclaration struct {
	nodeImpl
	statementMarker

	ID     *Identifier        `json:"id"`
	Params []*FormalParameter `json:"params"`
	Body   *StatementList     `json:"body"`
}

func NewFunctionDeclaration(id *Identifier, params []*FormalParameter, body *StatementList) *FunctionDeclaration {
	return &FunctionDeclaration{nodeImpl: newNodeImpl(NodeFunctionDeclaration), ID: id, Params: params, Body: body}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"argument,omitempty"`
}

func NewReturnStatement(argument Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Argument: argument}
}

type IfStatement struct {
	nodeImpl
	statementMarker

	Test       Expression     `json:"test"`
	Consequent *StatementList `json:"consequent"`
	Alternate  *StatementList `json:"alternate,omitempty"`
}

func NewIfStatement(test Expression, consequent, alternate *StatementList) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Test: test, Consequent: consequent, Alternate: alternate}
}

type ThrowStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"argument"`
}

func NewThrowStatement(argument Expression) *ThrowStatement {
	return &ThrowStatement{nodeImpl: newNodeImpl(NodeThrowStatement), Argument: argument}
}

type TryStatement struct {
	nodeImpl
	statementMarker

	Block   *StatementList `json:"block"`
	Param   *Identifier    `json:"param,omitempty"`
	Handler *StatementList `json:"handler,omitempty"`
}

func NewTryStatement(block *StatementList, param *Identifier, handler *StatementList) *TryStatement {
	return &TryStatement{nodeImpl: newNodeImpl(NodeTryStatement), Block: block, Param: param, Handler: handler}
}

type Program struct {
	nodeImpl

	Body []Statement `json:"body"`
}

func NewProgram(body []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Body: body}
}
