package parser

import "fmt"

// NodeKind is the closed set of syntax-node tags the detectors
// understand. Anything the grammar produces outside this set maps to
// KindOther but is still present in the tree with its children.
type NodeKind string

const (
	KindProgram NodeKind = "Program"

	// Function-like nodes
	KindFunctionDeclaration NodeKind = "FunctionDeclaration"
	KindFunctionExpression  NodeKind = "FunctionExpression"
	KindArrowFunction       NodeKind = "ArrowFunction"
	KindMethodDefinition    NodeKind = "MethodDefinition"
	KindGeneratorFunction   NodeKind = "GeneratorFunction"

	// Loop statements
	KindForStatement     NodeKind = "ForStatement"
	KindForInStatement   NodeKind = "ForInStatement"
	KindWhileStatement   NodeKind = "WhileStatement"
	KindDoWhileStatement NodeKind = "DoWhileStatement"

	// Branching constructs
	KindIfStatement       NodeKind = "IfStatement"
	KindSwitchCase        NodeKind = "SwitchCase"
	KindSwitchDefault     NodeKind = "SwitchDefault"
	KindCatchClause       NodeKind = "CatchClause"
	KindTernaryExpression NodeKind = "TernaryExpression"
	KindBinaryExpression  NodeKind = "BinaryExpression"

	// Expressions
	KindCallExpression   NodeKind = "CallExpression"
	KindMemberExpression NodeKind = "MemberExpression"
	KindArrayLiteral     NodeKind = "ArrayLiteral"
	KindObjectLiteral    NodeKind = "ObjectLiteral"

	// Module system
	KindImportDeclaration NodeKind = "ImportDeclaration"

	KindOther NodeKind = "Other"
)

// Location is the position of a node in its source file
type Location struct {
	File      string
	StartLine int
	EndLine   int
}

// String returns a string representation of the location
func (l Location) String() string {
	return fmt.Sprintf("%s:%d", l.File, l.StartLine)
}

// Node is one node in a unit's owned syntax tree. Nodes are built
// once from the tree-sitter CST and never mutated afterwards; the
// parent owns its children.
type Node struct {
	Kind     NodeKind
	Raw      string // tree-sitter grammar type
	Text     string // raw source span
	Location Location
	Children []*Node
	Parent   *Node

	// Operator holds the operator token for binary expressions
	Operator string

	// Callee holds the callee text for call expressions
	Callee string

	// Source holds the module specifier for import declarations
	Source string

	// Name holds the declared name for function-like nodes, when present
	Name string
}

// NewNode creates a node of the given kind
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind, Children: []*Node{}}
}

// AddChild appends a child and sets its parent pointer
func (n *Node) AddChild(child *Node) {
	if child == nil {
		return
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Walk traverses the tree depth-first, calling visitor for each node.
// Returning false stops traversal of that branch.
func (n *Node) Walk(visitor func(*Node) bool) {
	if n == nil {
		return
	}
	if !visitor(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(visitor)
	}
}

// IsLoop reports whether the node is a loop statement
func (n *Node) IsLoop() bool {
	switch n.Kind {
	case KindForStatement, KindForInStatement, KindWhileStatement, KindDoWhileStatement:
		return true
	}
	return false
}

// IsFunction reports whether the node is function-like
func (n *Node) IsFunction() bool {
	switch n.Kind {
	case KindFunctionDeclaration, KindFunctionExpression, KindArrowFunction,
		KindMethodDefinition, KindGeneratorFunction:
		return true
	}
	return false
}

// IsLogicalBinary reports whether the node is a binary logical
// expression (&& or ||). Other binary operators do not qualify.
func (n *Node) IsLogicalBinary() bool {
	return n.Kind == KindBinaryExpression && (n.Operator == "&&" || n.Operator == "||")
}

// String returns a string representation of the node
func (n *Node) String() string {
	if n.Name != "" {
		return fmt.Sprintf("%s(%s) at %s", n.Kind, n.Name, n.Location)
	}
	return fmt.Sprintf("%s at %s", n.Kind, n.Location)
}
