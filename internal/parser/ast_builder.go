package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// kindMap translates tree-sitter grammar types to NodeKind tags.
// The JavaScript and TSX grammars share these names.
var kindMap = map[string]NodeKind{
	"program": KindProgram,

	"function_declaration":           KindFunctionDeclaration,
	"function_expression":            KindFunctionExpression,
	"function":                       KindFunctionExpression,
	"arrow_function":                 KindArrowFunction,
	"method_definition":              KindMethodDefinition,
	"generator_function":             KindGeneratorFunction,
	"generator_function_declaration": KindGeneratorFunction,

	"for_statement":    KindForStatement,
	"for_in_statement": KindForInStatement,
	"while_statement":  KindWhileStatement,
	"do_statement":     KindDoWhileStatement,

	"if_statement":       KindIfStatement,
	"switch_case":        KindSwitchCase,
	"switch_default":     KindSwitchDefault,
	"catch_clause":       KindCatchClause,
	"ternary_expression": KindTernaryExpression,
	"binary_expression":  KindBinaryExpression,

	"call_expression":   KindCallExpression,
	"member_expression": KindMemberExpression,
	"array":             KindArrayLiteral,
	"object":            KindObjectLiteral,

	"import_statement": KindImportDeclaration,
}

// ASTBuilder converts a tree-sitter CST into an owned Node tree so
// the sitter tree can be closed after parsing
type ASTBuilder struct {
	filename string
	source   []byte
}

// NewASTBuilder creates a builder for one source file
func NewASTBuilder(filename string, source []byte) *ASTBuilder {
	return &ASTBuilder{filename: filename, source: source}
}

// Build converts the CST rooted at tsNode into a Node tree
func (b *ASTBuilder) Build(tsNode *sitter.Node) *Node {
	if tsNode == nil {
		return nil
	}
	return b.buildNode(tsNode)
}

func (b *ASTBuilder) buildNode(tsNode *sitter.Node) *Node {
	kind, ok := kindMap[tsNode.Type()]
	if !ok {
		kind = KindOther
	}

	node := NewNode(kind)
	node.Raw = tsNode.Type()
	node.Text = tsNode.Content(b.source)
	node.Location = Location{
		File:      b.filename,
		StartLine: int(tsNode.StartPoint().Row) + 1,
		EndLine:   int(tsNode.EndPoint().Row) + 1,
	}

	switch kind {
	case KindBinaryExpression:
		if op := tsNode.ChildByFieldName("operator"); op != nil {
			node.Operator = op.Content(b.source)
		}
	case KindCallExpression:
		if callee := tsNode.ChildByFieldName("function"); callee != nil {
			node.Callee = callee.Content(b.source)
		}
	case KindImportDeclaration:
		if src := tsNode.ChildByFieldName("source"); src != nil {
			node.Source = trimQuotes(src.Content(b.source))
		}
	case KindFunctionDeclaration, KindFunctionExpression, KindGeneratorFunction, KindMethodDefinition:
		if name := tsNode.ChildByFieldName("name"); name != nil {
			node.Name = name.Content(b.source)
		}
	}

	for i := 0; i < int(tsNode.NamedChildCount()); i++ {
		node.AddChild(b.buildNode(tsNode.NamedChild(i)))
	}

	return node
}

func trimQuotes(s string) string {
	return strings.Trim(s, "\"'`")
}
