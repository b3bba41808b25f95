// Package codegen renders an AST to JavaScript-subset text.
package codegen

import (
	"strings"

	"github.com/corvidlang/pyjs/internal/ast"
)

// Generator is a pure AST-to-text transducer: it carries only an indent
// level and an output buffer, both reset on every Generate call.
type Generator struct {
	indentLevel int
	output      []string
}

// New returns a Generator ready for one Generate call.
func New() *Generator {
	return &Generator{}
}

func (g *Generator) indent() string {
	return strings.Repeat("  ", g.indentLevel)
}

func (g *Generator) emit(code string) {
	g.output = append(g.output, g.indent()+code)
}

// Generate renders program as newline-joined JavaScript-subset source.
func (g *Generator) Generate(program *ast.Program) string {
	g.indentLevel = 0
	g.output = nil

	for _, stmt := range program.Statements {
		g.visitStatement(stmt)
		if _, ok := stmt.(*ast.FunctionDef); ok {
			g.emit("")
		}
	}

	return strings.Join(g.output, "\n")
}

func (g *Generator) visitStatement(stmt ast.Statement) {
	switch node := stmt.(type) {
	case *ast.FunctionDef:
		g.visitFunctionDef(node)
	case *ast.ClassDef:
		g.visitClassDef(node)
	case *ast.IfStatement:
		g.visitIfStatement(node)
	case *ast.ForStatement:
		g.visitForStatement(node)
	case *ast.WhileStatement:
		g.visitWhileStatement(node)
	case *ast.ReturnStatement:
		g.visitReturnStatement(node)
	case *ast.AssignStatement:
		g.visitAssignStatement(node)
	case *ast.ExpressionStatement:
		g.visitExpressionStatement(node)
	}
}

func (g *Generator) visitFunctionDef(node *ast.FunctionDef) {
	g.emit("function " + node.Name + "(" + strings.Join(node.Params, ", ") + ") {")
	g.indentLevel++
	for _, stmt := range node.Body {
		g.visitStatement(stmt)
	}
	g.indentLevel--
	g.emit("}")
}

func (g *Generator) visitClassDef(node *ast.ClassDef) {
	g.emit("class " + node.Name + " {")
	g.indentLevel++

	for _, stmt := range node.Body {
		if method, ok := stmt.(*ast.FunctionDef); ok {
			// A method is emitted without the "function" keyword.
			g.emit(method.Name + "(" + strings.Join(method.Params, ", ") + ") {")
			g.indentLevel++
			for _, methodStmt := range method.Body {
				g.visitStatement(methodStmt)
			}
			g.indentLevel--
			g.emit("}")
		} else {
			g.visitStatement(stmt)
		}
	}

	g.indentLevel--
	g.emit("}")
}

func (g *Generator) visitIfStatement(node *ast.IfStatement) {
	condition := g.visitExpression(node.Condition)
	g.emit("if (" + condition + ") {")
	g.indentLevel++
	for _, stmt := range node.ThenBody {
		g.visitStatement(stmt)
	}
	g.indentLevel--

	if node.ElseBody != nil {
		g.emit("} else {")
		g.indentLevel++
		for _, stmt := range node.ElseBody {
			g.visitStatement(stmt)
		}
		g.indentLevel--
	}

	g.emit("}")
}

func (g *Generator) visitForStatement(node *ast.ForStatement) {
	iterable := g.visitExpression(node.Iterable)
	g.emit("for (const " + node.Target + " of " + iterable + ") {")
	g.indentLevel++
	for _, stmt := range node.Body {
		g.visitStatement(stmt)
	}
	g.indentLevel--
	g.emit("}")
}

func (g *Generator) visitWhileStatement(node *ast.WhileStatement) {
	condition := g.visitExpression(node.Condition)
	g.emit("while (" + condition + ") {")
	g.indentLevel++
	for _, stmt := range node.Body {
		g.visitStatement(stmt)
	}
	g.indentLevel--
	g.emit("}")
}

func (g *Generator) visitReturnStatement(node *ast.ReturnStatement) {
	if node.Value != nil {
		g.emit("return " + g.visitExpression(node.Value) + ";")
	} else {
		g.emit("return;")
	}
}

func (g *Generator) visitAssignStatement(node *ast.AssignStatement) {
	g.emit("let " + node.Target + " = " + g.visitExpression(node.Value) + ";")
}

func (g *Generator) visitExpressionStatement(node *ast.ExpressionStatement) {
	g.emit(g.visitExpression(node.Expression) + ";")
}

// visitExpression never fails: an AST shape it doesn't recognize lowers
// to the literal token "undefined".
func (g *Generator) visitExpression(expr ast.Expression) string {
	switch node := expr.(type) {
	case *ast.BinaryOp:
		return g.visitBinaryOp(node)
	case *ast.UnaryOp:
		return g.visitUnaryOp(node)
	case *ast.FunctionCall:
		return g.visitFunctionCall(node)
	case *ast.MethodCall:
		return g.visitMethodCall(node)
	case *ast.Identifier:
		return node.Name
	case *ast.Literal:
		return g.visitLiteral(node)
	case *ast.ListLiteral:
		return g.visitListLiteral(node)
	case *ast.DictLiteral:
		return g.visitDictLiteral(node)
	case *ast.AttributeAccess:
		return g.visitAttributeAccess(node)
	case *ast.IndexAccess:
		return g.visitIndexAccess(node)
	default:
		return "undefined"
	}
}

var binaryOperatorMap = map[string]string{
	"and": "&&",
	"or":  "||",
}

func (g *Generator) visitBinaryOp(node *ast.BinaryOp) string {
	left := g.visitExpression(node.Left)
	right := g.visitExpression(node.Right)

	if node.Operator == "//" {
		return "Math.floor(" + left + " / " + right + ")"
	}

	op, ok := binaryOperatorMap[node.Operator]
	if !ok {
		op = node.Operator
	}
	return "(" + left + " " + op + " " + right + ")"
}

var unaryOperatorMap = map[string]string{
	"not": "!",
	"-":   "-",
	"+":   "+",
}

func (g *Generator) visitUnaryOp(node *ast.UnaryOp) string {
	operand := g.visitExpression(node.Operand)
	op, ok := unaryOperatorMap[node.Operator]
	if !ok {
		op = node.Operator
	}
	return op + operand
}

func (g *Generator) visitFunctionCall(node *ast.FunctionCall) string {
	args := make([]string, len(node.Args))
	for i, arg := range node.Args {
		args[i] = g.visitExpression(arg)
	}
	argsStr := strings.Join(args, ", ")

	switch node.Name {
	case "print":
		return "console.log(" + argsStr + ")"
	case "len":
		if len(args) > 0 {
			return args[0] + ".length"
		}
		return "0"
	case "str":
		return "String(" + argsStr + ")"
	case "int":
		return "parseInt(" + argsStr + ")"
	case "float":
		return "parseFloat(" + argsStr + ")"
	case "bool":
		return "Boolean(" + argsStr + ")"
	case "list":
		if len(args) > 0 {
			return "[" + argsStr + "]"
		}
		return "[]"
	case "dict":
		if len(args) == 0 {
			return "{}"
		}
		return "{" + args[0] + "}"
	case "range":
		return generateRangeCall(args)
	}

	if isUpper(node.Name) {
		return "new " + node.Name + "(" + argsStr + ")"
	}
	return node.Name + "(" + argsStr + ")"
}

// generateRangeCall lowers range(...) with one, two, or three arguments
// into the equivalent Array.from(...) generator. Any other arity falls
// back to an empty array.
func generateRangeCall(args []string) string {
	switch len(args) {
	case 1:
		return "Array.from({length: " + args[0] + "}, (_, i) => i)"
	case 2:
		return "Array.from({length: " + args[1] + " - " + args[0] + "}, (_, i) => i + " + args[0] + ")"
	case 3:
		start, stop, step := args[0], args[1], args[2]
		return "Array.from({length: Math.ceil((" + stop + " - " + start + ") / " + step + ")}, (_, i) => " + start + " + i * " + step + ")"
	default:
		return "[]"
	}
}

func isUpper(name string) bool {
	if name == "" {
		return false
	}
	c := name[0]
	return c >= 'A' && c <= 'Z'
}

func (g *Generator) visitMethodCall(node *ast.MethodCall) string {
	obj := g.visitExpression(node.Object)
	args := make([]string, len(node.Args))
	for i, arg := range node.Args {
		args[i] = g.visitExpression(arg)
	}
	return obj + "." + node.Method + "(" + strings.Join(args, ", ") + ")"
}

func (g *Generator) visitLiteral(node *ast.Literal) string {
	switch node.Kind {
	case ast.LiteralString:
		return `"` + node.Value + `"`
	case ast.LiteralBoolean:
		return node.Value
	case ast.LiteralNone:
		return "null"
	default: // LiteralNumber
		return node.Value
	}
}

func (g *Generator) visitListLiteral(node *ast.ListLiteral) string {
	elements := make([]string, len(node.Elements))
	for i, elem := range node.Elements {
		elements[i] = g.visitExpression(elem)
	}
	return "[" + strings.Join(elements, ", ") + "]"
}

func (g *Generator) visitDictLiteral(node *ast.DictLiteral) string {
	pairs := make([]string, len(node.Pairs))
	for i, pair := range node.Pairs {
		pairs[i] = g.visitExpression(pair.Key) + ": " + g.visitExpression(pair.Value)
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}

func (g *Generator) visitAttributeAccess(node *ast.AttributeAccess) string {
	return g.visitExpression(node.Object) + "." + node.Attribute
}

func (g *Generator) visitIndexAccess(node *ast.IndexAccess) string {
	return g.visitExpression(node.Object) + "[" + g.visitExpression(node.Index) + "]"
}
