// Package semantic walks a parsed Program, building a scope-stack symbol
// table and accumulating diagnostics rather than failing fast.
package semantic

import (
	"fmt"

	"github.com/corvidlang/pyjs/internal/ast"
)

var builtinFunctions = []string{
	"print", "len", "range", "str", "int", "float", "bool", "list", "dict",
}

// Analyzer performs a single pass over a Program, tracking the enclosing
// function (if any) for return-outside-function checks.
type Analyzer struct {
	symbols         *SymbolTable
	errors          []string
	currentFunction string
}

// NewAnalyzer returns an Analyzer whose global scope is seeded with the
// built-in function names.
func NewAnalyzer() *Analyzer {
	a := &Analyzer{symbols: NewSymbolTable()}
	for _, name := range builtinFunctions {
		a.symbols.Declare(name, SymbolFunction)
	}
	return a
}

// Analyze walks program and returns every diagnostic collected. An empty
// slice means the program is accepted.
func (a *Analyzer) Analyze(program *ast.Program) []string {
	for _, stmt := range program.Statements {
		a.visitStatement(stmt)
	}
	return a.errors
}

func (a *Analyzer) error(format string, args ...any) {
	a.errors = append(a.errors, fmt.Sprintf(format, args...))
}

func (a *Analyzer) visitStatement(stmt ast.Statement) {
	switch node := stmt.(type) {
	case *ast.FunctionDef:
		a.visitFunctionDef(node)
	case *ast.ClassDef:
		a.visitClassDef(node)
	case *ast.IfStatement:
		a.visitIfStatement(node)
	case *ast.ForStatement:
		a.visitForStatement(node)
	case *ast.WhileStatement:
		a.visitWhileStatement(node)
	case *ast.ReturnStatement:
		a.visitReturnStatement(node)
	case *ast.AssignStatement:
		a.visitAssignStatement(node)
	case *ast.ExpressionStatement:
		a.visitExpression(node.Expression)
	}
}

func (a *Analyzer) visitFunctionDef(node *ast.FunctionDef) {
	if a.symbols.IsDeclaredInCurrentScope(node.Name) {
		a.error("Function '%s' already declared in current scope", node.Name)
	}
	a.symbols.Declare(node.Name, SymbolFunction)

	a.symbols.EnterScope()
	outerFunction := a.currentFunction
	a.currentFunction = node.Name

	for _, param := range node.Params {
		if a.symbols.IsDeclaredInCurrentScope(param) {
			a.error("Parameter '%s' already declared", param)
		}
		a.symbols.Declare(param, SymbolVariable)
	}

	for _, stmt := range node.Body {
		a.visitStatement(stmt)
	}

	a.currentFunction = outerFunction
	a.symbols.ExitScope()
}

func (a *Analyzer) visitClassDef(node *ast.ClassDef) {
	if a.symbols.IsDeclaredInCurrentScope(node.Name) {
		a.error("Class '%s' already declared in current scope", node.Name)
	}
	a.symbols.Declare(node.Name, SymbolClass)

	a.symbols.EnterScope()
	for _, stmt := range node.Body {
		a.visitStatement(stmt)
	}
	a.symbols.ExitScope()
}

func (a *Analyzer) visitIfStatement(node *ast.IfStatement) {
	a.visitExpression(node.Condition)
	for _, stmt := range node.ThenBody {
		a.visitStatement(stmt)
	}
	for _, stmt := range node.ElseBody {
		a.visitStatement(stmt)
	}
}

func (a *Analyzer) visitForStatement(node *ast.ForStatement) {
	a.visitExpression(node.Iterable)

	a.symbols.EnterScope()
	a.symbols.Declare(node.Target, SymbolVariable)
	for _, stmt := range node.Body {
		a.visitStatement(stmt)
	}
	a.symbols.ExitScope()
}

func (a *Analyzer) visitWhileStatement(node *ast.WhileStatement) {
	a.visitExpression(node.Condition)
	for _, stmt := range node.Body {
		a.visitStatement(stmt)
	}
}

func (a *Analyzer) visitReturnStatement(node *ast.ReturnStatement) {
	if a.currentFunction == "" {
		a.error("Return statement outside function")
	}
	if node.Value != nil {
		a.visitExpression(node.Value)
	}
}

func (a *Analyzer) visitAssignStatement(node *ast.AssignStatement) {
	a.visitExpression(node.Value)

	if _, ok := a.symbols.Resolve(node.Target); !ok {
		a.symbols.Declare(node.Target, SymbolVariable)
	}
}

func (a *Analyzer) visitExpression(expr ast.Expression) {
	switch node := expr.(type) {
	case *ast.BinaryOp:
		a.visitExpression(node.Left)
		a.visitExpression(node.Right)
	case *ast.UnaryOp:
		a.visitExpression(node.Operand)
	case *ast.FunctionCall:
		a.visitFunctionCall(node)
	case *ast.MethodCall:
		a.visitExpression(node.Object)
		for _, arg := range node.Args {
			a.visitExpression(arg)
		}
	case *ast.Identifier:
		a.visitIdentifier(node)
	case *ast.Literal:
		// Literals are always valid.
	case *ast.ListLiteral:
		for _, elem := range node.Elements {
			a.visitExpression(elem)
		}
	case *ast.DictLiteral:
		for _, pair := range node.Pairs {
			a.visitExpression(pair.Key)
			a.visitExpression(pair.Value)
		}
	case *ast.AttributeAccess:
		a.visitExpression(node.Object)
	case *ast.IndexAccess:
		a.visitExpression(node.Object)
		a.visitExpression(node.Index)
	}
}

func (a *Analyzer) visitFunctionCall(node *ast.FunctionCall) {
	symbol, ok := a.symbols.Resolve(node.Name)
	switch {
	case !ok:
		a.error("Undefined function '%s'", node.Name)
	case symbol.Kind != SymbolFunction && symbol.Kind != SymbolClass:
		a.error("'%s' is not a function or class", node.Name)
	}

	for _, arg := range node.Args {
		a.visitExpression(arg)
	}
}

func (a *Analyzer) visitIdentifier(node *ast.Identifier) {
	if _, ok := a.symbols.Resolve(node.Name); !ok {
		a.error("Undefined variable '%s'", node.Name)
	}
}
