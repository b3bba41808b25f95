// Package parser builds an AST from a lexer token stream with a
// recursive-descent, one-token-lookahead grammar.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/corvidlang/pyjs/internal/ast"
	"github.com/corvidlang/pyjs/internal/lexer"
)

// Parser consumes a fixed token slice and produces a Program. It never
// recovers from a failed expectation: the first missing token aborts the
// whole parse with an error.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// New creates a Parser over tokens. Each call starts a fresh cursor, since
// a Parser must never carry state between compilations.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

func (p *Parser) currentToken() lexer.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) peekToken(offset int) lexer.Token {
	i := p.pos + offset
	if i < len(p.tokens) {
		return p.tokens[i]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

func (p *Parser) match(tt lexer.TokenType) bool {
	return p.currentToken().Type == tt
}

func (p *Parser) consume(tt lexer.TokenType) (lexer.Token, error) {
	if !p.match(tt) {
		return lexer.Token{}, fmt.Errorf("expected %s, got %s", tt, p.currentToken().Type)
	}
	tok := p.currentToken()
	p.advance()
	return tok, nil
}

func (p *Parser) skipNewlines() {
	for p.match(lexer.NEWLINE) {
		p.advance()
	}
}

// Parse returns the full Program, or the first error encountered.
func (p *Parser) Parse() (*ast.Program, error) {
	var statements []ast.Statement
	p.skipNewlines()

	for !p.match(lexer.EOF) {
		if p.match(lexer.NEWLINE) {
			p.advance()
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			statements = append(statements, stmt)
		}
	}

	return &ast.Program{Statements: statements}, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	p.skipNewlines()

	switch {
	case p.match(lexer.DEF):
		return p.parseFunctionDef()
	case p.match(lexer.CLASS):
		return p.parseClassDef()
	case p.match(lexer.IF):
		return p.parseIfStatement()
	case p.match(lexer.FOR):
		return p.parseForStatement()
	case p.match(lexer.WHILE):
		return p.parseWhileStatement()
	case p.match(lexer.RETURN):
		return p.parseReturnStatement()
	case p.match(lexer.IDENTIFIER) && p.peekToken(1).Type == lexer.ASSIGN:
		return p.parseAssignment()
	default:
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Expression: expr}, nil
	}
}

func (p *Parser) parseFunctionDef() (*ast.FunctionDef, error) {
	if _, err := p.consume(lexer.DEF); err != nil {
		return nil, err
	}
	name, err := p.consume(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.LPAREN); err != nil {
		return nil, err
	}

	var params []string
	for !p.match(lexer.RPAREN) {
		param, err := p.consume(lexer.IDENTIFIER)
		if err != nil {
			return nil, err
		}
		params = append(params, param.Lexeme)
		if p.match(lexer.COMMA) {
			p.advance()
		}
	}

	if _, err := p.consume(lexer.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.COLON); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.FunctionDef{Name: name.Lexeme, Params: params, Body: body}, nil
}

func (p *Parser) parseClassDef() (*ast.ClassDef, error) {
	if _, err := p.consume(lexer.CLASS); err != nil {
		return nil, err
	}
	name, err := p.consume(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.COLON); err != nil {
		return nil, err
	}

	p.skipNewlines()
	if !p.match(lexer.INDENT) {
		return &ast.ClassDef{Name: name.Lexeme}, nil
	}

	p.advance() // INDENT
	var body []ast.Statement

	for !p.match(lexer.DEDENT) && !p.match(lexer.EOF) {
		if p.match(lexer.NEWLINE) {
			p.advance()
			continue
		}
		if p.match(lexer.DEF) {
			method, err := p.parseFunctionDef()
			if err != nil {
				return nil, err
			}
			body = append(body, method)
		} else {
			// Only methods are admitted into a class body; everything
			// else is consumed and dropped.
			p.advance()
		}
	}

	if p.match(lexer.DEDENT) {
		p.advance()
	}

	return &ast.ClassDef{Name: name.Lexeme, Body: body}, nil
}

func (p *Parser) parseIfStatement() (*ast.IfStatement, error) {
	if _, err := p.consume(lexer.IF); err != nil {
		return nil, err
	}
	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.COLON); err != nil {
		return nil, err
	}
	thenBody, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var elseBody []ast.Statement
	switch {
	case p.match(lexer.ELIF):
		elifStmt, err := p.parseElifChain()
		if err != nil {
			return nil, err
		}
		elseBody = []ast.Statement{elifStmt}
	case p.match(lexer.ELSE):
		p.advance()
		if _, err := p.consume(lexer.COLON); err != nil {
			return nil, err
		}
		elseBody, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}

	return &ast.IfStatement{Condition: condition, ThenBody: thenBody, ElseBody: elseBody}, nil
}

// parseElifChain rewrites an elif as a nested if statement, recursing for
// further elifs. There is no dedicated elif node.
func (p *Parser) parseElifChain() (*ast.IfStatement, error) {
	if _, err := p.consume(lexer.ELIF); err != nil {
		return nil, err
	}
	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.COLON); err != nil {
		return nil, err
	}
	thenBody, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var elseBody []ast.Statement
	switch {
	case p.match(lexer.ELIF):
		elifStmt, err := p.parseElifChain()
		if err != nil {
			return nil, err
		}
		elseBody = []ast.Statement{elifStmt}
	case p.match(lexer.ELSE):
		p.advance()
		if _, err := p.consume(lexer.COLON); err != nil {
			return nil, err
		}
		elseBody, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}

	return &ast.IfStatement{Condition: condition, ThenBody: thenBody, ElseBody: elseBody}, nil
}

func (p *Parser) parseForStatement() (*ast.ForStatement, error) {
	if _, err := p.consume(lexer.FOR); err != nil {
		return nil, err
	}
	target, err := p.consume(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.IN); err != nil {
		return nil, err
	}
	iterable, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.COLON); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.ForStatement{Target: target.Lexeme, Iterable: iterable, Body: body}, nil
}

func (p *Parser) parseWhileStatement() (*ast.WhileStatement, error) {
	if _, err := p.consume(lexer.WHILE); err != nil {
		return nil, err
	}
	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.COLON); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.WhileStatement{Condition: condition, Body: body}, nil
}

func (p *Parser) parseReturnStatement() (*ast.ReturnStatement, error) {
	if _, err := p.consume(lexer.RETURN); err != nil {
		return nil, err
	}
	if p.match(lexer.NEWLINE) || p.match(lexer.EOF) {
		return &ast.ReturnStatement{}, nil
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.ReturnStatement{Value: value}, nil
}

func (p *Parser) parseAssignment() (*ast.AssignStatement, error) {
	target, err := p.consume(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.AssignStatement{Target: target.Lexeme, Value: value}, nil
}

// parseBlock expects an INDENT; when absent, it falls back to parsing a
// single statement on the same line — a non-standard tolerance kept for
// generated single-line bodies.
func (p *Parser) parseBlock() ([]ast.Statement, error) {
	var statements []ast.Statement
	p.skipNewlines()

	if !p.match(lexer.INDENT) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			statements = append(statements, stmt)
		}
		return statements, nil
	}

	p.advance() // INDENT

	for !p.match(lexer.DEDENT) && !p.match(lexer.EOF) {
		if p.match(lexer.NEWLINE) {
			p.advance()
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			statements = append(statements, stmt)
		}
	}

	if p.match(lexer.DEDENT) {
		p.advance()
	}

	return statements, nil
}

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseOrExpression()
}

func (p *Parser) parseOrExpression() (ast.Expression, error) {
	left, err := p.parseAndExpression()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.OR) {
		op := p.currentToken().Lexeme
		p.advance()
		right, err := p.parseAndExpression()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAndExpression() (ast.Expression, error) {
	left, err := p.parseEqualityExpression()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.AND) {
		op := p.currentToken().Lexeme
		p.advance()
		right, err := p.parseEqualityExpression()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

func (p *Parser) parseEqualityExpression() (ast.Expression, error) {
	left, err := p.parseComparisonExpression()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.EQ) || p.match(lexer.NE) {
		op := p.currentToken().Lexeme
		p.advance()
		right, err := p.parseComparisonExpression()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

func (p *Parser) parseComparisonExpression() (ast.Expression, error) {
	left, err := p.parseAdditiveExpression()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.LT) || p.match(lexer.LE) || p.match(lexer.GT) || p.match(lexer.GE) {
		op := p.currentToken().Lexeme
		p.advance()
		right, err := p.parseAdditiveExpression()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAdditiveExpression() (ast.Expression, error) {
	left, err := p.parseMultiplicativeExpression()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.PLUS) || p.match(lexer.MINUS) {
		op := p.currentToken().Lexeme
		p.advance()
		right, err := p.parseMultiplicativeExpression()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

// parseMultiplicativeExpression also recognizes floor division: the
// lexer only ever emits a single-character DIVIDE token (floor division
// has no dedicated token kind), so two adjacent DIVIDE tokens are folded
// here into one "//" operator.
func (p *Parser) parseMultiplicativeExpression() (ast.Expression, error) {
	left, err := p.parsePowerExpression()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.MULTIPLY) || p.match(lexer.DIVIDE) || p.match(lexer.MODULO) {
		op := p.currentToken().Lexeme
		if p.match(lexer.DIVIDE) && p.peekToken(1).Type == lexer.DIVIDE {
			p.advance()
			p.advance()
			op = "//"
		} else {
			p.advance()
		}
		right, err := p.parsePowerExpression()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

func (p *Parser) parsePowerExpression() (ast.Expression, error) {
	left, err := p.parseUnaryExpression()
	if err != nil {
		return nil, err
	}
	if p.match(lexer.POWER) {
		op := p.currentToken().Lexeme
		p.advance()
		right, err := p.parsePowerExpression() // right-associative
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnaryExpression() (ast.Expression, error) {
	if p.match(lexer.NOT) || p.match(lexer.MINUS) {
		op := p.currentToken().Lexeme
		p.advance()
		operand, err := p.parseUnaryExpression()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Operator: op, Operand: operand}, nil
	}
	return p.parsePostfixExpression()
}

func (p *Parser) parsePostfixExpression() (ast.Expression, error) {
	expr, err := p.parsePrimaryExpression()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.match(lexer.LPAREN):
			p.advance()
			var args []ast.Expression
			for !p.match(lexer.RPAREN) {
				arg, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if p.match(lexer.COMMA) {
					p.advance()
				}
			}
			if _, err := p.consume(lexer.RPAREN); err != nil {
				return nil, err
			}

			switch receiver := expr.(type) {
			case *ast.Identifier:
				expr = &ast.FunctionCall{Name: receiver.Name, Args: args}
			case *ast.AttributeAccess:
				expr = &ast.MethodCall{Object: receiver.Object, Method: receiver.Attribute, Args: args}
			default:
				return nil, fmt.Errorf("invalid function call")
			}

		case p.match(lexer.DOT):
			p.advance()
			attr, err := p.consume(lexer.IDENTIFIER)
			if err != nil {
				return nil, err
			}
			expr = &ast.AttributeAccess{Object: expr, Attribute: attr.Lexeme}

		case p.match(lexer.LBRACKET):
			p.advance()
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.consume(lexer.RBRACKET); err != nil {
				return nil, err
			}
			expr = &ast.IndexAccess{Object: expr, Index: index}

		default:
			return expr, nil
		}
	}
}

func (p *Parser) parsePrimaryExpression() (ast.Expression, error) {
	switch {
	case p.match(lexer.NUMBER):
		value := normalizeNumberLexeme(p.currentToken().Lexeme)
		p.advance()
		return &ast.Literal{Value: value, Kind: ast.LiteralNumber}, nil

	case p.match(lexer.STRING):
		value := p.currentToken().Lexeme
		p.advance()
		return &ast.Literal{Value: value, Kind: ast.LiteralString}, nil

	case p.match(lexer.TRUE):
		p.advance()
		return &ast.Literal{Value: "true", Kind: ast.LiteralBoolean}, nil

	case p.match(lexer.FALSE):
		p.advance()
		return &ast.Literal{Value: "false", Kind: ast.LiteralBoolean}, nil

	case p.match(lexer.NONE):
		p.advance()
		return &ast.Literal{Value: "", Kind: ast.LiteralNone}, nil

	case p.match(lexer.IDENTIFIER):
		name := p.currentToken().Lexeme
		p.advance()
		return &ast.Identifier{Name: name}, nil

	case p.match(lexer.LBRACKET):
		return p.parseListLiteral()

	case p.match(lexer.LBRACE):
		return p.parseDictLiteral()

	case p.match(lexer.LPAREN):
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil

	default:
		return nil, fmt.Errorf("unexpected token: %s", p.currentToken().Type)
	}
}

// normalizeNumberLexeme mirrors the source language's literal rule: a
// lexeme containing "." is a float, otherwise an int; both are
// re-rendered through their Go numeric type, matching how the source
// language stringifies a parsed float/int rather than echoing raw digits.
func normalizeNumberLexeme(lexeme string) string {
	if strings.Contains(lexeme, ".") {
		f, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			return lexeme
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	n, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return lexeme
	}
	return strconv.FormatInt(n, 10)
}

func (p *Parser) parseListLiteral() (*ast.ListLiteral, error) {
	if _, err := p.consume(lexer.LBRACKET); err != nil {
		return nil, err
	}
	var elements []ast.Expression
	for !p.match(lexer.RBRACKET) {
		elem, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, elem)
		if p.match(lexer.COMMA) {
			p.advance()
		}
	}
	if _, err := p.consume(lexer.RBRACKET); err != nil {
		return nil, err
	}
	return &ast.ListLiteral{Elements: elements}, nil
}

func (p *Parser) parseDictLiteral() (*ast.DictLiteral, error) {
	if _, err := p.consume(lexer.LBRACE); err != nil {
		return nil, err
	}
	var pairs []ast.DictPair
	for !p.match(lexer.RBRACE) {
		key, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.COLON); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, ast.DictPair{Key: key, Value: value})
		if p.match(lexer.COMMA) {
			p.advance()
		}
	}
	if _, err := p.consume(lexer.RBRACE); err != nil {
		return nil, err
	}
	return &ast.DictLiteral{Pairs: pairs}, nil
}
