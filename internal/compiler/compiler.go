// Package compiler drives the lexer, parser, semantic analyzer, and code
// generator as a single pipeline and aggregates their failures into one
// external error shape.
package compiler

import (
	"fmt"
	"strings"

	"github.com/corvidlang/pyjs/internal/codegen"
	"github.com/corvidlang/pyjs/internal/lexer"
	"github.com/corvidlang/pyjs/internal/parser"
	"github.com/corvidlang/pyjs/internal/semantic"
)

// CompilerError is the sole externally visible failure shape. Its message
// stem tells a caller which pipeline stage failed without needing to
// inspect a Go error type.
type CompilerError struct {
	Message string
}

func (e *CompilerError) Error() string {
	return e.Message
}

const (
	stemSyntax   = "Error de sintaxis: "
	stemSemantic = "Errores semánticos encontrados:\n"
	stemInternal = "Error de compilación: "
)

// Compile translates pyjs source text into its JavaScript-subset
// equivalent. Every component is constructed fresh so that concurrent,
// independent calls never share mutable state.
func Compile(source string) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &CompilerError{Message: stemInternal + fmt.Sprint(r)}
		}
	}()

	tokens := lexer.NewLexer(source).Tokenize()

	program, parseErr := parser.New(tokens).Parse()
	if parseErr != nil {
		return "", &CompilerError{Message: stemSyntax + parseErr.Error()}
	}

	diagnostics := semantic.NewAnalyzer().Analyze(program)
	if len(diagnostics) > 0 {
		return "", &CompilerError{Message: stemSemantic + strings.Join(diagnostics, "\n")}
	}

	return codegen.New().Generate(program), nil
}
