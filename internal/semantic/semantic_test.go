package semantic

import (
	"testing"

	"github.com/corvidlang/pyjs/internal/lexer"
	"github.com/corvidlang/pyjs/internal/parser"
)

func analyze(t *testing.T, source string) []string {
	t.Helper()
	tokens := lexer.NewLexer(source).Tokenize()
	program, err := parser.New(tokens).Parse()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return NewAnalyzer().Analyze(program)
}

func TestValidProgramHasNoDiagnostics(t *testing.T) {
	diagnostics := analyze(t, "def g(x):\n    return x + 1\n\nprint(g(2))\n")
	if len(diagnostics) != 0 {
		t.Errorf("diagnostics = %v, want none", diagnostics)
	}
}

func TestUndefinedVariable(t *testing.T) {
	diagnostics := analyze(t, "print(missing)\n")
	if len(diagnostics) != 1 || diagnostics[0] != "Undefined variable 'missing'" {
		t.Errorf("diagnostics = %v, want [\"Undefined variable 'missing'\"]", diagnostics)
	}
}

func TestUndefinedFunction(t *testing.T) {
	diagnostics := analyze(t, "mystery(1)\n")
	if len(diagnostics) != 1 || diagnostics[0] != "Undefined function 'mystery'" {
		t.Errorf("diagnostics = %v, want [\"Undefined function 'mystery'\"]", diagnostics)
	}
}

func TestCallingAVariableIsNotAFunctionOrClass(t *testing.T) {
	diagnostics := analyze(t, "x = 1\nx()\n")
	found := false
	for _, d := range diagnostics {
		if d == "'x' is not a function or class" {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics = %v, want \"'x' is not a function or class\"", diagnostics)
	}
}

func TestReturnOutsideFunction(t *testing.T) {
	diagnostics := analyze(t, "return 1\n")
	if len(diagnostics) != 1 || diagnostics[0] != "Return statement outside function" {
		t.Errorf("diagnostics = %v, want [\"Return statement outside function\"]", diagnostics)
	}
}

func TestDuplicateFunctionDeclaration(t *testing.T) {
	diagnostics := analyze(t, "def f():\n    return 1\ndef f():\n    return 2\n")
	found := false
	for _, d := range diagnostics {
		if d == "Function 'f' already declared in current scope" {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics = %v, want duplicate function diagnostic", diagnostics)
	}
}

func TestDuplicateParameter(t *testing.T) {
	diagnostics := analyze(t, "def f(x, x):\n    return x\n")
	found := false
	for _, d := range diagnostics {
		if d == "Parameter 'x' already declared" {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics = %v, want duplicate parameter diagnostic", diagnostics)
	}
}

func TestForLoopTargetIsScopedToBody(t *testing.T) {
	diagnostics := analyze(t, "for i in range(3):\n    print(i)\nprint(i)\n")
	found := false
	for _, d := range diagnostics {
		if d == "Undefined variable 'i'" {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics = %v, want 'i' undefined once the for loop scope exits", diagnostics)
	}
}

func TestFirstWriteWinsForReassignment(t *testing.T) {
	diagnostics := analyze(t, "x = 1\nx = 2\nprint(x)\n")
	if len(diagnostics) != 0 {
		t.Errorf("diagnostics = %v, want none (reassignment is silent)", diagnostics)
	}
}

func TestClassMethodBodySeesItsOwnScope(t *testing.T) {
	diagnostics := analyze(t, "class P:\n    def greet(self):\n        return self\n")
	if len(diagnostics) != 0 {
		t.Errorf("diagnostics = %v, want none", diagnostics)
	}
}
