package codegen

import (
	"strings"
	"testing"

	"github.com/corvidlang/pyjs/internal/lexer"
	"github.com/corvidlang/pyjs/internal/parser"
)

func generate(t *testing.T, source string) string {
	t.Helper()
	tokens := lexer.NewLexer(source).Tokenize()
	program, err := parser.New(tokens).Parse()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return New().Generate(program)
}

func TestSimpleFunctionAndCall(t *testing.T) {
	got := generate(t, "def g(x):\n    return x + 1\n\nprint(g(2))\n")
	want := "function g(x) {\n  return (x + 1);\n}\n\nconsole.log(g(2));"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestFloorDivision(t *testing.T) {
	got := generate(t, "x = 7 // 2\n")
	want := "let x = Math.floor(7 / 2);"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRangeLoweringThreeArgs(t *testing.T) {
	got := generate(t, "for i in range(0, 10, 2):\n    print(i)\n")
	wantFor := "for (const i of Array.from({length: Math.ceil((10 - 0) / 2)}, (_, i) => 0 + i * 2)) {"
	if !strings.Contains(got, wantFor) {
		t.Errorf("output missing expected for-header:\n%s\ngot:\n%s", wantFor, got)
	}
	if !strings.Contains(got, "console.log(i);") {
		t.Errorf("output missing console.log(i);:\n%s", got)
	}
}

func TestRangeLoweringOneAndTwoArgs(t *testing.T) {
	got := generate(t, "for i in range(5):\n    print(i)\n")
	if !strings.Contains(got, "Array.from({length: 5}, (_, i) => i)") {
		t.Errorf("one-arg range not lowered correctly:\n%s", got)
	}

	got = generate(t, "for i in range(1, 5):\n    print(i)\n")
	if !strings.Contains(got, "Array.from({length: 5 - 1}, (_, i) => i + 1)") {
		t.Errorf("two-arg range not lowered correctly:\n%s", got)
	}
}

func TestClassWithMethodAndConstructorCall(t *testing.T) {
	got := generate(t, "class P:\n    def greet(self):\n        return \"hi\"\n\np = P()\nprint(p.greet())\n")
	if !strings.Contains(got, "class P {") {
		t.Errorf("missing class header:\n%s", got)
	}
	if !strings.Contains(got, "greet(self) {") {
		t.Errorf("method should omit the function keyword:\n%s", got)
	}
	if strings.Contains(got, "function greet") {
		t.Errorf("method must not be emitted with the function keyword:\n%s", got)
	}
	if !strings.Contains(got, "let p = new P();") {
		t.Errorf("uppercase call should lower to a constructor:\n%s", got)
	}
	if !strings.Contains(got, "console.log(p.greet());") {
		t.Errorf("method call should lower to receiver.method(...):\n%s", got)
	}
}

func TestIfElifElseChain(t *testing.T) {
	got := generate(t, "def s(n):\n    if n>0:\n        return 1\n    elif n<0:\n        return -1\n    else:\n        return 0\n")
	for _, want := range []string{
		"if ((n > 0)) {",
		"return 1;",
		"} else {",
		"if ((n < 0)) {",
		"return -1;",
		"return 0;",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestBuiltinCallLowering(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"len(x)\n", "x.length;"},
		{"str(x)\n", "String(x);"},
		{"int(x)\n", "parseInt(x);"},
		{"float(x)\n", "parseFloat(x);"},
		{"bool(x)\n", "Boolean(x);"},
		{"list()\n", "[];"},
		{"dict()\n", "{};"},
	}
	for _, tt := range tests {
		got := generate(t, "x = 1\n"+tt.source)
		if !strings.Contains(got, tt.want) {
			t.Errorf("source %q: output missing %q:\n%s", tt.source, tt.want, got)
		}
	}
}

func TestReturnWithNoValue(t *testing.T) {
	got := generate(t, "def f():\n    return\n")
	if !strings.Contains(got, "return;") {
		t.Errorf("output missing bare return;:\n%s", got)
	}
}

func TestEmptySourceProducesEmptyOutput(t *testing.T) {
	if got := generate(t, ""); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestListAndDictLiterals(t *testing.T) {
	got := generate(t, "x = [1, 2, 3]\n")
	if !strings.Contains(got, "[1, 2, 3]") {
		t.Errorf("list literal not lowered:\n%s", got)
	}

	got = generate(t, `x = {"a": 1}` + "\n")
	if !strings.Contains(got, `{"a": 1}`) {
		t.Errorf("dict literal not lowered:\n%s", got)
	}
}

func TestLogicalOperatorMapping(t *testing.T) {
	got := generate(t, "x = a and b or c\n")
	if !strings.Contains(got, "&&") || !strings.Contains(got, "||") {
		t.Errorf("and/or not lowered to &&/||:\n%s", got)
	}
}
