package lexer

import "testing"

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func equalTypes(got, want []TokenType) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestBasicTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenType
	}{
		{
			name:     "simple assignment",
			input:    "x = 1\n",
			expected: []TokenType{IDENTIFIER, ASSIGN, NUMBER, NEWLINE, EOF},
		},
		{
			name:     "def header",
			input:    "def f(x):\n",
			expected: []TokenType{DEF, IDENTIFIER, LPAREN, IDENTIFIER, RPAREN, COLON, NEWLINE, EOF},
		},
		{
			name:     "keywords",
			input:    "if elif else for while return class and or not in is\n",
			expected: []TokenType{IF, ELIF, ELSE, FOR, WHILE, RETURN, CLASS, AND, OR, NOT, IN, IS, NEWLINE, EOF},
		},
		{
			name:     "operators",
			input:    "+ - * / % ** += -= == != <= >= < >\n",
			expected: []TokenType{PLUS, MINUS, MULTIPLY, DIVIDE, MODULO, POWER, PLUS_ASSIGN, MINUS_ASSIGN, EQ, NE, LE, GE, LT, GT, NEWLINE, EOF},
		},
		{
			name:     "comment is consumed",
			input:    "# a comment\nx = 1\n",
			expected: []TokenType{NEWLINE, IDENTIFIER, ASSIGN, NUMBER, NEWLINE, EOF},
		},
		{
			name:     "literals",
			input:    `True False None "hi"` + "\n",
			expected: []TokenType{TRUE, FALSE, NONE, STRING, NEWLINE, EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := NewLexer(tt.input).Tokenize()
			got := tokenTypes(tokens)
			if !equalTypes(got, tt.expected) {
				t.Errorf("tokens = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIndentation(t *testing.T) {
	input := "def f():\n    x = 1\n    return x\ny = 2\n"
	tokens := NewLexer(input).Tokenize()
	got := tokenTypes(tokens)

	want := []TokenType{
		DEF, IDENTIFIER, LPAREN, RPAREN, COLON, NEWLINE,
		INDENT,
		IDENTIFIER, ASSIGN, NUMBER, NEWLINE,
		RETURN, IDENTIFIER, NEWLINE,
		DEDENT,
		IDENTIFIER, ASSIGN, NUMBER, NEWLINE,
		EOF,
	}
	if !equalTypes(got, want) {
		t.Errorf("tokens = %v, want %v", got, want)
	}
}

func TestNestedIndentationBalancesAtEOF(t *testing.T) {
	input := "def f():\n    if True:\n        return 1\n"
	tokens := NewLexer(input).Tokenize()

	depth := 0
	for _, tok := range tokens {
		switch tok.Type {
		case INDENT:
			depth++
		case DEDENT:
			depth--
		}
	}
	if depth != 0 {
		t.Errorf("indent depth at EOF = %d, want 0", depth)
	}

	last := tokens[len(tokens)-1]
	if last.Type != EOF {
		t.Fatalf("last token = %v, want EOF", last.Type)
	}
	eofCount := 0
	for _, tok := range tokens {
		if tok.Type == EOF {
			eofCount++
		}
	}
	if eofCount != 1 {
		t.Errorf("EOF count = %d, want exactly 1", eofCount)
	}
}

func TestStringEscapeIsKeptVerbatim(t *testing.T) {
	tokens := NewLexer(`"a\nb"` + "\n").Tokenize()
	if tokens[0].Type != STRING {
		t.Fatalf("first token = %v, want STRING", tokens[0].Type)
	}
	if tokens[0].Lexeme != "anb" {
		t.Errorf("lexeme = %q, want %q", tokens[0].Lexeme, "anb")
	}
}

func TestUnterminatedStringClosesSilently(t *testing.T) {
	tokens := NewLexer(`"unterminated`).Tokenize()
	if tokens[0].Type != STRING {
		t.Fatalf("first token = %v, want STRING", tokens[0].Type)
	}
	if tokens[0].Lexeme != "unterminated" {
		t.Errorf("lexeme = %q, want %q", tokens[0].Lexeme, "unterminated")
	}
	if tokens[len(tokens)-1].Type != EOF {
		t.Errorf("lexer did not terminate cleanly")
	}
}

func TestUnknownCharacterIsDropped(t *testing.T) {
	tokens := NewLexer("x = 1 $ 2\n").Tokenize()
	got := tokenTypes(tokens)
	want := []TokenType{IDENTIFIER, ASSIGN, NUMBER, NUMBER, NEWLINE, EOF}
	if !equalTypes(got, want) {
		t.Errorf("tokens = %v, want %v", got, want)
	}
}

func TestFloorDivisionEmitsTwoAdjacentDivideTokens(t *testing.T) {
	tokens := NewLexer("7 // 2\n").Tokenize()
	got := tokenTypes(tokens)
	want := []TokenType{NUMBER, DIVIDE, DIVIDE, NUMBER, NEWLINE, EOF}
	if !equalTypes(got, want) {
		t.Errorf("tokens = %v, want %v", got, want)
	}
}

func TestEmptySourceYieldsOnlyEOF(t *testing.T) {
	tokens := NewLexer("").Tokenize()
	if len(tokens) != 1 || tokens[0].Type != EOF {
		t.Errorf("tokens = %v, want [EOF]", tokenTypes(tokens))
	}
}
