package lexer_test

import (
	"testing"

	"github.com/go-joy/joy/internal/lexer"
	"github.com/go-joy/joy/internal/token"
)

func collect(src string) []token.Token {
	l := lexer.New(src)
	var toks []token.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return toks
}

func TestLexerBasicTokens(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []token.Type
	}{
		{"integers", "2 3 +", []token.Type{token.INT, token.INT, token.IDENT, token.EOF}},
		{"negative integer", "-5 succ", []token.Type{token.INT, token.IDENT, token.EOF}},
		{"float", "3.14 sqrt", []token.Type{token.FLOAT, token.IDENT, token.EOF}},
		{"exponent float", "1e10 2E-3", []token.Type{token.FLOAT, token.FLOAT, token.EOF}},
		{"quotation", "[1 2 3] i", []token.Type{
			token.LBRACKET, token.INT, token.INT, token.INT, token.RBRACKET, token.IDENT, token.EOF,
		}},
		{"set literal", "{1 3 5 7} size", []token.Type{
			token.LBRACE, token.INT, token.INT, token.INT, token.INT, token.RBRACE, token.IDENT, token.EOF,
		}},
		{"string literal", `"hello" putchars`, []token.Type{token.STRING, token.IDENT, token.EOF}},
		{"char literal", `'a ord`, []token.Type{token.CHAR, token.IDENT, token.EOF}},
		{"end of phrase", "2 3 + .", []token.Type{token.INT, token.INT, token.IDENT, token.DOT, token.EOF}},
		{"define block", "DEFINE sq == dup * ; END",
			[]token.Type{token.DEFINE, token.IDENT, token.EQUALDEF, token.IDENT, token.IDENT, token.SEMI, token.END, token.EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := collect(tt.src)
			if len(toks) != len(tt.want) {
				t.Fatalf("%s: got %d tokens %v, want %d", tt.src, len(toks), toks, len(tt.want))
			}
			for i, want := range tt.want {
				if toks[i].Type != want {
					t.Errorf("%s: token %d = %s, want %s", tt.src, i, toks[i].Type, want)
				}
			}
		})
	}
}

func TestLexerComments(t *testing.T) {
	src := "2 3 + # a line comment\n(* a block comment *) .\n"
	toks := collect(src)
	want := []token.Type{token.INT, token.INT, token.IDENT, token.DOT, token.EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d = %s, want %s", i, toks[i].Type, w)
		}
	}
}

func TestLexerStringEscapes(t *testing.T) {
	toks := collect(`"a\nb\tc\\d\"e"`)
	if toks[0].Type != token.STRING {
		t.Fatalf("expected STRING, got %s", toks[0].Type)
	}
	want := "a\nb\tc\\d\"e"
	if toks[0].Literal != want {
		t.Errorf("got %q, want %q", toks[0].Literal, want)
	}
}

func TestLexerCharOctalEscape(t *testing.T) {
	toks := collect(`'\101`)
	if toks[0].Type != token.CHAR {
		t.Fatalf("expected CHAR, got %s", toks[0].Type)
	}
	if toks[0].Literal != "A" {
		t.Errorf("got %q, want %q", toks[0].Literal, "A")
	}
}

func TestLexerPosition(t *testing.T) {
	l := lexer.New("2\n  3", lexer.WithFile("prog.joy"))
	first := l.Next()
	second := l.Next()
	if first.Pos.Line != 1 || first.Pos.File != "prog.joy" {
		t.Errorf("first token pos = %+v", first.Pos)
	}
	if second.Pos.Line != 2 || second.Pos.Column != 3 {
		t.Errorf("second token pos = %+v, want line 2 col 3", second.Pos)
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	toks := collect(`"unterminated`)
	if toks[0].Type != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %s", toks[0].Type)
	}
}

func TestLexerDotInsideFloatIsNotPhraseEnd(t *testing.T) {
	toks := collect("3.14")
	if len(toks) != 2 || toks[0].Type != token.FLOAT {
		t.Fatalf("got %v, want a single FLOAT token", toks)
	}
}
