package spec

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestLexer_Run(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lookahead.spec")
	defer teardown()

	symTok := func(text string, row, col int) *token {
		return newSymbolToken(text, newPosition(row, col))
	}

	nlTok := func(row, col int) *token {
		return newNewlineToken(newPosition(row, col))
	}

	tests := []struct {
		caption string
		src     string
		tokens  []*token
	}{
		{
			caption: "the lexer can recognize symbols made of any printable characters",
			src:     "Stm ID := Exp ; # ( )",
			tokens: []*token{
				symTok("Stm", 1, 1),
				symTok("ID", 1, 5),
				symTok(":=", 1, 8),
				symTok("Exp", 1, 11),
				symTok(";", 1, 15),
				symTok("#", 1, 17),
				symTok("(", 1, 19),
				symTok(")", 1, 21),
				newEOFToken(),
			},
		},
		{
			caption: "the lexer skips blanks and tabs and reports newlines",
			src:     "A\t a  b\nB\r\nC",
			tokens: []*token{
				symTok("A", 1, 1),
				symTok("a", 1, 4),
				symTok("b", 1, 7),
				nlTok(1, 8),
				symTok("B", 2, 1),
				nlTok(2, 2),
				symTok("C", 3, 1),
				newEOFToken(),
			},
		},
		{
			caption: "an empty source yields EOF only",
			src:     "",
			tokens: []*token{
				newEOFToken(),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			l, err := newLexer(strings.NewReader(tt.src))
			if err != nil {
				t.Fatal(err)
			}
			n := 0
			for {
				tok, err := l.next()
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if n >= len(tt.tokens) {
					t.Fatalf("too many tokens; unexpected: %+v", tok)
				}
				testToken(t, tok, tt.tokens[n])
				n++
				if tok.kind == tokenKindEOF {
					break
				}
			}
			if n != len(tt.tokens) {
				t.Fatalf("unexpected token count; want: %v, got: %v", len(tt.tokens), n)
			}
		})
	}
}

func TestLexer_CompileOnce(t *testing.T) {
	s1, err := compileLexSpec()
	if err != nil {
		t.Fatal(err)
	}
	s2, err := compileLexSpec()
	if err != nil {
		t.Fatal(err)
	}
	if s1 != s2 {
		t.Fatalf("the lexical specification must be compiled only once")
	}
}

func testToken(t *testing.T, tok, expected *token) {
	t.Helper()

	if tok.kind != expected.kind || tok.text != expected.text {
		t.Fatalf("unexpected token; want: %+v, got: %+v", expected, tok)
	}
	if expected.kind != tokenKindEOF && tok.pos != expected.pos {
		t.Fatalf("unexpected position; want: %+v, got: %+v", expected.pos, tok.pos)
	}
}
