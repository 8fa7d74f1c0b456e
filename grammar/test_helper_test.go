package grammar

import (
	"strings"
	"testing"

	"github.com/snlc/lookahead/grammar/symbol"
	"github.com/snlc/lookahead/spec"
)

const toyGrammar = `S A B
A a
A EPSILON
B b
`

const exprGrammar = `Exp Term ExpTail
ExpTail PLUS Term ExpTail
ExpTail EPSILON
Term Factor TermTail
TermTail TIMES Factor TermTail
TermTail
Factor ( Exp )
Factor ID
`

func genGrammar(t *testing.T, src string, opts ...BuilderOption) *Grammar {
	t.Helper()

	ast, err := spec.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	b := GrammarBuilder{
		AST: ast,
	}
	gram, err := b.Build(opts...)
	if err != nil {
		t.Fatal(err)
	}
	return gram
}

func genAnalysis(t *testing.T, src string, opts ...AnalysisOption) *Analysis {
	t.Helper()

	a, err := Analyze(genGrammar(t, src), opts...)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

type testSymbolGenerator func(text string) symbol.Symbol

func newTestSymbolGenerator(t *testing.T, gram *Grammar) testSymbolGenerator {
	return func(text string) symbol.Symbol {
		t.Helper()

		sym, ok := gram.symbolTable.Reader().ToSymbol(text)
		if !ok {
			t.Fatalf("symbol was not found: %v", text)
		}
		return sym
	}
}

func testStrings(t *testing.T, actual, expected []string) {
	t.Helper()

	if len(actual) != len(expected) {
		t.Fatalf("unexpected symbols\nwant: %v\ngot: %v", expected, actual)
	}
	for i, e := range expected {
		if actual[i] != e {
			t.Fatalf("unexpected symbols\nwant: %v\ngot: %v", expected, actual)
		}
	}
}
