package grammar

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

type follow struct {
	nonTerminal string
	symbols     []string
	eof         bool
}

func TestFollowSet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lookahead.grammar")
	defer teardown()

	tests := []struct {
		caption string
		src     string
		opts    []BuilderOption
		follow  []follow
	}{
		{
			caption: "FOLLOW of the start symbol holds the end marker",
			src:     toyGrammar,
			follow: []follow{
				{nonTerminal: "S", symbols: []string{}, eof: true},
				{nonTerminal: "A", symbols: []string{"b"}},
				{nonTerminal: "B", symbols: []string{}, eof: true},
			},
		},
		{
			caption: "FOLLOW of the LHS flows into a nullable tail",
			src:     exprGrammar,
			follow: []follow{
				{nonTerminal: "Exp", symbols: []string{")"}, eof: true},
				{nonTerminal: "ExpTail", symbols: []string{")"}, eof: true},
				{nonTerminal: "Term", symbols: []string{"PLUS", ")"}, eof: true},
				{nonTerminal: "TermTail", symbols: []string{"PLUS", ")"}, eof: true},
				{nonTerminal: "Factor", symbols: []string{"TIMES", "PLUS", ")"}, eof: true},
			},
		},
		{
			caption: "a non-terminal never used in an RHS has an empty FOLLOW",
			src: `S a
T b
`,
			follow: []follow{
				{nonTerminal: "S", symbols: []string{}, eof: true},
				{nonTerminal: "T", symbols: []string{}},
			},
		},
		{
			caption: "the start symbol may be overridden",
			src: `S T a
T b
`,
			opts: []BuilderOption{
				StartSymbol("T"),
			},
			follow: []follow{
				{nonTerminal: "S", symbols: []string{}},
				{nonTerminal: "T", symbols: []string{"a"}, eof: true},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			gram := genGrammar(t, tt.src, tt.opts...)
			genSym := newTestSymbolGenerator(t, gram)
			fst, _, err := genFirstSet(gram.productionSet, nil)
			if err != nil {
				t.Fatal(err)
			}
			flw, _, err := genFollowSet(gram.productionSet, fst, gram.startSymbol, nil)
			if err != nil {
				t.Fatal(err)
			}

			for _, ttFollow := range tt.follow {
				actual, err := flw.find(genSym(ttFollow.nonTerminal))
				if err != nil {
					t.Fatal(err)
				}
				expected := newFollowEntry()
				if ttFollow.eof {
					expected.addEOF()
				}
				for _, text := range ttFollow.symbols {
					expected.add(genSym(text))
				}
				testFollow(t, actual, expected)
			}
		})
	}
}

func testFollow(t *testing.T, actual, expected *followEntry) {
	t.Helper()

	if actual.eof != expected.eof {
		t.Errorf("eof is mismatched; want: %v, got: %v", expected.eof, actual.eof)
	}

	if len(actual.symbols) != len(expected.symbols) {
		t.Fatalf("unexpected symbol count of a FOLLOW entry; want: %v, got: %v", expected.symbols, actual.symbols)
	}

	for eSym := range expected.symbols {
		if _, ok := actual.symbols[eSym]; !ok {
			t.Fatalf("invalid FOLLOW entry; want: %v, got: %v", expected.symbols, actual.symbols)
		}
	}
}
