package conflict

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/snlc/lookahead/grammar"
	"github.com/snlc/lookahead/spec"
)

func TestFind(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lookahead.conflict")
	defer teardown()

	tests := []struct {
		caption   string
		src       string
		conflicts []*Conflict
	}{
		{
			caption: "disjoint alternatives have no conflict",
			src: `S A B
A a
A EPSILON
B b
`,
		},
		{
			caption: "alternatives starting with the same terminal conflict",
			src: `X a
X a b
`,
			conflicts: []*Conflict{
				{NonTerminal: "X", Productions: [2]int{0, 1}, Symbols: []string{"a"}},
			},
		},
		{
			caption: "an epsilon alternative conflicts through FOLLOW",
			src: `S A a
A a
A
`,
			conflicts: []*Conflict{
				{NonTerminal: "A", Productions: [2]int{1, 2}, Symbols: []string{"a"}},
			},
		},
		{
			caption: "left recursion conflicts",
			src: `E E PLUS T
E T
T ID
`,
			conflicts: []*Conflict{
				{NonTerminal: "E", Productions: [2]int{0, 1}, Symbols: []string{"ID"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			ast, err := spec.Parse(strings.NewReader(tt.src))
			if err != nil {
				t.Fatal(err)
			}
			b := grammar.GrammarBuilder{
				AST: ast,
			}
			gram, err := b.Build()
			if err != nil {
				t.Fatal(err)
			}
			a, err := grammar.Analyze(gram)
			if err != nil {
				t.Fatalf("overlapping PREDICT sets must not fail the analysis: %v", err)
			}
			report, err := a.Report()
			if err != nil {
				t.Fatal(err)
			}

			conflicts := Find(report)
			if len(conflicts) != len(tt.conflicts) {
				t.Fatalf("unexpected conflicts; want: %v, got: %v", tt.conflicts, conflicts)
			}
			for i, expected := range tt.conflicts {
				actual := conflicts[i]
				if actual.NonTerminal != expected.NonTerminal || actual.Productions != expected.Productions {
					t.Fatalf("unexpected conflict; want: %v, got: %v", expected, actual)
				}
				if strings.Join(actual.Symbols, " ") != strings.Join(expected.Symbols, " ") {
					t.Fatalf("unexpected shared symbols; want: %v, got: %v", expected.Symbols, actual.Symbols)
				}
			}
		})
	}
}
