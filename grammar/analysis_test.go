package grammar

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestAnalysis_Queries(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lookahead.grammar")
	defer teardown()

	a := genAnalysis(t, toyGrammar)

	firstTests := []struct {
		texts    []string
		expected []string
	}{
		{texts: []string{"S"}, expected: []string{"a", "b"}},
		{texts: []string{"A"}, expected: []string{"EPSILON", "a"}},
		{texts: []string{"B"}, expected: []string{"b"}},
		{texts: []string{"a"}, expected: []string{"a"}},
		{texts: []string{"A", "B"}, expected: []string{"a", "b"}},
		{texts: []string{"A", "A"}, expected: []string{"EPSILON", "a"}},
		{texts: []string{}, expected: []string{"EPSILON"}},
	}
	for _, tt := range firstTests {
		actual, err := a.First(tt.texts...)
		if err != nil {
			t.Fatal(err)
		}
		testStrings(t, actual, tt.expected)
	}

	followTests := []struct {
		text     string
		expected []string
	}{
		{text: "S", expected: []string{"#"}},
		{text: "A", expected: []string{"b"}},
		{text: "B", expected: []string{"#"}},
	}
	for _, tt := range followTests {
		actual, err := a.Follow(tt.text)
		if err != nil {
			t.Fatal(err)
		}
		testStrings(t, actual, tt.expected)
	}

	nullable, err := a.Nullable("A")
	if err != nil {
		t.Fatal(err)
	}
	if !nullable {
		t.Fatalf("A must be nullable")
	}
	nullable, err = a.Nullable("S")
	if err != nil {
		t.Fatal(err)
	}
	if nullable {
		t.Fatalf("S must not be nullable")
	}
}

func TestAnalysis_QueryErrors(t *testing.T) {
	a := genAnalysis(t, toyGrammar)

	if _, err := a.First("Z"); !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("unexpected error; want: %v, got: %v", ErrUnknownSymbol, err)
	}
	if _, err := a.Follow("Z"); !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("unexpected error; want: %v, got: %v", ErrUnknownSymbol, err)
	}
	if _, err := a.Follow("a"); !errors.Is(err, ErrNotNonTerminal) {
		t.Errorf("unexpected error; want: %v, got: %v", ErrNotNonTerminal, err)
	}
	if _, err := a.Predict(4); !errors.Is(err, ErrNoSuchProduction) {
		t.Errorf("unexpected error; want: %v, got: %v", ErrNoSuchProduction, err)
	}
	if _, err := a.Predict(-1); !errors.Is(err, ErrNoSuchProduction) {
		t.Errorf("unexpected error; want: %v, got: %v", ErrNoSuchProduction, err)
	}
}

func TestAnalyze_SetsOnlyGrow(t *testing.T) {
	for _, src := range []string{toyGrammar, exprGrammar} {
		prev := map[Stage]map[string][]string{}
		observed := map[Stage]int{}
		a := genAnalysis(t, src, WithSweepObserver(func(stage Stage, sweep int, sets map[string][]string) {
			observed[stage]++
			if sweep != observed[stage] {
				t.Fatalf("%v sweeps must be numbered from 1; want: %v, got: %v", stage, observed[stage], sweep)
			}
			for nonTerm, before := range prev[stage] {
				after := map[string]struct{}{}
				for _, text := range sets[nonTerm] {
					after[text] = struct{}{}
				}
				for _, text := range before {
					if _, ok := after[text]; !ok {
						t.Fatalf("%v of %v lost %v in sweep %v", stage, nonTerm, text, sweep)
					}
				}
			}
			prev[stage] = sets
		}))

		stats := a.Stats()
		if observed[StageFirst] != stats.FirstSweeps || observed[StageFollow] != stats.FollowSweeps {
			t.Fatalf("unexpected sweep counts; observed: %v, stats: %+v", observed, stats)
		}
	}
}

func TestAnalyze_SweepsAreBounded(t *testing.T) {
	for _, src := range []string{toyGrammar, exprGrammar, "S S a\nS b\n"} {
		a := genAnalysis(t, src)
		gram := a.Grammar()
		bound := gram.ProductionCount()*(len(gram.Terminals())+2) + 1
		stats := a.Stats()
		if stats.FirstSweeps < 1 || stats.FirstSweeps > bound {
			t.Errorf("FIRST sweeps out of bounds; bound: %v, got: %v", bound, stats.FirstSweeps)
		}
		if stats.FollowSweeps < 1 || stats.FollowSweeps > bound {
			t.Errorf("FOLLOW sweeps out of bounds; bound: %v, got: %v", bound, stats.FollowSweeps)
		}
	}
}

func TestAnalysis_Report(t *testing.T) {
	a := genAnalysis(t, toyGrammar)
	report, err := a.Report()
	if err != nil {
		t.Fatal(err)
	}

	if report.StartSymbol != "S" || report.Epsilon != "EPSILON" || report.EOF != "#" {
		t.Fatalf("unexpected header: %+v", report)
	}
	testStrings(t, report.Terminals, []string{"a", "b"})
	if report.Fingerprint == "" {
		t.Fatalf("a report must carry a fingerprint")
	}

	nonTerm, ok := report.NonTerminal("A")
	if !ok {
		t.Fatalf("A was not found")
	}
	if !nonTerm.Nullable {
		t.Fatalf("A must be nullable")
	}
	testStrings(t, nonTerm.First, []string{"EPSILON", "a"})
	testStrings(t, nonTerm.Follow, []string{"b"})

	prods := report.ProductionsOf("A")
	if len(prods) != 2 {
		t.Fatalf("unexpected production count of A: %v", len(prods))
	}
	if prods[1].Number != 2 || len(prods[1].RHS) != 0 {
		t.Fatalf("unexpected epsilon production: %+v", prods[1])
	}
	testStrings(t, prods[1].First, []string{"EPSILON"})
	testStrings(t, prods[1].Predict, []string{"b"})
}

func TestAnalysis_ReportIsIdempotent(t *testing.T) {
	encode := func() ([]byte, string) {
		report, err := genAnalysis(t, exprGrammar).Report()
		if err != nil {
			t.Fatal(err)
		}
		b, err := json.Marshal(report)
		if err != nil {
			t.Fatal(err)
		}
		return b, report.Fingerprint
	}

	b1, fp1 := encode()
	b2, fp2 := encode()
	if !bytes.Equal(b1, b2) {
		t.Fatalf("reports differ\n%s\n%s", b1, b2)
	}
	if fp1 != fp2 {
		t.Fatalf("fingerprints differ; %v, %v", fp1, fp2)
	}
}
