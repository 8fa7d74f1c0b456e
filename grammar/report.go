package grammar

import (
	"fmt"
	"sort"

	"github.com/cnf/structhash"
	spec "github.com/snlc/lookahead/spec/grammar"
)

// Report renders the analysis as a report. The fingerprint is a hash of every
// other field, so reports of the same grammar carry the same fingerprint.
func (a *Analysis) Report() (*spec.Report, error) {
	gram := a.gram

	nonTerms := make([]*spec.NonTerminal, 0, len(gram.NonTerminals()))
	for _, text := range gram.NonTerminals() {
		fst, err := a.First(text)
		if err != nil {
			return nil, err
		}
		nullable, err := a.Nullable(text)
		if err != nil {
			return nil, err
		}
		flw, err := a.Follow(text)
		if err != nil {
			return nil, err
		}
		nonTerms = append(nonTerms, &spec.NonTerminal{
			Name:     text,
			Nullable: nullable,
			First:    fst,
			Follow:   flw,
		})
	}

	prods := make([]*spec.Production, 0, gram.ProductionCount())
	for _, prod := range gram.productionSet.getAllProductions() {
		lhs, rhs, err := gram.Production(prod.num.Int())
		if err != nil {
			return nil, err
		}
		fst, err := a.first.find(prod, 0)
		if err != nil {
			return nil, err
		}
		pre, err := a.Predict(prod.num.Int())
		if err != nil {
			return nil, err
		}
		prods = append(prods, &spec.Production{
			Number:  prod.num.Int(),
			LHS:     lhs,
			RHS:     rhs,
			First:   gram.firstTexts(fst),
			Predict: pre,
		})
	}

	terms := gram.Terminals()
	sort.Strings(terms)

	report := &spec.Report{
		StartSymbol:   gram.StartSymbol(),
		Epsilon:       gram.EpsilonText(),
		EOF:           gram.EOFText(),
		ReservedWords: gram.ReservedWords(),
		Terminals:     terms,
		NonTerminals:  nonTerms,
		Productions:   prods,
		Sweeps: &spec.Sweeps{
			First:  a.stats.FirstSweeps,
			Follow: a.stats.FollowSweeps,
		},
	}

	fp, err := structhash.Hash(*report, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to compute a fingerprint: %w", err)
	}
	report.Fingerprint = fp

	return report, nil
}
