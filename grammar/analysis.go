package grammar

import (
	"fmt"
	"sort"

	"github.com/snlc/lookahead/grammar/symbol"
)

type Stage int

const (
	StageFirst Stage = iota
	StageFollow
)

func (s Stage) String() string {
	switch s {
	case StageFirst:
		return "FIRST"
	case StageFollow:
		return "FOLLOW"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// SweepObserver receives a copy of the sets of every non-terminal after each
// sweep of a fixed-point stage.
type SweepObserver func(stage Stage, sweep int, sets map[string][]string)

type analysisConfig struct {
	observer SweepObserver
}

type AnalysisOption func(*analysisConfig)

func WithSweepObserver(observer SweepObserver) AnalysisOption {
	return func(c *analysisConfig) {
		c.observer = observer
	}
}

// Stats counts the sweeps each stage needed.
type Stats struct {
	FirstSweeps  int
	FollowSweeps int
}

// Analysis holds the frozen FIRST, FOLLOW and PREDICT tables of a grammar.
// All query results are symbol texts sorted in byte order.
type Analysis struct {
	gram    *Grammar
	first   *firstSet
	follow  *followSet
	predict *predictSet
	stats   Stats
}

// Analyze computes FIRST, then FOLLOW, then PREDICT for gram.
func Analyze(gram *Grammar, opts ...AnalysisOption) (*Analysis, error) {
	config := &analysisConfig{}
	for _, opt := range opts {
		opt(config)
	}

	var onFirst func(int, *firstSet)
	var onFollow func(int, *followSet)
	if config.observer != nil {
		onFirst = func(sweep int, fst *firstSet) {
			sets := map[string][]string{}
			for sym, e := range fst.set {
				sets[gram.toText(sym)] = gram.firstTexts(e)
			}
			config.observer(StageFirst, sweep, sets)
		}
		onFollow = func(sweep int, flw *followSet) {
			sets := map[string][]string{}
			for sym, e := range flw.set {
				sets[gram.toText(sym)] = gram.followTexts(e)
			}
			config.observer(StageFollow, sweep, sets)
		}
	}

	first, firstSweeps, err := genFirstSet(gram.productionSet, onFirst)
	if err != nil {
		return nil, err
	}
	follow, followSweeps, err := genFollowSet(gram.productionSet, first, gram.startSymbol, onFollow)
	if err != nil {
		return nil, err
	}
	predict, err := genPredictSet(gram.productionSet, first, follow)
	if err != nil {
		return nil, err
	}

	tracer().Infof("FIRST took %v sweeps, FOLLOW took %v sweeps", firstSweeps, followSweeps)

	return &Analysis{
		gram:    gram,
		first:   first,
		follow:  follow,
		predict: predict,
		stats: Stats{
			FirstSweeps:  firstSweeps,
			FollowSweeps: followSweeps,
		},
	}, nil
}

func (a *Analysis) Grammar() *Grammar {
	return a.gram
}

func (a *Analysis) Stats() Stats {
	return a.stats
}

// First returns FIRST of the symbol sequence texts. An empty sequence, or one
// whose symbols are all nullable, yields a set containing the epsilon text.
func (a *Analysis) First(texts ...string) ([]string, error) {
	e, err := a.firstEntry(texts)
	if err != nil {
		return nil, err
	}
	return a.gram.firstTexts(e), nil
}

// Nullable reports whether the symbol sequence texts derives the empty string.
func (a *Analysis) Nullable(texts ...string) (bool, error) {
	e, err := a.firstEntry(texts)
	if err != nil {
		return false, err
	}
	return e.empty, nil
}

func (a *Analysis) firstEntry(texts []string) (*firstEntry, error) {
	syms := make([]symbol.Symbol, 0, len(texts))
	for _, text := range texts {
		sym, err := a.gram.toSymbol(text)
		if err != nil {
			return nil, err
		}
		syms = append(syms, sym)
	}
	return a.first.findBySequence(syms)
}

// Follow returns FOLLOW of the non-terminal text.
func (a *Analysis) Follow(text string) ([]string, error) {
	sym, err := a.gram.toSymbol(text)
	if err != nil {
		return nil, err
	}
	if !sym.IsNonTerminal() {
		return nil, fmt.Errorf("%w: %v", ErrNotNonTerminal, text)
	}
	e, err := a.follow.find(sym)
	if err != nil {
		return nil, err
	}
	return a.gram.followTexts(e), nil
}

// Predict returns PREDICT of production num.
func (a *Analysis) Predict(num int) ([]string, error) {
	if num < 0 || num >= a.gram.ProductionCount() {
		return nil, fmt.Errorf("%w: %v", ErrNoSuchProduction, num)
	}
	e, _ := a.predict.find(productionNum(num))
	return a.gram.predictTexts(e), nil
}

// Predicts returns PREDICT of every production in production order.
func (a *Analysis) Predicts() [][]string {
	sets := make([][]string, 0, len(a.predict.entries))
	for _, e := range a.predict.entries {
		sets = append(sets, a.gram.predictTexts(e))
	}
	return sets
}

func (g *Grammar) symbolTexts(syms map[symbol.Symbol]struct{}, extra ...string) []string {
	texts := make([]string, 0, len(syms)+len(extra))
	for sym := range syms {
		texts = append(texts, g.toText(sym))
	}
	texts = append(texts, extra...)
	sort.Strings(texts)
	return texts
}

func (g *Grammar) firstTexts(e *firstEntry) []string {
	if e.empty {
		return g.symbolTexts(e.symbols, g.EpsilonText())
	}
	return g.symbolTexts(e.symbols)
}

func (g *Grammar) followTexts(e *followEntry) []string {
	if e.eof {
		return g.symbolTexts(e.symbols, g.EOFText())
	}
	return g.symbolTexts(e.symbols)
}

func (g *Grammar) predictTexts(e *predictEntry) []string {
	if e.eof {
		return g.symbolTexts(e.symbols, g.EOFText())
	}
	return g.symbolTexts(e.symbols)
}
