package grammar

import (
	"fmt"

	"github.com/snlc/lookahead/grammar/symbol"
)

// firstEntry is a FIRST set. empty stands for EPSILON.
type firstEntry struct {
	symbols map[symbol.Symbol]struct{}
	empty   bool
}

func newFirstEntry() *firstEntry {
	return &firstEntry{
		symbols: map[symbol.Symbol]struct{}{},
		empty:   false,
	}
}

func (e *firstEntry) add(sym symbol.Symbol) bool {
	if _, ok := e.symbols[sym]; ok {
		return false
	}
	e.symbols[sym] = struct{}{}
	return true
}

func (e *firstEntry) addEmpty() bool {
	if !e.empty {
		e.empty = true
		return true
	}
	return false
}

func (e *firstEntry) mergeExceptEmpty(target *firstEntry) bool {
	if target == nil {
		return false
	}
	changed := false
	for sym := range target.symbols {
		added := e.add(sym)
		if added {
			changed = true
		}
	}
	return changed
}

func (e *firstEntry) size() int {
	if e.empty {
		return len(e.symbols) + 1
	}
	return len(e.symbols)
}

type firstSet struct {
	set map[symbol.Symbol]*firstEntry

	// suffixes[num][i] is FIRST of the RHS of production num from position i.
	// The last element of each slice belongs to the empty suffix.
	suffixes map[productionNum][]*firstEntry
}

func newFirstSet(prods *productionSet) *firstSet {
	fst := &firstSet{
		set:      map[symbol.Symbol]*firstEntry{},
		suffixes: map[productionNum][]*firstEntry{},
	}
	for _, prod := range prods.getAllProductions() {
		if _, ok := fst.set[prod.lhs]; ok {
			continue
		}
		fst.set[prod.lhs] = newFirstEntry()
	}

	return fst
}

// find returns FIRST of the RHS of prod from position head. The suffix table
// answers once genFirstSet has finished, otherwise the entry is computed from
// the current per-symbol sets.
func (fst *firstSet) find(prod *production, head int) (*firstEntry, error) {
	if head < 0 || head > prod.rhsLen {
		return nil, fmt.Errorf("a head position is out of range; production: %v, head: %v", prod.num, head)
	}
	if sufs, ok := fst.suffixes[prod.num]; ok {
		return sufs[head], nil
	}
	return fst.findBySequence(prod.rhs[head:])
}

// findBySymbol returns FIRST of a single symbol. A terminal yields a fresh
// entry holding only itself.
func (fst *firstSet) findBySymbol(sym symbol.Symbol) *firstEntry {
	if sym.IsTerminal() {
		e := newFirstEntry()
		if sym.IsEpsilon() {
			e.addEmpty()
		} else {
			e.add(sym)
		}
		return e
	}
	return fst.set[sym]
}

// findBySequence returns FIRST of an arbitrary symbol sequence. Epsilon
// symbols inside the sequence derive nothing and are skipped.
func (fst *firstSet) findBySequence(syms []symbol.Symbol) (*firstEntry, error) {
	entry := newFirstEntry()
	for _, sym := range syms {
		if sym.IsEpsilon() {
			continue
		}
		if sym.IsTerminal() {
			entry.add(sym)
			return entry, nil
		}

		e := fst.findBySymbol(sym)
		if e == nil {
			return nil, fmt.Errorf("an entry of FIRST was not found; symbol: %s", sym)
		}
		entry.mergeExceptEmpty(e)
		if !e.empty {
			return entry, nil
		}
	}
	entry.addEmpty()
	return entry, nil
}

func (fst *firstSet) size() int {
	n := 0
	for _, e := range fst.set {
		n += e.size()
	}
	return n
}

type firstComContext struct {
	first *firstSet
}

func newFirstComContext(prods *productionSet) *firstComContext {
	return &firstComContext{
		first: newFirstSet(prods),
	}
}

// genFirstSet computes FIRST of every non-terminal by repeating full sweeps
// over the productions until a sweep adds nothing, then fills the suffix
// table. onSweep, when non-nil, sees the sets after every sweep. The returned
// count includes the final sweep that changed nothing.
func genFirstSet(prods *productionSet, onSweep func(sweep int, fst *firstSet)) (*firstSet, int, error) {
	cc := newFirstComContext(prods)

	// A production starting with a terminal contributes that terminal no
	// matter what the other sets hold.
	for _, prod := range prods.getAllProductions() {
		if prod.isEmpty() || !prod.rhs[0].IsTerminal() {
			continue
		}
		cc.first.findBySymbol(prod.lhs).add(prod.rhs[0])
	}
	tracer().Debugf("FIRST seeded with %v symbols", cc.first.size())

	sweeps := 0
	for {
		sweeps++
		more := false
		for _, prod := range prods.getAllProductions() {
			e := cc.first.findBySymbol(prod.lhs)
			changed, err := genProdFirstEntry(cc, e, prod)
			if err != nil {
				return nil, 0, err
			}
			if changed {
				more = true
			}
		}
		tracer().Debugf("FIRST sweep %v: %v symbols", sweeps, cc.first.size())
		if onSweep != nil {
			onSweep(sweeps, cc.first)
		}
		if !more {
			break
		}
	}

	for _, prod := range prods.getAllProductions() {
		sufs := make([]*firstEntry, prod.rhsLen+1)
		for head := 0; head <= prod.rhsLen; head++ {
			e, err := cc.first.findBySequence(prod.rhs[head:])
			if err != nil {
				return nil, 0, err
			}
			sufs[head] = e
		}
		cc.first.suffixes[prod.num] = sufs
	}

	return cc.first, sweeps, nil
}

func genProdFirstEntry(cc *firstComContext, acc *firstEntry, prod *production) (bool, error) {
	if prod.isEmpty() {
		return acc.addEmpty(), nil
	}

	changed := false
	for _, sym := range prod.rhs {
		if sym.IsTerminal() {
			return acc.add(sym) || changed, nil
		}

		e := cc.first.findBySymbol(sym)
		if e == nil {
			return false, fmt.Errorf("an entry of FIRST was not found; symbol: %s", sym)
		}
		if acc.mergeExceptEmpty(e) {
			changed = true
		}
		if !e.empty {
			return changed, nil
		}
	}
	return acc.addEmpty() || changed, nil
}
