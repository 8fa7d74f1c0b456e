package grammar

import (
	"fmt"

	"github.com/snlc/lookahead/grammar/symbol"
)

// followEntry is a FOLLOW set. eof stands for the end-of-input marker.
type followEntry struct {
	symbols map[symbol.Symbol]struct{}
	eof     bool
}

func newFollowEntry() *followEntry {
	return &followEntry{
		symbols: map[symbol.Symbol]struct{}{},
		eof:     false,
	}
}

func (e *followEntry) add(sym symbol.Symbol) bool {
	if _, ok := e.symbols[sym]; ok {
		return false
	}
	e.symbols[sym] = struct{}{}
	return true
}

func (e *followEntry) addEOF() bool {
	if !e.eof {
		e.eof = true
		return true
	}
	return false
}

// merge adds FIRST(fst) minus EPSILON and all of flw. Either may be nil.
func (e *followEntry) merge(fst *firstEntry, flw *followEntry) bool {
	changed := false

	if fst != nil {
		for sym := range fst.symbols {
			added := e.add(sym)
			if added {
				changed = true
			}
		}
	}

	if flw != nil {
		for sym := range flw.symbols {
			added := e.add(sym)
			if added {
				changed = true
			}
		}
		if flw.eof {
			added := e.addEOF()
			if added {
				changed = true
			}
		}
	}

	return changed
}

func (e *followEntry) size() int {
	if e.eof {
		return len(e.symbols) + 1
	}
	return len(e.symbols)
}

type followSet struct {
	set map[symbol.Symbol]*followEntry
}

func newFollow(prods *productionSet) *followSet {
	flw := &followSet{
		set: map[symbol.Symbol]*followEntry{},
	}
	for _, prod := range prods.getAllProductions() {
		if _, ok := flw.set[prod.lhs]; ok {
			continue
		}
		flw.set[prod.lhs] = newFollowEntry()
	}
	return flw
}

func (flw *followSet) find(sym symbol.Symbol) (*followEntry, error) {
	e, ok := flw.set[sym]
	if !ok {
		return nil, fmt.Errorf("an entry of FOLLOW was not found; symbol: %s", sym)
	}
	return e, nil
}

func (flw *followSet) size() int {
	n := 0
	for _, e := range flw.set {
		n += e.size()
	}
	return n
}

type followComContext struct {
	prods  *productionSet
	first  *firstSet
	follow *followSet
}

func newFollowComContext(prods *productionSet, first *firstSet) *followComContext {
	return &followComContext{
		prods:  prods,
		first:  first,
		follow: newFollow(prods),
	}
}

// genFollowSet computes FOLLOW of every non-terminal. first must be complete.
// The returned count includes the final sweep that changed nothing.
func genFollowSet(prods *productionSet, first *firstSet, start symbol.Symbol, onSweep func(sweep int, flw *followSet)) (*followSet, int, error) {
	cc := newFollowComContext(prods, first)

	e, err := cc.follow.find(start)
	if err != nil {
		return nil, 0, err
	}
	e.addEOF()

	sweeps := 0
	for {
		sweeps++
		more := false
		for _, prod := range prods.getAllProductions() {
			changed, err := genProdFollowEntries(cc, prod)
			if err != nil {
				return nil, 0, err
			}
			if changed {
				more = true
			}
		}
		tracer().Debugf("FOLLOW sweep %v: %v symbols", sweeps, cc.follow.size())
		if onSweep != nil {
			onSweep(sweeps, cc.follow)
		}
		if !more {
			break
		}
	}

	return cc.follow, sweeps, nil
}

// genProdFollowEntries applies prod to FOLLOW of every non-terminal in its RHS.
func genProdFollowEntries(cc *followComContext, prod *production) (bool, error) {
	changed := false
	for i, sym := range prod.rhs {
		if !sym.IsNonTerminal() {
			continue
		}
		acc, err := cc.follow.find(sym)
		if err != nil {
			return false, err
		}
		fst, err := cc.first.find(prod, i+1)
		if err != nil {
			return false, err
		}
		if acc.merge(fst, nil) {
			changed = true
		}
		if !fst.empty {
			continue
		}
		flw, err := cc.follow.find(prod.lhs)
		if err != nil {
			return false, err
		}
		if acc.merge(nil, flw) {
			changed = true
		}
	}

	return changed, nil
}
