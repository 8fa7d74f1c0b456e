package grammar

import (
	"github.com/snlc/lookahead/grammar/symbol"
)

// predictEntry holds the lookahead symbols selecting one production. It never
// contains EPSILON; eof stands for the end-of-input marker.
type predictEntry struct {
	symbols map[symbol.Symbol]struct{}
	eof     bool
}

type predictSet struct {
	entries []*predictEntry
}

func (pre *predictSet) find(num productionNum) (*predictEntry, bool) {
	if int(num) >= len(pre.entries) {
		return nil, false
	}
	return pre.entries[num], true
}

// genPredictSet builds one entry per production in production order.
func genPredictSet(prods *productionSet, first *firstSet, follow *followSet) (*predictSet, error) {
	pre := &predictSet{}
	for _, prod := range prods.getAllProductions() {
		fst, err := first.find(prod, 0)
		if err != nil {
			return nil, err
		}

		acc := newFollowEntry()
		acc.merge(fst, nil)
		if fst.empty {
			flw, err := follow.find(prod.lhs)
			if err != nil {
				return nil, err
			}
			acc.merge(nil, flw)
		}

		pre.entries = append(pre.entries, &predictEntry{
			symbols: acc.symbols,
			eof:     acc.eof,
		})
		tracer().Debugf("PREDICT of production %v: %v symbols", prod.num, acc.size())
	}

	return pre, nil
}
