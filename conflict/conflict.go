// Package conflict checks whether the PREDICT sets of a report allow a
// predictive parser to choose between the alternatives of each non-terminal.
package conflict

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/schuko/tracing"
	spec "github.com/snlc/lookahead/spec/grammar"
)

// tracer traces with key 'lookahead.conflict'.
func tracer() tracing.Trace {
	return tracing.Select("lookahead.conflict")
}

// Conflict is a pair of productions of one non-terminal whose PREDICT sets
// share Symbols.
type Conflict struct {
	NonTerminal string
	Productions [2]int
	Symbols     []string
}

func (c *Conflict) String() string {
	return fmt.Sprintf("%v: productions %v and %v share %v",
		c.NonTerminal, c.Productions[0], c.Productions[1], strings.Join(c.Symbols, " "))
}

// Find returns every conflicting pair ordered by non-terminal, then by
// production numbers. A grammar is LL(1) exactly when Find returns nothing.
func Find(report *spec.Report) []*Conflict {
	var conflicts []*Conflict
	for _, nonTerm := range report.NonTerminals {
		prods := report.ProductionsOf(nonTerm.Name)
		sets := make([]*treeset.Set, len(prods))
		for i, prod := range prods {
			sets[i] = treeset.NewWithStringComparator()
			for _, sym := range prod.Predict {
				sets[i].Add(sym)
			}
		}

		for i := 0; i < len(prods); i++ {
			for j := i + 1; j < len(prods); j++ {
				shared := intersect(sets[i], sets[j])
				if len(shared) == 0 {
					continue
				}
				c := &Conflict{
					NonTerminal: nonTerm.Name,
					Productions: [2]int{prods[i].Number, prods[j].Number},
					Symbols:     shared,
				}
				tracer().Debugf("conflict: %v", c)
				conflicts = append(conflicts, c)
			}
		}
	}
	tracer().Infof("%v conflicts found", len(conflicts))

	return conflicts
}

func intersect(s1, s2 *treeset.Set) []string {
	var shared []string
	for _, v := range s1.Values() {
		if s2.Contains(v) {
			shared = append(shared, v.(string))
		}
	}
	return shared
}
