package grammar

// Report is the result of analysing a grammar. Every set is a list of symbol
// texts sorted in byte order, so two reports of the same grammar encode to the
// same bytes.
type Report struct {
	StartSymbol   string         `json:"start_symbol"`
	Epsilon       string         `json:"epsilon"`
	EOF           string         `json:"eof"`
	ReservedWords []string       `json:"reserved_words"`
	Terminals     []string       `json:"terminals"`
	NonTerminals  []*NonTerminal `json:"non_terminals"`
	Productions   []*Production  `json:"productions"`
	Sweeps        *Sweeps        `json:"sweeps"`
	Fingerprint   string         `json:"fingerprint"`
}

type NonTerminal struct {
	Name     string   `json:"name"`
	Nullable bool     `json:"nullable"`
	First    []string `json:"first"`
	Follow   []string `json:"follow"`
}

type Production struct {
	Number  int      `json:"number"`
	LHS     string   `json:"lhs"`
	RHS     []string `json:"rhs"`
	First   []string `json:"first"`
	Predict []string `json:"predict"`
}

// Sweeps counts the passes each fixed-point stage needed, including the last
// pass that changed nothing.
type Sweeps struct {
	First  int `json:"first"`
	Follow int `json:"follow"`
}

// NonTerminal returns the entry named name.
func (r *Report) NonTerminal(name string) (*NonTerminal, bool) {
	for _, nonTerm := range r.NonTerminals {
		if nonTerm.Name == name {
			return nonTerm, true
		}
	}
	return nil, false
}

// ProductionsOf returns the productions whose LHS is lhs in source order.
func (r *Report) ProductionsOf(lhs string) []*Production {
	var prods []*Production
	for _, prod := range r.Productions {
		if prod.LHS == lhs {
			prods = append(prods, prod)
		}
	}
	return prods
}
