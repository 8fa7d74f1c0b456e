package grammar

import (
	"fmt"
	"regexp"
	"strings"

	verr "github.com/snlc/lookahead/error"
	"github.com/snlc/lookahead/grammar/symbol"
	"github.com/snlc/lookahead/spec"
)

// Grammar is an immutable context-free grammar whose symbols are already
// split into terminals and non-terminals.
type Grammar struct {
	symbolTable   *symbol.SymbolTable
	productionSet *productionSet
	startSymbol   symbol.Symbol
	reservedWords []string
}

// StartSymbol returns the text of the start symbol.
func (g *Grammar) StartSymbol() string {
	text, _ := g.symbolTable.Reader().ToText(g.startSymbol)
	return text
}

func (g *Grammar) EpsilonText() string {
	return g.symbolTable.Reader().EpsilonText()
}

func (g *Grammar) EOFText() string {
	return g.symbolTable.Reader().EOFText()
}

// Terminals returns the ordinary terminals in order of first appearance.
func (g *Grammar) Terminals() []string {
	texts := g.symbolTable.Reader().TerminalTexts()
	return append([]string{}, texts...)
}

// NonTerminals returns the non-terminals, the start symbol first and the rest
// in order of first appearance as an LHS.
func (g *Grammar) NonTerminals() []string {
	texts, _ := g.symbolTable.Reader().NonTerminalTexts()
	return append([]string{}, texts...)
}

// ReservedWords returns the reserved words the grammar text declared.
func (g *Grammar) ReservedWords() []string {
	return append([]string{}, g.reservedWords...)
}

func (g *Grammar) ProductionCount() int {
	return len(g.productionSet.getAllProductions())
}

// Production returns the LHS and the RHS of production num. An epsilon
// production has an empty RHS.
func (g *Grammar) Production(num int) (string, []string, error) {
	prod, ok := g.productionSet.findByNum(num)
	if !ok {
		return "", nil, fmt.Errorf("%w: %v", ErrNoSuchProduction, num)
	}
	r := g.symbolTable.Reader()
	lhs, _ := r.ToText(prod.lhs)
	rhs := make([]string, 0, prod.rhsLen)
	for _, sym := range prod.rhs {
		text, _ := r.ToText(sym)
		rhs = append(rhs, text)
	}
	return lhs, rhs, nil
}

func (g *Grammar) toSymbol(text string) (symbol.Symbol, error) {
	sym, ok := g.symbolTable.Reader().ToSymbol(text)
	if !ok {
		return symbol.SymbolNil, fmt.Errorf("%w: %v", ErrUnknownSymbol, text)
	}
	return sym, nil
}

func (g *Grammar) toText(sym symbol.Symbol) string {
	text, ok := g.symbolTable.Reader().ToText(sym)
	if !ok {
		return sym.String()
	}
	return text
}

// Dump traces the productions of g.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar, start symbol %v ---", g.StartSymbol())
	for _, prod := range g.productionSet.getAllProductions() {
		lhs, rhs, _ := g.Production(prod.num.Int())
		tracer().Debugf("%3d: %v ::= %v", prod.num, lhs, strings.Join(rhs, " "))
	}
}

type builderConfig struct {
	start   string
	epsilon string
	eof     string
}

type BuilderOption func(*builderConfig)

// StartSymbol overrides the default start symbol, the LHS of the first production.
func StartSymbol(text string) BuilderOption {
	return func(c *builderConfig) {
		c.start = text
	}
}

// EpsilonText sets the spelling of the empty string. The default is EPSILON.
func EpsilonText(text string) BuilderOption {
	return func(c *builderConfig) {
		c.epsilon = text
	}
}

// EOFText sets the spelling of the end-of-input marker. The default is #.
func EOFText(text string) BuilderOption {
	return func(c *builderConfig) {
		c.eof = text
	}
}

var lhsPattern = regexp.MustCompile(`^[A-Za-z_][0-9A-Za-z_]*$`)

type GrammarBuilder struct {
	AST *spec.RootNode

	errs verr.SpecErrors
}

func (b *GrammarBuilder) Build(opts ...BuilderOption) (*Grammar, error) {
	config := &builderConfig{
		epsilon: symbol.DefaultEpsilonText,
		eof:     symbol.DefaultEOFText,
	}
	for _, opt := range opts {
		opt(config)
	}

	b.errs = nil
	if b.AST == nil || len(b.AST.Productions) == 0 {
		b.errs = append(b.errs, &verr.SpecError{
			Cause: semErrNoProduction,
		})
		return nil, b.errs
	}

	b.checkProductions(b.AST, config)

	lhsTexts := map[string]struct{}{}
	for _, prod := range b.AST.Productions {
		lhsTexts[prod.LHS] = struct{}{}
	}
	if config.start == "" {
		config.start = b.AST.Productions[0].LHS
	}
	if _, ok := lhsTexts[config.start]; !ok {
		b.errs = append(b.errs, &verr.SpecError{
			Cause:  semErrStartNotNonTerminal,
			Detail: config.start,
		})
	}

	if len(b.errs) > 0 {
		return nil, b.errs
	}

	symTab, err := genSymbolTable(b.AST, config, lhsTexts)
	if err != nil {
		return nil, err
	}

	prods, err := genProductionSet(b.AST, symTab)
	if err != nil {
		return nil, err
	}

	startSym, _ := symTab.Reader().ToSymbol(config.start)

	gram := &Grammar{
		symbolTable:   symTab,
		productionSet: prods,
		startSymbol:   startSym,
		reservedWords: append([]string{}, b.AST.ReservedWords...),
	}
	tracer().Infof("grammar has %v productions, %v terminals, %v non-terminals",
		gram.ProductionCount(), len(gram.Terminals()), len(gram.NonTerminals()))
	gram.Dump()

	return gram, nil
}

func (b *GrammarBuilder) checkProductions(root *spec.RootNode, config *builderConfig) {
	for _, prod := range root.Productions {
		switch {
		case prod.LHS == config.eof || prod.LHS == config.epsilon:
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrReservedSymbol,
				Detail: prod.LHS,
				Row:    prod.Pos.Row,
				Col:    prod.Pos.Col,
			})
		case !lhsPattern.MatchString(prod.LHS):
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrInvalidLHS,
				Detail: prod.LHS,
				Row:    prod.Pos.Row,
				Col:    prod.Pos.Col,
			})
		}
		for _, text := range prod.RHS {
			if text != config.eof {
				continue
			}
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrReservedSymbol,
				Detail: text,
				Row:    prod.Pos.Row,
			})
		}
	}
}

func genSymbolTable(root *spec.RootNode, config *builderConfig, lhsTexts map[string]struct{}) (*symbol.SymbolTable, error) {
	symTab := symbol.NewSymbolTable(config.epsilon, config.eof)
	w := symTab.Writer()

	_, err := w.RegisterStartSymbol(config.start)
	if err != nil {
		return nil, err
	}
	for _, prod := range root.Productions {
		_, err := w.RegisterNonTerminalSymbol(prod.LHS)
		if err != nil {
			return nil, err
		}
	}
	for _, prod := range root.Productions {
		for _, text := range prod.RHS {
			if text == config.epsilon {
				continue
			}
			if _, ok := lhsTexts[text]; ok {
				continue
			}
			_, err := w.RegisterTerminalSymbol(text)
			if err != nil {
				return nil, err
			}
		}
	}

	return symTab, nil
}

func genProductionSet(root *spec.RootNode, symTab *symbol.SymbolTable) (*productionSet, error) {
	r := symTab.Reader()
	prods := newProductionSet()
	for _, p := range root.Productions {
		lhs, _ := r.ToSymbol(p.LHS)
		rhs := make([]symbol.Symbol, 0, len(p.RHS))
		for _, text := range p.RHS {
			sym, ok := r.ToSymbol(text)
			if !ok {
				return nil, fmt.Errorf("a symbol was not registered; symbol: %v", text)
			}
			// EPSILON derives nothing, so it contributes nothing to the RHS.
			if sym.IsEpsilon() {
				continue
			}
			rhs = append(rhs, sym)
		}

		prod, err := newProduction(lhs, rhs)
		if err != nil {
			return nil, err
		}
		prods.append(prod)
	}

	return prods, nil
}
