package spec

import (
	"io"
	"sort"
	"strings"
	"unicode"
)

type RootNode struct {
	Productions []*ProductionNode

	// ReservedWords lists, in lower case and sorted, the symbols a downstream
	// lexer should treat as keywords.
	ReservedWords []string
}

// ProductionNode is one grammar line. An empty RHS denotes an epsilon production.
type ProductionNode struct {
	LHS string
	RHS []string
	Pos Position
}

// DefaultReservedWordExceptions are upper-case tokens that name token
// classes or the empty string rather than keywords.
var DefaultReservedWordExceptions = []string{
	"epsilon",
	"intc",
	"charc",
}

type readerConfig struct {
	exceptions map[string]struct{}
}

type ReaderOption func(*readerConfig)

// ReservedWordExceptions replaces the default exception list. Words are
// compared in lower case.
func ReservedWordExceptions(words ...string) ReaderOption {
	return func(c *readerConfig) {
		c.exceptions = map[string]struct{}{}
		for _, w := range words {
			c.exceptions[strings.ToLower(w)] = struct{}{}
		}
	}
}

// Parse reads a grammar written one production per line: the LHS followed by
// the RHS symbols, separated by blanks.
func Parse(src io.Reader, opts ...ReaderOption) (*RootNode, error) {
	p, err := newParser(src, opts...)
	if err != nil {
		return nil, err
	}
	root, err := p.parse()
	if err != nil {
		return nil, err
	}
	return root, nil
}

type parser struct {
	lex    *lexer
	config *readerConfig
}

func newParser(src io.Reader, opts ...ReaderOption) (*parser, error) {
	lex, err := newLexer(src)
	if err != nil {
		return nil, err
	}
	config := &readerConfig{}
	ReservedWordExceptions(DefaultReservedWordExceptions...)(config)
	for _, opt := range opts {
		opt(config)
	}
	return &parser{
		lex:    lex,
		config: config,
	}, nil
}

func (p *parser) parse() (*RootNode, error) {
	root := &RootNode{}
	resv := map[string]struct{}{}
	var line []*token
	for {
		tok, err := p.lex.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenKindSymbol {
			line = append(line, tok)
			if w, ok := p.reservedWord(tok.text); ok {
				resv[w] = struct{}{}
			}
			continue
		}

		if len(line) > 0 {
			prod := &ProductionNode{
				LHS: line[0].text,
				RHS: make([]string, 0, len(line)-1),
				Pos: line[0].pos,
			}
			for _, t := range line[1:] {
				prod.RHS = append(prod.RHS, t.text)
			}
			root.Productions = append(root.Productions, prod)
			line = nil
		}
		if tok.kind == tokenKindEOF {
			break
		}
	}
	if len(root.Productions) == 0 {
		return nil, synErrNoProduction
	}

	root.ReservedWords = make([]string, 0, len(resv))
	for w := range resv {
		root.ReservedWords = append(root.ReservedWords, w)
	}
	sort.Strings(root.ReservedWords)

	tracer().Debugf("read %v productions, %v reserved words", len(root.Productions), len(root.ReservedWords))

	return root, nil
}

// reservedWord reports whether text is spelled in upper-case letters only.
func (p *parser) reservedWord(text string) (string, bool) {
	for _, r := range text {
		if !unicode.IsLetter(r) {
			return "", false
		}
	}
	if text != strings.ToUpper(text) {
		return "", false
	}
	w := strings.ToLower(text)
	if _, ok := p.config.exceptions[w]; ok {
		return "", false
	}
	return w, true
}
