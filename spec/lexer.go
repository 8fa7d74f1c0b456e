package spec

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
	verr "github.com/snlc/lookahead/error"
)

type tokenKind string

const (
	tokenKindSymbol  = tokenKind("symbol")
	tokenKindNewline = tokenKind("newline")
	tokenKindEOF     = tokenKind("eof")
)

type Position struct {
	Row int
	Col int
}

func newPosition(row, col int) Position {
	return Position{
		Row: row,
		Col: col,
	}
}

type token struct {
	kind tokenKind
	text string
	pos  Position
}

func newSymbolToken(text string, pos Position) *token {
	return &token{
		kind: tokenKindSymbol,
		text: text,
		pos:  pos,
	}
}

func newNewlineToken(pos Position) *token {
	return &token{
		kind: tokenKindNewline,
		pos:  pos,
	}
}

func newEOFToken() *token {
	return &token{
		kind: tokenKindEOF,
	}
}

// A grammar line is a run of blank-separated symbols. Any printable run of
// characters other than blanks is a symbol, so `:=`, `(` and `#` are as valid
// as identifiers.
var lexSpec = &mlspec.LexSpec{
	Name: "grammar_text",
	Entries: []*mlspec.LexEntry{
		{
			Kind:    mlspec.LexKindName("white_space"),
			Pattern: mlspec.LexPattern(`[\u{0009}\u{0020}]+`),
		},
		{
			Kind:    mlspec.LexKindName("newline"),
			Pattern: mlspec.LexPattern(`\u{000A}|\u{000D}\u{000A}|\u{000D}`),
		},
		{
			Kind:    mlspec.LexKindName("symbol"),
			Pattern: mlspec.LexPattern(`[^\u{0009}\u{0020}\u{000A}\u{000D}]+`),
		},
	},
}

var (
	compiledLexSpec     *mlspec.CompiledLexSpec
	compiledLexSpecErr  error
	compiledLexSpecOnce sync.Once
)

func compileLexSpec() (*mlspec.CompiledLexSpec, error) {
	compiledLexSpecOnce.Do(func() {
		clspec, err, cErrs := mlcompiler.Compile(lexSpec, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
		if err != nil {
			if len(cErrs) > 0 {
				var b strings.Builder
				writeCompileError(&b, cErrs[0])
				for _, cerr := range cErrs[1:] {
					fmt.Fprintf(&b, "\n")
					writeCompileError(&b, cerr)
				}
				compiledLexSpecErr = errors.New(b.String())
				return
			}
			compiledLexSpecErr = err
			return
		}
		tracer().Debugf("grammar text lexer compiled; %v kinds", len(clspec.KindNames))
		compiledLexSpec = clspec
	})
	return compiledLexSpec, compiledLexSpecErr
}

func writeCompileError(w io.Writer, cErr *mlcompiler.CompileError) {
	if cErr.Fragment {
		fmt.Fprintf(w, "fragment ")
	}
	fmt.Fprintf(w, "%v: %v", cErr.Kind, cErr.Cause)
	if cErr.Detail != "" {
		fmt.Fprintf(w, ": %v", cErr.Detail)
	}
}

type lexer struct {
	d      *mldriver.Lexer
	clspec *mlspec.CompiledLexSpec
}

func newLexer(src io.Reader) (*lexer, error) {
	s, err := compileLexSpec()
	if err != nil {
		return nil, err
	}
	d, err := mldriver.NewLexer(mldriver.NewLexSpec(s), src)
	if err != nil {
		return nil, err
	}
	return &lexer{
		d:      d,
		clspec: s,
	}, nil
}

func (l *lexer) next() (*token, error) {
	var tok *mldriver.Token
	for {
		var err error
		tok, err = l.d.Next()
		if err != nil {
			return nil, err
		}
		if tok.Invalid {
			return nil, &verr.SpecError{
				Cause:  synErrInvalidToken,
				Detail: string(tok.Lexeme),
				Row:    tok.Row + 1,
				Col:    tok.Col + 1,
			}
		}
		if tok.EOF {
			return newEOFToken(), nil
		}
		if l.clspec.KindNames[tok.KindID] == "white_space" {
			continue
		}

		break
	}

	switch l.clspec.KindNames[tok.KindID] {
	case "newline":
		return newNewlineToken(newPosition(tok.Row+1, tok.Col+1)), nil
	case "symbol":
		return newSymbolToken(string(tok.Lexeme), newPosition(tok.Row+1, tok.Col+1)), nil
	default:
		return nil, &verr.SpecError{
			Cause:  synErrInvalidToken,
			Detail: string(tok.Lexeme),
			Row:    tok.Row + 1,
			Col:    tok.Col + 1,
		}
	}
}
