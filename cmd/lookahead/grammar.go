package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	verr "github.com/snlc/lookahead/error"
	"github.com/snlc/lookahead/grammar"
	"github.com/snlc/lookahead/spec"
	"github.com/spf13/cobra"
)

// grammarFlags are the flags of every command that reads a grammar.
type grammarFlags struct {
	start              *string
	epsilon            *string
	eof                *string
	reservedExceptions *[]string
}

func addGrammarFlags(cmd *cobra.Command) *grammarFlags {
	return &grammarFlags{
		start:              cmd.Flags().String("start", "", "start symbol (default the LHS of the first production)"),
		epsilon:            cmd.Flags().String("epsilon", "EPSILON", "symbol denoting the empty string"),
		eof:                cmd.Flags().String("eof", "#", "symbol denoting the end of input"),
		reservedExceptions: cmd.Flags().StringSlice("reserved-exception", nil, "upper-case word that is not a reserved word (default epsilon, intc, charc)"),
	}
}

func (f *grammarFlags) readerOptions() []spec.ReaderOption {
	if len(*f.reservedExceptions) == 0 {
		return nil
	}
	return []spec.ReaderOption{
		spec.ReservedWordExceptions(*f.reservedExceptions...),
	}
}

func (f *grammarFlags) builderOptions() []grammar.BuilderOption {
	opts := []grammar.BuilderOption{
		grammar.EpsilonText(*f.epsilon),
		grammar.EOFText(*f.eof),
	}
	if *f.start != "" {
		opts = append(opts, grammar.StartSymbol(*f.start))
	}
	return opts
}

// readGrammar reads the grammar at path, or stdin when path is empty.
func readGrammar(path string, flags *grammarFlags) (gram *grammar.Grammar, retErr error) {
	defer func() {
		if retErr == nil {
			return
		}
		var specErrs verr.SpecErrors
		var specErr *verr.SpecError
		switch {
		case errors.As(retErr, &specErrs):
		case errors.As(retErr, &specErr):
			specErrs = verr.SpecErrors{specErr}
		}
		for _, err := range specErrs {
			if path != "" {
				err.FilePath = path
				err.SourceName = path
			} else {
				err.SourceName = "stdin"
			}
		}
	}()

	var src io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("cannot open the grammar file %s: %w", path, err)
		}
		defer f.Close()
		src = f
	}

	ast, err := spec.Parse(src, flags.readerOptions()...)
	if err != nil {
		return nil, err
	}

	b := grammar.GrammarBuilder{
		AST: ast,
	}
	return b.Build(flags.builderOptions()...)
}

func analyzeGrammar(path string, flags *grammarFlags) (*grammar.Analysis, error) {
	gram, err := readGrammar(path, flags)
	if err != nil {
		return nil, err
	}
	return grammar.Analyze(gram)
}
