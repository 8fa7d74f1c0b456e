package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/snlc/lookahead/conflict"
	"github.com/snlc/lookahead/grammar"
	spec "github.com/snlc/lookahead/spec/grammar"
	"github.com/spf13/cobra"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

var replFlags = struct {
	grammar *grammarFlags
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Query the sets of a grammar interactively",
		Example: `  lookahead repl grammar
  lookahead> first Exp; follow Term`,
		Args: cobra.ExactArgs(1),
		RunE: runREPL,
	}
	replFlags.grammar = addGrammarFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	a, err := analyzeGrammar(args[0], replFlags.grammar)
	if err != nil {
		return err
	}
	intp, err := newIntp(a)
	if err != nil {
		return err
	}

	rl, err := readline.New("lookahead> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	pterm.Info.Println("Welcome to lookahead, type help for the commands")
	tracer().Infof("Quit with <ctrl>D")
	intp.REPL(rl)

	return nil
}

const (
	tokWord = iota
	tokSemicolon
)

var errUnknownCommand = errors.New("unknown command")

// Intp evaluates query commands against an analysis.
type Intp struct {
	analysis *grammar.Analysis
	report   *spec.Report
	scanner  *lexmachine.Lexer
	print    func(string)
	printErr func(string)
}

func newIntp(a *grammar.Analysis) (*Intp, error) {
	report, err := a.Report()
	if err != nil {
		return nil, err
	}
	lexer, err := newCommandLexer()
	if err != nil {
		return nil, err
	}
	return &Intp{
		analysis: a,
		report:   report,
		scanner:  lexer,
		print: func(s string) {
			pterm.Info.Println(s)
		},
		printErr: func(s string) {
			pterm.Error.Println(s)
		},
	}, nil
}

func newCommandLexer() (*lexmachine.Lexer, error) {
	lexer := lexmachine.NewLexer()
	lexer.Add([]byte(`;`), commandToken(tokSemicolon))
	lexer.Add([]byte(`[^ \t\r\n;]+`), commandToken(tokWord))
	lexer.Add([]byte(`( |\t|\r|\n)+`), func(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
		return nil, nil
	})
	if err := lexer.Compile(); err != nil {
		tracer().Errorf("cannot compile the command lexer: %v", err)
		return nil, err
	}
	return lexer, nil
}

func commandToken(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

// REPL reads and evaluates lines until the user quits or the input ends.
func (intp *Intp) REPL(rl *readline.Instance) {
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Eval evaluates the commands on line, separated by semicolons. It stops at
// the first failing command and reports whether the user asked to quit.
func (intp *Intp) Eval(line string) (bool, error) {
	cmds, err := intp.scan(line)
	if err != nil {
		intp.printErr(err.Error())
		return false, err
	}
	for _, args := range cmds {
		tracer().Debugf("command: %v", args)
		quit, err := intp.execute(args)
		if err != nil {
			intp.printErr(err.Error())
			return false, err
		}
		if quit {
			return true, nil
		}
	}
	return false, nil
}

func (intp *Intp) scan(line string) ([][]string, error) {
	s, err := intp.scanner.Scanner([]byte(line))
	if err != nil {
		return nil, err
	}

	var cmds [][]string
	var args []string
	for tok, err, eof := s.Next(); !eof; tok, err, eof = s.Next() {
		if err != nil {
			if ui, is := err.(*machines.UnconsumedInput); is {
				s.TC = ui.FailTC
			}
			return nil, err
		}
		token := tok.(*lexmachine.Token)
		switch token.Type {
		case tokSemicolon:
			if len(args) > 0 {
				cmds = append(cmds, args)
			}
			args = nil
		case tokWord:
			args = append(args, token.Value.(string))
		}
	}
	if len(args) > 0 {
		cmds = append(cmds, args)
	}
	return cmds, nil
}

func (intp *Intp) execute(args []string) (bool, error) {
	switch args[0] {
	case "first":
		if len(args) < 2 {
			return false, fmt.Errorf("usage: first <symbol>...")
		}
		fst, err := intp.analysis.First(args[1:]...)
		if err != nil {
			return false, err
		}
		intp.print(fmt.Sprintf("FIRST(%v) = %v", strings.Join(args[1:], " "), strings.Join(fst, " ")))
	case "follow":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: follow <non-terminal>")
		}
		flw, err := intp.analysis.Follow(args[1])
		if err != nil {
			return false, err
		}
		intp.print(fmt.Sprintf("FOLLOW(%v) = %v", args[1], strings.Join(flw, " ")))
	case "nullable":
		if len(args) < 2 {
			return false, fmt.Errorf("usage: nullable <symbol>...")
		}
		nullable, err := intp.analysis.Nullable(args[1:]...)
		if err != nil {
			return false, err
		}
		if nullable {
			intp.print(fmt.Sprintf("%v is nullable", strings.Join(args[1:], " ")))
		} else {
			intp.print(fmt.Sprintf("%v is not nullable", strings.Join(args[1:], " ")))
		}
	case "predict":
		return false, intp.printPredict(args[1:])
	case "conflicts":
		conflicts := conflict.Find(intp.report)
		if len(conflicts) == 0 {
			intp.print("the grammar is LL(1)")
		}
		for _, c := range conflicts {
			intp.print(c.String())
		}
	case "help":
		intp.print(`commands, separated by ';':
  first <symbol>...     FIRST of a symbol sequence
  follow <non-terminal> FOLLOW of a non-terminal
  nullable <symbol>...  whether a symbol sequence derives the empty string
  predict [<non-terminal>]
                        PREDICT of all productions or those of one non-terminal
  conflicts             productions whose PREDICT sets overlap
  quit                  leave`)
	case "quit", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("%w: %v", errUnknownCommand, args[0])
	}
	return false, nil
}

func (intp *Intp) printPredict(args []string) error {
	prods := intp.report.Productions
	if len(args) > 0 {
		if len(args) != 1 {
			return fmt.Errorf("usage: predict [<non-terminal>]")
		}
		if _, ok := intp.report.NonTerminal(args[0]); !ok {
			return fmt.Errorf("%w: %v", grammar.ErrNotNonTerminal, args[0])
		}
		prods = intp.report.ProductionsOf(args[0])
	}
	for _, prod := range prods {
		intp.print(fmt.Sprintf("%v: %v  {%v}", prod.Number, formatProduction(prod, intp.report.Epsilon), strings.Join(prod.Predict, " ")))
	}
	return nil
}
