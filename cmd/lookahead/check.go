package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/snlc/lookahead/conflict"
	"github.com/spf13/cobra"
)

var checkFlags = struct {
	grammar *grammarFlags
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "check",
		Short:   "Check whether the PREDICT sets of each non-terminal are disjoint",
		Example: `  lookahead check grammar`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runCheck,
	}
	checkFlags.grammar = addGrammarFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	var grmPath string
	if len(args) > 0 {
		grmPath = args[0]
	}

	a, err := analyzeGrammar(grmPath, checkFlags.grammar)
	if err != nil {
		return err
	}
	report, err := a.Report()
	if err != nil {
		return err
	}

	conflicts := conflict.Find(report)
	if len(conflicts) == 0 {
		pterm.Info.Println("the grammar is LL(1)")
		return nil
	}
	for _, c := range conflicts {
		pterm.Error.Println(c.String())
	}
	return fmt.Errorf("%v conflicts", len(conflicts))
}
