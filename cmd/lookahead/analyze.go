package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/snlc/lookahead/output"
	spec "github.com/snlc/lookahead/spec/grammar"
	"github.com/spf13/cobra"
)

var analyzeFlags = struct {
	grammar   *grammarFlags
	outputDir *string
	report    *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute FIRST, FOLLOW and PREDICT sets and write them into files",
		Example: `  lookahead analyze grammar -d out
  lookahead analyze grammar --report grammar-report.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyze,
	}
	analyzeFlags.grammar = addGrammarFlags(cmd)
	analyzeFlags.outputDir = cmd.Flags().StringP("output-dir", "d", ".", "directory the resv, term, first, follow and predict files are written into")
	analyzeFlags.report = cmd.Flags().String("report", "", "file path the JSON report is written into")
	rootCmd.AddCommand(cmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	var grmPath string
	if len(args) > 0 {
		grmPath = args[0]
	}

	a, err := analyzeGrammar(grmPath, analyzeFlags.grammar)
	if err != nil {
		return err
	}
	report, err := a.Report()
	if err != nil {
		return err
	}

	err = output.WriteAll(*analyzeFlags.outputDir, report)
	if err != nil {
		return err
	}
	if *analyzeFlags.report != "" {
		err := writeReport(*analyzeFlags.report, report)
		if err != nil {
			return fmt.Errorf("cannot write the report: %w", err)
		}
	}

	pterm.Info.Println(fmt.Sprintf("%v productions, %v terminals, %v non-terminals (FIRST: %v sweeps, FOLLOW: %v sweeps)",
		len(report.Productions), len(report.Terminals), len(report.NonTerminals),
		report.Sweeps.First, report.Sweeps.Follow))

	return nil
}

func writeReport(path string, report *spec.Report) error {
	b, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0644)
}
