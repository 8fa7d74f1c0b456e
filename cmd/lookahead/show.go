package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	spec "github.com/snlc/lookahead/spec/grammar"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "show",
		Short:   "Print a report in a readable format",
		Example: `  lookahead show grammar-report.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runShow,
	}
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	report, err := readReport(args[0])
	if err != nil {
		return err
	}

	pterm.DefaultSection.Println("Non-terminals")
	pterm.DefaultTable.WithHasHeader().WithData(nonTerminalTable(report)).Render()
	pterm.DefaultSection.Println("Productions")
	pterm.DefaultTable.WithHasHeader().WithData(productionTable(report)).Render()
	pterm.Info.Println(fmt.Sprintf("start symbol: %v, fingerprint: %v", report.StartSymbol, report.Fingerprint))

	return nil
}

func readReport(path string) (*spec.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open the report %s: %w", path, err)
	}
	defer f.Close()

	d, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	report := &spec.Report{}
	err = json.Unmarshal(d, report)
	if err != nil {
		return nil, err
	}

	return report, nil
}

func nonTerminalTable(report *spec.Report) pterm.TableData {
	data := pterm.TableData{
		{"Non-terminal", "Nullable", "FIRST", "FOLLOW"},
	}
	for _, nonTerm := range report.NonTerminals {
		data = append(data, []string{
			nonTerm.Name,
			strconv.FormatBool(nonTerm.Nullable),
			strings.Join(nonTerm.First, " "),
			strings.Join(nonTerm.Follow, " "),
		})
	}
	return data
}

func productionTable(report *spec.Report) pterm.TableData {
	data := pterm.TableData{
		{"#", "Production", "PREDICT"},
	}
	for _, prod := range report.Productions {
		data = append(data, []string{
			strconv.Itoa(prod.Number),
			formatProduction(prod, report.Epsilon),
			strings.Join(prod.Predict, " "),
		})
	}
	return data
}

func formatProduction(prod *spec.Production, epsilon string) string {
	if len(prod.RHS) == 0 {
		return fmt.Sprintf("%v → %v", prod.LHS, epsilon)
	}
	return fmt.Sprintf("%v → %v", prod.LHS, strings.Join(prod.RHS, " "))
}
