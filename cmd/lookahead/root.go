package main

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// tracer traces with key 'lookahead.cli'.
func tracer() tracing.Trace {
	return tracing.Select("lookahead.cli")
}

var traceKeys = []string{
	"lookahead.cli",
	"lookahead.spec",
	"lookahead.grammar",
	"lookahead.output",
	"lookahead.conflict",
}

var rootFlags = struct {
	trace *string
}{}

var rootCmd = &cobra.Command{
	Use:   "lookahead",
	Short: "Compute FIRST, FOLLOW and PREDICT sets of an LL(1) grammar",
	Long: `lookahead reads a grammar written one production per line and computes
the tables a predictive parser needs:
- FIRST of every non-terminal and of every right-hand side.
- FOLLOW of every non-terminal.
- PREDICT of every production.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initDisplay()
		level := tracing.TraceLevelFromString(*rootFlags.trace)
		for _, key := range traceKeys {
			tracing.Select(key).SetTraceLevel(level)
		}
	},
}

func init() {
	rootFlags.trace = rootCmd.PersistentFlags().String("trace", "Error", "trace level [Debug|Info|Error]")
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	return nil
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
