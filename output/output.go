// Package output writes the line-oriented artifacts of an analysis report.
//
// Every artifact is plain text with one entry per line and symbols separated
// by a single blank:
//
//	resv     reserved words, sorted
//	term     terminals, sorted
//	first    NAME sym ... per non-terminal
//	follow   NAME sym ... per non-terminal
//	predict  the PREDICT set of each production, in production order
package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/schuko/tracing"
	spec "github.com/snlc/lookahead/spec/grammar"
)

// tracer traces with key 'lookahead.output'.
func tracer() tracing.Trace {
	return tracing.Select("lookahead.output")
}

// File names written by WriteAll.
const (
	FileReservedWords = "resv"
	FileTerminals     = "term"
	FileFirst         = "first"
	FileFollow        = "follow"
	FilePredict       = "predict"
)

// sorted returns texts without duplicates in byte order.
func sorted(texts []string) []string {
	set := treeset.NewWith(utils.StringComparator)
	for _, text := range texts {
		set.Add(text)
	}
	vals := set.Values()
	res := make([]string, 0, len(vals))
	for _, v := range vals {
		res = append(res, v.(string))
	}
	return res
}

func writeLines(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, line := range lines {
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func WriteReservedWords(w io.Writer, report *spec.Report) error {
	return writeLines(w, sorted(report.ReservedWords))
}

func WriteTerminals(w io.Writer, report *spec.Report) error {
	return writeLines(w, sorted(report.Terminals))
}

func WriteFirst(w io.Writer, report *spec.Report) error {
	lines := make([]string, 0, len(report.NonTerminals))
	for _, nonTerm := range report.NonTerminals {
		lines = append(lines, namedLine(nonTerm.Name, nonTerm.First))
	}
	return writeLines(w, lines)
}

func WriteFollow(w io.Writer, report *spec.Report) error {
	lines := make([]string, 0, len(report.NonTerminals))
	for _, nonTerm := range report.NonTerminals {
		lines = append(lines, namedLine(nonTerm.Name, nonTerm.Follow))
	}
	return writeLines(w, lines)
}

func WritePredict(w io.Writer, report *spec.Report) error {
	lines := make([]string, 0, len(report.Productions))
	for _, prod := range report.Productions {
		lines = append(lines, strings.Join(sorted(prod.Predict), " "))
	}
	return writeLines(w, lines)
}

func namedLine(name string, syms []string) string {
	if len(syms) == 0 {
		return name
	}
	return name + " " + strings.Join(sorted(syms), " ")
}

// WriteAll writes every artifact into dir, creating dir when it is missing.
func WriteAll(dir string, report *spec.Report) error {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return fmt.Errorf("failed to create an output directory: %w", err)
	}

	writers := []struct {
		name  string
		write func(io.Writer, *spec.Report) error
	}{
		{name: FileReservedWords, write: WriteReservedWords},
		{name: FileTerminals, write: WriteTerminals},
		{name: FileFirst, write: WriteFirst},
		{name: FileFollow, write: WriteFollow},
		{name: FilePredict, write: WritePredict},
	}
	for _, wr := range writers {
		path := filepath.Join(dir, wr.name)
		if err := writeFile(path, report, wr.write); err != nil {
			return err
		}
		tracer().Debugf("wrote %v", path)
	}
	tracer().Infof("wrote %v artifacts into %v", len(writers), dir)

	return nil
}

func writeFile(path string, report *spec.Report, write func(io.Writer, *spec.Report) error) (retErr error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %v: %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil && retErr == nil {
			retErr = fmt.Errorf("failed to close %v: %w", path, err)
		}
	}()

	if err := write(f, report); err != nil {
		return fmt.Errorf("failed to write %v: %w", path, err)
	}
	return nil
}
