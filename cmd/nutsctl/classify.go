package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/projectdiscovery/gologger"

	"github.com/theblackbeans/nuts/nuts"
)

// buildPatternSet turns a Config's entries into a compiled PatternSet,
// returning the error for the first bad pattern rather than a
// partially-built set; it does no logging of its own.
func buildPatternSet(cfg *Config) (*nuts.PatternSet, error) {
	entries := make([]nuts.Entry, 0, len(cfg.Patterns))
	for _, p := range cfg.Patterns {
		entries = append(entries, nuts.Entry{
			Pattern:  p.Pattern,
			Label:    p.Label,
			Priority: p.Priority,
		})
	}
	return nuts.Build(entries)
}

// runClassify reads newline-delimited input from r and writes
// "line\tlabel\n" to w for every matched line; unmatched lines are logged
// as a verbose diagnostic and skipped.
func runClassify(ps *nuts.PatternSet, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	bufw := bufio.NewWriter(w)
	defer bufw.Flush()

	for scanner.Scan() {
		line := scanner.Text()
		label, ok := ps.Classify(line)
		if !ok {
			gologger.Verbose().Msgf("no pattern matched: %s", line)
			continue
		}
		if _, err := fmt.Fprintf(bufw, "%s\t%v\n", line, label); err != nil {
			return err
		}
	}
	return scanner.Err()
}
