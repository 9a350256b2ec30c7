package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/percepta/journal/internal/insight"
	"github.com/percepta/journal/internal/logging"
	"github.com/percepta/journal/internal/replay"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to fixture JSON")
	showReasons := flag.Bool("reasons", false, "print the engine's reason for each step")
	logLevel := flag.String("log-level", "warn", "log level (debug, info, warn, error)")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/fixture.json [--reasons]")
		os.Exit(2)
	}

	log, err := logging.NewLogger(*logLevel, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(2)
	}
	defer log.Sync()

	f, err := replay.LoadFixture(*fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		os.Exit(2)
	}

	results, err := replay.Replay(f, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		os.Exit(2)
	}

	os.Exit(printComparison(f, results, *showReasons))
}

// #endregion main

// #region output

// printComparison outputs a per-step table and returns the exit code.
func printComparison(f *replay.Fixture, results []replay.DayResult, reasons bool) int {
	fmt.Printf("%-4s| %-18s| %-11s| %-12s| %-16s| %-10s| %s\n",
		"Step", "Label", "Date", "State", "Insight", "Action", "Match")
	fmt.Printf("%s\n", strings.Repeat("-", 88))

	bad := make(map[int]bool)
	for _, m := range replay.Compare(f, results) {
		bad[m.Step] = true
	}

	for i, r := range results {
		match := "-"
		if f.Days[i].Expect != nil {
			match = "OK"
			if bad[i] {
				match = "DIFF"
			}
		}
		action := r.Action
		if action == "" {
			action = "-"
		}
		fmt.Printf("%-4d| %-18s| %-11s| %-12s| %-16s| %-10s| %s\n",
			i+1, r.Label, r.DateKey, r.State, r.InsightType(), action, match)
		if reasons && r.Reason != "" {
			fmt.Printf("    %s\n", r.Reason)
		}
	}

	mismatches := replay.Compare(f, results)
	if len(mismatches) > 0 {
		fmt.Println()
		for _, m := range mismatches {
			fmt.Println(m.String())
		}
	}

	s := replay.Summarize(results)
	fmt.Printf("\nSummary: %d steps, %d generated, %d stored, %d skipped, %d mismatches\n",
		s.Steps, s.Generated, s.Stored, s.Skipped, len(mismatches))
	for _, t := range insight.AllTypes() {
		if n := s.ByType[t]; n > 0 {
			fmt.Printf("  %-16s %d\n", t, n)
		}
	}

	if len(mismatches) > 0 {
		return 1
	}
	return 0
}

// #endregion output
