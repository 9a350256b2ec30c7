package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/percepta/journal/internal/blob"
	"github.com/percepta/journal/internal/datekey"
	"github.com/percepta/journal/internal/insight"
	"github.com/percepta/journal/internal/replay"
	"github.com/percepta/journal/internal/repository"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to the journal sqlite database")
	last := flag.Int("last", 14, "number of most recent recorded days to export (0 for all)")
	timezone := flag.String("tz", "+09:00", "timezone the journal was kept in")
	outPath := flag.String("out", "", "output fixture JSON path")
	flag.Parse()

	if *dbPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --db path/to/percepta.db --out path/to/fixture.json [--last N] [--tz zone]")
		os.Exit(2)
	}

	if err := run(*dbPath, *timezone, *last, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region extract

func run(dbPath, timezone string, last int, outPath string) error {
	store, err := blob.NewSQLiteStore(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer store.Close()

	loc, err := datekey.LoadZone(timezone)
	if err != nil {
		return err
	}
	cal := datekey.NewCalendar(loc, datekey.SystemClock{})

	// read everything the store holds, whatever cap it was written with
	all := repository.Retention{Max: 1 << 20, Policy: repository.RetainByInsertion}

	var h replay.History
	if h.Perceptions, err = repository.NewPerceptions(store, cal, all, nil).All(); err != nil {
		return fmt.Errorf("read perceptions: %w", err)
	}
	if h.Investments, err = repository.NewInvestments(store, cal, all, nil).All(); err != nil {
		return fmt.Errorf("read investments: %w", err)
	}
	if h.Thinking, err = repository.NewThinking(store, cal, all, nil).All(); err != nil {
		return fmt.Errorf("read macro thinking: %w", err)
	}
	if h.Insights, err = insight.NewStore(store, all, nil).All(); err != nil {
		return fmt.Errorf("read insights: %w", err)
	}

	fmt.Printf("Found %d perceptions, %d investments, %d thoughts, %d insights\n",
		len(h.Perceptions), len(h.Investments), len(h.Thinking), len(h.Insights))

	fixture, err := replay.FromHistory(h, timezone, last)
	if err != nil {
		return err
	}
	return writeFixture(fixture, outPath)
}

// #endregion extract

// #region output

func writeFixture(fixture *replay.Fixture, outPath string) error {
	data, err := json.MarshalIndent(fixture, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}

	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	fmt.Printf("Wrote fixture to %s (%d bytes, %d days)\n", outPath, len(data), len(fixture.Days))
	return nil
}

// #endregion output
