package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/percepta/journal/internal/blob"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to the journal database (sqlite file or badger directory)")
	backend := flag.String("backend", "sqlite", "storage backend: sqlite or badger")
	key := flag.String("key", "", "show the items of one blob")
	last := flag.Int("last", 20, "with --key, show the N newest items")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/percepta.db [--backend sqlite|badger] [--key name] [--last N] [--json]")
		os.Exit(2)
	}

	store, keys, err := open(*backend, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if *key != "" {
		err = runDetailMode(store, *key, *last, *jsonOut)
	} else {
		err = runListMode(store, keys, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// knownKeys is every blob the journal writes.
var knownKeys = []string{
	blob.KeyPerceptions,
	blob.KeyInvestments,
	blob.KeyMacroThinking,
	blob.KeyInsights,
	blob.KeyEventLogs,
	blob.KeyEveningPromptPref,
}

// open returns the store and, for sqlite, the write time of each blob.
func open(backend, path string) (blob.Store, map[string]time.Time, error) {
	switch backend {
	case "sqlite":
		s, err := blob.NewSQLiteStore(path)
		if err != nil {
			return nil, nil, err
		}
		infos, err := s.Keys()
		if err != nil {
			s.Close()
			return nil, nil, err
		}
		updated := make(map[string]time.Time, len(infos))
		for _, info := range infos {
			updated[info.Key] = info.UpdatedAt
		}
		return s, updated, nil
	case "badger":
		s, err := blob.NewBadgerStore(blob.BadgerConfig{Path: path})
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", backend)
}

// #endregion main

// #region list-mode

type listRow struct {
	Key       string `json:"key"`
	Size      int    `json:"size"`
	Items     int    `json:"items"`
	Oldest    string `json:"oldest,omitempty"`
	Newest    string `json:"newest,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

func runListMode(store blob.Store, updated map[string]time.Time, jsonOut bool) error {
	var rows []listRow
	for _, key := range knownKeys {
		data, err := store.Get(key)
		if errors.Is(err, blob.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		row := listRow{Key: key, Size: len(data), Items: -1}
		if items, err := decodeItems(data); err == nil {
			row.Items = len(items)
			row.Oldest, row.Newest = dateRange(items)
		}
		if t, ok := updated[key]; ok && !t.IsZero() {
			row.UpdatedAt = t.Format(time.RFC3339)
		}
		rows = append(rows, row)
	}

	if jsonOut {
		return printJSON(rows)
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "no blobs found")
		return nil
	}

	fmt.Printf("%-26s  %8s  %6s  %-10s  %-10s  %s\n", "Key", "Bytes", "Items", "Oldest", "Newest", "Updated")
	fmt.Printf("%-26s+-%8s+-%6s+-%-10s+-%-10s+-%s\n",
		"--------------------------", "--------", "------", "----------", "----------", "--------------------")
	for _, r := range rows {
		items := "—"
		if r.Items >= 0 {
			items = fmt.Sprintf("%d", r.Items)
		}
		fmt.Printf("%-26s  %8d  %6s  %-10s  %-10s  %s\n",
			r.Key, r.Size, items, dash(r.Oldest), dash(r.Newest), dash(r.UpdatedAt))
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

func runDetailMode(store blob.Store, key string, last int, jsonOut bool) error {
	data, err := store.Get(key)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	items, err := decodeItems(data)
	if err != nil {
		// not a collection, e.g. the notification preference
		if jsonOut {
			fmt.Println(string(data))
			return nil
		}
		fmt.Printf("%s = %s\n", key, strings.TrimSpace(string(data)))
		return nil
	}
	if last > 0 && len(items) > last {
		items = items[len(items)-last:]
	}
	if jsonOut {
		return printJSON(items)
	}

	for _, item := range items {
		fmt.Printf("%-10s  %-8s  %s\n", stringField(item, "dateKey"), shortID(stringField(item, "id")), summarize(item))
	}
	return nil
}

// #endregion detail-mode

// #region decode

func decodeItems(data []byte) ([]map[string]any, error) {
	var items []map[string]any
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func dateRange(items []map[string]any) (oldest, newest string) {
	for _, item := range items {
		d := stringField(item, "dateKey")
		if d == "" {
			continue
		}
		if oldest == "" || d < oldest {
			oldest = d
		}
		if d > newest {
			newest = d
		}
	}
	return oldest, newest
}

func stringField(item map[string]any, name string) string {
	s, _ := item[name].(string)
	return s
}

// summarize renders every field except the bookkeeping ones as k=v.
func summarize(item map[string]any) string {
	var parts []string
	for k, v := range item {
		switch k {
		case "id", "dateKey", "createdAt", "timestamp":
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	sort.Strings(parts)
	return strings.Join(parts, " ")
}

// #endregion decode

// #region output

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func dash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

// #endregion output
