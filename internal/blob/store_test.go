package blob

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func tempSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func tempBadger(t *testing.T) *BadgerStore {
	t.Helper()
	s, err := NewBadgerStore(InMemoryBadgerConfig())
	if err != nil {
		t.Fatalf("NewBadgerStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// exerciseStore runs the shared contract against any backend.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	if _, err := s.Get(KeyPerceptions); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.Put(KeyPerceptions, []byte(`[1]`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := s.Get(KeyPerceptions)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `[1]` {
		t.Fatalf("expected [1], got %s", got)
	}

	// Overwrite replaces the whole blob.
	if err := s.Put(KeyPerceptions, []byte(`[2,3]`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, _ = s.Get(KeyPerceptions)
	if string(got) != `[2,3]` {
		t.Fatalf("expected [2,3], got %s", got)
	}

	// Keys are independent.
	if _, err := s.Get(KeyInsights); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other key, got %v", err)
	}

	if err := s.Put(KeyEventLogs, nil); err != nil {
		t.Fatalf("Put nil: %v", err)
	}
	got, err = s.Get(KeyEventLogs)
	if err != nil {
		t.Fatalf("Get after nil put: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty blob, got %q", got)
	}
}

func TestSQLiteStoreContract(t *testing.T) {
	exerciseStore(t, tempSQLite(t))
}

func TestBadgerStoreContract(t *testing.T) {
	exerciseStore(t, tempBadger(t))
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	if err := s.Put(KeyInsights, []byte(`["a"]`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	s.Close()

	s, err = NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.Get(KeyInsights)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `["a"]` {
		t.Fatalf("expected persisted blob, got %s", got)
	}
}

func TestBadgerStorePersistent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "badger")
	s, err := NewBadgerStore(BadgerConfig{Path: dir, Logger: zap.NewNop()})
	if err != nil {
		t.Fatalf("NewBadgerStore: %v", err)
	}
	if err := s.Put(KeyInvestments, []byte(`[]`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	s.Close()

	s, err = NewBadgerStore(BadgerConfig{Path: dir})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if _, err := s.Get(KeyInvestments); err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
}

func TestBadgerStoreRequiresPath(t *testing.T) {
	if _, err := NewBadgerStore(BadgerConfig{}); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestNewSQLiteStoreInvalidPath(t *testing.T) {
	_, err := NewSQLiteStore(filepath.Join(string(os.PathSeparator), "nonexistent", "deep", "path", "test.db"))
	if err == nil {
		t.Fatal("expected error for invalid path")
	}
}

func TestSQLiteKeys(t *testing.T) {
	s := tempSQLite(t)
	s.Put(KeyPerceptions, []byte(`[]`))
	s.Put(KeyInsights, []byte(`[1,2]`))

	infos, err := s.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(infos))
	}
	sizes := map[string]int{}
	for _, info := range infos {
		sizes[info.Key] = info.Size
	}
	if sizes[KeyInsights] != 5 {
		t.Errorf("expected size 5 for insights, got %d", sizes[KeyInsights])
	}
}

func TestGetOnClosedSQLite(t *testing.T) {
	s := tempSQLite(t)
	s.Close()
	_, err := s.Get(KeyPerceptions)
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected a non-ErrNotFound error on closed db, got %v", err)
	}
}
