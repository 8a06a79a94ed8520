package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreSaveAndTopRecords(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 300, 200} {
		if _, err := store.SaveRecord(Record{Score: score, Level: 2}); err != nil {
			t.Fatalf("SaveRecord() failed: %v", err)
		}
	}
	if _, err := store.SaveRecord(Record{GameID: "other", Score: 999}); err != nil {
		t.Fatalf("SaveRecord() failed: %v", err)
	}

	records, err := store.TopRecords(GameID, 10)
	if err != nil {
		t.Fatalf("TopRecords() failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	if records[0].Score != 300 || records[1].Score != 200 || records[2].Score != 100 {
		t.Errorf("Records not ordered by score: %v", records)
	}
	for _, r := range records {
		if r.GameID != GameID {
			t.Errorf("Expected game %q, got %q", GameID, r.GameID)
		}
		if r.RunID == "" {
			t.Error("Expected a generated run ID")
		}
		if r.Level != 2 {
			t.Errorf("Expected level 2, got %d", r.Level)
		}
	}
}

func TestStoreTopRecordsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRecord(Record{Score: (i + 1) * 100})
	}

	records, err := store.TopRecords(GameID, 3)
	if err != nil {
		t.Fatalf("TopRecords() failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records with limit, got %d", len(records))
	}
	if records[0].Score != 500 || records[2].Score != 300 {
		t.Errorf("Records not in expected order: %v", records)
	}
}

func TestStoreKeepsRunID(t *testing.T) {
	store := openTestStore(t)

	store.SaveRecord(Record{RunID: "session-1", Score: 10})
	records, _ := store.TopRecords(GameID, 1)
	if len(records) != 1 || records[0].RunID != "session-1" {
		t.Errorf("Expected run ID to be kept, got %v", records)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore(GameID)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty table, got %d", high)
	}

	store.SaveRecord(Record{Score: 100})
	store.SaveRecord(Record{Score: 300})
	store.SaveRecord(Record{Score: 200})

	high, err = store.HighScore(GameID)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClear(t *testing.T) {
	store := openTestStore(t)

	store.SaveRecord(Record{Score: 100})
	store.SaveRecord(Record{GameID: "other", Score: 300})

	if err := store.Clear(GameID); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}

	records, _ := store.TopRecords(GameID, 10)
	if len(records) != 0 {
		t.Errorf("Expected 0 records after clear, got %d", len(records))
	}
	others, _ := store.TopRecords("other", 10)
	if len(others) != 1 {
		t.Errorf("Other game records should not be affected by clear")
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats(GameID)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Records != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	store.SaveRecord(Record{Score: 100, Level: 1})
	store.SaveRecord(Record{Score: 300, Level: 3})

	stats, err = store.Stats(GameID)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Records != 2 {
		t.Errorf("Expected 2 records, got %d", stats.Records)
	}
	if stats.HighScore != 300 {
		t.Errorf("Expected high score 300, got %d", stats.HighScore)
	}
	if stats.AvgScore != 200 {
		t.Errorf("Expected average 200, got %f", stats.AvgScore)
	}
	if stats.MaxLevel != 3 {
		t.Errorf("Expected max level 3, got %d", stats.MaxLevel)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("Expected last played to be set")
	}
}

func TestStoreCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
