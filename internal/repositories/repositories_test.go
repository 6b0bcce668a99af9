package repositories

import (
	"database/sql"
	"testing"

	"github.com/desertthunder/refinery/internal/models"
	"github.com/desertthunder/refinery/internal/shared"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func TestKeepStore(t *testing.T) {
	t.Run("missing row yields empty cache", func(t *testing.T) {
		db := testDB(t)
		store := LoadKeepStore(db)

		if store.Size() != 0 {
			t.Errorf("expected empty store, got %d entries", store.Size())
		}
	})

	t.Run("malformed value yields empty cache", func(t *testing.T) {
		db := testDB(t)
		if _, err := db.Exec("INSERT INTO decision_store (key, value) VALUES (?, ?)", KeepKey, "{not json"); err != nil {
			t.Fatalf("failed to seed malformed row: %v", err)
		}

		store := LoadKeepStore(db)
		if store.Size() != 0 {
			t.Errorf("expected empty store, got %d entries", store.Size())
		}
	})

	t.Run("save and reload round trip", func(t *testing.T) {
		db := testDB(t)
		store := LoadKeepStore(db)

		store.Add("track-b")
		store.Add("track-a")
		store.Add("")

		if err := store.Save(); err != nil {
			t.Fatalf("failed to save: %v", err)
		}

		reloaded := LoadKeepStore(db)
		if reloaded.Size() != 2 {
			t.Fatalf("expected 2 entries, got %d", reloaded.Size())
		}
		if !reloaded.Contains("track-a") || !reloaded.Contains("track-b") {
			t.Error("expected both tracks after reload")
		}
	})

	t.Run("stored value is sorted", func(t *testing.T) {
		db := testDB(t)
		store := LoadKeepStore(db)
		store.Add("zz")
		store.Add("aa")
		store.Add("mm")

		if err := store.Save(); err != nil {
			t.Fatalf("failed to save: %v", err)
		}

		var value string
		if err := db.QueryRow("SELECT value FROM decision_store WHERE key = ?", KeepKey).Scan(&value); err != nil {
			t.Fatalf("failed to read stored value: %v", err)
		}
		if value != `["aa","mm","zz"]` {
			t.Errorf("expected sorted JSON array, got %s", value)
		}
	})

	t.Run("size never decreases through adds", func(t *testing.T) {
		db := testDB(t)
		store := LoadKeepStore(db)

		prev := store.Size()
		for _, id := range []string{"a", "b", "a", "", "c"} {
			store.Add(id)
			if store.Size() < prev {
				t.Fatalf("store shrank from %d to %d", prev, store.Size())
			}
			prev = store.Size()
		}
	})

	t.Run("clear empties store and row", func(t *testing.T) {
		db := testDB(t)
		store := LoadKeepStore(db)
		store.Add("a")
		if err := store.Save(); err != nil {
			t.Fatalf("failed to save: %v", err)
		}

		if err := store.Clear(); err != nil {
			t.Fatalf("failed to clear: %v", err)
		}
		if store.Size() != 0 {
			t.Errorf("expected empty store after clear, got %d", store.Size())
		}
		if LoadKeepStore(db).Size() != 0 {
			t.Error("expected empty stored cache after clear")
		}
	})

	t.Run("failed save leaves memory intact", func(t *testing.T) {
		db := testDB(t)
		store := LoadKeepStore(db)
		store.Add("a")

		db.Close()
		if err := store.Save(); err == nil {
			t.Fatal("expected save to fail on closed database")
		}
		if !store.Contains("a") {
			t.Error("in-memory state must survive a failed save")
		}
	})
}

func TestRemovalLog(t *testing.T) {
	t.Run("records occurrences", func(t *testing.T) {
		db := testDB(t)
		log := NewRemovalLog(db)

		reqs := []models.RemovalRequest{
			{TrackID: "a", Position: 3},
			{TrackID: "b", Position: 7},
		}
		if err := log.RecordOccurrences("session-1", "pl", "auto", reqs); err != nil {
			t.Fatalf("failed to record: %v", err)
		}

		count, err := log.CountBySession("session-1")
		if err != nil {
			t.Fatalf("failed to count: %v", err)
		}
		if count != 2 {
			t.Errorf("expected 2 rows, got %d", count)
		}
	})

	t.Run("records position-less track removals", func(t *testing.T) {
		db := testDB(t)
		log := NewRemovalLog(db)

		if err := log.RecordTracks("session-2", "pl", "year", []string{"x", "y", "z"}); err != nil {
			t.Fatalf("failed to record: %v", err)
		}

		count, err := log.CountByPlaylist("pl")
		if err != nil {
			t.Fatalf("failed to count: %v", err)
		}
		if count != 3 {
			t.Errorf("expected 3 rows, got %d", count)
		}
	})
}
