package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
)

// KeepKey is the decision store key holding the keep cache.
const KeepKey = "keep"

// KeepStore holds the set of track IDs the user has chosen to always keep.
//
// The set only grows during a run; Save writes it back sorted so the stored
// form is deterministic.
type KeepStore struct {
	db  *sql.DB
	key string
	ids map[string]bool
}

// LoadKeepStore reads the keep cache from the decision store. A missing row,
// unreadable database, or malformed value yields an empty cache rather than
// an error.
func LoadKeepStore(db *sql.DB) *KeepStore {
	store := &KeepStore{db: db, key: KeepKey, ids: make(map[string]bool)}

	var value string
	err := db.QueryRow("SELECT value FROM decision_store WHERE key = ?", store.key).Scan(&value)
	if err != nil {
		return store
	}

	var ids []string
	if err := json.Unmarshal([]byte(value), &ids); err != nil {
		return store
	}

	for _, id := range ids {
		if id != "" {
			store.ids[id] = true
		}
	}

	return store
}

// Contains reports whether the track ID is in the keep cache.
func (s *KeepStore) Contains(trackID string) bool {
	return s.ids[trackID]
}

// Add records a track ID as kept. Empty IDs are ignored.
func (s *KeepStore) Add(trackID string) {
	if trackID == "" {
		return
	}
	s.ids[trackID] = true
}

// Size returns the number of kept track IDs.
func (s *KeepStore) Size() int {
	return len(s.ids)
}

// IDs returns the kept track IDs in sorted order.
func (s *KeepStore) IDs() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Save serializes the keep cache back to the decision store under the "keep"
// key, sorted for a deterministic stored form. In-memory state is unaffected
// by a failed save.
func (s *KeepStore) Save() error {
	data, err := json.Marshal(s.IDs())
	if err != nil {
		return fmt.Errorf("failed to encode keep cache: %w", err)
	}

	query := `
		INSERT INTO decision_store (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`

	if _, err := s.db.Exec(query, s.key, string(data)); err != nil {
		return fmt.Errorf("failed to write keep cache: %w", err)
	}

	return nil
}

// Clear removes the stored keep cache and empties the in-memory set. Used by
// the cache maintenance command, never during a review run.
func (s *KeepStore) Clear() error {
	if _, err := s.db.Exec("DELETE FROM decision_store WHERE key = ?", s.key); err != nil {
		return fmt.Errorf("failed to clear keep cache: %w", err)
	}

	s.ids = make(map[string]bool)
	return nil
}
