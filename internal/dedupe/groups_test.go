package dedupe

import (
	"testing"

	"github.com/desertthunder/refinery/internal/models"
)

func entry(pos int, title, artist string, durationMS int) models.TrackEntry {
	return models.TrackEntry{
		Position: pos,
		Track: &models.Track{
			ID:         title + "-" + artist,
			Title:      title,
			Artists:    []string{artist},
			DurationMS: durationMS,
			URI:        "spotify:track:" + title,
		},
	}
}

func TestBuildGroups(t *testing.T) {
	t.Run("groups by normalized title and artist", func(t *testing.T) {
		entries := []models.TrackEntry{
			entry(0, "Song (Remastered 2011)", "ABBA", 180000),
			entry(1, "Other", "ABBA", 200000),
			entry(2, "Song - 2011 Remaster", "abba", 181000),
		}

		groups := BuildGroups(entries)
		if len(groups) != 2 {
			t.Fatalf("expected 2 groups, got %d", len(groups))
		}

		dups := Duplicates(groups)
		if len(dups) != 1 {
			t.Fatalf("expected 1 duplicate group, got %d", len(dups))
		}
		if got := len(dups[0].Entries); got != 2 {
			t.Fatalf("expected 2 entries in duplicate group, got %d", got)
		}
		if dups[0].Base().Position != 0 {
			t.Errorf("expected base at position 0, got %d", dups[0].Base().Position)
		}
	})

	t.Run("different normalized keys never group", func(t *testing.T) {
		entries := []models.TrackEntry{
			entry(0, "Song", "Artist A", 180000),
			entry(1, "Song", "Artist B", 180000),
		}

		groups := BuildGroups(entries)
		if len(groups) != 2 {
			t.Fatalf("expected 2 groups, got %d", len(groups))
		}
		if len(Duplicates(groups)) != 0 {
			t.Error("expected no duplicate groups")
		}
	})

	t.Run("entries without a track are skipped", func(t *testing.T) {
		entries := []models.TrackEntry{
			{Position: 0, Track: nil},
			entry(1, "Song", "ABBA", 180000),
			{Position: 2, Track: nil},
		}

		groups := BuildGroups(entries)
		if len(groups) != 1 {
			t.Fatalf("expected 1 group, got %d", len(groups))
		}
		if len(groups[0].Entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(groups[0].Entries))
		}
	})

	t.Run("entries ordered by position within group", func(t *testing.T) {
		entries := []models.TrackEntry{
			entry(5, "Song", "ABBA", 180000),
			entry(2, "Song", "ABBA", 181000),
			entry(9, "Song", "ABBA", 182000),
		}

		groups := BuildGroups(entries)
		if len(groups) != 1 {
			t.Fatalf("expected 1 group, got %d", len(groups))
		}
		positions := []int{}
		for _, e := range groups[0].Entries {
			positions = append(positions, e.Position)
		}
		if positions[0] != 2 || positions[1] != 5 || positions[2] != 9 {
			t.Errorf("expected positions sorted ascending, got %v", positions)
		}
	})

	t.Run("groups sorted by key", func(t *testing.T) {
		entries := []models.TrackEntry{
			entry(0, "Zebra", "ABBA", 180000),
			entry(1, "Alpha", "ABBA", 180000),
		}

		groups := BuildGroups(entries)
		if groups[0].Key.Title != "alpha" || groups[1].Key.Title != "zebra" {
			t.Errorf("expected groups sorted by key, got %v then %v", groups[0].Key, groups[1].Key)
		}
	})
}

func TestAutoCandidates(t *testing.T) {
	t.Run("pairs duration-close entries with the base", func(t *testing.T) {
		entries := []models.TrackEntry{
			entry(0, "Track", "Artist A", 120000),
			entry(1, "Track", "Artist A", 122000),
		}

		candidates := AutoCandidates(BuildGroups(entries))
		if len(candidates) != 1 {
			t.Fatalf("expected 1 candidate, got %d", len(candidates))
		}
		if candidates[0].Entry.Position != 1 {
			t.Errorf("expected candidate at position 1, got %d", candidates[0].Entry.Position)
		}
		if candidates[0].Base.Position != 0 {
			t.Errorf("expected base at position 0, got %d", candidates[0].Base.Position)
		}
	})

	t.Run("threshold boundary is inclusive", func(t *testing.T) {
		entries := []models.TrackEntry{
			entry(0, "Track", "A", 120000),
			entry(1, "Track", "A", 123000),
			entry(2, "Track", "A", 123001),
		}

		candidates := AutoCandidates(BuildGroups(entries))
		if len(candidates) != 1 {
			t.Fatalf("expected exactly the 3000ms entry, got %d candidates", len(candidates))
		}
		if candidates[0].Entry.Position != 1 {
			t.Errorf("expected position 1, got %d", candidates[0].Entry.Position)
		}
	})

	t.Run("base is never its own candidate", func(t *testing.T) {
		entries := []models.TrackEntry{
			entry(0, "Track", "A", 120000),
			entry(1, "Track", "A", 120000),
		}

		for _, c := range AutoCandidates(BuildGroups(entries)) {
			if c.Entry.Position == c.Base.Position {
				t.Error("base entry selected as candidate of itself")
			}
		}
	})

	t.Run("group with unknown base duration is excluded", func(t *testing.T) {
		entries := []models.TrackEntry{
			entry(0, "Track", "A", 0),
			entry(1, "Track", "A", 120000),
		}

		if got := AutoCandidates(BuildGroups(entries)); len(got) != 0 {
			t.Errorf("expected no candidates, got %d", len(got))
		}
	})

	t.Run("entries with unknown duration are skipped", func(t *testing.T) {
		entries := []models.TrackEntry{
			entry(0, "Track", "A", 120000),
			entry(1, "Track", "A", 0),
			entry(2, "Track", "A", 121000),
		}

		candidates := AutoCandidates(BuildGroups(entries))
		if len(candidates) != 1 {
			t.Fatalf("expected 1 candidate, got %d", len(candidates))
		}
		if candidates[0].Entry.Position != 2 {
			t.Errorf("expected position 2, got %d", candidates[0].Entry.Position)
		}
	})
}
