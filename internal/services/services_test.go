package services

import (
	"fmt"
	"testing"

	"github.com/desertthunder/refinery/internal/models"
)

func TestGroupRemovals(t *testing.T) {
	t.Run("groups positions per track in first-appearance order", func(t *testing.T) {
		reqs := []models.RemovalRequest{
			{TrackID: "a", Position: 3},
			{TrackID: "b", Position: 7},
			{TrackID: "a", Position: 9},
		}

		removals := GroupRemovals(reqs)
		if len(removals) != 2 {
			t.Fatalf("expected 2 removals, got %d", len(removals))
		}
		if removals[0].TrackID != "a" || removals[1].TrackID != "b" {
			t.Errorf("expected first-appearance order, got %v", removals)
		}
		if len(removals[0].Positions) != 2 || removals[0].Positions[0] != 3 || removals[0].Positions[1] != 9 {
			t.Errorf("unexpected positions for a: %v", removals[0].Positions)
		}
	})

	t.Run("drops requests without track id", func(t *testing.T) {
		reqs := []models.RemovalRequest{
			{TrackID: "", Position: 0},
			{TrackID: "a", Position: 1},
		}

		removals := GroupRemovals(reqs)
		if len(removals) != 1 || removals[0].TrackID != "a" {
			t.Errorf("expected only track a, got %v", removals)
		}
	})

	t.Run("collapses duplicate positions", func(t *testing.T) {
		reqs := []models.RemovalRequest{
			{TrackID: "a", Position: 4},
			{TrackID: "a", Position: 4},
		}

		removals := GroupRemovals(reqs)
		if len(removals[0].Positions) != 1 {
			t.Errorf("expected 1 position, got %v", removals[0].Positions)
		}
	})
}

func TestChunkOccurrences(t *testing.T) {
	tc := []struct {
		name      string
		count     int
		size      int
		wantSizes []int
	}{
		{name: "empty", count: 0, size: 100, wantSizes: nil},
		{name: "single partial chunk", count: 42, size: 100, wantSizes: []int{42}},
		{name: "exact boundary", count: 200, size: 100, wantSizes: []int{100, 100}},
		{name: "remainder chunk", count: 205, size: 100, wantSizes: []int{100, 100, 5}},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			removals := make([]OccurrenceRemoval, tt.count)
			for i := range removals {
				removals[i] = OccurrenceRemoval{TrackID: fmt.Sprintf("t%d", i)}
			}

			chunks := ChunkOccurrences(removals, tt.size)
			if len(chunks) != len(tt.wantSizes) {
				t.Fatalf("expected %d chunks, got %d", len(tt.wantSizes), len(chunks))
			}

			total := 0
			for i, chunk := range chunks {
				if len(chunk) != tt.wantSizes[i] {
					t.Errorf("chunk %d: expected size %d, got %d", i, tt.wantSizes[i], len(chunk))
				}
				total += len(chunk)
			}
			if total != tt.count {
				t.Errorf("chunk sizes sum to %d, want %d", total, tt.count)
			}

			// Order must be preserved across chunk boundaries.
			idx := 0
			for _, chunk := range chunks {
				for _, r := range chunk {
					if r.TrackID != fmt.Sprintf("t%d", idx) {
						t.Fatalf("order broken at index %d: %s", idx, r.TrackID)
					}
					idx++
				}
			}
		})
	}
}

func TestChunkIDs(t *testing.T) {
	ids := make([]string, 150)
	for i := range ids {
		ids[i] = fmt.Sprintf("id%d", i)
	}

	chunks := ChunkIDs(ids, 100)
	if len(chunks) != 2 || len(chunks[0]) != 100 || len(chunks[1]) != 50 {
		t.Fatalf("unexpected chunking: %d chunks", len(chunks))
	}
	if chunks[1][0] != "id100" {
		t.Errorf("expected id100 first in second chunk, got %s", chunks[1][0])
	}
}

func TestDedupeIDs(t *testing.T) {
	ids := []string{"a", "b", "a", "", "c", "b"}
	got := DedupeIDs(ids)
	want := []string{"a", "b", "c"}

	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
			break
		}
	}
}
