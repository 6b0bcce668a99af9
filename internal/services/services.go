// package services defines the narrow interface the review engine consumes
// from the remote playlist service, plus the batching helpers for removal
// calls.
package services

import (
	"context"

	"github.com/desertthunder/refinery/internal/models"
)

// MaxRemovalsPerRequest is the remote service's limit on (track, positions)
// pairs per removal call. Larger batches are issued as sequential calls.
const MaxRemovalsPerRequest = 100

// Service is the boundary to the remote playlist service.
//
// PlaylistEntries returns entries in stable playlist order with zero-based
// positions; removal methods mutate the playlist, so callers must refetch
// before issuing further position-addressed requests.
type Service interface {
	// CurrentUser returns the authenticated account.
	CurrentUser(ctx context.Context) (*models.User, error)

	// Playlists retrieves all playlists visible to the authenticated user, depaginated.
	Playlists(ctx context.Context) ([]models.Playlist, error)

	// Playlist retrieves a single playlist by ID.
	Playlist(ctx context.Context, playlistID string) (*models.Playlist, error)

	// PlaylistEntries retrieves every entry of a playlist, depaginated, in playlist order.
	PlaylistEntries(ctx context.Context, playlistID string) ([]models.TrackEntry, error)

	// RemoveOccurrences removes specific (track, positions) occurrences,
	// chunking into sequential calls of at most MaxRemovalsPerRequest pairs.
	RemoveOccurrences(ctx context.Context, playlistID string, removals []OccurrenceRemoval) error

	// RemoveTracks removes all occurrences of the given track IDs.
	RemoveTracks(ctx context.Context, playlistID string, trackIDs []string) error

	// Name returns the service name (e.g. "Spotify")
	Name() string
}

// OccurrenceRemoval names one track and the snapshot positions of the
// occurrences to delete.
type OccurrenceRemoval struct {
	TrackID   string
	Positions []int
}

// GroupRemovals folds position-addressed removal requests into per-track
// occurrence removals. Requests without a track ID (local or unavailable
// items) are dropped, duplicate positions are collapsed, and tracks appear
// in first-appearance order.
func GroupRemovals(reqs []models.RemovalRequest) []OccurrenceRemoval {
	var order []string
	positions := make(map[string][]int)
	seen := make(map[string]map[int]bool)

	for _, req := range reqs {
		if req.TrackID == "" {
			continue
		}
		if _, ok := positions[req.TrackID]; !ok {
			order = append(order, req.TrackID)
			seen[req.TrackID] = make(map[int]bool)
		}
		if seen[req.TrackID][req.Position] {
			continue
		}
		seen[req.TrackID][req.Position] = true
		positions[req.TrackID] = append(positions[req.TrackID], req.Position)
	}

	removals := make([]OccurrenceRemoval, 0, len(order))
	for _, id := range order {
		removals = append(removals, OccurrenceRemoval{TrackID: id, Positions: positions[id]})
	}

	return removals
}

// ChunkOccurrences partitions removals into chunks of at most size pairs,
// preserving order. The chunk sizes always sum to len(removals).
func ChunkOccurrences(removals []OccurrenceRemoval, size int) [][]OccurrenceRemoval {
	if size <= 0 {
		size = MaxRemovalsPerRequest
	}

	var chunks [][]OccurrenceRemoval
	for start := 0; start < len(removals); start += size {
		end := min(start+size, len(removals))
		chunks = append(chunks, removals[start:end])
	}

	return chunks
}

// ChunkIDs partitions track IDs into chunks of at most size, preserving order.
func ChunkIDs(ids []string, size int) [][]string {
	if size <= 0 {
		size = MaxRemovalsPerRequest
	}

	var chunks [][]string
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		chunks = append(chunks, ids[start:end])
	}

	return chunks
}

// DedupeIDs removes duplicate IDs while preserving first-appearance order.
func DedupeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
