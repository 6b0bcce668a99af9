package repositories

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/refinery/internal/models"
)

// RemovalLog records committed removals for later inspection.
type RemovalLog struct {
	db *sql.DB
}

// NewRemovalLog creates a RemovalLog with the given database connection
func NewRemovalLog(db *sql.DB) *RemovalLog {
	return &RemovalLog{db: db}
}

// RecordOccurrences logs one row per removed occurrence.
func (l *RemovalLog) RecordOccurrences(sessionID, playlistID, phase string, reqs []models.RemovalRequest) error {
	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO removal_log (session_id, playlist_id, track_id, position, phase)
		VALUES (?, ?, ?, ?, ?)
	`

	for _, req := range reqs {
		if _, err := tx.Exec(query, sessionID, playlistID, req.TrackID, req.Position, phase); err != nil {
			return fmt.Errorf("failed to record removal: %w", err)
		}
	}

	return tx.Commit()
}

// RecordTracks logs global (position-less) track removals.
func (l *RemovalLog) RecordTracks(sessionID, playlistID, phase string, trackIDs []string) error {
	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO removal_log (session_id, playlist_id, track_id, position, phase)
		VALUES (?, ?, ?, NULL, ?)
	`

	for _, id := range trackIDs {
		if _, err := tx.Exec(query, sessionID, playlistID, id, phase); err != nil {
			return fmt.Errorf("failed to record removal: %w", err)
		}
	}

	return tx.Commit()
}

// CountBySession returns the number of removals recorded for a session.
func (l *RemovalLog) CountBySession(sessionID string) (int, error) {
	var count int
	err := l.db.QueryRow("SELECT COUNT(*) FROM removal_log WHERE session_id = ?", sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count removals: %w", err)
	}
	return count, nil
}

// CountByPlaylist returns the number of removals ever recorded for a playlist.
func (l *RemovalLog) CountByPlaylist(playlistID string) (int, error) {
	var count int
	err := l.db.QueryRow("SELECT COUNT(*) FROM removal_log WHERE playlist_id = ?", playlistID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count removals: %w", err)
	}
	return count, nil
}
