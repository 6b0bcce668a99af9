// package models defines the data model for playlist refinement
package models

// User represents the authenticated account.
type User struct {
	ID          string
	DisplayName string
}

// Playlist represents a playlist owned by some user on the remote service.
type Playlist struct {
	ID          string
	Name        string
	Description string
	TrackCount  int
	Public      bool
	OwnerID     string
	OwnerName   string
}

// Track is an immutable snapshot of a track as fetched from the remote service.
//
// ReleaseDate may be empty or partial ("1973", "1973-03", "1973-03-01") and
// DurationMS is 0 when the service does not report a duration, so both are
// surfaced through [Track.ReleaseYear] and [Track.HasDuration] rather than
// read directly.
type Track struct {
	ID          string
	Title       string
	Artists     []string
	Album       string
	ReleaseDate string
	DurationMS  int
	URI         string
}

// PrimaryArtist returns the first listed artist, or "Unknown" when the service reports none.
func (t Track) PrimaryArtist() string {
	if len(t.Artists) == 0 {
		return "Unknown"
	}
	return t.Artists[0]
}

// ReleaseYear derives the album year from the first four characters of the
// release date. The second return value is false when the year is unknown.
func (t Track) ReleaseYear() (int, bool) {
	if len(t.ReleaseDate) < 4 {
		return 0, false
	}

	year := 0
	for _, c := range t.ReleaseDate[:4] {
		if c < '0' || c > '9' {
			return 0, false
		}
		year = year*10 + int(c-'0')
	}

	return year, true
}

// HasDuration reports whether the service provided a usable duration.
func (t Track) HasDuration() bool {
	return t.DurationMS > 0
}

// TrackEntry pairs a track with its zero-based position in the snapshot it
// was fetched with. Track is nil for unavailable or local items.
//
// Positions are only valid for that snapshot; any committed removal
// invalidates every position taken from it.
type TrackEntry struct {
	Position int
	Track    *Track
}

// Snapshot is the ordered track list of a playlist as fetched at one point
// in time. Generation increases with every fetch so removal requests can be
// checked against the snapshot they were computed from.
type Snapshot struct {
	PlaylistID string
	Generation int
	Entries    []TrackEntry
}

// RemovalRequest identifies one playlist slot to remove: a specific occurrence
// of a track, not the track everywhere. Generation tags the snapshot the
// position was read from.
type RemovalRequest struct {
	TrackID    string
	URI        string
	Position   int
	Generation int
}
