// Spotify implementation of [Service] on top of the zmb3 Web API client.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/refinery/internal/models"
	"github.com/zmb3/spotify/v2"
)

const pageLimit = 100

// SpotifyService implements [Service] for the Spotify Web API.
// The wrapped client must already be authenticated.
type SpotifyService struct {
	client *spotify.Client
}

// NewSpotifyService wraps an authenticated Spotify client.
func NewSpotifyService(client *spotify.Client) *SpotifyService {
	return &SpotifyService{client: client}
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// CurrentUser retrieves the authenticated user's profile.
func (s *SpotifyService) CurrentUser(ctx context.Context) (*models.User, error) {
	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current user: %w", err)
	}

	return &models.User{ID: user.ID, DisplayName: user.DisplayName}, nil
}

// Playlists retrieves all of the user's playlists, following pagination.
func (s *SpotifyService) Playlists(ctx context.Context) ([]models.Playlist, error) {
	page, err := s.client.CurrentUsersPlaylists(ctx, spotify.Limit(50))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlists: %w", err)
	}

	var playlists []models.Playlist
	for {
		for _, sp := range page.Playlists {
			playlists = append(playlists, models.Playlist{
				ID:         sp.ID.String(),
				Name:       sp.Name,
				TrackCount: int(sp.Tracks.Total),
				Public:     sp.IsPublic,
				OwnerID:    sp.Owner.ID,
				OwnerName:  sp.Owner.DisplayName,
			})
		}

		err = s.client.NextPage(ctx, page)
		if errors.Is(err, spotify.ErrNoMorePages) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to fetch next playlist page: %w", err)
		}
	}

	return playlists, nil
}

// Playlist retrieves a playlist's metadata by ID.
func (s *SpotifyService) Playlist(ctx context.Context, playlistID string) (*models.Playlist, error) {
	fp, err := s.client.GetPlaylist(ctx, spotify.ID(playlistID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlist %s: %w", playlistID, err)
	}

	return &models.Playlist{
		ID:          fp.ID.String(),
		Name:        fp.Name,
		Description: fp.Description,
		TrackCount:  int(fp.Tracks.Total),
		Public:      fp.IsPublic,
		OwnerID:     fp.Owner.ID,
		OwnerName:   fp.Owner.DisplayName,
	}, nil
}

// PlaylistEntries retrieves all entries of a playlist in stable playlist
// order, following pagination. Entries whose item is an episode or a local
// track carry a nil Track but still occupy their position.
func (s *SpotifyService) PlaylistEntries(ctx context.Context, playlistID string) ([]models.TrackEntry, error) {
	page, err := s.client.GetPlaylistItems(ctx, spotify.ID(playlistID), spotify.Limit(pageLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlist items: %w", err)
	}

	var entries []models.TrackEntry
	position := 0
	for {
		for _, item := range page.Items {
			entries = append(entries, models.TrackEntry{
				Position: position,
				Track:    convertTrack(item.Track.Track),
			})
			position++
		}

		err = s.client.NextPage(ctx, page)
		if errors.Is(err, spotify.ErrNoMorePages) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to fetch next item page: %w", err)
		}
	}

	return entries, nil
}

// RemoveOccurrences removes specific occurrences in chunks of at most
// MaxRemovalsPerRequest pairs, issued sequentially. The first failing chunk
// aborts the sequence.
func (s *SpotifyService) RemoveOccurrences(ctx context.Context, playlistID string, removals []OccurrenceRemoval) error {
	for _, chunk := range ChunkOccurrences(removals, MaxRemovalsPerRequest) {
		tracks := make([]spotify.TrackToRemove, 0, len(chunk))
		for _, r := range chunk {
			tracks = append(tracks, spotify.NewTrackToRemove(r.TrackID, r.Positions))
		}

		if _, err := s.client.RemoveTracksFromPlaylistOpt(ctx, spotify.ID(playlistID), tracks, ""); err != nil {
			return fmt.Errorf("failed to remove occurrences: %w", err)
		}
	}

	return nil
}

// RemoveTracks removes all occurrences of the given track IDs, chunked to the
// service's batch limit.
func (s *SpotifyService) RemoveTracks(ctx context.Context, playlistID string, trackIDs []string) error {
	for _, chunk := range ChunkIDs(trackIDs, MaxRemovalsPerRequest) {
		ids := make([]spotify.ID, len(chunk))
		for i, id := range chunk {
			ids[i] = spotify.ID(id)
		}

		if _, err := s.client.RemoveTracksFromPlaylist(ctx, spotify.ID(playlistID), ids...); err != nil {
			return fmt.Errorf("failed to remove tracks: %w", err)
		}
	}

	return nil
}

// convertTrack maps a Spotify track to the internal model. Returns nil for
// missing tracks and local items without an ID, so the grouper skips them.
func convertTrack(t *spotify.FullTrack) *models.Track {
	if t == nil || t.ID == "" {
		return nil
	}

	artists := make([]string, len(t.Artists))
	for i, a := range t.Artists {
		artists[i] = a.Name
	}

	return &models.Track{
		ID:          t.ID.String(),
		Title:       t.Name,
		Artists:     artists,
		Album:       t.Album.Name,
		ReleaseDate: t.Album.ReleaseDate,
		DurationMS:  int(t.Duration),
		URI:         string(t.URI),
	}
}
