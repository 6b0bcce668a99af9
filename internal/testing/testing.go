// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/desertthunder/refinery/internal/models"
	"github.com/desertthunder/refinery/internal/services"
)

// OccurrenceCall records one RemoveOccurrences invocation.
type OccurrenceCall struct {
	PlaylistID string
	Removals   []services.OccurrenceRemoval
}

// TrackCall records one RemoveTracks invocation.
type TrackCall struct {
	PlaylistID string
	TrackIDs   []string
}

// MockService is a scriptable test double for [services.Service].
//
// EntryPages holds successive PlaylistEntries results so tests can model the
// playlist shrinking between refetches; the last page repeats once exhausted.
type MockService struct {
	User          *models.User
	PlaylistsList []models.Playlist
	PlaylistByID  map[string]*models.Playlist
	EntryPages    [][]models.TrackEntry

	OccurrenceCalls []OccurrenceCall
	TrackCalls      []TrackCall

	EntriesErr    error
	OccurrenceErr error
	TrackErr      error

	fetches int
}

func (m *MockService) CurrentUser(ctx context.Context) (*models.User, error) {
	if m.User == nil {
		return &models.User{ID: "user", DisplayName: "Mock User"}, nil
	}
	return m.User, nil
}

func (m *MockService) Playlists(ctx context.Context) ([]models.Playlist, error) {
	return m.PlaylistsList, nil
}

func (m *MockService) Playlist(ctx context.Context, playlistID string) (*models.Playlist, error) {
	if p, ok := m.PlaylistByID[playlistID]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("playlist %s not found", playlistID)
}

func (m *MockService) PlaylistEntries(ctx context.Context, playlistID string) ([]models.TrackEntry, error) {
	if m.EntriesErr != nil {
		return nil, m.EntriesErr
	}
	if len(m.EntryPages) == 0 {
		return nil, nil
	}
	i := m.fetches
	if i >= len(m.EntryPages) {
		i = len(m.EntryPages) - 1
	}
	m.fetches++
	return m.EntryPages[i], nil
}

func (m *MockService) RemoveOccurrences(ctx context.Context, playlistID string, removals []services.OccurrenceRemoval) error {
	if m.OccurrenceErr != nil {
		return m.OccurrenceErr
	}
	m.OccurrenceCalls = append(m.OccurrenceCalls, OccurrenceCall{PlaylistID: playlistID, Removals: removals})
	return nil
}

func (m *MockService) RemoveTracks(ctx context.Context, playlistID string, trackIDs []string) error {
	if m.TrackErr != nil {
		return m.TrackErr
	}
	m.TrackCalls = append(m.TrackCalls, TrackCall{PlaylistID: playlistID, TrackIDs: trackIDs})
	return nil
}

func (m *MockService) Name() string { return "mock" }

// Fetches reports how many times PlaylistEntries has been called.
func (m *MockService) Fetches() int { return m.fetches }

// ScriptPrompter replays a fixed sequence of prompt responses and records the
// labels it was asked with. Once the script is exhausted it returns Err if
// set, otherwise an empty string.
type ScriptPrompter struct {
	Responses []string
	Labels    []string
	Err       error

	next int
}

func (p *ScriptPrompter) Prompt(label string) (string, error) {
	p.Labels = append(p.Labels, label)
	if p.next >= len(p.Responses) {
		if p.Err != nil {
			return "", p.Err
		}
		return "", nil
	}
	resp := p.Responses[p.next]
	p.next++
	return resp, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
