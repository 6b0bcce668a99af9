// Package ui implements the interactive playlist chooser shown when the
// refine command is run without a playlist argument.
package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/refinery/internal/models"
	"github.com/desertthunder/refinery/internal/services"
	"github.com/desertthunder/refinery/internal/shared"
)

// keyMap defines the key bindings for the chooser.
type keyMap struct {
	up    key.Binding
	down  key.Binding
	enter key.Binding
	quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// playlistItem wraps [models.Playlist] to implement list.Item.
type playlistItem struct {
	playlist models.Playlist
}

func (i playlistItem) FilterValue() string { return i.playlist.Name }
func (i playlistItem) Title() string       { return i.playlist.Name }
func (i playlistItem) Description() string {
	desc := fmt.Sprintf("%d tracks", i.playlist.TrackCount)
	if i.playlist.Description != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.playlist.Description)
	}
	return desc
}

type playlistsFetchedMsg struct {
	playlists []models.Playlist
	err       error
}

// Chooser is the TUI model for picking one of the user's own playlists.
type Chooser struct {
	ctx     context.Context
	service services.Service
	ownerID string

	width  int
	height int
	ready  bool

	list     list.Model
	selected *models.Playlist
	err      error
	help     help.Model
	keys     keyMap
}

// NewChooser creates a chooser over the playlists owned by ownerID. An empty
// ownerID lists every visible playlist.
func NewChooser(ctx context.Context, service services.Service, ownerID string) *Chooser {
	return &Chooser{
		ctx:     ctx,
		service: service,
		ownerID: ownerID,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init starts the playlist fetch.
func (m *Chooser) Init() tea.Cmd {
	return m.fetchPlaylists()
}

// Update handles incoming messages and updates the chooser state.
func (m *Chooser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.ready {
			m.list.SetSize(msg.Width-4, msg.Height-6)
		}
		return m, nil

	case playlistsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		if len(msg.playlists) == 0 {
			m.err = fmt.Errorf("%w: no editable playlists found", shared.ErrPlaylistNotFound)
			return m, tea.Quit
		}

		items := make([]list.Item, len(msg.playlists))
		for i, pl := range msg.playlists {
			items[i] = playlistItem{playlist: pl}
		}
		m.list = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.list.Title = "Choose a playlist"
		m.list.SetSize(m.width-4, m.height-6)
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if selected := m.list.SelectedItem(); selected != nil {
				if pl, ok := selected.(playlistItem); ok {
					m.selected = &pl.playlist
					return m, tea.Quit
				}
			}
		}
	}

	if !m.ready {
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the chooser.
func (m *Chooser) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}
	if !m.ready {
		return styles.help.Render("Loading playlists...")
	}

	helpKeys := []key.Binding{m.keys.up, m.keys.down, m.keys.enter, m.keys.quit}
	return fmt.Sprintf("%s\n\n%s", m.list.View(), m.help.ShortHelpView(helpKeys))
}

func (m *Chooser) fetchPlaylists() tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.service.Playlists(m.ctx)
		if err != nil {
			return playlistsFetchedMsg{err: err}
		}

		if m.ownerID == "" {
			return playlistsFetchedMsg{playlists: playlists}
		}

		owned := make([]models.Playlist, 0, len(playlists))
		for _, pl := range playlists {
			if pl.OwnerID == m.ownerID {
				owned = append(owned, pl)
			}
		}
		return playlistsFetchedMsg{playlists: owned}
	}
}

// ChoosePlaylist runs the chooser and returns the selection. Quitting without
// a selection returns an error so the caller can abort cleanly.
func ChoosePlaylist(ctx context.Context, service services.Service, ownerID string) (*models.Playlist, error) {
	model := NewChooser(ctx, service, ownerID)

	program := tea.NewProgram(model, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("playlist chooser failed: %w", err)
	}

	m, ok := final.(*Chooser)
	if !ok {
		return nil, fmt.Errorf("unexpected chooser model type")
	}
	if m.err != nil {
		return nil, m.err
	}
	if m.selected == nil {
		return nil, fmt.Errorf("%w: no playlist selected", shared.ErrMissingArgument)
	}
	return m.selected, nil
}
