package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/refinery/internal/formatter"
	"github.com/desertthunder/refinery/internal/models"
)

// Playlists lists the playlists visible to the authenticated user.
func (r *Runner) Playlists(ctx context.Context, cmd *cli.Command) error {
	service, err := r.spotifyService(ctx)
	if err != nil {
		return err
	}

	playlists, err := service.Playlists(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("mine") {
		user, err := service.CurrentUser(ctx)
		if err != nil {
			return err
		}

		owned := make([]models.Playlist, 0, len(playlists))
		for _, pl := range playlists {
			if pl.OwnerID == user.ID {
				owned = append(owned, pl)
			}
		}
		playlists = owned
	}

	r.logger.Info("fetched playlists", "count", len(playlists))

	if cmd.Bool("json") {
		return r.writeJSON(playlists, cmd.Bool("pretty"))
	}

	if len(playlists) == 0 {
		return r.writePlain("No playlists found.\n")
	}
	return r.writePlain("%s\n", formatter.PlaylistTable(playlists))
}
