package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/refinery/internal/formatter"
	"github.com/desertthunder/refinery/internal/shared"
)

// Export writes a playlist snapshot to a local file in the requested format.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	playlistID, err := r.resolvePlaylist(ctx, cmd.StringArg("playlist"))
	if err != nil {
		return err
	}

	service, err := r.spotifyService(ctx)
	if err != nil {
		return err
	}

	playlist, err := service.Playlist(ctx, playlistID)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPlaylistNotFound, err)
	}

	entries, err := service.PlaylistEntries(ctx, playlistID)
	if err != nil {
		return fmt.Errorf("%w: failed to fetch playlist entries: %v", shared.ErrAPIRequest, err)
	}

	r.logger.Info("exporting playlist", "playlist", playlist.Name, "tracks", len(entries))

	output := cmd.String("output")
	format := strings.ToLower(cmd.String("format"))

	switch format {
	case "csv":
		result, err := formatter.WriteCSVExport(playlist, entries, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d tracks\n", len(entries))
		r.writePlain("Tracks: %s\nMetadata: %s\n", result.TracksFile, result.MetadataFile)

	case "markdown", "md":
		path, err := formatter.WriteMarkdownExport(playlist, entries, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d tracks to %s\n", len(entries), path)

	case "text", "txt":
		path, err := formatter.WriteTextExport(playlist, entries, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d tracks to %s\n", len(entries), path)

	case "json":
		return r.writeJSON(map[string]any{
			"playlist": playlist,
			"entries":  entries,
		}, true)

	default:
		return fmt.Errorf("%w: unknown format %q (csv, markdown, text, json)", shared.ErrInvalidArgument, format)
	}

	return nil
}
