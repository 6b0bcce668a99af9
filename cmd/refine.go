package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/refinery/internal/repositories"
	"github.com/desertthunder/refinery/internal/shared"
	"github.com/desertthunder/refinery/internal/tasks"
	"github.com/desertthunder/refinery/internal/ui"
)

// Cutoff years outside this window are treated as typos and reprompted.
const (
	minCutoffYear = 1900
	maxCutoffYear = 2100
)

// Refine runs the full review pipeline against one playlist.
func (r *Runner) Refine(ctx context.Context, cmd *cli.Command) error {
	service, err := r.spotifyService(ctx)
	if err != nil {
		return err
	}

	playlistID, err := r.resolvePlaylist(ctx, cmd.StringArg("playlist"))
	if err != nil {
		return err
	}

	prompter := newConsolePrompter(r.input, r.output)

	opts := tasks.Options{
		SkipDuplicates: cmd.Bool("skip-duplicates"),
		SkipYear:       cmd.Bool("skip-year"),
		AssumeYes:      cmd.Bool("yes"),
		CutoffYear:     int(cmd.Int("cutoff")),
	}
	if opts.CutoffYear == 0 && !opts.SkipYear {
		opts.CutoffYear, err = r.promptCutoffYear(prompter)
		if err != nil {
			return err
		}
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	store := repositories.LoadKeepStore(db)
	audit := repositories.NewRemovalLog(db)

	engine := tasks.NewRefineEngine(service, store, audit, prompter, r.output, r.logger)

	result, err := engine.Run(ctx, playlistID, opts)
	if err != nil {
		return err
	}

	r.logger.Info("refinement finished",
		"session", result.SessionID,
		"playlist", playlistID,
		"removed", result.TotalRemoved,
	)
	return nil
}

// resolvePlaylist turns the positional argument into a playlist ID, falling
// back to the interactive chooser over the user's own playlists.
func (r *Runner) resolvePlaylist(ctx context.Context, arg string) (string, error) {
	if arg != "" {
		id := shared.ExtractPlaylistID(arg)
		if id == "" {
			return "", fmt.Errorf("%w: could not find a playlist ID in %q", shared.ErrInvalidArgument, arg)
		}
		return id, nil
	}

	service, err := r.spotifyService(ctx)
	if err != nil {
		return "", err
	}

	user, err := service.CurrentUser(ctx)
	if err != nil {
		return "", err
	}

	playlist, err := ui.ChoosePlaylist(ctx, service, user.ID)
	if err != nil {
		return "", err
	}
	return playlist.ID, nil
}

// promptCutoffYear asks for the year filter cutoff, defaulting to the
// configured value. Values outside the accepted window reprompt.
func (r *Runner) promptCutoffYear(prompter tasks.Prompter) (int, error) {
	fallback := r.config.Review.CutoffYear
	if fallback == 0 {
		fallback = 1992
	}

	for {
		resp, err := prompter.Prompt(fmt.Sprintf("Cutoff year [%d]:", fallback))
		if err != nil {
			return 0, err
		}

		resp = strings.TrimSpace(resp)
		if resp == "" {
			return fallback, nil
		}

		year, err := strconv.Atoi(resp)
		if err != nil || year < minCutoffYear || year > maxCutoffYear {
			r.writePlain("Enter a year between %d and %d.\n", minCutoffYear, maxCutoffYear)
			continue
		}
		return year, nil
	}
}
