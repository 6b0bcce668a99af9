package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/refinery/internal/repositories"
)

// CacheShow lists the persisted keep decisions.
func (r *Runner) CacheShow(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	store := repositories.LoadKeepStore(db)
	ids := store.IDs()

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{"keep": ids}, true)
	}

	if len(ids) == 0 {
		return r.writePlain("Keep cache is empty.\n")
	}

	r.writePlain("%d cached keep decisions:\n", len(ids))
	for _, id := range ids {
		r.writePlain("  %s\n", id)
	}
	return nil
}

// CacheForget drops every persisted keep decision.
func (r *Runner) CacheForget(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	store := repositories.LoadKeepStore(db)
	count := store.Size()

	if err := store.Clear(); err != nil {
		return err
	}

	r.logger.Info("keep cache cleared", "entries", count)
	return r.writePlain("✓ Forgot %d keep decisions\n", count)
}
