package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/refinery/internal/auth"
)

// AuthLogin runs the OAuth2 authorization code flow and caches the token.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	authenticator, err := auth.New(r.config, r.logger, r.output)
	if err != nil {
		return err
	}

	client, err := authenticator.Login(ctx)
	if err != nil {
		return err
	}

	user, err := client.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("authenticated but failed to fetch profile: %w", err)
	}

	r.logger.Info("authentication successful", "user", user.ID)
	return r.writePlain("✓ Authenticated as %s\nToken cached at %s\n", user.DisplayName, authenticator.TokenPath())
}

// AuthStatus reports the account behind the cached token.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	service, err := r.spotifyService(ctx)
	if err != nil {
		return err
	}

	user, err := service.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}

	return r.writePlain("✓ Authenticated as %s (%s)\n", user.DisplayName, user.ID)
}

// AuthLogout deletes the cached token.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	authenticator, err := auth.New(r.config, r.logger, r.output)
	if err != nil {
		return err
	}

	if err := authenticator.Logout(); err != nil {
		return err
	}

	r.logger.Info("cached token removed", "path", authenticator.TokenPath())
	return r.writePlain("✓ Logged out\n")
}
