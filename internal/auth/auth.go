package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"

	"github.com/desertthunder/refinery/internal/server"
	"github.com/desertthunder/refinery/internal/shared"
)

const callbackTimeout = 2 * time.Minute

// Authenticator handles Spotify OAuth2 authentication for the CLI.
type Authenticator struct {
	auth   *spotifyauth.Authenticator
	cache  *TokenCache
	config *shared.Config
	logger *log.Logger
	out    io.Writer
}

// New creates an Authenticator from the loaded configuration.
// Returns shared.ErrMissingCredentials when client ID or secret is unset.
func New(config *shared.Config, logger *log.Logger, out io.Writer) (*Authenticator, error) {
	sp := config.Credentials.Spotify
	if sp.ClientID == "" || sp.ClientSecret == "" {
		return nil, fmt.Errorf("%w: set credentials.spotify.client_id and client_secret", shared.ErrMissingCredentials)
	}

	auth := spotifyauth.New(
		spotifyauth.WithClientID(sp.ClientID),
		spotifyauth.WithClientSecret(sp.ClientSecret),
		spotifyauth.WithRedirectURL(sp.RedirectURI),
		spotifyauth.WithScopes(
			spotifyauth.ScopePlaylistReadPrivate,
			spotifyauth.ScopePlaylistReadCollaborative,
			spotifyauth.ScopePlaylistModifyPublic,
			spotifyauth.ScopePlaylistModifyPrivate,
		),
	)

	return &Authenticator{
		auth:   auth,
		cache:  NewTokenCache(sp.TokenPath),
		config: config,
		logger: logger,
		out:    out,
	}, nil
}

// Client returns an authenticated Spotify client, preferring the cached
// token. A cached token the service rejects falls through to a fresh
// authorization flow; the oauth2 transport refreshes expiring tokens on
// its own.
func (a *Authenticator) Client(ctx context.Context) (*spotify.Client, error) {
	token, err := a.cache.Load()
	if err != nil {
		a.logger.Warn("failed to read cached token", "path", a.cache.Path(), "error", err)
	}

	if token != nil {
		client := spotify.New(a.auth.Client(ctx, token), spotify.WithRetry(true))

		if _, err := client.CurrentUser(ctx); err == nil {
			if fresh, terr := client.Token(); terr == nil && fresh.AccessToken != token.AccessToken {
				if serr := a.cache.Save(fresh); serr != nil {
					a.logger.Warn("failed to save refreshed token", "error", serr)
				}
			}
			return client, nil
		}

		fmt.Fprintln(a.out, "Cached token rejected, starting a new authorization flow...")
	}

	return a.Login(ctx)
}

// Login runs the full authorization code flow: start a local callback
// server, open the authorization URL in the browser, wait for the callback,
// and cache the resulting token.
func (a *Authenticator) Login(ctx context.Context) (*spotify.Client, error) {
	state, err := shared.GenerateState()
	if err != nil {
		return nil, fmt.Errorf("generating state: %w", err)
	}

	handler := server.NewOAuthHandler(a.auth, state)
	router := server.NewBasicRouter()
	router.Handler(handler)

	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	srv := &http.Server{Addr: addr, Handler: router}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	authURL := a.auth.AuthURL(state)
	fmt.Fprintf(a.out, "Opening the authorization page in your browser:\n\n  %s\n\nWaiting for the callback...\n", authURL)
	if err := shared.OpenBrowser(authURL); err != nil {
		a.logger.Debug("failed to open browser", "error", err)
	}

	var result server.OAuthResult
	select {
	case result = <-handler.Result():
	case err := <-serverErr:
		return nil, fmt.Errorf("callback server error: %w", err)
	case <-time.After(callbackTimeout):
		return nil, fmt.Errorf("%w: no callback within %s", shared.ErrTimeout, callbackTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, result.Error())
	}

	if err := a.cache.Save(result.Token); err != nil {
		a.logger.Warn("failed to cache token", "path", a.cache.Path(), "error", err)
		fmt.Fprintf(a.out, "Warning: token was not cached: %v\n", err)
	}

	return spotify.New(a.auth.Client(ctx, result.Token), spotify.WithRetry(true)), nil
}

// Logout removes the cached token.
func (a *Authenticator) Logout() error {
	return a.cache.Delete()
}

// TokenPath returns the cache location, for display.
func (a *Authenticator) TokenPath() string {
	return a.cache.Path()
}
