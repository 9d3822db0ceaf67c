package setup

import (
	"fmt"
	"net/url"

	"github.com/itchan-dev/forumstate/frontend/internal/apiclient"
	"github.com/itchan-dev/forumstate/frontend/internal/handler"
	"github.com/itchan-dev/forumstate/frontend/internal/markdown"
	"github.com/itchan-dev/forumstate/frontend/internal/state"
	"github.com/itchan-dev/forumstate/shared/config"
	"github.com/itchan-dev/forumstate/shared/logger"
)

type Dependencies struct {
	Handler       *handler.Handler
	Forum         *state.Coordinator
	APIClient     *apiclient.APIClient
	TextProcessor *markdown.TextProcessor
	Public        config.Public
}

// SetupDependencies wires the backend client, the state layer and the bridge
// handler. A configured access token is restored but not verified: call
// Forum.Init to fetch the profile.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	if _, err := url.ParseRequestURI(cfg.Public.Api.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}

	textProcessor := markdown.New()
	apiClient := apiclient.New(cfg.Public.Api.BaseURL,
		apiclient.WithTimeout(cfg.Public.Api.RequestTimeout),
		apiclient.WithRateLimit(cfg.Public.Api.RateLimit, cfg.Public.Api.RateBurst),
		apiclient.WithSanitizer(textProcessor),
	)

	forum := state.NewCoordinator(apiClient, state.WithRenderer(textProcessor))
	if token := cfg.AccessToken(); token != "" {
		forum.Restore(token)
		logger.Log.Info("access token restored", "component", "setup")
	}

	return &Dependencies{
		Handler:       handler.New(forum, cfg.Public.Bridge.CORSOrigins),
		Forum:         forum,
		APIClient:     apiClient,
		TextProcessor: textProcessor,
		Public:        cfg.Public,
	}, nil
}
