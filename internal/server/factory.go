// internal/server/factory.go
package server

import (
	"fmt"

	"ticketgate/internal/config"
	"ticketgate/internal/gateway/router"
	"ticketgate/internal/identity"
	"ticketgate/internal/observability"
	"ticketgate/internal/observability/logging"
	"ticketgate/internal/ticketauth"
)

// NewFromConfig creates a new server from configuration
func NewFromConfig(cfg *config.Config) (*Server, error) {
	// Initialize observability
	obs, err := observability.NewProvider(cfg.Observability.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}
	logger := obs.Logger

	// Initialize the identity platform client factory
	clients, err := identity.NewFactory(identity.FactoryConfig{
		BaseURL: cfg.Platform.URL,
		Timeout: cfg.Platform.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize identity platform client factory: %w", err)
	}
	logger.Info("Identity platform configured", "url", logging.RedactStringURL(cfg.Platform.URL))

	// Initialize the authenticator
	auth, err := ticketauth.New(ticketauth.Options{
		CookieName:      cfg.Auth.CookieName,
		CookieSecure:    cfg.Auth.CookieSecure,
		LoginURL:        cfg.Auth.LoginURL,
		DefaultRedirect: cfg.Auth.DefaultRedirect,
		LogoutRedirect:  cfg.Auth.LogoutRedirect,
		App: identity.App{
			ID:  cfg.Auth.AppID,
			Key: cfg.Auth.AppKey,
		},
	}, clients, logger, obs.Metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize authenticator: %w", err)
	}

	// Initialize the gateway router
	gatewayRouter := router.New(router.Config{
		UpstreamURL:     cfg.Upstream.URL,
		UpstreamTimeout: cfg.Upstream.Timeout,
		Rules:           buildRules(cfg),
		CallbackPath:    cfg.Auth.CallbackPath,
		LogoutPath:      cfg.Auth.LogoutPath,
	}, auth, logger, obs.Metrics)

	// Create complete middleware chain: observability -> client attachment -> router
	handler := obs.Middleware(auth.Attach(gatewayRouter))

	serverConfig := Config{
		Address:         cfg.Server.Address,
		MetricsAddress:  cfg.Metrics.Address,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}

	return New(serverConfig, handler, obs.MetricsHandler(), logger), nil
}

// buildRules converts the configured path prefixes into router rules
func buildRules(cfg *config.Config) []router.Rule {
	var rules []router.Rule

	if len(cfg.Routes.Public) > 0 {
		rules = append(rules, router.Rule{
			Name:        "public",
			Action:      "public",
			Paths:       cfg.Routes.Public,
			MatchPrefix: true,
		})
	}

	if len(cfg.Routes.Protected) > 0 {
		rules = append(rules, router.Rule{
			Name:        "protected",
			Action:      "protected",
			Paths:       cfg.Routes.Protected,
			MatchPrefix: true,
		})
	}

	return rules
}
