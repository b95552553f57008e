// internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Load loads the configuration from all sources and returns the merged result
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	Settings.PopulateViperDefaults(v)

	// Set up environment variable handling
	v.SetEnvPrefix("TICKETGATE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Load from config file if specified
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			// It's okay if the config file doesn't exist, but other errors should be reported
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	config := &Config{}

	// Populate server configuration
	config.Server.Address = v.GetString("SERVER_ADDR")
	shutdownTimeout, err := time.ParseDuration(v.GetString("SHUTDOWN_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}
	config.Server.ShutdownTimeout = shutdownTimeout

	// Populate metrics configuration
	config.Metrics.Address = v.GetString("METRICS_ADDR")

	// Populate upstream configuration
	upstreamURL, err := url.Parse(v.GetString("UPSTREAM_URL"))
	if err != nil {
		return nil, fmt.Errorf("invalid upstream URL: %w", err)
	}
	config.Upstream.URL = upstreamURL

	upstreamTimeout, err := time.ParseDuration(v.GetString("UPSTREAM_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid upstream timeout: %w", err)
	}
	config.Upstream.Timeout = upstreamTimeout

	// Populate identity platform configuration
	config.Platform.URL = v.GetString("PLATFORM_URL")
	platformTimeout, err := time.ParseDuration(v.GetString("PLATFORM_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid platform timeout: %w", err)
	}
	config.Platform.Timeout = platformTimeout

	// Populate authentication configuration
	config.Auth.AppID = v.GetString("AUTH_APP_ID")
	config.Auth.AppKey = v.GetString("AUTH_APP_KEY")
	config.Auth.CookieName = v.GetString("AUTH_COOKIE_NAME")
	config.Auth.CookieSecure = v.GetBool("AUTH_COOKIE_SECURE")
	config.Auth.LoginURL = v.GetString("AUTH_LOGIN_URL")
	config.Auth.DefaultRedirect = v.GetString("AUTH_DEFAULT_REDIRECT")
	config.Auth.LogoutRedirect = v.GetString("AUTH_LOGOUT_REDIRECT")
	config.Auth.CallbackPath = v.GetString("AUTH_CALLBACK_PATH")
	config.Auth.LogoutPath = v.GetString("AUTH_LOGOUT_PATH")

	// Populate routing configuration
	config.Routes.Public = v.GetStringSlice("ROUTES_PUBLIC")
	config.Routes.Protected = v.GetStringSlice("ROUTES_PROTECTED")

	// Populate observability configuration
	config.Observability.LogLevel = v.GetString("LOG_LEVEL")

	// Validate the configuration
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// validateConfig performs validation on the loaded configuration
func validateConfig(cfg *Config) error {
	if cfg.Upstream.URL == nil || cfg.Upstream.URL.String() == "" {
		return fmt.Errorf("upstream URL is required")
	}

	if cfg.Platform.URL == "" {
		return fmt.Errorf("identity platform URL is required")
	}

	// Missing application credentials are a setup error; refuse to start
	// rather than fail per request.
	if cfg.Auth.AppID == "" {
		return fmt.Errorf("application id is required")
	}
	if cfg.Auth.AppKey == "" {
		return fmt.Errorf("application key is required")
	}

	if cfg.Auth.LoginURL != "" {
		if _, err := url.Parse(cfg.Auth.LoginURL); err != nil {
			return fmt.Errorf("invalid login URL: %w", err)
		}
	}

	return nil
}
