// internal/config/types.go
package config

import (
	"net/url"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	// Server holds HTTP server configuration
	Server struct {
		// Address is the address to listen on
		Address string
		// ShutdownTimeout is the maximum time to wait for a graceful shutdown
		ShutdownTimeout time.Duration
	}

	// Metrics holds metrics server configuration
	Metrics struct {
		// Address is the address to listen on for the metrics server
		Address string
	}

	// Upstream holds configuration for the protected upstream application
	Upstream struct {
		// URL is the URL of the upstream application
		URL *url.URL
		// Timeout is the maximum time to wait for upstream responses
		Timeout time.Duration
	}

	// Platform holds configuration for the identity platform
	Platform struct {
		// URL is the base URL of the platform's HTTP API
		URL string
		// Timeout is the maximum time to wait for platform calls
		Timeout time.Duration
	}

	// Auth holds the authentication flow configuration
	Auth struct {
		// AppID is the application identifier registered with the platform
		AppID string
		// AppKey is the application secret key
		AppKey string
		// CookieName is the name of the session ticket cookie
		CookieName string
		// CookieSecure marks the session cookie Secure
		CookieSecure bool
		// LoginURL is the URL of the platform's hosted login portal
		LoginURL string
		// DefaultRedirect is where users land after login when no original
		// path was carried through the portal
		DefaultRedirect string
		// LogoutRedirect is where users land after logout
		LogoutRedirect string
		// CallbackPath is where the login portal sends the user back
		CallbackPath string
		// LogoutPath is the logout endpoint
		LogoutPath string
	}

	// Routes holds the gateway routing configuration
	Routes struct {
		// Public is a list of path prefixes reachable without a session
		Public []string
		// Protected is a list of path prefixes that require a session.
		// Anything matching neither list is protected as well.
		Protected []string
	}

	// Observability holds observability configuration
	Observability struct {
		// LogLevel is the minimum log level to emit
		LogLevel string
	}
}
