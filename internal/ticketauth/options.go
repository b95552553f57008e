// internal/ticketauth/options.go
package ticketauth

import (
	"fmt"
	"net/http"
	"net/url"

	"ticketgate/internal/identity"
)

// Wire contract with the login portal. The portal receives app_id and next on
// the login redirect and echoes next back to the callback endpoint together
// with the one-time token; changing these names breaks the round trip.
const (
	ParamAppID = "app_id"
	ParamToken = "token"
	ParamNext  = "next"
)

// Defaults applied when the corresponding option is left empty
const (
	DefaultLoginURL = "https://login.example.com/oauth/authorize"
	DefaultRedirect = "/"
)

// ErrorHandler receives hard failures from the callback endpoint, after they
// have been logged and counted
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Options holds the authentication flow configuration. App is mandatory;
// everything else has a default.
type Options struct {
	// CookieName is the name of the session ticket cookie
	CookieName string

	// CookieSecure marks the session cookie Secure
	CookieSecure bool

	// LoginURL is the URL of the platform's hosted login portal
	LoginURL string

	// DefaultRedirect is where users land after login when no original path
	// was carried through the portal
	DefaultRedirect string

	// LogoutRedirect is where users land after logout; falls back to
	// DefaultRedirect when empty
	LogoutRedirect string

	// App identifies this application to the identity platform
	App identity.App

	// ErrorHandler handles token exchange failures; defaults to a 502 via
	// http.Error
	ErrorHandler ErrorHandler
}

// applyDefaults fills in the documented defaults for unset options
func (o *Options) applyDefaults() {
	if o.LoginURL == "" {
		o.LoginURL = DefaultLoginURL
	}
	if o.DefaultRedirect == "" {
		o.DefaultRedirect = DefaultRedirect
	}
	if o.LogoutRedirect == "" {
		o.LogoutRedirect = o.DefaultRedirect
	}
	if o.ErrorHandler == nil {
		o.ErrorHandler = defaultErrorHandler
	}
}

// validate fails fast on setup errors so they surface at construction time,
// not per request
func (o *Options) validate() (*url.URL, error) {
	if o.App.ID == "" || o.App.Key == "" {
		return nil, fmt.Errorf("application credentials (id and key) are required")
	}

	loginURL, err := url.Parse(o.LoginURL)
	if err != nil {
		return nil, fmt.Errorf("invalid login URL %q: %w", o.LoginURL, err)
	}
	return loginURL, nil
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	http.Error(w, "authentication failed", http.StatusBadGateway)
}
