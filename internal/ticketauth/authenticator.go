// internal/ticketauth/authenticator.go
package ticketauth

import (
	"net/http"
	"net/url"
	"strings"

	"ticketgate/internal/identity"
	"ticketgate/internal/observability/logging"
	"ticketgate/internal/observability/metrics"
	"ticketgate/internal/ticket"
)

// Authenticator implements the ticket-based login flow against the identity
// platform: it attaches a per-request platform client, gates protected routes
// on ticket validity, exchanges one-time tokens on the login callback and
// clears the session on logout.
type Authenticator struct {
	opts     Options
	loginURL *url.URL
	store    *ticket.Store
	clients  identity.ClientFactory
	logger   *logging.Logger
	metrics  *metrics.Collector
}

// New creates an authenticator. Missing application credentials are a setup
// error and fail here rather than per request.
func New(opts Options, clients identity.ClientFactory, logger *logging.Logger, collector *metrics.Collector) (*Authenticator, error) {
	opts.applyDefaults()

	loginURL, err := opts.validate()
	if err != nil {
		return nil, err
	}

	return &Authenticator{
		opts:     opts,
		loginURL: loginURL,
		store:    ticket.NewStore(opts.CookieName, opts.CookieSecure),
		clients:  clients,
		logger:   logger.WithModule("ticketauth"),
		metrics:  collector,
	}, nil
}

// Store returns the cookie-backed ticket store used by this authenticator
func (a *Authenticator) Store() *ticket.Store {
	return a.store
}

// Attach builds a per-request platform client from the ticket cookie and
// stores it in the request context so downstream application code can make
// platform calls with the same session. It never blocks a request: a missing
// ticket just yields an unauthenticated client.
func (a *Authenticator) Attach(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := a.clients.Client(a.store.Read(r))
		ctx := identity.ContextWithClient(r.Context(), client)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Require gates a handler on a valid session ticket. Requests without a
// ticket, with a ticket the platform reports invalid, or where validation
// itself fails are redirected to the login portal with the application id and
// the originally requested path; downstream handlers never see them.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := logging.LoggerFromContext(ctx)
		if logger == nil {
			logger = a.logger
		}

		tkt := a.store.Read(r)
		if tkt == nil {
			logger.Debug("No session ticket, redirecting to login portal", "path", r.URL.Path)
			a.metrics.RecordTicketValidation(metrics.OutcomeMissing)
			a.redirectToLogin(w, r)
			return
		}

		client := identity.ClientFromContext(ctx)
		if client == nil || client.Ticket() == nil {
			client = a.clients.Client(tkt)
		}

		valid, err := client.ValidateTicket(ctx)
		if err != nil {
			// A platform failure counts as invalid for the flow, but the
			// cause must stay visible.
			logger.Error("Ticket validation failed", logging.Err(err), "path", r.URL.Path)
			a.metrics.RecordTicketValidation(metrics.OutcomeError)
			a.redirectToLogin(w, r)
			return
		}

		if !valid {
			logger.Debug("Session ticket no longer valid, redirecting to login portal", "path", r.URL.Path)
			a.metrics.RecordTicketValidation(metrics.OutcomeInvalid)
			a.redirectToLogin(w, r)
			return
		}

		a.metrics.RecordTicketValidation(metrics.OutcomeValid)
		next.ServeHTTP(w, r)
	})
}

// Callback handles the return from the login portal. It exchanges the
// one-time token for a session ticket, persists it and sends the user back to
// where they were going.
func (a *Authenticator) Callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.LoggerFromContext(ctx)
	if logger == nil {
		logger = a.logger
	}

	oneTimeToken := r.URL.Query().Get(ParamToken)
	if oneTimeToken == "" {
		logger.Warn("Login callback without one-time token")
		http.Error(w, "missing token parameter", http.StatusBadRequest)
		return
	}

	client := a.clients.Client(nil)
	tkt, err := client.ExchangeToken(ctx, oneTimeToken, a.opts.App)
	if err != nil {
		logger.Error("One-time token exchange failed", logging.Err(err))
		a.metrics.RecordTokenExchange(false)
		a.opts.ErrorHandler(w, r, err)
		return
	}

	a.store.Write(w, tkt)
	a.metrics.RecordTokenExchange(true)

	dest := a.safeRedirect(r.URL.Query().Get(ParamNext))
	logger.Info("Session ticket issued", "redirect", dest)
	http.Redirect(w, r, dest, http.StatusFound)
}

// Logout clears the session ticket cookie and redirects. It requires no
// current session and is idempotent.
func (a *Authenticator) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.LoggerFromContext(ctx)
	if logger == nil {
		logger = a.logger
	}

	a.store.Clear(w)
	a.metrics.RecordLogout()

	logger.Debug("Session ticket cleared", "redirect", a.opts.LogoutRedirect)
	http.Redirect(w, r, a.opts.LogoutRedirect, http.StatusFound)
}

// redirectToLogin sends the visitor to the login portal, carrying the
// application id and the originally requested URI so the portal can route
// them back through the callback endpoint.
func (a *Authenticator) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	u := *a.loginURL
	q := u.Query()
	q.Set(ParamAppID, a.opts.App.ID)
	q.Set(ParamNext, r.URL.RequestURI())
	u.RawQuery = q.Encode()

	http.Redirect(w, r, u.String(), http.StatusFound)
}

// safeRedirect constrains the round-tripped next parameter to a local path.
// Anything absolute or scheme-relative falls back to the default redirect.
func (a *Authenticator) safeRedirect(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return a.opts.DefaultRedirect
	}
	return next
}
