// internal/gateway/router/router.go
package router

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"ticketgate/internal/httputils"
	"ticketgate/internal/observability/logging"
	"ticketgate/internal/observability/metrics"
	"ticketgate/internal/ticketauth"

	"github.com/gorilla/mux"
)

// Default paths for the authentication endpoints
const (
	DefaultCallbackPath = "/auth/callback"
	DefaultLogoutPath   = "/auth/logout"
)

// Rule defines a routing rule for the gateway
type Rule struct {
	// Name is a unique identifier for the rule
	Name string

	// Action determines what happens to matched requests.
	// Can be "public" (proxied directly) or "protected" (session required).
	Action string

	// Paths is a list of URL paths this rule applies to
	Paths []string

	// MatchPrefix indicates whether to match the path prefix instead of exact match
	MatchPrefix bool

	// Methods is a list of HTTP methods this rule applies to (empty = all methods)
	Methods []string
}

// Router fronts the upstream application: it mounts the authentication
// endpoints, applies routing rules and proxies everything that may pass.
// Anything no rule claims is treated as protected.
type Router struct {
	*mux.Router
	target       *httputil.ReverseProxy
	auth         *ticketauth.Authenticator
	rules        []Rule
	logger       *logging.Logger
	metrics      *metrics.Collector
	upstreamURL  *url.URL
	callbackPath string
	logoutPath   string
}

// Config holds router configuration
type Config struct {
	// UpstreamURL is the URL of the upstream application
	UpstreamURL *url.URL

	// UpstreamTimeout is the timeout for upstream responses
	UpstreamTimeout time.Duration

	// Rules is the list of routing rules
	Rules []Rule

	// CallbackPath is where the login portal sends the user back
	CallbackPath string

	// LogoutPath is the logout endpoint
	LogoutPath string
}

// New creates a new gateway router
func New(config Config, auth *ticketauth.Authenticator, logger *logging.Logger, metricsCollector *metrics.Collector) *Router {
	target := httputil.NewSingleHostReverseProxy(config.UpstreamURL)
	target.Transport = &http.Transport{
		ResponseHeaderTimeout: config.UpstreamTimeout,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	callbackPath := config.CallbackPath
	if callbackPath == "" {
		callbackPath = DefaultCallbackPath
	}
	logoutPath := config.LogoutPath
	if logoutPath == "" {
		logoutPath = DefaultLogoutPath
	}

	r := &Router{
		Router:       mux.NewRouter(),
		target:       target,
		auth:         auth,
		rules:        config.Rules,
		logger:       logger.WithModule("gateway.router"),
		metrics:      metricsCollector,
		upstreamURL:  config.UpstreamURL,
		callbackPath: callbackPath,
		logoutPath:   logoutPath,
	}

	r.setupRoutes()

	return r
}

// setupRoutes mounts the auth endpoints and configures routes based on rules
func (r *Router) setupRoutes() {
	// Auth endpoints must stay reachable without a session, or nobody could
	// ever log in.
	r.Path(r.callbackPath).HandlerFunc(r.auth.Callback)
	r.Path(r.logoutPath).HandlerFunc(r.auth.Logout)

	proxyHandler := r.createProxyHandler()
	protectedHandler := r.auth.Require(proxyHandler)

	for _, rule := range r.rules {
		r.logger.Debug("Setting up route",
			"name", rule.Name,
			"action", rule.Action,
			"paths", rule.Paths,
			"methods", rule.Methods,
		)

		for _, path := range rule.Paths {
			var route *mux.Route
			if rule.MatchPrefix {
				route = r.PathPrefix(path)
			} else {
				route = r.Path(path)
			}

			if len(rule.Methods) > 0 {
				route = route.Methods(rule.Methods...)
			}

			route = route.Name(rule.Name)

			switch rule.Action {
			case "public":
				route.Handler(proxyHandler)
			case "protected":
				route.Handler(protectedHandler)
			default:
				r.logger.Warn("Unknown action in rule, treating as protected",
					"rule", rule.Name, "action", rule.Action)
				route.Handler(protectedHandler)
			}
		}
	}

	// Unmatched routes and method mismatches fall through to the protected
	// proxy, so a forgotten rule fails closed rather than open.
	r.NotFoundHandler = protectedHandler
	r.MethodNotAllowedHandler = protectedHandler
}

// createProxyHandler creates the handler that forwards requests upstream
func (r *Router) createProxyHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		logger := logging.LoggerFromContext(ctx)
		if logger == nil {
			logger = r.logger
		}

		logger.Debug("Proxying to upstream",
			"path", req.URL.Path,
			"method", req.Method,
		)

		startTime := time.Now()
		wrapper := httputils.NewResponseWriter(w)

		r.target.ServeHTTP(wrapper, req)

		duration := time.Since(startTime)
		r.metrics.RecordUpstreamRequest(req.Method, r.upstreamURL.String(), wrapper.StatusCode, duration)
	})
}
